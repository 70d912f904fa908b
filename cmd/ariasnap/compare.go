package main

import (
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/ariasnap/ariasnap"
)

func init() {
	compareCmd.Run = compareFiles
	compareCmd.Flags().StringVarP(&rootCmd.reffile, "reference", "r", "",
		"Set reference file name")
	compareCmd.MarkFlagRequired("reference")
	rootCmd.AddCommand(&compareCmd.Command)
}

var compareCmd = struct {
	cobra.Command
}{
	Command: cobra.Command{
		Use:   "compare",
		Short: "Compare stored snapshot files to a reference",
	},
}

func compareFiles(cmd *cobra.Command, files []string) {
	ref, err := ariasnap.OpenRefFile(rootCmd.reffile)
	if err != nil {
		log.Fatal(err)
	}
	ok := true
	if len(files) == 0 {
		ok = compareRd(ref, "stdin", os.Stdin)
	}
	for _, f := range files {
		ok = compareFile(ref, f) && ok
	}
	if !ok {
		os.Exit(1)
	}
}

func compareFile(ref *ariasnap.RefNode, name string) bool {
	sr, err := os.Open(name)
	if err != nil {
		log.Fatal(err)
	}
	defer sr.Close()
	return compareRd(ref, name, sr)
}

func compareRd(ref *ariasnap.RefNode, sname string, subj io.Reader) bool {
	tree, err := ariasnap.ParseSnapshot(sname, subj)
	if err != nil {
		log.Println(err)
		return false
	}
	res, err := ariasnap.Match(ref, tree)
	if err != nil {
		log.Println(err)
		return false
	}
	if !res.OK {
		log.Printf("%s mismatch with %s:\n%s", sname, rootCmd.reffile, res)
		return false
	}
	log.Printf("%s matches reference %s\n", sname, rootCmd.reffile)
	return true
}

package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ariasnap/ariasnap"
	"github.com/ariasnap/ariasnap/capture"
)

func init() {
	captureCmd.Run = capturePage
	captureCmd.Flags().StringVarP(&captureCmd.selector, "selector", "s", "body",
		"Capture the tree below the first element matching this selector")
	captureCmd.Flags().StringVarP(&captureCmd.out, "out", "o", "",
		"Write reference text to this file instead of stdout")
	captureCmd.Flags().BoolVar(&captureCmd.headed, "headed", false,
		"Run the browser with a visible window")
	rootCmd.AddCommand(&captureCmd.Command)
}

var captureCmd = struct {
	cobra.Command
	selector string
	out      string
	headed   bool
}{
	Command: cobra.Command{
		Use:   "capture <url>",
		Short: "Capture a page's accessible tree as reference text",
		Args:  cobra.ExactArgs(1),
	},
}

func capturePage(cmd *cobra.Command, args []string) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("env file: %s", err)
	}
	b, err := capture.Launch(capture.Options{
		Headless:  !captureCmd.headed,
		UserAgent: os.Getenv("ARIASNAP_USER_AGENT"),
	})
	if err != nil {
		log.Fatal(err)
	}
	defer b.Close()
	ctx := context.Background()
	if err = b.Goto(ctx, args[0]); err != nil {
		log.Fatal(err)
	}
	tree, err := b.Tree(ctx, captureCmd.selector)
	if err != nil {
		log.Fatal(err)
	}
	wr := os.Stdout
	if captureCmd.out != "" {
		if wr, err = os.Create(captureCmd.out); err != nil {
			log.Fatal(err)
		}
		defer wr.Close()
	}
	if err = (ariasnap.Snapshot{}).Write(wr, tree); err != nil {
		log.Fatal(err)
	}
}

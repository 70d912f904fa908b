package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ariasnap/ariasnap"
	"github.com/ariasnap/ariasnap/capture"
)

func init() {
	assertCmd.Run = assertPage
	assertCmd.Flags().StringVarP(&rootCmd.reffile, "reference", "r", "",
		"Set reference file name")
	assertCmd.MarkFlagRequired("reference")
	assertCmd.Flags().StringVarP(&assertCmd.selector, "selector", "s", "body",
		"Match the tree below the first element matching this selector")
	assertCmd.Flags().DurationVar(&assertCmd.timeout, "timeout", 5*time.Second,
		"Give up when the page does not match within this duration")
	assertCmd.Flags().DurationVar(&assertCmd.interval, "interval", 250*time.Millisecond,
		"Pause between capture attempts")
	assertCmd.Flags().BoolVar(&assertCmd.headed, "headed", false,
		"Run the browser with a visible window")
	rootCmd.AddCommand(&assertCmd.Command)
}

var assertCmd = struct {
	cobra.Command
	selector string
	timeout  time.Duration
	interval time.Duration
	headed   bool
}{
	Command: cobra.Command{
		Use:   "assert <url>",
		Short: "Poll a page until its accessible tree matches a reference",
		Args:  cobra.ExactArgs(1),
	},
}

func assertPage(cmd *cobra.Command, args []string) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("env file: %s", err)
	}
	ref, err := ariasnap.OpenRefFile(rootCmd.reffile)
	if err != nil {
		log.Fatal(err)
	}
	b, err := capture.Launch(capture.Options{
		Headless:  !assertCmd.headed,
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
	poller := ariasnap.Poller{
		Interval: assertCmd.interval,
		Timeout:  assertCmd.timeout,
	}
	res, err := poller.Wait(ctx, ref, b.Capturer(assertCmd.selector))
	if err != nil {
		if !res.OK && res.Mismatch.Kind != ariasnap.MismatchNone {
			log.Printf("last attempt:\n%s", res)
		}
		log.Fatal(err)
	}
	log.Printf("%s matches reference %s\n", args[0], rootCmd.reffile)
}

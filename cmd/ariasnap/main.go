// A command line tool to capture and compare accessible-element trees
package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = struct {
	cobra.Command
	reffile string
}{
	Command: cobra.Command{
		Use:   "ariasnap",
		Short: "Capture and compare accessible-element trees",
		Long: `ariasnap captures the accessible-element tree of a web page as
reference text and compares captures against such references.

REFERENCE FORMAT

One element per line, children indented by one unit:

   - heading "Title" [level=1]
   - list "Main Features":
     - listitem: Feature 1
   - heading /Issues \d+/

Elements declare a role, optionally a name (quoted literal or /regexp/),
a [key=value, ...] attribute list and a ': text' content suffix. Lines
starting with '#' are comments.`,
	},
}

func main() {
	log.SetFlags(0)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

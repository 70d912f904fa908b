package ariasnap

import (
	"fmt"
	"io"
	"strings"
)

// Report renders a failed MatchResult for humans: the role/index path from
// the root to the first divergence and the dimension that diverged. It is
// pure formatting; an OK result reports a single "match" line.
func (res MatchResult) Report(w io.Writer) {
	if res.OK {
		fmt.Fprintln(w, "match")
		return
	}
	steps := make([]string, len(res.Path))
	for i, s := range res.Path {
		steps[i] = s.String()
	}
	fmt.Fprintf(w, "mismatch at %s\n", strings.Join(steps, " > "))
	mm := res.Mismatch
	switch mm.Kind {
	case MismatchRole:
		fmt.Fprintf(w, "  role: want %s, have %s\n", mm.Want, mm.Got)
	case MismatchName:
		fmt.Fprintf(w, "  name: want %s, have %s\n", mm.Want, mm.Got)
	case MismatchAttr:
		if mm.Got == "" {
			fmt.Fprintf(w, "  attribute %s: want %s, not set\n", mm.Key, mm.Want)
		} else {
			fmt.Fprintf(w, "  attribute %s: want %s, have %s\n", mm.Key, mm.Want, mm.Got)
		}
	case MismatchText:
		fmt.Fprintf(w, "  text: want %s, have %s\n", mm.Want, mm.Got)
	case MismatchGone:
		fmt.Fprintf(w, "  no remaining sibling matches %s\n", mm.Want)
	}
	if mm.RefLine > 0 {
		fmt.Fprintf(w, "  reference line %d\n", mm.RefLine)
	}
}

// String returns the report as a string.
func (res MatchResult) String() string {
	var sb strings.Builder
	res.Report(&sb)
	return strings.TrimRight(sb.String(), "\n")
}

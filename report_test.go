package ariasnap

import (
	"strings"
	"testing"
)

func TestReport(t *testing.T) {
	check := func(t *testing.T, res MatchResult, want ...string) {
		t.Helper()
		got := res.String()
		for _, w := range want {
			if !strings.Contains(got, w) {
				t.Errorf("report misses %q:\n%s", w, got)
			}
		}
	}
	t.Run("ok", func(t *testing.T) {
		check(t, MatchResult{OK: true}, "match")
	})
	t.Run("name", func(t *testing.T) {
		res := mustMatch(t, `- heading "title"`,
			container(&AXNode{Role: "heading", Name: "subtitle"}))
		check(t, res,
			"mismatch at heading[0]",
			`name: want "title", have "subtitle"`,
			"reference line 1",
		)
	})
	t.Run("attribute value", func(t *testing.T) {
		res := mustMatch(t, `- checkbox [checked=true]`,
			container(&AXNode{Role: "checkbox", Attrs: map[string]AttrValue{
				"checked": BoolAttr(false),
			}}))
		check(t, res, "attribute checked: want true, have false")
	})
	t.Run("attribute missing", func(t *testing.T) {
		res := mustMatch(t, `- checkbox [checked=true]`,
			container(&AXNode{Role: "checkbox"}))
		check(t, res, "attribute checked: want true, not set")
	})
	t.Run("no remaining sibling", func(t *testing.T) {
		res := mustMatch(t, `- button "Save"`, container())
		check(t, res, "mismatch at button[0]", `no remaining sibling matches button "Save"`)
	})
	t.Run("nested path", func(t *testing.T) {
		res := mustMatch(t, `- list:
  - listitem: b`,
			container(&AXNode{Role: "list", Children: []*AXNode{
				{Role: "listitem", Text: "a"},
			}}))
		check(t, res, "list[0] > listitem[0]", "text:")
	})
}

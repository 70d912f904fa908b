package ariasnap

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"
)

func TestSnapshot_canonicalText(t *testing.T) {
	tree := container(
		&AXNode{
			Role: "navigation",
			Name: "Main",
			Children: []*AXNode{
				{Role: "link", Name: "Home"},
				{Role: "link", Name: "Sign  in"},
			},
		},
		&AXNode{
			Role:  "heading",
			Name:  `Say "hi"`,
			Attrs: map[string]AttrValue{"level": NumAttr(1)},
		},
		&AXNode{
			Role: "checkbox",
			Name: "Remember me",
			Attrs: map[string]AttrValue{
				"disabled": BoolAttr(false),
				"checked":  BoolAttr(true),
			},
		},
		&AXNode{Role: "listitem", Text: "Feature 1"},
	)
	want := `- navigation "Main":
  - link "Home"
  - link "Sign in"
- heading "Say \"hi\"" [level=1]
- checkbox "Remember me" [checked=true, disabled=false]
- listitem: Feature 1
`
	if got := (Snapshot{}).String(tree); got != want {
		t.Errorf("serialized text:\n%s\nexpect:\n%s", got, want)
	}
}

func TestSnapshot_indentUnit(t *testing.T) {
	tree := container(&AXNode{Role: "list", Children: []*AXNode{
		{Role: "listitem", Text: "a"},
	}})
	got := Snapshot{Indent: "\t"}.String(tree)
	if !strings.Contains(got, "\n\t- listitem") {
		t.Errorf("tab indentation not honored:\n%q", got)
	}
}

func TestSnapshot_roundTrip(t *testing.T) {
	tree := container(
		&AXNode{
			Role: "list",
			Name: "Main Features",
			Children: []*AXNode{
				{Role: "listitem", Text: "Feature 1"},
				{Role: "listitem", Text: `quoted "text"`},
			},
		},
		&AXNode{Role: "row", Attrs: map[string]AttrValue{
			"level":    NumAttr(2.5),
			"selected": BoolAttr(true),
			"variant":  StringAttr("compact"),
		}},
	)
	text := Snapshot{}.String(tree)
	back, err := ParseSnapshotString(t.Name(), text)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(tree, back); diff != "" {
		t.Errorf("round trip changed the tree:\n%s", diff)
	}
}

func TestParseSnapshot_rejectsPatterns(t *testing.T) {
	_, err := ParseSnapshotString(t.Name(), `- heading /Issues \d+/`)
	if err == nil {
		t.Error("snapshots must not contain regexps")
	}
}

// Property: serializing any tree within the literal value domain and
// parsing the text back reproduces the tree.
func TestSnapshot_roundTripProperty(t *testing.T) {
	roles := []string{"button", "link", "heading", "list", "listitem", "row", "checkbox"}
	words := []string{"", "Save", "Main Features", "Sign in", "a b c", `say "hi"`, "x/y", "/not a regexp/"}
	attrKeys := []string{AttrChecked, AttrDisabled, AttrExpanded, AttrLevel, "variant"}

	var genNode func(depth int) *rapid.Generator[*AXNode]
	genNode = func(depth int) *rapid.Generator[*AXNode] {
		return rapid.Custom(func(t *rapid.T) *AXNode {
			n := &AXNode{
				Role: rapid.SampledFrom(roles).Draw(t, "role"),
				Name: rapid.SampledFrom(words).Draw(t, "name"),
			}
			nAttrs := rapid.IntRange(0, 3).Draw(t, "nAttrs")
			for i := 0; i < nAttrs; i++ {
				key := rapid.SampledFrom(attrKeys).Draw(t, fmt.Sprintf("key%d", i))
				if _, ok := n.Attrs[key]; ok {
					continue
				}
				if n.Attrs == nil {
					n.Attrs = make(map[string]AttrValue)
				}
				switch key {
				case AttrLevel:
					n.Attrs[key] = NumAttr(float64(rapid.IntRange(1, 6).Draw(t, "level")))
				case "variant":
					n.Attrs[key] = StringAttr(rapid.SampledFrom(
						[]string{"compact", "wide", "x-2"}).Draw(t, "variant"))
				default:
					n.Attrs[key] = BoolAttr(rapid.Bool().Draw(t, "flag"))
				}
			}
			nKids := 0
			if depth > 0 {
				nKids = rapid.IntRange(0, 3).Draw(t, "nKids")
			}
			for i := 0; i < nKids; i++ {
				n.Children = append(n.Children, genNode(depth-1).Draw(t, fmt.Sprintf("kid%d", i)))
			}
			if len(n.Children) == 0 {
				n.Text = rapid.SampledFrom(words).Draw(t, "text")
			}
			return n
		})
	}

	rapid.Check(t, func(t *rapid.T) {
		tree := &AXNode{}
		nTop := rapid.IntRange(0, 4).Draw(t, "nTop")
		for i := 0; i < nTop; i++ {
			tree.Children = append(tree.Children, genNode(2).Draw(t, fmt.Sprintf("top%d", i)))
		}
		text := Snapshot{}.String(tree)
		back, err := ParseSnapshotString("roundtrip", text)
		if err != nil {
			t.Fatalf("parse back: %s\n%s", err, text)
		}
		if diff := cmp.Diff(tree, back); diff != "" {
			t.Fatalf("round trip changed the tree:\n%s\ntext:\n%s", diff, text)
		}
	})
}

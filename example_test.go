package ariasnap

import (
	"fmt"
	"os"
)

func ExampleMatch() {
	ref, err := ParseRefString("example", `- heading "Welcome" [level=1]
- list:
  - listitem: /Feature \d/
- button /Sign/
`)
	if err != nil {
		fmt.Println(err)
		return
	}
	page := &AXNode{Children: []*AXNode{
		{Role: "heading", Name: "Welcome", Attrs: map[string]AttrValue{
			"level": NumAttr(1),
		}},
		{Role: "paragraph", Text: "not mentioned, skipped"},
		{Role: "list", Children: []*AXNode{
			{Role: "listitem", Text: "Feature 1"},
		}},
		{Role: "button", Name: "Sign in"},
	}}
	res, err := Match(ref, page)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(res)
	// Output:
	// match
}

func ExampleMatchResult_Report() {
	ref, _ := ParseRefString("example", `- heading "Welcome"`)
	page := &AXNode{Children: []*AXNode{
		{Role: "heading", Name: "Goodbye"},
	}}
	res, _ := Match(ref, page)
	res.Report(os.Stdout)
	// Output:
	// mismatch at heading[0]
	//   name: want "Welcome", have "Goodbye"
	//   reference line 1
}

func ExampleSnapshot_Write() {
	page := &AXNode{Children: []*AXNode{
		{Role: "navigation", Name: "Main", Children: []*AXNode{
			{Role: "link", Name: "Home"},
		}},
		{Role: "heading", Name: "News", Attrs: map[string]AttrValue{
			"level": NumAttr(2),
		}},
	}}
	if err := (Snapshot{}).Write(os.Stdout, page); err != nil {
		fmt.Println(err)
	}
	// Output:
	// - navigation "Main":
	//   - link "Home"
	// - heading "News" [level=2]
}

package ariasnap

import "fmt"

// Recognized element state attributes. Unrecognized keys are carried
// verbatim, both in reference texts and in captured trees.
const (
	AttrChecked  = "checked"
	AttrDisabled = "disabled"
	AttrExpanded = "expanded"
	AttrLevel    = "level"
	AttrPressed  = "pressed"
	AttrSelected = "selected"
)

// An AXNode is one element of a captured accessible tree. AXNode trees are
// produced by an external capture collaborator and treated as immutable
// snapshots for the duration of one match or serialize call.
//
// The root of a tree handed to Match or Snapshot.Write is a container: its
// own Role and Name are ignored, only its children are compared or written.
type AXNode struct {
	Role     string
	Name     string
	Attrs    map[string]AttrValue
	Text     string
	Children []*AXNode
}

// A TreeError reports a malformed accessible tree, e.g. a cycle, a nil node
// or a node without a role. It signals a broken capture collaborator and is
// reported as an error, never as an ordinary mismatch.
type TreeError struct {
	Path string
	err  error
}

func (e TreeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("accessible tree: %s", e.err)
	}
	return fmt.Sprintf("accessible tree at %s: %s", e.Path, e.err)
}

func (e TreeError) Unwrap() error { return e.err }

// checkTree verifies the subject tree contract: non-nil nodes, a role on
// every node below the container root, each node reachable exactly once.
func checkTree(root *AXNode) error {
	if root == nil {
		return TreeError{err: fmt.Errorf("nil root")}
	}
	seen := make(map[*AXNode]bool)
	seen[root] = true
	var walk func(n *AXNode, path string) error
	walk = func(n *AXNode, path string) error {
		for i, c := range n.Children {
			cpath := fmt.Sprintf("%s/%d", path, i)
			switch {
			case c == nil:
				return TreeError{Path: cpath, err: fmt.Errorf("nil node")}
			case seen[c]:
				return TreeError{Path: cpath, err: fmt.Errorf("node %q reached twice", c.Role)}
			case c.Role == "":
				return TreeError{Path: cpath, err: fmt.Errorf("node without role")}
			}
			seen[c] = true
			if err := walk(c, cpath); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(root, "")
}

package ariasnap

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// Snapshot writes captured accessible trees as canonical reference text,
// one line per element, so that a capture can be stored and later parsed
// back as a reference. The zero value is ready to use.
type Snapshot struct {
	// Indent is the indentation unit, two spaces when empty.
	Indent string
}

// Write renders the children of the container root to w. Names are written
// as quoted literals, attributes sorted by key, text content as a ': text'
// suffix on elements without element children.
//
// For trees within the supported value domain the output parses back into a
// structurally identical tree: ParseSnapshot(Write(T)) == T.
func (s Snapshot) Write(w io.Writer, root *AXNode) error {
	if err := checkTree(root); err != nil {
		return err
	}
	unit := s.Indent
	if unit == "" {
		unit = "  "
	}
	var wr func(n *AXNode, depth int) error
	wr = func(n *AXNode, depth int) error {
		if _, err := io.WriteString(w, strings.Repeat(unit, depth)); err != nil {
			return err
		}
		if _, err := io.WriteString(w, s.line(n)); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
		for _, c := range n.Children {
			if err := wr(c, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	for _, c := range root.Children {
		if err := wr(c, 0); err != nil {
			return err
		}
	}
	return nil
}

// String renders the tree to a string, panicking on a malformed tree. Use
// Write to get the TreeError instead.
func (s Snapshot) String(root *AXNode) string {
	var sb strings.Builder
	if err := s.Write(&sb, root); err != nil {
		panic(err)
	}
	return sb.String()
}

func (s Snapshot) line(n *AXNode) string {
	var sb strings.Builder
	sb.WriteString("- ")
	sb.WriteString(n.Role)
	if name := normalizeSpace(n.Name); name != "" {
		sb.WriteByte(' ')
		sb.WriteString(quote(name))
	}
	if len(n.Attrs) > 0 {
		keys := make([]string, 0, len(n.Attrs))
		for k := range n.Attrs {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		sb.WriteString(" [")
		for i, k := range keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(k)
			sb.WriteByte('=')
			sb.WriteString(n.Attrs[k].String())
		}
		sb.WriteByte(']')
	}
	switch {
	case len(n.Children) > 0:
		sb.WriteByte(':')
	case normalizeSpace(n.Text) != "":
		text := normalizeSpace(n.Text)
		sb.WriteString(": ")
		if text[0] == '"' || text[0] == '/' {
			sb.WriteString(quote(text))
		} else {
			sb.WriteString(text)
		}
	}
	return sb.String()
}

// ParseSnapshot reads reference text that contains only concrete values,
// i.e. no regexps, and returns it as a subject tree under a synthetic
// container root. This is the inverse of Snapshot.Write and is how stored
// captures are loaded.
func ParseSnapshot(name string, r io.Reader) (*AXNode, error) {
	ref, err := ParseRef(name, r)
	if err != nil {
		return nil, err
	}
	return snapshotNode(ref, name)
}

func ParseSnapshotString(name, text string) (*AXNode, error) {
	return ParseSnapshot(name, strings.NewReader(text))
}

func snapshotNode(rn *RefNode, src string) (*AXNode, error) {
	concrete := func(p Pattern, what string) (string, error) {
		if p.IsAny() {
			return "", nil
		}
		lit, ok := p.Literal()
		if !ok {
			return "", ParseError{
				Src: src, Line: rn.srcLine, Col: 1,
				err: fmt.Errorf("snapshot %s must be a literal", what),
			}
		}
		return lit, nil
	}
	n := &AXNode{Role: rn.role}
	var err error
	if n.Name, err = concrete(rn.name, "name"); err != nil {
		return nil, err
	}
	if rn.text != nil {
		if n.Text, err = concrete(*rn.text, "text"); err != nil {
			return nil, err
		}
	}
	if len(rn.attrs) > 0 {
		n.Attrs = make(map[string]AttrValue, len(rn.attrs))
		for k, v := range rn.attrs {
			n.Attrs[k] = v
		}
	}
	for _, c := range rn.children {
		cn, err := snapshotNode(c, src)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, cn)
	}
	return n, nil
}

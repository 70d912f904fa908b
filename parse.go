package ariasnap

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"git.fractalqb.de/fractalqb/icontainer/islist"
)

// Marks a comment line when it is the first non-space rune of the line.
const TagComment = '#'

// A ParseError reports malformed reference text with the position of the
// offending input. Line and Col are 1-based.
type ParseError struct {
	Src  string
	Line int
	Col  int
	err  error
}

func (e ParseError) Error() string {
	if e.Src == "" {
		return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.err)
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.Src, e.Line, e.Col, e.err)
}

func (e ParseError) Unwrap() error { return e.err }

// ParseRef reads reference text and returns the root of the reference tree.
// The root is a synthetic container owning all top-level elements; it is
// never matched itself. name is only used in error messages. Parsing is a
// pure function of the input: the same text yields the same tree or the
// same ParseError.
func ParseRef(name string, r io.Reader) (*RefNode, error) {
	p := refParser{src: name, scn: bufio.NewScanner(r)}
	return p.parse()
}

func ParseRefString(name, text string) (*RefNode, error) {
	return ParseRef(name, strings.NewReader(text))
}

func OpenRefFile(file string) (*RefNode, error) {
	r, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return ParseRef(file, r)
}

type refParser struct {
	src  string
	scn  *bufio.Scanner
	lno  int
	unit string
}

// refLine queues one parsed element line until the tree is assembled.
type refLine struct {
	depth  int
	node   *RefNode
	lsNext *refLine
}

// ListNext to implement intrusive singly linked list
func (l *refLine) ListNext() islist.Node { return l.lsNext }

// SetListNext to implement intrusive singly linked list
func (l *refLine) SetListNext(n islist.Node) {
	if n == nil {
		l.lsNext = nil
	} else {
		l.lsNext = n.(*refLine)
	}
}

func (p *refParser) parse() (*RefNode, error) {
	var lines *islist.List
	prevDepth := -1
	for p.scn.Scan() {
		p.lno++
		line := p.scn.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed[0] == TagComment {
			continue
		}
		depth, tail, err := p.indent(line)
		if err != nil {
			return nil, err
		}
		if depth > prevDepth+1 {
			return nil, p.errAt(len(line)-len(tail)+1,
				"indented %d levels below its parent", depth-prevDepth)
		}
		node, err := p.element(tail, len(line)-len(tail))
		if err != nil {
			return nil, err
		}
		rl := &refLine{depth: depth, node: node}
		if lines == nil {
			lines = islist.New(rl)
		} else {
			lines.PushBack(rl)
		}
		prevDepth = depth
	}
	if err := p.scn.Err(); err != nil {
		return nil, err
	}
	root := new(RefNode)
	if lines != nil {
		p.attach(root, -1, lines)
	}
	return root, nil
}

// indent measures the leading indentation of line against the unit
// established by the first indented line of the input.
func (p *refParser) indent(line string) (depth int, tail string, err error) {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	prefix, tail := line[:i], line[i:]
	if prefix == "" {
		return 0, tail, nil
	}
	if p.unit == "" {
		for j := 1; j < len(prefix); j++ {
			if prefix[j] != prefix[0] {
				return 0, tail, p.errAt(j+1, "mixed indentation characters")
			}
		}
		p.unit = prefix
		return 1, tail, nil
	}
	depth = len(prefix) / len(p.unit)
	if prefix != strings.Repeat(p.unit, depth) {
		return 0, tail, p.errAt(1, "indentation is no repetition of %q", p.unit)
	}
	return depth, tail, nil
}

// attach pops queued lines into parent as long as they are exactly one
// level deeper than parent.
func (p *refParser) attach(parent *RefNode, parentDepth int, lines *islist.List) {
	for lines.Len() > 0 {
		front := lines.Front().(*refLine)
		if front.depth <= parentDepth {
			return
		}
		lines.Drop(1)
		parent.children = append(parent.children, front.node)
		p.attach(front.node, front.depth, lines)
	}
}

// element parses the per-line grammar
//
//	"-" role ["name" | /name/] [key=value, …] [: text]
//
// base is the byte offset of s within the source line, used for error
// columns.
func (p *refParser) element(s string, base int) (*RefNode, error) {
	col := func(i int) int { return base + i + 1 }
	if s == "" || s[0] != '-' {
		return nil, p.errAt(col(0), "expect '-' element marker")
	}
	i := skipSpace(s, 1)
	j := i
	for j < len(s) && isWordRune(s[j]) {
		j++
	}
	if j == i {
		return nil, p.errAt(col(i), "missing element role")
	}
	node := &RefNode{role: s[i:j], srcLine: p.lno}
	i = j

	seenName, seenAttrs := false, false
	for {
		i = skipSpace(s, i)
		if i >= len(s) {
			return node, nil
		}
		switch s[i] {
		case '"':
			if seenName || seenAttrs {
				return nil, p.errAt(col(i), "unexpected name literal")
			}
			lit, next, err := p.quoted(s, i, base)
			if err != nil {
				return nil, err
			}
			node.name = Literal(lit)
			seenName, i = true, next
		case '/':
			if seenName || seenAttrs {
				return nil, p.errAt(col(i), "unexpected name regexp")
			}
			pat, next, err := p.regex(s, i, base)
			if err != nil {
				return nil, err
			}
			node.name = pat
			seenName, i = true, next
		case '[':
			if seenAttrs {
				return nil, p.errAt(col(i), "second attribute list")
			}
			attrs, next, err := p.attrList(s, i, base)
			if err != nil {
				return nil, err
			}
			node.attrs = attrs
			seenAttrs, i = true, next
		case ':':
			rest := strings.TrimSpace(s[i+1:])
			if rest == "" {
				// bare trailing colon introduces the child lines
				return node, nil
			}
			pat, err := p.textPattern(rest, base+i+1+leadingSpace(s[i+1:]))
			if err != nil {
				return nil, err
			}
			node.text = &pat
			return node, nil
		default:
			return nil, p.errAt(col(i), "unexpected input %q", rune(s[i]))
		}
	}
}

// quoted parses a quoted literal starting at s[i] == '"'. Backslash escapes
// the quote and itself.
func (p *refParser) quoted(s string, i, base int) (lit string, next int, err error) {
	var sb strings.Builder
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			if j+1 >= len(s) {
				return "", 0, p.errAt(base+j+1, "dangling escape")
			}
			j++
			sb.WriteByte(s[j])
		case '"':
			return sb.String(), j + 1, nil
		default:
			sb.WriteByte(s[j])
		}
	}
	return "", 0, p.errAt(base+i+1, "unterminated quoted literal")
}

// regex parses a slash-delimited regexp starting at s[i] == '/'. Only the
// closing slash can be escaped; all other escapes belong to the expression.
func (p *refParser) regex(s string, i, base int) (pat Pattern, next int, err error) {
	var sb strings.Builder
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			if j+1 < len(s) && s[j+1] == '/' {
				sb.WriteByte('/')
				j++
			} else {
				sb.WriteByte('\\')
			}
		case '/':
			pat, err := Regexp(sb.String())
			if err != nil {
				return Pattern{}, 0, p.errAt(base+i+1, "bad regexp: %s", err)
			}
			return pat, j + 1, nil
		default:
			sb.WriteByte(s[j])
		}
	}
	return Pattern{}, 0, p.errAt(base+i+1, "unterminated regexp")
}

// attrList parses a bracketed attribute list starting at s[i] == '['.
func (p *refParser) attrList(s string, i, base int) (map[string]AttrValue, int, error) {
	attrs := make(map[string]AttrValue)
	j := i + 1
	for {
		j = skipSpace(s, j)
		if j >= len(s) {
			return nil, 0, p.errAt(base+i+1, "unterminated attribute list")
		}
		if s[j] == ']' && len(attrs) == 0 {
			return nil, j + 1, nil
		}
		k := j
		for k < len(s) && isWordRune(s[k]) {
			k++
		}
		if k == j {
			return nil, 0, p.errAt(base+j+1, "missing attribute key")
		}
		key := s[j:k]
		if _, ok := attrs[key]; ok {
			return nil, 0, p.errAt(base+j+1, "duplicate attribute %q", key)
		}
		k = skipSpace(s, k)
		if k >= len(s) || s[k] != '=' {
			return nil, 0, p.errAt(base+k+1, "expect '=' after attribute key %q", key)
		}
		k = skipSpace(s, k+1)
		v := k
		for v < len(s) && s[v] != ',' && s[v] != ']' && s[v] != ' ' && s[v] != '\t' {
			v++
		}
		if v == k {
			return nil, 0, p.errAt(base+k+1, "missing value for attribute %q", key)
		}
		val, err := p.attrValue(s[k:v], base+k)
		if err != nil {
			return nil, 0, err
		}
		attrs[key] = val
		j = skipSpace(s, v)
		if j >= len(s) {
			return nil, 0, p.errAt(base+i+1, "unterminated attribute list")
		}
		switch s[j] {
		case ']':
			return attrs, j + 1, nil
		case ',':
			j++
		default:
			return nil, 0, p.errAt(base+j+1, "expect ',' or ']' in attribute list")
		}
	}
}

// attrValue types a raw attribute value: true/false, a numeric literal or a
// bare word.
func (p *refParser) attrValue(raw string, at int) (AttrValue, error) {
	switch raw {
	case "true":
		return BoolAttr(true), nil
	case "false":
		return BoolAttr(false), nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return NumAttr(f), nil
	}
	for _, r := range raw {
		if !isWordRune(byte(r)) && r != '_' && r != '.' {
			return AttrValue{}, p.errAt(at+1, "invalid attribute value %q", raw)
		}
	}
	return StringAttr(raw), nil
}

// textPattern parses the value after a ':' text suffix: a quoted literal, a
// slash-delimited regexp or free literal text.
func (p *refParser) textPattern(rest string, base int) (Pattern, error) {
	switch rest[0] {
	case '"':
		lit, next, err := p.quoted(rest, 0, base)
		if err != nil {
			return Pattern{}, err
		}
		if strings.TrimSpace(rest[next:]) != "" {
			return Pattern{}, p.errAt(base+next+1, "unexpected input after text literal")
		}
		return Literal(lit), nil
	case '/':
		pat, next, err := p.regex(rest, 0, base)
		if err != nil {
			return Pattern{}, err
		}
		if strings.TrimSpace(rest[next:]) != "" {
			return Pattern{}, p.errAt(base+next+1, "unexpected input after text regexp")
		}
		return pat, nil
	}
	return Literal(rest), nil
}

func (p *refParser) errAt(col int, format string, args ...any) error {
	return ParseError{
		Src: p.src, Line: p.lno, Col: col,
		err: fmt.Errorf(format, args...),
	}
}

func skipSpace(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return i
}

func leadingSpace(s string) int { return len(s) - len(strings.TrimLeft(s, " \t")) }

func isWordRune(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-'
}

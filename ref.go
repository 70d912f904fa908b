package ariasnap

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// A Pattern constrains a single string dimension of an element, i.e. its
// accessible name or its text content. The zero value is the unconstrained
// pattern that matches everything.
type Pattern struct {
	kind patKind
	lit  string
	rgx  *regexp.Regexp
}

type patKind int

const (
	patAny patKind = iota
	patLiteral
	patRegexp
)

// Any returns the unconstrained pattern.
func Any() Pattern { return Pattern{} }

// Literal returns a pattern that requires equality with s after whitespace
// normalization of both sides.
func Literal(s string) Pattern {
	return Pattern{kind: patLiteral, lit: normalizeSpace(s)}
}

// Regexp returns a pattern that requires expr to be found somewhere within
// the normalized subject value. The expression is not anchored.
func Regexp(expr string) (Pattern, error) {
	rgx, err := regexp.Compile(expr)
	if err != nil {
		return Pattern{}, err
	}
	return Pattern{kind: patRegexp, lit: expr, rgx: rgx}, nil
}

func (p Pattern) IsAny() bool { return p.kind == patAny }

// Literal returns the normalized literal value and true for literal
// patterns, "" and false otherwise.
func (p Pattern) Literal() (string, bool) {
	return p.lit, p.kind == patLiteral
}

// Match reports whether s satisfies the pattern. s is whitespace
// normalized before comparison.
func (p Pattern) Match(s string) bool {
	switch p.kind {
	case patLiteral:
		return p.lit == normalizeSpace(s)
	case patRegexp:
		return p.rgx.MatchString(normalizeSpace(s))
	}
	return true
}

// String renders the pattern in reference text form: a quoted literal, a
// slash-delimited regexp or the empty string for the unconstrained pattern.
func (p Pattern) String() string {
	switch p.kind {
	case patLiteral:
		return quote(p.lit)
	case patRegexp:
		return "/" + strings.ReplaceAll(p.lit, "/", `\/`) + "/"
	}
	return ""
}

func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// normalizeSpace collapses consecutive whitespace to a single space and
// trims leading and trailing whitespace.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// An AttrValue is the typed value of an element state attribute, e.g.
// checked=true or level=2. Values compare by both type and content.
type AttrValue struct {
	kind attrKind
	b    bool
	num  float64
	str  string
}

type attrKind int

const (
	attrBool attrKind = iota
	attrNum
	attrString
)

func BoolAttr(v bool) AttrValue     { return AttrValue{kind: attrBool, b: v} }
func NumAttr(v float64) AttrValue   { return AttrValue{kind: attrNum, num: v} }
func StringAttr(v string) AttrValue { return AttrValue{kind: attrString, str: v} }

func (v AttrValue) Equal(o AttrValue) bool { return v == o }

// Value returns the dynamic Go value: bool, float64 or string.
func (v AttrValue) Value() any {
	switch v.kind {
	case attrBool:
		return v.b
	case attrNum:
		return v.num
	}
	return v.str
}

// String renders the value in reference text form.
func (v AttrValue) String() string {
	switch v.kind {
	case attrBool:
		return strconv.FormatBool(v.b)
	case attrNum:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	}
	return v.str
}

// A RefNode is one element of a parsed reference tree. Reference trees are
// immutable after parsing; a parse root is a synthetic container whose Role
// is empty and that is never matched itself.
type RefNode struct {
	role     string
	name     Pattern
	attrs    map[string]AttrValue
	text     *Pattern
	children []*RefNode
	srcLine  int
}

func (rn *RefNode) Role() string  { return rn.role }
func (rn *RefNode) Name() Pattern { return rn.name }

// Text returns the text content pattern and whether the reference declares
// one at all.
func (rn *RefNode) Text() (Pattern, bool) {
	if rn.text == nil {
		return Pattern{}, false
	}
	return *rn.text, true
}

// Attr returns the required value for an attribute key. Keys not present in
// the reference are unconstrained.
func (rn *RefNode) Attr(key string) (AttrValue, bool) {
	v, ok := rn.attrs[key]
	return v, ok
}

// AttrKeys returns the constrained attribute keys in sorted order.
func (rn *RefNode) AttrKeys() []string {
	keys := make([]string, 0, len(rn.attrs))
	for k := range rn.attrs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (rn *RefNode) Children() []*RefNode { return rn.children }

// SrcLine returns the line of the reference text this node was parsed from,
// 0 for the synthetic root.
func (rn *RefNode) SrcLine() int { return rn.srcLine }

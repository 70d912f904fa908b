package ariasnap

import "fmt"

// A PathStep locates one element on the way from the tree root to a
// divergence: the reference role and the index of the subject sibling the
// step was tried against.
type PathStep struct {
	Role  string
	Index int
}

func (s PathStep) String() string { return fmt.Sprintf("%s[%d]", s.Role, s.Index) }

// MismatchKind names the dimension on which a reference element diverged
// from the subject tree.
type MismatchKind int

const (
	MismatchNone MismatchKind = iota
	MismatchRole
	MismatchName
	MismatchAttr
	MismatchText
	// MismatchGone marks a reference element for which no subject sibling
	// remained to be tried.
	MismatchGone
)

func (k MismatchKind) String() string {
	switch k {
	case MismatchRole:
		return "role"
	case MismatchName:
		return "name"
	case MismatchAttr:
		return "attribute"
	case MismatchText:
		return "text"
	case MismatchGone:
		return "no remaining sibling"
	}
	return "none"
}

// A Mismatch describes the first point of divergence of a failed match.
type Mismatch struct {
	Kind MismatchKind
	// Key is the attribute key for MismatchAttr, "" otherwise.
	Key string
	// Want and Got carry the reference expectation and the subject value in
	// reference text form.
	Want, Got string
	// RefLine is the reference text line of the diverging element.
	RefLine int
}

// A MatchResult is the ordinary outcome of comparing a reference tree
// against a subject tree. A failed match is not an error; it carries the
// path from the root to the first divergence.
type MatchResult struct {
	OK       bool
	Path     []PathStep
	Mismatch Mismatch
}

// Match compares the children of the reference root against the children of
// the subject root. Reference children must appear as an ordered, not
// necessarily contiguous subsequence of the subject children; subject
// elements not claimed by any reference element are skipped. The same rule
// applies recursively to every matched pair.
//
// The subsequence search is greedy and never backtracks: once a reference
// element has claimed a subject element the pairing is final. This is
// linear in sibling count but can miss pairings a backtracking search would
// find when an earlier reference element claims the subject element a later
// one needs.
//
// Match is pure: it neither waits nor retries. A malformed subject tree is
// reported as a TreeError, distinct from an ordinary failed result.
func Match(ref *RefNode, subj *AXNode) (MatchResult, error) {
	if ref == nil {
		return MatchResult{}, fmt.Errorf("nil reference root")
	}
	if err := checkTree(subj); err != nil {
		return MatchResult{}, err
	}
	if res := matchSeq(ref.children, subj.Children, nil); res != nil {
		return *res, nil
	}
	return MatchResult{OK: true}, nil
}

// matchSeq runs the two-pointer subsequence match of refs against subs.
// It returns nil on success and the failed result otherwise.
func matchSeq(refs []*RefNode, subs []*AXNode, path []PathStep) *MatchResult {
	t, a := 0, 0
	var closest *MatchResult
	for t < len(refs) {
		if a >= len(subs) {
			if closest != nil {
				return closest
			}
			return &MatchResult{
				Path: pathTo(path, PathStep{Role: refs[t].role, Index: a}),
				Mismatch: Mismatch{
					Kind:    MismatchGone,
					Want:    refHead(refs[t]),
					RefLine: refs[t].srcLine,
				},
			}
		}
		res := matchNode(refs[t], subs[a], pathTo(path, PathStep{Role: refs[t].role, Index: a}))
		if res == nil {
			t++
			a++
			closest = nil
			continue
		}
		// remember the closest miss for this reference element in case the
		// subject siblings run out
		closest = res
		a++
	}
	return nil
}

// matchNode compares one reference element against one subject element,
// including their children. path already ends with the step for this pair.
func matchNode(ref *RefNode, subj *AXNode, path []PathStep) *MatchResult {
	fail := func(mm Mismatch) *MatchResult {
		mm.RefLine = ref.srcLine
		return &MatchResult{Path: path, Mismatch: mm}
	}
	if ref.role != subj.Role {
		return fail(Mismatch{Kind: MismatchRole, Want: ref.role, Got: subj.Role})
	}
	if !ref.name.Match(subj.Name) {
		return fail(Mismatch{
			Kind: MismatchName,
			Want: ref.name.String(),
			Got:  quote(normalizeSpace(subj.Name)),
		})
	}
	for _, key := range ref.AttrKeys() {
		want := ref.attrs[key]
		got, ok := subj.Attrs[key]
		if !ok {
			return fail(Mismatch{Kind: MismatchAttr, Key: key, Want: want.String()})
		}
		if !want.Equal(got) {
			return fail(Mismatch{
				Kind: MismatchAttr, Key: key,
				Want: want.String(), Got: got.String(),
			})
		}
	}
	if ref.text != nil && !ref.text.Match(subj.Text) {
		return fail(Mismatch{
			Kind: MismatchText,
			Want: ref.text.String(),
			Got:  quote(normalizeSpace(subj.Text)),
		})
	}
	return matchSeq(ref.children, subj.Children, path)
}

// pathTo extends path without sharing the backing array between siblings.
func pathTo(path []PathStep, step PathStep) []PathStep {
	res := make([]PathStep, len(path), len(path)+1)
	copy(res, path)
	return append(res, step)
}

// refHead renders the matching head of a reference element for reports.
func refHead(rn *RefNode) string {
	s := rn.role
	if !rn.name.IsAny() {
		s += " " + rn.name.String()
	}
	return s
}

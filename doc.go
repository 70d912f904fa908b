/*
Package ariasnap compares captured accessible-element trees against
reference text specifications. A reference text describes the expected
structure of a page's accessibility tree, one element per line:

	# settings page
	- heading "User Settings" [level=1]
	- list "Main Features":
	  - listitem: Feature 1
	  - listitem: Feature 2
	- button "Save"

Each line starts with '-' followed by the element role. The role may be
followed by an accessible name, either as a quoted literal or as a
slash-delimited regular expression that is searched within the name:

	# matches "Open Issues 12"
	- heading /Issues \d+/

An optional bracketed attribute list constrains element state. Values are
booleans, numbers or bare words:

	# element state
	- checkbox "Remember me" [checked=true]
	- heading "News" [level=2]

A ': text' suffix constrains the text content of an element; like names it
can be a quoted literal, a regexp or free text. A line ending in a bare ':'
just introduces the indented child lines that follow.

Children are nested by indentation. The first indented line establishes the
indentation unit for the whole reference text; every further line must be
indented by whole repetitions of that unit, one unit per nesting level.
Lines that are blank or start with '#' are ignored.

# Matching

Match compares a parsed reference against a subject tree captured from a
live page. Matching is partial in every dimension: elements without a name
pattern match any name, attribute keys not listed in the reference are
unconstrained, and subject elements that no reference line mentions are
skipped. Reference children must however appear in the subject in the
given order: the children of each reference element are matched as an
ordered subsequence of the corresponding subject children.

Names and text are whitespace normalized on both sides before comparison,
so reference texts can be wrapped freely. Roles compare verbatim.

A failed match is an ordinary MatchResult carrying the path to the first
divergence, not an error. Errors are reserved for malformed reference text
(ParseError) and malformed subject trees (TreeError).

# Recording

Snapshot renders a captured tree back into canonical reference text so a
known-good capture can be stored and used as the reference from then on.
The snaptest subpackage binds this record/compare cycle into go test, the
capture subpackage produces subject trees from a live browser page, and
cmd/ariasnap does both from the command line.
*/
package ariasnap

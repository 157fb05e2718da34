// Package literal extracts literal prefixes from pattern trees.
//
// A pattern like (foo|bar)\d necessarily begins with "foo" or "bar"; a
// prefilter can scan for those bytes and reject non-candidate lines far
// faster than running the full automaton. Extraction walks the tree left
// to right, building cross products over alternations and stopping at
// the first construct it cannot enumerate (large or negated classes,
// unbounded repetition heads).
package literal

import (
	"bytes"
	"sort"

	"github.com/coregx/rex/syntax"
)

// Extraction limits. Exceeding either collapses the sequence to
// infinite: a prefilter over a huge literal set costs more than it saves.
const (
	maxLiterals   = 64
	maxLiteralLen = 32
	maxEnumSet    = 4
)

// Literal is one literal byte sequence a match may begin with. Complete
// means matching these bytes alone is a full pattern match, not just a
// required prefix.
type Literal struct {
	Bytes    []byte
	Complete bool
}

// Seq is a set of alternative literal prefixes. The zero value is the
// exact empty-string sequence; use Infinite for "no useful information".
type Seq struct {
	lits     []Literal
	infinite bool
}

// Infinite returns the sequence conveying no information: the pattern
// may begin with anything.
func Infinite() Seq {
	return Seq{infinite: true}
}

// Exact returns a sequence holding the given complete literals.
func Exact(lits ...[]byte) Seq {
	s := Seq{lits: make([]Literal, 0, len(lits))}
	for _, b := range lits {
		s.lits = append(s.lits, Literal{Bytes: b, Complete: true})
	}
	return s
}

// IsInfinite reports whether the sequence conveys no information.
func (s Seq) IsInfinite() bool { return s.infinite }

// Len returns the number of literals. Zero for an infinite sequence.
func (s Seq) Len() int { return len(s.lits) }

// Get returns the i-th literal.
func (s Seq) Get(i int) Literal { return s.lits[i] }

// IsUsable reports whether a prefilter can be built from the sequence:
// finite, non-empty, and with no empty literal (an empty prefix would
// match every position).
func (s Seq) IsUsable() bool {
	if s.infinite || len(s.lits) == 0 {
		return false
	}
	for _, l := range s.lits {
		if len(l.Bytes) == 0 {
			return false
		}
	}
	return true
}

// IsComplete reports whether every literal is complete, so a prefilter
// hit is itself a full match and needs no verification.
func (s Seq) IsComplete() bool {
	if !s.IsUsable() {
		return false
	}
	for _, l := range s.lits {
		if !l.Complete {
			return false
		}
	}
	return true
}

// Prefixes extracts the literal prefix sequence of a pattern tree.
func Prefixes(tree *syntax.Tree) Seq {
	return minimize(prefixes(tree.Root))
}

func prefixes(n *syntax.Node) Seq {
	switch n.Op {
	case syntax.OpLiteral:
		return Exact([]byte(string(n.Rune)))

	case syntax.OpCharSet:
		if n.Negated || len(n.Set) == 0 || len(n.Set) > maxEnumSet {
			return Infinite()
		}
		bs := make([][]byte, 0, len(n.Set))
		for _, r := range n.Set {
			bs = append(bs, []byte(string(r)))
		}
		return Exact(bs...)

	case syntax.OpAnyChar:
		return Infinite()

	case syntax.OpBeginLine, syntax.OpEndLine:
		// Zero-width: contributes no bytes, but the position constraint
		// means the literals no longer stand for the whole match.
		return inexact(Seq{lits: []Literal{{}}})

	case syntax.OpConcat:
		seq := Seq{lits: []Literal{{Complete: true}}}
		for _, sub := range n.Sub {
			seq = cross(seq, prefixes(sub))
			if seq.infinite || !anyComplete(seq) {
				break
			}
		}
		return seq

	case syntax.OpAlternate:
		var out Seq
		for _, sub := range n.Sub {
			out = union(out, prefixes(sub))
			if out.infinite {
				break
			}
		}
		return out

	case syntax.OpCapture:
		return prefixes(n.Sub[0])

	case syntax.OpRepeat:
		if n.Min == 0 {
			// The repetition may contribute nothing, so the prefix of
			// whatever follows would be needed; handled by cross on the
			// enclosing concat only if we report "anything here".
			return Infinite()
		}
		one := prefixes(n.Sub[0])
		if n.Min == n.Max && n.Min == 1 {
			return one
		}
		// One mandatory iteration is a valid prefix; further
		// iterations make it incomplete.
		return inexact(one)

	default:
		return Infinite()
	}
}

// cross concatenates every complete literal of a with every literal of
// b. Incomplete literals of a cannot be extended and pass through.
func cross(a, b Seq) Seq {
	if a.infinite {
		return a
	}
	if b.infinite {
		return inexact(a)
	}

	var out []Literal
	for _, la := range a.lits {
		if !la.Complete {
			out = append(out, la)
			continue
		}
		for _, lb := range b.lits {
			joined := make([]byte, 0, len(la.Bytes)+len(lb.Bytes))
			joined = append(joined, la.Bytes...)
			joined = append(joined, lb.Bytes...)
			lit := Literal{Bytes: joined, Complete: lb.Complete}
			if len(joined) > maxLiteralLen {
				lit.Bytes = joined[:maxLiteralLen]
				lit.Complete = false
			}
			out = append(out, lit)
			if len(out) > maxLiterals {
				return Infinite()
			}
		}
	}
	return Seq{lits: out}
}

func union(a, b Seq) Seq {
	if a.infinite || b.infinite {
		return Infinite()
	}
	if len(a.lits)+len(b.lits) > maxLiterals {
		return Infinite()
	}
	out := make([]Literal, 0, len(a.lits)+len(b.lits))
	out = append(out, a.lits...)
	out = append(out, b.lits...)
	return Seq{lits: out}
}

func inexact(s Seq) Seq {
	if s.infinite {
		return s
	}
	out := make([]Literal, len(s.lits))
	for i, l := range s.lits {
		out[i] = Literal{Bytes: l.Bytes, Complete: false}
	}
	return Seq{lits: out}
}

func anyComplete(s Seq) bool {
	for _, l := range s.lits {
		if l.Complete {
			return true
		}
	}
	return false
}

// minimize sorts and deduplicates, dropping literals that have another
// literal as an incomplete prefix (scanning for the prefix suffices).
func minimize(s Seq) Seq {
	if s.infinite || len(s.lits) == 0 {
		return s
	}
	lits := make([]Literal, len(s.lits))
	copy(lits, s.lits)
	sort.Slice(lits, func(i, j int) bool {
		return bytes.Compare(lits[i].Bytes, lits[j].Bytes) < 0
	})

	out := lits[:0]
	for _, l := range lits {
		if n := len(out); n > 0 {
			prev := out[n-1]
			if bytes.Equal(prev.Bytes, l.Bytes) {
				// Complete only if every duplicate was complete;
				// otherwise a hit still needs verification.
				out[n-1].Complete = prev.Complete && l.Complete
				continue
			}
			if !prev.Complete && bytes.HasPrefix(l.Bytes, prev.Bytes) {
				continue
			}
		}
		out = append(out, l)
	}
	return Seq{lits: out}
}

// Package rex is a small regular-expression engine with predictable
// worst-case behavior.
//
// Patterns are parsed into a tree (package syntax), lowered into a flat
// match program (package nfa), and executed by a Pike VM that simulates
// all viable threads breadth-first. Matching cost is bounded by
// O(pattern × input) regardless of how ambiguous the pattern is, so
// there are no pathological backtracking blowups.
//
// The dialect is deliberately minimal and self-consistent rather than
// compatible with PCRE or POSIX; see package syntax for the grammar.
// Alternation is leftmost-first: in (foo|foobar) the first branch wins
// even when the second would match more.
//
// Basic usage:
//
//	re, err := rex.Compile(`f(?<wut>o){2}`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	m := re.Find([]byte("afoobar"))
//	if m != nil {
//	    span, ok := m.Named("wut")
//	    fmt.Println(m.Start, m.End, span, ok) // 1 4 {3 4} true
//	}
//
// A compiled Regex is immutable and safe for concurrent use; every
// match invocation allocates its own thread state.
package rex

import (
	"unicode/utf8"

	"github.com/coregx/rex/literal"
	"github.com/coregx/rex/nfa"
	"github.com/coregx/rex/syntax"
)

// Regex is a compiled regular expression.
type Regex struct {
	pattern  string
	prog     *nfa.Program
	vm       *nfa.PikeVM
	prefixes literal.Seq
}

// Compile parses and compiles a pattern. A malformed pattern returns a
// *syntax.Error carrying the byte offset of the offending construct.
func Compile(pattern string) (*Regex, error) {
	tree, err := syntax.Parse(pattern)
	if err != nil {
		return nil, err
	}

	prog := nfa.Compile(tree)
	return &Regex{
		pattern:  pattern,
		prog:     prog,
		vm:       nfa.NewPikeVM(prog),
		prefixes: literal.Prefixes(tree),
	}, nil
}

// MustCompile is like Compile but panics on error. Useful for patterns
// known to be valid at compile time.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("rex: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// String returns the source pattern.
func (re *Regex) String() string {
	return re.pattern
}

// NumGroups returns the number of capturing groups, excluding the
// implicit whole-match group 0.
func (re *Regex) NumGroups() int {
	return re.prog.NumGroups()
}

// SubexpNames returns the capture-index → name table. Index 0 is always
// ""; unnamed groups have "". The returned slice must not be modified.
func (re *Regex) SubexpNames() []string {
	return re.prog.SubexpNames()
}

// Prefixes returns the literal prefixes extracted from the pattern, for
// prefilter construction over sets of patterns.
func (re *Regex) Prefixes() literal.Seq {
	return re.prefixes
}

// Program returns the compiled match program.
func (re *Regex) Program() *nfa.Program {
	return re.prog
}

// Match reports whether the pattern matches anywhere in line.
func (re *Regex) Match(line []byte) bool {
	return re.vm.IsMatch(line)
}

// MatchString is Match for a string input.
func (re *Regex) MatchString(s string) bool {
	return re.Match([]byte(s))
}

// Find returns the leftmost match in line, or nil if there is none.
func (re *Regex) Find(line []byte) *Match {
	return re.findFrom(line, 0)
}

// FindString is Find for a string input. Spans index the string's bytes.
func (re *Regex) FindString(s string) *Match {
	return re.Find([]byte(s))
}

// FindAll returns all successive non-overlapping matches in line, in
// order. An empty match immediately after a previous match is skipped;
// empty matches elsewhere advance the search by one character, so the
// scan always terminates.
func (re *Regex) FindAll(line []byte) []*Match {
	var out []*Match
	pos := 0
	prevEnd := -1
	for pos <= len(line) {
		m := re.findFrom(line, pos)
		if m == nil {
			break
		}

		if m.Start == m.End && m.Start == prevEnd {
			if m.End >= len(line) {
				break
			}
			_, w := utf8.DecodeRune(line[m.End:])
			pos = m.End + w
			continue
		}

		out = append(out, m)
		prevEnd = m.End
		switch {
		case m.End > pos:
			pos = m.End
		case pos < len(line):
			_, w := utf8.DecodeRune(line[pos:])
			pos += w
		default:
			return out
		}
	}
	return out
}

func (re *Regex) findFrom(line []byte, start int) *Match {
	slots, ok := re.vm.SearchFrom(line, start)
	if !ok {
		return nil
	}
	return &Match{
		Span:  Span{Start: slots[0], End: slots[1]},
		slots: slots,
		names: re.prog.SubexpNames(),
	}
}

// Span is a half-open [Start, End) byte range over the input line.
type Span struct {
	Start, End int
}

// Len returns the span length in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// Match is one successful match: the whole-match span plus the spans of
// every capturing group.
type Match struct {
	Span

	slots []int
	names []string
}

// NumGroups returns the number of capturing groups in the pattern.
func (m *Match) NumGroups() int {
	return len(m.slots)/2 - 1
}

// Group returns the span captured by group i (group 0 is the whole
// match). ok is false when the group is out of range or its branch never
// executed, such as the unmatched side of an alternation.
func (m *Match) Group(i int) (Span, bool) {
	if i < 0 || 2*i+1 >= len(m.slots) {
		return Span{}, false
	}
	start, end := m.slots[2*i], m.slots[2*i+1]
	if start < 0 || end < 0 {
		return Span{}, false
	}
	return Span{Start: start, End: end}, true
}

// Named returns the span captured by the group with the given name.
// ok is false for unknown names and for groups that never executed.
func (m *Match) Named(name string) (Span, bool) {
	if name == "" {
		return Span{}, false
	}
	for i, n := range m.names {
		if n == name {
			return m.Group(i)
		}
	}
	return Span{}, false
}

// GroupName returns the name of group i, or "" if it is unnamed or out
// of range.
func (m *Match) GroupName(i int) string {
	if i < 0 || i >= len(m.names) {
		return ""
	}
	return m.names[i]
}

// Text returns the bytes of line covered by group i, or nil when the
// group never executed. line must be the input the match was produced
// from.
func (m *Match) Text(line []byte, i int) []byte {
	span, ok := m.Group(i)
	if !ok {
		return nil
	}
	return line[span.Start:span.End]
}

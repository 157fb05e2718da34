// Package nfa lowers pattern trees into flat match programs and executes
// them with a Pike VM.
//
// A Program is an ordered sequence of instructions with explicit numeric
// addresses. Consuming instructions (Char, Any, Class) advance the input
// cursor by one character; everything else is zero-width. The matcher
// simulates all viable threads through the program breadth-first, so
// matching cost is bounded by O(program length × input length) no matter
// how ambiguous the pattern is.
//
// Programs are immutable after compilation and safe to share across
// goroutines; each search allocates its own thread state.
package nfa

import (
	"fmt"
	"sort"
	"strings"
)

// OpCode identifies the instruction type.
type OpCode uint8

const (
	// OpChar consumes one character iff it equals R.
	OpChar OpCode = iota

	// OpAny consumes any one character.
	OpAny

	// OpClass consumes one character iff it is (or, if Negated, is not)
	// a member of Set.
	OpClass

	// OpSplit branches to every address in Targets. Target order is
	// thread priority order: earlier targets are preferred, which is
	// what realizes leftmost-first alternation and greedy repetition.
	OpSplit

	// OpJmp transfers control to To.
	OpJmp

	// OpSave records the current input offset in capture slot Slot.
	OpSave

	// OpAssertBegin fails the thread unless the cursor is at line start.
	OpAssertBegin

	// OpAssertEnd fails the thread unless the cursor is at line end.
	OpAssertEnd

	// OpMatch reports a complete match.
	OpMatch
)

// String returns a human-readable instruction name.
func (op OpCode) String() string {
	switch op {
	case OpChar:
		return "char"
	case OpAny:
		return "any"
	case OpClass:
		return "class"
	case OpSplit:
		return "split"
	case OpJmp:
		return "jmp"
	case OpSave:
		return "save"
	case OpAssertBegin:
		return "assert-begin"
	case OpAssertEnd:
		return "assert-end"
	case OpMatch:
		return "match"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(op))
	}
}

// Inst is a single program instruction. Which fields are meaningful is
// determined by Op.
type Inst struct {
	Op OpCode

	R rune // OpChar

	Set     []rune // OpClass: sorted members
	Negated bool   // OpClass

	Targets []uint32 // OpSplit: branch addresses in priority order
	To      uint32   // OpJmp
	Slot    int      // OpSave
}

// matchClass reports whether r is accepted by an OpClass instruction.
func (in *Inst) matchClass(r rune) bool {
	i := sort.Search(len(in.Set), func(i int) bool { return in.Set[i] >= r })
	member := i < len(in.Set) && in.Set[i] == r
	return member != in.Negated
}

// Program is a compiled pattern: the instruction sequence plus capture
// bookkeeping. It is immutable after compilation.
type Program struct {
	insts []Inst

	// slots is the capture slot count: 2 × (groups + 1). Slots 0 and 1
	// hold the whole-match start and end offsets.
	slots int

	// names maps capture index to group name; names[0] is "".
	names []string

	// anchoredStart is true when every match must begin at offset 0,
	// i.e. the pattern provably starts with a line-start anchor.
	anchoredStart bool
}

// Len returns the number of instructions.
func (p *Program) Len() int {
	return len(p.insts)
}

// Inst returns the instruction at address pc.
func (p *Program) Inst(pc uint32) *Inst {
	return &p.insts[pc]
}

// Slots returns the capture slot count, 2 × (groups + 1).
func (p *Program) Slots() int {
	return p.slots
}

// NumGroups returns the number of capturing groups, excluding the
// implicit whole-match group 0.
func (p *Program) NumGroups() int {
	return p.slots/2 - 1
}

// SubexpNames returns the group-index → name table. Index 0 is always
// "". The returned slice must not be modified.
func (p *Program) SubexpNames() []string {
	return p.names
}

// AnchoredStart reports whether matches can only begin at offset 0.
func (p *Program) AnchoredStart() bool {
	return p.anchoredStart
}

// String renders the program as one instruction per line, for debugging.
func (p *Program) String() string {
	var b strings.Builder
	for pc := range p.insts {
		in := &p.insts[pc]
		fmt.Fprintf(&b, "%3d  %s", pc, in.Op)
		switch in.Op {
		case OpChar:
			fmt.Fprintf(&b, " %q", in.R)
		case OpClass:
			b.WriteString(" [")
			if in.Negated {
				b.WriteByte('^')
			}
			for _, r := range in.Set {
				b.WriteRune(r)
			}
			b.WriteByte(']')
		case OpSplit:
			for i, t := range in.Targets {
				if i > 0 {
					b.WriteByte(',')
				}
				fmt.Fprintf(&b, " %d", t)
			}
		case OpJmp:
			fmt.Fprintf(&b, " %d", in.To)
		case OpSave:
			fmt.Fprintf(&b, " %d", in.Slot)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

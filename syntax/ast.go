// Package syntax parses regular expression patterns into pattern trees.
//
// The dialect is deliberately small and self-consistent rather than
// compatible with any existing flavor:
//
//	a          literal character
//	\x         escaped literal (suppresses any special meaning of x)
//	.          any single character
//	[abc]      character set; [^abc] negated set (literal enumeration only)
//	^  $       line-start / line-end anchors (positional, see Parse)
//	(re)       capturing group, indexed left to right from 1
//	(?<name>re) named capturing group
//	(?:re)     non-capturing group
//	re|re      alternation, leftmost-first
//	re*        zero or more (greedy)
//	re+        one or more (greedy)
//	re?        zero or one (greedy)
//	re{m}      exactly m repetitions
//	re{m,}     m or more repetitions (greedy)
//	re{m,n}    m through n repetitions (greedy)
//
// Parsing produces an immutable Tree of tagged Node variants. The tree is
// consumed by package nfa, which lowers it into an executable program.
package syntax

import (
	"fmt"
	"sort"
	"strings"
)

// Op identifies the variant of a pattern tree node.
type Op uint8

const (
	// OpLiteral matches exactly one character (field Rune).
	OpLiteral Op = iota

	// OpAnyChar matches any single character.
	OpAnyChar

	// OpCharSet matches one character that is (or, if Negated, is not)
	// a member of Set.
	OpCharSet

	// OpBeginLine is a zero-width assertion matching only at line start.
	OpBeginLine

	// OpEndLine is a zero-width assertion matching only at line end.
	OpEndLine

	// OpConcat matches the Sub nodes in order.
	OpConcat

	// OpAlternate matches if any Sub node matches; branches are tried
	// left to right and the first successful branch wins.
	OpAlternate

	// OpCapture is a group around Sub[0]. Index is 0 for non-capturing
	// groups, otherwise the 1-based capture index. Name is the group
	// name, or "" for unnamed groups.
	OpCapture

	// OpRepeat matches Sub[0] between Min and Max times (greedy).
	// Max == -1 means unbounded.
	OpRepeat
)

// String returns a human-readable representation of the Op.
func (op Op) String() string {
	switch op {
	case OpLiteral:
		return "Literal"
	case OpAnyChar:
		return "AnyChar"
	case OpCharSet:
		return "CharSet"
	case OpBeginLine:
		return "BeginLine"
	case OpEndLine:
		return "EndLine"
	case OpConcat:
		return "Concat"
	case OpAlternate:
		return "Alternate"
	case OpCapture:
		return "Capture"
	case OpRepeat:
		return "Repeat"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(op))
	}
}

// Node is a single pattern tree node. Which fields are meaningful is
// determined by Op. Nodes are never mutated after Parse returns.
type Node struct {
	Op  Op
	Sub []*Node // OpConcat, OpAlternate: children; OpCapture, OpRepeat: Sub[0]

	Rune rune // OpLiteral

	Set     []rune // OpCharSet: sorted, deduplicated members
	Negated bool   // OpCharSet

	Min, Max int // OpRepeat; Max == -1 means unbounded

	Index int    // OpCapture: 1-based capture index, 0 if non-capturing
	Name  string // OpCapture: group name, "" if unnamed
}

// SetContains reports whether r is accepted by an OpCharSet node,
// honoring negation.
func (n *Node) SetContains(r rune) bool {
	i := sort.Search(len(n.Set), func(i int) bool { return n.Set[i] >= r })
	member := i < len(n.Set) && n.Set[i] == r
	return member != n.Negated
}

// Tree is the result of parsing one pattern: the root node plus the
// capture-group bookkeeping shared by the compiler and matcher.
type Tree struct {
	Root *Node

	// NumGroups is the number of capturing groups (named or not),
	// excluding the implicit whole-match group 0.
	NumGroups int

	// Names maps capture index to group name. Names[0] is always ""
	// (the whole match); unnamed groups have "".
	Names []string
}

// String renders the tree in a compact prefix form, for debugging.
func (t *Tree) String() string {
	var b strings.Builder
	writeNode(&b, t.Root)
	return b.String()
}

func writeNode(b *strings.Builder, n *Node) {
	switch n.Op {
	case OpLiteral:
		fmt.Fprintf(b, "lit{%c}", n.Rune)
	case OpAnyChar:
		b.WriteString("any{}")
	case OpCharSet:
		b.WriteString("set{")
		if n.Negated {
			b.WriteByte('^')
		}
		for _, r := range n.Set {
			b.WriteRune(r)
		}
		b.WriteByte('}')
	case OpBeginLine:
		b.WriteString("bol{}")
	case OpEndLine:
		b.WriteString("eol{}")
	case OpConcat, OpAlternate:
		if n.Op == OpConcat {
			b.WriteString("cat{")
		} else {
			b.WriteString("alt{")
		}
		for i, sub := range n.Sub {
			if i > 0 {
				b.WriteByte(',')
			}
			writeNode(b, sub)
		}
		b.WriteByte('}')
	case OpCapture:
		if n.Index == 0 {
			b.WriteString("group{")
		} else if n.Name != "" {
			fmt.Fprintf(b, "cap%d<%s>{", n.Index, n.Name)
		} else {
			fmt.Fprintf(b, "cap%d{", n.Index)
		}
		writeNode(b, n.Sub[0])
		b.WriteByte('}')
	case OpRepeat:
		b.WriteString("rep{")
		writeNode(b, n.Sub[0])
		if n.Max < 0 {
			fmt.Fprintf(b, ",%d,}", n.Min)
		} else {
			fmt.Fprintf(b, ",%d,%d}", n.Min, n.Max)
		}
	}
}

package nfa

import (
	"fmt"

	"github.com/coregx/rex/internal/conv"
	"github.com/coregx/rex/syntax"
)

// Compile lowers a pattern tree into a match program.
//
// Compilation is a deterministic, pure transformation and never fails:
// all user-facing failure modes are parse-time. A tree violating the
// parser's invariants (such as an out-of-range capture index) panics.
//
// Each tree node lowers to a contiguous instruction range. The whole
// program is wrapped in save instructions for slots 0 and 1 (the
// whole-match span) and terminated by a match instruction.
func Compile(tree *syntax.Tree) *Program {
	c := &compiler{slots: 2 * (tree.NumGroups + 1)}

	c.emit(Inst{Op: OpSave, Slot: 0})
	c.node(tree.Root)
	c.emit(Inst{Op: OpSave, Slot: 1})
	c.emit(Inst{Op: OpMatch})

	names := make([]string, len(tree.Names))
	copy(names, tree.Names)

	return &Program{
		insts:         c.insts,
		slots:         c.slots,
		names:         names,
		anchoredStart: startAnchored(tree.Root),
	}
}

type compiler struct {
	insts []Inst
	slots int
}

// pc returns the address the next emitted instruction will have.
func (c *compiler) pc() uint32 {
	return conv.IntToUint32(len(c.insts))
}

// emit appends an instruction and returns its address.
func (c *compiler) emit(in Inst) uint32 {
	pc := c.pc()
	c.insts = append(c.insts, in)
	return pc
}

func (c *compiler) node(n *syntax.Node) {
	switch n.Op {
	case syntax.OpLiteral:
		c.emit(Inst{Op: OpChar, R: n.Rune})

	case syntax.OpAnyChar:
		c.emit(Inst{Op: OpAny})

	case syntax.OpCharSet:
		set := make([]rune, len(n.Set))
		copy(set, n.Set)
		c.emit(Inst{Op: OpClass, Set: set, Negated: n.Negated})

	case syntax.OpBeginLine:
		c.emit(Inst{Op: OpAssertBegin})

	case syntax.OpEndLine:
		c.emit(Inst{Op: OpAssertEnd})

	case syntax.OpConcat:
		for _, sub := range n.Sub {
			c.node(sub)
		}

	case syntax.OpAlternate:
		c.alternate(n.Sub)

	case syntax.OpCapture:
		if n.Index == 0 {
			// Non-capturing group: pure grouping, no save slots.
			c.node(n.Sub[0])
			return
		}
		if 2*n.Index+1 >= c.slots {
			panic(fmt.Sprintf("nfa: capture index %d out of range", n.Index))
		}
		c.emit(Inst{Op: OpSave, Slot: 2 * n.Index})
		c.node(n.Sub[0])
		c.emit(Inst{Op: OpSave, Slot: 2*n.Index + 1})

	case syntax.OpRepeat:
		c.repeat(n)

	default:
		panic(fmt.Sprintf("nfa: unknown pattern node %v", n.Op))
	}
}

// alternate emits a split with one target per branch, in source order so
// thread priority realizes leftmost-first semantics. Every branch but
// the last ends in a jump to the shared continuation address.
func (c *compiler) alternate(branches []*syntax.Node) {
	if len(branches) == 1 {
		c.node(branches[0])
		return
	}

	split := c.emit(Inst{Op: OpSplit})
	targets := make([]uint32, 0, len(branches))
	var jmps []uint32

	for i, br := range branches {
		targets = append(targets, c.pc())
		c.node(br)
		if i < len(branches)-1 {
			jmps = append(jmps, c.emit(Inst{Op: OpJmp}))
		}
	}

	end := c.pc()
	c.insts[split].Targets = targets
	for _, j := range jmps {
		c.insts[j].To = end
	}
}

// repeat lowers {min,max}. The mandatory min copies are emitted in
// sequence. An unbounded tail becomes a split loop whose continue branch
// comes first (greedy). A bounded tail becomes max-min nested optionals,
// each preferring to take one more repetition, with every exit jumping
// past the remaining optional copies.
func (c *compiler) repeat(n *syntax.Node) {
	inner := n.Sub[0]

	for i := 0; i < n.Min; i++ {
		c.node(inner)
	}

	switch {
	case n.Max < 0:
		loop := c.emit(Inst{Op: OpSplit})
		c.node(inner)
		c.emit(Inst{Op: OpJmp, To: loop})
		c.insts[loop].Targets = []uint32{loop + 1, c.pc()}

	case n.Max > n.Min:
		splits := make([]uint32, 0, n.Max-n.Min)
		for i := 0; i < n.Max-n.Min; i++ {
			splits = append(splits, c.emit(Inst{Op: OpSplit}))
			c.node(inner)
		}
		end := c.pc()
		for _, s := range splits {
			c.insts[s].Targets = []uint32{s + 1, end}
		}
	}
	// min == max: nothing beyond the mandatory copies.
}

// startAnchored reports whether every path through the pattern begins
// with a line-start anchor. Conservative: false negatives only cost the
// matcher extra start offsets, the assertion itself is still enforced.
func startAnchored(n *syntax.Node) bool {
	switch n.Op {
	case syntax.OpBeginLine:
		return true
	case syntax.OpCapture:
		return startAnchored(n.Sub[0])
	case syntax.OpConcat:
		return len(n.Sub) > 0 && startAnchored(n.Sub[0])
	case syntax.OpAlternate:
		for _, sub := range n.Sub {
			if !startAnchored(sub) {
				return false
			}
		}
		return len(n.Sub) > 0
	case syntax.OpRepeat:
		return n.Min > 0 && startAnchored(n.Sub[0])
	default:
		return false
	}
}

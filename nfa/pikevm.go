package nfa

import (
	"unicode/utf8"

	"github.com/coregx/rex/internal/conv"
	"github.com/coregx/rex/internal/sparse"
)

// PikeVM executes a Program by breadth-first thread simulation.
//
// One matching attempt is made per possible start offset, offset 0
// first; the first offset that produces a match wins, which gives
// unanchored leftmost search. Within one attempt the VM alternates an
// epsilon-closure phase (follow zero-width instructions, deduplicating
// threads per program counter) with a consume phase (advance surviving
// threads over one character). Split targets are explored in priority
// order and the dedup keeps the first thread reaching an address, so
// alternation is leftmost-first and repetition greedy-first.
//
// The PikeVM itself holds no mutable search state: the Program is
// immutable and every Search call allocates its own thread lists and
// capture slots, so one PikeVM may be used from many goroutines.
type PikeVM struct {
	prog *Program
}

// NewPikeVM creates a PikeVM for the given program.
func NewPikeVM(prog *Program) *PikeVM {
	return &PikeVM{prog: prog}
}

// thread is one exploration path: a program counter plus the capture
// slots observed on the way there. Slot arrays are never written after
// creation (saves clone first), so threads may safely share them.
type thread struct {
	pc    uint32
	slots []int
}

type threadList struct {
	seen  *sparse.Set
	dense []thread
}

func (l *threadList) clear() {
	l.seen.Clear()
	l.dense = l.dense[:0]
}

// searchState is the per-search scratch space: two thread generations
// and the explicit stack used for iterative epsilon closure.
type searchState struct {
	clist, nlist *threadList
	stack        []thread
}

func (v *PikeVM) newState() *searchState {
	n := conv.IntToUint32(v.prog.Len())
	return &searchState{
		clist: &threadList{seen: sparse.New(n), dense: make([]thread, 0, n)},
		nlist: &threadList{seen: sparse.New(n), dense: make([]thread, 0, n)},
		stack: make([]thread, 0, n),
	}
}

// Search finds the leftmost match in line. On success it returns the
// winning thread's capture slots (a private copy; -1 marks unset slots,
// slots 0 and 1 are the whole-match span) and true.
func (v *PikeVM) Search(line []byte) ([]int, bool) {
	return v.SearchFrom(line, 0)
}

// SearchFrom finds the leftmost match beginning at or after byte offset
// start. start must lie on a character boundary.
func (v *PikeVM) SearchFrom(line []byte, start int) ([]int, bool) {
	st := v.newState()

	if v.prog.AnchoredStart() {
		if start > 0 {
			return nil, false
		}
		return v.searchAt(st, line, 0)
	}

	for pos := start; ; {
		if slots, ok := v.searchAt(st, line, pos); ok {
			return slots, true
		}
		if pos >= len(line) {
			return nil, false
		}
		_, w := utf8.DecodeRune(line[pos:])
		pos += w
	}
}

// IsMatch reports whether the pattern matches anywhere in line.
func (v *PikeVM) IsMatch(line []byte) bool {
	_, ok := v.Search(line)
	return ok
}

// searchAt runs one matching attempt with the match forced to begin at
// start. It returns the capture slots of the highest-priority match.
//
// When a thread reaches the match instruction, all lower-priority
// threads of that generation are discarded, but surviving
// higher-priority threads keep running and may replace the recorded
// result with a longer one. That is exactly greedy-first: the final
// result is the match a leftmost-preferred backtracker would find.
func (v *PikeVM) searchAt(st *searchState, line []byte, start int) ([]int, bool) {
	clist, nlist := st.clist, st.nlist
	clist.clear()

	slots := make([]int, v.prog.slots)
	for i := range slots {
		slots[i] = -1
	}
	v.addThread(st, clist, 0, slots, line, start)

	var matched []int
	pos := start
	for len(clist.dense) > 0 {
		var r rune
		width := 0
		if pos < len(line) {
			r, width = utf8.DecodeRune(line[pos:])
		}
		nlist.clear()

	threads:
		for i := range clist.dense {
			t := clist.dense[i]
			inst := v.prog.Inst(t.pc)
			switch inst.Op {
			case OpMatch:
				matched = cloneSlots(t.slots)
				// Threads after this one are lower priority; drop them.
				break threads
			case OpChar:
				if width > 0 && r == inst.R {
					v.addThread(st, nlist, t.pc+1, t.slots, line, pos+width)
				}
			case OpAny:
				if width > 0 {
					v.addThread(st, nlist, t.pc+1, t.slots, line, pos+width)
				}
			case OpClass:
				if width > 0 && inst.matchClass(r) {
					v.addThread(st, nlist, t.pc+1, t.slots, line, pos+width)
				}
			}
		}

		clist, nlist = nlist, clist
		if pos >= len(line) {
			break
		}
		pos += width
	}

	return matched, matched != nil
}

// addThread adds the epsilon closure of pc to list, using an explicit
// stack rather than recursion so closure depth is independent of the
// call stack. Stack order preserves priority: split targets are pushed
// in reverse so the first target's entire closure is explored first,
// and list.seen keeps only the first thread reaching each address.
//
// Capture ownership: save instructions clone the slot array before
// writing, so a fork at a split never aliases a writable array between
// threads.
func (v *PikeVM) addThread(st *searchState, list *threadList, pc uint32, slots []int, line []byte, pos int) {
	st.stack = append(st.stack[:0], thread{pc, slots})

	for len(st.stack) > 0 {
		f := st.stack[len(st.stack)-1]
		st.stack = st.stack[:len(st.stack)-1]

		if !list.seen.Insert(f.pc) {
			continue
		}

		inst := v.prog.Inst(f.pc)
		switch inst.Op {
		case OpJmp:
			st.stack = append(st.stack, thread{inst.To, f.slots})

		case OpSplit:
			for i := len(inst.Targets) - 1; i >= 0; i-- {
				st.stack = append(st.stack, thread{inst.Targets[i], f.slots})
			}

		case OpSave:
			ns := cloneSlots(f.slots)
			ns[inst.Slot] = pos
			st.stack = append(st.stack, thread{f.pc + 1, ns})

		case OpAssertBegin:
			if pos == 0 {
				st.stack = append(st.stack, thread{f.pc + 1, f.slots})
			}

		case OpAssertEnd:
			if pos == len(line) {
				st.stack = append(st.stack, thread{f.pc + 1, f.slots})
			}

		default:
			// Consume or match instruction: ready for the next phase.
			list.dense = append(list.dense, thread{f.pc, f.slots})
		}
	}
}

func cloneSlots(slots []int) []int {
	out := make([]int, len(slots))
	copy(out, slots)
	return out
}

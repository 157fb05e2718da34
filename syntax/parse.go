package syntax

import (
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Parse converts a pattern string into a pattern tree.
//
// Parsing is a single left-to-right pass with no lookahead beyond the
// current and next character, except that a {...} or [...] span is
// scanned to its closing delimiter. A malformed pattern returns a
// *Error carrying the byte offset of the offending construct; no
// partial tree is ever produced.
//
// Positional rules for anchors: ^ is a line-start anchor only at the
// start of the pattern or immediately after ( or |; $ is a line-end
// anchor only at the end of the pattern or immediately before ) or |.
// Anywhere else both are ordinary literals.
//
// Inside [...] a leading ^ negates the set, \ escapes the next
// character, and an unescaped ] always closes the set. An unmatched ]
// or } outside its construct is an ordinary literal.
func Parse(pattern string) (*Tree, error) {
	p := &parser{
		pattern: pattern,
		names:   []string{""},
		nameSet: make(map[string]struct{}),
	}

	root, err := p.parseAlternate()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.pattern) {
		// parseAlternate only stops early on ')'.
		return nil, p.errorAt(ErrUnbalancedParen, p.pos)
	}

	return &Tree{
		Root:      root,
		NumGroups: p.numGroups,
		Names:     p.names,
	}, nil
}

type parser struct {
	pattern   string
	pos       int // byte offset of the next unread character
	numGroups int
	names     []string
	nameSet   map[string]struct{}
}

func (p *parser) errorAt(code ErrorCode, pos int) *Error {
	return &Error{Code: code, Pattern: p.pattern, Pos: pos}
}

// peek returns the next rune without consuming it. Callers must check
// p.pos < len(p.pattern) first.
func (p *parser) peek() (rune, int) {
	return utf8.DecodeRuneInString(p.pattern[p.pos:])
}

// parseAlternate parses a |-separated list of branches at the current
// nesting level. It stops, without consuming, at ')' or end of input.
func (p *parser) parseAlternate() (*Node, error) {
	first, err := p.parseConcat()
	if err != nil {
		return nil, err
	}

	if p.pos >= len(p.pattern) {
		return first, nil
	}
	if r, _ := p.peek(); r != '|' {
		return first, nil
	}

	branches := []*Node{first}
	for p.pos < len(p.pattern) {
		r, w := p.peek()
		if r != '|' {
			break
		}
		p.pos += w

		branch, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		branches = append(branches, branch)
	}

	return &Node{Op: OpAlternate, Sub: branches}, nil
}

// parseConcat parses one alternation branch: the implicit concatenation
// of units up to the next '|', ')' or end of input.
func (p *parser) parseConcat() (*Node, error) {
	var units []*Node

	for p.pos < len(p.pattern) {
		r, w := p.peek()

		switch r {
		case '|', ')':
			return concat(units), nil

		case '^':
			p.pos += w
			if len(units) == 0 {
				units = append(units, &Node{Op: OpBeginLine})
			} else {
				units = append(units, &Node{Op: OpLiteral, Rune: '^'})
			}

		case '$':
			p.pos += w
			if p.atBranchEnd() {
				units = append(units, &Node{Op: OpEndLine})
			} else {
				units = append(units, &Node{Op: OpLiteral, Rune: '$'})
			}

		case '.':
			p.pos += w
			units = append(units, &Node{Op: OpAnyChar})

		case '*', '+', '?':
			opPos := p.pos
			p.pos += w
			min, max := 0, -1
			switch r {
			case '+':
				min = 1
			case '?':
				max = 1
			}
			next, err := p.applyRepeat(units, min, max, opPos)
			if err != nil {
				return nil, err
			}
			units = next

		case '{':
			opPos := p.pos
			min, max, err := p.parseRepeatBounds()
			if err != nil {
				return nil, err
			}
			next, err := p.applyRepeat(units, min, max, opPos)
			if err != nil {
				return nil, err
			}
			units = next

		case '[':
			set, err := p.parseCharSet()
			if err != nil {
				return nil, err
			}
			units = append(units, set)

		case '(':
			group, err := p.parseGroup()
			if err != nil {
				return nil, err
			}
			units = append(units, group)

		case '\\':
			lit, err := p.parseEscape()
			if err != nil {
				return nil, err
			}
			units = append(units, lit)

		default:
			p.pos += w
			units = append(units, &Node{Op: OpLiteral, Rune: r})
		}
	}

	return concat(units), nil
}

// atBranchEnd reports whether the parser sits at the end of an
// alternation branch: end of input, or just before ')' or '|'.
func (p *parser) atBranchEnd() bool {
	if p.pos >= len(p.pattern) {
		return true
	}
	r, _ := p.peek()
	return r == ')' || r == '|'
}

// applyRepeat wraps the last parsed unit in an OpRepeat node. The last
// unit must be repeatable: anchors and other repetitions are not.
func (p *parser) applyRepeat(units []*Node, min, max int, opPos int) ([]*Node, error) {
	if len(units) == 0 {
		return nil, p.errorAt(ErrInvalidRepetitionTarget, opPos)
	}
	last := units[len(units)-1]
	switch last.Op {
	case OpBeginLine, OpEndLine, OpRepeat:
		return nil, p.errorAt(ErrInvalidRepetitionTarget, opPos)
	}

	units[len(units)-1] = &Node{Op: OpRepeat, Sub: []*Node{last}, Min: min, Max: max}
	return units, nil
}

// parseRepeatBounds scans a {m}, {m,} or {m,n} span. The opening '{' is
// at p.pos. Returns max == -1 for an open upper bound.
func (p *parser) parseRepeatBounds() (min, max int, err error) {
	opPos := p.pos
	end := strings.IndexByte(p.pattern[p.pos:], '}')
	if end < 0 {
		return 0, 0, p.errorAt(ErrInvalidRepetitionBounds, opPos)
	}
	body := p.pattern[p.pos+1 : p.pos+end]
	p.pos += end + 1

	badBounds := func() (int, int, error) {
		return 0, 0, p.errorAt(ErrInvalidRepetitionBounds, opPos)
	}

	lo, hi, hasComma := body, "", false
	if i := strings.IndexByte(body, ','); i >= 0 {
		lo, hi, hasComma = body[:i], body[i+1:], true
	}

	min, err = strconv.Atoi(lo)
	if err != nil || min < 0 {
		return badBounds()
	}

	switch {
	case !hasComma:
		max = min
	case hi == "":
		max = -1
	default:
		max, err = strconv.Atoi(hi)
		if err != nil || max < min {
			return badBounds()
		}
	}

	return min, max, nil
}

// parseCharSet scans a [...] span. The opening '[' is at p.pos.
func (p *parser) parseCharSet() (*Node, error) {
	opPos := p.pos
	p.pos++ // consume '['

	negated := false
	if p.pos < len(p.pattern) {
		if r, w := p.peek(); r == '^' {
			negated = true
			p.pos += w
		}
	}

	var members []rune
	for {
		if p.pos >= len(p.pattern) {
			return nil, p.errorAt(ErrUnterminatedSet, opPos)
		}
		r, w := p.peek()
		p.pos += w

		switch r {
		case ']':
			return &Node{Op: OpCharSet, Set: sortRunes(members), Negated: negated}, nil
		case '\\':
			bpos := p.pos - w
			if p.pos >= len(p.pattern) {
				return nil, p.errorAt(ErrUnterminatedEscape, bpos)
			}
			esc, ew := p.peek()
			p.pos += ew
			members = append(members, esc)
		default:
			members = append(members, r)
		}
	}
}

// parseGroup scans a (...), (?:...) or (?<name>...) span. The opening
// '(' is at p.pos.
func (p *parser) parseGroup() (*Node, error) {
	opPos := p.pos
	p.pos++ // consume '('

	index := 0
	name := ""
	if p.pos < len(p.pattern) {
		if r, w := p.peek(); r == '?' {
			p.pos += w
			var err error
			index, name, err = p.parseGroupHeader(opPos)
			if err != nil {
				return nil, err
			}
		} else {
			p.numGroups++
			index = p.numGroups
			p.names = append(p.names, "")
		}
	} else {
		return nil, p.errorAt(ErrUnterminatedGroup, opPos)
	}

	inner, err := p.parseAlternate()
	if err != nil {
		return nil, err
	}

	if p.pos >= len(p.pattern) {
		return nil, p.errorAt(ErrUnterminatedGroup, opPos)
	}
	p.pos++ // consume ')'

	return &Node{Op: OpCapture, Sub: []*Node{inner}, Index: index, Name: name}, nil
}

// parseGroupHeader handles the remainder of a (? header: ':' for a
// non-capturing group, or '<name>' for a named capturing group.
// Returns the assigned capture index (0 for non-capturing) and name.
func (p *parser) parseGroupHeader(opPos int) (int, string, error) {
	if p.pos >= len(p.pattern) {
		return 0, "", p.errorAt(ErrUnterminatedGroup, opPos)
	}
	r, w := p.peek()

	switch r {
	case ':':
		p.pos += w
		return 0, "", nil

	case '<':
		p.pos += w
		nameStart := p.pos
		for p.pos < len(p.pattern) {
			nr, nw := p.peek()
			if !isWordRune(nr) {
				break
			}
			p.pos += nw
		}
		name := p.pattern[nameStart:p.pos]

		if p.pos >= len(p.pattern) {
			return 0, "", p.errorAt(ErrUnterminatedGroup, opPos)
		}
		if nr, nw := p.peek(); nr != '>' {
			return 0, "", p.errorAt(ErrInvalidGroupName, p.pos)
		} else if name == "" {
			return 0, "", p.errorAt(ErrInvalidGroupName, nameStart)
		} else {
			p.pos += nw
		}

		if _, dup := p.nameSet[name]; dup {
			return 0, "", p.errorAt(ErrDuplicateGroupName, nameStart)
		}
		p.nameSet[name] = struct{}{}

		p.numGroups++
		p.names = append(p.names, name)
		return p.numGroups, name, nil

	default:
		return 0, "", p.errorAt(ErrInvalidGroupName, p.pos)
	}
}

// parseEscape scans a \x escape. The backslash is at p.pos. Any
// character may be escaped; the result is always a literal.
func (p *parser) parseEscape() (*Node, error) {
	bpos := p.pos
	p.pos++ // consume '\'
	if p.pos >= len(p.pattern) {
		return nil, p.errorAt(ErrUnterminatedEscape, bpos)
	}
	r, w := p.peek()
	p.pos += w
	return &Node{Op: OpLiteral, Rune: r}, nil
}

func concat(units []*Node) *Node {
	switch len(units) {
	case 0:
		return &Node{Op: OpConcat}
	case 1:
		return units[0]
	default:
		return &Node{Op: OpConcat, Sub: units}
	}
}

func isWordRune(r rune) bool {
	return r == '_' ||
		('a' <= r && r <= 'z') ||
		('A' <= r && r <= 'Z') ||
		('0' <= r && r <= '9')
}

func sortRunes(rs []rune) []rune {
	sort.Slice(rs, func(i, j int) bool { return rs[i] < rs[j] })
	out := rs[:0]
	var prev rune
	for i, r := range rs {
		if i == 0 || r != prev {
			out = append(out, r)
		}
		prev = r
	}
	return out
}

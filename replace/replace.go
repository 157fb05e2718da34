// Package replace expands match results into replacement templates.
//
// A template is literal text with group references: $1 through $n refer
// to capturing groups by index, $name refers to a named group, and $$ is
// a literal dollar sign. A reference that does not resolve to a group of
// the pattern is kept verbatim in the output, so templates degrade
// gracefully rather than failing.
package replace

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/coregx/rex"
)

// Spec is a parsed replacement template.
type Spec struct {
	template string
	parts    []part
}

type part struct {
	text  string // literal text, "" for references
	ref   string // reference as written, without the '$'
	index int    // numeric group index, -1 for named references
}

// Parse splits a template into literal runs and group references.
// Parsing never fails; malformed references stay literal text.
func Parse(template string) *Spec {
	s := &Spec{template: template}
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			s.parts = append(s.parts, part{text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(template); {
		c := template[i]
		if c != '$' {
			_, w := utf8.DecodeRuneInString(template[i:])
			lit.WriteString(template[i : i+w])
			i += w
			continue
		}

		if i+1 < len(template) && template[i+1] == '$' {
			lit.WriteByte('$')
			i += 2
			continue
		}

		ref, w := scanRef(template[i+1:])
		if ref == "" {
			// Lone '$' with nothing referable after it.
			lit.WriteByte('$')
			i++
			continue
		}
		flush()

		idx := -1
		if n, err := strconv.Atoi(ref); err == nil {
			idx = n
		}
		s.parts = append(s.parts, part{ref: ref, index: idx})
		i += 1 + w
	}
	flush()

	return s
}

// scanRef reads a group reference following a '$': either a run of
// digits or a run of word characters.
func scanRef(s string) (string, int) {
	i := 0
	for i < len(s) {
		c := s[i]
		if c == '_' ||
			('a' <= c && c <= 'z') ||
			('A' <= c && c <= 'Z') ||
			('0' <= c && c <= '9') {
			i++
			continue
		}
		break
	}
	return s[:i], i
}

// String returns the source template.
func (s *Spec) String() string {
	return s.template
}

// Expand appends the template expansion for one match to dst and
// returns it. line must be the input the match was produced from.
// References to groups that exist but never executed expand to nothing;
// references to nonexistent groups are kept verbatim.
func (s *Spec) Expand(dst, line []byte, m *rex.Match) []byte {
	for _, p := range s.parts {
		if p.ref == "" {
			dst = append(dst, p.text...)
			continue
		}

		var span rex.Span
		var ok bool
		known := false
		if p.index >= 0 {
			known = p.index <= m.NumGroups()
			span, ok = m.Group(p.index)
		} else {
			for i := 0; i <= m.NumGroups(); i++ {
				if m.GroupName(i) == p.ref {
					known = true
					span, ok = m.Group(i)
					break
				}
			}
		}

		switch {
		case ok:
			dst = append(dst, line[span.Start:span.End]...)
		case known:
			// Group exists but its branch never ran: empty.
		default:
			dst = append(dst, '$')
			dst = append(dst, p.ref...)
		}
	}
	return dst
}

// ReplaceAll rewrites every non-overlapping match of re in line using
// the template and returns the resulting line.
func (s *Spec) ReplaceAll(re *rex.Regex, line []byte) []byte {
	matches := re.FindAll(line)
	if len(matches) == 0 {
		out := make([]byte, len(line))
		copy(out, line)
		return out
	}

	var out []byte
	pos := 0
	for _, m := range matches {
		out = append(out, line[pos:m.Start]...)
		out = s.Expand(out, line, m)
		pos = m.End
	}
	out = append(out, line[pos:]...)
	return out
}

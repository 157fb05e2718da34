package pretty

import (
	"fmt"
	"io"
	"sort"

	"github.com/coregx/rex"
	"github.com/coregx/rex/scan"
)

// Printer renders matching lines in grep style:
// path:line: text, with match spans highlighted.
type Printer struct {
	w      io.Writer
	styles *Styles

	// ShowPath prefixes each line with its input path (on for
	// multi-input invocations).
	ShowPath bool

	// ShowLineNum prefixes each line with its 1-based line number.
	ShowLineNum bool
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer, styles *Styles) *Printer {
	return &Printer{w: w, styles: styles}
}

// Line renders one matching line.
func (p *Printer) Line(res scan.Result) error {
	sep := p.styles.Separator.Render(":")

	prefix := ""
	if p.ShowPath {
		prefix += p.styles.FilePath.Render(res.Path) + sep
	}
	if p.ShowLineNum {
		prefix += p.styles.LineNum.Render(fmt.Sprintf("%d", res.LineNum)) + sep
	}

	_, err := fmt.Fprintf(p.w, "%s%s\n", prefix, p.highlight(res.Line, res.Matches))
	return err
}

// Count renders a per-input match count, as emitted by count-only mode.
func (p *Printer) Count(path string, n int) error {
	sep := p.styles.Separator.Render(":")
	if p.ShowPath {
		_, err := fmt.Fprintf(p.w, "%s%s%s\n",
			p.styles.FilePath.Render(path), sep, p.styles.Count.Render(fmt.Sprintf("%d", n)))
		return err
	}
	_, err := fmt.Fprintln(p.w, p.styles.Count.Render(fmt.Sprintf("%d", n)))
	return err
}

// highlight renders line with every matched span styled. Overlapping
// spans from different patterns are merged first.
func (p *Printer) highlight(line []byte, matches []*rex.Match) string {
	spans := mergeSpans(matches)
	if len(spans) == 0 {
		return string(line)
	}

	out := ""
	pos := 0
	for _, s := range spans {
		out += string(line[pos:s.Start])
		out += p.styles.Match.Render(string(line[s.Start:s.End]))
		pos = s.End
	}
	out += string(line[pos:])
	return out
}

// mergeSpans sorts match spans and coalesces overlapping or adjacent
// ones, dropping empty spans.
func mergeSpans(matches []*rex.Match) []rex.Span {
	spans := make([]rex.Span, 0, len(matches))
	for _, m := range matches {
		if m.End > m.Start {
			spans = append(spans, m.Span)
		}
	}
	if len(spans) == 0 {
		return nil
	}

	sort.Slice(spans, func(i, j int) bool {
		if spans[i].Start != spans[j].Start {
			return spans[i].Start < spans[j].Start
		}
		return spans[i].End > spans[j].End
	})

	out := spans[:1]
	for _, s := range spans[1:] {
		last := &out[len(out)-1]
		if s.Start <= last.End {
			if s.End > last.End {
				last.End = s.End
			}
			continue
		}
		out = append(out, s)
	}
	return out
}

// Package prefilter builds fast line-level candidate filters from
// literal prefixes extracted out of compiled patterns.
//
// Given one literal sequence per pattern, the prefilter constructs a
// single Aho-Corasick automaton over every literal in the set. A line
// with no automaton hit cannot match any of the patterns and is rejected
// in O(line) without touching the regex engine. When every literal is
// complete, a hit itself proves a match and no verification is needed.
package prefilter

import (
	"github.com/coregx/ahocorasick"

	"github.com/coregx/rex/literal"
)

// maxTotalLiterals caps the automaton size across the whole pattern set.
const maxTotalLiterals = 256

// Prefilter filters candidate lines for a set of compiled patterns.
type Prefilter struct {
	auto     *ahocorasick.Automaton
	complete bool
}

// FromSeqs builds a prefilter from one literal sequence per pattern.
// It returns nil when no useful filter exists: any pattern without a
// usable prefix forces every line through the full engine anyway.
func FromSeqs(seqs []literal.Seq) *Prefilter {
	if len(seqs) == 0 {
		return nil
	}

	total := 0
	complete := true
	for _, s := range seqs {
		if !s.IsUsable() {
			return nil
		}
		total += s.Len()
		if total > maxTotalLiterals {
			return nil
		}
		if !s.IsComplete() {
			complete = false
		}
	}

	builder := ahocorasick.NewBuilder()
	for _, s := range seqs {
		for i := 0; i < s.Len(); i++ {
			builder.AddPattern(s.Get(i).Bytes)
		}
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}

	return &Prefilter{auto: auto, complete: complete}
}

// IsCandidate reports whether line may match one of the patterns. A
// false result is definitive; a true result needs verification unless
// IsComplete.
func (p *Prefilter) IsCandidate(line []byte) bool {
	return p.auto.IsMatch(line)
}

// Find returns the span of the first literal occurrence at or after
// byte offset at, or ok == false if there is none.
func (p *Prefilter) Find(line []byte, at int) (start, end int, ok bool) {
	m := p.auto.Find(line, at)
	if m == nil {
		return 0, 0, false
	}
	return m.Start, m.End, true
}

// IsComplete reports whether a prefilter hit is itself a full match for
// some pattern in the set, so verification can be skipped for
// match/no-match queries.
func (p *Prefilter) IsComplete() bool {
	return p.complete
}

// Package scan applies a set of compiled patterns to lines of text from
// readers, files, and directory trees.
//
// The engine itself has no native multi-pattern operator: a PatternSet
// compiles each pattern separately and reports a line as matching when
// any member matches. A shared Aho-Corasick prefilter built from the
// patterns' literal prefixes rejects most non-matching lines without
// running the regex engine at all.
package scan

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/coregx/rex"
	"github.com/coregx/rex/literal"
	"github.com/coregx/rex/prefilter"
)

// maxLineBytes bounds the scanner's line buffer.
const maxLineBytes = 1 << 20

// PatternSet is a compiled set of patterns combined with logical OR.
// It is immutable and safe for concurrent use.
type PatternSet struct {
	regexes []*rex.Regex
	pre     *prefilter.Prefilter
}

// CompileSet compiles each pattern separately. The first malformed
// pattern aborts compilation with its parse error; no partial set is
// produced.
func CompileSet(patterns []string) (*PatternSet, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("scan: no patterns given")
	}

	regexes := make([]*rex.Regex, 0, len(patterns))
	seqs := make([]literal.Seq, 0, len(patterns))
	for _, pat := range patterns {
		re, err := rex.Compile(pat)
		if err != nil {
			return nil, err
		}
		regexes = append(regexes, re)
		seqs = append(seqs, re.Prefixes())
	}

	return &PatternSet{
		regexes: regexes,
		pre:     prefilter.FromSeqs(seqs),
	}, nil
}

// Size returns the number of patterns in the set.
func (s *PatternSet) Size() int {
	return len(s.regexes)
}

// Match returns the first match on line of the first matching pattern,
// or nil when no pattern matches.
func (s *PatternSet) Match(line []byte) *rex.Match {
	if s.pre != nil && !s.pre.IsCandidate(line) {
		return nil
	}
	for _, re := range s.regexes {
		if m := re.Find(line); m != nil {
			return m
		}
	}
	return nil
}

// FindAll returns every match of every pattern on line, in pattern
// order. Nil when no pattern matches.
func (s *PatternSet) FindAll(line []byte) []*rex.Match {
	if s.pre != nil && !s.pre.IsCandidate(line) {
		return nil
	}
	var out []*rex.Match
	for _, re := range s.regexes {
		out = append(out, re.FindAll(line)...)
	}
	return out
}

// Result is one matching line.
type Result struct {
	// Path names the input: a file path, or "-" for standard input.
	Path string

	// LineNum is the 1-based line number within the input.
	LineNum int

	// Line is the line content without the trailing newline. Valid only
	// for the duration of the callback.
	Line []byte

	// Matches holds every pattern match on the line.
	Matches []*rex.Match
}

// Scanner streams lines from inputs and reports the ones matched by a
// pattern set.
type Scanner struct {
	set *PatternSet

	// MaxCount stops scanning one input after this many matching lines.
	// Zero means unlimited.
	MaxCount int
}

// NewScanner creates a Scanner over the given pattern set.
func NewScanner(set *PatternSet) *Scanner {
	return &Scanner{set: set}
}

// ScanReader scans r line by line, invoking fn for every matching line.
// It returns the number of matching lines. Cancellation is checked
// between lines; fn returning an error stops the scan.
func (sc *Scanner) ScanReader(ctx context.Context, r io.Reader, path string, fn func(Result) error) (int, error) {
	br := bufio.NewScanner(r)
	br.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	count := 0
	lineNum := 0
	for br.Scan() {
		lineNum++
		if err := ctx.Err(); err != nil {
			return count, err
		}

		line := br.Bytes()
		matches := sc.set.FindAll(line)
		if matches == nil {
			continue
		}

		count++
		if fn != nil {
			err := fn(Result{Path: path, LineNum: lineNum, Line: line, Matches: matches})
			if err != nil {
				return count, err
			}
		}
		if sc.MaxCount > 0 && count >= sc.MaxCount {
			break
		}
	}
	if err := br.Err(); err != nil {
		return count, fmt.Errorf("scan %s: %w", path, err)
	}
	return count, nil
}

// ScanFile opens and scans one file.
func (sc *Scanner) ScanFile(ctx context.Context, path string, fn func(Result) error) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("scan: %w", err)
	}
	defer f.Close()
	return sc.ScanReader(ctx, f, path, fn)
}

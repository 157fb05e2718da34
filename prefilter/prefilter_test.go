package prefilter

import (
	"testing"

	"github.com/coregx/rex/literal"
	"github.com/coregx/rex/syntax"
)

func seqs(t *testing.T, patterns ...string) []literal.Seq {
	t.Helper()
	out := make([]literal.Seq, 0, len(patterns))
	for _, p := range patterns {
		tree, err := syntax.Parse(p)
		if err != nil {
			t.Fatalf("Parse(%q): %v", p, err)
		}
		out = append(out, literal.Prefixes(tree))
	}
	return out
}

func TestFromSeqs(t *testing.T) {
	pf := FromSeqs(seqs(t, `foo`, `bar|baz`))
	if pf == nil {
		t.Fatal("expected a prefilter for literal patterns")
	}
	if !pf.IsComplete() {
		t.Error("IsComplete() = false for pure literal patterns")
	}

	for _, line := range []string{"xxfooxx", "a bar b", "baz"} {
		if !pf.IsCandidate([]byte(line)) {
			t.Errorf("IsCandidate(%q) = false, want true", line)
		}
	}
	for _, line := range []string{"", "quux", "fobarz"} {
		if pf.IsCandidate([]byte(line)) {
			t.Errorf("IsCandidate(%q) = true, want false", line)
		}
	}
}

func TestFromSeqsUnusable(t *testing.T) {
	// One pattern without a usable prefix makes the whole filter
	// pointless: every line must be verified anyway.
	if pf := FromSeqs(seqs(t, `foo`, `.*`)); pf != nil {
		t.Error("expected nil prefilter when a pattern has no prefix")
	}
	if pf := FromSeqs(nil); pf != nil {
		t.Error("expected nil prefilter for an empty set")
	}
}

func TestFromSeqsIncomplete(t *testing.T) {
	pf := FromSeqs(seqs(t, `fo+`))
	if pf == nil {
		t.Fatal("expected a prefilter")
	}
	if pf.IsComplete() {
		t.Error("IsComplete() = true for prefix-only literals")
	}
}

func TestFind(t *testing.T) {
	pf := FromSeqs(seqs(t, `needle`))
	if pf == nil {
		t.Fatal("expected a prefilter")
	}

	line := []byte("a needle in a needle stack")
	start, end, ok := pf.Find(line, 0)
	if !ok || start != 2 || end != 8 {
		t.Errorf("Find = (%d, %d, %v), want (2, 8, true)", start, end, ok)
	}

	start, end, ok = pf.Find(line, 8)
	if !ok || start != 14 || end != 20 {
		t.Errorf("Find at 8 = (%d, %d, %v), want (14, 20, true)", start, end, ok)
	}

	if _, _, ok := pf.Find(line, 21); ok {
		t.Error("Find past the last occurrence reported a hit")
	}
}

func TestFromSeqsTotalCap(t *testing.T) {
	// 5 patterns × 64 literals each exceeds the 256-literal cap.
	patterns := make([]string, 5)
	for i := range patterns {
		patterns[i] = `[ab][cd][ef][gh][ij][kl]`
	}
	if pf := FromSeqs(seqs(t, patterns...)); pf != nil {
		t.Error("expected nil prefilter above the literal cap")
	}
}

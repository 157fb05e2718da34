package nfa

import (
	"reflect"
	"testing"

	"github.com/coregx/rex/syntax"
)

func compile(t *testing.T, pattern string) *Program {
	t.Helper()
	tree, err := syntax.Parse(pattern)
	if err != nil {
		t.Fatalf("Parse(%q): %v", pattern, err)
	}
	return Compile(tree)
}

func TestCompileListing(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{
			pattern: `a|b`,
			want: "" +
				"  0  save 0\n" +
				"  1  split 2, 4\n" +
				"  2  char 'a'\n" +
				"  3  jmp 5\n" +
				"  4  char 'b'\n" +
				"  5  save 1\n" +
				"  6  match\n",
		},
		{
			pattern: `a*`,
			want: "" +
				"  0  save 0\n" +
				"  1  split 2, 4\n" +
				"  2  char 'a'\n" +
				"  3  jmp 1\n" +
				"  4  save 1\n" +
				"  5  match\n",
		},
		{
			pattern: `a{2,3}`,
			want: "" +
				"  0  save 0\n" +
				"  1  char 'a'\n" +
				"  2  char 'a'\n" +
				"  3  split 4, 5\n" +
				"  4  char 'a'\n" +
				"  5  save 1\n" +
				"  6  match\n",
		},
		{
			pattern: `(a)`,
			want: "" +
				"  0  save 0\n" +
				"  1  save 2\n" +
				"  2  char 'a'\n" +
				"  3  save 3\n" +
				"  4  save 1\n" +
				"  5  match\n",
		},
		{
			pattern: `[^ab]`,
			want: "" +
				"  0  save 0\n" +
				"  1  class [^ab]\n" +
				"  2  save 1\n" +
				"  3  match\n",
		},
		{
			pattern: `^a$`,
			want: "" +
				"  0  save 0\n" +
				"  1  assert-begin\n" +
				"  2  char 'a'\n" +
				"  3  assert-end\n" +
				"  4  save 1\n" +
				"  5  match\n",
		},
		{
			// Non-capturing groups emit no save instructions.
			pattern: `(?:a.)`,
			want: "" +
				"  0  save 0\n" +
				"  1  char 'a'\n" +
				"  2  any\n" +
				"  3  save 1\n" +
				"  4  match\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			prog := compile(t, tt.pattern)
			if got := prog.String(); got != tt.want {
				t.Errorf("program for %q:\ngot:\n%swant:\n%s", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestCompileSlots(t *testing.T) {
	tests := []struct {
		pattern   string
		slots     int
		numGroups int
		names     []string
	}{
		{`abc`, 2, 0, []string{""}},
		{`(a)`, 4, 1, []string{"", ""}},
		{`(a)(?<x>b)(?:c)(d)`, 8, 3, []string{"", "", "x", ""}},
	}

	for _, tt := range tests {
		prog := compile(t, tt.pattern)
		if prog.Slots() != tt.slots {
			t.Errorf("%q: Slots() = %d, want %d", tt.pattern, prog.Slots(), tt.slots)
		}
		if prog.NumGroups() != tt.numGroups {
			t.Errorf("%q: NumGroups() = %d, want %d", tt.pattern, prog.NumGroups(), tt.numGroups)
		}
		if !reflect.DeepEqual(prog.SubexpNames(), tt.names) {
			t.Errorf("%q: SubexpNames() = %q, want %q", tt.pattern, prog.SubexpNames(), tt.names)
		}
	}
}

func TestCompileAnchoredStart(t *testing.T) {
	tests := []struct {
		pattern string
		want    bool
	}{
		{`^a`, true},
		{`a`, false},
		{`^a|^b`, true},
		{`^a|b`, false},
		{`(^a)`, true},
		{`(?:^a)b`, true},
		{`(^a)+`, true},
		{`(^a)*`, false}, // zero iterations skip the anchor
		{`a^b`, false},   // the ^ here is a literal
	}

	for _, tt := range tests {
		prog := compile(t, tt.pattern)
		if prog.AnchoredStart() != tt.want {
			t.Errorf("%q: AnchoredStart() = %v, want %v", tt.pattern, prog.AnchoredStart(), tt.want)
		}
	}
}

func TestCompileRepeatExact(t *testing.T) {
	// {m} emits exactly m copies of the body and no splits.
	prog := compile(t, `a{4}`)
	chars, splits := 0, 0
	for pc := 0; pc < prog.Len(); pc++ {
		switch prog.Inst(uint32(pc)).Op {
		case OpChar:
			chars++
		case OpSplit:
			splits++
		}
	}
	if chars != 4 || splits != 0 {
		t.Errorf("a{4}: got %d chars and %d splits, want 4 and 0", chars, splits)
	}
}

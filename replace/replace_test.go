package replace

import (
	"testing"

	"github.com/coregx/rex"
)

func TestExpand(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		line     string
		template string
		want     string
	}{
		{
			name:     "whole match",
			pattern:  `o+`,
			line:     "foobar",
			template: "<$0>",
			want:     "<oo>",
		},
		{
			name:     "indexed groups",
			pattern:  `([bo]+)@([aelmpx]+)`,
			line:     "mail me at bob@example now",
			template: "$2/$1",
			want:     "example/bob",
		},
		{
			name:     "named group",
			pattern:  `(?<user>[bo]+)@`,
			line:     "bob@example",
			template: "user=$user",
			want:     "user=bob",
		},
		{
			name:     "literal dollar",
			pattern:  `[0123456789]{2}`,
			line:     "42",
			template: "$$$0",
			want:     "$42",
		},
		{
			name:     "unknown reference kept verbatim",
			pattern:  `a`,
			line:     "a",
			template: "$nope and $7",
			want:     "$nope and $7",
		},
		{
			name:     "unset group expands empty",
			pattern:  `(x)|(y)`,
			line:     "y",
			template: "[$1][$2]",
			want:     "[][y]",
		},
		{
			name:     "trailing dollar is literal",
			pattern:  `a`,
			line:     "a",
			template: "cost$",
			want:     "cost$",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re := rex.MustCompile(tt.pattern)
			m := re.Find([]byte(tt.line))
			if m == nil {
				t.Fatalf("pattern %q did not match %q", tt.pattern, tt.line)
			}
			got := Parse(tt.template).Expand(nil, []byte(tt.line), m)
			if string(got) != tt.want {
				t.Errorf("Expand(%q) = %q, want %q", tt.template, got, tt.want)
			}
		})
	}
}

func TestReplaceAll(t *testing.T) {
	tests := []struct {
		pattern  string
		template string
		line     string
		want     string
	}{
		{`o+`, `0`, `foo boo`, `f0 b0`},
		{`(a)(b)`, `$2$1`, `ab ab`, `ba ba`},
		{`zzz`, `N`, `no digits here`, `no digits here`},
		{`a*`, `x`, `bab`, `xbxbx`}, // empty matches insert between characters
		{`(?<word>[entow]+)`, `<$word>`, `one two`, `<one> <two>`},
	}

	for _, tt := range tests {
		re := rex.MustCompile(tt.pattern)
		got := Parse(tt.template).ReplaceAll(re, []byte(tt.line))
		if string(got) != tt.want {
			t.Errorf("ReplaceAll(%q, %q, %q) = %q, want %q",
				tt.pattern, tt.template, tt.line, got, tt.want)
		}
	}
}

func TestParseTemplate(t *testing.T) {
	if got := Parse("plain text").String(); got != "plain text" {
		t.Errorf("String() = %q", got)
	}

	// A reference directly followed by word characters absorbs them,
	// matching how shells read variable names.
	re := rex.MustCompile(`(a)`)
	m := re.Find([]byte("a"))
	got := Parse("$1x").Expand(nil, []byte("a"), m)
	if string(got) != "$1x" {
		t.Errorf("Expand($1x) = %q, want %q (reference is the full word run)", got, "$1x")
	}
}

package rex_test

import (
	"fmt"

	"github.com/coregx/rex"
	"github.com/coregx/rex/replace"
)

// ExampleCompile demonstrates basic pattern compilation and matching.
func ExampleCompile() {
	re, err := rex.Compile(`f(oo|aa)`)
	if err != nil {
		panic(err)
	}

	fmt.Println(re.Match([]byte("say foo")))
	// Output: true
}

// ExampleMustCompile demonstrates panic-on-error compilation.
func ExampleMustCompile() {
	re := rex.MustCompile(`hello`)
	fmt.Println(re.MatchString("hello world"))
	// Output: true
}

// ExampleRegex_Find demonstrates finding the leftmost match.
func ExampleRegex_Find() {
	re := rex.MustCompile(`o+`)
	line := []byte("foobar")
	m := re.Find(line)
	fmt.Printf("[%d:%d] %s\n", m.Start, m.End, m.Text(line, 0))
	// Output: [1:3] oo
}

// ExampleRegex_FindAll demonstrates finding every match.
func ExampleRegex_FindAll() {
	re := rex.MustCompile(`a+`)
	line := []byte("a bb aa b aaa")
	for _, m := range re.FindAll(line) {
		fmt.Print(string(m.Text(line, 0)), " ")
	}
	fmt.Println()
	// Output: a aa aaa
}

// ExampleMatch_Named demonstrates named capture groups.
func ExampleMatch_Named() {
	re := rex.MustCompile(`f(?<wut>o){2}`)
	m := re.Find([]byte("afoobar"))
	span, ok := m.Named("wut")
	fmt.Println(m.Start, m.End, span.Start, span.End, ok)
	// Output: 1 4 3 4 true
}

// Example_replace demonstrates template replacement.
func Example_replace() {
	re := rex.MustCompile(`(a)(b)`)
	spec := replace.Parse(`$2$1`)
	fmt.Println(string(spec.ReplaceAll(re, []byte("ab ab"))))
	// Output: ba ba
}

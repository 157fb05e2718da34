package scan

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/rex/syntax"
)

func TestCompileSet(t *testing.T) {
	set, err := CompileSet([]string{`foo`, `ba(r|z)`})
	require.NoError(t, err)
	assert.Equal(t, 2, set.Size())
}

func TestCompileSetEmpty(t *testing.T) {
	_, err := CompileSet(nil)
	assert.Error(t, err)
}

func TestCompileSetParseError(t *testing.T) {
	_, err := CompileSet([]string{`good`, `(bad`})
	require.Error(t, err)

	var perr *syntax.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, syntax.ErrUnterminatedGroup, perr.Code)
	assert.Equal(t, `(bad`, perr.Pattern)
}

func TestPatternSetMatch(t *testing.T) {
	set, err := CompileSet([]string{`foo`, `bar`})
	require.NoError(t, err)

	m := set.Match([]byte("a bar here"))
	require.NotNil(t, m)
	assert.Equal(t, 2, m.Start)
	assert.Equal(t, 5, m.End)

	assert.Nil(t, set.Match([]byte("nothing")))
}

func TestPatternSetMatchFirstPatternWins(t *testing.T) {
	// Pattern order decides which match is reported, not position.
	set, err := CompileSet([]string{`bar`, `foo`})
	require.NoError(t, err)

	m := set.Match([]byte("foo bar"))
	require.NotNil(t, m)
	assert.Equal(t, 4, m.Start)
}

func TestPatternSetFindAll(t *testing.T) {
	set, err := CompileSet([]string{`o+`, `b`})
	require.NoError(t, err)

	ms := set.FindAll([]byte("foob"))
	require.Len(t, ms, 2)
	assert.Equal(t, 1, ms[0].Start) // oo
	assert.Equal(t, 3, ms[0].End)
	assert.Equal(t, 3, ms[1].Start) // b
}

func TestScanReader(t *testing.T) {
	set, err := CompileSet([]string{`err`})
	require.NoError(t, err)

	input := "ok line\nerror one\nfine\nanother error\n"
	var got []Result
	count, err := NewScanner(set).ScanReader(context.Background(), strings.NewReader(input), "in", func(r Result) error {
		got = append(got, Result{Path: r.Path, LineNum: r.LineNum, Line: append([]byte(nil), r.Line...)})
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].LineNum)
	assert.Equal(t, "error one", string(got[0].Line))
	assert.Equal(t, 4, got[1].LineNum)
	assert.Equal(t, "in", got[1].Path)
}

func TestScanReaderNilCallback(t *testing.T) {
	set, err := CompileSet([]string{`x`})
	require.NoError(t, err)

	count, err := NewScanner(set).ScanReader(context.Background(), strings.NewReader("x\ny\nx\n"), "in", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestScanReaderMaxCount(t *testing.T) {
	set, err := CompileSet([]string{`a`})
	require.NoError(t, err)

	sc := NewScanner(set)
	sc.MaxCount = 2
	count, err := sc.ScanReader(context.Background(), strings.NewReader("a\na\na\na\n"), "in", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestScanReaderCallbackError(t *testing.T) {
	set, err := CompileSet([]string{`a`})
	require.NoError(t, err)

	sentinel := errors.New("stop")
	count, err := NewScanner(set).ScanReader(context.Background(), strings.NewReader("a\na\n"), "in", func(Result) error {
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, count)
}

func TestScanReaderCancelled(t *testing.T) {
	set, err := CompileSet([]string{`a`})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewScanner(set).ScanReader(ctx, strings.NewReader("a\n"), "in", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

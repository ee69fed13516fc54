package inline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umajho/rotext-lite/common"
	"github.com/umajho/rotext-lite/events"
	"github.com/umajho/rotext-lite/inline"
)

func collect(input string, r common.Range) []events.Event {
	p := inline.NewParser([]byte(input), r)
	var out []events.Event
	for {
		ev, ok := p.Next()
		if !ok {
			return out
		}
		out = append(out, ev)
	}
}

func TestParserPlainText(t *testing.T) {
	input := "hello world"
	got := collect(input, common.NewRange(0, len(input)))
	require.Len(t, got, 1)
	assert.Equal(t, events.Text, got[0].Type)
	content, ok := got[0].Content([]byte(input))
	require.True(t, ok)
	assert.Equal(t, "hello world", content)
}

func TestParserHardLineBreak(t *testing.T) {
	input := "foo\\\nbar"
	got := collect(input, common.NewRange(0, 4)) // "foo\\"
	require.Len(t, got, 2)
	assert.Equal(t, events.Text, got[0].Type)
	content, _ := got[0].Content([]byte(input))
	assert.Equal(t, "foo", content)
	assert.Equal(t, events.LineBreak, got[1].Type)
}

func TestParserTrailingBackslashNotBeforeNewLine(t *testing.T) {
	input := "foo\\bar"
	got := collect(input, common.NewRange(0, len(input)))
	require.Len(t, got, 1)
	assert.Equal(t, events.Text, got[0].Type)
	content, _ := got[0].Content([]byte(input))
	assert.Equal(t, "foo\\bar", content)
}

func TestParserBackslashOnlyAtEndOfInput(t *testing.T) {
	input := "foo\\"
	got := collect(input, common.NewRange(0, len(input)))
	require.Len(t, got, 1)
	assert.Equal(t, events.Text, got[0].Type)
	content, _ := got[0].Content([]byte(input))
	assert.Equal(t, "foo\\", content)
}

func TestParserEntireRangeIsBackslash(t *testing.T) {
	input := "\\\nbar"
	got := collect(input, common.NewRange(0, 1))
	require.Len(t, got, 1)
	assert.Equal(t, events.LineBreak, got[0].Type)
}

func TestParserEmptyRange(t *testing.T) {
	got := collect("", common.NewRange(0, 0))
	assert.Empty(t, got)
}

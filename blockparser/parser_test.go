package blockparser_test

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umajho/rotext-lite/blockparser"
	"github.com/umajho/rotext-lite/events"
	"github.com/umajho/rotext-lite/global"
)

// step is one event's expected type and, for Unparsed/Text, its content.
type step struct {
	typ     events.Type
	content string
}

func parseAll(t *testing.T, input string) []step {
	t.Helper()
	g := global.NewParser([]byte(input))
	p := blockparser.NewParser([]byte(input), g)

	var out []step
	for {
		ev, err := p.Next()
		if errors.Is(err, io.EOF) {
			return out
		}
		require.NoError(t, err)
		s := step{typ: ev.Type}
		if c, ok := ev.Content([]byte(input)); ok {
			s.content = c
		}
		out = append(out, s)
	}
}

func TestParserBasics(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []step
	}{
		{"empty", "", nil},
		{"lone thematic break", "---", []step{
			{typ: events.ThematicBreak},
		}},
		{"simple paragraph", "foo", []step{
			{typ: events.EnterParagraph},
			{typ: events.Unparsed, content: "foo"},
			{typ: events.ExitBlock},
		}},
		{"two-line paragraph", "foo\nbar", []step{
			{typ: events.EnterParagraph},
			{typ: events.Unparsed, content: "foo"},
			{typ: events.NewLine},
			{typ: events.Unparsed, content: "bar"},
			{typ: events.ExitBlock},
		}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := parseAll(t, tc.input)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParserThematicBreak(t *testing.T) {
	got := parseAll(t, "---")
	require.Len(t, got, 1)
	assert.Equal(t, events.ThematicBreak, got[0].typ)
}

func TestParserParagraph(t *testing.T) {
	got := parseAll(t, "hello world")
	require.Len(t, got, 3)
	assert.Equal(t, events.EnterParagraph, got[0].typ)
	assert.Equal(t, events.Unparsed, got[1].typ)
	assert.Equal(t, "hello world", got[1].content)
	assert.Equal(t, events.ExitBlock, got[2].typ)
}

func TestParserHeading(t *testing.T) {
	got := parseAll(t, "== hi ==")
	require.GreaterOrEqual(t, len(got), 2)
	assert.Equal(t, events.EnterHeading2, got[0].typ)
	assert.Equal(t, events.ExitBlock, got[len(got)-1].typ)
}

func TestParserCodeBlock(t *testing.T) {
	got := parseAll(t, "```go\nfmt.Println()\n```")
	require.GreaterOrEqual(t, len(got), 4)
	assert.Equal(t, events.EnterCodeBlock, got[0].typ)
	assert.Equal(t, events.Unparsed != got[1].typ, true) // info string comes back as Text, not Unparsed
	assert.Equal(t, events.ExitBlock, got[len(got)-1].typ)
}

func TestParserBlockQuote(t *testing.T) {
	got := parseAll(t, "> foo")
	require.Len(t, got, 5)
	assert.Equal(t, events.EnterBlockQuote, got[0].typ)
	assert.Equal(t, events.EnterParagraph, got[1].typ)
	assert.Equal(t, events.Unparsed, got[2].typ)
	assert.Equal(t, events.ExitBlock, got[3].typ) // paragraph
	assert.Equal(t, events.ExitBlock, got[4].typ) // block quote
}

func TestParserNestedBlockQuote(t *testing.T) {
	got := parseAll(t, "> >")
	var types []events.Type
	for _, s := range got {
		types = append(types, s.typ)
	}
	assert.Equal(t, []events.Type{
		events.EnterBlockQuote,
		events.EnterBlockQuote,
		events.ExitBlock,
		events.ExitBlock,
	}, types)
}

func TestParserUnorderedList(t *testing.T) {
	got := parseAll(t, "- foo")
	var types []events.Type
	for _, s := range got {
		types = append(types, s.typ)
	}
	assert.Equal(t, []events.Type{
		events.EnterUnorderedList,
		events.EnterListItem,
		events.EnterParagraph,
		events.Unparsed,
		events.ExitBlock, // paragraph
		events.ExitBlock, // item
		events.ExitBlock, // wrapper
	}, types)
}

func TestParserBoundedStackOverflow(t *testing.T) {
	input := "> > > foo"
	g := global.NewParser([]byte(input))
	p := blockparser.NewBoundedParser([]byte(input), g, 2)

	var lastErr error
	for i := 0; i < 100; i++ {
		_, err := p.Next()
		if err != nil {
			lastErr = err
			break
		}
	}
	require.Error(t, lastErr)
	assert.True(t, errors.Is(lastErr, blockparser.ErrOutOfStackSpace))
}

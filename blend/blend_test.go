package blend_test

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umajho/rotext-lite/blend"
	"github.com/umajho/rotext-lite/blockparser"
	"github.com/umajho/rotext-lite/events"
	"github.com/umajho/rotext-lite/global"
)

type step struct {
	typ     events.Type
	content string
}

func blendAll(t *testing.T, input string) []step {
	t.Helper()
	g := global.NewParser([]byte(input))
	bp := blockparser.NewParser([]byte(input), g)
	m := blend.NewMapper([]byte(input), bp)

	var out []step
	for {
		ev, err := m.Next()
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

func TestMapperPlainParagraphPassesThrough(t *testing.T) {
	got := blendAll(t, "hello world")
	require.Len(t, got, 3)
	assert.Equal(t, events.EnterParagraph, got[0].typ)
	assert.Equal(t, events.Text, got[1].typ)
	assert.Equal(t, "hello world", got[1].content)
	assert.Equal(t, events.ExitBlock, got[2].typ)
}

func TestMapperHardLineBreakSplicedIn(t *testing.T) {
	got := blendAll(t, "foo\\\nbar")

	var types []events.Type
	for _, s := range got {
		types = append(types, s.typ)
	}
	assert.Contains(t, types, events.LineBreak)
}

func TestMapperCodeBlockInfoStringUntouched(t *testing.T) {
	got := blendAll(t, "```go\ncode\n```")
	require.GreaterOrEqual(t, len(got), 2)
	assert.Equal(t, events.EnterCodeBlock, got[0].typ)
	assert.Equal(t, events.Text, got[1].typ)
	assert.Equal(t, "go", got[1].content)
}

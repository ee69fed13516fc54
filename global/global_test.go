package global_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umajho/rotext-lite/common"
	"github.com/umajho/rotext-lite/events"
	"github.com/umajho/rotext-lite/global"
)

func collect(input string) []events.Event {
	p := global.NewParser([]byte(input))
	var out []events.Event
	for {
		ev, ok := p.Next()
		if !ok {
			return out
		}
		out = append(out, ev)
	}
}

func TestGlobalParser(t *testing.T) {
	r := common.NewRange

	cases := []struct {
		name  string
		input string
		want  []events.Event
	}{
		{"empty", "", nil},
		{"plain text", "ab", []events.Event{
			{Type: events.Unparsed, Range: r(0, 2)},
		}},
		{"lf", "a\nb", []events.Event{
			{Type: events.Unparsed, Range: r(0, 1)},
			{Type: events.NewLine, LineNumberAfter: 2},
			{Type: events.Unparsed, Range: r(2, 1)},
		}},
		{"crlf normalizes to one newline", "a\r\nb", []events.Event{
			{Type: events.Unparsed, Range: r(0, 1)},
			{Type: events.NewLine, LineNumberAfter: 2},
			{Type: events.Unparsed, Range: r(3, 1)},
		}},
		{"lone cr counts as newline", "a\rb", []events.Event{
			{Type: events.Unparsed, Range: r(0, 1)},
			{Type: events.NewLine, LineNumberAfter: 2},
			{Type: events.Unparsed, Range: r(2, 1)},
		}},
		{"verbatim escape", "<`a`>", []events.Event{
			{Type: events.VerbatimEscaping, Range: r(2, 1), LineNumberAfter: 1},
		}},
		{"verbatim escape with longer fence", "a<`` ` ``>bc", []events.Event{
			{Type: events.Unparsed, Range: r(0, 1)},
			{Type: events.VerbatimEscaping, Range: r(4, 3), LineNumberAfter: 1},
			{Type: events.Unparsed, Range: r(10, 2)},
		}},
		{"unterminated verbatim is force-closed", "a<`b", []events.Event{
			{Type: events.Unparsed, Range: r(0, 1)},
			{Type: events.VerbatimEscaping, Range: r(3, 1), LineNumberAfter: 1, IsClosedForcedly: true},
		}},
		{"comment is swallowed", "ab<% … %>c", []events.Event{
			{Type: events.Unparsed, Range: r(0, 2)},
			{Type: events.Unparsed, Range: r(11, 1)},
		}},
		{"unterminated comment swallows to eof", "ab<% never closes", []events.Event{
			{Type: events.Unparsed, Range: r(0, 2)},
		}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := collect(tc.input)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestGlobalParserExhaustedDoesNotPanic(t *testing.T) {
	p := global.NewParser([]byte("a"))
	_, ok := p.Next()
	require.True(t, ok)
	_, ok = p.Next()
	require.False(t, ok)
}

// Package inline implements the inline phase: a minimal pull parser invoked
// by the blend layer on each Unparsed run inside an inline-admitting block.
// It recognizes hard line breaks — a backslash immediately before a real
// newline in the input — and passes everything else through as Text.
//
// A full inline grammar (emphasis, links, and the rest) is deliberately out
// of scope; this package only resolves the one ambiguity the block stage
// defers to it.
package inline

import (
	"github.com/umajho/rotext-lite/common"
	"github.com/umajho/rotext-lite/events"
)

// Parser turns a single Unparsed range into InlineEvents. It's built fresh
// for each range the blend layer hands it, in the same pull style as the
// rest of the pipeline.
type Parser struct {
	input []byte
	r     common.Range

	deferred *events.Event
	done     bool
}

// NewParser returns a Parser over r, a range into input.
func NewParser(input []byte, r common.Range) *Parser {
	return &Parser{input: input, r: r}
}

// Next returns the next InlineEvent, or false once r is exhausted.
func (p *Parser) Next() (events.Event, bool) {
	if p.deferred != nil {
		ev := *p.deferred
		p.deferred = nil
		return ev, true
	}
	if p.done {
		return events.Event{}, false
	}
	p.done = true

	if p.r.IsEmpty() {
		return events.Event{}, false
	}

	if !p.hasHardBreak() {
		return events.Event{Type: events.Text, Range: p.r}, true
	}

	lineBreak := events.Event{Type: events.LineBreak}
	text := p.r.WithLength(p.r.Length() - 1)
	if text.IsEmpty() {
		return lineBreak, true
	}
	p.deferred = &lineBreak
	return events.Event{Type: events.Text, Range: text}, true
}

// hasHardBreak reports whether r ends with a backslash immediately
// followed, in the input buffer, by a line feed or carriage return — the
// physical newline the block stage represents separately as its own
// NewLine event.
func (p *Parser) hasHardBreak() bool {
	if p.input[p.r.End()-1] != '\\' {
		return false
	}
	next := p.r.End()
	return next < len(p.input) && (p.input[next] == '\n' || p.input[next] == '\r')
}

// Package blend implements the blend phase: it walks the block-event
// stream and, for every Unparsed run inside an inline-admitting span, hands
// that range to a fresh inline.Parser and splices the resulting events into
// the stream in its place. Every other block event passes through
// unchanged.
//
// The reference this was ported from defines blend.rs with its own
// BlendEvent enum (distinct from the block/inline Event type), but that
// file isn't part of the retrieval this module was built against — only
// its call sites in lib.rs survived. Rather than guess at an enum this
// package never saw, Mapper reuses the single events.Event taxonomy
// end-to-end: ExitBlock and IndicateCodeBlockCode forward unchanged, and
// the render package keys off them exactly as lib.rs's render_to_html keys
// off BlendEvent::Exit/Separator.
package blend

import (
	"fmt"
	"io"

	"github.com/umajho/rotext-lite/events"
	"github.com/umajho/rotext-lite/inline"
)

// blockSource is what Mapper pulls BlockEvents from.
type blockSource interface {
	Next() (events.Event, error)
}

// Mapper is a pull producer over BlendEvents, built from a block-event
// source and the buffer it indexes into.
type Mapper struct {
	input  []byte
	source blockSource

	insideInlinePhase bool
	current           *inline.Parser

	done bool
}

// NewMapper returns a Mapper reading BlockEvents from source.
func NewMapper(input []byte, source blockSource) *Mapper {
	return &Mapper{input: input, source: source}
}

// Next returns the next BlendEvent, or io.EOF once the underlying block
// stream is exhausted.
func (m *Mapper) Next() (events.Event, error) {
	if m.done {
		Unreachable("Next called after a terminal result")
	}

	for {
		if m.current != nil {
			if ev, ok := m.current.Next(); ok {
				return ev, nil
			}
			m.current = nil
		}

		ev, err := m.source.Next()
		if err == io.EOF {
			m.done = true
			return events.Event{}, io.EOF
		}
		if err != nil {
			m.done = true
			return events.Event{}, err
		}

		if events.OpensInlinePhase(ev.Type) {
			m.insideInlinePhase = true
			return ev, nil
		}
		if events.ClosesInlinePhase(ev.Type) {
			m.insideInlinePhase = false
			return ev, nil
		}

		if ev.Type == events.Unparsed && m.insideInlinePhase {
			m.current = inline.NewParser(m.input, ev.Range)
			continue
		}

		return ev, nil
	}
}

// Unreachable panics; it marks states the mapper's protocol guarantees it
// never enters.
func Unreachable(format string, args ...any) {
	panic(fmt.Sprintf("blend: unreachable: "+format, args...))
}

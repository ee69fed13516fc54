package blockparser

import (
	"github.com/umajho/rotext-lite/common"
	"github.com/umajho/rotext-lite/events"
)

// mappedKind discriminates a mapped primitive (see mapped below). These are
// internal to the block stage — callers never see them, only the BlockEvent
// stream the root parser produces from them.
type mappedKind int

const (
	mappedCharAt mappedKind = iota
	mappedNextChar
	mappedLineFeed
	mappedBlankLine
	mappedBlankAtLineBeginning
	mappedText
)

// mapped is one position-aware primitive handed from the mapper to the
// block root parser and its sub-parsers.
type mapped struct {
	kind   mappedKind
	index  int          // mappedCharAt, mappedNextChar
	spaces int          // mappedBlankLine
	blank  common.Range // mappedBlankAtLineBeginning
	text   common.Range // mappedText
}

// globalSource is the subset of global.Parser the mapper needs; defined as
// an interface so tests can feed it a canned sequence.
type globalSource interface {
	Next() (events.Event, bool)
}

// mapper translates the global event stream into the character-indexed
// primitives the block parser peeks. It folds leading-space bookkeeping and
// verbatim-escape trimming into the translation so the block parser never
// has to re-derive them.
type mapper struct {
	input  []byte
	stream globalSource

	deferred []mapped

	remain *remainUnparsed

	// countingSpace is true while we're still at the start of a logical
	// line and have only seen ASCII spaces so far. spacesStart/spacesCount
	// describe the run seen so far.
	countingSpace bool
	spacesStart   int
	spacesCount   int
}

type remainUnparsed struct {
	content    common.Range
	nextOffset int
	isToStart  bool
}

func newMapper(input []byte, stream globalSource) *mapper {
	return &mapper{input: input, stream: stream, countingSpace: true}
}

func (m *mapper) next() (mapped, bool) {
	if len(m.deferred) > 0 {
		ev := m.deferred[0]
		m.deferred = m.deferred[1:]
		return ev, true
	}

	for {
		if m.remain != nil {
			out, ok, exhausted := m.stepRemain()
			if !exhausted {
				return out, ok
			}
			continue
		}

		ev, ok := m.stream.Next()
		if !ok {
			if ev2, ok2 := m.flushTrailingBlank(); ok2 {
				return ev2, true
			}
			return mapped{}, false
		}

		switch ev.Type {
		case events.Unparsed:
			m.remain = &remainUnparsed{content: ev.Range, isToStart: true}
		case events.VerbatimEscaping:
			trimmed := trimVerbatimPayload(m.input, ev.Range)
			textEv := mapped{kind: mappedText, text: trimmed}
			if blankEv, ok2 := m.flushTrailingBlank(); ok2 {
				m.deferred = append(m.deferred, textEv)
				return blankEv, true
			}
			// The escape is content on this line, so it ends the run of
			// leading spaces just like any other non-space byte.
			m.countingSpace = false
			return textEv, true
		case events.NewLine:
			return m.handleDirectNewLine(), true
		}
	}
}

// flushTrailingBlank emits BlankAtLineBeginning for spaces accumulated so
// far, if any, resetting the counter. It is used both at end of stream and
// right before a Text event that would otherwise swallow the spaces.
func (m *mapper) flushTrailingBlank() (mapped, bool) {
	if !m.countingSpace || m.spacesCount == 0 {
		return mapped{}, false
	}
	blank := common.NewRange(m.spacesStart, m.spacesCount)
	m.countingSpace = false
	m.spacesCount = 0
	return mapped{kind: mappedBlankAtLineBeginning, blank: blank}, true
}

// handleDirectNewLine handles a global NewLine event. The global stage
// flushes any pending Unparsed run before a NewLine, so every NewLine is
// fetched here only after the run before it is used up. If we're still
// counting leading spaces for this line, it's a blank line (possibly with
// spaces already seen); otherwise it's an ordinary line feed after real
// content.
func (m *mapper) handleDirectNewLine() mapped {
	if m.countingSpace {
		spaces := m.spacesCount
		m.spacesCount = 0
		m.countingSpace = true
		return mapped{kind: mappedBlankLine, spaces: spaces}
	}
	m.countingSpace = true
	m.spacesCount = 0
	return mapped{kind: mappedLineFeed}
}

// stepRemain expands one byte of the current Unparsed run. exhausted is
// true once the run is used up and the caller should fetch the next global
// event; otherwise (ev, ok) is the mapped primitive to hand back.
func (m *mapper) stepRemain() (ev mapped, ok bool, exhausted bool) {
	r := m.remain
	if r.nextOffset == r.content.Length() {
		m.remain = nil
		return mapped{}, false, true
	}

	index := r.content.Start() + r.nextOffset
	c := m.input[index]

	if m.countingSpace && c == ' ' {
		if m.spacesCount == 0 {
			m.spacesStart = index
		}
		m.spacesCount++
		r.nextOffset++
		return mapped{}, false, true
	}

	if m.countingSpace && c != '\n' {
		if blankEv, flushed := m.flushTrailingBlank(); flushed {
			return blankEv, true, false
		}
		m.countingSpace = false
	}

	// c can't be '\n' here: the global stage always flushes the pending
	// Unparsed run before emitting NewLine, so one never shows up inside it.
	r.nextOffset++
	if r.isToStart {
		r.isToStart = false
		return mapped{kind: mappedCharAt, index: index}, true, false
	}
	// NextChar is "previous index + 1" per the mapper's contract, but
	// the mapper already knows the absolute index computing it — carry
	// it along so resolveCharIndex never needs a stale, externally
	// tracked cursor to make sense of an unconsumed peek.
	return mapped{kind: mappedNextChar, index: index}, true, false
}

// trimVerbatimPayload drops at most one leading and one trailing ASCII
// space from a verbatim-escape body, per spec.
func trimVerbatimPayload(input []byte, body common.Range) common.Range {
	start, length := body.Start(), body.Length()
	if length >= 2 {
		if input[start] == ' ' {
			start++
			length--
		}
		if length > 0 && input[start+length-1] == ' ' {
			length--
		}
	}
	return common.NewRange(start, length)
}

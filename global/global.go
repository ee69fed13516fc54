// Package global implements the first, leftmost stage of the rotext
// pipeline: it scans raw bytes and tokenizes trivia, hiding comments
// entirely and delimiting verbatim-escape spans.
package global

import (
	"bytes"

	"github.com/umajho/rotext-lite/common"
	"github.com/umajho/rotext-lite/events"
)

// Parser scans an input buffer and produces a stream of Unparsed, NewLine
// and VerbatimEscaping events in source order. Comments (<% … %>) are
// recognized and swallowed; they never reach the caller.
//
// Parser is a pull producer: call Next repeatedly until it reports false.
type Parser struct {
	input []byte

	i            int // scan cursor
	pendingStart int // start of the run of bytes not yet flushed as Unparsed
	line         int // 1-based line counter

	// deferred holds a second event produced by the same scan step as the
	// one just returned (flush-then-special-token), so Next keeps its
	// one-event-per-call contract without losing either event.
	deferred []events.Event
}

// NewParser returns a Parser over input, starting at line 1.
func NewParser(input []byte) *Parser {
	return &Parser{input: input, line: 1}
}

// Next returns the next event, or (Event{}, false) once the input is
// exhausted. After it returns false once, it must not be called again.
func (p *Parser) Next() (events.Event, bool) {
	if len(p.deferred) > 0 {
		ev := p.deferred[0]
		p.deferred = p.deferred[1:]
		return ev, true
	}

	for p.i < len(p.input) {
		c := p.input[p.i]

		switch {
		case c == '\r' || c == '\n':
			return p.scanNewLine(c)
		case c == '<' && p.i+1 < len(p.input) && p.input[p.i+1] == '`':
			return p.scanVerbatimEscaping()
		case c == '<' && p.i+1 < len(p.input) && p.input[p.i+1] == '%':
			if ev, ok := p.scanComment(); ok {
				return ev, true
			}
			continue
		default:
			p.i++
		}
	}

	return p.flushPending()
}

func (p *Parser) scanNewLine(c byte) (events.Event, bool) {
	pending, hasPending := p.flushPending()

	length := 1
	if c == '\r' && p.i+1 < len(p.input) && p.input[p.i+1] == '\n' {
		length = 2
	}
	p.i += length
	p.line++
	p.pendingStart = p.i

	nl := events.Event{Type: events.NewLine, LineNumberAfter: p.line}
	if hasPending {
		p.deferred = append(p.deferred, nl)
		return pending, true
	}
	return nl, true
}

// scanVerbatimEscaping consumes a `<`…`>` span whose opening and closing
// backtick runs are k bytes long, k being however many backticks directly
// follow the '<'.
func (p *Parser) scanVerbatimEscaping() (events.Event, bool) {
	k := 0
	for p.i+1+k < len(p.input) && p.input[p.i+1+k] == '`' {
		k++
	}
	bodyStart := p.i + 1 + k
	bodyEnd, closeEnd, closed := findVerbatimClose(p.input, bodyStart, k)

	pending, hasPending := p.flushPending()

	p.line += countNewLines(p.input[bodyStart:bodyEnd])
	ev := events.Event{
		Type:             events.VerbatimEscaping,
		Range:            common.NewRange(bodyStart, bodyEnd-bodyStart),
		IsClosedForcedly: !closed,
		LineNumberAfter:  p.line,
	}
	p.i = closeEnd
	p.pendingStart = p.i

	if hasPending {
		p.deferred = append(p.deferred, ev)
		return pending, true
	}
	return ev, true
}

// scanComment consumes a <% … %> span. It never produces an event of its
// own; it returns a pending flush, if any, so a run of Unparsed bytes right
// before the comment is not silently absorbed into it.
func (p *Parser) scanComment() (events.Event, bool) {
	end := findCommentClose(p.input, p.i+2)
	pending, hasPending := p.flushPending()

	p.line += countNewLines(p.input[p.i:end])
	p.i = end
	p.pendingStart = p.i

	return pending, hasPending
}

func (p *Parser) flushPending() (events.Event, bool) {
	if p.pendingStart >= p.i {
		return events.Event{}, false
	}
	ev := events.Event{Type: events.Unparsed, Range: common.NewRange(p.pendingStart, p.i-p.pendingStart)}
	p.pendingStart = p.i
	return ev, true
}

// findVerbatimClose looks, starting at bodyStart, for a run of exactly k
// backticks immediately followed by '>'. Backtick runs of any other length
// are just content. It reports the body range and where scanning should
// resume, and whether a proper close was found at all.
func findVerbatimClose(input []byte, bodyStart, k int) (bodyEnd, resumeAt int, closed bool) {
	j := bodyStart
	for j < len(input) {
		if input[j] != '`' {
			j++
			continue
		}
		runStart := j
		for j < len(input) && input[j] == '`' {
			j++
		}
		if j-runStart == k && j < len(input) && input[j] == '>' {
			return runStart, j + 1, true
		}
	}
	return len(input), len(input), false
}

func findCommentClose(input []byte, from int) int {
	if from > len(input) {
		from = len(input)
	}
	idx := bytes.Index(input[from:], []byte("%>"))
	if idx < 0 {
		return len(input)
	}
	return from + idx + 2
}

// countNewLines normalizes CR, LF and CRLF runs within span to a count of
// logical newlines, the same normalization the top-level scan loop applies.
func countNewLines(span []byte) int {
	n := 0
	for i := 0; i < len(span); i++ {
		switch span[i] {
		case '\n':
			n++
		case '\r':
			n++
			if i+1 < len(span) && span[i+1] == '\n' {
				i++
			}
		}
	}
	return n
}

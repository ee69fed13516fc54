package blockparser

import (
	"github.com/umajho/rotext-lite/common"
	"github.com/umajho/rotext-lite/events"
)

type paragraphState int

const (
	paragraphInitial paragraphState = iota
	paragraphContent
	paragraphExiting
	paragraphExited
	paragraphPaused
	paragraphToExit
)

// paragraphParser wraps a contentParser stopping before a blank line. The
// root parser sometimes already knows the first few bytes of the paragraph
// (e.g. a lone leading '=' that turned out not to start a heading); those
// are seeded as the content parser's first pending run rather than
// re-scanned.
type paragraphParser struct {
	id            events.BlockID
	startLine     int
	state         paragraphState
	contentBefore *common.Range
	content       *contentParser
}

func newParagraphParser(contentBefore *common.Range, id events.BlockID, startLine int) *paragraphParser {
	return &paragraphParser{id: id, startLine: startLine, state: paragraphInitial, contentBefore: contentBefore}
}

func (p *paragraphParser) next(ctx *blockContext) subParserResult {
	switch p.state {
	case paragraphInitial:
		p.content = newContentParser(contentOptions{
			mode:          contentInline,
			endConditions: contentEndConditions{beforeBlankLine: true},
		})
		if p.contentBefore != nil {
			p.content.pending = p.contentBefore
		}
		p.state = paragraphContent
		return subParserResult{kind: resultToYield, event: events.Event{Type: events.EnterParagraph, ID: p.id}}

	case paragraphContent:
		r := p.content.next(ctx)
		switch r.kind {
		case resultToPauseForNewLine:
			p.state = paragraphPaused
			return r
		case resultDone:
			p.state = paragraphExiting
			return subParserResult{kind: resultToYield, event: p.exitEvent(ctx)}
		default:
			return r
		}

	case paragraphExiting:
		p.state = paragraphExited
		return subParserResult{kind: resultDone}

	case paragraphToExit:
		p.state = paragraphExiting
		return subParserResult{kind: resultToYield, event: p.exitEvent(ctx)}

	default:
		Unreachable("paragraphParser.next in state %d", p.state)
		return subParserResult{}
	}
}

func (p *paragraphParser) exitEvent(ctx *blockContext) events.Event {
	return events.Event{Type: events.ExitBlock, ID: p.id, StartLine: p.startLine, EndLine: ctx.line}
}

func (p *paragraphParser) resumeFromPauseForNewLineAndContinue() {
	if p.state != paragraphPaused {
		Unreachable("resumeFromPauseForNewLineAndContinue outside Paused")
	}
	p.content.resumeFromPauseForNewLineAndContinue()
	p.state = paragraphContent
}

func (p *paragraphParser) resumeFromPauseForNewLineAndExit() {
	if p.state != paragraphPaused {
		Unreachable("resumeFromPauseForNewLineAndExit outside Paused")
	}
	p.state = paragraphToExit
}

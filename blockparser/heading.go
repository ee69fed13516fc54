package blockparser

import "github.com/umajho/rotext-lite/events"

type headingState int

const (
	headingInitial headingState = iota
	headingContent
	headingExiting
	headingExited
	headingPaused
	headingToExit
)

// headingParser implements a `=`-fenced heading at level k (1..6): content
// runs Inline mode, stopping before the newline, with a closing-fence
// condition matching " " followed by exactly k trailing '='.
type headingParser struct {
	level     int
	id        events.BlockID
	startLine int

	state   headingState
	content *contentParser
}

func newHeadingParser(level int, id events.BlockID, startLine int) *headingParser {
	return &headingParser{level: level, id: id, startLine: startLine, state: headingInitial}
}

func (p *headingParser) next(ctx *blockContext) subParserResult {
	switch p.state {
	case headingInitial:
		p.content = newContentParser(contentOptions{
			mode: contentInline,
			endConditions: contentEndConditions{
				beforeNewLine: true,
				afterRepetitiveCharacters: &repetitiveCharactersCondition{
					atLineEndAndWithSpaceBefore: true,
					character:                  '=',
					minimalCount:                p.level,
				},
			},
		})
		p.state = headingContent
		return subParserResult{kind: resultToYield, event: events.Event{Type: events.EnterHeadingType(p.level), ID: p.id}}

	case headingContent:
		r := p.content.next(ctx)
		switch r.kind {
		case resultToPauseForNewLine:
			p.state = headingPaused
			return r
		case resultDone:
			p.state = headingExiting
			return subParserResult{kind: resultToYield, event: p.exitEvent(ctx)}
		default:
			return r
		}

	case headingExiting:
		p.state = headingExited
		return subParserResult{kind: resultDone}

	case headingToExit:
		p.state = headingExiting
		return subParserResult{kind: resultToYield, event: p.exitEvent(ctx)}

	default:
		Unreachable("headingParser.next in state %d", p.state)
		return subParserResult{}
	}
}

func (p *headingParser) exitEvent(ctx *blockContext) events.Event {
	return events.Event{Type: events.ExitBlock, ID: p.id, StartLine: p.startLine, EndLine: ctx.line}
}

func (p *headingParser) resumeFromPauseForNewLineAndContinue() {
	if p.state != headingPaused {
		Unreachable("resumeFromPauseForNewLineAndContinue outside Paused")
	}
	p.content.resumeFromPauseForNewLineAndContinue()
	p.state = headingContent
}

func (p *headingParser) resumeFromPauseForNewLineAndExit() {
	if p.state != headingPaused {
		Unreachable("resumeFromPauseForNewLineAndExit outside Paused")
	}
	p.state = headingToExit
}

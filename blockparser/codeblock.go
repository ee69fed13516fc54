package blockparser

import "github.com/umajho/rotext-lite/events"

type codeBlockState int

const (
	codeBlockInitial codeBlockState = iota
	codeBlockInfoString
	codeBlockCode
	codeBlockExiting
	codeBlockExited
	codeBlockPaused
	codeBlockToExit
)

// codeBlockParser implements a fenced code block: an info-string line
// (Verbatim mode, stops before the newline) followed by the code body
// (Verbatim mode, closed by a leading run of at least leadingBackticks
// backticks at line start).
type codeBlockParser struct {
	leadingBackticks int
	id               events.BlockID
	startLine        int

	state   codeBlockState
	content *contentParser
}

func newCodeBlockParser(leadingBackticks int, id events.BlockID, startLine int) *codeBlockParser {
	return &codeBlockParser{leadingBackticks: leadingBackticks, id: id, startLine: startLine, state: codeBlockInitial}
}

func (p *codeBlockParser) next(ctx *blockContext) subParserResult {
	switch p.state {
	case codeBlockInitial:
		p.content = newContentParser(contentOptions{
			mode:          contentVerbatim,
			endConditions: contentEndConditions{beforeNewLine: true},
		})
		p.state = codeBlockInfoString
		return subParserResult{kind: resultToYield, event: events.Event{Type: events.EnterCodeBlock, ID: p.id}}

	case codeBlockInfoString:
		r := p.content.next(ctx)
		switch r.kind {
		case resultToPauseForNewLine:
			Unreachable("code block info string paused for newline")
		case resultDone:
			p.content = newContentParser(contentOptions{
				mode:              contentVerbatim,
				isAtLineBeginning: true,
				endConditions: contentEndConditions{
					afterRepetitiveCharacters: &repetitiveCharactersCondition{
						atLineBeginning: true,
						character:       '`',
						minimalCount:    p.leadingBackticks,
					},
				},
			})
			p.state = codeBlockCode
			return subParserResult{kind: resultToYield, event: events.Event{Type: events.IndicateCodeBlockCode}}
		}
		return r

	case codeBlockCode:
		r := p.content.next(ctx)
		switch r.kind {
		case resultToPauseForNewLine:
			p.state = codeBlockPaused
			return r
		case resultDone:
			p.state = codeBlockExiting
			return subParserResult{kind: resultToYield, event: p.exitEvent(ctx)}
		default:
			return r
		}

	case codeBlockExiting:
		p.state = codeBlockExited
		return subParserResult{kind: resultDone}

	case codeBlockToExit:
		p.state = codeBlockExiting
		return subParserResult{kind: resultToYield, event: p.exitEvent(ctx)}

	default:
		Unreachable("codeBlockParser.next in state %d", p.state)
		return subParserResult{}
	}
}

func (p *codeBlockParser) exitEvent(ctx *blockContext) events.Event {
	return events.Event{Type: events.ExitBlock, ID: p.id, StartLine: p.startLine, EndLine: ctx.line}
}

func (p *codeBlockParser) resumeFromPauseForNewLineAndContinue() {
	if p.state != codeBlockPaused {
		Unreachable("resumeFromPauseForNewLineAndContinue outside Paused")
	}
	p.content.resumeFromPauseForNewLineAndContinue()
	p.state = codeBlockCode
}

func (p *codeBlockParser) resumeFromPauseForNewLineAndExit() {
	if p.state != codeBlockPaused {
		Unreachable("resumeFromPauseForNewLineAndExit outside Paused")
	}
	p.state = codeBlockToExit
}

package blockparser

import (
	"github.com/umajho/rotext-lite/common"
	"github.com/umajho/rotext-lite/events"
)

// contentMode selects whether the content sub-parser swallows leading
// blanks on each line (Inline) or hands them back as text (Verbatim).
type contentMode int

const (
	contentInline contentMode = iota
	contentVerbatim
)

// repetitiveCharactersCondition is a closing-fence test: a run of character
// repeated at least (at_line_beginning) or exactly (at_line_end...) count
// times, at the position named by the flag that's set.
type repetitiveCharactersCondition struct {
	atLineBeginning             bool
	atLineEndAndWithSpaceBefore bool
	character                   byte
	minimalCount                int
}

// contentEndConditions controls when a contentParser run stops.
type contentEndConditions struct {
	beforeNewLine             bool
	beforeBlankLine           bool
	afterRepetitiveCharacters *repetitiveCharactersCondition
}

// contentOptions configures a contentParser. isAtLineBeginning seeds the
// parser as though it just consumed a line feed, so a leading fence (e.g. a
// code block's closing backtick run) can be recognized on the very first
// line it runs against.
type contentOptions struct {
	mode              contentMode
	endConditions     contentEndConditions
	isAtLineBeginning bool
}

// contentParser is the shared sub-parser every block-level leaf (paragraph,
// heading, code block) is built from: it accumulates a run of Unparsed (or,
// in Verbatim mode, Text) bytes and stops at whichever end condition fires
// first, cooperating with the root parser across line feeds via the usual
// ToYield/ToPauseForNewLine/Done protocol.
//
// Unlike the reference implementation this treats a blank line as one
// atomic token throughout (mirroring the mapper's own BlankLine primitive)
// rather than resolving the blank/non-blank ambiguity after the fact.
type contentParser struct {
	mode          contentMode
	endConditions contentEndConditions

	atLineBeginning bool
	pending         *common.Range // accumulated run, nil if nothing pending yet

	// afterLineFeed is set by resumeFromPauseForNewLineAndContinue: the root
	// decided the line feed that paused us belongs to our content after all,
	// so the very next step must re-surface it as a NewLine event (unless
	// the new line immediately opens a closing fence) before resuming
	// ordinary accumulation.
	afterLineFeed bool
}

func newContentParser(opts contentOptions) *contentParser {
	return &contentParser{
		mode:            opts.mode,
		endConditions:   opts.endConditions,
		atLineBeginning: opts.isAtLineBeginning,
	}
}

func (p *contentParser) contentEventType() events.Type {
	if p.mode == contentVerbatim {
		return events.Text
	}
	return events.Unparsed
}

// next drives one step of content accumulation, returning a subParserResult
// the same way every other sub-parser does.
func (p *contentParser) next(ctx *blockContext) subParserResult {
	for p.afterLineFeed {
		if r, handled := p.stepAfterLineFeed(ctx); handled {
			return r
		}
	}

	for {
		peeked, ok := ctx.mapper.peek1()
		if !ok {
			return p.flushOrDone()
		}

		switch peeked.kind {
		case mappedBlankLine:
			if p.endConditions.beforeBlankLine {
				if r, has := p.takePending(); has {
					return subParserResult{kind: resultToYield, event: p.contentEvent(r)}
				}
				ctx.consumePeeked()
				return subParserResult{kind: resultDone}
			}
			if p.mode == contentVerbatim {
				if r, has := p.takePending(); has {
					return subParserResult{kind: resultToYield, event: p.contentEvent(r)}
				}
			}
			ctx.consumePeeked()
			p.atLineBeginning = true
			continue

		case mappedLineFeed:
			if r, has := p.takePending(); has {
				return subParserResult{kind: resultToYield, event: p.contentEvent(r)}
			}
			if p.endConditions.beforeNewLine {
				ctx.consumePeeked()
				return subParserResult{kind: resultDone}
			}
			ctx.consumePeeked()
			p.atLineBeginning = true
			return subParserResult{kind: resultToPauseForNewLine}

		case mappedBlankAtLineBeginning:
			ctx.consumePeeked()
			if p.mode == contentVerbatim {
				return subParserResult{kind: resultToYield, event: events.Event{Type: events.Text, Range: peeked.blank}}
			}
			continue

		case mappedText:
			// peek1 doesn't consume: if content is pending, leave this
			// token buffered and flush the pending run first.
			if r, has := p.takePending(); has {
				return subParserResult{kind: resultToYield, event: p.contentEvent(r)}
			}
			ctx.consumePeeked()
			p.atLineBeginning = false
			return subParserResult{kind: resultToYield, event: events.Event{Type: events.Text, Range: peeked.text}}

		case mappedCharAt:
			// A CharAt starts a new Unparsed run. Content still pending here
			// belongs to a run that an elided comment split off, so it isn't
			// contiguous with this one: flush it first.
			if r, has := p.takePending(); has {
				return subParserResult{kind: resultToYield, event: p.contentEvent(r)}
			}
			if cond := p.fenceAtLineBeginning(); p.atLineBeginning && cond != nil {
				if p.matchLeadingFence(ctx, cond) {
					return subParserResult{kind: resultDone}
				}
				if p.pending != nil {
					// The run was too short to close and is now content.
					continue
				}
			}
			p.consumeOneCharIntoPending(ctx, peeked)

		case mappedNextChar:
			if cond := p.fenceAtLineEnd(); cond != nil {
				if b, ok := ctx.peekNextChar(); ok && b == ' ' {
					if p.matchTrailingFence(ctx, cond) {
						r, _ := p.takePending()
						return subParserResult{kind: resultToYield, event: p.contentEvent(r)}
					}
					// Not a closing fence: the space and whatever run the
					// attempt consumed after it are ordinary content.
					end, _ := ctx.cursor.Value()
					if p.pending == nil {
						r := common.NewRange(peeked.index, 0)
						p.pending = &r
					}
					*p.pending = p.pending.WithLength(end + 1 - p.pending.Start())
					continue
				}
			}
			p.consumeOneCharIntoPending(ctx, peeked)
		}
	}
}

func (p *contentParser) fenceAtLineBeginning() *repetitiveCharactersCondition {
	c := p.endConditions.afterRepetitiveCharacters
	if c != nil && c.atLineBeginning {
		return c
	}
	return nil
}

func (p *contentParser) fenceAtLineEnd() *repetitiveCharactersCondition {
	c := p.endConditions.afterRepetitiveCharacters
	if c != nil && c.atLineEndAndWithSpaceBefore {
		return c
	}
	return nil
}

// matchLeadingFence consumes a run of cond.character at the current (line
// beginning) position and reports whether it's at least cond.minimalCount
// long. A shorter run is kept as the pending content instead.
func (p *contentParser) matchLeadingFence(ctx *blockContext, cond *repetitiveCharactersCondition) bool {
	m, ok := ctx.mapper.peek1()
	if !ok {
		return false
	}
	idx, ok := ctx.resolveCharIndex(m)
	if !ok || ctx.input[idx] != cond.character {
		return false
	}
	ctx.mustTakeFromMapperAndApplyToCursor(1)
	dropped := ctx.dropFromMapperWhileChar(cond.character)
	if 1+dropped >= cond.minimalCount {
		return true
	}
	run := common.NewRange(idx, 1+dropped)
	p.pending = &run
	p.atLineBeginning = false
	return false
}

// matchTrailingFence consumes "<space> <run of character>" at line end if
// the run is exactly cond.minimalCount long and is immediately followed by
// a line feed or end of input.
func (p *contentParser) matchTrailingFence(ctx *blockContext, cond *repetitiveCharactersCondition) bool {
	ctx.mustTakeFromMapperAndApplyToCursor(1) // the space
	m, ok := ctx.mapper.peek1()
	if !ok {
		return false
	}
	idx, ok := ctx.resolveCharIndex(m)
	if !ok || ctx.input[idx] != cond.character {
		return false
	}
	ctx.mustTakeFromMapperAndApplyToCursor(1)
	dropped := 1 + ctx.dropFromMapperWhileChar(cond.character)
	if dropped != cond.minimalCount {
		return false
	}
	next, ok := ctx.mapper.peek1()
	if ok && next.kind != mappedLineFeed && next.kind != mappedBlankLine {
		return false
	}
	return true
}

func (p *contentParser) consumeOneCharIntoPending(ctx *blockContext, peeked mapped) {
	idx, _ := ctx.resolveCharIndex(peeked)
	ctx.consumePeeked()
	p.atLineBeginning = false
	if p.pending == nil {
		r := common.NewRange(idx, 1)
		p.pending = &r
	} else {
		*p.pending = p.pending.WithLength(p.pending.Length() + 1)
	}
}

func (p *contentParser) takePending() (common.Range, bool) {
	if p.pending == nil {
		return common.Range{}, false
	}
	r := *p.pending
	p.pending = nil
	return r, true
}

func (p *contentParser) contentEvent(r common.Range) events.Event {
	return events.Event{Type: p.contentEventType(), Range: r}
}

func (p *contentParser) flushOrDone() subParserResult {
	if r, has := p.takePending(); has {
		return subParserResult{kind: resultToYield, event: p.contentEvent(r)}
	}
	return subParserResult{kind: resultDone}
}

func (p *contentParser) resumeFromPauseForNewLineAndContinue() {
	p.afterLineFeed = true
}

// stepAfterLineFeed runs the one-shot check that follows a resumed line
// feed: re-surface it as a NewLine event before ordinary accumulation
// continues, unless the new line immediately opens a closing fence (in
// which case the block is done without ever reporting that line feed).
// handled reports whether the caller's next() should return r immediately;
// when false, next() falls through to ordinary accumulation in the same
// call (p.afterLineFeed has already been cleared).
func (p *contentParser) stepAfterLineFeed(ctx *blockContext) (r subParserResult, handled bool) {
	peeked, ok := ctx.mapper.peek1()
	if !ok {
		p.afterLineFeed = false
		return subParserResult{kind: resultDone}, true
	}

	switch peeked.kind {
	case mappedCharAt, mappedNextChar: // NextChar: the line began with container markers
		cond := p.fenceAtLineBeginning()
		idx, _ := ctx.resolveCharIndex(peeked)
		if cond == nil || ctx.input[idx] != cond.character {
			p.afterLineFeed = false
			return subParserResult{kind: resultToYield, event: events.Event{Type: events.NewLine}}, true
		}
		ctx.mustTakeFromMapperAndApplyToCursor(1)
		dropped := ctx.dropFromMapperWhileChar(cond.character)
		p.afterLineFeed = false
		if 1+dropped >= cond.minimalCount {
			return subParserResult{kind: resultDone}, true
		}
		// Didn't reach the minimal count: the run becomes ordinary content.
		run := common.NewRange(idx, 1+dropped)
		p.pending = &run
		p.atLineBeginning = false
		return subParserResult{}, false

	case mappedBlankAtLineBeginning:
		if p.mode == contentVerbatim {
			// The blank belongs to the new line: report the line feed
			// first and leave the blank for next() to hand back as Text.
			p.afterLineFeed = false
			return subParserResult{kind: resultToYield, event: events.Event{Type: events.NewLine}}, true
		}
		ctx.consumePeeked()
		return subParserResult{}, false

	case mappedBlankLine, mappedLineFeed: // LineFeed: nothing followed the container markers
		if p.endConditions.beforeBlankLine {
			ctx.consumePeeked()
			p.afterLineFeed = false
			return subParserResult{kind: resultDone}, true
		}
		p.afterLineFeed = false
		return subParserResult{kind: resultToYield, event: events.Event{Type: events.NewLine}}, true

	case mappedText:
		p.afterLineFeed = false
		return subParserResult{kind: resultToYield, event: events.Event{Type: events.NewLine}}, true

	default:
		Unreachable("contentParser resumed onto mapped kind %d", peeked.kind)
		return subParserResult{}, true
	}
}

// Package blockparser implements the block state machine: the second
// stage of the pipeline, which turns the position-aware primitives the
// mapper produces into a stream of block-level events (paragraphs,
// headings, code blocks, thematic breaks, and container blocks).
package blockparser

import (
	"io"

	"github.com/umajho/rotext-lite/common"
	"github.com/umajho/rotext-lite/events"
)

type rootState int

const (
	stateInRoot rootState = iota
	stateInSubParser
)

// Parser is the root of the block stage: a pull producer over BlockEvents,
// built from an input buffer and whatever produces the global event stream
// over it.
type Parser struct {
	ctx   *blockContext
	state rootState

	paused  subParser // set while InRoot holds a sub-parser paused at a line boundary
	current subParser // set while InSubParser

	stack        stack[stackEntry]
	nextID       events.BlockID
	isCleaningUp bool
	done         bool

	// pending holds events already decided but not yet yielded, because a
	// single parseRoot step produced more than one (e.g. opening a new list
	// wrapper and its first item at once): Next drains these one at a time
	// before running the state machine any further.
	pending []events.Event

	// closing tracks an in-progress drain of containers that failed to
	// continue past a line boundary: we pop (and report) one at a time,
	// each its own Next call, until the stack shrinks to closeTarget.
	closing     bool
	closeTarget int
	closeOrigin int
}

// NewParser returns a Parser with an unbounded container stack.
func NewParser(input []byte, global globalSource) *Parser {
	return newParserWithStack(input, global, newVecStack[stackEntry]())
}

// NewBoundedParser returns a Parser whose container stack fails with
// ErrOutOfStackSpace past maxDepth open containers, instead of growing
// without bound.
func NewBoundedParser(input []byte, global globalSource, maxDepth int) *Parser {
	return newParserWithStack(input, global, newArrayStack[stackEntry](maxDepth))
}

func newParserWithStack(input []byte, global globalSource, s stack[stackEntry]) *Parser {
	m := newMapper(input, global)
	ctx := newBlockContext(input, newPeekable3(m))
	return &Parser{ctx: ctx, stack: s}
}

// Next returns the next BlockEvent. At the end of input it returns io.EOF,
// after which it must not be called again. A fatal container overflow
// returns ErrOutOfStackSpace without closing the containers still open; the
// call after it returns io.EOF.
func (p *Parser) Next() (events.Event, error) {
	if p.done {
		Unreachable("Next called after a terminal result")
	}

	for {
		if len(p.pending) > 0 {
			ev := p.pending[0]
			p.pending = p.pending[1:]
			return ev, nil
		}

		if p.isCleaningUp {
			if e, ok := p.stack.pop(); ok {
				return p.exitEventFor(e), nil
			}
			p.done = true
			return events.Event{}, io.EOF
		}

		switch p.state {
		case stateInSubParser:
			r := p.current.next(p.ctx)
			switch r.kind {
			case resultToYield:
				return r.event, nil
			case resultToPauseForNewLine:
				p.paused = p.current
				p.current = nil
				p.state = stateInRoot
			case resultDone:
				p.current = nil
				p.state = stateInRoot
			}

		case stateInRoot:
			res := p.parseRoot()
			switch res.kind {
			case rootToYield:
				return res.event, nil
			case rootToEnter:
				p.current = res.sub
				p.state = stateInSubParser
			case rootDone:
				p.isCleaningUp = true
			case rootFatal:
				// Drop the open containers unreported, so the next call
				// takes the cleanup path straight to io.EOF.
				for p.stack.len() > 0 {
					p.stack.pop()
				}
				p.isCleaningUp = true
				return events.Event{}, res.err
			}
		}
	}
}

type rootResultKind int

const (
	rootToYield rootResultKind = iota
	rootToEnter
	rootDone
	rootFatal
)

type rootResult struct {
	kind  rootResultKind
	event events.Event
	sub   subParser
	err   error
}

// exitEventFor builds the ExitBlock event for a container entry popped
// during cleanup or container-continuation failure.
func (p *Parser) exitEventFor(e stackEntry) events.Event {
	return events.Event{
		Type:      events.ExitBlock,
		ID:        e.id,
		StartLine: e.startLine,
		EndLine:   p.ctx.line,
	}
}

func (p *Parser) parseRoot() rootResult {
	if p.closing {
		if p.stack.len() > p.closeTarget {
			e, _ := p.stack.pop()
			return rootResult{kind: rootToYield, event: p.exitEventFor(e)}
		}
		p.closing = false
		sp := p.paused
		p.paused = nil
		if p.closeTarget < p.closeOrigin {
			sp.resumeFromPauseForNewLineAndExit()
		} else {
			sp.resumeFromPauseForNewLineAndContinue()
		}
		return rootResult{kind: rootToEnter, sub: sp}
	}

	if p.paused != nil {
		p.closeOrigin = p.stack.len()
		p.closeTarget = matchContainers(p.ctx, p.stack.asSlice())
		p.closing = true
		return p.parseRoot()
	}

	for {
		peeked, ok := p.ctx.mapper.peek1()
		if !ok {
			return rootResult{kind: rootDone}
		}

		switch peeked.kind {
		case mappedLineFeed, mappedBlankAtLineBeginning, mappedBlankLine:
			p.ctx.consumePeeked()
			continue
		case mappedText:
			return rootResult{kind: rootToEnter, sub: newParagraphParser(nil, p.nextBlockID(), p.ctx.line)}
		case mappedCharAt, mappedNextChar:
			if r, opened := p.tryOpenContainer(); opened {
				return r
			}
			satisfied := p.ctx.takeFromMapperAndApplyToCursorIfSatisfies(func(c *InputCursor) bool {
				b, ok := c.At(p.ctx.input)
				return ok && isSpaceChar(b)
			})
			if !satisfied {
				return p.dispatchLeaf()
			}
		}
	}
}

// dispatchLeaf is reached once leading whitespace and container markers
// have been consumed and the first significant character of the line has
// just been consumed into the cursor: it recognizes thematic breaks,
// headings and code blocks by that character plus the two that follow it,
// falling back to a paragraph.
func (p *Parser) dispatchLeaf() rootResult {
	first, _ := p.ctx.cursor.At(p.ctx.input)
	next := p.ctx.peekNextThreeChars() // the two chars after first, plus one more of lookahead

	switch {
	case first == '-' && matchesRun2(next, '-', '-'):
		p.ctx.mustTakeFromMapperAndApplyToCursor(2)
		p.ctx.dropFromMapperWhileChar('-')
		return rootResult{kind: rootToYield, event: events.Event{Type: events.ThematicBreak, ID: p.nextBlockID(), Line: p.ctx.line}}

	case first == '=':
		startIdx, _ := p.ctx.cursor.Value()
		dropped := p.ctx.dropFromMapperWhileCharWithMaximum('=', 5)
		if b, ok := p.ctx.peekNextChar(); ok && b == ' ' {
			p.ctx.mustTakeFromMapperAndApplyToCursor(1)
			return rootResult{kind: rootToEnter, sub: newHeadingParser(1+dropped, p.nextBlockID(), p.ctx.line)}
		}
		contentBefore := common.NewRange(startIdx, 1+dropped)
		return rootResult{kind: rootToEnter, sub: newParagraphParser(&contentBefore, p.nextBlockID(), p.ctx.line)}

	case first == '`' && matchesRun2(next, '`', '`'):
		p.ctx.mustTakeFromMapperAndApplyToCursor(2)
		extra := p.ctx.dropFromMapperWhileChar('`')
		return rootResult{kind: rootToEnter, sub: newCodeBlockParser(3+extra, p.nextBlockID(), p.ctx.line)}

	default:
		startIdx, _ := p.ctx.cursor.Value()
		contentBefore := common.NewRange(startIdx, 1)
		return rootResult{kind: rootToEnter, sub: newParagraphParser(&contentBefore, p.nextBlockID(), p.ctx.line)}
	}
}

// matchesRun2 reports whether the first two lookahead slots hold a and b.
func matchesRun2(three [3]*byte, a, b byte) bool {
	return three[0] != nil && *three[0] == a &&
		three[1] != nil && *three[1] == b
}

func isSpaceChar(c byte) bool {
	return c == ' ' || c == '\t'
}

package blockparser

import "github.com/umajho/rotext-lite/events"

// topMatchesWrapper reports whether the top of the stack is an open
// list/description-list wrapper of the given kind, so a new sibling item
// can be pushed under it instead of reopening the wrapper.
func (p *Parser) topMatchesWrapper(ck containerKind) bool {
	s := p.stack.asSlice()
	if len(s) == 0 {
		return false
	}
	return s[len(s)-1].ck == ck
}

// pushContainerStack assigns a fresh BlockID and pushes e onto the stack,
// reporting the now-complete entry (or the stack's overflow error).
func (p *Parser) pushContainerStack(e stackEntry) (stackEntry, error) {
	e.id = p.nextBlockID()
	e.startLine = p.ctx.line
	if err := p.stack.tryPush(e); err != nil {
		return stackEntry{}, err
	}
	return e, nil
}

// pushContainer assigns a fresh BlockID, pushes e onto the stack, and
// reports the Enter event to yield for it.
func (p *Parser) pushContainer(e stackEntry) rootResult {
	pushed, err := p.pushContainerStack(e)
	if err != nil {
		return rootResult{kind: rootFatal, err: err}
	}
	return rootResult{kind: rootToYield, event: events.Event{Type: pushed.kind, ID: pushed.id}}
}

// pushWrapperAndItem pushes a not-yet-open list/description wrapper and its
// first item in one step. A single parseRoot call can only yield one
// event, so the wrapper's Enter is returned to yield immediately and the
// item's Enter is queued on p.pending to be yielded right after it —
// otherwise the wrapper's stack entry would exist with no Enter event ever
// reaching the stream to match its eventual ExitBlock.
func (p *Parser) pushWrapperAndItem(wrapper, item stackEntry) rootResult {
	pushedWrapper, err := p.pushContainerStack(wrapper)
	if err != nil {
		return rootResult{kind: rootFatal, err: err}
	}
	pushedItem, err := p.pushContainerStack(item)
	if err != nil {
		return rootResult{kind: rootFatal, err: err}
	}
	p.pending = append(p.pending, events.Event{Type: pushedItem.kind, ID: pushedItem.id})
	return rootResult{kind: rootToYield, event: events.Event{Type: pushedWrapper.kind, ID: pushedWrapper.id}}
}

func (p *Parser) nextBlockID() events.BlockID {
	id := p.nextID
	p.nextID++
	return id
}

// tryOpenContainer inspects the bytes at the current position and, if they
// open a container (block quote, list item, description term/details),
// consumes the marker and returns the Enter event(s) to yield. It reports
// ok=false if nothing here opens a container.
func (p *Parser) tryOpenContainer() (rootResult, bool) {
	b, ok := p.ctx.peekNextChar()
	if !ok {
		return rootResult{}, false
	}

	switch {
	case b == '>':
		p.ctx.mustTakeFromMapperAndApplyToCursor(1)
		if b2, ok := p.ctx.peekNextChar(); ok && b2 == ' ' {
			p.ctx.mustTakeFromMapperAndApplyToCursor(1)
		}
		return p.pushContainer(stackEntry{kind: events.EnterBlockQuote, ck: containerBlockQuote}), true

	case isUnorderedListMarker(b):
		three := p.ctx.peekNextThreeChars()
		if three[1] == nil || *three[1] != ' ' {
			return rootResult{}, false
		}
		p.ctx.mustTakeFromMapperAndApplyToCursor(2)
		item := stackEntry{kind: events.EnterListItem, ck: containerListItem, width: 2}
		if !p.topMatchesWrapper(containerUnorderedList) {
			return p.pushWrapperAndItem(stackEntry{kind: events.EnterUnorderedList, ck: containerUnorderedList, marker: b}, item), true
		}
		return p.pushContainer(item), true

	case isASCIIDigit(b):
		width, ok := p.consumeOrderedMarker()
		if !ok {
			return rootResult{}, false
		}
		item := stackEntry{kind: events.EnterListItem, ck: containerListItem, width: width}
		if !p.topMatchesWrapper(containerOrderedList) {
			return p.pushWrapperAndItem(stackEntry{kind: events.EnterOrderedList, ck: containerOrderedList}, item), true
		}
		return p.pushContainer(item), true

	case b == ':':
		three := p.ctx.peekNextThreeChars()
		isDouble := three[1] != nil && *three[1] == ':'
		if isDouble {
			if three[2] == nil || *three[2] != ' ' {
				return rootResult{}, false
			}
			p.ctx.mustTakeFromMapperAndApplyToCursor(3)
			item := stackEntry{kind: events.EnterDescriptionDetails, ck: containerDescriptionDetails, width: 3}
			if !p.topMatchesWrapper(containerDescriptionList) {
				return p.pushWrapperAndItem(stackEntry{kind: events.EnterDescriptionList, ck: containerDescriptionList}, item), true
			}
			return p.pushContainer(item), true
		}
		if three[1] == nil || *three[1] != ' ' {
			return rootResult{}, false
		}
		p.ctx.mustTakeFromMapperAndApplyToCursor(2)
		item := stackEntry{kind: events.EnterDescriptionTerm, ck: containerDescriptionTerm, width: 2}
		if !p.topMatchesWrapper(containerDescriptionList) {
			return p.pushWrapperAndItem(stackEntry{kind: events.EnterDescriptionList, ck: containerDescriptionList}, item), true
		}
		return p.pushContainer(item), true
	}

	return rootResult{}, false
}

// consumeOrderedMarker consumes a run of digits followed by '.' or ')' and
// a space, reporting the total marker width (digits + delimiter + space).
// It only commits the consumption once the whole marker (delimiter and
// trailing space included) is confirmed present.
func (p *Parser) consumeOrderedMarker() (int, bool) {
	charIs := func(depth int, pred func(byte) bool) bool {
		m, ok := p.ctx.mapper.peekAt(depth)
		if !ok {
			return false
		}
		idx, ok := p.ctx.resolveCharIndex(m)
		return ok && pred(p.ctx.input[idx])
	}
	digits := 0
	for charIs(digits, isASCIIDigit) {
		digits++
	}
	if digits == 0 || !charIs(digits, func(b byte) bool { return b == '.' || b == ')' }) ||
		!charIs(digits+1, func(b byte) bool { return b == ' ' }) {
		return 0, false
	}
	p.ctx.mustTakeFromMapperAndApplyToCursor(digits + 2)
	return digits + 2, true
}

package blockparser

import "github.com/umajho/rotext-lite/events"

// containerKind enumerates the container blocks this implementation
// supports beyond what the reference snapshot implements (whose StackEntry
// enum is empty): block quotes, ordered/unordered lists and their items,
// and description lists.
type containerKind int

const (
	containerBlockQuote containerKind = iota
	containerOrderedList
	containerUnorderedList
	containerListItem
	containerDescriptionList
	containerDescriptionTerm
	containerDescriptionDetails
)

// stackEntry is one open container frame on the block stack.
type stackEntry struct {
	kind events.Type // EnterBlockQuote/EnterOrderedList/.../EnterDescriptionDetails
	ck   containerKind
	id   events.BlockID

	// width is the number of input bytes (marker plus following spaces)
	// a continuation line of this container must reproduce as indent to
	// continue it. Block quotes consume their own marker afresh on every
	// line instead (see matchBlockQuoteMarker) so width is unused there.
	width int

	// marker records the bullet byte that opened an unordered list (it is
	// left zero for ordered lists). Nothing reads it: a new item continues
	// the open list of its kind whatever its bullet or delimiter.
	marker byte

	startLine int
}

// matchContainers attempts to continue each open container entry, from
// outermost to innermost, against the bytes at the block parser's current
// line position. It consumes the continuation marker of every entry that
// matches and stops at the first one that doesn't. The root parser is
// responsible for popping and closing (emitting ExitBlock for) everything
// from the returned count up.
func matchContainers(ctx *blockContext, entries []stackEntry) int {
	matched := 0
	for _, e := range entries {
		switch e.ck {
		case containerBlockQuote:
			if !matchBlockQuoteMarker(ctx) {
				return matched
			}
		case containerListItem, containerDescriptionTerm, containerDescriptionDetails:
			if !matchIndent(ctx, e.width) {
				return matched
			}
		case containerOrderedList, containerUnorderedList, containerDescriptionList:
			// Wrapper entries carry no marker of their own: their
			// continuation is entirely decided by whichever child entry
			// (item/term/details) matched, or fails to, right after them.
		}
		matched++
	}
	return matched
}

// matchBlockQuoteMarker consumes up to 3 leading spaces, then a '>', then at
// most one following space, reporting whether the '>' was present.
func matchBlockQuoteMarker(ctx *blockContext) bool {
	dropSpacesUpTo(ctx, 3)
	b, ok := ctx.peekNextChar()
	if !ok || b != '>' {
		return false
	}
	ctx.mustTakeFromMapperAndApplyToCursor(1)
	if b2, ok := ctx.peekNextChar(); ok && b2 == ' ' {
		ctx.mustTakeFromMapperAndApplyToCursor(1)
	}
	return true
}

// matchIndent reports whether at least width bytes of space indentation are
// present, consuming exactly width of them if so (or, at the very start of a
// line, where the mapper folds the spaces into one BlankAtLineBeginning
// item, that whole item).
func matchIndent(ctx *blockContext, width int) bool {
	if m, ok := ctx.mapper.peek1(); ok && m.kind == mappedBlankAtLineBeginning {
		if m.blank.Length() < width {
			return false
		}
		ctx.consumePeeked()
		return true
	}
	n := ctx.dropFromMapperWhileCharWithMaximum(' ', width)
	return n == width
}

func dropSpacesUpTo(ctx *blockContext, max int) int {
	if m, ok := ctx.mapper.peek1(); ok && m.kind == mappedBlankAtLineBeginning {
		if m.blank.Length() > max {
			return 0
		}
		ctx.consumePeeked()
		return m.blank.Length()
	}
	return ctx.dropFromMapperWhileCharWithMaximum(' ', max)
}

// isUnorderedListMarker reports whether c is one of the bullet characters
// that, followed by a space, opens an unordered list item.
func isUnorderedListMarker(c byte) bool {
	return c == '-' || c == '*' || c == '+'
}

// isASCIIDigit reports whether c is a decimal digit.
func isASCIIDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Package events defines the single event taxonomy shared by every stage of
// the rotext pipeline (global, block, inline, blend). Each stage only ever
// produces and consumes a subset of Types; which subset is documented on the
// stage, not enforced by the Go type system — narrowing is a convention, the
// same way it is a #[subenum(...)] projection in the reference source.
package events

import "github.com/umajho/rotext-lite/common"

// Type discriminates an Event. Numeric values are arbitrary but stable,
// mirroring the reserved-by-kind taxonomy the reference implementation
// keeps across stages.
type Type uint8

const (
	// Unparsed carries a run of bytes whose ultimate interpretation
	// (block trivia vs. inline content) is deferred to a later stage.
	Unparsed Type = 255

	// NewLine, VerbatimEscaping originate in the global stage.
	NewLine          Type = 201
	VerbatimEscaping Type = 202

	// Text is produced by the block and inline stages.
	Text Type = 203

	// LineBreak is produced by the inline stage (a backslash immediately
	// before a newline) and forwarded unchanged by the blend stage.
	LineBreak Type = 204

	// ThematicBreak and the Enter*/Indicate*/ExitBlock family are produced
	// by the block stage.
	ThematicBreak           Type = 8
	EnterParagraph          Type = 7
	EnterHeading1           Type = 1
	EnterHeading2           Type = 2
	EnterHeading3           Type = 3
	EnterHeading4           Type = 4
	EnterHeading5           Type = 5
	EnterHeading6           Type = 6
	EnterBlockQuote         Type = 11
	EnterOrderedList        Type = 12
	EnterUnorderedList      Type = 13
	EnterListItem           Type = 14
	EnterDescriptionList    Type = 15
	EnterDescriptionTerm    Type = 16
	EnterDescriptionDetails Type = 17
	EnterCodeBlock          Type = 21
	IndicateCodeBlockCode   Type = 91
	ExitBlock               Type = 99
)

func (t Type) String() string {
	switch t {
	case Unparsed:
		return "Unparsed"
	case NewLine:
		return "NewLine"
	case VerbatimEscaping:
		return "VerbatimEscaping"
	case Text:
		return "Text"
	case LineBreak:
		return "LineBreak"
	case ThematicBreak:
		return "ThematicBreak"
	case EnterParagraph:
		return "EnterParagraph"
	case EnterHeading1, EnterHeading2, EnterHeading3, EnterHeading4, EnterHeading5, EnterHeading6:
		lvl, _ := HeadingLevel(t)
		return "EnterHeading" + string(rune('0'+lvl))
	case EnterBlockQuote:
		return "EnterBlockQuote"
	case EnterOrderedList:
		return "EnterOrderedList"
	case EnterUnorderedList:
		return "EnterUnorderedList"
	case EnterListItem:
		return "EnterListItem"
	case EnterDescriptionList:
		return "EnterDescriptionList"
	case EnterDescriptionTerm:
		return "EnterDescriptionTerm"
	case EnterDescriptionDetails:
		return "EnterDescriptionDetails"
	case EnterCodeBlock:
		return "EnterCodeBlock"
	case IndicateCodeBlockCode:
		return "IndicateCodeBlockCode"
	case ExitBlock:
		return "ExitBlock"
	default:
		return "Unknown"
	}
}

// HeadingLevel reports the heading level (1..6) encoded by t, if t is one of
// the EnterHeading* types.
func HeadingLevel(t Type) (int, bool) {
	if t >= EnterHeading1 && t <= EnterHeading6 {
		return int(t), true
	}
	return 0, false
}

// EnterHeadingType returns the EnterHeading<level> type for level in 1..6.
func EnterHeadingType(level int) Type {
	return Type(level)
}

// BlockID is a per-parse monotonically increasing identifier assigned to
// every opened block, used by the idtable side table.
type BlockID uint32

// Event is the flat representation of every event this module produces.
// Only the fields relevant to Type are meaningful; see the comment on each
// field for which Types populate it.
type Event struct {
	Type Type

	// Range is the payload for Unparsed, VerbatimEscaping and Text.
	Range common.Range

	// IsClosedForcedly is set on VerbatimEscaping when end-of-input closed
	// the span instead of a matching backtick run.
	IsClosedForcedly bool

	// LineNumberAfter is set on the global stage's NewLine and
	// VerbatimEscaping events: the line number in effect immediately after
	// the event. NewLine events from the block stage leave it zero.
	LineNumberAfter int

	// ID is set on every Enter*, ThematicBreak and ExitBlock event.
	ID BlockID

	// Line is set on ThematicBreak: the line it occurred on.
	Line int

	// StartLine, EndLine are set on ExitBlock: the lines spanned by the
	// block being closed.
	StartLine int
	EndLine   int
}

// Content returns the payload bytes for Unparsed/VerbatimEscaping/Text
// events, and false for every other Type.
func (e Event) Content(input []byte) (string, bool) {
	switch e.Type {
	case Unparsed, VerbatimEscaping, Text:
		return e.Range.Content(input), true
	default:
		return "", false
	}
}

// OpensInlinePhase reports whether e is one of the block events after which
// the blend layer should hand Unparsed runs to the inline parser.
func OpensInlinePhase(t Type) bool {
	switch t {
	case EnterParagraph, EnterHeading1, EnterHeading2, EnterHeading3, EnterHeading4, EnterHeading5, EnterHeading6, IndicateCodeBlockCode:
		return true
	default:
		return false
	}
}

// ClosesInlinePhase reports whether e is one of the block events that ends
// an inline-admitting run.
func ClosesInlinePhase(t Type) bool {
	return t == ExitBlock || t == IndicateCodeBlockCode
}

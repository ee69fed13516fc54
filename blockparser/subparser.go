package blockparser

import "github.com/umajho/rotext-lite/events"

// subParserResultKind discriminates subParserResult, mirroring the
// cooperative pause protocol every sub-parser speaks with the root parser.
type subParserResultKind int

const (
	resultToYield subParserResultKind = iota
	resultToPauseForNewLine
	resultDone
)

// subParserResult is what a sub-parser hands back from one step.
type subParserResult struct {
	kind  subParserResultKind
	event events.Event
}

// subParser is implemented by every block-level leaf parser (paragraph,
// heading, code block). It's a closed set of concrete types rather than an
// open interface elsewhere in the pipeline, so the root parser's state
// machine holds one of exactly these kinds at a time.
type subParser interface {
	next(ctx *blockContext) subParserResult
	resumeFromPauseForNewLineAndContinue()
	resumeFromPauseForNewLineAndExit()
}

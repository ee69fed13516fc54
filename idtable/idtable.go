// Package idtable builds the optional block-id/line-number side table: a
// text table of `id:start-end;…` pairs, one per block, derived from the
// final event stream's ThematicBreak and ExitBlock events.
package idtable

import (
	"fmt"
	"io"
	"strings"

	"github.com/umajho/rotext-lite/events"
)

// source is what Build pulls events from.
type source interface {
	Next() (events.Event, error)
}

// Build drains source to completion and returns its id table.
//
// ThematicBreak has no span of its own — it contributes one entry whose
// start and end both equal the line it occurred on. ExitBlock contributes
// one entry spanning StartLine..EndLine. Every other event type is
// ignored.
func Build(source source) (string, error) {
	var b strings.Builder
	for {
		ev, err := source.Next()
		if err == io.EOF {
			return b.String(), nil
		}
		if err != nil {
			return "", err
		}

		switch ev.Type {
		case events.ThematicBreak:
			fmt.Fprintf(&b, "%d:%d-%d;", ev.ID, ev.Line, ev.Line)
		case events.ExitBlock:
			fmt.Fprintf(&b, "%d:%d-%d;", ev.ID, ev.StartLine, ev.EndLine)
		}
	}
}

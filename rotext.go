// Package rotext wires the full pipeline — global lexer, block parser,
// inline phase, blend layer and renderer — into the single entry point a
// caller actually wants: turn a byte buffer into HTML.
package rotext

import (
	"io"

	"github.com/umajho/rotext-lite/blend"
	"github.com/umajho/rotext-lite/blockparser"
	"github.com/umajho/rotext-lite/events"
	"github.com/umajho/rotext-lite/global"
	"github.com/umajho/rotext-lite/idtable"
	"github.com/umajho/rotext-lite/render"
)

// initialOutputCapacity mirrors lib.rs's RenderToHTMLOptions default.
const initialOutputCapacity = 20_000

// maxContainerDepth bounds the block stack ParseAndRenderToHTML builds, so
// pathological input (e.g. thousands of nested block quotes) fails fast
// with ErrOutOfStackSpace instead of growing without bound.
const maxContainerDepth = 256

// ParseAndRenderToHTML runs the full pipeline over input and returns the
// rendered HTML. It's the Go analogue of lib.rs's
// parse_and_render_to_html.
func ParseAndRenderToHTML(input []byte) (string, error) {
	mapper := newBlendMapper(input)
	return render.ToHTML(input, mapper, render.Options{InitialCapacity: initialOutputCapacity})
}

// IDTable runs the pipeline over input and returns its block-id/line-number
// side table instead of HTML.
func IDTable(input []byte) (string, error) {
	g := global.NewParser(input)
	bp := blockparser.NewBoundedParser(input, g, maxContainerDepth)
	return idtable.Build(bp)
}

func newBlendMapper(input []byte) *blend.Mapper {
	g := global.NewParser(input)
	bp := blockparser.NewBoundedParser(input, g, maxContainerDepth)
	return blend.NewMapper(input, bp)
}

// Events drains the full pipeline and returns every BlendEvent it produces,
// for callers that want the raw stream rather than rendered HTML (e.g. the
// WASM bindings spec.md describes but this module doesn't ship a build
// target for).
func Events(input []byte) ([]events.Event, error) {
	mapper := newBlendMapper(input)
	var out []events.Event
	for {
		ev, err := mapper.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
}

// Package render implements the final stage: a tag-stack HTML emitter
// driven by the blend-event stream, grounded on lib.rs's render_to_html
// and on the teacher's cmd/poc markdownWriter (push a closing tag on
// entry, pop and emit it on exit).
package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/shurcooL/sanitized_anchor_name"

	"github.com/umajho/rotext-lite/events"
)

// Options configures ToHTML.
type Options struct {
	// InitialCapacity preallocates the output buffer, mirroring lib.rs's
	// RenderToHTMLOptions.initial_output_string_capacity.
	InitialCapacity int
}

// blendSource is what ToHTML pulls BlendEvents from.
type blendSource interface {
	Next() (events.Event, error)
}

// ToHTML drains source to completion and returns the rendered HTML.
func ToHTML(input []byte, source blendSource, opts Options) (string, error) {
	r := &renderer{input: input, source: source, buf: bytes.NewBuffer(make([]byte, 0, opts.InitialCapacity))}
	if err := r.run(); err != nil {
		return "", err
	}
	return r.buf.String(), nil
}

type renderer struct {
	input  []byte
	source blendSource
	buf    *bytes.Buffer
	stack  []string
}

func (r *renderer) run() error {
	for {
		ev, err := r.source.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := r.visit(ev); err != nil {
			return err
		}
	}
}

func (r *renderer) visit(ev events.Event) error {
	switch ev.Type {
	case events.Text:
		content, _ := ev.Content(r.input)
		writeEscapedText(r.buf, content)

	case events.LineBreak:
		r.buf.WriteString("<br>")

	case events.NewLine:
		// A bare multi-line continuation inside a block: the reference
		// render_to_html has no match arm for this case at all, since its
		// (missing) blend layer evidently resolves it before render ever
		// sees it. Treated here as the join a soft wrap implies.
		r.buf.WriteByte(' ')

	case events.ThematicBreak:
		r.buf.WriteString("<hr>")

	case events.EnterParagraph:
		r.push("</p>")
		r.buf.WriteString("<p>")

	case events.EnterHeading1, events.EnterHeading2, events.EnterHeading3,
		events.EnterHeading4, events.EnterHeading5, events.EnterHeading6:
		return r.visitHeading(ev)

	case events.EnterBlockQuote:
		r.push("</blockquote>")
		r.buf.WriteString("<blockquote>")

	case events.EnterUnorderedList:
		r.push("</ul>")
		r.buf.WriteString("<ul>")

	case events.EnterOrderedList:
		r.push("</ol>")
		r.buf.WriteString("<ol>")

	case events.EnterListItem:
		r.push("</li>")
		r.buf.WriteString("<li>")

	case events.EnterDescriptionList:
		r.push("</dl>")
		r.buf.WriteString("<dl>")

	case events.EnterDescriptionTerm:
		r.push("</dt>")
		r.buf.WriteString("<dt>")

	case events.EnterDescriptionDetails:
		r.push("</dd>")
		r.buf.WriteString("<dd>")

	case events.EnterCodeBlock:
		return r.visitCodeBlock()

	case events.ExitBlock:
		r.pop()

	default:
		return fmt.Errorf("render: unexpected event type %v", ev.Type)
	}
	return nil
}

// visitHeading buffers the heading's own text (to compute its anchor slug)
// before writing the opening tag, then replays the buffered events.
func (r *renderer) visitHeading(open events.Event) error {
	level, _ := events.HeadingLevel(open.Type)

	var inner []events.Event
	var text bytes.Buffer
	for {
		ev, err := r.source.Next()
		if err != nil {
			return err
		}
		if ev.Type == events.ExitBlock {
			break
		}
		inner = append(inner, ev)
		if content, ok := ev.Content(r.input); ok {
			text.WriteString(content)
		}
	}

	id := sanitized_anchor_name.Create(text.String())
	closing := fmt.Sprintf("</h%d>", level)
	r.buf.WriteString(fmt.Sprintf(`<h%d id="`, level))
	writeEscapedAttr(r.buf, id)
	r.buf.WriteString(`">`)
	for _, ev := range inner {
		if err := r.visit(ev); err != nil {
			return err
		}
	}
	r.buf.WriteString(closing)
	return nil
}

// visitCodeBlock collects the info-string Text events up to
// IndicateCodeBlockCode, writes them into the opening tag's attribute, then
// lets the remaining Text events up to ExitBlock flow through visit as
// ordinary code content.
func (r *renderer) visitCodeBlock() error {
	r.buf.WriteString(`<x-code-block info-string="`)
	for {
		ev, err := r.source.Next()
		if err != nil {
			return err
		}
		if ev.Type == events.IndicateCodeBlockCode {
			break
		}
		content, _ := ev.Content(r.input)
		writeEscapedAttr(r.buf, content)
	}
	r.buf.WriteString(`">`)
	r.push("</x-code-block>")
	return nil
}

func (r *renderer) push(closing string) {
	r.stack = append(r.stack, closing)
}

func (r *renderer) pop() {
	i := len(r.stack) - 1
	if i < 0 {
		return
	}
	r.buf.WriteString(r.stack[i])
	r.stack = r.stack[:i]
}

func writeEscapedText(dest *bytes.Buffer, s string) {
	for _, c := range s {
		switch c {
		case '<':
			dest.WriteString("&lt;")
		case '&':
			dest.WriteString("&amp;")
		default:
			dest.WriteRune(c)
		}
	}
}

func writeEscapedAttr(dest *bytes.Buffer, s string) {
	for _, c := range s {
		switch c {
		case '"':
			dest.WriteString("&quot;")
		case '&':
			dest.WriteString("&amp;")
		default:
			dest.WriteRune(c)
		}
	}
}

// Package view renders the HTML pages and fragments of the interview room.
package view

import (
	"context"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/a-h/templ"
)

// TimestampLayout formats comment creation times, e.g. "Mar 4, 2025 • 2:07 PM".
const TimestampLayout = "Jan 2, 2006 • 3:04 PM"

// FormatTimestamp renders t with TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// CommentCountLabel is the badge text for n comments.
func CommentCountLabel(n int) string {
	if n == 1 {
		return "1 Comment"
	}
	return strconv.Itoa(n) + " Comments"
}

// htmlWriter keeps the first write error so components can be written as a
// flat sequence of calls.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newWriter(ctx context.Context, w io.Writer) *htmlWriter {
	return &htmlWriter{ctx: ctx, w: w}
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) attr(name, value string) {
	h.raw(" " + name + "=\"" + templ.EscapeString(value) + "\"")
}

func (h *htmlWriter) jsonAttr(name string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		if h.err == nil {
			h.err = err
		}
		return
	}
	h.attr(name, string(b))
}

// timestamp writes t as a <time> element. The datetime attribute carries the
// UTC instant so the browser can render it in the viewer's zone.
func (h *htmlWriter) timestamp(t time.Time) {
	h.raw(`<time`)
	h.attr("datetime", t.UTC().Format(time.RFC3339))
	h.raw(`>`)
	h.text(FormatTimestamp(t))
	h.raw(`</time>`)
}

func (h *htmlWriter) component(c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

// component adapts a flat write function into a templ.Component.
func component(fn func(h *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(ctx, w)
		fn(h)
		return h.err
	})
}

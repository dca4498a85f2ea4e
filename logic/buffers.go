package logic

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/V9S/Mindustry/world"
)

// TextBuffer accumulates print output up to a fixed capacity; appends
// past the cap are dropped silently.
type TextBuffer struct {
	b   strings.Builder
	cap int
}

func NewTextBuffer(capacity int) *TextBuffer {
	return &TextBuffer{cap: capacity}
}

func (t *TextBuffer) Len() int { return t.b.Len() }

// Full reports whether the buffer has reached capacity.
func (t *TextBuffer) Full() bool { return t.b.Len() >= t.cap }

// Append adds text, truncating at capacity. Truncation never splits a
// multi-byte rune.
func (t *TextBuffer) Append(s string) {
	space := t.cap - t.b.Len()
	if space <= 0 {
		return
	}
	if len(s) > space {
		s = s[:truncPoint(s, space)]
	}
	t.b.WriteString(s)
}

// truncPoint backs a byte cut off to the nearest rune boundary.
func truncPoint(s string, cut int) int {
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return cut
}

// AppendNum renders a number: values within 1e-5 of an integer print
// without a decimal point.
func (t *TextBuffer) AppendNum(v float64) {
	if math.Abs(v-float64(int64(v))) < 0.00001 {
		t.Append(strconv.FormatInt(int64(v), 10))
	} else {
		t.Append(strconv.FormatFloat(v, 'g', -1, 64))
	}
}

func (t *TextBuffer) String() string { return t.b.String() }

// Format substitutes s for the lowest-numbered {0}..{9} placeholder in
// the buffer. Reports whether a placeholder was found.
func (t *TextBuffer) Format(s string) bool {
	text := t.b.String()
	best, at := 10, -1
	for i := 0; i+2 < len(text); i++ {
		if text[i] == '{' && text[i+2] == '}' && text[i+1] >= '0' && text[i+1] <= '9' {
			if d := int(text[i+1] - '0'); d < best {
				best, at = d, i
			}
		}
	}
	if at < 0 {
		return false
	}
	out := text[:at] + s + text[at+3:]
	if len(out) > t.cap {
		out = out[:truncPoint(out, t.cap)]
	}
	t.b.Reset()
	t.b.WriteString(out)
	return true
}

// Clear resets the buffer.
func (t *TextBuffer) Clear() { t.b.Reset() }

// GraphicsBuffer is the bounded queue of packed display commands built
// up by draw instructions until a flush moves them to a display.
type GraphicsBuffer struct {
	cmds []DisplayCmd
	cap  int
}

func NewGraphicsBuffer(capacity int) *GraphicsBuffer {
	return &GraphicsBuffer{cap: capacity}
}

func (g *GraphicsBuffer) Len() int { return len(g.cmds) }

// Full reports whether the queue has reached capacity.
func (g *GraphicsBuffer) Full() bool { return len(g.cmds) >= g.cap }

// Push enqueues a command; pushes past the cap are dropped.
func (g *GraphicsBuffer) Push(cmd DisplayCmd) {
	if g.Full() {
		return
	}
	g.cmds = append(g.cmds, cmd)
}

// Commands returns the queued commands without clearing.
func (g *GraphicsBuffer) Commands() []DisplayCmd { return g.cmds }

// Clear drops all queued commands.
func (g *GraphicsBuffer) Clear() { g.cmds = g.cmds[:0] }

// FlushTo appends all queued commands to a display queue if they fit
// under the display cap, then clears the buffer either way.
func (g *GraphicsBuffer) FlushTo(q *world.DisplayQueue) {
	if q.CanAccept(len(g.cmds)) {
		for _, c := range g.cmds {
			q.Push(uint64(c))
		}
	}
	g.Clear()
}

// ToString renders a printed object the way the print instruction does.
func ToString(obj any) string {
	switch v := obj.(type) {
	case nil:
		return "null"
	case string:
		return v
	case *world.Block:
		if v.Name == "stone-wall" {
			return "solid"
		}
		return v.Name
	case world.Content:
		return v.ContentName()
	case *world.Building:
		return v.Block.Name
	case *world.Unit:
		return v.Type.Name
	case *world.Team:
		return v.Name
	case interface{ String() string }:
		return v.String()
	default:
		return "[object]"
	}
}

package logic

import (
	"math"

	"github.com/V9S/Mindustry/world"
)

// PrintInst appends one value to the text buffer. Appends past the
// buffer cap are dropped.
type PrintInst struct {
	Value int
}

func (in *PrintInst) Execute(ex *Executor) {
	if ex.Text.Full() {
		return
	}
	v := ex.Var(in.Value)
	if v.IsObj {
		ex.Text.Append(ToString(v.ObjVal))
	} else {
		ex.Text.AppendNum(v.NumVal)
	}
}

// FormatInst substitutes a value for the lowest-numbered {N}
// placeholder currently in the text buffer.
type FormatInst struct {
	Value int
}

func (in *FormatInst) Execute(ex *Executor) {
	if ex.Text.Full() {
		return
	}
	v := ex.Var(in.Value)
	if v.IsObj {
		ex.Text.Format(ToString(v.ObjVal))
	} else {
		t := NewTextBuffer(MaxTextBuffer)
		t.AppendNum(v.NumVal)
		ex.Text.Format(t.String())
	}
}

// PrintFlushInst moves the text buffer into a message building. The
// buffer clears whether or not the target accepts it.
type PrintFlushInst struct {
	Target int
}

func (in *PrintFlushInst) Execute(ex *Executor) {
	b := ex.Building(in.Target)
	if b != nil && b.Valid() && b.Block.IsMessage && (ex.Privileged || b.Team == ex.Team) {
		text := ex.Text.String()
		if len(text) > MaxTextBuffer {
			text = text[:MaxTextBuffer]
		}
		b.Message = text
	}
	ex.Text.Clear()
}

// MessageType selects the notification channel a message flush uses.
type MessageType int

const (
	MessageNotify MessageType = iota
	MessageAnnounce
	MessageToast
	MessageMission
)

var messageTypeNames = map[string]MessageType{
	"notify": MessageNotify, "announce": MessageAnnounce,
	"toast": MessageToast, "mission": MessageMission,
}

// MessageTypeByName resolves a message channel tag, ok=false when unknown.
func MessageTypeByName(name string) (MessageType, bool) {
	m, ok := messageTypeNames[name]
	return m, ok
}

// FlushMessageInst sends the text buffer as a notification. On headless
// hosts the text is discarded but the flush still reports success so
// programs do not spin on it.
type FlushMessageInst struct {
	Type       MessageType
	Duration   int
	OutSuccess int
}

func (in *FlushMessageInst) Execute(ex *Executor) {
	if ex.W.Headless {
		ex.Text.Clear()
		ex.SetBool(in.OutSuccess, true)
		return
	}
	ex.W.Notifications = append(ex.W.Notifications, ex.Text.String())
	ex.Text.Clear()
	ex.SetBool(in.OutSuccess, true)
}

// DrawInst packs one graphics command into the executor's graphics
// buffer. Headless hosts skip draw work entirely.
type DrawInst struct {
	Cmd                  DrawCmd
	X, Y, P1, P2, P3, P4 int
}

func (in *DrawInst) Execute(ex *Executor) {
	if ex.W.Headless {
		return
	}
	if ex.Graphics.Full() {
		return
	}

	switch in.Cmd {
	case CmdColorPack:
		// a packed double color unpacks into a plain color command
		bits := uint32(math.Float64bits(ex.Num(in.X)))
		r := PackUnsigned(int(bits >> 24 & 0xff))
		g := PackUnsigned(int(bits >> 16 & 0xff))
		b := PackUnsigned(int(bits >> 8 & 0xff))
		a := PackUnsigned(int(bits & 0xff))
		ex.Graphics.Push(PackDisplayCmd(CmdColor, r, g, b, a, 0, 0))
	case CmdPrint:
		in.layoutText(ex)
	case CmdImage:
		c, ok := ex.Obj(in.P1).(world.Content)
		if !ok {
			return
		}
		ex.Graphics.Push(PackDisplayCmd(CmdImage,
			PackOperand(ex.NumI(in.X)), PackOperand(ex.NumI(in.Y)),
			PackUnsigned(c.ContentID()), PackOperand(ex.NumI(in.P2)),
			PackOperand(ex.NumI(in.P3)), PackUnsigned(int(c.ContentKind()))))
	default:
		ex.Graphics.Push(PackDisplayCmd(in.Cmd,
			PackOperand(ex.NumI(in.X)), PackOperand(ex.NumI(in.Y)),
			PackOperand(ex.NumI(in.P1)), PackOperand(ex.NumI(in.P2)),
			PackOperand(ex.NumI(in.P3)), PackOperand(ex.NumI(in.P4))))
	}
}

// layoutText turns the text buffer into per-glyph print commands.
// The bounding box (longest line by line count) is anchored at the
// aligned origin; each newline resets the x cursor and steps one line
// down. P1 carries the raw alignment flags, not a variable slot.
func (in *DrawInst) layoutText(ex *Executor) {
	text := ex.Text.String()
	if len(text) == 0 {
		return
	}

	align := Align(in.P1)

	maxWidth, lineWidth, lines := 0, 0, 1
	for _, r := range text {
		if r == '\n' {
			maxWidth = max(maxWidth, lineWidth)
			lineWidth = 0
			lines++
		} else {
			lineWidth++
		}
	}
	maxWidth = max(maxWidth, lineWidth)

	width := maxWidth * glyphAdvance
	height := lines * glyphHeight

	ox := -width / 2
	if align.isLeft() {
		ox = 0
	} else if align.isRight() {
		ox = -width
	}
	oy := -height / 2
	if align.isBottom() {
		oy = 0
	} else if align.isTop() {
		oy = -height
	}
	oy += (lines - 1) * glyphHeight

	x, y := ex.NumI(in.X), ex.NumI(in.Y)
	for _, r := range text {
		if r == '\n' {
			y -= glyphHeight
			x = ex.NumI(in.X)
			continue
		}
		if hasGlyph(r) && !ex.Graphics.Full() {
			ex.Graphics.Push(PackDisplayCmd(CmdPrint,
				PackOperand(x+ox), PackOperand(y+oy),
				PackUnsigned(int(r)), 0, 0, 0))
		}
		x += glyphAdvance
	}
	ex.Text.Clear()
}

// DrawFlushInst moves the graphics buffer into a display building. The
// buffer clears whether or not the display accepts it.
type DrawFlushInst struct {
	Target int
}

func (in *DrawFlushInst) Execute(ex *Executor) {
	if ex.W.Headless {
		ex.Graphics.Clear()
		return
	}
	b := ex.Building(in.Target)
	if b != nil && b.Valid() && b.Block.IsDisplay && b.Display != nil && (ex.Privileged || b.Team == ex.Team) {
		ex.Graphics.FlushTo(b.Display)
	} else {
		ex.Graphics.Clear()
	}
}

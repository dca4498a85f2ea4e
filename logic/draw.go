package logic

// Display command codes. A packed word carries the command in the top
// nibble and six 10-bit signed-magnitude operands below it.
type DrawCmd int

const (
	CmdClear DrawCmd = iota
	CmdColor
	CmdColorPack // unpacked into CmdColor at emission time
	CmdStroke
	CmdLine
	CmdRect
	CmdLineRect
	CmdPoly
	CmdLinePoly
	CmdTriangle
	CmdImage
	CmdPrint
	CmdTranslate
	CmdScale
	CmdRotate
	CmdReset
)

var drawCmdNames = map[string]DrawCmd{
	"clear": CmdClear, "color": CmdColor, "col": CmdColorPack,
	"stroke": CmdStroke, "line": CmdLine, "rect": CmdRect,
	"lineRect": CmdLineRect, "poly": CmdPoly, "linePoly": CmdLinePoly,
	"triangle": CmdTriangle, "image": CmdImage, "print": CmdPrint,
	"translate": CmdTranslate, "scale": CmdScale, "rotate": CmdRotate,
	"reset": CmdReset,
}

// DrawCmdByName resolves a draw command tag, ok=false when unknown.
func DrawCmdByName(name string) (DrawCmd, bool) {
	c, ok := drawCmdNames[name]
	return c, ok
}

// DisplayCmd is one packed graphics command word: bits 0..59 hold six
// 10-bit operands (9 magnitude bits + sign bit each), bits 60..63 the
// command code.
type DisplayCmd uint64

const (
	opBits  = 10
	magMask = 0b0111111111
	signBit = 0b1000000000
)

// PackOperand encodes a value as 9 magnitude bits plus a sign bit.
func PackOperand(value int) uint64 {
	v := value
	if v < 0 {
		v = -v
	}
	packed := uint64(v) & magMask
	if value < 0 {
		packed |= signBit
	}
	return packed
}

// UnpackOperand decodes a signed-magnitude operand.
func UnpackOperand(packed uint64) int {
	v := int(packed & magMask)
	if packed&signBit != 0 {
		return -v
	}
	return v
}

// PackUnsigned encodes a value keeping only the 9 magnitude bits.
func PackUnsigned(value int) uint64 {
	return uint64(value) & magMask
}

// PackDisplayCmd assembles a command word from pre-packed operands.
func PackDisplayCmd(cmd DrawCmd, x, y, p1, p2, p3, p4 uint64) DisplayCmd {
	var w uint64
	for i, op := range [...]uint64{x, y, p1, p2, p3, p4} {
		w |= (op & (magMask | signBit)) << (uint(i) * opBits)
	}
	w |= uint64(cmd&0xf) << 60
	return DisplayCmd(w)
}

// Cmd extracts the command code.
func (d DisplayCmd) Cmd() DrawCmd { return DrawCmd(d >> 60) }

// Operand extracts operand i (0..5) as a signed value.
func (d DisplayCmd) Operand(i int) int {
	return UnpackOperand(uint64(d) >> (uint(i) * opBits))
}

// Glyph layout constants for the display print command.
const (
	glyphAdvance = 6
	glyphHeight  = 10
)

// hasGlyph reports whether the display font can render a rune.
func hasGlyph(r rune) bool { return r >= 32 && r < 127 }

// Text alignment flags, combinable.
type Align int

const (
	AlignCenter Align = 0
	AlignLeft   Align = 1 << iota
	AlignRight
	AlignTop
	AlignBottom
)

func (a Align) isLeft() bool   { return a&AlignLeft != 0 }
func (a Align) isRight() bool  { return a&AlignRight != 0 }
func (a Align) isTop() bool    { return a&AlignTop != 0 }
func (a Align) isBottom() bool { return a&AlignBottom != 0 }

var alignNames = map[string]Align{
	"center": AlignCenter,
	"left":   AlignLeft, "right": AlignRight,
	"top": AlignTop, "bottom": AlignBottom,
	"topLeft": AlignTop | AlignLeft, "topRight": AlignTop | AlignRight,
	"bottomLeft": AlignBottom | AlignLeft, "bottomRight": AlignBottom | AlignRight,
}

// AlignByName resolves an alignment tag, ok=false when unknown.
func AlignByName(name string) (Align, bool) {
	a, ok := alignNames[name]
	return a, ok
}

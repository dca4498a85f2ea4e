package logic

import "math"

// Op is an arithmetic/comparison operator tag. Binary operators may
// carry an object-aware form used only when both operands are objects.
type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpIDiv
	OpMod
	OpPow
	OpEqual
	OpNotEqual
	OpLogicAnd
	OpLessThan
	OpLessThanEq
	OpGreaterThan
	OpGreaterThanEq
	OpStrictEqual
	OpShl
	OpShr
	OpOr
	OpAnd
	OpXor
	OpMax
	OpMin
	OpAngle
	OpAngleDiff
	OpLen
	OpNoise
	OpNot
	OpAbs
	OpLog
	OpLog10
	OpFloor
	OpCeil
	OpSqrt
	OpRand
	OpSin
	OpCos
	OpTan
	OpASin
	OpACos
	OpATan
)

type opDef struct {
	name  string
	unary bool
	f1    func(a float64) float64
	f2    func(a, b float64) float64
	objF2 func(a, b any) float64
}

const degRad = math.Pi / 180

var opDefs = map[Op]opDef{
	OpAdd:  {name: "add", f2: func(a, b float64) float64 { return a + b }},
	OpSub:  {name: "sub", f2: func(a, b float64) float64 { return a - b }},
	OpMul:  {name: "mul", f2: func(a, b float64) float64 { return a * b }},
	OpDiv:  {name: "div", f2: func(a, b float64) float64 { return a / b }},
	OpIDiv: {name: "idiv", f2: func(a, b float64) float64 { return math.Floor(a / b) }},
	OpMod:  {name: "mod", f2: math.Mod},
	OpPow:  {name: "pow", f2: math.Pow},
	OpEqual: {name: "equal",
		f2:    func(a, b float64) float64 { return b2n(math.Abs(a-b) < 0.000001) },
		objF2: func(a, b any) float64 { return b2n(objEq(a, b)) }},
	OpNotEqual: {name: "notEqual",
		f2:    func(a, b float64) float64 { return b2n(math.Abs(a-b) >= 0.000001) },
		objF2: func(a, b any) float64 { return b2n(!objEq(a, b)) }},
	OpLogicAnd:      {name: "land", f2: func(a, b float64) float64 { return b2n(a != 0 && b != 0) }},
	OpLessThan:      {name: "lessThan", f2: func(a, b float64) float64 { return b2n(a < b) }},
	OpLessThanEq:    {name: "lessThanEq", f2: func(a, b float64) float64 { return b2n(a <= b) }},
	OpGreaterThan:   {name: "greaterThan", f2: func(a, b float64) float64 { return b2n(a > b) }},
	OpGreaterThanEq: {name: "greaterThanEq", f2: func(a, b float64) float64 { return b2n(a >= b) }},
	OpStrictEqual:   {name: "strictEqual"}, // handled structurally, not via tables
	OpShl:           {name: "shl", f2: func(a, b float64) float64 { return float64(int64(a) << uint64(int64(b)&63)) }},
	OpShr:           {name: "shr", f2: func(a, b float64) float64 { return float64(int64(a) >> uint64(int64(b)&63)) }},
	OpOr:            {name: "or", f2: func(a, b float64) float64 { return float64(int64(a) | int64(b)) }},
	OpAnd:           {name: "and", f2: func(a, b float64) float64 { return float64(int64(a) & int64(b)) }},
	OpXor:           {name: "xor", f2: func(a, b float64) float64 { return float64(int64(a) ^ int64(b)) }},
	OpMax:           {name: "max", f2: math.Max},
	OpMin:           {name: "min", f2: math.Min},
	OpAngle: {name: "angle", f2: func(x, y float64) float64 {
		ang := math.Atan2(y, x) / degRad
		if ang < 0 {
			ang += 360
		}
		return ang
	}},
	OpAngleDiff: {name: "angleDiff", f2: func(a, b float64) float64 {
		a = math.Mod(a, 360)
		b = math.Mod(b, 360)
		d := math.Abs(a - b)
		return math.Min(d, 360-d)
	}},
	OpLen:   {name: "len", f2: math.Hypot},
	OpNoise: {name: "noise", f2: valueNoise},
	OpNot:   {name: "not", unary: true, f1: func(a float64) float64 { return float64(^int64(a)) }},
	OpAbs:   {name: "abs", unary: true, f1: math.Abs},
	OpLog:   {name: "log", unary: true, f1: math.Log},
	OpLog10: {name: "log10", unary: true, f1: math.Log10},
	OpFloor: {name: "floor", unary: true, f1: math.Floor},
	OpCeil:  {name: "ceil", unary: true, f1: math.Ceil},
	OpSqrt:  {name: "sqrt", unary: true, f1: math.Sqrt},
	OpRand:  {name: "rand", unary: true}, // needs the executor RNG
	OpSin:   {name: "sin", unary: true, f1: func(a float64) float64 { return math.Sin(a * degRad) }},
	OpCos:   {name: "cos", unary: true, f1: func(a float64) float64 { return math.Cos(a * degRad) }},
	OpTan:   {name: "tan", unary: true, f1: func(a float64) float64 { return math.Tan(a * degRad) }},
	OpASin:  {name: "asin", unary: true, f1: func(a float64) float64 { return math.Asin(a) / degRad }},
	OpACos:  {name: "acos", unary: true, f1: func(a float64) float64 { return math.Acos(a) / degRad }},
	OpATan:  {name: "atan", unary: true, f1: func(a float64) float64 { return math.Atan(a) / degRad }},
}

var opNames = func() map[string]Op {
	m := make(map[string]Op, len(opDefs))
	for op, def := range opDefs {
		m[def.name] = op
	}
	return m
}()

// OpByName resolves an operator tag, ok=false when unknown.
func OpByName(name string) (Op, bool) {
	op, ok := opNames[name]
	return op, ok
}

func (op Op) String() string { return opDefs[op].name }

// objEq is structural equality for object operands.
func objEq(a, b any) bool { return a == b }

func b2n(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// valueNoise is a deterministic 2D gradient-free noise in [-1, 1],
// smooth-interpolated between hashed lattice values.
func valueNoise(x, y float64) float64 {
	x0, y0 := math.Floor(x), math.Floor(y)
	fx, fy := x-x0, y-y0
	sx := fx * fx * (3 - 2*fx)
	sy := fy * fy * (3 - 2*fy)

	v00 := latticeHash(int64(x0), int64(y0))
	v10 := latticeHash(int64(x0)+1, int64(y0))
	v01 := latticeHash(int64(x0), int64(y0)+1)
	v11 := latticeHash(int64(x0)+1, int64(y0)+1)

	a := v00 + sx*(v10-v00)
	b := v01 + sx*(v11-v01)
	return a + sy*(b-a)
}

func latticeHash(x, y int64) float64 {
	h := uint64(x)*0x9E3779B97F4A7C15 ^ uint64(y)*0xC2B2AE3D27D4EB4F
	h ^= h >> 29
	h *= 0xBF58476D1CE4E5B9
	h ^= h >> 32
	// map to [-1, 1]
	return float64(int64(h)) / math.MaxInt64
}

// CondOp is a jump/comparison operator tag.
type CondOp int

const (
	CondEqual CondOp = iota
	CondNotEqual
	CondLessThan
	CondLessThanEq
	CondGreaterThan
	CondGreaterThanEq
	CondStrictEqual
	CondAlways
)

type condDef struct {
	name string
	f    func(a, b float64) bool
	objF func(a, b any) bool
}

var condDefs = map[CondOp]condDef{
	CondEqual: {name: "equal",
		f:    func(a, b float64) bool { return math.Abs(a-b) < 0.000001 },
		objF: objEq},
	CondNotEqual: {name: "notEqual",
		f:    func(a, b float64) bool { return math.Abs(a-b) >= 0.000001 },
		objF: func(a, b any) bool { return !objEq(a, b) }},
	CondLessThan:      {name: "lessThan", f: func(a, b float64) bool { return a < b }},
	CondLessThanEq:    {name: "lessThanEq", f: func(a, b float64) bool { return a <= b }},
	CondGreaterThan:   {name: "greaterThan", f: func(a, b float64) bool { return a > b }},
	CondGreaterThanEq: {name: "greaterThanEq", f: func(a, b float64) bool { return a >= b }},
	CondStrictEqual:   {name: "strictEqual"},
	CondAlways:        {name: "always", f: func(a, b float64) bool { return true }},
}

var condNames = func() map[string]CondOp {
	m := make(map[string]CondOp, len(condDefs))
	for op, def := range condDefs {
		m[def.name] = op
	}
	return m
}()

// CondByName resolves a condition tag, ok=false when unknown.
func CondByName(name string) (CondOp, bool) {
	op, ok := condNames[name]
	return op, ok
}

func (op CondOp) String() string { return condDefs[op].name }

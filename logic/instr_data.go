package logic

import (
	"math"

	"github.com/V9S/Mindustry/world"
)

// NoopInst does nothing.
type NoopInst struct{}

func (NoopInst) Execute(*Executor) {}

// SetInst copies one slot into another, respecting the constant guard
// and the numeric/object duality. The counter slot is never overwritten
// with an object.
type SetInst struct {
	From, To int
}

func (in *SetInst) Execute(ex *Executor) {
	to := ex.Var(in.To)
	from := ex.Var(in.From)

	if to.Constant {
		return
	}
	if from.IsObj {
		if in.To != VarCounter {
			to.ObjVal = from.ObjVal
			to.IsObj = true
		}
	} else {
		if invalid(from.NumVal) {
			to.NumVal = 0
		} else {
			to.NumVal = from.NumVal
		}
		to.IsObj = false
	}
}

// OpInst applies an operator to one or two slots. Strict equality
// compares duality first, then value/identity; other binary operators
// use their object form only when both operands are objects.
type OpInst struct {
	Op   Op
	A, B int
	Dest int
}

func (in *OpInst) Execute(ex *Executor) {
	def := opDefs[in.Op]
	switch {
	case in.Op == OpStrictEqual:
		a, b := ex.Var(in.A), ex.Var(in.B)
		eq := a.IsObj == b.IsObj &&
			((a.IsObj && a.ObjVal == b.ObjVal) || (!a.IsObj && a.NumVal == b.NumVal))
		ex.SetBool(in.Dest, eq)
	case in.Op == OpRand:
		ex.SetNum(in.Dest, ex.Rand.ForSubsystem(SubsystemOps).Float64()*ex.Num(in.A))
	case def.unary:
		ex.SetNum(in.Dest, def.f1(ex.Num(in.A)))
	default:
		a, b := ex.Var(in.A), ex.Var(in.B)
		if def.objF2 != nil && a.IsObj && b.IsObj {
			ex.SetNum(in.Dest, def.objF2(ex.Obj(in.A), ex.Obj(in.B)))
		} else {
			ex.SetNum(in.Dest, def.f2(ex.Num(in.A), ex.Num(in.B)))
		}
	}
}

// LookupInst resolves content by kind and numeric id.
type LookupInst struct {
	Dest int
	From int
	Kind world.ContentKind
}

func (in *LookupInst) Execute(ex *Executor) {
	c := ex.W.Content.Lookup(in.Kind, ex.NumI(in.From))
	if c == nil {
		ex.SetObj(in.Dest, nil)
	} else {
		ex.SetObj(in.Dest, c)
	}
}

// PackColorInst packs four 0..1 components into one numeric slot whose
// bit pattern carries rgba8888, consumed by the draw color-pack command.
type PackColorInst struct {
	Result     int
	R, G, B, A int
}

func (in *PackColorInst) Execute(ex *Executor) {
	rgba := clampByte(ex.Num(in.R))<<24 | clampByte(ex.Num(in.G))<<16 |
		clampByte(ex.Num(in.B))<<8 | clampByte(ex.Num(in.A))
	ex.SetNum(in.Result, math.Float64frombits(uint64(rgba)))
}

func clampByte(v float64) uint32 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return uint32(v * 255)
}

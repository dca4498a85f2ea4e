package logic

import (
	"github.com/sirupsen/logrus"

	"github.com/V9S/Mindustry/world"
)

// MaxInstructions is the hard ceiling on instructions per tick.
const MaxInstructions = 1000

// DefaultIPT is the shared default instruction quota per tick.
const DefaultIPT = 8

// Special variable slots every compiled program carries.
const (
	VarCounter = 0
	VarUnit    = 1
	VarThis    = 2
)

// Buffer capacities.
const (
	MaxGraphicsBuffer = 256
	MaxTextBuffer     = 400
)

// TransferDelay is the per-unit cooldown (ticks) between item/payload
// transfer actions.
const TransferDelay = 60.0 / 8.0

// Executor runs one compiled program against the shared world, one
// instruction per Step call.
type Executor struct {
	Instructions []Instruction
	Vars         []*Var
	Counter      *Var

	// Binds holds the round-robin cursor per unit type id.
	Binds []int
	// Yield stops the host's dispatch loop for the current tick.
	Yield bool

	// IPTIndex is the slot of the @ipt variable, -1 when absent.
	IPTIndex int
	// IPT is the instruction quota per tick for this program.
	IPT int

	Graphics *GraphicsBuffer
	Text     *TextBuffer

	Links      []*world.Building
	linkIDs    map[int]bool
	Build      *world.Building // the processor's own building, may be nil
	Team       *world.Team
	Privileged bool

	W       *world.State
	Globals Globals
	Rand    *PartitionedRNG

	// last transfer-action time per unit id; entries persist for the
	// life of the executor, same minor leak as upstream
	unitTimeouts map[int]float64
}

// NewExecutor returns an executor bound to a world. Team defaults to
// derelict until the host assigns one.
func NewExecutor(w *world.State) *Executor {
	return &Executor{
		IPTIndex:     -1,
		IPT:          DefaultIPT,
		Graphics:     NewGraphicsBuffer(MaxGraphicsBuffer),
		Text:         NewTextBuffer(MaxTextBuffer),
		Team:         w.Derelict(),
		W:            w,
		Globals:      NewGlobalTable(),
		Rand:         NewPartitionedRNG(NewSimulationKey(0)),
		unitTimeouts: make(map[int]float64),
	}
}

// Initialized reports whether a program has been loaded.
func (ex *Executor) Initialized() bool { return len(ex.Instructions) > 0 }

// Step runs a single instruction: clamp the counter into range, then
// fetch, pre-increment, execute.
func (ex *Executor) Step() {
	if ex.Counter.NumVal >= float64(len(ex.Instructions)) || ex.Counter.NumVal < 0 {
		ex.Counter.NumVal = 0
	}

	if int(ex.Counter.NumVal) < len(ex.Instructions) {
		at := int(ex.Counter.NumVal)
		ex.Counter.NumVal++
		ex.Instructions[at].Execute(ex)
	}
}

// VarDef is one slot of the load contract's variable table.
type VarDef struct {
	ID       int
	Name     string
	Constant bool
	// Exactly one of Num/Obj is meaningful; IsObj selects.
	IsObj bool
	Num   float64
	Obj   any
}

// ProgramDef is the load contract: the compiled variable table and
// instruction array produced by an external assembler.
type ProgramDef struct {
	Vars         []VarDef
	Instructions []Instruction
}

// Load replaces the program wholesale: new variable array, new
// instruction array, all per-instruction cache and timer state
// discarded with the old instructions.
func (ex *Executor) Load(def ProgramDef) {
	size := 0
	for _, v := range def.Vars {
		if v.ID+1 > size {
			size = v.ID + 1
		}
	}
	ex.Vars = make([]*Var, size)
	ex.Instructions = def.Instructions
	ex.IPTIndex = -1

	for _, d := range def.Vars {
		// SyncTime starts outside the rate window so a fresh variable can
		// broadcast immediately
		v := &Var{Name: d.Name, Constant: d.Constant, SyncTime: -SyncInterval - 1}
		if d.IsObj {
			v.IsObj = true
			v.ObjVal = d.Obj
		} else {
			v.NumVal = d.Num
		}
		ex.Vars[d.ID] = v
		if d.Name == "@ipt" {
			ex.IPTIndex = d.ID
		}
	}
	for i, v := range ex.Vars {
		if v == nil {
			ex.Vars[i] = &Var{Name: "null", IsObj: true}
		}
	}

	ex.Counter = ex.Vars[VarCounter]
	if ex.Build != nil {
		ex.SetConst(VarThis, ex.Build)
	}
	if ex.IPTIndex >= 0 {
		ex.Vars[ex.IPTIndex].NumVal = float64(ex.IPT)
	}
	logrus.Debugf("loaded program: %d instructions, %d variables", len(def.Instructions), len(ex.Vars))
}

// SetLinks installs the authorized link set.
func (ex *Executor) SetLinks(links []*world.Building) {
	ex.Links = links
	ex.linkIDs = make(map[int]bool, len(links))
	for _, b := range links {
		ex.linkIDs[b.ID] = true
	}
}

// Linked reports whether a building id is in the authorized link set.
func (ex *Executor) Linked(id int) bool { return ex.linkIDs[id] }

func (ex *Executor) timeoutDone(u *world.Unit, delay float64) bool {
	last, ok := ex.unitTimeouts[u.ID]
	if !ok {
		return true
	}
	return ex.W.Time >= last+delay
}

func (ex *Executor) updateTimeout(u *world.Unit) {
	ex.unitTimeouts[u.ID] = ex.W.Time
}

// === typed accessors ===

// Var resolves a variable index. Negative indices address the global
// constant table after negation.
func (ex *Executor) Var(index int) *Var {
	if index < 0 {
		return ex.Globals.Var(-index, ex.Privileged)
	}
	return ex.Vars[index]
}

// OptionalVar resolves a local variable index, nil when out of bounds.
// Never resolves globals.
func (ex *Executor) OptionalVar(index int) *Var {
	if index < 0 || index >= len(ex.Vars) {
		return nil
	}
	return ex.Vars[index]
}

// Obj returns the object value of a slot, nil for numeric slots.
func (ex *Executor) Obj(index int) any {
	v := ex.Var(index)
	if v.IsObj {
		return v.ObjVal
	}
	return nil
}

// Building returns the slot's value as a building, nil otherwise.
func (ex *Executor) Building(index int) *world.Building {
	if b, ok := ex.Obj(index).(*world.Building); ok {
		return b
	}
	return nil
}

// TeamAt coerces a slot to a team: object slots must hold a team value,
// numeric slots index the fixed roster; out of range yields nil.
func (ex *Executor) TeamAt(index int) *world.Team {
	v := ex.Var(index)
	if v.IsObj {
		if t, ok := v.ObjVal.(*world.Team); ok {
			return t
		}
		return nil
	}
	return ex.W.Team(int(v.NumVal))
}

// Bool coerces a slot: objects are true iff non-null, numbers true iff
// their magnitude is at least 1e-5.
func (ex *Executor) Bool(index int) bool {
	v := ex.Var(index)
	if v.IsObj {
		return v.ObjVal != nil
	}
	return v.NumVal >= 0.00001 || v.NumVal <= -0.00001
}

// Num coerces a slot to a number: non-null objects are 1, null 0;
// NaN/Inf degrade to 0.
func (ex *Executor) Num(index int) float64 {
	v := ex.Var(index)
	if v.IsObj {
		if v.ObjVal != nil {
			return 1
		}
		return 0
	}
	if invalid(v.NumVal) {
		return 0
	}
	return v.NumVal
}

// NumI is Num truncated to int.
func (ex *Executor) NumI(index int) int { return int(ex.Num(index)) }

// SetBool stores a boolean as 0/1.
func (ex *Executor) SetBool(index int, value bool) {
	if value {
		ex.SetNum(index, 1)
	} else {
		ex.SetNum(index, 0)
	}
}

// SetNum stores a number, normalizing NaN/Inf to the null object.
func (ex *Executor) SetNum(index int, value float64) {
	v := ex.Var(index)
	if v.Constant {
		return
	}
	if invalid(value) {
		v.ObjVal = nil
		v.IsObj = true
	} else {
		v.NumVal = value
		v.ObjVal = nil
		v.IsObj = false
	}
}

// SetObj stores an object reference.
func (ex *Executor) SetObj(index int, value any) {
	v := ex.Var(index)
	if v.Constant {
		return
	}
	v.ObjVal = value
	v.IsObj = true
}

// SetConst stores an object reference bypassing the constant guard;
// used only to seed bind results, never exposed to program authors.
func (ex *Executor) SetConst(index int, value any) {
	v := ex.Var(index)
	v.ObjVal = value
	v.IsObj = true
}

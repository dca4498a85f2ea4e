package logic

import "math"

// Var is one register slot of a program: either a number or an object
// reference, with a constant flag and the last-sync timestamp used by
// the sync instruction.
type Var struct {
	Name string

	IsObj    bool
	Constant bool

	ObjVal any
	NumVal float64

	// SyncTime is the simulation millisecond this slot was last
	// broadcast; networking only.
	SyncTime int64
}

// NewNumVar returns a numeric variable.
func NewNumVar(name string, value float64) *Var {
	return &Var{Name: name, NumVal: value}
}

// NewObjVar returns an object variable.
func NewObjVar(name string, value any) *Var {
	return &Var{Name: name, IsObj: true, ObjVal: value}
}

func invalid(d float64) bool {
	return math.IsNaN(d) || math.IsInf(d, 0)
}

// Globals resolves the read-only global-constant table that negative
// variable indices address, and content-by-id lookups.
type Globals interface {
	// Var resolves global constant id (already negated to positive).
	// Unknown ids resolve to a shared null slot, never nil.
	Var(id int, privileged bool) *Var
}

// GlobalTable is a simple Globals implementation: a dense slot table
// with an optional privileged-only region.
type GlobalTable struct {
	vars       []*Var
	privileged map[int]bool
	null       *Var
}

// NewGlobalTable builds an empty global-constant table.
func NewGlobalTable() *GlobalTable {
	return &GlobalTable{
		privileged: make(map[int]bool),
		null:       &Var{Name: "null", IsObj: true, Constant: true},
	}
}

// Add registers a constant and returns the negative index programs use
// to address it.
func (g *GlobalTable) Add(v *Var) int {
	v.Constant = true
	g.vars = append(g.vars, v)
	return -len(g.vars)
}

// AddPrivileged registers a constant visible only to privileged
// programs.
func (g *GlobalTable) AddPrivileged(v *Var) int {
	id := g.Add(v)
	g.privileged[-id] = true
	return id
}

func (g *GlobalTable) Var(id int, privileged bool) *Var {
	idx := id - 1
	if idx < 0 || idx >= len(g.vars) {
		return g.null
	}
	if g.privileged[id] && !privileged {
		return g.null
	}
	return g.vars[idx]
}

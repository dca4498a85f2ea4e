package logic

import "github.com/V9S/Mindustry/world"

// canControl reports whether this executor may mutate a building:
// privileged programs control anything, unprivileged ones only
// same-team buildings in their link set.
func canControl(ex *Executor, b *world.Building) bool {
	return ex.Privileged || (b.Team == ex.Team && ex.Linked(b.ID))
}

// ControlInst applies a control order to a linked building.
type ControlInst struct {
	Control    world.Prop
	Target     int
	P1, P2, P3 int
}

func (in *ControlInst) Execute(ex *Executor) {
	b := ex.Building(in.Target)
	if b == nil || !b.Valid() || !canControl(ex, b) {
		return
	}

	switch in.Control {
	case world.PropEnabled:
		enable := ex.Bool(in.P1)
		if !enable {
			b.LastDisabler = ex.Build
		}
		b.Enabled = enable
	case world.PropShooting:
		b.ControlledTargetX = ex.Num(in.P1) * world.TileSize
		b.ControlledTargetY = ex.Num(in.P2) * world.TileSize
		b.ControlledShoot = ex.Bool(in.P3)
		b.ControlledTarget = nil
	case world.PropConfig:
		b.Config = ex.Obj(in.P1)
	}
}

// ControlTargetInst points a turret building at a live target object.
type ControlTargetInst struct {
	Target int
	Obj    int
	Shoot  int
}

func (in *ControlTargetInst) Execute(ex *Executor) {
	b := ex.Building(in.Target)
	if b == nil || !b.Valid() || !canControl(ex, b) {
		return
	}
	target := ex.Obj(in.Obj)
	if u, ok := target.(*world.Unit); ok && !u.Targetable(b.Team) {
		target = nil
	}
	b.ControlledTarget = target
	b.ControlledShoot = target != nil && ex.Bool(in.Shoot)
}

// GetLinkInst reads the link table by index; out of range yields null.
type GetLinkInst struct {
	Output int
	Index  int
}

func (in *GetLinkInst) Execute(ex *Executor) {
	i := ex.NumI(in.Index)
	if i < 0 || i >= len(ex.Links) {
		ex.SetObj(in.Output, nil)
		return
	}
	ex.SetObj(in.Output, ex.Links[i])
}

// memoryReadable reports whether this executor may read a memory bank.
// Reading requires team ownership unless privileged; privileged banks
// are opaque to unprivileged programs.
func memoryReadable(ex *Executor, b *world.Building) bool {
	if b.Memory == nil {
		return false
	}
	return ex.Privileged || (b.Team == ex.Team && !b.Block.Privileged)
}

// ReadInst reads one word from a memory bank, or one character code
// from a string. Out-of-range memory addresses read 0; out-of-range
// string positions read null.
type ReadInst struct {
	Output, Target, Position int
}

func (in *ReadInst) Execute(ex *Executor) {
	pos := ex.NumI(in.Position)

	switch from := ex.Obj(in.Target).(type) {
	case *world.Building:
		if !memoryReadable(ex, from) {
			ex.SetObj(in.Output, nil)
			return
		}
		if pos < 0 || pos >= len(from.Memory) {
			ex.SetNum(in.Output, 0)
			return
		}
		ex.SetNum(in.Output, from.Memory[pos])
	case string:
		if pos < 0 || pos >= len(from) {
			ex.SetObj(in.Output, nil)
			return
		}
		ex.SetNum(in.Output, float64(from[pos]))
	default:
		ex.SetObj(in.Output, nil)
	}
}

// WriteInst writes one word into a memory bank. Out-of-range addresses
// and unauthorized targets are no-ops.
type WriteInst struct {
	Value, Target, Position int
}

func (in *WriteInst) Execute(ex *Executor) {
	b := ex.Building(in.Target)
	if b == nil || !memoryReadable(ex, b) {
		return
	}
	pos := ex.NumI(in.Position)
	if pos < 0 || pos >= len(b.Memory) {
		return
	}
	b.Memory[pos] = ex.Num(in.Value)
}

// FetchKind selects what a fetch enumerates.
type FetchKind int

const (
	FetchUnit FetchKind = iota
	FetchUnitCount
	FetchPlayer
	FetchPlayerCount
	FetchCore
	FetchCoreCount
	FetchBuild
	FetchBuildCount
)

var fetchKindNames = map[string]FetchKind{
	"unit": FetchUnit, "unitCount": FetchUnitCount,
	"player": FetchPlayer, "playerCount": FetchPlayerCount,
	"core": FetchCore, "coreCount": FetchCoreCount,
	"build": FetchBuild, "buildCount": FetchBuildCount,
}

// FetchKindByName resolves a fetch tag, ok=false when unknown.
func FetchKindByName(name string) (FetchKind, bool) {
	k, ok := fetchKindNames[name]
	return k, ok
}

// FetchInst indexes a team's roster (units, players, cores, buildings
// of a block) or reads its size. Out-of-range indices yield null.
type FetchInst struct {
	Kind   FetchKind
	Output int
	Team   int
	Index  int
	Extra  int // unit type or block filter slot
}

func (in *FetchInst) Execute(ex *Executor) {
	team := ex.TeamAt(in.Team)
	if team == nil {
		ex.SetObj(in.Output, nil)
		return
	}
	i := ex.NumI(in.Index)

	switch in.Kind {
	case FetchUnit:
		roster := team.Units()
		if typ, ok := ex.Obj(in.Extra).(*world.UnitType); ok {
			roster = team.UnitCache(typ)
		}
		pick(ex, in.Output, i, len(roster), func(i int) any { return roster[i] })
	case FetchUnitCount:
		if typ, ok := ex.Obj(in.Extra).(*world.UnitType); ok {
			ex.SetNum(in.Output, float64(len(team.UnitCache(typ))))
		} else {
			ex.SetNum(in.Output, float64(len(team.Units())))
		}
	case FetchPlayer:
		roster := team.Players()
		pick(ex, in.Output, i, len(roster), func(i int) any { return roster[i] })
	case FetchPlayerCount:
		ex.SetNum(in.Output, float64(len(team.Players())))
	case FetchCore:
		roster := team.Cores()
		pick(ex, in.Output, i, len(roster), func(i int) any { return roster[i] })
	case FetchCoreCount:
		ex.SetNum(in.Output, float64(len(team.Cores())))
	case FetchBuild:
		block, _ := ex.Obj(in.Extra).(*world.Block)
		roster := team.Buildings(block)
		pick(ex, in.Output, i, len(roster), func(i int) any { return roster[i] })
	case FetchBuildCount:
		block, _ := ex.Obj(in.Extra).(*world.Block)
		ex.SetNum(in.Output, float64(len(team.Buildings(block))))
	}
}

func pick(ex *Executor, out, i, n int, at func(int) any) {
	if i < 0 || i >= n {
		ex.SetObj(out, nil)
		return
	}
	ex.SetObj(out, at(i))
}

package logic

import (
	"math"

	"github.com/V9S/Mindustry/world"
)

// SenseInst reads a property or content measurement off any senseable
// target. Sensing "dead" on a null target reads 1: absent means dead.
type SenseInst struct {
	From, To int
	Type     int
}

func (in *SenseInst) Execute(ex *Executor) {
	target := ex.Obj(in.From)
	sense := ex.Obj(in.Type)

	if target == nil {
		if p, ok := sense.(world.Prop); ok && p == world.PropDead {
			ex.SetNum(in.To, 1)
			return
		}
	}

	se, ok := target.(world.Senseable)
	if !ok {
		ex.SetObj(in.To, nil)
		return
	}

	switch s := sense.(type) {
	case world.Content:
		ex.SetNum(in.To, se.SenseContent(s))
	case world.Prop:
		if obj, isObj := se.SenseObject(s); isObj {
			ex.SetObj(in.To, obj)
		} else {
			ex.SetNum(in.To, se.Sense(s))
		}
	}
}

// RadarTarget is one boolean unit filter; a radar composes three with
// logical AND.
type RadarTarget int

const (
	TargetAny RadarTarget = iota
	TargetEnemy
	TargetAlly
	TargetPlayer
	TargetFlying
	TargetGround
	TargetBoss
)

var radarTargetNames = map[string]RadarTarget{
	"any": TargetAny, "enemy": TargetEnemy, "ally": TargetAlly,
	"player": TargetPlayer, "flying": TargetFlying,
	"ground": TargetGround, "boss": TargetBoss,
}

// RadarTargetByName resolves a filter tag, ok=false when unknown.
func RadarTargetByName(name string) (RadarTarget, bool) {
	t, ok := radarTargetNames[name]
	return t, ok
}

func (t RadarTarget) match(team *world.Team, u *world.Unit) bool {
	switch t {
	case TargetEnemy:
		return u.Team != team
	case TargetAlly:
		return u.Team == team
	case TargetPlayer:
		return u.Player
	case TargetFlying:
		return u.Type.Flying
	case TargetGround:
		return !u.Type.Flying
	case TargetBoss:
		return u.Type.Boss
	default:
		return true
	}
}

// RadarSort is the scoring function a radar maximizes.
type RadarSort int

const (
	SortDistance RadarSort = iota
	SortHealth
	SortMaxHealth
	SortFlag
)

var radarSortNames = map[string]RadarSort{
	"distance": SortDistance, "health": SortHealth,
	"maxHealth": SortMaxHealth, "flag": SortFlag,
}

// RadarSortByName resolves a sort tag, ok=false when unknown.
func RadarSortByName(name string) (RadarSort, bool) {
	s, ok := radarSortNames[name]
	return s, ok
}

func (s RadarSort) score(x, y float64, u *world.Unit) float64 {
	switch s {
	case SortHealth:
		return u.Health
	case SortMaxHealth:
		return u.MaxHealth
	case SortFlag:
		return u.Flag
	default:
		return -math.Hypot(u.X-x, u.Y-y)
	}
}

// RadarInst finds the best-scoring unit in range of a source building or
// controlled unit. Results are cached: building sources recompute on a
// fixed cadence (or when the source changes identity), unit sources on
// the controller's retarget timer. Ties keep the first candidate found;
// scan order follows the roster, which is the accepted nondeterminism.
type RadarInst struct {
	Target1, Target2, Target3 RadarTarget
	Sort                      RadarSort
	Radar, SortOrder, Output  int

	// cache: last result and the source it was computed from
	lastTarget     *world.Unit
	lastSourceBldg any
	timer          Interval
}

func (in *RadarInst) Execute(ex *Executor) {
	base := ex.Obj(in.Radar)

	sortDir := -1.0
	if ex.Bool(in.SortOrder) {
		sortDir = 1.0
	}

	var x, y, rng float64
	var team *world.Team
	var ctrl *world.LogicController

	switch src := base.(type) {
	case *world.Building:
		if !(ex.Privileged || src.Team == ex.Team) || src.Block.Range <= 0 {
			ex.SetObj(in.Output, nil)
			return
		}
		x, y, rng, team = src.X, src.Y, src.Block.Range, src.Team
	case *world.Unit:
		ctrl = checkLogicControl(ex, src)
		if ctrl == nil {
			ex.SetObj(in.Output, nil)
			return
		}
		x, y, rng, team = src.X, src.Y, src.Type.Range, src.Team
	default:
		ex.SetObj(in.Output, nil)
		return
	}

	var targeted *world.Unit
	_, isBuilding := base.(*world.Building)

	recompute := false
	if isBuilding {
		recompute = in.timer.Get(ex.W.Time, RadarPeriod) || in.lastSourceBldg != base
	} else {
		recompute = ctrl.CheckRetargetTimer(in, ex.W.Time)
	}

	if recompute {
		targeted = in.find(ex, base, team, x, y, rng, sortDir)
		if ctrl != nil {
			ctrl.ExecCache[in] = targeted
		}
		in.lastSourceBldg = base
		in.lastTarget = targeted
	} else {
		if ctrl != nil {
			targeted, _ = ctrl.ExecCache[in].(*world.Unit)
		} else {
			targeted = in.lastTarget
		}
	}

	if targeted == nil {
		ex.SetObj(in.Output, nil)
	} else {
		ex.SetObj(in.Output, targeted)
	}
}

func (in *RadarInst) find(ex *Executor, base any, team *world.Team, x, y, rng, sortDir float64) *world.Unit {
	enemies := in.Target1 == TargetEnemy || in.Target2 == TargetEnemy || in.Target3 == TargetEnemy
	allies := in.Target1 == TargetAlly || in.Target2 == TargetAlly || in.Target3 == TargetAlly

	var best *world.Unit
	bestValue := 0.0

	scan := func(t *world.Team) {
		ex.W.Nearby(t, x, y, rng, func(u *world.Unit) {
			if base == u || !u.Targetable(team) {
				return
			}
			if !in.Target1.match(team, u) || !in.Target2.match(team, u) || !in.Target3.match(team, u) {
				return
			}
			val := in.Sort.score(x, y, u) * sortDir
			if best == nil || val > bestValue {
				bestValue = val
				best = u
			}
		})
	}

	switch {
	case enemies:
		for _, t := range ex.W.Teams() {
			if t != team {
				scan(t)
			}
		}
	case !allies:
		for _, t := range ex.W.Teams() {
			scan(t)
		}
	default:
		scan(team)
	}
	return best
}

// LocateKind selects what a unit-locate searches for.
type LocateKind int

const (
	LocateOre LocateKind = iota
	LocateBuilding
	LocateSpawn
	LocateDamaged
)

var locateKindNames = map[string]LocateKind{
	"ore": LocateOre, "building": LocateBuilding,
	"spawn": LocateSpawn, "damaged": LocateDamaged,
}

// LocateKindByName resolves a locate tag, ok=false when unknown.
func LocateKindByName(name string) (LocateKind, bool) {
	k, ok := locateKindNames[name]
	return k, ok
}

// UnitLocateInst searches the whole map for ore, flagged buildings, a
// spawn point, or damaged allied buildings through the bound unit.
// Results are throttled on the controller's retarget timer and served
// from the per-instance cache in between.
type UnitLocateInst struct {
	Locate LocateKind
	Flag   world.BlockFlag
	Enemy  int
	Ore    int

	OutX, OutY, OutFound, OutBuild int

	cache locateCache
}

func (in *UnitLocateInst) Execute(ex *Executor) {
	unit, _ := ex.Obj(VarUnit).(*world.Unit)
	ctrl := checkLogicControl(ex, unit)
	if ctrl == nil {
		ex.SetBool(in.OutFound, false)
		return
	}
	ctrl.ControlTimer = world.LogicControlTimeout

	if !ctrl.CheckRetargetTimer(in, ex.W.Time) {
		ex.SetObj(in.OutBuild, in.cache.build)
		ex.SetBool(in.OutFound, in.cache.found)
		ex.SetNum(in.OutX, in.cache.x)
		ex.SetNum(in.OutY, in.cache.y)
		return
	}

	var res *world.Tile
	isBuild := false

	switch in.Locate {
	case LocateOre:
		if item, ok := ex.Obj(in.Ore).(*world.Item); ok {
			res = ex.W.FindClosestOre(unit.X, unit.Y, item)
		}
	case LocateBuilding:
		b := ex.W.FindFlaggedBuilding(unit.Team, in.Flag, ex.Bool(in.Enemy), unit.X, unit.Y)
		if b != nil {
			res = ex.W.Grid.Tile(b.TileX, b.TileY)
		}
		isBuild = true
	case LocateSpawn:
		res = closestTile(ex.W.SpawnPoints(), unit.X, unit.Y)
	case LocateDamaged:
		b := ex.W.FindDamagedBuilding(unit.Team, unit.X, unit.Y)
		if b != nil {
			res = ex.W.Grid.Tile(b.TileX, b.TileY)
		}
		isBuild = true
	}

	if res != nil && (!isBuild || res.Build != nil) {
		in.cache.found = true
		if isBuild {
			in.cache.x = res.Build.X / world.TileSize
			in.cache.y = res.Build.Y / world.TileSize
		} else {
			in.cache.x = res.WorldX() / world.TileSize
			in.cache.y = res.WorldY() / world.TileSize
		}
		ex.SetNum(in.OutX, in.cache.x)
		ex.SetNum(in.OutY, in.cache.y)
		ex.SetNum(in.OutFound, 1)
	} else {
		in.cache.found = false
		ex.SetNum(in.OutFound, 0)
	}

	if res != nil && res.Build != nil &&
		(unit.Within(res.Build.X, res.Build.Y, math.Max(unit.Type.Range, world.BuildingRange)) || res.Build.Team == ex.Team) {
		in.cache.build = res.Build
		ex.SetObj(in.OutBuild, res.Build)
	} else {
		in.cache.build = nil
		ex.SetObj(in.OutBuild, nil)
	}
}

func closestTile(tiles []*world.Tile, x, y float64) *world.Tile {
	var best *world.Tile
	bestDst := math.MaxFloat64
	for _, t := range tiles {
		d := math.Hypot(t.WorldX()-x, t.WorldY()-y)
		if d < bestDst {
			bestDst = d
			best = t
		}
	}
	return best
}

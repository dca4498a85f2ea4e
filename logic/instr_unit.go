package logic

import (
	"math"

	"github.com/V9S/Mindustry/world"
)

// UnitBindInst binds the processor's unit slot. A unit-type operand
// selects round-robin over the team's live roster of that type; a
// direct unit reference binds that unit after ownership and
// controllability checks.
type UnitBindInst struct {
	Type int
}

func (in *UnitBindInst) Execute(ex *Executor) {
	if ex.Binds == nil || len(ex.Binds) != len(ex.W.Content.Units) {
		ex.Binds = make([]int, len(ex.W.Content.Units))
	}

	switch target := ex.Obj(in.Type).(type) {
	case *world.UnitType:
		if !target.LogicControllable {
			ex.SetConst(VarUnit, nil)
			return
		}
		roster := ex.Team.UnitCache(target)
		if len(roster) == 0 {
			// no units of this type found
			ex.SetConst(VarUnit, nil)
			return
		}
		ex.Binds[target.ID] %= len(roster)
		ex.SetConst(VarUnit, roster[ex.Binds[target.ID]])
		ex.Binds[target.ID]++
	case *world.Unit:
		if (target.Team == ex.Team || ex.Privileged) && target.Type.LogicControllable {
			ex.SetConst(VarUnit, target)
		} else {
			ex.SetConst(VarUnit, nil)
		}
	default:
		ex.SetConst(VarUnit, nil)
	}
}

// checkLogicControl verifies that a unit is valid for logic control by
// this executor and returns (installing if needed) its controller.
// Requirements: the unit is the currently bound one, alive, owned by the
// program's team (or the program is privileged), and its type is logic
// controllable.
func checkLogicControl(ex *Executor, u *world.Unit) *world.LogicController {
	if u == nil || !u.Valid() || ex.Obj(VarUnit) != any(u) {
		return nil
	}
	if !(u.Team == ex.Team || ex.Privileged) || !u.Type.LogicControllable {
		return nil
	}
	ctrl := u.TakeControl()
	ctrl.Controller = ex.Building(VarThis)
	return ctrl
}

// UnitControlKind is the action applied to the bound unit.
type UnitControlKind int

const (
	UnitIdle UnitControlKind = iota
	UnitStop
	UnitMove
	UnitApproach
	UnitPathfind
	UnitAutoPathfind
	UnitUnbind
	UnitWithin
	UnitTarget
	UnitTargetP
	UnitBoost
	UnitFlag
	UnitMine
	UnitPayDrop
	UnitPayTake
	UnitPayEnter
	UnitBuild
	UnitGetBlock
	UnitItemDrop
	UnitItemTake
)

var unitControlNames = map[string]UnitControlKind{
	"idle": UnitIdle, "stop": UnitStop, "move": UnitMove,
	"approach": UnitApproach, "pathfind": UnitPathfind,
	"autoPathfind": UnitAutoPathfind, "unbind": UnitUnbind,
	"within": UnitWithin, "target": UnitTarget, "targetp": UnitTargetP,
	"boost": UnitBoost, "flag": UnitFlag, "mine": UnitMine,
	"payDrop": UnitPayDrop, "payTake": UnitPayTake,
	"payEnter": UnitPayEnter, "build": UnitBuild,
	"getBlock": UnitGetBlock, "itemDrop": UnitItemDrop,
	"itemTake": UnitItemTake,
}

// UnitControlByName resolves an action tag, ok=false when unknown.
func UnitControlByName(name string) (UnitControlKind, bool) {
	k, ok := unitControlNames[name]
	return k, ok
}

// UnitControlInst applies a tagged action to the currently bound unit.
// Actions on units that fail the control check are silent no-ops, as
// are actions whose own preconditions (range, cooldown, capability)
// fail.
type UnitControlInst struct {
	Kind               UnitControlKind
	P1, P2, P3, P4, P5 int
}

func (in *UnitControlInst) Execute(ex *Executor) {
	unit, _ := ex.Obj(VarUnit).(*world.Unit)
	ctrl := checkLogicControl(ex, unit)
	if ctrl == nil {
		return
	}
	ctrl.ControlTimer = world.LogicControlTimeout

	x1 := ex.Num(in.P1) * world.TileSize
	y1 := ex.Num(in.P2) * world.TileSize
	d1 := ex.Num(in.P3) * world.TileSize

	switch in.Kind {
	case UnitIdle:
		ctrl.Control = world.ControlIdle
	case UnitAutoPathfind:
		ctrl.Control = world.ControlAutoPathfind
	case UnitMove, UnitStop, UnitApproach, UnitPathfind:
		ctrl.Control = map[UnitControlKind]world.ControlMode{
			UnitMove: world.ControlMove, UnitStop: world.ControlStop,
			UnitApproach: world.ControlApproach, UnitPathfind: world.ControlPathfind,
		}[in.Kind]
		ctrl.MoveX = x1
		ctrl.MoveY = y1
		if in.Kind == UnitApproach {
			ctrl.MoveRad = d1
		}
		if in.Kind == UnitStop {
			// stop mining/building
			unit.Mining = false
			ctrl.Plan.Active = false
		}
	case UnitUnbind:
		unit.ResetController()
	case UnitWithin:
		ex.SetBool(in.P4, unit.Within(x1, y1, d1))
	case UnitTarget:
		ctrl.TargetX = x1
		ctrl.TargetY = y1
		ctrl.TargetPos = true
		ctrl.MainTarget = nil
		ctrl.Shoot = ex.Bool(in.P3)
	case UnitTargetP:
		ctrl.TargetPos = false
		ctrl.MainTarget = ex.Obj(in.P1)
		ctrl.Shoot = ex.Bool(in.P2)
	case UnitBoost:
		ctrl.Boost = ex.Bool(in.P1)
	case UnitFlag:
		unit.Flag = ex.Num(in.P1)
	case UnitMine:
		in.mine(ex, unit, x1, y1)
	case UnitPayDrop:
		in.payDrop(ex, unit)
	case UnitPayTake:
		in.payTake(ex, unit)
	case UnitPayEnter:
		in.payEnter(ex, unit)
	case UnitBuild:
		in.build(ex, unit, ctrl, x1, y1)
	case UnitGetBlock:
		in.getBlock(ex, unit, x1, y1)
	case UnitItemDrop:
		in.itemDrop(ex, unit)
	case UnitItemTake:
		in.itemTake(ex, unit)
	}
}

func (in *UnitControlInst) mine(ex *Executor, unit *world.Unit, x, y float64) {
	if !unit.Type.CanMine {
		return
	}
	tile := ex.W.Grid.TileWorld(x, y)
	if tile != nil && tile.Overlay != nil && !tile.Overlay.IsAir() {
		unit.MineX, unit.MineY = tile.X, tile.Y
		unit.Mining = true
	} else {
		unit.Mining = false
	}
}

func (in *UnitControlInst) payDrop(ex *Executor, unit *world.Unit) {
	if !ex.timeoutDone(unit, TransferDelay) {
		return
	}
	if unit.Type.PayloadCapacity > 0 && len(unit.Payloads) > 0 {
		unit.Payloads = unit.Payloads[:len(unit.Payloads)-1]
		ex.updateTimeout(unit)
	}
}

func (in *UnitControlInst) payTake(ex *Executor, unit *world.Unit) {
	if !ex.timeoutDone(unit, TransferDelay) {
		return
	}
	if unit.Type.PayloadCapacity <= 0 {
		return
	}
	if ex.Bool(in.P1) {
		// pick up the closest grounded unit small enough to carry
		target := ex.W.ClosestUnit(unit.Team, unit.X, unit.Y, unit.Type.HitSize*2, func(u *world.Unit) bool {
			return u != unit && !u.Type.Flying && u.Type.HitSize < unit.Type.HitSize &&
				u.Within(unit.X, unit.Y, u.Type.HitSize+unit.Type.HitSize*1.2)
		})
		if target != nil {
			ex.W.RemoveUnit(target)
			unit.Payloads = append(unit.Payloads, target)
		}
	} else {
		build := ex.W.Grid.BuildWorld(unit.X, unit.Y)
		if build != nil && build.Team == unit.Team && !build.Block.Hidden {
			ex.W.RemoveBuilding(build)
			unit.Payloads = append(unit.Payloads, build)
		}
	}
	ex.updateTimeout(unit)
}

func (in *UnitControlInst) payEnter(ex *Executor, unit *world.Unit) {
	build := ex.W.Grid.BuildWorld(unit.X, unit.Y)
	if build != nil && unit.Team == build.Team && build.Block.TakesUnits {
		ex.W.RemoveUnit(unit)
		ex.SetConst(VarUnit, nil)
	}
}

func (in *UnitControlInst) build(ex *Executor, unit *world.Unit, ctrl *world.LogicController, x, y float64) {
	block, ok := ex.Obj(in.P3).(*world.Block)
	if !ok {
		return
	}
	if !(ex.W.Rules.LogicUnitBuild || ex.Privileged) || !unit.Type.CanBuild || !block.CanBeBuilt {
		return
	}
	if ex.W.Rules.BannedBlocks[block.Name] && !unit.Team.AI {
		return
	}

	tx, ty := world.ToTile(x), world.ToTile(y)
	rot := ((ex.NumI(in.P4) % 4) + 4) % 4

	conf := ex.Obj(in.P5)
	ctrl.Plan = world.BuildPlan{X: tx, Y: ty, Rotation: rot, Block: block, Active: true}
	if c, isContent := conf.(world.Content); isContent {
		ctrl.Plan.Config = c
	} else if b, isBuild := conf.(*world.Building); isBuild {
		ctrl.Plan.Config = b
	}

	tile := ex.W.Grid.Tile(tx, ty)
	if tile != nil && !(tile.Block == block && tile.Build != nil && tile.Build.Rotation == rot) {
		// the unit's own update applies the plan; here we only queue it
		ctrl.Control = world.ControlMove
		ctrl.MoveX, ctrl.MoveY = x, y
	}
}

func (in *UnitControlInst) getBlock(ex *Executor, unit *world.Unit, x, y float64) {
	rng := math.Max(unit.Type.Range, unit.Type.BuildRange)
	if !unit.Within(x, y, rng) {
		ex.SetObj(in.P3, nil)
		ex.SetObj(in.P4, nil)
		ex.SetObj(in.P5, nil)
		return
	}
	tile := ex.W.Grid.TileWorld(x, y)
	if tile == nil {
		ex.SetObj(in.P3, nil)
		ex.SetObj(in.P4, nil)
		ex.SetObj(in.P5, nil)
		return
	}
	// environmental solids all read as the canonical solid block
	var block *world.Block
	if !tile.Synthetic() {
		if tile.Solid() {
			block = ex.W.Content.SolidWall
		} else {
			block = ex.W.Content.Air
		}
	} else {
		block = tile.Block
	}
	ex.SetObj(in.P3, block)
	if tile.Build != nil {
		ex.SetObj(in.P4, tile.Build)
	} else {
		ex.SetObj(in.P4, nil)
	}
	if tile.Overlay != nil && !tile.Overlay.IsAir() {
		ex.SetObj(in.P5, tile.Overlay)
	} else {
		ex.SetObj(in.P5, tile.Floor)
	}
}

func (in *UnitControlInst) itemDrop(ex *Executor, unit *world.Unit) {
	if !ex.timeoutDone(unit, TransferDelay) {
		return
	}

	// dropping to @air discards the stack
	if b, ok := ex.Obj(in.P1).(*world.Block); ok && b.IsAir() {
		if !ex.W.Client() {
			unit.ClearItem()
		}
		ex.updateTimeout(unit)
		return
	}

	build := ex.Building(in.P1)
	dropped := min(unit.Stack.Amount, ex.NumI(in.P2))
	if build == nil || build.Team != unit.Team || !build.Valid() || dropped <= 0 {
		return
	}
	if !unit.Within(build.X, build.Y, world.ItemTransferRange+float64(build.Block.Size)*world.TileSize/2) {
		return
	}
	accepted := build.AcceptStack(unit.Stack.Item, dropped)
	if accepted > 0 {
		build.Items[unit.Stack.Item] += accepted
		unit.Stack.Amount -= accepted
		if unit.Stack.Amount == 0 {
			unit.Stack.Item = nil
		}
		ex.updateTimeout(unit)
	}
}

func (in *UnitControlInst) itemTake(ex *Executor, unit *world.Unit) {
	if !ex.timeoutDone(unit, TransferDelay) {
		return
	}

	build := ex.Building(in.P1)
	item, ok := ex.Obj(in.P2).(*world.Item)
	amount := ex.NumI(in.P3)

	if build == nil || build.Team != unit.Team || !build.Valid() || build.Items == nil || !ok {
		return
	}
	if !unit.Within(build.X, build.Y, world.ItemTransferRange+float64(build.Block.Size)*world.TileSize/2) {
		return
	}
	taken := min(build.Items[item], min(amount, unit.MaxAccepted(item)))
	if taken > 0 {
		build.Items[item] -= taken
		unit.Stack.Item = item
		unit.Stack.Amount += taken
		ex.updateTimeout(unit)
	}
}

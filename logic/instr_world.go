package logic

import (
	"math"

	"github.com/V9S/Mindustry/world"
)

// SyncInterval is the minimum gap (milliseconds) between broadcasts of
// the same variable.
const SyncInterval = 50

// MaxExplosionRadius caps explosion radius, in tiles.
const MaxExplosionRadius = 100

// GetBlockLayer selects which tile layer a world read returns.
type GetBlockLayer int

const (
	LayerFloor GetBlockLayer = iota
	LayerOre
	LayerBlock
	LayerBuilding
)

var getBlockLayerNames = map[string]GetBlockLayer{
	"floor": LayerFloor, "ore": LayerOre,
	"block": LayerBlock, "building": LayerBuilding,
}

// GetBlockLayerByName resolves a layer tag, ok=false when unknown.
func GetBlockLayerByName(name string) (GetBlockLayer, bool) {
	l, ok := getBlockLayerNames[name]
	return l, ok
}

// GetBlockInst reads one layer of a tile anywhere on the map.
type GetBlockInst struct {
	Layer  GetBlockLayer
	Output int
	X, Y   int
}

func (in *GetBlockInst) Execute(ex *Executor) {
	tile := ex.W.Grid.Tile(ex.NumI(in.X), ex.NumI(in.Y))
	if tile == nil {
		ex.SetObj(in.Output, nil)
		return
	}
	switch in.Layer {
	case LayerFloor:
		ex.SetObj(in.Output, tile.Floor)
	case LayerOre:
		ex.SetObj(in.Output, tile.Overlay)
	case LayerBlock:
		ex.SetObj(in.Output, tile.Block)
	case LayerBuilding:
		if tile.Build != nil {
			ex.SetObj(in.Output, tile.Build)
		} else {
			ex.SetObj(in.Output, nil)
		}
	}
}

// SetBlockInst rewrites one layer of a tile. Non-authoritative peers
// ignore it; the layer accepts only blocks legal for it.
type SetBlockInst struct {
	Layer                GetBlockLayer
	Block                int
	X, Y, Team, Rotation int
}

func (in *SetBlockInst) Execute(ex *Executor) {
	if ex.W.Client() {
		return
	}
	tile := ex.W.Grid.Tile(ex.NumI(in.X), ex.NumI(in.Y))
	block, ok := ex.Obj(in.Block).(*world.Block)
	if tile == nil || !ok {
		return
	}

	switch in.Layer {
	case LayerOre:
		if block.IsOverlay || block.IsAir() {
			tile.Overlay = block
		}
	case LayerFloor:
		if block.IsFloor && !block.IsOverlay && !block.IsAir() {
			tile.Floor = block
		}
	case LayerBlock:
		if block.IsFloor && !block.IsAir() {
			return
		}
		team := ex.TeamAt(in.Team)
		if team == nil {
			team = ex.W.Derelict()
		}
		rot := ex.NumI(in.Rotation)
		if rot < 0 {
			rot = 0
		}
		ex.W.SetTileBlock(tile, block, team, rot%4)
	}
}

// SpawnUnitInst creates a unit at world coordinates with slight
// deterministic placement jitter.
type SpawnUnitInst struct {
	Type           int
	X, Y, Rotation int
	Team           int
	Output         int
}

func (in *SpawnUnitInst) Execute(ex *Executor) {
	if ex.W.Client() {
		return
	}
	typ, ok := ex.Obj(in.Type).(*world.UnitType)
	team := ex.TeamAt(in.Team)
	if !ok || typ.Hidden || team == nil {
		ex.SetObj(in.Output, nil)
		return
	}
	if !ex.W.CanCreateUnit(team, typ) {
		ex.SetObj(in.Output, nil)
		return
	}

	// tiny jitter keeps stacked spawns from perfectly overlapping
	rng := ex.Rand.ForSubsystem(SubsystemSpawns)
	x := ex.Num(in.X)*world.TileSize + rng.Float64() - 0.5
	y := ex.Num(in.Y)*world.TileSize + rng.Float64() - 0.5

	u := ex.W.AddUnit(typ, team, x, y)
	u.Rotation = ex.Num(in.Rotation)
	ex.SetObj(in.Output, u)
}

// ApplyStatusInst applies or clears a status effect on a unit.
type ApplyStatusInst struct {
	Clear    bool
	Effect   string
	Unit     int
	Duration int
}

func (in *ApplyStatusInst) Execute(ex *Executor) {
	if ex.W.Client() {
		return
	}
	effect := ex.W.Content.Status(in.Effect)
	unit, ok := ex.Obj(in.Unit).(*world.Unit)
	if effect == nil || !ok || !unit.Valid() {
		return
	}
	if in.Clear {
		unit.ClearStatus(effect)
	} else {
		unit.ApplyStatus(effect, ex.Num(in.Duration)*60)
	}
}

// Rule identifies one mutable global or per-team rule.
type Rule int

const (
	RuleWaveTimer Rule = iota
	RuleWave
	RuleCurrentWaveTime
	RuleWaves
	RuleWaveSending
	RuleAttackMode
	RuleWaveSpacing
	RuleEnemyCoreBuildRadius
	RuleDropZoneRadius
	RuleUnitCap
	RuleLighting
	RuleMapArea
	RuleAmbientLight
	RuleSolarMultiplier
	RuleBan
	RuleUnban
	RuleBuildSpeed
	RuleUnitHealth
	RuleUnitBuildSpeed
	RuleUnitCost
	RuleUnitDamage
	RuleBlockHealth
	RuleBlockDamage
	RuleRTSMinWeight
	RuleRTSMinSquad
)

var ruleNames = map[string]Rule{
	"waveTimer": RuleWaveTimer, "wave": RuleWave,
	"currentWaveTime": RuleCurrentWaveTime, "waves": RuleWaves,
	"waveSending": RuleWaveSending, "attackMode": RuleAttackMode,
	"waveSpacing": RuleWaveSpacing,
	"enemyCoreBuildRadius": RuleEnemyCoreBuildRadius,
	"dropZoneRadius": RuleDropZoneRadius, "unitCap": RuleUnitCap,
	"lighting": RuleLighting, "mapArea": RuleMapArea,
	"ambientLight": RuleAmbientLight, "solarMultiplier": RuleSolarMultiplier,
	"ban": RuleBan, "unban": RuleUnban,
	"buildSpeed": RuleBuildSpeed, "unitHealth": RuleUnitHealth,
	"unitBuildSpeed": RuleUnitBuildSpeed, "unitCost": RuleUnitCost,
	"unitDamage": RuleUnitDamage, "blockHealth": RuleBlockHealth,
	"blockDamage": RuleBlockDamage, "rtsMinWeight": RuleRTSMinWeight,
	"rtsMinSquad": RuleRTSMinSquad,
}

// RuleByName resolves a rule tag, ok=false when unknown.
func RuleByName(name string) (Rule, bool) {
	r, ok := ruleNames[name]
	return r, ok
}

// SetRuleInst mutates global or per-team rule state, clamping values to
// their legal ranges.
type SetRuleInst struct {
	Rule           Rule
	Value          int
	Team           int
	P1, P2, P3, P4 int
}

func (in *SetRuleInst) Execute(ex *Executor) {
	r := ex.W.Rules

	switch in.Rule {
	case RuleWaveTimer:
		r.WaveTimer = ex.Bool(in.Value)
	case RuleWave:
		ex.W.Wave = max(ex.NumI(in.Value), 1)
	case RuleCurrentWaveTime:
		ex.W.WaveTime = math.Max(ex.Num(in.Value), 0) * 60
	case RuleWaves:
		r.Waves = ex.Bool(in.Value)
	case RuleWaveSending:
		r.WaveSending = ex.Bool(in.Value)
	case RuleAttackMode:
		r.AttackMode = ex.Bool(in.Value)
	case RuleWaveSpacing:
		r.WaveSpacing = ex.Num(in.Value) * 60
	case RuleEnemyCoreBuildRadius:
		r.EnemyCoreBuildRadius = ex.Num(in.Value) * world.TileSize
	case RuleDropZoneRadius:
		r.DropZoneRadius = ex.Num(in.Value) * world.TileSize
	case RuleUnitCap:
		r.UnitCap = max(ex.NumI(in.Value), 0)
	case RuleLighting:
		r.Lighting = ex.Bool(in.Value)
	case RuleAmbientLight:
		r.AmbientLight = ex.Num(in.Value)
	case RuleSolarMultiplier:
		r.SolarMultiplier = math.Max(ex.Num(in.Value), 0)
	case RuleMapArea:
		x, y := ex.NumI(in.P1), ex.NumI(in.P2)
		w, h := ex.NumI(in.P3), ex.NumI(in.P4)
		if !ex.W.CheckMapArea(x, y, w, h, false) {
			ex.W.Calls.SetMapArea(x, y, w, h)
		}
	case RuleBan:
		if c, ok := ex.Obj(in.Value).(world.Content); ok {
			r.Ban(c)
		}
	case RuleUnban:
		if c, ok := ex.Obj(in.Value).(world.Content); ok {
			r.Unban(c)
		}
	default:
		in.setTeamRule(ex)
	}
}

func (in *SetRuleInst) setTeamRule(ex *Executor) {
	team := ex.TeamAt(in.Team)
	if team == nil {
		return
	}
	v := ex.Num(in.Value)
	rules := &team.Rules

	switch in.Rule {
	case RuleBuildSpeed:
		rules.BuildSpeedMultiplier = clampf(v, 0.001, 50)
	case RuleUnitHealth:
		rules.UnitHealthMultiplier = math.Max(v, 0.001)
	case RuleUnitBuildSpeed:
		rules.UnitBuildSpeedMultiplier = clampf(v, 0, 50)
	case RuleUnitCost:
		rules.UnitCostMultiplier = math.Max(v, 0)
	case RuleUnitDamage:
		rules.UnitDamageMultiplier = math.Max(v, 0)
	case RuleBlockHealth:
		rules.BlockHealthMultiplier = math.Max(v, 0.001)
	case RuleBlockDamage:
		rules.BlockDamageMultiplier = math.Max(v, 0)
	case RuleRTSMinWeight:
		rules.RTSMinWeight = v
	case RuleRTSMinSquad:
		rules.RTSMinSquad = ex.NumI(in.Value)
	}
}

func clampf(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// ExplosionInst applies area damage through the call surface.
type ExplosionInst struct {
	Team                 int
	X, Y, Radius, Damage int
	Air, Ground, Pierce  int
	Effect               bool
}

func (in *ExplosionInst) Execute(ex *Executor) {
	if ex.W.Client() {
		return
	}
	team := ex.TeamAt(in.Team)
	radius := math.Min(ex.Num(in.Radius), MaxExplosionRadius) * world.TileSize
	ex.W.Calls.LogicExplosion(team,
		ex.Num(in.X)*world.TileSize, ex.Num(in.Y)*world.TileSize,
		radius, ex.Num(in.Damage),
		ex.Bool(in.Air), ex.Bool(in.Ground), ex.Bool(in.Pierce), in.Effect)
}

// SetRateInst adjusts this processor's instruction quota, clamped to
// its block's ceiling. Only privileged processor buildings may retune.
type SetRateInst struct {
	Amount int
}

func (in *SetRateInst) Execute(ex *Executor) {
	if ex.Build == nil || !ex.Build.Block.Privileged {
		return
	}
	ceiling := ex.Build.Block.MaxIPT
	if ceiling <= 0 {
		ceiling = MaxInstructions
	}
	ex.IPT = min(max(ex.NumI(in.Amount), 1), ceiling)
	if ex.IPTIndex >= 0 {
		ex.Vars[ex.IPTIndex].NumVal = float64(ex.IPT)
	}
}

// SyncInst broadcasts a variable to other peers, rate limited per
// variable. Constants never sync.
type SyncInst struct {
	Variable int
}

func (in *SyncInst) Execute(ex *Executor) {
	if ex.Build == nil || !ex.Build.Block.Privileged {
		return
	}
	v := ex.OptionalVar(in.Variable)
	if v == nil || v.Constant {
		return
	}
	if ex.W.Millis-v.SyncTime <= SyncInterval {
		return
	}
	v.SyncTime = ex.W.Millis
	var value any
	if v.IsObj {
		value = v.ObjVal
	} else {
		value = v.NumVal
	}
	ex.W.Calls.SyncVariable(ex.Build, in.Variable, value)
}

// GetFlagInst reads a global objective flag.
type GetFlagInst struct {
	Output int
	Flag   int
}

func (in *GetFlagInst) Execute(ex *Executor) {
	flag, ok := ex.Obj(in.Flag).(string)
	if !ok {
		ex.SetObj(in.Output, nil)
		return
	}
	ex.SetBool(in.Output, ex.W.Rules.ObjectiveFlags[flag])
}

// SetFlagInst sets or clears a global objective flag, broadcasting only
// on an actual state change.
type SetFlagInst struct {
	Flag  int
	Value int
}

func (in *SetFlagInst) Execute(ex *Executor) {
	flag, ok := ex.Obj(in.Flag).(string)
	if !ok {
		return
	}
	add := ex.Bool(in.Value)
	if add != ex.W.Rules.ObjectiveFlags[flag] {
		ex.W.Calls.SetFlag(flag, add)
	}
}

// SpawnWaveInst triggers a wave: natural waves advance the wave
// counter, targeted waves spawn the current wave's groups at a point.
type SpawnWaveInst struct {
	Natural bool
	X, Y    int
}

func (in *SpawnWaveInst) Execute(ex *Executor) {
	if ex.W.Client() {
		return
	}
	if in.Natural {
		ex.W.SkipWave()
		return
	}

	rng := ex.Rand.ForSubsystem(SubsystemSpawns)
	team := ex.W.WaveTeam()
	x := ex.Num(in.X) * world.TileSize
	y := ex.Num(in.Y) * world.TileSize

	for _, group := range ex.W.Rules.Spawns {
		typ, ok := ex.W.Content.ByName(group.Type).(*world.UnitType)
		if !ok {
			continue
		}
		for i := 0; i < group.Spawned(ex.W.Wave); i++ {
			if !ex.W.CanCreateUnit(team, typ) {
				break
			}
			u := ex.W.AddUnit(typ, team,
				x+(rng.Float64()-0.5)*world.TileSize,
				y+(rng.Float64()-0.5)*world.TileSize)
			u.Rotation = rng.Float64() * 360
		}
	}
}

// SetPropInst injects a property or content amount into a unit or
// building.
type SetPropInst struct {
	Key, Target, Value int
}

func (in *SetPropInst) Execute(ex *Executor) {
	target, ok := ex.Obj(in.Target).(world.Settable)
	if !ok {
		return
	}
	switch key := ex.Obj(in.Key).(type) {
	case world.Prop:
		v := ex.Var(in.Value)
		if v.IsObj {
			target.SetProp(key, v.ObjVal)
		} else {
			target.SetProp(key, v.NumVal)
		}
	case world.Content:
		target.SetContent(key, ex.Num(in.Value))
	}
}

// MakeMarkerInst creates a map marker through the call surface. Creates
// past the marker cap are dropped.
type MakeMarkerInst struct {
	Type    string
	ID      int
	X, Y    int
	Replace int
}

func (in *MakeMarkerInst) Execute(ex *Executor) {
	if !world.ValidMarkerType(in.Type) {
		return
	}
	if ex.W.Markers.Len() >= world.MaxMarkers {
		return
	}
	id := ex.NumI(in.ID)
	if !ex.Bool(in.Replace) && ex.W.Markers.Has(id) {
		return
	}
	ex.W.Calls.CreateMarker(id, world.NewMarker(in.Type))
	ex.W.Calls.UpdateMarker(id, world.MarkerPos,
		ex.Num(in.X)*world.TileSize, ex.Num(in.Y)*world.TileSize, 0)
}

// SetMarkerInst mutates a marker attribute through the call surface.
type SetMarkerInst struct {
	Control    world.MarkerControl
	ID         int
	P1, P2, P3 int
}

func (in *SetMarkerInst) Execute(ex *Executor) {
	id := ex.NumI(in.ID)
	switch in.Control {
	case world.MarkerRemove:
		ex.W.Markers.Remove(id)
	case world.MarkerText:
		ex.W.Calls.UpdateMarkerText(id, world.MarkerText, ToString(ex.Obj(in.P1)))
	case world.MarkerFlushText:
		ex.W.Calls.UpdateMarkerText(id, world.MarkerFlushText, ex.Text.String())
		ex.Text.Clear()
	case world.MarkerPos:
		ex.W.Calls.UpdateMarker(id, world.MarkerPos,
			ex.Num(in.P1)*world.TileSize, ex.Num(in.P2)*world.TileSize, 0)
	case world.MarkerX, world.MarkerY:
		ex.W.Calls.UpdateMarker(id, in.Control, ex.Num(in.P1)*world.TileSize, 0, 0)
	default:
		ex.W.Calls.UpdateMarker(id, in.Control,
			ex.Num(in.P1), ex.Num(in.P2), ex.Num(in.P3))
	}
}

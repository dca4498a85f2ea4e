package logic

import (
	"testing"

	"github.com/V9S/Mindustry/world"
)

// newPrivilegedExecutor builds an executor attached to a world processor.
func newPrivilegedExecutor(t *testing.T, w *world.State, code string) *Executor {
	t.Helper()
	proc := w.AddBuilding(block(t, w, "world-processor"), w.Team(1), 0, 0)
	def, err := Assemble(code, w)
	if err != nil {
		t.Fatalf("unexpected assemble error: %v", err)
	}
	ex := NewExecutor(w)
	ex.Team = w.Team(1)
	ex.Build = proc
	ex.Privileged = true
	ex.Load(def)
	return ex
}

func TestSetRule_WaveNeverBelowOne(t *testing.T) {
	// GIVEN a program forcing the wave counter to zero
	w := newTestWorld()
	ex := newPrivilegedExecutor(t, w, "setrule wave 0\nstop")

	runTicks(w, ex, 1)

	// THEN the wave counter clamped to 1
	if w.Wave != 1 {
		t.Errorf("wave: got %d, want 1", w.Wave)
	}
}

func TestSetRule_ScaledValues(t *testing.T) {
	w := newTestWorld()
	ex := newPrivilegedExecutor(t, w, `
setrule waveSpacing 10
setrule dropZoneRadius 5
setrule unitCap -3
stop
`)
	runTicks(w, ex, 1)

	// seconds scale to ticks, tiles to world units, caps clamp at zero
	if w.Rules.WaveSpacing != 600 {
		t.Errorf("wave spacing: got %v, want 600", w.Rules.WaveSpacing)
	}
	if w.Rules.DropZoneRadius != 5*world.TileSize {
		t.Errorf("drop zone radius: got %v, want %v", w.Rules.DropZoneRadius, 5*world.TileSize)
	}
	if w.Rules.UnitCap != 0 {
		t.Errorf("unit cap: got %d, want 0", w.Rules.UnitCap)
	}
}

func TestSetRule_MapAreaAppliedThroughCalls(t *testing.T) {
	w := newTestWorld()
	ex := newPrivilegedExecutor(t, w, "setrule mapArea 0 0 2 2 10 10\nstop")

	runTicks(w, ex, 1)

	area := w.Rules.MapArea
	if !area.Limited || area.X != 2 || area.Y != 2 || area.W != 10 || area.H != 10 {
		t.Errorf("map area: got %+v, want limited (2, 2, 10, 10)", area)
	}
}

func TestSetBlock_LayerLegality(t *testing.T) {
	w := newTestWorld()
	ex := newPrivilegedExecutor(t, w, `
setblock floor @metal-floor 3 3 0 0
setblock ore @ore-copper 3 3 0 0
setblock floor @ore-copper 4 4 0 0
setblock block @copper-wall 5 5 1 0
stop
`)
	runTicks(w, ex, 1)

	tile := w.Grid.Tile(3, 3)
	if tile.Floor.Name != "metal-floor" {
		t.Errorf("floor: got %q, want metal-floor", tile.Floor.Name)
	}
	if tile.Overlay.Name != "ore-copper" {
		t.Errorf("overlay: got %q, want ore-copper", tile.Overlay.Name)
	}
	// an overlay block is not legal on the floor layer
	if w.Grid.Tile(4, 4).Floor.Name == "ore-copper" {
		t.Error("overlay block accepted on floor layer")
	}
	wallTile := w.Grid.Tile(5, 5)
	if wallTile.Block.Name != "copper-wall" || wallTile.Build == nil {
		t.Errorf("block layer: got %q (build %v)", wallTile.Block.Name, wallTile.Build)
	}
	if wallTile.Build.Team != w.Team(1) {
		t.Errorf("wall team: got %v, want sharded", wallTile.Build.Team.Name)
	}
}

func TestSetBlock_ClientPeerIgnores(t *testing.T) {
	w := newTestWorld()
	w.NetClient = true
	ex := newPrivilegedExecutor(t, w, "setblock block @copper-wall 5 5 1 0\nstop")

	runTicks(w, ex, 1)

	if w.Grid.Tile(5, 5).Build != nil {
		t.Error("client peer mutated the world")
	}
}

func TestSpawnUnit_CreatesNearRequestedPoint(t *testing.T) {
	w := newTestWorld()
	ex := newPrivilegedExecutor(t, w, "spawn @dagger 10 10 90 2 result\nstop")

	runTicks(w, ex, 1)

	u, ok := namedVar(t, ex, "result").ObjVal.(*world.Unit)
	if !ok {
		t.Fatal("result is not a unit")
	}
	if u.Team != w.Team(2) {
		t.Errorf("team: got %v, want crux", u.Team.Name)
	}
	// jittered by less than one world unit around the tile center
	if dx := u.X - 10*world.TileSize; dx < -1 || dx > 1 {
		t.Errorf("x: got %v, want near %v", u.X, 10*world.TileSize)
	}
	if len(w.Team(2).Units()) != 1 {
		t.Errorf("crux roster: got %d units, want 1", len(w.Team(2).Units()))
	}
}

func TestSpawnUnit_DeterministicAcrossRuns(t *testing.T) {
	// two hosts with the same seed must place spawns identically
	spawnX := func() float64 {
		w := newTestWorld()
		ex := newPrivilegedExecutor(t, w, "spawn @dagger 10 10 0 2 result\nstop")
		ex.Rand = NewPartitionedRNG(NewSimulationKey(42))
		runTicks(w, ex, 1)
		return namedVar(t, ex, "result").ObjVal.(*world.Unit).X
	}
	if a, b := spawnX(), spawnX(); a != b {
		t.Errorf("spawn positions differ across identical runs: %v vs %v", a, b)
	}
}

func TestStatus_ApplyAndClear(t *testing.T) {
	w := newTestWorld()
	u := w.AddUnit(unitType(t, w, "dagger"), w.Team(1), 0, 0)
	wet := w.Content.Status("wet")

	ex := newTestExecutor(t, w, "noop")
	apply := &ApplyStatusInst{Effect: "wet", Unit: ex.slotForTest(u), Duration: ex.numSlotForTest(10)}
	apply.Execute(ex)
	if !u.HasStatus(wet) {
		t.Fatal("status not applied")
	}

	clear := &ApplyStatusInst{Clear: true, Effect: "wet", Unit: ex.slotForTest(u)}
	clear.Execute(ex)
	if u.HasStatus(wet) {
		t.Error("status not cleared")
	}
}

func TestSync_RateLimitedPerVariable(t *testing.T) {
	// GIVEN a privileged processor syncing one variable per tick
	w := newTestWorld()
	ex := newPrivilegedExecutor(t, w, "set x 5\nsync x\nsync x\nstop")

	runTicks(w, ex, 1)

	// THEN only the first sync broadcast within the rate window
	calls := w.Calls.(*world.LoopbackCalls)
	if got := len(calls.Outbox); got != 1 {
		t.Fatalf("outbox: got %d packets, want 1", got)
	}

	// WHEN the window elapses (50ms is 3 ticks at 60/s)
	for i := 0; i < 4; i++ {
		w.Tick()
	}
	var xSlot int
	for i, v := range ex.Vars {
		if v.Name == "x" {
			xSlot = i
		}
	}
	in := &SyncInst{Variable: xSlot}
	in.Execute(ex)
	if got := len(calls.Outbox); got != 2 {
		t.Errorf("outbox after window: got %d packets, want 2", got)
	}
}

func TestSync_ConstantNeverBroadcast(t *testing.T) {
	w := newTestWorld()
	ex := newPrivilegedExecutor(t, w, "sync 5\nstop")

	runTicks(w, ex, 1)

	calls := w.Calls.(*world.LoopbackCalls)
	if got := len(calls.Outbox); got != 0 {
		t.Errorf("outbox: got %d packets, want 0", got)
	}
}

func TestFlags_SetReadAndChangeDetection(t *testing.T) {
	w := newTestWorld()
	ex := newPrivilegedExecutor(t, w, `
setflag "alarm" 1
setflag "alarm" 1
getflag v "alarm"
setflag "alarm" 0
getflag v2 "alarm"
stop
`)
	runTicks(w, ex, 1)

	if got := namedVar(t, ex, "v").NumVal; got != 1 {
		t.Errorf("flag read: got %v, want 1", got)
	}
	if got := namedVar(t, ex, "v2").NumVal; got != 0 {
		t.Errorf("flag read after clear: got %v, want 0", got)
	}
	// the duplicate set did not broadcast
	calls := w.Calls.(*world.LoopbackCalls)
	count := 0
	for _, p := range calls.Outbox {
		if p.Kind == world.PacketSetFlag {
			count++
		}
	}
	if count != 2 {
		t.Errorf("flag packets: got %d, want 2", count)
	}
}

func TestExplosion_DamagesEnemiesOnly(t *testing.T) {
	w := newTestWorld()
	ally := w.AddUnit(unitType(t, w, "dagger"), w.Team(1), 8, 8)
	enemy := w.AddUnit(unitType(t, w, "dagger"), w.Team(2), 8, 8)

	ex := newPrivilegedExecutor(t, w, "explosion 1 1 1 5 40 true true false false\nstop")
	runTicks(w, ex, 1)

	if ally.Health != 150 {
		t.Errorf("ally health: got %v, want 150", ally.Health)
	}
	if enemy.Health != 110 {
		t.Errorf("enemy health: got %v, want 110", enemy.Health)
	}
}

func TestMarkers_CreateControlRemove(t *testing.T) {
	w := newTestWorld()
	ex := newPrivilegedExecutor(t, w, `
makemarker shape 7 4 4 0
setmarker rotation 7 45
print "tagged"
setmarker flushText 7
setmarker remove 7
stop
`)
	runTicks(w, ex, 1)

	if w.Markers.Has(7) {
		t.Error("marker 7 should be removed")
	}
	// the update calls still went out in order
	calls := w.Calls.(*world.LoopbackCalls)
	var kinds []world.PacketKind
	for _, p := range calls.Outbox {
		kinds = append(kinds, p.Kind)
	}
	want := []world.PacketKind{world.PacketCreateMarker, world.PacketUpdateMarker,
		world.PacketUpdateMarker, world.PacketUpdateMarkerText}
	if len(kinds) != len(want) {
		t.Fatalf("packets: got %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("packet %d: got %v, want %v", i, kinds[i], want[i])
		}
	}
}

func TestMakeMarker_InvalidTypeAndDuplicateID(t *testing.T) {
	w := newTestWorld()
	ex := newPrivilegedExecutor(t, w, `
makemarker shape 7 1 1 0
makemarker shape 7 9 9 0
makemarker bogus 8 1 1 0
stop
`)
	runTicks(w, ex, 1)

	if !w.Markers.Has(7) {
		t.Fatal("marker 7 missing")
	}
	// the duplicate without replace kept the original position
	if got := w.Markers.Get(7).X; got != 1*world.TileSize {
		t.Errorf("marker x: got %v, want %v", got, 1*world.TileSize)
	}
	if w.Markers.Has(8) {
		t.Error("invalid marker type was created")
	}
}

func TestGetBlock_ReadsLayers(t *testing.T) {
	w := newTestWorld()
	w.AddBuilding(block(t, w, "container"), w.Team(1), 3, 3)
	ex := newPrivilegedExecutor(t, w, "getblock building b 3 3\ngetblock block k 3 3\nstop")

	runTicks(w, ex, 1)

	if got := namedVar(t, ex, "b").ObjVal; got != w.Grid.Tile(3, 3).Build {
		t.Errorf("building: got %v, want the container", got)
	}
	if got := namedVar(t, ex, "k").ObjVal.(*world.Block).Name; got != "container" {
		t.Errorf("block: got %q, want container", got)
	}
}

func TestSetProp_InjectsValues(t *testing.T) {
	w := newTestWorld()
	u := w.AddUnit(unitType(t, w, "dagger"), w.Team(1), 0, 0)

	ex := newTestExecutor(t, w, "noop")
	in := &SetPropInst{
		Key:    ex.slotForTest(world.PropHealth),
		Target: ex.slotForTest(u),
		Value:  ex.numSlotForTest(60),
	}
	in.Execute(ex)

	if u.Health != 60 {
		t.Errorf("health: got %v, want 60", u.Health)
	}
}

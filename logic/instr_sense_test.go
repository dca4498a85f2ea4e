package logic

import (
	"testing"

	"github.com/V9S/Mindustry/world"
)

func TestSense_UnitPropertiesAndContent(t *testing.T) {
	// GIVEN a bound mono carrying copper
	w := newTestWorld()
	team := w.Team(1)
	u := w.AddUnit(unitType(t, w, "mono"), team, 0, 0)
	copper, _ := w.Content.ByName("copper").(*world.Item)
	u.Stack = world.ItemStack{Item: copper, Amount: 12}

	ex := newTestExecutor(t, w, `
ubind @mono
sensor h @unit @health
sensor tm @unit @team
sensor c @unit @copper
stop
`)
	runTicks(w, ex, 1)

	if got := namedVar(t, ex, "h").NumVal; got != 100 {
		t.Errorf("health: got %v, want 100", got)
	}
	if got := namedVar(t, ex, "tm").ObjVal; got != team {
		t.Errorf("team: got %v, want %v", got, team)
	}
	if got := namedVar(t, ex, "c").NumVal; got != 12 {
		t.Errorf("copper: got %v, want 12", got)
	}
}

func TestSense_DeadOnNullReadsOne(t *testing.T) {
	w := newTestWorld()
	ex := newTestExecutor(t, w, "sensor d null @dead\nsensor x null @health")
	runTicks(w, ex, 1)

	if got := namedVar(t, ex, "d").NumVal; got != 1 {
		t.Errorf("dead on null: got %v, want 1", got)
	}
	// any other property on null reads null
	if v := namedVar(t, ex, "x"); !v.IsObj || v.ObjVal != nil {
		t.Errorf("health on null: got %+v, want null", v)
	}
}

func TestRadar_BuildingSourceThrottledToCadence(t *testing.T) {
	// GIVEN a turret radar with one enemy in range
	w := newTestWorld()
	team := w.Team(1)
	duo := w.AddBuilding(block(t, w, "duo"), team, 0, 0)
	dagger := unitType(t, w, "dagger")
	far := w.AddUnit(dagger, w.Team(2), 40, 0)

	ex := newTestExecutor(t, w, "noop")
	in := &RadarInst{
		Target1: TargetEnemy, Target2: TargetAny, Target3: TargetAny,
		Sort:  SortDistance,
		Radar: ex.slotForTest(duo), SortOrder: ex.numSlotForTest(1),
		Output: ex.numSlotForTest(0),
	}

	// WHEN the first scan runs
	in.Execute(ex)
	if got := ex.Obj(in.Output); got != far {
		t.Fatalf("first scan: got %v, want unit %d", got, far.ID)
	}

	// AND a closer enemy appears before the cadence elapses
	near := w.AddUnit(dagger, w.Team(2), 8, 0)
	in.Execute(ex)

	// THEN the cached result is served
	if got := ex.Obj(in.Output); got != far {
		t.Errorf("cached scan: got %v, want unit %d", got, far.ID)
	}

	// WHEN the cadence elapses
	for i := 0; i < RadarPeriod; i++ {
		w.Tick()
	}
	in.Execute(ex)

	// THEN the scan recomputed and found the closer unit
	if got := ex.Obj(in.Output); got != near {
		t.Errorf("recomputed scan: got %v, want unit %d", got, near.ID)
	}
}

func TestRadar_SourceChangeForcesRecompute(t *testing.T) {
	// GIVEN two turrets sharing one radar instruction
	w := newTestWorld()
	team := w.Team(1)
	duoA := w.AddBuilding(block(t, w, "duo"), team, 0, 0)
	duoB := w.AddBuilding(block(t, w, "duo"), team, 10, 0)
	dagger := unitType(t, w, "dagger")
	nearA := w.AddUnit(dagger, w.Team(2), 8, 0)
	nearB := w.AddUnit(dagger, w.Team(2), 88, 0)

	ex := newTestExecutor(t, w, "noop")
	src := ex.slotForTest(duoA)
	in := &RadarInst{
		Target1: TargetEnemy, Target2: TargetAny, Target3: TargetAny,
		Sort:  SortDistance,
		Radar: src, SortOrder: ex.numSlotForTest(1),
		Output: ex.numSlotForTest(0),
	}

	in.Execute(ex)
	if got := ex.Obj(in.Output); got != nearA {
		t.Fatalf("scan from A: got %v, want unit %d", got, nearA.ID)
	}

	// WHEN the source building changes identity within the cadence
	ex.Vars[src].ObjVal = duoB
	in.Execute(ex)

	// THEN the cache is invalidated immediately
	if got := ex.Obj(in.Output); got != nearB {
		t.Errorf("scan from B: got %v, want unit %d", got, nearB.ID)
	}
}

func TestRadar_EnemyBuildingSourceDenied(t *testing.T) {
	// GIVEN a radar source owned by another team
	w := newTestWorld()
	duo := w.AddBuilding(block(t, w, "duo"), w.Team(2), 0, 0)
	w.AddUnit(unitType(t, w, "dagger"), w.Team(3), 8, 0)

	ex := newTestExecutor(t, w, "noop")
	in := &RadarInst{
		Target1: TargetAny, Target2: TargetAny, Target3: TargetAny,
		Sort:  SortDistance,
		Radar: ex.slotForTest(duo), SortOrder: ex.numSlotForTest(1),
		Output: ex.numSlotForTest(7),
	}
	in.Execute(ex)

	if got := ex.Obj(in.Output); got != nil {
		t.Errorf("output: got %v, want nil", got)
	}
}

func TestRadar_TieKeepsFirstFound(t *testing.T) {
	// GIVEN two enemies at identical distances
	w := newTestWorld()
	team := w.Team(1)
	duo := w.AddBuilding(block(t, w, "duo"), team, 0, 0)
	dagger := unitType(t, w, "dagger")
	first := w.AddUnit(dagger, w.Team(2), 24, 0)
	w.AddUnit(dagger, w.Team(2), -24, 0)

	ex := newTestExecutor(t, w, "noop")
	in := &RadarInst{
		Target1: TargetEnemy, Target2: TargetAny, Target3: TargetAny,
		Sort:  SortDistance,
		Radar: ex.slotForTest(duo), SortOrder: ex.numSlotForTest(1),
		Output: ex.numSlotForTest(0),
	}
	in.Execute(ex)

	// THEN strictly-greater scoring kept the earlier roster entry
	if got := ex.Obj(in.Output); got != first {
		t.Errorf("tie: got %v, want unit %d", got, first.ID)
	}
}

func TestUnitLocate_FindsOreSpawnAndBuilding(t *testing.T) {
	// GIVEN a map with ore, a spawn point, and an allied core
	w := newTestWorld()
	team := w.Team(1)
	w.AddUnit(unitType(t, w, "mono"), team, 0, 0)
	ore, _ := w.Content.ByName("ore-copper").(*world.Block)
	w.Grid.Tile(5, 5).Overlay = ore
	w.AddSpawnPoint(3, 3)
	w.AddBuilding(block(t, w, "core-shard"), team, 2, 2)

	ex := newTestExecutor(t, w, `
ubind @mono
ulocate ore core false @copper ox oy ofound obuild
ulocate spawn core false @copper sx sy sfound sbuild
ulocate building core false @copper bx by bfound bbuild
stop
`)
	runTicks(w, ex, 1)

	if got := namedVar(t, ex, "ofound").NumVal; got != 1 {
		t.Fatalf("ore found: got %v, want 1", got)
	}
	if x, y := namedVar(t, ex, "ox").NumVal, namedVar(t, ex, "oy").NumVal; x != 5 || y != 5 {
		t.Errorf("ore at: got (%v, %v), want (5, 5)", x, y)
	}
	if x, y := namedVar(t, ex, "sx").NumVal, namedVar(t, ex, "sy").NumVal; x != 3 || y != 3 {
		t.Errorf("spawn at: got (%v, %v), want (3, 3)", x, y)
	}
	if got := namedVar(t, ex, "bfound").NumVal; got != 1 {
		t.Fatalf("building found: got %v, want 1", got)
	}
	core := w.Grid.Tile(2, 2).Build
	if got := namedVar(t, ex, "bbuild").ObjVal; got != core {
		t.Errorf("building: got %v, want the core", got)
	}
}

func TestUnitLocate_RequiresControlledUnit(t *testing.T) {
	// GIVEN no bound unit
	w := newTestWorld()
	ex := newTestExecutor(t, w, "ulocate spawn core false @copper x y found build\nstop")
	w.AddSpawnPoint(3, 3)

	runTicks(w, ex, 1)

	if got := namedVar(t, ex, "found").NumVal; got != 0 {
		t.Errorf("found: got %v, want 0", got)
	}
}

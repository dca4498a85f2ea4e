package world

import (
	"testing"
)

func newContentWorld(t *testing.T) *State {
	t.Helper()
	s := NewState(16, 16)
	RegisterDefaultContent(s.Content)
	return s
}

func namedBlock(t *testing.T, s *State, name string) *Block {
	t.Helper()
	b, ok := s.Content.ByName(name).(*Block)
	if !ok {
		t.Fatalf("no block named %q", name)
	}
	return b
}

func namedUnitType(t *testing.T, s *State, name string) *UnitType {
	t.Helper()
	u, ok := s.Content.ByName(name).(*UnitType)
	if !ok {
		t.Fatalf("no unit type named %q", name)
	}
	return u
}

func TestState_TickAdvancesClock(t *testing.T) {
	s := newContentWorld(t)
	id := s.UpdateID

	for i := 0; i < 120; i++ {
		s.Tick()
	}

	if s.Time != 120 {
		t.Errorf("time: got %v, want 120", s.Time)
	}
	// 120 ticks at 60 ticks/second is two seconds
	if s.Millis != 2000 {
		t.Errorf("millis: got %d, want 2000", s.Millis)
	}
	if s.UpdateID != id+120 {
		t.Errorf("update id: got %d, want %d", s.UpdateID, id+120)
	}
}

func TestState_AddBuildingWiresTileAndTeam(t *testing.T) {
	s := newContentWorld(t)
	team := s.Team(1)

	cell := s.AddBuilding(namedBlock(t, s, "memory-cell"), team, 3, 4)

	tile := s.Grid.Tile(3, 4)
	if tile.Build != cell || tile.Block != cell.Block {
		t.Error("tile not updated by placement")
	}
	if len(cell.Memory) != cell.Block.MemorySize {
		t.Errorf("memory: got %d slots, want %d", len(cell.Memory), cell.Block.MemorySize)
	}
	if got := team.Buildings(cell.Block); len(got) != 1 || got[0] != cell {
		t.Error("team roster missing the placed building")
	}
}

func TestState_AddBuildingReplacesOccupant(t *testing.T) {
	s := newContentWorld(t)
	team := s.Team(1)

	old := s.AddBuilding(namedBlock(t, s, "message"), team, 2, 2)
	s.AddBuilding(namedBlock(t, s, "memory-cell"), team, 2, 2)

	if !old.Dead {
		t.Error("prior occupant still alive")
	}
	if len(team.Buildings(old.Block)) != 0 {
		t.Error("prior occupant still in team roster")
	}
}

func TestState_CoreFlagTracked(t *testing.T) {
	s := newContentWorld(t)
	team := s.Team(1)

	core := s.AddBuilding(namedBlock(t, s, "core-shard"), team, 5, 5)

	if !core.Core {
		t.Error("core building not marked")
	}
	if got := team.Cores(); len(got) != 1 || got[0] != core {
		t.Error("core not in team core roster")
	}
}

func TestState_RemoveBuildingRestoresAir(t *testing.T) {
	s := newContentWorld(t)
	b := s.AddBuilding(namedBlock(t, s, "message"), s.Team(1), 1, 1)

	s.RemoveBuilding(b)

	tile := s.Grid.Tile(1, 1)
	if tile.Build != nil || !tile.Block.IsAir() {
		t.Error("tile not restored to air")
	}
	if len(s.Buildings()) != 0 {
		t.Error("building still registered")
	}
}

func TestState_UnitRosterBookkeeping(t *testing.T) {
	s := newContentWorld(t)
	team := s.Team(1)
	typ := namedUnitType(t, s, "mono")

	u := s.AddUnit(typ, team, 10, 20)
	if len(s.Units()) != 1 || len(team.Units()) != 1 {
		t.Fatal("unit not registered")
	}
	if u.Health != typ.Health {
		t.Errorf("health: got %v, want %v", u.Health, typ.Health)
	}

	s.RemoveUnit(u)
	if !u.Dead || len(s.Units()) != 0 || len(team.Units()) != 0 {
		t.Error("unit not deregistered")
	}
}

func TestState_ClosestUnitPicksNearestMatch(t *testing.T) {
	s := newContentWorld(t)
	team := s.Team(1)
	typ := namedUnitType(t, s, "mono")

	far := s.AddUnit(typ, team, 40, 0)
	near := s.AddUnit(typ, team, 10, 0)
	s.AddUnit(typ, team, 5, 0) // nearest but filtered out

	got := s.ClosestUnit(team, 0, 0, 100, func(u *Unit) bool { return u.X >= 10 })
	if got != near {
		t.Errorf("got unit at %v, want the one at %v", got.X, near.X)
	}

	got = s.ClosestUnit(team, 0, 0, 20, func(u *Unit) bool { return u == far })
	if got != nil {
		t.Error("out-of-range unit returned")
	}
}

func TestState_FindFlaggedBuildingEnemyToggle(t *testing.T) {
	s := newContentWorld(t)
	mine := s.AddBuilding(namedBlock(t, s, "core-shard"), s.Team(1), 1, 1)
	theirs := s.AddBuilding(namedBlock(t, s, "core-shard"), s.Team(2), 10, 10)

	if got := s.FindFlaggedBuilding(s.Team(1), FlagCore, false, 0, 0); got != mine {
		t.Error("own-team search missed own core")
	}
	if got := s.FindFlaggedBuilding(s.Team(1), FlagCore, true, 0, 0); got != theirs {
		t.Error("enemy search missed enemy core")
	}
}

func TestState_FindClosestOre(t *testing.T) {
	s := newContentWorld(t)
	copper, _ := s.Content.ByName("copper").(*Item)
	ore := namedBlock(t, s, "ore-copper")
	s.Grid.Tile(8, 8).Overlay = ore
	s.Grid.Tile(2, 2).Overlay = ore

	tile := s.FindClosestOre(0, 0, copper)
	if tile == nil || tile.X != 2 || tile.Y != 2 {
		t.Errorf("got %+v, want tile (2, 2)", tile)
	}
}

func TestState_CheckMapArea(t *testing.T) {
	s := newContentWorld(t)

	// unrestricted world already matches the full map
	if !s.CheckMapArea(0, 0, 16, 16, false) {
		t.Error("full area should match an unrestricted map")
	}

	// shrinking the area applies and then matches
	if s.CheckMapArea(2, 2, 10, 10, true) {
		t.Error("first restriction reported as already matching")
	}
	if !s.Rules.MapArea.Limited {
		t.Error("restriction not applied")
	}
	if !s.CheckMapArea(2, 2, 10, 10, false) {
		t.Error("applied restriction does not match itself")
	}

	// restoring the full map lifts the restriction
	s.CheckMapArea(0, 0, 16, 16, true)
	if s.Rules.MapArea.Limited {
		t.Error("full-map set did not lift the restriction")
	}
}

func TestState_DamageRespectsSourceTeamAndLayer(t *testing.T) {
	s := newContentWorld(t)
	ground := namedUnitType(t, s, "dagger")
	air := namedUnitType(t, s, "flare")

	ally := s.AddUnit(ground, s.Team(1), 0, 0)
	enemy := s.AddUnit(ground, s.Team(2), 0, 0)
	flyer := s.AddUnit(air, s.Team(2), 0, 0)

	s.Damage(s.Team(1), 0, 0, 10, 40, false, true)

	if ally.Health != ground.Health {
		t.Error("source team damaged")
	}
	if enemy.Health != ground.Health-40 {
		t.Errorf("enemy health: got %v, want %v", enemy.Health, ground.Health-40)
	}
	if flyer.Health != air.Health {
		t.Error("air unit hit by ground-only damage")
	}
}

func TestState_DamageKillsAtZeroHealth(t *testing.T) {
	s := newContentWorld(t)
	typ := namedUnitType(t, s, "dagger")
	u := s.AddUnit(typ, s.Team(2), 0, 0)

	s.Damage(s.Team(1), 0, 0, 10, typ.Health, true, true)

	if !u.Dead || len(s.Units()) != 0 {
		t.Error("exhausted unit not removed")
	}
}

func TestState_CanCreateUnitHonorsBanAndCap(t *testing.T) {
	s := newContentWorld(t)
	team := s.Team(1)
	typ := namedUnitType(t, s, "mono")

	if !s.CanCreateUnit(team, typ) {
		t.Fatal("fresh world rejects unit creation")
	}

	s.Rules.Ban(typ)
	if s.CanCreateUnit(team, typ) {
		t.Error("banned type allowed")
	}
	s.Rules.Unban(typ)

	s.Rules.UnitCap = 1
	s.AddUnit(typ, team, 0, 0)
	if s.CanCreateUnit(team, typ) {
		t.Error("cap exceeded")
	}
}

package world

import (
	"math"

	"github.com/sirupsen/logrus"
)

// State aggregates the world a processor executes against: grid, teams,
// unit/building rosters, content, rules, markers, and the clock. It is
// the single-threaded shared substrate; all mutation happens on the host
// tick goroutine.
type State struct {
	Content *ContentRegistry
	Grid    *Grid
	Rules   *Rules

	Wave     int
	WaveTime float64

	Markers *MarkerTable

	// Time is the simulation clock in ticks; Delta is the tick length in
	// ticks (1 for a fixed-rate host). Millis mirrors the clock in
	// milliseconds for the sync rate limiter. UpdateID increments once
	// per host tick.
	Time     float64
	Delta    float64
	Millis   int64
	UpdateID int64

	// NetClient marks this peer as non-authoritative: destructive world
	// instructions early-return and shared mutations go through Calls.
	NetClient bool

	// Headless hosts have no display sink; graphics instructions
	// short-circuit entirely.
	Headless bool

	Calls Calls

	// Notifications collects message-flush text when the host has a
	// display sink.
	Notifications []string

	teams       []*Team
	units       []*Unit
	buildings   []*Building
	spawnPoints []*Tile
	nextID      int
}

// DefaultTeamNames is the fixed team roster every state starts with.
var DefaultTeamNames = []string{"derelict", "sharded", "crux", "malis", "green", "blue"}

// NewState builds a world with an empty grid and the default team roster.
func NewState(width, height int) *State {
	content := NewContentRegistry()
	s := &State{
		Content:  content,
		Grid:     NewGrid(width, height, content.Air, content.Air),
		Rules:    DefaultRules(),
		Wave:     1,
		Markers:  NewMarkerTable(),
		Delta:    1,
		UpdateID: 1,
		teams:    make([]*Team, 0, len(DefaultTeamNames)),
		nextID:   1,
	}
	for i, name := range DefaultTeamNames {
		s.teams = append(s.teams, newTeam(i, name))
	}
	s.Calls = &LoopbackCalls{State: s}
	return s
}

// Teams returns the fixed team roster.
func (s *State) Teams() []*Team { return s.teams }

// Team returns the team at a roster index, nil when out of range.
func (s *State) Team(id int) *Team {
	if id < 0 || id >= len(s.teams) {
		return nil
	}
	return s.teams[id]
}

// Derelict is the ownerless team.
func (s *State) Derelict() *Team { return s.teams[0] }

// WaveTeam is the team hostile waves spawn as.
func (s *State) WaveTeam() *Team {
	if t := s.Team(s.Rules.WaveTeamID); t != nil {
		return t
	}
	return s.Derelict()
}

// Client reports whether this peer is non-authoritative.
func (s *State) Client() bool { return s.NetClient }

// Tick advances the clock by one host tick.
func (s *State) Tick() {
	s.Time += s.Delta
	s.Millis = int64(s.Time / 60 * 1000)
	s.UpdateID++
}

// === units ===

// AddUnit spawns a unit of a type at world coordinates.
func (s *State) AddUnit(typ *UnitType, team *Team, x, y float64) *Unit {
	u := &Unit{
		ID:        s.nextID,
		Type:      typ,
		Team:      team,
		X:         x,
		Y:         y,
		Health:    typ.Health,
		MaxHealth: typ.Health,
	}
	s.nextID++
	s.units = append(s.units, u)
	team.addUnit(u)
	return u
}

// RemoveUnit kills and deregisters a unit.
func (s *State) RemoveUnit(u *Unit) {
	u.Dead = true
	u.Team.removeUnit(u)
	s.units = removeFrom(s.units, u)
}

// Units returns every live unit.
func (s *State) Units() []*Unit { return s.units }

// CanCreateUnit reports whether a team may gain one more unit of a type.
func (s *State) CanCreateUnit(team *Team, typ *UnitType) bool {
	if s.Rules.BannedUnits[typ.Name] {
		return false
	}
	if s.Rules.UnitCap > 0 && len(team.Units()) >= s.Rules.UnitCap {
		return false
	}
	return true
}

// Nearby calls fn for every unit of a team within range of (x, y).
// Iteration follows team registration order; callers relying on the
// first match accept that order.
func (s *State) Nearby(team *Team, x, y, rad float64, fn func(*Unit)) {
	for _, u := range team.Units() {
		if u.Within(x, y, rad) {
			fn(u)
		}
	}
}

// ClosestUnit returns the nearest unit of a team within range matching
// pred, nil if none.
func (s *State) ClosestUnit(team *Team, x, y, rad float64, pred func(*Unit) bool) *Unit {
	var best *Unit
	bestDst := math.MaxFloat64
	for _, u := range team.Units() {
		if !u.Within(x, y, rad) || !pred(u) {
			continue
		}
		d := math.Hypot(u.X-x, u.Y-y)
		if d < bestDst {
			bestDst = d
			best = u
		}
	}
	return best
}

// === buildings ===

// AddBuilding places a building of a block at tile coordinates. Any
// prior occupant of the tile is removed first.
func (s *State) AddBuilding(block *Block, team *Team, tx, ty int) *Building {
	tile := s.Grid.Tile(tx, ty)
	if tile == nil {
		return nil
	}
	if tile.Build != nil {
		s.RemoveBuilding(tile.Build)
	}
	b := &Building{
		ID:      s.nextID,
		Block:   block,
		Team:    team,
		TileX:   tx,
		TileY:   ty,
		X:       float64(tx) * TileSize,
		Y:       float64(ty) * TileSize,
		Health:  1,
		Enabled: true,
		Core:    block.HasFlag(FlagCore),
	}
	s.nextID++
	if block.MemorySize > 0 {
		b.Memory = make([]float64, block.MemorySize)
	}
	if block.IsDisplay {
		b.Display = &DisplayQueue{}
	}
	if block.ItemCap > 0 {
		b.Items = make(map[*Item]int)
	}
	tile.Block = block
	tile.Build = b
	s.buildings = append(s.buildings, b)
	team.addBuilding(b)
	return b
}

// RemoveBuilding removes a building and restores its tile to air.
func (s *State) RemoveBuilding(b *Building) {
	b.Dead = true
	b.Team.removeBuilding(b)
	s.buildings = removeFrom(s.buildings, b)
	if t := s.Grid.Tile(b.TileX, b.TileY); t != nil && t.Build == b {
		t.Build = nil
		t.Block = s.Content.Air
	}
}

// Buildings returns every live building.
func (s *State) Buildings() []*Building { return s.buildings }

// FindDamagedBuilding returns the closest damaged building of a team.
func (s *State) FindDamagedBuilding(team *Team, x, y float64) *Building {
	var best *Building
	bestDst := math.MaxFloat64
	for _, b := range team.AllBuildings() {
		if b.Health >= 1 {
			continue
		}
		d := math.Hypot(b.X-x, b.Y-y)
		if d < bestDst {
			bestDst = d
			best = b
		}
	}
	return best
}

// FindFlaggedBuilding returns the closest building carrying a block
// flag. When enemy is true the search covers every team except the
// given one; otherwise only the given team.
func (s *State) FindFlaggedBuilding(team *Team, flag BlockFlag, enemy bool, x, y float64) *Building {
	var best *Building
	bestDst := math.MaxFloat64
	consider := func(b *Building) {
		if !b.Block.HasFlag(flag) {
			return
		}
		d := math.Hypot(b.X-x, b.Y-y)
		if d < bestDst {
			bestDst = d
			best = b
		}
	}
	for _, t := range s.teams {
		if enemy == (t == team) {
			continue
		}
		for _, b := range t.AllBuildings() {
			consider(b)
		}
	}
	return best
}

// FindClosestOre returns the closest tile whose overlay yields the item.
func (s *State) FindClosestOre(x, y float64, item *Item) *Tile {
	var best *Tile
	bestDst := math.MaxFloat64
	for ty := 0; ty < s.Grid.Height; ty++ {
		for tx := 0; tx < s.Grid.Width; tx++ {
			t := s.Grid.Tile(tx, ty)
			if t.Overlay == nil || t.Overlay.IsAir() || t.Overlay.Name != "ore-"+item.Name {
				continue
			}
			d := math.Hypot(t.WorldX()-x, t.WorldY()-y)
			if d < bestDst {
				bestDst = d
				best = t
			}
		}
	}
	return best
}

// === spawns ===

// AddSpawnPoint registers a wave spawn tile.
func (s *State) AddSpawnPoint(tx, ty int) {
	if t := s.Grid.Tile(tx, ty); t != nil {
		s.spawnPoints = append(s.spawnPoints, t)
	}
}

// SpawnPoints returns the registered wave spawn tiles.
func (s *State) SpawnPoints() []*Tile { return s.spawnPoints }

// SkipWave advances the wave counter and resets the wave timer.
func (s *State) SkipWave() {
	s.Wave++
	s.WaveTime = s.Rules.WaveSpacing
	logrus.Debugf("wave skipped, now at wave %d", s.Wave)
}

// === tile mutation ===

// SetTileBlock replaces the block layer of a tile, handling building
// bookkeeping for both the removed and the placed block.
func (s *State) SetTileBlock(t *Tile, block *Block, team *Team, rotation int) {
	if t.Build != nil {
		s.RemoveBuilding(t.Build)
	}
	if block.IsAir() {
		t.Block = s.Content.Air
		return
	}
	b := s.AddBuilding(block, team, t.X, t.Y)
	if b != nil {
		b.Rotation = rotation
	}
}

// CheckMapArea reports whether the map area rule already matches the
// given region; when set is true it also applies the region.
func (s *State) CheckMapArea(x, y, w, h int, set bool) bool {
	x = max(x, 0)
	y = max(y, 0)
	w = min(s.Grid.Width, w)
	h = min(s.Grid.Height, h)
	full := x == 0 && y == 0 && w == s.Grid.Width && h == s.Grid.Height

	area := &s.Rules.MapArea
	if area.Limited {
		if area.X == x && area.Y == y && area.W == w && area.H == h {
			return true
		}
		if full && set {
			area.Limited = false
			return false
		}
	} else if full {
		return true
	}

	if set {
		area.Limited = true
		area.X, area.Y, area.W, area.H = x, y, w, h
	}
	return false
}

// Damage applies area damage around a point, killing entities whose
// health is exhausted.
func (s *State) Damage(source *Team, x, y, radius, amount float64, air, ground bool) {
	for _, team := range s.teams {
		if source != nil && team == source {
			continue
		}
		for _, u := range append([]*Unit(nil), team.Units()...) {
			if !u.Within(x, y, radius) {
				continue
			}
			if u.Type.Flying && !air || !u.Type.Flying && !ground {
				continue
			}
			u.Health -= amount
			if u.Health <= 0 {
				s.RemoveUnit(u)
			}
		}
	}
}

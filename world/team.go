package world

// TeamRules holds per-team multipliers mutable through the rule
// instruction set.
type TeamRules struct {
	BuildSpeedMultiplier     float64 `yaml:"build_speed_multiplier"`
	UnitHealthMultiplier     float64 `yaml:"unit_health_multiplier"`
	UnitBuildSpeedMultiplier float64 `yaml:"unit_build_speed_multiplier"`
	UnitCostMultiplier       float64 `yaml:"unit_cost_multiplier"`
	UnitDamageMultiplier     float64 `yaml:"unit_damage_multiplier"`
	BlockHealthMultiplier    float64 `yaml:"block_health_multiplier"`
	BlockDamageMultiplier    float64 `yaml:"block_damage_multiplier"`
	RTSMinWeight             float64 `yaml:"rts_min_weight"`
	RTSMinSquad              int     `yaml:"rts_min_squad"`
}

func defaultTeamRules() TeamRules {
	return TeamRules{
		BuildSpeedMultiplier:     1,
		UnitHealthMultiplier:     1,
		UnitBuildSpeedMultiplier: 1,
		UnitCostMultiplier:       1,
		UnitDamageMultiplier:     1,
		BlockHealthMultiplier:    1,
		BlockDamageMultiplier:    1,
	}
}

// Team is one faction. Teams are identified by a dense index into the
// fixed roster held by State.
type Team struct {
	ID   int
	Name string
	AI   bool

	Rules TeamRules

	units    []*Unit
	byType   map[*UnitType][]*Unit
	players  []*Unit
	cores    []*Building
	builds   map[*Block][]*Building
	allBuild []*Building
}

func newTeam(id int, name string) *Team {
	return &Team{
		ID:     id,
		Name:   name,
		Rules:  defaultTeamRules(),
		byType: make(map[*UnitType][]*Unit),
		builds: make(map[*Block][]*Building),
	}
}

// Units returns all live units on the team, in registration order.
func (t *Team) Units() []*Unit { return t.units }

// UnitCache returns the live units of one type, in registration order.
func (t *Team) UnitCache(typ *UnitType) []*Unit { return t.byType[typ] }

// Players returns the player-controlled units on the team.
func (t *Team) Players() []*Unit { return t.players }

// Cores returns the team's core buildings.
func (t *Team) Cores() []*Building { return t.cores }

// Buildings returns the team's buildings of one block type.
func (t *Team) Buildings(block *Block) []*Building { return t.builds[block] }

// AllBuildings returns every building owned by the team.
func (t *Team) AllBuildings() []*Building { return t.allBuild }

func (t *Team) addUnit(u *Unit) {
	t.units = append(t.units, u)
	t.byType[u.Type] = append(t.byType[u.Type], u)
	if u.Player {
		t.players = append(t.players, u)
	}
}

func (t *Team) removeUnit(u *Unit) {
	t.units = removeFrom(t.units, u)
	t.byType[u.Type] = removeFrom(t.byType[u.Type], u)
	if u.Player {
		t.players = removeFrom(t.players, u)
	}
}

func (t *Team) addBuilding(b *Building) {
	t.allBuild = append(t.allBuild, b)
	t.builds[b.Block] = append(t.builds[b.Block], b)
	if b.Core {
		t.cores = append(t.cores, b)
	}
}

func (t *Team) removeBuilding(b *Building) {
	t.allBuild = removeFrom(t.allBuild, b)
	t.builds[b.Block] = removeFrom(t.builds[b.Block], b)
	if b.Core {
		t.cores = removeFrom(t.cores, b)
	}
}

func removeFrom[T comparable](s []T, v T) []T {
	for i, x := range s {
		if x == v {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}

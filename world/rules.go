package world

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MapArea is the playable-area restriction rule.
type MapArea struct {
	Limited bool `yaml:"limited"`
	X       int  `yaml:"x"`
	Y       int  `yaml:"y"`
	W       int  `yaml:"w"`
	H       int  `yaml:"h"`
}

// SpawnGroup describes one enemy wave component.
type SpawnGroup struct {
	Type     string `yaml:"type"`      // unit type name
	Spawn    int    `yaml:"spawn"`     // packed spawn point, -1 = any
	Count    int    `yaml:"count"`     // units per wave
	ScalePer int    `yaml:"scale_per"` // extra unit every N waves (0 = none)
}

// Spawned returns how many units this group contributes at a wave index.
func (g *SpawnGroup) Spawned(wave int) int {
	n := g.Count
	if g.ScalePer > 0 {
		n += wave / g.ScalePer
	}
	return n
}

// Rules is the mutable global rule state shared by all processors.
type Rules struct {
	WaveTimer            bool    `yaml:"wave_timer"`
	Waves                bool    `yaml:"waves"`
	WaveSending          bool    `yaml:"wave_sending"`
	AttackMode           bool    `yaml:"attack_mode"`
	WaveSpacing          float64 `yaml:"wave_spacing"` // ticks between waves
	EnemyCoreBuildRadius float64 `yaml:"enemy_core_build_radius"`
	DropZoneRadius       float64 `yaml:"drop_zone_radius"`
	UnitCap              int     `yaml:"unit_cap"`
	Lighting             bool    `yaml:"lighting"`
	AmbientLight         float64 `yaml:"ambient_light"`
	SolarMultiplier      float64 `yaml:"solar_multiplier"`
	LogicUnitBuild       bool    `yaml:"logic_unit_build"`
	Mission              string  `yaml:"mission"`

	MapArea MapArea      `yaml:"map_area"`
	Spawns  []SpawnGroup `yaml:"spawns"`

	WaveTeamID int `yaml:"wave_team"`

	BannedBlocks   map[string]bool `yaml:"-"`
	BannedUnits    map[string]bool `yaml:"-"`
	ObjectiveFlags map[string]bool `yaml:"-"`
}

// DefaultRules returns rules matching a fresh survival map.
func DefaultRules() *Rules {
	return &Rules{
		Waves:           true,
		WaveSending:     true,
		WaveSpacing:     60 * 120,
		SolarMultiplier: 1,
		LogicUnitBuild:  true,
		WaveTeamID:      1,
		BannedBlocks:    make(map[string]bool),
		BannedUnits:     make(map[string]bool),
		ObjectiveFlags:  make(map[string]bool),
	}
}

// LoadRulesFile reads a rules YAML file over the defaults.
func LoadRulesFile(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file: %w", err)
	}
	r := DefaultRules()
	if err := yaml.Unmarshal(data, r); err != nil {
		return nil, fmt.Errorf("parsing rules file %s: %w", path, err)
	}
	return r, nil
}

// Ban adds a block or unit type to the banned set.
func (r *Rules) Ban(c Content) {
	switch c.(type) {
	case *Block:
		r.BannedBlocks[c.ContentName()] = true
	case *UnitType:
		r.BannedUnits[c.ContentName()] = true
	}
}

// Unban removes a block or unit type from the banned set.
func (r *Rules) Unban(c Content) {
	switch c.(type) {
	case *Block:
		delete(r.BannedBlocks, c.ContentName())
	case *UnitType:
		delete(r.BannedUnits, c.ContentName())
	}
}

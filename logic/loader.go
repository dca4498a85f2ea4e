package logic

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ProgramBundle is one processor's program as loaded from a YAML file:
// the source text plus the processor's placement and tuning.
type ProgramBundle struct {
	Name       string `yaml:"name"`
	Code       string `yaml:"code"`
	IPT        int    `yaml:"ipt"`
	Privileged bool   `yaml:"privileged"`

	// Tile position of the processor building; negative means detached
	// (no building, world-processor style).
	X int `yaml:"x"`
	Y int `yaml:"y"`

	// Team index the processor runs as.
	Team int `yaml:"team"`

	// Tile positions of linked buildings.
	Links []LinkRef `yaml:"links"`
}

// LinkRef is one linked building position.
type LinkRef struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Validate checks bundle fields against their legal ranges.
func (b *ProgramBundle) Validate() error {
	if b.Code == "" {
		return fmt.Errorf("program %q has no code", b.Name)
	}
	if b.IPT < 0 || b.IPT > MaxInstructions {
		return fmt.Errorf("ipt must be in [0, %d], got %d", MaxInstructions, b.IPT)
	}
	return nil
}

// LoadProgramBundle reads and parses a YAML program file.
func LoadProgramBundle(path string) (*ProgramBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading program file: %w", err)
	}
	var bundle ProgramBundle
	if err := yaml.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("parsing program file %s: %w", path, err)
	}
	if err := bundle.Validate(); err != nil {
		return nil, err
	}
	return &bundle, nil
}

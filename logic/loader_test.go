package logic

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeTempYAML(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "program.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadProgramBundle_ValidYAML(t *testing.T) {
	yaml := `
name: miner
code: |
  ubind @mono
  ucontrol mine 10 12
ipt: 8
privileged: false
x: 4
y: 5
team: 1
links:
  - {x: 1, y: 1}
  - {x: 2, y: 1}
`
	path := writeTempYAML(t, yaml)
	bundle, err := LoadProgramBundle(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assert.Equal(t, "miner", bundle.Name)
	assert.Contains(t, bundle.Code, "ubind @mono")
	assert.Equal(t, 8, bundle.IPT)
	assert.False(t, bundle.Privileged)
	assert.Equal(t, 4, bundle.X)
	assert.Equal(t, 5, bundle.Y)
	assert.Equal(t, 1, bundle.Team)
	assert.Len(t, bundle.Links, 2)
	assert.Equal(t, 2, bundle.Links[1].X)
}

func TestLoadProgramBundle_DefaultsLeftUnset(t *testing.T) {
	path := writeTempYAML(t, "code: noop\n")
	bundle, err := LoadProgramBundle(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assert.Zero(t, bundle.IPT)
	assert.Zero(t, bundle.X)
	assert.Empty(t, bundle.Links)
}

func TestLoadProgramBundle_InvalidYAML(t *testing.T) {
	path := writeTempYAML(t, "{{invalid yaml")
	_, err := LoadProgramBundle(path)
	assert.Error(t, err)
}

func TestLoadProgramBundle_MissingFile(t *testing.T) {
	_, err := LoadProgramBundle(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestProgramBundle_Validate(t *testing.T) {
	cases := []struct {
		name    string
		bundle  ProgramBundle
		wantErr bool
	}{
		{"ok", ProgramBundle{Code: "noop", IPT: 8}, false},
		{"empty code", ProgramBundle{IPT: 8}, true},
		{"negative ipt", ProgramBundle{Code: "noop", IPT: -1}, true},
		{"ipt over limit", ProgramBundle{Code: "noop", IPT: MaxInstructions + 1}, true},
		{"ipt zero means default", ProgramBundle{Code: "noop"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.bundle.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

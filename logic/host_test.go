package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHost_InstallWiresBuildingAndLinks(t *testing.T) {
	w := newTestWorld()
	team := w.Team(1)
	proc := w.AddBuilding(block(t, w, "logic-processor"), team, 0, 0)
	msg := w.AddBuilding(block(t, w, "message"), team, 3, 3)

	h := NewHost(w)
	ex, err := h.Install(&ProgramBundle{
		Name:  "greeter",
		Code:  "print \"hi\"\ngetlink m 0\nprintflush m\nstop",
		X:     0,
		Y:     0,
		Team:  1,
		Links: []LinkRef{{X: 3, Y: 3}},
	})
	assert.NoError(t, err)
	assert.Same(t, proc, ex.Build)
	assert.Same(t, proc, ex.Obj(VarThis))
	assert.Equal(t, proc.Block.MaxIPT, ex.IPT)
	assert.True(t, ex.Linked(msg.ID))

	h.Run(1)
	assert.Equal(t, "hi", msg.Message)
}

func TestHost_BundleIPTOverridesBlockDefault(t *testing.T) {
	w := newTestWorld()
	w.AddBuilding(block(t, w, "logic-processor"), w.Team(1), 0, 0)

	h := NewHost(w)
	ex, err := h.Install(&ProgramBundle{Code: "noop", IPT: 3, X: 0, Y: 0, Team: 1})
	assert.NoError(t, err)
	assert.Equal(t, 3, ex.IPT)
}

func TestHost_DetachedProgramRunsWithoutBuilding(t *testing.T) {
	w := newTestWorld()

	h := NewHost(w)
	ex, err := h.Install(&ProgramBundle{
		Code:       "print \"x\"\nstop",
		X:          -1,
		Y:          -1,
		Privileged: true,
	})
	assert.NoError(t, err)
	assert.Nil(t, ex.Build)

	h.Run(1)
	assert.Equal(t, "x", ex.Text.String())
}

func TestHost_AssembleErrorPropagates(t *testing.T) {
	w := newTestWorld()
	h := NewHost(w)
	_, err := h.Install(&ProgramBundle{Name: "bad", Code: "frobnicate"})
	assert.Error(t, err)
	assert.Empty(t, h.Executors)
}

func TestHost_DisabledBuildingSkipsExecution(t *testing.T) {
	w := newTestWorld()
	proc := w.AddBuilding(block(t, w, "logic-processor"), w.Team(1), 0, 0)

	h := NewHost(w)
	ex, err := h.Install(&ProgramBundle{Code: "print \"a\"\nstop", X: 0, Y: 0, Team: 1})
	assert.NoError(t, err)

	proc.Enabled = false
	h.Run(5)
	assert.Zero(t, ex.Text.Len())

	proc.Enabled = true
	h.Run(1)
	assert.Equal(t, "a", ex.Text.String())
}

func TestHost_MissingLinkSkipped(t *testing.T) {
	w := newTestWorld()
	w.AddBuilding(block(t, w, "logic-processor"), w.Team(1), 0, 0)

	h := NewHost(w)
	ex, err := h.Install(&ProgramBundle{
		Code:  "noop",
		X:     0,
		Y:     0,
		Team:  1,
		Links: []LinkRef{{X: 30, Y: 30}},
	})
	assert.NoError(t, err)
	assert.Empty(t, ex.Links)
}

func TestHost_TickAdvancesClockOncePerTick(t *testing.T) {
	w := newTestWorld()
	h := NewHost(w)
	h.Run(10)
	assert.Equal(t, 10*w.Delta, w.Time)
}

func TestHost_ExecutorsShareOneWorld(t *testing.T) {
	// GIVEN a writer and a reader on the same memory cell
	w := newTestWorld()
	team := w.Team(1)
	w.AddBuilding(block(t, w, "logic-processor"), team, 0, 0)
	w.AddBuilding(block(t, w, "logic-processor"), team, 5, 0)
	cell := w.AddBuilding(block(t, w, "memory-cell"), team, 2, 2)

	h := NewHost(w)
	_, err := h.Install(&ProgramBundle{
		Code:  "getlink c 0\nwrite 7 c 3\nstop",
		X:     0,
		Y:     0,
		Team:  1,
		Links: []LinkRef{{X: 2, Y: 2}},
	})
	assert.NoError(t, err)
	reader, err := h.Install(&ProgramBundle{
		Code:  "getlink c 0\nread out c 3\nstop",
		X:     5,
		Y:     0,
		Team:  1,
		Links: []LinkRef{{X: 2, Y: 2}},
	})
	assert.NoError(t, err)

	h.Run(1)
	assert.Equal(t, 7.0, cell.Memory[3])
	assert.Equal(t, 7.0, namedVar(t, reader, "out").NumVal)
}

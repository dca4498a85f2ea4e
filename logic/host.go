package logic

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/V9S/Mindustry/world"
)

// Host owns a set of executors and drives them against one shared world
// at a fixed tick rate. All execution is single-threaded; executors run
// in registration order within a tick.
type Host struct {
	W         *world.State
	Executors []*Executor

	// Seed keys every installed executor's RNG partitions.
	Seed int64
}

// NewHost wraps a world.
func NewHost(w *world.State) *Host {
	return &Host{W: w}
}

// Install assembles a bundle, wires its processor building and links,
// and registers the resulting executor.
func (h *Host) Install(bundle *ProgramBundle) (*Executor, error) {
	def, err := Assemble(bundle.Code, h.W)
	if err != nil {
		return nil, fmt.Errorf("assembling program %q: %w", bundle.Name, err)
	}

	ex := NewExecutor(h.W)
	ex.Rand = NewPartitionedRNG(NewSimulationKey(h.Seed))
	ex.Privileged = bundle.Privileged
	if t := h.W.Team(bundle.Team); t != nil {
		ex.Team = t
	}
	if bundle.X >= 0 && bundle.Y >= 0 {
		if tile := h.W.Grid.Tile(bundle.X, bundle.Y); tile != nil && tile.Build != nil {
			ex.Build = tile.Build
		}
	}
	if bundle.IPT > 0 {
		ex.IPT = min(bundle.IPT, MaxInstructions)
	} else if ex.Build != nil && ex.Build.Block.MaxIPT > 0 {
		ex.IPT = ex.Build.Block.MaxIPT
	}

	var links []*world.Building
	for _, ref := range bundle.Links {
		if tile := h.W.Grid.Tile(ref.X, ref.Y); tile != nil && tile.Build != nil {
			links = append(links, tile.Build)
		} else {
			logrus.Warnf("program %q: no building at link (%d, %d)", bundle.Name, ref.X, ref.Y)
		}
	}
	ex.SetLinks(links)

	ex.Load(def)
	h.Executors = append(h.Executors, ex)
	logrus.Infof("installed program %q: %d instructions, ipt %d, privileged %v",
		bundle.Name, len(ex.Instructions), ex.IPT, ex.Privileged)
	return ex, nil
}

// Tick runs one host tick: every executor gets up to its instruction
// quota, stopping early when it yields, then the world clock advances.
func (h *Host) Tick() {
	for _, ex := range h.Executors {
		if !ex.Initialized() {
			continue
		}
		if ex.Build != nil && (!ex.Build.Valid() || !ex.Build.Enabled) {
			continue
		}
		ex.Yield = false
		for i := 0; i < ex.IPT; i++ {
			ex.Step()
			if ex.Yield {
				break
			}
		}
	}
	h.W.Tick()
}

// Run drives the host for a fixed number of ticks.
func (h *Host) Run(ticks int) {
	for t := 0; t < ticks; t++ {
		h.Tick()
		logrus.Tracef("[tick %07d] advanced", t)
	}
	logrus.Debugf("run finished after %d ticks", ticks)
}

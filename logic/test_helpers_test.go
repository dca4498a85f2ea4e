package logic

import (
	"testing"

	"github.com/V9S/Mindustry/world"
)

// newTestWorld builds a small world with the default content set.
func newTestWorld() *world.State {
	w := world.NewState(32, 32)
	world.RegisterDefaultContent(w.Content)
	return w
}

// newTestExecutor assembles code and loads it into a fresh executor
// running as the sharded team.
func newTestExecutor(t *testing.T, w *world.State, code string) *Executor {
	t.Helper()
	def, err := Assemble(code, w)
	if err != nil {
		t.Fatalf("unexpected assemble error: %v", err)
	}
	ex := NewExecutor(w)
	ex.Team = w.Team(1)
	ex.Load(def)
	return ex
}

// runTicks drives one executor the way a host would: up to its quota
// per tick, stopping on yield, then advancing the world clock.
func runTicks(w *world.State, ex *Executor, ticks int) {
	for t := 0; t < ticks; t++ {
		ex.Yield = false
		for i := 0; i < ex.IPT; i++ {
			ex.Step()
			if ex.Yield {
				break
			}
		}
		w.Tick()
	}
}

// namedVar returns the loaded variable with the given name.
func namedVar(t *testing.T, ex *Executor, name string) *Var {
	t.Helper()
	for _, v := range ex.Vars {
		if v.Name == name {
			return v
		}
	}
	t.Fatalf("no variable named %q", name)
	return nil
}

// block resolves a block by name from the default content set.
func block(t *testing.T, w *world.State, name string) *world.Block {
	t.Helper()
	b, ok := w.Content.ByName(name).(*world.Block)
	if !ok {
		t.Fatalf("no block named %q", name)
	}
	return b
}

// unitType resolves a unit type by name from the default content set.
func unitType(t *testing.T, w *world.State, name string) *world.UnitType {
	t.Helper()
	u, ok := w.Content.ByName(name).(*world.UnitType)
	if !ok {
		t.Fatalf("no unit type named %q", name)
	}
	return u
}

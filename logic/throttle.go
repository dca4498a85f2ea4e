package logic

// RadarPeriod is the fixed recomputation cadence (ticks) for
// building-sourced targeted searches.
const RadarPeriod = 30

// Interval is a repeating timer: Get reports whether the period has
// elapsed since the last firing, and re-arms when it has. The first
// call always fires.
type Interval struct {
	last  float64
	armed bool
}

// Get returns true when at least period ticks have passed since the
// previous firing at time now.
func (i *Interval) Get(now, period float64) bool {
	if !i.armed || now-i.last >= period {
		i.last = now
		i.armed = true
		return true
	}
	return false
}

// Reset disarms the timer so the next Get fires.
func (i *Interval) Reset() { i.armed = false }

// locateCache is the per-instruction-instance cache for the unit locate
// instruction: last found coordinates and building, served between
// recomputations.
type locateCache struct {
	x, y  float64
	found bool
	build any
}

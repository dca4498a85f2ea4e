package world

// Calls is the remote-call surface: the only legal path for mutating
// shared rule state, flags, and markers across peers. Implementations
// decide transport; delivery is best-effort for the unreliable
// operations and server-authoritative for the rest.
type Calls interface {
	// SyncVariable broadcasts a processor variable value. Unreliable.
	SyncVariable(b *Building, index int, value any)
	// SetFlag sets or clears a global objective flag. Server call.
	SetFlag(flag string, add bool)
	// SetMapArea applies the map-area rule. Server call.
	SetMapArea(x, y, w, h int)
	// LogicExplosion applies area damage. Server call, unreliable.
	LogicExplosion(team *Team, x, y, radius, damage float64, air, ground, pierce, effect bool)
	// CreateMarker installs a marker. Server call, unreliable.
	CreateMarker(id int, m *Marker)
	// UpdateMarker mutates a marker attribute. Server call, unreliable.
	UpdateMarker(id int, control MarkerControl, p1, p2, p3 float64)
	// UpdateMarkerText replaces or extends marker text. Server call,
	// unreliable.
	UpdateMarkerText(id int, control MarkerControl, text string)
}

// PacketKind tags recorded outbound calls.
type PacketKind int

const (
	PacketSyncVariable PacketKind = iota
	PacketSetFlag
	PacketSetMapArea
	PacketExplosion
	PacketCreateMarker
	PacketUpdateMarker
	PacketUpdateMarkerText
)

// Packet is one recorded outbound remote call.
type Packet struct {
	Kind     PacketKind
	Building *Building
	Index    int
	Value    any
	Flag     string
	Add      bool
	Args     []float64
	Text     string
}

// LoopbackCalls applies calls directly to the local State (the behavior
// of an authoritative peer) and records each outbound packet so hosts
// and tests can observe what would have been broadcast.
type LoopbackCalls struct {
	State  *State
	Outbox []Packet
}

func (c *LoopbackCalls) record(p Packet) {
	c.Outbox = append(c.Outbox, p)
}

func (c *LoopbackCalls) SyncVariable(b *Building, index int, value any) {
	c.record(Packet{Kind: PacketSyncVariable, Building: b, Index: index, Value: value})
}

func (c *LoopbackCalls) SetFlag(flag string, add bool) {
	if add {
		c.State.Rules.ObjectiveFlags[flag] = true
	} else {
		delete(c.State.Rules.ObjectiveFlags, flag)
	}
	c.record(Packet{Kind: PacketSetFlag, Flag: flag, Add: add})
}

func (c *LoopbackCalls) SetMapArea(x, y, w, h int) {
	c.State.CheckMapArea(x, y, w, h, true)
	c.record(Packet{Kind: PacketSetMapArea, Args: []float64{float64(x), float64(y), float64(w), float64(h)}})
}

func (c *LoopbackCalls) LogicExplosion(team *Team, x, y, radius, damage float64, air, ground, pierce, effect bool) {
	if damage < 0 {
		return
	}
	c.State.Damage(team, x, y, radius, damage, air, ground)
	c.record(Packet{Kind: PacketExplosion, Args: []float64{x, y, radius, damage}})
}

func (c *LoopbackCalls) CreateMarker(id int, m *Marker) {
	c.State.Markers.Put(id, m)
	c.record(Packet{Kind: PacketCreateMarker, Index: id})
}

func (c *LoopbackCalls) UpdateMarker(id int, control MarkerControl, p1, p2, p3 float64) {
	if m := c.State.Markers.Get(id); m != nil {
		m.Control(control, p1, p2, p3)
	}
	c.record(Packet{Kind: PacketUpdateMarker, Index: id, Args: []float64{p1, p2, p3}})
}

func (c *LoopbackCalls) UpdateMarkerText(id int, control MarkerControl, text string) {
	if m := c.State.Markers.Get(id); m != nil {
		m.SetText(text, control == MarkerText)
	}
	c.record(Packet{Kind: PacketUpdateMarkerText, Index: id, Text: text})
}

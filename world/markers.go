package world

// MaxMarkers caps the marker table.
const MaxMarkers = 20000

// MarkerControl selects which marker attribute an update mutates.
type MarkerControl int

const (
	MarkerPos MarkerControl = iota
	MarkerX
	MarkerY
	MarkerRotation
	MarkerColor
	MarkerRadius
	MarkerVisibility
	MarkerText
	MarkerFlushText
	MarkerRemove
)

var markerControlNames = map[string]MarkerControl{
	"pos": MarkerPos, "x": MarkerX, "y": MarkerY,
	"rotation": MarkerRotation, "color": MarkerColor,
	"radius": MarkerRadius, "visibility": MarkerVisibility,
	"text": MarkerText, "flushText": MarkerFlushText,
	"remove": MarkerRemove,
}

// MarkerControlByName resolves a control tag, ok=false when unknown.
func MarkerControlByName(name string) (MarkerControl, bool) {
	c, ok := markerControlNames[name]
	return c, ok
}

var markerTypes = map[string]bool{
	"shape": true, "point": true, "text": true, "line": true,
}

// ValidMarkerType reports whether a marker type name is known.
func ValidMarkerType(name string) bool { return markerTypes[name] }

// Marker is one map annotation.
type Marker struct {
	Type     string
	X, Y     float64
	Rotation float64
	Color    float64
	Radius   float64
	Visible  bool
	Text     string
}

// NewMarker creates a visible marker of the given type.
func NewMarker(typ string) *Marker {
	return &Marker{Type: typ, Visible: true}
}

// Control applies a numeric attribute mutation.
func (m *Marker) Control(c MarkerControl, p1, p2, p3 float64) {
	switch c {
	case MarkerPos:
		m.X, m.Y = p1, p2
	case MarkerX:
		m.X = p1
	case MarkerY:
		m.Y = p1
	case MarkerRotation:
		m.Rotation = p1
	case MarkerColor:
		m.Color = p1
	case MarkerRadius:
		m.Radius = p1
	case MarkerVisibility:
		m.Visible = p1 != 0
	}
}

// SetText replaces or appends the marker text.
func (m *Marker) SetText(text string, replace bool) {
	if replace {
		m.Text = text
	} else {
		m.Text += text
	}
}

// MarkerTable is the shared id-keyed marker store. Creates past the cap
// are dropped.
type MarkerTable struct {
	markers map[int]*Marker
}

func NewMarkerTable() *MarkerTable {
	return &MarkerTable{markers: make(map[int]*Marker)}
}

func (t *MarkerTable) Len() int { return len(t.markers) }

func (t *MarkerTable) Get(id int) *Marker { return t.markers[id] }

func (t *MarkerTable) Has(id int) bool { _, ok := t.markers[id]; return ok }

// Put stores a marker. Returns false when the table is full.
func (t *MarkerTable) Put(id int, m *Marker) bool {
	if _, exists := t.markers[id]; !exists && len(t.markers) >= MaxMarkers {
		return false
	}
	t.markers[id] = m
	return true
}

func (t *MarkerTable) Remove(id int) { delete(t.markers, id) }

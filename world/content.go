package world

// ContentKind distinguishes the registries that numeric content ids index into.
type ContentKind int

const (
	KindBlock ContentKind = iota
	KindUnitType
	KindItem
	KindStatus
)

// Content is anything addressable by (kind, id) and printable by name.
type Content interface {
	ContentID() int
	ContentName() string
	ContentKind() ContentKind
}

// BlockFlag categorizes buildings for flag-directed searches.
type BlockFlag string

const (
	FlagCore      BlockFlag = "core"
	FlagStorage   BlockFlag = "storage"
	FlagGenerator BlockFlag = "generator"
	FlagTurret    BlockFlag = "turret"
	FlagFactory   BlockFlag = "factory"
	FlagRepair    BlockFlag = "repair"
	FlagBattery   BlockFlag = "battery"
	FlagReactor   BlockFlag = "reactor"
)

// Block describes a block/tile type. A Block value is shared content, never
// per-tile state; per-tile state lives on Tile and Building.
type Block struct {
	ID   int
	Name string

	Solid     bool
	IsFloor   bool
	IsOverlay bool

	// Capabilities of buildings of this block.
	MemorySize  int  // > 0 means buildings hold a word-addressed memory bank
	IsDisplay   bool // buildings accept graphics command flushes
	IsMessage   bool // buildings accept text flushes
	IsLogic     bool // buildings run a logic processor
	Privileged  bool // logic buildings of this block bypass authorization
	MaxIPT      int  // instruction quota ceiling for logic blocks
	Range       float64
	Size        int
	CanBeBuilt  bool
	Hidden      bool
	ItemCap     int
	BuildPlaced bool // placement-visible (not a hidden/internal block)
	TakesUnits  bool // buildings accept units entering as payloads

	Flags []BlockFlag
}

// HasFlag reports whether the block carries a flag.
func (b *Block) HasFlag(f BlockFlag) bool {
	for _, x := range b.Flags {
		if x == f {
			return true
		}
	}
	return false
}

func (b *Block) ContentID() int           { return b.ID }
func (b *Block) ContentName() string      { return b.Name }
func (b *Block) ContentKind() ContentKind { return KindBlock }

// IsAir reports whether this is the air block.
func (b *Block) IsAir() bool { return b.Name == "air" }

// Item is a transferable resource type.
type Item struct {
	ID   int
	Name string
}

func (i *Item) ContentID() int           { return i.ID }
func (i *Item) ContentName() string      { return i.Name }
func (i *Item) ContentKind() ContentKind { return KindItem }

// StatusEffect is an applicable unit status.
type StatusEffect struct {
	ID   int
	Name string
}

func (s *StatusEffect) ContentID() int           { return s.ID }
func (s *StatusEffect) ContentName() string      { return s.Name }
func (s *StatusEffect) ContentKind() ContentKind { return KindStatus }

// UnitType describes a unit archetype.
type UnitType struct {
	ID   int
	Name string

	Flying            bool
	LogicControllable bool
	CanMine           bool
	CanBuild          bool
	PayloadCapacity   float64
	HitSize           float64
	Range             float64
	BuildRange        float64
	Health            float64
	ItemCapacity      int
	Hidden            bool
	Boss              bool
}

func (u *UnitType) ContentID() int           { return u.ID }
func (u *UnitType) ContentName() string      { return u.Name }
func (u *UnitType) ContentKind() ContentKind { return KindUnitType }

// ContentRegistry resolves content by kind and numeric id, and by name.
// Ids are dense per kind, assigned in registration order.
type ContentRegistry struct {
	Blocks   []*Block
	Units    []*UnitType
	Items    []*Item
	Statuses []*StatusEffect

	byName map[string]Content

	// Canonical blocks every registry carries.
	Air       *Block
	SolidWall *Block
}

// NewContentRegistry builds a registry pre-seeded with the canonical
// air and solid blocks.
func NewContentRegistry() *ContentRegistry {
	r := &ContentRegistry{byName: make(map[string]Content)}
	r.Air = r.AddBlock(&Block{Name: "air", IsFloor: true})
	r.SolidWall = r.AddBlock(&Block{Name: "stone-wall", Solid: true})
	return r
}

func (r *ContentRegistry) AddBlock(b *Block) *Block {
	b.ID = len(r.Blocks)
	r.Blocks = append(r.Blocks, b)
	r.byName[b.Name] = b
	return b
}

func (r *ContentRegistry) AddUnitType(u *UnitType) *UnitType {
	u.ID = len(r.Units)
	r.Units = append(r.Units, u)
	r.byName[u.Name] = u
	return u
}

func (r *ContentRegistry) AddItem(i *Item) *Item {
	i.ID = len(r.Items)
	r.Items = append(r.Items, i)
	r.byName[i.Name] = i
	return i
}

func (r *ContentRegistry) AddStatus(s *StatusEffect) *StatusEffect {
	s.ID = len(r.Statuses)
	r.Statuses = append(r.Statuses, s)
	r.byName[s.Name] = s
	return s
}

// Lookup resolves content by kind and id. Out-of-range ids resolve to nil.
func (r *ContentRegistry) Lookup(kind ContentKind, id int) Content {
	switch kind {
	case KindBlock:
		if id >= 0 && id < len(r.Blocks) {
			return r.Blocks[id]
		}
	case KindUnitType:
		if id >= 0 && id < len(r.Units) {
			return r.Units[id]
		}
	case KindItem:
		if id >= 0 && id < len(r.Items) {
			return r.Items[id]
		}
	case KindStatus:
		if id >= 0 && id < len(r.Statuses) {
			return r.Statuses[id]
		}
	}
	return nil
}

// ByName resolves content by registered name, nil if absent.
func (r *ContentRegistry) ByName(name string) Content {
	return r.byName[name]
}

// Status resolves a status effect by name, nil if absent.
func (r *ContentRegistry) Status(name string) *StatusEffect {
	if s, ok := r.byName[name].(*StatusEffect); ok {
		return s
	}
	return nil
}

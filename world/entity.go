package world

import "math"

// Prop identifies a sensed property. Properties either measure as a
// number or resolve to an object; SenseObject reports which.
type Prop int

const (
	PropX Prop = iota
	PropY
	PropHealth
	PropMaxHealth
	PropTeam
	PropType
	PropFlag
	PropRotation
	PropRange
	PropSize
	PropDead
	PropControlled
	PropTotalItems
	PropItemCapacity
	PropMemoryCapacity
	PropEnabled
	PropConfig
	PropFirstItem
	PropPayloadCount
	PropBoosting
	PropMining
	PropShooting
)

var propNames = map[string]Prop{
	"x": PropX, "y": PropY,
	"health": PropHealth, "maxHealth": PropMaxHealth,
	"team": PropTeam, "type": PropType, "flag": PropFlag,
	"rotation": PropRotation, "range": PropRange, "size": PropSize,
	"dead": PropDead, "controlled": PropControlled,
	"totalItems": PropTotalItems, "itemCapacity": PropItemCapacity,
	"memoryCapacity": PropMemoryCapacity, "enabled": PropEnabled,
	"config": PropConfig, "firstItem": PropFirstItem,
	"payloadCount": PropPayloadCount, "boosting": PropBoosting,
	"mining": PropMining, "shooting": PropShooting,
}

// PropByName resolves a property tag, ok=false when unknown.
func PropByName(name string) (Prop, bool) {
	p, ok := propNames[name]
	return p, ok
}

func (p Prop) String() string {
	for name, v := range propNames {
		if v == p {
			return name
		}
	}
	return "unknown"
}

// Senseable is anything the sense instruction can interrogate.
type Senseable interface {
	// Sense measures a numeric property. Unknown properties measure 0.
	Sense(p Prop) float64
	// SenseObject resolves an object-valued property. ok=false means the
	// property is numeric and Sense should be used instead.
	SenseObject(p Prop) (any, bool)
	// SenseContent measures how much of a content item is held.
	SenseContent(c Content) float64
}

// ControlMode is the movement order a logic controller holds for a unit.
type ControlMode int

const (
	ControlIdle ControlMode = iota
	ControlStop
	ControlMove
	ControlApproach
	ControlPathfind
	ControlAutoPathfind
)

// LogicControlTimeout is how long (in ticks) a unit stays under logic
// control after its last order before reverting to its own AI.
const LogicControlTimeout = 60 * 10

// RetargetInterval is the per-controller period (in ticks) between
// recomputations of targeted searches issued through a unit.
const RetargetInterval = 30

// BuildPlan is a pending construction order.
type BuildPlan struct {
	X, Y     int
	Rotation int
	Block    *Block
	Config   any
	Active   bool
}

// LogicController is the per-unit state installed when a processor takes
// control of a unit. It also owns the per-instruction caches and timers
// used to throttle targeted searches routed through the unit.
type LogicController struct {
	Controller   *Building // the processor building issuing orders
	ControlTimer float64

	Control        ControlMode
	MoveX, MoveY   float64
	MoveRad        float64
	Boost          bool
	Shoot          bool
	TargetX        float64
	TargetY        float64
	TargetPos      bool
	MainTarget     any
	Plan           BuildPlan
	ExecCache      map[any]any
	retargetTimers map[any]float64
}

// NewLogicController returns a controller with empty caches.
func NewLogicController() *LogicController {
	return &LogicController{
		ExecCache:      make(map[any]any),
		retargetTimers: make(map[any]float64),
	}
}

// CheckRetargetTimer reports whether the search keyed by instr may
// recompute at time now, and arms the timer when it does. The first call
// for a key always recomputes.
func (c *LogicController) CheckRetargetTimer(instr any, now float64) bool {
	last, ok := c.retargetTimers[instr]
	if !ok || now-last >= RetargetInterval {
		c.retargetTimers[instr] = now
		return true
	}
	return false
}

// Unit is a live mobile entity.
type Unit struct {
	ID   int
	Type *UnitType
	Team *Team

	X, Y      float64
	Rotation  float64
	Health    float64
	MaxHealth float64
	Flag      float64
	Dead      bool
	Player    bool

	Stack    ItemStack
	MineX    int
	MineY    int
	Mining   bool
	Payloads []any

	statuses   map[*StatusEffect]float64
	controller *LogicController
}

// ApplyStatus applies a status effect for a duration in ticks,
// extending any existing application.
func (u *Unit) ApplyStatus(e *StatusEffect, duration float64) {
	if u.statuses == nil {
		u.statuses = make(map[*StatusEffect]float64)
	}
	if duration > u.statuses[e] {
		u.statuses[e] = duration
	}
}

// ClearStatus removes a status effect.
func (u *Unit) ClearStatus(e *StatusEffect) { delete(u.statuses, e) }

// HasStatus reports whether a status effect is active.
func (u *Unit) HasStatus(e *StatusEffect) bool {
	return u.statuses[e] > 0
}

// ItemStack is the single item slot a unit carries.
type ItemStack struct {
	Item   *Item
	Amount int
}

// Valid reports whether the unit can still be addressed.
func (u *Unit) Valid() bool { return u != nil && !u.Dead }

// Controller returns the active logic controller, nil when the unit is
// running its own AI.
func (u *Unit) Controller() *LogicController { return u.controller }

// TakeControl installs (or refreshes) logic control and returns the
// controller. Installing clears mining and build state, matching a fresh
// takeover.
func (u *Unit) TakeControl() *LogicController {
	if u.controller == nil {
		u.controller = NewLogicController()
		u.Mining = false
		u.controller.Plan.Active = false
	}
	return u.controller
}

// ResetController releases the unit back to its own AI.
func (u *Unit) ResetController() { u.controller = nil }

// Within reports whether the unit is within rad of (x, y).
func (u *Unit) Within(x, y, rad float64) bool {
	return math.Hypot(u.X-x, u.Y-y) <= rad
}

// MaxAccepted returns how many more of item the unit can carry.
func (u *Unit) MaxAccepted(item *Item) int {
	if u.Stack.Item != nil && u.Stack.Item != item {
		return 0
	}
	return u.Type.ItemCapacity - u.Stack.Amount
}

// ClearItem drops the carried item stack.
func (u *Unit) ClearItem() { u.Stack = ItemStack{} }

// Targetable reports whether the unit can be targeted by the given team.
func (u *Unit) Targetable(by *Team) bool { return u.Valid() }

func (u *Unit) Sense(p Prop) float64 {
	switch p {
	case PropX:
		return u.X / TileSize
	case PropY:
		return u.Y / TileSize
	case PropHealth:
		return u.Health
	case PropMaxHealth:
		return u.MaxHealth
	case PropFlag:
		return u.Flag
	case PropRotation:
		return u.Rotation
	case PropRange:
		return u.Type.Range / TileSize
	case PropSize:
		return u.Type.HitSize / TileSize
	case PropDead:
		return b2f(u.Dead)
	case PropControlled:
		return b2f(u.controller != nil)
	case PropTotalItems:
		return float64(u.Stack.Amount)
	case PropItemCapacity:
		return float64(u.Type.ItemCapacity)
	case PropPayloadCount:
		return float64(len(u.Payloads))
	case PropBoosting:
		if c := u.controller; c != nil {
			return b2f(c.Boost)
		}
	case PropMining:
		return b2f(u.Mining)
	case PropShooting:
		if c := u.controller; c != nil {
			return b2f(c.Shoot)
		}
	}
	return 0
}

func (u *Unit) SenseObject(p Prop) (any, bool) {
	switch p {
	case PropTeam:
		return u.Team, true
	case PropType:
		return u.Type, true
	case PropFirstItem:
		if u.Stack.Amount > 0 {
			return u.Stack.Item, true
		}
		return nil, true
	}
	return nil, false
}

func (u *Unit) SenseContent(c Content) float64 {
	if item, ok := c.(*Item); ok && u.Stack.Item == item {
		return float64(u.Stack.Amount)
	}
	return 0
}

// Building is a placed structure. Capability fields are derived from the
// block at placement time.
type Building struct {
	ID    int
	Block *Block
	Team  *Team

	X, Y         float64 // world coordinates of the center
	TileX, TileY int
	Rotation     int
	Health       float64
	Dead         bool
	Core         bool

	Enabled      bool
	LastDisabler *Building
	Config       any
	Items        map[*Item]int

	// Memory bank, sized from Block.MemorySize; nil otherwise.
	Memory []float64
	// Display command queue; non-nil only for display blocks.
	Display *DisplayQueue
	// Message text; meaningful only for message blocks.
	Message string

	// Per-instance controls applied through the building control
	// instruction.
	ControlledShoot   bool
	ControlledTargetX float64
	ControlledTargetY float64
	ControlledTarget  any
}

// Valid reports whether the building can still be addressed.
func (b *Building) Valid() bool { return b != nil && !b.Dead }

// Within reports whether the building center is within rad of (x, y).
func (b *Building) Within(x, y, rad float64) bool {
	return math.Hypot(b.X-x, b.Y-y) <= rad
}

// TotalItems sums all held item stacks.
func (b *Building) TotalItems() int {
	n := 0
	for _, v := range b.Items {
		n += v
	}
	return n
}

// AcceptStack returns how many of the offered amount the building takes.
func (b *Building) AcceptStack(item *Item, amount int) int {
	if item == nil || b.Block.ItemCap <= 0 {
		return 0
	}
	space := b.Block.ItemCap - b.Items[item]
	if space <= 0 {
		return 0
	}
	if amount < space {
		return amount
	}
	return space
}

func (b *Building) Sense(p Prop) float64 {
	switch p {
	case PropX:
		return b.X / TileSize
	case PropY:
		return b.Y / TileSize
	case PropHealth:
		return b.Health
	case PropMaxHealth:
		return b.Health
	case PropRotation:
		return float64(b.Rotation)
	case PropRange:
		return b.Block.Range / TileSize
	case PropSize:
		return float64(b.Block.Size)
	case PropDead:
		return b2f(b.Dead)
	case PropTotalItems:
		return float64(b.TotalItems())
	case PropItemCapacity:
		return float64(b.Block.ItemCap)
	case PropMemoryCapacity:
		return float64(len(b.Memory))
	case PropEnabled:
		return b2f(b.Enabled)
	case PropShooting:
		return b2f(b.ControlledShoot)
	}
	return 0
}

func (b *Building) SenseObject(p Prop) (any, bool) {
	switch p {
	case PropTeam:
		return b.Team, true
	case PropType:
		return b.Block, true
	case PropConfig:
		return b.Config, true
	}
	return nil, false
}

func (b *Building) SenseContent(c Content) float64 {
	if item, ok := c.(*Item); ok {
		return float64(b.Items[item])
	}
	return 0
}

// SetProp applies a property injection. Unknown or immutable properties
// are ignored.
func (b *Building) SetProp(p Prop, value any) {
	switch p {
	case PropHealth:
		if n, ok := value.(float64); ok {
			b.Health = n
			b.Dead = n <= 0
		}
	case PropTeam:
		if t, ok := value.(*Team); ok && t != nil {
			old := b.Team
			old.removeBuilding(b)
			b.Team = t
			t.addBuilding(b)
		}
	case PropConfig:
		b.Config = value
	}
}

// SetContent sets the held amount of an item.
func (b *Building) SetContent(c Content, amount float64) {
	if item, ok := c.(*Item); ok {
		if amount < 0 {
			amount = 0
		}
		if b.Items == nil {
			b.Items = make(map[*Item]int)
		}
		b.Items[item] = int(amount)
	}
}

// SetProp applies a property injection on a unit.
func (u *Unit) SetProp(p Prop, value any) {
	switch p {
	case PropHealth:
		if n, ok := value.(float64); ok {
			u.Health = n
			u.Dead = n <= 0
		}
	case PropFlag:
		if n, ok := value.(float64); ok {
			u.Flag = n
		}
	case PropX:
		if n, ok := value.(float64); ok {
			u.X = n * TileSize
		}
	case PropY:
		if n, ok := value.(float64); ok {
			u.Y = n * TileSize
		}
	case PropTeam:
		if t, ok := value.(*Team); ok && t != nil {
			u.Team.removeUnit(u)
			u.Team = t
			t.addUnit(u)
		}
	}
}

// SetContent sets the carried amount of an item on a unit.
func (u *Unit) SetContent(c Content, amount float64) {
	if item, ok := c.(*Item); ok {
		if amount <= 0 {
			u.Stack = ItemStack{}
			return
		}
		n := int(amount)
		if n > u.Type.ItemCapacity {
			n = u.Type.ItemCapacity
		}
		u.Stack = ItemStack{Item: item, Amount: n}
	}
}

// Settable is anything the property-injection instruction can mutate.
type Settable interface {
	SetProp(p Prop, value any)
	SetContent(c Content, amount float64)
}

func b2f(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

package world

// TileSize is the width of one tile in world units.
const TileSize = 8.0

// ItemTransferRange is the reach (world units) of unit item transfers.
const ItemTransferRange = 45.0

// BuildingRange is the baseline reach used when interacting with
// buildings found by targeted searches.
const BuildingRange = 100.0

// Tile is one grid cell. Block layers: floor, overlay (ore), block, plus
// the building occupying the cell if any.
type Tile struct {
	X, Y    int
	Floor   *Block
	Overlay *Block
	Block   *Block
	Build   *Building
}

// WorldX returns the world-space center of the tile.
func (t *Tile) WorldX() float64 { return float64(t.X) * TileSize }

// WorldY returns the world-space center of the tile.
func (t *Tile) WorldY() float64 { return float64(t.Y) * TileSize }

// Synthetic reports whether the tile's block was placed by a team (has a
// building) rather than being terrain.
func (t *Tile) Synthetic() bool { return t.Build != nil }

// Solid reports whether the tile blocks movement.
func (t *Tile) Solid() bool { return t.Block != nil && t.Block.Solid }

// Grid is the world tile grid.
type Grid struct {
	Width, Height int
	tiles         []Tile
}

// NewGrid builds a grid of air-over-floor tiles.
func NewGrid(w, h int, floor *Block, air *Block) *Grid {
	g := &Grid{Width: w, Height: h, tiles: make([]Tile, w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			t := &g.tiles[y*w+x]
			t.X, t.Y = x, y
			t.Floor = floor
			t.Overlay = air
			t.Block = air
		}
	}
	return g
}

// Tile returns the tile at grid coordinates, nil when out of range.
func (g *Grid) Tile(x, y int) *Tile {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return nil
	}
	return &g.tiles[y*g.Width+x]
}

// TileWorld returns the tile containing a world-space point.
func (g *Grid) TileWorld(x, y float64) *Tile {
	return g.Tile(toTile(x), toTile(y))
}

// BuildWorld returns the building at a world-space point, nil if none.
func (g *Grid) BuildWorld(x, y float64) *Building {
	if t := g.TileWorld(x, y); t != nil {
		return t.Build
	}
	return nil
}

func toTile(w float64) int {
	return int((w + TileSize/2) / TileSize)
}

// ToTile converts a world coordinate to its containing tile index.
func ToTile(w float64) int { return toTile(w) }

// Package collision defines the geometry and the tile-map query contract the
// kinematics core resolves against. It carries no implementation of the map
// itself; see the tilemap package for one.
package collision

import "github.com/automoto/platformkit/units"

// Rectangle is an axis-aligned box in game-space. X and Y locate the
// top-left corner.
type Rectangle struct {
	X, Y units.Game
	W, H units.Game
}

func (r Rectangle) Left() units.Game {
	return r.X
}

func (r Rectangle) Right() units.Game {
	return r.X + r.W
}

func (r Rectangle) Top() units.Game {
	return r.Y
}

func (r Rectangle) Bottom() units.Game {
	return r.Y + r.H
}

// TileType classifies a map tile for collision purposes.
type TileType uint8

const (
	Empty TileType = iota
	Wall
)

// Tile is one element of a map query result: a tile type tagged with its
// grid coordinates.
type Tile struct {
	Type     TileType
	Row, Col units.Tile
}

// Info is the outcome of resolving a query rectangle: whether a wall was hit
// and, if so, where. Row and Col are meaningful only when Collided is true.
type Info struct {
	Collided bool
	Row, Col units.Tile
}

// TileSource answers collision queries against the level grid.
//
// GetCollidingTiles returns every tile the rectangle overlaps, in a
// deterministic row-major order, and must be side-effect free. The resolver
// takes the first Wall tile in that order as the collision result, so a
// source with an unstable order would make resolution nondeterministic.
type TileSource interface {
	GetCollidingTiles(r Rectangle) []Tile
}

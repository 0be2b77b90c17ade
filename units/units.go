// Package units defines the physical quantities the simulation works in.
// Each quantity is its own defined type so that mixing incompatible kinds
// (adding a velocity to a duration, say) fails to compile, and every
// conversion between kinds is a named operation.
package units

// TileSize is the extent of one map tile in game-space units. Sprite sheets
// are laid out on the same 32-unit grid.
const TileSize Game = 32.0

// Game is a continuous game-space coordinate or extent, independent of
// screen pixel density.
type Game float64

// Pixel is an integer screen-space coordinate or extent.
type Pixel int32

// Tile is an index into the level grid.
type Tile uint

// Velocity is a rate of change of game-space position, in game units per
// millisecond.
type Velocity float64

// Acceleration is a rate of change of velocity, in game units per
// millisecond squared.
type Acceleration float64

// Millis is a non-negative duration in milliseconds.
type Millis int64

// Frame is an ordinal index into an animation cycle.
type Frame int

// Fps is a positive animation rate in frames per second.
type Fps uint

// ToPixel truncates a game-space value to whole pixels.
func (g Game) ToPixel() Pixel {
	return Pixel(g)
}

// ToTile returns the grid index of the tile containing g.
func (g Game) ToTile() Tile {
	return Tile(g / TileSize)
}

// ToGame returns the game-space coordinate of the tile's left/top edge.
func (t Tile) ToGame() Game {
	return Game(t) * TileSize
}

// ToPixel converts a tile index to its screen-space edge coordinate.
func (t Tile) ToPixel() Pixel {
	return t.ToGame().ToPixel()
}

// Over integrates an acceleration across an elapsed duration, yielding the
// velocity gained.
func (a Acceleration) Over(t Millis) Velocity {
	return Velocity(float64(a) * float64(t))
}

// Over integrates a velocity across an elapsed duration, yielding the
// game-space distance covered.
func (v Velocity) Over(t Millis) Game {
	return Game(float64(v) * float64(t))
}

// FrameInterval is the duration one animation frame stays visible at rate f.
// Integer division: the fractional remainder of 1000/f is dropped, matching
// the timing the animation code has always had.
func (f Fps) FrameInterval() Millis {
	return Millis(1000 / int64(f))
}

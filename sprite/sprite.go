// Package sprite implements the renderable half of the player: the movement
// enumerations that key sprite selection, and the static and animated sprite
// variants that draw one cell of a shared sprite sheet.
package sprite

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/automoto/platformkit/graphics"
	"github.com/automoto/platformkit/units"
)

// Motion is the discrete movement state derived from physics each frame.
type Motion uint8

const (
	Walking Motion = iota
	Standing
	Interacting
	Jumping
	Falling
)

// Facing is the horizontal direction the player faces.
type Facing uint8

const (
	West Facing = iota
	East
)

// Looking is the vertical direction the player looks.
type Looking uint8

const (
	Up Looking = iota
	Down
	Horizontal
)

// Exhaustive value lists, used to pre-populate every sprite variant.
var (
	Motions  = [...]Motion{Walking, Standing, Interacting, Jumping, Falling}
	Facings  = [...]Facing{West, East}
	Lookings = [...]Looking{Up, Down, Horizontal}
)

// MovementKey selects exactly one sprite variant. It is comparable and used
// as a map key.
type MovementKey struct {
	Motion  Motion
	Facing  Facing
	Looking Looking
}

// Drawable renders itself at its current coordinates.
type Drawable interface {
	Draw(screen *ebiten.Image)
}

// Updatable is a Drawable that understands time and placement.
type Updatable interface {
	Drawable
	Update(elapsed units.Millis)
	SetPosition(x, y units.Game)
}

// Sprite is a static frame of a sprite sheet: a fixed source rectangle drawn
// at mutable screen coordinates. The sheet handle is shared with every other
// sprite loaded from the same path.
type Sprite struct {
	sheet  *ebiten.Image
	source image.Rectangle
	x, y   units.Game
}

// New loads (or reuses) the sheet at path and returns a static sprite whose
// source cell sits at offset, both measured in tiles.
func New(loader graphics.Loader, x, y units.Game, offsetX, offsetY, w, h units.Tile, path string) (*Sprite, error) {
	sheet, err := loader.LoadImage(path, true)
	if err != nil {
		return nil, err
	}

	return &Sprite{
		sheet:  sheet,
		source: tileRect(offsetX, offsetY, w, h),
		x:      x,
		y:      y,
	}, nil
}

// Update is a no-op: a static sprite does not change with time.
func (s *Sprite) Update(units.Millis) {}

func (s *Sprite) SetPosition(x, y units.Game) {
	s.x, s.y = x, y
}

func (s *Sprite) Draw(screen *ebiten.Image) {
	blit(screen, s.sheet, s.source, s.x, s.y)
}

// AnimatedSprite cycles through horizontally adjacent cells of its sheet on
// an fps-derived schedule, shifting its source rectangle in place.
type AnimatedSprite struct {
	sheet  *ebiten.Image
	source image.Rectangle
	x, y   units.Game

	numFrames    units.Frame
	fps          units.Fps
	currentFrame units.Frame
	sinceAdvance units.Millis
}

// NewAnimated loads (or reuses) the sheet at path and returns an animated
// sprite of numFrames cells starting at offset, advancing at fps. A zero fps
// or a non-positive frame count is a caller bug.
func NewAnimated(loader graphics.Loader, offsetX, offsetY, w, h units.Tile, numFrames units.Frame, fps units.Fps, path string) (*AnimatedSprite, error) {
	if fps == 0 || numFrames <= 0 {
		panic(fmt.Sprintf("sprite: invalid animation parameters (frames=%d fps=%d)", numFrames, fps))
	}

	sheet, err := loader.LoadImage(path, true)
	if err != nil {
		return nil, err
	}

	return &AnimatedSprite{
		sheet:     sheet,
		source:    tileRect(offsetX, offsetY, w, h),
		numFrames: numFrames,
		fps:       fps,
	}, nil
}

// Update accumulates elapsed time and advances the visible frame once the
// frame interval is exceeded. The accumulator resets to zero on advance, so
// time beyond one interval is discarded rather than carried forward; that is
// long-standing behavior and callers rely on the resulting cadence.
func (s *AnimatedSprite) Update(elapsed units.Millis) {
	interval := s.fps.FrameInterval()
	s.sinceAdvance += elapsed

	if s.sinceAdvance > interval {
		s.sinceAdvance = 0
		s.currentFrame++

		width := s.source.Dx()
		if s.currentFrame < s.numFrames {
			s.source = s.source.Add(image.Pt(width, 0))
		} else {
			s.currentFrame = 0
			s.source = s.source.Sub(image.Pt(width*int(s.numFrames-1), 0))
		}
	}
}

func (s *AnimatedSprite) SetPosition(x, y units.Game) {
	s.x, s.y = x, y
}

func (s *AnimatedSprite) Draw(screen *ebiten.Image) {
	blit(screen, s.sheet, s.source, s.x, s.y)
}

// tileRect converts a tile-grid offset and size into a pixel source
// rectangle within a sheet.
func tileRect(offsetX, offsetY, w, h units.Tile) image.Rectangle {
	x := int(offsetX.ToPixel())
	y := int(offsetY.ToPixel())
	return image.Rect(x, y, x+int(w.ToPixel()), y+int(h.ToPixel()))
}

func blit(screen, sheet *ebiten.Image, source image.Rectangle, x, y units.Game) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x.ToPixel()), float64(y.ToPixel()))
	screen.DrawImage(sheet.SubImage(source).(*ebiten.Image), op)
}

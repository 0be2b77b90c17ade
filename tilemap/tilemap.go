// Package tilemap provides the level grid the player collides against: an
// in-memory tile grid implementing collision.TileSource, with optional
// loading from Tiled TMX files.
package tilemap

import (
	"fmt"
	"image/color"
	"io/fs"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lafriks/go-tiled"
	"github.com/lafriks/go-tiled/render"

	"github.com/automoto/platformkit/collision"
	"github.com/automoto/platformkit/units"
)

// WallsLayer is the TMX tile layer whose non-empty tiles become walls.
const WallsLayer = "walls"

// Map is a rectangular grid of tile types. It is read-only once built and
// answers collision queries in row-major order.
type Map struct {
	tiles      [][]collision.TileType
	rows, cols int

	// retained for backdrop rendering; nil for grid-built maps
	source *tiled.Map
	fsys   fs.FS
}

// New returns an all-empty map of the given dimensions.
func New(rows, cols int) *Map {
	tiles := make([][]collision.TileType, rows)
	for i := range tiles {
		tiles[i] = make([]collision.TileType, cols)
	}
	return &Map{tiles: tiles, rows: rows, cols: cols}
}

// SetWall marks one tile as solid. Meant for level construction and test
// fixtures, not for per-frame mutation.
func (m *Map) SetWall(row, col units.Tile) {
	m.tiles[row][col] = collision.Wall
}

// Load parses a TMX file from fsys and builds its collision grid from the
// walls layer. The fs.FS indirection lets callers pass embed.FS or
// os.DirFS alike.
func Load(fsys fs.FS, path string) (*Map, error) {
	levelMap, err := tiled.LoadFile(path, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", path, err)
	}

	m := New(levelMap.Height, levelMap.Width)
	m.source = levelMap
	m.fsys = fsys

	for _, layer := range levelMap.Layers {
		if layer.Name != WallsLayer {
			continue
		}
		for y := 0; y < levelMap.Height; y++ {
			for x := 0; x < levelMap.Width; x++ {
				if !layer.Tiles[y*levelMap.Width+x].IsNil() {
					m.tiles[y][x] = collision.Wall
				}
			}
		}
		break
	}

	return m, nil
}

// GetCollidingTiles returns every tile the rectangle overlaps, row-major.
// The rectangle is clamped to the grid, so space outside the map reports no
// tiles at all.
func (m *Map) GetCollidingTiles(r collision.Rectangle) []collision.Tile {
	firstRow := max(tileIndex(r.Top()), 0)
	lastRow := min(tileIndex(r.Bottom()), m.rows-1)
	firstCol := max(tileIndex(r.Left()), 0)
	lastCol := min(tileIndex(r.Right()), m.cols-1)
	if firstRow > lastRow || firstCol > lastCol {
		return nil
	}

	tiles := make([]collision.Tile, 0, (lastRow-firstRow+1)*(lastCol-firstCol+1))
	for row := firstRow; row <= lastRow; row++ {
		for col := firstCol; col <= lastCol; col++ {
			tiles = append(tiles, collision.Tile{
				Type: m.tiles[row][col],
				Row:  units.Tile(row),
				Col:  units.Tile(col),
			})
		}
	}
	return tiles
}

// RenderBackdrop rasterizes the map's visible tile layers into one image.
// Only available for maps loaded from TMX, and only when the tileset art is
// present in the filesystem; callers treat failure as non-fatal and fall
// back to DrawDebug.
func (m *Map) RenderBackdrop() (*ebiten.Image, error) {
	if m.source == nil {
		return nil, fmt.Errorf("render backdrop: map was not loaded from TMX")
	}

	renderer, err := render.NewRendererWithFileSystem(m.source, m.fsys)
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}
	if err := renderer.RenderVisibleLayers(); err != nil {
		return nil, fmt.Errorf("render layers: %w", err)
	}

	return ebiten.NewImageFromImage(renderer.Result), nil
}

var debugWallColor = color.RGBA{R: 0x44, G: 0x3a, B: 0x2e, A: 0xff}

// DrawDebug draws every wall tile as a flat rectangle, so levels remain
// visible without tileset art.
func (m *Map) DrawDebug(screen *ebiten.Image) {
	size := float32(units.TileSize)
	for row := 0; row < m.rows; row++ {
		for col := 0; col < m.cols; col++ {
			if m.tiles[row][col] != collision.Wall {
				continue
			}
			x := float32(units.Tile(col).ToPixel())
			y := float32(units.Tile(row).ToPixel())
			vector.FillRect(screen, x, y, size, size, debugWallColor, false)
		}
	}
}

// tileIndex floors a game-space coordinate to a signed tile index; callers
// clamp it to the grid. Signed math here keeps coordinates left of or above
// the map from wrapping around.
func tileIndex(g units.Game) int {
	return int(math.Floor(float64(g) / float64(units.TileSize)))
}


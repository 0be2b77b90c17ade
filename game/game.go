// Package game wires the player core into an ebiten run loop: it polls
// input, measures frame time, steps the simulation and draws the scene.
package game

import (
	"fmt"
	"image/color"
	"io/fs"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/automoto/platformkit/config"
	"github.com/automoto/platformkit/graphics"
	"github.com/automoto/platformkit/player"
	"github.com/automoto/platformkit/tilemap"
	"github.com/automoto/platformkit/units"
)

const spawnFadeSeconds = 0.75

// Game is the demo scene: one player in one level.
type Game struct {
	player   *player.Player
	level    *tilemap.Map
	backdrop *ebiten.Image

	// action states for the current and previous tick, for edge detection
	current  [config.ActionCount]bool
	previous [config.ActionCount]bool

	lastFrame time.Time

	fade      *gween.Tween
	fadeAlpha float32
}

// New loads the level and the player from fsys and returns a scene ready to
// run. Missing tileset art only disables the rendered backdrop; a missing
// character sheet is fatal.
func New(fsys fs.FS, levelPath string, spawnX, spawnY units.Game) (*Game, error) {
	level, err := tilemap.Load(fsys, levelPath)
	if err != nil {
		return nil, fmt.Errorf("load level: %w", err)
	}

	p, err := player.New(graphics.New(fsys), spawnX, spawnY)
	if err != nil {
		return nil, fmt.Errorf("create player: %w", err)
	}

	g := &Game{
		player:    p,
		level:     level,
		fade:      gween.New(1, 0, spawnFadeSeconds, ease.Linear),
		fadeAlpha: 1,
	}

	if backdrop, err := level.RenderBackdrop(); err != nil {
		log.Printf("no level backdrop, using flat tiles: %v", err)
	} else {
		g.backdrop = backdrop
	}

	return g, nil
}

func (g *Game) Update() error {
	g.pollInput()
	g.applyInput()

	now := time.Now()
	var elapsed units.Millis
	if !g.lastFrame.IsZero() {
		elapsed = min(units.Millis(now.Sub(g.lastFrame).Milliseconds()), config.C.MaxFrameMillis)
	}
	g.lastFrame = now

	g.player.Update(elapsed, g.level)

	g.fadeAlpha, _ = g.fade.Update(1.0 / float32(ebiten.TPS()))
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.backdrop != nil {
		screen.DrawImage(g.backdrop, nil)
	} else {
		g.level.DrawDebug(screen)
	}

	g.player.Draw(screen)

	if g.fadeAlpha > 0 {
		overlay := color.RGBA{A: uint8(g.fadeAlpha * 0xff)}
		vector.FillRect(screen, 0, 0, float32(config.C.Width), float32(config.C.Height), overlay, false)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.C.Width, config.C.Height
}

// pollInput swaps the action buffers and reads the keyboard into the
// current one.
func (g *Game) pollInput() {
	g.previous = g.current
	g.current = [config.ActionCount]bool{}

	for action, keys := range config.Input.Bindings {
		for _, key := range keys {
			if ebiten.IsKeyPressed(key) {
				g.current[action] = true
			}
		}
	}
}

// applyInput translates action states into player controls. Holding both
// horizontal directions cancels to a stop.
func (g *Game) applyInput() {
	left := g.current[config.ActionMoveLeft]
	right := g.current[config.ActionMoveRight]
	switch {
	case left && !right:
		g.player.StartMovingLeft()
	case right && !left:
		g.player.StartMovingRight()
	default:
		g.player.StopMoving()
	}

	switch {
	case g.current[config.ActionLookUp]:
		g.player.LookUp()
	case g.current[config.ActionLookDown]:
		g.player.LookDown()
	default:
		g.player.LookHorizontal()
	}

	if g.justPressed(config.ActionJump) {
		g.player.StartJump()
	}
	if g.justReleased(config.ActionJump) {
		g.player.StopJump()
	}
}

func (g *Game) justPressed(action config.ActionID) bool {
	return g.current[action] && !g.previous[action]
}

func (g *Game) justReleased(action config.ActionID) bool {
	return !g.current[action] && g.previous[action]
}

// Package player implements the kinematics and collision-resolution core of
// the side-scrolling character: per-axis motion integration against a tile
// map, the motion classifier that picks the active sprite variant, and the
// control surface the outer loop drives.
package player

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/automoto/platformkit/collision"
	"github.com/automoto/platformkit/config"
	"github.com/automoto/platformkit/graphics"
	"github.com/automoto/platformkit/sprite"
	"github.com/automoto/platformkit/units"
)

// Character sheet layout, in tile-grid indices. Facing selects the sheet
// row, motion/looking select the column of the first frame.
const (
	charOffset units.Tile = 12

	standFrame units.Tile = 0
	jumpFrame  units.Tile = 1
	fallFrame  units.Tile = 2

	facingWest units.Tile = 0 + charOffset
	facingEast units.Tile = 1 + charOffset

	walkUpOffset   units.Tile = 3
	jumpDownFrame  units.Tile = 6
	standDownFrame units.Tile = 7
)

// Collision boxes, relative to the player's position. Narrower and shorter
// than the 32-unit sprite frame, and split into half-extent leading and
// trailing query rectangles by the helpers below.
var (
	xBox = collision.Rectangle{X: 6.0, Y: 10.0, W: 20.0, H: 12.0}
	yBox = collision.Rectangle{X: 10.0, Y: 2.0, W: 12.0, H: 30.0}
)

// Player owns the physical state of the character and one sprite variant per
// movement key, created once at construction and mutated in place.
type Player struct {
	sprites map[sprite.MovementKey]sprite.Updatable

	// positioning
	x, y     units.Game
	movement sprite.MovementKey
	onGround bool

	// physics
	elapsedTime units.Millis
	velocityX   units.Velocity
	velocityY   units.Velocity
	accelX      int

	// state
	interacting bool
	jumpActive  bool
}

// New loads the sprite variant for every (Motion, Facing, Looking)
// combination and returns a player spawned at x, y, standing and facing
// east. The player is immediately subject to gravity and will fall until a
// collision is resolved. A sheet that fails to load aborts construction;
// there is no partial operation with missing variants.
func New(loader graphics.Loader, x, y units.Game) (*Player, error) {
	p := &Player{
		sprites: make(map[sprite.MovementKey]sprite.Updatable),

		x: x,
		y: y,
		movement: sprite.MovementKey{
			Motion:  sprite.Standing,
			Facing:  sprite.East,
			Looking: sprite.Horizontal,
		},
	}

	for _, motion := range sprite.Motions {
		for _, facing := range sprite.Facings {
			for _, looking := range sprite.Lookings {
				key := sprite.MovementKey{Motion: motion, Facing: facing, Looking: looking}
				if err := p.loadSprite(loader, key); err != nil {
					return nil, fmt.Errorf("load player sprite %+v: %w", key, err)
				}
			}
		}
	}

	return p, nil
}

// Update advances the player by elapsed time against the given tile map.
// The frame is one ordered pipeline: classify motion, position the active
// sprite, tick its animation, then resolve X and finally Y. The sub-steps
// are deliberately not callable on their own; re-running the classifier
// mid-frame would switch the active sprite and drop animation ticks on the
// previous one.
func (p *Player) Update(elapsed units.Millis, tiles collision.TileSource) {
	p.elapsedTime = elapsed

	p.currentMotion()
	p.sprites[p.movement].SetPosition(p.x, p.y)
	p.sprites[p.movement].Update(elapsed)

	p.updateX(tiles)
	p.updateY(tiles)
}

// Draw renders the active sprite variant.
func (p *Player) Draw(screen *ebiten.Image) {
	p.sprites[p.movement].Draw(screen)
}

// StartMovingLeft faces the player west and applies constant acceleration in
// that direction.
func (p *Player) StartMovingLeft() {
	p.interacting = false
	p.setFacing(sprite.West)
	p.accelX = -1
}

// StartMovingRight faces the player east and applies constant acceleration
// in that direction.
func (p *Player) StartMovingRight() {
	p.interacting = false
	p.setFacing(sprite.East)
	p.accelX = 1
}

// StopMoving ceases horizontal acceleration. Facing is unchanged.
func (p *Player) StopMoving() {
	p.accelX = 0
}

func (p *Player) LookUp() {
	p.interacting = false
	p.setLooking(sprite.Up)
}

// LookDown is ignored while already looking down and while walking (the
// walking-and-down variant collapses to the horizontal one). Looking down on
// the ground starts interacting.
func (p *Player) LookDown() {
	if p.movement.Looking == sprite.Down {
		return
	}
	if p.movement.Motion == sprite.Walking {
		return
	}

	p.interacting = p.onGround
	p.setLooking(sprite.Down)
}

func (p *Player) LookHorizontal() {
	p.setLooking(sprite.Horizontal)
}

// StartJump marks the jump control held and, if the player is on the ground,
// sets vertical velocity to the jump speed instantaneously. Jumps are
// speed-initiated; there is no accumulation against gravity. While the
// control stays held and the player is still ascending, the reduced jump
// gravity applies, which is what makes jump height vary with hold time.
func (p *Player) StartJump() {
	p.jumpActive = true
	p.interacting = false

	if p.onGround {
		p.velocityY = -config.Player.JumpSpeed
	}
}

// StopJump releases the jump control; full gravity resumes.
func (p *Player) StopJump() {
	p.jumpActive = false
}

// OnGround reports whether the last vertical resolution found a floor.
func (p *Player) OnGround() bool {
	return p.onGround
}

// CenterX is the horizontal center of the player's sprite frame, for
// camera-style consumers.
func (p *Player) CenterX() units.Game {
	return p.x + units.Tile(1).ToGame()/2
}

// currentMotion reclassifies the Motion part of the movement key from the
// current physics state. Facing and Looking carry over; only the control
// calls mutate them. Runs once, at the top of the frame.
func (p *Player) currentMotion() {
	if p.onGround {
		switch {
		case p.interacting:
			p.movement.Motion = sprite.Interacting
		case p.accelX == 0:
			p.movement.Motion = sprite.Standing
		default:
			p.movement.Motion = sprite.Walking
		}
	} else {
		if p.velocityY < 0 {
			p.movement.Motion = sprite.Jumping
		} else {
			p.movement.Motion = sprite.Falling
		}
	}
}

func (p *Player) updateX(tiles collision.TileSource) {
	// compute next velocity
	var accelX units.Acceleration
	switch {
	case p.accelX < 0:
		if p.onGround {
			accelX = -config.Player.WalkingAccel
		} else {
			accelX = -config.Player.AirAccel
		}
	case p.accelX > 0:
		if p.onGround {
			accelX = config.Player.WalkingAccel
		} else {
			accelX = config.Player.AirAccel
		}
	}

	p.velocityX += accelX.Over(p.elapsedTime)

	if p.accelX < 0 {
		p.velocityX = max(p.velocityX, -config.Player.MaxVelocityX)
	} else if p.accelX > 0 {
		p.velocityX = min(p.velocityX, config.Player.MaxVelocityX)
	} else if p.onGround {
		// friction decays toward zero and stops there, never reversing sign
		if p.velocityX > 0 {
			p.velocityX = max(0, p.velocityX-config.Player.Friction.Over(p.elapsedTime))
		} else {
			p.velocityX = min(0, p.velocityX+config.Player.Friction.Over(p.elapsedTime))
		}
	}

	// directional collision: leading edge extended by the delta first, then
	// the trailing edge with zero delta to guard against the snap pushing us
	// into an adjacent wall
	delta := p.velocityX.Over(p.elapsedTime)
	if delta > 0 { // moving right
		info := getCollisionInfo(p.rightCollision(delta), tiles)
		if info.Collided {
			p.velocityX = 0
			p.x = info.Col.ToGame() - xBox.Right()
		} else {
			p.x += delta
		}

		info = getCollisionInfo(p.leftCollision(0), tiles)
		if info.Collided {
			p.x = info.Col.ToGame() + xBox.Right()
		}
	} else { // moving left
		info := getCollisionInfo(p.leftCollision(delta), tiles)
		if info.Collided {
			p.velocityX = 0
			p.x = info.Col.ToGame() + xBox.Right()
		} else {
			p.x += delta
		}

		info = getCollisionInfo(p.rightCollision(0), tiles)
		if info.Collided {
			p.x = info.Col.ToGame() - xBox.Right()
		}
	}
}

func (p *Player) updateY(tiles collision.TileSource) {
	// reduced gravity while the jump is held and we are still ascending
	gravity := config.Player.Gravity
	if p.jumpActive && p.velocityY < 0 {
		gravity = config.Player.JumpGravity
	}

	p.velocityY = min(
		p.velocityY+gravity.Over(p.elapsedTime),
		config.Player.MaxVelocityY,
	)

	delta := p.velocityY.Over(p.elapsedTime)
	if delta > 0 { // falling
		info := getCollisionInfo(p.bottomCollision(delta), tiles)
		if info.Collided {
			p.velocityY = 0
			p.onGround = true
			p.y = info.Row.ToGame() - yBox.Bottom()
		} else {
			p.onGround = false
			p.y += delta
		}

		info = getCollisionInfo(p.topCollision(0), tiles)
		if info.Collided {
			p.y = info.Row.ToGame() + yBox.H
		}
	} else { // rising
		info := getCollisionInfo(p.topCollision(delta), tiles)
		if info.Collided {
			p.velocityY = 0
			p.y = info.Row.ToGame() + yBox.H
		} else {
			p.onGround = false
			p.y += delta
		}

		info = getCollisionInfo(p.bottomCollision(0), tiles)
		if info.Collided {
			p.onGround = true
			p.y = info.Row.ToGame() - yBox.Bottom()
		}
	}
}

// getCollisionInfo scans the tiles the rectangle overlaps in source order
// and takes the first wall as the collision result. First match, not
// nearest match; the TileSource order contract makes this deterministic.
func getCollisionInfo(hitbox collision.Rectangle, tiles collision.TileSource) collision.Info {
	for _, tile := range tiles.GetCollidingTiles(hitbox) {
		if tile.Type == collision.Wall {
			return collision.Info{Collided: true, Row: tile.Row, Col: tile.Col}
		}
	}
	return collision.Info{}
}

func (p *Player) setFacing(direction sprite.Facing) {
	p.movement.Facing = direction
}

func (p *Player) setLooking(direction sprite.Looking) {
	p.movement.Looking = direction
}

// Directional query rectangles: half of the collision box on the side being
// checked, extended by the frame's motion delta on the leading side only.
// Deltas of the wrong sign are caller bugs.

func (p *Player) leftCollision(delta units.Game) collision.Rectangle {
	if delta > 0 {
		panic(fmt.Sprintf("player: left collision queried with positive delta %v", delta))
	}

	return collision.Rectangle{
		X: p.x + xBox.Left() + delta,
		Y: p.y + xBox.Top(),
		W: xBox.W/2 - delta,
		H: xBox.H,
	}
}

func (p *Player) rightCollision(delta units.Game) collision.Rectangle {
	if delta < 0 {
		panic(fmt.Sprintf("player: right collision queried with negative delta %v", delta))
	}

	return collision.Rectangle{
		X: p.x + xBox.Left() + xBox.W/2,
		Y: p.y + xBox.Top(),
		W: xBox.W/2 + delta,
		H: xBox.H,
	}
}

func (p *Player) topCollision(delta units.Game) collision.Rectangle {
	if delta > 0 {
		panic(fmt.Sprintf("player: top collision queried with positive delta %v", delta))
	}

	return collision.Rectangle{
		X: p.x + yBox.Left(),
		Y: p.y + yBox.Top() + delta,
		W: yBox.W,
		H: yBox.H/2 - delta,
	}
}

func (p *Player) bottomCollision(delta units.Game) collision.Rectangle {
	if delta < 0 {
		panic(fmt.Sprintf("player: bottom collision queried with negative delta %v", delta))
	}

	return collision.Rectangle{
		X: p.x + yBox.Left(),
		Y: p.y + yBox.Top() + yBox.H/2,
		W: yBox.W,
		H: yBox.H/2 + delta,
	}
}

// loadSprite builds the sprite variant for one movement key. Every key gets
// a variant, including visually degenerate ones (walking while looking down
// draws the same frames as walking horizontally).
func (p *Player) loadSprite(loader graphics.Loader, key sprite.MovementKey) error {
	if _, ok := p.sprites[key]; ok {
		return nil
	}

	var motionFrame units.Tile
	switch key.Motion {
	case sprite.Standing, sprite.Walking:
		motionFrame = standFrame
	case sprite.Interacting:
		motionFrame = standDownFrame
	case sprite.Jumping:
		motionFrame = jumpFrame
	case sprite.Falling:
		motionFrame = fallFrame
	}

	var facingFrame units.Tile
	switch key.Facing {
	case sprite.West:
		facingFrame = facingWest
	case sprite.East:
		facingFrame = facingEast
	}

	var (
		variant sprite.Updatable
		err     error
	)
	switch key.Motion {
	case sprite.Standing, sprite.Interacting:
		var lookingFrame units.Tile
		if key.Looking == sprite.Up {
			lookingFrame = walkUpOffset
		}

		variant, err = sprite.New(
			loader, 0, 0,
			motionFrame+lookingFrame, facingFrame,
			1, 1,
			config.Player.SheetPath,
		)

	case sprite.Jumping, sprite.Falling:
		// the looking frame overrides the motion frame here
		lookingFrame := motionFrame
		switch key.Looking {
		case sprite.Down:
			lookingFrame = jumpDownFrame
		case sprite.Up:
			lookingFrame = walkUpOffset
		}

		variant, err = sprite.New(
			loader, 0, 0,
			lookingFrame, facingFrame,
			1, 1,
			config.Player.SheetPath,
		)

	case sprite.Walking:
		var lookingFrame units.Tile
		if key.Looking == sprite.Up {
			lookingFrame = walkUpOffset
		}

		variant, err = sprite.NewAnimated(
			loader,
			motionFrame+lookingFrame, facingFrame,
			1, 1,
			config.Player.WalkFrames, config.Player.WalkFps,
			config.Player.SheetPath,
		)
	}
	if err != nil {
		return err
	}

	p.sprites[key] = variant
	return nil
}

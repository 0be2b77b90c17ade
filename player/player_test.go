package player

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automoto/platformkit/collision"
	"github.com/automoto/platformkit/config"
	"github.com/automoto/platformkit/sprite"
	"github.com/automoto/platformkit/tilemap"
	"github.com/automoto/platformkit/units"
)

const step units.Millis = 10

// stubLoader satisfies graphics.Loader without decoding anything. Sprites
// built from it hold a nil sheet, which is fine everywhere except Draw.
type stubLoader struct{}

func (stubLoader) LoadImage(string, bool) (*ebiten.Image, error) {
	return nil, nil
}

func newTestPlayer(t *testing.T, x, y units.Game) *Player {
	t.Helper()
	p, err := New(stubLoader{}, x, y)
	require.NoError(t, err)
	return p
}

// emptyMap is a 20x20 grid with no walls.
func emptyMap() *tilemap.Map {
	return tilemap.New(20, 20)
}

// floorMap is a 20x20 grid with a solid floor across the given row.
func floorMap(row units.Tile) *tilemap.Map {
	m := tilemap.New(20, 20)
	for col := units.Tile(0); col < 20; col++ {
		m.SetWall(row, col)
	}
	return m
}

func settle(p *Player, m collision.TileSource) {
	for i := 0; i < 500; i++ {
		p.Update(step, m)
		if p.OnGround() {
			return
		}
	}
}

func TestConstructionLoadsEveryMovementKey(t *testing.T) {
	p := newTestPlayer(t, 0, 0)

	assert.Len(t, p.sprites, len(sprite.Motions)*len(sprite.Facings)*len(sprite.Lookings))
	assert.Equal(t, sprite.MovementKey{
		Motion:  sprite.Standing,
		Facing:  sprite.East,
		Looking: sprite.Horizontal,
	}, p.movement)
}

func TestFallVelocityMonotonicallyApproachesCap(t *testing.T) {
	p := newTestPlayer(t, 100, 50)
	m := emptyMap()

	prev := p.velocityY
	for i := 0; i < 100; i++ {
		p.Update(step, m)
		assert.GreaterOrEqual(t, p.velocityY, prev, "fall velocity must not decrease")
		assert.LessOrEqual(t, p.velocityY, config.Player.MaxVelocityY, "fall velocity must stay capped")
		prev = p.velocityY
	}

	assert.Equal(t, config.Player.MaxVelocityY, p.velocityY, "terminal velocity should be reached")
}

func TestFrictionDecaysTowardZeroWithoutOvershoot(t *testing.T) {
	p := newTestPlayer(t, 100, 100)
	p.onGround = true
	p.elapsedTime = step
	p.velocityX = 0.02
	m := emptyMap()

	prev := p.velocityX
	for i := 0; i < 50; i++ {
		p.updateX(m)
		assert.LessOrEqual(t, p.velocityX, prev)
		assert.GreaterOrEqual(t, p.velocityX, units.Velocity(0), "friction must not flip the sign")
		prev = p.velocityX
	}
	assert.Equal(t, units.Velocity(0), p.velocityX)
}

func TestFrictionDecaysNegativeVelocityWithoutOvershoot(t *testing.T) {
	p := newTestPlayer(t, 100, 100)
	p.onGround = true
	p.elapsedTime = step
	p.velocityX = -0.02
	m := emptyMap()

	for i := 0; i < 50; i++ {
		p.updateX(m)
		assert.LessOrEqual(t, p.velocityX, units.Velocity(0))
	}
	assert.Equal(t, units.Velocity(0), p.velocityX)
}

func TestWalkingClampsToMaxVelocity(t *testing.T) {
	p := newTestPlayer(t, 100, 100)
	p.onGround = true
	p.elapsedTime = step
	p.accelX = 1
	m := emptyMap()

	for i := 0; i < 300; i++ {
		p.updateX(m)
		assert.LessOrEqual(t, p.velocityX, config.Player.MaxVelocityX)
	}
	assert.Equal(t, config.Player.MaxVelocityX, p.velocityX)
}

func TestStartJumpOnGroundSetsJumpSpeed(t *testing.T) {
	p := newTestPlayer(t, 100, 50)
	m := floorMap(5)
	settle(p, m)
	require.True(t, p.OnGround())

	p.StartJump()
	assert.Equal(t, -config.Player.JumpSpeed, p.velocityY)
	assert.True(t, p.OnGround(), "on-ground clears only once the next vertical step finds no floor")

	p.Update(step, m)
	assert.False(t, p.OnGround())
}

func TestStartJumpAirborneLeavesVelocityAlone(t *testing.T) {
	p := newTestPlayer(t, 100, 50)
	p.velocityY = 0.1 // falling

	p.StartJump()
	assert.Equal(t, units.Velocity(0.1), p.velocityY)
	assert.True(t, p.jumpActive)
}

func TestHeldJumpFallsSlowerWhileAscending(t *testing.T) {
	held := newTestPlayer(t, 100, 50)
	released := newTestPlayer(t, 100, 50)
	m := emptyMap()

	held.velocityY = -config.Player.JumpSpeed
	held.jumpActive = true
	released.velocityY = -config.Player.JumpSpeed
	released.jumpActive = false

	held.Update(step, m)
	released.Update(step, m)

	assert.Less(t, held.velocityY, released.velocityY,
		"jump gravity must bleed ascent speed more slowly than full gravity")
}

func TestRightCollisionSnapsToWallEdge(t *testing.T) {
	m := tilemap.New(10, 10)
	for row := units.Tile(0); row < 10; row++ {
		m.SetWall(row, 6) // wall column with its left edge at x=192
	}

	p := newTestPlayer(t, 165, 100)
	p.elapsedTime = step
	p.velocityX = config.Player.MaxVelocityX

	p.updateX(m)

	wallLeft := units.Tile(6).ToGame()
	assert.Equal(t, wallLeft, p.x+xBox.Right(), "box right edge must touch the wall exactly")
	assert.Equal(t, units.Velocity(0), p.velocityX)
}

func TestLeftCollisionSnapsToWallEdge(t *testing.T) {
	m := tilemap.New(10, 10)
	for row := units.Tile(0); row < 10; row++ {
		m.SetWall(row, 2) // wall column with its right edge at x=96
	}

	p := newTestPlayer(t, 92, 100)
	p.elapsedTime = step
	p.velocityX = -config.Player.MaxVelocityX

	p.updateX(m)

	wallRight := units.Tile(2).ToGame() + units.TileSize
	assert.Equal(t, wallRight, p.x+xBox.Left(), "box left edge must touch the wall exactly")
	assert.Equal(t, units.Velocity(0), p.velocityX)
}

func TestMotionClassifierIsDeterministic(t *testing.T) {
	tests := []struct {
		name        string
		onGround    bool
		interacting bool
		accelX      int
		velocityY   units.Velocity
		want        sprite.Motion
	}{
		{"grounded interacting", true, true, 0, 0, sprite.Interacting},
		{"grounded idle", true, false, 0, 0, sprite.Standing},
		{"grounded moving", true, false, 1, 0, sprite.Walking},
		{"grounded moving left", true, false, -1, 0, sprite.Walking},
		{"airborne ascending", false, false, 0, -0.1, sprite.Jumping},
		{"airborne descending", false, false, 0, 0.1, sprite.Falling},
		{"airborne at apex", false, false, 0, 0, sprite.Falling},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPlayer(t, 0, 0)
			p.onGround = tt.onGround
			p.interacting = tt.interacting
			p.accelX = tt.accelX
			p.velocityY = tt.velocityY

			for i := 0; i < 3; i++ {
				p.currentMotion()
				assert.Equal(t, tt.want, p.movement.Motion)
			}
		})
	}
}

func TestClassifierPreservesFacingAndLooking(t *testing.T) {
	p := newTestPlayer(t, 0, 0)
	p.setFacing(sprite.West)
	p.setLooking(sprite.Up)

	p.currentMotion()

	assert.Equal(t, sprite.West, p.movement.Facing)
	assert.Equal(t, sprite.Up, p.movement.Looking)
}

func TestLookDownWhileWalkingIsIgnored(t *testing.T) {
	p := newTestPlayer(t, 0, 0)
	p.onGround = true
	p.accelX = 1
	p.currentMotion()
	require.Equal(t, sprite.Walking, p.movement.Motion)

	p.LookDown()

	assert.Equal(t, sprite.Horizontal, p.movement.Looking)
	assert.False(t, p.interacting)
}

func TestLookDownOnGroundStartsInteracting(t *testing.T) {
	p := newTestPlayer(t, 0, 0)
	p.onGround = true

	p.LookDown()

	assert.Equal(t, sprite.Down, p.movement.Looking)
	assert.True(t, p.interacting)
}

func TestLookDownAirborneDoesNotInteract(t *testing.T) {
	p := newTestPlayer(t, 0, 0)

	p.LookDown()

	assert.Equal(t, sprite.Down, p.movement.Looking)
	assert.False(t, p.interacting)
}

func TestMovementControlsCancelInteracting(t *testing.T) {
	p := newTestPlayer(t, 0, 0)
	p.onGround = true
	p.LookDown()
	require.True(t, p.interacting)

	p.StartMovingLeft()
	assert.False(t, p.interacting)
	assert.Equal(t, sprite.West, p.movement.Facing)
	assert.Equal(t, -1, p.accelX)

	p.StopMoving()
	assert.Equal(t, 0, p.accelX)
	assert.Equal(t, sprite.West, p.movement.Facing, "stopping must not change facing")
}

func TestPlayerSettlesOntoFloor(t *testing.T) {
	p := newTestPlayer(t, 50, 50)
	m := floorMap(5)

	for i := 0; i < 400; i++ {
		p.Update(step, m)
	}

	wantY := units.Tile(5).ToGame() - yBox.Bottom()
	assert.Equal(t, wantY, p.y)
	assert.True(t, p.OnGround())
	assert.Equal(t, units.Velocity(0), p.velocityY)
	assert.Equal(t, units.Game(50), p.x, "no horizontal intent means no drift")
}

func TestCollisionHelpersRejectWrongSignDeltas(t *testing.T) {
	p := newTestPlayer(t, 0, 0)

	assert.Panics(t, func() { p.rightCollision(-1) })
	assert.Panics(t, func() { p.leftCollision(1) })
	assert.Panics(t, func() { p.bottomCollision(-1) })
	assert.Panics(t, func() { p.topCollision(1) })
}

func TestCenterX(t *testing.T) {
	p := newTestPlayer(t, 64, 0)
	assert.Equal(t, units.Game(80), p.CenterX())
}

package config

import "github.com/automoto/platformkit/units"

// Config contains window and loop-level settings.
type Config struct {
	Width  int
	Height int
	Title  string

	// MaxFrameMillis caps the elapsed time fed into one physics step so a
	// long hitch cannot carry the player through a wall.
	MaxFrameMillis units.Millis
}

// PlayerConfig contains all player movement tuning. Velocities are in game
// units per millisecond and accelerations in game units per millisecond
// squared; these are the original cave-platformer constants and the
// collision boxes assume them.
type PlayerConfig struct {
	// Horizontal movement
	WalkingAccel units.Acceleration
	AirAccel     units.Acceleration
	Friction     units.Acceleration
	MaxVelocityX units.Velocity

	// Vertical movement
	Gravity      units.Acceleration
	JumpGravity  units.Acceleration
	JumpSpeed    units.Velocity
	MaxVelocityY units.Velocity

	// Walk cycle animation
	WalkFrames units.Frame
	WalkFps    units.Fps

	// SheetPath is where the character sheet lives inside the asset FS.
	SheetPath string
}

var C *Config
var Player PlayerConfig

func init() {
	C = &Config{
		Width:          640,
		Height:         480,
		Title:          "platformkit",
		MaxFrameMillis: 32,
	}

	Player = PlayerConfig{
		WalkingAccel: 0.00083007812,
		AirAccel:     0.0003125,
		Friction:     0.00049804687,
		MaxVelocityX: 0.15859375,

		Gravity:      0.00078125,
		JumpGravity:  0.0003125,
		JumpSpeed:    0.25,
		MaxVelocityY: 0.2998046875,

		WalkFrames: 3,
		WalkFps:    20,

		SheetPath: "base/MyChar.bmp",
	}
}

// Package config provides YAML-based game configuration, the persisted
// player settings snapshot and the difficulty and quality presets.
package config

// GameConfig contains all static configuration for Space Dash.
type GameConfig struct {
	Arena    ArenaConfig    `yaml:"arena"`
	Player   PlayerConfig   `yaml:"player"`
	Gameplay GameplayConfig `yaml:"gameplay"`
	Orbit    OrbitConfig    `yaml:"orbit"`
	Touch    TouchConfig    `yaml:"touch"`
	Gesture  GestureConfig  `yaml:"gesture"`
	Input    InputConfig    `yaml:"input"`
}

// ArenaConfig defines the playing field in pixels.
type ArenaConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlayerConfig defines the player sprite.
type PlayerConfig struct {
	SpawnX float64 `yaml:"spawn_x"`
	SpawnY float64 `yaml:"spawn_y"`
	Size   float64 `yaml:"size"`
}

// GameplayConfig defines level progression limits.
type GameplayConfig struct {
	MaxLevel    int     `yaml:"max_level"`
	MaxLives    int     `yaml:"max_lives"`
	TickSeconds float64 `yaml:"tick_seconds"` // elapsed-time step per tick at game speed 1
}

// OrbitConfig defines the centre used by orbital obstacles that leave it unset.
type OrbitConfig struct {
	CenterX float64 `yaml:"center_x"`
	CenterY float64 `yaml:"center_y"`
}

// TouchConfig tunes the touch steering channel.
type TouchConfig struct {
	Sensitivity float64 `yaml:"sensitivity"`
	Deadzone    float64 `yaml:"deadzone"`
}

// GestureConfig tunes the pointing gesture channel and its bridge.
type GestureConfig struct {
	DeadzoneBase float64 `yaml:"deadzone_base"` // divided by sensitivity
	Address      string  `yaml:"address"`
	Path         string  `yaml:"path"`
}

// InputConfig defines terminal keyboard handling.
type InputConfig struct {
	KeyHoldMS int `yaml:"key_hold_ms"` // how long a key counts as held after its last press
}

// Normalize fills zero values with defaults so partial YAML files stay playable.
func (c *GameConfig) Normalize() {
	d := DefaultGameConfig()
	if c.Arena.Width <= 0 || c.Arena.Height <= 0 {
		c.Arena = d.Arena
	}
	if c.Player.Size <= 0 {
		c.Player = d.Player
	}
	if c.Gameplay.MaxLevel <= 0 {
		c.Gameplay.MaxLevel = d.Gameplay.MaxLevel
	}
	if c.Gameplay.MaxLives <= 0 {
		c.Gameplay.MaxLives = d.Gameplay.MaxLives
	}
	if c.Gameplay.TickSeconds <= 0 {
		c.Gameplay.TickSeconds = d.Gameplay.TickSeconds
	}
	if c.Orbit.CenterX == 0 && c.Orbit.CenterY == 0 {
		c.Orbit = d.Orbit
	}
	if c.Touch.Sensitivity <= 0 {
		c.Touch.Sensitivity = d.Touch.Sensitivity
	}
	if c.Touch.Deadzone <= 0 {
		c.Touch.Deadzone = d.Touch.Deadzone
	}
	if c.Gesture.DeadzoneBase <= 0 {
		c.Gesture.DeadzoneBase = d.Gesture.DeadzoneBase
	}
	if c.Gesture.Address == "" {
		c.Gesture.Address = d.Gesture.Address
	}
	if c.Gesture.Path == "" {
		c.Gesture.Path = d.Gesture.Path
	}
	if c.Input.KeyHoldMS <= 0 {
		c.Input.KeyHoldMS = d.Input.KeyHoldMS
	}
}

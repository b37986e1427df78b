package config

import (
	_ "embed"
)

//go:embed defaults/spacedash.yaml
var defaultSpaceDashYAML []byte

// DefaultGameConfig returns the built-in Space Dash configuration.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Arena: ArenaConfig{
			Width:  800,
			Height: 600,
		},
		Player: PlayerConfig{
			SpawnX: 50,
			SpawnY: 300,
			Size:   22,
		},
		Gameplay: GameplayConfig{
			MaxLevel:    10,
			MaxLives:    3,
			TickSeconds: 0.016,
		},
		Orbit: OrbitConfig{
			CenterX: 300,
			CenterY: 300,
		},
		Touch: TouchConfig{
			Sensitivity: 0.8,
			Deadzone:    10,
		},
		Gesture: GestureConfig{
			DeadzoneBase: 5,
			Address:      "127.0.0.1:8765",
			Path:         "/ws",
		},
		Input: InputConfig{
			KeyHoldMS: 120,
		},
	}
}

// DefaultYAML returns the embedded default YAML document.
func DefaultYAML() []byte {
	return defaultSpaceDashYAML
}

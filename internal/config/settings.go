package config

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Settings is the player-facing options snapshot. It is a plain value:
// changing an option produces a new Settings which the game applies between ticks.
type Settings struct {
	SoundEnabled        bool             `json:"soundEnabled"`
	SoundVolume         int              `json:"soundVolume"`
	PlayerSpeed         float64          `json:"playerSpeed"`
	GameSpeed           float64          `json:"gameSpeed"`
	GesturesSensitivity float64          `json:"gesturesSensitivity"`
	KeyboardEnabled     bool             `json:"keyboardEnabled"`
	ParticlesEnabled    bool             `json:"particlesEnabled"`
	ScreenShakeEnabled  bool             `json:"screenShakeEnabled"`
	TrailEnabled        bool             `json:"trailEnabled"`
	DifficultyLevel     DifficultyPreset `json:"difficultyLevel"`
	LivesEnabled        bool             `json:"livesEnabled"`
	FPSLimit            FPSLimit         `json:"fpsLimit"`
	QualityLevel        QualityLevel     `json:"qualityLevel"`
}

const fpsUnlimited = "unlimited"

// FPSLimit caps the sampling rate. Zero means unlimited.
// It is stored the way the browser select writes it: "30", "60" or "unlimited".
type FPSLimit int

// Unlimited reports whether no cap applies.
func (f FPSLimit) Unlimited() bool { return f == 0 }

func (f FPSLimit) String() string {
	if f.Unlimited() {
		return fpsUnlimited
	}
	return strconv.Itoa(int(f))
}

// ParseFPSLimit accepts a positive integer or "unlimited".
func ParseFPSLimit(v string) (FPSLimit, error) {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, fpsUnlimited) {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid fps limit %q", v)
	}
	if n <= 0 {
		return 0, fmt.Errorf("fps limit must be positive or %q", fpsUnlimited)
	}
	return FPSLimit(n), nil
}

func (f FPSLimit) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

// UnmarshalJSON accepts a JSON number, a numeric string or "unlimited".
func (f *FPSLimit) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		if n < 0 {
			return fmt.Errorf("fps limit must not be negative")
		}
		*f = FPSLimit(n)
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("fps limit must be a number or string: %w", err)
	}
	v, err := ParseFPSLimit(str)
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// DefaultSettings returns the options a fresh install starts with.
func DefaultSettings() Settings {
	return Settings{
		SoundEnabled:        true,
		SoundVolume:         50,
		PlayerSpeed:         7,
		GameSpeed:           1,
		GesturesSensitivity: 1,
		KeyboardEnabled:     true,
		ParticlesEnabled:    true,
		ScreenShakeEnabled:  true,
		TrailEnabled:        true,
		DifficultyLevel:     DifficultyNormal,
		LivesEnabled:        false,
		FPSLimit:            60,
		QualityLevel:        QualityMedium,
	}
}

// ParseSettings decodes a JSON settings document over the defaults,
// so absent fields keep their default values. Nil or empty data yields defaults.
func ParseSettings(data []byte) (Settings, error) {
	s := DefaultSettings()
	if len(data) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return DefaultSettings(), fmt.Errorf("config: cannot parse settings: %w", err)
	}
	return s.Normalize(), nil
}

// Marshal encodes the settings as JSON.
func (s Settings) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

// Normalize replaces out-of-range values with defaults.
func (s Settings) Normalize() Settings {
	d := DefaultSettings()
	if s.PlayerSpeed <= 0 {
		s.PlayerSpeed = d.PlayerSpeed
	}
	if s.GameSpeed <= 0 {
		s.GameSpeed = d.GameSpeed
	}
	if s.GesturesSensitivity <= 0 {
		s.GesturesSensitivity = d.GesturesSensitivity
	}
	if s.SoundVolume < 0 || s.SoundVolume > 100 {
		s.SoundVolume = d.SoundVolume
	}
	if s.FPSLimit < 0 {
		s.FPSLimit = d.FPSLimit
	}
	if !ValidDifficulty(s.DifficultyLevel) {
		s.DifficultyLevel = d.DifficultyLevel
	}
	if !ValidQuality(s.QualityLevel) {
		s.QualityLevel = d.QualityLevel
	}
	return s
}

// Difficulty returns the multipliers of the selected difficulty preset.
func (s Settings) Difficulty() Difficulty {
	return DifficultyFor(s.DifficultyLevel)
}

// ObstacleSpeed returns the multiplier applied to obstacle motion.
func (s Settings) ObstacleSpeed() float64 {
	return s.GameSpeed * s.Difficulty().Speed
}

// Particles returns the particle-count multiplier of the selected quality.
func (s Settings) Particles() float64 {
	return ParticleMultiplier(s.QualityLevel)
}

// SettingKeys lists the recognized option names in sorted order.
func SettingKeys() []string {
	keys := make([]string, 0, len(settingFields))
	for k := range settingFields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type settingField struct {
	get func(Settings) string
	set func(*Settings, string) error
}

func boolField(p func(*Settings) *bool) settingField {
	return settingField{
		get: func(s Settings) string { return strconv.FormatBool(*p(&s)) },
		set: func(s *Settings, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return err
			}
			*p(s) = b
			return nil
		},
	}
}

func floatField(p func(*Settings) *float64) settingField {
	return settingField{
		get: func(s Settings) string { return strconv.FormatFloat(*p(&s), 'g', -1, 64) },
		set: func(s *Settings, v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return err
			}
			if f <= 0 {
				return fmt.Errorf("must be positive")
			}
			*p(s) = f
			return nil
		},
	}
}

func intField(p func(*Settings) *int, min, max int) settingField {
	return settingField{
		get: func(s Settings) string { return strconv.Itoa(*p(&s)) },
		set: func(s *Settings, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return err
			}
			if n < min || n > max {
				return fmt.Errorf("must be within [%d, %d]", min, max)
			}
			*p(s) = n
			return nil
		},
	}
}

var settingFields = map[string]settingField{
	"soundEnabled":        boolField(func(s *Settings) *bool { return &s.SoundEnabled }),
	"soundVolume":         intField(func(s *Settings) *int { return &s.SoundVolume }, 0, 100),
	"playerSpeed":         floatField(func(s *Settings) *float64 { return &s.PlayerSpeed }),
	"gameSpeed":           floatField(func(s *Settings) *float64 { return &s.GameSpeed }),
	"gesturesSensitivity": floatField(func(s *Settings) *float64 { return &s.GesturesSensitivity }),
	"keyboardEnabled":     boolField(func(s *Settings) *bool { return &s.KeyboardEnabled }),
	"particlesEnabled":    boolField(func(s *Settings) *bool { return &s.ParticlesEnabled }),
	"screenShakeEnabled":  boolField(func(s *Settings) *bool { return &s.ScreenShakeEnabled }),
	"trailEnabled":        boolField(func(s *Settings) *bool { return &s.TrailEnabled }),
	"livesEnabled":        boolField(func(s *Settings) *bool { return &s.LivesEnabled }),
	"fpsLimit": {
		get: func(s Settings) string { return s.FPSLimit.String() },
		set: func(s *Settings, v string) error {
			f, err := ParseFPSLimit(v)
			if err != nil {
				return err
			}
			if !f.Unlimited() && f > 240 {
				return fmt.Errorf("must be within [1, 240] or %q", fpsUnlimited)
			}
			s.FPSLimit = f
			return nil
		},
	},
	"difficultyLevel": {
		get: func(s Settings) string { return string(s.DifficultyLevel) },
		set: func(s *Settings, v string) error {
			p := DifficultyPreset(strings.ToLower(v))
			if !ValidDifficulty(p) {
				return fmt.Errorf("unknown difficulty %q", v)
			}
			s.DifficultyLevel = p
			return nil
		},
	},
	"qualityLevel": {
		get: func(s Settings) string { return string(s.QualityLevel) },
		set: func(s *Settings, v string) error {
			q := QualityLevel(strings.ToLower(v))
			if !ValidQuality(q) {
				return fmt.Errorf("unknown quality %q", v)
			}
			s.QualityLevel = q
			return nil
		},
	},
}

// Get returns the textual value of the named option.
func (s Settings) Get(key string) (string, error) {
	f, ok := settingFields[key]
	if !ok {
		return "", fmt.Errorf("config: unknown setting %q", key)
	}
	return f.get(s), nil
}

// With returns a copy of s with the named option parsed from value.
func (s Settings) With(key, value string) (Settings, error) {
	f, ok := settingFields[key]
	if !ok {
		return s, fmt.Errorf("config: unknown setting %q", key)
	}
	next := s
	if err := f.set(&next, strings.TrimSpace(value)); err != nil {
		return s, fmt.Errorf("config: invalid value for %s: %w", key, err)
	}
	return next, nil
}

package progress

import (
	"fmt"

	"github.com/vovakirdan/space-dash/internal/config"
)

// LoadSettings reads the persisted settings merged over defaults.
// On any failure the defaults are returned alongside the error.
func LoadSettings(kv KeyValue) (config.Settings, error) {
	data, err := kv.LoadItem(KeySettings)
	if err != nil {
		return config.DefaultSettings(), fmt.Errorf("progress: cannot load settings: %w", err)
	}
	return config.ParseSettings(data)
}

// SaveSettings persists the settings snapshot.
func SaveSettings(kv KeyValue, s config.Settings) error {
	data, err := s.Marshal()
	if err != nil {
		return fmt.Errorf("progress: cannot encode settings: %w", err)
	}
	if err := kv.SaveItem(KeySettings, data); err != nil {
		return fmt.Errorf("progress: cannot save settings: %w", err)
	}
	return nil
}

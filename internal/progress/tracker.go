package progress

import (
	"encoding/json"
	"errors"
	"fmt"
)

// KeyValue is a durable key-value collaborator. LoadItem returns nil data
// for an absent key; saving nil data clears the item.
type KeyValue interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

// History receives every level completion, improved or not.
type History interface {
	AppendRun(player string, level, deaths, seconds int) error
}

// Tracker owns the watermark and best-run stats of one player.
type Tracker struct {
	kv        KeyValue
	maxLevel  int
	watermark int
	stats     Stats
	history   History
	player    string
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithHistory appends every completion to h under the given player name.
func WithHistory(h History, player string) TrackerOption {
	return func(t *Tracker) {
		t.history = h
		t.player = player
	}
}

// NewTracker creates a tracker with default state. Call Load to read saved progress.
func NewTracker(kv KeyValue, maxLevel int, opts ...TrackerOption) *Tracker {
	t := &Tracker{
		kv:        kv,
		maxLevel:  maxLevel,
		watermark: 1,
		stats:     make(Stats),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Load reads the watermark and stats. Missing items yield defaults; corrupt
// or unreadable items also yield defaults and are reported in the error.
func (t *Tracker) Load() error {
	t.watermark = 1
	t.stats = make(Stats)
	var errs []error

	if data, err := t.kv.LoadItem(KeyProgress); err != nil {
		errs = append(errs, fmt.Errorf("progress: cannot load watermark: %w", err))
	} else if len(data) > 0 {
		var w int
		if err := json.Unmarshal(data, &w); err != nil {
			errs = append(errs, fmt.Errorf("progress: corrupt watermark: %w", err))
		} else {
			t.watermark = min(max(w, 1), t.maxLevel)
		}
	}

	if data, err := t.kv.LoadItem(KeyLevelStats); err != nil {
		errs = append(errs, fmt.Errorf("progress: cannot load level stats: %w", err))
	} else if len(data) > 0 {
		var s Stats
		if err := json.Unmarshal(data, &s); err != nil {
			errs = append(errs, fmt.Errorf("progress: corrupt level stats: %w", err))
		} else if s != nil {
			t.stats = s
		}
	}

	return errors.Join(errs...)
}

// Watermark returns the highest unlocked level.
func (t *Tracker) Watermark() int {
	return t.watermark
}

// MaxLevel returns the number of levels in a campaign.
func (t *Tracker) MaxLevel() int {
	return t.maxLevel
}

// Stats returns a copy of the best-run stats.
func (t *Tracker) Stats() Stats {
	return t.stats.Clone()
}

// Complete records a finished level, unlocks the next one and persists both.
// State is updated in memory even when a write fails.
func (t *Tracker) Complete(level, deaths, seconds int) error {
	var errs []error

	if RecordCompletion(t.stats, level, deaths, seconds) {
		if err := t.saveStats(); err != nil {
			errs = append(errs, err)
		}
	}

	if next := UnlockNext(level, t.watermark, t.maxLevel); next != t.watermark {
		t.watermark = next
		if err := t.saveWatermark(); err != nil {
			errs = append(errs, err)
		}
	}

	if t.history != nil {
		if err := t.history.AppendRun(t.player, level, deaths, seconds); err != nil {
			errs = append(errs, fmt.Errorf("progress: cannot append history: %w", err))
		}
	}

	return errors.Join(errs...)
}

// Reset clears the watermark and stats, in memory and in the store.
func (t *Tracker) Reset() error {
	t.watermark = 1
	t.stats = make(Stats)
	return errors.Join(
		t.kv.SaveItem(KeyProgress, nil),
		t.kv.SaveItem(KeyLevelStats, nil),
	)
}

// Levels returns the status of every level in order.
func (t *Tracker) Levels() []LevelStatus {
	out := make([]LevelStatus, t.maxLevel)
	for i := range out {
		level := i + 1
		rec, ok := t.stats[LevelKey(level)]
		out[i] = LevelStatus{
			Level:    level,
			Unlocked: level <= t.watermark,
			Record:   rec,
			Played:   ok,
		}
	}
	return out
}

func (t *Tracker) saveWatermark() error {
	data, err := json.Marshal(t.watermark)
	if err != nil {
		return fmt.Errorf("progress: cannot encode watermark: %w", err)
	}
	if err := t.kv.SaveItem(KeyProgress, data); err != nil {
		return fmt.Errorf("progress: cannot save watermark: %w", err)
	}
	return nil
}

func (t *Tracker) saveStats() error {
	data, err := json.Marshal(t.stats)
	if err != nil {
		return fmt.Errorf("progress: cannot encode level stats: %w", err)
	}
	if err := t.kv.SaveItem(KeyLevelStats, data); err != nil {
		return fmt.Errorf("progress: cannot save level stats: %w", err)
	}
	return nil
}

// Package progress keeps the unlock watermark and per-level best runs,
// persisted as JSON items in a key-value store.
package progress

import (
	"fmt"
	"maps"
)

// Storage keys. The values match the browser build so saves stay compatible.
const (
	KeyProgress   = "spaceGameProgress"
	KeyLevelStats = "spaceGameLevelStats"
	KeySettings   = "spaceGameSettings"
)

// Record is the best completed run of one level.
type Record struct {
	Deaths    int  `json:"deaths"`
	Time      int  `json:"time"` // seconds
	Completed bool `json:"completed"`
}

// Stats maps level keys ("level3") to their best record.
type Stats map[string]Record

// Clone returns a copy of the stats.
func (s Stats) Clone() Stats {
	return maps.Clone(s)
}

// LevelKey returns the stats key for a level.
func LevelKey(level int) string {
	return fmt.Sprintf("level%d", level)
}

// RecordCompletion stores the run if the level has no record yet or the run
// has strictly fewer deaths. It reports whether stats changed.
func RecordCompletion(stats Stats, level, deaths, seconds int) bool {
	key := LevelKey(level)
	if prev, ok := stats[key]; ok && deaths >= prev.Deaths {
		return false
	}
	stats[key] = Record{Deaths: deaths, Time: seconds, Completed: true}
	return true
}

// UnlockNext returns the watermark after completing level. It advances by
// one only when the frontier level is completed and more levels remain.
func UnlockNext(level, watermark, maxLevel int) int {
	if level == watermark && level < maxLevel {
		return watermark + 1
	}
	return watermark
}

// LevelStatus describes one level for menus.
type LevelStatus struct {
	Level    int
	Unlocked bool
	Record   Record
	Played   bool // Record is set
}

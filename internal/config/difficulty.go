package config

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy    DifficultyPreset = "easy"
	DifficultyNormal  DifficultyPreset = "normal"
	DifficultyHard    DifficultyPreset = "hard"
	DifficultyExtreme DifficultyPreset = "extreme"
)

// Difficulty holds the multipliers a preset applies.
// Only Speed affects the simulation; the other two are carried for display.
type Difficulty struct {
	Speed        float64
	Obstacles    float64
	Collectibles float64
}

var difficultyTable = map[DifficultyPreset]Difficulty{
	DifficultyEasy:    {Speed: 0.7, Obstacles: 0.8, Collectibles: 1.2},
	DifficultyNormal:  {Speed: 1, Obstacles: 1, Collectibles: 1},
	DifficultyHard:    {Speed: 1.3, Obstacles: 1.2, Collectibles: 0.8},
	DifficultyExtreme: {Speed: 1.6, Obstacles: 1.5, Collectibles: 0.6},
}

// DifficultyFor returns the multipliers for a preset; unknown names map to normal.
func DifficultyFor(preset DifficultyPreset) Difficulty {
	if d, ok := difficultyTable[preset]; ok {
		return d
	}
	return difficultyTable[DifficultyNormal]
}

// ValidDifficulty reports whether the preset name is recognized.
func ValidDifficulty(preset DifficultyPreset) bool {
	_, ok := difficultyTable[preset]
	return ok
}

// QualityLevel is a named particle quality.
type QualityLevel string

const (
	QualityLow    QualityLevel = "low"
	QualityMedium QualityLevel = "medium"
	QualityHigh   QualityLevel = "high"
)

var qualityTable = map[QualityLevel]float64{
	QualityLow:    0.3,
	QualityMedium: 0.7,
	QualityHigh:   1.0,
}

// ParticleMultiplier returns the particle-count multiplier for a quality level.
func ParticleMultiplier(q QualityLevel) float64 {
	if m, ok := qualityTable[q]; ok {
		return m
	}
	return qualityTable[QualityMedium]
}

// ValidQuality reports whether the quality name is recognized.
func ValidQuality(q QualityLevel) bool {
	_, ok := qualityTable[q]
	return ok
}

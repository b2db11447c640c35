package config

import "fmt"

// DifficultyPreset names a difficulty chosen on the command line.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a flag value into a preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ApplyJewelsPreset adjusts colours and starting moves for a preset.
func ApplyJewelsPreset(cfg *JewelsConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Difficulty = 1
		cfg.Board.Moves = 15
	case DifficultyNormal:
		cfg.Difficulty = 2
	case DifficultyHard:
		cfg.Difficulty = 4
		cfg.Board.Moves = 8
	}
}

// NextDifficulty cycles 1 → 2 → 3 → 4 → 1.
func NextDifficulty(level int) int {
	if level >= 4 || level < 1 {
		return 1
	}
	return level + 1
}

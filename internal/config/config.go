// Package config provides YAML-based configuration for the jewels game:
// board shape, difficulty, sound, effects and icon ids. Loaded files are
// validated against an embedded CUE schema.
package config

// JewelsConfig contains all configuration for the jewels game.
type JewelsConfig struct {
	Board      BoardConfig   `yaml:"board" json:"board"`
	Difficulty int           `yaml:"difficulty" json:"difficulty"` // 1..4, colours in play = 2 + difficulty
	Sound      SoundConfig   `yaml:"sound" json:"sound"`
	Effects    EffectsConfig `yaml:"effects" json:"effects"`
	Icons      IconConfig    `yaml:"icons" json:"icons"`
}

// BoardConfig defines the board shape and starting moves.
type BoardConfig struct {
	Width  int  `yaml:"width" json:"width"`
	Height int  `yaml:"height" json:"height"`
	Moves  uint `yaml:"moves" json:"moves"`
}

// SoundConfig controls sound effects.
type SoundConfig struct {
	Enabled bool    `yaml:"enabled" json:"enabled"`
	Volume  float64 `yaml:"volume" json:"volume"` // 0.0 (silent) to 1.0
}

// EffectsConfig controls the cosmetic sparkle bursts.
type EffectsConfig struct {
	Enabled      bool `yaml:"enabled" json:"enabled"`
	MaxParticles int  `yaml:"max_particles" json:"max_particles"`
}

// IconConfig maps tokens to host icon ids.
type IconConfig struct {
	Gems             []uint32 `yaml:"gems" json:"gems"`
	Bomb             uint32   `yaml:"bomb" json:"bomb"`
	HorizontalRocket uint32   `yaml:"horizontal_rocket" json:"horizontal_rocket"`
	VerticalRocket   uint32   `yaml:"vertical_rocket" json:"vertical_rocket"`
	RainbowBomb      uint32   `yaml:"rainbow_bomb" json:"rainbow_bomb"`
	Fallback         uint32   `yaml:"fallback" json:"fallback"`
}

// ColorCount returns the number of gem colours for the configured difficulty.
func (c JewelsConfig) ColorCount() int {
	return 2 + c.Difficulty
}

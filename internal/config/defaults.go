package config

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed defaults/jewels.yaml
var defaultJewelsYAML []byte

//go:embed schema.cue
var schemaSource string

// DefaultJewelsConfig returns the default jewels configuration.
func DefaultJewelsConfig() JewelsConfig {
	return JewelsConfig{
		Board: BoardConfig{
			Width:  10,
			Height: 8,
			Moves:  10,
		},
		Difficulty: 2,
		Sound: SoundConfig{
			Enabled: true,
			Volume:  0.6,
		},
		Effects: EffectsConfig{
			Enabled:      true,
			MaxParticles: 120,
		},
		Icons: IconConfig{
			Gems:             []uint32{21275, 21281, 21283, 21284, 21289, 21293},
			Bomb:             60728,
			HorizontalRocket: 60727,
			VerticalRocket:   60726,
			RainbowBomb:      60722,
			Fallback:         14,
		},
	}
}

// Validate checks a configuration against the embedded CUE schema.
func Validate(cfg JewelsConfig) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource).LookupPath(cue.ParsePath("#Config"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("config: compile schema: %w", err)
	}

	value := schema.Unify(ctx.Encode(cfg))
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}
	return nil
}

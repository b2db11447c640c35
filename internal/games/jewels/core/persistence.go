package core

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrNoSnapshot is returned when there is no saved data to load.
	ErrNoSnapshot = errors.New("no snapshot")
	// ErrMalformedSnapshot is returned when saved data cannot be decoded or
	// describes an impossible board.
	ErrMalformedSnapshot = errors.New("malformed snapshot")
)

// SaveState is the persisted form of a board.
type SaveState struct {
	Moves    uint          `json:"Moves"`
	Score    uint          `json:"Score"`
	Entities []EntityState `json:"Entities"`
}

// EntityState is one persisted token. Color is zero for power-ups. Armed
// marks a power-up that was triggered but has not gone off yet; it comes
// back destroyed and fires on the next tick.
type EntityState struct {
	Kind  Kind       `json:"Type"`
	Color EntityType `json:"Id"`
	X     int        `json:"X"`
	Y     int        `json:"Y"`
	Armed bool       `json:"Armed,omitempty"`
}

// Capture returns the board's persistent state. Tokens still above the
// board and tokens whose effect already ran are left out, so cleared gems
// are not resurrected. A triggered power-up whose effect is still pending
// is kept as Armed.
func (b *Board) Capture() SaveState {
	s := SaveState{
		Moves:    b.moves,
		Score:    b.score,
		Entities: make([]EntityState, 0, len(b.entities)),
	}
	for _, e := range b.entities {
		if !e.alive || !b.grid.InBounds(e.cell) {
			continue
		}
		armed := e.destroyed && e.kind != KindGem && !e.invoked
		if e.destroyed && !armed {
			continue
		}
		rec := EntityState{Kind: e.kind, X: e.cell.X, Y: e.cell.Y, Armed: armed}
		if e.kind == KindGem {
			rec.Color = e.typ
		}
		s.Entities = append(s.Entities, rec)
	}
	return s
}

// Restore replaces the board with a saved state. The state is validated
// first; on error the board is left untouched. Records of unknown kind are
// skipped. The multiplier resets to 1 and the board returns to Idle.
func (b *Board) Restore(s SaveState) error {
	keep := make([]EntityState, 0, len(s.Entities))
	for i, rec := range s.Entities {
		if !rec.Kind.valid() {
			b.logger.Debug("skipping unknown entity kind", "index", i, "kind", rec.Kind)
			continue
		}
		if !b.grid.InBounds(C(rec.X, rec.Y)) {
			return fmt.Errorf("%w: entity %d at %v is off the board", ErrMalformedSnapshot, i, C(rec.X, rec.Y))
		}
		if rec.Kind == KindGem && !rec.Color.IsGem() {
			return fmt.Errorf("%w: entity %d has colour %d", ErrMalformedSnapshot, i, rec.Color)
		}
		if rec.Kind == KindGem && rec.Armed {
			return fmt.Errorf("%w: entity %d is an armed gem", ErrMalformedSnapshot, i)
		}
		keep = append(keep, rec)
	}

	b.clearEntities()
	b.swap = swapState{}
	b.moves = s.Moves
	b.score = s.Score
	b.multiplier = 1
	b.state = StateIdle
	for _, rec := range keep {
		e := b.addEntity(rec.Kind, rec.Color, C(rec.X, rec.Y), true)
		if rec.Armed {
			e.markDestroyed()
		}
	}
	return nil
}

// Serialize encodes the board as base64 JSON.
func (b *Board) Serialize() (string, error) {
	raw, err := json.Marshal(b.Capture())
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// Deserialize restores a board produced by Serialize. Failures are logged
// and returned; the board keeps its current state.
func (b *Board) Deserialize(blob string) error {
	err := b.deserialize(blob)
	if err != nil {
		b.logger.Error("failed to load snapshot", "err", err)
	}
	return err
}

func (b *Board) deserialize(blob string) error {
	if blob == "" {
		return ErrNoSnapshot
	}
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedSnapshot, err)
	}
	var s SaveState
	if err := json.Unmarshal(raw, &s); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedSnapshot, err)
	}
	return b.Restore(s)
}

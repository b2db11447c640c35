package core

import (
	"io"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

const testTick = time.Second / 60

var testEpoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// layout builds a save state from rows of single-character cells:
//
//	'1'-'6' gem colour
//	'.'     background gem, alternating 5 and 6 so it never matches
//	'_'     empty cell
//	'B'     bomb
//	'H' 'V' horizontal and vertical rocket
//	'R'     rainbow bomb
func layout(moves, score uint, rows ...string) SaveState {
	s := SaveState{Moves: moves, Score: score}
	for y, row := range rows {
		for x, ch := range row {
			rec := EntityState{X: x, Y: y}
			switch {
			case ch >= '1' && ch <= '6':
				rec.Kind, rec.Color = KindGem, EntityType(ch-'0')
			case ch == '.':
				rec.Kind, rec.Color = KindGem, EntityType(5+(x+y)%2)
			case ch == 'B':
				rec.Kind = KindBomb
			case ch == 'H':
				rec.Kind = KindHorizontalRocket
			case ch == 'V':
				rec.Kind = KindVerticalRocket
			case ch == 'R':
				rec.Kind = KindRainbowBomb
			default:
				continue
			}
			s.Entities = append(s.Entities, rec)
		}
	}
	return s
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func newQuietBoard(width, height int) *Board {
	return NewBoard(Params{Width: width, Height: height, Colors: MaxColors, Moves: 10, Logger: quietLogger()}, rand.New(rand.NewPCG(1, 2)))
}

// hasHole reports whether any cell lacks a live token.
func hasHole(b *Board) bool {
	for y := range b.Height() {
		for x := range b.Width() {
			if b.EntityAt(x, y) == nil {
				return true
			}
		}
	}
	return false
}

// boardFrom returns a board holding exactly the given layout.
func boardFrom(t *testing.T, moves uint, rows ...string) *Board {
	t.Helper()
	b := newQuietBoard(len(rows[0]), len(rows))
	if err := b.Restore(layout(moves, 0, rows...)); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	return b
}

// runWhile ticks the board until cond is false or the tick budget runs out.
func runWhile(t *testing.T, b *Board, now time.Time, budget int, cond func() bool) time.Time {
	t.Helper()
	for i := 0; i < budget && cond(); i++ {
		now = now.Add(testTick)
		b.Update(now, testTick)
	}
	if cond() {
		t.Fatalf("condition still true after %d ticks (state %v)", budget, b.State())
	}
	return now
}

type recordingSound struct {
	played []SoundID
}

func (r *recordingSound) PlaySound(id SoundID) {
	r.played = append(r.played, id)
}

func (r *recordingSound) count(id SoundID) int {
	n := 0
	for _, p := range r.played {
		if p == id {
			n++
		}
	}
	return n
}

type effectCall struct {
	count    int
	cell     Coord
	visualID uint32
}

type recordingEffects struct {
	calls []effectCall
}

func (r *recordingEffects) SpawnEffects(count int, cell Coord, visualID uint32) {
	r.calls = append(r.calls, effectCall{count, cell, visualID})
}

package core

import "testing"

func TestClassifyShapes(t *testing.T) {
	tests := []struct {
		name     string
		rows     []string
		want     MatchType
		origin   Coord
		entities int
	}{
		{
			name:     "horizontal three",
			rows:     []string{"......", "111...", "......", "......", "......", "......"},
			want:     MatchDefault,
			origin:   C(0, 1),
			entities: 3,
		},
		{
			name:     "vertical three",
			rows:     []string{"......", "..1...", "..1...", "..1...", "......", "......"},
			want:     MatchDefault,
			origin:   C(2, 1),
			entities: 3,
		},
		{
			name:     "horizontal four spawns vertical rocket",
			rows:     []string{"......", ".1111.", "......", "......", "......", "......"},
			want:     MatchVerticalRocket,
			origin:   C(1, 1),
			entities: 4,
		},
		{
			name:     "vertical four spawns horizontal rocket",
			rows:     []string{"......", "....1.", "....1.", "....1.", "....1.", "......"},
			want:     MatchHorizontalRocket,
			origin:   C(4, 1),
			entities: 4,
		},
		{
			name:     "square",
			rows:     []string{"......", "......", "..11..", "..11..", "......", "......"},
			want:     MatchBomb,
			origin:   C(2, 2),
			entities: 4,
		},
		{
			name:     "five in a row",
			rows:     []string{"......", "......", "......", "11111.", "......", "......"},
			want:     MatchRainbow,
			origin:   C(0, 3),
			entities: 5,
		},
		{
			name:     "five in a column",
			rows:     []string{".....1", ".....1", ".....1", ".....1", ".....1", "......"},
			want:     MatchRainbow,
			origin:   C(5, 0),
			entities: 5,
		},
		{
			name:     "tee pointing down",
			rows:     []string{"......", "111...", ".1....", ".1....", "......", "......"},
			want:     MatchTee,
			origin:   C(1, 1),
			entities: 5,
		},
		{
			name:     "tee pointing up",
			rows:     []string{"......", "...1..", "...1..", "..111.", "......", "......"},
			want:     MatchTee,
			origin:   C(3, 1),
			entities: 5,
		},
		{
			name:     "two disjoint triples resolve together",
			rows:     []string{"111...", "......", "......", "......", "...111", "......"},
			want:     MatchDefault,
			origin:   C(0, 0),
			entities: 6,
		},
		{
			name: "pair is not a match",
			rows: []string{"11....", "......", "......", "......", "......", "......"},
			want: MatchNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := boardFrom(t, 10, tt.rows...)
			m := b.Classify(1)

			if m.Type != tt.want {
				t.Fatalf("Classify(1).Type = %v, want %v", m.Type, tt.want)
			}
			if tt.want == MatchNone {
				return
			}
			if m.Origin != tt.origin {
				t.Errorf("Origin = %v, want %v", m.Origin, tt.origin)
			}
			if len(m.Entities) != tt.entities {
				t.Errorf("len(Entities) = %d, want %d", len(m.Entities), tt.entities)
			}
			for _, e := range m.Entities {
				if e.Type() != 1 {
					t.Errorf("matched entity at %v has type %d", e.Cell(), e.Type())
				}
			}
		})
	}
}

func TestClassifyBackgroundNeverMatches(t *testing.T) {
	b := boardFrom(t, 10, "......", "......", "......", "......")
	for typ := EntityType(1); typ <= maxTypeCode; typ++ {
		if m := b.Classify(typ); m.Type != MatchNone {
			t.Errorf("Classify(%d) = %v, want None", typ, m.Type)
		}
	}
}

func TestClassifyAtPinsOrigin(t *testing.T) {
	b := boardFrom(t, 10,
		"......",
		"1111..",
		"......",
	)

	m := b.ClassifyAt(3, 1)
	if m.Type != MatchVerticalRocket {
		t.Fatalf("ClassifyAt(3,1).Type = %v, want VerticalRocket", m.Type)
	}
	if m.Origin != C(3, 1) {
		t.Errorf("Origin = %v, want (3,1)", m.Origin)
	}

	if m := b.ClassifyAt(-1, 0); m.Type != MatchNone {
		t.Errorf("ClassifyAt out of bounds = %v, want None", m.Type)
	}
}

func TestProcessMatchesScoresTriple(t *testing.T) {
	b := boardFrom(t, 10,
		"......",
		"111...",
		"......",
	)

	gained := b.processMatches()

	if gained != 3 || b.Score() != 3 {
		t.Errorf("gained=%d score=%d, want 3 and 3", gained, b.Score())
	}
	if b.Multiplier() != 2 {
		t.Errorf("Multiplier() = %d, want 2", b.Multiplier())
	}
	if b.Moves() != 10 {
		t.Errorf("Moves() = %d, want 10 (no power-up)", b.Moves())
	}
	for x := range 3 {
		if b.EntityAt(x, 1) != nil {
			t.Errorf("cell (%d,1) still occupied after match", x)
		}
	}
}

func TestProcessMatchesMultiplierCountsTypes(t *testing.T) {
	b := boardFrom(t, 10,
		"111...",
		"......",
		"222...",
	)

	b.processMatches()

	if b.Score() != 6 {
		t.Errorf("Score() = %d, want 6", b.Score())
	}
	if b.Multiplier() != 3 {
		t.Errorf("Multiplier() = %d, want 3", b.Multiplier())
	}
}

func TestPowerUpSpawns(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		at   Coord
		want EntityType
	}{
		{"row of four", []string{"......", "1111..", "......"}, C(0, 1), TypeVerticalRocket},
		{"column of four", []string{"1.....", "1.....", "1.....", "1....."}, C(0, 0), TypeHorizontalRocket},
		{"square", []string{"11....", "11....", "......"}, C(0, 0), TypeBomb},
		{"five", []string{"......", "11111.", "......"}, C(0, 1), TypeRainbowBomb},
		{"two triples", []string{"111...", "......", "...111"}, C(0, 0), TypeBomb},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := boardFrom(t, 10, tt.rows...)
			b.processMatches()

			if b.Moves() != 12 {
				t.Errorf("Moves() = %d, want 12", b.Moves())
			}
			e := b.EntityAt(tt.at.X, tt.at.Y)
			if e == nil {
				t.Fatalf("no power-up at %v", tt.at)
			}
			if e.Type() != tt.want {
				t.Errorf("power-up type = %d, want %d", e.Type(), tt.want)
			}
		})
	}
}

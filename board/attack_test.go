package board

import (
	"testing"

	"github.com/daystram/kestrel/position"
)

func TestIsSquareAttackedStartingPosition(t *testing.T) {
	t.Parallel()

	b, err := NewBoard()
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	for pos := position.A3; pos <= position.H6; pos++ {
		for _, s := range Sides {
			want := false
			// pawns on the second and seventh rank cover the third and sixth
			if (s == SideWhite && pos.Y() == position.Rank3) || (s == SideBlack && pos.Y() == position.Rank6) {
				want = true
			}
			if got := b.IsSquareAttacked(pos, s); got != want {
				t.Errorf("unexpected attack on %s by %s: got=%v want=%v", pos, s, got, want)
			}
		}
	}
	if b.IsSquareAttacked(position.E1, SideBlack) {
		t.Error("unexpected attack on e1 by Black")
	}
	if b.IsSquareAttacked(position.E8, SideWhite) {
		t.Error("unexpected attack on e8 by White")
	}
	if b.IsKingChecked(SideWhite) || b.IsKingChecked(SideBlack) {
		t.Error("unexpected check in starting position")
	}
}

func TestIsSquareAttackedSliders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		fen          string
		attacker     Side
		wantAttacked []position.Pos
	}{
		{
			name:     "rook on empty rank and file",
			fen:      "7k/8/8/8/3R4/8/8/K7 w - - 0 1",
			attacker: SideWhite,
			wantAttacked: []position.Pos{
				position.A4, position.B4, position.C4, position.E4, position.F4, position.G4, position.H4,
				position.D1, position.D2, position.D3, position.D5, position.D6, position.D7, position.D8,
				// king
				position.A2, position.B1, position.B2,
			},
		},
		{
			name:     "rook stops at first blocker",
			fen:      "7k/8/8/3p4/1P1R2n1/8/8/K7 w - - 0 1",
			attacker: SideWhite,
			wantAttacked: []position.Pos{
				position.B4, position.C4, position.E4, position.F4, position.G4,
				position.D1, position.D2, position.D3, position.D5,
				position.A5, position.C5,
				position.A2, position.B1, position.B2,
			},
		},
		{
			name:     "bishop diagonals",
			fen:      "7k/8/8/8/8/8/8/K5b1 b - - 0 1",
			attacker: SideBlack,
			wantAttacked: []position.Pos{
				position.H2, position.F2, position.E3, position.D4, position.C5, position.B6, position.A7,
				position.G7, position.G8, position.H7,
			},
		},
		{
			name:     "queen is both",
			fen:      "k7/8/8/8/8/8/5PPP/6QK w - - 0 1",
			attacker: SideWhite,
			wantAttacked: []position.Pos{
				position.A1, position.B1, position.C1, position.D1, position.E1, position.F1, position.G1, position.H1,
				position.F2, position.G2, position.H2,
				position.E3, position.F3, position.G3, position.H3,
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b, err := NewBoard(WithFEN(tt.fen))
			if err != nil {
				t.Fatal("unexpected error:", err)
			}
			var want bitmap
			for _, pos := range tt.wantAttacked {
				want.Set(pos)
			}
			if got := bitmap(b.AttackedCells(tt.attacker)); got != want {
				t.Errorf("unexpected attacked cells:\ngot:\n%s\nwant:\n%s", got.Dump(), want.Dump())
			}
		})
	}
}

func TestIsKingChecked(t *testing.T) {
	t.Parallel()

	tests := []struct {
		fen  string
		side Side
		want bool
	}{
		{fen: "4k3/8/8/8/8/8/3p4/4K3 w - - 0 1", side: SideWhite, want: true},
		{fen: "4k3/8/8/8/8/8/4p3/4K3 w - - 0 1", side: SideWhite, want: false},
		{fen: "4k3/8/8/8/8/5n2/8/4K3 w - - 0 1", side: SideWhite, want: true},
		{fen: "4k3/4r3/8/8/8/8/4P3/4K3 w - - 0 1", side: SideWhite, want: false},
		{fen: "4k3/4r3/8/8/8/8/8/4K3 w - - 0 1", side: SideWhite, want: true},
		{fen: "4k3/8/8/b7/8/8/8/4K3 w - - 0 1", side: SideWhite, want: true},
		{fen: "4k3/8/8/8/8/8/8/4K2Q b - - 0 1", side: SideBlack, want: false},
		{fen: "4k3/8/8/8/8/8/8/4Q2K b - - 0 1", side: SideBlack, want: true},
		{fen: "4k3/5P2/8/8/8/8/8/4K3 b - - 0 1", side: SideBlack, want: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.fen, func(t *testing.T) {
			t.Parallel()

			b, err := NewBoard(WithFEN(tt.fen))
			if err != nil {
				t.Fatal("unexpected error:", err)
			}
			if got := b.IsKingChecked(tt.side); got != tt.want {
				t.Errorf("unexpected check: got=%v want=%v", got, tt.want)
			}
		})
	}
}

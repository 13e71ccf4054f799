package board

import (
	"testing"

	"github.com/daystram/kestrel/position"
)

func TestScanHit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		pos      position.Pos
		occupied []position.Pos
		lateral  bool
		want     []position.Pos
	}{
		{
			name:    "rook in corner on empty board",
			pos:     position.A1,
			lateral: true,
			want: []position.Pos{
				position.B1, position.C1, position.D1, position.E1, position.F1, position.G1, position.H1,
				position.A2, position.A3, position.A4, position.A5, position.A6, position.A7, position.A8,
			},
		},
		{
			name:     "rook on h8 blocked both ways",
			pos:      position.H8,
			occupied: []position.Pos{position.F8, position.H6},
			lateral:  true,
			want:     []position.Pos{position.G8, position.F8, position.H7, position.H6},
		},
		{
			name:     "bishop in centre",
			pos:      position.D4,
			occupied: []position.Pos{position.B2, position.F6, position.E3},
			want: []position.Pos{
				position.C3, position.B2, position.E5, position.F6,
				position.C5, position.B6, position.A7, position.E3,
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var occupied, want bitmap
			occupied.Set(tt.pos)
			for _, pos := range tt.occupied {
				occupied.Set(pos)
			}
			for _, pos := range tt.want {
				want.Set(pos)
			}
			got := HitDiagonals(tt.pos, occupied)
			if tt.lateral {
				got = HitLaterals(tt.pos, occupied)
			}
			if got != want {
				t.Errorf("unexpected hits:\ngot:\n%s\nwant:\n%s", got.Dump(), want.Dump())
			}
		})
	}
}

func TestMaskBetween(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b position.Pos
		want []position.Pos
	}{
		{a: position.A1, b: position.A4, want: []position.Pos{position.A2, position.A3}},
		{a: position.H8, b: position.A1, want: []position.Pos{position.B2, position.C3, position.D4, position.E5, position.F6, position.G7}},
		{a: position.E1, b: position.H1, want: []position.Pos{position.F1, position.G1}},
		{a: position.A8, b: position.C6, want: []position.Pos{position.B7}},
		{a: position.E4, b: position.E5},
		{a: position.A1, b: position.B3},
	}

	for _, tt := range tests {
		var want bitmap
		for _, pos := range tt.want {
			want.Set(pos)
		}
		if got := maskBetween[tt.a][tt.b]; got != want {
			t.Errorf("unexpected mask between %s and %s:\ngot:\n%s\nwant:\n%s", tt.a, tt.b, got.Dump(), want.Dump())
		}
		if maskBetween[tt.a][tt.b] != maskBetween[tt.b][tt.a] {
			t.Errorf("mask between %s and %s is not symmetric", tt.a, tt.b)
		}
	}
}

func TestBitmap(t *testing.T) {
	t.Parallel()

	var bm bitmap
	bm.Set(position.C2)
	bm.Set(position.H8)
	bm.Set(position.A1)
	if got := bm.BitCount(); got != 3 {
		t.Errorf("unexpected bit count: got=%d want=3", got)
	}
	for _, want := range []position.Pos{position.A1, position.C2, position.H8} {
		if got := bm.PopLS1B(); got != want {
			t.Errorf("unexpected LS1B: got=%s want=%s", got, want)
		}
	}
	if bm != 0 {
		t.Errorf("unexpected leftover bits: %016x", uint64(bm))
	}
	if got := reverse(maskCell[position.A1]); got != maskCell[position.H8] {
		t.Errorf("unexpected reverse: got=%016x", uint64(got))
	}
}

func TestBitmapShift(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		pos    position.Pos
		dx, dy int
		want   bitmap
	}{
		{name: "north", pos: position.E4, dx: 0, dy: 1, want: maskCell[position.E5]},
		{name: "south twice", pos: position.E4, dx: 0, dy: -2, want: maskCell[position.E2]},
		{name: "east", pos: position.G1, dx: 1, dy: 0, want: maskCell[position.H1]},
		{name: "east off board", pos: position.H1, dx: 1, dy: 0, want: 0},
		{name: "west off board", pos: position.A5, dx: -1, dy: 1, want: 0},
		{name: "north off board", pos: position.C8, dx: 0, dy: 1, want: 0},
		{name: "knight jump", pos: position.B1, dx: 1, dy: 2, want: maskCell[position.C3]},
		{name: "knight wrap", pos: position.G1, dx: 2, dy: 1, want: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := maskCell[tt.pos].shift(tt.dx, tt.dy); got != tt.want {
				t.Errorf("unexpected shift: got=%016x want=%016x", uint64(got), uint64(tt.want))
			}
		})
	}
}

func TestJumpMasks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		mask bitmap
		want []position.Pos
	}{
		{name: "knight a1", mask: maskKnight[position.A1], want: []position.Pos{position.C2, position.B3}},
		{name: "knight h8", mask: maskKnight[position.H8], want: []position.Pos{position.F7, position.G6}},
		{name: "king h1", mask: maskKing[position.H1], want: []position.Pos{position.G1, position.G2, position.H2}},
		{name: "white pawn a2", mask: maskPawnAttack[SideWhite][position.A2], want: []position.Pos{position.B3}},
		{name: "black pawn e7", mask: maskPawnAttack[SideBlack][position.E7], want: []position.Pos{position.D6, position.F6}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var want bitmap
			for _, pos := range tt.want {
				want.Set(pos)
			}
			if tt.mask != want {
				t.Errorf("unexpected mask:\ngot:\n%s\nwant:\n%s", tt.mask.Dump(), want.Dump())
			}
		})
	}
}

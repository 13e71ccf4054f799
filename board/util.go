package board

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/daystram/kestrel/position"
)

// bitmap holds one bit per cell, bit i set iff cell i is marked.
type bitmap uint64

// reverse flips the whole word so that a1 and h8 swap places. bits.Reverse64
// is a byte table lookup plus a byte swap.
func reverse(bm bitmap) bitmap {
	return bitmap(bits.Reverse64(uint64(bm)))
}

// shift moves every marked cell dx files east and dy ranks north. Cells
// pushed past an edge are dropped instead of wrapping onto the next rank.
func (bm bitmap) shift(dx, dy int) bitmap {
	for ; dx > 0; dx-- {
		bm = (bm &^ maskCol[position.FileH]) << 1
	}
	for ; dx < 0; dx++ {
		bm = (bm &^ maskCol[position.FileA]) >> 1
	}
	if dy >= 0 {
		return bm << (8 * dy)
	}
	return bm >> (-8 * dy)
}

// spread unions the shifts of bm by each step.
func (bm bitmap) spread(steps [][2]int) bitmap {
	var u bitmap
	for _, st := range steps {
		u |= bm.shift(st[0], st[1])
	}
	return u
}

// HitDiagonals returns the cells a bishop on pos reaches, up to and including
// the first blocker in each direction.
func HitDiagonals(pos position.Pos, occupied bitmap) bitmap {
	return ScanHit(maskCell[pos], occupied, maskDia[pos]) | ScanHit(maskCell[pos], occupied, maskADia[pos])
}

// HitLaterals returns the cells a rook on pos reaches, up to and including the
// first blocker in each direction.
func HitLaterals(pos position.Pos, occupied bitmap) bitmap {
	return ScanHit(maskCell[pos], occupied, maskCol[pos.X()]) | ScanHit(maskCell[pos], occupied, maskRow[pos.Y()])
}

// ScanHit uses o^(o-2*r) trick.
func ScanHit(cell, occupied, mask bitmap) bitmap {
	blocker := occupied & mask
	return ((blocker - 2*cell) ^ reverse(reverse(blocker)-2*reverse(cell))) & mask
}

func (bm *bitmap) Set(pos position.Pos) {
	*bm |= maskCell[pos]
}

func (bm *bitmap) Unset(pos position.Pos) {
	*bm &^= maskCell[pos]
}

func (bm bitmap) IsSet(pos position.Pos) bool {
	return bm&maskCell[pos] != 0
}

// LS1B returns the least significant set bit, 64 if empty.
func (bm bitmap) LS1B() position.Pos {
	return position.Pos(bits.TrailingZeros64(uint64(bm)))
}

// PopLS1B clears and returns the least significant set bit.
func (bm *bitmap) PopLS1B() position.Pos {
	pos := bm.LS1B()
	*bm &= *bm - 1
	return pos
}

func (bm bitmap) BitCount() uint8 {
	return uint8(bits.OnesCount64(uint64(bm)))
}

func (bm bitmap) Dump(sym ...rune) string {
	builder := strings.Builder{}
	for y := Height - 1; y >= 0; y-- {
		_, _ = builder.WriteString(fmt.Sprintf(" %d |", y+1))
		for x := position.Pos(0); x < Width; x++ {
			if bm.IsSet(position.NewPos(x, y)) {
				s := "#"
				if len(sym) == 1 {
					s = string(sym[0])
				}
				_, _ = builder.WriteString(fmt.Sprintf(" %s ", s))
			} else {
				_, _ = builder.WriteString(" . ")
			}
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString("    ------------------------\n    ")
	for x := position.Pos(0); x < Width; x++ {
		_, _ = builder.WriteString(fmt.Sprintf(" %s ", x.NotationComponentX()))
	}
	return builder.String()
}

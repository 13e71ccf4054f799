package board

import "github.com/daystram/kestrel/position"

// IsSquareAttacked reports whether any piece of the attacker side attacks
// pos. The cell itself may hold anything, including nothing.
func (b *Board) IsSquareAttacked(pos position.Pos, attacker Side) bool {
	if maskKnight[pos]&b.pieces[attacker][PieceKnight] != 0 {
		return true
	}
	if maskKing[pos]&b.pieces[attacker][PieceKing] != 0 {
		return true
	}
	// a pawn of the attacker hits pos iff a pawn of the other side on pos
	// would hit it back
	if maskPawnAttack[attacker.Opposite()][pos]&b.pieces[attacker][PiecePawn] != 0 {
		return true
	}

	queens := b.pieces[attacker][PieceQueen]
	for sliders := maskLateral[pos] & (b.pieces[attacker][PieceRook] | queens); sliders != 0; {
		if maskBetween[pos][sliders.PopLS1B()]&b.occupied == 0 {
			return true
		}
	}
	for sliders := maskDiagonal[pos] & (b.pieces[attacker][PieceBishop] | queens); sliders != 0; {
		if maskBetween[pos][sliders.PopLS1B()]&b.occupied == 0 {
			return true
		}
	}
	return false
}

// IsKingChecked reports whether the king of s is attacked. A side without a
// king is never in check.
func (b *Board) IsKingChecked(s Side) bool {
	kingPos := b.kingPos[s]
	if kingPos == position.Invalid {
		return false
	}
	return b.IsSquareAttacked(kingPos, s.Opposite())
}

// AttackedCells returns every cell the side attacks, for display.
func (b *Board) AttackedCells(attacker Side) uint64 {
	var bm bitmap
	for pos := position.Pos(0); pos < TotalCells; pos++ {
		if b.IsSquareAttacked(pos, attacker) {
			bm.Set(pos)
		}
	}
	return uint64(bm)
}

package board

import (
	"fmt"

	"github.com/daystram/kestrel/position"
)

// Validate cross-checks every redundant field of the board against the piece
// bitmaps and returns the first inconsistency found, wrapped in
// ErrInvariantViolation.
func (b *Board) Validate() error {
	var occupied bitmap
	for _, s := range Sides {
		var side bitmap
		for _, p := range Pieces {
			if side&b.pieces[s][p] != 0 {
				return fmt.Errorf("%w: %s %s overlaps another piece", ErrInvariantViolation, s, p)
			}
			side |= b.pieces[s][p]
		}
		if side != b.sides[s] {
			return fmt.Errorf("%w: %s side bitmap %016x, pieces give %016x", ErrInvariantViolation, s, b.sides[s], side)
		}
		if occupied&side != 0 {
			return fmt.Errorf("%w: sides overlap", ErrInvariantViolation)
		}
		occupied |= side
	}
	if occupied != b.occupied {
		return fmt.Errorf("%w: occupied bitmap %016x, pieces give %016x", ErrInvariantViolation, b.occupied, occupied)
	}

	var (
		material        [2 + 1]uint32
		pawnFileCount   [2 + 1][Width]uint8
		pawnRankCount   [2 + 1][Height]uint8
		pawnAttackCount [2 + 1][TotalCells]uint8
	)
	for pos := position.Pos(0); pos < TotalCells; pos++ {
		c := b.mailbox[pos]
		if c.IsEmpty() {
			if b.occupied.IsSet(pos) {
				return fmt.Errorf("%w: mailbox empty on occupied %s", ErrInvariantViolation, pos)
			}
			continue
		}
		s, p := c.Side(), c.Piece()
		if !b.pieces[s][p].IsSet(pos) {
			return fmt.Errorf("%w: mailbox has %s %s on %s, bitmap does not", ErrInvariantViolation, s, p, pos)
		}
		material[s] += p.Value()
		if p == PiecePawn {
			pawnFileCount[s][pos.X()]++
			pawnRankCount[s][pos.Y()]++
			for attacks := maskPawnAttack[s][pos]; attacks != 0; {
				pawnAttackCount[s][attacks.PopLS1B()]++
			}
		}
	}

	for _, s := range Sides {
		kings := b.pieces[s][PieceKing]
		switch {
		case kings == 0 && b.kingPos[s] != position.Invalid:
			return fmt.Errorf("%w: %s king cached on %s but absent", ErrInvariantViolation, s, b.kingPos[s])
		case kings.BitCount() == 1 && b.kingPos[s] != kings.LS1B():
			return fmt.Errorf("%w: %s king cached on %s but stands on %s", ErrInvariantViolation, s, b.kingPos[s], kings.LS1B())
		}
		if material[s] != b.material[s] {
			return fmt.Errorf("%w: %s material %d, pieces give %d", ErrInvariantViolation, s, b.material[s], material[s])
		}
	}
	if pawnFileCount != b.pawnFileCount || pawnRankCount != b.pawnRankCount || pawnAttackCount != b.pawnAttackCount {
		return fmt.Errorf("%w: pawn counters diverged", ErrInvariantViolation)
	}

	if b.enPassantPos != position.Invalid {
		want := position.Rank6
		if b.turn == SideBlack {
			want = position.Rank3
		}
		if !b.enPassantPos.IsValid() || b.enPassantPos.Y() != want {
			return fmt.Errorf("%w: en passant on %s with %s to move", ErrInvariantViolation, b.enPassantPos, b.turn)
		}
		if !b.isEnPassantTarget(b.enPassantPos) {
			return fmt.Errorf("%w: en passant on %s without a double pushed pawn", ErrInvariantViolation, b.enPassantPos)
		}
	}
	if b.castleRights&^CastleRightsAll != 0 {
		return fmt.Errorf("%w: castle rights %04b", ErrInvariantViolation, b.castleRights)
	}
	if hash := b.ComputeHash(); hash != b.hash {
		return fmt.Errorf("%w: hash %016x, recomputed %016x", ErrInvariantViolation, b.hash, hash)
	}
	return nil
}

// isEnPassantTarget reports whether pos is empty, with the enemy pawn that
// double pushed past it in front and its origin cell empty behind.
func (b *Board) isEnPassantTarget(pos position.Pos) bool {
	fwd := b.turn.Forward()
	return b.mailbox[pos].IsEmpty() &&
		b.mailbox[pos-fwd] == NewCell(b.turn.Opposite(), PiecePawn) &&
		b.mailbox[pos+fwd].IsEmpty()
}

// assertValid panics on an invariant violation when the board runs in debug mode.
func (b *Board) assertValid(op string, mv Move) {
	if !b.debug {
		return
	}
	if err := b.Validate(); err != nil {
		panic(fmt.Sprintf("%s %s: %v\n%s", op, mv.UCI(), err, b.Dump()))
	}
}

package board

import (
	"fmt"

	"github.com/daystram/kestrel/position"
)

// Apply plays a pseudo-legal move for the side to move. A move that leaves
// the mover's king attacked is taken back and ErrIllegalMove returned, so the
// board is untouched on any error.
func (b *Board) Apply(mv Move) error {
	if b.historyDepth >= MaxGameMoves {
		return ErrHistoryFull
	}
	return b.apply(mv)
}

// isLegal plays and takes back mv. It runs on a full history too.
func (b *Board) isLegal(mv Move) bool {
	if b.apply(mv) != nil {
		return false
	}
	b.Revert()
	return true
}

func (b *Board) apply(mv Move) error {
	s := b.turn
	from, to := mv.From(), mv.To()
	if c := b.mailbox[from]; c.IsEmpty() || c.Side() != s {
		return fmt.Errorf("%w: %s has no %s piece on %s", ErrIllegalMove, mv, s, from)
	}
	moved := b.mailbox[from].Piece()

	b.history[b.historyDepth] = Undo{
		move:          mv,
		halfMoveClock: b.halfMoveClock,
		castleRights:  b.castleRights,
		enPassantPos:  b.enPassantPos,
		hash:          b.hash,
	}

	if mv.IsEnPassant() {
		b.removePiece(to - s.Forward())
	}
	if mv.IsCastle() {
		rook := posCastling[castleDirectionByKingTarget(to)][PieceRook]
		b.movePiece(rook[0], rook[1])
	}

	b.setEnPassant(position.Invalid)
	if mv.IsDoublePush() {
		b.setEnPassant(from + s.Forward())
	}

	if moved == PiecePawn || mv.IsCapture() {
		b.halfMoveClock = 0
	} else {
		b.halfMoveClock++
	}

	if mv.IsCapture() && !mv.IsEnPassant() {
		b.removePiece(to)
	}
	b.movePiece(from, to)
	if mv.IsPromote() {
		b.removePiece(to)
		b.addPiece(s, mv.Promoted(), to)
	}

	b.setCastleRights(b.castleRights & maskCastlePermission[from] & maskCastlePermission[to])

	if s == SideBlack {
		b.fullMoveClock++
	}
	b.ply++
	b.historyDepth++
	b.flipTurn()

	if b.IsKingChecked(s) {
		b.Revert()
		return ErrIllegalMove
	}
	b.assertValid("apply", mv)
	return nil
}

// Revert takes back the last applied move. It does nothing on a fresh board.
func (b *Board) Revert() {
	if b.historyDepth == 0 {
		return
	}
	b.historyDepth--
	if b.ply > 0 {
		b.ply--
	}
	u := b.history[b.historyDepth]
	mv := u.move
	from, to := mv.From(), mv.To()

	b.turn = b.turn.Opposite()
	s := b.turn
	if s == SideBlack {
		b.fullMoveClock--
	}

	if mv.IsPromote() {
		b.removePiece(to)
		b.addPiece(s, PiecePawn, to)
	}
	b.movePiece(to, from)
	if mv.IsCapture() && !mv.IsEnPassant() {
		b.addPiece(s.Opposite(), mv.Captured(), to)
	}
	if mv.IsCastle() {
		rook := posCastling[castleDirectionByKingTarget(to)][PieceRook]
		b.movePiece(rook[1], rook[0])
	}
	if mv.IsEnPassant() {
		b.addPiece(s.Opposite(), PiecePawn, to-s.Forward())
	}

	b.castleRights = u.castleRights
	b.enPassantPos = u.enPassantPos
	b.halfMoveClock = u.halfMoveClock
	b.hash = u.hash
	b.assertValid("revert", mv)
}

// MoveExists reports whether the candidate is a legal move in the current
// position. Used to vet moves coming from outside the generator.
func (b *Board) MoveExists(candidate Move) bool {
	var ml MoveList
	b.GenerateMoves(&ml, false)
	for _, mv := range ml.Moves() {
		if mv.Equals(candidate) {
			return b.isLegal(mv)
		}
	}
	return false
}

// ParseMove decodes a move in long algebraic notation, e.g. "e2e4" or
// "a7a8q", into the matching legal move of the current position.
func (b *Board) ParseMove(text string) (Move, error) {
	if len(text) != 4 && len(text) != 5 {
		return NullMove, fmt.Errorf("%w: %q", ErrInvalidMoveNotation, text)
	}
	from, err := position.NewPosFromNotation(text[0:2])
	if err != nil {
		return NullMove, fmt.Errorf("%w: %q: %v", ErrInvalidMoveNotation, text, err)
	}
	to, err := position.NewPosFromNotation(text[2:4])
	if err != nil {
		return NullMove, fmt.Errorf("%w: %q: %v", ErrInvalidMoveNotation, text, err)
	}
	promoted := PieceUnknown
	if len(text) == 5 {
		s, p := PieceFromSymbol(rune(text[4]))
		if s != SideBlack || p == PiecePawn || p == PieceKing || p == PieceUnknown {
			return NullMove, fmt.Errorf("%w: %q: bad promotion", ErrInvalidMoveNotation, text)
		}
		promoted = p
	}

	var ml MoveList
	b.GenerateMoves(&ml, false)
	for _, mv := range ml.Moves() {
		if mv.From() == from && mv.To() == to && mv.Promoted() == promoted && b.MoveExists(mv) {
			return mv, nil
		}
	}
	return NullMove, fmt.Errorf("%w: %s", ErrIllegalMove, text)
}

// IsRepetition reports whether the current position already occurred since
// the last capture or pawn move.
func (b *Board) IsRepetition() bool {
	start := int(b.historyDepth) - int(b.halfMoveClock)
	if start < 0 {
		start = 0
	}
	for i := start; i < int(b.historyDepth); i++ {
		if b.history[i].hash == b.hash {
			return true
		}
	}
	return false
}

// ResetPly marks the current position as a search root.
func (b *Board) ResetPly() {
	b.ply = 0
}

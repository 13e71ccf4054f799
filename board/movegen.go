package board

import "github.com/daystram/kestrel/position"

var (
	// scoreCaptureWeight lifts every capture above any quiet move score.
	scoreCaptureWeight uint32 = 1_000_000
	scoreMVVLVA               = [6 + 1][6 + 1]uint32{
		//                     P    B    N    R    Q    K
		PiecePawn:   {0, 105, 305, 205, 405, 505, 605},
		PieceBishop: {0, 103, 303, 203, 403, 503, 603},
		PieceKnight: {0, 104, 304, 204, 404, 504, 604},
		PieceRook:   {0, 102, 302, 202, 402, 502, 602},
		PieceQueen:  {0, 101, 301, 201, 401, 501, 601},
		PieceKing:   {0, 100, 300, 200, 400, 500, 600},
	}
)

// GenerateMoves fills ml with the pseudo-legal moves of the side to move.
// The list is appended to, so reset it before reuse. Moves that leave the
// mover's king in check are only rejected by Apply.
func (b *Board) GenerateMoves(ml *MoveList, capturesOnly bool) {
	b.genPawnMoves(ml, capturesOnly)
	for _, p := range [5]Piece{PieceKnight, PieceBishop, PieceRook, PieceQueen, PieceKing} {
		b.genPieceMoves(ml, p, capturesOnly)
	}
	if !capturesOnly {
		b.genCastleMoves(ml)
	}
}

// GenerateLegalMoves returns the fully legal moves of the side to move.
func (b *Board) GenerateLegalMoves() []Move {
	var ml MoveList
	b.GenerateMoves(&ml, false)
	mvs := make([]Move, 0, ml.Len())
	for _, mv := range ml.Moves() {
		if b.isLegal(mv) {
			mvs = append(mvs, mv)
		}
	}
	return mvs
}

// HasLegalMove reports whether the side to move has any legal move.
func (b *Board) HasLegalMove() bool {
	var ml MoveList
	b.GenerateMoves(&ml, false)
	for _, mv := range ml.Moves() {
		if b.isLegal(mv) {
			return true
		}
	}
	return false
}

func (b *Board) genPawnMoves(ml *MoveList, capturesOnly bool) {
	s := b.turn
	enemy := b.sides[s.Opposite()]
	var maskEnPassant bitmap
	if b.enPassantPos != position.Invalid {
		maskEnPassant = maskCell[b.enPassantPos]
	}

	for pawns := b.pieces[s][PiecePawn]; pawns != 0; {
		from := pawns.PopLS1B()

		for captures := maskPawnAttack[s][from] & enemy; captures != 0; {
			to := captures.PopLS1B()
			b.addPawnMove(ml, from, to, b.mailbox[to].Piece(), MoveFlagCapture)
		}
		if maskPawnAttack[s][from]&maskEnPassant != 0 {
			b.addCaptureMove(ml, NewMove(from, b.enPassantPos, PiecePawn, PieceUnknown, MoveFlagCapture|MoveFlagEnPassant))
		}

		if capturesOnly {
			continue
		}
		to := from + s.Forward()
		if b.occupied.IsSet(to) {
			continue
		}
		b.addPawnMove(ml, from, to, PieceUnknown, MoveFlagNone)
		if from.Y() == s.PawnStartRank() {
			if to2 := to + s.Forward(); !b.occupied.IsSet(to2) {
				b.addQuietMove(ml, NewMove(from, to2, PieceUnknown, PieceUnknown, MoveFlagDoublePush))
			}
		}
	}
}

// addPawnMove expands moves onto the last rank into every promotion.
func (b *Board) addPawnMove(ml *MoveList, from, to position.Pos, captured Piece, flags MoveFlag) {
	if to.Y() != b.turn.PromotionRank() {
		if captured != PieceUnknown {
			b.addCaptureMove(ml, NewMove(from, to, captured, PieceUnknown, flags))
		} else {
			b.addQuietMove(ml, NewMove(from, to, PieceUnknown, PieceUnknown, flags))
		}
		return
	}
	for _, prom := range PawnPromoteCandidates {
		if captured != PieceUnknown {
			b.addCaptureMove(ml, NewMove(from, to, captured, prom, flags))
		} else {
			b.addQuietMove(ml, NewMove(from, to, PieceUnknown, prom, flags))
		}
	}
}

func (b *Board) genPieceMoves(ml *MoveList, p Piece, capturesOnly bool) {
	s := b.turn
	enemy := b.sides[s.Opposite()]
	for pieces := b.pieces[s][p]; pieces != 0; {
		from := pieces.PopLS1B()
		reach := b.reach(from, p) &^ b.sides[s]

		for captures := reach & enemy; captures != 0; {
			to := captures.PopLS1B()
			b.addCaptureMove(ml, NewMove(from, to, b.mailbox[to].Piece(), PieceUnknown, MoveFlagCapture))
		}
		if capturesOnly {
			continue
		}
		for quiets := reach &^ b.occupied; quiets != 0; {
			b.addQuietMove(ml, NewMove(from, quiets.PopLS1B(), PieceUnknown, PieceUnknown, MoveFlagNone))
		}
	}
}

// reach returns the cells a non-pawn piece on from attacks, blockers included.
func (b *Board) reach(from position.Pos, p Piece) bitmap {
	switch p {
	case PieceKnight:
		return maskKnight[from]
	case PieceBishop:
		return HitDiagonals(from, b.occupied)
	case PieceRook:
		return HitLaterals(from, b.occupied)
	case PieceQueen:
		return HitDiagonals(from, b.occupied) | HitLaterals(from, b.occupied)
	case PieceKing:
		return maskKing[from]
	default:
		return 0
	}
}

// genCastleMoves emits castling when the right is held, the path between
// king and rook is empty, and the king neither starts on nor crosses an
// attacked cell. Landing in check is caught by Apply like any other move.
func (b *Board) genCastleMoves(ml *MoveList) {
	s := b.turn
	if !b.castleRights.IsSideAllowed(s) {
		return
	}
	for _, d := range castleDirections[s] {
		if !b.castleRights.IsAllowed(d) || maskCastlingPath[d]&b.occupied != 0 {
			continue
		}
		king, rook := posCastling[d][PieceKing], posCastling[d][PieceRook]
		if b.mailbox[king[0]] != NewCell(s, PieceKing) || b.mailbox[rook[0]] != NewCell(s, PieceRook) {
			continue
		}
		guard := posCastlingGuard[d]
		if b.IsSquareAttacked(guard[0], s.Opposite()) || b.IsSquareAttacked(guard[1], s.Opposite()) {
			continue
		}
		b.addQuietMove(ml, NewMove(king[0], king[1], PieceUnknown, PieceUnknown, MoveFlagCastle))
	}
}

func (b *Board) addCaptureMove(ml *MoveList, mv Move) {
	attacker := b.mailbox[mv.From()].Piece()
	mv.Score = scoreCaptureWeight + scoreMVVLVA[attacker][mv.Captured()]
	ml.Add(mv)
}

func (b *Board) addQuietMove(ml *MoveList, mv Move) {
	if b.quietScorer != nil {
		mv.Score = b.quietScorer(b, mv)
	}
	ml.Add(mv)
}

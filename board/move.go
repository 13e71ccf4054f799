package board

import (
	"fmt"
	"strings"

	"github.com/daystram/kestrel/position"
)

// Move packs a move into 32 bits:
//
//	0000 0000 0000 0000 0000 0000 0011 1111 -> from
//	0000 0000 0000 0000 0000 1111 1100 0000 -> to
//	0000 0000 0000 0000 0111 0000 0000 0000 -> captured piece
//	0000 0000 0000 0011 1000 0000 0000 0000 -> promoted piece
//	0000 0000 0011 1100 0000 0000 0000 0000 -> flags
//
// Score is only used to order moves and is not part of the move identity.
type Move struct {
	data  uint32
	Score uint32
}

type MoveFlag uint32

const (
	MoveFlagNone       MoveFlag = 0
	MoveFlagEnPassant  MoveFlag = 1 << 18
	MoveFlagDoublePush MoveFlag = 1 << 19
	MoveFlagCastle     MoveFlag = 1 << 20
	MoveFlagCapture    MoveFlag = 1 << 21

	moveShiftTo       = 6
	moveShiftCaptured = 12
	moveShiftPromoted = 15
	moveMaskPos       = 0b111111
	moveMaskPiece     = 0b111
	moveMaskFlags     = 0b1111 << 18
)

// NullMove is the zero Move. It never matches a generated move.
var NullMove = Move{}

func NewMove(from, to position.Pos, captured, promoted Piece, flags MoveFlag) Move {
	return Move{
		data: uint32(from)&moveMaskPos |
			(uint32(to)&moveMaskPos)<<moveShiftTo |
			(uint32(captured)&moveMaskPiece)<<moveShiftCaptured |
			(uint32(promoted)&moveMaskPiece)<<moveShiftPromoted |
			uint32(flags)&moveMaskFlags,
	}
}

func (m Move) From() position.Pos {
	return position.Pos(m.data & moveMaskPos)
}

func (m Move) To() position.Pos {
	return position.Pos(m.data >> moveShiftTo & moveMaskPos)
}

// Captured is the captured piece, the adjacent pawn for en passant.
func (m Move) Captured() Piece {
	return Piece(m.data >> moveShiftCaptured & moveMaskPiece)
}

func (m Move) Promoted() Piece {
	return Piece(m.data >> moveShiftPromoted & moveMaskPiece)
}

func (m Move) Flags() MoveFlag {
	return MoveFlag(m.data & moveMaskFlags)
}

func (m Move) IsCapture() bool {
	return m.data&uint32(MoveFlagCapture) != 0
}

func (m Move) IsEnPassant() bool {
	return m.data&uint32(MoveFlagEnPassant) != 0
}

func (m Move) IsDoublePush() bool {
	return m.data&uint32(MoveFlagDoublePush) != 0
}

func (m Move) IsCastle() bool {
	return m.data&uint32(MoveFlagCastle) != 0
}

func (m Move) IsPromote() bool {
	return m.Promoted() != PieceUnknown
}

func (m Move) IsNull() bool {
	return m.data == 0
}

// Equals compares move identity, ignoring Score.
func (m Move) Equals(n Move) bool {
	return m.data == n.data
}

func (m Move) String() string {
	return m.UCI()
}

// UCI encodes the move in long algebraic notation, e.g. "e2e4" or "e7e8q".
func (m Move) UCI() string {
	if m.IsNull() {
		return "0000"
	}
	return m.From().Notation() + m.To().Notation() + m.Promoted().SymbolFEN(SideBlack)
}

// DebugString lists every field of the move.
func (m Move) DebugString() string {
	var flags []string
	if m.IsCapture() {
		flags = append(flags, "cap")
	}
	if m.IsEnPassant() {
		flags = append(flags, "enp")
	}
	if m.IsDoublePush() {
		flags = append(flags, "dbl")
	}
	if m.IsCastle() {
		flags = append(flags, "cas")
	}
	return fmt.Sprintf("%s %s => %s (captured=%s) (promoted=%s) [%s] score=%d",
		m.UCI(), m.From(), m.To(), m.Captured(), m.Promoted(), strings.Join(flags, ","), m.Score)
}

// MoveList is a caller-owned fixed-capacity move buffer.
type MoveList struct {
	moves [MaxPositionMoves]Move
	count int
}

func (ml *MoveList) Reset() {
	ml.count = 0
}

func (ml *MoveList) Len() int {
	return ml.count
}

func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

func (ml *MoveList) Add(mv Move) {
	ml.moves[ml.count] = mv
	ml.count++
}

func (ml *MoveList) Swap(i, j int) {
	ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i]
}

// Moves returns a view of the filled part of the list.
func (ml *MoveList) Moves() []Move {
	return ml.moves[:ml.count]
}

// SortNext moves the highest scoring move at or after i into slot i and
// returns it, so a search can pick moves lazily in score order.
func (ml *MoveList) SortNext(i int) Move {
	best := i
	for j := i + 1; j < ml.count; j++ {
		if ml.moves[j].Score > ml.moves[best].Score {
			best = j
		}
	}
	ml.Swap(i, best)
	return ml.moves[i]
}

func (ml *MoveList) Contains(mv Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i].Equals(mv) {
			return true
		}
	}
	return false
}

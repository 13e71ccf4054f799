package board

type Piece uint8

const (
	PieceUnknown Piece = iota
	PiecePawn
	PieceBishop
	PieceKnight
	PieceRook
	PieceQueen
	PieceKing
)

var (
	// Pieces lists every piece kind in generation order.
	Pieces = [6]Piece{PiecePawn, PieceKnight, PieceBishop, PieceRook, PieceQueen, PieceKing}

	// PawnPromoteCandidates represents the candidates for pawn promotion, strongest first.
	PawnPromoteCandidates = [4]Piece{PieceQueen, PieceRook, PieceBishop, PieceKnight}

	materialPieceValue = [6 + 1]uint32{
		PiecePawn:   100,
		PieceKnight: 325,
		PieceBishop: 325,
		PieceRook:   550,
		PieceQueen:  1000,
		PieceKing:   50000,
	}
)

func (p Piece) String() string {
	return p.Name()
}

func (p Piece) Name() string {
	switch p {
	case PiecePawn:
		return "Pawn"
	case PieceBishop:
		return "Bishop"
	case PieceKnight:
		return "Knight"
	case PieceRook:
		return "Rook"
	case PieceQueen:
		return "Queen"
	case PieceKing:
		return "King"
	default:
		return ""
	}
}

// Value is the material value of the piece in centipawns.
func (p Piece) Value() uint32 {
	return materialPieceValue[p]
}

func (p Piece) IsSlider() bool {
	return p == PieceBishop || p == PieceRook || p == PieceQueen
}

func (p Piece) SymbolFEN(s Side) string {
	var sym rune
	switch p {
	case PiecePawn:
		sym = 'P'
	case PieceBishop:
		sym = 'B'
	case PieceKnight:
		sym = 'N'
	case PieceRook:
		sym = 'R'
	case PieceQueen:
		sym = 'Q'
	case PieceKing:
		sym = 'K'
	default:
		return ""
	}
	if s == SideBlack {
		sym |= 0x20 // lowercase is +32 uppercase
	}
	return string(sym)
}

// PieceFromSymbol is the inverse of SymbolFEN.
func PieceFromSymbol(sym rune) (Side, Piece) {
	s := SideWhite
	if sym >= 'a' && sym <= 'z' {
		s = SideBlack
		sym &^= 0x20
	}
	switch sym {
	case 'P':
		return s, PiecePawn
	case 'B':
		return s, PieceBishop
	case 'N':
		return s, PieceKnight
	case 'R':
		return s, PieceRook
	case 'Q':
		return s, PieceQueen
	case 'K':
		return s, PieceKing
	default:
		return SideUnknown, PieceUnknown
	}
}

func (p Piece) SymbolUnicode(s Side) string {
	switch s {
	case SideWhite:
		switch p {
		case PiecePawn:
			return "♙"
		case PieceBishop:
			return "♗"
		case PieceKnight:
			return "♘"
		case PieceRook:
			return "♖"
		case PieceQueen:
			return "♕"
		case PieceKing:
			return "♔"
		}
	case SideBlack:
		switch p {
		case PiecePawn:
			return "♟"
		case PieceBishop:
			return "♝"
		case PieceKnight:
			return "♞"
		case PieceRook:
			return "♜"
		case PieceQueen:
			return "♛"
		case PieceKing:
			return "♚"
		}
	}
	return ""
}

// Cell is the content of a single square in the mailbox: a side and a piece
// packed together, or CellEmpty.
type Cell uint8

const CellEmpty Cell = 0

func NewCell(s Side, p Piece) Cell {
	return Cell(s)<<3 | Cell(p)
}

func (c Cell) Side() Side {
	return Side(c >> 3)
}

func (c Cell) Piece() Piece {
	return Piece(c & 0b111)
}

func (c Cell) IsEmpty() bool {
	return c == CellEmpty
}

func (c Cell) String() string {
	if c.IsEmpty() {
		return "."
	}
	return c.Piece().SymbolFEN(c.Side())
}

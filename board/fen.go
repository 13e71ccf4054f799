package board

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/daystram/kestrel/position"
)

// LoadFEN replaces the whole board with the position described by fen. On
// error the board is left empty.
func (b *Board) LoadFEN(fen string) error {
	return b.loadFEN(fen)
}

func (b *Board) loadFEN(fen string) error {
	b.clear()
	err := b.parseFEN(fen)
	if err != nil {
		b.clear()
		return err
	}
	b.hash = b.ComputeHash()
	return nil
}

func (b *Board) parseFEN(fen string) error {
	segments := strings.Split(fen, " ")
	if len(segments) != 6 {
		return fmt.Errorf("%w: incorrect number of segments", ErrInvalidFEN)
	}

	rows := strings.Split(segments[0], "/")
	if len(rows) != int(Height) {
		return fmt.Errorf("%w: invalid board configuration", ErrInvalidFEN)
	}
	for y := position.Pos(0); y < Height; y++ {
		row := rows[Height-y-1]
		x := position.Pos(0)
		for _, sym := range row {
			if x >= Width {
				return fmt.Errorf("%w: rank %d overflows", ErrInvalidFEN, y+1)
			}
			if sym != '0' && unicode.IsDigit(sym) {
				skip := position.Pos(sym - '0')
				if x+skip > Width {
					return fmt.Errorf("%w: skip out of bounds", ErrInvalidFEN)
				}
				x += skip
				continue
			}
			s, p := PieceFromSymbol(sym)
			if p == PieceUnknown {
				return fmt.Errorf("%w: unknown symbol '%s'", ErrInvalidFEN, string(sym))
			}
			if p == PiecePawn && (y == position.Rank1 || y == position.Rank8) {
				return fmt.Errorf("%w: pawn on rank %d", ErrInvalidFEN, y+1)
			}
			b.addPiece(s, p, position.NewPos(x, y))
			x++
		}
		if x != Width {
			return fmt.Errorf("%w: missing cells", ErrInvalidFEN)
		}
	}
	for _, s := range Sides {
		if b.pieces[s][PieceKing].BitCount() != 1 {
			return fmt.Errorf("%w: %s must have exactly one king", ErrInvalidFEN, s)
		}
	}

	switch segments[1] {
	case "w":
		b.turn = SideWhite
	case "b":
		b.turn = SideBlack
	default:
		return fmt.Errorf("%w: invalid turn", ErrInvalidFEN)
	}

	if len(segments[2]) > 4 {
		return fmt.Errorf("%w: invalid castling rights", ErrInvalidFEN)
	}
crLoop:
	for i, e := range segments[2] {
		switch e {
		case 'K':
			b.castleRights.Set(CastleDirectionWhiteRight, true)
		case 'k':
			b.castleRights.Set(CastleDirectionBlackRight, true)
		case 'Q':
			b.castleRights.Set(CastleDirectionWhiteLeft, true)
		case 'q':
			b.castleRights.Set(CastleDirectionBlackLeft, true)
		default:
			if i == 0 && e == '-' {
				break crLoop
			}
			return fmt.Errorf("%w: invalid castling rights", ErrInvalidFEN)
		}
	}

	if segments[3] != "-" {
		pos, err := position.NewPosFromNotation(segments[3])
		if err != nil {
			return fmt.Errorf("%w: invalid enpassant position: %v", ErrInvalidFEN, err)
		}
		want := position.Rank6
		if b.turn == SideBlack {
			want = position.Rank3
		}
		if pos.Y() != want {
			return fmt.Errorf("%w: enpassant position %s with %s to move", ErrInvalidFEN, pos, b.turn)
		}
		if !b.isEnPassantTarget(pos) {
			return fmt.Errorf("%w: enpassant position %s has no capturable pawn", ErrInvalidFEN, pos)
		}
		b.enPassantPos = pos
	}

	halfMoveClock, err := strconv.ParseUint(segments[4], 10, 16)
	if err != nil {
		return fmt.Errorf("%w: invalid half move clock", ErrInvalidFEN)
	}
	b.halfMoveClock = uint16(halfMoveClock)

	fullMoveClock, err := strconv.ParseUint(segments[5], 10, 16)
	if err != nil {
		return fmt.Errorf("%w: invalid full move clock", ErrInvalidFEN)
	}
	b.fullMoveClock = uint16(fullMoveClock)

	return nil
}

func (b *Board) FEN() string {
	builder := strings.Builder{}
	for y := position.Pos(Height) - 1; y >= 0; y-- {
		skip := 0
		for x := position.Pos(0); x < Width; x++ {
			c := b.mailbox[position.NewPos(x, y)]
			if c.IsEmpty() {
				skip++
				continue
			}
			if skip != 0 {
				_, _ = builder.WriteString(strconv.Itoa(skip))
				skip = 0
			}
			_, _ = builder.WriteString(c.String())
		}
		if skip != 0 {
			_, _ = builder.WriteString(strconv.Itoa(skip))
		}
		if y > 0 {
			_, _ = builder.WriteRune('/')
		}
	}

	if b.turn == SideWhite {
		_, _ = builder.WriteString(" w ")
	} else {
		_, _ = builder.WriteString(" b ")
	}
	_, _ = builder.WriteString(b.castleRights.String())
	_, _ = builder.WriteRune(' ')
	_, _ = builder.WriteString(b.enPassantPos.String())
	_, _ = builder.WriteString(fmt.Sprintf(" %d %d", b.halfMoveClock, b.fullMoveClock))

	return builder.String()
}

package board

import (
	"errors"
	"fmt"

	"github.com/daystram/kestrel/position"
)

var (
	ErrInvalidFEN          = errors.New("invalid fen")
	ErrInvalidMoveNotation = errors.New("invalid move notation")
	ErrIllegalMove         = errors.New("illegal move")
	ErrHistoryFull         = errors.New("move history full")
	ErrInvariantViolation  = errors.New("board invariant violated")
)

// QuietScorer assigns an ordering score to a quiet move as it is generated.
// Search layers plug killer and history heuristics in here.
type QuietScorer func(b *Board, mv Move) uint32

// Undo is pushed for every applied move and holds whatever Revert cannot
// derive from the move itself.
type Undo struct {
	move          Move
	halfMoveClock uint16
	castleRights  CastleRights
	enPassantPos  position.Pos
	hash          uint64
}

func (u Undo) Move() Move {
	return u.move
}

// Little-endian rank-file (LERF) mapping
type Board struct {
	// grid data
	pieces   [2 + 1][6 + 1]bitmap
	sides    [2 + 1]bitmap
	occupied bitmap
	mailbox  [TotalCells]Cell
	kingPos  [2 + 1]position.Pos

	// pawn structure
	pawnFileCount   [2 + 1][Width]uint8
	pawnRankCount   [2 + 1][Height]uint8
	pawnAttackCount [2 + 1][TotalCells]uint8
	material        [2 + 1]uint32

	// meta
	turn          Side
	enPassantPos  position.Pos
	castleRights  CastleRights
	halfMoveClock uint16
	fullMoveClock uint16
	ply           uint16
	historyDepth  uint16
	hash          uint64
	history       [MaxGameMoves + 1]Undo // the spare record serves legality checks on a full history

	keys        *ZobristKeys
	debug       bool
	quietScorer QuietScorer
}

type boardConfig struct {
	fen         string
	keys        *ZobristKeys
	debug       bool
	quietScorer QuietScorer
}

type BoardOption func(*boardConfig)

func WithFEN(fen string) BoardOption {
	return func(cfg *boardConfig) {
		cfg.fen = fen
	}
}

// WithZobristKeys shares a key table between boards. Boards hashed with
// different tables cannot be compared.
func WithZobristKeys(keys *ZobristKeys) BoardOption {
	return func(cfg *boardConfig) {
		cfg.keys = keys
	}
}

// WithDebug makes Apply and Revert validate every invariant and panic on
// the first violation.
func WithDebug(debug bool) BoardOption {
	return func(cfg *boardConfig) {
		cfg.debug = debug
	}
}

func WithQuietScorer(scorer QuietScorer) BoardOption {
	return func(cfg *boardConfig) {
		cfg.quietScorer = scorer
	}
}

func NewBoard(opts ...BoardOption) (*Board, error) {
	cfg := &boardConfig{
		fen: DefaultStartingPositionFEN,
	}
	for _, f := range opts {
		f(cfg)
	}
	if cfg.keys == nil {
		cfg.keys = DefaultZobristKeys()
	}

	b := &Board{
		keys:        cfg.keys,
		debug:       cfg.debug,
		quietScorer: cfg.quietScorer,
	}
	if err := b.loadFEN(cfg.fen); err != nil {
		return nil, err
	}
	return b, nil
}

// clear empties the board, keeping its configuration.
func (b *Board) clear() {
	*b = Board{
		keys:         b.keys,
		debug:        b.debug,
		quietScorer:  b.quietScorer,
		kingPos:      [2 + 1]position.Pos{position.Invalid, position.Invalid, position.Invalid},
		enPassantPos: position.Invalid,
		turn:         SideWhite,
	}
}

// addPiece places a piece on an empty cell, keeping every derived field in step.
func (b *Board) addPiece(s Side, p Piece, pos position.Pos) {
	b.pieces[s][p].Set(pos)
	b.sides[s].Set(pos)
	b.occupied.Set(pos)
	b.mailbox[pos] = NewCell(s, p)
	b.hash ^= b.keys.Piece(s, p, pos)
	b.material[s] += p.Value()

	switch p {
	case PieceKing:
		b.kingPos[s] = pos
	case PiecePawn:
		b.pawnFileCount[s][pos.X()]++
		b.pawnRankCount[s][pos.Y()]++
		for attacks := maskPawnAttack[s][pos]; attacks != 0; {
			b.pawnAttackCount[s][attacks.PopLS1B()]++
		}
	}
}

// removePiece clears an occupied cell, the inverse of addPiece.
func (b *Board) removePiece(pos position.Pos) {
	c := b.mailbox[pos]
	s, p := c.Side(), c.Piece()
	b.pieces[s][p].Unset(pos)
	b.sides[s].Unset(pos)
	b.occupied.Unset(pos)
	b.mailbox[pos] = CellEmpty
	b.hash ^= b.keys.Piece(s, p, pos)
	b.material[s] -= p.Value()

	switch p {
	case PieceKing:
		b.kingPos[s] = position.Invalid
	case PiecePawn:
		b.pawnFileCount[s][pos.X()]--
		b.pawnRankCount[s][pos.Y()]--
		for attacks := maskPawnAttack[s][pos]; attacks != 0; {
			b.pawnAttackCount[s][attacks.PopLS1B()]--
		}
	}
}

func (b *Board) movePiece(from, to position.Pos) {
	c := b.mailbox[from]
	b.removePiece(from)
	b.addPiece(c.Side(), c.Piece(), to)
}

func (b *Board) setEnPassant(pos position.Pos) {
	if b.enPassantPos != position.Invalid {
		b.hash ^= b.keys.EnPassant(b.enPassantPos)
	}
	b.enPassantPos = pos
	if pos != position.Invalid {
		b.hash ^= b.keys.EnPassant(pos)
	}
}

func (b *Board) setCastleRights(c CastleRights) {
	b.hash ^= b.keys.CastleRights(b.castleRights)
	b.castleRights = c
	b.hash ^= b.keys.CastleRights(c)
}

func (b *Board) flipTurn() {
	b.turn = b.turn.Opposite()
	b.hash ^= b.keys.SideWhite()
}

func (b *Board) Turn() Side {
	return b.turn
}

func (b *Board) Hash() uint64 {
	return b.hash
}

// EnPassant is the cell capturable en passant, position.Invalid if none.
func (b *Board) EnPassant() position.Pos {
	return b.enPassantPos
}

func (b *Board) CastleRights() CastleRights {
	return b.castleRights
}

func (b *Board) HalfMoveClock() uint16 {
	return b.halfMoveClock
}

func (b *Board) FullMoveClock() uint16 {
	return b.fullMoveClock
}

// Ply counts the moves applied since the last ResetPly.
func (b *Board) Ply() uint16 {
	return b.ply
}

// HistoryDepth counts the moves applied since the board was loaded.
func (b *Board) HistoryDepth() uint16 {
	return b.historyDepth
}

// LastMove returns the most recently applied move, NullMove if none.
func (b *Board) LastMove() Move {
	if b.historyDepth == 0 {
		return NullMove
	}
	return b.history[b.historyDepth-1].move
}

func (b *Board) CellAt(pos position.Pos) Cell {
	return b.mailbox[pos]
}

// KingPos is the cached king cell of the side, position.Invalid if it has no king.
func (b *Board) KingPos(s Side) position.Pos {
	return b.kingPos[s]
}

// Material is the summed piece value of the side, king included.
func (b *Board) Material(s Side) uint32 {
	return b.material[s]
}

func (b *Board) PawnFileCount(s Side, file position.Pos) uint8 {
	return b.pawnFileCount[s][file]
}

func (b *Board) PawnRankCount(s Side, rank position.Pos) uint8 {
	return b.pawnRankCount[s][rank]
}

// PawnAttackCount is the number of pawns of the side attacking the cell.
func (b *Board) PawnAttackCount(s Side, pos position.Pos) uint8 {
	return b.pawnAttackCount[s][pos]
}

func (b *Board) Bitmap(s Side, p Piece) uint64 {
	return uint64(b.pieces[s][p])
}

func (b *Board) Occupied() uint64 {
	return uint64(b.occupied)
}

func (b *Board) Keys() *ZobristKeys {
	return b.keys
}

// Clone deep copies the board. The key table is shared, so clones can be
// handed to separate goroutines.
func (b *Board) Clone() *Board {
	bb := *b
	return &bb
}

func (b *Board) DumpEnPassant() string {
	if b.enPassantPos == position.Invalid {
		return bitmap(0).Dump()
	}
	return maskCell[b.enPassantPos].Dump()
}

func (b *Board) DumpOccupied() string {
	return b.occupied.Dump()
}

func (b *Board) DebugString() string {
	return fmt.Sprintf("turn: %s\ncast: %s\nenps: %s\nhalf: %4d\nfull: %4d\nhash: %016x\nstat: %s",
		b.turn, b.castleRights, b.enPassantPos, b.halfMoveClock, b.fullMoveClock, b.hash, b.State())
}

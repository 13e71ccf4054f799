package board

import (
	"sync"

	"github.com/daystram/kestrel/position"
)

// DefaultZobristSeed seeds the shared key table.
const DefaultZobristSeed uint64 = 7

var (
	defaultZobristKeys     *ZobristKeys
	defaultZobristKeysOnce sync.Once
)

// ZobristKeys is an immutable table of random keys. A single table may be
// shared by any number of boards, including across goroutines.
type ZobristKeys struct {
	// piece is indexed [side][piece][pos]. The unused [SideUnknown][PieceUnknown]
	// row holds the en passant keys.
	piece        [2 + 1][6 + 1][TotalCells]uint64
	castleRights [16]uint64
	sideWhite    uint64
}

func NewZobristKeys(seed uint64) *ZobristKeys {
	r := NewPseudoRand(seed)
	k := &ZobristKeys{}
	for _, s := range Sides {
		for _, p := range Pieces {
			for pos := position.Pos(0); pos < TotalCells; pos++ {
				k.piece[s][p][pos] = r.Uint64()
			}
		}
	}
	for pos := position.Pos(0); pos < TotalCells; pos++ {
		k.piece[SideUnknown][PieceUnknown][pos] = r.Uint64()
	}
	for i := range k.castleRights {
		k.castleRights[i] = r.Uint64()
	}
	k.sideWhite = r.Uint64()
	return k
}

// DefaultZobristKeys returns the process-wide key table, building it on first use.
func DefaultZobristKeys() *ZobristKeys {
	defaultZobristKeysOnce.Do(func() {
		defaultZobristKeys = NewZobristKeys(DefaultZobristSeed)
	})
	return defaultZobristKeys
}

func (k *ZobristKeys) Piece(s Side, p Piece, pos position.Pos) uint64 {
	return k.piece[s][p][pos]
}

func (k *ZobristKeys) EnPassant(pos position.Pos) uint64 {
	return k.piece[SideUnknown][PieceUnknown][pos]
}

func (k *ZobristKeys) CastleRights(c CastleRights) uint64 {
	return k.castleRights[c&CastleRightsAll]
}

// SideWhite is folded into the hash while White is to move.
func (k *ZobristKeys) SideWhite() uint64 {
	return k.sideWhite
}

// ComputeHash recomputes the board hash from scratch.
func (b *Board) ComputeHash() uint64 {
	var hash uint64
	for pos := position.Pos(0); pos < TotalCells; pos++ {
		if c := b.mailbox[pos]; !c.IsEmpty() {
			hash ^= b.keys.Piece(c.Side(), c.Piece(), pos)
		}
	}
	if b.turn == SideWhite {
		hash ^= b.keys.SideWhite()
	}
	if b.enPassantPos != position.Invalid {
		hash ^= b.keys.EnPassant(b.enPassantPos)
	}
	hash ^= b.keys.CastleRights(b.castleRights)
	return hash
}

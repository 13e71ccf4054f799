package board

import (
	"github.com/daystram/kestrel/position"
)

const (
	Width      = position.MaxComponentScalar
	Height     = position.MaxComponentScalar
	TotalCells = Width * Height

	// MaxGameMoves caps the number of moves a single board can have applied.
	MaxGameMoves = 2048

	// MaxPositionMoves bounds the pseudo-legal moves of any reachable position.
	MaxPositionMoves = 256

	DefaultStartingPositionFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
)

var (
	maskCol = [Width]bitmap{
		position.FileA: 0x_01_01_01_01_01_01_01_01,
		position.FileB: 0x_02_02_02_02_02_02_02_02,
		position.FileC: 0x_04_04_04_04_04_04_04_04,
		position.FileD: 0x_08_08_08_08_08_08_08_08,
		position.FileE: 0x_10_10_10_10_10_10_10_10,
		position.FileF: 0x_20_20_20_20_20_20_20_20,
		position.FileG: 0x_40_40_40_40_40_40_40_40,
		position.FileH: 0x_80_80_80_80_80_80_80_80,
	}
	maskRow = [Height]bitmap{
		position.Rank1: 0x_00_00_00_00_00_00_00_FF,
		position.Rank2: 0x_00_00_00_00_00_00_FF_00,
		position.Rank3: 0x_00_00_00_00_00_FF_00_00,
		position.Rank4: 0x_00_00_00_00_FF_00_00_00,
		position.Rank5: 0x_00_00_00_FF_00_00_00_00,
		position.Rank6: 0x_00_00_FF_00_00_00_00_00,
		position.Rank7: 0x_00_FF_00_00_00_00_00_00,
		position.Rank8: 0x_FF_00_00_00_00_00_00_00,
	}
	maskCell       [TotalCells]bitmap
	maskDia        [TotalCells]bitmap
	maskADia       [TotalCells]bitmap
	maskKnight     [TotalCells]bitmap
	maskKing       [TotalCells]bitmap
	maskPawnAttack [2 + 1][TotalCells]bitmap
	maskLateral    [TotalCells]bitmap
	maskDiagonal   [TotalCells]bitmap
	maskBetween    [TotalCells][TotalCells]bitmap

	// steps are (file, rank) offsets a piece jumps by.
	stepsKnight     = [][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	stepsKing       = [][2]int{{0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}}
	stepsPawnAttack = [2 + 1][][2]int{
		SideWhite: {{-1, 1}, {1, 1}},
		SideBlack: {{-1, -1}, {1, -1}},
	}

	// maskCastlePermission holds the castle rights that survive a move
	// touching the cell.
	maskCastlePermission [TotalCells]CastleRights

	// maskCastlingPath are the cells between king and rook, which must be empty.
	maskCastlingPath = [4 + 1]bitmap{}
	// posCastlingGuard are the cells the king stands on or crosses, which must
	// not be attacked. The destination is checked when the move is applied.
	posCastlingGuard = [4 + 1][2]position.Pos{
		CastleDirectionWhiteRight: {position.E1, position.F1},
		CastleDirectionWhiteLeft:  {position.E1, position.D1},
		CastleDirectionBlackRight: {position.E8, position.F8},
		CastleDirectionBlackLeft:  {position.E8, position.D8},
	}
	posCastling = [4 + 1][6 + 1][2]position.Pos{
		CastleDirectionWhiteRight: {
			PieceKing: {position.E1, position.G1},
			PieceRook: {position.H1, position.F1},
		},
		CastleDirectionWhiteLeft: {
			PieceKing: {position.E1, position.C1},
			PieceRook: {position.A1, position.D1},
		},
		CastleDirectionBlackRight: {
			PieceKing: {position.E8, position.G8},
			PieceRook: {position.H8, position.F8},
		},
		CastleDirectionBlackLeft: {
			PieceKing: {position.E8, position.C8},
			PieceRook: {position.A8, position.D8},
		},
	}

	maskCastleRights = [4 + 1]CastleRights{
		CastleDirectionWhiteRight: 0b1000,
		CastleDirectionWhiteLeft:  0b0100,
		CastleDirectionBlackRight: 0b0010,
		CastleDirectionBlackLeft:  0b0001,
	}
)

func init() {
	initMask()
	initMaskBetween()
	initMaskCastle()
}

func initMask() {
	for pos := position.Pos(0); pos < TotalCells; pos++ {
		maskCell[pos] = 1 << pos
	}

	for pos := position.Pos(0); pos < TotalCells; pos++ {
		mask := bitmap(0)
		x, y := pos%Width, pos/Width
		x, y = x-min(x, y), y-min(x, y)
		for x < Width && y < Height {
			mask |= maskCell[y*Width+x]
			x++
			y++
		}
		maskDia[pos] = mask
	}

	for pos := position.Pos(0); pos < TotalCells; pos++ {
		mask := bitmap(0)
		x, y := pos%Width, pos/Width
		x, y = x-min(x, Height-y-1), y+min(x, Height-y-1)
		for x < Width && y >= 0 {
			mask |= maskCell[y*Width+x]
			x++
			y--
		}
		maskADia[pos] = mask
	}

	for pos := position.Pos(0); pos < TotalCells; pos++ {
		cell := maskCell[pos]
		maskKnight[pos] = cell.spread(stepsKnight)
		maskKing[pos] = cell.spread(stepsKing)
		maskPawnAttack[SideWhite][pos] = cell.spread(stepsPawnAttack[SideWhite])
		maskPawnAttack[SideBlack][pos] = cell.spread(stepsPawnAttack[SideBlack])
	}

	for pos := position.Pos(0); pos < TotalCells; pos++ {
		maskLateral[pos] = (maskRow[pos.Y()] | maskCol[pos.X()]) &^ maskCell[pos]
		maskDiagonal[pos] = (maskDia[pos] | maskADia[pos]) &^ maskCell[pos]
	}
}

// initMaskBetween fills the cells strictly between every pair of cells
// sharing a rank, file or diagonal.
func initMaskBetween() {
	for a := position.Pos(0); a < TotalCells; a++ {
		for b := position.Pos(0); b < TotalCells; b++ {
			var line bitmap
			switch {
			case a == b:
				continue
			case maskRow[a.Y()].IsSet(b):
				line = maskRow[a.Y()]
			case maskCol[a.X()].IsSet(b):
				line = maskCol[a.X()]
			case maskDia[a].IsSet(b):
				line = maskDia[a]
			case maskADia[a].IsSet(b):
				line = maskADia[a]
			default:
				continue
			}
			lo, hi := min(a, b), max(a, b)
			span := (maskCell[hi] - 1) &^ (maskCell[lo]<<1 - 1)
			maskBetween[a][b] = line & span
		}
	}
}

func initMaskCastle() {
	for pos := position.Pos(0); pos < TotalCells; pos++ {
		maskCastlePermission[pos] = 0b1111
	}
	for _, d := range []CastleDirection{
		CastleDirectionWhiteRight,
		CastleDirectionWhiteLeft,
		CastleDirectionBlackRight,
		CastleDirectionBlackLeft,
	} {
		maskCastlePermission[posCastling[d][PieceKing][0]] &^= maskCastleRights[d]
		maskCastlePermission[posCastling[d][PieceRook][0]] &^= maskCastleRights[d]
		king, rook := posCastling[d][PieceKing][0], posCastling[d][PieceRook][0]
		maskCastlingPath[d] = maskBetween[king][rook]
	}
}

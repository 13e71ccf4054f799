package board

import "github.com/daystram/kestrel/position"

type CastleDirection uint8

const (
	CastleDirectionUnknown CastleDirection = iota
	CastleDirectionWhiteRight
	CastleDirectionWhiteLeft
	CastleDirectionBlackRight
	CastleDirectionBlackLeft
)

var castleDirections = [2 + 1][2]CastleDirection{
	SideWhite: {CastleDirectionWhiteRight, CastleDirectionWhiteLeft},
	SideBlack: {CastleDirectionBlackRight, CastleDirectionBlackLeft},
}

func (d CastleDirection) String() string {
	switch d {
	case CastleDirectionWhiteRight:
		return "White 0-0"
	case CastleDirectionWhiteLeft:
		return "White 0-0-0"
	case CastleDirectionBlackRight:
		return "Black 0-0"
	case CastleDirectionBlackLeft:
		return "Black 0-0-0"
	default:
		return ""
	}
}

func (d CastleDirection) IsWhite() bool {
	return d == CastleDirectionWhiteRight || d == CastleDirectionWhiteLeft
}

func (d CastleDirection) IsRight() bool {
	return d == CastleDirectionWhiteRight || d == CastleDirectionBlackRight
}

// castleDirectionByKingTarget resolves the castling direction from the
// king's destination cell.
func castleDirectionByKingTarget(to position.Pos) CastleDirection {
	switch to {
	case position.G1:
		return CastleDirectionWhiteRight
	case position.C1:
		return CastleDirectionWhiteLeft
	case position.G8:
		return CastleDirectionBlackRight
	case position.C8:
		return CastleDirectionBlackLeft
	default:
		return CastleDirectionUnknown
	}
}

// CastleRights is the 4-bit set of castling permissions, White king-side in
// the most significant bit.
type CastleRights uint8

const CastleRightsAll CastleRights = 0b1111

func (c *CastleRights) Set(d CastleDirection, allow bool) {
	if allow {
		*c |= maskCastleRights[d]
	} else {
		*c &^= maskCastleRights[d]
	}
}

func (c CastleRights) IsAllowed(d CastleDirection) bool {
	return c&maskCastleRights[d] != 0
}

func (c CastleRights) IsSideAllowed(s Side) bool {
	if s == SideWhite {
		return c&(maskCastleRights[CastleDirectionWhiteLeft]|maskCastleRights[CastleDirectionWhiteRight]) != 0
	}
	return c&(maskCastleRights[CastleDirectionBlackLeft]|maskCastleRights[CastleDirectionBlackRight]) != 0
}

// String formats the rights the way FEN does, e.g. "KQkq" or "-".
func (c CastleRights) String() string {
	if c == 0 {
		return "-"
	}
	s := ""
	if c.IsAllowed(CastleDirectionWhiteRight) {
		s += "K"
	}
	if c.IsAllowed(CastleDirectionWhiteLeft) {
		s += "Q"
	}
	if c.IsAllowed(CastleDirectionBlackRight) {
		s += "k"
	}
	if c.IsAllowed(CastleDirectionBlackLeft) {
		s += "q"
	}
	return s
}

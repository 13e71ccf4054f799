package board

import "github.com/daystram/kestrel/position"

type Side uint8

const (
	SideUnknown Side = iota
	SideWhite
	SideBlack
)

// Sides lists both playing sides, White first.
var Sides = [2]Side{SideWhite, SideBlack}

func (s Side) String() string {
	switch s {
	case SideWhite:
		return "White"
	case SideBlack:
		return "Black"
	default:
		return ""
	}
}

func (s Side) Opposite() Side {
	switch s {
	case SideWhite:
		return SideBlack
	case SideBlack:
		return SideWhite
	default:
		return SideUnknown
	}
}

// Forward is the square offset of a single pawn push for the side.
func (s Side) Forward() position.Pos {
	if s == SideBlack {
		return -Width
	}
	return Width
}

// PawnStartRank is the rank pawns of the side double-push from.
func (s Side) PawnStartRank() position.Pos {
	if s == SideBlack {
		return position.Rank7
	}
	return position.Rank2
}

// PromotionRank is the rank pawns of the side promote on.
func (s Side) PromotionRank() position.Pos {
	if s == SideBlack {
		return position.Rank1
	}
	return position.Rank8
}

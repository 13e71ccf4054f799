package bench

import (
	"fmt"

	"github.com/dylhunn/dragontoothmg"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/daystram/kestrel/board"
)

// Mismatch is a root move whose subtree size differs between kestrel and
// the reference generator. A count of zero means the move is missing on
// that side.
type Mismatch struct {
	Move      string
	Got       uint64
	Reference uint64
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: got=%d want=%d", m.Move, m.Got, m.Reference)
}

// Verify compares the divide of fen at depth against dragontoothmg and
// returns every differing root move, sorted.
func Verify(fen string, depth int) ([]Mismatch, error) {
	b, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		return nil, err
	}
	got := Divide(b, depth)

	ref := dragontoothmg.ParseFen(fen)
	want := referenceDivide(&ref, depth)

	keys := maps.Keys(got)
	for k := range want {
		if _, ok := got[k]; !ok {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	var mismatches []Mismatch
	for _, k := range keys {
		if got[k] != want[k] {
			mismatches = append(mismatches, Mismatch{Move: k, Got: got[k], Reference: want[k]})
		}
	}
	return mismatches, nil
}

func referenceDivide(b *dragontoothmg.Board, depth int) map[string]uint64 {
	div := make(map[string]uint64)
	if depth == 0 {
		return div
	}
	for _, mv := range b.GenerateLegalMoves() {
		unapply := b.Apply(mv)
		div[mv.String()] = referencePerft(b, depth-1)
		unapply()
	}
	return div
}

func referencePerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	mvs := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(mvs))
	}
	var nodes uint64
	for _, mv := range mvs {
		unapply := b.Apply(mv)
		nodes += referencePerft(b, depth-1)
		unapply()
	}
	return nodes
}

package main

import (
	"fmt"
	"log"
	"time"

	"github.com/daystram/kestrel/board"
)

func step(fen string, count int, seed uint64) error {
	log.Println("============ step")
	var (
		timesGenerateMoves []time.Duration
		timesApply         []time.Duration
		timesState         []time.Duration
	)
	b, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		return err
	}
	if err := walk(b, count, board.NewPseudoRand(seed), func(mv board.Move, genmv, apply, state time.Duration) {
		timesGenerateMoves = append(timesGenerateMoves, genmv)
		timesApply = append(timesApply, apply)
		timesState = append(timesState, state)

		fmt.Printf("\n===== [#%d] %s: %s\n", b.FullMoveClock(), b.Turn().Opposite(), mv)
		fmt.Println(b.Draw())
		fmt.Println(b.FEN())
		fmt.Println(b.DebugString())
	}); err != nil {
		return err
	}

	avg := func(ds []time.Duration) time.Duration {
		if len(ds) == 0 {
			return 0
		}
		var s time.Duration
		for _, d := range ds {
			s += d
		}
		return s / time.Duration(len(ds))
	}

	fmt.Println()
	fmt.Println(b.State())
	fmt.Println("genmv:", avg(timesGenerateMoves))
	fmt.Println("apply:", avg(timesApply))
	fmt.Println("state:", avg(timesState))
	return nil
}

type stepFunc func(mv board.Move, genmv, apply, state time.Duration)

// walk plays random legal moves until the game ends or count plies are made,
// validating the board after every ply.
func walk(b *board.Board, count int, rng *board.PseudoRand, f stepFunc) error {
	for i := 0; i < count; i++ {
		t1 := time.Now()
		mvs := b.GenerateLegalMoves()
		genmv := time.Since(t1)
		if len(mvs) == 0 {
			return nil
		}
		mv := mvs[rng.Uint64()%uint64(len(mvs))]

		t1 = time.Now()
		if err := b.Apply(mv); err != nil {
			return fmt.Errorf("apply %s: %w", mv, err)
		}
		apply := time.Since(t1)
		if err := b.Validate(); err != nil {
			return fmt.Errorf("after %s: %w", mv, err)
		}

		t1 = time.Now()
		st := b.State()
		state := time.Since(t1)

		if f != nil {
			f(mv, genmv, apply, state)
		}
		if !st.IsRunning() {
			return nil
		}
	}
	return nil
}

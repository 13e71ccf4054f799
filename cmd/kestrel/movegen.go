package main

import (
	"fmt"
	"log"
	"strconv"

	"github.com/daystram/kestrel/board"
)

func movegen(fen string, draw bool) error {
	log.Println("============ movegen")
	b, err := board.NewBoard(board.WithFEN(fen), board.WithDebug(true))
	if err != nil {
		return err
	}
	fmt.Println("to move:", b.Turn())
	fmt.Println(b.Dump())
	fmt.Println(b.Draw())
	fmt.Println(b.State())
	dumpMoves(b)

	if draw {
		for _, mv := range b.GenerateLegalMoves() {
			if err := b.Apply(mv); err != nil {
				return err
			}
			fmt.Println(mv)
			fmt.Println(b.Draw())
			fmt.Println(b.FEN())
			b.Revert()
		}
	}
	return nil
}

func dumpMoves(b *board.Board) {
	mvs := b.GenerateLegalMoves()
	for i, mv := range mvs {
		fmt.Printf("option %*d: [%s] %s %s => %s (score=%d)\n",
			len(strconv.Itoa(len(mvs))), i+1, mv.UCI(), b.CellAt(mv.From()), mv.From(), mv.To(), mv.Score)
		fmt.Println("  ", mv.DebugString())
	}
}

package main

import (
	"bufio"
	"log"
	"os"

	"github.com/daystram/kestrel/board"
	kestrelrender "github.com/daystram/kestrel/render"
)

func render(fen, path string) error {
	b, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := kestrelrender.SVG(w, b, kestrelrender.WithCoordinates(true)); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}
	log.Printf("rendered %s\n", path)
	return f.Close()
}

package main

import (
	"fmt"
	"log"

	"github.com/fatih/color"

	"github.com/daystram/kestrel/bench"
	"github.com/daystram/kestrel/storage"
)

type perftOptions struct {
	fen      string
	depth    int
	parallel bool
	divide   bool
	verify   bool
	cacheDir string
}

func perft(opts perftOptions) error {
	log.Printf("============ perft(%d)\n", opts.depth)
	if opts.verify {
		return verify(opts.fen, opts.depth)
	}

	cfg := bench.Config{
		FEN:      opts.fen,
		Depth:    opts.depth,
		Parallel: opts.parallel,
		Verbose:  opts.divide,
	}
	if opts.cacheDir != "" {
		cache, err := storage.NewPerftCache(storage.WithDir(opts.cacheDir))
		if err != nil {
			return err
		}
		defer cache.Close()
		cfg.Cache = cache
	}

	out := make(chan string)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for line := range out {
			log.Println(line)
		}
	}()
	_, err := bench.Run(cfg, out)
	close(out)
	<-done
	return err
}

func verify(fen string, depth int) error {
	mismatches, err := bench.Verify(fen, depth)
	if err != nil {
		return err
	}
	if len(mismatches) == 0 {
		fmt.Println(color.GreenString("OK"), fmt.Sprintf("divide(%d) matches reference", depth))
		return nil
	}
	for _, m := range mismatches {
		fmt.Println(color.RedString("MISMATCH"), m)
	}
	return fmt.Errorf("divide(%d): %d mismatched root moves", depth, len(mismatches))
}

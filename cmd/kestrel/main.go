package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"strings"

	"github.com/daystram/kestrel/board"
	"github.com/daystram/kestrel/storage"
	"github.com/daystram/kestrel/uci"
)

const (
	exitOK  = 0
	exitErr = 1
)

var (
	profile = flag.Bool("profile", false, "serve pprof endpoint")

	movegenRun  = flag.Bool("movegen", false, "run movegen mode")
	movegenDraw = flag.Bool("movegen.draw", false, "draw applied moves in movegen mode")

	stepRun   = flag.Bool("step", false, "run step mode")
	stepCount = flag.Int("step.count", 500, "maximum random plies in step mode")
	stepSeed  = flag.Uint64("step.seed", 1, "random seed in step mode")

	perftRun      = flag.Bool("perft", false, "run perft mode")
	perftDepth    = flag.Int("perft.depth", 4, "perft depth")
	perftParallel = flag.Bool("perft.parallel", false, "split perft root moves over goroutines")
	perftDivide   = flag.Bool("perft.divide", false, "print node counts per root move")
	perftVerify   = flag.Bool("perft.verify", false, "compare the divide against a reference move generator")

	cacheDir = flag.String("cache", "", "perft cache directory, in-memory when empty")

	svgOut = flag.String("svg", "", "render the position as SVG to this file")
)

func main() {
	flag.Parse()

	if *profile {
		runProfiler()
	}

	err := realMain(flag.Args())
	if err != nil {
		log.Println(err)
		os.Exit(exitErr)
	}
	os.Exit(exitOK)
}

func runProfiler() {
	go func() {
		addr := "localhost:6060"
		log.Printf("starting pprof endpoint: http://%s/debug/pprof\n", addr)
		_ = http.ListenAndServe(addr, nil)
	}()
}

func realMain(args []string) error {
	fen := board.DefaultStartingPositionFEN
	if len(args) > 0 {
		fen = strings.Join(args, " ")
	}
	switch {
	case *movegenRun:
		return movegen(fen, *movegenDraw)
	case *stepRun:
		return step(fen, *stepCount, *stepSeed)
	case *perftRun:
		return perft(perftOptions{
			fen:      fen,
			depth:    *perftDepth,
			parallel: *perftParallel,
			divide:   *perftDivide,
			verify:   *perftVerify,
			cacheDir: *cacheDir,
		})
	case *svgOut != "":
		return render(fen, *svgOut)
	}
	return runUCI()
}

func runUCI() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	opts := []uci.InterfaceOption{uci.WithLogger(log.Println)}
	if *cacheDir != "" {
		cache, err := storage.NewPerftCache(storage.WithDir(*cacheDir))
		if err != nil {
			return err
		}
		defer cache.Close()
		opts = append(opts, uci.WithNodeCache(cache))
	}
	return uci.NewInterface(os.Stdin, os.Stdout, opts...).Run(ctx)
}

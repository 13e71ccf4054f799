package uci

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/daystram/kestrel/bench"
	"github.com/daystram/kestrel/board"
)

var (
	EngineName   = "Kestrel"
	EngineAuthor = "Danny August Ramaputra"

	defaultOptions = options{
		debug:         false,
		parallelPerft: true,
	}
)

type options struct {
	debug         bool
	parallelPerft bool
}

// Interface speaks the subset of UCI needed to set up positions and count
// nodes. There is no search behind it.
type Interface struct {
	in      io.Reader
	out     io.Writer
	board   *board.Board
	options options
	cache   bench.NodeCache
	logger  func(...any)
}

type InterfaceOption func(*Interface)

// WithNodeCache makes "go perft" reuse and fill the cache.
func WithNodeCache(cache bench.NodeCache) InterfaceOption {
	return func(i *Interface) {
		i.cache = cache
	}
}

// WithLogger receives diagnostics that are not part of the protocol stream.
func WithLogger(logger func(...any)) InterfaceOption {
	return func(i *Interface) {
		i.logger = logger
	}
}

func NewInterface(in io.Reader, out io.Writer, opts ...InterfaceOption) *Interface {
	i := &Interface{
		in:      in,
		out:     out,
		options: defaultOptions,
		logger:  func(...any) {},
	}
	for _, f := range opts {
		f(i)
	}
	return i
}

// Run processes commands until "quit" or the end of input.
func (i *Interface) Run(ctx context.Context) error {
	i.reset(ctx)

	scanner := bufio.NewScanner(i.in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		args := strings.Fields(scanner.Text())
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "uci":
			i.commandUCI(ctx)
		case "ucinewgame":
			i.reset(ctx)
		case "isready":
			i.commandReady(ctx)
		case "setoption":
			i.commandSetOption(ctx, args[1:])
		case "position":
			i.commandPosition(ctx, args[1:])
		case "d":
			i.commandDraw(ctx)
		case "moves":
			i.commandMoves(ctx)
		case "go":
			i.commandGo(ctx, args[1:])
		case "quit":
			return nil
		default:
			i.println(fmt.Sprintf("info string unknown command: %s", args[0]))
		}
	}
	return scanner.Err()
}

func (i *Interface) commandUCI(_ context.Context) {
	i.println(fmt.Sprintf("id name %s", EngineName))
	i.println(fmt.Sprintf("id author %s", EngineAuthor))
	i.println(fmt.Sprintf("option name Debug type check default %v", defaultOptions.debug))
	i.println(fmt.Sprintf("option name ParallelPerft type check default %v", defaultOptions.parallelPerft))
	i.println("uciok")
}

func (i *Interface) commandReady(_ context.Context) {
	if i.board != nil {
		i.println("readyok")
	}
}

func (i *Interface) commandSetOption(ctx context.Context, args []string) {
	if len(args) < 4 || args[0] != "name" || args[2] != "value" {
		return
	}
	switch name, valueStr := strings.ToLower(args[1]), args[3]; name {
	case "debug":
		value, err := strconv.ParseBool(valueStr)
		if err != nil {
			return
		}
		i.options.debug = value
		if i.board != nil {
			i.commandPosition(ctx, append([]string{"fen"}, strings.Fields(i.board.FEN())...))
		}
	case "parallelperft":
		value, err := strconv.ParseBool(valueStr)
		if err != nil {
			return
		}
		i.options.parallelPerft = value
	}
}

// commandPosition handles "position [startpos | fen <fen>] [moves <m1> ...]".
// The current position is kept when anything fails to parse or apply.
func (i *Interface) commandPosition(_ context.Context, args []string) {
	if len(args) == 0 {
		return
	}

	var fen string
	var moves []string
	switch args[0] {
	case "startpos":
		fen = board.DefaultStartingPositionFEN
		args = args[1:]
	case "fen":
		end := len(args)
		for k, arg := range args {
			if arg == "moves" {
				end = k
				break
			}
		}
		fields := args[1:end:end]
		switch len(fields) {
		case 4:
			fields = append(fields, "0", "1")
		case 5:
			fields = append(fields, "1")
		}
		fen = strings.Join(fields, " ")
		args = args[end:]
	default:
		return
	}
	if len(args) > 0 && args[0] == "moves" {
		moves = args[1:]
	}

	b, err := board.NewBoard(board.WithFEN(fen), board.WithDebug(i.options.debug))
	if err != nil {
		i.logger("position rejected:", err)
		i.println(fmt.Sprintf("info string %v", err))
		return
	}
	for _, text := range moves {
		if err := applyText(b, text); err != nil {
			i.logger("position rejected at", text+":", err)
			i.println(fmt.Sprintf("info string %v", err))
			return
		}
	}
	i.board = b
}

func applyText(b *board.Board, text string) error {
	mv, err := b.ParseMove(text)
	if err != nil {
		return err
	}
	return b.Apply(mv)
}

func (i *Interface) commandDraw(_ context.Context) {
	i.println(i.board.Draw())
	i.println(fmt.Sprintf("Fen: %s", i.board.FEN()))
	i.println(fmt.Sprintf("Key: %016X", i.board.Hash()))
	i.println(fmt.Sprintf("State: %s", i.board.State()))
}

func (i *Interface) commandMoves(_ context.Context) {
	var texts []string
	for _, mv := range i.board.GenerateLegalMoves() {
		texts = append(texts, mv.UCI())
	}
	i.println(fmt.Sprintf("info string moves %s", strings.Join(texts, " ")))
}

func (i *Interface) commandGo(_ context.Context, args []string) {
	if len(args) == 0 || args[0] != "perft" {
		i.println("info string search is not supported")
		i.println("bestmove 0000")
		return
	}
	if len(args) != 2 {
		return
	}
	depth, err := strconv.Atoi(args[1])
	if err != nil || depth < 0 {
		return
	}

	i.logger(fmt.Sprintf("perft(%d) started: parallel=%v cached=%v", depth, i.options.parallelPerft, i.cache != nil))
	out := make(chan string, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for s := range out {
			i.println(s)
		}
	}()

	_, err = bench.Run(bench.Config{
		FEN:      i.board.FEN(),
		Depth:    depth,
		Parallel: i.options.parallelPerft,
		Verbose:  true,
		Cache:    i.cache,
	}, out)
	close(out)
	<-done
	if err != nil {
		i.println(fmt.Sprintf("info string %v", err))
	}
}

func (i *Interface) reset(ctx context.Context) {
	i.commandPosition(ctx, []string{"startpos"})
}

func (i *Interface) println(a ...any) {
	fmt.Fprintln(i.out, a...)
}

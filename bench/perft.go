package bench

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/daystram/kestrel/board"
	"github.com/daystram/kestrel/storage"
)

// Stats tallies a perft run. Move kinds are counted on the last ply only.
type Stats struct {
	Nodes      uint64
	Captures   uint64
	EnPassants uint64
	Castles    uint64
	Promotions uint64
	Checks     uint64
}

func (s *Stats) add(o Stats) {
	atomic.AddUint64(&s.Nodes, o.Nodes)
	atomic.AddUint64(&s.Captures, o.Captures)
	atomic.AddUint64(&s.EnPassants, o.EnPassants)
	atomic.AddUint64(&s.Castles, o.Castles)
	atomic.AddUint64(&s.Promotions, o.Promotions)
	atomic.AddUint64(&s.Checks, o.Checks)
}

// NodeCache stores node counts by position hash and depth. A miss is
// reported with an error wrapping storage.ErrCacheMiss.
type NodeCache interface {
	Get(hash uint64, depth int) (uint64, error)
	Put(hash uint64, depth int, nodes uint64) error
}

type Config struct {
	FEN      string
	Depth    int
	Parallel bool
	Verbose  bool
	Cache    NodeCache
}

// Run loads the configured position and runs perft on it, streaming the
// per-move divide lines and a final summary to out.
func Run(cfg Config, out chan<- string) (Stats, error) {
	b, err := board.NewBoard(board.WithFEN(cfg.FEN))
	if err != nil {
		return Stats{}, err
	}

	start := time.Now()
	var (
		stats Stats
		div   map[string]uint64
	)
	switch {
	case cfg.Cache != nil && cfg.Verbose:
		div, stats.Nodes, err = divideCached(b, cfg.Depth, cfg.Cache)
	case cfg.Cache != nil:
		stats.Nodes, err = PerftCached(b, cfg.Depth, cfg.Cache)
	default:
		stats, div = perftRoots(b, cfg.Depth, cfg.Parallel)
	}
	if err != nil {
		return Stats{}, err
	}
	if cfg.Verbose {
		for _, line := range DivideReport(div) {
			out <- line
		}
	}
	out <- Report(cfg.Depth, stats, time.Since(start))
	return stats, nil
}

// Report formats a perft summary with thousand separators.
func Report(depth int, stats Stats, elapsed time.Duration) string {
	rate := 0
	if elapsed > 0 {
		rate = int(float64(stats.Nodes) / elapsed.Seconds())
	}
	return message.NewPrinter(language.English).
		Sprintf("d=%d nodes=%d rate=%dn/s cap=%d enp=%d cas=%d pro=%d chk=%d (%.3fs elapsed)",
			depth, stats.Nodes, rate, stats.Captures, stats.EnPassants, stats.Castles, stats.Promotions, stats.Checks, elapsed.Seconds())
}

// Perft walks every legal line to depth plies.
func Perft(b *board.Board, depth int) Stats {
	var stats Stats
	runPerft(b, depth, &stats)
	return stats
}

func runPerft(b *board.Board, d int, stats *Stats) {
	if d == 0 {
		stats.Nodes++
		return
	}

	var ml board.MoveList
	b.GenerateMoves(&ml, false)
	for _, mv := range ml.Moves() {
		if b.Apply(mv) != nil {
			continue
		}
		if d == 1 {
			stats.Nodes++
			countLeaf(b, mv, stats)
		} else {
			runPerft(b, d-1, stats)
		}
		b.Revert()
	}
}

// countLeaf classifies a move that was just applied.
func countLeaf(b *board.Board, mv board.Move, stats *Stats) {
	if mv.IsCapture() {
		stats.Captures++
	}
	if mv.IsEnPassant() {
		stats.EnPassants++
	}
	if mv.IsCastle() {
		stats.Castles++
	}
	if mv.IsPromote() {
		stats.Promotions++
	}
	if b.IsKingChecked(b.Turn()) {
		stats.Checks++
	}
}

// PerftParallel splits the root moves over goroutines, each walking its own
// clone of the board.
func PerftParallel(b *board.Board, depth int) Stats {
	stats, _ := perftRoots(b, depth, true)
	return stats
}

// Divide returns the node count below every legal root move, keyed by the
// move in long algebraic notation.
func Divide(b *board.Board, depth int) map[string]uint64 {
	_, div := perftRoots(b, depth, false)
	return div
}

// perftRoots runs perft below every legal root move, on clones in their own
// goroutines when parallel is set, and returns the totals with the divide.
func perftRoots(b *board.Board, depth int, parallel bool) (Stats, map[string]uint64) {
	div := make(map[string]uint64)
	if depth == 0 {
		return Stats{Nodes: 1}, div
	}

	var (
		stats Stats
		mu    sync.Mutex
		wg    sync.WaitGroup
	)
	for _, mv := range b.GenerateLegalMoves() {
		mv := mv
		count := func(bb *board.Board) {
			var child Stats
			_ = bb.Apply(mv)
			if depth == 1 {
				child.Nodes = 1
				countLeaf(bb, mv, &child)
			} else {
				runPerft(bb, depth-1, &child)
			}
			bb.Revert()

			stats.add(child)
			mu.Lock()
			div[mv.UCI()] = child.Nodes
			mu.Unlock()
		}
		if !parallel {
			count(b)
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			count(b.Clone())
		}()
	}
	wg.Wait()
	return stats, div
}

// DivideReport formats a divide result, one "move: nodes" line per root
// move in lexical order.
func DivideReport(div map[string]uint64) []string {
	keys := maps.Keys(div)
	slices.Sort(keys)
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %d", k, div[k]))
	}
	return lines
}

// divideCached is Divide over PerftCached.
func divideCached(b *board.Board, depth int, cache NodeCache) (map[string]uint64, uint64, error) {
	div := make(map[string]uint64)
	if depth == 0 {
		return div, 1, nil
	}
	var total uint64
	for _, mv := range b.GenerateLegalMoves() {
		_ = b.Apply(mv)
		nodes, err := PerftCached(b, depth-1, cache)
		b.Revert()
		if err != nil {
			return nil, 0, err
		}
		div[mv.UCI()] = nodes
		total += nodes
	}
	return div, total, nil
}

// PerftCached counts nodes like Perft, reusing and filling the cache for
// every subtree two plies deep or more.
func PerftCached(b *board.Board, depth int, cache NodeCache) (uint64, error) {
	if depth == 0 {
		return 1, nil
	}
	if depth >= 2 {
		nodes, err := cache.Get(b.Hash(), depth)
		if err == nil {
			return nodes, nil
		}
		if !errors.Is(err, storage.ErrCacheMiss) {
			return 0, err
		}
	}

	var nodes uint64
	var ml board.MoveList
	b.GenerateMoves(&ml, false)
	for _, mv := range ml.Moves() {
		if b.Apply(mv) != nil {
			continue
		}
		child, err := PerftCached(b, depth-1, cache)
		b.Revert()
		if err != nil {
			return 0, err
		}
		nodes += child
	}

	if depth >= 2 {
		if err := cache.Put(b.Hash(), depth, nodes); err != nil {
			return 0, err
		}
	}
	return nodes, nil
}

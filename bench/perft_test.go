package bench

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/daystram/kestrel/board"
	"github.com/daystram/kestrel/storage"
)

const fenKiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

func TestPerft(t *testing.T) {
	t.Parallel()

	// Results obtained from https://www.chessprogramming.org/Perft_Results.
	tests := map[string][]struct {
		depth     int
		wantNodes uint64
		onlyNodes bool
		wantCap   uint64
		wantEnp   uint64
		wantCas   uint64
		wantPro   uint64
		wantChk   uint64
	}{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1": {
			{
				depth:     0,
				wantNodes: 1,
			},
			{
				depth:     1,
				wantNodes: 20,
			},
			{
				depth:     2,
				wantNodes: 400,
			},
			{
				depth:     3,
				wantNodes: 8_902,
				wantCap:   34,
				wantChk:   12,
			},
			{
				depth:     4,
				wantNodes: 197_281,
				wantCap:   1_576,
				wantChk:   469,
			},
		},
		fenKiwipete: {
			{
				depth:     1,
				wantNodes: 48,
				wantCap:   8,
				wantCas:   2,
			},
			{
				depth:     2,
				wantNodes: 2_039,
				wantCap:   351,
				wantEnp:   1,
				wantCas:   91,
				wantChk:   3,
			},
			{
				depth:     3,
				wantNodes: 97_862,
				wantCap:   17_102,
				wantEnp:   45,
				wantCas:   3_162,
				wantChk:   993,
			},
		},
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1": {
			{
				depth:     2,
				wantNodes: 191,
				wantCap:   14,
				wantChk:   10,
			},
			{
				depth:     3,
				wantNodes: 2_812,
				wantCap:   209,
				wantEnp:   2,
				wantChk:   267,
			},
			{
				depth:     4,
				wantNodes: 43_238,
				wantCap:   3_348,
				wantEnp:   123,
				wantChk:   1_680,
			},
		},
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1": {
			{
				depth:     2,
				wantNodes: 264,
				wantCap:   87,
				wantCas:   6,
				wantPro:   48,
				wantChk:   10,
			},
			{
				depth:     3,
				wantNodes: 9_467,
				wantCap:   1_021,
				wantEnp:   4,
				wantPro:   120,
				wantChk:   38,
			},
		},
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8": {
			{
				depth:     1,
				wantNodes: 44,
				onlyNodes: true,
			},
			{
				depth:     2,
				wantNodes: 1_486,
				onlyNodes: true,
			},
			{
				depth:     3,
				wantNodes: 62_379,
				onlyNodes: true,
			},
		},
	}

	for fen, constraints := range tests {
		for _, tt := range constraints {
			fen, tt := fen, tt
			t.Run(fmt.Sprintf("perft(%d): %s", tt.depth, fen), func(t *testing.T) {
				t.Parallel()

				b, err := board.NewBoard(
					board.WithFEN(fen),
				)
				if err != nil {
					t.Fatal("unexpected error:", err)
				}

				for name, stats := range map[string]Stats{
					"serial":   Perft(b, tt.depth),
					"parallel": PerftParallel(b, tt.depth),
				} {
					if stats.Nodes != tt.wantNodes {
						t.Errorf("%s: unexpected nodes: got=%d want=%d", name, stats.Nodes, tt.wantNodes)
					}
					if tt.onlyNodes {
						continue
					}
					if stats.Captures != tt.wantCap {
						t.Errorf("%s: unexpected cap: got=%d want=%d", name, stats.Captures, tt.wantCap)
					}
					if stats.EnPassants != tt.wantEnp {
						t.Errorf("%s: unexpected enp: got=%d want=%d", name, stats.EnPassants, tt.wantEnp)
					}
					if stats.Castles != tt.wantCas {
						t.Errorf("%s: unexpected cas: got=%d want=%d", name, stats.Castles, tt.wantCas)
					}
					if stats.Promotions != tt.wantPro {
						t.Errorf("%s: unexpected pro: got=%d want=%d", name, stats.Promotions, tt.wantPro)
					}
					if stats.Checks != tt.wantChk {
						t.Errorf("%s: unexpected chk: got=%d want=%d", name, stats.Checks, tt.wantChk)
					}
				}

				if gotFEN := b.FEN(); gotFEN != fen {
					t.Errorf("unexpected FEN after perft: got=%s want=%s", gotFEN, fen)
				}
			})
		}
	}
}

func TestDivide(t *testing.T) {
	t.Parallel()

	b, err := board.NewBoard(board.WithFEN(fenKiwipete))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	div := Divide(b, 2)
	if len(div) != 48 {
		t.Errorf("unexpected root moves: got=%d want=48", len(div))
	}
	var sum uint64
	for _, nodes := range div {
		sum += nodes
	}
	if sum != 2_039 {
		t.Errorf("unexpected divide sum: got=%d want=2039", sum)
	}

	lines := DivideReport(div)
	for i := 1; i < len(lines); i++ {
		if lines[i-1] >= lines[i] {
			t.Errorf("unexpected order: %q before %q", lines[i-1], lines[i])
		}
	}
	if len(lines) == 0 || !strings.HasPrefix(lines[0], "a1b1: ") {
		t.Errorf("unexpected first line: %v", lines)
	}
}

func TestVerify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		fen   string
		depth int
	}{
		{fen: board.DefaultStartingPositionFEN, depth: 3},
		{fen: fenKiwipete, depth: 2},
		{fen: "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", depth: 3},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.fen, func(t *testing.T) {
			t.Parallel()

			mismatches, err := Verify(tt.fen, tt.depth)
			if err != nil {
				t.Fatal("unexpected error:", err)
			}
			for _, m := range mismatches {
				t.Errorf("unexpected mismatch: %s", m)
			}
		})
	}

	if _, err := Verify("invalid fen", 1); err == nil {
		t.Error("error expected: got=nil")
	}
}

// mapCache is an in-process NodeCache.
type mapCache struct {
	mu    sync.Mutex
	nodes map[string]uint64
	hits  int
}

func (c *mapCache) key(hash uint64, depth int) string {
	return fmt.Sprintf("%016x/%d", hash, depth)
}

func (c *mapCache) Get(hash uint64, depth int) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	nodes, ok := c.nodes[c.key(hash, depth)]
	if !ok {
		return 0, storage.ErrCacheMiss
	}
	c.hits++
	return nodes, nil
}

func (c *mapCache) Put(hash uint64, depth int, nodes uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nodes[c.key(hash, depth)] = nodes
	return nil
}

func TestPerftCached(t *testing.T) {
	t.Parallel()

	cache := &mapCache{nodes: make(map[string]uint64)}
	b, err := board.NewBoard()
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	for i := 0; i < 2; i++ {
		nodes, err := PerftCached(b, 4, cache)
		if err != nil {
			t.Fatal("unexpected error:", err)
		}
		if nodes != 197_281 {
			t.Errorf("unexpected nodes: got=%d want=197281", nodes)
		}
	}
	if cache.hits == 0 {
		t.Error("cache never hit")
	}
}

func TestRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "serial", cfg: Config{FEN: board.DefaultStartingPositionFEN, Depth: 2, Verbose: true}},
		{name: "parallel", cfg: Config{FEN: board.DefaultStartingPositionFEN, Depth: 2, Verbose: true, Parallel: true}},
		{name: "cached", cfg: Config{FEN: board.DefaultStartingPositionFEN, Depth: 2, Verbose: true, Cache: &mapCache{nodes: make(map[string]uint64)}}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := make(chan string, 64)
			stats, err := Run(tt.cfg, out)
			if err != nil {
				t.Fatal("unexpected error:", err)
			}
			close(out)
			if stats.Nodes != 400 {
				t.Errorf("unexpected nodes: got=%d want=400", stats.Nodes)
			}
			var lines []string
			for line := range out {
				lines = append(lines, line)
			}
			if len(lines) != 21 {
				t.Fatalf("unexpected line count: got=%d want=21", len(lines))
			}
			if want := "a2a3: 20"; lines[0] != want {
				t.Errorf("unexpected first divide line: got=%q want=%q", lines[0], want)
			}
			if want := "d=2 nodes=400 "; !strings.HasPrefix(lines[20], want) {
				t.Errorf("unexpected summary: got=%q want prefix %q", lines[20], want)
			}
		})
	}

	if _, err := Run(Config{FEN: "invalid fen", Depth: 1}, make(chan string, 1)); err == nil {
		t.Error("error expected: got=nil")
	}
}

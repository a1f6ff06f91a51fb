// Command perft walks the legal move tree of a position and counts leaf
// nodes, the standard way to validate a move generator. It can run a single
// position, the built-in calibration suite, or a TOML suite file, and can
// keep results in a persistent cache between runs.
package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/profile"

	"github.com/hailam/movegen/board"
	"github.com/hailam/movegen/internal/logging"
	"github.com/hailam/movegen/internal/storage"
)

var log = logging.GetLog("perft")

// TestPosition is one suite entry: a position, a depth, and the node count
// a correct generator must produce.
type TestPosition struct {
	FEN   string `toml:"fen"`
	Depth int    `toml:"depth"`
	Nodes uint64 `toml:"nodes"`
}

// Suite is the TOML suite file layout.
type Suite struct {
	Position []TestPosition `toml:"position"`
}

// defaultSuite holds the standard calibration positions: castling through
// check, en passant discovered-check pins, promotion variants and double
// check all appear in the tree of at least one entry.
var defaultSuite = []TestPosition{
	{FEN: board.StartFEN, Depth: 6, Nodes: 119060324},
	{FEN: "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", Depth: 5, Nodes: 193690690},
	{FEN: "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", Depth: 6, Nodes: 11030083},
	{FEN: "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", Depth: 5, Nodes: 15833292},
	{FEN: "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", Depth: 5, Nodes: 89941194},
	{FEN: "8/5bk1/8/2Pp4/8/1K6/8/8 w - d6 0 1", Depth: 6, Nodes: 824064},
}

func perft(p *board.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	var nodes uint64
	p.EnumerateMoves(board.AllMoves, func(m board.Move) bool {
		if depth == 1 {
			nodes++
			return true
		}
		next := p.MakeMove(m)
		nodes += perft(&next, depth-1)
		return true
	})
	return nodes
}

// divide prints the node count below every root move, the usual way to
// bisect a generator bug against a known-good engine.
func divide(p *board.Position, depth int) uint64 {
	var total uint64
	p.EnumerateMoves(board.AllMoves, func(m board.Move) bool {
		next := p.MakeMove(m)
		nodes := uint64(1)
		if depth > 1 {
			nodes = perft(&next, depth-1)
		}
		fmt.Printf("%s: %d\n", m, nodes)
		total += nodes
		return true
	})
	return total
}

func runOne(pos *board.Position, depth int, div bool, cache *storage.Cache) uint64 {
	if cache != nil && !div {
		if entry, ok, err := cache.Get(pos.Hash, depth); err != nil {
			log.Warningf("cache read failed: %v", err)
		} else if ok {
			log.Infof("cache hit: %d nodes (computed %s)", entry.Nodes, entry.ComputedAt.Format(time.RFC3339))
			return entry.Nodes
		}
	}

	start := time.Now()
	var nodes uint64
	if div {
		nodes = divide(pos, depth)
	} else {
		nodes = perft(pos, depth)
	}
	elapsed := time.Since(start)

	nps := float64(nodes) / elapsed.Seconds()
	log.Infof("%d nodes in %v -> %.0f nodes/s", nodes, elapsed, nps)

	if cache != nil && !div {
		err := cache.Put(&storage.Entry{
			Zobrist:    pos.Hash,
			Depth:      depth,
			Nodes:      nodes,
			ComputedAt: time.Now(),
			Elapsed:    elapsed,
		})
		if err != nil {
			log.Warningf("cache write failed: %v", err)
		}
	}

	return nodes
}

func main() {
	fen := flag.String("fen", "", "position to search (defaults to the built-in suite)")
	depth := flag.Int("depth", 5, "search depth in plies")
	div := flag.Bool("divide", false, "print per-move node counts at the root")
	suiteFile := flag.String("suite", "", "TOML suite file with positions and expected node counts")
	cacheDir := flag.String("cache", "", "directory for the persistent result cache")
	prof := flag.Bool("profile", false, "write a CPU profile")
	flag.Parse()

	if *prof {
		defer profile.Start(profile.ProfilePath(".")).Stop()
	}

	var cache *storage.Cache
	if *cacheDir != "" {
		var err error
		cache, err = storage.Open(*cacheDir)
		if err != nil {
			log.Fatalf("opening cache: %v", err)
		}
		defer cache.Close()
	}

	if *fen != "" {
		pos, err := board.ParseFEN(*fen)
		if err != nil {
			log.Fatalf("parsing fen: %v", err)
		}
		runOne(&pos, *depth, *div, cache)
		return
	}

	suite := defaultSuite
	if *suiteFile != "" {
		var s Suite
		if _, err := toml.DecodeFile(*suiteFile, &s); err != nil {
			log.Fatalf("reading suite: %v", err)
		}
		suite = s.Position
	}

	failed := 0
	for _, tp := range suite {
		pos, err := board.ParseFEN(tp.FEN)
		if err != nil {
			log.Fatalf("parsing fen %q: %v", tp.FEN, err)
		}

		log.Infof("%s depth %d", tp.FEN, tp.Depth)
		nodes := runOne(&pos, tp.Depth, false, cache)

		if tp.Nodes != 0 && nodes != tp.Nodes {
			log.Errorf("FAIL: got %d nodes, want %d", nodes, tp.Nodes)
			failed++
		}
	}

	if failed > 0 {
		log.Fatalf("%d of %d positions failed", failed, len(suite))
	}
	log.Infof("all %d positions passed", len(suite))
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"chesscore/chess"
	"golang.org/x/sync/errgroup"
)

func main() {
	fen := flag.String("fen", chess.StartFEN, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	pos, err := chess.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ParseFEN error: %v\n", err)
		os.Exit(2)
	}

	if *divide {
		div, err := divideConcurrent(pos, *depth)
		if err != nil {
			fmt.Fprintf(os.Stderr, "divide error: %v\n", err)
			os.Exit(1)
		}
		printDivide(div)
		return
	}

	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		totalNodes += chess.Perft(pos, *depth)
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)
}

// divideConcurrent computes PerftDivide's per-root-move subtree counts with
// one goroutine per root move, joined through an errgroup. No concurrency
// limit is set, every goroutine returns nil, and a panic in one subtree is
// not recovered.
func divideConcurrent(pos *chess.Position, depth int) (map[string]uint64, error) {
	roots := chess.GenerateLegalMoves(pos)
	out := make(map[string]uint64, len(roots))
	var mu sync.Mutex

	g, _ := errgroup.WithContext(context.Background())
	for _, m := range roots {
		m := m
		g.Go(func() error {
			child := pos.Clone()
			child.Apply(m)
			n := chess.Perft(child, depth-1)
			mu.Lock()
			out[m.String()] = n
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func printDivide(div map[string]uint64) {
	type kv struct {
		move  string
		nodes uint64
	}
	arr := make([]kv, 0, len(div))
	var sum uint64
	for move, n := range div {
		arr = append(arr, kv{move, n})
		sum += n
	}
	sort.Slice(arr, func(i, j int) bool { return arr[i].move < arr[j].move })
	for _, x := range arr {
		fmt.Printf("%s: %d\n", x.move, x.nodes)
	}
	fmt.Printf("Total: %d\n", sum)
}

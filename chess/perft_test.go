package chess_test

import (
	"testing"

	"chesscore/chess"
)

func TestPerftInitialPosition(t *testing.T) {
	pos, err := chess.ParseFEN(chess.StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN failed for initial position: %v", err)
	}
	if got := chess.Perft(pos, 1); got != 20 {
		t.Fatalf("perft depth1: got %d want %d", got, 20)
	}
	if got := chess.Perft(pos, 2); got != 400 {
		t.Fatalf("perft depth2: got %d want %d", got, 400)
	}
	if got := chess.Perft(pos, 3); got != 8902 {
		t.Fatalf("perft depth3: got %d want %d", got, 8902)
	}
}

func TestPerftInitialDepth4(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping depth 4 perft in short mode")
	}
	pos, err := chess.ParseFEN(chess.StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN failed: %v", err)
	}
	if got := chess.Perft(pos, 4); got != 197281 {
		t.Fatalf("perft depth4: got %d want %d", got, 197281)
	}
}

func TestPerftKiwipete(t *testing.T) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	pos, err := chess.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN failed for Kiwipete position: %v", err)
	}
	if got := chess.Perft(pos, 1); got != 48 {
		t.Fatalf("Kiwipete depth1: got %d want %d", got, 48)
	}
	if got := chess.Perft(pos, 2); got != 2039 {
		t.Fatalf("Kiwipete depth2: got %d want %d", got, 2039)
	}
}

func TestPerftPosition3(t *testing.T) {
	fen := "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
	pos, err := chess.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN failed: %v", err)
	}
	if got := chess.Perft(pos, 1); got != 14 {
		t.Fatalf("Pos3 d1: got %d want %d", got, 14)
	}
	if got := chess.Perft(pos, 2); got != 191 {
		t.Fatalf("Pos3 d2: got %d want %d", got, 191)
	}
	if got := chess.Perft(pos, 3); got != 2812 {
		t.Fatalf("Pos3 d3: got %d want %d", got, 2812)
	}
}

func TestPerftPosition4(t *testing.T) {
	fen := "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1"
	pos, err := chess.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN failed: %v", err)
	}
	if got := chess.Perft(pos, 1); got != 6 {
		t.Fatalf("Pos4 d1: got %d want %d", got, 6)
	}
	if got := chess.Perft(pos, 2); got != 264 {
		t.Fatalf("Pos4 d2: got %d want %d", got, 264)
	}
}

func TestPerftEnPassantPosition(t *testing.T) {
	fen := "k7/8/8/3pP3/8/8/8/7K w - d6 0 2"
	pos, err := chess.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN failed: %v", err)
	}
	if got := chess.Perft(pos, 1); got != 5 {
		t.Fatalf("EP depth1: got %d want %d", got, 5)
	}
	if got := chess.Perft(pos, 2); got != 19 {
		t.Fatalf("EP depth2: got %d want %d", got, 19)
	}
}

func TestPerftDivide_InitialDepth2(t *testing.T) {
	pos, err := chess.ParseFEN(chess.StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN failed: %v", err)
	}
	div := chess.PerftDivide(pos, 2)
	if len(div) != 20 {
		t.Fatalf("divide length: got %d want %d", len(div), 20)
	}
	var sum uint64
	for _, n := range div {
		sum += n
		if n != 20 {
			t.Fatalf("expected every root move to have 20 replies, got %d", n)
		}
	}
	if sum != 400 {
		t.Fatalf("divide sum: got %d want %d", sum, 400)
	}
}

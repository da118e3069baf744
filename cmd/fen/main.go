// Command fen inspects a position: given a FEN string, it prints the board,
// the legal moves in UCI and SAN, and applies a move given by -move to show
// the resulting FEN.
package main

import (
	"flag"
	"fmt"
	"os"

	"chesscore/chess"
)

func main() {
	fenStr := flag.String("fen", chess.StartFEN, "FEN string (defaults to initial position)")
	move := flag.String("move", "", "Apply a move (UCI or SAN) and print the resulting FEN")
	san := flag.Bool("san", false, "List legal moves in SAN instead of UCI")
	flag.Parse()

	pos, err := chess.ParseFEN(*fenStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ParseFEN error: %v\n", err)
		os.Exit(2)
	}

	if *move != "" {
		m, err := resolveMove(pos, *move)
		if err != nil {
			fmt.Fprintf(os.Stderr, "move error: %v\n", err)
			os.Exit(1)
		}
		pos.Apply(m)
		fmt.Println(pos.FEN())
		return
	}

	fmt.Print(boardString(pos))
	fmt.Println(pos.FEN())
	fmt.Printf("side to move: %s, in check: %v\n", pos.ActivePlayer(), pos.InCheck(pos.ActivePlayer()))

	legal := chess.GenerateLegalMoves(pos)
	fmt.Printf("%d legal moves:\n", len(legal))
	for _, m := range legal {
		if *san {
			fmt.Println(" ", chess.RenderSAN(pos, m))
		} else {
			fmt.Println(" ", m.String())
		}
	}
}

// resolveMove accepts either UCI (e2e4) or SAN (Nf3, O-O, e8=Q) notation.
func resolveMove(pos *chess.Position, notation string) (chess.Move, error) {
	if m, err := chess.ParseSAN(pos, notation); err == nil {
		return m, nil
	}
	if len(notation) >= 4 {
		from, err1 := chess.ParseSquare(notation[0:2])
		to, err2 := chess.ParseSquare(notation[2:4])
		if err1 == nil && err2 == nil {
			var promo byte
			if len(notation) == 5 {
				promo = notation[4]
			}
			for _, m := range chess.GenerateLegalMoves(pos) {
				if m.From() != from || m.To() != to {
					continue
				}
				if promo == 0 {
					if !m.IsPromotion() {
						return m, nil
					}
					continue
				}
				if letter := promotionLetter(m.Promotion()); letter == promo {
					return m, nil
				}
			}
		}
	}
	return chess.Move{}, &chess.IllegalMoveError{Notation: notation}
}

func promotionLetter(pt chess.PieceType) byte {
	switch pt {
	case chess.Queen:
		return 'q'
	case chess.Rook:
		return 'r'
	case chess.Bishop:
		return 'b'
	case chess.Knight:
		return 'n'
	default:
		return 0
	}
}

func boardString(pos *chess.Position) string {
	out := ""
	for rank := 7; rank >= 0; rank-- {
		out += fmt.Sprintf("%d ", rank+1)
		for file := 0; file < 8; file++ {
			out += pos.PieceOn(chess.MakeSquare(file, rank)).String() + " "
		}
		out += "\n"
	}
	out += "  a b c d e f g h\n"
	return out
}

// Package game wraps the chess core with the outer-collaborator concerns
// spec.md declares out of scope for the core contract itself: move
// history, memoized legal-move caching, game-over classification, and
// applying moves given as UCI or SAN text rather than a parsed chess.Move.
package game

import (
	"fmt"
	"sync"

	"chesscore/chess"
)

// Outcome classifies why a Game has ended.
type Outcome uint8

const (
	Ongoing Outcome = iota
	Checkmate
	Stalemate
	InsufficientMaterial
	FiftyMoveRule
	ThreefoldRepetition
)

func (o Outcome) String() string {
	switch o {
	case Ongoing:
		return "ongoing"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case InsufficientMaterial:
		return "insufficient material"
	case FiftyMoveRule:
		return "fifty-move rule"
	case ThreefoldRepetition:
		return "threefold repetition"
	default:
		return "unknown"
	}
}

// Game is a single chess game: the current position, its move history, and
// a Zobrist-hash tally used for repetition detection. A Game is safe for
// concurrent use; every method takes the internal mutex.
type Game struct {
	mu sync.RWMutex

	pos      *chess.Position
	moves    []chess.Move
	hashSeen map[uint64]int

	cachedLegal []chess.Move
	cacheDirty  bool
}

// New starts a Game from the standard initial position.
func New() *Game {
	pos, err := chess.ParseFEN(chess.StartFEN)
	if err != nil {
		panic("game: start FEN failed to parse: " + err.Error())
	}
	return newFromPosition(pos)
}

// NewFromFEN starts a Game from an arbitrary FEN string.
func NewFromFEN(fen string) (*Game, error) {
	pos, err := chess.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	return newFromPosition(pos), nil
}

func newFromPosition(pos *chess.Position) *Game {
	g := &Game{
		pos:        pos,
		hashSeen:   map[uint64]int{pos.Hash(): 1},
		cacheDirty: true,
	}
	return g
}

// Position returns a snapshot copy of the current position. Safe to mutate;
// it does not alias the Game's internal state.
func (g *Game) Position() *chess.Position {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.pos.Clone()
}

// Moves returns the move history played so far, oldest first.
func (g *Game) Moves() []chess.Move {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]chess.Move, len(g.moves))
	copy(out, g.moves)
	return out
}

// LegalMoves returns the legal moves in the current position, memoized
// until the next mutation.
func (g *Game) LegalMoves() []chess.Move {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cacheDirty {
		g.cachedLegal = chess.GenerateLegalMoves(g.pos)
		g.cacheDirty = false
	}
	out := make([]chess.Move, len(g.cachedLegal))
	copy(out, g.cachedLegal)
	return out
}

// Apply plays m, which must be legal in the current position, and updates
// history/repetition bookkeeping.
func (g *Game) Apply(m chess.Move) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pos.Apply(m)
	g.moves = append(g.moves, m)
	g.hashSeen[g.pos.Hash()]++
	g.cacheDirty = true
}

// ApplyUCI parses uci as a UCI-style move string, validates it against the
// legal move list, and applies it.
func (g *Game) ApplyUCI(uci string) error {
	m, err := g.matchUCI(uci)
	if err != nil {
		return err
	}
	g.Apply(m)
	return nil
}

func (g *Game) matchUCI(uci string) (chess.Move, error) {
	if len(uci) < 4 {
		return chess.Move{}, fmt.Errorf("%w: %q", chess.ErrInvalidMoveNotation, uci)
	}
	from, err := chess.ParseSquare(uci[0:2])
	if err != nil {
		return chess.Move{}, err
	}
	to, err := chess.ParseSquare(uci[2:4])
	if err != nil {
		return chess.Move{}, err
	}
	for _, m := range g.LegalMoves() {
		if m.From() != from || m.To() != to {
			continue
		}
		if len(uci) == 5 {
			letter := uci[4]
			if promo, ok := promotionFromUCI(letter); !ok || m.Promotion() != promo {
				continue
			}
		} else if m.IsPromotion() {
			continue
		}
		return m, nil
	}
	return chess.Move{}, &chess.IllegalMoveError{Notation: uci}
}

func promotionFromUCI(ch byte) (chess.PieceType, bool) {
	switch ch {
	case 'q':
		return chess.Queen, true
	case 'r':
		return chess.Rook, true
	case 'b':
		return chess.Bishop, true
	case 'n':
		return chess.Knight, true
	default:
		return chess.NoPieceType, false
	}
}

// ApplySAN parses and applies a move given in standard algebraic notation.
func (g *Game) ApplySAN(san string) error {
	g.mu.RLock()
	pos := g.pos.Clone()
	g.mu.RUnlock()

	m, err := chess.ParseSAN(pos, san)
	if err != nil {
		return err
	}
	g.Apply(m)
	return nil
}

// Outcome classifies why the game has ended, or Ongoing if it has not.
func (g *Game) Outcome() Outcome {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.pos.HasLegalMoves() {
		if g.pos.InCheck(g.pos.ActivePlayer()) {
			return Checkmate
		}
		return Stalemate
	}
	if g.pos.IsDrawByFiftyMoves() {
		return FiftyMoveRule
	}
	if g.hashSeen[g.pos.Hash()] >= 3 {
		return ThreefoldRepetition
	}
	if isInsufficientMaterial(g.pos) {
		return InsufficientMaterial
	}
	return Ongoing
}

// IsOver reports whether Outcome() is anything but Ongoing.
func (g *Game) IsOver() bool { return g.Outcome() != Ongoing }

// isInsufficientMaterial implements the narrower corrected rule: insufficient
// iff total material reduces to K vs K, K+N vs K, K+B vs K, or K+B vs K+B
// with both bishops on the same color square. A lone knight or bishop
// against anything else (including enemy pawns) is not insufficient, unlike
// the source's overly lenient "only kings and knights on our side" heuristic.
func isInsufficientMaterial(p *chess.Position) bool {
	var minor [2]struct {
		knights, lightBishops, darkBishops int
	}
	for c := chess.White; c <= chess.Black; c++ {
		for _, pt := range []chess.PieceType{chess.Pawn, chess.Rook, chess.Queen} {
			if p.PiecesOn(c, pt) != 0 {
				return false
			}
		}
		minor[c].knights = p.PiecesOn(c, chess.Knight).PopCount()
		bishops := p.PiecesOn(c, chess.Bishop)
		for bb := bishops; bb != 0; {
			var sq chess.Square
			sq, bb = bb.PopLSB()
			if squareIsLight(sq) {
				minor[c].lightBishops++
			} else {
				minor[c].darkBishops++
			}
		}
	}

	totalMinor := func(c chess.Color) int {
		return minor[c].knights + minor[c].lightBishops + minor[c].darkBishops
	}

	if totalMinor(chess.White) == 0 && totalMinor(chess.Black) == 0 {
		return true
	}
	if totalMinor(chess.White)+totalMinor(chess.Black) == 1 {
		return true
	}
	if minor[chess.White].knights == 0 && minor[chess.Black].knights == 0 &&
		totalMinor(chess.White) == 1 && totalMinor(chess.Black) == 1 {
		sameColor := minor[chess.White].lightBishops == 1 && minor[chess.Black].lightBishops == 1
		sameColor = sameColor || (minor[chess.White].darkBishops == 1 && minor[chess.Black].darkBishops == 1)
		return sameColor
	}
	return false
}

func squareIsLight(sq chess.Square) bool {
	return (sq.File()+sq.Rank())%2 == 1
}

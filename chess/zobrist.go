package chess

import (
	"math/rand"
	"sync"
)

var (
	zobristPiece     [2][7][64]uint64
	zobristCastle    [16]uint64
	zobristEnPassant [8]uint64
	zobristSide      uint64
	zobristOnce      sync.Once
)

// initZobrist seeds the incremental hashing tables. The seed is fixed so
// hashes are reproducible across runs.
func initZobrist() {
	zobristOnce.Do(func() {
		rnd := rand.New(rand.NewSource(0xC0FFEE))
		for c := 0; c < 2; c++ {
			for pt := 1; pt < 7; pt++ {
				for sq := 0; sq < 64; sq++ {
					zobristPiece[c][pt][sq] = rnd.Uint64()
				}
			}
		}
		for cr := 0; cr < 16; cr++ {
			zobristCastle[cr] = rnd.Uint64()
		}
		for f := 0; f < 8; f++ {
			zobristEnPassant[f] = rnd.Uint64()
		}
		zobristSide = rnd.Uint64()
	})
}

// castleIndex packs both sides' castle rights into a 4-bit key matching the
// canonical KQkq field order, for zobristCastle lookups.
func castleIndex(rights [2]CastleSide) int {
	idx := 0
	if rights[White].Has(KingSide) {
		idx |= 1
	}
	if rights[White].Has(QueenSide) {
		idx |= 2
	}
	if rights[Black].Has(KingSide) {
		idx |= 4
	}
	if rights[Black].Has(QueenSide) {
		idx |= 8
	}
	return idx
}

// computeZobrist recomputes the hash for p from scratch; used at FEN load
// time and by NewEmptyPosition.
func (p *Position) computeZobrist() uint64 {
	var key uint64
	for sq := Square(0); sq < 64; sq++ {
		pc := p.pieceOn[sq]
		if pc.Type == NoPieceType {
			continue
		}
		key ^= zobristPiece[pc.Color][pc.Type][sq]
	}
	if p.turn == Black {
		key ^= zobristSide
	}
	key ^= zobristCastle[castleIndex(p.castleRights)]
	if p.enPassant != 0 {
		key ^= zobristEnPassant[p.enPassant.LSB().File()]
	}
	return key
}

// Hash returns the current Zobrist hash, suitable for repetition detection
// and transposition keys.
func (p *Position) Hash() uint64 { return p.zobrist }

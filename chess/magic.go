package chess

import (
	"math/bits"
	"math/rand"
)

// magicEntry is a per-square perfect-hash descriptor for a sliding piece:
// mask selects the relevant occupancy bits, magic multiplies them into a
// dense index, and shift narrows the product down to the index width.
type magicEntry struct {
	mask  Bitboard
	magic uint64
	shift uint
	table []Bitboard
}

func (m *magicEntry) index(occ Bitboard) uint {
	return uint((uint64(occ&m.mask) * m.magic) >> m.shift)
}

func (m *magicEntry) attacks(occ Bitboard) Bitboard {
	return m.table[m.index(occ)]
}

var rookMagics [64]magicEntry
var bishopMagics [64]magicEntry

var rookDirs = [4]Direction{North, South, East, West}
var bishopDirs = [4]Direction{NorthEast, NorthWest, SouthEast, SouthWest}

// slidingAttackSlow computes the attack set for a slider on sq along dirs
// given blockers occ, truncating each ray at its first blocker (inclusive).
// This is the verified reference used to build the edge-trimmed masks and to
// populate the magic tables.
func slidingAttackSlow(sq Square, dirs [4]Direction, occ Bitboard) Bitboard {
	var attacks Bitboard
	for _, d := range dirs {
		r := ray[d][sq]
		if blocker := firstBlocker(d, sq, occ); blocker != NoSquare {
			r &^= ray[d][blocker]
		}
		attacks |= r
	}
	return attacks
}

// edgeTrimmedMask is the sliding attack on an empty board minus the board
// border not containing sq itself — occupancy on those trailing edge squares
// never changes the attack set, so they are excluded from the magic index.
func edgeTrimmedMask(sq Square, dirs [4]Direction) Bitboard {
	border := (rank1 | rank8) &^ rankMask(sq.Rank())
	border |= (fileA | fileH) &^ fileMask(sq.File())
	return slidingAttackSlow(sq, dirs, 0) &^ border
}

// subsetsOf enumerates every subset of mask via the Carry-Rippler trick.
func subsetsOf(mask Bitboard) []Bitboard {
	subsets := make([]Bitboard, 0, 1<<uint(mask.PopCount()))
	for subset := Bitboard(0); ; {
		subsets = append(subsets, subset)
		subset = (subset - mask) & mask
		if subset == 0 {
			break
		}
	}
	return subsets
}

// searchMagic finds a collision-free magic multiplier for sq by trial and
// verification against every occupancy subset of mask, the same
// generate-and-test approach used to search bishop magics: try random sparse
// candidates, build the dense table, and keep the first one that hashes
// every subset without collision.
func searchMagic(sq Square, dirs [4]Direction, rnd *rand.Rand) magicEntry {
	mask := edgeTrimmedMask(sq, dirs)
	bitsNeeded := mask.PopCount()
	shift := uint(64 - bitsNeeded)
	subsets := subsetsOf(mask)
	reference := make([]Bitboard, len(subsets))
	for i, occ := range subsets {
		reference[i] = slidingAttackSlow(sq, dirs, occ)
	}

	table := make([]Bitboard, 1<<uint(bitsNeeded))
	var occupied []bool

	for {
		magic := sparseRandom(rnd)
		if bits.OnesCount64(uint64(mask)*magic) < 6 {
			continue
		}
		occupied = make([]bool, len(table))
		for i := range table {
			table[i] = 0
		}
		ok := true
		for i, occ := range subsets {
			idx := uint((uint64(occ) * magic) >> shift)
			if occupied[idx] && table[idx] != reference[i] {
				ok = false
				break
			}
			occupied[idx] = true
			table[idx] = reference[i]
		}
		if ok {
			return magicEntry{mask: mask, magic: magic, shift: shift, table: table}
		}
	}
}

// sparseRandom mirrors the common magic-search heuristic of ANDing a few
// random 63-bit values together to bias toward sparse bit patterns, which
// are more likely to produce a collision-free multiplier quickly.
func sparseRandom(rnd *rand.Rand) uint64 {
	r := uint64(rnd.Int63())
	r &= uint64(rnd.Int63())
	r &= uint64(rnd.Int63())
	return r
}

// initMagics builds rook and bishop magic tables for all 64 squares. It is
// deterministic (fixed seed) so the tables are reproducible across runs and
// across platforms.
func initMagics() {
	rnd := rand.New(rand.NewSource(0x5151C0DE))
	for sq := Square(0); sq < 64; sq++ {
		rookMagics[sq] = searchMagic(sq, rookDirs, rnd)
		bishopMagics[sq] = searchMagic(sq, bishopDirs, rnd)
	}
}

// RookAttacks returns the rook attack set from sq given occupancy occ.
func RookAttacks(sq Square, occ Bitboard) Bitboard {
	return rookMagics[sq].attacks(occ)
}

// BishopAttacks returns the bishop attack set from sq given occupancy occ.
func BishopAttacks(sq Square, occ Bitboard) Bitboard {
	return bishopMagics[sq].attacks(occ)
}

// QueenAttacks is the union of rook and bishop attacks from the same square
// and blockers.
func QueenAttacks(sq Square, occ Bitboard) Bitboard {
	return RookAttacks(sq, occ) | BishopAttacks(sq, occ)
}

// SlidingAttacks dispatches on piece type for callers that only know the
// generic sliding-piece contract. It panics for non-sliders, matching the
// programmer-error handling spec'd for slidingAttacks preconditions.
func SlidingAttacks(pt PieceType, sq Square, occ Bitboard) Bitboard {
	switch pt {
	case Rook:
		return RookAttacks(sq, occ)
	case Bishop:
		return BishopAttacks(sq, occ)
	case Queen:
		return QueenAttacks(sq, occ)
	default:
		panic("chess: SlidingAttacks called for a non-slider")
	}
}

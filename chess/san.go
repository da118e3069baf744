package chess

import (
	"fmt"
	"regexp"
	"strings"
)

var sanPattern = regexp.MustCompile(`^([KQRBN])?([a-h])?([1-8])?x?([a-h][1-8])(?:=([QRBN]))?$`)

func pieceLetter(pt PieceType) byte {
	switch pt {
	case King:
		return 'K'
	case Queen:
		return 'Q'
	case Rook:
		return 'R'
	case Bishop:
		return 'B'
	case Knight:
		return 'N'
	default:
		return 0
	}
}

func pieceFromLetter(ch byte) PieceType {
	switch ch {
	case 'K':
		return King
	case 'Q':
		return Queen
	case 'R':
		return Rook
	case 'B':
		return Bishop
	case 'N':
		return Knight
	default:
		return NoPieceType
	}
}

// stripSANDecoration removes the trailing check/mate suffix and the
// tolerated "e.p." annotation, in either order, so the core grammar below
// never has to account for them.
func stripSANDecoration(san string) string {
	s := strings.TrimSpace(san)
	for {
		switch {
		case strings.HasSuffix(s, "+"), strings.HasSuffix(s, "#"):
			s = s[:len(s)-1]
		case strings.HasSuffix(strings.ToLower(s), "e.p."):
			s = s[:len(s)-4]
		default:
			return strings.TrimSpace(s)
		}
	}
}

// ParseSAN parses san against p, resolving disambiguation to the unique
// legal move it names. Returns InvalidMoveNotation if san does not match
// the grammar, IllegalMove if it parses but names no legal move, and
// AmbiguousMove (with every candidate) if it names more than one.
func ParseSAN(p *Position, san string) (Move, error) {
	s := stripSANDecoration(san)

	if s == "O-O-O" || s == "0-0-0" {
		return resolveCastle(p, QueenSide, san)
	}
	if s == "O-O" || s == "0-0" {
		return resolveCastle(p, KingSide, san)
	}

	match := sanPattern.FindStringSubmatch(s)
	if match == nil {
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidMoveNotation, san)
	}

	pt := Pawn
	if match[1] != "" {
		pt = pieceFromLetter(match[1][0])
	}
	var wantFile, wantRank = -1, -1
	if match[2] != "" {
		wantFile = int(match[2][0] - 'a')
	}
	if match[3] != "" {
		wantRank = int(match[3][0] - '1')
	}
	to, err := ParseSquare(match[4])
	if err != nil {
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidMoveNotation, san)
	}
	promotion := NoPieceType
	if match[5] != "" {
		promotion = pieceFromLetter(match[5][0])
	}

	var candidates []Move
	for _, m := range GenerateLegalMoves(p) {
		if m.IsCastling() {
			continue
		}
		if m.Piece() != pt || m.To() != to {
			continue
		}
		if m.Promotion() != promotion {
			continue
		}
		if wantFile >= 0 && m.From().File() != wantFile {
			continue
		}
		if wantRank >= 0 && m.From().Rank() != wantRank {
			continue
		}
		candidates = append(candidates, m)
	}

	switch len(candidates) {
	case 0:
		return Move{}, &IllegalMoveError{Notation: san}
	case 1:
		return candidates[0], nil
	default:
		return Move{}, &AmbiguousMoveError{SAN: san, Candidates: candidates}
	}
}

func resolveCastle(p *Position, side CastleSide, original string) (Move, error) {
	for _, m := range GenerateLegalMoves(p) {
		if m.IsCastling() && m.CastleSide() == side {
			return m, nil
		}
	}
	return Move{}, &IllegalMoveError{Notation: original}
}

// RenderSAN renders m, played from position p, in standard algebraic
// notation. p must be the position m is legal in; the check/mate suffix is
// computed by applying m to a copy.
func RenderSAN(p *Position, m Move) string {
	if m.IsCastling() {
		san := "O-O"
		if m.CastleSide() == QueenSide {
			san = "O-O-O"
		}
		return san + checkSuffix(p, m)
	}

	isCapture := p.pieceOn[m.To()].Type != NoPieceType || m.IsEnPassant()

	var sb strings.Builder
	if m.Piece() == Pawn {
		if isCapture {
			sb.WriteByte('a' + byte(m.From().File()))
			sb.WriteByte('x')
		}
		sb.WriteString(m.To().String())
		if m.IsPromotion() {
			sb.WriteByte('=')
			sb.WriteByte(pieceLetter(m.Promotion()))
		}
		return sb.String() + checkSuffix(p, m)
	}

	sb.WriteByte(pieceLetter(m.Piece()))
	sb.WriteString(disambiguation(p, m))
	if isCapture {
		sb.WriteByte('x')
	}
	sb.WriteString(m.To().String())
	return sb.String() + checkSuffix(p, m)
}

// disambiguation computes the minimal source-square annotation needed to
// distinguish m from other legal moves by pieces of the same type landing
// on the same destination.
func disambiguation(p *Position, m Move) string {
	var sameFile, sameRank, ambiguous bool
	for _, other := range GenerateLegalMoves(p) {
		if other.From() == m.From() || other.Piece() != m.Piece() || other.To() != m.To() {
			continue
		}
		ambiguous = true
		if other.From().File() == m.From().File() {
			sameFile = true
		}
		if other.From().Rank() == m.From().Rank() {
			sameRank = true
		}
	}
	if !ambiguous {
		return ""
	}
	switch {
	case !sameFile:
		return string('a' + byte(m.From().File()))
	case !sameRank:
		return string('1' + byte(m.From().Rank()))
	default:
		return m.From().String()
	}
}

func checkSuffix(p *Position, m Move) string {
	cp := p.Clone()
	cp.Apply(m)
	if !cp.InCheck(cp.turn) {
		return ""
	}
	if !cp.HasLegalMoves() {
		return "#"
	}
	return "+"
}

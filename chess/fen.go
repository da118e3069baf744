package chess

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the standard initial chess position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func pieceFromChar(ch byte) (Piece, bool) {
	color := White
	if ch >= 'a' && ch <= 'z' {
		color = Black
		ch -= 'a' - 'A'
	}
	var pt PieceType
	switch ch {
	case 'P':
		pt = Pawn
	case 'N':
		pt = Knight
	case 'B':
		pt = Bishop
	case 'R':
		pt = Rook
	case 'Q':
		pt = Queen
	case 'K':
		pt = King
	default:
		return NoPiece, false
	}
	return Piece{Color: color, Type: pt}, true
}

func charFromPiece(p Piece) byte {
	letters := " PNBRQK"
	ch := letters[p.Type]
	if p.Color == Black {
		ch = ch - 'A' + 'a'
	}
	return ch
}

// ParseFEN parses a FEN string into a Position. Both the canonical
// six-field form and the four-field form (placement, color, castling, ep —
// omitting the half/full move counters) are accepted on input; a missing
// half-move clock defaults to 0 and a missing full-move number defaults to
// 1, per the standard's convention that a game starts at move 1.
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) != 4 && len(fields) != 6 {
		return nil, fmt.Errorf("%w: %q must have 4 or 6 fields, has %d", ErrInvalidFEN, fen, len(fields))
	}

	p := &Position{}
	for sq := range p.pieceOn {
		p.pieceOn[sq] = NoPiece
	}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("%w: %q must have 8 ranks, has %d", ErrInvalidFEN, fen, len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for j := 0; j < len(rankStr); j++ {
			ch := rankStr[j]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			pc, ok := pieceFromChar(ch)
			if !ok {
				return nil, fmt.Errorf("%w: %q has unrecognized piece character %q", ErrInvalidFEN, fen, string(ch))
			}
			if file > 7 {
				return nil, fmt.Errorf("%w: %q has too many squares in rank %d", ErrInvalidFEN, fen, rank+1)
			}
			p.addPiece(MakeSquare(file, rank), pc)
			file++
		}
		if file != 8 {
			return nil, fmt.Errorf("%w: %q rank %d does not sum to 8 files", ErrInvalidFEN, fen, rank+1)
		}
	}

	switch fields[1] {
	case "w":
		p.turn = White
	case "b":
		p.turn = Black
	default:
		return nil, fmt.Errorf("%w: %q has invalid color field %q", ErrInvalidFEN, fen, fields[1])
	}

	if fields[2] != "-" {
		for _, ch := range fields[2] {
			switch ch {
			case 'K':
				p.castleRights[White] |= KingSide
			case 'Q':
				p.castleRights[White] |= QueenSide
			case 'k':
				p.castleRights[Black] |= KingSide
			case 'q':
				p.castleRights[Black] |= QueenSide
			default:
				return nil, fmt.Errorf("%w: %q has invalid castling field %q", ErrInvalidFEN, fen, fields[2])
			}
		}
	}

	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return nil, fmt.Errorf("%w: %q has invalid en-passant field %q", ErrInvalidFEN, fen, fields[3])
		}
		if sq.Rank() != 2 && sq.Rank() != 5 {
			return nil, fmt.Errorf("%w: %q en-passant square %q is not on rank 3 or 6", ErrInvalidFEN, fen, fields[3])
		}
		p.enPassant = squareBB(sq)
	}

	p.halfMoves = 0
	p.fullMove = 1
	if len(fields) == 6 {
		half, err := strconv.Atoi(fields[4])
		if err != nil || half < 0 {
			return nil, fmt.Errorf("%w: %q has invalid half-move field %q", ErrInvalidFEN, fen, fields[4])
		}
		full, err := strconv.Atoi(fields[5])
		if err != nil || full < 1 {
			return nil, fmt.Errorf("%w: %q has invalid full-move field %q", ErrInvalidFEN, fen, fields[5])
		}
		p.halfMoves = half
		p.fullMove = full
	}

	p.zobrist = p.computeZobrist()
	return p, nil
}

// FEN renders p in canonical six-field FEN form.
func (p *Position) FEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			pc := p.pieceOn[MakeSquare(file, rank)]
			if pc.Type == NoPieceType {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(charFromPiece(pc))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.turn == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	rights := ""
	if p.castleRights[White].Has(KingSide) {
		rights += "K"
	}
	if p.castleRights[White].Has(QueenSide) {
		rights += "Q"
	}
	if p.castleRights[Black].Has(KingSide) {
		rights += "k"
	}
	if p.castleRights[Black].Has(QueenSide) {
		rights += "q"
	}
	if rights == "" {
		rights = "-"
	}
	sb.WriteString(rights)

	sb.WriteByte(' ')
	if p.enPassant == 0 {
		sb.WriteByte('-')
	} else {
		sb.WriteString(p.enPassant.LSB().String())
	}

	fmt.Fprintf(&sb, " %d %d", p.halfMoves, p.fullMove)
	return sb.String()
}

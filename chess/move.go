package chess

import "strings"

// MoveKind distinguishes the four move variants the spec describes as a
// tagged union: a plain move, a promotion, an en-passant capture, or a
// castle. The packed Move value below stores enough information to recover
// whichever variant a particular move is without storing four separate
// struct shapes.
type MoveKind uint8

const (
	Normal MoveKind = iota
	PromotionMove
	EnPassantMove
	CastlingMove
)

// Move is a compact value describing a single ply. From/To/Piece/Promotion
// are always meaningful; a Castling move's From/To are the king's own
// two-square travel (e1g1, e1c1, e8g8, e8c8), from which the side
// (KingSide/QueenSide) is derived rather than stored redundantly.
type Move struct {
	from      Square
	to        Square
	piece     PieceType
	promotion PieceType
	kind      MoveKind
}

// NewNormalMove builds a non-special, non-promotion move.
func NewNormalMove(from, to Square, piece PieceType) Move {
	return Move{from: from, to: to, piece: piece, kind: Normal}
}

// NewPromotionMove builds a pawn promotion move.
func NewPromotionMove(from, to Square, promotion PieceType) Move {
	return Move{from: from, to: to, piece: Pawn, promotion: promotion, kind: PromotionMove}
}

// NewEnPassantMove builds an en-passant capture.
func NewEnPassantMove(from, to Square) Move {
	return Move{from: from, to: to, piece: Pawn, kind: EnPassantMove}
}

// NewCastlingMove builds a castle; to is the king's destination square.
func NewCastlingMove(from, to Square) Move {
	return Move{from: from, to: to, piece: King, kind: CastlingMove}
}

// From returns the origin square. Meaningless for Castling beyond "the
// king's own square", which is still returned.
func (m Move) From() Square { return m.from }

// To returns the destination square (the king's destination for Castling).
func (m Move) To() Square { return m.to }

// Piece returns the type of the piece making the move.
func (m Move) Piece() PieceType { return m.piece }

// Promotion returns the promoted-to piece type, or NoPieceType if this is
// not a promotion.
func (m Move) Promotion() PieceType { return m.promotion }

// Kind returns the move's tagged-union variant.
func (m Move) Kind() MoveKind { return m.kind }

// IsPromotion reports whether the move promotes a pawn.
func (m Move) IsPromotion() bool { return m.kind == PromotionMove }

// IsCastling reports whether the move is a castle.
func (m Move) IsCastling() bool { return m.kind == CastlingMove }

// IsEnPassant reports whether the move is an en-passant capture.
func (m Move) IsEnPassant() bool { return m.kind == EnPassantMove }

// CastleSide derives which side a Castling move castles to from its
// destination file, per the design note that the castle-side variant
// carries no squares of its own and is reconstructed at apply-time.
func (m Move) CastleSide() CastleSide {
	if m.kind != CastlingMove {
		return 0
	}
	if m.to.File() == 6 {
		return KingSide
	}
	return QueenSide
}

// String renders the move in UCI notation: <from><to>[promotion].
func (m Move) String() string {
	var sb strings.Builder
	sb.WriteString(m.from.String())
	sb.WriteString(m.to.String())
	if m.kind == PromotionMove {
		sb.WriteString(promotionLetter(m.promotion))
	}
	return sb.String()
}

func promotionLetter(pt PieceType) string {
	switch pt {
	case Queen:
		return "q"
	case Rook:
		return "r"
	case Bishop:
		return "b"
	case Knight:
		return "n"
	default:
		return ""
	}
}

func promotionFromLetter(ch byte) (PieceType, bool) {
	switch ch {
	case 'q', 'Q':
		return Queen, true
	case 'r', 'R':
		return Rook, true
	case 'b', 'B':
		return Bishop, true
	case 'n', 'N':
		return Knight, true
	default:
		return NoPieceType, false
	}
}

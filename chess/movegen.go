package chess

// genCategory selects which pseudo-legal subset generatePieceMoves/
// generatePawnMoves produce. Evasions and QuietChecks are assembled by the
// exported wrappers below rather than threaded through this enum, since
// both are expressed in terms of the other three.
type genCategory uint8

const (
	catCaptures genCategory = iota
	catQuiets
	catNonEvasions
)

var promotionPieces = [4]PieceType{Queen, Rook, Bishop, Knight}
var underPromotionPieces = [3]PieceType{Rook, Bishop, Knight}

// targetMask returns the destination-square filter for a piece routine:
// enemy pieces for Captures, empty squares for Quiets, the complement of
// our own pieces for NonEvasions.
func targetMask(p *Position, us Color, category genCategory) Bitboard {
	switch category {
	case catCaptures:
		return p.allPieces[us.Opposite()]
	case catQuiets:
		return p.Empty()
	default:
		return ^p.allPieces[us]
	}
}

// generatePieceMoves appends every pseudo-legal move of piece type pt
// landing in target.
func generatePieceMoves(p *Position, us Color, pt PieceType, target Bitboard, dst []Move) []Move {
	bb := p.pieces[us][pt]
	for bb != 0 {
		var from Square
		from, bb = bb.PopLSB()
		attacks := possibleMoves(pt, us, from, p.occupied) & target
		for attacks != 0 {
			var to Square
			to, attacks = attacks.PopLSB()
			dst = append(dst, NewNormalMove(from, to, pt))
		}
	}
	return dst
}

// appendPromotions emits the promotion variants appropriate to category:
// Captures gets every promotion piece for an actual capture but only the
// queen promotion for a push; Quiets gets the non-queen pushes; NonEvasions
// and the Evasions/interpose caller (which always passes catNonEvasions)
// get every variant regardless of capture.
func appendPromotions(dst []Move, from, to Square, category genCategory, isCapture bool) []Move {
	switch category {
	case catCaptures:
		if isCapture {
			for _, pt := range promotionPieces {
				dst = append(dst, NewPromotionMove(from, to, pt))
			}
		} else {
			dst = append(dst, NewPromotionMove(from, to, Queen))
		}
	case catQuiets:
		if !isCapture {
			for _, pt := range underPromotionPieces {
				dst = append(dst, NewPromotionMove(from, to, pt))
			}
		}
	default:
		for _, pt := range promotionPieces {
			dst = append(dst, NewPromotionMove(from, to, pt))
		}
	}
	return dst
}

// generatePawnMoves is parameterized directly on destination masks rather
// than on target/category alone, so the evasion dispatcher can restrict
// pushes and captures to the interposition set without duplicating the
// push/capture/promotion arithmetic. restrictEPTo, when not NoSquare,
// only allows an en-passant capture whose captured pawn sits on that
// square — used by evasions, where en passant can only evade check by
// capturing the checking pawn itself.
func generatePawnMoves(p *Position, us Color, quietTarget, captureTarget Bitboard, category genCategory, restrictEPTo Square, dst []Move) []Move {
	them := us.Opposite()
	empty := p.Empty()
	enemies := p.allPieces[them]
	pawns := p.pieces[us][Pawn]

	up := Forward(us)
	back := oppositeDirection(up)

	var rank7, dblRank Bitboard
	var capLeftDir, capRightDir Direction
	if us == White {
		rank7 = rankMask(6)
		dblRank = rankMask(2)
		capLeftDir, capRightDir = NorthWest, NorthEast
	} else {
		rank7 = rankMask(1)
		dblRank = rankMask(5)
		capLeftDir, capRightDir = SouthWest, SouthEast
	}
	promoters := pawns & rank7
	others := pawns &^ rank7

	single := others.ShiftToward(up) & empty & quietTarget
	for bb := single; bb != 0; {
		var to Square
		to, bb = bb.PopLSB()
		dst = append(dst, NewNormalMove(to.Towards(back), to, Pawn))
	}
	doubleCandidates := others.ShiftToward(up) & empty
	double := (doubleCandidates & dblRank).ShiftToward(up) & empty & quietTarget
	for bb := double; bb != 0; {
		var to Square
		to, bb = bb.PopLSB()
		dst = append(dst, NewNormalMove(to.Towards(back).Towards(back), to, Pawn))
	}

	capLeft := others.ShiftToward(capLeftDir) & enemies & captureTarget
	for bb := capLeft; bb != 0; {
		var to Square
		to, bb = bb.PopLSB()
		dst = append(dst, NewNormalMove(to.Towards(oppositeDirection(capLeftDir)), to, Pawn))
	}
	capRight := others.ShiftToward(capRightDir) & enemies & captureTarget
	for bb := capRight; bb != 0; {
		var to Square
		to, bb = bb.PopLSB()
		dst = append(dst, NewNormalMove(to.Towards(oppositeDirection(capRightDir)), to, Pawn))
	}

	if p.enPassant != 0 && captureTarget != 0 {
		epSq := p.enPassant.LSB()
		capturedSq := epSq.Towards(back)
		if restrictEPTo == NoSquare || restrictEPTo == capturedSq {
			attackers := PawnAttacks(them, epSq) & pawns
			for bb := attackers; bb != 0; {
				var from Square
				from, bb = bb.PopLSB()
				dst = append(dst, NewEnPassantMove(from, epSq))
			}
		}
	}

	promoPush := promoters.ShiftToward(up) & empty & quietTarget
	for bb := promoPush; bb != 0; {
		var to Square
		to, bb = bb.PopLSB()
		dst = appendPromotions(dst, to.Towards(back), to, category, false)
	}
	promoCapLeft := promoters.ShiftToward(capLeftDir) & enemies & captureTarget
	for bb := promoCapLeft; bb != 0; {
		var to Square
		to, bb = bb.PopLSB()
		dst = appendPromotions(dst, to.Towards(oppositeDirection(capLeftDir)), to, category, true)
	}
	promoCapRight := promoters.ShiftToward(capRightDir) & enemies & captureTarget
	for bb := promoCapRight; bb != 0; {
		var to Square
		to, bb = bb.PopLSB()
		dst = appendPromotions(dst, to.Towards(oppositeDirection(capRightDir)), to, category, true)
	}

	return dst
}

// generate produces Captures, Quiets or NonEvasions — the three categories
// valid when the side to move is not in check.
func generate(p *Position, category genCategory) []Move {
	us := p.turn
	moves := make([]Move, 0, 48)

	quietTarget, captureTarget := p.Empty(), p.allPieces[us.Opposite()]
	switch category {
	case catCaptures:
		quietTarget = 0
	case catQuiets:
		captureTarget = 0
	}
	moves = generatePawnMoves(p, us, quietTarget, captureTarget, category, NoSquare, moves)

	target := targetMask(p, us, category)
	for _, pt := range []PieceType{Knight, Bishop, Rook, Queen, King} {
		moves = generatePieceMoves(p, us, pt, target, moves)
	}

	if category == catNonEvasions {
		if p.CanShortCastle(us) {
			kingFrom, kingTo, _, _ := castleSquares(us, KingSide)
			moves = append(moves, NewCastlingMove(kingFrom, kingTo))
		}
		if p.CanLongCastle(us) {
			kingFrom, kingTo, _, _ := castleSquares(us, QueenSide)
			moves = append(moves, NewCastlingMove(kingFrom, kingTo))
		}
	}
	return moves
}

// GenerateCaptures returns every pseudo-legal capture, plus queen
// promotions (push or capture). Valid in any position.
func GenerateCaptures(p *Position) []Move { return generate(p, catCaptures) }

// GenerateQuiets returns every pseudo-legal non-capture, including
// non-queen promotion pushes. Valid in any position.
func GenerateQuiets(p *Position) []Move { return generate(p, catQuiets) }

// GenerateNonEvasions returns Captures union Quiets. Intended for use when
// the side to move is not in check.
func GenerateNonEvasions(p *Position) []Move { return generate(p, catNonEvasions) }

// attackedWithOcc is IsSquareAttackedBy parameterized on an explicit
// occupancy, so the evasion king-move generator can test destinations
// against occupancy with the king itself removed — without that, a slider
// checking the king would appear not to attack the square directly behind
// it, letting the king "retreat" along the same ray illegally.
func attackedWithOcc(p *Position, enemy Color, sq Square, occ Bitboard) bool {
	if PawnAttacks(enemy.Opposite(), sq)&p.pieces[enemy][Pawn] != 0 {
		return true
	}
	if KnightAttacks(sq)&p.pieces[enemy][Knight] != 0 {
		return true
	}
	if KingAttacks(sq)&p.pieces[enemy][King] != 0 {
		return true
	}
	rq := p.pieces[enemy][Rook] | p.pieces[enemy][Queen]
	if rq != 0 && RookAttacks(sq, occ)&rq != 0 {
		return true
	}
	bq := p.pieces[enemy][Bishop] | p.pieces[enemy][Queen]
	if bq != 0 && BishopAttacks(sq, occ)&bq != 0 {
		return true
	}
	return false
}

// GenerateEvasions returns every pseudo-legal move that gets the side to
// move out of check. Callable only when in check; calling it otherwise is
// a precondition violation.
func GenerateEvasions(p *Position) []Move {
	us := p.turn
	them := us.Opposite()
	ks := p.KingSquare(us)
	checkers := p.attackersTo(ks, them, p.occupied)
	if checkers == 0 {
		panic("chess: GenerateEvasions called when not in check")
	}

	moves := make([]Move, 0, 16)

	occWithoutKing := p.occupied &^ squareBB(ks)
	kingTargets := KingAttacks(ks) &^ p.allPieces[us]
	for kingTargets != 0 {
		var to Square
		to, kingTargets = kingTargets.PopLSB()
		if !attackedWithOcc(p, them, to, occWithoutKing) {
			moves = append(moves, NewNormalMove(ks, to, King))
		}
	}

	if checkers.MoreThanOne() {
		return moves
	}

	checkerSq := checkers.LSB()
	interpose := Segment(ks, checkerSq)
	if interpose == 0 {
		interpose = squareBB(checkerSq)
	} else {
		interpose &^= squareBB(ks)
	}

	quietTarget := interpose & p.Empty()
	captureTarget := interpose & p.allPieces[them]
	capturedPawnSq := checkerSq
	moves = generatePawnMoves(p, us, quietTarget, captureTarget, catNonEvasions, capturedPawnSq, moves)

	for _, pt := range []PieceType{Knight, Bishop, Rook, Queen} {
		moves = generatePieceMoves(p, us, pt, interpose, moves)
	}
	return moves
}

// checkSquares returns the squares from which a piece of type pt, owned by
// us, would give check to the enemy king right now — derived via the same
// symmetric-attack trick used for IsSquareAttackedBy: placing a piece of
// pt's movement pattern on the enemy king's square and seeing where it
// could reach.
func checkSquares(p *Position, us Color, pt PieceType) Bitboard {
	them := us.Opposite()
	ks := p.KingSquare(them)
	if ks == NoSquare {
		return 0
	}
	switch pt {
	case Knight:
		return KnightAttacks(ks)
	case Bishop:
		return BishopAttacks(ks, p.occupied)
	case Rook:
		return RookAttacks(ks, p.occupied)
	case Queen:
		return QueenAttacks(ks, p.occupied)
	default:
		return 0
	}
}

// pawnAttacksFromEnemyKing returns the squares a pawn of color us would
// need to stand on to directly check the enemy king, using the same
// symmetric trick applied to pawns specifically.
func pawnAttacksFromEnemyKing(p *Position, us Color) Bitboard {
	them := us.Opposite()
	ks := p.KingSquare(them)
	if ks == NoSquare {
		return 0
	}
	return PawnAttacks(them, ks)
}

// givesCheck reports whether playing m (assumed pseudo-legal for us) would
// give check to the enemy king, direct or discovered. Uses current-position
// occupancy for the direct test, matching the approximate "static" check
// tables conventional in quiet-check generation.
func givesCheck(p *Position, us Color, m Move) bool {
	them := us.Opposite()
	if line := p.pinLineThrough(them, m.From()); line != 0 && !line.Test(m.To()) {
		return true
	}
	pt := m.Piece()
	if m.IsPromotion() {
		pt = m.Promotion()
	}
	switch pt {
	case Pawn:
		return pawnAttacksFromEnemyKing(p, us).Test(m.To())
	case King:
		return false
	default:
		return checkSquares(p, us, pt).Test(m.To())
	}
}

// GenerateQuietChecks returns the subset of Quiets that deliver check,
// direct or discovered — including knight (and other) under-promotions
// that check.
func GenerateQuietChecks(p *Position) []Move {
	quiets := GenerateQuiets(p)
	checks := make([]Move, 0, len(quiets))
	us := p.turn
	for _, m := range quiets {
		if givesCheck(p, us, m) {
			checks = append(checks, m)
		}
	}
	return checks
}

// legalEnPassant recomputes whether an en-passant capture would leave the
// mover's own king in check: remove both the capturing and captured pawns,
// place the capturing pawn on the destination, and test for newly-exposed
// sliding attacks. This catches the classic horizontal-pin corner case that
// per-piece pin tracking misses, since two pieces vanish from the rank at
// once.
func legalEnPassant(p *Position, us Color, m Move) bool {
	them := us.Opposite()
	ks := p.KingSquare(us)
	if ks == NoSquare {
		return true
	}
	capturedSq := m.To().Towards(oppositeDirection(Forward(us)))
	occ := p.occupied
	occ &^= squareBB(m.From())
	occ &^= squareBB(capturedSq)
	occ |= squareBB(m.To())
	return !attackedWithOcc(p, them, ks, occ)
}

// filterLegal narrows a pseudo-legal list down to Legal: king moves are
// re-verified against full occupancy with the king removed, en-passant
// captures get the two-pawn-vanish recheck, and every other move is legal
// unless its mover is pinned and the destination leaves the pin line.
func filterLegal(p *Position, pseudo []Move) []Move {
	us := p.turn
	them := us.Opposite()
	ks := p.KingSquare(us)
	occWithoutKing := p.occupied &^ squareBB(ks)

	legal := make([]Move, 0, len(pseudo))
	for _, m := range pseudo {
		switch {
		case m.Piece() == King && !m.IsCastling():
			if !attackedWithOcc(p, them, m.To(), occWithoutKing) {
				legal = append(legal, m)
			}
		case m.IsCastling():
			legal = append(legal, m)
		case m.IsEnPassant():
			if legalEnPassant(p, us, m) {
				legal = append(legal, m)
			}
		default:
			line := p.pinLineThrough(us, m.From())
			if line == 0 || line.Test(m.To()) {
				legal = append(legal, m)
			}
		}
	}
	return legal
}

// GenerateLegalMoves returns every legal move for the side to move.
func GenerateLegalMoves(p *Position) []Move {
	us := p.turn
	var pseudo []Move
	if p.InCheck(us) {
		pseudo = GenerateEvasions(p)
	} else {
		pseudo = GenerateNonEvasions(p)
	}
	return filterLegal(p, pseudo)
}

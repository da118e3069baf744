package chess

import "errors"

// Sentinel errors for the four recoverable outcome kinds the external
// interfaces can raise. Callers use errors.Is against these; the offending
// input text is always interpolated into the wrapping error's message.
var (
	ErrInvalidFEN          = errors.New("invalid FEN")
	ErrInvalidMoveNotation = errors.New("invalid move notation")
	ErrIllegalMove         = errors.New("illegal move")
	ErrAmbiguousMove       = errors.New("ambiguous move")
)

// AmbiguousMoveError reports a SAN string that matches more than one legal
// move, along with the candidates so a caller can present them.
type AmbiguousMoveError struct {
	SAN        string
	Candidates []Move
}

func (e *AmbiguousMoveError) Error() string {
	return "chess: " + ErrAmbiguousMove.Error() + ": " + e.SAN
}

func (e *AmbiguousMoveError) Unwrap() error { return ErrAmbiguousMove }

// IllegalMoveError reports a syntactically valid move that is not legal in
// the position it was applied against.
type IllegalMoveError struct {
	Notation string
}

func (e *IllegalMoveError) Error() string {
	return "chess: " + ErrIllegalMove.Error() + ": " + e.Notation
}

func (e *IllegalMoveError) Unwrap() error { return ErrIllegalMove }

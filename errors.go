package takrules

import "errors"

// Errors returned by boards, the move parser and the game engine. They are
// usually wrapped with more context, so compare with errors.Is.
var (
	ErrInvalidSize     = errors.New("invalid board size")
	ErrInvalidPoint    = errors.New("invalid point")
	ErrInvalidNotation = errors.New("invalid notation")
	ErrOccupiedSquare  = errors.New("square is occupied")
	ErrOntoCapstone    = errors.New("cannot move onto a capstone")
	ErrOntoStanding    = errors.New("only a capstone can move onto a standing stone")
	ErrPieceExhausted  = errors.New("player has used all of that type of stone")
	ErrOutOfCapacity   = errors.New("too many pieces played")

	ErrWrongTurn                       = errors.New("not your turn")
	ErrMustPlaceFlatOnOpening          = errors.New("play a flat stone on the first turn")
	ErrMustPlaceOpponentPieceOnOpening = errors.New("play the opponent's stone on the first turn")
	ErrMustPlaceOwnPiece               = errors.New("player must play own piece")

	ErrCarryLimitExceeded = errors.New("cannot move more than the carry limit")
	ErrDropMismatch       = errors.New("dropped pieces differ from pieces picked up")
	ErrInsufficientPile   = errors.New("trying to move more pieces than exist")
	ErrNotMover           = errors.New("must control the pile to move it")
	ErrOffBoard           = errors.New("slide leaves the board")
)

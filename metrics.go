package takrules

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	movesApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "takrules",
		Name:      "moves_applied_total",
		Help:      "Moves accepted by the game engine, by kind.",
	}, []string{"kind"})

	movesRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "takrules",
		Name:      "moves_rejected_total",
		Help:      "Moves rejected by the game engine, by reason.",
	}, []string{"reason"})
)

// rejectReasons maps each sentinel to its metric label. Anything else is
// reported as "other".
var rejectReasons = []struct {
	err   error
	label string
}{
	{ErrWrongTurn, "wrong_turn"},
	{ErrInvalidNotation, "invalid_notation"},
	{ErrInvalidPoint, "invalid_point"},
	{ErrOccupiedSquare, "occupied_square"},
	{ErrOntoCapstone, "onto_capstone"},
	{ErrOntoStanding, "onto_standing"},
	{ErrPieceExhausted, "piece_exhausted"},
	{ErrMustPlaceFlatOnOpening, "opening_flat"},
	{ErrMustPlaceOpponentPieceOnOpening, "opening_opponent"},
	{ErrMustPlaceOwnPiece, "own_piece"},
	{ErrCarryLimitExceeded, "carry_limit"},
	{ErrDropMismatch, "drop_mismatch"},
	{ErrInsufficientPile, "insufficient_pile"},
	{ErrNotMover, "not_mover"},
	{ErrOffBoard, "off_board"},
	{ErrOutOfCapacity, "out_of_capacity"},
}

// RejectReason returns the metric label used for err.
func RejectReason(err error) string {
	for _, r := range rejectReasons {
		if errors.Is(err, r.err) {
			return r.label
		}
	}
	return "other"
}

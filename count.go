package takrules

import "fmt"

var (
	flatCounts     = [...]int{15, 20, 30, 40, 50}
	capstoneCounts = [...]int{0, 1, 1, 2, 2}
)

// PieceCount tracks how many stones each player has placed. Standing stones
// come out of the flat allotment.
type PieceCount struct {
	P1Flat int
	P1Cap  int
	P2Flat int
	P2Cap  int

	MaxFlat int
	MaxCap  int
}

// NewPieceCount returns an empty count with the allotments for size.
func NewPieceCount(size int) (PieceCount, error) {
	if size < MinSize || size > MaxSize {
		return PieceCount{}, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	return PieceCount{
		MaxFlat: flatCounts[size-MinSize],
		MaxCap:  capstoneCounts[size-MinSize],
	}, nil
}

func (c *PieceCount) counter(p Piece) *int {
	switch {
	case p.Owner == PlayerOne && p.Stone == StoneCap:
		return &c.P1Cap
	case p.Owner == PlayerOne:
		return &c.P1Flat
	case p.Stone == StoneCap:
		return &c.P2Cap
	default:
		return &c.P2Flat
	}
}

// Add records one placed piece.
func (c *PieceCount) Add(p Piece) {
	*c.counter(p)++
}

// UsedUp reports whether the owner of p has no more stones of that kind.
func (c PieceCount) UsedUp(p Piece) bool {
	if p.Stone == StoneCap {
		return *c.counter(p) >= c.MaxCap
	}
	return *c.counter(p) >= c.MaxFlat
}

// Exhausted reports whether player has placed every flat and capstone.
func (c PieceCount) Exhausted(player Player) bool {
	return c.UsedUp(NewPiece(StoneFlat, player)) && c.UsedUp(NewPiece(StoneCap, player))
}

// Remaining returns the flats and capstones player has left.
func (c PieceCount) Remaining(player Player) (flats, caps int) {
	if player == PlayerOne {
		return c.MaxFlat - c.P1Flat, c.MaxCap - c.P1Cap
	}
	return c.MaxFlat - c.P2Flat, c.MaxCap - c.P2Cap
}

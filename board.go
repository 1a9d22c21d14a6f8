package takrules

import "fmt"

// Board is a size×size grid of stacks. SliceBoard is the reference
// implementation; PackedBoard stores the same thing in fixed-width words.
// Callers should only depend on this interface.
type Board interface {
	// Size is the width of the board.
	Size() int

	// Place puts a piece on an empty square and counts it against the
	// owner's allotment.
	Place(p Point, pc Piece) error

	// Add stacks a piece on a square, flattening a standing stone under a
	// capstone. It does not touch the piece count.
	Add(p Point, pc Piece) error

	// Take detaches the top n pieces of a square, returned bottom first.
	Take(p Point, n int) ([]Piece, error)

	// At returns a copy of the stack on a square, bottom first.
	At(p Point) (Stack, error)

	// Height is the number of pieces on a square.
	Height(p Point) (int, error)

	IsFull() bool
	Count() PieceCount
	SetCount(c PieceCount)
	UsedUp(pc Piece) bool

	// Clone returns an independent copy of the board.
	Clone() Board
}

// NewBoard returns a SliceBoard of the given size.
func NewBoard(size int) (Board, error) {
	return NewSliceBoard(size)
}

// SliceBoard keeps every square as a slice of pieces.
type SliceBoard struct {
	size  int
	grid  []Stack
	count PieceCount
}

// NewSliceBoard returns an empty board. Sizes outside 4-8 are rejected.
func NewSliceBoard(size int) (*SliceBoard, error) {
	count, err := NewPieceCount(size)
	if err != nil {
		return nil, err
	}
	return &SliceBoard{
		size:  size,
		grid:  make([]Stack, size*size),
		count: count,
	}, nil
}

func (b *SliceBoard) index(p Point) (int, error) {
	if !p.In(b.size) {
		return 0, fmt.Errorf("%w: %s", ErrInvalidPoint, p)
	}
	return p.Y*b.size + p.X, nil
}

// Size is the width of the board.
func (b *SliceBoard) Size() int {
	return b.size
}

// Place puts pc on an empty square.
func (b *SliceBoard) Place(p Point, pc Piece) error {
	i, err := b.index(p)
	if err != nil {
		return err
	}
	if len(b.grid[i]) != 0 {
		return fmt.Errorf("%w: %s", ErrOccupiedSquare, p)
	}
	b.grid[i] = Stack{pc}
	b.count.Add(pc)
	return nil
}

// Add stacks pc on top of whatever is at p.
func (b *SliceBoard) Add(p Point, pc Piece) error {
	i, err := b.index(p)
	if err != nil {
		return err
	}
	sq := b.grid[i]
	if n := len(sq); n > 0 {
		base, err := pc.LandOn(sq[n-1])
		if err != nil {
			return fmt.Errorf("%w: %s", err, p)
		}
		sq[n-1] = base
	}
	b.grid[i] = append(sq, pc)
	return nil
}

// Take removes the top n pieces from p.
func (b *SliceBoard) Take(p Point, n int) ([]Piece, error) {
	i, err := b.index(p)
	if err != nil {
		return nil, err
	}
	sq := b.grid[i]
	if n < 0 || n > len(sq) {
		return nil, fmt.Errorf("%w: %d of %d at %s", ErrInsufficientPile, n, len(sq), p)
	}
	out := make([]Piece, n)
	copy(out, sq[len(sq)-n:])
	b.grid[i] = sq[:len(sq)-n:len(sq)-n]
	return out, nil
}

// At returns a copy of the stack at p.
func (b *SliceBoard) At(p Point) (Stack, error) {
	i, err := b.index(p)
	if err != nil {
		return nil, err
	}
	out := make(Stack, len(b.grid[i]))
	copy(out, b.grid[i])
	return out, nil
}

// Height is the number of pieces at p.
func (b *SliceBoard) Height(p Point) (int, error) {
	i, err := b.index(p)
	if err != nil {
		return 0, err
	}
	return len(b.grid[i]), nil
}

// IsFull reports whether every square holds at least one piece.
func (b *SliceBoard) IsFull() bool {
	for _, sq := range b.grid {
		if len(sq) == 0 {
			return false
		}
	}
	return true
}

// Count returns the pieces placed so far.
func (b *SliceBoard) Count() PieceCount {
	return b.count
}

// SetCount replaces the piece count, keeping the board's allotments.
func (b *SliceBoard) SetCount(c PieceCount) {
	c.MaxFlat, c.MaxCap = b.count.MaxFlat, b.count.MaxCap
	b.count = c
}

// UsedUp reports whether pc's owner has none of that stone left.
func (b *SliceBoard) UsedUp(pc Piece) bool {
	return b.count.UsedUp(pc)
}

// Clone returns a deep copy.
func (b *SliceBoard) Clone() Board {
	c := &SliceBoard{
		size:  b.size,
		grid:  make([]Stack, len(b.grid)),
		count: b.count,
	}
	for i, sq := range b.grid {
		if len(sq) > 0 {
			c.grid[i] = append(Stack(nil), sq...)
		}
	}
	return c
}

func (b *SliceBoard) String() string {
	return Render(b)
}

package takrules

import "fmt"

// Square word layout for PackedBoard:
//
//	15..13  top piece code (0 = empty square)
//	12      unused
//	11..0   six 2-bit slots for the flats under the top, newest in 11..10
//
// Pieces under the top are always flats, so a slot only needs the owner.
// Older pieces pushed out of slot 0 move into the square's continuations.
const (
	packedSize = 5

	topShift  = 13
	slotMask  = 0x0fff
	highShift = 10

	contShift = 14
	contCount = 7
)

func topCode(p Piece) uint16 {
	return uint16(p.Owner-1)*3 + uint16(p.Stone)
}

func pieceFromTop(code uint16) Piece {
	return Piece{
		Stone: Stone((code-1)%3 + 1),
		Owner: Player((code-1)/3 + 1),
	}
}

func pieceFromSlot(code uint16) Piece {
	return Piece{Stone: StoneFlat, Owner: Player(code)}
}

// continuation is an overflow record of eight 2-bit slots, newest in
// bits 15..14. loc is the owning square index plus one; zero means free.
// seq orders the records of one square, 0 being closest to the top.
type continuation struct {
	loc   uint8
	seq   uint8
	slots uint16
}

type contPool [contCount]continuation

// chain returns the pool indexes owned by loc, ordered by seq.
func (pool contPool) chain(loc uint8) []int {
	var out []int
	for seq := uint8(0); ; seq++ {
		found := false
		for i, c := range pool {
			if c.loc == loc && c.seq == seq {
				out = append(out, i)
				found = true
				break
			}
		}
		if !found {
			return out
		}
	}
}

// claim hands the first free record to loc.
func (pool contPool) claim(loc, seq uint8) (contPool, int, bool) {
	for i, c := range pool {
		if c.loc == 0 {
			pool[i] = continuation{loc: loc, seq: seq}
			return pool, i, true
		}
	}
	return pool, -1, false
}

// release frees every record that no longer holds a piece.
func (pool contPool) release() contPool {
	for i, c := range pool {
		if c.loc != 0 && c.slots == 0 {
			pool[i] = continuation{}
		}
	}
	return pool
}

// free counts the unclaimed records.
func (pool contPool) free() int {
	n := 0
	for _, c := range pool {
		if c.loc == 0 {
			n++
		}
	}
	return n
}

func countSlots(slots uint16, n int) int {
	count := 0
	for i := 0; i < n; i++ {
		if (slots>>(2*i))&3 != 0 {
			count++
		}
	}
	return count
}

// PackedBoard is a 5×5 board holding each square in one uint16 plus a
// shared pool of continuation records for tall stacks. It behaves exactly
// like SliceBoard except that it fails with ErrOutOfCapacity once the pool
// runs dry.
type PackedBoard struct {
	grid  [packedSize * packedSize]uint16
	pool  contPool
	count PieceCount
}

// NewPackedBoard returns an empty packed board. Only size 5 is supported.
func NewPackedBoard(size int) (*PackedBoard, error) {
	if size != packedSize {
		return nil, fmt.Errorf("%w: packed boards are %dx%d, not %d", ErrInvalidSize, packedSize, packedSize, size)
	}
	count, err := NewPieceCount(size)
	if err != nil {
		return nil, err
	}
	return &PackedBoard{count: count}, nil
}

func (b *PackedBoard) index(p Point) (int, error) {
	if !p.In(packedSize) {
		return 0, fmt.Errorf("%w: %s", ErrInvalidPoint, p)
	}
	return p.Y*packedSize + p.X, nil
}

// Size is always 5.
func (b *PackedBoard) Size() int {
	return packedSize
}

// Place puts pc on an empty square.
func (b *PackedBoard) Place(p Point, pc Piece) error {
	i, err := b.index(p)
	if err != nil {
		return err
	}
	if b.grid[i]>>topShift != 0 {
		return fmt.Errorf("%w: %s", ErrOccupiedSquare, p)
	}
	b.grid[i] = topCode(pc) << topShift
	b.count.Add(pc)
	return nil
}

// Add stacks pc on top of whatever is at p.
func (b *PackedBoard) Add(p Point, pc Piece) error {
	i, err := b.index(p)
	if err != nil {
		return err
	}
	if err := b.push(i, pc); err != nil {
		return fmt.Errorf("%w: %s", err, p)
	}
	return nil
}

func (b *PackedBoard) push(i int, pc Piece) error {
	w := b.grid[i]
	top := w >> topShift
	if top == 0 {
		b.grid[i] = topCode(pc) << topShift
		return nil
	}
	base, err := pc.LandOn(pieceFromTop(top))
	if err != nil {
		return err
	}

	// Work on a copy of the pool so a failure leaves the board untouched.
	pool := b.pool
	loc := uint8(i + 1)
	carry := w & 3
	if carry != 0 {
		chain := pool.chain(loc)
		for _, ci := range chain {
			out := pool[ci].slots & 3
			pool[ci].slots = pool[ci].slots>>2 | carry<<contShift
			carry = out
			if carry == 0 {
				break
			}
		}
		if carry != 0 {
			var ci int
			var ok bool
			pool, ci, ok = pool.claim(loc, uint8(len(chain)))
			if !ok {
				return ErrOutOfCapacity
			}
			pool[ci].slots = carry << contShift
		}
	}

	slots := (w&slotMask)>>2 | uint16(base.Owner)<<highShift
	b.grid[i] = topCode(pc)<<topShift | slots
	b.pool = pool
	return nil
}

// pop removes the top piece of a non-empty square.
func (b *PackedBoard) pop(i int) Piece {
	w := b.grid[i]
	top := pieceFromTop(w >> topShift)
	under := (w >> highShift) & 3
	if under == 0 {
		b.grid[i] = 0
		return top
	}

	slots := (w << 2) & slotMask
	chain := b.pool.chain(uint8(i + 1))
	var in uint16
	for j := len(chain) - 1; j >= 0; j-- {
		c := &b.pool[chain[j]]
		out := c.slots >> contShift
		c.slots = c.slots<<2 | in
		in = out
	}
	b.pool = b.pool.release()

	b.grid[i] = topCode(pieceFromSlot(under))<<topShift | slots | in
	return top
}

func (b *PackedBoard) height(i int) int {
	w := b.grid[i]
	if w>>topShift == 0 {
		return 0
	}
	h := 1 + countSlots(w&slotMask, 6)
	for _, ci := range b.pool.chain(uint8(i + 1)) {
		h += countSlots(b.pool[ci].slots, 8)
	}
	return h
}

// Take removes the top n pieces from p.
func (b *PackedBoard) Take(p Point, n int) ([]Piece, error) {
	i, err := b.index(p)
	if err != nil {
		return nil, err
	}
	h := b.height(i)
	if n < 0 || n > h {
		return nil, fmt.Errorf("%w: %d of %d at %s", ErrInsufficientPile, n, h, p)
	}
	out := make([]Piece, n)
	for j := n - 1; j >= 0; j-- {
		out[j] = b.pop(i)
	}
	return out, nil
}

// At decodes the stack at p.
func (b *PackedBoard) At(p Point) (Stack, error) {
	i, err := b.index(p)
	if err != nil {
		return nil, err
	}
	w := b.grid[i]
	if w>>topShift == 0 {
		return Stack{}, nil
	}

	out := make(Stack, 0, b.height(i))
	chain := b.pool.chain(uint8(i + 1))
	for j := len(chain) - 1; j >= 0; j-- {
		out = appendSlots(out, b.pool[chain[j]].slots, 8)
	}
	out = appendSlots(out, w&slotMask, 6)
	return append(out, pieceFromTop(w>>topShift)), nil
}

func appendSlots(out Stack, slots uint16, n int) Stack {
	for k := 0; k < n; k++ {
		if code := (slots >> (2 * k)) & 3; code != 0 {
			out = append(out, pieceFromSlot(code))
		}
	}
	return out
}

// Height is the number of pieces at p.
func (b *PackedBoard) Height(p Point) (int, error) {
	i, err := b.index(p)
	if err != nil {
		return 0, err
	}
	return b.height(i), nil
}

// IsFull reports whether every square holds at least one piece.
func (b *PackedBoard) IsFull() bool {
	for _, w := range b.grid {
		if w>>topShift == 0 {
			return false
		}
	}
	return true
}

// Count returns the pieces placed so far.
func (b *PackedBoard) Count() PieceCount {
	return b.count
}

// SetCount replaces the piece count, keeping the board's allotments.
func (b *PackedBoard) SetCount(c PieceCount) {
	c.MaxFlat, c.MaxCap = b.count.MaxFlat, b.count.MaxCap
	b.count = c
}

// UsedUp reports whether pc's owner has none of that stone left.
func (b *PackedBoard) UsedUp(pc Piece) bool {
	return b.count.UsedUp(pc)
}

// FreeContinuations is the number of unclaimed overflow records.
func (b *PackedBoard) FreeContinuations() int {
	return b.pool.free()
}

// Clone returns a copy; the board is plain values so this is a struct copy.
func (b *PackedBoard) Clone() Board {
	c := *b
	return &c
}

func (b *PackedBoard) String() string {
	return Render(b)
}

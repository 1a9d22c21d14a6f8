package takrules

import "fmt"

// MinSize and MaxSize bound the board sizes the rules support.
const (
	MinSize = 4
	MaxSize = 8
)

// Point is a square on the board. X is the file (a, b, ...) and Y is the
// rank minus one, so a1 is {0, 0}.
type Point struct {
	X int
	Y int
}

// ParsePoint reads a square like "c4". It accepts files a-h and ranks 1-8;
// whether the point fits a particular board is checked by the board.
func ParsePoint(s string) (Point, error) {
	if len(s) != 2 {
		return Point{}, fmt.Errorf("%w: square %q", ErrInvalidNotation, s)
	}
	file, rank := s[0], s[1]
	if file < 'a' || file >= 'a'+MaxSize || rank < '1' || rank >= '1'+MaxSize {
		return Point{}, fmt.Errorf("%w: square %q", ErrInvalidNotation, s)
	}
	return Point{X: int(file - 'a'), Y: int(rank - '1')}, nil
}

// In reports whether p lies on a board of the given size.
func (p Point) In(size int) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < size && p.Y < size
}

func (p Point) String() string {
	if !p.In(MaxSize) {
		return fmt.Sprintf("(%d,%d)", p.X, p.Y)
	}
	return fmt.Sprintf("%c%d", 'a'+p.X, p.Y+1)
}

// Direction is one of the four cardinal steps.
type Direction int

// Directions
const (
	Right Direction = iota
	Left
	Up
	Down
)

// Directions lists every direction in a fixed order.
var Directions = [4]Direction{Right, Left, Up, Down}

// Symbol returns the notation character for d.
func (d Direction) Symbol() byte {
	switch d {
	case Right:
		return '>'
	case Left:
		return '<'
	case Up:
		return '+'
	default:
		return '-'
	}
}

func (d Direction) String() string {
	return string(d.Symbol())
}

func directionFromSymbol(c byte) (Direction, bool) {
	switch c {
	case '>':
		return Right, true
	case '<':
		return Left, true
	case '+':
		return Up, true
	case '-':
		return Down, true
	}
	return 0, false
}

// Adjust steps distance squares from p. It returns false when the result
// would leave a board of the given size.
func (d Direction) Adjust(p Point, distance, size int) (Point, bool) {
	switch d {
	case Right:
		p.X += distance
	case Left:
		p.X -= distance
	case Up:
		p.Y += distance
	case Down:
		p.Y -= distance
	default:
		return Point{}, false
	}
	if !p.In(size) {
		return Point{}, false
	}
	return p, true
}

// Neighbors returns the points adjacent to p on a board of the given size.
func Neighbors(p Point, size int) []Point {
	out := make([]Point, 0, 4)
	for _, d := range Directions {
		if n, ok := d.Adjust(p, 1, size); ok {
			out = append(out, n)
		}
	}
	return out
}

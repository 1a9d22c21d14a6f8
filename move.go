package takrules

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MoveKind tells a placement from a slide.
type MoveKind int

// Kinds of moves
const (
	MovePlace MoveKind = iota
	MoveSlide
)

func (k MoveKind) String() string {
	if k == MoveSlide {
		return "slide"
	}
	return "place"
}

// Move is a single move in Tak. Placements use Point and Stone; slides use
// Count, Point, Direction and Drops. The owner of a placed stone is decided
// by the game, not the move.
type Move struct {
	Kind  MoveKind
	Point Point

	// Place only
	Stone Stone

	// Slide only
	Count     int
	Direction Direction
	Drops     []int
}

// Place returns a placement move.
func Place(p Point, s Stone) Move {
	return Move{Kind: MovePlace, Point: p, Stone: s}
}

// Slide returns a slide move. Count is the sum of drops.
func Slide(p Point, d Direction, drops ...int) Move {
	count := 0
	for _, n := range drops {
		count += n
	}
	return Move{Kind: MoveSlide, Point: p, Count: count, Direction: d, Drops: drops}
}

// (stone)(square) or (square)(stone)
var placeRegex = regexp.MustCompile(`^([FSC]?)([a-z][0-9])([FSC]?)$`)

// (count)(square)(direction)(drop counts)(stone)
var slideRegex = regexp.MustCompile(`^([0-9]?)([a-z][0-9])([<>+\-])([0-9]*)([FSC*]?)$`)

// maxNotation is longer than any legal move: count, square, direction, one
// drop per square of the widest board and a stone letter.
const maxNotation = 1 + 2 + 1 + MaxSize + 1

// ParseMove reads a move in either the abbreviated form ("a1S", "3c3>12")
// or the canonical form ("Sa1", "3c3>12"). A slide without a count moves
// one piece; a slide without drops drops everything on the first square.
func ParseMove(mv string) (Move, error) {
	// Strip quote marks, question marks, and exclamation marks (PTN annotations)
	text := strings.Trim(strings.TrimSpace(mv), "\"'?!")
	if len(text) < 2 || len(text) > maxNotation {
		return Move{}, fmt.Errorf("%w: %q has the wrong length", ErrInvalidNotation, mv)
	}

	if parts := placeRegex.FindStringSubmatch(text); parts != nil {
		return parsePlace(mv, parts)
	}
	if parts := slideRegex.FindStringSubmatch(text); parts != nil {
		return parseSlide(mv, parts)
	}
	return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, mv)
}

func parsePlace(mv string, parts []string) (Move, error) {
	if parts[1] != "" && parts[3] != "" {
		return Move{}, fmt.Errorf("%w: %q names two stones", ErrInvalidNotation, mv)
	}
	point, err := ParsePoint(parts[2])
	if err != nil {
		return Move{}, err
	}
	letter := parts[1] + parts[3]
	stone := StoneFlat
	if letter != "" {
		stone, _ = stoneFromLetter(letter[0])
	}
	return Place(point, stone), nil
}

func parseSlide(mv string, parts []string) (Move, error) {
	count := 1
	if parts[1] != "" {
		n, err := strconv.Atoi(parts[1])
		if err != nil || n < 1 {
			return Move{}, fmt.Errorf("%w: %q has a bad count", ErrInvalidNotation, mv)
		}
		count = n
	}

	point, err := ParsePoint(parts[2])
	if err != nil {
		return Move{}, err
	}
	dir, _ := directionFromSymbol(parts[3][0])

	drops := []int{count}
	if parts[4] != "" {
		drops = make([]int, 0, len(parts[4]))
		for _, c := range parts[4] {
			if c < '1' || c > '9' {
				return Move{}, fmt.Errorf("%w: %q has a bad drop count", ErrInvalidNotation, mv)
			}
			drops = append(drops, int(c-'0'))
		}
	}

	return Move{
		Kind:      MoveSlide,
		Point:     point,
		Count:     count,
		Direction: dir,
		Drops:     drops,
	}, nil
}

// String renders the canonical form of the move.
func (m Move) String() string {
	if m.Kind == MovePlace {
		if m.Stone == StoneFlat {
			return m.Point.String()
		}
		return m.Stone.String() + m.Point.String()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d%s%c", m.Count, m.Point, m.Direction.Symbol())
	for _, d := range m.Drops {
		b.WriteString(strconv.Itoa(d))
	}
	return b.String()
}

// Equal reports whether two moves are the same.
func (m Move) Equal(o Move) bool {
	if m.Kind != o.Kind || m.Point != o.Point {
		return false
	}
	if m.Kind == MovePlace {
		return m.Stone == o.Stone
	}
	if m.Count != o.Count || m.Direction != o.Direction || len(m.Drops) != len(o.Drops) {
		return false
	}
	for i := range m.Drops {
		if m.Drops[i] != o.Drops[i] {
			return false
		}
	}
	return true
}

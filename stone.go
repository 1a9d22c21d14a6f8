package takrules

import "fmt"

// Player is one of the two sides. NoPlayer is the zero value and stands for
// "nobody", for example when there is no winner yet.
type Player int

// Players
const (
	NoPlayer  Player = 0
	PlayerOne Player = 1
	PlayerTwo Player = 2
)

// Other returns the opponent of p. NoPlayer has no opponent.
func (p Player) Other() Player {
	switch p {
	case PlayerOne:
		return PlayerTwo
	case PlayerTwo:
		return PlayerOne
	}
	return NoPlayer
}

// Valid reports whether p is one of the two players.
func (p Player) Valid() bool {
	return p == PlayerOne || p == PlayerTwo
}

func (p Player) String() string {
	switch p {
	case PlayerOne:
		return "1"
	case PlayerTwo:
		return "2"
	}
	return "none"
}

// Stone is the kind of a piece.
type Stone int

// Stones
const (
	StoneFlat Stone = iota + 1
	StoneStanding
	StoneCap
)

// Stones lists every kind of stone in the order moves are generated.
var Stones = [3]Stone{StoneFlat, StoneStanding, StoneCap}

func (s Stone) String() string {
	switch s {
	case StoneFlat:
		return "F"
	case StoneStanding:
		return "S"
	case StoneCap:
		return "C"
	}
	return "?"
}

func stoneFromLetter(c byte) (Stone, bool) {
	switch c {
	case 'F':
		return StoneFlat, true
	case 'S':
		return StoneStanding, true
	case 'C':
		return StoneCap, true
	}
	return 0, false
}

// Piece is a single stone owned by a player.
type Piece struct {
	Stone Stone
	Owner Player
}

// NewPiece is shorthand for a Piece literal.
func NewPiece(s Stone, owner Player) Piece {
	return Piece{Stone: s, Owner: owner}
}

func (p Piece) String() string {
	return fmt.Sprintf("%s%s", p.Stone, p.Owner)
}

// LandOn checks whether p may be stacked on base. It returns the piece base
// becomes: a standing stone under a capstone is flattened, anything else is
// unchanged.
func (p Piece) LandOn(base Piece) (Piece, error) {
	switch base.Stone {
	case StoneCap:
		return base, ErrOntoCapstone
	case StoneStanding:
		if p.Stone != StoneCap {
			return base, ErrOntoStanding
		}
		base.Stone = StoneFlat
	}
	return base, nil
}

// Stack is the pieces on one square, bottom first.
type Stack []Piece

// Height is the number of pieces in the stack.
func (s Stack) Height() int {
	return len(s)
}

// Top returns the top piece, if any.
func (s Stack) Top() (Piece, bool) {
	if len(s) == 0 {
		return Piece{}, false
	}
	return s[len(s)-1], true
}

// Mover is the player allowed to move the stack.
func (s Stack) Mover() Player {
	top, ok := s.Top()
	if !ok {
		return NoPlayer
	}
	return top.Owner
}

// Owner is the player credited with the square for roads. Standing stones
// do not count.
func (s Stack) Owner() Player {
	top, ok := s.Top()
	if !ok || top.Stone == StoneStanding {
		return NoPlayer
	}
	return top.Owner
}

// Scorer is the player credited with the square when counting flats.
func (s Stack) Scorer() Player {
	top, ok := s.Top()
	if !ok || top.Stone != StoneFlat {
		return NoPlayer
	}
	return top.Owner
}

func (s Stack) String() string {
	out := ""
	for _, p := range s {
		out += p.String()
	}
	return out
}

package ptn

import (
	"fmt"
	"strings"

	"github.com/icco/takrules"
)

// Turn is a single turn played in a game: a move by each player. Second is
// nil when the game ended on the first player's move.
type Turn struct {
	Number  int
	First   *takrules.Move
	Second  *takrules.Move
	Result  string
	Comment string
}

// Moves returns the moves of the turn in the order they were played.
func (t *Turn) Moves() []takrules.Move {
	var out []takrules.Move
	for _, m := range []*takrules.Move{t.First, t.Second} {
		if m != nil {
			out = append(out, *m)
		}
	}
	return out
}

// Text returns a PTN formated string of the turn.
func (t *Turn) Text() string {
	var parts []string
	if t.First != nil {
		parts = append(parts, fmt.Sprintf("%d.", t.Number), t.First.String())
		if t.Second != nil {
			parts = append(parts, t.Second.String())
		}
		if t.Result != "" {
			parts = append(parts, t.Result)
		}
	}

	if t.Comment != "" {
		parts = append(parts, fmt.Sprintf("{ %s }", t.Comment))
	}

	return strings.Join(parts, " ")
}

// Debug is a verbose dumping of the object and its sub objects.
func (t *Turn) Debug() string {
	return fmt.Sprintf("&{%d 1:%+v 2:%+v Result:%+v Comment: %q}", t.Number, t.First, t.Second, t.Result, t.Comment)
}

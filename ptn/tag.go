package ptn

import "fmt"

// Tag is a Key and Value pair stored providing meta about a game.
type Tag struct {
	Key   string
	Value string
}

// Tags written by FromGame.
const (
	TagSize    = "Size"
	TagPlayer1 = "Player1"
	TagPlayer2 = "Player2"
	TagDate    = "Date"
	TagResult  = "Result"
)

// DateFormat is the layout of the Date tag.
const DateFormat = "2006.01.02"

func (t *Tag) String() string {
	return fmt.Sprintf("%s: %s", t.Key, t.Value)
}

// Text returns the tag as a PTN header line.
func (t *Tag) Text() string {
	return fmt.Sprintf("[%s %q]", t.Key, t.Value)
}

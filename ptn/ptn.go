// Package ptn reads and writes games in Portable Tak Notation.
package ptn

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/icco/gutil/logging"
	"github.com/icco/takrules"
)

var log = logging.Must(logging.NewLogger(takrules.Service))

// ErrNoSuchTag is returned by GetMeta for a missing tag.
var ErrNoSuchTag = errors.New("no such meta key")

var (
	// Example: [Tag_Name "Tag Data"]
	tagRegex     = regexp.MustCompile(`\[([0-9A-Za-z_]+) "(.*)"\]`)
	commentRegex = regexp.MustCompile(`{[^}]*}`)
	numberRegex  = regexp.MustCompile(`^[0-9]+$`)
	resultRegex  = regexp.MustCompile(`^(R-0|0-R|F-0|0-F|1-0|0-1|1/2-1/2|0-0)$`)
)

// Record is a parsed game record. Most data is stored in the tags.
type Record struct {
	Tags  []*Tag
	Turns []*Turn
}

// GetMeta does a linear search for the key specified and returns the value. It
// returns an error if the key does not exist.
func (r *Record) GetMeta(key string) (string, error) {
	for _, t := range r.Tags {
		if t != nil && t.Key == key {
			return t.Value, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrNoSuchTag, key)
}

// SetMeta replaces the value of a tag, adding it if needed.
func (r *Record) SetMeta(key, value string) {
	for _, t := range r.Tags {
		if t != nil && t.Key == key {
			t.Value = value
			return
		}
	}
	r.Tags = append(r.Tags, &Tag{Key: key, Value: value})
}

// Size reads the Size tag.
func (r *Record) Size() (int, error) {
	size, err := r.GetMeta(TagSize)
	if err != nil {
		return 0, err
	}
	num, err := strconv.Atoi(size)
	if err != nil {
		return 0, fmt.Errorf("%w: size %q", takrules.ErrInvalidSize, size)
	}
	return num, nil
}

// Parse parses a .ptn file.
func Parse(ptn []byte) (*Record, error) {
	ret := &Record{}

	s := bufio.NewScanner(bytes.NewReader(ptn))
	line := 0
	for s.Scan() {
		line++
		l := s.Text()
		if ta := parseTag(l); ta != nil {
			ret.Tags = append(ret.Tags, ta)
			continue
		}

		tu, err := parseTurn(l)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if tu != nil && tu.Number > 0 {
			ret.Turns = append(ret.Turns, tu)
		}
	}

	if err := s.Err(); err != nil {
		return ret, err
	}

	if _, err := ret.Size(); err != nil {
		return nil, err
	}

	return ret, nil
}

func parseTag(line string) *Tag {
	parts := tagRegex.FindStringSubmatch(line)
	if len(parts) < 3 {
		return nil
	}
	return &Tag{
		Key:   parts[1],
		Value: parts[2],
	}
}

func parseTurn(line string) (*Turn, error) {
	turn := &Turn{}

	// Parse out comments
	var comments []string
	for _, c := range commentRegex.FindAllString(line, -1) {
		comments = append(comments, strings.TrimSpace(strings.Trim(c, "{}")))
	}
	turn.Comment = strings.Join(comments, " ")

	cleanLine := strings.TrimSpace(commentRegex.ReplaceAllString(line, ""))
	if cleanLine == "" {
		if turn.Comment != "" {
			return turn, nil
		}
		return nil, nil
	}

	fields := strings.Fields(cleanLine)
	if len(fields) < 2 || len(fields) > 4 {
		return nil, fmt.Errorf("%w: line doesn't have correct number of parts: %+v", takrules.ErrInvalidNotation, fields)
	}

	// Branches and variations ("3...") are not numbered with plain integers.
	numberVal := strings.TrimSuffix(fields[0], ".")
	if !numberRegex.MatchString(numberVal) {
		log.Debugw("not a turn number, ignoring line", "number", numberVal, "line", line)
		return nil, nil
	}
	num, err := strconv.Atoi(numberVal)
	if err != nil {
		return nil, err
	}
	turn.Number = num

	rest := fields[1:]
	if last := rest[len(rest)-1]; resultRegex.MatchString(last) {
		turn.Result = last
		rest = rest[:len(rest)-1]
	}
	if len(rest) == 0 || len(rest) > 2 {
		return nil, fmt.Errorf("%w: turn %d has %d moves", takrules.ErrInvalidNotation, num, len(rest))
	}

	for i, text := range rest {
		m, err := takrules.ParseMove(text)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			turn.First = &m
		} else {
			turn.Second = &m
		}
	}

	return turn, nil
}

// Moves flattens the turns into the moves in play order.
func (r *Record) Moves() []takrules.Move {
	var out []takrules.Move
	for _, t := range r.Turns {
		out = append(out, t.Moves()...)
	}
	return out
}

// ReplayInto plays every move of the record on g. It stops at the first
// move the rules reject.
func (r *Record) ReplayInto(g *takrules.Game) error {
	for _, t := range r.Turns {
		for i, m := range t.Moves() {
			if _, err := g.Apply(m, g.Next(), takrules.NoPlayer); err != nil {
				return fmt.Errorf("turn %d move %d (%s): %w", t.Number, i+1, m, err)
			}
		}
	}
	return nil
}

// Replay plays the record on a new game of the record's size.
func (r *Record) Replay() (*takrules.Game, error) {
	size, err := r.Size()
	if err != nil {
		return nil, err
	}
	g, err := takrules.NewGame(size)
	if err != nil {
		return nil, err
	}
	if err := r.ReplayInto(g); err != nil {
		return g, err
	}
	return g, nil
}

// Result describes the outcome of g the way PTN does: R-0 or 0-R for a road
// win, F-0 or 0-F for a flat win, and an empty string while nobody has won.
func Result(g *takrules.Game) string {
	winner := g.Winner()
	if winner == takrules.NoPlayer {
		return ""
	}

	kind := "F"
	if p, _ := takrules.RoadWinner(g.Board(), g.RoadTie, g.Next().Other()); p == winner {
		kind = "R"
	}
	if winner == takrules.PlayerOne {
		return kind + "-0"
	}
	return "0-" + kind
}

// FromGame builds a record of every move played in g. The given tags are
// kept; Size and Result are always set from the game and Date defaults to
// today.
func FromGame(g *takrules.Game, tags ...*Tag) *Record {
	r := &Record{}
	for _, t := range tags {
		if t != nil {
			r.SetMeta(t.Key, t.Value)
		}
	}
	r.SetMeta(TagSize, strconv.Itoa(g.Size()))
	if _, err := r.GetMeta(TagDate); err != nil {
		r.SetMeta(TagDate, time.Now().Format(DateFormat))
	}
	result := Result(g)
	r.SetMeta(TagResult, result)

	history := g.History()
	for i := 0; i < len(history); i += 2 {
		t := &Turn{Number: i/2 + 1, First: &history[i]}
		if i+1 < len(history) {
			t.Second = &history[i+1]
		}
		r.Turns = append(r.Turns, t)
	}
	if n := len(r.Turns); n > 0 {
		r.Turns[n-1].Result = result
	}
	return r
}

// String renders the record as a PTN file.
func (r *Record) String() string {
	var b strings.Builder
	for _, t := range r.Tags {
		b.WriteString(t.Text())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	for _, t := range r.Turns {
		b.WriteString(t.Text())
		b.WriteString("\n")
	}
	return b.String()
}

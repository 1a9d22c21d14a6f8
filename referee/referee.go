// Package referee plays every move on a second, independent rules engine
// and reports when the two disagree.
package referee

import (
	"errors"
	"fmt"

	"github.com/icco/gutil/logging"
	"github.com/icco/takrules"
	takptn "github.com/nelhage/taktician/ptn"
	"github.com/nelhage/taktician/tak"
	"go.uber.org/zap"
)

var log = logging.Must(logging.NewLogger(takrules.Service))

// ErrDisagreement is returned when a move was applied to the game but the
// reference engine rejects it. After that the referee stops mirroring.
var ErrDisagreement = errors.New("reference engine rejected an accepted move")

// Referee wraps a game and mirrors every accepted move on taktician's
// position.
type Referee struct {
	game     *takrules.Game
	pos      *tak.Position
	diverged bool
}

// New mirrors g, replaying the moves it has already seen.
func New(g *takrules.Game) (*Referee, error) {
	r := &Referee{
		game: g,
		pos:  tak.New(tak.Config{Size: g.Size()}),
	}
	for i, m := range g.History() {
		next, err := r.mirror(m)
		if err != nil {
			return nil, fmt.Errorf("%w: move %d %s: %v", ErrDisagreement, i+1, m, err)
		}
		r.pos = next
	}
	return r, nil
}

// Game is the game being refereed.
func (r *Referee) Game() *takrules.Game {
	return r.game
}

// Diverged reports whether the engines have disagreed on a move.
func (r *Referee) Diverged() bool {
	return r.diverged
}

func (r *Referee) mirror(m takrules.Move) (*tak.Position, error) {
	tm, err := takptn.ParseMove(m.String())
	if err != nil {
		return nil, err
	}
	return r.pos.Move(tm)
}

// Play applies mv for whoever is next. Errors from the game are returned
// as is; a move the game accepts but the reference rejects is still
// applied and reported with ErrDisagreement.
func (r *Referee) Play(mv string) (takrules.Player, error) {
	m, err := takrules.ParseMove(mv)
	if err != nil {
		return takrules.NoPlayer, err
	}
	return r.Apply(m)
}

// Apply is Play for a parsed move.
func (r *Referee) Apply(m takrules.Move) (takrules.Player, error) {
	var next *tak.Position
	var refErr error
	if !r.diverged {
		next, refErr = r.mirror(m)
	}

	winner, err := r.game.Apply(m, r.game.Next(), takrules.NoPlayer)
	if err != nil {
		if !r.diverged && refErr == nil {
			log.Infow("move accepted only by the reference", "move", m.String(), zap.Error(err))
		}
		return winner, err
	}
	if r.diverged {
		return winner, nil
	}
	if refErr != nil {
		r.diverged = true
		log.Warnw("engines disagree", "move", m.String(), "turn", r.game.TurnNumber(), zap.Error(refErr))
		return winner, fmt.Errorf("%w: %s: %v", ErrDisagreement, m, refErr)
	}

	r.pos = next
	if over, color := next.GameOver(); over != (winner != takrules.NoPlayer) || (over && fromColor(color) != winner) {
		log.Infow("engines report different results", "move", m.String(), "over", over, "winner", winner.String())
	}
	return winner, nil
}

// ReferenceOver reports whether the reference engine considers the game
// finished, and who it says won.
func (r *Referee) ReferenceOver() (bool, takrules.Player) {
	over, color := r.pos.GameOver()
	if !over {
		return false, takrules.NoPlayer
	}
	return true, fromColor(color)
}

func fromColor(c tak.Color) takrules.Player {
	if c == tak.White {
		return takrules.PlayerOne
	}
	return takrules.PlayerTwo
}

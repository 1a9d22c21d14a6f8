// Package ai holds computer players.
package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/icco/takrules"
)

// ErrNoMoves is returned when the player to move has nothing legal to do.
var ErrNoMoves = errors.New("no legal moves")

// Engine is the interface for AI move generation.
type Engine interface {
	GetMove(ctx context.Context, g *takrules.Game) (takrules.Move, error)
	ExplainMove(ctx context.Context, g *takrules.Game) (string, error)
}

// CornerEngine is a placeholder player. It opens in a corner, a1 or the top
// left if a1 is taken, and after that plays the first legal move it finds.
type CornerEngine struct{}

func (e *CornerEngine) corner(g *takrules.Game) (takrules.Move, bool) {
	if g.TurnNumber() >= 2 {
		return takrules.Move{}, false
	}
	for _, p := range []takrules.Point{{X: 0, Y: 0}, {X: 0, Y: g.Size() - 1}} {
		if h, err := g.Board().Height(p); err == nil && h == 0 {
			return takrules.Place(p, takrules.StoneFlat), true
		}
	}
	return takrules.Move{}, false
}

// GetMove picks the next move for whoever is to play.
func (e *CornerEngine) GetMove(ctx context.Context, g *takrules.Game) (takrules.Move, error) {
	if err := ctx.Err(); err != nil {
		return takrules.Move{}, err
	}
	if m, ok := e.corner(g); ok {
		return m, nil
	}

	moves := g.LegalMoves()
	if len(moves) == 0 {
		return takrules.Move{}, ErrNoMoves
	}
	return moves[0], nil
}

// ExplainMove describes the move GetMove would pick.
func (e *CornerEngine) ExplainMove(ctx context.Context, g *takrules.Game) (string, error) {
	m, err := e.GetMove(ctx, g)
	if err != nil {
		return "", err
	}
	if _, ok := e.corner(g); ok {
		return fmt.Sprintf("Opening in the corner with %s.", m), nil
	}
	return fmt.Sprintf("Playing %s, the first of %d legal moves.", m, len(g.LegalMoves())), nil
}

// Play asks e for a move and applies it to g for the player to move.
func Play(ctx context.Context, e Engine, g *takrules.Game) (takrules.Move, takrules.Player, error) {
	m, err := e.GetMove(ctx, g)
	if err != nil {
		return takrules.Move{}, takrules.NoPlayer, err
	}
	winner, err := g.Apply(m, g.Next(), takrules.NoPlayer)
	if err != nil {
		return m, takrules.NoPlayer, fmt.Errorf("engine picked %s: %w", m, err)
	}
	return m, winner, nil
}

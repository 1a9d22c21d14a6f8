package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/icco/takrules"
	"github.com/icco/takrules/ai"
	"github.com/icco/takrules/ptn"
	"github.com/icco/takrules/referee"
	"github.com/jessevdk/go-flags"
)

// player applies moves to a game, through a referee when there is one.
type player struct {
	g   *takrules.Game
	ref *referee.Referee
}

func newPlayer(g *takrules.Game, checked bool) (*player, error) {
	p := &player{g: g}
	if !checked {
		return p, nil
	}
	r, err := referee.New(g)
	if err != nil {
		return nil, err
	}
	p.ref = r
	return p, nil
}

func (p *player) apply(m takrules.Move) (takrules.Player, error) {
	if p.ref == nil {
		return p.g.Apply(m, p.g.Next(), takrules.NoPlayer)
	}
	winner, err := p.ref.Apply(m)
	if errors.Is(err, referee.ErrDisagreement) {
		fmt.Fprintln(errOut, errorStyle.Render(err.Error()))
		return winner, nil
	}
	return winner, err
}

func (p *player) play(moves []string) error {
	for _, mv := range moves {
		m, err := takrules.ParseMove(mv)
		if err != nil {
			return err
		}
		winner, err := p.apply(m)
		if err != nil {
			return fmt.Errorf("move %d %s: %w", p.g.TurnNumber()+1, mv, err)
		}
		log.Debugw("played", "move", m.String(), "winner", winner.String())
	}
	return nil
}

// PlayCommand plays moves from the command line and optionally lets the
// computer continue.
type PlayCommand struct {
	Engine  int  `short:"e" long:"engine" description:"Let the computer play this many more moves"`
	Referee bool `short:"r" long:"referee" description:"Check every move against taktician"`
	PTN     bool `long:"ptn" description:"Print the game as PTN"`

	Args struct {
		Moves []string `positional-arg-name:"move"`
	} `positional-args:"yes"`
}

// Execute runs the command.
func (c *PlayCommand) Execute(args []string) error {
	cfg, err := settings()
	if err != nil {
		return err
	}
	g, err := newGame(cfg)
	if err != nil {
		return err
	}
	p, err := newPlayer(g, c.Referee)
	if err != nil {
		return err
	}
	if err := p.play(c.Args.Moves); err != nil {
		return err
	}

	var engine ai.Engine = &ai.CornerEngine{}
	ctx := context.Background()
	for i := 0; i < c.Engine && g.Winner() == takrules.NoPlayer; i++ {
		m, err := engine.GetMove(ctx, g)
		if err != nil {
			return err
		}
		if _, err := p.apply(m); err != nil {
			return fmt.Errorf("engine move %s: %w", m, err)
		}
		log.Infow("engine moved", "move", m.String(), "turn", g.TurnNumber())
	}

	if c.PTN {
		fmt.Fprint(out, ptn.FromGame(g).String())
		return nil
	}
	fmt.Fprintln(out, renderGame(g, opts.Plain))
	return nil
}

// MovesCommand lists every legal move for the player to move.
type MovesCommand struct {
	Count bool `long:"count" description:"Only print how many moves there are"`

	Args struct {
		Moves []string `positional-arg-name:"move"`
	} `positional-args:"yes"`
}

// Execute runs the command.
func (c *MovesCommand) Execute(args []string) error {
	cfg, err := settings()
	if err != nil {
		return err
	}
	g, err := newGame(cfg)
	if err != nil {
		return err
	}
	p, _ := newPlayer(g, false)
	if err := p.play(c.Args.Moves); err != nil {
		return err
	}

	moves := g.LegalMoves()
	if !c.Count {
		for _, m := range moves {
			fmt.Fprintln(out, m)
		}
	}
	fmt.Fprintf(out, "%d moves for player %s\n", len(moves), g.Next())
	return nil
}

// BoardCommand shows a position written in board notation.
type BoardCommand struct {
	Args struct {
		Position string `positional-arg-name:"position" required:"yes"`
	} `positional-args:"yes"`
}

// Execute runs the command.
func (c *BoardCommand) Execute(args []string) error {
	cfg, err := settings()
	if err != nil {
		return err
	}

	var b takrules.Board
	if cfg.Packed {
		pb, err := takrules.NewPackedBoard(5)
		if err != nil {
			return err
		}
		if err := takrules.ParseBoardInto(pb, c.Args.Position); err != nil {
			return err
		}
		b = pb
	} else {
		sb, err := takrules.ParseBoard(c.Args.Position)
		if err != nil {
			return err
		}
		b = sb
	}

	if opts.Plain {
		fmt.Fprintln(out, takrules.Render(b))
	} else {
		fmt.Fprintln(out, renderBoard(b))
		fmt.Fprintln(out, renderCounts(b))
	}
	if w := takrules.Winner(b); w != takrules.NoPlayer {
		fmt.Fprintf(out, "Player %s wins\n", w)
	}
	fmt.Fprintf(out, "%d moves for player 1, %d for player 2\n",
		len(takrules.Moves(b, takrules.PlayerOne)), len(takrules.Moves(b, takrules.PlayerTwo)))
	return nil
}

// ReplayCommand replays a PTN file.
type ReplayCommand struct {
	Referee bool `short:"r" long:"referee" description:"Check every move against taktician"`
	PTN     bool `long:"ptn" description:"Print the game as PTN"`

	Args struct {
		File flags.Filename `positional-arg-name:"file" required:"yes"`
	} `positional-args:"yes"`
}

// Execute runs the command.
func (c *ReplayCommand) Execute(args []string) error {
	cfg, err := settings()
	if err != nil {
		return err
	}
	data, err := os.ReadFile(string(c.Args.File))
	if err != nil {
		return err
	}
	r, err := ptn.Parse(data)
	if err != nil {
		return err
	}
	size, err := r.Size()
	if err != nil {
		return err
	}

	cfg.Size = size
	if cfg.Packed && size != 5 {
		cfg.Packed = false
	}
	g, err := newGame(cfg)
	if err != nil {
		return err
	}
	p, err := newPlayer(g, c.Referee)
	if err != nil {
		return err
	}
	for _, m := range r.Moves() {
		if _, err := p.apply(m); err != nil {
			return fmt.Errorf("move %d %s: %w", g.TurnNumber()+1, m, err)
		}
	}
	log.Infow("replayed", "file", string(c.Args.File), "moves", g.TurnNumber(), "result", ptn.Result(g))

	if c.PTN {
		fmt.Fprint(out, ptn.FromGame(g, r.Tags...).String())
		return nil
	}
	fmt.Fprintln(out, renderGame(g, opts.Plain))
	return nil
}

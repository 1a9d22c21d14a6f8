package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/icco/takrules"
	"github.com/icco/takrules/internal/config"
	"github.com/icco/takrules/store"
	"go.uber.org/zap"
)

// StoreCommand groups the commands that work on the database.
type StoreCommand struct {
	New  StoreNewCommand  `command:"new" description:"Create a match"`
	Move StoreMoveCommand `command:"move" description:"Play a move in a match"`
	Show StoreShowCommand `command:"show" description:"Show a match"`
	List StoreListCommand `command:"list" description:"List recent matches"`
}

func openStore() (*store.Store, *config.Config, error) {
	cfg, err := settings()
	if err != nil {
		return nil, nil, err
	}
	dsn, err := cfg.Database()
	if err != nil {
		return nil, nil, err
	}
	s, err := store.Open(dsn)
	if err != nil {
		log.Errorw("could not open database", zap.Error(err))
		return nil, nil, err
	}
	return s, cfg, nil
}

// StoreNewCommand creates a match using the current settings.
type StoreNewCommand struct {
	Tags []string `short:"t" long:"tag" description:"PTN tag as Key=Value, may be repeated"`
}

// Execute runs the command.
func (c *StoreNewCommand) Execute(args []string) error {
	s, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	tags := map[string]string{}
	for _, t := range c.Tags {
		k, v, ok := strings.Cut(t, "=")
		if !ok {
			return fmt.Errorf("%w: %q is not Key=Value", store.ErrInvalidTag, t)
		}
		tags[k] = v
	}

	slug, err := s.CreateMatch(context.Background(), store.Options{
		Size:    cfg.Size,
		Packed:  cfg.Packed,
		RoadTie: cfg.RoadTieRule(),
		Tags:    tags,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(out, slug)
	return nil
}

// StoreMoveCommand validates and records one move.
type StoreMoveCommand struct {
	Args struct {
		Slug   string `positional-arg-name:"slug" required:"yes"`
		Player int    `positional-arg-name:"player" required:"yes"`
		Move   string `positional-arg-name:"move" required:"yes"`
	} `positional-args:"yes"`
}

// Execute runs the command.
func (c *StoreMoveCommand) Execute(args []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	winner, err := s.RecordMove(ctx, c.Args.Slug, takrules.Player(c.Args.Player), c.Args.Move)
	if err != nil {
		return err
	}
	log.Infow("recorded move", "slug", c.Args.Slug, "move", c.Args.Move, "winner", winner.String())

	g, _, err := s.LoadGame(ctx, c.Args.Slug)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, renderGame(g, opts.Plain))
	return nil
}

// StoreShowCommand prints a stored match.
type StoreShowCommand struct {
	PTN bool `long:"ptn" description:"Print the match as PTN"`

	Args struct {
		Slug string `positional-arg-name:"slug" required:"yes"`
	} `positional-args:"yes"`
}

// Execute runs the command.
func (c *StoreShowCommand) Execute(args []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	if c.PTN {
		r, err := s.Record(ctx, c.Args.Slug)
		if err != nil {
			return err
		}
		fmt.Fprint(out, r.String())
		return nil
	}

	g, m, err := s.LoadGame(ctx, c.Args.Slug)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s (%s)\n", m.Slug, m.Status)
	fmt.Fprintln(out, renderGame(g, opts.Plain))
	return nil
}

// StoreListCommand prints recent matches.
type StoreListCommand struct {
	Limit int `short:"n" long:"limit" default:"20" description:"How many matches to list"`
}

// Execute runs the command.
func (c *StoreListCommand) Execute(args []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	matches, err := s.List(context.Background(), c.Limit)
	if err != nil {
		return err
	}
	for _, m := range matches {
		winner := takrules.Player(m.Winner)
		fmt.Fprintf(out, "%s\t%dx%d\t%s\t%s\n", m.Slug, m.Size, m.Size, m.Status, winner)
	}
	return nil
}

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/icco/gutil/logging"
	"github.com/icco/takrules"
	"github.com/icco/takrules/internal/config"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
)

var (
	log = logging.Must(logging.NewLogger(takrules.Service))

	out    io.Writer = os.Stdout
	errOut io.Writer = os.Stderr
)

// Options are shared by every command.
type Options struct {
	Config      flags.Filename `short:"c" long:"config" description:"YAML config file, instead of takrules/config.yaml in the XDG config dirs"`
	Size        int            `short:"s" long:"size" description:"Board size"`
	Packed      bool           `long:"packed" description:"Use the packed 5x5 board"`
	RoadTie     string         `long:"road-tie" choice:"order" choice:"mover" choice:"undefined" description:"Who wins when a move completes two roads"`
	DatabaseURL string         `long:"database-url" env:"DATABASE_URL" description:"Postgres URL or sqlite file"`
	Verbose     bool           `short:"v" long:"verbose" description:"Log debug output"`
	Plain       bool           `long:"plain" description:"Print boards without colors"`

	Play   PlayCommand   `command:"play" description:"Play moves on a new game"`
	Moves  MovesCommand  `command:"moves" description:"List the legal moves after the given moves"`
	Board  BoardCommand  `command:"board" description:"Show a position given in board notation"`
	Replay ReplayCommand `command:"replay" description:"Replay a PTN file"`
	Store  StoreCommand  `command:"store" description:"Work with stored matches"`
}

var opts Options

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts = Options{}
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.ParseArgs(args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			fmt.Fprintln(out, ferr.Message)
			return 0
		}
		log.Debugw("command failed", zap.Error(err))
		fmt.Fprintln(errOut, errorStyle.Render(err.Error()))
		return 1
	}
	return 0
}

// settings merges the config file with the flags that were given.
func settings() (*config.Config, error) {
	var c *config.Config
	var err error
	if opts.Config != "" {
		c, err = config.Load(string(opts.Config))
	} else {
		c, err = config.Init()
	}
	if err != nil {
		return nil, err
	}

	if opts.Size != 0 {
		c.Size = opts.Size
	}
	if opts.Packed {
		c.Packed = true
	}
	if opts.RoadTie != "" {
		c.RoadTie = opts.RoadTie
	}
	if opts.DatabaseURL != "" {
		c.DatabaseURL = opts.DatabaseURL
	}
	if opts.Verbose {
		c.Verbose = true
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if c.Verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
		log = l.Sugar()
	}
	return c, nil
}

func newGame(c *config.Config) (*takrules.Game, error) {
	var g *takrules.Game
	var err error
	if c.Packed {
		g, err = takrules.NewPackedGame(c.Size)
	} else {
		g, err = takrules.NewGame(c.Size)
	}
	if err != nil {
		return nil, err
	}
	g.RoadTie = c.RoadTieRule()
	return g, nil
}

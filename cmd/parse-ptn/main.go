package main

import (
	"fmt"
	"io"
	"os"

	"github.com/icco/gutil/logging"
	"github.com/icco/takrules"
	"github.com/icco/takrules/ptn"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
)

var log = logging.Must(logging.NewLogger(takrules.Service))

var opts struct {
	Filename flags.Filename `short:"f" long:"filename" description:"PTN file to parse" required:"true"`
	Moves    bool           `short:"m" long:"moves" description:"Print every move as it is played"`
}

func main() {
	_, err := flags.Parse(&opts)
	if err != nil {
		os.Exit(1)
	}

	if err := parse(string(opts.Filename), opts.Moves, os.Stdout); err != nil {
		log.Errorw("could not replay game", "file", string(opts.Filename), zap.Error(err))
		os.Exit(1)
	}
}

func parse(filename string, verbose bool, w io.Writer) error {
	file, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	r, err := ptn.Parse(file)
	if err != nil {
		return err
	}

	size, err := r.Size()
	if err != nil {
		return err
	}
	g, err := takrules.NewGame(size)
	if err != nil {
		return err
	}

	if verbose {
		for _, t := range r.Turns {
			fmt.Fprintln(w, t.Debug())
		}
	}
	if err := r.ReplayInto(g); err != nil {
		fmt.Fprintln(w, g)
		return err
	}

	fmt.Fprintln(w, g)
	fmt.Fprintln(w, takrules.FormatBoard(g.Board()))
	if result := ptn.Result(g); result != "" {
		fmt.Fprintln(w, result)
	}
	return nil
}

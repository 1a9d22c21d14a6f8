package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/icco/takrules"
)

var (
	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginLeft(2)

	boardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1).
			MarginLeft(2)

	cellStyle = lipgloss.NewStyle().
			Width(5).
			Height(1).
			Align(lipgloss.Center)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			MarginLeft(2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true).
			MarginLeft(2)
)

func renderBoard(b takrules.Board) string {
	size := b.Size()
	var rows []string

	header := "   "
	for i := 0; i < size; i++ {
		header += cellStyle.Render(string(rune('a' + i)))
	}
	rows = append(rows, header)

	// Rank 1 goes at the bottom.
	for y := size - 1; y >= 0; y-- {
		row := fmt.Sprintf("%2d ", y+1)
		for x := 0; x < size; x++ {
			s, _ := b.At(takrules.Point{X: x, Y: y})
			row += renderCell(s)
		}
		row += fmt.Sprintf(" %d", y+1)
		rows = append(rows, row)
	}
	rows = append(rows, header)

	return boardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func renderCell(s takrules.Stack) string {
	top, ok := s.Top()
	if !ok {
		return cellStyle.
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("240")).
			Render("·")
	}

	content := stoneSymbol(top)
	if s.Height() > 1 {
		content += fmt.Sprint(s.Height())
	}

	bg, fg := "240", "255"
	if top.Owner == takrules.PlayerTwo {
		bg, fg = "250", "16"
	}
	return cellStyle.
		Background(lipgloss.Color(bg)).
		Foreground(lipgloss.Color(fg)).
		Render(content)
}

func stoneSymbol(p takrules.Piece) string {
	one := p.Owner == takrules.PlayerOne
	switch p.Stone {
	case takrules.StoneFlat:
		if one {
			return "○"
		}
		return "●"
	case takrules.StoneStanding:
		if one {
			return "□"
		}
		return "■"
	case takrules.StoneCap:
		if one {
			return "◇"
		}
		return "◆"
	}
	return "?"
}

func renderCounts(b takrules.Board) string {
	c := b.Count()
	one, two := takrules.FlatCounts(b)
	var lines []string
	for _, p := range []takrules.Player{takrules.PlayerOne, takrules.PlayerTwo} {
		flats, caps := c.Remaining(p)
		score := one
		if p == takrules.PlayerTwo {
			score = two
		}
		lines = append(lines, fmt.Sprintf("Player %s: %d flats and %d capstones left, %d flats on top", p, flats, caps, score))
	}
	return infoStyle.Render(strings.Join(lines, "\n"))
}

func renderStatus(g *takrules.Game) string {
	switch {
	case g.Winner() != takrules.NoPlayer:
		return titleStyle.Render(fmt.Sprintf("Player %s wins after %d moves", g.Winner(), g.TurnNumber()))
	case g.RoadConflict():
		return titleStyle.Render("Both players completed a road")
	}
	return titleStyle.Render(fmt.Sprintf("Move %d, player %s to play", g.TurnNumber()+1, g.Next()))
}

func renderGame(g *takrules.Game, plain bool) string {
	if plain {
		return g.String()
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		renderStatus(g),
		renderBoard(g.Board()),
		renderCounts(g.Board()),
	)
}

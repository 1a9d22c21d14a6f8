package takrules

import (
	"fmt"
	"strings"
)

// composition is a partial split of a carried stack while it is being
// enumerated. slots[0] is left on the origin and slots[i] is dropped on the
// i-th square; active is the slot currently being filled.
type composition struct {
	slots  []int
	active int
}

func (c composition) key() string {
	var b strings.Builder
	for _, n := range c.slots {
		fmt.Fprintf(&b, "%d,", n)
	}
	fmt.Fprintf(&b, "@%d", c.active)
	return b.String()
}

func (c composition) with(slot, delta int) composition {
	slots := append([]int(nil), c.slots...)
	slots[slot] += delta
	return composition{slots: slots, active: slot}
}

// Compositions returns every way to split height pieces into a count left
// behind followed by drops on up to clear squares, where no square is
// skipped and at least one piece moves. Each result has clear+1 entries,
// the first being the pieces left behind.
//
// The splits are built one piece at a time: each piece either joins the
// active slot or opens the next one. The frontier is deduplicated after
// every step.
func Compositions(height, clear int) [][]int {
	if height < 1 || clear < 1 {
		return nil
	}

	frontier := []composition{{slots: make([]int, clear+1)}}
	for step := 0; step < height; step++ {
		seen := make(map[string]bool, 2*len(frontier))
		next := make([]composition, 0, 2*len(frontier))
		add := func(c composition) {
			if k := c.key(); !seen[k] {
				seen[k] = true
				next = append(next, c)
			}
		}
		for _, c := range frontier {
			add(c.with(c.active, 1))
			if c.active < clear {
				add(c.with(c.active+1, 1))
			}
		}
		frontier = next
	}

	out := make([][]int, 0, len(frontier))
	for _, c := range frontier {
		if c.slots[0] == height {
			continue
		}
		out = append(out, c.slots)
	}
	return out
}

// Moves lists every legal move for player on b: placements of each stone
// the player still has on every empty square, and every slide of every
// stack the player controls.
func Moves(b Board, player Player) []Move {
	size := b.Size()
	var moves []Move
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			p := Point{X: x, Y: y}
			sq, err := b.At(p)
			if err != nil {
				continue
			}
			if sq.Height() == 0 {
				for _, s := range Stones {
					if !b.UsedUp(NewPiece(s, player)) {
						moves = append(moves, Place(p, s))
					}
				}
				continue
			}
			if sq.Mover() == player {
				moves = append(moves, Slides(b, p, sq.Height())...)
			}
		}
	}
	return moves
}

// Slides lists the slides of a stack of the given height at p. At most
// Size pieces are carried; the rest always stay behind.
func Slides(b Board, p Point, height int) []Move {
	size := b.Size()
	carry := height
	if carry > size {
		carry = size
	}

	var moves []Move
	for _, d := range Directions {
		clear := clearRun(b, p, d)
		if clear == 0 {
			continue
		}
		for _, split := range Compositions(carry, clear) {
			drops := make([]int, 0, clear)
			for _, n := range split[1:] {
				if n == 0 {
					break
				}
				drops = append(drops, n)
			}
			moves = append(moves, Move{
				Kind:      MoveSlide,
				Point:     p,
				Count:     carry - split[0],
				Direction: d,
				Drops:     drops,
			})
		}
	}
	return moves
}

// clearRun counts the squares in direction d from p that a slide may cross:
// on the board and not topped by a standing stone or capstone.
func clearRun(b Board, p Point, d Direction) int {
	clear := 0
	for dist := 1; ; dist++ {
		q, ok := d.Adjust(p, dist, b.Size())
		if !ok {
			return clear
		}
		sq, err := b.At(q)
		if err != nil {
			return clear
		}
		if top, ok := sq.Top(); ok && top.Stone != StoneFlat {
			return clear
		}
		clear++
	}
}

// LegalMoves lists the moves the player to move may make, honouring the
// opening rule: during the first two turns only a flat of the opponent may
// be placed. Slides are not restricted, so the second player may move the
// stone placed for them.
func (g *Game) LegalMoves() []Move {
	if g.turn >= 2 {
		return Moves(g.board, g.next)
	}

	canPlace := !g.board.UsedUp(NewPiece(StoneFlat, g.next.Other()))
	size := g.board.Size()
	var moves []Move
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			p := Point{X: x, Y: y}
			sq, err := g.board.At(p)
			if err != nil {
				continue
			}
			if sq.Height() == 0 {
				if canPlace {
					moves = append(moves, Place(p, StoneFlat))
				}
				continue
			}
			if sq.Mover() == g.next {
				moves = append(moves, Slides(g.board, p, sq.Height())...)
			}
		}
	}
	return moves
}

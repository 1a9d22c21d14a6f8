package takrules

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseBoard reads a board in position notation, for example
// "x5/x2,121,x2/x5/x,2C,x3/x5". Ranks run from the top of the board down
// and are separated by '/'; cells are separated by ','. "x" or "xN" marks
// empty squares; a stack is its pieces bottom first, each an owner digit
// optionally followed by S or C. The board size is the number of ranks.
func ParseBoard(s string) (*SliceBoard, error) {
	size := strings.Count(s, "/") + 1
	b, err := NewSliceBoard(size)
	if err != nil {
		return nil, fmt.Errorf("%w: %d ranks", ErrInvalidNotation, size)
	}
	if err := ParseBoardInto(b, s); err != nil {
		return nil, err
	}
	return b, nil
}

// ParseBoardInto fills an empty board from position notation. The number of
// ranks must match the board size. Every piece read is counted against its
// owner's allotment.
func ParseBoardInto(b Board, s string) error {
	size := b.Size()
	ranks := strings.Split(strings.TrimSpace(s), "/")
	if len(ranks) != size {
		return fmt.Errorf("%w: %d ranks on a board of size %d", ErrInvalidNotation, len(ranks), size)
	}

	count := b.Count()
	for i, rank := range ranks {
		y := size - 1 - i
		x := 0
		for _, cell := range strings.Split(rank, ",") {
			if cell == "" {
				return fmt.Errorf("%w: empty cell in rank %d", ErrInvalidNotation, y+1)
			}
			if cell[0] == 'x' {
				n := 1
				if len(cell) > 1 {
					v, err := strconv.Atoi(cell[1:])
					if err != nil || v < 1 {
						return fmt.Errorf("%w: bad empty run %q", ErrInvalidNotation, cell)
					}
					n = v
				}
				x += n
				continue
			}

			if x >= size {
				return fmt.Errorf("%w: rank %d is too long", ErrInvalidNotation, y+1)
			}
			pieces, err := parseCell(cell)
			if err != nil {
				return err
			}
			p := Point{X: x, Y: y}
			for _, pc := range pieces {
				if err := b.Add(p, pc); err != nil {
					return err
				}
				count.Add(pc)
			}
			x++
		}
		if x != size {
			return fmt.Errorf("%w: rank %d has %d cells, want %d", ErrInvalidNotation, y+1, x, size)
		}
	}

	if count.P1Flat > count.MaxFlat || count.P2Flat > count.MaxFlat ||
		count.P1Cap > count.MaxCap || count.P2Cap > count.MaxCap {
		return fmt.Errorf("%w: position has more stones than allowed", ErrPieceExhausted)
	}
	b.SetCount(count)
	return nil
}

func parseCell(cell string) ([]Piece, error) {
	var pieces []Piece
	for i := 0; i < len(cell); i++ {
		var owner Player
		switch cell[i] {
		case '1':
			owner = PlayerOne
		case '2':
			owner = PlayerTwo
		default:
			return nil, fmt.Errorf("%w: bad cell %q", ErrInvalidNotation, cell)
		}
		stone := StoneFlat
		if i+1 < len(cell) && (cell[i+1] == 'S' || cell[i+1] == 'C') {
			stone, _ = stoneFromLetter(cell[i+1])
			i++
		}
		pieces = append(pieces, NewPiece(stone, owner))
	}
	return pieces, nil
}

// FormatBoard writes b in the notation read by ParseBoard.
func FormatBoard(b Board) string {
	size := b.Size()
	ranks := make([]string, 0, size)
	for y := size - 1; y >= 0; y-- {
		var cells []string
		empty := 0
		flush := func() {
			switch {
			case empty == 1:
				cells = append(cells, "x")
			case empty > 1:
				cells = append(cells, fmt.Sprintf("x%d", empty))
			}
			empty = 0
		}
		for x := 0; x < size; x++ {
			sq, _ := b.At(Point{X: x, Y: y})
			if sq.Height() == 0 {
				empty++
				continue
			}
			flush()
			var cell strings.Builder
			for _, pc := range sq {
				cell.WriteString(pc.Owner.String())
				if pc.Stone != StoneFlat {
					cell.WriteString(pc.Stone.String())
				}
			}
			cells = append(cells, cell.String())
		}
		flush()
		ranks = append(ranks, strings.Join(cells, ","))
	}
	return strings.Join(ranks, "/")
}

// Render draws the board as a fixed-width grid, top rank first, followed by
// how many stones each player has used.
func Render(b Board) string {
	size := b.Size()
	stacks := make([][]Stack, size)
	max := 0
	for y := 0; y < size; y++ {
		stacks[y] = make([]Stack, size)
		for x := 0; x < size; x++ {
			sq, _ := b.At(Point{X: x, Y: y})
			stacks[y][x] = sq
			if sq.Height() > max {
				max = sq.Height()
			}
		}
	}

	var out strings.Builder
	out.WriteString(strings.Repeat("_", (max*2+1)*size))
	out.WriteString("\n")
	for y := size - 1; y >= 0; y-- {
		for x := 0; x < size; x++ {
			sq := stacks[y][x]
			out.WriteString("|")
			out.WriteString(sq.String())
			out.WriteString(strings.Repeat("  ", max-sq.Height()))
		}
		out.WriteString("\n")
	}

	c := b.Count()
	fmt.Fprintf(&out, "P1: %d/%d Flatstones\n", c.P1Flat, c.MaxFlat)
	fmt.Fprintf(&out, "P1: %d/%d Capstones\n", c.P1Cap, c.MaxCap)
	fmt.Fprintf(&out, "P2: %d/%d Flatstones\n", c.P2Flat, c.MaxFlat)
	fmt.Fprintf(&out, "P2: %d/%d Capstones\n", c.P2Cap, c.MaxCap)
	return out.String()
}

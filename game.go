package takrules

import (
	"fmt"

	"go.uber.org/zap"
)

// Game is a single match: one board, whose turn it is and every move played
// so far. Moves are still accepted after somebody has won; the caller
// decides when to stop.
type Game struct {
	// RoadTie resolves moves that complete roads for both players.
	RoadTie RoadTieRule

	board        Board
	next         Player
	turn         int
	history      []Move
	winner       Player
	roadConflict bool
}

// NewGame starts a game on an empty SliceBoard.
func NewGame(size int) (*Game, error) {
	b, err := NewSliceBoard(size)
	if err != nil {
		return nil, err
	}
	return NewGameWithBoard(b), nil
}

// NewPackedGame starts a game on an empty PackedBoard.
func NewPackedGame(size int) (*Game, error) {
	b, err := NewPackedBoard(size)
	if err != nil {
		return nil, err
	}
	return NewGameWithBoard(b), nil
}

// NewGameWithBoard starts a game on b, with player one to move.
func NewGameWithBoard(b Board) *Game {
	return &Game{
		board: b,
		next:  PlayerOne,
	}
}

// Board returns the game's board. Mutating it directly bypasses the rules.
func (g *Game) Board() Board {
	return g.board
}

// Size is the width of the board.
func (g *Game) Size() int {
	return g.board.Size()
}

// Next is the player to move.
func (g *Game) Next() Player {
	return g.next
}

// TurnNumber counts the moves played so far.
func (g *Game) TurnNumber() int {
	return g.turn
}

// History returns a copy of the moves played so far.
func (g *Game) History() []Move {
	return append([]Move(nil), g.history...)
}

// Winner is the result of the last accepted move.
func (g *Game) Winner() Player {
	return g.winner
}

// RoadConflict reports whether the last move completed roads for both
// players.
func (g *Game) RoadConflict() bool {
	return g.roadConflict
}

// PlacementOwner is the owner of a stone placed by the player to move: the
// opponent during the first two turns, the mover afterwards.
func (g *Game) PlacementOwner() Player {
	if g.turn < 2 {
		return g.next.Other()
	}
	return g.next
}

// PlaySimple plays a move for whoever is next.
func (g *Game) PlaySimple(mv string) (Player, error) {
	return g.Play(mv, g.next, NoPlayer)
}

// DoMove plays a move for player, placing stones for the correct owner.
func (g *Game) DoMove(mv string, player Player) (Player, error) {
	return g.Play(mv, player, NoPlayer)
}

// Play validates and applies a move written in notation. player is who
// claims to be moving; owner is the owner of a placed stone, with NoPlayer
// meaning whoever the rules require. It returns the winner after the move,
// or NoPlayer.
func (g *Game) Play(mv string, player, owner Player) (Player, error) {
	if player != g.next {
		return g.reject(mv, fmt.Errorf("%w: %s moved but %s is next", ErrWrongTurn, player, g.next))
	}
	m, err := ParseMove(mv)
	if err != nil {
		return g.reject(mv, err)
	}
	return g.Apply(m, player, owner)
}

// Apply is Play for a move that has already been parsed.
func (g *Game) Apply(m Move, player, owner Player) (Player, error) {
	if player != g.next {
		return g.reject(m.String(), fmt.Errorf("%w: %s moved but %s is next", ErrWrongTurn, player, g.next))
	}

	var err error
	switch m.Kind {
	case MovePlace:
		if owner == NoPlayer {
			owner = g.PlacementOwner()
		}
		err = g.place(m, owner)
	case MoveSlide:
		err = g.slide(m)
	default:
		err = fmt.Errorf("%w: unknown move kind %d", ErrInvalidNotation, m.Kind)
	}
	if err != nil {
		return g.reject(m.String(), err)
	}

	mover := g.next
	g.history = append(g.history, m)
	g.turn++
	g.next = g.next.Other()
	g.winner = g.checkWinner(mover)

	movesApplied.WithLabelValues(m.Kind.String()).Inc()
	log.Debugw("applied move", "move", m.String(), "player", mover.String(), "turn", g.turn, "winner", g.winner.String())
	return g.winner, nil
}

func (g *Game) reject(mv string, err error) (Player, error) {
	movesRejected.WithLabelValues(RejectReason(err)).Inc()
	log.Debugw("rejected move", "move", mv, "next", g.next.String(), "turn", g.turn, zap.Error(err))
	return NoPlayer, err
}

func (g *Game) place(m Move, owner Player) error {
	if g.turn < 2 {
		if m.Stone != StoneFlat {
			return ErrMustPlaceFlatOnOpening
		}
		if owner != g.next.Other() {
			return ErrMustPlaceOpponentPieceOnOpening
		}
	} else if owner != g.next {
		return ErrMustPlaceOwnPiece
	}

	piece := NewPiece(m.Stone, owner)
	if g.board.UsedUp(piece) {
		return fmt.Errorf("%w: %s", ErrPieceExhausted, piece)
	}
	return g.board.Place(m.Point, piece)
}

// slide is transactional: the move is tried on a clone first, and the real
// board is only touched once every drop is known to succeed.
func (g *Game) slide(m Move) error {
	size := g.board.Size()
	if m.Count > size {
		return fmt.Errorf("%w: %d > %d", ErrCarryLimitExceeded, m.Count, size)
	}
	sum := 0
	for _, d := range m.Drops {
		if d < 1 {
			return fmt.Errorf("%w: drop of %d", ErrDropMismatch, d)
		}
		sum += d
	}
	if sum != m.Count || m.Count < 1 {
		return fmt.Errorf("%w: picked up %d, dropped %d", ErrDropMismatch, m.Count, sum)
	}

	stack, err := g.board.At(m.Point)
	if err != nil {
		return err
	}
	if m.Count > stack.Height() {
		return fmt.Errorf("%w: %d of %d at %s", ErrInsufficientPile, m.Count, stack.Height(), m.Point)
	}
	if stack.Mover() != g.next {
		return fmt.Errorf("%w: %s", ErrNotMover, m.Point)
	}

	if err := runSlide(g.board.Clone(), m); err != nil {
		return err
	}
	return runSlide(g.board, m)
}

func runSlide(b Board, m Move) error {
	carried, err := b.Take(m.Point, m.Count)
	if err != nil {
		return err
	}
	for step, n := range m.Drops {
		p, ok := m.Direction.Adjust(m.Point, step+1, b.Size())
		if !ok {
			return fmt.Errorf("%w: %s from %s", ErrOffBoard, m.Direction, m.Point)
		}
		for _, pc := range carried[:n] {
			if err := b.Add(p, pc); err != nil {
				return err
			}
		}
		carried = carried[n:]
	}
	return nil
}

func (g *Game) checkWinner(mover Player) Player {
	winner, conflict := RoadWinner(g.board, g.RoadTie, mover)
	g.roadConflict = conflict
	if winner != NoPlayer || conflict {
		return winner
	}
	return FlatWinner(g.board)
}

func (g *Game) String() string {
	out := Render(g.board)
	switch g.winner {
	case PlayerOne:
		out += "\nPlayer 1 Wins!"
	case PlayerTwo:
		out += "\nPlayer 2 Wins!"
	}
	return out
}

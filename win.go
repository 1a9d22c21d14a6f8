package takrules

// RoadTieRule decides who wins when one move completes roads for both
// players. The rules of the game leave this open, so it is configurable.
type RoadTieRule int

// Road tie rules
const (
	// RoadTieEvaluationOrder reports the first road found when checking
	// left to right for player one then two, then bottom to top for player
	// one then two.
	RoadTieEvaluationOrder RoadTieRule = iota

	// RoadTieMover gives the win to the player who made the move.
	RoadTieMover

	// RoadTieUndefined reports no road winner at all.
	RoadTieUndefined
)

func (r RoadTieRule) String() string {
	switch r {
	case RoadTieMover:
		return "mover"
	case RoadTieUndefined:
		return "undefined"
	}
	return "order"
}

// ParseRoadTieRule reads the names returned by RoadTieRule.String.
func ParseRoadTieRule(s string) (RoadTieRule, bool) {
	switch s {
	case "", "order":
		return RoadTieEvaluationOrder, true
	case "mover":
		return RoadTieMover, true
	case "undefined":
		return RoadTieUndefined, true
	}
	return RoadTieEvaluationOrder, false
}

// Follow walks from the given starting squares through adjacent squares
// whose road owner is player and returns every square reached. Starting
// squares not owned by player are skipped.
func Follow(b Board, starts []Point, player Player) map[Point]bool {
	size := b.Size()
	connected := map[Point]bool{}
	visited := map[Point]bool{}

	queue := append([]Point(nil), starts...)
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if visited[p] {
			continue
		}
		visited[p] = true

		sq, err := b.At(p)
		if err != nil || sq.Owner() != player {
			continue
		}
		connected[p] = true
		for _, n := range Neighbors(p, size) {
			if !visited[n] {
				queue = append(queue, n)
			}
		}
	}
	return connected
}

type roadCheck struct {
	player     Player
	horizontal bool
}

var roadOrder = [4]roadCheck{
	{PlayerOne, true},
	{PlayerTwo, true},
	{PlayerOne, false},
	{PlayerTwo, false},
}

func hasRoad(b Board, rc roadCheck) bool {
	size := b.Size()
	starts := make([]Point, size)
	for i := range starts {
		if rc.horizontal {
			starts[i] = Point{X: 0, Y: i}
		} else {
			starts[i] = Point{X: i, Y: 0}
		}
	}
	for p := range Follow(b, starts, rc.player) {
		if rc.horizontal && p.X == size-1 {
			return true
		}
		if !rc.horizontal && p.Y == size-1 {
			return true
		}
	}
	return false
}

// Roads reports which players have a road on the board, along with the
// player whose road is found first in the fixed evaluation order.
func Roads(b Board) (one, two bool, first Player) {
	for _, rc := range roadOrder {
		if !hasRoad(b, rc) {
			continue
		}
		if first == NoPlayer {
			first = rc.player
		}
		if rc.player == PlayerOne {
			one = true
		} else {
			two = true
		}
	}
	return one, two, first
}

// RoadWinner returns the road winner, resolving double roads with rule.
// mover is the player who made the last move. The second result is true
// when both players have a road.
func RoadWinner(b Board, rule RoadTieRule, mover Player) (Player, bool) {
	one, two, first := Roads(b)
	if !(one && two) {
		return first, false
	}
	switch rule {
	case RoadTieMover:
		return mover, true
	case RoadTieUndefined:
		return NoPlayer, true
	}
	return first, true
}

// FlatWinner returns the flat winner once either player has placed every
// stone or the board is full, and NoPlayer before that. Ties go to player
// two.
func FlatWinner(b Board) Player {
	count := b.Count()
	if !count.Exhausted(PlayerOne) && !count.Exhausted(PlayerTwo) && !b.IsFull() {
		return NoPlayer
	}

	one, two := FlatCounts(b)
	if one > two {
		return PlayerOne
	}
	return PlayerTwo
}

// FlatCounts returns how many flat-topped stacks each player controls.
func FlatCounts(b Board) (one, two int) {
	size := b.Size()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			sq, err := b.At(Point{X: x, Y: y})
			if err != nil {
				continue
			}
			switch sq.Scorer() {
			case PlayerOne:
				one++
			case PlayerTwo:
				two++
			}
		}
	}
	return one, two
}

// Winner checks roads first and flats second, using the evaluation order
// for double roads.
func Winner(b Board) Player {
	if p, _ := RoadWinner(b, RoadTieEvaluationOrder, NoPlayer); p != NoPlayer {
		return p
	}
	return FlatWinner(b)
}

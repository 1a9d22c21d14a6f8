package takrules

import (
	"testing"
)

func mustBoard(t *testing.T, s string) *SliceBoard {
	t.Helper()
	b, err := ParseBoard(s)
	if err != nil {
		t.Fatalf("ParseBoard(%q) error = %v", s, err)
	}
	return b
}

func TestRoads(t *testing.T) {
	tests := []struct {
		name  string
		board string
		one   bool
		two   bool
		first Player
	}{
		{"empty", "x4/x4/x4/x4", false, false, NoPlayer},
		{"vertical one", "1,x3/1,x3/1,x3/1,x3", true, false, PlayerOne},
		{"horizontal two", "x4/2,2,2,2/x4/x4", false, true, PlayerTwo},
		{"winding", "x3,1/x,1,1,1/x,1,x2/1,1,x2", true, false, PlayerOne},
		{"standing breaks road", "1,x3/1S,x3/1,x3/1,x3", false, false, NoPlayer},
		{"capstone counts", "x5/x5/1,1,1C,1,1/x5/x5", true, false, PlayerOne},
		{"diagonal is no road", "x3,2/x2,2,x/x,2,x2/2,x3", false, false, NoPlayer},
		{"both, horizontal first", "x4/x4/1,1,1,1/2,2,2,2", true, true, PlayerOne},
		{"both, vertical", "1,2,x2/1,2,x2/1,2,x2/1,2,x2", true, true, PlayerOne},
		{"road cut by the other player", "1,x3/1,x3/2,2,2,2/1,x3", false, true, PlayerTwo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			one, two, first := Roads(mustBoard(t, tt.board))
			if one != tt.one || two != tt.two || first != tt.first {
				t.Errorf("Roads() = %v, %v, %v; want %v, %v, %v", one, two, first, tt.one, tt.two, tt.first)
			}
		})
	}
}

func TestRoadWinnerTieRules(t *testing.T) {
	b := mustBoard(t, "x4/2,2,2,2/x4/1,1,1,1")
	tests := []struct {
		rule  RoadTieRule
		mover Player
		want  Player
	}{
		{RoadTieEvaluationOrder, PlayerTwo, PlayerOne},
		{RoadTieMover, PlayerTwo, PlayerTwo},
		{RoadTieMover, PlayerOne, PlayerOne},
		{RoadTieUndefined, PlayerTwo, NoPlayer},
	}

	for _, tt := range tests {
		t.Run(tt.rule.String(), func(t *testing.T) {
			got, conflict := RoadWinner(b, tt.rule, tt.mover)
			if !conflict {
				t.Errorf("expected a road conflict")
			}
			if got != tt.want {
				t.Errorf("RoadWinner() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseRoadTieRule(t *testing.T) {
	for _, r := range []RoadTieRule{RoadTieEvaluationOrder, RoadTieMover, RoadTieUndefined} {
		got, ok := ParseRoadTieRule(r.String())
		if !ok || got != r {
			t.Errorf("ParseRoadTieRule(%q) = %v, %v", r.String(), got, ok)
		}
	}
	if _, ok := ParseRoadTieRule("coin flip"); ok {
		t.Errorf("accepted an unknown rule")
	}
}

func TestFlatWinner(t *testing.T) {
	tests := []struct {
		name  string
		board string
		want  Player
	}{
		{"not over", "x4/x4/x4/1,x3", NoPlayer},
		{"full tie goes to two", "2,1,2,1/1,2,1,2/2,1,2,1/1,2,1,2", PlayerTwo},
		{"full one ahead", "2,1,2,1/1,2,1,2/2,1,2,1/1,2S,1,2", PlayerOne},
		{"standing stones do not score", "2,1S,2,1S/1,2,1,2/2,1,2,1/1,2,1,2", PlayerTwo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FlatWinner(mustBoard(t, tt.board)); got != tt.want {
				t.Errorf("FlatWinner() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFlatWinnerOnExhaustion(t *testing.T) {
	b := mustBoard(t, "x5/x5/x2,2,x2/x5/1,x,1,x2")
	if got := FlatWinner(b); got != NoPlayer {
		t.Fatalf("FlatWinner() = %v before anyone ran out", got)
	}

	c := b.Count()
	c.P2Flat, c.P2Cap = c.MaxFlat, c.MaxCap
	b.SetCount(c)
	if got := FlatWinner(b); got != PlayerOne {
		t.Errorf("FlatWinner() = %v, want %v", got, PlayerOne)
	}

	one, two := FlatCounts(b)
	if one != 2 || two != 1 {
		t.Errorf("FlatCounts() = %d, %d", one, two)
	}
}

func TestWinnerPrefersRoads(t *testing.T) {
	// Player two has more flats but player one has a road on a full board.
	b := mustBoard(t, "1,2,2,2/1,2,2,2/1,2,2,2/1,1,1,1")
	if got := Winner(b); got != PlayerOne {
		t.Errorf("Winner() = %v, want %v", got, PlayerOne)
	}
}

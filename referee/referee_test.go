package referee

import (
	"errors"
	"testing"

	"github.com/icco/takrules"
)

func TestRefereeAgreesOnRoadGame(t *testing.T) {
	g, err := takrules.NewGame(4)
	if err != nil {
		t.Fatal(err)
	}
	r, err := New(g)
	if err != nil {
		t.Fatal(err)
	}

	var winner takrules.Player
	for _, mv := range []string{"b1", "a1", "a2", "b2", "a3", "b3", "a4"} {
		winner, err = r.Play(mv)
		if err != nil {
			t.Fatalf("%s: %v", mv, err)
		}
	}
	if winner != takrules.PlayerOne {
		t.Errorf("winner = %v", winner)
	}
	over, refWinner := r.ReferenceOver()
	if !over || refWinner != takrules.PlayerOne {
		t.Errorf("reference says over=%v winner=%v", over, refWinner)
	}
	if r.Diverged() {
		t.Errorf("engines diverged on a plain game")
	}
}

func TestRefereeMirrorsExistingHistory(t *testing.T) {
	g, err := takrules.NewGame(5)
	if err != nil {
		t.Fatal(err)
	}
	for _, mv := range []string{"a1", "e5", "c3", "d3", "c4", "d3<"} {
		if _, err := g.PlaySimple(mv); err != nil {
			t.Fatalf("%s: %v", mv, err)
		}
	}

	r, err := New(g)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	for _, mv := range []string{"c4-", "d4", "3c3>12", "Sb2"} {
		if _, err := r.Play(mv); err != nil {
			t.Fatalf("%s: %v", mv, err)
		}
	}
	if r.Game().TurnNumber() != 10 {
		t.Errorf("turn = %d", r.Game().TurnNumber())
	}
}

func TestRefereeBothReject(t *testing.T) {
	g, _ := takrules.NewGame(5)
	r, err := New(g)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.Play("Sa1"); !errors.Is(err, takrules.ErrMustPlaceFlatOnOpening) {
		t.Errorf("error = %v", err)
	}
	if r.Diverged() {
		t.Errorf("a rejected move caused divergence")
	}
}

func TestRefereeReportsDisagreement(t *testing.T) {
	g, _ := takrules.NewGame(5)
	r, err := New(g)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.Play("a1"); err != nil {
		t.Fatal(err)
	}

	// The game only restricts placements during the opening, so moving the
	// opponent's first stone is accepted here and refused by the reference.
	if _, err := r.Play("a1+"); !errors.Is(err, ErrDisagreement) {
		t.Fatalf("error = %v, want ErrDisagreement", err)
	}
	if !r.Diverged() {
		t.Errorf("expected divergence")
	}
	if g.TurnNumber() != 2 {
		t.Errorf("the move was not applied to the game")
	}

	if _, err := r.Play("c3"); err != nil {
		t.Errorf("play after divergence error = %v", err)
	}
}

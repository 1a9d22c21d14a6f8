package takrules

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseMove(t *testing.T) {
	tests := []struct {
		in   string
		want Move
		text string
	}{
		{"a1", Place(Point{0, 0}, StoneFlat), "a1"},
		{"Fa1", Place(Point{0, 0}, StoneFlat), "a1"},
		{"Sa1", Place(Point{0, 0}, StoneStanding), "Sa1"},
		{"a1S", Place(Point{0, 0}, StoneStanding), "Sa1"},
		{"Ce5", Place(Point{4, 4}, StoneCap), "Ce5"},
		{"c4C", Place(Point{2, 3}, StoneCap), "Cc4"},
		{"a1+", Slide(Point{0, 0}, Up, 1), "1a1+1"},
		{"1a1+1", Slide(Point{0, 0}, Up, 1), "1a1+1"},
		{"3c3>", Slide(Point{2, 2}, Right, 3), "3c3>3"},
		{"3c3>12", Slide(Point{2, 2}, Right, 1, 2), "3c3>12"},
		{"4a4-121", Slide(Point{0, 3}, Down, 1, 2, 1), "4a4-121"},
		{"2b2<11C", Slide(Point{1, 1}, Left, 1, 1), "2b2<11"},
		{"5e6<1112*", Slide(Point{4, 5}, Left, 1, 1, 1, 2), "5e6<1112"},
		{"a1'", Place(Point{0, 0}, StoneFlat), "a1"},
		{"\"Sb2?!\"", Place(Point{1, 1}, StoneStanding), "Sb2"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			m, err := ParseMove(tt.in)
			if err != nil {
				t.Fatalf("ParseMove(%q) error = %v", tt.in, err)
			}
			if !reflect.DeepEqual(m, tt.want) {
				t.Errorf("ParseMove(%q) = %+v, want %+v", tt.in, m, tt.want)
			}
			if m.String() != tt.text {
				t.Errorf("String() = %q, want %q", m.String(), tt.text)
			}

			again, err := ParseMove(m.String())
			if err != nil {
				t.Fatalf("ParseMove(%q) error = %v", m.String(), err)
			}
			if !again.Equal(m) {
				t.Errorf("%q did not survive a round trip: %+v", m.String(), again)
			}
		})
	}
}

func TestParseMoveErrors(t *testing.T) {
	tests := []string{
		"",
		"a",
		"SCa1",
		"Sa1C",
		"z9",
		"a0",
		"Xa1",
		"0a1+",
		"3a1+102",
		"a1^",
		"3c3>1111111111",
		"hello world",
	}

	for _, mv := range tests {
		t.Run(mv, func(t *testing.T) {
			if _, err := ParseMove(mv); !errors.Is(err, ErrInvalidNotation) {
				t.Errorf("ParseMove(%q) error = %v, want ErrInvalidNotation", mv, err)
			}
		})
	}
}

func TestMoveEqual(t *testing.T) {
	a := Slide(Point{1, 1}, Right, 1, 2)
	if !a.Equal(Slide(Point{1, 1}, Right, 1, 2)) {
		t.Errorf("equal slides differ")
	}
	if a.Equal(Slide(Point{1, 1}, Right, 2, 1)) {
		t.Errorf("different drops compare equal")
	}
	if Place(Point{0, 0}, StoneFlat).Equal(Place(Point{0, 0}, StoneCap)) {
		t.Errorf("different stones compare equal")
	}
}

package takrules

import (
	"errors"
	"testing"
)

func TestParseBoard(t *testing.T) {
	b, err := ParseBoard("x5/x2,121,x2/x5/x,2C,x3/1S,x4")
	if err != nil {
		t.Fatalf("ParseBoard() error = %v", err)
	}
	if b.Size() != 5 {
		t.Fatalf("size = %d, want 5", b.Size())
	}

	tests := []struct {
		point string
		want  string
	}{
		{"c4", "F1F2F1"},
		{"b2", "C2"},
		{"a1", "S1"},
		{"e5", ""},
	}
	for _, tt := range tests {
		sq, err := b.At(mustPoint(t, tt.point))
		if err != nil {
			t.Fatal(err)
		}
		if sq.String() != tt.want {
			t.Errorf("%s = %q, want %q", tt.point, sq.String(), tt.want)
		}
	}

	c := b.Count()
	if c.P1Flat != 3 || c.P2Flat != 1 || c.P2Cap != 1 || c.P1Cap != 0 {
		t.Errorf("count = %+v", c)
	}
}

func TestFormatBoardRoundTrip(t *testing.T) {
	tests := []string{
		"x4/x4/x4/x4",
		"x4/x4/x4/1,x3",
		"2,1,x,1/1,2,1,2/2,1,2,1/1,2S,1,2",
		"x5/x2,121,x2/x5/x,2C,x3/1S,x4",
		"1212121,x4/x5/x5/x5/x3,2,1C",
		"x6/x6/x6/x6/x6/x6",
	}

	for _, tt := range tests {
		t.Run(tt, func(t *testing.T) {
			b, err := ParseBoard(tt)
			if err != nil {
				t.Fatalf("ParseBoard() error = %v", err)
			}
			if got := FormatBoard(b); got != tt {
				t.Errorf("FormatBoard() = %q, want %q", got, tt)
			}
		})
	}
}

func TestParseBoardInto(t *testing.T) {
	b, err := NewPackedBoard(5)
	if err != nil {
		t.Fatal(err)
	}
	const pos = "x5/x5/x2,12121212,x2/x5/x5"
	if err := ParseBoardInto(b, pos); err != nil {
		t.Fatalf("ParseBoardInto() error = %v", err)
	}
	if got := FormatBoard(b); got != pos {
		t.Errorf("FormatBoard() = %q", got)
	}
	if h, _ := b.Height(mustPoint(t, "c3")); h != 8 {
		t.Errorf("height = %d, want 8", h)
	}

	small, _ := NewSliceBoard(4)
	if err := ParseBoardInto(small, pos); !errors.Is(err, ErrInvalidNotation) {
		t.Errorf("rank count mismatch error = %v", err)
	}
}

func TestParseBoardErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"too few ranks", "x3/x3/x3", ErrInvalidNotation},
		{"too many ranks", "x9/x9/x9/x9/x9/x9/x9/x9/x9", ErrInvalidNotation},
		{"short rank", "x4/x4/x3/x4", ErrInvalidNotation},
		{"long rank", "x4/x4/x5/x4", ErrInvalidNotation},
		{"long rank with stone", "x4/x4/x4,1/x4", ErrInvalidNotation},
		{"bad owner", "x4/x4/x4/3,x3", ErrInvalidNotation},
		{"bad empty run", "x4/x4/x4/x0,x4", ErrInvalidNotation},
		{"empty cell", "x4/x4/x4/,x4", ErrInvalidNotation},
		{"onto standing", "x4/x4/x4/1S1,x3", ErrOntoStanding},
		{"capstone on 4x4", "x4/x4/x4/1C,x3", ErrPieceExhausted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseBoard(tt.in); !errors.Is(err, tt.want) {
				t.Errorf("ParseBoard(%q) error = %v, want %v", tt.in, err, tt.want)
			}
		})
	}
}

func TestRender(t *testing.T) {
	b, err := ParseBoard("x4/x4/x4/1,x3")
	if err != nil {
		t.Fatal(err)
	}
	want := "____________\n" +
		"|  |  |  |  \n" +
		"|  |  |  |  \n" +
		"|  |  |  |  \n" +
		"|F1|  |  |  \n" +
		"P1: 1/15 Flatstones\n" +
		"P1: 0/0 Capstones\n" +
		"P2: 0/15 Flatstones\n" +
		"P2: 0/0 Capstones\n"
	if got := Render(b); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

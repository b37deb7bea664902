package main

import (
	"encoding/json"
	"errors"
	"testing"
)

func newTestBoard() *Board {
	return &Board{
		Categories: []Category{
			{Title: "Math", Clues: []Clue{{Question: "2+2", Answer: "4"}, {Question: "3*3", Answer: "9"}}},
			{Title: "Literature", Clues: []Clue{{Question: "Hamlet author", Answer: "Shakespeare"}, {Question: "Bell Jar author", Answer: "Plath"}}},
		},
	}
}

func TestRevealWalksQuestionThenAnswer(t *testing.T) {
	b := newTestBoard()

	text, changed, err := b.Reveal(1, 0)
	if err != nil {
		t.Fatalf("first reveal: %v", err)
	}
	if !changed || text != "Hamlet author" {
		t.Errorf("first reveal = (%q, %v), want (%q, true)", text, changed, "Hamlet author")
	}
	if got := b.Categories[1].Clues[0].Showing; got != QuestionShown {
		t.Errorf("after first reveal showing = %v, want %v", got, QuestionShown)
	}

	text, changed, err = b.Reveal(1, 0)
	if err != nil {
		t.Fatalf("second reveal: %v", err)
	}
	if !changed || text != "Shakespeare" {
		t.Errorf("second reveal = (%q, %v), want (%q, true)", text, changed, "Shakespeare")
	}
	if got := b.Categories[1].Clues[0].Showing; got != AnswerShown {
		t.Errorf("after second reveal showing = %v, want %v", got, AnswerShown)
	}
}

func TestRevealIsNoOpOnceAnswered(t *testing.T) {
	b := newTestBoard()

	for range 2 {
		if _, _, err := b.Reveal(0, 1); err != nil {
			t.Fatal(err)
		}
	}

	for i := range 5 {
		text, changed, err := b.Reveal(0, 1)
		if err != nil {
			t.Fatalf("reveal %d: %v", i+3, err)
		}
		if changed {
			t.Errorf("reveal %d changed the clue", i+3)
		}
		if text != "9" {
			t.Errorf("reveal %d text = %q, want %q", i+3, text, "9")
		}
		if got := b.Categories[0].Clues[1].Showing; got != AnswerShown {
			t.Errorf("reveal %d showing = %v, want %v", i+3, got, AnswerShown)
		}
	}
}

func TestRevealTouchesOnlyAddressedClue(t *testing.T) {
	b := newTestBoard()

	if _, _, err := b.Reveal(0, 0); err != nil {
		t.Fatal(err)
	}

	for catIdx, c := range b.Categories {
		for clueIdx, clue := range c.Clues {
			if catIdx == 0 && clueIdx == 0 {
				continue
			}
			if clue.Showing != Unrevealed {
				t.Errorf("clue %d-%d showing = %v, want unrevealed", catIdx, clueIdx, clue.Showing)
			}
		}
	}
}

func TestRevealOutOfRange(t *testing.T) {
	b := newTestBoard()

	for _, key := range [][2]int{{-1, 0}, {2, 0}, {0, -1}, {0, 2}} {
		_, _, err := b.Reveal(key[0], key[1])
		if !errors.Is(err, ErrNoSuchCell) {
			t.Errorf("Reveal(%d, %d) error = %v, want ErrNoSuchCell", key[0], key[1], err)
		}
	}

	var empty *Board
	if _, _, err := empty.Reveal(0, 0); !errors.Is(err, ErrNoSuchCell) {
		t.Errorf("Reveal on nil board error = %v, want ErrNoSuchCell", err)
	}
}

func TestBoardComplete(t *testing.T) {
	b := newTestBoard()

	tests := []struct {
		name       string
		board      *Board
		categories int
		questions  int
		want       bool
	}{
		{"exact", b, 2, 2, true},
		{"too few categories", b, 3, 2, false},
		{"too few clues", b, 2, 3, false},
		{"nil", nil, 2, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.board.complete(tt.categories, tt.questions); got != tt.want {
				t.Errorf("complete(%d, %d) = %v, want %v", tt.categories, tt.questions, got, tt.want)
			}
		})
	}
}

func TestShowingJSON(t *testing.T) {
	data, err := json.Marshal(Clue{Question: "2+2", Answer: "4"})
	if err != nil {
		t.Fatal(err)
	}
	if want := `{"question":"2+2","answer":"4","showing":null}`; string(data) != want {
		t.Errorf("unrevealed clue = %s, want %s", data, want)
	}

	var c Clue
	if err := json.Unmarshal([]byte(`{"question":"q","answer":"a","showing":"answer"}`), &c); err != nil {
		t.Fatal(err)
	}
	if c.Showing != AnswerShown {
		t.Errorf("decoded showing = %v, want %v", c.Showing, AnswerShown)
	}

	if err := json.Unmarshal([]byte(`{"showing":"both"}`), &c); err == nil {
		t.Error("expected an error for an unknown showing value")
	}
}

/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrNoSuchCell = errors.New("no such cell")

// Showing tracks how far a single clue has been revealed.
type Showing int

const (
	Unrevealed Showing = iota
	QuestionShown
	AnswerShown
)

func (s Showing) String() string {
	switch s {
	case QuestionShown:
		return "question"
	case AnswerShown:
		return "answer"
	default:
		return "unrevealed"
	}
}

// MarshalJSON encodes an unrevealed clue as null, matching the
// {question, answer, showing} shape the page script expects.
func (s Showing) MarshalJSON() ([]byte, error) {
	if s == Unrevealed {
		return []byte("null"), nil
	}
	return json.Marshal(s.String())
}

func (s *Showing) UnmarshalJSON(data []byte) error {
	var v *string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch {
	case v == nil:
		*s = Unrevealed
	case *v == "question":
		*s = QuestionShown
	case *v == "answer":
		*s = AnswerShown
	default:
		return fmt.Errorf("unknown showing value %q", *v)
	}

	return nil
}

type Clue struct {
	Question string  `json:"question"`
	Answer   string  `json:"answer"`
	Showing  Showing `json:"showing"`
}

type Category struct {
	Title string `json:"title"`
	Clues []Clue `json:"clues"`
}

// Board is the in-memory game state for one session. It is only touched
// from the owning hub's goroutine.
type Board struct {
	Categories []Category `json:"categories"`
}

// complete reports whether the board holds exactly the configured number
// of categories and clues, which must hold before it is rendered.
func (b *Board) complete(categories, questions int) bool {
	if b == nil || len(b.Categories) != categories {
		return false
	}
	for _, c := range b.Categories {
		if len(c.Clues) != questions {
			return false
		}
	}
	return true
}

func (b *Board) clue(categoryIndex, clueIndex int) (*Clue, error) {
	if b == nil || categoryIndex < 0 || categoryIndex >= len(b.Categories) {
		return nil, fmt.Errorf("%w: %d-%d", ErrNoSuchCell, categoryIndex, clueIndex)
	}

	clues := b.Categories[categoryIndex].Clues
	if clueIndex < 0 || clueIndex >= len(clues) {
		return nil, fmt.Errorf("%w: %d-%d", ErrNoSuchCell, categoryIndex, clueIndex)
	}

	return &clues[clueIndex], nil
}

// Reveal advances one clue: unrevealed shows the question, a shown question
// gives way to the answer, and a shown answer stays put. changed is false
// once the answer is showing, and text is then the answer already on screen.
func (b *Board) Reveal(categoryIndex, clueIndex int) (text string, changed bool, err error) {
	c, err := b.clue(categoryIndex, clueIndex)
	if err != nil {
		return "", false, err
	}

	switch c.Showing {
	case Unrevealed:
		c.Showing = QuestionShown
		return c.Question, true, nil
	case QuestionShown:
		c.Showing = AnswerShown
		return c.Answer, true, nil
	default:
		return c.Answer, false, nil
	}
}

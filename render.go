/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"strconv"
)

const placeholder = "?"

// CellView is one addressable cell of the rendered grid.
type CellView struct {
	Key      string  `json:"key"`
	Category int     `json:"category"`
	Clue     int     `json:"clue"`
	Text     string  `json:"text"`
	Showing  Showing `json:"showing"`
}

// BoardMessage replaces whatever board the page is currently showing.
type BoardMessage struct {
	Type    string       `json:"type"` // "board"
	Headers []string     `json:"headers"`
	Rows    [][]CellView `json:"rows"`
}

// CellMessage updates a single cell in place.
type CellMessage struct {
	Type    string  `json:"type"` // "cell"
	Key     string  `json:"key"`
	Text    string  `json:"text"`
	Showing Showing `json:"showing"`
}

func cellKey(categoryIndex, clueIndex int) string {
	return strconv.Itoa(categoryIndex) + "-" + strconv.Itoa(clueIndex)
}

func cellText(c Clue) string {
	switch c.Showing {
	case QuestionShown:
		return c.Question
	case AnswerShown:
		return c.Answer
	default:
		return placeholder
	}
}

// renderBoard lays the board out as a header row of category titles above
// one row per clue index, with one column per category.
func renderBoard(b *Board) BoardMessage {
	msg := BoardMessage{
		Type:    "board",
		Headers: make([]string, 0, len(b.Categories)),
	}

	rows := 0
	for _, c := range b.Categories {
		msg.Headers = append(msg.Headers, c.Title)
		rows = max(rows, len(c.Clues))
	}

	msg.Rows = make([][]CellView, rows)
	for clueIdx := range rows {
		row := make([]CellView, 0, len(b.Categories))
		for catIdx, c := range b.Categories {
			cell := CellView{
				Key:      cellKey(catIdx, clueIdx),
				Category: catIdx,
				Clue:     clueIdx,
				Text:     placeholder,
			}
			if clueIdx < len(c.Clues) {
				cell.Text = cellText(c.Clues[clueIdx])
				cell.Showing = c.Clues[clueIdx].Showing
			}
			row = append(row, cell)
		}
		msg.Rows[clueIdx] = row
	}

	return msg
}

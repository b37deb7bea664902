/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrNotReady = errors.New("no board is in play")

const (
	boardTitle   = "Jeopardy!"
	newGameLabel = "New Game!"
)

// Surface receives render instructions for everything viewing a session.
type Surface interface {
	broadcast(msg any)
}

// ChromeMessage draws the static page furniture around the board.
type ChromeMessage struct {
	Type         string `json:"type"` // "chrome"
	Title        string `json:"title"`
	NewGameLabel string `json:"new_game_label"`
}

// LoadingMessage shows or removes the loading indicator.
type LoadingMessage struct {
	Type    string `json:"type"` // "loading"
	Visible bool   `json:"visible"`
}

// SimpleMessage is for notifications without a payload ("board_cleared", "error").
type SimpleMessage struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
}

// SessionInfoMessage is sent first on connect.
type SessionInfoMessage struct {
	Type    string `json:"type"` // "session_info"
	GameID  string `json:"game_id"`
	State   string `json:"state"`
	Started bool   `json:"started"`
}

type lifecycle int

const (
	idle lifecycle = iota
	loading
	ready
)

func (l lifecycle) String() string {
	switch l {
	case loading:
		return "loading"
	case ready:
		return "ready"
	default:
		return "idle"
	}
}

type fetchResult struct {
	generation uint64
	board      *Board
	err        error
}

// Game drives one session from idle through loading to ready. Every method
// must be called from the owning hub's goroutine; only the fetch chains
// started by NewGame run elsewhere, and they hand their results back
// through Results.
type Game struct {
	cfg     *Config
	id      string
	source  CategorySource
	surface Surface

	board      *Board
	started    bool
	state      lifecycle
	generation uint64
	results    chan fetchResult
}

func newGame(cfg *Config, id string, source CategorySource, surface Surface) *Game {
	return &Game{
		cfg:     cfg,
		id:      id,
		source:  source,
		surface: surface,
		results: make(chan fetchResult),
	}
}

func (g *Game) Results() <-chan fetchResult {
	return g.results
}

func (g *Game) chrome() ChromeMessage {
	return ChromeMessage{
		Type:         "chrome",
		Title:        boardTitle,
		NewGameLabel: newGameLabel,
	}
}

// Start draws the title and the new game control. It does not fetch.
func (g *Game) Start() {
	g.state = idle
	g.surface.broadcast(g.chrome())
}

// NewGame throws away the current board and starts loading a fresh one.
// Any chain still running from an earlier call keeps going, but its result
// carries an old generation and is dropped by Settle.
func (g *Game) NewGame(ctx context.Context) {
	g.started = false
	g.generation++
	g.state = loading
	g.board = nil

	g.surface.broadcast(SimpleMessage{Type: "board_cleared"})
	g.surface.broadcast(LoadingMessage{Type: "loading", Visible: true})

	logf(g.cfg, "GAMES: Loading board %d for %s", g.generation, g.id)

	go func(generation uint64) {
		res := g.fetch(ctx, generation)

		select {
		case g.results <- res:
		case <-ctx.Done():
		}
	}(g.generation)
}

func (g *Game) fetch(ctx context.Context, generation uint64) fetchResult {
	started := time.Now()

	res := fetchResult{generation: generation}

	board, err := g.fetchBoard(ctx)
	if err != nil {
		res.err = err
	} else {
		res.board = board
	}

	if remaining := g.cfg.loadingDelay - time.Since(started); remaining > 0 {
		t := time.NewTimer(remaining)
		defer t.Stop()

		select {
		case <-t.C:
		case <-ctx.Done():
		}
	}

	return res
}

// fetchBoard fetches categories one at a time, in the order the ids were
// drawn, so the board's columns follow that order.
func (g *Game) fetchBoard(ctx context.Context) (*Board, error) {
	board := &Board{}

	ids, err := g.source.CategoryIDs(ctx, g.cfg.categories)
	if err != nil {
		return nil, fmt.Errorf("fetching category ids: %w", err)
	}

	for _, id := range ids {
		c, err := g.source.Category(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("fetching category %d: %w", id, err)
		}

		board.Categories = append(board.Categories, c)

		logf(g.cfg, "FETCH: Category %d (%q) for %s", id, c.Title, g.id)
	}

	return board, nil
}

// Settle applies the outcome of a fetch chain. It reports whether the
// result was current; stale results leave the game untouched.
func (g *Game) Settle(res fetchResult) bool {
	if res.generation != g.generation {
		logf(g.cfg, "GAMES: Dropped stale board %d for %s (current is %d)", res.generation, g.id, g.generation)

		return false
	}

	err := res.err
	if err == nil && !res.board.complete(g.cfg.categories, g.cfg.questions) {
		err = fmt.Errorf("incomplete board: want %d categories of %d clues", g.cfg.categories, g.cfg.questions)
	}

	if err != nil {
		g.state = idle

		g.surface.broadcast(LoadingMessage{Type: "loading", Visible: false})
		g.surface.broadcast(SimpleMessage{
			Type:    "error",
			Message: "Unable to load a new board. Please try again.",
		})

		fmt.Printf("%s | ERROR: Loading board %d for %s: %v\n", time.Now().Format(logDate), res.generation, g.id, err)

		return true
	}

	g.board = res.board
	g.started = true
	g.state = ready

	g.surface.broadcast(renderBoard(g.board))
	g.surface.broadcast(LoadingMessage{Type: "loading", Visible: false})

	logf(g.cfg, "GAMES: Board %d ready for %s", res.generation, g.id)

	return true
}

// Activate handles a click on one cell. Only that cell is redrawn, and
// clicks on a fully revealed cell change nothing.
func (g *Game) Activate(categoryIndex, clueIndex int) error {
	if g.state != ready {
		return ErrNotReady
	}

	text, changed, err := g.board.Reveal(categoryIndex, clueIndex)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	g.surface.broadcast(CellMessage{
		Type:    "cell",
		Key:     cellKey(categoryIndex, clueIndex),
		Text:    text,
		Showing: g.board.Categories[categoryIndex].Clues[clueIndex].Showing,
	})

	return nil
}

// Snapshot is everything a newly connected page needs to catch up.
func (g *Game) Snapshot() []any {
	msgs := []any{
		SessionInfoMessage{
			Type:    "session_info",
			GameID:  g.id,
			State:   g.state.String(),
			Started: g.started,
		},
		g.chrome(),
		LoadingMessage{Type: "loading", Visible: g.state == loading},
	}

	if g.state == ready {
		msgs = append(msgs, renderBoard(g.board))
	}

	return msgs
}

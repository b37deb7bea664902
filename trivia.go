/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/html"
)

var (
	ErrEmptyPool = errors.New("trivia api returned no categories")
	ErrNoClues   = errors.New("category has no clues")
)

// StatusError is returned when the trivia api answers with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// CategorySource is anything that can supply the categories for a game.
type CategorySource interface {
	CategoryIDs(ctx context.Context, count int) ([]int, error)
	Category(ctx context.Context, id int) (Category, error)
}

type categorySummary struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

type categoryDetail struct {
	Title string `json:"title"`
	Clues []struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	} `json:"clues"`
}

// TriviaClient talks to a jService-compatible api.
type TriviaClient struct {
	baseURL   string
	http      *http.Client
	poolSize  int
	questions int
	timeout   time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

func newTriviaClient(cfg *Config, rng *rand.Rand) *TriviaClient {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return &TriviaClient{
		baseURL:   strings.TrimSuffix(cfg.apiURL, "/"),
		http:      &http.Client{},
		poolSize:  cfg.poolSize,
		questions: cfg.questions,
		timeout:   cfg.fetchTimeout,
		rng:       rng,
	}
}

func (t *TriviaClient) intN(n int) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.rng.IntN(n)
}

func (t *TriviaClient) getJSON(ctx context.Context, endpoint string, query url.Values, out any) error {
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	u := t.baseURL + endpoint + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "jeopardy/"+releaseVersion)

	resp, err := t.http.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{URL: u, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s: %w", u, err)
	}

	return nil
}

// CategoryIDs fetches the candidate pool and draws count ids from it,
// uniformly and with replacement. The same id may fill several slots.
func (t *TriviaClient) CategoryIDs(ctx context.Context, count int) ([]int, error) {
	var pool []categorySummary

	err := t.getJSON(ctx, "/categories", url.Values{"count": {strconv.Itoa(t.poolSize)}}, &pool)
	if err != nil {
		return nil, err
	}

	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}

	ids := make([]int, 0, count)
	for range count {
		ids = append(ids, pool[t.intN(len(pool))].ID)
	}

	return ids, nil
}

// Category fetches every clue of one category and samples the configured
// number of them with replacement. Fewer clues than slots is fine; none at
// all is ErrNoClues.
func (t *TriviaClient) Category(ctx context.Context, id int) (Category, error) {
	var detail categoryDetail

	err := t.getJSON(ctx, "/category", url.Values{"id": {strconv.Itoa(id)}}, &detail)
	if err != nil {
		return Category{}, err
	}

	if len(detail.Clues) == 0 {
		return Category{}, fmt.Errorf("%w: category %d", ErrNoClues, id)
	}

	clues := make([]Clue, 0, t.questions)
	for range t.questions {
		c := detail.Clues[t.intN(len(detail.Clues))]

		clues = append(clues, Clue{
			Question: plainText(c.Question),
			Answer:   plainText(c.Answer),
			Showing:  Unrevealed,
		})
	}

	return Category{
		Title: plainText(detail.Title),
		Clues: clues,
	}, nil
}

var markupTag = regexp.MustCompile(`</?[A-Za-z][A-Za-z0-9]*(\s[^<>]*)?/?>`)

// plainText flattens any markup in s down to its text content. A stray "<"
// that does not open a real tag is kept as text.
func plainText(s string) string {
	if !markupTag.MatchString(s) {
		if strings.Contains(s, "&") {
			s = html.UnescapeString(s)
		}
		return strings.TrimSpace(s)
	}

	var b strings.Builder

	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if string(name) == "br" {
				b.WriteByte(' ')
			}
		}
	}
}

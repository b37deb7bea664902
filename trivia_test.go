package main

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"
)

type triviaFixture struct {
	pool       []categorySummary
	categories map[int]categoryDetail
	status     int
}

func (f *triviaFixture) server(t *testing.T, poolSize int) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("/api/categories", func(w http.ResponseWriter, r *http.Request) {
		if f.status != 0 {
			w.WriteHeader(f.status)
			return
		}
		if got := r.URL.Query().Get("count"); got != strconv.Itoa(poolSize) {
			t.Errorf("categories count = %q, want %d", got, poolSize)
		}
		_ = json.NewEncoder(w).Encode(f.pool)
	})

	mux.HandleFunc("/api/category", func(w http.ResponseWriter, r *http.Request) {
		if f.status != 0 {
			w.WriteHeader(f.status)
			return
		}
		id, err := strconv.Atoi(r.URL.Query().Get("id"))
		if err != nil {
			http.Error(w, "bad id", http.StatusBadRequest)
			return
		}
		detail, ok := f.categories[id]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(detail)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv
}

func testConfig() *Config {
	return &Config{
		apiURL:       "http://127.0.0.1:0/api",
		bind:         "127.0.0.1",
		categories:   2,
		fetchTimeout: 5 * time.Second,
		poolSize:     10,
		port:         8080,
		questions:    2,
	}
}

func newFixtureClient(t *testing.T, f *triviaFixture, cfg *Config) *TriviaClient {
	t.Helper()

	srv := f.server(t, cfg.poolSize)
	cfg.apiURL = srv.URL + "/api/"

	return newTriviaClient(cfg, rand.New(rand.NewPCG(1, 2)))
}

func detail(title string, clues ...[2]string) categoryDetail {
	d := categoryDetail{Title: title}
	for _, c := range clues {
		d.Clues = append(d.Clues, struct {
			Question string `json:"question"`
			Answer   string `json:"answer"`
		}{Question: c[0], Answer: c[1]})
	}
	return d
}

func TestCategoryIDsDrawsFromPool(t *testing.T) {
	f := &triviaFixture{pool: []categorySummary{{11, "a"}, {22, "b"}, {33, "c"}}}
	cfg := testConfig()
	client := newFixtureClient(t, f, cfg)

	inPool := map[int]bool{11: true, 22: true, 33: true}

	for _, count := range []int{0, 1, 6, 20} {
		ids, err := client.CategoryIDs(context.Background(), count)
		if err != nil {
			t.Fatalf("CategoryIDs(%d): %v", count, err)
		}
		if len(ids) != count {
			t.Errorf("CategoryIDs(%d) returned %d ids", count, len(ids))
		}
		for _, id := range ids {
			if !inPool[id] {
				t.Errorf("CategoryIDs(%d) returned %d, which is not in the pool", count, id)
			}
		}
	}
}

func TestCategoryIDsKeepsDuplicates(t *testing.T) {
	f := &triviaFixture{pool: []categorySummary{{7, "only"}}}
	cfg := testConfig()
	client := newFixtureClient(t, f, cfg)

	ids, err := client.CategoryIDs(context.Background(), 6)
	if err != nil {
		t.Fatal(err)
	}

	for i, id := range ids {
		if id != 7 {
			t.Errorf("ids[%d] = %d, want 7", i, id)
		}
	}
}

func TestCategoryIDsEmptyPool(t *testing.T) {
	f := &triviaFixture{pool: []categorySummary{}}
	client := newFixtureClient(t, f, testConfig())

	_, err := client.CategoryIDs(context.Background(), 3)
	if !errors.Is(err, ErrEmptyPool) {
		t.Errorf("error = %v, want ErrEmptyPool", err)
	}
}

func TestCategorySamplesWithReplacement(t *testing.T) {
	f := &triviaFixture{categories: map[int]categoryDetail{
		5: detail("science", [2]string{"H2O", "Water"}, [2]string{"NaCl", "Salt"}),
	}}
	cfg := testConfig()
	cfg.questions = 5
	client := newFixtureClient(t, f, cfg)

	cat, err := client.Category(context.Background(), 5)
	if err != nil {
		t.Fatal(err)
	}

	if cat.Title != "science" {
		t.Errorf("title = %q, want science", cat.Title)
	}
	if len(cat.Clues) != 5 {
		t.Fatalf("got %d clues, want 5", len(cat.Clues))
	}

	valid := map[Clue]bool{
		{Question: "H2O", Answer: "Water"}: true,
		{Question: "NaCl", Answer: "Salt"}: true,
	}
	for i, c := range cat.Clues {
		if c.Question == "" || c.Answer == "" {
			t.Errorf("clue %d has empty text: %+v", i, c)
		}
		if c.Showing != Unrevealed {
			t.Errorf("clue %d showing = %v, want unrevealed", i, c.Showing)
		}
		if !valid[c] {
			t.Errorf("clue %d = %+v, not from the category", i, c)
		}
	}
}

func TestCategorySingleClueScenario(t *testing.T) {
	f := &triviaFixture{
		pool:       []categorySummary{{1, "Math"}},
		categories: map[int]categoryDetail{1: detail("Math", [2]string{"2+2", "4"})},
	}
	cfg := testConfig()
	cfg.questions = 1
	client := newFixtureClient(t, f, cfg)

	ids, err := client.CategoryIDs(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}

	cat, err := client.Category(context.Background(), ids[0])
	if err != nil {
		t.Fatal(err)
	}

	want := Category{Title: "Math", Clues: []Clue{{Question: "2+2", Answer: "4", Showing: Unrevealed}}}
	if cat.Title != want.Title || len(cat.Clues) != 1 || cat.Clues[0] != want.Clues[0] {
		t.Errorf("Category(1) = %+v, want %+v", cat, want)
	}
}

func TestCategoryWithoutClues(t *testing.T) {
	f := &triviaFixture{categories: map[int]categoryDetail{9: detail("empty")}}
	client := newFixtureClient(t, f, testConfig())

	_, err := client.Category(context.Background(), 9)
	if !errors.Is(err, ErrNoClues) {
		t.Errorf("error = %v, want ErrNoClues", err)
	}
}

func TestTriviaStatusError(t *testing.T) {
	f := &triviaFixture{status: http.StatusInternalServerError}
	client := newFixtureClient(t, f, testConfig())

	_, err := client.CategoryIDs(context.Background(), 1)

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error = %v, want *StatusError", err)
	}
	if statusErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", statusErr.StatusCode)
	}

	_, err = client.Category(context.Background(), 1)
	if !errors.As(err, &statusErr) {
		t.Errorf("Category error = %v, want *StatusError", err)
	}
}

func TestTriviaUnreachable(t *testing.T) {
	cfg := testConfig()
	srv := httptest.NewServer(http.NotFoundHandler())
	cfg.apiURL = srv.URL
	srv.Close()

	client := newTriviaClient(cfg, nil)

	if _, err := client.CategoryIDs(context.Background(), 1); err == nil {
		t.Error("expected an error from a closed server")
	}
}

func TestCategoryFlattensMarkup(t *testing.T) {
	f := &triviaFixture{categories: map[int]categoryDetail{
		3: detail("books &amp; authors", [2]string{"<i>Hamlet</i> author", "William <b>Shakespeare</b>"}),
	}}
	cfg := testConfig()
	cfg.questions = 1
	client := newFixtureClient(t, f, cfg)

	cat, err := client.Category(context.Background(), 3)
	if err != nil {
		t.Fatal(err)
	}

	if cat.Title != "books & authors" {
		t.Errorf("title = %q", cat.Title)
	}
	if got := cat.Clues[0].Question; got != "Hamlet author" {
		t.Errorf("question = %q", got)
	}
	if got := cat.Clues[0].Answer; got != "William Shakespeare" {
		t.Errorf("answer = %q", got)
	}
}

func TestPlainText(t *testing.T) {
	tests := map[string]string{
		"2+2":                       "2+2",
		"  padded  ":                "padded",
		"line<br>break":             "line break",
		"<a href=\"x\">link</a> ok": "link ok",
		"Q&amp;A":                   "Q&A",
		"x<y":                       "x<y",
		"1 < 2 and 3 > 2":           "1 < 2 and 3 > 2",
		"AT&T":                      "AT&T",
		"<i>x</i> &lt; y":           "x < y",
	}

	for in, want := range tests {
		if got := plainText(in); got != want {
			t.Errorf("plainText(%q) = %q, want %q", in, got, want)
		}
	}
}

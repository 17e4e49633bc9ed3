package scrape

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aockit/aocli/puzzle"
)

const onePartPage = `<!DOCTYPE html>
<html><body><main>
<article class="day-desc"><h2>--- Day 8: Example ---</h2><p>First part prose.</p></article>
</main></body></html>`

const twoPartPage = `<!DOCTYPE html>
<html><body><main>
<article class="day-desc"><h2>--- Day 8: Example ---</h2><p>First part prose.</p></article>
<p>Your puzzle answer was <code>42</code>.</p>
<article class="day-desc"><h2>--- Part Two ---</h2><p>Second part prose.</p></article>
<p>Your puzzle answer was <code>99</code>.</p>
</main></body></html>`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestScraper(t *testing.T, handler http.Handler) *Scraper {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	fetcher := NewFetcher("test-session", "aocli-test", 5*time.Second)
	return New(fetcher, srv.URL, testLogger())
}

func TestFetchPuzzleOnePart(t *testing.T) {
	s := newTestScraper(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2017/day/8", r.URL.Path)
		cookie, err := r.Cookie("session")
		if assert.NoError(t, err, "session cookie must be sent") {
			assert.Equal(t, "test-session", cookie.Value)
		}
		fmt.Fprint(w, onePartPage)
	}))

	p, err := s.FetchPuzzle(context.Background(), puzzle.ID{Year: 2017, Day: 8})
	require.NoError(t, err)

	q1, ok := p.Q1.Get()
	require.True(t, ok, "part one prompt should be present")
	assert.Contains(t, q1, "First part prose.")
	assert.False(t, p.Q2.Present(), "part two prompt should be absent")
	assert.False(t, p.A1.Present(), "no answer should be recovered")
}

func TestFetchPuzzleTwoParts(t *testing.T) {
	s := newTestScraper(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, twoPartPage)
	}))

	p, err := s.FetchPuzzle(context.Background(), puzzle.ID{Year: 2017, Day: 8})
	require.NoError(t, err)

	assert.True(t, p.Q1.Present())
	q2, ok := p.Q2.Get()
	require.True(t, ok, "part two prompt should be present")
	assert.Contains(t, q2, "Second part prose.")
	assert.Equal(t, "42", p.A1.Value())
	assert.Equal(t, "99", p.A2.Value())
}

func TestFetchPuzzleWrapsPromptText(t *testing.T) {
	longProse := strings.Repeat("lorem ipsum dolor ", 30)
	page := `<html><body><article class="day-desc"><p>` + longProse + `</p></article></body></html>`
	s := newTestScraper(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, page)
	}))

	p, err := s.FetchPuzzle(context.Background(), puzzle.ID{Year: 2017, Day: 8})
	require.NoError(t, err)

	for _, line := range strings.Split(p.Q1.Value(), "\n") {
		assert.LessOrEqual(t, len(line), WrapWidth, "prompt lines must be wrapped")
	}
}

func TestFetchInputReturnsRawText(t *testing.T) {
	const input = "1721\n979\n366\n"
	s := newTestScraper(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2020/day/1/input", r.URL.Path)
		fmt.Fprint(w, input)
	}))

	got, err := s.FetchInput(context.Background(), puzzle.ID{Year: 2020, Day: 1})
	require.NoError(t, err)
	assert.Equal(t, input, got, "input must be returned unmodified")
}

func TestSubmitPostsFormAndClassifies(t *testing.T) {
	s := newTestScraper(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/2020/day/1/answer", r.URL.Path)
		if assert.NoError(t, r.ParseForm()) {
			assert.Equal(t, "1", r.PostForm.Get("level"))
			assert.Equal(t, "514579", r.PostForm.Get("answer"))
		}
		fmt.Fprint(w, `<html><body><main><article><p>That's the right answer! You got a star.</p></article></main></body></html>`)
	}))

	outcome, err := s.Submit(context.Background(), puzzle.ID{Year: 2020, Day: 1}, puzzle.Part1, "514579")
	require.NoError(t, err)
	assert.Equal(t, OutcomeCorrect, outcome)
}

func TestSubmitOutcomes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Outcome
	}{
		{name: "incorrect", body: "<main><p>That's not the right answer.</p></main>", want: OutcomeIncorrect},
		{name: "rate limited", body: "<main><p>You gave an answer too recently.</p></main>", want: OutcomeRateLimited},
		{name: "unrecognized", body: "<main><p>Something else entirely.</p></main>", want: OutcomeUnrecognized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestScraper(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.body)
			}))
			outcome, err := s.Submit(context.Background(), puzzle.ID{Year: 2020, Day: 1}, puzzle.Part1, "x")
			require.NoError(t, err)
			assert.Equal(t, tt.want, outcome)
		})
	}
}

func TestFetchDoesNotFollowRedirects(t *testing.T) {
	s := newTestScraper(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/elsewhere" {
			fmt.Fprint(w, onePartPage)
			return
		}
		http.Redirect(w, r, "/elsewhere", http.StatusFound)
	}))

	_, err := s.FetchPuzzle(context.Background(), puzzle.ID{Year: 2017, Day: 8})
	require.Error(t, err, "a redirect must fail loudly, not be followed")
	assert.Contains(t, err.Error(), "HTTP 302")
}

func TestFetchNonSuccessStatus(t *testing.T) {
	s := newTestScraper(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))

	_, err := s.FetchInput(context.Background(), puzzle.ID{Year: 2020, Day: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}

// Package aoc is the public-facing puzzle client. It composes the
// document scraper and the local cache: retrieval is cache-first with a
// staleness check, submission infers the target part from cached state
// and refreshes the cache after a correct part-one answer.
package aoc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aockit/aocli/puzzle"
	"github.com/aockit/aocli/scrape"
)

// PartInfer asks Submit to infer the target part from cached state.
const PartInfer = 0

// Source fetches puzzle state from the remote site.
type Source interface {
	FetchPuzzle(ctx context.Context, id puzzle.ID) (*puzzle.Puzzle, error)
	FetchInput(ctx context.Context, id puzzle.ID) (string, error)
	Submit(ctx context.Context, id puzzle.ID, part int, answer string) (scrape.Outcome, error)
}

// Store persists puzzle state locally. Write failures are best-effort:
// the client logs them and carries on with the in-memory state.
type Store interface {
	Get(id puzzle.ID) (*puzzle.Puzzle, bool)
	Put(id puzzle.ID, p *puzzle.Puzzle) error
	GetInput(id puzzle.ID) (string, bool)
	PutInput(id puzzle.ID, input string) error
	GetAnswer(id puzzle.ID, part int) (string, bool)
	PutAnswer(id puzzle.ID, part int, answer string) error
}

// Client orchestrates cache-first puzzle retrieval and submission.
type Client struct {
	source Source
	store  Store
	logger *slog.Logger
}

// NewClient creates a client over the given source and store.
func NewClient(source Source, store Store, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{source: source, store: store, logger: logger}
}

// Puzzle returns the puzzle state for id. A consistent cache hit is
// returned as-is; a stale or inconsistent entry (part one solved but part
// two not yet fetched, or the reverse) is refetched and overwritten, as
// is a miss.
func (c *Client) Puzzle(ctx context.Context, id puzzle.ID) (*puzzle.Puzzle, error) {
	if p, ok := c.store.Get(id); ok {
		if !p.NeedsRefresh() {
			return p, nil
		}
		c.logger.Debug("cache entry stale, refetching", "puzzle", id.String())
	}

	p, err := c.source.FetchPuzzle(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.store.Put(id, p); err != nil {
		c.logger.Warn("cache write failed", "puzzle", id.String(), "error", err)
	}
	return p, nil
}

// Input returns the puzzle input for id, fetching and caching on a miss.
func (c *Client) Input(ctx context.Context, id puzzle.ID) (string, error) {
	if input, ok := c.store.GetInput(id); ok {
		return input, nil
	}

	input, err := c.source.FetchInput(ctx, id)
	if err != nil {
		return "", err
	}
	if err := c.store.PutInput(id, input); err != nil {
		c.logger.Warn("cache write failed", "puzzle", id.String(), "error", err)
	}
	return input, nil
}

// Submit posts an answer and classifies the response. part may be
// PartInfer, in which case part two is targeted once a non-empty part-one
// answer is cached. On a correct answer the answer is persisted, and a
// correct part one additionally triggers one refetch of the full puzzle
// to pick up the newly revealed part-two prompt; that refresh failing is
// non-fatal. Outcomes other than Correct never mutate the cache, and the
// caller decides whether and when to retry.
func (c *Client) Submit(ctx context.Context, id puzzle.ID, part int, answer string) (scrape.Outcome, error) {
	if part == PartInfer {
		part = c.inferPart(id)
	}
	if part != puzzle.Part1 && part != puzzle.Part2 {
		return scrape.OutcomeUnrecognized, fmt.Errorf("invalid part %d", part)
	}

	outcome, err := c.source.Submit(ctx, id, part, answer)
	if err != nil {
		return outcome, err
	}
	if outcome != scrape.OutcomeCorrect {
		return outcome, nil
	}

	if err := c.store.PutAnswer(id, part, answer); err != nil {
		c.logger.Warn("cache write failed", "puzzle", id.String(), "error", err)
	}

	if part == puzzle.Part1 {
		fresh, err := c.source.FetchPuzzle(ctx, id)
		if err != nil {
			c.logger.Warn("refresh after correct answer failed", "puzzle", id.String(), "error", err)
			return outcome, nil
		}
		if !fresh.A1.Present() {
			fresh.SetAnswer(puzzle.Part1, answer)
		}
		if err := c.store.Put(id, fresh); err != nil {
			c.logger.Warn("cache write failed", "puzzle", id.String(), "error", err)
		}
	}
	return outcome, nil
}

// inferPart picks the submission target from cached state: part two once
// a non-empty part-one answer is known, part one otherwise.
func (c *Client) inferPart(id puzzle.ID) int {
	if a, ok := c.store.GetAnswer(id, puzzle.Part1); ok && a != "" {
		return puzzle.Part2
	}
	return puzzle.Part1
}

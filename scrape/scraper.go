package scrape

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/aockit/aocli/puzzle"
)

const (
	// WrapWidth is the column at which prompt text is word-wrapped.
	WrapWidth = 80

	// promptSelector matches the per-part description blocks, in document
	// order: first match is part one, second (if any) is part two.
	promptSelector = "article.day-desc"

	// answerSelector matches the previously-submitted answer shown in the
	// paragraph following each description block.
	answerSelector = "article.day-desc + p code"
)

// Scraper retrieves puzzle prompts and inputs and submits answers.
type Scraper struct {
	fetcher   *Fetcher
	converter *Converter
	baseURL   string
	logger    *slog.Logger
}

// New creates a scraper against baseURL (e.g. "https://adventofcode.com").
func New(fetcher *Fetcher, baseURL string, logger *slog.Logger) *Scraper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scraper{
		fetcher:   fetcher,
		converter: NewConverter(WrapWidth),
		baseURL:   strings.TrimRight(baseURL, "/"),
		logger:    logger,
	}
}

// puzzleURL returns the page URL for one puzzle.
func (s *Scraper) puzzleURL(id puzzle.ID) string {
	return fmt.Sprintf("%s/%d/day/%d", s.baseURL, id.Year, id.Day)
}

// FetchPuzzle retrieves and parses the puzzle page. A page with only one
// description block is valid: part two stays absent until part one is
// solved. Previously-submitted answers are recovered from the page too.
func (s *Scraper) FetchPuzzle(ctx context.Context, id puzzle.ID) (*puzzle.Puzzle, error) {
	body, err := s.fetcher.Get(ctx, s.puzzleURL(id))
	if err != nil {
		return nil, fmt.Errorf("fetch puzzle %s: %w", id, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse puzzle page %s: %w", id, err)
	}

	p := &puzzle.Puzzle{ID: id}

	doc.Find(promptSelector).EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if i > 1 {
			s.logger.Warn("more than two description blocks on page", "puzzle", id.String())
			return false
		}
		inner, err := sel.Html()
		if err != nil {
			s.logger.Warn("read description markup", "puzzle", id.String(), "error", err)
			return true
		}
		text, err := s.converter.Convert(inner)
		if err != nil {
			s.logger.Warn("convert description", "puzzle", id.String(), "error", err)
			return true
		}
		if i == 0 {
			p.Q1 = puzzle.NewText(text)
		} else {
			p.Q2 = puzzle.NewText(text)
		}
		return true
	})

	doc.Find(answerSelector).Each(func(i int, sel *goquery.Selection) {
		answer := strings.TrimSpace(sel.Text())
		switch i {
		case 0:
			p.A1 = puzzle.NewText(answer)
		case 1:
			p.A2 = puzzle.NewText(answer)
		}
	})

	return p, nil
}

// FetchInput retrieves the puzzle's input, unmodified. Input format is
// puzzle-specific and opaque here.
func (s *Scraper) FetchInput(ctx context.Context, id puzzle.ID) (string, error) {
	body, err := s.fetcher.Get(ctx, s.puzzleURL(id)+"/input")
	if err != nil {
		return "", fmt.Errorf("fetch input %s: %w", id, err)
	}
	return string(body), nil
}

// Submit posts an answer for one part and classifies the response.
func (s *Scraper) Submit(ctx context.Context, id puzzle.ID, part int, answer string) (Outcome, error) {
	form := url.Values{
		"level":  {strconv.Itoa(part)},
		"answer": {answer},
	}
	body, err := s.fetcher.PostForm(ctx, s.puzzleURL(id)+"/answer", form)
	if err != nil {
		return OutcomeUnrecognized, fmt.Errorf("submit answer %s part %d: %w", id, part, err)
	}
	return Classify(pageText(body)), nil
}

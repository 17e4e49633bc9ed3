// Package cache persists puzzle state on disk, keyed by puzzle identity.
// Each puzzle lives in root/{year}/{day}/ as up to five independently
// optional text files. The cache is an optimization, never a source of
// truth: callers treat write failures as warnings, not fatal errors.
package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aockit/aocli/puzzle"
)

// Per-puzzle file names. External tooling may rely on the optionality and
// independence of these five files.
const (
	fileQuestion1 = "question1"
	fileQuestion2 = "question2"
	fileAnswer1   = "answer1"
	fileAnswer2   = "answer2"
	fileInput     = "input"
)

// Cache is a file-backed store over puzzle identities.
type Cache struct {
	root string
}

// New creates a cache rooted at root. The directory is created lazily on
// first write.
func New(root string) *Cache {
	return &Cache{root: root}
}

// Root returns the cache's root directory.
func (c *Cache) Root() string {
	return c.root
}

// dir returns the storage location for one puzzle.
func (c *Cache) dir(id puzzle.ID) string {
	return filepath.Join(c.root, strconv.Itoa(id.Year), strconv.Itoa(id.Day))
}

// Get reconstructs a puzzle from whichever fields are present on disk.
// The second return is false when no entry exists for id.
func (c *Cache) Get(id puzzle.ID) (*puzzle.Puzzle, bool) {
	dir := c.dir(id)
	if _, err := os.Stat(dir); err != nil {
		return nil, false
	}

	return &puzzle.Puzzle{
		ID: id,
		Q1: readField(dir, fileQuestion1),
		Q2: readField(dir, fileQuestion2),
		A1: readField(dir, fileAnswer1),
		A2: readField(dir, fileAnswer2),
	}, true
}

// Put writes the puzzle's present fields, creating the entry if needed.
// Absent fields are not written, and existing files for absent fields are
// left alone.
func (c *Cache) Put(id puzzle.ID, p *puzzle.Puzzle) error {
	dir := c.dir(id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create cache entry %s: %w", id, err)
	}

	fields := []struct {
		name string
		text puzzle.Text
	}{
		{fileQuestion1, p.Q1},
		{fileQuestion2, p.Q2},
		{fileAnswer1, p.A1},
		{fileAnswer2, p.A2},
	}
	for _, f := range fields {
		v, ok := f.text.Get()
		if !ok {
			continue
		}
		if err := os.WriteFile(filepath.Join(dir, f.name), []byte(v), 0644); err != nil {
			return fmt.Errorf("write %s for %s: %w", f.name, id, err)
		}
	}
	return nil
}

// GetInput returns the cached input, if present. Input is stored apart
// from the puzzle fields because it is large and fetched separately.
func (c *Cache) GetInput(id puzzle.ID) (string, bool) {
	data, err := os.ReadFile(filepath.Join(c.dir(id), fileInput))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// PutInput stores the puzzle input, creating the entry if needed.
func (c *Cache) PutInput(id puzzle.ID, input string) error {
	dir := c.dir(id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create cache entry %s: %w", id, err)
	}
	if err := os.WriteFile(filepath.Join(dir, fileInput), []byte(input), 0644); err != nil {
		return fmt.Errorf("write input for %s: %w", id, err)
	}
	return nil
}

// GetAnswer returns the cached answer for one part, if present.
func (c *Cache) GetAnswer(id puzzle.ID, part int) (string, bool) {
	data, err := os.ReadFile(filepath.Join(c.dir(id), answerFile(part)))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// PutAnswer stores a confirmed answer for one part without touching the
// prompt files.
func (c *Cache) PutAnswer(id puzzle.ID, part int, answer string) error {
	dir := c.dir(id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create cache entry %s: %w", id, err)
	}
	if err := os.WriteFile(filepath.Join(dir, answerFile(part)), []byte(answer), 0644); err != nil {
		return fmt.Errorf("write answer %d for %s: %w", part, id, err)
	}
	return nil
}

// List returns the identities of all cached puzzles, ordered by year then
// day.
func (c *Cache) List() ([]puzzle.ID, error) {
	matches, err := doublestar.Glob(os.DirFS(c.root), "[0-9]*/[0-9]*")
	if err != nil {
		return nil, fmt.Errorf("scan cache: %w", err)
	}

	var ids []puzzle.ID
	for _, m := range matches {
		info, err := os.Stat(filepath.Join(c.root, filepath.FromSlash(m)))
		if err != nil || !info.IsDir() {
			continue
		}
		yearStr, dayStr, ok := strings.Cut(m, "/")
		if !ok {
			continue
		}
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			continue
		}
		day, err := strconv.Atoi(dayStr)
		if err != nil {
			continue
		}
		ids = append(ids, puzzle.ID{Year: year, Day: day})
	}

	sort.Slice(ids, func(i, j int) bool {
		if ids[i].Year != ids[j].Year {
			return ids[i].Year < ids[j].Year
		}
		return ids[i].Day < ids[j].Day
	})
	return ids, nil
}

func readField(dir, name string) puzzle.Text {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return puzzle.Text{}
	}
	return puzzle.NewText(string(data))
}

func answerFile(part int) string {
	if part == puzzle.Part2 {
		return fileAnswer2
	}
	return fileAnswer1
}

package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aockit/aocli/puzzle"
)

func TestGetMissingEntry(t *testing.T) {
	c := New(t.TempDir())
	_, ok := c.Get(puzzle.ID{Year: 2020, Day: 1})
	assert.False(t, ok, "missing entry should be a miss, not an error")
}

func TestPutGetRoundTrip(t *testing.T) {
	id := puzzle.ID{Year: 2017, Day: 8}

	tests := []struct {
		name string
		p    puzzle.Puzzle
	}{
		{name: "only first prompt", p: puzzle.Puzzle{ID: id, Q1: puzzle.NewText("q1 text")}},
		{name: "prompt and answer", p: puzzle.Puzzle{ID: id, Q1: puzzle.NewText("q1"), A1: puzzle.NewText("42")}},
		{
			name: "all four fields",
			p: puzzle.Puzzle{
				ID: id,
				Q1: puzzle.NewText("q1"), Q2: puzzle.NewText("q2"),
				A1: puzzle.NewText("42"), A2: puzzle.NewText("99"),
			},
		},
		{name: "present but empty answer", p: puzzle.Puzzle{ID: id, Q1: puzzle.NewText("q1"), A1: puzzle.NewText("")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(t.TempDir())
			require.NoError(t, c.Put(id, &tt.p))

			got, ok := c.Get(id)
			require.True(t, ok)
			assert.Equal(t, tt.p, *got)
		})
	}
}

func TestPutSkipsAbsentFields(t *testing.T) {
	c := New(t.TempDir())
	id := puzzle.ID{Year: 2017, Day: 8}

	// First write records an answer; a later partial write must not erase it.
	require.NoError(t, c.Put(id, &puzzle.Puzzle{ID: id, Q1: puzzle.NewText("q1"), A1: puzzle.NewText("42")}))
	require.NoError(t, c.Put(id, &puzzle.Puzzle{ID: id, Q1: puzzle.NewText("q1 revised")}))

	got, ok := c.Get(id)
	require.True(t, ok)
	assert.Equal(t, "q1 revised", got.Q1.Value())
	assert.Equal(t, "42", got.A1.Value(), "absent field in Put must not clobber disk state")
}

func TestInputRoundTrip(t *testing.T) {
	c := New(t.TempDir())
	id := puzzle.ID{Year: 2020, Day: 3}

	_, ok := c.GetInput(id)
	assert.False(t, ok)

	require.NoError(t, c.PutInput(id, "1\n2\n3\n"))
	got, ok := c.GetInput(id)
	require.True(t, ok)
	assert.Equal(t, "1\n2\n3\n", got)

	// Input lives apart from the puzzle fields.
	p, ok := c.Get(id)
	require.True(t, ok)
	assert.False(t, p.Q1.Present())
}

func TestAnswerAccessors(t *testing.T) {
	c := New(t.TempDir())
	id := puzzle.ID{Year: 2019, Day: 5}

	_, ok := c.GetAnswer(id, puzzle.Part1)
	assert.False(t, ok)

	require.NoError(t, c.PutAnswer(id, puzzle.Part1, "abc"))
	require.NoError(t, c.PutAnswer(id, puzzle.Part2, "def"))

	a1, ok := c.GetAnswer(id, puzzle.Part1)
	require.True(t, ok)
	assert.Equal(t, "abc", a1)
	a2, ok := c.GetAnswer(id, puzzle.Part2)
	require.True(t, ok)
	assert.Equal(t, "def", a2)

	// PutAnswer must not touch prompt files.
	p, ok := c.Get(id)
	require.True(t, ok)
	assert.False(t, p.Q1.Present())
	assert.Equal(t, "abc", p.A1.Value())
}

func TestList(t *testing.T) {
	c := New(t.TempDir())

	ids, err := c.List()
	require.NoError(t, err)
	assert.Empty(t, ids)

	for _, id := range []puzzle.ID{
		{Year: 2020, Day: 10},
		{Year: 2015, Day: 1},
		{Year: 2020, Day: 2},
	} {
		require.NoError(t, c.PutInput(id, "x"))
	}
	// A stray non-numeric directory is ignored.
	require.NoError(t, os.MkdirAll(filepath.Join(c.Root(), "notes", "misc"), 0755))

	ids, err = c.List()
	require.NoError(t, err)
	assert.Equal(t, []puzzle.ID{
		{Year: 2015, Day: 1},
		{Year: 2020, Day: 2},
		{Year: 2020, Day: 10},
	}, ids)
}

func TestListMissingRoot(t *testing.T) {
	c := New(filepath.Join(t.TempDir(), "does-not-exist"))
	ids, err := c.List()
	require.NoError(t, err)
	assert.Empty(t, ids)
}

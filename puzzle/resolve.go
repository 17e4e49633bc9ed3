package puzzle

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrUnresolvedPuzzle is returned when no puzzle identity can be inferred
// from a filesystem path.
var ErrUnresolvedPuzzle = errors.New("could not resolve puzzle identity")

// Resolve produces a puzzle identity from explicit values or, when either
// is missing, by inferring one from contextPath. Zero means "not given".
//
// Inference walks contextPath from its deepest segment toward the root,
// scanning each segment left-to-right for maximal digit runs. The first
// run found is the day, the next positive run is the year. A layout like
// .../2017/other/d8 resolves to day 8 and year 2017, skipping segments
// with no digits. Pure function of its inputs.
func Resolve(year, day int, contextPath string) (ID, error) {
	if year != 0 && day != 0 {
		id := ID{Year: year, Day: day}
		if err := id.Validate(); err != nil {
			return ID{}, err
		}
		return id, nil
	}

	id, err := fromPath(contextPath)
	if err != nil {
		return ID{}, err
	}
	if err := id.Validate(); err != nil {
		return ID{}, err
	}
	return id, nil
}

// fromPath infers an identity from a path such as /a/2017/other/d8.
func fromPath(path string) (ID, error) {
	segments := strings.Split(filepath.ToSlash(filepath.Clean(path)), "/")

	var (
		day      int
		dayFound bool
		year     int
	)
	for i := len(segments) - 1; i >= 0 && year == 0; i-- {
		for _, run := range digitRuns(segments[i]) {
			n, err := strconv.Atoi(run)
			if err != nil {
				continue // run too long for an int
			}
			if !dayFound {
				day = n
				dayFound = true
			} else if n > 0 {
				year = n
				break
			}
		}
	}
	if !dayFound || year == 0 {
		return ID{}, fmt.Errorf("%w from path %q", ErrUnresolvedPuzzle, path)
	}
	return ID{Year: year, Day: day}, nil
}

// digitRuns returns the maximal contiguous digit runs in s, left to right.
func digitRuns(s string) []string {
	var runs []string
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			runs = append(runs, s[start:i])
			start = -1
		}
	}
	if start >= 0 {
		runs = append(runs, s[start:])
	}
	return runs
}

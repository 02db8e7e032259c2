package sets

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"esrup/internal/services"
)

// MaxSet is the highest set number the library convention allows; open-ended
// ranges ("NNN-") run to this bound before disk filtering.
const MaxSet = 999

// Wildcard selects every set present on disk.
const Wildcard = "*"

var (
	singlePattern = regexp.MustCompile(`^(\d{3})$`)
	rangePattern  = regexp.MustCompile(`^(\d{3})-(\d{3})?$`)
)

type span struct {
	lo, hi int
}

// Validate parses every token without touching the filesystem. Malformed
// tokens and inverted ranges are fatal for the run, so callers check this
// before any directory listing.
func Validate(tokens []string) error {
	_, err := parseTokens(tokens)
	return err
}

// Expand turns the ordered token sequence into the ascending, deduplicated
// list of set numbers to process, filtered against the sets actually present
// on disk. Numbers inside a requested range that do not exist are silently
// excluded; only malformed tokens are errors.
func Expand(tokens []string, available []int) ([]int, error) {
	spans, err := parseTokens(tokens)
	if err != nil {
		return nil, err
	}

	selected := make(map[int]struct{})
	for _, set := range available {
		for _, sp := range spans {
			if set >= sp.lo && set <= sp.hi {
				selected[set] = struct{}{}
				break
			}
		}
	}

	result := make([]int, 0, len(selected))
	for set := range selected {
		result = append(result, set)
	}
	sort.Ints(result)
	return result, nil
}

func parseTokens(tokens []string) ([]span, error) {
	if len(tokens) == 0 {
		return nil, services.Wrap(services.ErrInvalidRange, "sets", "expand", "at least one set token is required", nil)
	}

	spans := make([]span, 0, len(tokens))
	for _, tok := range tokens {
		sp, err := parseToken(strings.TrimSpace(tok))
		if err != nil {
			return nil, err
		}
		spans = append(spans, sp)
	}
	return spans, nil
}

func parseToken(tok string) (span, error) {
	if tok == Wildcard {
		return span{lo: 1, hi: MaxSet}, nil
	}

	if m := singlePattern.FindStringSubmatch(tok); m != nil {
		n, err := setNumber(m[1], tok)
		if err != nil {
			return span{}, err
		}
		return span{lo: n, hi: n}, nil
	}

	if m := rangePattern.FindStringSubmatch(tok); m != nil {
		lo, err := setNumber(m[1], tok)
		if err != nil {
			return span{}, err
		}
		if m[2] == "" {
			return span{lo: lo, hi: MaxSet}, nil
		}
		hi, err := setNumber(m[2], tok)
		if err != nil {
			return span{}, err
		}
		if lo > hi {
			return span{}, services.Wrap(services.ErrInvalidRange, "sets", "expand", fmt.Sprintf("%q: start exceeds end", tok), nil)
		}
		return span{lo: lo, hi: hi}, nil
	}

	return span{}, services.Wrap(services.ErrInvalidRange, "sets", "expand", fmt.Sprintf("%q is not *, NNN, NNN-MMM, or NNN-", tok), nil)
}

func setNumber(digits, tok string) (int, error) {
	n, _ := strconv.Atoi(digits)
	if n < 1 || n > MaxSet {
		return 0, services.Wrap(services.ErrInvalidRange, "sets", "expand", fmt.Sprintf("%q: set number %s outside 001-999", tok, digits), nil)
	}
	return n, nil
}

// Available lists the set directories under a model directory: direct
// children with three-digit names that contain at least one image file.
// Empty set directories are not offered to wildcard or range selection.
func Available(modelDir string) ([]int, error) {
	entries, err := os.ReadDir(modelDir)
	if err != nil {
		return nil, services.Wrap(services.ErrNotFound, "sets", "list", fmt.Sprintf("model directory %q", modelDir), err)
	}

	var available []int
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		m := singlePattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		n, _ := strconv.Atoi(m[1])
		if n < 1 || n > MaxSet {
			continue
		}
		hasImages, err := containsImages(filepath.Join(modelDir, entry.Name()))
		if err != nil {
			return nil, services.Wrap(services.ErrNotFound, "sets", "list", fmt.Sprintf("set directory %q", entry.Name()), err)
		}
		if hasImages {
			available = append(available, n)
		}
	}
	sort.Ints(available)
	return available, nil
}

func containsImages(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".png", ".jpg", ".jpeg":
			return true, nil
		}
	}
	return false, nil
}

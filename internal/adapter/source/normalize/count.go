package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var countRegex = regexp.MustCompile(`^(\d+)(?:\s*[a-z][a-z ]*)?$`)

var nonStopWords = map[string]struct{}{
	"non-stop": {},
	"nonstop":  {},
	"non stop": {},
	"direct":   {},
}

// ParseCount reads a stop or seat count such as "1", "2 stops" or "9 seats".
// "Non-stop" and "Direct" read as 0. Anything else is an error; an unreadable
// count is never defaulted to zero.
func ParseCount(raw string) (int, error) {
	s := strings.ToLower(strings.Join(strings.Fields(raw), " "))
	if _, ok := nonStopWords[s]; ok {
		return 0, nil
	}

	m := countRegex.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%w: count %q", ErrMalformed, raw)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("%w: count %q: %v", ErrMalformed, raw, err)
	}
	return n, nil
}

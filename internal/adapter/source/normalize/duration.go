package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	isoDurationRegex   = regexp.MustCompile(`^pt(?:(\d+)h)?(?:(\d+)m)?$`)
	clockDurationRegex = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
	textDurationRegex  = regexp.MustCompile(`^(?:(\d+)\s*h(?:ours?|rs?)?)?\s*(?:(\d+)\s*m(?:in(?:ute)?s?)?)?$`)
	minutesOnlyRegex   = regexp.MustCompile(`^\d+$`)
)

// ParseDuration converts "2h 5m", "2h", "45m", "2h05m", "02:05", "125" or
// "PT2H5M" to total minutes. Zero or unreadable durations are errors.
func ParseDuration(raw string) (int, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return 0, fmt.Errorf("%w: empty duration", ErrMalformed)
	}

	var hours, minutes string
	switch {
	case minutesOnlyRegex.MatchString(s):
		minutes = s
	case clockDurationRegex.MatchString(s):
		m := clockDurationRegex.FindStringSubmatch(s)
		hours, minutes = m[1], m[2]
	case isoDurationRegex.MatchString(s):
		m := isoDurationRegex.FindStringSubmatch(s)
		hours, minutes = m[1], m[2]
	case textDurationRegex.MatchString(s):
		m := textDurationRegex.FindStringSubmatch(s)
		hours, minutes = m[1], m[2]
	default:
		return 0, fmt.Errorf("%w: duration %q", ErrMalformed, raw)
	}

	total := atoiOrZero(hours)*60 + atoiOrZero(minutes)
	if total <= 0 {
		return 0, fmt.Errorf("%w: duration %q is not positive", ErrMalformed, raw)
	}
	return total, nil
}

func atoiOrZero(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/flight-search/fallback-flight-aggregator/internal/infrastructure/timeutil"
)

// ParseTimestamp reads an RFC3339 or timezone-naive timestamp. Naive values
// are interpreted in loc. The result is always UTC.
func ParseTimestamp(raw string, loc *time.Location) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty timestamp", ErrMalformed)
	}
	t, err := timeutil.ParseInstant(s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return t, nil
}

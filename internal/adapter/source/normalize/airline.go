package normalize

import (
	"strings"

	"github.com/antzucaro/matchr"
)

// DefaultSimilarity is the Jaro-Winkler score above which two airline names
// are treated as the same carrier.
const DefaultSimilarity = 0.93

// AirlineDirectory snaps free-text airline names to a known spelling so the
// same carrier produces the same dedup key across sources.
type AirlineDirectory struct {
	names     []string
	lowered   []string
	threshold float64
}

// NewAirlineDirectory builds a directory from canonical names.
func NewAirlineDirectory(names []string) *AirlineDirectory {
	d := &AirlineDirectory{threshold: DefaultSimilarity}
	for _, n := range names {
		n = collapseSpaces(n)
		if n == "" {
			continue
		}
		d.names = append(d.names, n)
		d.lowered = append(d.lowered, strings.ToLower(n))
	}
	return d
}

// Canonical returns the directory spelling closest to name, or name itself
// with whitespace cleaned up when nothing is similar enough.
// A nil directory only cleans whitespace.
func (d *AirlineDirectory) Canonical(name string) string {
	clean := collapseSpaces(name)
	if d == nil || clean == "" {
		return clean
	}

	lower := strings.ToLower(clean)
	best, bestScore := -1, 0.0
	for i, known := range d.lowered {
		if known == lower {
			return d.names[i]
		}
		score := matchr.JaroWinkler(lower, known, false)
		if score > bestScore {
			best, bestScore = i, score
		}
	}

	if best >= 0 && bestScore >= d.threshold {
		return d.names[best]
	}
	return clean
}

// Names returns the canonical spellings.
func (d *AirlineDirectory) Names() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

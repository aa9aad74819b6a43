package domain

import (
	"fmt"
	"math"
	"time"
)

// SortKey defines the available orderings for flight results.
type SortKey string

// Available sort keys.
const (
	// SortByPrice sorts by price ascending (cheapest first)
	SortByPrice SortKey = "price"

	// SortByDuration sorts by total minutes ascending (shortest first)
	SortByDuration SortKey = "duration"

	// SortByDeparture sorts by departure time ascending (earliest first)
	SortByDeparture SortKey = "departure"

	// SortByArrival sorts by arrival time ascending (earliest first)
	SortByArrival SortKey = "arrival"

	// SortByBestValue sorts by the weighted price/duration/stops score
	SortByBestValue SortKey = "best"
)

// IsValid checks if the sort key is a known value.
func (k SortKey) IsValid() bool {
	switch k {
	case SortByPrice, SortByDuration, SortByDeparture, SortByArrival, SortByBestValue:
		return true
	default:
		return false
	}
}

// ParseSortKey converts a string to a SortKey.
// Returns SortByPrice if the string is empty or unknown.
func ParseSortKey(s string) SortKey {
	key := SortKey(s)
	if key.IsValid() {
		return key
	}
	return SortByPrice
}

// FilterState is the set of restrictions the presentation layer applies to results.
// An empty set or nil pointer leaves its dimension unrestricted.
type FilterState struct {
	// PriceRange keeps flights whose amount lies in [Min, Max]
	PriceRange *PriceRange `json:"priceRange,omitempty"`

	// SelectedAirlines keeps flights whose airline name is in the set
	SelectedAirlines []string `json:"selectedAirlines,omitempty"`

	// Stops keeps flights whose stop count is in the set
	Stops []int `json:"stops,omitempty"`

	// Classes keeps flights whose travel class is in the set
	Classes []TravelClass `json:"classes,omitempty"`

	// DepartureWindow keeps flights departing within a time-of-day window
	DepartureWindow *TimeWindow `json:"departureWindow,omitempty"`
}

// PriceRange is an inclusive price band.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether amount lies within the range.
func (r *PriceRange) Contains(amount float64) bool {
	if r == nil {
		return true
	}
	return amount >= r.Min && amount <= r.Max
}

// TimeWindow is an inclusive time-of-day window in HH:MM form.
type TimeWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Contains reports whether t's time of day (UTC) falls within the window.
// Unparseable bounds make the window a no-op; Validate rejects them up front.
func (w *TimeWindow) Contains(t time.Time) bool {
	if w == nil {
		return true
	}
	start, err := minuteOfDay(w.Start)
	if err != nil {
		return true
	}
	end, err := minuteOfDay(w.End)
	if err != nil {
		return true
	}

	utc := t.UTC()
	m := utc.Hour()*60 + utc.Minute()
	if start <= end {
		return m >= start && m <= end
	}
	// Window wraps midnight, e.g. 22:00-02:00.
	return m >= start || m <= end
}

func minuteOfDay(hhmm string) (int, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// IsEmpty reports whether the filter restricts nothing.
func (f FilterState) IsEmpty() bool {
	return f.PriceRange == nil &&
		len(f.SelectedAirlines) == 0 &&
		len(f.Stops) == 0 &&
		len(f.Classes) == 0 &&
		f.DepartureWindow == nil
}

// Validate checks the filter for contradictory or malformed restrictions.
func (f FilterState) Validate() error {
	if r := f.PriceRange; r != nil {
		if math.IsNaN(r.Min) || math.IsNaN(r.Max) || r.Min < 0 || r.Max < 0 {
			return NewValidationError("priceRange", "price bounds must be non-negative numbers")
		}
		if r.Min > r.Max {
			return NewValidationError("priceRange", "min must be less than or equal to max")
		}
	}

	for i, s := range f.Stops {
		if s < 0 {
			return NewValidationError(fmt.Sprintf("stops[%d]", i), "stop counts must be non-negative")
		}
	}

	for i, c := range f.Classes {
		if !c.IsValid() {
			return NewValidationError(fmt.Sprintf("classes[%d]", i), "class must be one of: Economy, Business, First")
		}
	}

	if w := f.DepartureWindow; w != nil {
		if _, err := minuteOfDay(w.Start); err != nil {
			return NewValidationError("departureWindow.start", "start must be in HH:MM format")
		}
		if _, err := minuteOfDay(w.End); err != nil {
			return NewValidationError("departureWindow.end", "end must be in HH:MM format")
		}
	}

	return nil
}

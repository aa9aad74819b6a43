package domain

import (
	"fmt"
	"strings"
)

// TravelClass is the cabin a fare applies to.
type TravelClass string

// Supported travel classes.
const (
	ClassEconomy  TravelClass = "Economy"
	ClassBusiness TravelClass = "Business"
	ClassFirst    TravelClass = "First"
)

// IsValid reports whether c is one of the supported classes.
func (c TravelClass) IsValid() bool {
	switch c {
	case ClassEconomy, ClassBusiness, ClassFirst:
		return true
	default:
		return false
	}
}

// ParseTravelClass maps class names and fare-code aliases to a TravelClass.
// Matching is case-insensitive.
func ParseTravelClass(s string) (TravelClass, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "economy", "eco", "y", "coach":
		return ClassEconomy, nil
	case "business", "biz", "j", "c":
		return ClassBusiness, nil
	case "first", "f":
		return ClassFirst, nil
	default:
		return "", fmt.Errorf("unknown travel class %q", s)
	}
}

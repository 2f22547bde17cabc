package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// WeekdaySet is a set of weekdays encoded as a bitmask (bit 0 = Sunday).
// The zero value is the empty set, which callers treat as "all seven allowed".
type WeekdaySet uint8

var weekdayCodes = map[string]time.Weekday{
	"SUN": time.Sunday,
	"MON": time.Monday,
	"TUE": time.Tuesday,
	"WED": time.Wednesday,
	"THU": time.Thursday,
	"FRI": time.Friday,
	"SAT": time.Saturday,
}

var weekdayNames = [7]string{"SUN", "MON", "TUE", "WED", "THU", "FRI", "SAT"}

// ParseWeekdays builds a set from codes like "SUN", "MON". Codes are
// case-insensitive; unknown codes are rejected.
func ParseWeekdays(codes []string) (WeekdaySet, error) {
	var set WeekdaySet
	for _, c := range codes {
		wd, ok := weekdayCodes[strings.ToUpper(strings.TrimSpace(c))]
		if !ok {
			return 0, fmt.Errorf("unknown weekday code: %q", c)
		}
		set = set.With(wd)
	}
	return set, nil
}

// With returns a copy of the set with the given weekday added.
func (s WeekdaySet) With(d time.Weekday) WeekdaySet {
	return s | (1 << uint(d))
}

// Contains reports whether the weekday is in the set.
func (s WeekdaySet) Contains(d time.Weekday) bool {
	return s&(1<<uint(d)) != 0
}

// IsEmpty reports whether no weekday is set.
func (s WeekdaySet) IsEmpty() bool {
	return s == 0
}

// Allows reports whether the weekday passes the constraint. An empty set
// places no constraint, so every weekday is allowed.
func (s WeekdaySet) Allows(d time.Weekday) bool {
	return s.IsEmpty() || s.Contains(d)
}

// Codes returns the set as sorted weekday codes (SUN..SAT order).
func (s WeekdaySet) Codes() []string {
	codes := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		if s.Contains(time.Weekday(i)) {
			codes = append(codes, weekdayNames[i])
		}
	}
	return codes
}

func (s WeekdaySet) String() string {
	if s.IsEmpty() {
		return "any"
	}
	return strings.Join(s.Codes(), ",")
}

// MarshalJSON encodes the set as an array of weekday codes.
func (s WeekdaySet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Codes())
}

// UnmarshalJSON accepts an array of weekday codes; null means empty.
func (s *WeekdaySet) UnmarshalJSON(data []byte) error {
	var codes []string
	if err := json.Unmarshal(data, &codes); err != nil {
		return err
	}
	set, err := ParseWeekdays(codes)
	if err != nil {
		return err
	}
	*s = set
	return nil
}

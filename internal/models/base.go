// internal/models/base.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// WeekdaySet is a bounded set of weekdays backed by a bitmask.
// It is stored as a JSON array of day names ("Monday"..."Sunday") so the
// column stays readable, but every value passes through ParseWeekdaySet
// before it reaches storage.
type WeekdaySet uint8

var weekdayNames = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// ParseWeekdaySet builds a WeekdaySet from day names. Unknown names and
// duplicates are rejected.
func ParseWeekdaySet(names []string) (WeekdaySet, error) {
	var set WeekdaySet
	for _, name := range names {
		day, err := parseWeekday(name)
		if err != nil {
			return 0, err
		}
		bit := WeekdaySet(1) << uint(day)
		if set&bit != 0 {
			return 0, fmt.Errorf("duplicate weekday %q", name)
		}
		set |= bit
	}
	return set, nil
}

func parseWeekday(name string) (time.Weekday, error) {
	for i, n := range weekdayNames {
		if strings.EqualFold(n, name) {
			return time.Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("invalid weekday %q", name)
}

// Contains reports whether the set includes the given weekday.
func (s WeekdaySet) Contains(day time.Weekday) bool {
	return s&(1<<uint(day)) != 0
}

// IsEmpty reports whether no weekday is set.
func (s WeekdaySet) IsEmpty() bool { return s == 0 }

// Names returns the day names in calendar order (Sunday first).
func (s WeekdaySet) Names() []string {
	names := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		if s.Contains(time.Weekday(i)) {
			names = append(names, weekdayNames[i])
		}
	}
	return names
}

func (s WeekdaySet) Value() (driver.Value, error) {
	return json.Marshal(s.Names())
}

// Scan unmarshals a JSON array column into the set, validating every name.
func (s *WeekdaySet) Scan(src interface{}) error {
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("WeekdaySet: expected []byte or string, got %T", src)
	}
	var names []string
	if err := json.Unmarshal(b, &names); err != nil {
		return err
	}
	parsed, err := ParseWeekdaySet(names)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s WeekdaySet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Names())
}

func (s *WeekdaySet) UnmarshalJSON(b []byte) error {
	var names []string
	if err := json.Unmarshal(b, &names); err != nil {
		return err
	}
	parsed, err := ParseWeekdaySet(names)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// TimeOfDay is a wall-clock time without a date, stored as "HH:MM".
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:MM" (24h).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q (expected HH:MM)", s)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Minutes returns minutes since midnight, used for ordering.
func (t TimeOfDay) Minutes() int { return t.Hour*60 + t.Minute }

// Before reports whether t is strictly earlier in the day than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.Minutes() < other.Minutes()
}

// On anchors the time of day to a calendar date in the date's location.
func (t TimeOfDay) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour, t.Minute, 0, 0, date.Location())
}

func (t TimeOfDay) Value() (driver.Value, error) {
	return t.String(), nil
}

func (t *TimeOfDay) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		parsed, err := ParseTimeOfDay(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case []byte:
		return t.Scan(string(v))
	case time.Time:
		*t = TimeOfDay{Hour: v.Hour(), Minute: v.Minute()}
		return nil
	default:
		return fmt.Errorf("TimeOfDay: expected string, got %T", src)
	}
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

package domain

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time with minute resolution.
type TimeOfDay struct {
	minutes int
}

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, ErrInvalidTimeOfDay
	}

	return TimeOfDay{minutes: hour*60 + minute}, nil
}

// ParseTimeOfDay accepts "HH:MM".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}

	return TimeOfDay{minutes: t.Hour()*60 + t.Minute()}, nil
}

// TimeOfDayOf drops the date and anything below minutes from t.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay{minutes: t.Hour()*60 + t.Minute()}
}

func (t TimeOfDay) Hour() int {
	return t.minutes / 60
}

func (t TimeOfDay) Minute() int {
	return t.minutes % 60
}

func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.minutes < other.minutes
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

type Location struct {
	openingTime TimeOfDay
}

func NewLocation(openingTime TimeOfDay) Location {
	return Location{openingTime: openingTime}
}

func (l Location) OpeningTime() TimeOfDay {
	return l.openingTime
}

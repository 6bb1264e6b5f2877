package models

import (
	"fmt"
	"time"
)

// Instant is a calendar date and UT time of day. The canonical internal
// form for arithmetic is the Julian Day produced by the ephemeris
// calendar functions; Instant keeps the human-readable fields.
type Instant struct {
	Year   int `json:"year"`
	Month  int `json:"month"`
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
	Second int `json:"second"`
}

// ParseInstant parses "YYYY-MM-DD" and "HH:MM:SS" strings. An empty time
// defaults to 12:00:00 UT, matching chart-summary behavior.
func ParseInstant(date, clock string) (Instant, error) {
	if clock == "" {
		clock = "12:00:00"
	}
	t, err := time.Parse("2006-01-02 15:04:05", date+" "+clock)
	if err != nil {
		return Instant{}, NewInvalidInput("date", fmt.Sprintf("invalid date/time %q %q", date, clock))
	}
	return Instant{
		Year:   t.Year(),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
	}, nil
}

// InstantFromTime converts a time.Time (read in UTC) to an Instant.
func InstantFromTime(t time.Time) Instant {
	u := t.UTC()
	return Instant{
		Year:   u.Year(),
		Month:  int(u.Month()),
		Day:    u.Day(),
		Hour:   u.Hour(),
		Minute: u.Minute(),
		Second: u.Second(),
	}
}

// ParseDate parses a bare "YYYY-MM-DD" date, yielding a noon instant.
func ParseDate(date string) (Instant, error) {
	return ParseInstant(date, "")
}

// DecimalHour converts the time of day to decimal hours.
func (i Instant) DecimalHour() float64 {
	return float64(i.Hour) + float64(i.Minute)/60 + float64(i.Second)/3600
}

// DateString renders the calendar date as YYYY-MM-DD.
func (i Instant) DateString() string {
	return fmt.Sprintf("%04d-%02d-%02d", i.Year, i.Month, i.Day)
}

// TimeString renders the time of day as HH:MM:SS.
func (i Instant) TimeString() string {
	return fmt.Sprintf("%02d:%02d:%02d", i.Hour, i.Minute, i.Second)
}

// ValidCoordinates checks geographic bounds.
func ValidCoordinates(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return NewInvalidInput("latitude", fmt.Sprintf("latitude %.4f out of range [-90,90]", lat))
	}
	if lon < -180 || lon > 180 {
		return NewInvalidInput("longitude", fmt.Sprintf("longitude %.4f out of range [-180,180]", lon))
	}
	return nil
}

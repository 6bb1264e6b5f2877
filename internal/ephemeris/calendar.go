package ephemeris

import (
	"math"

	"AstroEngine/internal/domain/models"
)

// J2000 is the Julian Day of the J2000.0 epoch (2000-01-01 12:00 UT).
const J2000 = 2451545.0

// DaysPerCentury converts Julian Days to Julian centuries from J2000.
const DaysPerCentury = 36525.0

// JulianDay converts a Gregorian calendar date and decimal UT hour to a
// Julian Day number. JulianDay(2000, 1, 1, 12) == 2451545.0.
func JulianDay(year, month, day int, hour float64) float64 {
	y, m := year, month
	if m <= 2 {
		y--
		m += 12
	}
	a := y / 100
	b := 2 - a + a/4
	jd := math.Floor(365.25*float64(y+4716)) +
		math.Floor(30.6001*float64(m+1)) +
		float64(day) + float64(b) - 1524.5
	return jd + hour/24
}

// JulianDayOf converts an Instant to its Julian Day.
func JulianDayOf(i models.Instant) float64 {
	return JulianDay(i.Year, i.Month, i.Day, i.DecimalHour())
}

// CalendarDate converts a Julian Day back to a Gregorian date and
// decimal UT hour. Inverse of JulianDay for jd >= 0.
func CalendarDate(jd float64) (year, month, day int, hour float64) {
	jd += 0.5
	z := math.Floor(jd)
	f := jd - z

	a := z
	if z >= 2299161 {
		alpha := math.Floor((z - 1867216.25) / 36524.25)
		a = z + 1 + alpha - math.Floor(alpha/4)
	}
	b := a + 1524
	c := math.Floor((b - 122.1) / 365.25)
	d := math.Floor(365.25 * c)
	e := math.Floor((b - d) / 30.6001)

	day = int(b - d - math.Floor(30.6001*e))
	if e < 14 {
		month = int(e) - 1
	} else {
		month = int(e) - 13
	}
	if month > 2 {
		year = int(c) - 4716
	} else {
		year = int(c) - 4715
	}
	hour = f * 24
	return
}

// InstantOf converts a Julian Day to an Instant, rounding to the
// nearest second.
func InstantOf(jd float64) models.Instant {
	year, month, day, hour := CalendarDate(jd)
	totalSec := int(math.Round(hour * 3600))
	if totalSec >= 86400 {
		// rounding pushed past midnight; renormalize through the calendar
		return InstantOf(jd + 0.5/86400)
	}
	return models.Instant{
		Year:   year,
		Month:  month,
		Day:    day,
		Hour:   totalSec / 3600,
		Minute: (totalSec % 3600) / 60,
		Second: totalSec % 60,
	}
}

// Centuries returns Julian centuries elapsed since J2000.0.
func Centuries(jd float64) float64 {
	return (jd - J2000) / DaysPerCentury
}

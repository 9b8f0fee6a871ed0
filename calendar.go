package main

import (
	"strings"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/de"
	"github.com/rickar/cal/v2/us"
)

// ---------------------------------------------------------------------------
// Business Calendar
// ---------------------------------------------------------------------------

// regionHolidays maps calendar regions to their holiday slices.
var regionHolidays = map[string][]*cal.Holiday{
	"US":    us.Holidays,
	"DE-BW": de.HolidaysBW, // Baden-Württemberg
	"DE-BY": de.HolidaysBY, // Bayern (Bavaria)
	"DE-BE": de.HolidaysBE, // Berlin
	"DE-HH": de.HolidaysHH, // Hamburg
	"DE-HE": de.HolidaysHE, // Hessen (Hesse)
	"DE-NI": de.HolidaysNI, // Niedersachsen (Lower Saxony)
	"DE-NW": de.HolidaysNW, // Nordrhein-Westfalen (North Rhine-Westphalia)
	"DE-SN": de.HolidaysSN, // Sachsen (Saxony)
}

// newBusinessCalendar creates a calendar with the holidays of region.
// Unknown regions fall back to US federal holidays.
func newBusinessCalendar(region string) *cal.BusinessCalendar {
	c := cal.NewBusinessCalendar()
	c.Name = "SEED Profile"
	c.Description = "Revisit scheduling calendar"

	holidays, ok := regionHolidays[strings.ToUpper(region)]
	if !ok {
		holidays = us.Holidays
	}
	c.AddHoliday(holidays...)
	return c
}

// revisitDate returns the date workdays business days after start, or the
// zero time when no revisit is configured.
func revisitDate(region string, start time.Time, workdays int) time.Time {
	if workdays <= 0 || start.IsZero() {
		return time.Time{}
	}
	c := newBusinessCalendar(region)
	d := start
	for workdays > 0 {
		d = d.AddDate(0, 0, 1)
		if c.IsWorkday(d) {
			workdays--
		}
	}
	return d
}

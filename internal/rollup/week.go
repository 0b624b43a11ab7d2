package rollup

import "time"

const DateLayout = "2006-01-02"

// WeekEnding returns the Saturday that closes the construction week holding d.
// Monday through Saturday walk forward to Saturday; Sunday rolls back one day.
func WeekEnding(d time.Time) time.Time {
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
	wd := day.Weekday()
	if wd == time.Sunday {
		return day.AddDate(0, 0, -1)
	}
	return day.AddDate(0, 0, int(time.Saturday-wd))
}

// WeekKey is WeekEnding formatted as YYYY-MM-DD.
func WeekKey(d time.Time) string {
	return WeekEnding(d).Format(DateLayout)
}

package rollup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestWeekEnding_SaturdayMapsToItself(t *testing.T) {
	// 2025-03-15 is a Saturday.
	assert.Equal(t, "2025-03-15", WeekKey(day("2025-03-15")))
}

func TestWeekEnding_SundayRollsBackOneDay(t *testing.T) {
	assert.Equal(t, "2025-03-15", WeekKey(day("2025-03-16")))
}

func TestWeekEnding_MondayWalksForwardFiveDays(t *testing.T) {
	assert.Equal(t, "2025-03-22", WeekKey(day("2025-03-17")))
}

func TestWeekEnding_EveryWeekdayLandsOnSaturday(t *testing.T) {
	start := day("2025-01-01")
	for i := 0; i < 60; i++ {
		d := start.AddDate(0, 0, i)
		we := WeekEnding(d)
		assert.Equal(t, time.Saturday, we.Weekday(), "date %s", d.Format(DateLayout))

		diff := int(we.Sub(d).Hours() / 24)
		assert.GreaterOrEqual(t, diff, -1, "date %s", d.Format(DateLayout))
		assert.LessOrEqual(t, diff, 5, "date %s", d.Format(DateLayout))
	}
}

func TestWeekEnding_CrossesMonthBoundary(t *testing.T) {
	// Thursday 2025-07-31 closes on Saturday 2025-08-02.
	assert.Equal(t, "2025-08-02", WeekKey(day("2025-07-31")))
}

func TestWeekEnding_IgnoresTimeOfDay(t *testing.T) {
	d := time.Date(2025, 3, 17, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-22", WeekKey(d))
}

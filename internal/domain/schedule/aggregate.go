package schedule

import (
	"math"
	"time"
)

// IntervalMinutes returns the countable duration of one entry: gross span
// minus break, floored at zero. An open entry (no end time) has no countable
// duration yet and contributes 0.
func IntervalMinutes(entry WorkInterval) int {
	if entry.End == nil {
		return 0
	}
	minutes := int(*entry.End-entry.Start) - entry.BreakMinutes
	if minutes < 0 {
		return 0
	}
	return minutes
}

// DailyTotals reduces one employee's entries for one calendar day. Overtime
// is measured against standardDailyMinutes and never goes negative.
func DailyTotals(entries []WorkInterval, employeeID string, date time.Time, standardDailyMinutes int) Totals {
	var totals Totals
	for _, entry := range entries {
		if entry.EmployeeID != employeeID || !sameDay(entry.Date, date) {
			continue
		}
		minutes := IntervalMinutes(entry)
		totals.TotalMinutes += minutes
		if entry.ProjectID != "" {
			totals.ProjectMinutes += minutes
		}
	}
	totals.RegularMinutes = totals.TotalMinutes - totals.ProjectMinutes
	totals.OvertimeMinutes = overtime(totals.TotalMinutes, standardDailyMinutes)
	return totals
}

// WeeklyTotals reduces one employee's entries across the 7 days starting at
// weekStart. Weekly overtime is computed once over the whole week against
// standardWeeklyMinutes; it is not the sum of the daily overtimes.
func WeeklyTotals(entries []WorkInterval, employeeID string, weekStart time.Time, standardWeeklyMinutes int) Totals {
	start := truncateDay(weekStart)
	end := start.AddDate(0, 0, 7)

	var totals Totals
	for _, entry := range entries {
		if entry.EmployeeID != employeeID {
			continue
		}
		day := truncateDay(entry.Date)
		if day.Before(start) || !day.Before(end) {
			continue
		}
		minutes := IntervalMinutes(entry)
		totals.TotalMinutes += minutes
		if entry.ProjectID != "" {
			totals.ProjectMinutes += minutes
		}
	}
	totals.RegularMinutes = totals.TotalMinutes - totals.ProjectMinutes
	totals.OvertimeMinutes = overtime(totals.TotalMinutes, standardWeeklyMinutes)
	return totals
}

// WeekStart returns the most recent day on or before date that falls on the
// configured first day of the week.
func WeekStart(date time.Time, weekStartDay time.Weekday) time.Time {
	day := truncateDay(date)
	offset := (int(day.Weekday()) - int(weekStartDay) + 7) % 7
	return day.AddDate(0, 0, -offset)
}

// Hours converts a minute sum to hours rounded half-up to two decimals.
// Rounding happens only here, at presentation time, so intermediate minute
// sums never accumulate rounding error.
func Hours(minutes int) float64 {
	return math.Floor(float64(minutes)/60*100+0.5) / 100
}

func overtime(totalMinutes, baseline int) int {
	if totalMinutes <= baseline {
		return 0
	}
	return totalMinutes - baseline
}

package schedule

import (
	"reflect"
	"testing"
	"time"
)

func entry(t *testing.T, employeeID string, day time.Time, start, end string, breakMinutes int, projectID string) WorkInterval {
	t.Helper()
	in := interval(t, "", employeeID, day, start, end)
	in.BreakMinutes = breakMinutes
	in.ProjectID = projectID
	return in
}

func TestIntervalMinutes(t *testing.T) {
	day := date(2024, 3, 4)

	// 08:00-17:00 with a 30 minute break.
	if got := IntervalMinutes(entry(t, "emp-1", day, "08:00", "17:00", 30, "")); got != 510 {
		t.Fatalf("expected 510 minutes, got %d", got)
	}

	// A full hour of breaks lands on the standard 8h day.
	if got := IntervalMinutes(entry(t, "emp-1", day, "08:00", "17:00", 60, "")); got != 480 {
		t.Fatalf("expected 480 minutes, got %d", got)
	}

	// Open entry contributes nothing yet.
	open := WorkInterval{EmployeeID: "emp-1", Date: day, Start: 8 * 60}
	if got := IntervalMinutes(open); got != 0 {
		t.Fatalf("expected 0 minutes for open entry, got %d", got)
	}

	// Break exceeding the gross span floors at zero.
	if got := IntervalMinutes(entry(t, "emp-1", day, "08:00", "09:00", 90, "")); got != 0 {
		t.Fatalf("expected floor at 0, got %d", got)
	}
}

func TestDailyTotals(t *testing.T) {
	day := date(2024, 3, 4)
	entries := []WorkInterval{
		entry(t, "emp-1", day, "08:00", "12:00", 0, "proj-1"),
		entry(t, "emp-1", day, "12:30", "17:00", 30, ""),
		entry(t, "emp-1", date(2024, 3, 5), "08:00", "12:00", 0, ""), // other day
		entry(t, "emp-2", day, "08:00", "12:00", 0, ""),              // other employee
	}

	totals := DailyTotals(entries, "emp-1", day, 480)
	if totals.TotalMinutes != 480 {
		t.Fatalf("expected 480 total minutes, got %d", totals.TotalMinutes)
	}
	if totals.ProjectMinutes != 240 {
		t.Fatalf("expected 240 project minutes, got %d", totals.ProjectMinutes)
	}
	if totals.RegularMinutes != 240 {
		t.Fatalf("expected 240 regular minutes, got %d", totals.RegularMinutes)
	}
	if totals.OvertimeMinutes != 0 {
		t.Fatalf("expected no overtime at baseline, got %d", totals.OvertimeMinutes)
	}
}

func TestOvertimeNeverNegative(t *testing.T) {
	day := date(2024, 3, 4)
	entries := []WorkInterval{entry(t, "emp-1", day, "08:00", "10:00", 0, "")}

	totals := DailyTotals(entries, "emp-1", day, 480)
	if totals.OvertimeMinutes != 0 {
		t.Fatalf("overtime must floor at 0, got %d", totals.OvertimeMinutes)
	}

	weekly := WeeklyTotals(entries, "emp-1", day, 2400)
	if weekly.OvertimeMinutes != 0 {
		t.Fatalf("weekly overtime must floor at 0, got %d", weekly.OvertimeMinutes)
	}
}

func TestWeeklyTotalsFiveNineHourDays(t *testing.T) {
	// Monday 2024-03-04 through Friday, 08:00-17:00 with no break: 9h/day.
	weekStart := date(2024, 3, 4)
	var entries []WorkInterval
	for i := 0; i < 5; i++ {
		entries = append(entries, entry(t, "emp-1", weekStart.AddDate(0, 0, i), "08:00", "17:00", 0, ""))
	}

	for i := 0; i < 5; i++ {
		daily := DailyTotals(entries, "emp-1", weekStart.AddDate(0, 0, i), 480)
		if daily.OvertimeMinutes != 60 {
			t.Fatalf("day %d: expected 60 overtime minutes, got %d", i, daily.OvertimeMinutes)
		}
	}

	weekly := WeeklyTotals(entries, "emp-1", weekStart, 2400)
	if weekly.TotalMinutes != 2700 {
		t.Fatalf("expected 2700 weekly minutes, got %d", weekly.TotalMinutes)
	}
	if weekly.OvertimeMinutes != 300 {
		t.Fatalf("expected 300 weekly overtime minutes, got %d", weekly.OvertimeMinutes)
	}
}

func TestWeeklyTotalsSumLaw(t *testing.T) {
	weekStart := date(2024, 3, 4)
	entries := []WorkInterval{
		entry(t, "emp-1", weekStart, "08:00", "12:15", 15, "proj-1"),
		entry(t, "emp-1", weekStart.AddDate(0, 0, 2), "07:30", "16:00", 45, ""),
		entry(t, "emp-1", weekStart.AddDate(0, 0, 6), "10:00", "14:00", 0, "proj-2"),
		entry(t, "emp-1", weekStart.AddDate(0, 0, 7), "08:00", "16:00", 0, ""), // next week
	}

	sum := 0
	for i := 0; i < 7; i++ {
		sum += DailyTotals(entries, "emp-1", weekStart.AddDate(0, 0, i), 480).TotalMinutes
	}

	weekly := WeeklyTotals(entries, "emp-1", weekStart, 2400)
	if weekly.TotalMinutes != sum {
		t.Fatalf("weekly total %d must equal sum of daily totals %d", weekly.TotalMinutes, sum)
	}
}

func TestAggregationIdempotent(t *testing.T) {
	day := date(2024, 3, 4)
	entries := []WorkInterval{
		entry(t, "emp-1", day, "08:00", "12:00", 0, "proj-1"),
		entry(t, "emp-1", day, "13:00", "17:30", 30, ""),
	}

	first := DailyTotals(entries, "emp-1", day, 480)
	second := DailyTotals(entries, "emp-1", day, 480)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("daily totals not idempotent: %+v vs %+v", first, second)
	}

	firstWeek := WeeklyTotals(entries, "emp-1", day, 2400)
	secondWeek := WeeklyTotals(entries, "emp-1", day, 2400)
	if !reflect.DeepEqual(firstWeek, secondWeek) {
		t.Fatalf("weekly totals not idempotent: %+v vs %+v", firstWeek, secondWeek)
	}
}

func TestWeekStart(t *testing.T) {
	// 2024-03-07 is a Thursday.
	thursday := date(2024, 3, 7)

	monday := WeekStart(thursday, time.Monday)
	if !monday.Equal(date(2024, 3, 4)) {
		t.Fatalf("expected Monday 2024-03-04, got %s", monday.Format("2006-01-02"))
	}

	sunday := WeekStart(thursday, time.Sunday)
	if !sunday.Equal(date(2024, 3, 3)) {
		t.Fatalf("expected Sunday 2024-03-03, got %s", sunday.Format("2006-01-02"))
	}

	// A date already on the week start maps to itself.
	if got := WeekStart(date(2024, 3, 4), time.Monday); !got.Equal(date(2024, 3, 4)) {
		t.Fatalf("expected week start to be stable, got %s", got.Format("2006-01-02"))
	}
}

func TestHoursRounding(t *testing.T) {
	if got := Hours(480); got != 8 {
		t.Fatalf("expected 8h, got %v", got)
	}
	// 500 minutes = 8.3333...h rounds to 8.33.
	if got := Hours(500); got != 8.33 {
		t.Fatalf("expected 8.33h, got %v", got)
	}
	// 505 minutes = 8.41666...h rounds half-up to 8.42.
	if got := Hours(505); got != 8.42 {
		t.Fatalf("expected 8.42h, got %v", got)
	}
	if got := Hours(0); got != 0 {
		t.Fatalf("expected 0h, got %v", got)
	}
}

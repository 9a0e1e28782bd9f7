package reports

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"craftadmin/internal/domain/core"
	"craftadmin/internal/domain/schedule"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func clockPtr(h, m int) *schedule.ClockTime {
	c := schedule.ClockTime(h*60 + m)
	return &c
}

func TestEmployeeWeekBuildsSevenDays(t *testing.T) {
	svc := &Service{Baselines: schedule.Baselines{
		DailyMinutes:  480,
		WeeklyMinutes: 2400,
		WeekStartDay:  time.Monday,
	}}
	emp := core.Employee{ID: "e1", FirstName: "Ada", LastName: "Mason"}
	weekStart := day(2026, time.September, 7) // a Monday

	entries := []schedule.WorkInterval{
		{
			ID:         "w1",
			EmployeeID: "e1",
			Date:       weekStart,
			Start:      schedule.ClockTime(8 * 60),
			End:        clockPtr(17, 0),
			// 9h minus break = 8.5h, 30min over the daily baseline
			BreakMinutes: 30,
			ProjectID:    "p1",
		},
		{
			ID:         "w2",
			EmployeeID: "e1",
			Date:       weekStart.AddDate(0, 0, 1),
			Start:      schedule.ClockTime(8 * 60),
			End:        clockPtr(12, 0),
		},
		// Another employee's entry must not leak in.
		{
			ID:         "w3",
			EmployeeID: "e2",
			Date:       weekStart,
			Start:      schedule.ClockTime(8 * 60),
			End:        clockPtr(16, 0),
		},
	}

	week := svc.employeeWeek(emp, entries, weekStart)

	if week.EmployeeID != "e1" || week.FirstName != "Ada" {
		t.Fatalf("unexpected employee: %+v", week)
	}
	if len(week.Days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(week.Days))
	}

	monday := week.Days[0]
	if len(monday.Entries) != 1 || monday.Entries[0].ID != "w1" {
		t.Fatalf("unexpected monday entries: %+v", monday.Entries)
	}
	if monday.TotalHours != 8.5 || monday.ProjectHours != 8.5 || monday.RegularHours != 0 {
		t.Fatalf("unexpected monday hours: %+v", monday)
	}
	if monday.OvertimeHours != 0.5 {
		t.Fatalf("expected 0.5h overtime, got %v", monday.OvertimeHours)
	}

	tuesday := week.Days[1]
	if tuesday.TotalHours != 4 || tuesday.ProjectHours != 0 || tuesday.RegularHours != 4 {
		t.Fatalf("unexpected tuesday hours: %+v", tuesday)
	}

	for _, empty := range week.Days[2:] {
		if empty.TotalHours != 0 || len(empty.Entries) != 0 {
			t.Fatalf("expected empty day, got %+v", empty)
		}
	}

	// 12.5h in the week, below the 40h baseline.
	if week.Week.TotalHours != 12.5 || week.Week.OvertimeHours != 0 {
		t.Fatalf("unexpected week summary: %+v", week.Week)
	}
}

func TestSaveTimesheet(t *testing.T) {
	dir := t.TempDir()
	weekStart := day(2026, time.September, 7)

	path, err := SaveTimesheet(dir, "e1", weekStart, []byte("%PDF-stub"))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if filepath.Base(path) != "timesheet-e1-2026-09-07.pdf" {
		t.Fatalf("unexpected file name: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if string(data) != "%PDF-stub" {
		t.Fatalf("unexpected content: %q", data)
	}

	// Nested dirs are created on demand.
	if _, err := SaveTimesheet(filepath.Join(dir, "2026", "week-37"), "e1", weekStart, []byte("x")); err != nil {
		t.Fatalf("nested save failed: %v", err)
	}
}

func TestEmployeeWeekNoEntries(t *testing.T) {
	svc := &Service{Baselines: schedule.Baselines{
		DailyMinutes:  480,
		WeeklyMinutes: 2400,
		WeekStartDay:  time.Monday,
	}}
	week := svc.employeeWeek(core.Employee{ID: "e1"}, nil, day(2026, time.September, 7))

	if len(week.Days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(week.Days))
	}
	for _, d := range week.Days {
		if d.Entries == nil {
			t.Fatal("expected non-nil entries slice")
		}
	}
	if week.Week.TotalHours != 0 {
		t.Fatalf("expected zero week total, got %v", week.Week.TotalHours)
	}
}

package reports

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	"craftadmin/internal/domain/core"
	"craftadmin/internal/domain/schedule"
)

// Service builds the weekly time overview the calendar page shows: one row
// per employee, one cell per day, plus week totals. All figures come from the
// schedule aggregator with the configured baselines. When Dir is set, every
// generated timesheet is also archived there.
type Service struct {
	Schedule  *schedule.Store
	Core      *core.Store
	Baselines schedule.Baselines
	Dir       string
}

func NewService(scheduleStore *schedule.Store, coreStore *core.Store, baselines schedule.Baselines, dir string) *Service {
	return &Service{Schedule: scheduleStore, Core: coreStore, Baselines: baselines, Dir: dir}
}

type DaySummary struct {
	Date          time.Time               `json:"date"`
	Entries       []schedule.WorkInterval `json:"entries"`
	TotalHours    float64                 `json:"totalHours"`
	ProjectHours  float64                 `json:"projectHours"`
	RegularHours  float64                 `json:"regularHours"`
	OvertimeHours float64                 `json:"overtimeHours"`
}

type WeekSummary struct {
	TotalHours    float64 `json:"totalHours"`
	ProjectHours  float64 `json:"projectHours"`
	RegularHours  float64 `json:"regularHours"`
	OvertimeHours float64 `json:"overtimeHours"`
}

type EmployeeWeek struct {
	EmployeeID string       `json:"employeeId"`
	FirstName  string       `json:"firstName"`
	LastName   string       `json:"lastName"`
	Days       []DaySummary `json:"days"`
	Week       WeekSummary  `json:"week"`
}

type WeeklyOverview struct {
	WeekStart time.Time      `json:"weekStart"`
	Employees []EmployeeWeek `json:"employees"`
}

// Weekly assembles the overview for the week containing date.
func (s *Service) Weekly(ctx context.Context, date time.Time) (WeeklyOverview, error) {
	weekStart := schedule.WeekStart(date, s.Baselines.WeekStartDay)

	employees, err := s.Core.ListEmployees(ctx)
	if err != nil {
		return WeeklyOverview{}, fmt.Errorf("list employees: %w", err)
	}
	entries, err := s.Schedule.IntervalsForRange(ctx, weekStart, weekStart.AddDate(0, 0, 6))
	if err != nil {
		return WeeklyOverview{}, fmt.Errorf("fetch work intervals: %w", err)
	}

	overview := WeeklyOverview{WeekStart: weekStart, Employees: []EmployeeWeek{}}
	for _, emp := range employees {
		overview.Employees = append(overview.Employees, s.employeeWeek(emp, entries, weekStart))
	}
	return overview, nil
}

// EmployeeWeekReport assembles a single employee's week, used for the
// timesheet export.
func (s *Service) EmployeeWeekReport(ctx context.Context, employeeID string, date time.Time) (EmployeeWeek, error) {
	weekStart := schedule.WeekStart(date, s.Baselines.WeekStartDay)

	emp, err := s.Core.GetEmployee(ctx, employeeID)
	if err != nil {
		return EmployeeWeek{}, err
	}
	entries, err := s.Schedule.IntervalsForRange(ctx, weekStart, weekStart.AddDate(0, 0, 6))
	if err != nil {
		return EmployeeWeek{}, fmt.Errorf("fetch work intervals: %w", err)
	}
	return s.employeeWeek(emp, entries, weekStart), nil
}

func (s *Service) employeeWeek(emp core.Employee, entries []schedule.WorkInterval, weekStart time.Time) EmployeeWeek {
	week := EmployeeWeek{
		EmployeeID: emp.ID,
		FirstName:  emp.FirstName,
		LastName:   emp.LastName,
		Days:       make([]DaySummary, 0, 7),
	}

	for i := 0; i < 7; i++ {
		day := weekStart.AddDate(0, 0, i)
		totals := schedule.DailyTotals(entries, emp.ID, day, s.Baselines.DailyMinutes)
		week.Days = append(week.Days, DaySummary{
			Date:          day,
			Entries:       entriesForDay(entries, emp.ID, day),
			TotalHours:    schedule.Hours(totals.TotalMinutes),
			ProjectHours:  schedule.Hours(totals.ProjectMinutes),
			RegularHours:  schedule.Hours(totals.RegularMinutes),
			OvertimeHours: schedule.Hours(totals.OvertimeMinutes),
		})
	}

	weekTotals := schedule.WeeklyTotals(entries, emp.ID, weekStart, s.Baselines.WeeklyMinutes)
	week.Week = WeekSummary{
		TotalHours:    schedule.Hours(weekTotals.TotalMinutes),
		ProjectHours:  schedule.Hours(weekTotals.ProjectMinutes),
		RegularHours:  schedule.Hours(weekTotals.RegularMinutes),
		OvertimeHours: schedule.Hours(weekTotals.OvertimeMinutes),
	}
	return week
}

func entriesForDay(entries []schedule.WorkInterval, employeeID string, day time.Time) []schedule.WorkInterval {
	out := []schedule.WorkInterval{}
	for _, entry := range entries {
		if entry.EmployeeID == employeeID && entry.Date.Year() == day.Year() && entry.Date.YearDay() == day.YearDay() {
			out = append(out, entry)
		}
	}
	return out
}

// TimesheetPDF renders one employee's week as a PDF.
func (s *Service) TimesheetPDF(ctx context.Context, employeeID string, date time.Time) ([]byte, error) {
	week, err := s.EmployeeWeekReport(ctx, employeeID, date)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Timesheet")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s %s", week.FirstName, week.LastName))
	pdf.Ln(7)
	weekEnd := week.Days[len(week.Days)-1].Date
	pdf.Cell(0, 8, fmt.Sprintf("Week: %s to %s", week.Days[0].Date.Format("2006-01-02"), weekEnd.Format("2006-01-02")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(35, 7, "Date")
	pdf.Cell(30, 7, "Total")
	pdf.Cell(30, 7, "Project")
	pdf.Cell(30, 7, "Regular")
	pdf.Cell(30, 7, "Overtime")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	for _, day := range week.Days {
		pdf.Cell(35, 7, day.Date.Format("2006-01-02"))
		pdf.Cell(30, 7, fmt.Sprintf("%.2f h", day.TotalHours))
		pdf.Cell(30, 7, fmt.Sprintf("%.2f h", day.ProjectHours))
		pdf.Cell(30, 7, fmt.Sprintf("%.2f h", day.RegularHours))
		pdf.Cell(30, 7, fmt.Sprintf("%.2f h", day.OvertimeHours))
		pdf.Ln(7)
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(35, 7, "Week")
	pdf.Cell(30, 7, fmt.Sprintf("%.2f h", week.Week.TotalHours))
	pdf.Cell(30, 7, fmt.Sprintf("%.2f h", week.Week.ProjectHours))
	pdf.Cell(30, 7, fmt.Sprintf("%.2f h", week.Week.RegularHours))
	pdf.Cell(30, 7, fmt.Sprintf("%.2f h", week.Week.OvertimeHours))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}

	if s.Dir != "" {
		if _, err := SaveTimesheet(s.Dir, employeeID, week.Days[0].Date, buf.Bytes()); err != nil {
			slog.Warn("timesheet archive failed", "employeeId", employeeID, "err", err)
		}
	}
	return buf.Bytes(), nil
}

// SaveTimesheet archives a rendered timesheet under dir, keyed by employee
// and week start. Returns the written path.
func SaveTimesheet(dir, employeeID string, weekStart time.Time, pdf []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("timesheet-%s-%s.pdf", employeeID, weekStart.Format("2006-01-02")))
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

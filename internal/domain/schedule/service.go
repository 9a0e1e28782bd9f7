package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Service wraps the pure availability/aggregation logic with snapshot
// fetching and commits. Unlike the pure checker, the service is fail-closed:
// a store error aborts the operation rather than committing blind.
type Service struct {
	Store     *Store
	Baselines Baselines
}

func NewService(store *Store, baselines Baselines) *Service {
	return &Service{Store: store, Baselines: baselines}
}

// CheckAvailability fetches the employee's snapshot for the date and runs the
// conflict check against it.
func (s *Service) CheckAvailability(ctx context.Context, employeeID string, date time.Time, start ClockTime, end *ClockTime, excludeID string) (ConflictResult, error) {
	if err := ValidateInterval(start, end, 0); err != nil {
		return ConflictResult{}, err
	}

	intervals, err := s.Store.IntervalsForEmployeeDate(ctx, employeeID, date)
	if err != nil {
		return ConflictResult{}, fmt.Errorf("fetch work intervals: %w", err)
	}
	absences, err := s.Store.AbsencesForEmployeeDate(ctx, employeeID, date)
	if err != nil {
		return ConflictResult{}, fmt.Errorf("fetch absences: %w", err)
	}

	candidateEnd := endOfDay
	if end != nil {
		candidateEnd = *end
	}
	return CheckEmployeeAvailability(intervals, absences, employeeID, date, start, candidateEnd, excludeID), nil
}

// ProjectSchedule lists who is already committed to a project on a date.
func (s *Service) ProjectSchedule(ctx context.Context, projectID string, date time.Time, excludeID string) ([]WorkInterval, error) {
	intervals, err := s.Store.IntervalsForProjectDate(ctx, projectID, date)
	if err != nil {
		return nil, fmt.Errorf("fetch project intervals: %w", err)
	}
	return ProjectCommitments(intervals, projectID, date, excludeID), nil
}

// CreateInterval validates, checks availability against the current snapshot
// and commits. The database exclusion constraint backstops the check against
// concurrent writers; a constraint rejection also surfaces as ConflictError.
func (s *Service) CreateInterval(ctx context.Context, in WorkInterval) (string, error) {
	if err := ValidateInterval(in.Start, in.End, in.BreakMinutes); err != nil {
		return "", err
	}

	result, err := s.CheckAvailability(ctx, in.EmployeeID, in.Date, in.Start, in.End, "")
	if err != nil {
		return "", err
	}
	if result.HasConflict {
		return "", &ConflictError{Result: result}
	}

	id, err := s.Store.InsertInterval(ctx, in)
	if errors.Is(err, ErrConflict) {
		return "", &ConflictError{Result: result}
	}
	return id, err
}

// UpdateInterval re-validates an edited entry against a snapshot that still
// contains it, excluding the entry itself from the check.
func (s *Service) UpdateInterval(ctx context.Context, id string, in WorkInterval) error {
	if err := ValidateInterval(in.Start, in.End, in.BreakMinutes); err != nil {
		return err
	}

	result, err := s.CheckAvailability(ctx, in.EmployeeID, in.Date, in.Start, in.End, id)
	if err != nil {
		return err
	}
	if result.HasConflict {
		return &ConflictError{Result: result}
	}

	err = s.Store.UpdateInterval(ctx, id, in)
	if errors.Is(err, ErrConflict) {
		return &ConflictError{Result: result}
	}
	return err
}

func (s *Service) DeleteInterval(ctx context.Context, id string) error {
	return s.Store.DeleteInterval(ctx, id)
}

func (s *Service) ListIntervals(ctx context.Context, employeeID string) ([]WorkInterval, error) {
	return s.Store.IntervalsForEmployee(ctx, employeeID)
}

// CreateAbsence records a vacation/sick/other range. Creating an absence does
// not run the availability check; only scheduling work does.
func (s *Service) CreateAbsence(ctx context.Context, in AbsenceRange) (string, error) {
	if truncateDay(in.EndDate).Before(truncateDay(in.StartDate)) {
		return "", fmt.Errorf("%w: end date before start date", ErrInvalidDateRange)
	}
	if in.Status == "" {
		in.Status = AbsenceStatusPending
	}
	return s.Store.InsertAbsence(ctx, in)
}

func (s *Service) SetAbsenceStatus(ctx context.Context, id, status string) error {
	return s.Store.SetAbsenceStatus(ctx, id, status)
}

func (s *Service) DeleteAbsence(ctx context.Context, id string) error {
	return s.Store.DeleteAbsence(ctx, id)
}

func (s *Service) ListAbsences(ctx context.Context, employeeID string) ([]AbsenceRange, error) {
	return s.Store.AbsencesForEmployee(ctx, employeeID)
}

// DailyTotals computes one employee's totals for a single day using the
// configured daily baseline.
func (s *Service) DailyTotals(ctx context.Context, employeeID string, date time.Time) (Totals, error) {
	entries, err := s.Store.IntervalsForEmployeeDate(ctx, employeeID, date)
	if err != nil {
		return Totals{}, fmt.Errorf("fetch work intervals: %w", err)
	}
	return DailyTotals(entries, employeeID, date, s.Baselines.DailyMinutes), nil
}

// WeeklyTotals computes one employee's totals for the week containing date,
// starting from the configured week start day.
func (s *Service) WeeklyTotals(ctx context.Context, employeeID string, date time.Time) (Totals, error) {
	weekStart := WeekStart(date, s.Baselines.WeekStartDay)
	entries, err := s.Store.IntervalsForRange(ctx, weekStart, weekStart.AddDate(0, 0, 6))
	if err != nil {
		return Totals{}, fmt.Errorf("fetch work intervals: %w", err)
	}
	return WeeklyTotals(entries, employeeID, weekStart, s.Baselines.WeeklyMinutes), nil
}

package schedule

import (
	"fmt"
	"time"
)

// ValidateInterval rejects malformed candidate intervals before any conflict
// check runs. A nil end is allowed (open shift).
func ValidateInterval(start ClockTime, end *ClockTime, breakMinutes int) error {
	if start < 0 || start >= endOfDay {
		return fmt.Errorf("%w: start time out of range", ErrInvalidInterval)
	}
	if end != nil {
		if *end > endOfDay {
			return fmt.Errorf("%w: end time out of range", ErrInvalidInterval)
		}
		if *end <= start {
			return fmt.Errorf("%w: end time must be after start time", ErrInvalidInterval)
		}
	}
	if breakMinutes < 0 {
		return fmt.Errorf("%w: break minutes must not be negative", ErrInvalidInterval)
	}
	return nil
}

// CheckEmployeeAvailability reports every existing work interval and absence
// the candidate range collides with for the given employee and date.
//
// Overlap is the half-open test existing.start < end && existing.end > start;
// an open existing interval is treated as running to end of day. Absences
// match when startDate <= date <= endDate. excludeID skips one record so an
// entry can be re-validated against a snapshot that still contains it.
//
// The check is a pure function of the snapshot: an empty snapshot always
// yields no conflict. Whether a failed snapshot fetch should be treated that
// way (fail-open) is the caller's decision; the service layer in this package
// aborts on fetch errors instead.
func CheckEmployeeAvailability(intervals []WorkInterval, absences []AbsenceRange, employeeID string, date time.Time, start ClockTime, end ClockTime, excludeID string) ConflictResult {
	result := ConflictResult{
		ConflictingWorkIntervals: []WorkInterval{},
		ConflictingAbsences:      []AbsenceRange{},
	}

	for _, existing := range intervals {
		if existing.EmployeeID != employeeID || existing.ID == excludeID {
			continue
		}
		if !sameDay(existing.Date, date) {
			continue
		}
		if overlaps(existing, start, end) {
			result.ConflictingWorkIntervals = append(result.ConflictingWorkIntervals, existing)
		}
	}

	for _, absence := range absences {
		if absence.EmployeeID != employeeID || absence.ID == excludeID {
			continue
		}
		if coversDay(absence, date) {
			result.ConflictingAbsences = append(result.ConflictingAbsences, absence)
		}
	}

	result.HasConflict = len(result.ConflictingWorkIntervals) > 0 || len(result.ConflictingAbsences) > 0
	return result
}

// ProjectCommitments returns every work interval already scheduled against
// the project on the given date, across all employees. Informational only:
// having colleagues on the same project is not a conflict.
func ProjectCommitments(intervals []WorkInterval, projectID string, date time.Time, excludeID string) []WorkInterval {
	committed := []WorkInterval{}
	for _, existing := range intervals {
		if existing.ProjectID != projectID || existing.ID == excludeID {
			continue
		}
		if !sameDay(existing.Date, date) {
			continue
		}
		committed = append(committed, existing)
	}
	return committed
}

func overlaps(existing WorkInterval, start, end ClockTime) bool {
	existingEnd := endOfDay
	if existing.End != nil {
		existingEnd = *existing.End
	}
	return existing.Start < end && existingEnd > start
}

func coversDay(absence AbsenceRange, date time.Time) bool {
	day := truncateDay(date)
	return !day.Before(truncateDay(absence.StartDate)) && !day.After(truncateDay(absence.EndDate))
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

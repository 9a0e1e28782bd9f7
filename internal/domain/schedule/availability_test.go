package schedule

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func clock(t *testing.T, value string) ClockTime {
	t.Helper()
	parsed, err := ParseClock(value)
	if err != nil {
		t.Fatalf("parse clock %q: %v", value, err)
	}
	return parsed
}

func interval(t *testing.T, id, employeeID string, day time.Time, start, end string) WorkInterval {
	t.Helper()
	endClock := clock(t, end)
	return WorkInterval{
		ID:         id,
		EmployeeID: employeeID,
		Date:       day,
		Start:      clock(t, start),
		End:        &endClock,
	}
}

func TestCheckEmployeeAvailabilityOverlap(t *testing.T) {
	day := date(2024, 3, 4)
	existing := interval(t, "wh-1", "emp-1", day, "08:00", "12:00")

	result := CheckEmployeeAvailability([]WorkInterval{existing}, nil, "emp-1", day, clock(t, "11:00"), clock(t, "15:00"), "")
	if !result.HasConflict {
		t.Fatal("expected conflict for overlapping interval")
	}
	if len(result.ConflictingWorkIntervals) != 1 {
		t.Fatalf("expected 1 conflicting interval, got %d", len(result.ConflictingWorkIntervals))
	}
	if result.ConflictingWorkIntervals[0].ID != "wh-1" {
		t.Fatalf("unexpected conflicting interval %q", result.ConflictingWorkIntervals[0].ID)
	}
}

func TestCheckEmployeeAvailabilitySymmetric(t *testing.T) {
	day := date(2024, 3, 4)
	a := interval(t, "a", "emp-1", day, "08:00", "12:00")
	b := interval(t, "b", "emp-1", day, "10:00", "16:00")

	forward := CheckEmployeeAvailability([]WorkInterval{a}, nil, "emp-1", day, b.Start, *b.End, "")
	backward := CheckEmployeeAvailability([]WorkInterval{b}, nil, "emp-1", day, a.Start, *a.End, "")
	if !forward.HasConflict || !backward.HasConflict {
		t.Fatal("overlap must be symmetric in existing vs candidate")
	}

	// Full containment: candidate inside existing and the other way round.
	contained := interval(t, "c", "emp-1", day, "09:00", "10:00")
	if !CheckEmployeeAvailability([]WorkInterval{a}, nil, "emp-1", day, contained.Start, *contained.End, "").HasConflict {
		t.Fatal("expected conflict for contained candidate")
	}
	if !CheckEmployeeAvailability([]WorkInterval{contained}, nil, "emp-1", day, a.Start, *a.End, "").HasConflict {
		t.Fatal("expected conflict for containing candidate")
	}
}

func TestCheckEmployeeAvailabilityNonOverlapping(t *testing.T) {
	day := date(2024, 3, 4)
	a := interval(t, "a", "emp-1", day, "08:00", "12:00")
	b := interval(t, "b", "emp-1", day, "12:00", "16:00")

	if CheckEmployeeAvailability([]WorkInterval{a}, nil, "emp-1", day, b.Start, *b.End, "").HasConflict {
		t.Fatal("adjacent intervals must not conflict")
	}
	if CheckEmployeeAvailability([]WorkInterval{b}, nil, "emp-1", day, a.Start, *a.End, "").HasConflict {
		t.Fatal("adjacent intervals must not conflict in either order")
	}
}

func TestCheckEmployeeAvailabilityOtherEmployeeAndDate(t *testing.T) {
	day := date(2024, 3, 4)
	existing := interval(t, "a", "emp-2", day, "08:00", "12:00")

	if CheckEmployeeAvailability([]WorkInterval{existing}, nil, "emp-1", day, clock(t, "09:00"), clock(t, "10:00"), "").HasConflict {
		t.Fatal("another employee's interval must not conflict")
	}

	otherDay := interval(t, "b", "emp-1", date(2024, 3, 5), "08:00", "12:00")
	if CheckEmployeeAvailability([]WorkInterval{otherDay}, nil, "emp-1", day, clock(t, "09:00"), clock(t, "10:00"), "").HasConflict {
		t.Fatal("an interval on another date must not conflict")
	}
}

func TestCheckEmployeeAvailabilityExcludeSelf(t *testing.T) {
	day := date(2024, 3, 4)
	existing := interval(t, "wh-1", "emp-1", day, "08:00", "12:00")

	result := CheckEmployeeAvailability([]WorkInterval{existing}, nil, "emp-1", day, existing.Start, *existing.End, "wh-1")
	if result.HasConflict {
		t.Fatal("an entry checked against itself with excludeID must not conflict")
	}
}

func TestCheckEmployeeAvailabilityOpenInterval(t *testing.T) {
	day := date(2024, 3, 4)
	open := WorkInterval{ID: "wh-1", EmployeeID: "emp-1", Date: day, Start: clock(t, "08:00")}

	// An open shift runs to end of day for overlap purposes.
	result := CheckEmployeeAvailability([]WorkInterval{open}, nil, "emp-1", day, clock(t, "20:00"), clock(t, "22:00"), "")
	if !result.HasConflict {
		t.Fatal("open interval must conflict with any later range on the same day")
	}

	// But nothing before it started.
	result = CheckEmployeeAvailability([]WorkInterval{open}, nil, "emp-1", day, clock(t, "06:00"), clock(t, "08:00"), "")
	if result.HasConflict {
		t.Fatal("range ending at the open shift's start must not conflict")
	}
}

func TestCheckEmployeeAvailabilityVacation(t *testing.T) {
	absence := AbsenceRange{
		ID:         "vac-1",
		EmployeeID: "emp-1",
		StartDate:  date(2024, 3, 1),
		EndDate:    date(2024, 3, 10),
		Type:       AbsenceTypeVacation,
		Status:     AbsenceStatusApproved,
	}

	result := CheckEmployeeAvailability(nil, []AbsenceRange{absence}, "emp-1", date(2024, 3, 5), clock(t, "08:00"), clock(t, "16:00"), "")
	if !result.HasConflict {
		t.Fatal("expected conflict via absence range")
	}
	if len(result.ConflictingAbsences) != 1 || len(result.ConflictingWorkIntervals) != 0 {
		t.Fatalf("expected exactly one absence conflict, got %d absences and %d intervals",
			len(result.ConflictingAbsences), len(result.ConflictingWorkIntervals))
	}

	// Boundary days are inclusive, the day after is not.
	if !CheckEmployeeAvailability(nil, []AbsenceRange{absence}, "emp-1", date(2024, 3, 10), clock(t, "08:00"), clock(t, "16:00"), "").HasConflict {
		t.Fatal("absence end date is inclusive")
	}
	if CheckEmployeeAvailability(nil, []AbsenceRange{absence}, "emp-1", date(2024, 3, 11), clock(t, "08:00"), clock(t, "16:00"), "").HasConflict {
		t.Fatal("day after absence end must not conflict")
	}
}

func TestCheckEmployeeAvailabilityEmptySnapshot(t *testing.T) {
	result := CheckEmployeeAvailability(nil, nil, "emp-1", date(2024, 3, 4), clock(t, "08:00"), clock(t, "16:00"), "")
	if result.HasConflict {
		t.Fatal("empty snapshot must yield no conflict")
	}
	if result.ConflictingWorkIntervals == nil || result.ConflictingAbsences == nil {
		t.Fatal("conflict slices must be non-nil even when empty")
	}
}

func TestCheckEmployeeAvailabilityListsAllConflicts(t *testing.T) {
	day := date(2024, 3, 4)
	snapshot := []WorkInterval{
		interval(t, "a", "emp-1", day, "08:00", "10:00"),
		interval(t, "b", "emp-1", day, "09:30", "12:00"),
		interval(t, "c", "emp-1", day, "13:00", "14:00"),
	}

	result := CheckEmployeeAvailability(snapshot, nil, "emp-1", day, clock(t, "09:00"), clock(t, "11:00"), "")
	if len(result.ConflictingWorkIntervals) != 2 {
		t.Fatalf("expected both overlapping intervals reported, got %d", len(result.ConflictingWorkIntervals))
	}
}

func TestProjectCommitments(t *testing.T) {
	day := date(2024, 3, 4)
	a := interval(t, "a", "emp-1", day, "08:00", "12:00")
	a.ProjectID = "proj-1"
	b := interval(t, "b", "emp-2", day, "08:00", "12:00")
	b.ProjectID = "proj-1"
	c := interval(t, "c", "emp-3", day, "08:00", "12:00")
	c.ProjectID = "proj-2"
	d := interval(t, "d", "emp-4", date(2024, 3, 5), "08:00", "12:00")
	d.ProjectID = "proj-1"

	committed := ProjectCommitments([]WorkInterval{a, b, c, d}, "proj-1", day, "")
	if len(committed) != 2 {
		t.Fatalf("expected 2 commitments, got %d", len(committed))
	}

	committed = ProjectCommitments([]WorkInterval{a, b}, "proj-1", day, "a")
	if len(committed) != 1 || committed[0].ID != "b" {
		t.Fatalf("excludeID must skip the record being edited, got %+v", committed)
	}
}

func TestValidateInterval(t *testing.T) {
	start := clock(t, "09:00")
	endBefore := clock(t, "08:00")
	if err := ValidateInterval(start, &endBefore, 0); !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("expected ErrInvalidInterval for end before start, got %v", err)
	}

	if err := ValidateInterval(start, &start, 0); !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("expected ErrInvalidInterval for zero-length interval, got %v", err)
	}

	endAfter := clock(t, "17:00")
	if err := ValidateInterval(start, &endAfter, -1); !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("expected ErrInvalidInterval for negative break, got %v", err)
	}

	if err := ValidateInterval(start, &endAfter, 30); err != nil {
		t.Fatalf("unexpected error for valid interval: %v", err)
	}

	if err := ValidateInterval(start, nil, 0); err != nil {
		t.Fatalf("unexpected error for open interval: %v", err)
	}
}

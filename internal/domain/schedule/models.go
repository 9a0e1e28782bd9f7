package schedule

import "time"

// WorkInterval is one clocked work period for an employee on a single
// calendar day. A nil End means the shift is still open. ProjectID is empty
// for regular (non-project) time.
type WorkInterval struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employeeId"`
	Date         time.Time  `json:"date"`
	Start        ClockTime  `json:"startTime"`
	End          *ClockTime `json:"endTime,omitempty"`
	BreakMinutes int        `json:"breakMinutes"`
	ProjectID    string     `json:"projectId,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// AbsenceRange is a multi-day vacation/sick/other period, inclusive on both
// ends at whole-day granularity.
type AbsenceRange struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employeeId"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	Type       string    `json:"type"`
	Status     string    `json:"status"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ConflictResult lists every existing record a candidate interval collides
// with, so callers can present all conflicts instead of only rejecting.
type ConflictResult struct {
	ConflictingWorkIntervals []WorkInterval `json:"conflictingWorkIntervals"`
	ConflictingAbsences      []AbsenceRange `json:"conflictingAbsences"`
	HasConflict              bool           `json:"hasConflict"`
}

// Totals is the derived daily or weekly reduction of work intervals. It is
// recomputed from source rows on every call and never persisted.
type Totals struct {
	TotalMinutes    int `json:"totalMinutes"`
	ProjectMinutes  int `json:"projectMinutes"`
	RegularMinutes  int `json:"regularMinutes"`
	OvertimeMinutes int `json:"overtimeMinutes"`
}

// Baselines carries the configured standard working time used for overtime
// computation. Threaded into every aggregation call, never a package constant.
type Baselines struct {
	DailyMinutes  int
	WeeklyMinutes int
	WeekStartDay  time.Weekday
}

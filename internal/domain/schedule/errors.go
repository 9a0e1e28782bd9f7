package schedule

import "errors"

var (
	ErrInvalidInterval  = errors.New("invalid work interval")
	ErrInvalidDateRange = errors.New("invalid date range")
	ErrConflict         = errors.New("schedule conflict")
	ErrNotFound         = errors.New("record not found")
)

// ConflictError carries the full conflict listing alongside ErrConflict so
// handlers can report every colliding record to the client.
type ConflictError struct {
	Result ConflictResult
}

func (e *ConflictError) Error() string {
	return "schedule conflict"
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

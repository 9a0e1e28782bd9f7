package schedule

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgErrExclusionViolation is raised by the working_hours no-overlap exclusion
// constraint. Mapping it to ErrConflict closes the check-then-commit window:
// two writers can both pass the advisory check, but only one insert commits.
const pgErrExclusionViolation = "23P01"

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const intervalColumns = `
    id,
    employee_id,
    date,
    start_min,
    end_min,
    break_minutes,
    COALESCE(project_id::text, ''),
    COALESCE(notes, ''),
    created_at`

func (s *Store) IntervalsForEmployeeDate(ctx context.Context, employeeID string, date time.Time) ([]WorkInterval, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+intervalColumns+`
    FROM working_hours
    WHERE employee_id = $1 AND date = $2
    ORDER BY start_min
  `, employeeID, truncateDay(date))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIntervals(rows)
}

func (s *Store) IntervalsForProjectDate(ctx context.Context, projectID string, date time.Time) ([]WorkInterval, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+intervalColumns+`
    FROM working_hours
    WHERE project_id = $1 AND date = $2
    ORDER BY start_min
  `, projectID, truncateDay(date))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIntervals(rows)
}

func (s *Store) IntervalsForEmployee(ctx context.Context, employeeID string) ([]WorkInterval, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+intervalColumns+`
    FROM working_hours
    WHERE employee_id = $1
    ORDER BY date DESC, start_min
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIntervals(rows)
}

func (s *Store) IntervalsForRange(ctx context.Context, startDate, endDate time.Time) ([]WorkInterval, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+intervalColumns+`
    FROM working_hours
    WHERE date >= $1 AND date <= $2
    ORDER BY date, start_min
  `, truncateDay(startDate), truncateDay(endDate))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIntervals(rows)
}

func (s *Store) InsertInterval(ctx context.Context, in WorkInterval) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO working_hours (employee_id, date, start_min, end_min, break_minutes, project_id, notes)
    VALUES ($1, $2, $3, $4, $5, NULLIF($6, '')::uuid, $7)
    RETURNING id
  `, in.EmployeeID, truncateDay(in.Date), int(in.Start), endMin(in.End), in.BreakMinutes, in.ProjectID, in.Notes).Scan(&id)
	if err != nil {
		return "", mapConstraintError(err)
	}
	return id, nil
}

func (s *Store) UpdateInterval(ctx context.Context, id string, in WorkInterval) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE working_hours
    SET date = $2, start_min = $3, end_min = $4, break_minutes = $5,
        project_id = NULLIF($6, '')::uuid, notes = $7, updated_at = now()
    WHERE id = $1
  `, id, truncateDay(in.Date), int(in.Start), endMin(in.End), in.BreakMinutes, in.ProjectID, in.Notes)
	if err != nil {
		return mapConstraintError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteInterval(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, `DELETE FROM working_hours WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) GetInterval(ctx context.Context, id string) (WorkInterval, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+intervalColumns+`
    FROM working_hours
    WHERE id = $1
  `, id)
	interval, err := scanInterval(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return WorkInterval{}, ErrNotFound
	}
	return interval, err
}

const absenceColumns = `
    id,
    employee_id,
    start_date,
    end_date,
    type,
    status,
    COALESCE(notes, ''),
    created_at`

func (s *Store) AbsencesForEmployeeDate(ctx context.Context, employeeID string, date time.Time) ([]AbsenceRange, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+absenceColumns+`
    FROM vacation_entries
    WHERE employee_id = $1 AND start_date <= $2 AND end_date >= $2
    ORDER BY start_date
  `, employeeID, truncateDay(date))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAbsences(rows)
}

func (s *Store) AbsencesForEmployee(ctx context.Context, employeeID string) ([]AbsenceRange, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+absenceColumns+`
    FROM vacation_entries
    WHERE employee_id = $1
    ORDER BY start_date DESC
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAbsences(rows)
}

func (s *Store) InsertAbsence(ctx context.Context, in AbsenceRange) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO vacation_entries (employee_id, start_date, end_date, type, status, notes)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING id
  `, in.EmployeeID, truncateDay(in.StartDate), truncateDay(in.EndDate), in.Type, in.Status, in.Notes).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) SetAbsenceStatus(ctx context.Context, id, status string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE vacation_entries SET status = $2, updated_at = now() WHERE id = $1
  `, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteAbsence(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, `DELETE FROM vacation_entries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanIntervals(rows pgx.Rows) ([]WorkInterval, error) {
	intervals := []WorkInterval{}
	for rows.Next() {
		interval, err := scanInterval(rows)
		if err != nil {
			return nil, err
		}
		intervals = append(intervals, interval)
	}
	return intervals, rows.Err()
}

func scanInterval(row pgx.Row) (WorkInterval, error) {
	var interval WorkInterval
	var startMin int
	var endMin *int
	if err := row.Scan(
		&interval.ID, &interval.EmployeeID, &interval.Date, &startMin, &endMin,
		&interval.BreakMinutes, &interval.ProjectID, &interval.Notes, &interval.CreatedAt,
	); err != nil {
		return WorkInterval{}, err
	}
	interval.Start = ClockTime(startMin)
	if endMin != nil {
		end := ClockTime(*endMin)
		interval.End = &end
	}
	return interval, nil
}

func scanAbsences(rows pgx.Rows) ([]AbsenceRange, error) {
	absences := []AbsenceRange{}
	for rows.Next() {
		var absence AbsenceRange
		if err := rows.Scan(
			&absence.ID, &absence.EmployeeID, &absence.StartDate, &absence.EndDate,
			&absence.Type, &absence.Status, &absence.Notes, &absence.CreatedAt,
		); err != nil {
			return nil, err
		}
		absences = append(absences, absence)
	}
	return absences, rows.Err()
}

func endMin(end *ClockTime) *int {
	if end == nil {
		return nil
	}
	value := int(*end)
	return &value
}

func mapConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgErrExclusionViolation {
		return ErrConflict
	}
	return err
}

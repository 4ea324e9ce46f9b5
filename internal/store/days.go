package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dailyflow/dailyflow/internal/model"
)

// SaveDay upserts the record for a calendar date. The record is created
// on first write; hours are clamped non-negative and the status must be
// a valid DayStatus.
func (s *Store) SaveDay(date string, planned, actual float64, notes string, status model.DayStatus) (*model.DayRecord, error) {
	if _, err := time.Parse(model.DayKey, date); err != nil {
		return nil, fmt.Errorf("invalid day key %q: %w", date, err)
	}
	if !status.Valid() {
		return nil, fmt.Errorf("invalid day status %q", status)
	}
	planned = model.ClampHours(planned)
	actual = model.ClampHours(actual)

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO day_records (date, planned_hours, actual_hours, notes, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(date) DO UPDATE SET
			planned_hours = excluded.planned_hours,
			actual_hours  = excluded.actual_hours,
			notes         = excluded.notes,
			status        = excluded.status,
			updated_at    = excluded.updated_at`,
		date, planned, actual, notes, string(status), now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("save day %s: %w", date, err)
	}
	return s.GetDay(date)
}

// FindDay returns the record for a date, or nil when the date has never
// been written.
func (s *Store) FindDay(date string) (*model.DayRecord, error) {
	rec, err := s.GetDay(date)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return rec, err
}

func (s *Store) GetDay(date string) (*model.DayRecord, error) {
	rec := &model.DayRecord{}
	var status, createdAt, updatedAt string
	err := s.db.QueryRow(
		`SELECT date, planned_hours, actual_hours, notes, status, created_at, updated_at
		 FROM day_records WHERE date = ?`, date,
	).Scan(&rec.Date, &rec.PlannedHours, &rec.ActualHours, &rec.Notes, &status, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("get day %s: %w", date, err)
	}
	rec.Status, err = model.ParseDayStatus(status)
	if err != nil {
		return nil, fmt.Errorf("day %s: %w", date, err)
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	rec.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	rec.Tasks, err = s.listDayTasks(date)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// DeleteDay removes a day record and its tasks. Day records are never
// removed implicitly; this is the explicit user delete.
func (s *Store) DeleteDay(date string) error {
	_, err := s.db.Exec(`DELETE FROM day_records WHERE date = ?`, date)
	if err != nil {
		return fmt.Errorf("delete day %s: %w", date, err)
	}
	return nil
}

// ListDays returns all day records ordered by date descending, tasks
// included.
func (s *Store) ListDays() ([]model.DayRecord, error) {
	rows, err := s.db.Query(
		`SELECT date, planned_hours, actual_hours, notes, status, created_at, updated_at
		 FROM day_records ORDER BY date DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list days: %w", err)
	}
	defer rows.Close()

	var records []model.DayRecord
	for rows.Next() {
		var rec model.DayRecord
		var status, createdAt, updatedAt string
		if err := rows.Scan(&rec.Date, &rec.PlannedHours, &rec.ActualHours, &rec.Notes, &status, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		rec.Status, err = model.ParseDayStatus(status)
		if err != nil {
			return nil, fmt.Errorf("day %s: %w", rec.Date, err)
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		rec.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range records {
		records[i].Tasks, err = s.listDayTasks(records[i].Date)
		if err != nil {
			return nil, err
		}
	}
	return records, nil
}

// DayMap returns every day record keyed by date, the shape the stats
// engine consumes.
func (s *Store) DayMap() (map[string]model.DayRecord, error) {
	records, err := s.ListDays()
	if err != nil {
		return nil, err
	}
	days := make(map[string]model.DayRecord, len(records))
	for _, rec := range records {
		days[rec.Date] = rec
	}
	return days, nil
}

// AddActualHours accrues hours into a date's record, creating the
// record as inprogress on first write. The focus timer feeds this.
func (s *Store) AddActualHours(date string, hours float64) error {
	if hours <= 0 {
		return nil
	}
	rec, err := s.FindDay(date)
	if err != nil {
		return err
	}
	if rec == nil {
		_, err = s.SaveDay(date, 0, hours, "", model.DayInProgress)
		return err
	}
	_, err = s.SaveDay(date, rec.PlannedHours, rec.ActualHours+hours, rec.Notes, rec.Status)
	return err
}

// AddDayTask appends a checklist item to a date, creating the day
// record as planned if it does not exist yet.
func (s *Store) AddDayTask(date, text string) (*model.DayTask, error) {
	if rec, err := s.FindDay(date); err != nil {
		return nil, err
	} else if rec == nil {
		if _, err := s.SaveDay(date, 0, 0, "", model.DayPlanned); err != nil {
			return nil, err
		}
	}

	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO day_tasks (id, day, text, created_at) VALUES (?, ?, ?, ?)`,
		id, date, text, now,
	)
	if err != nil {
		return nil, fmt.Errorf("add task: %w", err)
	}
	return s.getDayTask(id)
}

// ToggleDayTask flips a checklist item's completed flag.
func (s *Store) ToggleDayTask(taskID string) (*model.DayTask, error) {
	res, err := s.db.Exec(`UPDATE day_tasks SET completed = 1 - completed WHERE id = ?`, taskID)
	if err != nil {
		return nil, fmt.Errorf("toggle task %s: %w", taskID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("task not found: %s", taskID)
	}
	return s.getDayTask(taskID)
}

func (s *Store) DeleteDayTask(taskID string) error {
	_, err := s.db.Exec(`DELETE FROM day_tasks WHERE id = ?`, taskID)
	return err
}

func (s *Store) getDayTask(id string) (*model.DayTask, error) {
	t := &model.DayTask{}
	var completed int
	var createdAt string
	err := s.db.QueryRow(
		`SELECT id, text, completed, created_at FROM day_tasks WHERE id = ?`, id,
	).Scan(&t.ID, &t.Text, &completed, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("get task %s: %w", id, err)
	}
	t.Completed = completed == 1
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return t, nil
}

func (s *Store) listDayTasks(date string) ([]model.DayTask, error) {
	rows, err := s.db.Query(
		`SELECT id, text, completed, created_at FROM day_tasks WHERE day = ? ORDER BY created_at, id`, date,
	)
	if err != nil {
		return nil, fmt.Errorf("list tasks for %s: %w", date, err)
	}
	defer rows.Close()

	var tasks []model.DayTask
	for rows.Next() {
		var t model.DayTask
		var completed int
		var createdAt string
		if err := rows.Scan(&t.ID, &t.Text, &completed, &createdAt); err != nil {
			return nil, err
		}
		t.Completed = completed == 1
		t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

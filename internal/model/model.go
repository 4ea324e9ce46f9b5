package model

import "time"

// DayKey is the ISO calendar date format used to key day records and
// habit completions. Chronological order equals lexical order.
const DayKey = "2006-01-02"

// DayTask is a single checklist item inside a day record.
type DayTask struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

// DayRecord is the tracked state for one calendar date.
type DayRecord struct {
	Date         string    `json:"date"` // YYYY-MM-DD
	PlannedHours float64   `json:"planned_hours"`
	ActualHours  float64   `json:"actual_hours"`
	Tasks        []DayTask `json:"tasks,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	Status       DayStatus `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Habit is a recurring practice with a sparse set of completion dates.
// CurrentStreak is a cached value; the store recomputes it from the
// full date set on every mutation.
type Habit struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	Category       Category  `json:"category"`
	Frequency      Frequency `json:"frequency"`
	CompletedDates []string  `json:"completed_dates,omitempty"` // YYYY-MM-DD, unique, ascending
	CurrentStreak  int       `json:"current_streak"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CompletedOn reports whether the habit was completed on the given day key.
func (h *Habit) CompletedOn(day string) bool {
	for _, d := range h.CompletedDates {
		if d == day {
			return true
		}
	}
	return false
}

type Goal struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	TargetDate  *string    `json:"target_date,omitempty"` // YYYY-MM-DD
	Priority    Priority   `json:"priority"`
	Category    Category   `json:"category"`
	Status      GoalStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type Project struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Category    Category      `json:"category"`
	Tech        []string      `json:"tech,omitempty"`
	StartDate   string        `json:"start_date"` // YYYY-MM-DD
	Deadline    *string       `json:"deadline,omitempty"`
	Progress    int           `json:"progress"` // 0-100
	Status      ProjectStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// Notification is a dashboard message. Action is an opaque reference
// (a tab name) resolved by the UI.
type Notification struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	Action    string           `json:"action,omitempty"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}

// ClampProgress bounds a project progress value to 0-100.
func ClampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// ClampHours bounds an hours value to be non-negative.
func ClampHours(h float64) float64 {
	if h < 0 {
		return 0
	}
	return h
}

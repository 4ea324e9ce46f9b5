package model

import "fmt"

// DayStatus is the tracked state of a calendar day.
type DayStatus string

const (
	DayPlanned    DayStatus = "planned"
	DayInProgress DayStatus = "inprogress"
	DayCompleted  DayStatus = "completed"
	DayMissed     DayStatus = "missed"
)

func (s DayStatus) Valid() bool {
	switch s {
	case DayPlanned, DayInProgress, DayCompleted, DayMissed:
		return true
	}
	return false
}

// ParseDayStatus validates a raw status value at the storage boundary.
func ParseDayStatus(raw string) (DayStatus, error) {
	s := DayStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("invalid day status %q", raw)
	}
	return s, nil
}

type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
)

func (s GoalStatus) Valid() bool {
	return s == GoalActive || s == GoalCompleted
}

func ParseGoalStatus(raw string) (GoalStatus, error) {
	s := GoalStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("invalid goal status %q", raw)
	}
	return s, nil
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

func ParsePriority(raw string) (Priority, error) {
	p := Priority(raw)
	if !p.Valid() {
		return "", fmt.Errorf("invalid priority %q", raw)
	}
	return p, nil
}

type ProjectStatus string

const (
	ProjectPlanned    ProjectStatus = "planned"
	ProjectInProgress ProjectStatus = "inprogress"
	ProjectCompleted  ProjectStatus = "completed"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectPlanned, ProjectInProgress, ProjectCompleted:
		return true
	}
	return false
}

func ParseProjectStatus(raw string) (ProjectStatus, error) {
	s := ProjectStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("invalid project status %q", raw)
	}
	return s, nil
}

// Frequency describes how often a habit is expected to be done.
type Frequency string

const (
	FrequencyDaily    Frequency = "daily"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyWeekdays Frequency = "weekdays"
	FrequencyCustom   Frequency = "custom"
)

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyWeekdays, FrequencyCustom:
		return true
	}
	return false
}

func ParseFrequency(raw string) (Frequency, error) {
	f := Frequency(raw)
	if !f.Valid() {
		return "", fmt.Errorf("invalid frequency %q", raw)
	}
	return f, nil
}

type Category string

const (
	CategoryStudy    Category = "study"
	CategoryHealth   Category = "health"
	CategoryCareer   Category = "career"
	CategoryPersonal Category = "personal"
	CategoryFinance  Category = "finance"
	CategoryOther    Category = "other"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryStudy, CategoryHealth, CategoryCareer,
	CategoryPersonal, CategoryFinance, CategoryOther,
}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// ParseCategory maps unknown categories to CategoryOther rather than
// failing; legacy data carries free-form category strings.
func ParseCategory(raw string) Category {
	c := Category(raw)
	if !c.Valid() {
		return CategoryOther
	}
	return c
}

type NotificationType string

const (
	NotifyInfo    NotificationType = "info"
	NotifySuccess NotificationType = "success"
	NotifyWarning NotificationType = "warning"
	NotifyError   NotificationType = "error"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotifyInfo, NotifySuccess, NotifyWarning, NotifyError:
		return true
	}
	return false
}

func ParseNotificationType(raw string) (NotificationType, error) {
	t := NotificationType(raw)
	if !t.Valid() {
		return "", fmt.Errorf("invalid notification type %q", raw)
	}
	return t, nil
}

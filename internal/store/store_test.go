package store

import (
	"testing"
	"time"

	"github.com/dailyflow/dailyflow/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// testToday is a fixed "today" so streak assertions are deterministic.
var testToday = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func dayKey(offset int) string {
	return testToday.AddDate(0, 0, -offset).Format(model.DayKey)
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/dailyflow.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen, should succeed and not re-migrate
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s2.Close()
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath("work")
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
	def, _ := DefaultDBPath("")
	if def == path {
		t.Fatal("profiles should map to distinct database files")
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

func TestForeignKeysEnabled(t *testing.T) {
	s := newTestStore(t)
	var fk int
	s.db.QueryRow("PRAGMA foreign_keys").Scan(&fk)
	if fk != 1 {
		t.Fatalf("expected foreign_keys=1, got %d", fk)
	}
}

// ============================================================
// Day records
// ============================================================

func TestSaveAndGetDay(t *testing.T) {
	s := newTestStore(t)
	rec, err := s.SaveDay("2026-03-15", 8, 6.5, "good day", model.DayCompleted)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Date != "2026-03-15" || rec.PlannedHours != 8 || rec.ActualHours != 6.5 {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.Status != model.DayCompleted || rec.Notes != "good day" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.CreatedAt.IsZero() {
		t.Fatal("CreatedAt should be set")
	}
}

func TestSaveDayUpsert(t *testing.T) {
	s := newTestStore(t)
	s.SaveDay("2026-03-15", 8, 0, "", model.DayPlanned)
	rec, err := s.SaveDay("2026-03-15", 8, 7, "done", model.DayCompleted)
	if err != nil {
		t.Fatal(err)
	}
	if rec.ActualHours != 7 || rec.Status != model.DayCompleted {
		t.Fatalf("upsert did not apply: %+v", rec)
	}

	days, _ := s.ListDays()
	if len(days) != 1 {
		t.Fatalf("expected single record after upsert, got %d", len(days))
	}
}

func TestSaveDayInvalidDate(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.SaveDay("15/03/2026", 8, 0, "", model.DayPlanned); err == nil {
		t.Fatal("expected error for malformed date")
	}
	if _, err := s.SaveDay("2026-03-15", 8, 0, "", "done"); err == nil {
		t.Fatal("expected error for invalid status")
	}
}

func TestSaveDayClampsHours(t *testing.T) {
	s := newTestStore(t)
	rec, err := s.SaveDay("2026-03-15", -3, -1, "", model.DayPlanned)
	if err != nil {
		t.Fatal(err)
	}
	if rec.PlannedHours != 0 || rec.ActualHours != 0 {
		t.Fatalf("negative hours should clamp to zero: %+v", rec)
	}
}

func TestFindDayMissing(t *testing.T) {
	s := newTestStore(t)
	rec, err := s.FindDay("2026-01-01")
	if err != nil {
		t.Fatal(err)
	}
	if rec != nil {
		t.Fatal("expected nil for unwritten date")
	}
}

func TestListDaysNewestFirst(t *testing.T) {
	s := newTestStore(t)
	s.SaveDay("2026-03-13", 8, 8, "", model.DayCompleted)
	s.SaveDay("2026-03-15", 8, 4, "", model.DayInProgress)
	s.SaveDay("2026-03-14", 8, 8, "", model.DayCompleted)

	days, err := s.ListDays()
	if err != nil {
		t.Fatal(err)
	}
	if len(days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(days))
	}
	if days[0].Date != "2026-03-15" || days[2].Date != "2026-03-13" {
		t.Fatalf("expected newest first: %s, %s, %s", days[0].Date, days[1].Date, days[2].Date)
	}
}

func TestDayMap(t *testing.T) {
	s := newTestStore(t)
	s.SaveDay("2026-03-14", 8, 8, "", model.DayCompleted)
	s.SaveDay("2026-03-15", 8, 2, "", model.DayInProgress)

	m, err := s.DayMap()
	if err != nil {
		t.Fatal(err)
	}
	if len(m) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(m))
	}
	if m["2026-03-14"].Status != model.DayCompleted {
		t.Fatalf("wrong record under key: %+v", m["2026-03-14"])
	}
}

func TestDeleteDay(t *testing.T) {
	s := newTestStore(t)
	s.SaveDay("2026-03-15", 8, 8, "", model.DayCompleted)
	if err := s.DeleteDay("2026-03-15"); err != nil {
		t.Fatal(err)
	}
	rec, _ := s.FindDay("2026-03-15")
	if rec != nil {
		t.Fatal("record should be gone")
	}
}

func TestAddActualHours(t *testing.T) {
	s := newTestStore(t)

	// First write creates the record as inprogress.
	if err := s.AddActualHours("2026-03-15", 1.5); err != nil {
		t.Fatal(err)
	}
	rec, _ := s.GetDay("2026-03-15")
	if rec.ActualHours != 1.5 || rec.Status != model.DayInProgress {
		t.Fatalf("unexpected record: %+v", rec)
	}

	// Second write accrues.
	s.AddActualHours("2026-03-15", 0.5)
	rec, _ = s.GetDay("2026-03-15")
	if rec.ActualHours != 2 {
		t.Fatalf("expected 2 hours, got %v", rec.ActualHours)
	}

	// Non-positive is a no-op.
	s.AddActualHours("2026-03-15", 0)
	s.AddActualHours("2026-03-15", -1)
	rec, _ = s.GetDay("2026-03-15")
	if rec.ActualHours != 2 {
		t.Fatalf("no-op writes changed hours: %v", rec.ActualHours)
	}
}

// ============================================================
// Day tasks
// ============================================================

func TestAddDayTaskCreatesDay(t *testing.T) {
	s := newTestStore(t)
	task, err := s.AddDayTask("2026-03-15", "review notes")
	if err != nil {
		t.Fatal(err)
	}
	if task.Text != "review notes" || task.Completed {
		t.Fatalf("unexpected task: %+v", task)
	}

	rec, err := s.GetDay("2026-03-15")
	if err != nil {
		t.Fatal(err)
	}
	if rec.Status != model.DayPlanned {
		t.Fatalf("auto-created day should be planned, got %s", rec.Status)
	}
	if len(rec.Tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(rec.Tasks))
	}
}

func TestToggleDayTask(t *testing.T) {
	s := newTestStore(t)
	task, _ := s.AddDayTask("2026-03-15", "stretch")

	toggled, err := s.ToggleDayTask(task.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !toggled.Completed {
		t.Fatal("task should be completed after toggle")
	}
	toggled, _ = s.ToggleDayTask(task.ID)
	if toggled.Completed {
		t.Fatal("second toggle should uncomplete")
	}
}

func TestToggleDayTaskNotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.ToggleDayTask("nope"); err == nil {
		t.Fatal("expected error for missing task")
	}
}

func TestDeleteDayCascadesTasks(t *testing.T) {
	s := newTestStore(t)
	task, _ := s.AddDayTask("2026-03-15", "water plants")
	s.DeleteDay("2026-03-15")

	if _, err := s.getDayTask(task.ID); err == nil {
		t.Fatal("task should be deleted with its day")
	}
}

// ============================================================
// Habits
// ============================================================

func TestCreateAndGetHabit(t *testing.T) {
	s := newTestStore(t)
	h, err := s.CreateHabit("Reading", "30 pages", model.CategoryStudy, model.FrequencyDaily)
	if err != nil {
		t.Fatal(err)
	}
	if h.Name != "Reading" || h.Category != model.CategoryStudy || h.Frequency != model.FrequencyDaily {
		t.Fatalf("unexpected habit: %+v", h)
	}
	if h.ID == "" {
		t.Fatal("expected non-empty ID")
	}
	if h.CurrentStreak != 0 || len(h.CompletedDates) != 0 {
		t.Fatalf("new habit should be empty: %+v", h)
	}
}

func TestCreateHabitValidation(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.CreateHabit("", "", model.CategoryStudy, model.FrequencyDaily); err == nil {
		t.Fatal("expected error for empty name")
	}
	if _, err := s.CreateHabit("X", "", model.CategoryStudy, "hourly"); err == nil {
		t.Fatal("expected error for invalid frequency")
	}
}

func TestCreateHabitUnknownCategoryBucketsToOther(t *testing.T) {
	s := newTestStore(t)
	h, err := s.CreateHabit("Misc", "", model.Category("gardening"), model.FrequencyDaily)
	if err != nil {
		t.Fatal(err)
	}
	if h.Category != model.CategoryOther {
		t.Fatalf("expected other, got %s", h.Category)
	}
}

func TestCreateHabitDuplicateName(t *testing.T) {
	s := newTestStore(t)
	s.CreateHabit("Dup", "", model.CategoryHealth, model.FrequencyDaily)
	if _, err := s.CreateHabit("Dup", "", model.CategoryStudy, model.FrequencyWeekly); err == nil {
		t.Fatal("expected error for duplicate habit name")
	}
}

func TestToggleHabitDateStreakRecompute(t *testing.T) {
	s := newTestStore(t)
	h, _ := s.CreateHabit("Running", "", model.CategoryHealth, model.FrequencyDaily)

	// Yesterday alone: today missing, streak 0.
	got, err := s.ToggleHabitDate(h.ID, dayKey(1), testToday)
	if err != nil {
		t.Fatal(err)
	}
	if got.CurrentStreak != 0 {
		t.Fatalf("streak without today should be 0, got %d", got.CurrentStreak)
	}

	// Add today: streak 2.
	got, _ = s.ToggleHabitDate(h.ID, dayKey(0), testToday)
	if got.CurrentStreak != 2 {
		t.Fatalf("expected streak 2, got %d", got.CurrentStreak)
	}
	if len(got.CompletedDates) != 2 {
		t.Fatalf("expected 2 dates, got %d", len(got.CompletedDates))
	}

	// Toggle yesterday off: streak drops to 1.
	got, _ = s.ToggleHabitDate(h.ID, dayKey(1), testToday)
	if got.CurrentStreak != 1 {
		t.Fatalf("expected streak 1 after untoggle, got %d", got.CurrentStreak)
	}
}

func TestToggleHabitDateRejectsFuture(t *testing.T) {
	s := newTestStore(t)
	h, _ := s.CreateHabit("Running", "", model.CategoryHealth, model.FrequencyDaily)

	tomorrow := testToday.AddDate(0, 0, 1).Format(model.DayKey)
	if _, err := s.ToggleHabitDate(h.ID, tomorrow, testToday); err == nil {
		t.Fatal("expected error for future date")
	}
	if _, err := s.ToggleHabitDate(h.ID, "soon", testToday); err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestToggleHabitDateIdempotentPair(t *testing.T) {
	s := newTestStore(t)
	h, _ := s.CreateHabit("Running", "", model.CategoryHealth, model.FrequencyDaily)

	s.ToggleHabitDate(h.ID, dayKey(0), testToday)
	got, _ := s.ToggleHabitDate(h.ID, dayKey(0), testToday)
	if len(got.CompletedDates) != 0 || got.CurrentStreak != 0 {
		t.Fatalf("toggle pair should restore empty state: %+v", got)
	}
}

func TestHabitDatesSortedAscending(t *testing.T) {
	s := newTestStore(t)
	h, _ := s.CreateHabit("Running", "", model.CategoryHealth, model.FrequencyDaily)
	s.ToggleHabitDate(h.ID, dayKey(0), testToday)
	s.ToggleHabitDate(h.ID, dayKey(5), testToday)
	s.ToggleHabitDate(h.ID, dayKey(2), testToday)

	got, _ := s.GetHabit(h.ID)
	if len(got.CompletedDates) != 3 {
		t.Fatalf("expected 3 dates, got %d", len(got.CompletedDates))
	}
	for i := 1; i < len(got.CompletedDates); i++ {
		if got.CompletedDates[i-1] >= got.CompletedDates[i] {
			t.Fatalf("dates not ascending: %v", got.CompletedDates)
		}
	}
}

func TestDeleteHabitCascadesDates(t *testing.T) {
	s := newTestStore(t)
	h, _ := s.CreateHabit("Running", "", model.CategoryHealth, model.FrequencyDaily)
	s.ToggleHabitDate(h.ID, dayKey(0), testToday)

	if err := s.DeleteHabit(h.ID); err != nil {
		t.Fatal(err)
	}
	var n int
	s.db.QueryRow(`SELECT COUNT(*) FROM habit_dates WHERE habit_id = ?`, h.ID).Scan(&n)
	if n != 0 {
		t.Fatalf("expected cascade delete of dates, %d remain", n)
	}
}

// ============================================================
// Goals
// ============================================================

func TestCreateAndGetGoal(t *testing.T) {
	s := newTestStore(t)
	target := "2026-06-01"
	g, err := s.CreateGoal("Ship v1", "first release", &target, model.PriorityHigh, model.CategoryCareer)
	if err != nil {
		t.Fatal(err)
	}
	if g.Title != "Ship v1" || g.Priority != model.PriorityHigh || g.Status != model.GoalActive {
		t.Fatalf("unexpected goal: %+v", g)
	}
	if g.TargetDate == nil || *g.TargetDate != target {
		t.Fatalf("target date lost: %+v", g.TargetDate)
	}
}

func TestCreateGoalValidation(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.CreateGoal("", "", nil, model.PriorityLow, model.CategoryOther); err == nil {
		t.Fatal("expected error for empty title")
	}
	bad := "June 2026"
	if _, err := s.CreateGoal("X", "", &bad, model.PriorityLow, model.CategoryOther); err == nil {
		t.Fatal("expected error for malformed target date")
	}
	if _, err := s.CreateGoal("X", "", nil, "urgent", model.CategoryOther); err == nil {
		t.Fatal("expected error for invalid priority")
	}
}

func TestListGoalsOrdering(t *testing.T) {
	s := newTestStore(t)
	s.CreateGoal("low", "", nil, model.PriorityLow, model.CategoryOther)
	s.CreateGoal("high", "", nil, model.PriorityHigh, model.CategoryOther)
	done, _ := s.CreateGoal("done-high", "", nil, model.PriorityHigh, model.CategoryOther)
	s.SetGoalStatus(done.ID, model.GoalCompleted)

	goals, err := s.ListGoals()
	if err != nil {
		t.Fatal(err)
	}
	if len(goals) != 3 {
		t.Fatalf("expected 3 goals, got %d", len(goals))
	}
	// Active first, high before low, completed last regardless of priority.
	if goals[0].Title != "high" || goals[1].Title != "low" || goals[2].Title != "done-high" {
		t.Fatalf("unexpected order: %s, %s, %s", goals[0].Title, goals[1].Title, goals[2].Title)
	}
}

func TestSetGoalStatus(t *testing.T) {
	s := newTestStore(t)
	g, _ := s.CreateGoal("X", "", nil, model.PriorityMedium, model.CategoryOther)

	if err := s.SetGoalStatus(g.ID, model.GoalCompleted); err != nil {
		t.Fatal(err)
	}
	got, _ := s.GetGoal(g.ID)
	if got.Status != model.GoalCompleted {
		t.Fatalf("expected completed, got %s", got.Status)
	}

	if err := s.SetGoalStatus(g.ID, "paused"); err == nil {
		t.Fatal("expected error for invalid status")
	}
}

// ============================================================
// Projects
// ============================================================

func TestCreateAndGetProject(t *testing.T) {
	s := newTestStore(t)
	p, err := s.CreateProject("dailyflow", "dashboard", model.CategoryCareer,
		[]string{"go", "sqlite"}, "2026-03-01", nil)
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "dailyflow" || p.Status != model.ProjectPlanned || p.Progress != 0 {
		t.Fatalf("unexpected project: %+v", p)
	}
	if len(p.Tech) != 2 || p.Tech[0] != "go" || p.Tech[1] != "sqlite" {
		t.Fatalf("tech tags lost: %v", p.Tech)
	}
}

func TestCreateProjectValidation(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.CreateProject("", "", model.CategoryOther, nil, "2026-03-01", nil); err == nil {
		t.Fatal("expected error for empty name")
	}
	if _, err := s.CreateProject("X", "", model.CategoryOther, nil, "March 1st", nil); err == nil {
		t.Fatal("expected error for malformed start date")
	}
}

func TestCreateProjectDuplicateName(t *testing.T) {
	s := newTestStore(t)
	s.CreateProject("Dup", "", model.CategoryOther, nil, "2026-03-01", nil)
	if _, err := s.CreateProject("Dup", "", model.CategoryOther, nil, "2026-03-02", nil); err == nil {
		t.Fatal("expected error for duplicate project name")
	}
}

func TestSetProjectProgressTransitions(t *testing.T) {
	s := newTestStore(t)
	p, _ := s.CreateProject("X", "", model.CategoryOther, nil, "2026-03-01", nil)

	got, err := s.SetProjectProgress(p.ID, 30)
	if err != nil {
		t.Fatal(err)
	}
	if got.Progress != 30 || got.Status != model.ProjectInProgress {
		t.Fatalf("expected 30/inprogress, got %d/%s", got.Progress, got.Status)
	}

	got, _ = s.SetProjectProgress(p.ID, 150)
	if got.Progress != 100 || got.Status != model.ProjectCompleted {
		t.Fatalf("expected clamp to 100/completed, got %d/%s", got.Progress, got.Status)
	}

	// Dropping back below 100 reopens the project.
	got, _ = s.SetProjectProgress(p.ID, 90)
	if got.Progress != 90 || got.Status != model.ProjectInProgress {
		t.Fatalf("expected 90/inprogress, got %d/%s", got.Progress, got.Status)
	}
}

func TestListProjectsCompletedLast(t *testing.T) {
	s := newTestStore(t)
	s.CreateProject("b-active", "", model.CategoryOther, nil, "2026-03-01", nil)
	done, _ := s.CreateProject("a-done", "", model.CategoryOther, nil, "2026-03-01", nil)
	s.SetProjectStatus(done.ID, model.ProjectCompleted)

	projects, err := s.ListProjects()
	if err != nil {
		t.Fatal(err)
	}
	if projects[0].Name != "b-active" || projects[1].Name != "a-done" {
		t.Fatalf("unexpected order: %s, %s", projects[0].Name, projects[1].Name)
	}
}

// ============================================================
// Notifications
// ============================================================

func TestNotificationsNewestFirst(t *testing.T) {
	s := newTestStore(t)
	s.AddNotification("first", "", model.NotifyInfo, "")
	time.Sleep(1100 * time.Millisecond)
	s.AddNotification("second", "", model.NotifySuccess, "")

	list, err := s.ListNotifications()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(list))
	}
	if list[0].Title != "second" {
		t.Fatalf("expected newest first, got %s", list[0].Title)
	}
}

func TestNotificationValidation(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.AddNotification("", "", model.NotifyInfo, ""); err == nil {
		t.Fatal("expected error for empty title")
	}
	if _, err := s.AddNotification("x", "", "loud", ""); err == nil {
		t.Fatal("expected error for invalid type")
	}
}

func TestMarkNotificationRead(t *testing.T) {
	s := newTestStore(t)
	n, _ := s.AddNotification("streak", "keep going", model.NotifySuccess, "")
	s.AddNotification("other", "", model.NotifyInfo, "")

	count, _ := s.UnreadCount()
	if count != 2 {
		t.Fatalf("expected 2 unread, got %d", count)
	}

	if err := s.MarkNotificationRead(n.ID); err != nil {
		t.Fatal(err)
	}
	count, _ = s.UnreadCount()
	if count != 1 {
		t.Fatalf("expected 1 unread, got %d", count)
	}

	if err := s.MarkNotificationRead("nope"); err == nil {
		t.Fatal("expected error for missing notification")
	}
}

func TestMarkAllAndClearNotifications(t *testing.T) {
	s := newTestStore(t)
	s.AddNotification("a", "", model.NotifyInfo, "")
	s.AddNotification("b", "", model.NotifyWarning, "")

	s.MarkAllNotificationsRead()
	count, _ := s.UnreadCount()
	if count != 0 {
		t.Fatalf("expected 0 unread, got %d", count)
	}

	s.ClearNotifications()
	list, _ := s.ListNotifications()
	if len(list) != 0 {
		t.Fatalf("clear should remove read notifications, %d remain", len(list))
	}
}

// ============================================================
// Settings
// ============================================================

func TestSettingsDefaults(t *testing.T) {
	s := newTestStore(t)
	all, err := s.GetAllSettings()
	if err != nil {
		t.Fatal(err)
	}
	if all["daily_goal_hours"] != "8" || all["week_start"] != "monday" {
		t.Fatalf("missing seeded defaults: %v", all)
	}
}

func TestSetAndGetSetting(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetSetting("daily_goal_hours", "6"); err != nil {
		t.Fatal(err)
	}
	v, _ := s.GetSetting("daily_goal_hours")
	if v != "6" {
		t.Fatalf("expected 6, got %s", v)
	}

	v, err := s.GetSetting("nonexistent")
	if err != nil || v != "" {
		t.Fatalf("unset key should be empty, got %q err %v", v, err)
	}
}

func TestDailyGoalHours(t *testing.T) {
	s := newTestStore(t)
	if h := s.DailyGoalHours(); h != 8 {
		t.Fatalf("expected default 8, got %v", h)
	}
	s.SetSetting("daily_goal_hours", "6.5")
	if h := s.DailyGoalHours(); h != 6.5 {
		t.Fatalf("expected 6.5, got %v", h)
	}
	s.SetSetting("daily_goal_hours", "junk")
	if h := s.DailyGoalHours(); h != 8 {
		t.Fatalf("malformed value should fall back to 8, got %v", h)
	}
}

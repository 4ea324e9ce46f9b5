package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dailyflow/dailyflow/internal/model"
)

// DaysToCSV writes one row per day record.
func DaysToCSV(days []model.DayRecord, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"Date", "Planned Hours", "Actual Hours", "Status", "Tasks", "Tasks Done", "Notes"}); err != nil {
		return err
	}

	for _, d := range days {
		done := 0
		for _, t := range d.Tasks {
			if t.Completed {
				done++
			}
		}
		row := []string{
			d.Date,
			formatHours(d.PlannedHours),
			formatHours(d.ActualHours),
			string(d.Status),
			strconv.Itoa(len(d.Tasks)),
			strconv.Itoa(done),
			d.Notes,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

// HabitsToCSV writes one row per habit with its streak and completion
// count.
func HabitsToCSV(habits []model.Habit, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"Name", "Category", "Frequency", "Current Streak", "Completions", "Last Completed"}); err != nil {
		return err
	}

	for _, h := range habits {
		last := ""
		if n := len(h.CompletedDates); n > 0 {
			last = h.CompletedDates[n-1]
		}
		row := []string{
			h.Name,
			string(h.Category),
			string(h.Frequency),
			strconv.Itoa(h.CurrentStreak),
			strconv.Itoa(len(h.CompletedDates)),
			last,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func formatHours(h float64) string {
	return strings.TrimSuffix(strings.TrimRight(strconv.FormatFloat(h, 'f', 2, 64), "0"), ".")
}

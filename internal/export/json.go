package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dailyflow/dailyflow/internal/model"
)

// Archive is the full data snapshot written by the JSON exporter.
type Archive struct {
	Days     []model.DayRecord `json:"days"`
	Habits   []model.Habit     `json:"habits"`
	Goals    []model.Goal      `json:"goals"`
	Projects []model.Project   `json:"projects"`
}

type jsonExport struct {
	ExportedAt string            `json:"exported_at"`
	Profile    string            `json:"profile"`
	Days       []model.DayRecord `json:"days"`
	Habits     []model.Habit     `json:"habits"`
	Goals      []model.Goal      `json:"goals"`
	Projects   []model.Project   `json:"projects"`
}

func ToJSON(a Archive, profile, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Profile:    profile,
		Days:       a.Days,
		Habits:     a.Habits,
		Goals:      a.Goals,
		Projects:   a.Projects,
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}

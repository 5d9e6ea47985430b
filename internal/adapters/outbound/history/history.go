// Package history records a summary of each check run under the project's
// .usedirective directory so problem counts can be followed over time.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdidvp/usedirective/internal/domain"
)

// DefaultLimit is the number of runs kept when no limit is given.
const DefaultLimit = 100

func runsPath(projectPath string) string {
	return filepath.Join(projectPath, ".usedirective", "history", "runs.json")
}

// FileHistory implements domain.RunHistory on a JSON file holding the most
// recent runs, oldest first.
type FileHistory struct {
	limit int
}

// New returns a FileHistory keeping DefaultLimit runs.
func New() *FileHistory {
	return NewWithLimit(DefaultLimit)
}

// NewWithLimit returns a FileHistory keeping at most limit runs. A limit
// below one falls back to DefaultLimit.
func NewWithLimit(limit int) *FileHistory {
	if limit < 1 {
		limit = DefaultLimit
	}
	return &FileHistory{limit: limit}
}

// Save appends entry and drops the oldest runs beyond the limit. The file is
// replaced through a rename so readers never see a partial write.
func (h *FileHistory) Save(projectPath string, entry domain.RunEntry) error {
	runs, err := h.Load(projectPath)
	if err != nil {
		return err
	}
	runs = append(runs, entry)
	if over := len(runs) - h.limit; over > 0 {
		runs = runs[over:]
	}

	fp := runsPath(projectPath)
	if err := os.MkdirAll(filepath.Dir(fp), 0755); err != nil {
		return fmt.Errorf("creating history directory: %w", err)
	}
	data, err := json.MarshalIndent(runs, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding run history: %w", err)
	}

	tmp := fp + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing run history: %w", err)
	}
	if err := os.Rename(tmp, fp); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("writing run history: %w", err)
	}
	return nil
}

// Load returns the recorded runs, oldest first. A project without history
// yields no runs and no error.
func (h *FileHistory) Load(projectPath string) ([]domain.RunEntry, error) {
	data, err := os.ReadFile(runsPath(projectPath))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading run history: %w", err)
	}

	var runs []domain.RunEntry
	if err := json.Unmarshal(data, &runs); err != nil {
		return nil, fmt.Errorf("decoding run history: %w", err)
	}
	return runs, nil
}

package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/groomroom/groomroom/internal/domain"
)

const historyFile = ".groomroom/history/runs.json"

// FileHistory implements domain.RunHistory using JSON file storage.
type FileHistory struct{}

func New() *FileHistory {
	return &FileHistory{}
}

// EntryFor builds a history entry for a finished analysis.
func EntryFor(r *domain.GroomReport, now time.Time) domain.RunEntry {
	return domain.RunEntry{
		ID:        uuid.NewString(),
		Timestamp: now.UTC().Format(time.RFC3339),
		TicketID:  r.TicketID,
		Title:     r.Title,
		CardType:  r.CardType,
		Status:    r.Status,
		Coverage:  r.Coverage(),
	}
}

func (h *FileHistory) Save(dir string, entry domain.RunEntry) error {
	entries, err := h.Load(dir)
	if err != nil {
		return err
	}

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	entries = append(entries, entry)

	fp := filepath.Join(dir, historyFile)
	if err := os.MkdirAll(filepath.Dir(fp), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(fp, data, 0644)
}

func (h *FileHistory) Load(dir string) ([]domain.RunEntry, error) {
	fp := filepath.Join(dir, historyFile)

	data, err := os.ReadFile(fp)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []domain.RunEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("reading %s: %w", historyFile, err)
	}

	return entries, nil
}

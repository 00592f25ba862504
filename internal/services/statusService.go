package services

import (
	"context"

	"github.com/arzan03/bssm-backend/internal/db"
)

const (
	BackendRunning        = "✅ Running"
	DatabaseConnected     = "✅ Connected"
	DatabaseNotAvailable  = "❌ Not Available"
	DatabaseWarningPrefix = "⚠️ "

	maxWarningLength = 80
)

type Status struct {
	Backend     string   `json:"backend"`
	Database    string   `json:"database"`
	Collections []string `json:"collections"`
}

type StatusService struct {
	store db.Store
}

func NewStatusService(store db.Store) *StatusService {
	return &StatusService{store: store}
}

// Check probes the store. Probe failures end up in Database as a short
// warning; Check itself never fails.
func (s *StatusService) Check(ctx context.Context) Status {
	status := Status{
		Backend:     BackendRunning,
		Database:    DatabaseNotAvailable,
		Collections: []string{},
	}
	if !s.store.Available() {
		return status
	}

	status.Database = DatabaseConnected
	names, err := s.store.ListCollectionNames(ctx)
	if err != nil {
		status.Database = DatabaseWarningPrefix + truncate(err.Error(), maxWarningLength)
		return status
	}
	if names != nil {
		status.Collections = names
	}
	return status
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

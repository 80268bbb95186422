package data

import (
	"time"

	"github.com/google/uuid"

	"github.com/stitbu/satupintu/internal/model"
)

// LogActivity appends an audit record. The trail is local-only; mirroring it
// remotely is left as future work.
func (s *Service) LogActivity(action, details string) error {
	entries, err := s.local.GetActivityLog()
	if err != nil {
		return err
	}
	entries = append(entries, model.ActivityLog{
		ID:        uuid.NewString(),
		Action:    action,
		Details:   details,
		Timestamp: time.Now(),
	})
	return s.local.SaveActivityLog(entries)
}

// ActivityLog reads back the full trail in insertion order; ordering for
// display is the caller's concern.
func (s *Service) ActivityLog() ([]model.ActivityLog, error) {
	return s.local.GetActivityLog()
}

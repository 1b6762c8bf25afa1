package repositories

import (
	"context"

	"github.com/johnquangdev/meeting-autopilot/internal/domain/entities"
)

// ArchiveRepository defines the interface for document snapshot metadata
type ArchiveRepository interface {
	// Upsert inserts or updates an archive row keyed by meeting_id
	Upsert(ctx context.Context, archive *entities.Archive) error

	// GetByMeetingID returns the archive row for a meeting; nil when absent
	GetByMeetingID(ctx context.Context, meetingID string) (*entities.Archive, error)
}

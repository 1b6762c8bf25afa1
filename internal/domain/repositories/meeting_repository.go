package repositories

import (
	"context"

	"github.com/johnquangdev/meeting-autopilot/internal/domain/entities"
)

// MeetingRepository defines the interface for meeting row access
type MeetingRepository interface {
	// Upsert inserts or updates a meeting keyed by meeting_id
	Upsert(ctx context.Context, meeting *entities.Meeting) error

	// GetByID finds a meeting by its id; nil when absent
	GetByID(ctx context.Context, meetingID string) (*entities.Meeting, error)

	// GetLatestForKey returns the most recent meeting of a series by date
	GetLatestForKey(ctx context.Context, meetingKey string) (*entities.Meeting, error)

	// FindByTitleContains returns the most recent meeting in the series
	// whose title contains the given substring
	FindByTitleContains(ctx context.Context, substr, meetingKey string) (*entities.Meeting, error)

	// GetPreviousBefore returns the most recent meeting of the series
	// strictly before the given date
	GetPreviousBefore(ctx context.Context, meetingKey, date string) (*entities.Meeting, error)

	// SetParentThreadTS records the retrospective post's timestamp.
	// Once set it is never cleared; setting an already-set value is a no-op.
	SetParentThreadTS(ctx context.Context, meetingID, ts string) error

	// LatestParentThread returns the most recent meeting that already
	// has a parent thread
	LatestParentThread(ctx context.Context) (*entities.Meeting, error)
}

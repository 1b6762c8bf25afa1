package repositories

import (
	"context"

	"github.com/johnquangdev/meeting-autopilot/internal/domain/entities"
)

// ActionItemRepository defines the interface for extracted task rows
type ActionItemRepository interface {
	// Upsert inserts or updates an item keyed by its dedupe_key
	Upsert(ctx context.Context, item *entities.ActionItem) error

	// ListForMeeting returns every item extracted for a meeting
	ListForMeeting(ctx context.Context, meetingID string) ([]entities.ActionItem, error)
}

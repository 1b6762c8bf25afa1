package repositories

import (
	"context"

	"github.com/johnquangdev/meeting-autopilot/internal/domain/entities"
)

// MappingRepository defines the interface for email/chat-id mappings and
// the per-series channel configuration rows
type MappingRepository interface {
	// SaveEmailMapping upserts an email to chat-user-id mapping keyed by email
	SaveEmailMapping(ctx context.Context, m *entities.Mapping) error

	// GetChatIDForEmail returns the cached chat user id for an email,
	// empty when unknown
	GetChatIDForEmail(ctx context.Context, email string) (string, error)

	// GetChannelForMeetingKey returns the chat channel configured for a
	// meeting series, empty when none is configured
	GetChannelForMeetingKey(ctx context.Context, meetingKey string) (string, error)

	// ListWithDisplayName returns mappings that carry a display name,
	// for loose contact resolution
	ListWithDisplayName(ctx context.Context) ([]entities.Mapping, error)
}

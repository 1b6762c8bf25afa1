package repositories

import (
	"context"

	"github.com/johnquangdev/meeting-autopilot/internal/domain/entities"
)

// AgendaRepository defines the interface for built agenda artifacts
type AgendaRepository interface {
	// Upsert inserts or updates an agenda keyed by (meeting_id, thread_ts)
	Upsert(ctx context.Context, agenda *entities.Agenda) error

	// GetForThread returns the agenda built for a meeting thread; nil when absent
	GetForThread(ctx context.Context, meetingID, threadTS string) (*entities.Agenda, error)

	// SetPostedTS marks an agenda as delivered to chat
	SetPostedTS(ctx context.Context, meetingID, threadTS, postedTS string) error
}

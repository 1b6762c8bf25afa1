package repositories

import (
	"context"

	"github.com/johnquangdev/meeting-autopilot/internal/domain/entities"
)

// HearingRepository defines the interface for hearing prompts and replies
type HearingRepository interface {
	// UpsertPrompt records a posted hearing request, keyed by
	// (meeting_id, assignee_chat_id)
	UpsertPrompt(ctx context.Context, prompt *entities.HearingPrompt) error

	// ListPrompts returns the prompts posted for a meeting
	ListPrompts(ctx context.Context, meetingID string) ([]entities.HearingPrompt, error)

	// UpsertResponse stores one parsed reply, keyed by
	// (meeting_id, assignee_chat_id, reply_ts). Replies are never
	// overwritten; "latest" is resolved at read time.
	UpsertResponse(ctx context.Context, resp *entities.HearingResponse) error

	// ListResponses returns every stored reply for a meeting
	ListResponses(ctx context.Context, meetingID string) ([]entities.HearingResponse, error)
}

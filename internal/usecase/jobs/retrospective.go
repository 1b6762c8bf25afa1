package jobs

import (
	"context"

	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-autopilot/errors"
	"github.com/johnquangdev/meeting-autopilot/internal/domain/entities"
	"github.com/johnquangdev/meeting-autopilot/internal/usecase/compose"
)

// PostRetrospective posts the thread-anchoring retrospective message for
// the current meeting: open action items grouped by assignee. A meeting
// that already has a parent thread is left alone, which makes re-runs
// safe and keeps the anchor stable for the rest of the pipeline.
func (s *pipelineService) PostRetrospective(ctx context.Context) error {
	meeting, err := s.findMeeting(ctx)
	if err != nil {
		return err
	}
	if meeting.HasParentThread() {
		s.logger.Info("retrospective already posted, skipping",
			zap.String("meeting_id", meeting.MeetingID),
			zap.String("parent_thread_ts", meeting.ParentThreadTS))
		return nil
	}
	channel, err := s.channelFor(ctx, meeting)
	if err != nil {
		return err
	}

	items, err := s.items.ListForMeeting(ctx, meeting.MeetingID)
	if err != nil {
		return err
	}
	open := make([]entities.ActionItem, 0, len(items))
	for _, it := range items {
		if it.IsOpen() {
			open = append(open, it)
		}
	}

	body := compose.FormatRetrospectivePost(open)
	ts, err := s.chat.PostMessage(ctx, channel, body, "")
	if err != nil {
		return apperrors.ErrChatServiceFailed("post retrospective", err)
	}
	if err := s.meetings.SetParentThreadTS(ctx, meeting.MeetingID, ts); err != nil {
		return err
	}
	s.logger.Info("posted retrospective",
		zap.String("meeting_id", meeting.MeetingID),
		zap.String("channel", channel),
		zap.String("thread_ts", ts),
		zap.Int("open_items", len(open)))
	return nil
}

package jobs

import (
	"context"

	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-autopilot/errors"
	"github.com/johnquangdev/meeting-autopilot/internal/domain/entities"
	"github.com/johnquangdev/meeting-autopilot/internal/infrastructure/external/slack"
	"github.com/johnquangdev/meeting-autopilot/internal/usecase/extract"
)

// CollectReplies reads the meeting thread and stores each participant's
// latest reply as a parsed hearing response. Every collected reply keeps
// its own row; a re-run after more replies simply adds newer rows.
func (s *pipelineService) CollectReplies(ctx context.Context) error {
	meeting, err := s.meetings.LatestParentThread(ctx)
	if err != nil {
		return err
	}
	if meeting == nil {
		return apperrors.ErrNotFound("meeting thread")
	}
	channel, err := s.channelFor(ctx, meeting)
	if err != nil {
		return err
	}

	msgs, err := s.chat.FetchThreadReplies(ctx, channel, meeting.ParentThreadTS)
	if err != nil {
		return apperrors.ErrChatServiceFailed("fetch thread replies", err)
	}

	latest := latestPerUser(msgs, meeting.ParentThreadTS)
	for _, m := range latest {
		fields := extract.ParseHearingReply(extract.NormalizeText(m.Text))
		resp := &entities.HearingResponse{
			MeetingID:      meeting.MeetingID,
			AssigneeChatID: m.User,
			ReplyTS:        m.TS,
			TodoStatus:     fields.TodoStatus,
			Reports:        fields.Reports,
			Blockers:       fields.Blockers,
			Links:          fields.Links,
			RawText:        m.Text,
		}
		if err := s.hearings.UpsertResponse(ctx, resp); err != nil {
			return err
		}
	}
	s.logger.Info("collected hearing replies",
		zap.String("meeting_id", meeting.MeetingID),
		zap.Int("thread_messages", len(msgs)),
		zap.Int("collected", len(latest)))
	return nil
}

// latestPerUser keeps only each user's newest reply, excluding the
// thread anchor itself and messages without an author.
func latestPerUser(msgs []slack.Message, parentTS string) []slack.Message {
	best := map[string]slack.Message{}
	var order []string
	for _, m := range msgs {
		if m.TS == parentTS || m.User == "" {
			continue
		}
		prev, ok := best[m.User]
		if !ok {
			order = append(order, m.User)
			best[m.User] = m
			continue
		}
		if extract.ParseChatTS(m.TS) > extract.ParseChatTS(prev.TS) {
			best[m.User] = m
		}
	}
	out := make([]slack.Message, 0, len(order))
	for _, u := range order {
		out = append(out, best[u])
	}
	return out
}

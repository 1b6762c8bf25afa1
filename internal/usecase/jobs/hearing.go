package jobs

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-autopilot/errors"
	"github.com/johnquangdev/meeting-autopilot/internal/domain/entities"
	"github.com/johnquangdev/meeting-autopilot/internal/usecase/compose"
)

// PostHearing posts one consolidated hearing request into the meeting
// thread, mentioning every participant, and records a prompt row per
// participant so collectors know who was asked and by when to reply.
// Participants are the union of the ingested attendee list, the calendar
// attendees for the meeting date and the assignees of open items.
func (s *pipelineService) PostHearing(ctx context.Context) error {
	meeting, err := s.findMeeting(ctx)
	if err != nil {
		return err
	}
	if !meeting.HasParentThread() {
		return apperrors.ErrNotFound("parent thread")
	}
	channel, err := s.channelFor(ctx, meeting)
	if err != nil {
		return err
	}

	emails, err := s.hearingParticipants(ctx, meeting)
	if err != nil {
		return err
	}
	if len(emails) == 0 {
		s.logger.Info("no hearing participants, skipping",
			zap.String("meeting_id", meeting.MeetingID))
		return nil
	}

	mentions := make([]string, 0, len(emails))
	owners := make([]string, 0, len(emails))
	for _, email := range emails {
		id := s.resolveChatID(ctx, email)
		if id != "" {
			mentions = append(mentions, "<@"+id+">")
			owners = append(owners, id)
		} else {
			mentions = append(mentions, email)
			owners = append(owners, email)
		}
	}

	body := compose.BuildHearingMessage(mentions)
	ts, err := s.chat.PostMessage(ctx, channel, body, meeting.ParentThreadTS)
	if err != nil {
		return apperrors.ErrChatServiceFailed("post hearing", err)
	}

	due := s.today().AddDate(0, 0, s.cfg.Meeting.ReplyDueDays).Format("2006-01-02")
	for _, owner := range owners {
		prompt := &entities.HearingPrompt{
			MeetingID:      meeting.MeetingID,
			ChannelID:      channel,
			ParentThreadTS: meeting.ParentThreadTS,
			AssigneeChatID: owner,
			PromptTS:       ts,
			DueToReply:     due,
			Status:         entities.HearingPromptStatusSent,
		}
		if err := s.hearings.UpsertPrompt(ctx, prompt); err != nil {
			return err
		}
	}
	s.logger.Info("posted hearing prompt",
		zap.String("meeting_id", meeting.MeetingID),
		zap.String("thread_ts", meeting.ParentThreadTS),
		zap.Int("participants", len(owners)),
		zap.String("due_to_reply", due))
	return nil
}

// hearingParticipants unions the three participant sources into a sorted
// deduplicated email list. Calendar trouble degrades to the other two
// sources.
func (s *pipelineService) hearingParticipants(ctx context.Context, meeting *entities.Meeting) ([]string, error) {
	seen := map[string]bool{}
	add := func(email string) {
		email = strings.ToLower(strings.TrimSpace(email))
		if email != "" {
			seen[email] = true
		}
	}

	for _, e := range strings.Split(meeting.ParticipantEmails, ",") {
		add(e)
	}
	if s.attendees != nil {
		attendees, err := s.attendees.FetchAttendeesForDate(ctx, meeting.Date, meeting.MeetingKey)
		if err != nil {
			s.logger.Warn("failed to fetch calendar attendees",
				zap.String("date", meeting.Date), zap.Error(err))
		} else {
			for _, e := range attendees {
				add(e)
			}
		}
	}
	items, err := s.items.ListForMeeting(ctx, meeting.MeetingID)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if it.IsOpen() {
			add(it.AssigneeEmail)
		}
	}

	out := make([]string, 0, len(seen))
	for e := range seen {
		out = append(out, e)
	}
	sort.Strings(out)
	return out, nil
}

package jobs

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-autopilot/errors"
	"github.com/johnquangdev/meeting-autopilot/internal/domain/entities"
	"github.com/johnquangdev/meeting-autopilot/internal/usecase/extract"
)

// ExtractActions scans the whole meeting document for free-form task
// lines and upserts them as pending action items. Re-runs on unchanged
// text are no-ops thanks to the dedupe key.
func (s *pipelineService) ExtractActions(ctx context.Context) error {
	meeting, err := s.findMeeting(ctx)
	if err != nil {
		return err
	}
	text, err := s.meetingText(ctx, meeting)
	if err != nil {
		return err
	}

	tasks := extract.ParseActions(text)
	for _, t := range tasks {
		if err := s.upsertTask(ctx, meeting, t); err != nil {
			return err
		}
	}
	s.logger.Info("extracted action items",
		zap.String("meeting_id", meeting.MeetingID),
		zap.Int("count", len(tasks)))
	return nil
}

// ExtractDocSections reads the structured part of the meeting document.
// When the document is organized by person headings, each person's next
// actions become items attributed to them and their retrospective lines
// are stored as a synthetic hearing response. Documents without person
// headings fall back to flat section parsing.
func (s *pipelineService) ExtractDocSections(ctx context.Context) error {
	meeting, err := s.findMeeting(ctx)
	if err != nil {
		return err
	}
	text, err := s.meetingText(ctx, meeting)
	if err != nil {
		return err
	}

	// A shared timestamp groups all retro rows of one run, so a later
	// run supersedes them wholesale when "latest" is resolved.
	retroTS := chatTimestamp(s.now())

	persons := extract.SplitByPerson(text)
	if len(persons) > 0 {
		return s.extractByPerson(ctx, meeting, persons, retroTS)
	}
	return s.extractFlat(ctx, meeting, text, retroTS)
}

func (s *pipelineService) extractByPerson(ctx context.Context, meeting *entities.Meeting, persons []extract.PersonSections, retroTS string) error {
	var taskCount, retroCount int
	for _, p := range persons {
		contact := s.resolveContactByName(ctx, p.Name)
		var contactEmail, contactChatID string
		if contact != nil {
			contactEmail = contact.Email
			contactChatID = contact.ChatUserID
		}

		for _, t := range extract.ParseTasks(p.Sections[extract.SectionNextActions]) {
			if t.AssigneeEmail == "" {
				t.AssigneeEmail = contactEmail
			}
			if err := s.upsertTask(ctx, meeting, t); err != nil {
				return err
			}
			taskCount++
		}

		retro := strings.TrimSpace(strings.Join(p.Sections[extract.SectionRetrospective], " "))
		if retro == "" {
			continue
		}
		owner := contactChatID
		if owner == "" {
			owner = contactEmail
		}
		if owner == "" {
			owner = p.Name
		}
		resp := &entities.HearingResponse{
			MeetingID:      meeting.MeetingID,
			AssigneeChatID: owner,
			ReplyTS:        retroTS,
			Reports:        retro,
			RawText:        retro,
		}
		if err := s.hearings.UpsertResponse(ctx, resp); err != nil {
			return err
		}
		retroCount++
	}
	s.logger.Info("extracted person sections",
		zap.String("meeting_id", meeting.MeetingID),
		zap.Int("persons", len(persons)),
		zap.Int("tasks", taskCount),
		zap.Int("retro_rows", retroCount))
	return nil
}

func (s *pipelineService) extractFlat(ctx context.Context, meeting *entities.Meeting, text, retroTS string) error {
	buckets := extract.SplitSections(text)

	tasks := extract.ParseTasks(buckets[extract.SectionNextActions])
	for _, t := range tasks {
		if err := s.upsertTask(ctx, meeting, t); err != nil {
			return err
		}
	}

	retro := extract.ParseRetrospective(buckets[extract.SectionRetrospective])
	for email, highlight := range retro {
		owner := s.resolveChatID(ctx, email)
		if owner == "" {
			owner = email
		}
		if owner == "" {
			continue
		}
		resp := &entities.HearingResponse{
			MeetingID:      meeting.MeetingID,
			AssigneeChatID: owner,
			ReplyTS:        retroTS,
			Reports:        highlight,
			RawText:        highlight,
		}
		if err := s.hearings.UpsertResponse(ctx, resp); err != nil {
			return err
		}
	}
	s.logger.Info("extracted flat sections",
		zap.String("meeting_id", meeting.MeetingID),
		zap.Int("tasks", len(tasks)),
		zap.Int("retro_rows", len(retro)))
	return nil
}

// upsertTask fills in the chat id and writes one extracted task.
func (s *pipelineService) upsertTask(ctx context.Context, meeting *entities.Meeting, t extract.TaskFields) error {
	item := entities.NewActionItem(meeting.Date, meeting.MeetingID, t.Task, t.AssigneeEmail)
	item.Due = t.Due
	item.Links = t.Links
	item.AssigneeChatID = s.resolveChatID(ctx, t.AssigneeEmail)
	return s.items.Upsert(ctx, item)
}

// meetingText fetches and normalizes the meeting document body.
func (s *pipelineService) meetingText(ctx context.Context, meeting *entities.Meeting) (string, error) {
	if meeting.DocID == "" {
		return "", apperrors.ErrMissingConfiguration("meeting document id")
	}
	doc, err := s.docs.FetchDocument(ctx, meeting.DocID)
	if err != nil {
		return "", apperrors.ErrDocumentServiceFailed("fetch", err)
	}
	return extract.NormalizeText(extract.FlattenDocument(doc)), nil
}

// chatTimestamp renders a time the way chat platforms stamp messages,
// seconds with a fractional part, so synthetic rows sort alongside real
// replies.
func chatTimestamp(t time.Time) string {
	return strconv.FormatFloat(float64(t.UnixNano())/1e9, 'f', 6, 64)
}

package jobs

import (
	"context"
	"strings"

	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-autopilot/errors"
	"github.com/johnquangdev/meeting-autopilot/internal/domain/entities"
	"github.com/johnquangdev/meeting-autopilot/internal/usecase/compose"
	"github.com/johnquangdev/meeting-autopilot/internal/usecase/extract"
)

// BuildAgenda assembles the deterministic combined agenda for the latest
// meeting thread: top scored items, per-person highlights and blockers.
// The result is stored unposted; PostAgenda delivers it.
func (s *pipelineService) BuildAgenda(ctx context.Context) error {
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

	items, err := s.items.ListForMeeting(ctx, meeting.MeetingID)
	if err != nil {
		return err
	}
	responses, err := s.hearings.ListResponses(ctx, meeting.MeetingID)
	if err != nil {
		return err
	}

	body := compose.ComposeAgenda(meeting.Date, items, responses, s.today())
	agenda := &entities.Agenda{
		MeetingID: meeting.MeetingID,
		ChannelID: channel,
		ThreadTS:  meeting.ParentThreadTS,
		Body:      body,
	}
	if err := s.agendas.Upsert(ctx, agenda); err != nil {
		return err
	}
	s.logger.Info("built agenda",
		zap.String("meeting_id", meeting.MeetingID),
		zap.String("thread_ts", meeting.ParentThreadTS),
		zap.Int("items", len(items)),
		zap.Int("responses", len(responses)))
	return nil
}

// BuildAgendaLLM assembles the agenda with the generative model instead:
// previous meeting's next actions plus the collected hearing summaries go
// into the prompt, and the output is finalized with a heading and an
// input fingerprint. Empty model output fails the run; nothing is stored.
func (s *pipelineService) BuildAgendaLLM(ctx context.Context) error {
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

	prevNext, err := s.previousNextActions(ctx, meeting)
	if err != nil {
		return err
	}
	responses, err := s.hearings.ListResponses(ctx, meeting.MeetingID)
	if err != nil {
		return err
	}
	highlights := compose.SummarizeResponses(responses)
	blockers := compose.CollectBlockers(responses)

	prompt := compose.BuildAgendaPrompt(meeting.Title, meeting.Date, prevNext, highlights, blockers)
	if limit := s.cfg.Meeting.PromptTruncate; limit > 0 {
		if r := []rune(prompt); len(r) > limit {
			prompt = string(r[:limit])
		}
	}
	inputHash := compose.AgendaInputHash(prevNext, highlights, blockers)

	out, err := s.generator.GenerateMarkdown(ctx, prompt, compose.AgendaSystemPrompt)
	if err != nil {
		return apperrors.ErrGenerationFailed(err)
	}
	if strings.TrimSpace(out) == "" {
		return apperrors.ErrEmptyGeneration()
	}
	body := compose.FinalizeAgendaBody(out, meeting.Title, meeting.Date, inputHash)

	agenda := &entities.Agenda{
		MeetingID: meeting.MeetingID,
		ChannelID: channel,
		ThreadTS:  meeting.ParentThreadTS,
		Body:      body,
	}
	if err := s.agendas.Upsert(ctx, agenda); err != nil {
		return err
	}
	s.logger.Info("built agenda with model",
		zap.String("meeting_id", meeting.MeetingID),
		zap.String("input_hash", inputHash),
		zap.Int("prev_next", len(prevNext)),
		zap.Int("highlights", len(highlights)),
		zap.Int("blockers", len(blockers)))
	return nil
}

// PostAgenda delivers the built agenda into the meeting thread. An
// agenda that already carries a posted timestamp is left alone.
func (s *pipelineService) PostAgenda(ctx context.Context) error {
	meeting, err := s.meetings.LatestParentThread(ctx)
	if err != nil {
		return err
	}
	if meeting == nil {
		return apperrors.ErrNotFound("meeting thread")
	}
	agenda, err := s.agendas.GetForThread(ctx, meeting.MeetingID, meeting.ParentThreadTS)
	if err != nil {
		return err
	}
	if agenda == nil {
		return apperrors.ErrNotFound("agenda")
	}
	if agenda.Posted() {
		s.logger.Info("agenda already posted, skipping",
			zap.String("meeting_id", meeting.MeetingID),
			zap.String("posted_ts", agenda.PostedTS))
		return nil
	}

	channel := agenda.ChannelID
	if channel == "" {
		if channel, err = s.channelFor(ctx, meeting); err != nil {
			return err
		}
	}

	// Reference material (details, attachments) follows as a second
	// message so the agenda itself stays short.
	main, followUp := extract.SplitMainAndThread(agenda.Body)
	if main == "" {
		main = agenda.Body
	}
	ts, err := s.chat.PostMessage(ctx, channel, main, agenda.ThreadTS)
	if err != nil {
		return apperrors.ErrChatServiceFailed("post agenda", err)
	}
	if followUp != "" {
		if _, err := s.chat.PostMessage(ctx, channel, followUp, agenda.ThreadTS); err != nil {
			return apperrors.ErrChatServiceFailed("post agenda follow-up", err)
		}
	}
	if err := s.agendas.SetPostedTS(ctx, agenda.MeetingID, agenda.ThreadTS, ts); err != nil {
		return err
	}
	s.logger.Info("posted agenda",
		zap.String("meeting_id", meeting.MeetingID),
		zap.String("thread_ts", agenda.ThreadTS),
		zap.String("posted_ts", ts))
	return nil
}

// previousNextActions loads the next-action bullets of the meeting
// immediately before this one, deduplicated. A missing previous meeting
// or unreadable document yields an empty list rather than an error;
// first runs of a series have no history.
func (s *pipelineService) previousNextActions(ctx context.Context, meeting *entities.Meeting) ([]string, error) {
	prev, err := s.meetings.GetPreviousBefore(ctx, meeting.MeetingKey, meeting.Date)
	if err != nil {
		return nil, err
	}
	if prev == nil || prev.DocID == "" {
		return nil, nil
	}
	doc, err := s.docs.FetchDocument(ctx, prev.DocID)
	if err != nil {
		s.logger.Warn("failed to fetch previous meeting document",
			zap.String("doc_id", prev.DocID), zap.Error(err))
		return nil, nil
	}
	text := extract.NormalizeText(extract.FlattenDocument(doc))

	var bullets []string
	if persons := extract.SplitByPerson(text); len(persons) > 0 {
		for _, p := range persons {
			bullets = append(bullets, p.Sections[extract.SectionNextActions]...)
		}
	} else {
		bullets = extract.SplitSections(text)[extract.SectionNextActions]
	}
	return extract.DedupeBullets(bullets), nil
}

package jobs

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-autopilot/errors"
	"github.com/johnquangdev/meeting-autopilot/internal/domain/entities"
	"github.com/johnquangdev/meeting-autopilot/internal/domain/repositories"
	"github.com/johnquangdev/meeting-autopilot/internal/infrastructure/external/googleapi"
	"github.com/johnquangdev/meeting-autopilot/internal/infrastructure/external/slack"
	"github.com/johnquangdev/meeting-autopilot/pkg/config"
)

// Service defines the pipeline jobs. Each method is one independently
// triggerable run: it loads what it needs, does its one step and returns.
// Every step is idempotent, so the scheduler may retry any of them.
type Service interface {
	IngestDocument(ctx context.Context) error
	ExtractActions(ctx context.Context) error
	ExtractDocSections(ctx context.Context) error
	PostRetrospective(ctx context.Context) error
	PostHearing(ctx context.Context) error
	CollectReplies(ctx context.Context) error
	BuildAgenda(ctx context.Context) error
	BuildAgendaLLM(ctx context.Context) error
	PostAgenda(ctx context.Context) error
	ArchiveNotes(ctx context.Context) error
}

// DocumentService fetches document bodies.
type DocumentService interface {
	FetchDocument(ctx context.Context, docID string) (*entities.RawDocument, error)
}

// DocSearcher locates the latest meeting document in the notes folder.
type DocSearcher interface {
	SearchLatestDoc(ctx context.Context, folderID string, nameContains ...string) (*googleapi.DocRef, error)
}

// ChatService is the chat platform surface the jobs use.
type ChatService interface {
	Configured() bool
	PostMessage(ctx context.Context, channel, text, threadTS string) (string, error)
	LookupUserIDByEmail(ctx context.Context, email string) (string, error)
	FetchThreadReplies(ctx context.Context, channel, threadTS string) ([]slack.Message, error)
}

// TextGenerator produces Markdown from a prompt.
type TextGenerator interface {
	GenerateMarkdown(ctx context.Context, prompt, system string) (string, error)
}

// AttendeeService resolves calendar attendees for a meeting date.
type AttendeeService interface {
	FetchAttendeesForDate(ctx context.Context, date, meetingKey string) ([]string, error)
}

// SnapshotStore persists flattened document snapshots.
type SnapshotStore interface {
	PutSnapshot(ctx context.Context, objectKey, body string) error
}

// ChatIDCache is the fast email-to-chat-id lookup layer in front of the
// mappings table. It may be absent; resolution then goes straight to the
// table and the directory.
type ChatIDCache interface {
	GetChatID(ctx context.Context, email string) (string, error)
	SetChatID(ctx context.Context, email, chatID string) error
}

type pipelineService struct {
	meetings repositories.MeetingRepository
	items    repositories.ActionItemRepository
	hearings repositories.HearingRepository
	agendas  repositories.AgendaRepository
	mappings repositories.MappingRepository
	archives repositories.ArchiveRepository

	docs      DocumentService
	drive     DocSearcher
	chat      ChatService
	generator TextGenerator
	attendees AttendeeService
	snapshots SnapshotStore
	chatIDs   ChatIDCache

	cfg    *config.Config
	logger *zap.Logger
	loc    *time.Location
	now    func() time.Time
}

// NewService constructs the pipeline job service.
func NewService(
	meetings repositories.MeetingRepository,
	items repositories.ActionItemRepository,
	hearings repositories.HearingRepository,
	agendas repositories.AgendaRepository,
	mappings repositories.MappingRepository,
	archives repositories.ArchiveRepository,
	docs DocumentService,
	drive DocSearcher,
	chat ChatService,
	generator TextGenerator,
	attendees AttendeeService,
	snapshots SnapshotStore,
	chatIDs ChatIDCache,
	cfg *config.Config,
	logger *zap.Logger,
) Service {
	loc, err := time.LoadLocation(cfg.Meeting.Timezone)
	if err != nil {
		logger.Warn("invalid timezone, falling back to UTC",
			zap.String("timezone", cfg.Meeting.Timezone))
		loc = time.UTC
	}
	return &pipelineService{
		meetings:  meetings,
		items:     items,
		hearings:  hearings,
		agendas:   agendas,
		mappings:  mappings,
		archives:  archives,
		docs:      docs,
		drive:     drive,
		chat:      chat,
		generator: generator,
		attendees: attendees,
		snapshots: snapshots,
		chatIDs:   chatIDs,
		cfg:       cfg,
		logger:    logger,
		loc:       loc,
		now:       time.Now,
	}
}

// findMeeting locates the meeting the current run operates on. A title
// filter narrows the series when configured; when it matches nothing the
// latest meeting of the series is used instead.
func (s *pipelineService) findMeeting(ctx context.Context) (*entities.Meeting, error) {
	key := s.cfg.Meeting.Key
	if substr := s.cfg.Meeting.TitleContains; substr != "" {
		m, err := s.meetings.FindByTitleContains(ctx, substr, key)
		if err != nil {
			return nil, err
		}
		if m != nil {
			return m, nil
		}
	}
	m, err := s.meetings.GetLatestForKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, apperrors.ErrNotFound("meeting")
	}
	return m, nil
}

// channelFor resolves the chat channel for a meeting: the meeting row
// itself, then the per-series mapping, then the global default.
func (s *pipelineService) channelFor(ctx context.Context, m *entities.Meeting) (string, error) {
	if m.ChannelID != "" {
		return m.ChannelID, nil
	}
	ch, err := s.mappings.GetChannelForMeetingKey(ctx, m.MeetingKey)
	if err != nil {
		return "", err
	}
	if ch != "" {
		return ch, nil
	}
	if s.cfg.Slack.DefaultChannelID != "" {
		return s.cfg.Slack.DefaultChannelID, nil
	}
	return "", apperrors.ErrMissingConfiguration("chat channel")
}

// resolveChatID maps an email to a chat user id: cache, then the mappings
// table, then a directory lookup whose result is written back to both.
// Resolution failures degrade to an empty id; jobs fall back to the email.
func (s *pipelineService) resolveChatID(ctx context.Context, email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return ""
	}
	if s.chatIDs != nil {
		if id, err := s.chatIDs.GetChatID(ctx, email); err == nil && id != "" {
			return id
		}
	}
	if id, err := s.mappings.GetChatIDForEmail(ctx, email); err == nil && id != "" {
		s.cacheChatID(ctx, email, id)
		return id
	}
	if s.chat == nil || !s.chat.Configured() {
		return ""
	}
	id, err := s.chat.LookupUserIDByEmail(ctx, email)
	if err != nil {
		s.logger.Warn("directory lookup failed",
			zap.String("email", email), zap.Error(err))
		return ""
	}
	if id == "" {
		return ""
	}
	if err := s.mappings.SaveEmailMapping(ctx, &entities.Mapping{Email: email, ChatUserID: id}); err != nil {
		s.logger.Warn("failed to save email mapping",
			zap.String("email", email), zap.Error(err))
	}
	s.cacheChatID(ctx, email, id)
	return id
}

func (s *pipelineService) cacheChatID(ctx context.Context, email, id string) {
	if s.chatIDs == nil {
		return
	}
	if err := s.chatIDs.SetChatID(ctx, email, id); err != nil {
		s.logger.Warn("failed to cache chat id",
			zap.String("email", email), zap.Error(err))
	}
}

// resolveContactByName loosely matches a document person heading against
// the display names in the mappings table. Either side containing the
// other counts as a match; comparison is case-insensitive.
func (s *pipelineService) resolveContactByName(ctx context.Context, name string) *entities.Mapping {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil
	}
	rows, err := s.mappings.ListWithDisplayName(ctx)
	if err != nil {
		s.logger.Warn("failed to list contact mappings", zap.Error(err))
		return nil
	}
	for i := range rows {
		display := strings.ToLower(strings.TrimSpace(rows[i].DisplayName))
		if display == "" {
			continue
		}
		if strings.Contains(name, display) || strings.Contains(display, name) {
			return &rows[i]
		}
	}
	return nil
}

// mentionFor renders a participant reference for chat: a real mention
// when the id is known, the bare email otherwise.
func (s *pipelineService) mentionFor(ctx context.Context, email string) string {
	if id := s.resolveChatID(ctx, email); id != "" {
		return "<@" + id + ">"
	}
	return email
}

// today returns the current date in the configured meeting timezone.
func (s *pipelineService) today() time.Time {
	return s.now().In(s.loc)
}

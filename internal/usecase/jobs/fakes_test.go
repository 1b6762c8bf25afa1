package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-autopilot/internal/domain/entities"
	"github.com/johnquangdev/meeting-autopilot/internal/infrastructure/external/googleapi"
	"github.com/johnquangdev/meeting-autopilot/internal/infrastructure/external/slack"
	"github.com/johnquangdev/meeting-autopilot/pkg/config"
)

type fakeMeetingRepo struct {
	rows []*entities.Meeting
}

func (f *fakeMeetingRepo) Upsert(_ context.Context, m *entities.Meeting) error {
	for i, row := range f.rows {
		if row.MeetingID == m.MeetingID {
			f.rows[i] = m
			return nil
		}
	}
	f.rows = append(f.rows, m)
	return nil
}

func (f *fakeMeetingRepo) GetByID(_ context.Context, id string) (*entities.Meeting, error) {
	for _, row := range f.rows {
		if row.MeetingID == id {
			return row, nil
		}
	}
	return nil, nil
}

func (f *fakeMeetingRepo) GetLatestForKey(_ context.Context, key string) (*entities.Meeting, error) {
	var best *entities.Meeting
	for _, row := range f.rows {
		if row.MeetingKey != key {
			continue
		}
		if best == nil || row.Date > best.Date {
			best = row
		}
	}
	return best, nil
}

func (f *fakeMeetingRepo) FindByTitleContains(_ context.Context, substr, key string) (*entities.Meeting, error) {
	var best *entities.Meeting
	for _, row := range f.rows {
		if row.MeetingKey != key || !strings.Contains(row.Title, substr) {
			continue
		}
		if best == nil || row.Date > best.Date {
			best = row
		}
	}
	return best, nil
}

func (f *fakeMeetingRepo) GetPreviousBefore(_ context.Context, key, date string) (*entities.Meeting, error) {
	var best *entities.Meeting
	for _, row := range f.rows {
		if row.MeetingKey != key || row.Date >= date {
			continue
		}
		if best == nil || row.Date > best.Date {
			best = row
		}
	}
	return best, nil
}

func (f *fakeMeetingRepo) SetParentThreadTS(_ context.Context, id, ts string) error {
	for _, row := range f.rows {
		if row.MeetingID == id && (row.ParentThreadTS == "" || row.ParentThreadTS == ts) {
			row.ParentThreadTS = ts
		}
	}
	return nil
}

func (f *fakeMeetingRepo) LatestParentThread(_ context.Context) (*entities.Meeting, error) {
	var best *entities.Meeting
	for _, row := range f.rows {
		if row.ParentThreadTS == "" {
			continue
		}
		if best == nil || row.Date > best.Date {
			best = row
		}
	}
	return best, nil
}

type fakeItemRepo struct {
	rows map[string]*entities.ActionItem
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{rows: map[string]*entities.ActionItem{}}
}

func (f *fakeItemRepo) Upsert(_ context.Context, it *entities.ActionItem) error {
	f.rows[it.DedupeKey] = it
	return nil
}

func (f *fakeItemRepo) ListForMeeting(_ context.Context, meetingID string) ([]entities.ActionItem, error) {
	var out []entities.ActionItem
	for _, it := range f.rows {
		if it.MeetingID == meetingID {
			out = append(out, *it)
		}
	}
	return out, nil
}

type fakeHearingRepo struct {
	prompts   map[string]*entities.HearingPrompt
	responses map[string]*entities.HearingResponse
}

func newFakeHearingRepo() *fakeHearingRepo {
	return &fakeHearingRepo{
		prompts:   map[string]*entities.HearingPrompt{},
		responses: map[string]*entities.HearingResponse{},
	}
}

func (f *fakeHearingRepo) UpsertPrompt(_ context.Context, p *entities.HearingPrompt) error {
	f.prompts[p.MeetingID+"|"+p.AssigneeChatID] = p
	return nil
}

func (f *fakeHearingRepo) ListPrompts(_ context.Context, meetingID string) ([]entities.HearingPrompt, error) {
	var out []entities.HearingPrompt
	for _, p := range f.prompts {
		if p.MeetingID == meetingID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeHearingRepo) UpsertResponse(_ context.Context, r *entities.HearingResponse) error {
	f.responses[r.MeetingID+"|"+r.AssigneeChatID+"|"+r.ReplyTS] = r
	return nil
}

func (f *fakeHearingRepo) ListResponses(_ context.Context, meetingID string) ([]entities.HearingResponse, error) {
	var out []entities.HearingResponse
	for _, r := range f.responses {
		if r.MeetingID == meetingID {
			out = append(out, *r)
		}
	}
	return out, nil
}

type fakeAgendaRepo struct {
	rows map[string]*entities.Agenda
}

func newFakeAgendaRepo() *fakeAgendaRepo {
	return &fakeAgendaRepo{rows: map[string]*entities.Agenda{}}
}

func (f *fakeAgendaRepo) Upsert(_ context.Context, a *entities.Agenda) error {
	cp := *a
	f.rows[a.MeetingID+"|"+a.ThreadTS] = &cp
	return nil
}

func (f *fakeAgendaRepo) GetForThread(_ context.Context, meetingID, threadTS string) (*entities.Agenda, error) {
	a, ok := f.rows[meetingID+"|"+threadTS]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAgendaRepo) SetPostedTS(_ context.Context, meetingID, threadTS, postedTS string) error {
	if a, ok := f.rows[meetingID+"|"+threadTS]; ok {
		a.PostedTS = postedTS
	}
	return nil
}

type fakeMappingRepo struct {
	byEmail  map[string]string
	channels map[string]string
	contacts []entities.Mapping
	saved    []entities.Mapping
}

func newFakeMappingRepo() *fakeMappingRepo {
	return &fakeMappingRepo{
		byEmail:  map[string]string{},
		channels: map[string]string{},
	}
}

func (f *fakeMappingRepo) SaveEmailMapping(_ context.Context, m *entities.Mapping) error {
	f.byEmail[m.Email] = m.ChatUserID
	f.saved = append(f.saved, *m)
	return nil
}

func (f *fakeMappingRepo) GetChatIDForEmail(_ context.Context, email string) (string, error) {
	return f.byEmail[email], nil
}

func (f *fakeMappingRepo) GetChannelForMeetingKey(_ context.Context, key string) (string, error) {
	return f.channels[key], nil
}

func (f *fakeMappingRepo) ListWithDisplayName(_ context.Context) ([]entities.Mapping, error) {
	return f.contacts, nil
}

type fakeArchiveRepo struct {
	rows map[string]*entities.Archive
}

func newFakeArchiveRepo() *fakeArchiveRepo {
	return &fakeArchiveRepo{rows: map[string]*entities.Archive{}}
}

func (f *fakeArchiveRepo) Upsert(_ context.Context, a *entities.Archive) error {
	f.rows[a.MeetingID] = a
	return nil
}

func (f *fakeArchiveRepo) GetByMeetingID(_ context.Context, meetingID string) (*entities.Archive, error) {
	return f.rows[meetingID], nil
}

type postedMessage struct {
	Channel  string
	Text     string
	ThreadTS string
}

type fakeChat struct {
	posted    []postedMessage
	nextTS    string
	lookups   map[string]string
	replies   []slack.Message
	postErr   error
	replyErr  error
	lookupErr error
}

func newFakeChat() *fakeChat {
	return &fakeChat{nextTS: "200.000001", lookups: map[string]string{}}
}

func (f *fakeChat) Configured() bool { return true }

func (f *fakeChat) PostMessage(_ context.Context, channel, text, threadTS string) (string, error) {
	if f.postErr != nil {
		return "", f.postErr
	}
	f.posted = append(f.posted, postedMessage{Channel: channel, Text: text, ThreadTS: threadTS})
	return f.nextTS, nil
}

func (f *fakeChat) LookupUserIDByEmail(_ context.Context, email string) (string, error) {
	if f.lookupErr != nil {
		return "", f.lookupErr
	}
	return f.lookups[email], nil
}

func (f *fakeChat) FetchThreadReplies(_ context.Context, _, _ string) ([]slack.Message, error) {
	if f.replyErr != nil {
		return nil, f.replyErr
	}
	return f.replies, nil
}

type fakeDocs struct {
	docs map[string]*entities.RawDocument
}

func newFakeDocs() *fakeDocs {
	return &fakeDocs{docs: map[string]*entities.RawDocument{}}
}

func (f *fakeDocs) FetchDocument(_ context.Context, docID string) (*entities.RawDocument, error) {
	doc, ok := f.docs[docID]
	if !ok {
		return nil, fmt.Errorf("document %s not found", docID)
	}
	return doc, nil
}

// addDoc registers a document whose body is one paragraph per line.
func (f *fakeDocs) addDoc(id, title string, lines ...string) {
	doc := &entities.RawDocument{ID: id, Title: title}
	for _, line := range lines {
		doc.Body = append(doc.Body, entities.DocNode{
			Paragraph: &entities.ParagraphNode{Runs: []string{line + "\n"}},
		})
	}
	f.docs[id] = doc
}

type driveCall struct {
	FolderID string
	Terms    []string
}

type fakeDrive struct {
	calls   []driveCall
	results map[string]*googleapi.DocRef
}

func newFakeDrive() *fakeDrive {
	return &fakeDrive{results: map[string]*googleapi.DocRef{}}
}

func (f *fakeDrive) SearchLatestDoc(_ context.Context, folderID string, terms ...string) (*googleapi.DocRef, error) {
	f.calls = append(f.calls, driveCall{FolderID: folderID, Terms: terms})
	return f.results[strings.Join(terms, "|")], nil
}

type fakeGenerator struct {
	out     string
	err     error
	prompts []string
	systems []string
}

func (f *fakeGenerator) GenerateMarkdown(_ context.Context, prompt, system string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.systems = append(f.systems, system)
	return f.out, f.err
}

type fakeAttendees struct {
	emails []string
	err    error
}

func (f *fakeAttendees) FetchAttendeesForDate(_ context.Context, _, _ string) ([]string, error) {
	return f.emails, f.err
}

type fakeSnapshots struct {
	objects map[string]string
}

func newFakeSnapshots() *fakeSnapshots {
	return &fakeSnapshots{objects: map[string]string{}}
}

func (f *fakeSnapshots) PutSnapshot(_ context.Context, objectKey, body string) error {
	f.objects[objectKey] = body
	return nil
}

type fakeChatIDCache struct {
	values map[string]string
	sets   int
}

func newFakeChatIDCache() *fakeChatIDCache {
	return &fakeChatIDCache{values: map[string]string{}}
}

func (f *fakeChatIDCache) GetChatID(_ context.Context, email string) (string, error) {
	return f.values[email], nil
}

func (f *fakeChatIDCache) SetChatID(_ context.Context, email, chatID string) error {
	f.values[email] = chatID
	f.sets++
	return nil
}

// testEnv bundles one service instance with every fake it talks to.
type testEnv struct {
	svc       *pipelineService
	meetings  *fakeMeetingRepo
	items     *fakeItemRepo
	hearings  *fakeHearingRepo
	agendas   *fakeAgendaRepo
	mappings  *fakeMappingRepo
	archives  *fakeArchiveRepo
	docs      *fakeDocs
	drive     *fakeDrive
	chat      *fakeChat
	generator *fakeGenerator
	attendees *fakeAttendees
	snapshots *fakeSnapshots
	cache     *fakeChatIDCache
	cfg       *config.Config
}

func newTestEnv() *testEnv {
	env := &testEnv{
		meetings:  &fakeMeetingRepo{},
		items:     newFakeItemRepo(),
		hearings:  newFakeHearingRepo(),
		agendas:   newFakeAgendaRepo(),
		mappings:  newFakeMappingRepo(),
		archives:  newFakeArchiveRepo(),
		docs:      newFakeDocs(),
		drive:     newFakeDrive(),
		chat:      newFakeChat(),
		generator: &fakeGenerator{},
		attendees: &fakeAttendees{},
		snapshots: newFakeSnapshots(),
		cache:     newFakeChatIDCache(),
		cfg: &config.Config{
			Meeting: config.MeetingConfig{
				Key:            "weekly-sync",
				Timezone:       "UTC",
				ReplyDueDays:   1,
				PromptTruncate: 8000,
			},
			Slack: config.SlackConfig{DefaultChannelID: "C-DEFAULT"},
			Google: config.GoogleConfig{
				DriveFolderID: "folder-1",
			},
		},
	}
	svc := NewService(
		env.meetings, env.items, env.hearings, env.agendas, env.mappings, env.archives,
		env.docs, env.drive, env.chat, env.generator, env.attendees, env.snapshots,
		env.cache, env.cfg, zap.NewNop(),
	).(*pipelineService)
	svc.now = func() time.Time {
		return time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	}
	env.svc = svc
	return env
}

func (e *testEnv) addMeeting(m *entities.Meeting) *entities.Meeting {
	if m.MeetingKey == "" {
		m.MeetingKey = e.cfg.Meeting.Key
	}
	e.meetings.rows = append(e.meetings.rows, m)
	return m
}

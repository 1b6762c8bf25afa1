package jobs

import (
	"context"
	"testing"

	"github.com/johnquangdev/meeting-autopilot/internal/infrastructure/external/googleapi"
)

func TestIngestDocumentUpsertsMeetingFromLatestDoc(t *testing.T) {
	env := newTestEnv()
	env.cfg.Meeting.TitleContains = "定例"
	env.drive.results["定例"] = &googleapi.DocRef{
		ID: "doc-9", Name: "週次定例 2025-01-10", ModifiedTime: "2025-01-10T08:30:00+09:00",
	}
	env.docs.addDoc("doc-9", "週次定例 2025-01-10", "本文")
	env.attendees.emails = []string{"alice@example.com", "bob@example.com"}

	if err := env.svc.IngestDocument(context.Background()); err != nil {
		t.Fatalf("IngestDocument: %v", err)
	}

	m, _ := env.meetings.GetByID(context.Background(), "doc-9")
	if m == nil {
		t.Fatal("meeting was not stored")
	}
	if m.MeetingKey != "weekly-sync" {
		t.Errorf("meeting_key = %q", m.MeetingKey)
	}
	// 2025-01-10 08:30 JST falls on 2025-01-09 in UTC
	if m.Date != "2025-01-09" {
		t.Errorf("date = %q, want 2025-01-09", m.Date)
	}
	if m.DocID != "doc-9" || m.Title != "週次定例 2025-01-10" {
		t.Errorf("doc ref not carried: %+v", m)
	}
	if m.ParticipantEmails != "alice@example.com,bob@example.com" {
		t.Errorf("participants = %q", m.ParticipantEmails)
	}
}

func TestIngestDocumentRelaxesTitleFilter(t *testing.T) {
	env := newTestEnv()
	env.cfg.Meeting.TitleContains = "定例"
	env.drive.results[""] = &googleapi.DocRef{
		ID: "doc-any", Name: "メモ", ModifiedTime: "2025-01-08T10:00:00Z",
	}
	env.docs.addDoc("doc-any", "メモ", "本文")

	if err := env.svc.IngestDocument(context.Background()); err != nil {
		t.Fatalf("IngestDocument: %v", err)
	}

	if len(env.drive.calls) != 2 {
		t.Fatalf("drive searched %d times, want filtered then relaxed", len(env.drive.calls))
	}
	if len(env.drive.calls[0].Terms) != 1 || env.drive.calls[0].Terms[0] != "定例" {
		t.Errorf("first search terms = %v", env.drive.calls[0].Terms)
	}
	if len(env.drive.calls[1].Terms) != 0 {
		t.Errorf("relaxed search terms = %v", env.drive.calls[1].Terms)
	}
	if m, _ := env.meetings.GetByID(context.Background(), "doc-any"); m == nil {
		t.Fatal("meeting was not stored after relaxed search")
	}
}

func TestIngestDocumentFailsWithoutFolder(t *testing.T) {
	env := newTestEnv()
	env.cfg.Google.DriveFolderID = ""

	if err := env.svc.IngestDocument(context.Background()); err == nil {
		t.Fatal("expected configuration error")
	}
}

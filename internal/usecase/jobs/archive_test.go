package jobs

import (
	"context"
	"strings"
	"testing"

	"github.com/johnquangdev/meeting-autopilot/internal/domain/entities"
)

func TestArchiveNotesSnapshotsDocumentText(t *testing.T) {
	env := newTestEnv()
	env.addMeeting(&entities.Meeting{
		MeetingID: "doc-1", Date: "2025-01-10", Title: "週次定例", DocID: "doc-1",
	})
	env.docs.addDoc("doc-1", "週次定例", "決定事項", "- リリースは金曜")

	if err := env.svc.ArchiveNotes(context.Background()); err != nil {
		t.Fatalf("ArchiveNotes: %v", err)
	}

	wantKey := "snapshots/weekly-sync/2025-01-10-doc-1.txt"
	body, ok := env.snapshots.objects[wantKey]
	if !ok {
		t.Fatalf("snapshot not stored, objects: %v", env.snapshots.objects)
	}
	if !strings.Contains(body, "リリースは金曜") {
		t.Errorf("snapshot body missing text:\n%s", body)
	}

	row, _ := env.archives.GetByMeetingID(context.Background(), "doc-1")
	if row == nil {
		t.Fatal("archive row not stored")
	}
	if row.ObjectKey != wantKey {
		t.Errorf("object_key = %q, want %q", row.ObjectKey, wantKey)
	}
	if row.Chars == 0 {
		t.Errorf("chars = 0, want flattened length")
	}
	if row.Title != "週次定例" || row.DocID != "doc-1" {
		t.Errorf("doc metadata not carried: %+v", row)
	}
}

func TestArchiveNotesFailsWithoutDocID(t *testing.T) {
	env := newTestEnv()
	env.addMeeting(&entities.Meeting{MeetingID: "m-1", Date: "2025-01-10"})

	if err := env.svc.ArchiveNotes(context.Background()); err == nil {
		t.Fatal("expected error when the meeting has no document")
	}
}

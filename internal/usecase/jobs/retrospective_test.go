package jobs

import (
	"context"
	"strings"
	"testing"

	"github.com/johnquangdev/meeting-autopilot/internal/domain/entities"
)

func TestPostRetrospectivePostsOpenItemsAndAnchorsThread(t *testing.T) {
	env := newTestEnv()
	m := env.addMeeting(&entities.Meeting{MeetingID: "doc-1", Date: "2025-01-10", Title: "週次"})

	open := entities.NewActionItem("2025-01-10", "doc-1", "設計レビュー", "alice@example.com")
	open.AssigneeChatID = "U111"
	open.Due = "2025-01-15"
	done := entities.NewActionItem("2025-01-10", "doc-1", "済みタスク", "bob@example.com")
	done.Status = entities.ActionItemStatusDone
	env.items.rows[open.DedupeKey] = open
	env.items.rows[done.DedupeKey] = done

	if err := env.svc.PostRetrospective(context.Background()); err != nil {
		t.Fatalf("PostRetrospective: %v", err)
	}

	if len(env.chat.posted) != 1 {
		t.Fatalf("posted %d messages, want 1", len(env.chat.posted))
	}
	msg := env.chat.posted[0]
	if msg.Channel != "C-DEFAULT" {
		t.Errorf("channel = %q, want default", msg.Channel)
	}
	if msg.ThreadTS != "" {
		t.Errorf("retrospective must open a thread, got thread_ts %q", msg.ThreadTS)
	}
	if !strings.Contains(msg.Text, "<@U111> : 設計レビュー (due: 2025-01-15)") {
		t.Errorf("open item missing from post:\n%s", msg.Text)
	}
	if strings.Contains(msg.Text, "済みタスク") {
		t.Errorf("done item leaked into post:\n%s", msg.Text)
	}
	if m.ParentThreadTS != "200.000001" {
		t.Errorf("parent thread ts = %q, want post ts", m.ParentThreadTS)
	}
}

func TestPostRetrospectiveSkipsWhenThreadExists(t *testing.T) {
	env := newTestEnv()
	env.addMeeting(&entities.Meeting{MeetingID: "doc-1", Date: "2025-01-10", ParentThreadTS: "100.5"})

	if err := env.svc.PostRetrospective(context.Background()); err != nil {
		t.Fatalf("PostRetrospective: %v", err)
	}
	if len(env.chat.posted) != 0 {
		t.Fatalf("posted %d messages, want none", len(env.chat.posted))
	}
}

func TestPostRetrospectivePrefersTitleFilter(t *testing.T) {
	env := newTestEnv()
	env.cfg.Meeting.TitleContains = "定例"
	env.addMeeting(&entities.Meeting{MeetingID: "doc-new", Date: "2025-01-10", Title: "別の会"})
	target := env.addMeeting(&entities.Meeting{MeetingID: "doc-old", Date: "2025-01-03", Title: "週次定例"})

	if err := env.svc.PostRetrospective(context.Background()); err != nil {
		t.Fatalf("PostRetrospective: %v", err)
	}
	if target.ParentThreadTS == "" {
		t.Errorf("title-matching meeting was not anchored")
	}
}

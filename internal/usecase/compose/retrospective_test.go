package compose

import (
	"strings"
	"testing"

	"github.com/johnquangdev/meeting-autopilot/internal/domain/entities"
)

func TestFormatRetrospectivePostGroupsByAssignee(t *testing.T) {
	items := []entities.ActionItem{
		{Task: "fix bug", AssigneeChatID: "U123", Due: "2025-01-10"},
		{Task: "write tests", AssigneeEmail: "bob@example.com"},
		{Task: "deploy", AssigneeChatID: "U123"},
		{Task: "triage"},
	}
	got := FormatRetrospectivePost(items)
	lines := strings.Split(got, "\n")
	if lines[0] != "今週の振り返り & NextAction" {
		t.Fatalf("bad header: %q", lines[0])
	}
	// Grouping keeps both U123 tasks adjacent.
	if lines[1] != "- <@U123> : fix bug (due: 2025-01-10)" || lines[2] != "- <@U123> : deploy" {
		t.Fatalf("chat-id group wrong: %q / %q", lines[1], lines[2])
	}
	if lines[3] != "- bob@example.com : write tests" {
		t.Fatalf("email fallback wrong: %q", lines[3])
	}
	if lines[4] != "- Unassigned : triage" {
		t.Fatalf("unassigned fallback wrong: %q", lines[4])
	}
}

func TestBuildHearingMessage(t *testing.T) {
	got := BuildHearingMessage([]string{"<@U1>", "bob@example.com"})
	if !strings.HasPrefix(got, "<@U1> bob@example.com\n") {
		t.Fatalf("mentions not on first line: %q", got)
	}
	for _, want := range []string{"1. 前回ToDoの状況", "2. 今回の報告", "3. ブロッカー/依頼", "4. リンク"} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

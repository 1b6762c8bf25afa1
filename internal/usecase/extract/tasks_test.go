package extract

import (
	"strings"
	"testing"
)

func TestParseTaskLineLabeledDueWins(t *testing.T) {
	got := ParseTaskLine("- [ ] prepare report due: 2025-01-10 (kickoff was 2025-02-01)")
	if got.Due != "2025-01-10" {
		t.Fatalf("due %q", got.Due)
	}
}

func TestParseTaskLineBareDateFallback(t *testing.T) {
	got := ParseTaskLine("- follow up by 2025-02-01")
	if got.Due != "2025-02-01" {
		t.Fatalf("due %q", got.Due)
	}
}

func TestParseTaskLineAssigneeHintWinsOverBareEmail(t *testing.T) {
	got := ParseTaskLine("- sync notes cc b@x.com 担当: a@x.com")
	if got.AssigneeEmail != "a@x.com" {
		t.Fatalf("assignee %q", got.AssigneeEmail)
	}
}

func TestParseTaskLineEmailLowercased(t *testing.T) {
	got := ParseTaskLine("- do thing Alice@X.COM")
	if got.AssigneeEmail != "alice@x.com" {
		t.Fatalf("assignee %q", got.AssigneeEmail)
	}
}

func TestParseTaskLineLinksJoined(t *testing.T) {
	got := ParseTaskLine("- read https://a.example/one and https://a.example/two")
	if got.Links != "https://a.example/one,https://a.example/two" {
		t.Fatalf("links %q", got.Links)
	}
}

func TestParseTaskLineKeepsTaskWithoutAnyFields(t *testing.T) {
	got := ParseTaskLine("- [x] just a bare task")
	if got.Task != "just a bare task" || got.AssigneeEmail != "" || got.Due != "" || got.Links != "" {
		t.Fatalf("got %#v", got)
	}
}

func TestParseActionsCheckboxAlwaysAccepted(t *testing.T) {
	got := ParseActions("- [ ] fix login bug\n")
	if len(got) != 1 || got[0].Task != "fix login bug" {
		t.Fatalf("got %#v", got)
	}
}

func TestParseActionsNoisePolicy(t *testing.T) {
	// A plain bullet with no checkbox and no assignee is probable prose.
	got := ParseActions("- we discussed many things\n")
	if len(got) != 0 {
		t.Fatalf("noise accepted: %#v", got)
	}
}

func TestParseActionsHeadingMode(t *testing.T) {
	text := strings.Join([]string{
		"Next Action",
		"- draft proposal",
		"- review budget",
		"unrelated prose resets the mode",
		"- dropped after reset",
	}, "\n")
	got := ParseActions(text)
	if len(got) != 2 {
		t.Fatalf("expected 2 tasks, got %#v", got)
	}
	if got[0].Task != "draft proposal" || got[1].Task != "review budget" {
		t.Fatalf("got %#v", got)
	}
}

func TestParseActionsHeadingWithTrailingPunctuation(t *testing.T) {
	got := ParseActions("TODO:\n- draft proposal\n")
	if len(got) != 1 || got[0].Task != "draft proposal" {
		t.Fatalf("got %#v", got)
	}
	got = ParseActions("次アクション：\n- 負荷試験の準備\n")
	if len(got) != 1 || got[0].Task != "負荷試験の準備" {
		t.Fatalf("got %#v", got)
	}
	// a keyword embedded in a longer word is not a heading
	got = ParseActions("todotori\n- not a task\n")
	if len(got) != 0 {
		t.Fatalf("got %#v", got)
	}
}

func TestParseActionsBulletWithOwner(t *testing.T) {
	got := ParseActions("- ship release assignee: rel@x.com\n")
	if len(got) != 1 || got[0].AssigneeEmail != "rel@x.com" {
		t.Fatalf("got %#v", got)
	}
}

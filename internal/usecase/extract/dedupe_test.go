package extract

import (
	"testing"

	"github.com/johnquangdev/meeting-autopilot/internal/domain/entities"
)

func TestDedupeBulletsFirstSeenOrderAndCasing(t *testing.T) {
	got := DedupeBullets([]string{"Fix Bug", "review docs", "  fix bug ", "Review Docs", "ship it"})
	want := []string{"Fix Bug", "review docs", "ship it"}
	if len(got) != len(want) {
		t.Fatalf("got %#v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("at %d: got %q want %q", i, got[i], want[i])
		}
	}
}

func TestParseChatTS(t *testing.T) {
	if ParseChatTS("1234567890.123456") == 0 {
		t.Fatalf("valid timestamp parsed to 0")
	}
	if ParseChatTS("not-a-ts") != 0 {
		t.Fatalf("invalid timestamp must parse to 0")
	}
}

func TestLatestResponses(t *testing.T) {
	rows := []entities.HearingResponse{
		{AssigneeChatID: "U1", ReplyTS: "100.5", Reports: "old"},
		{AssigneeChatID: "U1", ReplyTS: "200.1", Reports: "new"},
		{AssigneeChatID: "U2", ReplyTS: "garbage", Reports: "only"},
	}
	got := LatestResponses(rows)
	if got["U1"].Reports != "new" {
		t.Fatalf("U1 latest %q", got["U1"].Reports)
	}
	if got["U2"].Reports != "only" {
		t.Fatalf("U2 missing: %#v", got)
	}
}

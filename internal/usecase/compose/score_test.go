package compose

import (
	"testing"
	"time"

	"github.com/johnquangdev/meeting-autopilot/internal/domain/entities"
)

var scoreToday = time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)

func dueIn(days int) string {
	return scoreToday.AddDate(0, 0, days).Format("2006-01-02")
}

func TestScoreItemOrdering(t *testing.T) {
	soon := entities.ActionItem{Task: "a", Due: dueIn(2), Status: "pending"}
	later := entities.ActionItem{Task: "b", Due: dueIn(10), Status: "pending"}
	noDue := entities.ActionItem{Task: "c", Status: "pending"}

	ss, sl, sn := ScoreItem(soon, scoreToday), ScoreItem(later, scoreToday), ScoreItem(noDue, scoreToday)
	if !(ss > sl && sl > sn) {
		t.Fatalf("want soon > later > noDue, got %d %d %d", ss, sl, sn)
	}
}

func TestScoreItemValues(t *testing.T) {
	cases := []struct {
		item entities.ActionItem
		want int
	}{
		{entities.ActionItem{Due: dueIn(0), Status: "pending"}, 40},
		{entities.ActionItem{Due: dueIn(30), Status: "pending"}, 10},
		{entities.ActionItem{Due: dueIn(45), Status: "pending"}, 10},
		{entities.ActionItem{Due: dueIn(-3), Status: "pending"}, 40},
		{entities.ActionItem{Due: "not-a-date", Status: "pending"}, 15},
		{entities.ActionItem{Status: "pending"}, 15},
		{entities.ActionItem{Due: dueIn(0), Status: "done"}, 30},
	}
	for i, c := range cases {
		if got := ScoreItem(c.item, scoreToday); got != c.want {
			t.Errorf("case %d: got %d want %d", i, got, c.want)
		}
	}
}

func TestRankOpenItemsTopThreeStable(t *testing.T) {
	items := []entities.ActionItem{
		{Task: "done one", Due: dueIn(0), Status: "done"},
		{Task: "first tie", Status: "pending"},
		{Task: "second tie", Status: "pending"},
		{Task: "urgent", Due: dueIn(1), Status: "pending"},
		{Task: "soonish", Due: dueIn(5), Status: "pending"},
	}
	got := RankOpenItems(items, scoreToday)
	if len(got) != 3 {
		t.Fatalf("want 3 items, got %d", len(got))
	}
	if got[0].Task != "urgent" || got[1].Task != "soonish" {
		t.Fatalf("ranking wrong: %q %q", got[0].Task, got[1].Task)
	}
	if got[2].Task != "first tie" {
		t.Fatalf("tie must keep original order, got %q", got[2].Task)
	}
	for _, it := range got {
		if it.Status == "done" {
			t.Fatalf("done item leaked into ranking")
		}
	}
}

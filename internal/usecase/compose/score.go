// Package compose builds the text artifacts the pipeline posts to chat:
// the retrospective summary, the hearing prompt, and the agenda in both
// template and model-generated form.
package compose

import (
	"sort"
	"time"

	"github.com/johnquangdev/meeting-autopilot/internal/domain/entities"
)

const topItemCount = 3

// ScoreItem ranks an action item for the agenda. Items due sooner score
// higher, capped at 30; anything not done gets +10; a missing or
// unparseable due date contributes a flat +5 instead of the date term.
func ScoreItem(it entities.ActionItem, today time.Time) int {
	score := 0
	if it.Due == "" {
		score += 5
	} else if due, err := time.Parse("2006-01-02", it.Due); err != nil {
		score += 5
	} else {
		base := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
		days := int(due.Sub(base).Hours() / 24)
		score += max30(days)
	}
	if it.IsOpen() {
		score += 10
	}
	return score
}

func max30(daysUntilDue int) int {
	if daysUntilDue < 0 {
		daysUntilDue = 0
	}
	if daysUntilDue > 30 {
		daysUntilDue = 30
	}
	return 30 - daysUntilDue
}

// RankOpenItems filters out done items and returns the top-scored ones,
// at most topItemCount. Ties keep their original order.
func RankOpenItems(items []entities.ActionItem, today time.Time) []entities.ActionItem {
	open := make([]entities.ActionItem, 0, len(items))
	for _, it := range items {
		if it.IsOpen() {
			open = append(open, it)
		}
	}
	sort.SliceStable(open, func(i, j int) bool {
		return ScoreItem(open[i], today) > ScoreItem(open[j], today)
	})
	if len(open) > topItemCount {
		open = open[:topItemCount]
	}
	return open
}

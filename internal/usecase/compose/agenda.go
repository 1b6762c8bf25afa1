package compose

import (
	"fmt"
	"strings"
	"time"

	"github.com/johnquangdev/meeting-autopilot/internal/domain/entities"
	"github.com/johnquangdev/meeting-autopilot/internal/usecase/extract"
)

const (
	highlightLineMax = 80
	blockerLineMax   = 120
)

// UserSummary is one participant's condensed hearing status.
type UserSummary struct {
	ChatID  string
	Summary string
}

// Blocker is a single blocker line attributed to a participant.
type Blocker struct {
	ChatID string
	Line   string
}

// SummarizeResponses condenses each participant's latest hearing reply
// into one line: first line of the report plus, if present, the first
// blocker line. Participants who replied with nothing get "(更新なし)".
func SummarizeResponses(responses []entities.HearingResponse) []UserSummary {
	latest := extract.LatestResponses(responses)
	order := make([]string, 0, len(latest))
	seen := map[string]bool{}
	for _, r := range responses {
		if !seen[r.AssigneeChatID] {
			seen[r.AssigneeChatID] = true
			order = append(order, r.AssigneeChatID)
		}
	}
	out := make([]UserSummary, 0, len(order))
	for _, uid := range order {
		r := latest[uid]
		var parts []string
		if r.Reports != "" {
			parts = append(parts, capRunes(firstLine(r.Reports), highlightLineMax))
		}
		if r.Blockers != "" {
			parts = append(parts, "ブロッカー: "+capRunes(firstLine(r.Blockers), highlightLineMax))
		}
		summary := "(更新なし)"
		if len(parts) > 0 {
			summary = strings.Join(parts, " / ")
		}
		out = append(out, UserSummary{ChatID: uid, Summary: summary})
	}
	return out
}

// CollectBlockers gathers every non-empty blocker across all replies,
// not just the latest per user, so nothing raised gets lost.
func CollectBlockers(responses []entities.HearingResponse) []Blocker {
	var out []Blocker
	for _, r := range responses {
		if r.Blockers != "" {
			out = append(out, Blocker{ChatID: r.AssigneeChatID, Line: capRunes(firstLine(r.Blockers), blockerLineMax)})
		}
	}
	return out
}

// ComposeAgenda renders the template agenda: top open items, per-person
// highlights and the blocker list, threaded below the retrospective post.
func ComposeAgenda(meetingDate string, items []entities.ActionItem, responses []entities.HearingResponse, today time.Time) string {
	top := RankOpenItems(items, today)
	summaries := SummarizeResponses(responses)
	blockers := CollectBlockers(responses)

	var b strings.Builder
	fmt.Fprintf(&b, "# 合体アジェンダ (%s)\n\n## Top3\n", meetingDate)
	for _, it := range top {
		line := "- " + mention(it.AssigneeChatID, it.AssigneeEmail) + " : " + it.Task
		if it.Due != "" {
			line += " (due: " + it.Due + ")"
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n## 人別ハイライト\n")
	for _, s := range summaries {
		b.WriteString("- " + mentionOrUnknown(s.ChatID) + ": " + s.Summary + "\n")
	}

	b.WriteString("\n## ブロッカー/依頼\n")
	if len(blockers) == 0 {
		b.WriteString("- なし\n")
	} else {
		for _, bl := range blockers {
			b.WriteString("- " + mentionOrUnknown(bl.ChatID) + ": " + bl.Line + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func mention(chatID, email string) string {
	switch {
	case chatID != "":
		return "<@" + chatID + ">"
	case email != "":
		return email
	default:
		return "Unassigned"
	}
}

func mentionOrUnknown(chatID string) string {
	if chatID == "" {
		return "Unknown"
	}
	return "<@" + chatID + ">"
}

func firstLine(s string) string {
	for _, ln := range strings.Split(s, "\n") {
		if strings.TrimSpace(ln) != "" {
			return strings.TrimSpace(ln)
		}
	}
	return ""
}

func capRunes(s string, n int) string {
	if r := []rune(s); len(r) > n {
		return string(r[:n])
	}
	return s
}

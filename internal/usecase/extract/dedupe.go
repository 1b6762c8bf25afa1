package extract

import (
	"strconv"
	"strings"

	"github.com/johnquangdev/meeting-autopilot/internal/domain/entities"
)

// DedupeBullets collapses repeated bullets, comparing by trimmed
// lowercased form. Output order equals first-seen order and the first
// occurrence's original casing is retained.
func DedupeBullets(bullets []string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, b := range bullets {
		key := strings.ToLower(strings.TrimSpace(b))
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, strings.TrimSpace(b))
	}
	return out
}

// ParseChatTS converts a chat timestamp like "1234567890.123456" to a
// float. Anything unparseable becomes 0, sorting as "oldest" rather than
// breaking the fold.
func ParseChatTS(ts string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(ts), 64)
	if err != nil {
		return 0
	}
	return f
}

// LatestResponses folds hearing responses down to the single latest reply
// per user, resolved by maximum numeric timestamp.
func LatestResponses(rows []entities.HearingResponse) map[string]entities.HearingResponse {
	latest := map[string]entities.HearingResponse{}
	for _, r := range rows {
		prev, ok := latest[r.AssigneeChatID]
		if !ok || ParseChatTS(r.ReplyTS) > ParseChatTS(prev.ReplyTS) {
			latest[r.AssigneeChatID] = r
		}
	}
	return latest
}

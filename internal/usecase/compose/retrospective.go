package compose

import (
	"strings"

	"github.com/johnquangdev/meeting-autopilot/internal/domain/entities"
)

// FormatRetrospectivePost renders the first post of a meeting thread:
// open action items grouped by assignee. The message anchors the thread
// that hearing prompts and the agenda reply to later.
func FormatRetrospectivePost(items []entities.ActionItem) string {
	type group struct {
		key   string
		items []entities.ActionItem
	}
	var groups []group
	index := map[string]int{}
	for _, it := range items {
		key := it.AssigneeChatID
		if key == "" {
			key = it.AssigneeEmail
		}
		if key == "" {
			key = "Unassigned"
		}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, group{key: key})
		}
		groups[i].items = append(groups[i].items, it)
	}

	lines := []string{"今週の振り返り & NextAction"}
	for _, g := range groups {
		name := "Unassigned"
		switch {
		case strings.HasPrefix(g.key, "U") && g.key != "Unassigned":
			name = "<@" + g.key + ">"
		case strings.Contains(g.key, "@"):
			name = g.key
		}
		for _, t := range g.items {
			line := "- " + name + " : " + t.Task
			if t.Due != "" {
				line += " (due: " + t.Due + ")"
			}
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

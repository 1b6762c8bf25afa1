package extract

import (
	"regexp"
	"strings"
)

// TaskFields is the parsed shape of one candidate task line. Task is
// always populated; the other fields are best-effort.
type TaskFields struct {
	Task          string
	AssigneeEmail string
	Due           string
	Links         string
}

var (
	checkboxRe        = regexp.MustCompile(`^\s*[-*・]?\s*\[(?: |x|X)?\]\s*`)
	bulletRe          = regexp.MustCompile(`^[-*・]\s*`)
	emailRe           = regexp.MustCompile(`([A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,})`)
	bareDateRe        = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`)
	dueLabelRe        = regexp.MustCompile(`(?:期限|due)[:：]?\s*(\d{4}-\d{2}-\d{2})`)
	urlRe             = regexp.MustCompile(`https?://\S+`)
	assigneeHintRe    = regexp.MustCompile(`(?:担当|assignee)\s*[:：]\s*(\S+@\S+)`)
	// word boundaries spelled out since \b in regexp is ASCII-only and
	// would miss the Japanese headings
	actionHeadingRe   = regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}_])(todo|to\s*do|next\s*action|次アクション|アクション)(?:[^\p{L}\p{N}_]|$)`)
	bulletWithOwnerRe = regexp.MustCompile(`^\s*[-*]\s*(.+?)(?:\s+(?:担当|assignee)\s*[:：]\s*\S+@\S+|\s+\S+@\S+)\s*$`)
)

// ParseTaskLine extracts task text, assignee, due date and links from one
// candidate line. Each extraction is independently optional: the labeled
// form wins over the bare form, and absence of a match never discards the
// task text itself.
func ParseTaskLine(raw string) TaskFields {
	line := checkboxRe.ReplaceAllString(strings.TrimSpace(raw), "")
	line = bulletRe.ReplaceAllString(line, "")

	var email string
	if m := assigneeHintRe.FindStringSubmatch(raw); m != nil {
		email = m[1]
	} else if m := emailRe.FindStringSubmatch(raw); m != nil {
		email = m[1]
	}

	var due string
	if m := dueLabelRe.FindStringSubmatch(raw); m != nil {
		due = m[1]
	} else if m := bareDateRe.FindStringSubmatch(raw); m != nil {
		due = m[1]
	}

	links := urlRe.FindAllString(raw, -1)

	// the extracted decorations are dropped from the task text itself
	task := assigneeHintRe.ReplaceAllString(line, "")
	task = dueLabelRe.ReplaceAllString(task, "")
	task = urlRe.ReplaceAllString(task, "")
	task = emailRe.ReplaceAllString(task, "")
	task = strings.Join(strings.Fields(task), " ")

	return TaskFields{
		Task:          task,
		AssigneeEmail: strings.ToLower(email),
		Due:           due,
		Links:         strings.Join(links, ","),
	}
}

// ParseTasks parses a bucket of candidate lines, skipping any whose task
// text comes out empty.
func ParseTasks(lines []string) []TaskFields {
	var out []TaskFields
	for _, raw := range lines {
		t := ParseTaskLine(raw)
		if t.Task == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}

// ParseActions scans whole-document text for task lines using the flat,
// heading-mode variant: once an action/todo-like heading is seen,
// bullet-prefixed lines are accepted as tasks until an unrelated line
// resets the mode. Outside heading mode only checkbox lines and bullets
// carrying an assignee qualify.
//
// Noise policy: a non-checkbox line without an assignee email is dropped
// as probable prose. This is intentionally lossy; it keeps unrelated
// bullets out of the task list at the cost of unowned free-form tasks.
func ParseActions(text string) []TaskFields {
	var (
		out         []TaskFields
		headingMode bool
	)
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if actionHeadingRe.MatchString(line) {
			headingMode = true
			continue
		}

		var (
			candidate   string
			isCheckbox  = checkboxRe.MatchString(line)
			headingTask bool
		)
		switch {
		case isCheckbox:
			candidate = line
		case headingMode && (strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*") || strings.HasPrefix(line, "・")):
			candidate = line
			headingTask = true
		default:
			m := bulletWithOwnerRe.FindStringSubmatch(line)
			if m == nil {
				// unrelated content resets heading mode
				headingMode = false
				continue
			}
			candidate = m[1]
		}

		t := ParseTaskLine(candidate)
		// fields may sit in the part the owner pattern trimmed off
		full := ParseTaskLine(line)
		t.AssigneeEmail, t.Due, t.Links = full.AssigneeEmail, full.Due, full.Links
		if t.Task == "" {
			continue
		}
		if !isCheckbox && !headingTask && t.AssigneeEmail == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}

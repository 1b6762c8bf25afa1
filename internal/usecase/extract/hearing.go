package extract

import (
	"regexp"
	"strings"
)

// HearingField numbers the four logical fields of a hearing reply.
type HearingField int

const (
	FieldTodoStatus HearingField = 1
	FieldReports    HearingField = 2
	FieldBlockers   HearingField = 3
	FieldLinks      HearingField = 4
)

// HearingFields is the parsed shape of one hearing reply. RawText keeps
// the original message verbatim for audit.
type HearingFields struct {
	TodoStatus string
	Reports    string
	Blockers   string
	Links      string
	RawText    string
}

// labelRule maps a heading pattern to its field. Rules are evaluated in
// order; the first match wins.
type labelRule struct {
	re    *regexp.Regexp
	field HearingField
}

// Each field accepts a leading digit form ("1.", "1)") or any of several
// bilingual synonym keywords. Input is fullwidth-normalized before
// matching, so only ASCII digits appear here. Keyword alternatives must
// end at a word boundary so a line like "todoist broke" is prose, not a
// label; \b in regexp is ASCII-only, so the boundary is spelled out as a
// consumed non-letter or end of line.
var hearingLabels = []labelRule{
	{regexp.MustCompile(`(?i)^\s*(1[.)]|(?:todo状況|to\s*do|前回\s*todo|前回.*状況|todo|やったこと|進捗|完了|done|実績)(?:[^\p{L}\p{N}_]|$))`), FieldTodoStatus},
	{regexp.MustCompile(`(?i)^\s*(2[.)]|(?:reports?|今回.*報告|報告|アップデート|更新|今週の報告|今週やったこと)(?:[^\p{L}\p{N}_]|$))`), FieldReports},
	{regexp.MustCompile(`(?i)^\s*(3[.)]|(?:blockers?|ブロッカー|課題|懸念|困っていること|依頼|ボトルネック|help)(?:[^\p{L}\p{N}_]|$))`), FieldBlockers},
	{regexp.MustCompile(`(?i)^\s*(4[.)]|(?:links?|リンク|url|refs|参考|共有資料)(?:[^\p{L}\p{N}_]|$))`), FieldLinks},
}

// ParseHearingReply classifies the lines of a free-text chat message into
// the four hearing fields. A label match switches the active field and
// strips the label prefix; trailing text on the label line joins the new
// field immediately. Unlabeled lines append to the active field; lines
// before any label is seen are dropped.
func ParseHearingReply(text string) HearingFields {
	buckets := map[HearingField][]string{}
	var current HearingField
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(NormalizeFullwidth(raw))
		if line == "" {
			continue
		}
		switched := false
		for _, rule := range hearingLabels {
			if rule.re.MatchString(line) {
				current = rule.field
				rest := strings.Trim(rule.re.ReplaceAllString(line, ""), " ：:.-")
				if rest != "" {
					buckets[current] = append(buckets[current], rest)
				}
				switched = true
				break
			}
		}
		if !switched && current != 0 {
			buckets[current] = append(buckets[current], line)
		}
	}
	join := func(f HearingField) string {
		return strings.TrimSpace(strings.Join(buckets[f], "\n"))
	}
	return HearingFields{
		TodoStatus: join(FieldTodoStatus),
		Reports:    join(FieldReports),
		Blockers:   join(FieldBlockers),
		Links:      join(FieldLinks),
		RawText:    strings.TrimSpace(text),
	}
}

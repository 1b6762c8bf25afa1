package extract

import (
	"regexp"
	"strings"
)

// Section labels a bucket of lines inside a meeting document.
type Section string

const (
	SectionNextActions   Section = "next_actions"
	SectionRetrospective Section = "retrospective"
)

var (
	sectionNextRe  = regexp.MustCompile(`(?i)(^|\s)(次アクション|next\s*action|action|todo)(\s|$)`)
	sectionRetroRe = regexp.MustCompile(`(?i)(^|\s)(振り返り|retrospective|まとめ)(\s|$)`)

	// A person heading is a short line of letters, CJK or spaces only.
	nameHeadingRe = regexp.MustCompile(`^[A-Za-z一-龥ぁ-んァ-ヶー・\s]{2,40}$`)
)

// stopHeadings mark the boundary after which the remaining text belongs
// to reference material, not to any person or section.
var stopHeadings = []string{
	"決定事項の詳細",
	"添付ファイル",
	"参照資料",
	"_:sankou:",
	"_:sankou_link:",
}

// genericHeadings must never be treated as person headings even though
// they match the name pattern shape.
var genericHeadings = []string{
	"添付ファイル",
	"参照資料",
	"詳細",
	"attachments",
	"details",
	"agenda",
	"memo",
	"メモ",
	"議事録",
}

func isStopHeading(line string) bool {
	for _, h := range stopHeadings {
		if strings.Contains(line, h) {
			return true
		}
	}
	return false
}

func isGenericHeading(line string) bool {
	normalized := strings.ToLower(strings.TrimSpace(line))
	for _, h := range genericHeadings {
		if normalized == strings.ToLower(h) {
			return true
		}
	}
	return false
}

// stripBullet removes decorative list markers from the front of a line.
func stripBullet(line string) string {
	return strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-*・"))
}

// SplitSections divides document text into flat per-section buckets,
// ignoring person structure. Lines before the first recognized section
// heading are dropped.
func SplitSections(text string) map[Section][]string {
	buckets := map[Section][]string{
		SectionNextActions:   {},
		SectionRetrospective: {},
	}
	var current Section
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if isStopHeading(line) {
			break
		}
		if sectionRetroRe.MatchString(line) {
			current = SectionRetrospective
			continue
		}
		if sectionNextRe.MatchString(line) {
			current = SectionNextActions
			continue
		}
		if current != "" {
			buckets[current] = append(buckets[current], line)
		}
	}
	return buckets
}

// PersonSections holds the per-section lines found under one person
// heading.
type PersonSections struct {
	Name     string
	Sections map[Section][]string
}

// SplitByPerson divides document text into per-person buckets, each
// scoped by section. A short letters-only line that is not itself a
// section or generic heading opens a new person bucket and resets the
// current section. Returns buckets in first-seen order; empty when the
// document has no person headings at all.
func SplitByPerson(text string) []PersonSections {
	var (
		out     []PersonSections
		byName  = map[string]int{}
		current = -1
		section Section
	)
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if isStopHeading(line) {
			break
		}
		if nameHeadingRe.MatchString(line) &&
			!sectionNextRe.MatchString(line) &&
			!sectionRetroRe.MatchString(line) &&
			!isGenericHeading(line) {
			idx, seen := byName[line]
			if !seen {
				out = append(out, PersonSections{
					Name: line,
					Sections: map[Section][]string{
						SectionNextActions:   {},
						SectionRetrospective: {},
					},
				})
				idx = len(out) - 1
				byName[line] = idx
			}
			current = idx
			section = ""
			continue
		}
		if sectionRetroRe.MatchString(line) {
			section = SectionRetrospective
			continue
		}
		if sectionNextRe.MatchString(line) {
			section = SectionNextActions
			continue
		}
		if current >= 0 && section != "" {
			out[current].Sections[section] = append(out[current].Sections[section], stripBullet(line))
		}
	}
	return out
}

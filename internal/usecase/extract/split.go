package extract

import (
	"regexp"
	"strings"
)

// Headings that start the detail / reference-material tail of a post.
// Checked in priority order: decorated detail headers, the bare detail
// keyword, attachment headers, then bare attachment keywords.
var (
	detailHeaders = []string{
		"_:detail: 決定事項の詳細_",
		"_:shosai: 決定事項の詳細_",
	}
	attachmentHeaders = []string{
		"添付ファイル",
		"参照資料",
		"_:sankou:",
		"_:sankou_link:",
	}
	borderRe = regexp.MustCompile(`^[━─—－ー＝=_~\-]{5,}$`)
)

func findHeaderLine(lines []string, headers []string) int {
	for i, line := range lines {
		for _, h := range headers {
			if strings.Contains(line, h) {
				return i
			}
		}
	}
	return -1
}

// SplitMainAndThread splits a post body so that everything from the first
// detail/attachment heading onward goes to a thread follow-up and the
// rest stays in the parent message. A border line (a run of dashes or
// similar, at least 5 chars) directly above the heading moves to the
// thread side too. Without any matching heading the whole text is the
// parent and the thread part is empty.
func SplitMainAndThread(text string) (main, thread string) {
	lines := strings.Split(text, "\n")

	idx := findHeaderLine(lines, detailHeaders)
	if idx < 0 {
		idx = findHeaderLine(lines, []string{"決定事項の詳細"})
	}
	if idx < 0 {
		idx = findHeaderLine(lines, attachmentHeaders)
	}
	if idx < 0 {
		idx = findHeaderLine(lines, []string{"参照資料", "添付ファイル"})
	}
	if idx < 0 {
		return text, ""
	}

	start := idx
	if idx > 0 && borderRe.MatchString(strings.TrimSpace(lines[idx-1])) && len(strings.TrimSpace(lines[idx-1])) >= 5 {
		start = idx - 1
	}

	main = strings.TrimRight(strings.Join(lines[:start], "\n"), " \n")
	thread = strings.TrimLeft(strings.Join(lines[start:], "\n"), "\n")
	return main, thread
}

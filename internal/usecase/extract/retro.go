package extract

import "strings"

const retroHighlightMax = 500

// ParseRetrospective groups retrospective lines by the email mentioned in
// each line. Lines with no email land under the empty key. The email
// itself and any bullet marker are stripped from the content; each
// person's highlight is capped to keep downstream posts short.
func ParseRetrospective(lines []string) map[string]string {
	byEmail := map[string][]string{}
	var order []string
	for _, raw := range lines {
		var email string
		if m := emailRe.FindStringSubmatch(raw); m != nil {
			email = strings.ToLower(m[1])
		}
		content := emailRe.ReplaceAllString(raw, "")
		content = strings.TrimSpace(bulletRe.ReplaceAllString(strings.TrimSpace(content), ""))
		content = strings.TrimSpace(strings.TrimLeft(content, ":："))
		if content == "" {
			continue
		}
		if _, seen := byEmail[email]; !seen {
			order = append(order, email)
		}
		byEmail[email] = append(byEmail[email], content)
	}
	out := make(map[string]string, len(byEmail))
	for _, email := range order {
		joined := strings.Join(byEmail[email], " ")
		if r := []rune(joined); len(r) > retroHighlightMax {
			joined = string(r[:retroHighlightMax])
		}
		out[email] = joined
	}
	return out
}

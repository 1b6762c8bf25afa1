// Package extract converts unstructured meeting-document text and chat
// replies into structured records: action items, hearing fields,
// retrospective highlights. All parsers are pure functions over text;
// unclassifiable lines are dropped or routed to a default bucket, never
// surfaced as errors.
package extract

import (
	"regexp"
	"strings"
	"unicode"
)

// fullwidthASCII maps full-width digits and punctuation to their ASCII
// equivalents so the label matchers only need to know one form.
var fullwidthASCII = strings.NewReplacer(
	"０", "0", "１", "1", "２", "2", "３", "3", "４", "4",
	"５", "5", "６", "6", "７", "7", "８", "8", "９", "9",
	"：", ":", "．", ".", "（", "(", "）", ")",
)

// NormalizeFullwidth converts full-width digits and punctuation to ASCII.
func NormalizeFullwidth(s string) string {
	return fullwidthASCII.Replace(s)
}

// emojiAliases maps Japanese-locale shortcode aliases to display glyphs.
// Unknown codes are left untouched.
var emojiAliases = map[string]string{
	":電球:":       "💡",
	":メモ:":       "📝",
	":警告:":       "⚠️",
	":チェック:":     "✅",
	":チェック済み:":   "✅",
	":拍手:":       "👏",
	":目:":        "👀",
	":火:":        "🔥",
	":OK:":       "🆗",
	":下向き二重矢印:":  "⏬",
	":鉛筆_2:":     "✏️",
}

var shortcodeRe = regexp.MustCompile(`:[^:\s]{1,32}:`)

// NormalizeEmojiAliases replaces known :alias: shortcodes with their
// Unicode glyphs.
func NormalizeEmojiAliases(s string) string {
	if s == "" {
		return s
	}
	return shortcodeRe.ReplaceAllStringFunc(s, func(tok string) string {
		if glyph, ok := emojiAliases[tok]; ok {
			return glyph
		}
		return tok
	})
}

// StripControlRunes removes control and private-use glyphs that document
// exports occasionally embed. Newlines and tabs survive.
func StripControlRunes(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' || r == '\r' {
			return r
		}
		if unicode.IsControl(r) || unicode.In(r, unicode.Co) {
			return -1
		}
		return r
	}, s)
}

// NormalizeText applies the full normalization chain used before any
// pattern matching.
func NormalizeText(s string) string {
	return NormalizeEmojiAliases(NormalizeFullwidth(StripControlRunes(s)))
}

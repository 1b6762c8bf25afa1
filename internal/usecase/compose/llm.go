package compose

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
)

// AgendaSystemPrompt steers the model toward short Japanese Markdown.
const AgendaSystemPrompt = "あなたは日本語で簡潔な議事アジェンダを作る編集者です。フォーマットはMarkdownのみ。"

const promptTemplate = `会議名: %s
対象日: %s

あなたは議事進行のための編集者です。以下の入力をもとに、意思決定が速くなる1枚のMarkdownアジェンダを作成してください。

要件:
- 前回NextActionを冒頭に再掲（重複や表記ゆれは自然に統合）。
- 今回のHearing（人別ハイライト）は1–2行で簡潔に。
- ブロッカー/依頼は別章で明確化。
- 最後に今週のTop3（理由も一言: 期限の近さ/ブロッカー有無/件数など）。
- 箇条書きは短く、冗長表現は避ける。見出しは日本語で。

入力1: 前回NextAction（再掲素材）
%s

入力2: 今回Hearing（人別ハイライト）
%s

入力3: 今回ブロッカー/依頼
%s

出力仕様（Markdownのみ）:
- 見出し順: 「前回NextAction（再掲）」→「人別ハイライト」→「ブロッカー/依頼」→「今週Top3」
- 箇条書きは1行80文字程度、重複は統合。
- 具体的かつ簡潔に。`

// BuildAgendaPrompt fills the template with carryover actions from the
// previous meeting, per-person highlight lines and the blocker list.
func BuildAgendaPrompt(title, date string, prevNext []string, highlights []UserSummary, blockers []Blocker) string {
	prev := "- なし"
	if len(prevNext) > 0 {
		var b []string
		for _, p := range prevNext {
			b = append(b, "- "+p)
		}
		prev = strings.Join(b, "\n")
	}
	hl := "- (未収集)"
	if len(highlights) > 0 {
		var b []string
		for _, h := range highlights {
			b = append(b, "- "+mentionOrUnknown(h.ChatID)+": "+h.Summary)
		}
		hl = strings.Join(b, "\n")
	}
	bl := "- なし"
	if len(blockers) > 0 {
		var b []string
		for _, x := range blockers {
			b = append(b, "- "+mentionOrUnknown(x.ChatID)+": "+x.Line)
		}
		bl = strings.Join(b, "\n")
	}
	return fmt.Sprintf(promptTemplate, title, date, prev, hl, bl)
}

// AgendaInputHash fingerprints the prompt inputs. The hash rides along
// in the finished agenda as an HTML comment so re-runs on unchanged
// input can be detected downstream.
func AgendaInputHash(prevNext []string, highlights []UserSummary, blockers []Blocker) string {
	h := sha1.New()
	for _, s := range prevNext {
		h.Write([]byte(strings.ToLower(strings.TrimSpace(s))))
	}
	for _, s := range highlights {
		h.Write([]byte(strings.ToLower(strings.TrimSpace(mentionOrUnknown(s.ChatID) + ": " + s.Summary))))
	}
	for _, b := range blockers {
		h.Write([]byte(strings.ToLower(strings.TrimSpace(b.ChatID + "|" + b.Line))))
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// FinalizeAgendaBody ensures the generated Markdown opens with an H1
// and carries the input hash comment exactly once.
func FinalizeAgendaBody(body, title, date, inputHash string) string {
	if !strings.HasPrefix(strings.TrimLeft(body, " \n"), "# ") {
		body = fmt.Sprintf("# アジェンダ — %s (%s)\n\n", title, date) + body
	}
	if !strings.Contains(body, "<!-- input_hash:") {
		body += fmt.Sprintf("\n\n<!-- input_hash:%s -->\n", inputHash)
	}
	return body
}

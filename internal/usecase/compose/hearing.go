package compose

import "strings"

// The hearing prompt's numbered fields match the label-synonym table the
// reply parser understands, so copy-pasted answers parse cleanly.
const hearingPromptBody = "ヒアリングのご協力をお願いします\n" +
	"1. 前回ToDoの状況\n" +
	"2. 今回の報告（1〜3点）\n" +
	"3. ブロッカー/依頼\n" +
	"4. リンク\n\n" +
	"このメッセージに返信でOKです（番号付き/箇条書きどちらでも可）。"

// BuildHearingMessage prepends one mention per participant to the
// shared prompt body. Unresolvable participants fall back to their raw
// email so they still see their name in the post.
func BuildHearingMessage(mentions []string) string {
	return strings.Join(mentions, " ") + "\n" + hearingPromptBody
}

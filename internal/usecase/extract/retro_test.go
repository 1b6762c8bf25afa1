package extract

import (
	"strings"
	"testing"
)

func TestParseRetrospectiveGroupsByEmail(t *testing.T) {
	lines := []string{
		"- alice@example.com: リリース作業がスムーズだった",
		"- Bob@Example.com デプロイ改善",
		"- alice@example.com: レビューも早かった",
		"- チーム全体の連携がよかった",
	}
	got := ParseRetrospective(lines)
	if !strings.Contains(got["alice@example.com"], "リリース作業がスムーズだった") ||
		!strings.Contains(got["alice@example.com"], "レビューも早かった") {
		t.Fatalf("alice highlights not joined: %q", got["alice@example.com"])
	}
	if got["bob@example.com"] != "デプロイ改善" {
		t.Fatalf("email key must be lowercased: %#v", got)
	}
	if got[""] != "チーム全体の連携がよかった" {
		t.Fatalf("no-email line must land under the empty key: %#v", got)
	}
	if strings.Contains(got["alice@example.com"], "alice@") {
		t.Fatalf("email must be stripped from content: %q", got["alice@example.com"])
	}
}

func TestParseRetrospectiveCapsHighlight(t *testing.T) {
	long := strings.Repeat("あ", 600)
	got := ParseRetrospective([]string{"- x@example.com: " + long})
	if n := len([]rune(got["x@example.com"])); n != retroHighlightMax {
		t.Fatalf("highlight length %d, want %d", n, retroHighlightMax)
	}
}

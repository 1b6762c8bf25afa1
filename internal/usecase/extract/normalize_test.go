package extract

import "testing"

func TestNormalizeFullwidth(t *testing.T) {
	got := NormalizeFullwidth("１．ToDo状況（済）")
	want := "1.ToDo状況(済)"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestNormalizeEmojiAliases(t *testing.T) {
	got := NormalizeEmojiAliases("done :チェック: see :unknown_code:")
	want := "done ✅ see :unknown_code:"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestStripControlRunes(t *testing.T) {
	in := "a\x00b\uE000c\nd"
	got := StripControlRunes(in)
	if got != "abc\nd" {
		t.Fatalf("got %q", got)
	}
}

func TestNormalizeTextChain(t *testing.T) {
	got := NormalizeText("１：:拍手:\a")
	if got != "1:👏" {
		t.Fatalf("got %q", got)
	}
}

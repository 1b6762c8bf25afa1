package extract

import "testing"

func TestSplitSections(t *testing.T) {
	text := "NextAction\n- [ ] Fix bug 担当: a@x.com 期限: 2025-03-01\n振り返り\n- a@x.com: did great work\n"
	buckets := SplitSections(text)

	next := buckets[SectionNextActions]
	if len(next) != 1 || next[0] != "- [ ] Fix bug 担当: a@x.com 期限: 2025-03-01" {
		t.Fatalf("next bucket: %#v", next)
	}
	retro := buckets[SectionRetrospective]
	if len(retro) != 1 || retro[0] != "- a@x.com: did great work" {
		t.Fatalf("retro bucket: %#v", retro)
	}
}

func TestSplitSectionsDropsPreamble(t *testing.T) {
	buckets := SplitSections("some intro prose\nmore prose\nTodo\n- task one\n")
	if got := buckets[SectionNextActions]; len(got) != 1 || got[0] != "- task one" {
		t.Fatalf("got %#v", got)
	}
}

func TestSplitSectionsStopsAtBoundary(t *testing.T) {
	buckets := SplitSections("Todo\n- real task\n添付ファイル\n- not a task\n")
	if got := buckets[SectionNextActions]; len(got) != 1 || got[0] != "- real task" {
		t.Fatalf("got %#v", got)
	}
}

func TestSplitByPerson(t *testing.T) {
	text := "田中太郎\n振り返り\n- チームをよくまとめた\n次アクション\n- レビュー対応 2025-04-01\nAlice Smith\nNext Action\n- ship feature\n"
	got := SplitByPerson(text)
	if len(got) != 2 {
		t.Fatalf("expected 2 persons, got %d: %#v", len(got), got)
	}
	if got[0].Name != "田中太郎" {
		t.Fatalf("first person %q", got[0].Name)
	}
	if retro := got[0].Sections[SectionRetrospective]; len(retro) != 1 || retro[0] != "チームをよくまとめた" {
		t.Fatalf("retro lines: %#v", retro)
	}
	if next := got[1].Sections[SectionNextActions]; len(next) != 1 || next[0] != "ship feature" {
		t.Fatalf("next lines: %#v", next)
	}
}

func TestSplitByPersonExcludesGenericHeadings(t *testing.T) {
	text := "添付ファイル\nTodo\n- orphan task\n"
	if got := SplitByPerson(text); len(got) != 0 {
		t.Fatalf("generic heading treated as person: %#v", got)
	}
}

func TestSplitByPersonSectionResetOnNewPerson(t *testing.T) {
	// The second person heading resets the section; the line after it has
	// no active section and must be ignored.
	text := "Alice\nTodo\n- a task\nBob\n- floating line\n"
	got := SplitByPerson(text)
	if len(got) != 2 {
		t.Fatalf("persons: %#v", got)
	}
	if lines := got[1].Sections[SectionNextActions]; len(lines) != 0 {
		t.Fatalf("expected no lines for Bob, got %#v", lines)
	}
}

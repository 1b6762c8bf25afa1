package extract

import (
	"testing"

	"github.com/johnquangdev/meeting-autopilot/internal/domain/entities"
)

func sampleDoc() *entities.RawDocument {
	return &entities.RawDocument{
		ID:    "doc-1",
		Title: "Weekly sync",
		Body: []entities.DocNode{
			{Paragraph: &entities.ParagraphNode{Runs: []string{"Heading\n"}}},
			{Table: &entities.TableNode{Rows: []entities.TableRow{
				{Cells: []entities.TableCell{
					{Content: []entities.DocNode{{Paragraph: &entities.ParagraphNode{Runs: []string{"cell A "}}}}},
					{Content: []entities.DocNode{{Paragraph: &entities.ParagraphNode{Runs: []string{"cell B\n"}}}}},
				}},
			}}},
			{TableOfContents: &entities.TOCNode{Content: []entities.DocNode{
				{Paragraph: &entities.ParagraphNode{Runs: []string{"toc entry\n"}}},
			}}},
		},
	}
}

func TestFlattenDocumentOrder(t *testing.T) {
	got := FlattenDocument(sampleDoc())
	want := "Heading\ncell A cell B\ntoc entry\n"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestFlattenDocumentIdempotent(t *testing.T) {
	doc := sampleDoc()
	first := FlattenDocument(doc)
	second := FlattenDocument(doc)
	if first != second {
		t.Fatalf("flatten not stable: %q vs %q", first, second)
	}
}

func TestFlattenDocumentNil(t *testing.T) {
	if got := FlattenDocument(nil); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

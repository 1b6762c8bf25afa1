package googleapi

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	docs "google.golang.org/api/docs/v1"
	"google.golang.org/api/option"

	"github.com/johnquangdev/meeting-autopilot/internal/domain/entities"
)

// DocsClient fetches meeting documents
type DocsClient struct {
	svc *docs.Service
}

// NewDocsClient creates a docs client on the shared token source
func NewDocsClient(ctx context.Context, ts oauth2.TokenSource) (*DocsClient, error) {
	svc, err := docs.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create docs service: %w", err)
	}
	return &DocsClient{svc: svc}, nil
}

// FetchDocument retrieves a document body as a structural tree
func (c *DocsClient) FetchDocument(ctx context.Context, docID string) (*entities.RawDocument, error) {
	doc, err := c.svc.Documents.Get(docID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch document %s: %w", docID, err)
	}
	out := &entities.RawDocument{
		ID:    docID,
		Title: doc.Title,
	}
	if doc.Body != nil {
		out.Body = convertElements(doc.Body.Content)
	}
	return out, nil
}

func convertElements(elements []*docs.StructuralElement) []entities.DocNode {
	var nodes []entities.DocNode
	for _, e := range elements {
		switch {
		case e.Paragraph != nil:
			p := &entities.ParagraphNode{}
			for _, el := range e.Paragraph.Elements {
				if el.TextRun != nil && el.TextRun.Content != "" {
					p.Runs = append(p.Runs, el.TextRun.Content)
				}
			}
			nodes = append(nodes, entities.DocNode{Paragraph: p})
		case e.Table != nil:
			t := &entities.TableNode{}
			for _, row := range e.Table.TableRows {
				tr := entities.TableRow{}
				for _, cell := range row.TableCells {
					tr.Cells = append(tr.Cells, entities.TableCell{Content: convertElements(cell.Content)})
				}
				t.Rows = append(t.Rows, tr)
			}
			nodes = append(nodes, entities.DocNode{Table: t})
		case e.TableOfContents != nil:
			nodes = append(nodes, entities.DocNode{TableOfContents: &entities.TOCNode{
				Content: convertElements(e.TableOfContents.Content),
			}})
		}
	}
	return nodes
}

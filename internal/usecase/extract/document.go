package extract

import (
	"strings"

	"github.com/johnquangdev/meeting-autopilot/internal/domain/entities"
)

// FlattenDocument walks a document body depth-first and returns the
// concatenation of every inline text run in document order, recursing
// into table cells and table-of-contents content. No separators are
// added beyond what the runs themselves contain, so flattening the same
// body twice yields identical text.
func FlattenDocument(doc *entities.RawDocument) string {
	if doc == nil {
		return ""
	}
	var b strings.Builder
	flattenNodes(&b, doc.Body)
	return b.String()
}

func flattenNodes(b *strings.Builder, nodes []entities.DocNode) {
	for _, n := range nodes {
		if n.Paragraph != nil {
			for _, run := range n.Paragraph.Runs {
				b.WriteString(run)
			}
		}
		if n.Table != nil {
			for _, row := range n.Table.Rows {
				for _, cell := range row.Cells {
					flattenNodes(b, cell.Content)
				}
			}
		}
		if n.TableOfContents != nil {
			flattenNodes(b, n.TableOfContents.Content)
		}
	}
}

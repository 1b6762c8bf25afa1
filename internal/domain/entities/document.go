package entities

// RawDocument is a meeting document fetched from the document service:
// metadata plus the body as a tree of structural nodes. It is immutable
// once fetched; the extraction pipeline flattens it to text.
type RawDocument struct {
	ID           string
	Title        string
	ModifiedTime string
	Body         []DocNode
}

// DocNode is one structural element of a document body. Exactly one of
// the three shapes is populated per node, mirroring how document APIs
// model paragraphs, tables and table-of-contents blocks.
type DocNode struct {
	Paragraph       *ParagraphNode
	Table           *TableNode
	TableOfContents *TOCNode
}

// ParagraphNode holds the inline text runs of one paragraph.
type ParagraphNode struct {
	Runs []string
}

// TableNode is a grid of cells; each cell is itself a sub-tree.
type TableNode struct {
	Rows []TableRow
}

type TableRow struct {
	Cells []TableCell
}

type TableCell struct {
	Content []DocNode
}

// TOCNode nests further document content inside a table of contents.
type TOCNode struct {
	Content []DocNode
}

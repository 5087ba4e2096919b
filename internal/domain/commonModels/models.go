package commonModels

import (
	"context"
	"time"
)

// SourceType is the closed set of document kinds the pipeline understands.
// Tabular sources (Excel, CSV) switch the composer into its listing branch.
type SourceType string

const (
	SourcePDF   SourceType = "PDF"
	SourceExcel SourceType = "Excel"
	SourceCSV   SourceType = "CSV"
	SourceDoc   SourceType = "Document"
	SourceErr   SourceType = "ERR"
)

// IsTabular reports whether records from this source render as a listing
// instead of going through the LLM.
func (s SourceType) IsTabular() bool {
	return s == SourceExcel || s == SourceCSV
}

// Corpus maps a segment id (PDF page or spreadsheet row) to its ordered
// text chunks. Produced by extraction, consumed once by indexing.
type Corpus map[int][]string

type Document struct {
	Id                  string     `json:"source_doc_id"`
	Name                string     `json:"doc_name"`
	LastIngestTimestamp time.Time  `json:"ingested_at"`
	ContentType         SourceType `json:"contentType"`
}

// IndexedRecord is one retrievable chunk: (Page, Paragraph) is unique
// within a collection.
type IndexedRecord struct {
	Page      int        `json:"page"`
	Paragraph int        `json:"paragraph"`
	Embedding []float32  `json:"embedding"`
	Text      string     `json:"text"`
	Source    SourceType `json:"source"`
}

// IndexedCollection is ordered page asc, paragraph asc. Persisted as a
// whole, keyed by the document filename.
type IndexedCollection []IndexedRecord

// RankedCandidate is an IndexedRecord scored against one question.
type RankedCandidate struct {
	IndexedRecord
	Similarity float64
}

// CollectionStore persists indexed collections by filename. Retrieve
// returns an empty collection when nothing is stored under the name.
type CollectionStore interface {
	RetrieveCollection(ctx context.Context, filename string) (IndexedCollection, error)
	StoreCollection(ctx context.Context, filename string, collection IndexedCollection) error
}

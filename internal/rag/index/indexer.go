package index

import (
	"context"
	"fmt"
	"sort"

	"github.com/mbalza/DocChatAPI/internal/domain/commonModels"
	"github.com/mbalza/DocChatAPI/internal/rag/embedding"
)

// ComputeEmbeddings turns a corpus into an indexed collection, one record
// per (page, paragraph). Pages are walked in ascending order and paragraphs
// keep their position within the page, so repeated runs over the same
// corpus produce identical collections. Every chunk is sent to the
// embedder, empty strings included; a chunk the provider returns no vector
// for is omitted without renumbering its neighbours.
//
// The source defaults to PDF. Callers ingesting tabular documents override
// it on the returned records.
func ComputeEmbeddings(ctx context.Context, corpus commonModels.Corpus, embedder embedding.Embedder) (commonModels.IndexedCollection, error) {
	pages := make([]int, 0, len(corpus))
	for page := range corpus {
		pages = append(pages, page)
	}
	sort.Ints(pages)

	var collection commonModels.IndexedCollection
	for _, page := range pages {
		chunks := corpus[page]
		if len(chunks) == 0 {
			continue
		}

		vectors, err := embedder.BatchEmbedding(ctx, chunks)
		if err != nil {
			return nil, fmt.Errorf("embedding page %d: %w", page, err)
		}
		if len(vectors) != len(chunks) {
			return nil, fmt.Errorf("embedding page %d: %d vectors for %d chunks", page, len(vectors), len(chunks))
		}

		for i, vector := range vectors {
			if len(vector) == 0 {
				continue
			}
			collection = append(collection, commonModels.IndexedRecord{
				Page:      page,
				Paragraph: i,
				Embedding: vector,
				Text:      chunks[i],
				Source:    commonModels.SourcePDF,
			})
		}
	}
	return collection, nil
}

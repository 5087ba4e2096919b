package ingest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mbalza/DocChatAPI/internal/domain/commonModels"
)

func getDocType(docPath string) commonModels.SourceType {
	ext := strings.ToLower(filepath.Ext(docPath))
	switch ext {
	case ".pdf":
		return commonModels.SourcePDF
	case ".xlsx", ".xls":
		return commonModels.SourceExcel
	case ".csv":
		return commonModels.SourceCSV
	case ".docx", ".txt", ".rtf":
		return commonModels.SourceDoc
	default:
		return commonModels.SourceErr
	}
}

func extractCorpus(path string, contentType commonModels.SourceType) (commonModels.Corpus, error) {
	switch contentType {
	case commonModels.SourcePDF:
		return extractPDF(path)
	case commonModels.SourceDoc:
		return extractdocxTxtRtf(path)
	case commonModels.SourceCSV:
		return extractCSV(path)
	case commonModels.SourceExcel:
		return extractXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported content type: %s", contentType)
	}
}

// splitIntoParagraphs breaks a page into its blank-line separated blocks.
// Whitespace-only blocks are dropped, surviving blocks keep their order.
func splitIntoParagraphs(content string) []string {
	var paragraphs []string
	for _, block := range strings.Split(content, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		paragraphs = append(paragraphs, block)
	}
	return paragraphs
}

// overrideSource stamps the document type on every record. The indexer
// defaults to PDF, tabular and plain document sources correct it here.
func overrideSource(collection commonModels.IndexedCollection, contentType commonModels.SourceType) {
	if contentType == commonModels.SourcePDF {
		return
	}
	for i := range collection {
		collection[i].Source = contentType
	}
}

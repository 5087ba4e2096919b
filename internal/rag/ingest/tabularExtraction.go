package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mbalza/DocChatAPI/internal/domain/commonModels"
)

// Tabular files index one record per row: the row number becomes the page,
// the joined cells become a single chunk. That keeps spreadsheet matches
// citable the same way pdf pages are.

func extractCSV(path string) (commonModels.Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		logger.Error("Error parsing csv rows", "error", err)
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}

	return rowsToCorpus(rows), nil
}

func extractXLSX(path string) (commonModels.Corpus, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return commonModels.Corpus{}, nil
	}

	// Only the first sheet is indexed.
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		logger.Error("Error reading xlsx rows", "sheet", sheets[0], "error", err)
		return nil, fmt.Errorf("failed to read xlsx rows: %w", err)
	}

	return rowsToCorpus(rows), nil
}

func rowsToCorpus(rows [][]string) commonModels.Corpus {
	corpus := make(commonModels.Corpus)
	for i, row := range rows {
		if !rowHasContent(row) {
			continue
		}
		corpus[i] = []string{strings.Join(row, ", ")}
	}
	return corpus
}

func rowHasContent(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return true
		}
	}
	return false
}

package ingest

import (
	"errors"
	"fmt"
	"time"

	"github.com/dslipak/pdf"
	"github.com/lu4p/cat"

	"github.com/mbalza/DocChatAPI/internal/domain/commonModels"
)

func extractPDF(path string) (commonModels.Corpus, error) {
	logger.Debug("extractPDF", "attempting extraction", path)
	f, err := pdf.Open(path)
	if err != nil {
		logger.Error("failed opening of pdf file")
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}

	corpus := make(commonModels.Corpus)
	numPages := f.NumPage()
	logger.Debug("extractPDF", "number of pages", numPages)
	for i := 1; i <= numPages; i++ {
		page := f.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := protectExtract(page)
		if err != nil {
			// Log and continue with the remaining pages.
			logger.Error("Error parsing page content", "page", i, "Error", err)
			continue
		}

		paragraphs := splitIntoParagraphs(content)
		if len(paragraphs) == 0 {
			continue
		}
		corpus[i] = paragraphs
	}
	return corpus, nil
}

// extractdocxTxtRtf reads a .docx, .rtf or plaintext file. The format has
// no page boundaries, so the whole document lands on page 1 split into
// paragraphs.
func extractdocxTxtRtf(path string) (commonModels.Corpus, error) {
	text, err := cat.File(path)
	if err != nil {
		logger.Error("Error extracting content from doc")
		return nil, fmt.Errorf("failed to extract docx: %w", err)
	}

	paragraphs := splitIntoParagraphs(text)
	if len(paragraphs) == 0 {
		return commonModels.Corpus{}, nil
	}
	return commonModels.Corpus{1: paragraphs}, nil
}

// protectExtract guards against pdf pages whose content stream hangs the
// parser.
func protectExtract(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(time.Second * 10):
		logger.Error("pageExtract", "timeout")
		return "", errors.New("timeout")
	}
}

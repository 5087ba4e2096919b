package compose

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mbalza/DocChatAPI/internal/domain/commonModels"
	"github.com/mbalza/DocChatAPI/internal/rag/llm"
)

// NoContextAnswer is streamed as-is when nothing survives the relevance
// filter. No citation block follows it.
const NoContextAnswer = "No relevant information found in the documents. Please rephrase your question."

const (
	tabularHeader  = "Relevant data found:"
	citationHeader = "Sources:"
)

// Compose builds the final answer for the filtered candidates. Tabular
// sources get a literal listing of the matched rows; pure PDF context is
// handed to the LLM provider. Both branches end with the citation block.
func Compose(ctx context.Context, question string, candidates []commonModels.RankedCandidate, provider llm.Provider, messageHistory []string) (string, error) {
	if len(candidates) == 0 {
		return NoContextAnswer, nil
	}

	matches := make([]string, 0, len(candidates))
	tabular := false
	for _, candidate := range candidates {
		matches = append(matches, candidate.Text)
		if candidate.Source.IsTabular() {
			tabular = true
		}
	}

	var answer string
	if tabular {
		var b strings.Builder
		b.WriteString(tabularHeader)
		b.WriteString("\n")
		for _, text := range matches {
			b.WriteString("- ")
			b.WriteString(text)
			b.WriteString("\n")
		}
		answer = b.String()
	} else {
		generated, err := provider.Generate(ctx, question, matches, messageHistory)
		if err != nil {
			return "", fmt.Errorf("generating answer: %w", err)
		}
		answer = generated
	}

	var b strings.Builder
	b.WriteString(answer)
	b.WriteString("\n\n")
	b.WriteString(citationHeader)
	b.WriteString("\n")
	for _, line := range CitationLines(candidates) {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// CitationLines groups candidates by source type, then page, both in
// first-seen order, with section indices in candidate order. The line
// format is a wire contract consumed by clients.
func CitationLines(candidates []commonModels.RankedCandidate) []string {
	var sourceOrder []commonModels.SourceType
	pageOrder := make(map[commonModels.SourceType][]int)
	sections := make(map[commonModels.SourceType]map[int][]int)

	for _, candidate := range candidates {
		if _, seen := sections[candidate.Source]; !seen {
			sourceOrder = append(sourceOrder, candidate.Source)
			sections[candidate.Source] = make(map[int][]int)
		}
		if _, seen := sections[candidate.Source][candidate.Page]; !seen {
			pageOrder[candidate.Source] = append(pageOrder[candidate.Source], candidate.Page)
		}
		sections[candidate.Source][candidate.Page] = append(sections[candidate.Source][candidate.Page], candidate.Paragraph)
	}

	var lines []string
	for _, source := range sourceOrder {
		for _, page := range pageOrder[source] {
			parts := make([]string, 0, len(sections[source][page]))
			for _, paragraph := range sections[source][page] {
				parts = append(parts, strconv.Itoa(paragraph))
			}
			lines = append(lines, fmt.Sprintf("- %s, Page %d: Sections %s", source, page, strings.Join(parts, ", ")))
		}
	}
	return lines
}

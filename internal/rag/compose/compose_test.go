package compose

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mbalza/DocChatAPI/internal/domain/commonModels"
)

type mockProvider struct {
	onGenerate func(ctx context.Context, query string, matches []string, history []string) (string, error)
	calls      int
}

func (m *mockProvider) Generate(ctx context.Context, query string, matches []string, history []string) (string, error) {
	m.calls++
	if m.onGenerate != nil {
		return m.onGenerate(ctx, query, matches, history)
	}
	return "generated answer", nil
}

func pdfCandidate(page, paragraph int, text string, score float64) commonModels.RankedCandidate {
	return commonModels.RankedCandidate{
		IndexedRecord: commonModels.IndexedRecord{
			Page:      page,
			Paragraph: paragraph,
			Text:      text,
			Source:    commonModels.SourcePDF,
		},
		Similarity: score,
	}
}

func TestCompose_EmptyCandidates(t *testing.T) {
	provider := &mockProvider{}

	answer, err := Compose(context.Background(), "anything?", nil, provider, nil)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if answer != NoContextAnswer {
		t.Errorf("got %q, want the sentinel answer", answer)
	}
	if strings.Contains(answer, "Sources:") {
		t.Error("sentinel answer must not carry a citation block")
	}
	if provider.calls != 0 {
		t.Errorf("provider called %d times on empty retrieval", provider.calls)
	}
}

func TestCompose_NarrativeBranch(t *testing.T) {
	provider := &mockProvider{
		onGenerate: func(ctx context.Context, query string, matches []string, history []string) (string, error) {
			if query != "what is the router model?" {
				t.Errorf("question not forwarded, got %q", query)
			}
			if len(matches) != 2 || matches[0] != "first chunk" || matches[1] != "second chunk" {
				t.Errorf("matches not in ranked order: %v", matches)
			}
			return "The router is a Nokia 7750.", nil
		},
	}

	candidates := []commonModels.RankedCandidate{
		pdfCandidate(3, 0, "first chunk", 0.9),
		pdfCandidate(3, 2, "second chunk", 0.8),
	}

	answer, err := Compose(context.Background(), "what is the router model?", candidates, provider, nil)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if !strings.HasPrefix(answer, "The router is a Nokia 7750.") {
		t.Errorf("answer body missing, got %q", answer)
	}
	if !strings.Contains(answer, "- PDF, Page 3: Sections 0, 2") {
		t.Errorf("citation line missing or malformed:\n%s", answer)
	}
}

func TestCompose_TabularBranch(t *testing.T) {
	provider := &mockProvider{}

	candidates := []commonModels.RankedCandidate{
		pdfCandidate(1, 0, "narrative chunk", 0.95),
		{
			IndexedRecord: commonModels.IndexedRecord{
				Page: 7, Paragraph: 0, Text: "RBS-001, Bogotá, Active", Source: commonModels.SourceCSV,
			},
			Similarity: 0.9,
		},
	}

	answer, err := Compose(context.Background(), "inventory?", candidates, provider, nil)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	// One tabular candidate forces the listing format for everything.
	if !strings.HasPrefix(answer, "Relevant data found:\n") {
		t.Errorf("listing header missing, got %q", answer)
	}
	if !strings.Contains(answer, "- narrative chunk\n- RBS-001, Bogotá, Active\n") {
		t.Errorf("bullets missing or out of ranked order:\n%s", answer)
	}
	if provider.calls != 0 {
		t.Error("LLM provider must not be called on the listing branch")
	}
	if !strings.Contains(answer, "- PDF, Page 1: Sections 0") {
		t.Errorf("PDF citation missing:\n%s", answer)
	}
	if !strings.Contains(answer, "- CSV, Page 7: Sections 0") {
		t.Errorf("CSV citation missing:\n%s", answer)
	}
}

func TestCompose_CitationGrouping(t *testing.T) {
	provider := &mockProvider{}

	candidates := []commonModels.RankedCandidate{
		pdfCandidate(5, 1, "a", 0.9),
		pdfCandidate(2, 0, "b", 0.85),
		pdfCandidate(5, 3, "c", 0.8),
	}

	answer, err := Compose(context.Background(), "q", candidates, provider, nil)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	// Pages in first-seen order, sections in candidate order.
	idx5 := strings.Index(answer, "- PDF, Page 5: Sections 1, 3")
	idx2 := strings.Index(answer, "- PDF, Page 2: Sections 0")
	if idx5 == -1 || idx2 == -1 {
		t.Fatalf("citation lines missing:\n%s", answer)
	}
	if idx5 > idx2 {
		t.Error("citation pages not in first-seen order")
	}
}

func TestCompose_GenerationFailure(t *testing.T) {
	provider := &mockProvider{
		onGenerate: func(ctx context.Context, query string, matches []string, history []string) (string, error) {
			return "", errors.New("provider down")
		},
	}

	_, err := Compose(context.Background(), "q", []commonModels.RankedCandidate{pdfCandidate(1, 0, "x", 0.9)}, provider, nil)
	if err == nil {
		t.Fatal("expected generation failure to propagate")
	}
}

func TestCompose_Deterministic(t *testing.T) {
	provider := &mockProvider{
		onGenerate: func(ctx context.Context, query string, matches []string, history []string) (string, error) {
			return "stable body", nil
		},
	}
	candidates := []commonModels.RankedCandidate{
		pdfCandidate(1, 0, "x", 0.9),
		pdfCandidate(1, 1, "y", 0.8),
	}

	first, err := Compose(context.Background(), "q", candidates, provider, nil)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Compose(context.Background(), "q", candidates, provider, nil)
		if err != nil {
			t.Fatalf("Compose failed on run %d: %v", i, err)
		}
		if again != first {
			t.Fatalf("output changed between runs:\n%q\nvs\n%q", first, again)
		}
	}
}

package index

import (
	"context"
	"errors"
	"testing"

	"github.com/mbalza/DocChatAPI/internal/domain/commonModels"
)

type mockEmbedder struct {
	batchFunc func(ctx context.Context, chunks []string) ([][]float32, error)
}

func (m *mockEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	return []float32{1}, nil
}

func (m *mockEmbedder) BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error) {
	if m.batchFunc != nil {
		return m.batchFunc(ctx, chunks)
	}
	vectors := make([][]float32, len(chunks))
	for i := range chunks {
		vectors[i] = []float32{float32(len(chunks[i])), 1}
	}
	return vectors, nil
}

func TestComputeEmbeddings_Ordering(t *testing.T) {
	corpus := commonModels.Corpus{
		2: {"page two a", "page two b"},
		0: {"page zero"},
		1: {"page one"},
	}

	collection, err := ComputeEmbeddings(context.Background(), corpus, &mockEmbedder{})
	if err != nil {
		t.Fatalf("ComputeEmbeddings failed: %v", err)
	}

	if len(collection) != 4 {
		t.Fatalf("expected 4 records, got %d", len(collection))
	}

	wantOrder := []struct{ page, paragraph int }{
		{0, 0}, {1, 0}, {2, 0}, {2, 1},
	}
	for i, want := range wantOrder {
		if collection[i].Page != want.page || collection[i].Paragraph != want.paragraph {
			t.Errorf("record %d got (%d,%d), want (%d,%d)",
				i, collection[i].Page, collection[i].Paragraph, want.page, want.paragraph)
		}
		if collection[i].Source != commonModels.SourcePDF {
			t.Errorf("record %d source got %s, want default PDF", i, collection[i].Source)
		}
	}
}

func TestComputeEmbeddings_EmptyChunkIsIndexed(t *testing.T) {
	corpus := commonModels.Corpus{0: {""}}

	collection, err := ComputeEmbeddings(context.Background(), corpus, &mockEmbedder{})
	if err != nil {
		t.Fatalf("ComputeEmbeddings failed: %v", err)
	}
	if len(collection) != 1 {
		t.Fatalf("empty chunk should still be indexed, got %d records", len(collection))
	}
	if collection[0].Text != "" {
		t.Errorf("text got %q, want empty", collection[0].Text)
	}
}

func TestComputeEmbeddings_SkipsUnembeddableChunks(t *testing.T) {
	embedder := &mockEmbedder{
		batchFunc: func(ctx context.Context, chunks []string) ([][]float32, error) {
			vectors := make([][]float32, len(chunks))
			for i := range chunks {
				if chunks[i] == "broken" {
					continue // no vector for this chunk
				}
				vectors[i] = []float32{1, 2}
			}
			return vectors, nil
		},
	}

	corpus := commonModels.Corpus{0: {"fine", "broken", "also fine"}}

	collection, err := ComputeEmbeddings(context.Background(), corpus, embedder)
	if err != nil {
		t.Fatalf("ComputeEmbeddings failed: %v", err)
	}
	if len(collection) != 2 {
		t.Fatalf("expected the broken chunk to be dropped, got %d records", len(collection))
	}
	// Neighbours keep their original positions.
	if collection[0].Paragraph != 0 || collection[1].Paragraph != 2 {
		t.Errorf("paragraph numbering changed: got %d and %d, want 0 and 2",
			collection[0].Paragraph, collection[1].Paragraph)
	}
}

func TestComputeEmbeddings_ProviderFailure(t *testing.T) {
	embedder := &mockEmbedder{
		batchFunc: func(ctx context.Context, chunks []string) ([][]float32, error) {
			return nil, errors.New("api limit")
		},
	}

	_, err := ComputeEmbeddings(context.Background(), commonModels.Corpus{0: {"x"}}, embedder)
	if err == nil {
		t.Fatal("expected embedding failure to propagate")
	}
}

func TestComputeEmbeddings_Deterministic(t *testing.T) {
	corpus := commonModels.Corpus{
		0: {"alpha", "beta"},
		3: {"gamma"},
	}

	first, err := ComputeEmbeddings(context.Background(), corpus, &mockEmbedder{})
	if err != nil {
		t.Fatalf("ComputeEmbeddings failed: %v", err)
	}
	second, err := ComputeEmbeddings(context.Background(), corpus, &mockEmbedder{})
	if err != nil {
		t.Fatalf("ComputeEmbeddings failed: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Page != second[i].Page || first[i].Paragraph != second[i].Paragraph || first[i].Text != second[i].Text {
			t.Errorf("record %d differs between runs", i)
		}
	}
}

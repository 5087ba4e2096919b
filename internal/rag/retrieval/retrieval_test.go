package retrieval

import (
	"math"
	"testing"

	"github.com/mbalza/DocChatAPI/internal/config"
	"github.com/mbalza/DocChatAPI/internal/domain/commonModels"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float32
		expected float64
	}{
		{"identical vectors", []float32{1, 2, 3}, []float32{1, 2, 3}, 1.0},
		{"opposite vectors", []float32{1, 2, 3}, []float32{-1, -2, -3}, -1.0},
		{"orthogonal vectors", []float32{1, 0}, []float32{0, 1}, 0.0},
		{"zero vector left", []float32{0, 0}, []float32{1, 1}, 0.0},
		{"zero vector right", []float32{1, 1}, []float32{0, 0}, 0.0},
		{"mismatched dimensions", []float32{1, 2}, []float32{1, 2, 3}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if math.IsNaN(got) {
				t.Fatalf("CosineSimilarity returned NaN")
			}
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("CosineSimilarity got %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRank_TopKBound(t *testing.T) {
	query := []float32{1, 0}
	collection := make(commonModels.IndexedCollection, 50)
	for i := range collection {
		collection[i] = commonModels.IndexedRecord{
			Page:      i,
			Embedding: []float32{1, float32(i)},
			Text:      "chunk",
		}
	}

	ranked := Rank(collection, query)

	if len(ranked) != config.TopKCandidates {
		t.Fatalf("Rank returned %d candidates, want %d", len(ranked), config.TopKCandidates)
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Similarity > ranked[i-1].Similarity {
			t.Errorf("candidates not in descending order at %d: %v > %v", i, ranked[i].Similarity, ranked[i-1].Similarity)
		}
	}
	// Record 0 points exactly along the query and must win.
	if ranked[0].Page != 0 {
		t.Errorf("best candidate page got %d, want 0", ranked[0].Page)
	}
}

func TestRank_TiesKeepCollectionOrder(t *testing.T) {
	query := []float32{1, 0}
	// All records identical to the query: every similarity ties at 1.0.
	collection := commonModels.IndexedCollection{
		{Page: 1, Embedding: []float32{2, 0}},
		{Page: 2, Embedding: []float32{3, 0}},
		{Page: 3, Embedding: []float32{4, 0}},
	}

	ranked := Rank(collection, query)

	for i, want := range []int{1, 2, 3} {
		if ranked[i].Page != want {
			t.Errorf("tie order broken at %d: got page %d, want %d", i, ranked[i].Page, want)
		}
	}
}

func TestFilterRelevant_StrictBoundary(t *testing.T) {
	candidates := []commonModels.RankedCandidate{
		{IndexedRecord: commonModels.IndexedRecord{Page: 1}, Similarity: config.NaiveRAGThreshold + 0.001},
		{IndexedRecord: commonModels.IndexedRecord{Page: 2}, Similarity: config.NaiveRAGThreshold},
		{IndexedRecord: commonModels.IndexedRecord{Page: 3}, Similarity: config.NaiveRAGThreshold - 0.001},
	}

	relevant := FilterRelevant(candidates)

	if len(relevant) != 1 {
		t.Fatalf("expected only the candidate above the threshold, got %d", len(relevant))
	}
	if relevant[0].Page != 1 {
		t.Errorf("surviving candidate page got %d, want 1", relevant[0].Page)
	}
}

func TestFilterRelevant_AllBelow(t *testing.T) {
	candidates := []commonModels.RankedCandidate{
		{Similarity: 0.1},
		{Similarity: 0.2},
	}
	if got := FilterRelevant(candidates); len(got) != 0 {
		t.Errorf("expected empty result, got %d candidates", len(got))
	}
}

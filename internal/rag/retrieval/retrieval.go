package retrieval

import (
	"math"
	"sort"

	"github.com/mbalza/DocChatAPI/internal/config"
	"github.com/mbalza/DocChatAPI/internal/domain/commonModels"
)

// CosineSimilarity is defined as 0 when either vector has zero norm or the
// dimensionalities differ, so a degenerate embedding can never poison a
// ranking with NaN.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Rank scores every record against the question embedding and returns the
// top candidates, at most config.TopKCandidates of them. The sort is stable:
// ties keep the collection's page/paragraph order so results are
// reproducible run to run.
func Rank(collection commonModels.IndexedCollection, queryEmbedding []float32) []commonModels.RankedCandidate {
	candidates := make([]commonModels.RankedCandidate, 0, len(collection))
	for _, record := range collection {
		candidates = append(candidates, commonModels.RankedCandidate{
			IndexedRecord: record,
			Similarity:    CosineSimilarity(record.Embedding, queryEmbedding),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Similarity > candidates[j].Similarity
	})

	if len(candidates) > config.TopKCandidates {
		candidates = candidates[:config.TopKCandidates]
	}
	return candidates
}

// FilterRelevant drops candidates at or below the relevance threshold.
// A score exactly at the threshold is excluded.
func FilterRelevant(candidates []commonModels.RankedCandidate) []commonModels.RankedCandidate {
	var relevant []commonModels.RankedCandidate
	for _, candidate := range candidates {
		if candidate.Similarity > config.NaiveRAGThreshold {
			relevant = append(relevant, candidate)
		}
	}
	return relevant
}

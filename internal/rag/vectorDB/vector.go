package vectorDB

import (
	"context"
)

// AnswerCache short-circuits the pipeline for questions semantically close
// to one already answered. Keyed by the question embedding, the stored
// payload is the full composed answer including its citation block.
type AnswerCache interface {
	GetCachedAnswer(ctx context.Context, queryVector []float32) (string, bool, error)
	SaveToCache(ctx context.Context, id string, vector []float32, answer string) error
}

// NoopCache stands in when Qdrant is unreachable. Every lookup misses and
// saves vanish, the pipeline itself keeps working.
type NoopCache struct{}

func (NoopCache) GetCachedAnswer(ctx context.Context, queryVector []float32) (string, bool, error) {
	return "", false, nil
}

func (NoopCache) SaveToCache(ctx context.Context, id string, vector []float32, answer string) error {
	return nil
}

package rag_test

import (
	"context"

	"github.com/mbalza/DocChatAPI/internal/domain/commonModels"
)

// MockAnswerCache implements vectorDB.AnswerCache
type MockAnswerCache struct {
	// Control fields to simulate different behaviors
	OnGetCachedAnswer func(ctx context.Context, queryVector []float32) (string, bool, error)
	OnSaveToCache     func(ctx context.Context, id string, vector []float32, answer string) error
}

func (m *MockAnswerCache) GetCachedAnswer(ctx context.Context, v []float32) (string, bool, error) {
	if m.OnGetCachedAnswer != nil {
		return m.OnGetCachedAnswer(ctx, v)
	}
	return "", false, nil
}

func (m *MockAnswerCache) SaveToCache(ctx context.Context, id string, v []float32, a string) error {
	if m.OnSaveToCache != nil {
		return m.OnSaveToCache(ctx, id, v, a)
	}
	return nil
}

// MockCollectionStore implements commonModels.CollectionStore
type MockCollectionStore struct {
	OnRetrieveCollection func(ctx context.Context, filename string) (commonModels.IndexedCollection, error)
	OnStoreCollection    func(ctx context.Context, filename string, collection commonModels.IndexedCollection) error
}

func (m *MockCollectionStore) RetrieveCollection(ctx context.Context, filename string) (commonModels.IndexedCollection, error) {
	if m.OnRetrieveCollection != nil {
		return m.OnRetrieveCollection(ctx, filename)
	}
	// One record colinear with the mock question vector, so it ranks at
	// similarity 1.0 and survives the relevance filter.
	return commonModels.IndexedCollection{
		{Page: 1, Paragraph: 0, Embedding: []float32{0.1}, Text: "default context", Source: commonModels.SourcePDF},
	}, nil
}

func (m *MockCollectionStore) StoreCollection(ctx context.Context, filename string, collection commonModels.IndexedCollection) error {
	if m.OnStoreCollection != nil {
		return m.OnStoreCollection(ctx, filename, collection)
	}
	return nil
}

type MockEmbedder struct {
	OnGetEmbedding   func(ctx context.Context, text string) ([]float32, error)
	OnBatchEmbedding func(ctx context.Context, chunks []string) ([][]float32, error)
}

func (m *MockEmbedder) BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error) {
	if m.OnBatchEmbedding != nil {
		return m.OnBatchEmbedding(ctx, chunks)
	}
	vectors := make([][]float32, len(chunks))
	for i := range vectors {
		vectors[i] = []float32{0.1}
	}
	return vectors, nil
}

func (m *MockEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	if m.OnGetEmbedding != nil {
		return m.OnGetEmbedding(ctx, query)
	}
	return []float32{0.1}, nil
}

// MockLLM implements llm.Provider
type MockLLM struct {
	OnGenerate func(ctx context.Context, query string, matches []string, history []string) (string, error)
}

func (m *MockLLM) Generate(ctx context.Context, q string, mth []string, hist []string) (string, error) {
	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, q, mth, hist)
	}
	return "mocked llm response", nil
}

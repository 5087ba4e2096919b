package store_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/mbalza/DocChatAPI/internal/config"
	"github.com/mbalza/DocChatAPI/internal/data/redisStore"
	"github.com/mbalza/DocChatAPI/internal/data/store"
	"github.com/mbalza/DocChatAPI/internal/domain/commonModels"
)

func testCollection() commonModels.IndexedCollection {
	return commonModels.IndexedCollection{
		{Page: 1, Paragraph: 0, Embedding: []float32{0.1, 0.2}, Text: "first paragraph", Source: commonModels.SourcePDF},
		{Page: 1, Paragraph: 1, Embedding: []float32{0.3, 0.4}, Text: "second paragraph", Source: commonModels.SourcePDF},
		{Page: 3, Paragraph: 0, Embedding: []float32{0.5, 0.6}, Text: "later page", Source: commonModels.SourcePDF},
	}
}

func TestRedisCollectionStore_Roundtrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	collectionStore := store.TestCollectionStore(redisStore.NewTestStore(client))

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")

	original := testCollection()
	if err := collectionStore.StoreCollection(ctx, "manual.pdf", original); err != nil {
		t.Fatalf("StoreCollection failed: %v", err)
	}

	retrieved, err := collectionStore.RetrieveCollection(ctx, "manual.pdf")
	if err != nil {
		t.Fatalf("RetrieveCollection failed: %v", err)
	}
	if len(retrieved) != len(original) {
		t.Fatalf("got %d records, want %d", len(retrieved), len(original))
	}
	for i := range original {
		if retrieved[i].Page != original[i].Page ||
			retrieved[i].Paragraph != original[i].Paragraph ||
			retrieved[i].Text != original[i].Text ||
			retrieved[i].Source != original[i].Source {
			t.Errorf("record %d differs after roundtrip: %+v vs %+v", i, retrieved[i], original[i])
		}
		if len(retrieved[i].Embedding) != len(original[i].Embedding) {
			t.Errorf("record %d embedding length changed", i)
		}
	}
}

func TestRedisCollectionStore_MissingIsEmptyNotError(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	collectionStore := store.TestCollectionStore(redisStore.NewTestStore(client))

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")

	retrieved, err := collectionStore.RetrieveCollection(ctx, "never-uploaded.pdf")
	if err != nil {
		t.Fatalf("missing collection must not be an error, got: %v", err)
	}
	if len(retrieved) != 0 {
		t.Errorf("expected empty collection, got %d records", len(retrieved))
	}
}

func TestRedisCollectionStore_FilenameIsTheKey(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	collectionStore := store.TestCollectionStore(redisStore.NewTestStore(client))

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")

	first := commonModels.IndexedCollection{{Page: 1, Text: "original content"}}
	second := commonModels.IndexedCollection{{Page: 1, Text: "replacement content"}}

	if err := collectionStore.StoreCollection(ctx, "report.pdf", first); err != nil {
		t.Fatalf("StoreCollection failed: %v", err)
	}
	// Same filename overwrites, there is no content hashing.
	if err := collectionStore.StoreCollection(ctx, "report.pdf", second); err != nil {
		t.Fatalf("StoreCollection failed: %v", err)
	}

	retrieved, err := collectionStore.RetrieveCollection(ctx, "report.pdf")
	if err != nil {
		t.Fatalf("RetrieveCollection failed: %v", err)
	}
	if len(retrieved) != 1 || retrieved[0].Text != "replacement content" {
		t.Errorf("expected the second write to win, got %+v", retrieved)
	}
}

func TestInMemoryCollectionStore(t *testing.T) {
	collectionStore := store.InitInMemoryCollectionStore()
	ctx := context.Background()

	if err := collectionStore.StoreCollection(ctx, "doc.pdf", testCollection()); err != nil {
		t.Fatalf("StoreCollection failed: %v", err)
	}

	retrieved, err := collectionStore.RetrieveCollection(ctx, "doc.pdf")
	if err != nil {
		t.Fatalf("RetrieveCollection failed: %v", err)
	}
	if len(retrieved) != 3 {
		t.Errorf("got %d records, want 3", len(retrieved))
	}

	missing, err := collectionStore.RetrieveCollection(ctx, "ghost.pdf")
	if err != nil {
		t.Fatalf("missing collection must not be an error, got: %v", err)
	}
	if len(missing) != 0 {
		t.Errorf("expected empty collection for unknown name")
	}
}

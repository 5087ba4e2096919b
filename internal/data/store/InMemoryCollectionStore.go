package store

import (
	"context"
	"sync"

	"github.com/mbalza/DocChatAPI/internal/domain/commonModels"
)

// InMemoryCollectionStore backs single-process setups and the MCP server,
// where running Redis alongside is not worth it.
type InMemoryCollectionStore struct {
	lock        *sync.RWMutex
	collections map[string]commonModels.IndexedCollection
}

func InitInMemoryCollectionStore() *InMemoryCollectionStore {
	return &InMemoryCollectionStore{
		lock:        new(sync.RWMutex),
		collections: make(map[string]commonModels.IndexedCollection),
	}
}

func (store *InMemoryCollectionStore) StoreCollection(ctx context.Context, filename string, collection commonModels.IndexedCollection) error {
	store.lock.Lock()
	defer store.lock.Unlock()
	store.collections[filename] = collection
	return nil
}

func (store *InMemoryCollectionStore) RetrieveCollection(ctx context.Context, filename string) (commonModels.IndexedCollection, error) {
	store.lock.RLock()
	defer store.lock.RUnlock()
	collection, found := store.collections[filename]
	if !found {
		return commonModels.IndexedCollection{}, nil
	}
	return collection, nil
}

package store

import (
	"context"
	"encoding/json"

	"github.com/mbalza/DocChatAPI/internal/config"
	"github.com/mbalza/DocChatAPI/internal/data/redisStore"
	"github.com/mbalza/DocChatAPI/internal/domain/commonModels"
	"github.com/mbalza/DocChatAPI/pkg/logger_i"
)

// RedisCollectionStore keeps one serialized IndexedCollection per document
// filename. Collections never expire, the filename is the whole key, so a
// re-upload under the same name keeps serving the stored index.
type RedisCollectionStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisCollectionStore(ctx context.Context) *RedisCollectionStore {
	backing := redisStore.GetRedisStore(ctx, config.RedisCollectionStore)
	if backing == nil {
		return nil
	}
	return &RedisCollectionStore{
		store:  backing,
		logger: logger_i.NewLogger("CollectionStore"),
	}
}

func (s *RedisCollectionStore) StoreCollection(ctx context.Context, filename string, collection commonModels.IndexedCollection) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "filename", filename)
	log.Debug("saving collection", "records", len(collection))

	data, err := json.Marshal(collection)
	if err != nil {
		return err
	}

	err = s.store.Set(ctx, filename, data, config.RedisCollectionTTL)
	if err == nil {
		log.Debug("Saved collection to Redis")
	}
	return err
}

func (s *RedisCollectionStore) RetrieveCollection(ctx context.Context, filename string) (commonModels.IndexedCollection, error) {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "filename", filename)
	log.Debug("getting collection")

	val, err := s.store.Get(ctx, filename)
	if s.store.IsNil(err) {
		// nothing stored under the name, callers treat this as empty
		return commonModels.IndexedCollection{}, nil
	} else if err != nil {
		return nil, err
	}

	var collection commonModels.IndexedCollection
	if err := json.Unmarshal([]byte(val), &collection); err != nil {
		return nil, err
	}

	log.Debug("Collection found in Redis", "records", len(collection))
	return collection, nil
}

func TestCollectionStore(store *redisStore.Store) *RedisCollectionStore {
	return &RedisCollectionStore{
		store:  store,
		logger: logger_i.NewLogger("test redis"),
	}
}

package config

import (
	"log/slog"
	"os"
	"time"
)

const (
	IS_PROD        = false
	LOG_LEVEL_PROD = slog.LevelInfo
	TRACE_ID_KEY   = "traceId"

	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	//retrieval pipeline
	//top-4 chunks per question, candidates must score strictly above the threshold
	TopKCandidates        = 4
	NaiveRAGThreshold     = 0.75
	CacheSimilarityCutoff = 0.97

	//streaming - interactive endpoints pace the answer one word at a time,
	//workers and tests run the emitter with zero delay
	StreamWordDelay = 30 * time.Millisecond

	//TODO:dimensionality differs per embedding provider, plumb it from the provider
	EmbeddingOutputDimensionality int32 = 1536

	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 10
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 10 * time.Second
	StreamWriteTimeout     = 120 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	ServerListenAddr = ":3000"

	//job requests buffer limit
	BufferLimit = 100

	//qdrant answer cache
	QdrantConnectionTimeout = 30 * time.Second
	QdrantHost              = ""
	QdrantPort              = 6333
	QdrantGrpcPort          = 6334
	QdrantUseTLS            = false
	QdrantPoolSize          = 1
	QdrantKeepAliveTimeout  = 30 * time.Second
	SemanticCacheCollection = "semantic-cache"

	//llm
	GeminiModelName = "gemini-2.5-flash-lite-preview-09-2025"
	OpenAIModelName = "gpt-4o-mini"

	//embeddings
	GoogleEmbeddingModel = "gemini-embedding-001"
	OpenAIEmbeddingModel = "text-embedding-3-small"

	//which provider pair serves the pipeline: "gemini" or "openai"
	ModelProvider = "gemini"

	ModelTemperature float32 = 0.7
	ModelContext             = "You are a technical support assistant answering from the provided documents. Keep the tone professional and say you don't know when the context doesn't cover the question."

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	//redis has 16 DBs we can use
	RedisJobStore        = 0
	RedisMessageStore    = 1
	RedisCollectionStore = 2

	//redis timeouts
	RedisJobStoreTTL     = 24 * time.Hour
	RedisMessageStoreTTL = 24 * time.Hour
	//stored collections are reused across queries, they do not expire
	RedisCollectionTTL = 0 * time.Second

	NoAuthBypass = false
)

var (
	RedisPassword         = os.Getenv("REDIS_PASSWORD")
	AuthToken             = os.Getenv("AUTH_TOKEN")
	GoogleEmbeddingAPIKey = os.Getenv("GEMINI_API_KEY")
	OpenAIAPIKey          = os.Getenv("OPENAI_API_KEY")
)

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mbalza/DocChatAPI/internal/config"
	"github.com/mbalza/DocChatAPI/internal/data/store"
	"github.com/mbalza/DocChatAPI/internal/domain/commonModels"
	"github.com/mbalza/DocChatAPI/internal/mcpserver"
	"github.com/mbalza/DocChatAPI/internal/rag"
	"github.com/mbalza/DocChatAPI/internal/rag/embedding/googleEmbedding"
	"github.com/mbalza/DocChatAPI/internal/rag/embedding/openaiEmbedding"
	"github.com/mbalza/DocChatAPI/internal/rag/llm/gemini"
	"github.com/mbalza/DocChatAPI/internal/rag/llm/openaiLLM"
	"github.com/mbalza/DocChatAPI/internal/rag/vectorDB"
	"github.com/mbalza/DocChatAPI/pkg/logger_i"
)

// The MCP entry point reads collections from the shared Redis store, so
// documents ingested through the API are immediately queryable by agents.
// Qdrant is optional here, a miss on every cache lookup is fine for the
// low call volume an agent produces.
func main() {
	logger_i.Init()
	logger := logger_i.NewLogger("mcp-main")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var collections commonModels.CollectionStore
	if redisCollections := store.GetRedisCollectionStore(ctx); redisCollections != nil {
		collections = redisCollections
	} else {
		logger.Error("Redis collection store is offline, falling back to in-memory")
		collections = store.InitInMemoryCollectionStore()
	}

	var embedder = googleEmbedding.GetGoogleEmbeddingClient(ctx, config.GoogleEmbeddingModel, config.GoogleEmbeddingAPIKey)
	var llmProvider = gemini.GetGeminiClient(ctx, config.GeminiModelName, config.GoogleEmbeddingAPIKey)
	if config.ModelProvider == "openai" {
		embedder = openaiEmbedding.GetOpenAIEmbeddingClient(config.OpenAIEmbeddingModel, config.OpenAIAPIKey)
		llmProvider = openaiLLM.GetOpenAIClient(config.OpenAIModelName, config.OpenAIAPIKey)
	}
	if embedder == nil || llmProvider == nil {
		logger.Error("Model providers failed to initialize")
		os.Exit(1)
	}

	ragService := rag.NewService(vectorDB.NoopCache{}, collections, llmProvider, embedder)

	srv, err := mcpserver.NewServer(ragService)
	if err != nil {
		logger.Error("Could not create MCP server", "error", err)
		os.Exit(1)
	}

	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("MCP server stopped", "error", err)
		os.Exit(1)
	}
}

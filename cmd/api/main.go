package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/mbalza/DocChatAPI/internal/config"
	"github.com/mbalza/DocChatAPI/internal/data/store"
	"github.com/mbalza/DocChatAPI/internal/domain/commonModels"
	jobmodel "github.com/mbalza/DocChatAPI/internal/domain/jobModel"
	"github.com/mbalza/DocChatAPI/internal/handlers"
	"github.com/mbalza/DocChatAPI/internal/job"
	"github.com/mbalza/DocChatAPI/internal/rag"
	"github.com/mbalza/DocChatAPI/internal/rag/embedding"
	"github.com/mbalza/DocChatAPI/internal/rag/embedding/googleEmbedding"
	"github.com/mbalza/DocChatAPI/internal/rag/embedding/openaiEmbedding"
	"github.com/mbalza/DocChatAPI/internal/rag/llm"
	"github.com/mbalza/DocChatAPI/internal/rag/llm/gemini"
	"github.com/mbalza/DocChatAPI/internal/rag/llm/openaiLLM"
	"github.com/mbalza/DocChatAPI/internal/rag/vectorDB"
	"github.com/mbalza/DocChatAPI/internal/rag/vectorDB/qdrantDB"
	"github.com/mbalza/DocChatAPI/internal/server"
	"github.com/mbalza/DocChatAPI/internal/worker"
	"github.com/mbalza/DocChatAPI/pkg/logger_i"
)

var (
	listenAddr        string
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {
	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	//init buffered job channel
	jobChannel := make(chan jobmodel.Job, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//init job service and job store
	serviceConfig := job.ServiceConfig{
		JobChannel:        jobChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
	}
	logger.Info("Starting job service")

	jobStore := store.GetRedisJobStore(serviceContext)
	messageStore := store.GetRedisMessageStore(serviceContext)
	if jobStore == nil || messageStore == nil {
		logger.Error("Redis stores are offline")
		serviceConfig.JobStore = store.InitInMemoryJobStore()
		serviceConfig.MessageStore = store.InitMessageStore()
	} else {
		serviceConfig.JobStore = jobStore
		serviceConfig.MessageStore = messageStore
	}
	service := job.InitJobService(serviceConfig)

	var collections commonModels.CollectionStore
	if redisCollections := store.GetRedisCollectionStore(serviceContext); redisCollections != nil {
		collections = redisCollections
	} else {
		logger.Error("Redis collection store is offline, indexed documents will not survive restarts")
		collections = store.InitInMemoryCollectionStore()
	}

	var answerCache vectorDB.AnswerCache
	if qdrantClient := qdrantDB.GetQuadrantClient(serviceContext); qdrantClient != nil {
		answerCache = qdrantClient
	} else {
		logger.Error("Qdrant is offline, semantic answer cache disabled")
		answerCache = vectorDB.NoopCache{}
	}

	embeddingService, llmProvider := initProviders(serviceContext, logger)
	if embeddingService == nil || llmProvider == nil {
		logger.Error("Model providers failed to initialize. Shutting down.")
		logger.Debug("Available services : ", "EmbeddingService", embeddingService != nil, "LLMProvider", llmProvider != nil)
		return
	}

	ragService := rag.NewService(answerCache, collections, llmProvider, embeddingService)

	handlers.InitJobHandler(service)
	handlers.InitStreamHandler(ragService)

	//init worker pool
	worker.InitServices(service, ragService)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}

func initProviders(ctx context.Context, logger *logger_i.Logger) (embedding.Embedder, llm.Provider) {
	switch config.ModelProvider {
	case "openai":
		logger.Info("Using OpenAI providers")
		return openaiEmbedding.GetOpenAIEmbeddingClient(config.OpenAIEmbeddingModel, config.OpenAIAPIKey),
			openaiLLM.GetOpenAIClient(config.OpenAIModelName, config.OpenAIAPIKey)
	default:
		logger.Info("Using Gemini providers")
		return googleEmbedding.GetGoogleEmbeddingClient(ctx, config.GoogleEmbeddingModel, config.GoogleEmbeddingAPIKey),
			gemini.GetGeminiClient(ctx, config.GeminiModelName, config.GoogleEmbeddingAPIKey)
	}
}

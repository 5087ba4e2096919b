package rag

import (
	"context"
	"errors"
	"time"

	"github.com/mbalza/DocChatAPI/internal/adapter/utils"
	"github.com/mbalza/DocChatAPI/internal/config"
	"github.com/mbalza/DocChatAPI/internal/domain/commonModels"
	"github.com/mbalza/DocChatAPI/internal/domain/jobModel"
	"github.com/mbalza/DocChatAPI/internal/metrics"
	"github.com/mbalza/DocChatAPI/internal/rag/compose"
	"github.com/mbalza/DocChatAPI/internal/rag/embedding"
	"github.com/mbalza/DocChatAPI/internal/rag/ingest"
	"github.com/mbalza/DocChatAPI/internal/rag/llm"
	"github.com/mbalza/DocChatAPI/internal/rag/stream"
	"github.com/mbalza/DocChatAPI/internal/rag/vectorDB"
	"github.com/mbalza/DocChatAPI/pkg/logger_i"
)

// Service is all the worker and the stream handler see of the pipeline.
// The private struct below holds the provider clients and stores, callers
// swap them for mocks through NewService.
type Service interface {
	ProcessRequest(ctx context.Context, job jobModel.Job, messageHistory []string) jobModel.Job
	IngestDocument(ctx context.Context, job jobModel.Job) jobModel.Job
	ResponseGenerator(ctx context.Context, question string, documentName string) (<-chan string, error)
}

type service struct {
	answerCache vectorDB.AnswerCache
	collections commonModels.CollectionStore
	llmProvider llm.Provider
	embedder    embedding.Embedder
	emitter     stream.Emitter
	logger      *logger_i.Logger
}

// NewService constructor
func NewService(cache vectorDB.AnswerCache, collections commonModels.CollectionStore, llm llm.Provider, em embedding.Embedder) Service {
	return &service{
		answerCache: cache,
		collections: collections,
		llmProvider: llm,
		embedder:    em,
		emitter:     stream.NewEmitter(config.StreamWordDelay),
		logger:      logger_i.NewLogger("RAG Service :"),
	}
}

func (s *service) ProcessRequest(ctx context.Context, jobt jobModel.Job, messageHistory []string) jobModel.Job {
	inMethodLogger := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY).(string), "JobId", jobt.Id)

	processContext, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	jobt.CurrentStep = jobModel.RAGCall

	// Embedding
	questionVector, err := s.executeEmbeddingStep(processContext, inMethodLogger, &jobt)
	if err != nil {
		return s.jobError(jobt, err, "EMBEDDING_FAILURE", true)
	}

	// Cache Check
	cachedAnswer, found := s.executeCacheCheckStep(ctx, inMethodLogger, &jobt, questionVector)
	if found {
		return returnOutput(jobt, cachedAnswer)
	}

	// In-process ranking over the stored collection
	candidates, err := s.executeRetrievalStep(processContext, inMethodLogger, &jobt, questionVector)
	if err != nil {
		return s.jobError(jobt, err, "RETRIEVAL_FAILURE", true)
	}

	// Answer composition, LLM only runs on the narrative branch
	answer, err := s.executeComposeStep(processContext, inMethodLogger, &jobt, candidates, messageHistory)
	if err != nil {
		return s.jobError(jobt, err, "LLM_GENERATION_FAILURE", true)
	}

	//Background Cache Save, the sentinel is not worth caching
	if answer != compose.NoContextAnswer {
		go func() {
			err := s.answerCache.SaveToCache(ctx, utils.GetNewUUID(), questionVector, answer)
			if err != nil {
				s.logger.Error("Failed to save to cache")
			}
		}()
	}

	return returnOutput(jobt, answer)
}

func (s *service) IngestDocument(ctx context.Context, job jobModel.Job) jobModel.Job {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("Document_ingestion", time.Since(start)) }()
	j := ingest.ProcessDocumentIngestion(ctx, job, s.embedder, s.collections)
	if j.Status != jobModel.JobStatusComplete {
		return s.jobError(j, errors.New("ingest Document Failed"), "INGESTION_FAILURE", true)
	}
	return j
}

// ResponseGenerator answers synchronously and hands back a channel pacing
// the answer word by word. The channel closes after the last word or when
// ctx is cancelled.
func (s *service) ResponseGenerator(ctx context.Context, question string, documentName string) (<-chan string, error) {
	job := jobModel.Job{
		Id:      utils.GetNewUUID(),
		JobType: jobModel.JobTypeQuery,
		JobPayload: jobModel.JobPayload{
			Question:     question,
			DocumentName: documentName,
		},
		Status: jobModel.JobStatusRunning,
	}

	job = s.ProcessRequest(ctx, job, nil)
	if job.Status == jobModel.JobStatusError {
		return nil, errors.New(job.Error.Message)
	}

	return s.emitter.Emit(ctx, job.JobPayload.Answer), nil
}

package rag

import (
	"context"
	"net/http"
	"time"

	"github.com/mbalza/DocChatAPI/internal/domain/commonModels"
	"github.com/mbalza/DocChatAPI/internal/domain/jobModel"
	"github.com/mbalza/DocChatAPI/internal/metrics"
	"github.com/mbalza/DocChatAPI/internal/rag/compose"
	"github.com/mbalza/DocChatAPI/internal/rag/retrieval"
	"github.com/mbalza/DocChatAPI/pkg/logger_i"
)

func returnOutput(job jobModel.Job, ans string) jobModel.Job {
	job.JobPayload.Answer = ans
	job.CurrentStep = jobModel.Complete
	return job
}

func logOutput(job jobModel.Job, status jobModel.InternalStatus, log *logger_i.Logger) jobModel.Job {
	job.CurrentStep = status
	log.Debug("ProcessRequest", "Current Status", job.CurrentStep)
	return job
}

func (s *service) jobError(job jobModel.Job, err error, message string, canRetry bool) jobModel.Job {
	s.logger.Error(message, "error", err)

	job.Error = jobModel.JobError{
		Code:    http.StatusInternalServerError,
		Message: "Internal Server Error",
		Retry:   canRetry,
	}
	job.Status = jobModel.JobStatusError
	return job
}

func (s *service) executeEmbeddingStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job) ([]float32, error) {
	*job = logOutput(*job, jobModel.EmbeddingAPICall, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("embedding", time.Since(start)) }()

	return s.embedder.GetEmbedding(ctx, job.JobPayload.Question)
}

func (s *service) executeCacheCheckStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job, emb []float32) (string, bool) {
	*job = logOutput(*job, jobModel.CacheCall, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("cache_lookup", time.Since(start)) }()

	ans, found, _ := s.answerCache.GetCachedAnswer(ctx, emb)
	if found {
		metrics.IncrementCacheHits()
	}
	return ans, found
}

// executeRetrievalStep loads the stored collection for the target document
// and ranks it in process. A document with no stored collection yields no
// candidates, the composer turns that into the sentinel answer.
func (s *service) executeRetrievalStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job, emb []float32) ([]commonModels.RankedCandidate, error) {
	*job = logOutput(*job, jobModel.RetrievalCall, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("retrieval", time.Since(start)) }()

	collection, err := s.collections.RetrieveCollection(ctx, job.JobPayload.DocumentName)
	if err != nil {
		return nil, err
	}

	candidates := retrieval.FilterRelevant(retrieval.Rank(collection, emb))
	log.Debug("ProcessRequest", "relevant candidates", len(candidates))
	return candidates, nil
}

func (s *service) executeComposeStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job, candidates []commonModels.RankedCandidate, history []string) (string, error) {
	*job = logOutput(*job, jobModel.LLMCall, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_generation", time.Since(start)) }()

	answer, err := compose.Compose(ctx, job.JobPayload.Question, candidates, s.llmProvider, history)
	if err != nil {
		return "", err
	}
	job.JobPayload.Sources = compose.CitationLines(candidates)
	return answer, nil
}

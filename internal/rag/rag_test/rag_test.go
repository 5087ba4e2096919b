package rag_test

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/mbalza/DocChatAPI/internal/config"
	"github.com/mbalza/DocChatAPI/internal/domain/commonModels"
	"github.com/mbalza/DocChatAPI/internal/domain/jobModel"
	"github.com/mbalza/DocChatAPI/internal/rag"
	"github.com/mbalza/DocChatAPI/internal/rag/compose"
)

func TestProcessRequest_Scenarios(t *testing.T) {
	tests := []struct {
		name            string
		setupMocks      func(e *MockEmbedder, c *MockAnswerCache, s *MockCollectionStore, l *MockLLM)
		expectedStatus  jobModel.JobStatus
		expectedAnswer  string
		expectedSources []string
		expectedErr     string
	}{
		{
			name: "Success_Full_Flow",
			setupMocks: func(e *MockEmbedder, c *MockAnswerCache, s *MockCollectionStore, l *MockLLM) {
				l.OnGenerate = func(ctx context.Context, q string, m []string, h []string) (string, error) {
					return "final answer", nil
				}
			},
			expectedStatus:  jobModel.JobStatusRunning,
			expectedAnswer:  "final answer\n\nSources:\n- PDF, Page 1: Sections 0\n",
			expectedSources: []string{"- PDF, Page 1: Sections 0"},
		},
		{
			name: "Success_Cache_Hit",
			setupMocks: func(e *MockEmbedder, c *MockAnswerCache, s *MockCollectionStore, l *MockLLM) {
				c.OnGetCachedAnswer = func(ctx context.Context, emb []float32) (string, bool, error) {
					return "cached answer", true, nil
				}
				l.OnGenerate = func(ctx context.Context, q string, m []string, h []string) (string, error) {
					return "", errors.New("provider must not be called on a cache hit")
				}
			},
			expectedStatus: jobModel.JobStatusRunning,
			expectedAnswer: "cached answer",
		},
		{
			name: "Success_Sentinel_On_Empty_Collection",
			setupMocks: func(e *MockEmbedder, c *MockAnswerCache, s *MockCollectionStore, l *MockLLM) {
				s.OnRetrieveCollection = func(ctx context.Context, filename string) (commonModels.IndexedCollection, error) {
					return commonModels.IndexedCollection{}, nil
				}
				l.OnGenerate = func(ctx context.Context, q string, m []string, h []string) (string, error) {
					return "", errors.New("provider must not be called without candidates")
				}
			},
			expectedStatus: jobModel.JobStatusRunning,
			expectedAnswer: compose.NoContextAnswer,
		},
		{
			name: "Failure_Embedding",
			setupMocks: func(e *MockEmbedder, c *MockAnswerCache, s *MockCollectionStore, l *MockLLM) {
				e.OnGetEmbedding = func(ctx context.Context, text string) ([]float32, error) {
					return nil, errors.New("api limit")
				}
			},
			expectedStatus: jobModel.JobStatusError,
			expectedErr:    "EMBEDDING_FAILURE",
		},
		{
			name: "Failure_Collection_Lookup",
			setupMocks: func(e *MockEmbedder, c *MockAnswerCache, s *MockCollectionStore, l *MockLLM) {
				s.OnRetrieveCollection = func(ctx context.Context, filename string) (commonModels.IndexedCollection, error) {
					return nil, errors.New("store timeout")
				}
			},
			expectedStatus: jobModel.JobStatusError,
			expectedErr:    "RETRIEVAL_FAILURE",
		},
		{
			name: "Failure_LLM_Generation",
			setupMocks: func(e *MockEmbedder, c *MockAnswerCache, s *MockCollectionStore, l *MockLLM) {
				l.OnGenerate = func(ctx context.Context, q string, m []string, h []string) (string, error) {
					return "", errors.New("provider down")
				}
			},
			expectedStatus: jobModel.JobStatusError,
			expectedErr:    "LLM_GENERATION_FAILURE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mEmbed := &MockEmbedder{}
			mCache := &MockAnswerCache{}
			mStore := &MockCollectionStore{}
			mLLM := &MockLLM{}

			tt.setupMocks(mEmbed, mCache, mStore, mLLM)

			s := rag.NewService(mCache, mStore, mLLM, mEmbed)

			ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
			job := jobModel.Job{
				Id:     "test-job",
				Status: jobModel.JobStatusRunning,
				JobPayload: jobModel.JobPayload{
					Question:     "test question",
					DocumentName: "report.pdf",
				},
			}

			result := s.ProcessRequest(ctx, job, []string{})

			if result.Status != tt.expectedStatus {
				t.Errorf("Status got %v, want %v", result.Status, tt.expectedStatus)
			}

			if tt.expectedAnswer != "" && result.JobPayload.Answer != tt.expectedAnswer {
				t.Errorf("Answer got %q, want %q", result.JobPayload.Answer, tt.expectedAnswer)
			}

			if len(tt.expectedSources) > 0 {
				if len(result.JobPayload.Sources) != len(tt.expectedSources) {
					t.Fatalf("Sources got %v, want %v", result.JobPayload.Sources, tt.expectedSources)
				}
				for i, want := range tt.expectedSources {
					if result.JobPayload.Sources[i] != want {
						t.Errorf("Sources[%d] got %q, want %q", i, result.JobPayload.Sources[i], want)
					}
				}
			}

			if tt.expectedErr != "" && result.Error.Code != http.StatusInternalServerError {
				t.Errorf("Error Code got %d, want %s", result.Error.Code, tt.expectedErr)
			}
		})
	}
}

// A composed answer is written back to the cache, the sentinel is not.
func TestProcessRequest_CacheWriteback(t *testing.T) {
	saved := make(chan string, 1)
	mCache := &MockAnswerCache{
		OnSaveToCache: func(ctx context.Context, id string, v []float32, a string) error {
			saved <- a
			return nil
		},
	}
	mLLM := &MockLLM{
		OnGenerate: func(ctx context.Context, q string, m []string, h []string) (string, error) {
			return "fresh answer", nil
		},
	}

	s := rag.NewService(mCache, &MockCollectionStore{}, mLLM, &MockEmbedder{})
	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "cache-trace")
	job := jobModel.Job{
		Id:         "cache-job",
		JobPayload: jobModel.JobPayload{Question: "q", DocumentName: "report.pdf"},
	}

	s.ProcessRequest(ctx, job, nil)

	select {
	case answer := <-saved:
		if !strings.HasPrefix(answer, "fresh answer") {
			t.Errorf("cached answer got %q, want prefix %q", answer, "fresh answer")
		}
	case <-time.After(time.Second):
		t.Fatal("expected the answer to be saved to the cache")
	}
}

func TestProcessRequest_SentinelNotCached(t *testing.T) {
	saved := make(chan string, 1)
	mCache := &MockAnswerCache{
		OnSaveToCache: func(ctx context.Context, id string, v []float32, a string) error {
			saved <- a
			return nil
		},
	}
	mStore := &MockCollectionStore{
		OnRetrieveCollection: func(ctx context.Context, filename string) (commonModels.IndexedCollection, error) {
			return commonModels.IndexedCollection{}, nil
		},
	}

	s := rag.NewService(mCache, mStore, &MockLLM{}, &MockEmbedder{})
	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "sentinel-trace")
	job := jobModel.Job{
		Id:         "sentinel-job",
		JobPayload: jobModel.JobPayload{Question: "q", DocumentName: "report.pdf"},
	}

	result := s.ProcessRequest(ctx, job, nil)
	if result.JobPayload.Answer != compose.NoContextAnswer {
		t.Fatalf("Answer got %q, want the sentinel", result.JobPayload.Answer)
	}

	select {
	case answer := <-saved:
		t.Errorf("sentinel answer was cached: %q", answer)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestResponseGenerator_StreamsAnswer(t *testing.T) {
	mLLM := &MockLLM{
		OnGenerate: func(ctx context.Context, q string, m []string, h []string) (string, error) {
			return "streamed words", nil
		},
	}
	s := rag.NewService(&MockAnswerCache{}, &MockCollectionStore{}, mLLM, &MockEmbedder{})

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "stream-trace")
	chunks, err := s.ResponseGenerator(ctx, "test question", "report.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var b strings.Builder
	for chunk := range chunks {
		if !strings.HasSuffix(chunk, " ") {
			t.Errorf("chunk %q does not end with a space", chunk)
		}
		b.WriteString(chunk)
	}

	fullAnswer := "streamed words\n\nSources:\n- PDF, Page 1: Sections 0\n"
	want := strings.Join(strings.Fields(fullAnswer), " ") + " "
	if b.String() != want {
		t.Errorf("reconstructed stream got %q, want %q", b.String(), want)
	}
}

func TestResponseGenerator_PropagatesFailure(t *testing.T) {
	mEmbed := &MockEmbedder{
		OnGetEmbedding: func(ctx context.Context, text string) ([]float32, error) {
			return nil, errors.New("api limit")
		},
	}
	s := rag.NewService(&MockAnswerCache{}, &MockCollectionStore{}, &MockLLM{}, mEmbed)

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "stream-err-trace")
	chunks, err := s.ResponseGenerator(ctx, "test question", "report.pdf")
	if err == nil {
		t.Fatal("expected an error")
	}
	if chunks != nil {
		t.Error("expected a nil channel on failure")
	}
}

func TestIngestDocument_Scenarios(t *testing.T) {
	dummyFile := "test_ingest.txt"

	tests := []struct {
		name           string
		setupMocks     func(e *MockEmbedder, s *MockCollectionStore)
		expectedStatus jobModel.JobStatus
	}{
		{
			name: "Ingestion_Success",
			setupMocks: func(e *MockEmbedder, s *MockCollectionStore) {
				s.OnRetrieveCollection = func(ctx context.Context, filename string) (commonModels.IndexedCollection, error) {
					return commonModels.IndexedCollection{}, nil
				}
			},
			expectedStatus: jobModel.JobStatusComplete,
		},
		{
			name: "Skip_Already_Stored",
			setupMocks: func(e *MockEmbedder, s *MockCollectionStore) {
				e.OnBatchEmbedding = func(ctx context.Context, chunks []string) ([][]float32, error) {
					return nil, errors.New("embedder must not run for a stored document")
				}
			},
			expectedStatus: jobModel.JobStatusComplete,
		},
		{
			name: "Failure_Store",
			setupMocks: func(e *MockEmbedder, s *MockCollectionStore) {
				s.OnRetrieveCollection = func(ctx context.Context, filename string) (commonModels.IndexedCollection, error) {
					return commonModels.IndexedCollection{}, nil
				}
				s.OnStoreCollection = func(ctx context.Context, filename string, collection commonModels.IndexedCollection) error {
					return errors.New("disk full")
				}
			},
			expectedStatus: jobModel.JobStatusError,
		},
		{
			name: "Failure_Batch_Embedding",
			setupMocks: func(e *MockEmbedder, s *MockCollectionStore) {
				s.OnRetrieveCollection = func(ctx context.Context, filename string) (commonModels.IndexedCollection, error) {
					return commonModels.IndexedCollection{}, nil
				}
				e.OnBatchEmbedding = func(ctx context.Context, chunks []string) ([][]float32, error) {
					return nil, errors.New("api limit")
				}
			},
			expectedStatus: jobModel.JobStatusError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Ingestion deletes the upload on success, recreate per test.
			if err := os.WriteFile(dummyFile, []byte("test content for ingestion"), 0644); err != nil {
				t.Fatalf("writing fixture: %v", err)
			}
			t.Cleanup(func() { os.Remove(dummyFile) })

			mEmbed := &MockEmbedder{}
			mStore := &MockCollectionStore{}

			tt.setupMocks(mEmbed, mStore)

			s := rag.NewService(&MockAnswerCache{}, mStore, &MockLLM{}, mEmbed)

			ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "ingest-trace")
			job := jobModel.Job{
				Id:      "ingest-job-1",
				JobType: jobModel.JobTypeIngest,
				JobPayload: jobModel.JobPayload{
					IngestFileName: "test_ingest.txt",
					IngestURL:      dummyFile,
				},
			}

			result := s.IngestDocument(ctx, job)

			if result.Status != tt.expectedStatus {
				t.Errorf("Status got %v, want %v", result.Status, tt.expectedStatus)
			}

			if tt.expectedStatus == jobModel.JobStatusError && result.Error.Code != http.StatusInternalServerError {
				t.Errorf("Error Code got %d, want %d", result.Error.Code, http.StatusInternalServerError)
			}
		})
	}
}

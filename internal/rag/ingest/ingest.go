package ingest

import (
	"context"
	"os"
	"time"

	"github.com/mbalza/DocChatAPI/internal/config"
	"github.com/mbalza/DocChatAPI/internal/domain/commonModels"
	"github.com/mbalza/DocChatAPI/internal/domain/jobModel"
	"github.com/mbalza/DocChatAPI/internal/rag/embedding"
	"github.com/mbalza/DocChatAPI/internal/rag/index"
	"github.com/mbalza/DocChatAPI/pkg/logger_i"
)

var logger *logger_i.Logger

// ProcessDocumentIngestion extracts an uploaded document, embeds it and
// persists the resulting collection under the document filename. A name
// that already has a stored collection is skipped, so re-uploading a
// changed file under the same name keeps serving the old index.
func ProcessDocumentIngestion(ctx context.Context, job jobModel.Job, e embedding.Embedder, collections commonModels.CollectionStore) jobModel.Job {
	logger = logger_i.NewLogger("Document Ingestion ")
	logger.With("traceId", ctx.Value(config.TRACE_ID_KEY).(string))

	docName := job.JobPayload.IngestFileName
	docPath := job.JobPayload.IngestURL

	logger.Debug("Processing document", "filename", docName, "path", docPath)

	job.CurrentStep = jobModel.IngestProcessing

	existing, err := collections.RetrieveCollection(ctx, docName)
	if err != nil {
		logger.Error("Error checking for stored collection", "error", err)
		job.Status = jobModel.JobStatusError
		job.Error.Message = "Error reading collection store"
		return job
	}
	if len(existing) > 0 {
		logger.Debug("Collection already stored, skipping re-index", "filename", docName)
		removeUpload(docPath)
		job.Status = jobModel.JobStatusComplete
		return job
	}

	docType := getDocType(docPath)
	logger.Debug("Processing document", "type", docType)
	if docType == commonModels.SourceErr {
		logger.Error("Unsupported document type", "path", docPath)
		job.Status = jobModel.JobStatusError
		job.Error.Message = "Unsupported document type"
		return job
	}

	doc := commonModels.Document{
		Id:                  job.Id,
		Name:                docName,
		LastIngestTimestamp: time.Now(),
		ContentType:         docType,
	}

	corpus, err := extractCorpus(docPath, doc.ContentType)
	if err != nil {
		logger.Error("Error processing document", "error", err)
		job.Status = jobModel.JobStatusError
		job.Error.Message = "Error extracting document content"
		return job
	}

	logger.Debug("Processing document", "Number of segments: ", len(corpus))

	collection, err := index.ComputeEmbeddings(ctx, corpus, e)
	if err != nil {
		logger.Error("Error embedding document", "error", err)
		job.Status = jobModel.JobStatusError
		job.Error.Message = "Error embedding document content"
		return job
	}
	overrideSource(collection, doc.ContentType)

	logger.Debug("Processing document", "Number of records: ", len(collection))

	if err := collections.StoreCollection(ctx, docName, collection); err != nil {
		logger.Error("Error storing collection", "error", err)
		job.Status = jobModel.JobStatusError
		job.Error.Message = "Error storing collection"
		return job
	}

	removeUpload(docPath)
	job.Status = jobModel.JobStatusComplete
	return job
}

func removeUpload(path string) {
	if err := os.Remove(path); err != nil {
		logger.Error("Error removing file", "error", err)
	}
}

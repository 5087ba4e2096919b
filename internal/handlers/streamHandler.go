package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/mbalza/DocChatAPI/internal/api"
	"github.com/mbalza/DocChatAPI/internal/config"
	"github.com/mbalza/DocChatAPI/internal/rag"
	"github.com/mbalza/DocChatAPI/pkg/logger_i"
)

var (
	streamService rag.Service
	streamOnce    sync.Once
	logSH         *logger_i.Logger
)

func InitStreamHandler(ragService rag.Service) {
	streamOnce.Do(func() {
		streamService = ragService
		logSH = logger_i.NewLogger("StreamHandler")
		logSH.Info("Starting stream handler")
	})
}

// StreamChatHandler godoc
// @Summary      Ask a question and stream the answer
// @Description  Runs the full retrieval pipeline synchronously and streams the answer back word by word as plain text chunks.
// @Tags         Messaging
// @Accept       json
// @Produce      plain
// @Param        request  body  api.StreamChatRequest  true  "Question and target document"
// @Success      200  {string}  string  "The answer streamed word by word"
// @Failure      400  {object}  api.JobResponse "Invalid request data"
// @Failure      500  {object}  api.JobResponse "Pipeline failure"
// @Router       /chat/stream [post]
func StreamChatHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logSH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}
	if streamService == nil {
		WriteErrorResponse(w, http.StatusServiceUnavailable, "", "Stream service not ready")
		return
	}

	var requestData api.StreamChatRequest
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			logSH.Error("Couldn't close the stream handler reader :", err)
		}
	}(r.Body)
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil || requestData.Message == "" || requestData.DocumentName == "" {
		logSH.Warn("Bad Stream Request: ", "error:", err)
		WriteErrorResponse(w, http.StatusBadRequest, "", "Bad Request")
		return
	}

	chunks, err := streamService.ResponseGenerator(r.Context(), requestData.Message, requestData.DocumentName)
	if err != nil {
		logSH.Error("Pipeline failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "", "Internal Server Error")
		return
	}

	//the paced stream outlives the default write timeout
	rc := http.NewResponseController(w)
	if err := rc.SetWriteDeadline(time.Now().Add(config.StreamWriteTimeout)); err != nil {
		logSH.Debug("could not extend write deadline", "error", err)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)

	for chunk := range chunks {
		if _, err := io.WriteString(w, chunk); err != nil {
			logSH.Warn("client went away mid-stream", "error", err)
			return
		}
		if err := rc.Flush(); err != nil {
			logSH.Warn("flush failed mid-stream", "error", err)
			return
		}
	}
}

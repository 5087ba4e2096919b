package customHttpClient

import (
	"net/http"

	"github.com/mbalza/DocChatAPI/internal/config"
)

//TODO: make qdrant reuse this pool too, the grpc client manages its own connections today

var customTransport = &http.Transport{
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
}

// NewPooledClient hands out clients sharing the process-wide transport so
// the OpenAI embedder and LLM reuse connections instead of redialing.
func NewPooledClient() *http.Client {
	return &http.Client{Transport: customTransport}
}

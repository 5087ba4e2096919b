package openaiLLM

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/mbalza/DocChatAPI/internal/config"
	"github.com/mbalza/DocChatAPI/internal/customHttpClient"
	"github.com/mbalza/DocChatAPI/internal/rag/llm"
	"github.com/mbalza/DocChatAPI/pkg/logger_i"
)

type llmClient struct {
	openAi    openai.Client
	modelName string
	prompt    string
}

var logger *logger_i.Logger
var openAIClient *llmClient
var once sync.Once

func GetOpenAIClient(modelName string, apikey string) llm.Provider {
	once.Do(func() {
		logger = logger_i.NewLogger("llm_openai")
		c := openai.NewClient(
			option.WithAPIKey(apikey),
			option.WithHTTPClient(customHttpClient.NewPooledClient()),
		)
		openAIClient = &llmClient{openAi: c, modelName: modelName, prompt: config.ModelContext}
		logger.Info("OpenAI client created")
	})

	if openAIClient == nil {
		return nil
	}
	return &llmClient{openAi: openAIClient.openAi, modelName: openAIClient.modelName, prompt: openAIClient.prompt}
}

func (c *llmClient) Generate(ctx context.Context, userQuery string, matches []string, messageHistory []string) (string, error) {
	logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	userPrompt := llm.BuildUserPrompt(userQuery, matches, messageHistory)

	result, err := c.openAi.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(c.prompt),
			openai.UserMessage(userPrompt),
		},
		Model:       openai.ChatModel(c.modelName),
		Temperature: openai.Float(float64(config.ModelTemperature)),
	})
	if err != nil {
		logger.Error("Error generating content", "error", err)
		return "", fmt.Errorf("openai generate: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("openai generate: empty response")
	}

	answer := strings.TrimSpace(result.Choices[0].Message.Content)
	return answer, nil
}

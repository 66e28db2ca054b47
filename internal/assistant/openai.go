package assistant

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/cyberdesk/internal/manuals"
	openai "github.com/sashabaranov/go-openai"
)

// DefaultModel is used when no chat model is configured.
const DefaultModel = "gpt-4o-mini"

// Answerer produces an answer for a single officer question.
type Answerer interface {
	Answer(ctx context.Context, question string) (string, error)
}

// chatCompleter is the slice of the OpenAI client the answerer uses.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIAnswerer answers from the manual excerpts most relevant to each question
// using an OpenAI chat model.
type OpenAIAnswerer struct {
	client    chatCompleter
	model     string
	retriever manuals.Retriever
	topK      int
}

// NewClient creates an OpenAI client. baseURL may be empty to use the public API,
// or point at any OpenAI-compatible server (e.g. a local Ollama).
func NewClient(apiKey, baseURL string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(cfg)
}

// NewOpenAIAnswerer creates an answerer that sends the topK best excerpts from
// retriever with every question.
func NewOpenAIAnswerer(client *openai.Client, model string, retriever manuals.Retriever, topK int) *OpenAIAnswerer {
	if model == "" {
		model = DefaultModel
	}
	if topK <= 0 {
		topK = manuals.DefaultTopK
	}
	return &OpenAIAnswerer{
		client:    client,
		model:     model,
		retriever: retriever,
		topK:      topK,
	}
}

// Answer sends the strict system prompt plus the question framed with the
// retrieved excerpts.
func (a *OpenAIAnswerer) Answer(ctx context.Context, question string) (string, error) {
	if a.client == nil {
		return "", errors.New("openai client not initialized")
	}

	var excerpts []manuals.Excerpt
	if a.retriever != nil {
		var err error
		excerpts, err = a.retriever.Retrieve(ctx, question, a.topK)
		if err != nil {
			return "", fmt.Errorf("retrieve manuals: %w", err)
		}
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: UserPrompt(excerpts, question)},
		},
		Temperature: 0.1,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

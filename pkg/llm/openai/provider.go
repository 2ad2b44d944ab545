package openai

import (
	"context"
	"errors"
	"fmt"
	"io"

	"ai-homework-helper-be/pkg/llm"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider backs the gateway with the OpenAI chat completions API.
type OpenAIProvider struct {
	client    *openai.Client
	modelName string
}

var _ llm.LLMProvider = &OpenAIProvider{}

func NewOpenAIProvider(apiKey, modelName string) *OpenAIProvider {
	return &OpenAIProvider{
		client:    openai.NewClient(apiKey),
		modelName: modelName,
	}
}

func (o *OpenAIProvider) buildRequest(history []llm.Message, opts ...llm.Option) openai.ChatCompletionRequest {
	options := &llm.Options{
		Temperature: 0.7,
	}
	for _, opt := range opts {
		opt(options)
	}

	messages := make([]openai.ChatCompletionMessage, len(history))
	for i, msg := range history {
		role := msg.Role
		if role == "model" {
			role = openai.ChatMessageRoleAssistant
		}
		messages[i] = openai.ChatCompletionMessage{
			Role:    role,
			Content: msg.Content,
		}
	}

	model := o.modelName
	if options.Model != "" {
		model = options.Model
	}

	req := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: float32(options.Temperature),
	}
	if options.MaxTokens > 0 {
		req.MaxTokens = options.MaxTokens
	}
	return req
}

func (o *OpenAIProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, o.buildRequest(history, opts...))
	if err != nil {
		return "", llm.GenerationError(fmt.Errorf("openai request failed: %w", err))
	}
	if len(resp.Choices) == 0 {
		return "", llm.GenerationError(fmt.Errorf("openai returned no choices"))
	}
	return resp.Choices[0].Message.Content, nil
}

func (o *OpenAIProvider) ChatStream(ctx context.Context, history []llm.Message, opts ...llm.Option) (<-chan string, <-chan error) {
	fragments := make(chan string)
	errs := make(chan error, 1)

	go func() {
		defer close(fragments)
		defer close(errs)

		req := o.buildRequest(history, opts...)
		req.Stream = true

		stream, err := o.client.CreateChatCompletionStream(ctx, req)
		if err != nil {
			errs <- llm.GenerationError(fmt.Errorf("openai stream failed: %w", err))
			return
		}
		defer stream.Close()

		for {
			chunk, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				errs <- llm.GenerationError(fmt.Errorf("openai stream recv: %w", err))
				return
			}
			if len(chunk.Choices) == 0 {
				continue
			}
			delta := chunk.Choices[0].Delta.Content
			if delta == "" {
				continue
			}
			select {
			case fragments <- delta:
			case <-ctx.Done():
				errs <- llm.GenerationError(ctx.Err())
				return
			}
		}
	}()

	return fragments, errs
}

func (o *OpenAIProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return o.Chat(ctx, []llm.Message{{Role: openai.ChatMessageRoleUser, Content: prompt}}, opts...)
}

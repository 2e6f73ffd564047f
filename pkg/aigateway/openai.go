package aigateway

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"roamly/pkg/utils"
)

const defaultOpenAIModel = "gpt-4o-mini"

type OpenAIGateway struct {
	client *openai.Client
	model  string
}

func NewOpenAIGateway(apiKey, model string) *OpenAIGateway {
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAIGateway{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (g *OpenAIGateway) ModelName() string {
	return g.model
}

func (g *OpenAIGateway) Generate(ctx context.Context, prompt string) (*Result, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   2500,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrAIServiceUnavailable, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices returned", utils.ErrAIServiceUnavailable)
	}

	raw := strings.TrimSpace(resp.Choices[0].Message.Content)

	// Best-effort first-balanced-brace pass. The orchestrator still runs the
	// full extractor over Raw when this comes back nil.
	var parsed json.RawMessage
	if start := strings.Index(raw, "{"); start != -1 {
		if end := strings.LastIndex(raw, "}"); end > start {
			parsed = parseObject(raw[start : end+1])
		}
	}

	meta, _ := json.Marshal(resp)

	return &Result{
		Parsed:   parsed,
		Raw:      raw,
		Metadata: meta,
	}, nil
}

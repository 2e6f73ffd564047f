package aigateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"roamly/pkg/utils"
)

const defaultGeminiModel = "gemini-1.5-flash"

// GeminiGateway is the free-tier alternative to the OpenAI provider. It forces
// a JSON response MIME type, so its Parsed field is usually populated already.
type GeminiGateway struct {
	client *genai.Client
	model  string
}

func NewGeminiGateway(apiKey, model string) (*GeminiGateway, error) {
	if model == "" {
		model = defaultGeminiModel
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiGateway{
		client: client,
		model:  model,
	}, nil
}

func (g *GeminiGateway) ModelName() string {
	return g.model
}

func (g *GeminiGateway) Generate(ctx context.Context, prompt string) (*Result, error) {
	m := g.client.GenerativeModel(g.model)
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0.7)
	m.SetMaxOutputTokens(2500)

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrAIServiceUnavailable, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: no content generated", utils.ErrAIServiceUnavailable)
	}

	raw := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	meta, _ := json.Marshal(resp.Candidates[0])

	return &Result{
		Parsed:   parseObject(raw),
		Raw:      raw,
		Metadata: meta,
	}, nil
}

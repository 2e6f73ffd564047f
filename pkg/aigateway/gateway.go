// Package aigateway invokes the external text-generation model and recovers
// structured JSON from its output. A deterministic simulator stands in for the
// live providers in development and tests.
package aigateway

import (
	"context"
	"encoding/json"
	"os"
)

// Result is what a single model invocation yields. Parsed is a best-effort
// convenience extraction and may be nil even on success; callers must run
// their own recovery over Raw before giving up.
type Result struct {
	Parsed   json.RawMessage
	Raw      string
	Metadata json.RawMessage
}

type Gateway interface {
	Generate(ctx context.Context, prompt string) (*Result, error)
	ModelName() string
}

// FromEnv picks the gateway the way the rest of the configuration works:
// USE_AI_SIMULATOR=true short-circuits to the simulator, otherwise
// AI_PROVIDER selects gemini or openai (the default).
func FromEnv() (Gateway, error) {
	if os.Getenv("USE_AI_SIMULATOR") == "true" {
		return NewSimulator(), nil
	}
	if os.Getenv("AI_PROVIDER") == "gemini" {
		return NewGeminiGateway(os.Getenv("GEMINI_API_KEY"), os.Getenv("GEMINI_MODEL"))
	}
	return NewOpenAIGateway(os.Getenv("OPENAI_API_KEY"), os.Getenv("OPENAI_MODEL")), nil
}

// Package enrich implements the optional schema optimization step. The
// crawler treats it as best-effort: any error here falls back to the
// original block.
package enrich

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/kaptinlin/jsonrepair"
)

// Optimizer rewrites a decoded schema block, e.g. filling in recommended
// fields a page left out. Implementations must not mutate the input.
type Optimizer interface {
	Optimize(schema map[string]any) (map[string]any, error)
}

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"
)

const systemPrompt = "You are a schema.org expert. Improve the JSON-LD object you are given: " +
	"fix malformed field values and add widely recommended fields whose values can be " +
	"inferred from the existing ones. Reply with the improved JSON object only."

// LLMOptimizer sends the schema to an OpenAI-compatible chat completions
// endpoint and parses the reply back into a block.
type LLMOptimizer struct {
	client  *http.Client
	baseURL string
	model   string
	apiKey  string
}

func NewLLMOptimizer(apiKey, baseURL, model string) *LLMOptimizer {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = defaultModel
	}
	return &LLMOptimizer{
		client:  &http.Client{Timeout: 60 * time.Second},
		baseURL: baseURL,
		model:   model,
		apiKey:  apiKey,
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (o *LLMOptimizer) Optimize(schema map[string]any) (map[string]any, error) {
	payload, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	reqBody, err := json.Marshal(chatRequest{
		Model: o.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: string(payload)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, o.baseURL+"/chat/completions", bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("optimizer request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("optimizer returned status %d", resp.StatusCode)
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, fmt.Errorf("failed to decode optimizer response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return nil, fmt.Errorf("optimizer returned no choices")
	}

	return parseBlock(cr.Choices[0].Message.Content)
}

// parseBlock unmarshals the model reply, repairing sloppy JSON (markdown
// fences, single quotes, trailing commas) before giving up. Repair is fine
// here: this text came from the model, not from the crawled page.
func parseBlock(content string) (map[string]any, error) {
	var block map[string]any
	if err := json.Unmarshal([]byte(content), &block); err == nil {
		return block, nil
	}

	repaired, err := jsonrepair.JSONRepair(content)
	if err != nil {
		return nil, fmt.Errorf("failed to repair optimizer reply: %w", err)
	}
	if err := json.Unmarshal([]byte(repaired), &block); err != nil {
		return nil, fmt.Errorf("failed to parse repaired optimizer reply: %w", err)
	}
	return block, nil
}

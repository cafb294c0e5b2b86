// Package gemini generates the structured outlook report from the
// assembled prompt. It is the only LLM touchpoint in the system.
package gemini

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/conowcast/nowcast/internal/report"
)

const defaultModel = "gemini-1.5-flash"

const systemInstruction = `You are a market analyst producing a structured outlook for the Colombian equity market (COLCAP). This is an educational research project, never financial advice.

Respond with a single JSON object and nothing else, using exactly this shape:
{
  "regime": "<risk-on|neutral|risk-off plus a short qualifier>",
  "bias_24h": "bullish|neutral|bearish",
  "bias_1w": "bullish|neutral|bearish",
  "top_drivers": [{"driver": "...", "impact": "positive|negative|mixed", "why": "...", "citations": ["url"]}],
  "scenarios": [{"name": "bull|base|bear", "probability": 0.0, "narrative": "...", "invalidated_by": "...", "citations": ["url"]}],
  "watch_next": ["..."],
  "limitations": "..."
}
Provide 3 to 7 top_drivers, exactly 3 scenarios with probabilities summing to 1.0, and 3 to 8 watch_next bullets. Cite only URLs present in the input.`

type Client struct {
	client *genai.Client
	model  string
}

func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Client{client: client, model: defaultModel}, nil
}

func (c *Client) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

// GenerateReport asks the model for the structured outlook and parses
// its JSON answer.
func (c *Client) GenerateReport(ctx context.Context, promptText string) (*report.Report, error) {
	model := c.client.GenerativeModel(c.model)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(promptText))
	if err != nil {
		return nil, fmt.Errorf("failed to generate report: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from Gemini")
	}

	raw := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	return report.Parse(raw)
}

// ModelName reports which model generated the report, for persistence.
func (c *Client) ModelName() string {
	return c.model
}

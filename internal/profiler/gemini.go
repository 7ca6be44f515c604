package profiler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/BerylCAtieno/style-advisor-agent/internal/models"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const DefaultGeminiModel = "gemini-2.5-flash-lite"

// Renderer writes a reply to prompt that follows the given directives.
type Renderer interface {
	Render(ctx context.Context, d models.StyleDirectives, prompt string) (string, error)
}

type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key required")
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

func (g *GeminiClient) Close() error {
	return g.client.Close()
}

// Render asks the model to answer prompt in the style the directives describe.
func (g *GeminiClient) Render(ctx context.Context, d models.StyleDirectives, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", errors.New("prompt required")
	}

	// a model per call keeps the system instruction local to this request
	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(0.7)
	model.SetTopP(0.95)
	model.SetMaxOutputTokens(2048)
	model.SystemInstruction = genai.NewUserContent(genai.Text(BuildSystemInstruction(d)))

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("no content generated")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return strings.TrimSpace(b.String()), nil
}

// BuildSystemInstruction turns directives into the instruction given to the model.
func BuildSystemInstruction(d models.StyleDirectives) string {
	return fmt.Sprintf(`You are a conversational assistant. Shape every reply with these style rules and do not mention them.

Format: %s
Tone: %s
Persuasion strategy: %s
Disclosure: %s`, d.Format, d.Tone, d.PersuasionStrategy, d.DisclosurePolicy)
}

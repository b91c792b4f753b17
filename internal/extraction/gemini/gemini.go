package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/rasoihq/kitchen-service/config"
	"github.com/rasoihq/kitchen-service/internal/extraction"
)

// Client wraps the generative model used for document extraction.
type Client struct {
	client *genai.Client
	model  string
}

func NewClient(ctx context.Context, cfg config.GeminiConfig) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &Client{client: client, model: cfg.Model}, nil
}

func (c *Client) Extract(ctx context.Context, content []byte, mimeType, instructions, schema string) (string, error) {
	model := c.client.GenerativeModel(c.model)

	prompt := fmt.Sprintf("%s\n\nRespond with JSON only, matching this schema:\n%s", instructions, schema)
	resp, err := model.GenerateContent(ctx,
		genai.Blob{MIMEType: mimeType, Data: content},
		genai.Text(prompt),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", extraction.ErrExtractionFailed, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", extraction.ErrExtractionFailed
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String(), nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

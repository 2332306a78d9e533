// Package completion wraps the generative text service used for outfit
// suggestions and the stylist chat.
package completion

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/outfitai/outfitai/internal/common"
	"google.golang.org/genai"
)

// Completer turns a prompt into free text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

var errEmptyReply = errors.New("empty completion")

var (
	newGenAIClient = genai.NewClient

	generateContent = func(c *genai.Client, ctx context.Context, model, prompt string) (string, error) {
		resp, err := c.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
		if err != nil {
			return "", err
		}
		return resp.Text(), nil
	}
)

type GenAICompleter struct {
	client *genai.Client
	model  string
}

// New returns a Gemini-backed completer, or a Disabled one when apiKey is empty.
func New(ctx context.Context, apiKey, model string) (Completer, error) {
	if apiKey == "" {
		return Disabled{}, nil
	}

	client, err := newGenAIClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("genai client: %w", err)
	}

	return &GenAICompleter{client: client, model: model}, nil
}

func (g *GenAICompleter) Complete(ctx context.Context, prompt string) (string, error) {
	text, err := generateContent(g.client, ctx, g.model, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: generate: %v", common.ErrorUpstream, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: %v", common.ErrorUpstream, errEmptyReply)
	}
	return text, nil
}

// Disabled is used when no API key is configured.
type Disabled struct{}

func (Disabled) Complete(context.Context, string) (string, error) {
	return "", fmt.Errorf("%w: completion service not configured", common.ErrorUpstream)
}

package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// aiProvider asks a local or remote model for a practice snippet. The API
// type is either declared ("openai", "ollama") or auto-detected from the
// endpoint path. Any transport or parse error falls through the chain.
type aiProvider struct {
	endpoint string
	apiType  string
	model    string
	apiKey   string
	timeout  time.Duration
	prompt   string
}

func (p *aiProvider) Name() string { return "ai" }

func (p *aiProvider) Fetch(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	switch p.resolveType() {
	case "openai":
		return p.fetchOpenAI(ctx)
	case "ollama":
		return p.fetchOllama(ctx)
	default:
		return "", fmt.Errorf("unrecognized AI API type %q", p.apiType)
	}
}

// resolveType maps "auto" to a concrete API type using the endpoint path,
// defaulting to ollama.
func (p *aiProvider) resolveType() string {
	if p.apiType != "auto" {
		return p.apiType
	}
	switch {
	case strings.Contains(p.endpoint, "/chat/completions"):
		return "openai"
	case strings.Contains(p.endpoint, "/api/generate"):
		return "ollama"
	}
	return "ollama"
}

func (p *aiProvider) fetchOpenAI(ctx context.Context) (string, error) {
	cfg := openai.DefaultConfig(p.apiKey)
	cfg.BaseURL = strings.TrimSuffix(p.endpoint, "/chat/completions")
	client := openai.NewClientWithConfig(cfg)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: p.prompt},
		},
		MaxTokens:   200,
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in completion response")
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("empty completion")
	}
	return text, nil
}

type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

func (p *aiProvider) fetchOllama(ctx context.Context) (string, error) {
	body, err := json.Marshal(ollamaRequest{Model: p.model, Prompt: p.prompt})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			// Best-effort body close.
			_ = cerr
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI endpoint returned status %d", resp.StatusCode)
	}
	var out ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("malformed AI response: %w", err)
	}
	text := strings.TrimSpace(out.Response)
	if text == "" {
		return "", fmt.Errorf("empty AI response")
	}
	return text, nil
}

// codePrompt builds the generation prompt for one language.
func codePrompt(language string) string {
	return fmt.Sprintf("Provide a short %s code snippet for typing practice. "+
		"Do not include any explanations, commentary, or markdown formatting. "+
		"Return only the code.", language)
}

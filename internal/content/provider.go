package content

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Provider yields one piece of raw practice text, or an error that the
// chain absorbs by falling through to the next provider.
type Provider interface {
	Name() string
	Fetch(ctx context.Context) (string, error)
}

// localProvider picks from a fixed in-process content set. It never fails
// and terminates every chain.
type localProvider struct {
	items []string
	rnd   *rand.Rand
}

func (p *localProvider) Name() string { return "local" }

func (p *localProvider) Fetch(context.Context) (string, error) {
	return p.items[p.rnd.Intn(len(p.items))], nil
}

// fileProvider reads a configured path and picks a random non-empty line
// block. Missing, unreadable, or effectively empty files fall through.
type fileProvider struct {
	path string
	rnd  *rand.Rand
}

func (p *fileProvider) Name() string { return "file" }

func (p *fileProvider) Fetch(context.Context) (string, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return "", err
	}
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return "", fmt.Errorf("file %s has no content", p.path)
	}
	return lines[p.rnd.Intn(len(lines))], nil
}

// commandProvider runs a configured shell command under a bounded timeout.
type commandProvider struct {
	command string
	timeout time.Duration
}

func (p *commandProvider) Name() string { return "cmd" }

func (p *commandProvider) Fetch(ctx context.Context) (string, error) {
	if p.command == "" {
		return "", fmt.Errorf("no command configured")
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, "sh", "-c", p.command).Output()
	if err != nil {
		return "", fmt.Errorf("command failed: %w", err)
	}
	text := strings.TrimSpace(string(out))
	if text == "" {
		return "", fmt.Errorf("command produced no output")
	}
	return text, nil
}

// quoteResponse is the shape of the quote API payload.
type quoteResponse struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

// httpProvider issues a bounded-timeout GET to a quote endpoint.
type httpProvider struct {
	url     string
	timeout time.Duration
	client  *http.Client
}

func (p *httpProvider) Name() string { return "api" }

func (p *httpProvider) Fetch(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return "", err
	}
	client := p.client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
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
		return "", fmt.Errorf("quote API returned status %d", resp.StatusCode)
	}
	var quote quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&quote); err != nil {
		return "", fmt.Errorf("malformed quote response: %w", err)
	}
	if quote.Text == "" {
		return "", fmt.Errorf("quote response has no text")
	}
	if quote.Author != "" {
		return quote.Text + "\n" + quote.Author, nil
	}
	return quote.Text, nil
}

package content

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"keydrill/internal/config"
)

type failingProvider struct{ name string }

func (p *failingProvider) Name() string { return p.name }

func (p *failingProvider) Fetch(ctx context.Context) (string, error) {
	return "", errors.New("forced failure")
}

func TestChainFallsBackToLocal(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	chain := &Chain{providers: []Provider{
		&failingProvider{name: "api"},
		&failingProvider{name: "cmd"},
		&localProvider{items: []string{"hello world"}, rnd: rnd},
	}}
	got := chain.Fetch(context.Background())
	if got != "hello world" {
		t.Fatalf("expected local content, got %q", got)
	}
}

func TestChainSkipsEmptyResults(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	chain := &Chain{providers: []Provider{
		&localProvider{items: []string{"   "}, rnd: rnd},
		&localProvider{items: []string{"fallback text"}, rnd: rnd},
	}}
	got := chain.Fetch(context.Background())
	if got != "fallback text" {
		t.Fatalf("expected fallback text, got %q", got)
	}
}

func TestNewSentenceChainAlwaysTerminatesWithLocal(t *testing.T) {
	cfg := config.Resolve(config.FileConfig{}, config.Overrides{})
	cfg.SentenceSources = []string{"api", "cmd"}
	chain := NewSentenceChain(cfg, rand.New(rand.NewSource(1)))
	last := chain.providers[len(chain.providers)-1]
	if last.Name() != "local" {
		t.Fatalf("expected local terminator, got %s", last.Name())
	}
}

func TestNewSentenceChainSkipsUnknownKinds(t *testing.T) {
	cfg := config.Resolve(config.FileConfig{}, config.Overrides{})
	cfg.SentenceSources = []string{"bogus", "local"}
	chain := NewSentenceChain(cfg, rand.New(rand.NewSource(1)))
	if len(chain.providers) != 1 {
		t.Fatalf("expected 1 provider, got %d", len(chain.providers))
	}
	if chain.providers[0].Name() != "local" {
		t.Fatalf("expected local, got %s", chain.providers[0].Name())
	}
}

func TestNewCodeChainUnknownLanguageUsesDefaultSnippets(t *testing.T) {
	cfg := config.Resolve(config.FileConfig{}, config.Overrides{})
	cfg.CodeSources = []string{"local"}
	chain := NewCodeChain(cfg, "cobol", rand.New(rand.NewSource(1)))
	got := chain.Fetch(context.Background())
	if got == "" {
		t.Fatalf("expected non-empty snippet for unknown language")
	}
}

func TestChainFloorMatchesOwnContentSet(t *testing.T) {
	cfg := config.Resolve(config.FileConfig{}, config.Overrides{})
	cfg.SentenceSources = []string{"local"}
	cfg.CodeSources = []string{"local"}

	code := NewCodeChain(cfg, "go", rand.New(rand.NewSource(1)))
	if code.floor != Normalize(snippets["go"][0]) {
		t.Fatalf("code chain floor should come from its snippet set, got %q", code.floor)
	}
	sent := NewSentenceChain(cfg, rand.New(rand.NewSource(1)))
	if sent.floor != Normalize(sentences[0]) {
		t.Fatalf("sentence chain floor should come from the sentence set, got %q", sent.floor)
	}
}

func TestChainExhaustedProvidersReturnFloor(t *testing.T) {
	chain := &Chain{
		providers: []Provider{&failingProvider{name: "api"}},
		floor:     "fallback snippet",
	}
	if got := chain.Fetch(context.Background()); got != "fallback snippet" {
		t.Fatalf("expected the floor, got %q", got)
	}
}

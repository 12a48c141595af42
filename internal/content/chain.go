package content

import (
	"context"
	"fmt"
	"math/rand"
	"os"

	"keydrill/internal/config"
)

// Chain is an ordered provider fallback sequence. Construction guarantees
// the final provider is the infallible local one, so Fetch always returns
// content.
type Chain struct {
	providers []Provider
	floor     string
}

// NewSentenceChain builds the sentence provider chain from the configured
// source order. Unknown source kinds are skipped.
func NewSentenceChain(cfg config.Config, rnd *rand.Rand) *Chain {
	var providers []Provider
	for _, kind := range cfg.SentenceSources {
		switch kind {
		case "api":
			providers = append(providers, &httpProvider{url: cfg.QuoteAPIURL, timeout: cfg.ProviderTimeout})
		case "cmd":
			providers = append(providers, &commandProvider{command: cfg.SentenceCommand, timeout: cfg.ProviderTimeout})
		case "file":
			providers = append(providers, &fileProvider{path: cfg.SentencesFile, rnd: rnd})
		case "local":
			providers = append(providers, &localProvider{items: sentences, rnd: rnd})
		}
	}
	return terminated(providers, sentences, rnd)
}

// NewCodeChain builds the code provider chain for one language.
func NewCodeChain(cfg config.Config, language string, rnd *rand.Rand) *Chain {
	local := snippets[language]
	if len(local) == 0 {
		local = snippets["python"]
	}
	var providers []Provider
	for _, kind := range cfg.CodeSources {
		switch kind {
		case "ai":
			providers = append(providers, &aiProvider{
				endpoint: cfg.AIEndpoint,
				apiType:  cfg.AIAPIType,
				model:    cfg.AIModel,
				apiKey:   cfg.AIAPIKey,
				timeout:  cfg.AITimeout,
				prompt:   codePrompt(language),
			})
		case "cmd":
			providers = append(providers, &commandProvider{command: cfg.CodeCommand, timeout: cfg.ProviderTimeout})
		case "file":
			providers = append(providers, &fileProvider{path: cfg.SnippetsFile, rnd: rnd})
		case "local":
			providers = append(providers, &localProvider{items: local, rnd: rnd})
		}
	}
	return terminated(providers, local, rnd)
}

// terminated appends the local terminator when the configured order lacks
// one. The chain's hard floor comes from the same content set.
func terminated(providers []Provider, items []string, rnd *rand.Rand) *Chain {
	if len(providers) == 0 || providers[len(providers)-1].Name() != "local" {
		providers = append(providers, &localProvider{items: items, rnd: rnd})
	}
	return &Chain{providers: providers, floor: Normalize(items[0])}
}

// Fetch tries each provider in order and returns the first success,
// normalized. Provider failures are absorbed; the local terminator makes
// the result always non-empty.
func (c *Chain) Fetch(ctx context.Context) string {
	for _, p := range c.providers {
		text, err := p.Fetch(ctx)
		if err != nil {
			logErrf("content source %s failed: %v\n", p.Name(), err)
			continue
		}
		if normalized := Normalize(text); normalized != "" {
			return normalized
		}
	}
	// Unreachable while the terminator serves non-empty content; kept as a
	// hard floor.
	return c.floor
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

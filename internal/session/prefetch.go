package session

import (
	"context"
	"sync"

	"keydrill/internal/content"
)

// prefetcher generates the next chunk in the background so provider I/O
// never blocks keystroke handling. It holds at most one completed chunk,
// tagged with the mode and language it was generated for.
type prefetcher struct {
	pipeline *content.Pipeline

	mu       sync.Mutex
	chunk    *content.Chunk
	mode     content.Mode
	language string
	cancel   context.CancelFunc
}

func newPrefetcher(pipeline *content.Pipeline) *prefetcher {
	return &prefetcher{pipeline: pipeline}
}

// Start launches a background generation for the request, discarding any
// in-flight or stored result first. The request is a snapshot; config or
// mode changes after launch do not affect it.
func (p *prefetcher) Start(req content.Request) {
	p.mu.Lock()
	p.discardLocked()
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.mu.Unlock()

	go func() {
		chunk := p.pipeline.Generate(ctx, req)
		p.mu.Lock()
		defer p.mu.Unlock()
		if ctx.Err() != nil {
			return
		}
		p.chunk = &chunk
		p.mode = req.Mode
		p.language = chunk.Language
	}()
}

// Take hands out the stored chunk when its tag matches the requested mode
// and, for code chunks, an allowed language. A mismatched slot is cleared
// and treated as empty, forcing the caller to generate synchronously.
func (p *prefetcher) Take(mode content.Mode, languages []string) (content.Chunk, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.chunk == nil {
		return content.Chunk{}, false
	}
	if p.mode != mode {
		p.clearLocked()
		return content.Chunk{}, false
	}
	if mode == content.ModeCode && !contains(languages, p.language) {
		p.clearLocked()
		return content.Chunk{}, false
	}
	chunk := *p.chunk
	p.clearLocked()
	return chunk, true
}

// Discard drops any in-flight or completed result.
func (p *prefetcher) Discard() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.discardLocked()
}

func (p *prefetcher) discardLocked() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.clearLocked()
}

func (p *prefetcher) clearLocked() {
	p.chunk = nil
	p.mode = ""
	p.language = ""
}

func contains(items []string, want string) bool {
	for _, item := range items {
		if item == want {
			return true
		}
	}
	return false
}

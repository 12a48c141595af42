package content

import (
	"context"
	"math/rand"
	"sync"

	"keydrill/internal/config"
	"keydrill/internal/keyboard"
	"keydrill/internal/layout"
	"keydrill/internal/pattern"
)

// Mode names a practice mode.
type Mode string

// Practice modes.
const (
	ModeCurriculum Mode = "curriculum"
	ModeSentences  Mode = "sentences"
	ModeCode       Mode = "code"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeCurriculum, ModeSentences, ModeCode:
		return Mode(s), true
	}
	return "", false
}

// ShiftState controls how curriculum keys are rendered to characters.
type ShiftState string

// Shift rendering states.
const (
	ShiftOff    ShiftState = "off"
	ShiftAlways ShiftState = "always"
	ShiftMixed  ShiftState = "mixed"
)

// Chunk is one unit of practice text. Text and Keys are always the same
// length; a Keys entry is keyboard.Unmapped when the character has no
// position on the active layout.
type Chunk struct {
	Text     []rune
	Keys     []keyboard.Key
	Language string
}

// Request describes what the next chunk should contain.
type Request struct {
	Mode      Mode
	Language  string
	Row       string
	Algorithm string
	Shift     ShiftState
	Shuffle   bool
}

// Pipeline turns requests into practice chunks, drawing from the pattern
// generator for curriculum mode and from provider chains otherwise.
// Generate serializes on mu: the rand stream, the pattern generator and
// the lazy code-chain map are not safe for concurrent use on their own.
type Pipeline struct {
	cfg      config.Config
	resolver *layout.Resolver

	mu        sync.Mutex
	gen       *pattern.Generator
	rnd       *rand.Rand
	sentences *Chain
	code      map[string]*Chain
}

// NewPipeline builds a pipeline over the resolved configuration and the
// active layout resolver.
func NewPipeline(cfg config.Config, resolver *layout.Resolver, rnd *rand.Rand) *Pipeline {
	p := &Pipeline{
		cfg:       cfg,
		resolver:  resolver,
		gen:       pattern.New(),
		rnd:       rnd,
		sentences: NewSentenceChain(cfg, rnd),
		code:      make(map[string]*Chain, len(cfg.Languages)),
	}
	for _, lang := range cfg.Languages {
		p.code[lang] = NewCodeChain(cfg, lang, rnd)
	}
	return p
}

// Generate produces the next chunk for the request. Safe for concurrent
// use.
func (p *Pipeline) Generate(ctx context.Context, req Request) Chunk {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch req.Mode {
	case ModeSentences:
		return p.reverseChunk(p.sentences.Fetch(ctx), "")
	case ModeCode:
		lang := req.Language
		if lang == "" {
			lang = p.cfg.Languages[p.rnd.Intn(len(p.cfg.Languages))]
		}
		chain, ok := p.code[lang]
		if !ok {
			chain = NewCodeChain(p.cfg, lang, p.rnd)
			p.code[lang] = chain
		}
		return p.reverseChunk(chain.Fetch(ctx), lang)
	default:
		return p.curriculumChunk(req)
	}
}

// curriculumChunk generates keys from the lesson's pattern algorithm and
// renders them to characters on the layout. Keys the layout cannot render
// are dropped from both sides so Text and Keys stay aligned.
func (p *Pipeline) curriculumChunk(req Request) Chunk {
	row, ok := keyboard.Rows[req.Row]
	if !ok {
		row = keyboard.Rows["home"]
	}
	keys := p.gen.FromID(req.Algorithm, row, req.Shuffle)

	resolver := p.resolver
	if !resolver.Available() {
		// Curriculum drills still need characters to show; render on the
		// reference layout.
		resolver = layout.Fallback()
	}

	text := make([]rune, 0, len(keys))
	kept := make([]keyboard.Key, 0, len(keys))
	for _, key := range keys {
		if key == keyboard.KeySpace {
			text = append(text, ' ')
			kept = append(kept, key)
			continue
		}
		ch, ok := resolver.Resolve(key, p.modifiers(req.Shift))
		if !ok {
			continue
		}
		text = append(text, ch)
		kept = append(kept, key)
	}
	return Chunk{Text: text, Keys: kept}
}

// modifiers picks the modifier state for one key under the shift setting.
func (p *Pipeline) modifiers(shift ShiftState) layout.Modifiers {
	switch shift {
	case ShiftAlways:
		return layout.Modifiers{Shift: true}
	case ShiftMixed:
		return layout.Modifiers{Shift: p.rnd.Intn(2) == 0}
	}
	return layout.Modifiers{}
}

// reverseChunk maps fetched text back to physical keys. Characters with no
// position on the active layout keep the Unmapped sentinel so validation
// can fall back to character matching.
func (p *Pipeline) reverseChunk(text string, language string) Chunk {
	runes := []rune(text)
	keys := make([]keyboard.Key, len(runes))
	for i, ch := range runes {
		if key, ok := p.resolver.Reverse(ch); ok {
			keys[i] = key
		} else {
			keys[i] = keyboard.Unmapped
		}
	}
	return Chunk{Text: runes, Keys: keys, Language: language}
}

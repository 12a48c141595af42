// Package session runs one timed practice drill: chunk advancement,
// keystroke validation, live stats and the end-of-drill evaluation.
package session

import (
	"context"
	"math/rand"
	"time"

	"keydrill/internal/config"
	"keydrill/internal/content"
	"keydrill/internal/curriculum"
	"keydrill/internal/keyboard"
	"keydrill/internal/layout"
)

// DisplayStats is the per-tick view of an in-progress drill.
type DisplayStats struct {
	WPM       int
	Accuracy  int
	Elapsed   time.Duration
	Remaining time.Duration
	Expired   bool
}

// Result is the end-of-drill evaluation. Passed and AdvancedLesson only
// apply in curriculum mode.
type Result struct {
	WPM            int
	Accuracy       int
	Errors         int
	Passed         bool
	AdvancedLesson bool
	NewRecord      bool
	LessonIndex    int
}

// Engine owns all mutable drill state. It is not safe for concurrent use;
// the caller drives it from a single control flow, matching the TUI's
// update loop.
type Engine struct {
	cfg      config.Config
	mode     content.Mode
	pipeline *content.Pipeline
	resolver *layout.Resolver
	prefetch *prefetcher

	lessonIndex int
	wpmRecord   int

	chunk       content.Chunk
	typed       []rune
	idx         int
	chunkErrors int

	cumChars   int
	cumErrors  int
	chunksDone int

	active  bool
	started bool
	startAt time.Time
	now     func() time.Time
}

// New builds an engine for one drill. lessonIndex and wpmRecord come from
// the active profile. The prefetcher generates on its own pipeline; the
// slot is the only state shared between the background and foreground
// flows.
func New(cfg config.Config, mode content.Mode, pipeline *content.Pipeline, resolver *layout.Resolver, lessonIndex, wpmRecord int) *Engine {
	prefetchPipeline := content.NewPipeline(cfg, resolver, rand.New(rand.NewSource(time.Now().UnixNano())))
	return &Engine{
		cfg:         cfg,
		mode:        mode,
		pipeline:    pipeline,
		resolver:    resolver,
		prefetch:    newPrefetcher(prefetchPipeline),
		lessonIndex: lessonIndex,
		wpmRecord:   wpmRecord,
		now:         time.Now,
	}
}

// Start generates the first chunk and arms the prefetcher. The clock does
// not start until the first keystroke.
func (e *Engine) Start(ctx context.Context) {
	e.active = true
	e.started = false
	e.typed = nil
	e.idx = 0
	e.chunkErrors = 0
	e.cumChars = 0
	e.cumErrors = 0
	e.chunksDone = 0

	req := e.request()
	e.chunk = e.pipeline.Generate(ctx, req)
	if e.prefetchable() {
		e.prefetch.Start(e.request())
	}
}

// Active reports whether a drill is in progress.
func (e *Engine) Active() bool { return e.active }

// Mode returns the drill's practice mode.
func (e *Engine) Mode() content.Mode { return e.mode }

// HardMode reports the current validation strictness.
func (e *Engine) HardMode() bool { return e.cfg.HardMode }

// SetHardMode switches validation strictness mid-drill.
func (e *Engine) SetHardMode(hard bool) { e.cfg.HardMode = hard }

// Lesson returns the active curriculum lesson.
func (e *Engine) Lesson() curriculum.Lesson { return curriculum.At(e.lessonIndex) }

// LessonIndex returns the active lesson index.
func (e *Engine) LessonIndex() int { return e.lessonIndex }

// Chunk returns the current practice chunk. Read-only to callers.
func (e *Engine) Chunk() content.Chunk { return e.chunk }

// Typed returns the accepted characters of the current chunk.
func (e *Engine) Typed() []rune { return e.typed }

// Index returns the current position within the chunk.
func (e *Engine) Index() int { return e.idx }

// ExpectedKey returns the physical key the learner should press next, or
// Unmapped when the chunk is complete or the position has no key.
func (e *Engine) ExpectedKey() keyboard.Key {
	if e.idx >= len(e.chunk.Keys) {
		return keyboard.Unmapped
	}
	return e.chunk.Keys[e.idx]
}

// ExpectedShift reports whether the next character sits on the shifted
// level of its key on the active layout.
func (e *Engine) ExpectedShift() bool {
	key := e.ExpectedKey()
	if key == keyboard.Unmapped {
		return false
	}
	want := e.chunk.Text[e.idx]
	if base, ok := e.resolver.Resolve(key, layout.Modifiers{}); ok && base == want {
		return false
	}
	ch, ok := e.resolver.Resolve(key, layout.Modifiers{Shift: true})
	return ok && ch == want
}

// KeyFor reverse-resolves a typed character to its physical key on the
// active layout, or Unmapped when the layout has no position for it.
func (e *Engine) KeyFor(ch rune) keyboard.Key {
	if key, ok := e.resolver.Reverse(ch); ok {
		return key
	}
	return keyboard.Unmapped
}

// HandleKeystroke validates one keystroke and reports whether it was
// correct. The physical key match is primary; the character match is the
// fallback, and the only rule when either side has no physical key.
// Keystrokes with no active chunk are ignored.
func (e *Engine) HandleKeystroke(ctx context.Context, ch rune, key keyboard.Key) bool {
	if !e.active || e.idx >= len(e.chunk.Text) {
		return false
	}
	if !e.started {
		e.started = true
		e.startAt = e.now()
	}

	expectedKey := e.chunk.Keys[e.idx]
	expectedChar := e.chunk.Text[e.idx]

	correct := expectedKey != keyboard.Unmapped && key != keyboard.Unmapped && key == expectedKey
	if !correct {
		correct = ch == expectedChar
	}

	if correct {
		e.typed = append(e.typed, ch)
		e.idx++
	} else {
		e.chunkErrors++
		if !e.cfg.HardMode {
			e.typed = append(e.typed, ch)
			e.idx++
		}
	}

	if e.idx >= len(e.chunk.Text) {
		e.completeChunk(ctx)
	}
	return correct
}

// Backspace steps back one accepted position. Errors already counted stay
// counted.
func (e *Engine) Backspace() {
	if !e.active || e.idx == 0 || len(e.typed) == 0 {
		return
	}
	e.idx--
	e.typed = e.typed[:len(e.typed)-1]
}

// Tick computes the live stats for a display refresh.
func (e *Engine) Tick(now time.Time) DisplayStats {
	var elapsed time.Duration
	if e.started {
		elapsed = now.Sub(e.startAt)
	}
	remaining := e.cfg.Duration - elapsed
	if remaining < 0 {
		remaining = 0
	}
	chars := e.cumChars + e.idx
	errors := e.cumErrors + e.chunkErrors
	return DisplayStats{
		WPM:       wordsPerMinute(chars, elapsed),
		Accuracy:  accuracyPercent(chars, errors),
		Elapsed:   elapsed,
		Remaining: remaining,
		Expired:   e.started && elapsed >= e.cfg.Duration,
	}
}

// End evaluates the drill from completed chunks only, normalized over the
// configured duration, and applies the curriculum gate. Any pending
// prefetch result is discarded.
func (e *Engine) End() Result {
	e.active = false
	e.prefetch.Discard()

	result := Result{
		WPM:         wordsPerMinute(e.cumChars, e.cfg.Duration),
		Accuracy:    accuracyPercent(e.cumChars, e.cumErrors),
		Errors:      e.cumErrors,
		LessonIndex: e.lessonIndex,
	}
	if e.mode == content.ModeCurriculum {
		lesson := curriculum.At(e.lessonIndex)
		result.Passed = lesson.Passed(result.WPM, result.Accuracy)
		if result.Passed && e.lessonIndex < curriculum.Count()-1 {
			e.lessonIndex++
			result.AdvancedLesson = true
			result.LessonIndex = e.lessonIndex
		}
	}
	if result.WPM > e.wpmRecord {
		e.wpmRecord = result.WPM
		result.NewRecord = true
	}
	return result
}

// completeChunk folds the finished chunk into the cumulative counters and
// advances to the next one, preferring the prefetched result.
func (e *Engine) completeChunk(ctx context.Context) {
	e.cumChars += len(e.chunk.Text)
	e.cumErrors += e.chunkErrors
	e.chunkErrors = 0
	e.typed = nil
	e.idx = 0
	e.chunksDone++
	e.chunk = e.nextChunk(ctx)
}

func (e *Engine) nextChunk(ctx context.Context) content.Chunk {
	req := e.request()
	if e.prefetchable() {
		if chunk, ok := e.prefetch.Take(req.Mode, e.cfg.Languages); ok {
			e.prefetch.Start(e.request())
			return chunk
		}
	}
	chunk := e.pipeline.Generate(ctx, req)
	if e.prefetchable() {
		e.prefetch.Start(e.request())
	}
	return chunk
}

// prefetchable reports whether background generation makes sense for the
// mode. Curriculum pattern generation is pure CPU work and stays
// synchronous; sentence lessons inside the curriculum do fetch, but their
// chunk is requested as a sentence and prefetched as one.
func (e *Engine) prefetchable() bool {
	if e.mode != content.ModeCurriculum {
		return true
	}
	return curriculum.At(e.lessonIndex).Sentence()
}

// request snapshots what the next chunk should be.
func (e *Engine) request() content.Request {
	switch e.mode {
	case content.ModeSentences:
		return content.Request{Mode: content.ModeSentences}
	case content.ModeCode:
		return content.Request{Mode: content.ModeCode}
	default:
		lesson := curriculum.At(e.lessonIndex)
		if lesson.Sentence() {
			return content.Request{Mode: content.ModeSentences}
		}
		return content.Request{
			Mode:      content.ModeCurriculum,
			Row:       lesson.Row,
			Algorithm: lesson.Algorithm,
			Shift:     lesson.Shift,
			Shuffle:   e.chunksDone >= e.cfg.ShuffleAfter,
		}
	}
}

package session

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"keydrill/internal/config"
	"keydrill/internal/content"
	"keydrill/internal/keyboard"
	"keydrill/internal/layout"
)

func testEngine(t *testing.T, hard bool) *Engine {
	t.Helper()
	cfg := config.Resolve(config.FileConfig{}, config.Overrides{})
	cfg.HardMode = hard
	cfg.Duration = 60 * time.Second
	cfg.SentenceSources = []string{"local"}
	cfg.CodeSources = []string{"local"}
	rnd := rand.New(rand.NewSource(3))
	pipeline := content.NewPipeline(cfg, layout.Fallback(), rnd)
	e := New(cfg, content.ModeCurriculum, pipeline, layout.Fallback(), 0, 0)
	e.active = true
	return e
}

func setChunk(e *Engine, text string, keys []keyboard.Key) {
	e.chunk = content.Chunk{Text: []rune(text), Keys: keys}
	e.typed = nil
	e.idx = 0
	e.chunkErrors = 0
}

func TestHardModeMismatchDoesNotAdvance(t *testing.T) {
	e := testEngine(t, true)
	setChunk(e, "ab", []keyboard.Key{keyboard.KeyA, keyboard.KeyB})

	correct := e.HandleKeystroke(context.Background(), 'x', keyboard.KeyX)
	if correct {
		t.Fatalf("mismatch reported as correct")
	}
	if e.Index() != 0 {
		t.Fatalf("hard mode advanced idx to %d", e.Index())
	}
	if len(e.Typed()) != 0 {
		t.Fatalf("hard mode appended typed text %q", string(e.Typed()))
	}
	if e.chunkErrors != 1 {
		t.Fatalf("expected 1 error, got %d", e.chunkErrors)
	}
}

func TestSoftModeMismatchAdvances(t *testing.T) {
	e := testEngine(t, false)
	setChunk(e, "ab", []keyboard.Key{keyboard.KeyA, keyboard.KeyB})

	if e.HandleKeystroke(context.Background(), 'x', keyboard.KeyX) {
		t.Fatalf("mismatch reported as correct")
	}
	if e.Index() != 1 {
		t.Fatalf("soft mode should advance, idx is %d", e.Index())
	}
	if string(e.Typed()) != "x" {
		t.Fatalf("soft mode should append the mistyped character, got %q", string(e.Typed()))
	}
	if e.chunkErrors != 1 {
		t.Fatalf("expected 1 error, got %d", e.chunkErrors)
	}
}

func TestKeyMatchWinsOverCharacterMismatch(t *testing.T) {
	e := testEngine(t, true)
	setChunk(e, "ab", []keyboard.Key{keyboard.KeyA, keyboard.KeyB})

	// Same physical key, different character level.
	if !e.HandleKeystroke(context.Background(), 'A', keyboard.KeyA) {
		t.Fatalf("matching physical key should be correct")
	}
}

func TestUnmappedExpectedKeyFallsBackToCharacter(t *testing.T) {
	e := testEngine(t, true)
	setChunk(e, "é!", []keyboard.Key{keyboard.Unmapped, keyboard.Unmapped})

	if !e.HandleKeystroke(context.Background(), 'é', keyboard.Unmapped) {
		t.Fatalf("character match should succeed for unmapped key")
	}
	if e.HandleKeystroke(context.Background(), '?', keyboard.Unmapped) {
		t.Fatalf("character mismatch should fail for unmapped key")
	}
}

func TestChunkCompletionFoldsCounters(t *testing.T) {
	e := testEngine(t, false)
	setChunk(e, "ab", []keyboard.Key{keyboard.KeyA, keyboard.KeyB})

	ctx := context.Background()
	e.HandleKeystroke(ctx, 'x', keyboard.KeyX)
	e.HandleKeystroke(ctx, 'b', keyboard.KeyB)

	if e.cumChars != 2 || e.cumErrors != 1 {
		t.Fatalf("expected cumulative 2 chars 1 error, got %d/%d", e.cumChars, e.cumErrors)
	}
	if e.Index() != 0 || len(e.Typed()) != 0 {
		t.Fatalf("chunk state should reset after completion")
	}
	if len(e.Chunk().Text) == 0 {
		t.Fatalf("expected a fresh chunk after completion")
	}
}

func TestBackspaceStepsBack(t *testing.T) {
	e := testEngine(t, false)
	setChunk(e, "abc", []keyboard.Key{keyboard.KeyA, keyboard.KeyB, keyboard.KeyC})

	ctx := context.Background()
	e.HandleKeystroke(ctx, 'a', keyboard.KeyA)
	e.HandleKeystroke(ctx, 'x', keyboard.KeyX)
	e.Backspace()
	if e.Index() != 1 || string(e.Typed()) != "a" {
		t.Fatalf("backspace should remove the last position, idx=%d typed=%q", e.Index(), string(e.Typed()))
	}
	if e.chunkErrors != 1 {
		t.Fatalf("backspace must not erase counted errors, got %d", e.chunkErrors)
	}
	e.Backspace()
	e.Backspace()
	if e.Index() != 0 {
		t.Fatalf("backspace should stop at the chunk start")
	}
}

func TestWordsPerMinuteFormula(t *testing.T) {
	if got := wordsPerMinute(250, 60*time.Second); got != 50 {
		t.Fatalf("expected 50 WPM, got %d", got)
	}
}

func TestAccuracyFormula(t *testing.T) {
	if got := accuracyPercent(100, 10); got != 82 {
		t.Fatalf("expected 82%%, got %d", got)
	}
	if got := accuracyPercent(0, 0); got != 0 {
		t.Fatalf("expected 0%% with no input, got %d", got)
	}
}

func TestTickIncludesInProgressChunk(t *testing.T) {
	e := testEngine(t, true)
	setChunk(e, "asdf", []keyboard.Key{keyboard.KeyA, keyboard.KeyS, keyboard.KeyD, keyboard.KeyF})

	start := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	e.now = func() time.Time { return start }

	ctx := context.Background()
	e.HandleKeystroke(ctx, 'a', keyboard.KeyA)
	e.HandleKeystroke(ctx, 's', keyboard.KeyS)
	e.HandleKeystroke(ctx, 'x', keyboard.KeyX)

	stats := e.Tick(start.Add(30 * time.Second))
	if stats.Accuracy != accuracyPercent(2, 1) {
		t.Fatalf("tick accuracy %d should cover the in-progress chunk", stats.Accuracy)
	}
	if stats.Remaining != 30*time.Second {
		t.Fatalf("expected 30s remaining, got %v", stats.Remaining)
	}
	if stats.Expired {
		t.Fatalf("drill should not be expired at 30s of 60s")
	}
	if !e.Tick(start.Add(61 * time.Second)).Expired {
		t.Fatalf("drill should expire after the configured duration")
	}
}

func TestEndPassAdvancesLesson(t *testing.T) {
	e := testEngine(t, true)
	e.cumChars = 55
	e.cumErrors = 1

	result := e.End()
	if result.WPM != 11 {
		t.Fatalf("expected 11 WPM, got %d", result.WPM)
	}
	if result.Accuracy != 96 {
		t.Fatalf("expected 96%%, got %d", result.Accuracy)
	}
	if result.Errors != 1 {
		t.Fatalf("expected 1 error, got %d", result.Errors)
	}
	if !result.Passed || !result.AdvancedLesson || result.LessonIndex != 1 {
		t.Fatalf("passing drill should advance the lesson: %+v", result)
	}
}

func TestEndFailKeepsLesson(t *testing.T) {
	e := testEngine(t, true)
	e.cumChars = 55
	e.cumErrors = 10

	result := e.End()
	if result.Passed || result.AdvancedLesson || result.LessonIndex != 0 {
		t.Fatalf("failing drill must not advance the lesson: %+v", result)
	}
}

func TestEndRecognizesNewRecord(t *testing.T) {
	e := testEngine(t, true)
	e.wpmRecord = 10
	e.cumChars = 55
	if result := e.End(); !result.NewRecord {
		t.Fatalf("11 WPM should beat a record of 10")
	}

	e = testEngine(t, true)
	e.wpmRecord = 50
	e.cumChars = 55
	if result := e.End(); result.NewRecord {
		t.Fatalf("11 WPM should not beat a record of 50")
	}
}

func TestPrefetchSlotRejectsStaleMode(t *testing.T) {
	p := newPrefetcher(nil)
	chunk := content.Chunk{Text: []rune("x"), Keys: []keyboard.Key{keyboard.KeyX}}
	p.chunk = &chunk
	p.mode = content.ModeSentences

	if _, ok := p.Take(content.ModeCode, []string{"go"}); ok {
		t.Fatalf("stale-mode slot must not be served")
	}
	if _, ok := p.Take(content.ModeSentences, nil); ok {
		t.Fatalf("mismatch must clear the slot, not keep it")
	}
}

func TestPrefetchSlotRejectsDisallowedLanguage(t *testing.T) {
	p := newPrefetcher(nil)
	chunk := content.Chunk{Text: []rune("x"), Keys: []keyboard.Key{keyboard.KeyX}, Language: "rust"}
	p.chunk = &chunk
	p.mode = content.ModeCode
	p.language = "rust"

	if _, ok := p.Take(content.ModeCode, []string{"go", "python"}); ok {
		t.Fatalf("slot with disallowed language must not be served")
	}
}

func TestPrefetchSlotServesMatchingTag(t *testing.T) {
	p := newPrefetcher(nil)
	chunk := content.Chunk{Text: []rune("xy"), Keys: []keyboard.Key{keyboard.KeyX, keyboard.KeyY}}
	p.chunk = &chunk
	p.mode = content.ModeSentences

	got, ok := p.Take(content.ModeSentences, nil)
	if !ok || string(got.Text) != "xy" {
		t.Fatalf("matching slot should be served")
	}
	if _, ok := p.Take(content.ModeSentences, nil); ok {
		t.Fatalf("slot should be cleared after hand-off")
	}
}

func TestExpectedShiftFollowsTargetCase(t *testing.T) {
	e := testEngine(t, false)
	setChunk(e, "aA", []keyboard.Key{keyboard.KeyA, keyboard.KeyA})

	if e.ExpectedShift() {
		t.Fatal("lowercase target should not need shift")
	}
	e.HandleKeystroke(context.Background(), 'a', keyboard.KeyA)
	if !e.ExpectedShift() {
		t.Fatal("uppercase target should need shift")
	}
	e.HandleKeystroke(context.Background(), 'A', keyboard.KeyA)
	if e.ExpectedShift() {
		t.Fatal("completed chunk should not request shift")
	}
}

func TestPrefetchGeneratesOnItsOwnPipeline(t *testing.T) {
	e := testEngine(t, false)
	if e.prefetch.pipeline == e.pipeline {
		t.Fatal("prefetcher must not share the foreground pipeline")
	}

	// Overlapping background generations against foreground ones; the race
	// detector polices the isolation.
	req := content.Request{Mode: content.ModeSentences}
	for i := 0; i < 20; i++ {
		e.prefetch.Start(req)
		e.pipeline.Generate(context.Background(), req)
	}
	e.prefetch.Discard()
}

package tui

import (
	"strings"
	"testing"

	"keydrill/internal/keyboard"
)

func TestKeyLabels(t *testing.T) {
	if got := keyLabel(keyboard.KeyA); got != "A" {
		t.Fatalf("expected A, got %q", got)
	}
	if got := keyLabel(keyboard.KeySpace); got != "SPACE" {
		t.Fatalf("expected SPACE, got %q", got)
	}
	if got := keyLabel(keyboard.KeyShiftLeft); got != "SHIFT" {
		t.Fatalf("expected SHIFT, got %q", got)
	}
}

func TestRenderKeyboardHighlightsActiveKey(t *testing.T) {
	out := renderKeyboard(keyboard.KeyJ, false)
	if !strings.Contains(out, activeKeyStyle.Render(" J ")) {
		t.Fatalf("expected active highlight for J")
	}
}

func TestShiftKeySitsOnOppositeHand(t *testing.T) {
	if got := shiftKeyFor(keyboard.KeyA); got != keyboard.KeyShiftRight {
		t.Fatalf("left-hand key should use right shift, got %v", got)
	}
	if got := shiftKeyFor(keyboard.KeyJ); got != keyboard.KeyShiftLeft {
		t.Fatalf("right-hand key should use left shift, got %v", got)
	}
	if got := shiftKeyFor(keyboard.KeySpace); got != keyboard.Unmapped {
		t.Fatalf("thumb key should not pick a shift side, got %v", got)
	}
}

func TestRenderFingerGuideHighlightsStrikingFinger(t *testing.T) {
	out := renderFingerGuide(keyboard.KeyJ)
	if !strings.Contains(out, activeFinger.Render("[R1]")) {
		t.Fatalf("expected R1 highlighted for J")
	}

	out = renderFingerGuide(keyboard.Unmapped)
	if strings.Contains(out, "[") {
		t.Fatalf("unmapped key should highlight nothing")
	}
}

package layout

import (
	"testing"

	"keydrill/internal/keyboard"
)

func TestResolveShiftLevels(t *testing.T) {
	r := Fallback()
	ch, ok := r.Resolve(keyboard.KeyA, Modifiers{})
	if !ok || ch != 'a' {
		t.Fatalf("expected 'a', got %q ok=%v", ch, ok)
	}
	ch, ok = r.Resolve(keyboard.KeyA, Modifiers{Shift: true})
	if !ok || ch != 'A' {
		t.Fatalf("expected 'A', got %q ok=%v", ch, ok)
	}
	ch, ok = r.Resolve(keyboard.KeySemicolon, Modifiers{Shift: true})
	if !ok || ch != ':' {
		t.Fatalf("expected ':', got %q ok=%v", ch, ok)
	}
	if _, ok := r.Resolve(keyboard.KeyA, Modifiers{AltGr: true}); ok {
		t.Fatalf("altgr level should be unmapped in the embedded table")
	}
}

func TestResolveMemoizesUnmapped(t *testing.T) {
	r := Fallback()
	if _, ok := r.Resolve(keyboard.KeyShiftLeft, Modifiers{}); ok {
		t.Fatalf("shift key should not produce a character")
	}
	// Second call hits the cache and must agree.
	if _, ok := r.Resolve(keyboard.KeyShiftLeft, Modifiers{}); ok {
		t.Fatalf("cached result diverged for unmapped key")
	}
}

func TestReverseIsStable(t *testing.T) {
	r := Fallback()
	first, ok := r.Reverse('a')
	if !ok || first != keyboard.KeyA {
		t.Fatalf("expected KeyA for 'a', got %v ok=%v", first, ok)
	}
	for i := 0; i < 10; i++ {
		key, ok := r.Reverse('a')
		if !ok || key != first {
			t.Fatalf("reverse resolution not stable: %v vs %v", key, first)
		}
	}
	// Shifted characters reverse to the same physical key.
	key, ok := r.Reverse('A')
	if !ok || key != keyboard.KeyA {
		t.Fatalf("expected KeyA for 'A', got %v ok=%v", key, ok)
	}
}

func TestUnavailableResolvesNothing(t *testing.T) {
	r := Unavailable()
	if r.Available() {
		t.Fatalf("unavailable resolver reports available")
	}
	if _, ok := r.Resolve(keyboard.KeyA, Modifiers{}); ok {
		t.Fatalf("unavailable resolver resolved a key")
	}
	if _, ok := r.Reverse('a'); ok {
		t.Fatalf("unavailable resolver reversed a character")
	}
}

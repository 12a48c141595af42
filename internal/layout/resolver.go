// Package layout resolves physical keys to characters for the host's
// active keyboard layout.
package layout

import (
	"context"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"keydrill/internal/keyboard"
)

const detectTimeout = 2 * time.Second

// Modifiers captures the modifier levels relevant to resolution.
type Modifiers struct {
	Shift bool
	AltGr bool
}

type cacheKey struct {
	key  keyboard.Key
	mods Modifiers
}

// Resolver maps (physical key, modifiers) pairs to characters. Results are
// memoized per pair; the active layout is assumed fixed for the process
// lifetime. The zero-table resolver resolves nothing, which leaves the
// engine on character-only validation.
type Resolver struct {
	table charTable

	mu    sync.Mutex
	cache map[cacheKey]rune

	reverseOnce sync.Once
	reverse     map[rune]keyboard.Key
}

// Active builds a resolver for the host's current keyboard layout. If the
// layout cannot be detected or has no embedded table, the returned resolver
// is unavailable rather than wrong.
func Active(ctx context.Context) *Resolver {
	name := detectLayout(ctx)
	table, ok := tables[name]
	if !ok {
		return Unavailable()
	}
	return &Resolver{table: table, cache: map[cacheKey]rune{}}
}

// Fallback returns a resolver over the built-in US table, used to render
// curriculum text when the host layout is unknown.
func Fallback() *Resolver {
	return &Resolver{table: usTable, cache: map[cacheKey]rune{}}
}

// Unavailable returns a resolver that maps nothing.
func Unavailable() *Resolver {
	return &Resolver{cache: map[cacheKey]rune{}}
}

// Available reports whether the resolver has a layout table at all.
func (r *Resolver) Available() bool {
	return len(r.table) > 0
}

// Resolve returns the character the key produces under the given modifiers,
// or false if the layout leaves it unmapped.
func (r *Resolver) Resolve(key keyboard.Key, mods Modifiers) (rune, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ck := cacheKey{key: key, mods: mods}
	if ch, ok := r.cache[ck]; ok {
		return ch, ch != 0
	}
	ch := r.lookup(key, mods)
	r.cache[ck] = ch
	return ch, ch != 0
}

func (r *Resolver) lookup(key keyboard.Key, mods Modifiers) rune {
	lv, ok := r.table[key]
	if !ok {
		return 0
	}
	// No embedded table carries a third level; AltGr resolves to nothing.
	if mods.AltGr {
		return 0
	}
	if mods.Shift {
		return lv.shift
	}
	return lv.base
}

// Reverse returns the physical key that produces the character at either
// shift level. The map is built once by iterating keyboard.AllKeys in
// declaration order, unshifted level first, so repeated calls are stable
// and ambiguous characters always resolve to the first key discovered.
func (r *Resolver) Reverse(ch rune) (keyboard.Key, bool) {
	r.reverseOnce.Do(r.buildReverse)
	key, ok := r.reverse[ch]
	return key, ok
}

func (r *Resolver) buildReverse() {
	rev := make(map[rune]keyboard.Key, 2*len(keyboard.AllKeys))
	for _, mods := range []Modifiers{{}, {Shift: true}} {
		for _, key := range keyboard.AllKeys {
			ch, ok := r.Resolve(key, mods)
			if !ok {
				continue
			}
			if _, seen := rev[ch]; !seen {
				rev[ch] = key
			}
		}
	}
	r.reverse = rev
}

// detectLayout reads the active XKB layout name from the environment or,
// failing that, from setxkbmap. An empty result means detection failed.
func detectLayout(ctx context.Context) string {
	if name := firstLayoutName(os.Getenv("XKB_DEFAULT_LAYOUT")); name != "" {
		return name
	}
	ctx, cancel := context.WithTimeout(ctx, detectTimeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, "setxkbmap", "-query").Output()
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(string(out), "\n") {
		if rest, ok := strings.CutPrefix(strings.TrimSpace(line), "layout:"); ok {
			return firstLayoutName(rest)
		}
	}
	return ""
}

// firstLayoutName trims a "us,ru" style layout list down to its first entry.
func firstLayoutName(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, ','); i >= 0 {
		s = s[:i]
	}
	return s
}

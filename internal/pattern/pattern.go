// Package pattern builds physical-key practice sequences.
package pattern

import (
	"math/rand"
	"time"

	"keydrill/internal/keyboard"
)

// Algorithm selects one of the practice pattern generators.
type Algorithm int

// Pattern algorithms, in curriculum order.
const (
	Repeat Algorithm = iota
	Adjacent
	Alternating
	Mirror
	Rolls
	Pseudo
)

// Parse maps a curriculum algorithm id to its Algorithm. Unknown ids
// return false; callers fall back to FallbackSequence.
func Parse(id string) (Algorithm, bool) {
	switch id {
	case "repeat":
		return Repeat, true
	case "adjacent":
		return Adjacent, true
	case "alternating":
		return Alternating, true
	case "mirror":
		return Mirror, true
	case "rolls":
		return Rolls, true
	case "pseudo":
		return Pseudo, true
	}
	return 0, false
}

const (
	repeatReps      = 4
	adjacentReps    = 3
	alternatingReps = 4
	mirrorReps      = 4
	rollReps        = 2
	pseudoWordCount = 10
	fallbackLength  = 40
)

// Generator produces randomized key sequences for practice patterns.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeeded returns a Generator with a fixed seed.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// FromID generates a sequence for the given algorithm id, falling back to a
// fixed-length uniform random sequence when the id is unknown.
func (g *Generator) FromID(id string, row keyboard.RowSpec, shuffle bool) []keyboard.Key {
	if algo, ok := Parse(id); ok {
		return g.Sequence(algo, row, shuffle)
	}
	return g.FallbackSequence(row)
}

// Sequence generates the key sequence for one algorithm over a row.
// An empty row yields an empty sequence.
func (g *Generator) Sequence(algo Algorithm, row keyboard.RowSpec, shuffle bool) []keyboard.Key {
	if row.Empty() {
		return nil
	}
	switch algo {
	case Repeat:
		return g.singleKeyRepeat(row, shuffle)
	case Adjacent:
		return g.sameHandAdjacent(row, shuffle)
	case Alternating:
		return g.alternatingPairs(row, shuffle)
	case Mirror:
		return g.mirrorPairs(row, shuffle)
	case Rolls:
		return g.rolls(row, shuffle)
	case Pseudo:
		return g.pseudoWords(row)
	}
	return g.FallbackSequence(row)
}

// FallbackSequence draws a fixed number of keys uniformly from the row's
// combined key set. This is the defined default for unknown algorithm ids.
func (g *Generator) FallbackSequence(row keyboard.RowSpec) []keyboard.Key {
	all := row.All()
	if len(all) == 0 {
		return nil
	}
	seq := make([]keyboard.Key, fallbackLength)
	for i := range seq {
		seq[i] = all[g.rnd.Intn(len(all))]
	}
	return seq
}

// singleKeyRepeat emits each key of the row repeated, building muscle
// memory through isolation.
func (g *Generator) singleKeyRepeat(row keyboard.RowSpec, shuffle bool) []keyboard.Key {
	pool := row.All()
	if shuffle {
		g.rnd.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	}
	groups := make([][]keyboard.Key, 0, len(pool))
	for _, key := range pool {
		group := make([]keyboard.Key, repeatReps)
		for i := range group {
			group[i] = key
		}
		groups = append(groups, group)
	}
	return joinWithSpaces(groups)
}

// sameHandAdjacent pairs physically neighboring keys within one hand.
func (g *Generator) sameHandAdjacent(row keyboard.RowSpec, shuffle bool) []keyboard.Key {
	var pairs [][]keyboard.Key
	for _, hand := range [][]keyboard.Key{row.Left, row.Right} {
		for i := 0; i+1 < len(hand); i++ {
			pairs = append(pairs, []keyboard.Key{hand[i], hand[i+1]})
		}
	}
	if len(pairs) == 0 {
		// Single-key hands have no neighbors; fall back to isolation.
		return g.singleKeyRepeat(row, shuffle)
	}
	return g.expandPairs(pairs, adjacentReps, shuffle)
}

// alternatingPairs pairs one key from each hand to drill hand alternation.
func (g *Generator) alternatingPairs(row keyboard.RowSpec, shuffle bool) []keyboard.Key {
	n := min(len(row.Left), len(row.Right))
	var pairs [][]keyboard.Key
	for i := 0; i < n; i++ {
		pairs = append(pairs, []keyboard.Key{row.Left[i], row.Right[i]})
	}
	if len(pairs) == 0 {
		return g.singleKeyRepeat(row, shuffle)
	}
	return g.expandPairs(pairs, alternatingReps, shuffle)
}

// mirrorPairs pairs keys at mirrored finger positions across hands.
func (g *Generator) mirrorPairs(row keyboard.RowSpec, shuffle bool) []keyboard.Key {
	n := min(len(row.Left), len(row.Right))
	var pairs [][]keyboard.Key
	for i := 0; i < n; i++ {
		pairs = append(pairs, []keyboard.Key{row.Left[i], row.Right[len(row.Right)-1-i]})
	}
	if len(pairs) == 0 {
		return g.singleKeyRepeat(row, shuffle)
	}
	return g.expandPairs(pairs, mirrorReps, shuffle)
}

// rolls emits inward and outward runs across each hand's fingers.
func (g *Generator) rolls(row keyboard.RowSpec, shuffle bool) []keyboard.Key {
	var patterns [][]keyboard.Key
	for _, hand := range [][]keyboard.Key{row.Left, row.Right} {
		if len(hand) == 0 {
			continue
		}
		inward := append([]keyboard.Key(nil), hand...)
		outward := reversed(hand)
		patterns = append(patterns, inward, outward)
	}
	pool := repeatGroups(patterns, rollReps)
	if shuffle {
		g.rnd.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	}
	return joinWithSpaces(pool)
}

// pseudoWords synthesizes random 4-6 key words from the full row key set.
func (g *Generator) pseudoWords(row keyboard.RowSpec) []keyboard.Key {
	all := row.All()
	groups := make([][]keyboard.Key, 0, pseudoWordCount)
	for w := 0; w < pseudoWordCount; w++ {
		length := 4 + g.rnd.Intn(3)
		word := make([]keyboard.Key, length)
		for i := range word {
			word[i] = all[g.rnd.Intn(len(all))]
		}
		groups = append(groups, word)
	}
	return joinWithSpaces(groups)
}

func (g *Generator) expandPairs(pairs [][]keyboard.Key, reps int, shuffle bool) []keyboard.Key {
	pool := repeatGroups(pairs, reps)
	if shuffle {
		g.rnd.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	}
	return joinWithSpaces(pool)
}

func repeatGroups(groups [][]keyboard.Key, reps int) [][]keyboard.Key {
	pool := make([][]keyboard.Key, 0, len(groups)*reps)
	for i := 0; i < reps; i++ {
		pool = append(pool, groups...)
	}
	return pool
}

// joinWithSpaces flattens groups with a space key between them, without a
// trailing space.
func joinWithSpaces(groups [][]keyboard.Key) []keyboard.Key {
	var seq []keyboard.Key
	for i, group := range groups {
		if i > 0 {
			seq = append(seq, keyboard.KeySpace)
		}
		seq = append(seq, group...)
	}
	return seq
}

func reversed(keys []keyboard.Key) []keyboard.Key {
	out := make([]keyboard.Key, len(keys))
	for i, k := range keys {
		out[len(keys)-1-i] = k
	}
	return out
}

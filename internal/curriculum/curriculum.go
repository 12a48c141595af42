// Package curriculum defines the ordered lesson progression.
package curriculum

import (
	"fmt"

	"keydrill/internal/content"
)

// AlgorithmSentence marks lessons that practice fetched sentences instead
// of generated key patterns.
const AlgorithmSentence = "sentence"

// Lesson is one step of the progression. TargetWPM and TargetAccuracy are
// the pass thresholds for advancing.
type Lesson struct {
	Name           string
	Algorithm      string
	Row            string
	Shift          content.ShiftState
	TargetWPM      int
	TargetAccuracy int
}

// Sentence reports whether the lesson draws its text from the sentence
// chain rather than the pattern generator.
func (l Lesson) Sentence() bool {
	return l.Algorithm == AlgorithmSentence
}

// Passed reports whether a drill result meets the lesson's thresholds.
func (l Lesson) Passed(wpm, accuracy int) bool {
	return wpm >= l.TargetWPM && accuracy >= l.TargetAccuracy
}

// Lessons is the full progression in order.
var Lessons = buildLessons()

// Count returns the number of lessons.
func Count() int {
	return len(Lessons)
}

// At returns the lesson at the given index, clamped to the valid range so a
// profile past the end keeps practicing the final lesson.
func At(index int) Lesson {
	if index < 0 {
		index = 0
	}
	if index >= len(Lessons) {
		index = len(Lessons) - 1
	}
	return Lessons[index]
}

// foundationSpec drives the two-lesson blocks that introduce key pairs
// after the home row.
type foundationSpec struct {
	row            string
	isolationShift content.ShiftState
	variationShift content.ShiftState
}

func buildLessons() []Lesson {
	lessons := []Lesson{
		{Name: "1.1: Isolation", Algorithm: "repeat", Row: "home", Shift: content.ShiftOff, TargetWPM: 10, TargetAccuracy: 95},
		{Name: "1.2: Adjacency", Algorithm: "adjacent", Row: "home", Shift: content.ShiftOff, TargetWPM: 10, TargetAccuracy: 95},
		{Name: "1.3: Alternating", Algorithm: "alternating", Row: "home", Shift: content.ShiftOff, TargetWPM: 10, TargetAccuracy: 92},
		{Name: "1.4: Mirroring", Algorithm: "mirror", Row: "home", Shift: content.ShiftOff, TargetWPM: 10, TargetAccuracy: 92},
		{Name: "1.5: Rolling", Algorithm: "rolls", Row: "home", Shift: content.ShiftOff, TargetWPM: 10, TargetAccuracy: 90},
		{Name: "1.6: Synthesis", Algorithm: "pseudo", Row: "home", Shift: content.ShiftOff, TargetWPM: 10, TargetAccuracy: 95},
		{Name: "1.7: Mixed Case", Algorithm: "pseudo", Row: "home", Shift: content.ShiftMixed, TargetWPM: 10, TargetAccuracy: 90},
	}

	foundations := []foundationSpec{
		{row: "focus_e_i", isolationShift: content.ShiftOff, variationShift: content.ShiftOff},
		{row: "focus_r_u", isolationShift: content.ShiftOff, variationShift: content.ShiftOff},
		{row: "focus_t_o", isolationShift: content.ShiftOff, variationShift: content.ShiftOff},
		{row: "focus_shift_period", isolationShift: content.ShiftMixed, variationShift: content.ShiftMixed},
		{row: "focus_c_comma", isolationShift: content.ShiftOff, variationShift: content.ShiftMixed},
		{row: "focus_g_h", isolationShift: content.ShiftOff, variationShift: content.ShiftMixed},
		{row: "focus_v_n_slash", isolationShift: content.ShiftOff, variationShift: content.ShiftMixed},
		{row: "focus_w_m", isolationShift: content.ShiftOff, variationShift: content.ShiftMixed},
		{row: "focus_q_p", isolationShift: content.ShiftOff, variationShift: content.ShiftMixed},
		{row: "focus_b_y", isolationShift: content.ShiftOff, variationShift: content.ShiftMixed},
		{row: "focus_z_x", isolationShift: content.ShiftOff, variationShift: content.ShiftMixed},
	}
	for i, spec := range foundations {
		number := i + 2
		lessons = append(lessons,
			Lesson{
				Name:           fmt.Sprintf("%d.1: Isolation", number),
				Algorithm:      "repeat",
				Row:            spec.row,
				Shift:          spec.isolationShift,
				TargetWPM:      10,
				TargetAccuracy: 95,
			},
			Lesson{
				Name:           fmt.Sprintf("%d.2: Variation", number),
				Algorithm:      "pseudo",
				Row:            spec.row,
				Shift:          spec.variationShift,
				TargetWPM:      10,
				TargetAccuracy: 95,
			},
		)
	}

	lessons = append(lessons,
		Lesson{Name: "13.1: Numbers Isolation", Algorithm: "repeat", Row: "numbers", Shift: content.ShiftOff, TargetWPM: 10, TargetAccuracy: 95},
		Lesson{Name: "13.2: Numbers Variation", Algorithm: "pseudo", Row: "numbers", Shift: content.ShiftOff, TargetWPM: 10, TargetAccuracy: 95},
		Lesson{Name: "14.1: Special Symbols", Algorithm: "repeat", Row: "symbols_basic", Shift: content.ShiftMixed, TargetWPM: 10, TargetAccuracy: 90},
		Lesson{Name: "14.2: Symbols Adjacency", Algorithm: "adjacent", Row: "symbols_basic", Shift: content.ShiftMixed, TargetWPM: 10, TargetAccuracy: 90},
		Lesson{Name: "14.3: Symbols Synthesis", Algorithm: "pseudo", Row: "symbols_basic", Shift: content.ShiftMixed, TargetWPM: 10, TargetAccuracy: 90},
		Lesson{Name: "15.1: Sentence Practice I", Algorithm: AlgorithmSentence, Row: "home", Shift: content.ShiftOff, TargetWPM: 20, TargetAccuracy: 90},
		Lesson{Name: "15.2: Sentence Practice II", Algorithm: AlgorithmSentence, Row: "home", Shift: content.ShiftOff, TargetWPM: 25, TargetAccuracy: 92},
		Lesson{Name: "15.3: Sentence Practice III", Algorithm: AlgorithmSentence, Row: "home", Shift: content.ShiftOff, TargetWPM: 30, TargetAccuracy: 95},
	)
	return lessons
}

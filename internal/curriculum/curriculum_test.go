package curriculum

import (
	"testing"

	"keydrill/internal/keyboard"
	"keydrill/internal/pattern"
)

func TestLessonCount(t *testing.T) {
	if got := Count(); got != 37 {
		t.Fatalf("expected 37 lessons, got %d", got)
	}
}

func TestLessonRowsExist(t *testing.T) {
	for _, lesson := range Lessons {
		if _, ok := keyboard.Rows[lesson.Row]; !ok {
			t.Fatalf("lesson %q references unknown row %q", lesson.Name, lesson.Row)
		}
	}
}

func TestLessonAlgorithmsKnown(t *testing.T) {
	for _, lesson := range Lessons {
		if lesson.Sentence() {
			continue
		}
		if _, ok := pattern.Parse(lesson.Algorithm); !ok {
			t.Fatalf("lesson %q has unknown algorithm %q", lesson.Name, lesson.Algorithm)
		}
	}
}

func TestAtClampsIndex(t *testing.T) {
	if got := At(-1); got != Lessons[0] {
		t.Fatalf("negative index should clamp to first lesson")
	}
	if got := At(1000); got != Lessons[len(Lessons)-1] {
		t.Fatalf("out-of-range index should clamp to last lesson")
	}
}

func TestPassedThresholds(t *testing.T) {
	lesson := Lesson{TargetWPM: 20, TargetAccuracy: 90}
	if !lesson.Passed(20, 90) {
		t.Fatalf("meeting both thresholds should pass")
	}
	if lesson.Passed(19, 95) {
		t.Fatalf("missing the WPM threshold should fail")
	}
	if lesson.Passed(25, 89) {
		t.Fatalf("missing the accuracy threshold should fail")
	}
}

func TestFinalLessonsAreSentencePractice(t *testing.T) {
	for _, lesson := range Lessons[len(Lessons)-3:] {
		if !lesson.Sentence() {
			t.Fatalf("lesson %q should be sentence practice", lesson.Name)
		}
	}
}

package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "keydrill.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	return s
}

func TestProfileRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	hard := false
	p := NewProfile("alice")
	p.LessonIndex = 3
	p.WPMRecord = 42
	p.Mode = "code"
	p.HardMode = &hard
	p.ShowFingers = false

	if err := s.SaveProfile(ctx, p); err != nil {
		t.Fatalf("failed to save profile: %v", err)
	}
	got, ok, err := s.GetProfile(ctx, "alice")
	if err != nil {
		t.Fatalf("failed to load profile: %v", err)
	}
	if !ok {
		t.Fatalf("saved profile not found")
	}
	if got.LessonIndex != 3 || got.WPMRecord != 42 || got.Mode != "code" || got.ShowFingers {
		t.Fatalf("profile fields lost: %+v", got)
	}
	if got.HardMode == nil || *got.HardMode != false {
		t.Fatalf("hard mode override lost: %+v", got.HardMode)
	}
	if !got.ShowKeyboard || !got.ShowStats {
		t.Fatalf("default pane settings lost: %+v", got)
	}
}

func TestGetProfileMissing(t *testing.T) {
	s := openTestStore(t)
	_, ok, err := s.GetProfile(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("missing profile should not be an error: %v", err)
	}
	if ok {
		t.Fatalf("missing profile reported as found")
	}
}

func TestSaveProfileUpserts(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p := NewProfile("bob")
	if err := s.SaveProfile(ctx, p); err != nil {
		t.Fatalf("failed to save profile: %v", err)
	}
	p.LessonIndex = 5
	if err := s.SaveProfile(ctx, p); err != nil {
		t.Fatalf("failed to update profile: %v", err)
	}

	got, _, err := s.GetProfile(ctx, "bob")
	if err != nil {
		t.Fatalf("failed to load profile: %v", err)
	}
	if got.LessonIndex != 5 {
		t.Fatalf("expected lesson index 5, got %d", got.LessonIndex)
	}
	profiles, err := s.ListProfiles(ctx)
	if err != nil {
		t.Fatalf("failed to list profiles: %v", err)
	}
	if len(profiles) != 1 {
		t.Fatalf("upsert should not duplicate, got %d profiles", len(profiles))
	}
}

func TestRecordDrillUpdatesProfile(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p := NewProfile("carol")
	p.LessonIndex = 1
	p.WPMRecord = 30
	p.TotalDrills = 4

	id, err := s.RecordDrill(ctx, p, Drill{
		Profile:     "carol",
		EndedAt:     time.Now().UTC(),
		Mode:        "curriculum",
		LessonIndex: 0,
		WPM:         35,
		Accuracy:    97,
		Passed:      true,
		DurationMs:  300000,
	})
	if err != nil {
		t.Fatalf("failed to record drill: %v", err)
	}
	if id == 0 {
		t.Fatalf("expected a drill id")
	}

	got, ok, err := s.GetProfile(ctx, "carol")
	if err != nil || !ok {
		t.Fatalf("failed to load profile after drill: ok=%v err=%v", ok, err)
	}
	if got.LessonIndex != 1 || got.WPMRecord != 30 || got.TotalDrills != 4 {
		t.Fatalf("profile not folded into drill transaction: %+v", got)
	}

	drills, err := s.ListDrills(ctx, "carol", 10)
	if err != nil {
		t.Fatalf("failed to list drills: %v", err)
	}
	if len(drills) != 1 {
		t.Fatalf("expected 1 drill, got %d", len(drills))
	}
	if drills[0].WPM != 35 || !drills[0].Passed {
		t.Fatalf("drill fields lost: %+v", drills[0])
	}
}

func TestListDrillsNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p := NewProfile("dave")
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := s.RecordDrill(ctx, p, Drill{
			Profile:    "dave",
			EndedAt:    base.Add(time.Duration(i) * time.Hour),
			Mode:       "sentences",
			WPM:        20 + i,
			Accuracy:   90,
			DurationMs: 60000,
		})
		if err != nil {
			t.Fatalf("failed to record drill %d: %v", i, err)
		}
	}

	drills, err := s.ListDrills(ctx, "dave", 2)
	if err != nil {
		t.Fatalf("failed to list drills: %v", err)
	}
	if len(drills) != 2 {
		t.Fatalf("expected 2 drills, got %d", len(drills))
	}
	if drills[0].WPM != 22 || drills[1].WPM != 21 {
		t.Fatalf("drills not newest first: %+v", drills)
	}
}

func TestDeleteProfileRemovesHistory(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p := NewProfile("erin")
	if _, err := s.RecordDrill(ctx, p, Drill{Profile: "erin", EndedAt: time.Now().UTC(), Mode: "code", WPM: 40, Accuracy: 95, DurationMs: 1000}); err != nil {
		t.Fatalf("failed to record drill: %v", err)
	}
	if err := s.DeleteProfile(ctx, "erin"); err != nil {
		t.Fatalf("failed to delete profile: %v", err)
	}

	_, ok, err := s.GetProfile(ctx, "erin")
	if err != nil {
		t.Fatalf("failed to check profile: %v", err)
	}
	if ok {
		t.Fatalf("deleted profile still present")
	}
	drills, err := s.ListDrills(ctx, "erin", 10)
	if err != nil {
		t.Fatalf("failed to list drills: %v", err)
	}
	if len(drills) != 0 {
		t.Fatalf("deleted profile still has %d drills", len(drills))
	}
}

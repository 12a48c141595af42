// Package store handles SQLite persistence for profiles and drill history.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Profile tracks one learner's progress and per-profile settings. Mode and
// HardMode are overrides; nil/empty means the config file or default
// applies.
type Profile struct {
	Name         string
	LessonIndex  int
	WPMRecord    int
	TotalDrills  int
	Mode         string
	HardMode     *bool
	ShowKeyboard bool
	ShowFingers  bool
	ShowStats    bool
}

// NewProfile returns a profile with the default pane settings.
func NewProfile(name string) Profile {
	return Profile{
		Name:         name,
		ShowKeyboard: true,
		ShowFingers:  true,
		ShowStats:    true,
	}
}

// Drill is one completed practice drill.
type Drill struct {
	ID          int64
	Profile     string
	EndedAt     time.Time
	Mode        string
	LessonIndex int
	WPM         int
	Accuracy    int
	Passed      bool
	DurationMs  int64
}

// Store wraps SQLite access for profile and drill data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
			name TEXT PRIMARY KEY,
			lesson_index INTEGER NOT NULL,
			wpm_record INTEGER NOT NULL,
			total_drills INTEGER NOT NULL,
			mode TEXT NOT NULL,
			hard_mode INTEGER,
			show_keyboard INTEGER NOT NULL,
			show_fingers INTEGER NOT NULL,
			show_stats INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS drills (
			id INTEGER PRIMARY KEY,
			profile TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			mode TEXT NOT NULL,
			lesson_index INTEGER NOT NULL,
			wpm INTEGER NOT NULL,
			accuracy INTEGER NOT NULL,
			passed INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_drills_profile_ended_at ON drills(profile, ended_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// GetProfile loads a profile by name. The second return value reports
// whether it exists.
func (s *Store) GetProfile(ctx context.Context, name string) (Profile, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT name, lesson_index, wpm_record, total_drills, mode, hard_mode, show_keyboard, show_fingers, show_stats
		 FROM profiles WHERE name = ?`, name)
	var p Profile
	var hardMode sql.NullBool
	err := row.Scan(&p.Name, &p.LessonIndex, &p.WPMRecord, &p.TotalDrills, &p.Mode, &hardMode, &p.ShowKeyboard, &p.ShowFingers, &p.ShowStats)
	if err == sql.ErrNoRows {
		return Profile{}, false, nil
	}
	if err != nil {
		return Profile{}, false, err
	}
	if hardMode.Valid {
		v := hardMode.Bool
		p.HardMode = &v
	}
	return p, true, nil
}

// SaveProfile inserts or replaces a profile.
func (s *Store) SaveProfile(ctx context.Context, p Profile) error {
	var hardMode any
	if p.HardMode != nil {
		hardMode = *p.HardMode
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO profiles (name, lesson_index, wpm_record, total_drills, mode, hard_mode, show_keyboard, show_fingers, show_stats)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
			lesson_index = excluded.lesson_index,
			wpm_record = excluded.wpm_record,
			total_drills = excluded.total_drills,
			mode = excluded.mode,
			hard_mode = excluded.hard_mode,
			show_keyboard = excluded.show_keyboard,
			show_fingers = excluded.show_fingers,
			show_stats = excluded.show_stats`,
		p.Name, p.LessonIndex, p.WPMRecord, p.TotalDrills, p.Mode, hardMode, p.ShowKeyboard, p.ShowFingers, p.ShowStats)
	return err
}

// ListProfiles returns all profiles ordered by name.
func (s *Store) ListProfiles(ctx context.Context) ([]Profile, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, lesson_index, wpm_record, total_drills, mode, hard_mode, show_keyboard, show_fingers, show_stats
		 FROM profiles ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var profiles []Profile
	for rows.Next() {
		var p Profile
		var hardMode sql.NullBool
		if err := rows.Scan(&p.Name, &p.LessonIndex, &p.WPMRecord, &p.TotalDrills, &p.Mode, &hardMode, &p.ShowKeyboard, &p.ShowFingers, &p.ShowStats); err != nil {
			return nil, err
		}
		if hardMode.Valid {
			v := hardMode.Bool
			p.HardMode = &v
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return profiles, nil
}

// DeleteProfile removes a profile and its drill history.
func (s *Store) DeleteProfile(ctx context.Context, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()
	if _, err = tx.ExecContext(ctx, `DELETE FROM drills WHERE profile = ?`, name); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM profiles WHERE name = ?`, name); err != nil {
		return err
	}
	return tx.Commit()
}

// RecordDrill stores a completed drill and folds its outcome into the
// profile's counters in one transaction.
func (s *Store) RecordDrill(ctx context.Context, p Profile, d Drill) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO drills (profile, ended_at, mode, lesson_index, wpm, accuracy, passed, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		d.Profile,
		d.EndedAt.Format(time.RFC3339Nano),
		d.Mode,
		d.LessonIndex,
		d.WPM,
		d.Accuracy,
		d.Passed,
		d.DurationMs,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	var hardMode any
	if p.HardMode != nil {
		hardMode = *p.HardMode
	}
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO profiles (name, lesson_index, wpm_record, total_drills, mode, hard_mode, show_keyboard, show_fingers, show_stats)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
			lesson_index = excluded.lesson_index,
			wpm_record = excluded.wpm_record,
			total_drills = excluded.total_drills,
			mode = excluded.mode,
			hard_mode = excluded.hard_mode,
			show_keyboard = excluded.show_keyboard,
			show_fingers = excluded.show_fingers,
			show_stats = excluded.show_stats`,
		p.Name, p.LessonIndex, p.WPMRecord, p.TotalDrills, p.Mode, hardMode, p.ShowKeyboard, p.ShowFingers, p.ShowStats); err != nil {
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListDrills returns the most recent drills for a profile, newest first.
func (s *Store) ListDrills(ctx context.Context, profile string, limit int) ([]Drill, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, profile, ended_at, mode, lesson_index, wpm, accuracy, passed, duration_ms
		 FROM drills WHERE profile = ?
		 ORDER BY ended_at DESC
		 LIMIT ?`, profile, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var drills []Drill
	for rows.Next() {
		var d Drill
		var endedAt string
		if err := rows.Scan(&d.ID, &d.Profile, &endedAt, &d.Mode, &d.LessonIndex, &d.WPM, &d.Accuracy, &d.Passed, &d.DurationMs); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, endedAt)
		if err != nil {
			return nil, err
		}
		d.EndedAt = parsed
		drills = append(drills, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return drills, nil
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/abhisek/sozdik/internal/settings"
)

type settingsRepo struct {
	db *sqlx.DB
}

type settingsRow struct {
	ID                int            `db:"id"`
	InterfaceLanguage string         `db:"interface_language"`
	ActiveLanguages   string         `db:"active_languages"`
	DailyGoalMinutes  int            `db:"daily_goal_minutes"`
	SoundEnabled      bool           `db:"sound_enabled"`
	CurrentStreak     int            `db:"current_streak"`
	LastSessionDate   sql.NullString `db:"last_session_date"`
	TotalStudyMinutes int            `db:"total_study_minutes"`
	CreatedAt         string         `db:"created_at"`
}

// Load returns the settings singleton, creating it with defaults on
// first use.
func (r *settingsRepo) Load(ctx context.Context, now time.Time) (*settings.Settings, error) {
	var row settingsRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM learner_settings WHERE id = 1`)
	if errors.Is(err, sql.ErrNoRows) {
		s := settings.New(now)
		if err := r.Save(ctx, s); err != nil {
			return nil, fmt.Errorf("create default settings: %w", err)
		}
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	created, err := time.Parse(timeFormat, row.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse settings created_at: %w", err)
	}

	s := &settings.Settings{
		InterfaceLanguage: row.InterfaceLanguage,
		ActiveLanguages:   settings.DecodeLanguages(row.ActiveLanguages),
		DailyGoalMinutes:  row.DailyGoalMinutes,
		SoundEnabled:      row.SoundEnabled,
		CurrentStreak:     row.CurrentStreak,
		TotalStudyMinutes: row.TotalStudyMinutes,
		CreatedAt:         created,
	}
	if row.LastSessionDate.Valid {
		last, err := time.Parse(timeFormat, row.LastSessionDate.String)
		if err != nil {
			return nil, fmt.Errorf("parse last_session_date: %w", err)
		}
		s.LastSessionDate = &last
	}
	return s, nil
}

func (r *settingsRepo) Save(ctx context.Context, s *settings.Settings) error {
	var lastSession any
	if s.LastSessionDate != nil {
		lastSession = s.LastSessionDate.UTC().Format(timeFormat)
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO learner_settings (
			id, interface_language, active_languages, daily_goal_minutes,
			sound_enabled, current_streak, last_session_date,
			total_study_minutes, created_at
		) VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			interface_language = excluded.interface_language,
			active_languages = excluded.active_languages,
			daily_goal_minutes = excluded.daily_goal_minutes,
			sound_enabled = excluded.sound_enabled,
			current_streak = excluded.current_streak,
			last_session_date = excluded.last_session_date,
			total_study_minutes = excluded.total_study_minutes`,
		s.InterfaceLanguage, settings.EncodeLanguages(s.ActiveLanguages),
		s.DailyGoalMinutes, s.SoundEnabled, s.CurrentStreak, lastSession,
		s.TotalStudyMinutes, s.CreatedAt.UTC().Format(timeFormat))
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

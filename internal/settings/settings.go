// Package settings holds the per-learner preferences and streak state.
package settings

import (
	"strings"
	"time"

	"github.com/abhisek/sozdik/internal/vocab"
)

// Default values applied when settings are created on first use.
const (
	DefaultInterfaceLanguage = "ru"
	DefaultDailyGoalMinutes  = 15
)

// DefaultActiveLanguages is the starter target-language subset.
var DefaultActiveLanguages = []vocab.Language{vocab.Kazakh, vocab.Turkish, vocab.Uzbek}

// Settings is the process-wide learner configuration singleton,
// created lazily on first use and persisted by the settings store.
type Settings struct {
	InterfaceLanguage string
	ActiveLanguages   []vocab.Language // ordered, duplicate-free, never empty
	DailyGoalMinutes  int
	SoundEnabled      bool
	CurrentStreak     int
	LastSessionDate   *time.Time
	TotalStudyMinutes int
	CreatedAt         time.Time
}

// New returns settings with defaults, created at now.
func New(now time.Time) *Settings {
	return &Settings{
		InterfaceLanguage: DefaultInterfaceLanguage,
		ActiveLanguages:   append([]vocab.Language(nil), DefaultActiveLanguages...),
		DailyGoalMinutes:  DefaultDailyGoalMinutes,
		SoundEnabled:      true,
		CreatedAt:         now,
	}
}

// UpdateStreak advances the daily streak for a session finished at
// now. A second session on the same calendar day is a no-op, the next
// day extends the streak, and any gap resets it to 1.
func (s *Settings) UpdateStreak(now time.Time) {
	today := startOfDay(now)

	if s.LastSessionDate != nil {
		// The store hands timestamps back in UTC; compare calendar
		// days in now's location or the midnights drift apart by the
		// zone offset.
		lastDay := startOfDay(s.LastSessionDate.In(now.Location()))
		switch days := daysBetween(lastDay, today); {
		case days == 0:
			return
		case days == 1:
			s.CurrentStreak++
		default:
			s.CurrentStreak = 1
		}
	} else {
		s.CurrentStreak = 1
	}

	s.LastSessionDate = &now
}

// AddStudyTime records minutes of study ending at now and updates the
// streak as a side effect.
func (s *Settings) AddStudyTime(minutes int, now time.Time) {
	s.TotalStudyMinutes += minutes
	s.UpdateStreak(now)
}

// ToggleLanguage adds code to the active set, or removes it when
// already present. The last active language cannot be removed; the
// toggle reports whether it took effect.
func (s *Settings) ToggleLanguage(code vocab.Language) bool {
	if !code.Valid() {
		return false
	}
	for i, l := range s.ActiveLanguages {
		if l == code {
			if len(s.ActiveLanguages) == 1 {
				return false
			}
			s.ActiveLanguages = append(s.ActiveLanguages[:i], s.ActiveLanguages[i+1:]...)
			return true
		}
	}
	s.ActiveLanguages = append(s.ActiveLanguages, code)
	return true
}

// IsLanguageActive reports whether code is in the active subset.
func (s *Settings) IsLanguageActive(code vocab.Language) bool {
	for _, l := range s.ActiveLanguages {
		if l == code {
			return true
		}
	}
	return false
}

// EncodeLanguages serializes the active set for storage as "kk,tr,uz".
func EncodeLanguages(langs []vocab.Language) string {
	parts := make([]string, len(langs))
	for i, l := range langs {
		parts[i] = string(l)
	}
	return strings.Join(parts, ",")
}

// DecodeLanguages parses a stored language list, dropping unknown
// codes and duplicates while preserving order. An empty or fully
// invalid value falls back to the defaults.
func DecodeLanguages(raw string) []vocab.Language {
	seen := make(map[vocab.Language]bool)
	var langs []vocab.Language
	for _, part := range strings.Split(raw, ",") {
		code := vocab.Language(strings.TrimSpace(part))
		if code.Valid() && !seen[code] {
			seen[code] = true
			langs = append(langs, code)
		}
	}
	if len(langs) == 0 {
		return append([]vocab.Language(nil), DefaultActiveLanguages...)
	}
	return langs
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// daysBetween counts calendar days from a to b, both at midnight.
// Dividing the duration would drift across DST boundaries, so count by
// stepping dates.
func daysBetween(a, b time.Time) int {
	if b.Before(a) {
		return -daysBetween(b, a)
	}
	days := 0
	for cur := a; cur.Before(b); cur = cur.AddDate(0, 0, 1) {
		days++
	}
	return days
}

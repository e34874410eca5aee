// Package review implements the spaced-repetition learning state and
// the SM-2 style update rule that drives it.
package review

import "time"

// Status describes where a word sits in the learning lifecycle. It is
// always derived from the record's counters, never set directly.
type Status string

const (
	StatusNew       Status = "new"
	StatusLearning  Status = "learning"
	StatusReviewing Status = "reviewing"
	StatusMastered  Status = "mastered"
)

// Record is the mutable per-word learning state, one-to-one with a
// vocab.Word ID. A missing record means the word has never been
// answered. Mutated exclusively through Apply.
type Record struct {
	WordID         int        `db:"word_id"`
	EaseFactor     float64    `db:"ease_factor"`
	Interval       int        `db:"interval"` // days
	Repetitions    int        `db:"repetitions"`
	NextReviewDate time.Time  `db:"next_review_date"`
	CorrectCount   int        `db:"correct_count"`
	IncorrectCount int        `db:"incorrect_count"`
	LastReviewedAt *time.Time `db:"last_reviewed_at"`
	FirstSeenAt    time.Time  `db:"first_seen_at"`
}

// NewRecord creates the initial state for a word first seen at now.
func NewRecord(wordID int, now time.Time) *Record {
	return &Record{
		WordID:         wordID,
		EaseFactor:     InitialEaseFactor,
		Interval:       1,
		Repetitions:    0,
		NextReviewDate: now,
		FirstSeenAt:    now,
	}
}

// Status derives the lifecycle state from the record's counters.
// Deriving instead of storing keeps the status from ever diverging
// from the fields that define it.
func (r *Record) Status() Status {
	switch {
	case r.Repetitions >= MasteryRepetitions && r.EaseFactor >= MasteryEaseFactor:
		return StatusMastered
	case r.Repetitions > 0:
		return StatusReviewing
	case r.CorrectCount+r.IncorrectCount > 0:
		return StatusLearning
	default:
		return StatusNew
	}
}

// Accuracy returns the fraction of correct answers, 0 with no attempts.
func (r *Record) Accuracy() float64 {
	total := r.CorrectCount + r.IncorrectCount
	if total == 0 {
		return 0.0
	}
	return float64(r.CorrectCount) / float64(total)
}

// IsDue reports whether the word should be reviewed at now. Mastered
// words are never due.
func (r *Record) IsDue(now time.Time) bool {
	return !r.NextReviewDate.After(now) && r.Status() != StatusMastered
}

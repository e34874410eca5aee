package review

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

func TestApplyFirstCorrect(t *testing.T) {
	r := NewRecord(42, t0)
	Apply(r, true, t0)

	assert.Equal(t, 1, r.Repetitions)
	assert.Equal(t, 1, r.Interval)
	assert.InDelta(t, 2.6, r.EaseFactor, 1e-9)
	assert.Equal(t, 1, r.CorrectCount)
	assert.Equal(t, StatusReviewing, r.Status())
	assert.Equal(t, t0.AddDate(0, 0, 1), r.NextReviewDate)
	require.NotNil(t, r.LastReviewedAt)
	assert.Equal(t, t0, *r.LastReviewedAt)
}

func TestApplySecondCorrect(t *testing.T) {
	r := NewRecord(42, t0)
	Apply(r, true, t0)

	day2 := t0.AddDate(0, 0, 1)
	Apply(r, true, day2)

	assert.Equal(t, 2, r.Repetitions)
	assert.Equal(t, 6, r.Interval)
	assert.InDelta(t, 2.7, r.EaseFactor, 1e-9)
	assert.Equal(t, StatusReviewing, r.Status())
	assert.Equal(t, day2.AddDate(0, 0, 6), r.NextReviewDate)
}

func TestApplyIncorrectResets(t *testing.T) {
	r := NewRecord(42, t0)
	Apply(r, true, t0)
	Apply(r, true, t0.AddDate(0, 0, 1))

	Apply(r, false, t0.AddDate(0, 0, 7))

	assert.Equal(t, 0, r.Repetitions)
	assert.Equal(t, 1, r.Interval)
	assert.InDelta(t, 2.5, r.EaseFactor, 1e-9)
	assert.Equal(t, 1, r.IncorrectCount)
	// Repetitions reset but answers were given, so back to learning.
	assert.Equal(t, StatusLearning, r.Status())
}

func TestApplyIncorrectAlwaysResets(t *testing.T) {
	// Regardless of prior state, one miss resets repetitions and interval.
	r := &Record{
		WordID:      7,
		EaseFactor:  2.9,
		Interval:    120,
		Repetitions: 9,
		FirstSeenAt: t0,
	}
	Apply(r, false, t0)

	assert.Equal(t, 0, r.Repetitions)
	assert.Equal(t, 1, r.Interval)
	assert.InDelta(t, 2.7, r.EaseFactor, 1e-9)
}

func TestApplyIntervalTruncation(t *testing.T) {
	// Interval growth truncates toward zero: 6 * 2.6 = 15.6 -> 15.
	r := &Record{
		WordID:       7,
		EaseFactor:   2.6,
		Interval:     6,
		Repetitions:  2,
		CorrectCount: 2,
		FirstSeenAt:  t0,
	}
	Apply(r, true, t0)
	assert.Equal(t, 15, r.Interval)

	// Exact products stay exact: 6 * 2.5 = 15.0 -> 15.
	r2 := &Record{
		WordID:       8,
		EaseFactor:   2.5,
		Interval:     6,
		Repetitions:  2,
		CorrectCount: 2,
		FirstSeenAt:  t0,
	}
	Apply(r2, true, t0)
	assert.Equal(t, 15, r2.Interval)
}

func TestEaseFactorFloor(t *testing.T) {
	r := NewRecord(42, t0)
	for i := 0; i < 20; i++ {
		Apply(r, false, t0.AddDate(0, 0, i))
		assert.GreaterOrEqual(t, r.EaseFactor, MinEaseFactor)
		assert.GreaterOrEqual(t, r.Interval, 1)
		assert.GreaterOrEqual(t, r.Repetitions, 0)
	}
	assert.InDelta(t, MinEaseFactor, r.EaseFactor, 1e-9)
}

func TestMasteryAfterFiveCorrect(t *testing.T) {
	r := NewRecord(42, t0)
	now := t0
	for i := 0; i < 5; i++ {
		assert.NotEqual(t, StatusMastered, r.Status())
		Apply(r, true, now)
		now = r.NextReviewDate
	}

	// Five straight correct answers from the default ease factor
	// crosses both mastery thresholds.
	assert.Equal(t, 5, r.Repetitions)
	assert.GreaterOrEqual(t, r.EaseFactor, MasteryEaseFactor)
	assert.Equal(t, StatusMastered, r.Status())
	assert.False(t, r.IsDue(now.AddDate(1, 0, 0)), "mastered words are never due")
}

func TestNotDueAfterUpdate(t *testing.T) {
	r := NewRecord(42, t0)
	Apply(r, true, t0)
	assert.False(t, r.IsDue(t0))
	assert.True(t, r.IsDue(t0.AddDate(0, 0, 1)))
}

func TestCalendarDayArithmetic(t *testing.T) {
	// Springing forward across a DST boundary still lands on the next
	// calendar day at the same wall-clock time.
	loc, err := time.LoadLocation("Europe/Istanbul")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	// Istanbul dropped DST in 2016, so use a historic boundary year.
	start := time.Date(2015, time.March, 28, 10, 0, 0, 0, loc)
	r := NewRecord(1, start)
	Apply(r, true, start)

	next := r.NextReviewDate
	assert.Equal(t, 29, next.Day())
	assert.Equal(t, 10, next.Hour())
}

func TestRecordAccuracy(t *testing.T) {
	r := NewRecord(1, t0)
	assert.Zero(t, r.Accuracy())

	Apply(r, true, t0)
	Apply(r, true, t0)
	Apply(r, false, t0)
	assert.InDelta(t, 2.0/3.0, r.Accuracy(), 1e-9)
}

func TestStatusDerivation(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want Status
	}{
		{"fresh", Record{}, StatusNew},
		{"answered wrong only", Record{IncorrectCount: 2}, StatusLearning},
		{"in rotation", Record{Repetitions: 3, EaseFactor: 2.0, CorrectCount: 3}, StatusReviewing},
		{"enough reps low ease", Record{Repetitions: 7, EaseFactor: 2.2, CorrectCount: 7}, StatusReviewing},
		{"high ease few reps", Record{Repetitions: 4, EaseFactor: 3.0, CorrectCount: 4}, StatusReviewing},
		{"mastered", Record{Repetitions: 5, EaseFactor: 2.5, CorrectCount: 5}, StatusMastered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rec.Status())
		})
	}
}

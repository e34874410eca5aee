package review

import "time"

// SM-2 parameters. The ease factor never drops below MinEaseFactor, so
// intervals keep growing even for chronically difficult words.
const (
	InitialEaseFactor = 2.5
	MinEaseFactor     = 1.3

	easeReward  = 0.1
	easePenalty = 0.2

	// SecondInterval is the jump after the second consecutive correct
	// answer; the classic SM-2 1 -> 6 day ladder.
	FirstInterval  = 1
	SecondInterval = 6

	// Mastery thresholds for the derived status.
	MasteryRepetitions = 5
	MasteryEaseFactor  = 2.5
)

// Apply updates r with the outcome of one recall attempt at now.
//
// A correct answer grows the interval (1, 6, then interval*ease
// truncated to whole days) and nudges the ease factor up. An incorrect
// answer resets repetitions and the interval and drops the ease
// factor. Either way the next review lands interval calendar days
// after now; AddDate keeps the schedule aligned with the local
// calendar across DST shifts.
//
// Apply never fails: every branch clamps to a valid state.
func Apply(r *Record, correct bool, now time.Time) {
	r.LastReviewedAt = &now

	if correct {
		r.CorrectCount++

		switch r.Repetitions {
		case 0:
			r.Interval = FirstInterval
		case 1:
			r.Interval = SecondInterval
		default:
			r.Interval = int(float64(r.Interval) * r.EaseFactor)
		}

		r.Repetitions++
		r.EaseFactor = max(MinEaseFactor, r.EaseFactor+easeReward)
	} else {
		r.IncorrectCount++
		r.Repetitions = 0
		r.Interval = FirstInterval
		r.EaseFactor = max(MinEaseFactor, r.EaseFactor-easePenalty)
	}

	r.NextReviewDate = now.AddDate(0, 0, r.Interval)
}

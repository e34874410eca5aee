package session

import "time"

// Summary is the end-of-session report shown to the learner.
type Summary struct {
	WordCount int
	Correct   int
	Incorrect int
	Accuracy  float64
	Elapsed   time.Duration
}

// Summarize closes out a session state at the given time.
func Summarize(s *State, now time.Time) Summary {
	return Summary{
		WordCount: len(s.Words),
		Correct:   s.Correct,
		Incorrect: s.Incorrect,
		Accuracy:  s.Accuracy(),
		Elapsed:   now.Sub(s.StartedAt),
	}
}

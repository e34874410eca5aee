package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/sozdik/internal/vocab"
)

// State tracks one in-progress session: the composed word list, the
// cursor, and running answer tallies.
type State struct {
	ID        uuid.UUID
	Words     []*vocab.Word
	Index     int
	Correct   int
	Incorrect int
	StartedAt time.Time
}

// NewState starts a session over the given word list.
func NewState(words []*vocab.Word, now time.Time) *State {
	return &State{
		ID:        uuid.New(),
		Words:     words,
		StartedAt: now,
	}
}

// Current returns the word under the cursor, or nil when the session
// is exhausted.
func (s *State) Current() *vocab.Word {
	if s.Index < 0 || s.Index >= len(s.Words) {
		return nil
	}
	return s.Words[s.Index]
}

// Record tallies an answer for the current word and advances the
// cursor.
func (s *State) Record(correct bool) {
	if correct {
		s.Correct++
	} else {
		s.Incorrect++
	}
	s.Index++
}

// Done reports whether every word has been answered.
func (s *State) Done() bool {
	return s.Index >= len(s.Words)
}

// Answered returns the number of answers recorded so far.
func (s *State) Answered() int {
	return s.Correct + s.Incorrect
}

// Accuracy returns the fraction of correct answers, or 0 before any
// answer.
func (s *State) Accuracy() float64 {
	if s.Answered() == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Answered())
}

package learn

import (
	"github.com/abhisek/sozdik/internal/review"
	"github.com/abhisek/sozdik/internal/session"
	"github.com/abhisek/sozdik/internal/settings"
)

// sessionReadyMsg carries the composed session, or the error that
// prevented it.
type sessionReadyMsg struct {
	State    *session.State
	Settings *settings.Settings
	Err      error
}

// answerSavedMsg reports the persisted outcome of one answer.
type answerSavedMsg struct {
	Correct bool
	Record  *review.Record
	Err     error
}

// sessionEndMsg asks the screen to finish the session and hand off to
// the summary.
type sessionEndMsg struct{}

// Package learn implements the flashcard session screen.
package learn

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/sozdik/internal/router"
	"github.com/abhisek/sozdik/internal/screen"
	"github.com/abhisek/sozdik/internal/screens/summary"
	"github.com/abhisek/sozdik/internal/session"
	"github.com/abhisek/sozdik/internal/settings"
	"github.com/abhisek/sozdik/internal/similarity"
	"github.com/abhisek/sozdik/internal/store"
	"github.com/abhisek/sozdik/internal/ui/components"
	"github.com/abhisek/sozdik/internal/ui/layout"
	"github.com/abhisek/sozdik/internal/vocab"
)

// Options configures a learn session screen.
type Options struct {
	Composer    *session.Composer
	Settings    store.SettingsRepo
	ReviewQuota int
	NewQuota    int
	Typed       bool
	Seed        int64 // 0 = time-seeded shuffle
}

// LearnScreen runs one flashcard session. Two modes: self-graded
// reveal (default) and typed recall.
type LearnScreen struct {
	opts     Options
	state    *session.State
	settings *settings.Settings
	input    components.TextInput

	revealed     bool
	showFeedback bool
	saving       bool
	lastWord     *vocab.Word
	lastAnswer   string
	lastCorrect  bool
	lastSim      float64
	errMsg       string
}

var _ screen.Screen = (*LearnScreen)(nil)
var _ screen.KeyHintProvider = (*LearnScreen)(nil)

// New creates a learn screen; the session is composed in Init.
func New(opts Options) *LearnScreen {
	if opts.ReviewQuota <= 0 {
		opts.ReviewQuota = session.DefaultReviewQuota
	}
	if opts.NewQuota <= 0 {
		opts.NewQuota = session.DefaultNewQuota
	}
	return &LearnScreen{
		opts:  opts,
		input: components.NewTextInput("Type the word...", 40),
	}
}

func (l *LearnScreen) Init() tea.Cmd {
	return tea.Batch(l.composeSession(), l.input.Init())
}

func (l *LearnScreen) Title() string {
	return "Learn"
}

// HandlesEsc keeps the app from popping the screen on esc; the session
// needs to finish cleanly so recorded answers count toward the streak.
func (l *LearnScreen) HandlesEsc() {}

func (l *LearnScreen) KeyHints() []layout.KeyHint {
	switch {
	case l.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case l.showFeedback:
		return []layout.KeyHint{{Key: "any key", Description: "Next card"}}
	case l.opts.Typed:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "End session"},
		}
	case l.revealed:
		return []layout.KeyHint{
			{Key: "Y", Description: "Knew it"},
			{Key: "N", Description: "Missed it"},
			{Key: "Esc", Description: "End session"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Space", Description: "Reveal"},
			{Key: "Esc", Description: "End session"},
		}
	}
}

func (l *LearnScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionReadyMsg:
		if msg.Err != nil {
			l.errMsg = msg.Err.Error()
			return l, nil
		}
		l.state = msg.State
		l.settings = msg.Settings
		return l, nil

	case answerSavedMsg:
		return l.handleAnswerSaved(msg)

	case sessionEndMsg:
		return l.handleSessionEnd()

	case tea.KeyMsg:
		return l.handleKey(msg)
	}

	if l.opts.Typed && l.state != nil && !l.showFeedback {
		var cmd tea.Cmd
		l.input, cmd = l.input.Update(msg)
		return l, cmd
	}
	return l, nil
}

func (l *LearnScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if l.errMsg != "" {
		return l, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if l.state == nil {
		return l, nil
	}

	// Feedback overlay: any key advances.
	if l.showFeedback {
		l.showFeedback = false
		l.revealed = false
		if l.state.Done() {
			return l, func() tea.Msg { return sessionEndMsg{} }
		}
		if l.opts.Typed {
			l.input = components.NewTextInput("Type the word...", 40)
			return l, l.input.Init()
		}
		return l, nil
	}

	if key == "esc" {
		// Recorded answers stay recorded; ending early just skips the
		// remaining cards.
		return l, func() tea.Msg { return sessionEndMsg{} }
	}

	if l.opts.Typed {
		if key == "enter" {
			return l.submitTyped()
		}
		var cmd tea.Cmd
		l.input, cmd = l.input.Update(msg)
		return l, cmd
	}

	// Self-graded flow.
	if !l.revealed {
		if key == "space" || key == " " || key == "enter" {
			l.revealed = true
		}
		return l, nil
	}
	switch key {
	case "y", "Y", "1":
		return l.grade(true)
	case "n", "N", "2":
		return l.grade(false)
	}
	return l, nil
}

// answerLanguage is the language the typed mode asks for: the first
// active target language that has a form for the word.
func (l *LearnScreen) answerLanguage(w *vocab.Word) vocab.Language {
	for _, lang := range l.settings.ActiveLanguages {
		if w.Native(lang) != "" {
			return lang
		}
	}
	return l.settings.ActiveLanguages[0]
}

// matchesForm grades a typed answer: a case-folded match on either the
// native or the romanized form counts. Similarity is advisory only and
// never flips the result.
func matchesForm(answer string, f vocab.Form) bool {
	if strings.EqualFold(answer, f.Native) {
		return true
	}
	return f.Latin != "" && strings.EqualFold(answer, f.Latin)
}

func (l *LearnScreen) submitTyped() (screen.Screen, tea.Cmd) {
	w := l.state.Current()
	if w == nil || l.saving {
		return l, nil
	}
	answer := strings.TrimSpace(l.input.Value())
	if answer == "" {
		return l, nil
	}

	lang := l.answerLanguage(w)
	correct := matchesForm(answer, w.Form(lang))

	l.lastAnswer = answer
	l.lastSim = similarity.Similarity(answer, w.Native(lang))
	l.input.Submit(correct)
	return l.grade(correct)
}

func (l *LearnScreen) grade(correct bool) (screen.Screen, tea.Cmd) {
	w := l.state.Current()
	if w == nil || l.saving {
		return l, nil
	}
	// Ignore repeated grading keys until the answer lands; a held key
	// would otherwise record the same word twice and skip a card.
	l.saving = true
	l.lastCorrect = correct
	l.lastWord = w

	composer := l.opts.Composer
	wordID := w.ID
	return l, func() tea.Msg {
		rec, err := composer.RecordAnswer(context.Background(), wordID, correct, time.Now())
		return answerSavedMsg{Correct: correct, Record: rec, Err: err}
	}
}

func (l *LearnScreen) handleAnswerSaved(msg answerSavedMsg) (screen.Screen, tea.Cmd) {
	l.saving = false
	if msg.Err != nil {
		l.errMsg = msg.Err.Error()
		return l, nil
	}

	l.state.Record(msg.Correct)

	if l.opts.Typed {
		// Index already moved; show feedback for the answered card.
		l.showFeedback = true
		return l, nil
	}

	// Self-graded mode already showed the card; go straight on.
	l.revealed = false
	if l.state.Done() {
		return l, func() tea.Msg { return sessionEndMsg{} }
	}
	return l, nil
}

func (l *LearnScreen) handleSessionEnd() (screen.Screen, tea.Cmd) {
	if l.state == nil || l.state.Answered() == 0 {
		return l, func() tea.Msg { return router.PopScreenMsg{} }
	}

	now := time.Now()
	sum := session.Summarize(l.state, now)

	// Study time and streak update on every completed session, partial
	// or not.
	ctx := context.Background()
	if l.settings != nil {
		l.settings.AddStudyTime(int(sum.Elapsed.Minutes()), now)
		_ = l.opts.Settings.Save(ctx, l.settings)
	}

	return l, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(sum)}
	}
}

// composeSession builds the word list and loads learner settings.
func (l *LearnScreen) composeSession() tea.Cmd {
	opts := l.opts
	return func() tea.Msg {
		ctx := context.Background()
		now := time.Now()

		s, err := opts.Settings.Load(ctx, now)
		if err != nil {
			return sessionReadyMsg{Err: err}
		}

		var rng *rand.Rand
		if opts.Seed != 0 {
			rng = rand.New(rand.NewSource(opts.Seed))
		}
		words, err := opts.Composer.Build(ctx, now, opts.ReviewQuota, opts.NewQuota, rng)
		if err != nil {
			return sessionReadyMsg{Err: err}
		}
		if len(words) == 0 {
			return sessionReadyMsg{Err: errors.New("nothing to study: no due reviews and no new words")}
		}

		return sessionReadyMsg{State: session.NewState(words, now), Settings: s}
	}
}

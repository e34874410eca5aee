// Package app wires the store into the Bubble Tea program and owns the
// outer frame (header, footer, min-size guard).
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sozdik/internal/router"
	"github.com/abhisek/sozdik/internal/screen"
	"github.com/abhisek/sozdik/internal/screens/home"
	"github.com/abhisek/sozdik/internal/session"
	"github.com/abhisek/sozdik/internal/stats"
	"github.com/abhisek/sozdik/internal/store"
	"github.com/abhisek/sozdik/internal/ui/layout"
)

// Options configures the TUI.
type Options struct {
	Store       *store.Store
	ReviewQuota int
	NewQuota    int
	Typed       bool
	Seed        int64
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	deps   home.Deps
	width  int
	height int
	streak int
	due    int
}

// headerStatusMsg refreshes the streak and due figures in the header.
type headerStatusMsg struct {
	streak int
	due    int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	deps := home.Deps{
		Words:       opts.Store.Words(),
		Records:     opts.Store.Records(),
		Settings:    opts.Store.Settings(),
		Composer:    session.NewComposer(opts.Store.Words(), opts.Store.Records()),
		ReviewQuota: opts.ReviewQuota,
		NewQuota:    opts.NewQuota,
		Typed:       opts.Typed,
		Seed:        opts.Seed,
	}
	return AppModel{
		router: router.New(home.New(deps)),
		deps:   deps,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.loadHeaderStatus()
}

// loadHeaderStatus reads the streak and due count for the header bar.
func (m AppModel) loadHeaderStatus() tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		ctx := context.Background()
		now := time.Now()

		var msg headerStatusMsg
		if s, err := deps.Settings.Load(ctx, now); err == nil {
			msg.streak = s.CurrentStreak
		}
		if recs, err := deps.Records.All(ctx); err == nil {
			msg.due = stats.Aggregate(recs, now).DueCount
		}
		return msg
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case headerStatusMsg:
		m.streak = msg.streak
		m.due = msg.due
		return m, nil

	case router.PopScreenMsg:
		// Returning to a parent screen is when the figures go stale.
		cmd := m.router.Update(msg)
		return m, tea.Batch(cmd, m.loadHeaderStatus())

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			// Screens that handle esc themselves sit above the home
			// screen only while a session runs; the learn screen
			// intercepts esc before it reaches here.
			if m.router.Depth() > 1 {
				if _, ok := m.router.Active().(escHandler); !ok {
					return m, func() tea.Msg { return router.PopScreenMsg{} }
				}
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// escHandler marks screens that own the esc key.
type escHandler interface {
	HandlesEsc()
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.streak, m.due, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}

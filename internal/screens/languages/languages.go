// Package languages lets the learner toggle active target languages.
package languages

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sozdik/internal/screen"
	"github.com/abhisek/sozdik/internal/settings"
	"github.com/abhisek/sozdik/internal/store"
	"github.com/abhisek/sozdik/internal/ui/layout"
	"github.com/abhisek/sozdik/internal/ui/theme"
	"github.com/abhisek/sozdik/internal/vocab"
)

// LanguagesScreen toggles the active target-language subset.
type LanguagesScreen struct {
	repo     store.SettingsRepo
	settings *settings.Settings
	cursor   int
	notice   string
	errMsg   string
}

var _ screen.Screen = (*LanguagesScreen)(nil)
var _ screen.KeyHintProvider = (*LanguagesScreen)(nil)

// New creates the languages screen.
func New(repo store.SettingsRepo) *LanguagesScreen {
	l := &LanguagesScreen{repo: repo}
	s, err := repo.Load(context.Background(), time.Now())
	if err != nil {
		l.errMsg = err.Error()
		return l
	}
	l.settings = s
	return l
}

func (l *LanguagesScreen) Init() tea.Cmd {
	return nil
}

func (l *LanguagesScreen) Title() string {
	return "Languages"
}

func (l *LanguagesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Space", Description: "Toggle"},
		{Key: "Esc", Description: "Back"},
	}
}

func (l *LanguagesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || l.settings == nil {
		return l, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if l.cursor > 0 {
			l.cursor--
		}
	case "down", "j":
		if l.cursor < len(vocab.Languages)-1 {
			l.cursor++
		}
	case "space", " ", "enter":
		code := vocab.Languages[l.cursor]
		if !l.settings.ToggleLanguage(code) {
			l.notice = "at least one language must stay active"
			return l, nil
		}
		l.notice = ""
		if err := l.repo.Save(context.Background(), l.settings); err != nil {
			l.errMsg = err.Error()
		}
	}
	return l, nil
}

func (l *LanguagesScreen) View(width, height int) string {
	if l.errMsg != "" {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Incorrect.Render("Error: "+l.errMsg))
	}

	var b strings.Builder
	b.WriteString(theme.Subtitle.Width(width).Render(
		"Choose which languages your sessions cover"))
	b.WriteString("\n\n")

	var rows []string
	for i, code := range vocab.Languages {
		mark := "[ ]"
		if l.settings.IsLanguageActive(code) {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %-12s %s", mark, code.Name(), code)
		if i == l.cursor {
			line = theme.Selected.Render("▸ " + line)
		} else {
			line = theme.Unselected.Render("  " + line)
		}
		rows = append(rows, line)
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		strings.Join(rows, "\n")))

	if l.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render(l.notice))
	}

	return lipgloss.PlaceVertical(height, lipgloss.Center, b.String())
}

package home

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sozdik/internal/router"
	"github.com/abhisek/sozdik/internal/screen"
	"github.com/abhisek/sozdik/internal/screens/languages"
	"github.com/abhisek/sozdik/internal/screens/learn"
	"github.com/abhisek/sozdik/internal/screens/progress"
	"github.com/abhisek/sozdik/internal/session"
	"github.com/abhisek/sozdik/internal/stats"
	"github.com/abhisek/sozdik/internal/store"
	"github.com/abhisek/sozdik/internal/ui/components"
	"github.com/abhisek/sozdik/internal/ui/theme"
)

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	menu       components.Menu
	dueCount   int
	streak     int
	studied    int
	totalWords int
	goalMins   int
	totalMins  int
}

var _ screen.Screen = (*HomeScreen)(nil)

// Deps carries the repositories and session options the home screen
// and its child screens need.
type Deps struct {
	Words    store.WordRepo
	Records  store.RecordRepo
	Settings store.SettingsRepo

	Composer    *session.Composer
	ReviewQuota int
	NewQuota    int
	Typed       bool
	Seed        int64
}

// New creates a new HomeScreen, loading headline figures up front.
func New(deps Deps) *HomeScreen {
	ctx := context.Background()
	now := time.Now()

	h := &HomeScreen{}

	if records, err := deps.Records.All(ctx); err == nil {
		p := stats.Aggregate(records, now)
		h.dueCount = p.DueCount
		h.studied = p.Studied()
	}
	if count, err := deps.Words.Count(ctx); err == nil {
		h.totalWords = count
	}
	if s, err := deps.Settings.Load(ctx, now); err == nil {
		h.streak = s.CurrentStreak
		h.goalMins = s.DailyGoalMinutes
		h.totalMins = s.TotalStudyMinutes
	}

	items := []components.MenuItem{
		{Label: "START LEARNING", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: learn.New(learn.Options{
						Composer:    deps.Composer,
						Settings:    deps.Settings,
						ReviewQuota: deps.ReviewQuota,
						NewQuota:    deps.NewQuota,
						Typed:       deps.Typed,
						Seed:        deps.Seed,
					}),
				}
			}
		}},
		{Label: "PROGRESS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: progress.New(deps.Records, deps.Words, deps.Settings),
				}
			}
		}},
		{Label: "LANGUAGES", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: languages.New(deps.Settings)}
			}
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, theme.Title.Width(width).Render("С Ө З Д І К"))
	sections = append(sections, theme.Subtitle.Width(width).Render(
		"one vocabulary, six Turkic languages"))

	statsLine := fmt.Sprintf("Due today: %d    Studied: %d / %d    Streak: %d days",
		h.dueCount, h.studied, h.totalWords, h.streak)
	sections = append(sections, lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))

	goalLine := fmt.Sprintf("Daily goal: %d min    Total: %d min", h.goalMins, h.totalMins)
	sections = append(sections, lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(goalLine))

	menuView := lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View())
	sections = append(sections, menuView)

	content := strings.Join(sections, "\n\n")
	return lipgloss.PlaceVertical(height, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

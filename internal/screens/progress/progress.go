// Package progress renders the learner's aggregate statistics.
package progress

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sozdik/internal/screen"
	"github.com/abhisek/sozdik/internal/stats"
	"github.com/abhisek/sozdik/internal/store"
	"github.com/abhisek/sozdik/internal/ui/components"
	"github.com/abhisek/sozdik/internal/ui/theme"
)

// ProgressScreen shows lifecycle counts, accuracy, and study time.
type ProgressScreen struct {
	progress   stats.Progress
	totalWords int
	streak     int
	studyMins  int
	goalMins   int
	errMsg     string
}

var _ screen.Screen = (*ProgressScreen)(nil)

// New creates the progress screen, loading figures up front.
func New(records store.RecordRepo, words store.WordRepo, settingsRepo store.SettingsRepo) *ProgressScreen {
	ctx := context.Background()
	now := time.Now()
	p := &ProgressScreen{}

	recs, err := records.All(ctx)
	if err != nil {
		p.errMsg = err.Error()
		return p
	}
	p.progress = stats.Aggregate(recs, now)

	if count, err := words.Count(ctx); err == nil {
		p.totalWords = count
	}
	if s, err := settingsRepo.Load(ctx, now); err == nil {
		p.streak = s.CurrentStreak
		p.studyMins = s.TotalStudyMinutes
		p.goalMins = s.DailyGoalMinutes
	}
	return p
}

func (p *ProgressScreen) Init() tea.Cmd {
	return nil
}

func (p *ProgressScreen) Title() string {
	return "Progress"
}

func (p *ProgressScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return p, nil
}

func (p *ProgressScreen) View(width, height int) string {
	if p.errMsg != "" {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Incorrect.Render("Error: "+p.errMsg))
	}

	var b strings.Builder

	// Unseen words count as new alongside records that have a row but
	// no answers yet.
	unseen := p.totalWords - p.progress.Studied() - p.progress.NewCount
	if unseen < 0 {
		unseen = 0
	}
	newTotal := p.progress.NewCount + unseen

	barWidth := min(width-20, 44)
	rows := []struct {
		label string
		count int
	}{
		{"New", newTotal},
		{"Learning", p.progress.LearningCount},
		{"Reviewing", p.progress.ReviewingCount},
		{"Mastered", p.progress.MasteredCount},
	}
	for _, row := range rows {
		pct := 0.0
		if p.totalWords > 0 {
			pct = float64(row.count) / float64(p.totalWords)
		}
		bar := components.NewProgressBar(
			fmt.Sprintf("%-10s %4d", row.label, row.count), pct, true, barWidth).View()
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	accuracy := "n/a"
	if p.progress.TotalReviews > 0 {
		accuracy = fmt.Sprintf("%.0f%%", p.progress.Accuracy*100)
	}
	statsLine := fmt.Sprintf("Due now: %d    Reviews: %d    Accuracy: %s",
		p.progress.DueCount, p.progress.TotalReviews, accuracy)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n\n")

	b.WriteString(theme.Subtitle.Width(width).Render(fmt.Sprintf(
		"Streak: %d days    Study time: %d min    Daily goal: %d min",
		p.streak, p.studyMins, p.goalMins)))

	return lipgloss.PlaceVertical(height, lipgloss.Center, b.String())
}

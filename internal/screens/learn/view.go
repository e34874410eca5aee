package learn

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/sozdik/internal/ui/components"
	"github.com/abhisek/sozdik/internal/ui/theme"
	"github.com/abhisek/sozdik/internal/vocab"
)

func (l *LearnScreen) View(width, height int) string {
	switch {
	case l.errMsg != "":
		return centered(width, height, theme.Incorrect.Render("Error: "+l.errMsg))
	case l.state == nil:
		return centered(width, height, theme.Hint.Render("Preparing your session..."))
	case l.showFeedback:
		return l.renderFeedback(width, height)
	default:
		return l.renderCard(width, height)
	}
}

func (l *LearnScreen) renderCard(width, height int) string {
	w := l.state.Current()
	if w == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString(l.renderProgress(width))
	b.WriteString("\n\n")

	// Front of the card: the gloss in the interface language.
	gloss := w.Gloss(l.settings.InterfaceLanguage)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(gloss))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render(
		fmt.Sprintf("%s · %s · %s", w.POS, w.Level, w.Origin)))
	b.WriteString("\n\n")

	if l.opts.Typed {
		lang := l.answerLanguage(w)
		b.WriteString(theme.Subtitle.Width(width).Render(
			fmt.Sprintf("Write it in %s:", lang.Name())))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, l.input.View()))
		return centered(width, height, b.String())
	}

	if l.revealed {
		b.WriteString(l.renderForms(w, width))
	} else {
		b.WriteString(theme.Hint.Width(width).Align(lipgloss.Center).
			Render("press space to reveal"))
	}

	return centered(width, height, b.String())
}

func (l *LearnScreen) renderFeedback(width, height int) string {
	w := l.lastWord
	if w == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(l.renderProgress(width))
	b.WriteString("\n\n")

	if l.lastCorrect {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Correct.Render("Correct!")))
	} else {
		lang := l.answerLanguage(w)
		miss := fmt.Sprintf("Not quite. You wrote %q", l.lastAnswer)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Incorrect.Render(miss)))
		b.WriteString("\n")
		b.WriteString(theme.Subtitle.Width(width).Render(
			fmt.Sprintf("similarity to %s: %.0f%%", w.Native(lang), l.lastSim*100)))
	}
	b.WriteString("\n\n")
	b.WriteString(l.renderForms(w, width))

	return centered(width, height, b.String())
}

// renderForms shows the word in every active target language.
func (l *LearnScreen) renderForms(w *vocab.Word, width int) string {
	var rows []string
	for _, lang := range l.settings.ActiveLanguages {
		f := w.Form(lang)
		if f.Native == "" {
			continue
		}
		line := fmt.Sprintf("%-12s %s", lang.Name(), f.Native)
		if f.Latin != "" {
			line += "  " + theme.Hint.Render(f.Latin)
		}
		if f.IPA != "" {
			line += "  " + theme.Hint.Render("["+f.IPA+"]")
		}
		rows = append(rows, line)
	}
	if len(rows) == 0 {
		rows = append(rows, theme.Hint.Render("no forms for your active languages"))
	}

	forms := theme.Card.Render(strings.Join(rows, "\n"))
	score := components.NewProgressBar("cognate", w.CognateScore, true, 36).View()

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, forms) +
		"\n\n" +
		lipgloss.PlaceHorizontal(width, lipgloss.Center, score)
}

func (l *LearnScreen) renderProgress(width int) string {
	done := l.state.Answered()
	total := len(l.state.Words)
	pct := 0.0
	if total > 0 {
		pct = float64(done) / float64(total)
	}
	bar := components.NewProgressBar(
		fmt.Sprintf("%d/%d", done, total), pct, false, min(width-8, 48)).View()
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, bar)
}

func centered(width, height int, content string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

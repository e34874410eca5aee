package cmd

import (
	"fmt"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/sozdik/internal/stats"
	"github.com/abhisek/sozdik/internal/ui/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ctx := cmd.Context()
		now := time.Now()

		records, err := st.Records().All(ctx)
		if err != nil {
			return fmt.Errorf("load records: %w", err)
		}
		total, err := st.Words().Count(ctx)
		if err != nil {
			return fmt.Errorf("count words: %w", err)
		}
		s, err := st.Settings().Load(ctx, now)
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}

		p := stats.Aggregate(records, now)
		unseen := total - len(records)
		if unseen < 0 {
			unseen = 0
		}

		label := lipgloss.NewStyle().Foreground(theme.TextDim).Render
		value := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render

		fmt.Println(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("Sozdik statistics"))
		fmt.Println()
		fmt.Printf("%s %s\n", label("Vocabulary:"), value(fmt.Sprintf("%d words", total)))
		fmt.Printf("%s %s\n", label("New:       "), value(fmt.Sprintf("%d", p.NewCount+unseen)))
		fmt.Printf("%s %s\n", label("Learning:  "), value(fmt.Sprintf("%d", p.LearningCount)))
		fmt.Printf("%s %s\n", label("Reviewing: "), value(fmt.Sprintf("%d", p.ReviewingCount)))
		fmt.Printf("%s %s\n", label("Mastered:  "), value(fmt.Sprintf("%d", p.MasteredCount)))
		fmt.Printf("%s %s\n", label("Due now:   "), value(fmt.Sprintf("%d", p.DueCount)))
		fmt.Println()
		accuracy := "n/a"
		if p.TotalReviews > 0 {
			accuracy = fmt.Sprintf("%.0f%%", p.Accuracy*100)
		}
		fmt.Printf("%s %s\n", label("Reviews:   "), value(fmt.Sprintf("%d", p.TotalReviews)))
		fmt.Printf("%s %s\n", label("Accuracy:  "), value(accuracy))
		fmt.Printf("%s %s\n", label("Streak:    "), value(fmt.Sprintf("%d days", s.CurrentStreak)))
		fmt.Printf("%s %s\n", label("Study time:"), value(fmt.Sprintf("%d min", s.TotalStudyMinutes)))
		return nil
	},
}

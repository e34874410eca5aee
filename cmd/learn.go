package cmd

import (
	"fmt"

	"github.com/abhisek/sozdik/internal/app"
	"github.com/abhisek/sozdik/internal/session"
	"github.com/spf13/cobra"
)

var learnCmd = &cobra.Command{
	Use:   "learn",
	Short: "Start a learning session right away",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		reviewQuota, _ := cmd.Flags().GetInt("review")
		newQuota, _ := cmd.Flags().GetInt("new")
		typed, _ := cmd.Flags().GetBool("typed")
		seed, _ := cmd.Flags().GetInt64("seed")

		return app.Run(app.Options{
			Store:       st,
			ReviewQuota: reviewQuota,
			NewQuota:    newQuota,
			Typed:       typed,
			Seed:        seed,
		})
	},
}

func init() {
	learnCmd.Flags().Int("review", session.DefaultReviewQuota, "Maximum due words per session")
	learnCmd.Flags().Int("new", session.DefaultNewQuota, "Maximum new words per session")
	learnCmd.Flags().Bool("typed", false, "Type the answers instead of self-grading")
	learnCmd.Flags().Int64("seed", 0, "Fixed shuffle seed for a reproducible session order")
}

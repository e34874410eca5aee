package cmd

import (
	"fmt"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/sozdik/internal/ui/theme"
	"github.com/abhisek/sozdik/internal/vocab"
)

var langsCmd = &cobra.Command{
	Use:   "langs [code...]",
	Short: "Show or toggle active target languages",
	Long: "Without arguments, lists the supported languages and marks the active ones.\n" +
		"With language codes as arguments, toggles each code and saves the result.",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ctx := cmd.Context()
		s, err := st.Settings().Load(ctx, time.Now())
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}

		for _, arg := range args {
			code := vocab.Language(arg)
			if !code.Valid() {
				return fmt.Errorf("unknown language code %q", arg)
			}
			if !s.ToggleLanguage(code) {
				fmt.Printf("cannot deactivate %s: at least one language must stay active\n", code.Name())
			}
		}
		if len(args) > 0 {
			if err := st.Settings().Save(ctx, s); err != nil {
				return fmt.Errorf("save settings: %w", err)
			}
		}

		active := lipgloss.NewStyle().Foreground(theme.Success).Render
		inactive := lipgloss.NewStyle().Foreground(theme.TextDim).Render
		for _, code := range vocab.Languages {
			if s.IsLanguageActive(code) {
				fmt.Println(active(fmt.Sprintf("[x] %-12s %s", code.Name(), code)))
			} else {
				fmt.Println(inactive(fmt.Sprintf("[ ] %-12s %s", code.Name(), code)))
			}
		}
		return nil
	},
}

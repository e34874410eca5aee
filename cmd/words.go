package cmd

import (
	"fmt"
	"strconv"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/sozdik/internal/similarity"
	"github.com/abhisek/sozdik/internal/ui/theme"
	"github.com/abhisek/sozdik/internal/vocab"
)

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "List and inspect the vocabulary",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		words, err := st.Words().ByFrequency(cmd.Context())
		if err != nil {
			return fmt.Errorf("load words: %w", err)
		}
		if len(words) == 0 {
			fmt.Println("No words yet. Run 'sozdik import <file>' to load a dataset.")
			return nil
		}

		dim := lipgloss.NewStyle().Foreground(theme.TextDim).Render
		for _, w := range words {
			fmt.Printf("%4d  %-20s %-20s %s\n",
				w.ID, w.Russian, w.English,
				dim(fmt.Sprintf("%s %s %s score=%.2f", w.POS, w.Level, w.Origin, w.CognateScore)))
		}
		return nil
	},
}

var wordsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one word with its similarity matrix",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("bad word id %q: %w", args[0], err)
		}

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ctx := cmd.Context()
		w, err := st.Words().ByID(ctx, id)
		if err != nil {
			return fmt.Errorf("load word: %w", err)
		}
		if w == nil {
			return fmt.Errorf("no word with id %d", id)
		}

		title := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render
		dim := lipgloss.NewStyle().Foreground(theme.TextDim).Render

		fmt.Println(title(fmt.Sprintf("#%d  %s / %s", w.ID, w.Russian, w.English)))
		fmt.Println(dim(fmt.Sprintf("%s · %s · %s · frequency %d · cognate score %.2f",
			w.POS, w.Level, w.Origin, w.Frequency, w.CognateScore)))
		fmt.Println()

		var langs []vocab.Language
		for _, lang := range vocab.Languages {
			f := w.Form(lang)
			if f.Native == "" {
				continue
			}
			langs = append(langs, lang)
			line := fmt.Sprintf("  %-12s %s", lang.Name(), f.Native)
			if f.Latin != "" {
				line += "  " + dim(f.Latin)
			}
			if f.IPA != "" {
				line += "  " + dim("["+f.IPA+"]")
			}
			fmt.Println(line)
		}

		if len(langs) < 2 {
			return nil
		}

		// Pairwise similarity of the native forms.
		fmt.Println()
		fmt.Print("            ")
		for _, l := range langs {
			fmt.Printf("%6s", l)
		}
		fmt.Println()
		for _, a := range langs {
			fmt.Printf("  %-10s", a)
			for _, b := range langs {
				sim := similarity.Similarity(w.Native(a), w.Native(b))
				fmt.Printf("%6.2f", sim)
			}
			fmt.Println()
		}

		// Record state, if the word has been studied.
		rec, err := st.Records().ByID(ctx, id)
		if err != nil {
			return fmt.Errorf("load record: %w", err)
		}
		if rec != nil {
			fmt.Println()
			fmt.Println(dim(fmt.Sprintf(
				"status %s · ease %.2f · interval %dd · next review %s · %d correct / %d incorrect",
				rec.Status(), rec.EaseFactor, rec.Interval,
				rec.NextReviewDate.In(time.Local).Format("2006-01-02"),
				rec.CorrectCount, rec.IncorrectCount)))
		}
		return nil
	},
}

func init() {
	wordsCmd.AddCommand(wordsShowCmd)
}

package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/sozdik/internal/dataset"
	"github.com/abhisek/sozdik/internal/store"
	"github.com/abhisek/sozdik/internal/vocab"
)

// maxWordID returns the highest stored word ID, for seeding xlsx rows
// that leave the id column blank.
func maxWordID(cmd *cobra.Command, st *store.Store) (int, error) {
	words, err := st.Words().All(cmd.Context())
	if err != nil {
		return 0, fmt.Errorf("load words: %w", err)
	}
	maxID := 0
	for _, w := range words {
		if w.ID > maxID {
			maxID = w.ID
		}
	}
	return maxID, nil
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a vocabulary dataset (JSON or .xlsx)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ctx := cmd.Context()

		var words []*vocab.Word
		switch strings.ToLower(filepath.Ext(path)) {
		case ".xlsx":
			maxID, err := maxWordID(cmd, st)
			if err != nil {
				return err
			}
			words, err = dataset.LoadXLSX(path, maxID)
			if err != nil {
				return fmt.Errorf("import %s: %w", path, err)
			}
		default:
			words, err = dataset.Load(path)
			if err != nil {
				return fmt.Errorf("import %s: %w", path, err)
			}
		}

		if err := st.Words().InsertBatch(ctx, words); err != nil {
			return fmt.Errorf("store words: %w", err)
		}

		total, err := st.Words().Count(ctx)
		if err != nil {
			return fmt.Errorf("count words: %w", err)
		}
		fmt.Printf("Imported %d words (%d total).\n", len(words), total)
		return nil
	},
}

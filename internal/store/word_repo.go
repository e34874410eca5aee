package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/abhisek/sozdik/internal/vocab"
)

type wordRepo struct {
	db *sqlx.DB
}

type wordRow struct {
	ID           int     `db:"id"`
	RU           string  `db:"ru"`
	EN           string  `db:"en"`
	POS          string  `db:"pos"`
	Level        string  `db:"level"`
	Frequency    int     `db:"frequency"`
	CognateScore float64 `db:"cognate_score"`
	Origin       string  `db:"origin"`
}

type formRow struct {
	WordID int    `db:"word_id"`
	Lang   string `db:"lang"`
	Native string `db:"native"`
	Latin  string `db:"latin"`
	IPA    string `db:"ipa"`
}

func (r wordRow) toWord() *vocab.Word {
	return &vocab.Word{
		ID:           r.ID,
		Russian:      r.RU,
		English:      r.EN,
		POS:          r.POS,
		Level:        vocab.Level(r.Level),
		Frequency:    r.Frequency,
		CognateScore: r.CognateScore,
		Origin:       vocab.Origin(r.Origin),
		Forms:        make(map[vocab.Language]vocab.Form),
	}
}

func (r *wordRepo) All(ctx context.Context) ([]*vocab.Word, error) {
	return r.selectWords(ctx, `SELECT * FROM words ORDER BY id`)
}

func (r *wordRepo) ByFrequency(ctx context.Context) ([]*vocab.Word, error) {
	return r.selectWords(ctx, `SELECT * FROM words ORDER BY frequency, id`)
}

func (r *wordRepo) UnseenByFrequency(ctx context.Context, limit int) ([]*vocab.Word, error) {
	return r.selectWords(ctx, `
		SELECT w.* FROM words w
		LEFT JOIN review_records rr ON rr.word_id = w.id
		WHERE rr.word_id IS NULL
		ORDER BY w.frequency, w.id
		LIMIT ?`, limit)
}

func (r *wordRepo) ByID(ctx context.Context, id int) (*vocab.Word, error) {
	var row wordRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM words WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get word %d: %w", id, err)
	}

	w := row.toWord()
	var forms []formRow
	if err := r.db.SelectContext(ctx, &forms, `SELECT * FROM word_forms WHERE word_id = ?`, id); err != nil {
		return nil, fmt.Errorf("get forms for word %d: %w", id, err)
	}
	attachForms([]*vocab.Word{w}, forms)
	return w, nil
}

func (r *wordRepo) selectWords(ctx context.Context, query string, args ...any) ([]*vocab.Word, error) {
	var rows []wordRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select words: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	words := make([]*vocab.Word, len(rows))
	ids := make([]int, len(rows))
	for i, row := range rows {
		words[i] = row.toWord()
		ids[i] = row.ID
	}

	query, inArgs, err := sqlx.In(`SELECT * FROM word_forms WHERE word_id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("build forms query: %w", err)
	}
	var forms []formRow
	if err := r.db.SelectContext(ctx, &forms, r.db.Rebind(query), inArgs...); err != nil {
		return nil, fmt.Errorf("select forms: %w", err)
	}
	attachForms(words, forms)
	return words, nil
}

func attachForms(words []*vocab.Word, forms []formRow) {
	byID := make(map[int]*vocab.Word, len(words))
	for _, w := range words {
		byID[w.ID] = w
	}
	for _, f := range forms {
		if w, ok := byID[f.WordID]; ok {
			w.Forms[vocab.Language(f.Lang)] = vocab.Form{
				Native: f.Native,
				Latin:  f.Latin,
				IPA:    f.IPA,
			}
		}
	}
}

func (r *wordRepo) InsertBatch(ctx context.Context, words []*vocab.Word) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	for _, w := range words {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO words (id, ru, en, pos, level, frequency, cognate_score, origin)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				ru = excluded.ru, en = excluded.en, pos = excluded.pos,
				level = excluded.level, frequency = excluded.frequency,
				cognate_score = excluded.cognate_score, origin = excluded.origin`,
			w.ID, w.Russian, w.English, w.POS, string(w.Level), w.Frequency, w.CognateScore, string(w.Origin))
		if err != nil {
			return fmt.Errorf("insert word %d: %w", w.ID, err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM word_forms WHERE word_id = ?`, w.ID); err != nil {
			return fmt.Errorf("clear forms for word %d: %w", w.ID, err)
		}
		for _, lang := range vocab.Languages {
			f, ok := w.Forms[lang]
			if !ok || f.Native == "" {
				continue
			}
			_, err := tx.ExecContext(ctx, `
				INSERT INTO word_forms (word_id, lang, native, latin, ipa)
				VALUES (?, ?, ?, ?, ?)`,
				w.ID, string(lang), f.Native, f.Latin, f.IPA)
			if err != nil {
				return fmt.Errorf("insert form %d/%s: %w", w.ID, lang, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	return nil
}

func (r *wordRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM words`); err != nil {
		return 0, fmt.Errorf("count words: %w", err)
	}
	return n, nil
}

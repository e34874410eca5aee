package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/abhisek/sozdik/internal/review"
)

// timeFormat stores UTC timestamps in TEXT columns with a fixed-width
// fractional second, so lexicographic comparison in SQL matches
// chronological order. RFC3339Nano would trim trailing zeros and break
// the ordering.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

type recordRepo struct {
	db *sqlx.DB
}

type recordRow struct {
	WordID         int            `db:"word_id"`
	EaseFactor     float64        `db:"ease_factor"`
	Interval       int            `db:"interval"`
	Repetitions    int            `db:"repetitions"`
	NextReviewDate string         `db:"next_review_date"`
	CorrectCount   int            `db:"correct_count"`
	IncorrectCount int            `db:"incorrect_count"`
	LastReviewedAt sql.NullString `db:"last_reviewed_at"`
	FirstSeenAt    string         `db:"first_seen_at"`
}

func (r recordRow) toRecord() (*review.Record, error) {
	next, err := time.Parse(timeFormat, r.NextReviewDate)
	if err != nil {
		return nil, fmt.Errorf("record %d: parse next_review_date: %w", r.WordID, err)
	}
	first, err := time.Parse(timeFormat, r.FirstSeenAt)
	if err != nil {
		return nil, fmt.Errorf("record %d: parse first_seen_at: %w", r.WordID, err)
	}

	rec := &review.Record{
		WordID:         r.WordID,
		EaseFactor:     r.EaseFactor,
		Interval:       r.Interval,
		Repetitions:    r.Repetitions,
		NextReviewDate: next,
		CorrectCount:   r.CorrectCount,
		IncorrectCount: r.IncorrectCount,
		FirstSeenAt:    first,
	}
	if r.LastReviewedAt.Valid {
		last, err := time.Parse(timeFormat, r.LastReviewedAt.String)
		if err != nil {
			return nil, fmt.Errorf("record %d: parse last_reviewed_at: %w", r.WordID, err)
		}
		rec.LastReviewedAt = &last
	}
	return rec, nil
}

// Due filters with the mastery predicate in SQL so mastered words
// never page in; the predicate mirrors review.Record.Status.
func (r *recordRepo) Due(ctx context.Context, now time.Time) ([]*review.Record, error) {
	var rows []recordRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT * FROM review_records
		WHERE next_review_date <= ?
		  AND NOT (repetitions >= ? AND ease_factor >= ?)
		ORDER BY next_review_date`,
		now.UTC().Format(timeFormat), review.MasteryRepetitions, review.MasteryEaseFactor)
	if err != nil {
		return nil, fmt.Errorf("select due records: %w", err)
	}
	return toRecords(rows)
}

func (r *recordRepo) ByID(ctx context.Context, wordID int) (*review.Record, error) {
	var row recordRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM review_records WHERE word_id = ?`, wordID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get record %d: %w", wordID, err)
	}
	return row.toRecord()
}

func (r *recordRepo) All(ctx context.Context) ([]*review.Record, error) {
	var rows []recordRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT * FROM review_records ORDER BY word_id`); err != nil {
		return nil, fmt.Errorf("select records: %w", err)
	}
	return toRecords(rows)
}

func (r *recordRepo) Upsert(ctx context.Context, rec *review.Record) error {
	var lastReviewed any
	if rec.LastReviewedAt != nil {
		lastReviewed = rec.LastReviewedAt.UTC().Format(timeFormat)
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO review_records (
			word_id, ease_factor, interval, repetitions, next_review_date,
			correct_count, incorrect_count, last_reviewed_at, first_seen_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(word_id) DO UPDATE SET
			ease_factor = excluded.ease_factor,
			interval = excluded.interval,
			repetitions = excluded.repetitions,
			next_review_date = excluded.next_review_date,
			correct_count = excluded.correct_count,
			incorrect_count = excluded.incorrect_count,
			last_reviewed_at = excluded.last_reviewed_at`,
		rec.WordID, rec.EaseFactor, rec.Interval, rec.Repetitions,
		rec.NextReviewDate.UTC().Format(timeFormat),
		rec.CorrectCount, rec.IncorrectCount, lastReviewed,
		rec.FirstSeenAt.UTC().Format(timeFormat))
	if err != nil {
		return fmt.Errorf("upsert record %d: %w", rec.WordID, err)
	}
	return nil
}

func toRecords(rows []recordRow) ([]*review.Record, error) {
	records := make([]*review.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := row.toRecord()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

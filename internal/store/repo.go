package store

import (
	"context"
	"time"

	"github.com/abhisek/sozdik/internal/review"
	"github.com/abhisek/sozdik/internal/settings"
	"github.com/abhisek/sozdik/internal/vocab"
)

// WordRepo provides read access to the vocabulary plus batch import.
// Lookups that find nothing return (nil, nil); errors are reserved for
// storage failures.
type WordRepo interface {
	// All returns every word, ordered by ID.
	All(ctx context.Context) ([]*vocab.Word, error)

	// ByID returns the word with the given ID, or nil if absent.
	ByID(ctx context.Context, id int) (*vocab.Word, error)

	// ByFrequency returns all words ordered by ascending frequency rank.
	ByFrequency(ctx context.Context) ([]*vocab.Word, error)

	// UnseenByFrequency returns up to limit words that have no review
	// record yet, ordered by ascending frequency rank.
	UnseenByFrequency(ctx context.Context, limit int) ([]*vocab.Word, error)

	// InsertBatch stores words, replacing existing rows with the same ID.
	InsertBatch(ctx context.Context, words []*vocab.Word) error

	// Count returns the number of stored words.
	Count(ctx context.Context) (int, error)
}

// RecordRepo manages review records.
type RecordRepo interface {
	// Due returns non-mastered records with nextReviewDate <= now,
	// ordered by nextReviewDate ascending (most overdue first).
	Due(ctx context.Context, now time.Time) ([]*review.Record, error)

	// ByID returns the record for a word, or nil if the word is unseen.
	ByID(ctx context.Context, wordID int) (*review.Record, error)

	// All returns every record.
	All(ctx context.Context) ([]*review.Record, error)

	// Upsert creates or overwrites the record for its word ID.
	Upsert(ctx context.Context, rec *review.Record) error
}

// SettingsRepo persists the learner settings singleton.
type SettingsRepo interface {
	// Load returns the stored settings, creating defaults on first use.
	Load(ctx context.Context, now time.Time) (*settings.Settings, error)

	// Save overwrites the stored settings.
	Save(ctx context.Context, s *settings.Settings) error
}

// Package session composes learning sessions from due reviews and new
// vocabulary, and records answer outcomes.
package session

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/abhisek/sozdik/internal/review"
	"github.com/abhisek/sozdik/internal/store"
	"github.com/abhisek/sozdik/internal/vocab"
)

// Default quotas for a session, matching the daily-lesson defaults.
const (
	DefaultReviewQuota = 10
	DefaultNewQuota    = 5
)

// Composer builds session word lists and funnels answers into the
// scheduler and the record store.
type Composer struct {
	words   store.WordRepo
	records store.RecordRepo
}

// NewComposer creates a Composer over the given repositories.
func NewComposer(words store.WordRepo, records store.RecordRepo) *Composer {
	return &Composer{words: words, records: records}
}

// Build assembles the word list for one session:
//
//  1. Up to reviewQuota due words, most overdue first. Reviews always
//     win the inclusion race.
//  2. Remaining slots fill with unseen words in ascending
//     frequency-rank order, so common words arrive first.
//  3. The combined list is shuffled; inclusion is prioritized,
//     presentation order is not.
//
// rng drives the shuffle and is injectable for deterministic tests.
// The two store reads are separate snapshots; drift between them can
// slightly under- or over-fill quotas, which is acceptable.
func (c *Composer) Build(ctx context.Context, now time.Time, reviewQuota, newQuota int, rng *rand.Rand) ([]*vocab.Word, error) {
	var result []*vocab.Word

	due, err := c.records.Due(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("query due records: %w", err)
	}
	for _, rec := range due {
		if len(result) >= reviewQuota {
			break
		}
		w, err := c.words.ByID(ctx, rec.WordID)
		if err != nil {
			return nil, fmt.Errorf("resolve due word %d: %w", rec.WordID, err)
		}
		if w == nil {
			// Orphaned record; a well-formed dataset never produces
			// one, so it must not consume a review slot.
			continue
		}
		result = append(result, w)
	}

	if remaining := reviewQuota + newQuota - len(result); remaining > 0 {
		limit := max(newQuota, remaining)
		unseen, err := c.words.UnseenByFrequency(ctx, limit)
		if err != nil {
			return nil, fmt.Errorf("query unseen words: %w", err)
		}
		result = append(result, unseen...)
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	rng.Shuffle(len(result), func(i, j int) {
		result[i], result[j] = result[j], result[i]
	})

	return result, nil
}

// RecordAnswer fetches or creates the review record for wordID,
// applies the scheduling update, and persists the result. Exactly one
// record is touched.
func (c *Composer) RecordAnswer(ctx context.Context, wordID int, correct bool, now time.Time) (*review.Record, error) {
	rec, err := c.records.ByID(ctx, wordID)
	if err != nil {
		return nil, fmt.Errorf("load record %d: %w", wordID, err)
	}
	if rec == nil {
		rec = review.NewRecord(wordID, now)
	}

	review.Apply(rec, correct, now)

	if err := c.records.Upsert(ctx, rec); err != nil {
		return nil, fmt.Errorf("persist record %d: %w", wordID, err)
	}
	return rec, nil
}

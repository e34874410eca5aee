package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sozdik/internal/review"
	"github.com/abhisek/sozdik/internal/settings"
	"github.com/abhisek/sozdik/internal/vocab"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	require.NoError(t, err, "open test store")
	t.Cleanup(func() { s.Close() })

	// Shared-cache memory DBs persist across connections within the
	// process; start each test from a clean slate.
	for _, table := range []string{"word_forms", "review_records", "learner_settings", "words"} {
		_, err := s.DB().Exec("DELETE FROM " + table)
		require.NoError(t, err)
	}
	return s
}

func testWords() []*vocab.Word {
	return []*vocab.Word{
		{
			ID: 1, Russian: "вода", English: "water", POS: "noun",
			Level: vocab.LevelA1, Frequency: 3, CognateScore: 0.8, Origin: vocab.OriginTurkic,
			Forms: map[vocab.Language]vocab.Form{
				vocab.Kazakh:  {Native: "су", Latin: "su", IPA: "sʊ"},
				vocab.Turkish: {Native: "su", IPA: "su"},
			},
		},
		{
			ID: 2, Russian: "книга", English: "book", POS: "noun",
			Level: vocab.LevelA1, Frequency: 1, CognateScore: 0.9, Origin: vocab.OriginArabic,
			Forms: map[vocab.Language]vocab.Form{
				vocab.Kazakh:  {Native: "кітап", Latin: "kitap", IPA: "kɪtɑp"},
				vocab.Turkish: {Native: "kitap", IPA: "citap"},
				vocab.Uzbek:   {Native: "kitob", IPA: "kitɒb"},
			},
		},
		{
			ID: 3, Russian: "яблоко", English: "apple", POS: "noun",
			Level: vocab.LevelA2, Frequency: 2, CognateScore: 0.7, Origin: vocab.OriginTurkic,
			Forms: map[vocab.Language]vocab.Form{
				vocab.Kazakh: {Native: "алма", Latin: "alma", IPA: "ɑlmɑ"},
			},
		},
	}
}

func TestWordRepoRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	words := s.Words()

	require.NoError(t, words.InsertBatch(ctx, testWords()))

	n, err := words.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	w, err := words.ByID(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.Equal(t, "book", w.English)
	assert.Equal(t, "кітап", w.Native(vocab.Kazakh))
	assert.Equal(t, "kitap", w.Latin(vocab.Kazakh))
	assert.Equal(t, "", w.Latin(vocab.Turkish))
	assert.Equal(t, vocab.OriginArabic, w.Origin)

	missing, err := words.ByID(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestWordRepoByFrequency(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Words().InsertBatch(ctx, testWords()))

	ordered, err := s.Words().ByFrequency(ctx)
	require.NoError(t, err)
	require.Len(t, ordered, 3)
	assert.Equal(t, []int{2, 3, 1}, []int{ordered[0].ID, ordered[1].ID, ordered[2].ID})
}

func TestWordRepoUnseenByFrequency(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Words().InsertBatch(ctx, testWords()))

	now := time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)
	rec := review.NewRecord(2, now)
	review.Apply(rec, true, now)
	require.NoError(t, s.Records().Upsert(ctx, rec))

	unseen, err := s.Words().UnseenByFrequency(ctx, 10)
	require.NoError(t, err)
	require.Len(t, unseen, 2)
	// Word 2 has a record now; 3 and 1 remain, frequency order.
	assert.Equal(t, 3, unseen[0].ID)
	assert.Equal(t, 1, unseen[1].ID)

	limited, err := s.Words().UnseenByFrequency(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, 3, limited[0].ID)
}

func TestWordRepoInsertBatchReplaces(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Words().InsertBatch(ctx, testWords()))

	updated := testWords()[:1]
	updated[0].English = "water (fresh)"
	updated[0].Forms = map[vocab.Language]vocab.Form{
		vocab.Uzbek: {Native: "suv", IPA: "suv"},
	}
	require.NoError(t, s.Words().InsertBatch(ctx, updated))

	w, err := s.Words().ByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "water (fresh)", w.English)
	assert.Equal(t, "", w.Native(vocab.Kazakh), "old forms replaced")
	assert.Equal(t, "suv", w.Native(vocab.Uzbek))

	n, err := s.Words().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestRecordRepoRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Words().InsertBatch(ctx, testWords()))
	records := s.Records()

	now := time.Date(2025, time.June, 1, 10, 0, 0, 123456789, time.UTC)
	rec := review.NewRecord(1, now)
	review.Apply(rec, true, now)
	require.NoError(t, records.Upsert(ctx, rec))

	got, err := records.ByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rec.Repetitions, got.Repetitions)
	assert.InDelta(t, rec.EaseFactor, got.EaseFactor, 1e-9)
	assert.True(t, rec.NextReviewDate.Equal(got.NextReviewDate), "sub-second precision survives")
	require.NotNil(t, got.LastReviewedAt)
	assert.True(t, now.Equal(*got.LastReviewedAt))
	assert.Equal(t, review.StatusReviewing, got.Status())

	unseen, err := records.ByID(ctx, 3)
	require.NoError(t, err)
	assert.Nil(t, unseen)
}

func TestRecordRepoUpsertOverwrites(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Words().InsertBatch(ctx, testWords()))

	now := time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)
	rec := review.NewRecord(1, now)
	review.Apply(rec, true, now)
	require.NoError(t, s.Records().Upsert(ctx, rec))

	review.Apply(rec, false, now.AddDate(0, 0, 1))
	require.NoError(t, s.Records().Upsert(ctx, rec))

	got, err := s.Records().ByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Repetitions)
	assert.Equal(t, 1, got.CorrectCount)
	assert.Equal(t, 1, got.IncorrectCount)
	assert.True(t, got.FirstSeenAt.Equal(now), "first_seen_at immutable across upserts")

	all, err := s.Records().All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRecordRepoDue(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Words().InsertBatch(ctx, testWords()))
	records := s.Records()

	now := time.Date(2025, time.June, 10, 9, 0, 0, 0, time.UTC)

	// Overdue learning word.
	r1 := review.NewRecord(1, now.AddDate(0, 0, -5))
	review.Apply(r1, false, now.AddDate(0, 0, -5))
	require.NoError(t, records.Upsert(ctx, r1))

	// Due-later reviewing word.
	r2 := review.NewRecord(2, now.AddDate(0, 0, -2))
	review.Apply(r2, true, now.AddDate(0, 0, -2))
	require.NoError(t, records.Upsert(ctx, r2))

	// Mastered word, overdue on paper but excluded.
	r3 := &review.Record{
		WordID: 3, EaseFactor: 3.0, Interval: 90, Repetitions: 6,
		CorrectCount: 6, NextReviewDate: now.AddDate(0, 0, -1),
		FirstSeenAt: now.AddDate(0, -6, 0),
	}
	require.NoError(t, records.Upsert(ctx, r3))

	due, err := records.Due(ctx, now)
	require.NoError(t, err)
	require.Len(t, due, 2)
	// Ordered by next review date ascending: r1 (4 days ago) first.
	assert.Equal(t, 1, due[0].WordID)
	assert.Equal(t, 2, due[1].WordID)

	// Nothing due in the past.
	none, err := records.Due(ctx, now.AddDate(0, 0, -10))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSettingsRepoCreateOnFirstUse(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2025, time.June, 1, 8, 0, 0, 0, time.UTC)

	got, err := s.Settings().Load(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, settings.DefaultInterfaceLanguage, got.InterfaceLanguage)
	assert.Equal(t, settings.DefaultActiveLanguages, got.ActiveLanguages)
	assert.Equal(t, settings.DefaultDailyGoalMinutes, got.DailyGoalMinutes)
	assert.Zero(t, got.CurrentStreak)

	// Second load returns the persisted row, not a fresh default.
	got.ToggleLanguage(vocab.Tatar)
	got.AddStudyTime(12, now)
	require.NoError(t, s.Settings().Save(ctx, got))

	reloaded, err := s.Settings().Load(ctx, now.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.True(t, reloaded.IsLanguageActive(vocab.Tatar))
	assert.Equal(t, 12, reloaded.TotalStudyMinutes)
	assert.Equal(t, 1, reloaded.CurrentStreak)
	require.NotNil(t, reloaded.LastSessionDate)
	assert.True(t, now.Equal(*reloaded.LastSessionDate))
}

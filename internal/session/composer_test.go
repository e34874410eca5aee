package session

import (
	"context"
	"math/rand"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sozdik/internal/review"
	"github.com/abhisek/sozdik/internal/vocab"
)

type fakeWordRepo struct {
	words map[int]*vocab.Word
	seen  map[int]bool
}

func (f *fakeWordRepo) All(ctx context.Context) ([]*vocab.Word, error) {
	out := make([]*vocab.Word, 0, len(f.words))
	for _, w := range f.words {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeWordRepo) ByID(ctx context.Context, id int) (*vocab.Word, error) {
	return f.words[id], nil
}

func (f *fakeWordRepo) ByFrequency(ctx context.Context) ([]*vocab.Word, error) {
	out, _ := f.All(ctx)
	sort.Slice(out, func(i, j int) bool { return out[i].Frequency < out[j].Frequency })
	return out, nil
}

func (f *fakeWordRepo) UnseenByFrequency(ctx context.Context, limit int) ([]*vocab.Word, error) {
	all, _ := f.ByFrequency(ctx)
	var out []*vocab.Word
	for _, w := range all {
		if f.seen[w.ID] {
			continue
		}
		out = append(out, w)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeWordRepo) InsertBatch(ctx context.Context, words []*vocab.Word) error {
	for _, w := range words {
		f.words[w.ID] = w
	}
	return nil
}

func (f *fakeWordRepo) Count(ctx context.Context) (int, error) {
	return len(f.words), nil
}

type fakeRecordRepo struct {
	records map[int]*review.Record
}

func (f *fakeRecordRepo) Due(ctx context.Context, now time.Time) ([]*review.Record, error) {
	var out []*review.Record
	for _, r := range f.records {
		if r.IsDue(now) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].NextReviewDate.Before(out[j].NextReviewDate)
	})
	return out, nil
}

func (f *fakeRecordRepo) ByID(ctx context.Context, wordID int) (*review.Record, error) {
	return f.records[wordID], nil
}

func (f *fakeRecordRepo) All(ctx context.Context) ([]*review.Record, error) {
	out := make([]*review.Record, 0, len(f.records))
	for _, r := range f.records {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRecordRepo) Upsert(ctx context.Context, rec *review.Record) error {
	cp := *rec
	f.records[rec.WordID] = &cp
	return nil
}

func newFixture(wordCount int) (*fakeWordRepo, *fakeRecordRepo) {
	words := &fakeWordRepo{words: map[int]*vocab.Word{}, seen: map[int]bool{}}
	records := &fakeRecordRepo{records: map[int]*review.Record{}}
	for i := 1; i <= wordCount; i++ {
		words.words[i] = &vocab.Word{ID: i, Russian: "слово", English: "word", Frequency: i}
	}
	return words, records
}

func markDue(words *fakeWordRepo, records *fakeRecordRepo, wordID int, due time.Time) {
	rec := review.NewRecord(wordID, due.AddDate(0, 0, -3))
	rec.Repetitions = 1
	rec.CorrectCount = 1
	rec.NextReviewDate = due
	records.records[wordID] = rec
	words.seen[wordID] = true
}

func wordIDs(words []*vocab.Word) []int {
	ids := make([]int, len(words))
	for i, w := range words {
		ids[i] = w.ID
	}
	sort.Ints(ids)
	return ids
}

func TestBuildFillsWithNewWords(t *testing.T) {
	words, records := newFixture(20)
	c := NewComposer(words, records)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	got, err := c.Build(context.Background(), now, 10, 5, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	// No reviews pending, so new words fill every open slot.
	require.Len(t, got, 15)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}, wordIDs(got))
}

func TestBuildPrioritizesDueWords(t *testing.T) {
	words, records := newFixture(30)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for id := 11; id <= 22; id++ {
		markDue(words, records, id, now.AddDate(0, 0, -(id-10)))
	}
	c := NewComposer(words, records)

	got, err := c.Build(context.Background(), now, 10, 5, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	// 12 words are due; the 10 most overdue win, then 5 new words.
	require.Len(t, got, 15)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22}, wordIDs(got))
}

func TestBuildNeverExceedsCombinedQuota(t *testing.T) {
	words, records := newFixture(50)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for id := 1; id <= 8; id++ {
		markDue(words, records, id, now.AddDate(0, 0, -1))
	}
	c := NewComposer(words, records)

	got, err := c.Build(context.Background(), now, 10, 5, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	// 8 reviews leave 7 open slots, so new words beyond the new quota
	// may enter, but the combined quota holds.
	assert.Len(t, got, 15)
}

func TestBuildSkipsOrphanedRecords(t *testing.T) {
	words, records := newFixture(5)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	markDue(words, records, 3, now.AddDate(0, 0, -1))
	markDue(words, records, 99, now.AddDate(0, 0, -2)) // no such word
	for id := 1; id <= 5; id++ {
		if id == 3 {
			continue
		}
		// Seen but not due, so the fill step has nothing to add.
		markDue(words, records, id, now.AddDate(0, 0, 2))
	}
	c := NewComposer(words, records)

	got, err := c.Build(context.Background(), now, 10, 0, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, []int{3}, wordIDs(got))
}

func TestBuildOrphanDoesNotConsumeReviewSlot(t *testing.T) {
	words, records := newFixture(5)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	// The orphan is the most overdue; the resolvable record sits just
	// past a quota of one and must still fill the slot.
	markDue(words, records, 99, now.AddDate(0, 0, -5))
	markDue(words, records, 2, now.AddDate(0, 0, -1))
	for id := 1; id <= 5; id++ {
		if id == 2 {
			continue
		}
		markDue(words, records, id, now.AddDate(0, 0, 2))
	}
	c := NewComposer(words, records)

	got, err := c.Build(context.Background(), now, 1, 0, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, []int{2}, wordIDs(got))
}

func TestBuildShufflesDeterministically(t *testing.T) {
	words, records := newFixture(15)
	c := NewComposer(words, records)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	first, err := c.Build(context.Background(), now, 10, 5, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	second, err := c.Build(context.Background(), now, 10, 5, rand.New(rand.NewSource(42)))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBuildEmptyStore(t *testing.T) {
	words, records := newFixture(0)
	c := NewComposer(words, records)

	got, err := c.Build(context.Background(), time.Now(), 10, 5, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRecordAnswerCreatesRecord(t *testing.T) {
	words, records := newFixture(3)
	c := NewComposer(words, records)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	rec, err := c.RecordAnswer(context.Background(), 2, true, now)
	require.NoError(t, err)
	assert.Equal(t, 2, rec.WordID)
	assert.Equal(t, 1, rec.Repetitions)
	assert.Equal(t, 1, rec.CorrectCount)
	assert.Equal(t, now.AddDate(0, 0, 1), rec.NextReviewDate)

	stored, err := records.ByID(context.Background(), 2)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, rec.Repetitions, stored.Repetitions)
}

func TestRecordAnswerUpdatesExisting(t *testing.T) {
	words, records := newFixture(3)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	markDue(words, records, 1, now)
	c := NewComposer(words, records)

	rec, err := c.RecordAnswer(context.Background(), 1, false, now)
	require.NoError(t, err)
	assert.Equal(t, 0, rec.Repetitions)
	assert.Equal(t, 1, rec.IncorrectCount)
	assert.InDelta(t, review.InitialEaseFactor-0.2, rec.EaseFactor, 1e-9)
}

func TestStateLifecycle(t *testing.T) {
	ws := []*vocab.Word{{ID: 1}, {ID: 2}, {ID: 3}}
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewState(ws, start)

	require.NotNil(t, s.Current())
	assert.Equal(t, 1, s.Current().ID)
	assert.False(t, s.Done())

	s.Record(true)
	s.Record(false)
	assert.Equal(t, 3, s.Current().ID)
	s.Record(true)

	assert.True(t, s.Done())
	assert.Nil(t, s.Current())
	assert.Equal(t, 3, s.Answered())
	assert.InDelta(t, 2.0/3.0, s.Accuracy(), 1e-9)

	sum := Summarize(s, start.Add(4*time.Minute))
	assert.Equal(t, 3, sum.WordCount)
	assert.Equal(t, 2, sum.Correct)
	assert.Equal(t, 1, sum.Incorrect)
	assert.Equal(t, 4*time.Minute, sum.Elapsed)
}

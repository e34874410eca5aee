// Package stats derives aggregate progress figures from review records.
package stats

import (
	"time"

	"github.com/abhisek/sozdik/internal/review"
)

// Progress summarizes the learner's standing across all recorded words.
// Words without a record are not represented here; callers that want a
// "new" total including unseen words add the store's word count.
type Progress struct {
	NewCount       int
	LearningCount  int
	ReviewingCount int
	MasteredCount  int
	DueCount       int
	TotalReviews   int
	Accuracy       float64
}

// Studied returns the number of words with at least one answer.
func (p Progress) Studied() int {
	return p.LearningCount + p.ReviewingCount + p.MasteredCount
}

// Aggregate classifies every record by status and dueness in a single
// pass. Pure read; records are not modified.
func Aggregate(records []*review.Record, now time.Time) Progress {
	var p Progress
	var correct int

	for _, r := range records {
		switch r.Status() {
		case review.StatusNew:
			p.NewCount++
		case review.StatusLearning:
			p.LearningCount++
		case review.StatusReviewing:
			p.ReviewingCount++
		case review.StatusMastered:
			p.MasteredCount++
		}
		if r.IsDue(now) {
			p.DueCount++
		}
		correct += r.CorrectCount
		p.TotalReviews += r.CorrectCount + r.IncorrectCount
	}

	if p.TotalReviews > 0 {
		p.Accuracy = float64(correct) / float64(p.TotalReviews)
	}
	return p
}

package similarity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "su", 2},
		{"su", "", 2},
		{"kitap", "kitap", 0},
		{"kitap", "kitab", 1},
		{"kitap", "китап", 5}, // different scripts share no graphemes
		{"су", "сув", 1},
		{"qol", "kol", 1},
		{"bir", "ber", 1},
		{"yaxshi", "jakşy", 5},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, EditDistance(tt.a, tt.b), "EditDistance(%q, %q)", tt.a, tt.b)
	}
}

func TestEditDistanceSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"kitap", "kitab"},
		{"су", "сув"},
		{"", "alma"},
		{"тоғыз", "dokuz"},
	}
	for _, p := range pairs {
		assert.Equal(t, EditDistance(p[0], p[1]), EditDistance(p[1], p[0]))
	}
}

func TestEditDistanceIdentity(t *testing.T) {
	for _, s := range []string{"", "a", "kitap", "китап", "o'zbekcha", "ğüşıöç"} {
		assert.Zero(t, EditDistance(s, s), "EditDistance(%q, %q)", s, s)
	}
}

func TestEditDistanceTriangleInequality(t *testing.T) {
	words := []string{"su", "suv", "су", "kitap", "kitab", ""}
	for _, a := range words {
		for _, b := range words {
			for _, c := range words {
				ab := EditDistance(a, b)
				bc := EditDistance(b, c)
				ac := EditDistance(a, c)
				assert.LessOrEqual(t, ac, ab+bc, "triangle inequality for %q %q %q", a, b, c)
			}
		}
	}
}

func TestEditDistanceGraphemes(t *testing.T) {
	// A combining acute accent stays attached to its base character:
	// "e\u0301" is one user-perceived character, not two.
	assert.Equal(t, 1, EditDistance("e", "e\u0301"))
	assert.Equal(t, 1, EditDistance("e", "e\u0301e"))
	assert.Equal(t, 0, EditDistance("e\u0301", "e\u0301"))
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"", "", 1.0},
		{"kitap", "kitap", 1.0},
		{"kitap", "kitab", 0.8},
		{"ab", "cd", 0.0},
		{"", "su", 0.0},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, Similarity(tt.a, tt.b), 1e-9, "Similarity(%q, %q)", tt.a, tt.b)
	}
}

func TestSimilarityBounded(t *testing.T) {
	words := []string{"", "a", "su", "suv", "кітап", "kitap", "o'rtoq", "дос"}
	for _, a := range words {
		for _, b := range words {
			s := Similarity(a, b)
			assert.GreaterOrEqual(t, s, 0.0)
			assert.LessOrEqual(t, s, 1.0)
		}
	}
}

func TestCognateScore(t *testing.T) {
	assert.Equal(t, 1.0, CognateScore(nil))
	assert.Equal(t, 1.0, CognateScore([]string{}))
	assert.Equal(t, 1.0, CognateScore([]string{"su"}))
	assert.Equal(t, 1.0, CognateScore([]string{"su", "su", "su"}))

	// su/suv/су: sim(su,suv)=2/3, sim(su,су)=0, sim(suv,су)=0.
	got := CognateScore([]string{"su", "suv", "су"})
	want := (2.0/3.0 + 0 + 0) / 3.0
	assert.InDelta(t, want, got, 1e-9)
}

func TestCognateScoreBounded(t *testing.T) {
	forms := []string{"алма", "elma", "olma", "алма", "алма", "alma"}
	got := CognateScore(forms)
	assert.False(t, math.IsNaN(got))
	assert.GreaterOrEqual(t, got, 0.0)
	assert.LessOrEqual(t, got, 1.0)
}

// Package dataset loads the bundled vocabulary into vocab.Word values.
// The canonical format is a schema-validated JSON file; spreadsheet
// import exists for hand-maintained word lists.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/abhisek/sozdik/internal/similarity"
	"github.com/abhisek/sozdik/internal/vocab"
)

// File is the top-level structure of the vocabulary JSON file.
type File struct {
	Version    string     `json:"version"`
	TotalWords int        `json:"totalWords"`
	Words      []WordJSON `json:"words"`
}

// WordJSON is one vocabulary entry as serialized in the dataset.
type WordJSON struct {
	ID           int                 `json:"id"`
	RU           string              `json:"ru"`
	EN           string              `json:"en"`
	POS          string              `json:"pos"`
	Level        string              `json:"level,omitempty"`
	Frequency    int                 `json:"frequency"`
	CognateScore float64             `json:"cognateScore,omitempty"`
	Origin       string              `json:"origin"`
	Forms        map[string]FormJSON `json:"forms"`
}

// FormJSON holds the written forms for one language.
type FormJSON struct {
	Native string `json:"native"`
	Latin  string `json:"latin,omitempty"`
	IPA    string `json:"ipa"`
}

// Load reads, validates, and decodes the vocabulary file at path.
func Load(path string) ([]*vocab.Word, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return Parse(raw)
}

// Parse validates raw JSON against the dataset schema and decodes it.
func Parse(raw []byte) ([]*vocab.Word, error) {
	if err := validate(raw); err != nil {
		return nil, err
	}

	var file File
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}

	if file.TotalWords != len(file.Words) {
		return nil, fmt.Errorf("dataset declares %d words but contains %d", file.TotalWords, len(file.Words))
	}

	words := make([]*vocab.Word, 0, len(file.Words))
	seen := make(map[int]bool, len(file.Words))
	for _, wj := range file.Words {
		if seen[wj.ID] {
			return nil, fmt.Errorf("duplicate word id %d", wj.ID)
		}
		seen[wj.ID] = true
		words = append(words, wj.toWord())
	}
	return words, nil
}

func (wj WordJSON) toWord() *vocab.Word {
	w := &vocab.Word{
		ID:           wj.ID,
		Russian:      wj.RU,
		English:      wj.EN,
		POS:          wj.POS,
		Level:        vocab.Level(wj.Level),
		Frequency:    wj.Frequency,
		CognateScore: wj.CognateScore,
		Origin:       vocab.Origin(wj.Origin),
		Forms:        make(map[vocab.Language]vocab.Form, len(wj.Forms)),
	}
	if w.Level.Rank() < 0 {
		w.Level = vocab.LevelA1
	}

	for code, fj := range wj.Forms {
		lang := vocab.Language(code)
		if !lang.Valid() {
			continue
		}
		w.Forms[lang] = vocab.Form{Native: fj.Native, Latin: fj.Latin, IPA: fj.IPA}
	}

	// Datasets may omit the precomputed score; derive it from the
	// native forms so every word carries a usable value.
	if w.CognateScore <= 0 {
		w.CognateScore = similarity.CognateScore(w.NativeForms(nil))
	}
	return w
}

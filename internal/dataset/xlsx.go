package dataset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/sozdik/internal/similarity"
	"github.com/abhisek/sozdik/internal/vocab"
)

// Spreadsheet column layout, one row per word:
//
//	A  id          (blank = assigned after the current maximum)
//	B  ru gloss    C  en gloss   D  pos
//	E  level       F  frequency  G  origin
//	H.. three columns per language (native, latin, ipa) in the order
//	    kk, tr, uz, ky, tt, az.
const (
	xlsxFixedColumns   = 7
	xlsxColumnsPerLang = 3
)

// LoadXLSX reads words from the first sheet of an .xlsx file. The
// header row is skipped; rows with an empty ru gloss are ignored.
// nextID seeds the ids handed to rows that leave column A blank.
func LoadXLSX(path string, nextID int) ([]*vocab.Word, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	var words []*vocab.Word
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if cell(row, 1) == "" {
			continue
		}

		w, err := parseXLSXRow(row, &nextID)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		words = append(words, w)
	}
	return words, nil
}

func parseXLSXRow(row []string, nextID *int) (*vocab.Word, error) {
	id := 0
	if raw := cell(row, 0); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("bad id %q: %w", raw, err)
		}
		id = parsed
	} else {
		*nextID++
		id = *nextID
	}

	frequency := 0
	if raw := cell(row, 5); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("bad frequency %q: %w", raw, err)
		}
		frequency = parsed
	}

	level := vocab.Level(strings.ToUpper(cell(row, 4)))
	if level.Rank() < 0 {
		level = vocab.LevelA1
	}

	w := &vocab.Word{
		ID:        id,
		Russian:   cell(row, 1),
		English:   cell(row, 2),
		POS:       cell(row, 3),
		Level:     level,
		Frequency: frequency,
		Origin:    vocab.Origin(strings.ToLower(cell(row, 6))),
		Forms:     make(map[vocab.Language]vocab.Form),
	}

	for li, lang := range vocab.Languages {
		base := xlsxFixedColumns + li*xlsxColumnsPerLang
		native := cell(row, base)
		if native == "" {
			continue
		}
		w.Forms[lang] = vocab.Form{
			Native: native,
			Latin:  cell(row, base+1),
			IPA:    cell(row, base+2),
		}
	}

	// Spreadsheets carry no precomputed score.
	w.CognateScore = similarity.CognateScore(w.NativeForms(nil))
	return w, nil
}

// cell returns the trimmed cell at index i, tolerating short rows
// (excelize drops trailing empty cells).
func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

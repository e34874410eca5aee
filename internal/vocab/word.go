// Package vocab defines the immutable vocabulary entries the trainer
// works with. Words are created once at dataset load and never mutated.
package vocab

// Language identifies a supported target language by ISO 639-1 code.
type Language string

const (
	Kazakh      Language = "kk"
	Turkish     Language = "tr"
	Uzbek       Language = "uz"
	Kyrgyz      Language = "ky"
	Tatar       Language = "tt"
	Azerbaijani Language = "az"
)

// Languages lists all supported target languages in display order.
var Languages = []Language{Kazakh, Turkish, Uzbek, Kyrgyz, Tatar, Azerbaijani}

// languageNames maps codes to English display names.
var languageNames = map[Language]string{
	Kazakh:      "Kazakh",
	Turkish:     "Turkish",
	Uzbek:       "Uzbek",
	Kyrgyz:      "Kyrgyz",
	Tatar:       "Tatar",
	Azerbaijani: "Azerbaijani",
}

// speechTags maps codes to BCP-47 tags for speech synthesis.
var speechTags = map[Language]string{
	Kazakh:      "kk-KZ",
	Turkish:     "tr-TR",
	Uzbek:       "uz-UZ",
	Kyrgyz:      "ky-KG",
	Tatar:       "tt-RU",
	Azerbaijani: "az-AZ",
}

// Valid reports whether l is one of the supported language codes.
func (l Language) Valid() bool {
	_, ok := languageNames[l]
	return ok
}

// Name returns the English display name, or the raw code if unknown.
func (l Language) Name() string {
	if n, ok := languageNames[l]; ok {
		return n
	}
	return string(l)
}

// SpeechTag returns the BCP-47 tag used for text-to-speech, falling
// back to en-US for unknown codes.
func (l Language) SpeechTag() string {
	if t, ok := speechTags[l]; ok {
		return t
	}
	return "en-US"
}

// Level is a CEFR-like difficulty tier, ordered from easiest up.
type Level string

const (
	LevelA1 Level = "A1"
	LevelA2 Level = "A2"
	LevelB1 Level = "B1"
	LevelB2 Level = "B2"
)

// Levels lists the difficulty tiers in ascending order.
var Levels = []Level{LevelA1, LevelA2, LevelB1, LevelB2}

// Rank returns the position of the level in the ascending order, with
// unknown levels sorting first.
func (l Level) Rank() int {
	for i, lv := range Levels {
		if lv == l {
			return i
		}
	}
	return -1
}

// Origin categorizes the historical source of a word.
type Origin string

const (
	OriginTurkic        Origin = "turkic"
	OriginArabic        Origin = "arabic"
	OriginPersian       Origin = "persian"
	OriginRussian       Origin = "russian"
	OriginInternational Origin = "international"
)

// Origins lists the closed set of origin categories.
var Origins = []Origin{OriginTurkic, OriginArabic, OriginPersian, OriginRussian, OriginInternational}

// Form holds the written representations of a word in one language.
// Latin is empty for languages that write in Latin script already or
// have no established romanization.
type Form struct {
	Native string
	Latin  string
	IPA    string
}

// Word is a single vocabulary entry shared across the target
// languages. Identity is the integer ID; all fields are immutable
// after dataset load.
type Word struct {
	ID        int
	Russian   string
	English   string
	POS       string
	Level     Level
	Frequency int // rank, lower = more common
	// CognateScore in [0,1] summarizes cross-language similarity of
	// the native forms, precomputed at import time.
	CognateScore float64
	Origin       Origin
	Forms        map[Language]Form
}

// Form returns the written forms for the given language. Missing
// languages yield a zero Form.
func (w *Word) Form(lang Language) Form {
	return w.Forms[lang]
}

// Native returns the native-script form for lang, or "" if absent.
func (w *Word) Native(lang Language) string {
	return w.Forms[lang].Native
}

// Latin returns the romanized form for lang, or "" if none exists.
func (w *Word) Latin(lang Language) string {
	return w.Forms[lang].Latin
}

// IPA returns the phonetic transcription for lang, or "" if absent.
func (w *Word) IPA(lang Language) string {
	return w.Forms[lang].IPA
}

// Gloss returns the gloss in the given interface language ("en" or
// anything else for Russian, the primary interface language).
func (w *Word) Gloss(interfaceLang string) string {
	if interfaceLang == "en" {
		return w.English
	}
	return w.Russian
}

// NativeForms returns the native-script forms for the given languages,
// in order, skipping languages with no form. With langs nil, all
// supported languages are used.
func (w *Word) NativeForms(langs []Language) []string {
	if langs == nil {
		langs = Languages
	}
	var forms []string
	for _, l := range langs {
		if f := w.Forms[l].Native; f != "" {
			forms = append(forms, f)
		}
	}
	return forms
}

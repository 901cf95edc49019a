package locales

import (
	"embed"
	"encoding/json"
)

//go:embed *.json
var files embed.FS

const fallback = "ru"

// Locale maps message keys to user-facing text.
type Locale map[string]string

// Load reads the locale for lang, falling back to Russian when the file is
// missing or broken.
func Load(lang string) Locale {
	loc, err := load(lang)
	if err != nil && lang != fallback {
		loc, err = load(fallback)
	}
	if err != nil {
		return Locale{}
	}
	return loc
}

func load(lang string) (Locale, error) {
	b, err := files.ReadFile(lang + ".json")
	if err != nil {
		return nil, err
	}
	var loc Locale
	if err := json.Unmarshal(b, &loc); err != nil {
		return nil, err
	}
	return loc, nil
}

// Get returns the text for key, or the key itself when no translation
// exists, so a missing entry shows up in chat instead of vanishing.
func (l Locale) Get(key string) string {
	if v, ok := l[key]; ok && v != "" {
		return v
	}
	return key
}

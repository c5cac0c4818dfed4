// Package i18n holds the supported UI languages and the static copy shown
// for each of them.
package i18n

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

type Language string

const (
	EN Language = "en"
	ID Language = "id"
)

var ErrUnsupportedLanguage = errors.New("unsupported language")

// Languages lists the supported languages in display order.
func Languages() []Language { return []Language{EN, ID} }

func (l Language) Valid() bool { return l == EN || l == ID }

func (l Language) String() string { return string(l) }

// Parse accepts "en"/"id" in any case and with surrounding spaces.
func Parse(s string) (Language, error) {
	l := Language(strings.ToLower(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
	}
	return l, nil
}

type Loading struct {
	Analyzing      string `yaml:"analyzing"`
	GeneratingInfo string `yaml:"generatingInfo"`
	Directions     string `yaml:"directions"`
	Translating    string `yaml:"translating"`
}

type Errors struct {
	Title       string `yaml:"title"`
	InvalidFile string `yaml:"invalidFile"`
	Landmark    string `yaml:"landmark"`
	Directions  string `yaml:"directions"`
}

// Table is the UI copy for one language.
type Table struct {
	Title                  string  `yaml:"title"`
	Subtitle               string  `yaml:"subtitle"`
	UploadButton           string  `yaml:"uploadButton"`
	Loading                Loading `yaml:"loading"`
	Error                  Errors  `yaml:"error"`
	TryAgainButton         string  `yaml:"tryAgainButton"`
	HistoryTitle           string  `yaml:"historyTitle"`
	SourcesTitle           string  `yaml:"sourcesTitle"`
	AnalyzeAnotherButton   string  `yaml:"analyzeAnotherButton"`
	GetDirectionsButton    string  `yaml:"getDirectionsButton"`
	DirectionsFormTitle    string  `yaml:"directionsFormTitle"`
	FullAddressLabel       string  `yaml:"fullAddressLabel"`
	FullAddressPlaceholder string  `yaml:"fullAddressPlaceholder"`
	FindRouteButton        string  `yaml:"findRouteButton"`
	CancelButton           string  `yaml:"cancelButton"`
	DirectionsTitle        string  `yaml:"directionsTitle"`
	OpenInMapsButton       string  `yaml:"openInMapsButton"`
	ClearDirectionsButton  string  `yaml:"clearDirectionsButton"`
	HistoryEmpty           string  `yaml:"historyEmpty"`
	RecentTitle            string  `yaml:"recentTitle"`
}

//go:embed strings.yaml
var rawStrings []byte

var tables = mustLoad(rawStrings)

// Decode reads a language -> Table mapping and checks that every supported
// language is present.
func Decode(raw []byte) (map[Language]Table, error) {
	var out map[Language]Table
	if err := yaml.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("i18n: decode strings: %w", err)
	}
	for _, l := range Languages() {
		t, ok := out[l]
		if !ok {
			return nil, fmt.Errorf("i18n: missing table for %q", l)
		}
		if t.Error.InvalidFile == "" || t.Error.Landmark == "" {
			return nil, fmt.Errorf("i18n: incomplete error strings for %q", l)
		}
	}
	return out, nil
}

func mustLoad(raw []byte) map[Language]Table {
	t, err := Decode(raw)
	if err != nil {
		panic(err)
	}
	return t
}

// For returns the table for l, falling back to English.
func For(l Language) Table {
	if t, ok := tables[l]; ok {
		return t
	}
	return tables[EN]
}

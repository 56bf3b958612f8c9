package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_ParserLaws(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		defaultLang  string
		wantTitle    string
		wantLanguage string
	}{
		{
			name:         "french URL",
			input:        "https://fr.wikipedia.org/wiki/Emmanuel_Macron",
			defaultLang:  "en",
			wantTitle:    "Emmanuel Macron",
			wantLanguage: "fr",
		},
		{
			name:         "english URL",
			input:        "https://en.wikipedia.org/wiki/Berlin",
			defaultLang:  "fr",
			wantTitle:    "Berlin",
			wantLanguage: "en",
		},
		{
			name:         "bare title uses default language",
			input:        "Paris",
			defaultLang:  "de",
			wantTitle:    "Paris",
			wantLanguage: "de",
		},
		{
			name:         "percent-encoded URL decodes",
			input:        "https://fr.wikipedia.org/wiki/Caf%C3%A9",
			defaultLang:  "en",
			wantTitle:    "Café",
			wantLanguage: "fr",
		},
		{
			name:         "non-wikipedia URL passes through as a title",
			input:        "https://example.com/not-wikipedia",
			defaultLang:  "en",
			wantTitle:    "https://example.com/not-wikipedia",
			wantLanguage: "en",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			infos := Resolve([]string{tt.input}, tt.defaultLang)
			require.Len(t, infos, 1)
			assert.Equal(t, tt.wantTitle, infos[0].CleanTitle)
			assert.Equal(t, tt.wantLanguage, infos[0].Language)
			assert.Equal(t, tt.wantTitle+"___"+tt.wantLanguage, infos[0].UniqueKey)
		})
	}
}

func TestResolve_DuplicatesCollapse(t *testing.T) {
	infos := Resolve([]string{
		"https://fr.wikipedia.org/wiki/France",
		"https://fr.wikipedia.org/wiki/France",
		"https://en.wikipedia.org/wiki/Germany",
	}, "en")

	require.Len(t, infos, 2)
	assert.Equal(t, "France", infos[0].CleanTitle)
	assert.Equal(t, "fr", infos[0].Language)
	assert.Equal(t, "Germany", infos[1].CleanTitle)
	assert.Equal(t, "en", infos[1].Language)
}

func TestResolve_ReorderingPermutesRowsOnly(t *testing.T) {
	a := Resolve([]string{"Alpha", "Beta"}, "en")
	b := Resolve([]string{"Beta", "Alpha"}, "en")

	require.Len(t, a, 2)
	require.Len(t, b, 2)
	assert.Equal(t, a[0], b[1])
	assert.Equal(t, a[1], b[0])
}

func TestDetectDefaultLanguage(t *testing.T) {
	lang := DetectDefaultLanguage([]string{
		"https://fr.wikipedia.org/wiki/France",
		"https://fr.wikipedia.org/wiki/Paris",
		"https://en.wikipedia.org/wiki/London",
		"Bare title",
	}, "de")
	assert.Equal(t, "fr", lang)

	assert.Equal(t, "de", DetectDefaultLanguage([]string{"Bare title"}, "de"))
}

package wikitext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountRefTags(t *testing.T) {
	assert.Equal(t, 0, CountRefTags("no refs here"))
	assert.Equal(t, 2, CountRefTags(`a<ref>one</ref>b<ref name="x">two</ref>`))
}

func TestURLsInRefs(t *testing.T) {
	text := `Intro.<ref>See https://example.com/a and https://example.org/b</ref> Outro https://not-in-ref.com`
	urls := URLsInRefs(text)
	assert.ElementsMatch(t, []string{"https://example.com/a", "https://example.org/b"}, urls)
}

func TestHostOf(t *testing.T) {
	assert.Equal(t, "example.com", HostOf("https://example.com/a/b?c=d"))
	assert.Equal(t, "www.breitbart.com", HostOf("https://www.breitbart.com/news"))
	assert.Equal(t, "", HostOf("::not a url::"))
}

func TestCitationNeededCount(t *testing.T) {
	text := `Foo {{citation needed}} bar {{cn|date=2024}} baz {{refnec}}`
	assert.Equal(t, 3, CitationNeededCount(text, []string{"citation needed", "cn", "refnec"}))
	assert.Equal(t, 0, CitationNeededCount("nothing to see", []string{"cn"}))
}

func TestExtractQualityGrade(t *testing.T) {
	assert.Equal(t, "fa", ExtractQualityGrade("en", "{{WikiProject Biography|class=FA}}"))
	assert.Equal(t, "adq", ExtractQualityGrade("fr", "{{Wikiprojet|avancement=ADQ}}"))
	assert.Equal(t, "", ExtractQualityGrade("en", "no banner present"))
}

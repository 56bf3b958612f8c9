package reference

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTalkPrefix(t *testing.T) {
	assert.Equal(t, "Discussion:", TalkPrefix("fr"))
	assert.Equal(t, "Talk:", TalkPrefix("en"))
	assert.Equal(t, "Talk:", TalkPrefix("xx"))
}

func TestProtectionLevelScore(t *testing.T) {
	// spec.md §8: "no edit entry -> 0.0; sysop -> 1.0".
	assert.Equal(t, 0.0, ProtectionLevelScore(""))
	assert.Equal(t, 1.0, ProtectionLevelScore("sysop"))
	assert.Equal(t, 0.25, ProtectionLevelScore("autoconfirmed"))
	assert.Equal(t, 0.5, ProtectionLevelScore("extendedconfirmed"))
	assert.Equal(t, 0.75, ProtectionLevelScore("templateeditor"))
}

func TestFeaturedArticleDeficit(t *testing.T) {
	assert.Equal(t, 0.0, FeaturedArticleDeficit("en", "fa"))
	assert.Equal(t, 1.0, FeaturedArticleDeficit("en", "stub"))
	assert.Equal(t, 0.0, FeaturedArticleDeficit("fr", "adq"))
	assert.Equal(t, 1.0, FeaturedArticleDeficit("fr", "ebauche"))
	assert.Equal(t, 0.0, FeaturedArticleDeficit("en", ""))
	assert.Equal(t, 0.0, FeaturedArticleDeficit("en", "unknown-grade"))
}

func TestFrenchGradeAlias(t *testing.T) {
	assert.Equal(t, "adq", FrenchGradeAlias("Article de qualité"))
	assert.Equal(t, "ba", FrenchGradeAlias("bon article"))
	assert.Equal(t, "unrecognized", FrenchGradeAlias("unrecognized"))
}

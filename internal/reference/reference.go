// Package reference bundles the small, language-keyed lookup tables the
// metric collectors need: the Talk-namespace name per wiki edition, the
// citation-needed template aliases per edition, and the featured-article
// grade-to-deficit tables for fr/en. These are data, not code, and change
// independently of the collectors that consult them.
package reference

import "strings"

// TalkPrefix returns the namespace prefix used for the discussion companion
// of an article on the given language edition, e.g. "Discussion:" on fr,
// "Talk:" on en. Unknown editions fall back to the English convention.
func TalkPrefix(lang string) string {
	if prefix, ok := talkPrefixes[strings.ToLower(lang)]; ok {
		return prefix
	}
	return "Talk:"
}

var talkPrefixes = map[string]string{
	"fr": "Discussion:",
	"en": "Talk:",
	"de": "Diskussion:",
	"es": "Discusión:",
	"it": "Discussione:",
	"pt": "Discussão:",
	"ru": "Обсуждение:",
	"ja": "ノート:",
	"zh": "讨论:",
	"ar": "نقاش:",
	"nl": "Overleg:",
	"sv": "Diskussion:",
	"no": "Diskusjon:",
	"da": "Diskussion:",
	"fi": "Keskustelu:",
}

// CitationNeededTemplates returns the set of "citation needed"-family
// template names recognized on the given language edition, lower-cased,
// without braces. Unknown editions fall back to a generic English set.
func CitationNeededTemplates(lang string) []string {
	if templates, ok := citationTemplates[strings.ToLower(lang)]; ok {
		return templates
	}
	return defaultCitationTemplates
}

var defaultCitationTemplates = []string{"citation needed", "cn", "refnec", "référence nécessaire"}

var citationTemplates = map[string][]string{
	"fr": {"refnec", "référence nécessaire", "citation needed", "cn"},
	"en": {"citation needed", "cn", "fact", "verify", "clarification needed"},
	"de": {"belege fehlen", "quelle fehlt", "citation needed", "cn"},
	"es": {"cita requerida", "cr", "verificar"},
	"it": {"citazione necessaria", "citation needed", "cn", "senza fonte"},
	"pt": {"carece de fontes", "citation needed", "cn", "verificar"},
	"ru": {"нет источника", "citation needed", "источник", "cn"},
	"ja": {"要出典", "citation needed", "cn", "出典"},
	"zh": {"来源请求", "citation needed", "cn", "需要来源"},
	"ar": {"مصدر مطلوب", "citation needed", "cn", "بحاجة لمصدر"},
	"nl": {"bron", "citation needed", "cn", "verificatie"},
	"sv": {"källa behövs", "citation needed", "cn", "källa"},
	"no": {"referanse trengs", "citation needed", "cn", "kilde"},
	"da": {"kilde mangler", "citation needed", "cn", "kilde"},
	"fi": {"lähde", "citation needed", "cn", "tarkista"},
}

// FeaturedArticleDeficit maps a lower-cased quality-assessment grade,
// as extracted from a Talk page's project banner, to a quality-deficit
// score in [0,1] — 0 for the top grade, rising toward 1 for a stub.
// Unrated (empty string or an unrecognized grade) maps to 0.
func FeaturedArticleDeficit(lang, grade string) float64 {
	grade = strings.ToLower(strings.TrimSpace(grade))
	if grade == "" {
		return 0.0
	}
	table := faGradesEN
	if strings.EqualFold(lang, "fr") {
		table = faGradesFR
	}
	if deficit, ok := table[grade]; ok {
		return deficit
	}
	return 0.0
}

var faGradesFR = map[string]float64{
	"adq":      0.0,
	"ba":       0.2,
	"a":        0.4,
	"b":        0.6,
	"bd":       0.8,
	"ébauche":  1.0,
	"ebauche":  1.0,
}

var faGradesEN = map[string]float64{
	"fa":    0.0,
	"a":     0.2,
	"ga":    0.3,
	"b":     0.5,
	"c":     0.7,
	"start": 0.85,
	"stub":  1.0,
}

// FrenchGradeAlias maps a French prose quality label (as written inside
// the {{Wikiprojet|avancement=...}} banner) to its canonical short grade,
// e.g. "article de qualité" -> "adq".
func FrenchGradeAlias(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	if alias, ok := frenchGradeAliases[label]; ok {
		return alias
	}
	return label
}

var frenchGradeAliases = map[string]string{
	"article de qualité": "adq",
	"bon article":        "ba",
	"avancé":              "a",
	"bien construit":     "b",
	"bon début":          "bd",
	"ébauche":            "ébauche",
	"adq":                "adq",
	"ba":                 "ba",
	"a":                  "a",
	"b":                  "b",
	"bd":                 "bd",
	"e":                  "ébauche",
}

// ProtectionLevelScore maps the highest MediaWiki edit-protection level
// found on a page to a Heat-category score in [0,1].
func ProtectionLevelScore(level string) float64 {
	switch strings.ToLower(level) {
	case "":
		return 0.0
	case "autoconfirmed", "editautopatrolprotected":
		return 0.25
	case "editextendedsemiprotected", "extendedconfirmed":
		return 0.5
	case "templateeditor", "editautoreviewprotected":
		return 0.75
	case "sysop":
		return 1.0
	default:
		return 0.0
	}
}

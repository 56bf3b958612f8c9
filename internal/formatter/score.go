// internal/formatter/score.go
package formatter

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/opsci/wikisense/internal/api"
	"github.com/opsci/wikisense/internal/utils"
)

// FormatAnalysis renders an AnalysisResult as a colorized table (grounded
// on the original format_results_mini console summary), JSON, or YAML
// matching the wire envelope of spec.md §4.6.
func FormatAnalysis(result *api.AnalysisResult, format string) (string, error) {
	switch strings.ToLower(format) {
	case "json":
		return formatAnalysisJSON(result)
	case "yaml", "yml":
		return formatAnalysisYAML(result)
	case "table", "":
		return formatAnalysisTable(result), nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: table, json, yaml)", format)
	}
}

func formatAnalysisJSON(result *api.AnalysisResult) (string, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("JSON formatting error: %w", err)
	}
	return string(data) + "\n", nil
}

func formatAnalysisYAML(result *api.AnalysisResult) (string, error) {
	data, err := yaml.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("YAML formatting error: %w", err)
	}
	return string(data), nil
}

func formatAnalysisTable(result *api.AnalysisResult) string {
	var b strings.Builder

	if result.Error != "" {
		dangerColor.Fprintf(&b, "analysis error: %s\n", result.Error)
		return b.String()
	}

	headerColor.Fprintln(&b, "Wikipedia sensitivity scores")

	table := tablewriter.NewWriter(&b)
	table.Header([]string{"Page", "Language", "Heat", "Quality", "Risk", "Sensitivity"})

	for _, p := range result.Pages {
		table.Append([]string{
			p.Title,
			p.Language,
			formatScore(p.Scores.Heat),
			formatScore(p.Scores.Quality),
			formatScore(p.Scores.Risk),
			sensitivityColor(p.Scores.Sensitivity).Sprint(formatScore(p.Scores.Sensitivity)),
		})
	}
	table.Render()

	secondaryColor.Fprintf(&b, "\n%d page(s) across %d language edition(s), %d batch size, %.2fs\n",
		result.Summary.TotalPages, len(result.Summary.PagesPerLanguage), result.Summary.BatchSize, result.Summary.ProcessingSeconds)

	for _, lang := range sortedLanguages(result.Summary.PagesPerLanguage) {
		count := result.Summary.PagesPerLanguage[lang]
		pct := utils.CalculatePercentage(count, result.Summary.TotalPages)
		secondaryColor.Fprintf(&b, "  %s: %d (%.1f%%)\n", lang, count, pct)
	}

	var flagged []api.PageResult
	for _, p := range result.Pages {
		if len(p.DetectedSockpuppets) > 0 {
			flagged = append(flagged, p)
		}
	}
	if len(flagged) > 0 {
		warningColor.Fprintln(&b, "\nsuspect accounts detected:")
		for _, p := range flagged {
			fmt.Fprintf(&b, "  %s (%s): %s\n", p.Title, p.Language, strings.Join(p.DetectedSockpuppets, ", "))
		}
	}

	return b.String()
}

func formatScore(v float64) string {
	// Clamp defensively: floating-point division in the scorer's weighted
	// averages can land a hair outside [0,100] at the edges.
	v = utils.MaxFloat64(0, utils.MinFloat64(100, v))
	return fmt.Sprintf("%.1f", v)
}

func sortedLanguages(perLanguage map[string]int) []string {
	langs := make([]string, 0, len(perLanguage))
	for lang := range perLanguage {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

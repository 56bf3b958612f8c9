// internal/formatter/common.go
package formatter

import (
	"github.com/fatih/color"
)

var (
	// Colors for terminal display - shared across all formatters
	headerColor    = color.New(color.FgCyan, color.Bold)
	successColor   = color.New(color.FgGreen)
	warningColor   = color.New(color.FgYellow)
	dangerColor    = color.New(color.FgRed, color.Bold)
	secondaryColor = color.New(color.FgHiBlack)
)

// sensitivityColor grades a 0-100 sensitivity score: green below 30,
// yellow below 60, red otherwise.
func sensitivityColor(score float64) *color.Color {
	switch {
	case score < 30:
		return successColor
	case score < 60:
		return warningColor
	default:
		return dangerColor
	}
}

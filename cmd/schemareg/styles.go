// SPDX-License-Identifier: MPL-2.0

package main

import "github.com/charmbracelet/lipgloss"

// Color palette - shared hex colors for consistent theming across CLI output,
// designed for dark terminal backgrounds.
const (
	// ColorPrimary is purple - titles and primary emphasis.
	ColorPrimary = lipgloss.Color("#7C3AED")

	// ColorMuted is gray - subtitles and secondary text.
	ColorMuted = lipgloss.Color("#6B7280")

	// ColorSuccess is green - passing validations.
	ColorSuccess = lipgloss.Color("#10B981")

	// ColorError is red - violations and failures.
	ColorError = lipgloss.Color("#EF4444")

	// ColorWarning is amber - load warnings and skipped entries.
	ColorWarning = lipgloss.Color("#F59E0B")
)

var (
	// TitleStyle is for primary headers and section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle is for secondary headers and descriptions.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// SuccessStyle is for passing validation results.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// ErrorStyle is for violations and failure indicators.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	// WarningStyle is for load warnings.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)
)

package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/fang"
)

// Color palette for the application (single source of truth)
var (
	// Primary colors
	ColorPrimary   = lipgloss.Color("#7C3AED") // Purple
	ColorSecondary = lipgloss.Color("#06B6D4") // Cyan
	ColorSuccess   = lipgloss.Color("#10B981") // Green
	ColorWarning   = lipgloss.Color("#F59E0B") // Amber
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorMuted     = lipgloss.Color("#6B7280") // Gray
	ColorHighlight = lipgloss.Color("#f048ff") // Pink

	// Text colors
	ColorText     = lipgloss.Color("#F9FAFB") // White
	ColorTextDim  = lipgloss.Color("#9CA3AF") // Light gray
	ColorTextMute = lipgloss.Color("#6B7280") // Muted gray
)

// styleWrapper wraps a lipgloss style
type styleWrapper struct {
	style lipgloss.Style
}

// Render renders the string with the style
func (s styleWrapper) Render(str string) string {
	return s.style.Render(str)
}

// Bold returns a new style with bold enabled
func (s styleWrapper) Bold(v bool) styleWrapper {
	return styleWrapper{s.style.Bold(v)}
}

// Text styles using lipgloss
var (
	Bold      = styleWrapper{lipgloss.NewStyle().Bold(true)}
	Dim       = styleWrapper{lipgloss.NewStyle().Foreground(ColorTextDim)}
	Muted     = styleWrapper{lipgloss.NewStyle().Foreground(ColorTextMute)}
	Success   = styleWrapper{lipgloss.NewStyle().Foreground(ColorSuccess)}
	Warning   = styleWrapper{lipgloss.NewStyle().Foreground(ColorWarning)}
	Error     = styleWrapper{lipgloss.NewStyle().Foreground(ColorError)}
	Secondary = styleWrapper{lipgloss.NewStyle().Foreground(ColorSecondary)}
	Highlight = styleWrapper{lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)}
)

// GetCheckMark returns a styled check mark
func GetCheckMark() string { return Success.Render("✓") }

// GetCrossMark returns a styled cross mark
func GetCrossMark() string { return Error.Render("✗") }

// GetWarnMark returns a styled warning mark
func GetWarnMark() string { return Warning.Render("⚠") }

// GetInfoMark returns a styled info mark
func GetInfoMark() string { return Secondary.Render("ℹ") }

// GetBullet returns a styled bullet point
func GetBullet() string { return Muted.Render("•") }

// Box styles for panels and containers
type boxWrapper struct {
	style lipgloss.Style
}

func (b boxWrapper) Render(str string) string {
	return b.style.Render(str)
}

var (
	Box = boxWrapper{lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorMuted).
		Padding(0, 1)}

	HighlightBox = boxWrapper{lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 1)}

	SuccessBox = boxWrapper{lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSuccess).
			Padding(0, 1)}

	WarningBox = boxWrapper{lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorWarning).
			Padding(0, 1)}

	ErrorBox = boxWrapper{lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorError).
			Padding(0, 1)}
)

// Header styles
var (
	Title = styleWrapper{lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)}

	Subtitle = styleWrapper{lipgloss.NewStyle().
			Foreground(ColorTextDim).
			Italic(true)}

	SectionHeader = styleWrapper{lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)}
)

// FormatKeyValue formats a key-value pair with styling
func FormatKeyValue(key, value string) string {
	return Dim.Render(key+": ") + value
}

// FormatStatus formats a status message with an appropriate icon
func FormatStatus(status, message string) string {
	var icon string
	switch status {
	case "success":
		icon = GetCheckMark()
	case "error":
		icon = GetCrossMark()
	case "warning":
		icon = GetWarnMark()
	case "info":
		icon = GetInfoMark()
	default:
		icon = GetBullet()
	}
	return icon + " " + message
}

// FangColorScheme returns a Fang color scheme based on the application's color palette
func FangColorScheme(c lipgloss.LightDarkFunc) fang.ColorScheme {
	return fang.ColorScheme{
		Base:           ColorText,
		Title:          ColorPrimary,
		Description:    ColorTextDim,
		Codeblock:      c(lipgloss.Color("#1F2937"), lipgloss.Color("#2F2E36")),
		Program:        ColorSecondary,
		DimmedArgument: ColorMuted,
		Comment:        ColorMuted,
		Flag:           ColorSuccess,
		FlagDefault:    ColorTextDim,
		Command:        ColorHighlight,
		QuotedString:   ColorSecondary,
		Argument:       ColorText,
		Help:           ColorTextDim,
		Dash:           ColorMuted,
		ErrorHeader:    [2]color.Color{ColorText, ColorError},
		ErrorDetails:   ColorError,
	}
}

// BannerASCII is the ASCII art banner for the application
const BannerASCII = `
           _   _                 _           _
 _ __ __ _| |_(_)_ __   __ _  __| | __ _ ___| |__
| '__/ _' | __| | '_ \ / _' |/ _' |/ _' / __| '_ \
| | | (_| | |_| | | | | (_| | (_| | (_| \__ \ | | |
|_|  \__,_|\__|_|_| |_|\__, |\__,_|\__,_|___/_| |_|
                       |___/
`

// RenderBanner renders the banner in the secondary color.
func RenderBanner(banner string) string {
	return Secondary.Render(banner)
}

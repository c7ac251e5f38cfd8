// Package styles provides shared lipgloss v2 styles for CLI and TUI components.
package styles

import (
	"image/color"

	lipgloss "charm.land/lipgloss/v2"
)

// Checkbox glyphs shared by the CLI and the TUI.
const (
	CheckboxOpen = "[ ]"
	CheckboxDone = "[x]"
)

// Status icons.
const (
	IconPass = "✔"
	IconWarn = "●"
	IconFail = "✘"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Exported color aliases for convenience.
var (
	ColorPrimary    color.Color
	ColorSecondary  color.Color
	ColorForeground color.Color
	ColorMuted      color.Color
	ColorBackground color.Color
	ColorSurface    color.Color
	ColorSuccess    color.Color
	ColorWarning    color.Color
	ColorError      color.Color

	// ColorDone is Muted faded toward the background, used for finished tasks.
	ColorDone color.Color
)

// Style exports.
var (
	// CLI text styles.
	TextPrimaryBoldStyle    lipgloss.Style
	TextForegroundStyle     lipgloss.Style
	TextForegroundBoldStyle lipgloss.Style
	TextMutedStyle          lipgloss.Style
	TextSuccessStyle        lipgloss.Style
	TextWarningStyle        lipgloss.Style
	TextErrorStyle          lipgloss.Style
	DividerStyle            lipgloss.Style

	// TUI styles.
	TitleStyle          lipgloss.Style
	SubtitleStyle       lipgloss.Style
	BadgeStyle          lipgloss.Style
	ButtonStyle         lipgloss.Style
	ButtonDisabledStyle lipgloss.Style

	InputStyle        lipgloss.Style
	InputFocusedStyle lipgloss.Style

	RowStyle         lipgloss.Style
	RowSelectedStyle lipgloss.Style
	CursorStyle      lipgloss.Style
	CheckboxStyle    lipgloss.Style
	CheckedStyle     lipgloss.Style
	DoneTitleStyle   lipgloss.Style

	EmptyTitleStyle    lipgloss.Style
	EmptySubtitleStyle lipgloss.Style
	FooterStyle        lipgloss.Style

	ViewSelectedStyle lipgloss.Style
	ViewNormalStyle   lipgloss.Style

	ModalStyle               lipgloss.Style
	ModalTitleStyle          lipgloss.Style
	ModalHelpStyle           lipgloss.Style
	ModalButtonStyle         lipgloss.Style
	ModalButtonSelectedStyle lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error
	ColorDone = Blend(p.Muted, p.Background, 0.35)

	TextPrimaryBoldStyle = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	TextForegroundStyle = lipgloss.NewStyle().Foreground(ColorForeground)
	TextForegroundBoldStyle = lipgloss.NewStyle().Foreground(ColorForeground).Bold(true)
	TextMutedStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	TextSuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	TextWarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	TextErrorStyle = lipgloss.NewStyle().Foreground(ColorError)
	DividerStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	TitleStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Bold(true)
	SubtitleStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	BadgeStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(ColorSurface).
		Foreground(ColorPrimary).
		Bold(true)
	ButtonStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(ColorSurface).
		Foreground(ColorForeground)
	ButtonDisabledStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(ColorDone)

	InputStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSurface).
		Padding(0, 1)
	InputFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(0, 1)

	RowStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	RowSelectedStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Bold(true)
	CursorStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	CheckboxStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	CheckedStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess)
	DoneTitleStyle = lipgloss.NewStyle().
		Foreground(ColorDone).
		Strikethrough(true)

	EmptyTitleStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Bold(true)
	EmptySubtitleStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	FooterStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	ViewSelectedStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	ViewNormalStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)
	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorForeground)
	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		MarginTop(1)
	ModalButtonStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(ColorSurface).
		Foreground(ColorMuted)
	ModalButtonSelectedStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(ColorPrimary).
		Foreground(ColorBackground).
		Bold(true)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}

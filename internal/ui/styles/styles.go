// Package styles defines the visual styling for the application.
package styles

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Color definitions.
var (
	ColorPrimary   = lipgloss.Color("36")  // Teal
	ColorSecondary = lipgloss.Color("63")  // Purple
	ColorAccent    = lipgloss.Color("214") // Amber

	ColorSuccess = lipgloss.Color("42")  // Green
	ColorError   = lipgloss.Color("196") // Red
	ColorWarning = lipgloss.Color("220") // Yellow
	ColorInfo    = lipgloss.Color("39")  // Blue

	ColorBgDark   = lipgloss.Color("235")
	ColorBgAccent = lipgloss.Color("236")

	ColorText      = lipgloss.Color("252")
	ColorTextDim   = lipgloss.Color("245")
	ColorTextMuted = lipgloss.Color("240")
)

// ToastStyle for floating notifications.
var ToastStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorPrimary).
	Padding(0, 1).
	MarginBottom(1)

// SpinnerStyle colors loading spinners.
var SpinnerStyle = lipgloss.NewStyle().Foreground(ColorAccent)

// TitleStyle is used for main headings.
var TitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorPrimary).
	MarginBottom(1)

// SubTitleStyle is used for section headings.
var SubTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorSecondary)

// CardStyle creates a bordered card container.
var CardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorTextMuted).
	Padding(0, 2).
	MarginBottom(1)

// CardTitleStyle styles card headers.
var CardTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorPrimary).
	MarginBottom(1)

// LabelStyle styles the label of a label/value pair.
var LabelStyle = lipgloss.NewStyle().
	Foreground(ColorTextDim).
	Width(18)

// ValueStyle styles the value of a label/value pair.
var ValueStyle = lipgloss.NewStyle().
	Foreground(ColorText)

// AmountStyle styles monetary amounts.
var AmountStyle = lipgloss.NewStyle().
	Foreground(ColorAccent).
	Align(lipgloss.Right)

// MutedStyle is used for secondary text.
var MutedStyle = lipgloss.NewStyle().
	Foreground(ColorTextMuted)

// FocusedBorderStyle creates a focused border.
var FocusedBorderStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorPrimary).
	Padding(0, 1)

// BlurredBorderStyle creates an unfocused border.
var BlurredBorderStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorTextMuted).
	Padding(0, 1)

// HelpPanelStyle creates the help overlay panel.
var HelpPanelStyle = lipgloss.NewStyle().
	Border(lipgloss.DoubleBorder()).
	BorderForeground(ColorPrimary).
	Padding(1, 3).
	Background(ColorBgDark)

// HelpStyle is the base style for help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorTextMuted)

// ErrorTextStyle for error messages.
var ErrorTextStyle = lipgloss.NewStyle().
	Foreground(ColorError)

// SuccessTextStyle for success messages.
var SuccessTextStyle = lipgloss.NewStyle().
	Foreground(ColorSuccess)

// WarningTextStyle for warning messages.
var WarningTextStyle = lipgloss.NewStyle().
	Foreground(ColorWarning)

// InfoTextStyle for info messages.
var InfoTextStyle = lipgloss.NewStyle().
	Foreground(ColorInfo)

// TableStyles returns the styles for bubbles tables.
func TableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		Bold(true).
		Foreground(ColorPrimary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(ColorTextMuted)
	s.Selected = s.Selected.
		Background(ColorBgAccent).
		Foreground(ColorText).
		Bold(true)
	return s
}

// CenterHorizontal centers content horizontally within a given width.
func CenterHorizontal(content string, width int) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(content)
}

// CenterBoth centers content both horizontally and vertically.
func CenterBoth(content string, width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center).
		AlignVertical(lipgloss.Center).
		Render(content)
}

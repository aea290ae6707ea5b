package ui

import (
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/sttts/dashnav/pkg/navigation"
)

// Color constants
const (
	ColorBlack      = "0"
	ColorDarkerBlue = "4"
	ColorCyan       = "6"
	ColorGrey       = "7"
	ColorDarkGrey   = "8"
	ColorWhite      = "15"
	ColorRed        = "196"
)

// Common styles
var (
	PanelHeaderStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(ColorDarkerBlue)).
		Foreground(lipgloss.Color(ColorWhite)).
		Bold(true)

	PanelContentStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(ColorDarkerBlue)).
		Foreground(lipgloss.Color(ColorGrey))

	PanelItemStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(ColorDarkerBlue)).
		Foreground(lipgloss.Color(ColorGrey))

	PanelItemSelectedStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(ColorCyan)).
		Foreground(lipgloss.Color(ColorBlack))

	// Frame around sidebar and panel
	PanelFrameStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(ColorCyan))

	URLBarStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(ColorBlack)).
		Foreground(lipgloss.Color(ColorWhite))

	URLBarLabelStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(ColorDarkGrey)).
		Foreground(lipgloss.Color(ColorWhite)).
		Padding(0, 1)

	// Function key styles
	FunctionKeyStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(ColorBlack)).
		Foreground(lipgloss.Color(ColorWhite)).
		Padding(0, 0, 0, 1)

	FunctionKeyDescriptionStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(ColorCyan)).
		Foreground(lipgloss.Color(ColorBlack)).
		Padding(0, 1, 0, 0)

	FunctionKeyBarStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(ColorBlack)).
		Foreground(lipgloss.Color(ColorGrey))

	ToastStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(ColorRed)).
		Foreground(lipgloss.White).
		Bold(true)

	InputTextStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorWhite)).
		Background(lipgloss.Color(ColorDarkGrey))

	InputCursorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorBlack)).
		Background(lipgloss.Color(ColorCyan)).
		Bold(true)

	InputErrorStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(ColorBlack)).
		Foreground(lipgloss.Color(ColorRed))
)

// brand holds the tab colors of one app.
type brand struct {
	name       string
	background string
	foreground string
}

var brands = map[navigation.AppID]brand{
	navigation.AppCloud:    {name: "Cloud", background: "25", foreground: ColorWhite},
	navigation.AppSoftware: {name: "Software", background: "28", foreground: ColorWhite},
	navigation.AppMarket:   {name: "App", background: "130", foreground: ColorWhite},
}

// BrandName returns the display name of app.
func BrandName(app navigation.AppID) string {
	if b, ok := brands[app]; ok {
		return b.name
	}
	return string(app)
}

// TabStyle styles the tab of app. Only the tab of the active app carries
// the brand colors, the app is always passed in explicitly.
func TabStyle(app navigation.AppID, active bool) lipgloss.Style {
	st := lipgloss.NewStyle().Padding(0, 2)
	b, ok := brands[app]
	if !ok || !active {
		return st.Background(lipgloss.Color(ColorBlack)).Foreground(lipgloss.Color(ColorGrey))
	}
	return st.Background(lipgloss.Color(b.background)).Foreground(lipgloss.Color(b.foreground)).Bold(true)
}

// AccentStyle is the brand accent of app used for sidebar highlights.
func AccentStyle(app navigation.AppID) lipgloss.Style {
	if b, ok := brands[app]; ok {
		return lipgloss.NewStyle().Background(lipgloss.Color(b.background)).Foreground(lipgloss.Color(b.foreground))
	}
	return PanelItemSelectedStyle
}

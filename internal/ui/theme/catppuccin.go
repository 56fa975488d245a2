package theme

import "github.com/charmbracelet/lipgloss"

// CatppuccinMochaTheme returns the Catppuccin Mocha theme
// Based on: https://github.com/catppuccin/catppuccin
func CatppuccinMochaTheme() Theme {
	return Theme{
		Name: "catppuccin-mocha",

		// Background colors
		Background: lipgloss.Color("#1e1e2e"), // Base
		Foreground: lipgloss.Color("#cdd6f4"), // Text

		// UI elements
		Border:        lipgloss.Color("#45475a"), // Surface1
		BorderFocused: lipgloss.Color("#89b4fa"), // Blue
		Selection:     lipgloss.Color("#313244"), // Surface0
		Cursor:        lipgloss.Color("#f5e0dc"), // Rosewater
		Muted:         lipgloss.Color("#6c7086"), // Overlay0

		// Status colors
		Success: lipgloss.Color("#a6e3a1"), // Green
		Warning: lipgloss.Color("#f9e2af"), // Yellow
		Error:   lipgloss.Color("#f38ba8"), // Red
		Info:    lipgloss.Color("#89dceb"), // Sky

		// Filter tags
		TagColumn:    lipgloss.Color("#b4befe"), // Lavender
		TagCondition: lipgloss.Color("#a6adc8"), // Subtext0
		TagValue:     lipgloss.Color("#fab387"), // Peach

		// Data types
		TypeString:  lipgloss.Color("#a6e3a1"), // Green
		TypeNumber:  lipgloss.Color("#fab387"), // Peach
		TypeBoolean: lipgloss.Color("#f9e2af"), // Yellow
		TypeDate:    lipgloss.Color("#89dceb"), // Sky
		TypeMember:  lipgloss.Color("#cba6f7"), // Mauve
		TypeCustom:  lipgloss.Color("#f5c2e7"), // Pink

		// Table colors
		TableHeader:      lipgloss.Color("#89b4fa"), // Blue
		TableRowEven:     lipgloss.Color("#1e1e2e"), // Base
		TableRowOdd:      lipgloss.Color("#181825"), // Mantle
		TableRowSelected: lipgloss.Color("#313244"), // Surface0
	}
}

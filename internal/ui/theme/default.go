package theme

import "github.com/charmbracelet/lipgloss"

// DefaultTheme returns the default dark theme
func DefaultTheme() Theme {
	return Theme{
		Name: "default",

		// Background colors
		Background: lipgloss.Color("235"),
		Foreground: lipgloss.Color("252"),

		// UI elements
		Border:        lipgloss.Color("240"),
		BorderFocused: lipgloss.Color("62"),
		Selection:     lipgloss.Color("237"),
		Cursor:        lipgloss.Color("248"),
		Muted:         lipgloss.Color("244"),

		// Status colors
		Success: lipgloss.Color("42"),
		Warning: lipgloss.Color("220"),
		Error:   lipgloss.Color("196"),
		Info:    lipgloss.Color("75"),

		// Filter tags
		TagColumn:    lipgloss.Color("117"),
		TagCondition: lipgloss.Color("244"),
		TagValue:     lipgloss.Color("180"),

		// Data types
		TypeString:  lipgloss.Color("180"),
		TypeNumber:  lipgloss.Color("150"),
		TypeBoolean: lipgloss.Color("75"),
		TypeDate:    lipgloss.Color("220"),
		TypeMember:  lipgloss.Color("117"),
		TypeCustom:  lipgloss.Color("176"),

		// Table colors
		TableHeader:      lipgloss.Color("62"),
		TableRowEven:     lipgloss.Color("235"),
		TableRowOdd:      lipgloss.Color("236"),
		TableRowSelected: lipgloss.Color("237"),
	}
}

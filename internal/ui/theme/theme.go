package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rebeliceyang/lazyfilter/internal/models"
)

// Theme defines the color scheme and styling
type Theme struct {
	Name string

	// Background colors
	Background lipgloss.Color
	Foreground lipgloss.Color

	// UI elements
	Border        lipgloss.Color
	BorderFocused lipgloss.Color
	Selection     lipgloss.Color
	Cursor        lipgloss.Color
	Muted         lipgloss.Color

	// Status colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	// Filter tags
	TagColumn    lipgloss.Color
	TagCondition lipgloss.Color
	TagValue     lipgloss.Color

	// Data type accents used for column icons
	TypeString  lipgloss.Color
	TypeNumber  lipgloss.Color
	TypeBoolean lipgloss.Color
	TypeDate    lipgloss.Color
	TypeMember  lipgloss.Color
	TypeCustom  lipgloss.Color

	// Table colors
	TableHeader      lipgloss.Color
	TableRowEven     lipgloss.Color
	TableRowOdd      lipgloss.Color
	TableRowSelected lipgloss.Color
}

// ForType returns the accent color of a data type
func (t Theme) ForType(dt models.DataType) lipgloss.Color {
	switch dt {
	case models.DataTypeString:
		return t.TypeString
	case models.DataTypeNumber:
		return t.TypeNumber
	case models.DataTypeBoolean:
		return t.TypeBoolean
	case models.DataTypeDate:
		return t.TypeDate
	case models.DataTypeEnum, models.DataTypeObject, models.DataTypeAsyncList:
		return t.TypeMember
	case models.DataTypeCustom:
		return t.TypeCustom
	default:
		return t.Muted
	}
}

// ByName returns the named theme, falling back to the default theme
func ByName(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMochaTheme()
	default:
		return DefaultTheme()
	}
}

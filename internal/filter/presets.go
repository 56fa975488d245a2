package filter

import (
	"time"

	"github.com/rebeliceyang/lazyfilter/internal/models"
)

// DatePresets returns the quick picks of a date column. Columns without
// authored presets get a default set looking back, or forward for future presets.
func DatePresets(p models.DateProps, now time.Time) []models.DatePreset {
	if len(p.Presets) > 0 {
		return p.Presets
	}

	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	if p.PresetsType == models.PresetsFuture {
		return []models.DatePreset{
			{Label: "Today", Value: today},
			{Label: "Tomorrow", Value: today.AddDate(0, 0, 1)},
			{Label: "In a week", Value: today.AddDate(0, 0, 7)},
			{Label: "In a month", Value: today.AddDate(0, 1, 0)},
		}
	}
	return []models.DatePreset{
		{Label: "Today", Value: today},
		{Label: "Yesterday", Value: today.AddDate(0, 0, -1)},
		{Label: "A week ago", Value: today.AddDate(0, 0, -7)},
		{Label: "A month ago", Value: today.AddDate(0, -1, 0)},
	}
}

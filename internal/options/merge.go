package options

import (
	"github.com/samber/lo"

	"github.com/rebeliceyang/lazyfilter/internal/models"
)

// MergeSelected lists the selected options first, followed by the results
// that are not already selected. Options are compared by valueKey.
func MergeSelected(selected, results []models.Option, valueKey string) []models.Option {
	key := func(o models.Option) string {
		v, _ := o.Field(valueKey)
		return v
	}

	seen := make(map[string]struct{}, len(selected))
	merged := make([]models.Option, 0, len(selected)+len(results))
	for _, o := range selected {
		seen[key(o)] = struct{}{}
		merged = append(merged, o)
	}

	rest := lo.Filter(results, func(o models.Option, _ int) bool {
		_, dup := seen[key(o)]
		return !dup
	})
	return append(merged, lo.UniqBy(rest, key)...)
}

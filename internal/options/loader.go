package options

import (
	"context"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/rebeliceyang/lazyfilter/internal/filter"
	"github.com/rebeliceyang/lazyfilter/internal/models"
)

// DefaultLimit caps how many options a loader returns per query
const DefaultLimit = 50

// Loader fetches the options matching a search query
type Loader interface {
	Load(ctx context.Context, query string) ([]models.Option, error)
}

// LoaderFunc adapts a function to the Loader interface
type LoaderFunc func(ctx context.Context, query string) ([]models.Option, error)

// Load calls f
func (f LoaderFunc) Load(ctx context.Context, query string) ([]models.Option, error) {
	return f(ctx, query)
}

// StaticLoader searches an in-memory option list by label
type StaticLoader struct {
	Options  []models.Option
	LabelKey string
	Limit    int
}

// Load returns the options whose label contains query, ignoring case
func (l StaticLoader) Load(ctx context.Context, query string) ([]models.Option, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	labelKey := l.LabelKey
	if labelKey == "" {
		labelKey = "label"
	}
	q := strings.ToLower(strings.TrimSpace(query))

	found := lo.Filter(l.Options, func(o models.Option, _ int) bool {
		label, ok := o.Field(labelKey)
		return ok && strings.Contains(strings.ToLower(label), q)
	})
	return limit(found, l.Limit), nil
}

// EnumLoader offers enum values as options labelled in start case
func EnumLoader(values []string) StaticLoader {
	return StaticLoader{
		Options: lo.Map(values, func(v string, _ int) models.Option {
			return models.Option{"label": filter.StartCase(v), "value": v}
		}),
	}
}

func limit(opts []models.Option, n int) []models.Option {
	if n <= 0 {
		n = DefaultLimit
	}
	if len(opts) > n {
		return opts[:n]
	}
	return opts
}

// Registry maps loader names referenced by async columns to loaders
type Registry struct {
	loaders map[string]Loader
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{loaders: make(map[string]Loader)}
}

// Register adds or replaces a named loader
func (r *Registry) Register(name string, l Loader) {
	r.loaders[name] = l
}

// Get returns a named loader
func (r *Registry) Get(name string) (Loader, bool) {
	l, ok := r.loaders[name]
	return l, ok
}

// Names returns the registered names in order
func (r *Registry) Names() []string {
	names := lo.Keys(r.loaders)
	sort.Strings(names)
	return names
}

// ForProps returns the loader serving a column's options. Enum and object
// columns search their inline options; async columns use the named loader.
func (r *Registry) ForProps(props models.ColumnProps) (Loader, bool) {
	switch p := props.(type) {
	case models.EnumProps:
		return EnumLoader(p.Options), true
	case models.ObjectProps:
		labelKey, _ := models.OptionKeys(p)
		return StaticLoader{Options: p.Options, LabelKey: labelKey}, true
	case models.AsyncListProps:
		return r.Get(p.LoadOptionsOf)
	default:
		return nil, false
	}
}

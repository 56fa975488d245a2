// Package dataset loads the columns and records a filter page works on.
package dataset

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/rebeliceyang/lazyfilter/internal/models"
)

//go:embed demo.yaml
var demoYAML []byte

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Format is the encoding of a dataset file
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Dataset is a titled list of records with the columns they can be filtered on
type Dataset struct {
	Title   string
	Columns []models.Column
	Records []models.Record
}

// FormatOf picks the format from a file extension, defaulting to YAML
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Load reads a dataset file
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read dataset")
	}

	ds, err := Parse(data, FormatOf(path))
	if err != nil {
		return nil, errors.Wrapf(err, "dataset %s", path)
	}
	if ds.Title == "" {
		ds.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return ds, nil
}

// Parse decodes a dataset
func Parse(data []byte, format Format) (*Dataset, error) {
	var spec fileSpec

	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &spec); err != nil {
			return nil, errors.Wrap(err, "invalid JSON")
		}
	default:
		if err := yaml.Unmarshal(data, &spec); err != nil {
			return nil, errors.Wrap(err, "invalid YAML")
		}
	}

	return spec.toDataset()
}

// Demo returns the built-in issue tracker dataset
func Demo() (*Dataset, error) {
	return Parse(demoYAML, FormatYAML)
}

// Column finds a column by key
func (d *Dataset) Column(key string) (models.Column, bool) {
	for _, c := range d.Columns {
		if c.Key == key {
			return c, true
		}
	}
	return models.Column{}, false
}

// FieldOptions collects the distinct values of a column across the records
// as option records, in first-seen order. Async columns without a configured
// source search these.
func (d *Dataset) FieldOptions(col models.Column) []models.Option {
	labelKey, valueKey := models.OptionKeys(col.Props)

	var opts []models.Option
	seen := make(map[string]struct{})
	add := func(o models.Option) {
		v, ok := o.Field(valueKey)
		if !ok {
			return
		}
		if _, dup := seen[v]; dup {
			return
		}
		seen[v] = struct{}{}
		opts = append(opts, o)
	}

	for _, r := range d.Records {
		items, ok := r[col.Key].([]any)
		if !ok {
			items = []any{r[col.Key]}
		}
		for _, item := range items {
			switch v := item.(type) {
			case nil:
			case map[string]any:
				add(models.Option(v))
			default:
				s := cast.ToString(v)
				if s != "" {
					add(models.Option{labelKey: s, valueKey: s})
				}
			}
		}
	}
	return opts
}

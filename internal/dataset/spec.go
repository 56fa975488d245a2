package dataset

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/rebeliceyang/lazyfilter/internal/models"
)

// columnSpec is how a column is written in a dataset file
type columnSpec struct {
	Key      string `yaml:"key" json:"key"`
	Label    string `yaml:"label" json:"label"`
	Icon     string `yaml:"icon" json:"icon"`
	Type     string `yaml:"type" json:"type"`
	IsUnique *bool  `yaml:"unique" json:"unique"`

	// number
	Scale float64 `yaml:"scale" json:"scale"`

	// boolean
	TrueLabel  string `yaml:"true_label" json:"true_label"`
	FalseLabel string `yaml:"false_label" json:"false_label"`

	// date
	Timestamp bool   `yaml:"timestamp" json:"timestamp"`
	Presets   string `yaml:"presets" json:"presets"`

	// enum, object, async_list
	Options            []any  `yaml:"options" json:"options"`
	LabelKey           string `yaml:"label_key" json:"label_key"`
	ValueKey           string `yaml:"value_key" json:"value_key"`
	LoadOptionsOf      string `yaml:"load_options_of" json:"load_options_of"`
	NegativeConditions bool   `yaml:"negative_conditions" json:"negative_conditions"`

	// custom
	Conditions []conditionSpec `yaml:"conditions" json:"conditions"`
}

// conditionSpec is one delegate of a custom column
type conditionSpec struct {
	Label     string     `yaml:"label" json:"label"`
	Value     string     `yaml:"value" json:"value"`
	Condition string     `yaml:"condition" json:"condition"`
	Column    columnSpec `yaml:"column" json:"column"`
}

// fileSpec is the top level of a dataset file
type fileSpec struct {
	Title   string           `yaml:"title" json:"title"`
	Columns []columnSpec     `yaml:"columns" json:"columns"`
	Records []map[string]any `yaml:"records" json:"records"`
}

func (s columnSpec) toColumn() (models.Column, error) {
	if s.Key == "" {
		return models.Column{}, errors.New("column without key")
	}
	props, err := s.props()
	if err != nil {
		return models.Column{}, errors.Wrapf(err, "column %s", s.Key)
	}

	label := s.Label
	if label == "" {
		label = s.Key
	}
	return models.Column{
		Key:      s.Key,
		Label:    label,
		Icon:     s.Icon,
		IsUnique: s.IsUnique,
		Props:    props,
	}, nil
}

func (s columnSpec) props() (models.ColumnProps, error) {
	switch models.DataType(s.Type) {
	case models.DataTypeString:
		return models.StringProps{}, nil

	case models.DataTypeNumber:
		p := models.NumberProps{}
		if scale := s.Scale; scale != 0 && scale != 1 {
			p.Transform = func(v float64) float64 { return v / scale }
			p.ReverseTransform = func(v float64) float64 { return v * scale }
		}
		return p, nil

	case models.DataTypeBoolean:
		return models.BooleanProps{DisplayLabels: models.BooleanLabels{True: s.TrueLabel, False: s.FalseLabel}}, nil

	case models.DataTypeDate:
		return models.DateProps{IsTimestamp: s.Timestamp, PresetsType: models.PresetsType(s.Presets)}, nil

	case models.DataTypeEnum:
		values, err := s.enumOptions()
		if err != nil {
			return nil, err
		}
		return models.EnumProps{Options: values, EnableNegativeConditions: s.NegativeConditions}, nil

	case models.DataTypeObject:
		opts, err := s.objectOptions()
		if err != nil {
			return nil, err
		}
		return models.ObjectProps{
			Options:                  opts,
			LabelKey:                 s.LabelKey,
			ValueKey:                 s.ValueKey,
			EnableNegativeConditions: s.NegativeConditions,
		}, nil

	case models.DataTypeAsyncList:
		if s.LoadOptionsOf == "" {
			return nil, errors.New("async_list needs load_options_of")
		}
		return models.AsyncListProps{
			LoadOptionsOf:            s.LoadOptionsOf,
			LabelKey:                 s.LabelKey,
			ValueKey:                 s.ValueKey,
			EnableNegativeConditions: s.NegativeConditions,
		}, nil

	case models.DataTypeCustom:
		conds := make([]models.CustomCondition, 0, len(s.Conditions))
		for _, c := range s.Conditions {
			if c.Column.Type == string(models.DataTypeCustom) {
				return nil, errors.Errorf("custom condition %q cannot be custom", c.Label)
			}
			props, err := c.Column.props()
			if err != nil {
				return nil, errors.Wrapf(err, "custom condition %q", c.Label)
			}
			conds = append(conds, models.CustomCondition{
				Label:     c.Label,
				Value:     c.Value,
				Condition: models.Condition(c.Condition),
				Props:     props,
			})
		}
		return models.CustomProps{Conditions: conds}, nil

	case "":
		return nil, errors.New("missing type")

	default:
		return nil, errors.Errorf("unknown type %q", s.Type)
	}
}

func (s columnSpec) enumOptions() ([]string, error) {
	values := make([]string, 0, len(s.Options))
	for _, o := range s.Options {
		v, ok := o.(string)
		if !ok {
			return nil, errors.Errorf("enum option %v is not a string", o)
		}
		values = append(values, v)
	}
	return values, nil
}

func (s columnSpec) objectOptions() ([]models.Option, error) {
	opts := make([]models.Option, 0, len(s.Options))
	for _, o := range s.Options {
		m, ok := o.(map[string]any)
		if !ok {
			return nil, errors.Errorf("object option %v is not a mapping", o)
		}
		opts = append(opts, models.Option(m))
	}
	return opts, nil
}

func (f fileSpec) toDataset() (*Dataset, error) {
	columns := make([]models.Column, 0, len(f.Columns))
	for _, s := range f.Columns {
		col, err := s.toColumn()
		if err != nil {
			return nil, err
		}
		columns = append(columns, col)
	}

	if dups := lo.FindDuplicatesBy(columns, func(c models.Column) string { return c.Key }); len(dups) > 0 {
		return nil, errors.Errorf("duplicate column %s", dups[0].Key)
	}

	return &Dataset{
		Title:   f.Title,
		Columns: columns,
		Records: lo.Map(f.Records, func(r map[string]any, _ int) models.Record {
			return models.Record(r)
		}),
	}, nil
}

package filter

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rebeliceyang/lazyfilter/internal/models"
)

func values(opts []models.ConditionOption) []string {
	return lo.Map(opts, func(o models.ConditionOption, _ int) string { return o.Value })
}

func TestConditionsForType(t *testing.T) {
	tests := []struct {
		dt   models.DataType
		want []string
	}{
		{models.DataTypeString, []string{"contains"}},
		{models.DataTypeNumber, []string{"=", "!=", ">", ">=", "<", "<="}},
		{models.DataTypeDate, []string{"is", "is after", "is on or after", "is before", "is on or before"}},
		{models.DataTypeBoolean, []string{"is"}},
		{models.DataTypeEnum, []string{"is", "is not", "is any of", "is not any of"}},
		{models.DataTypeObject, []string{"is", "is not", "is any of", "is not any of"}},
		{models.DataTypeAsyncList, []string{"is", "is not", "is any of", "is not any of"}},
		{models.DataType("geo"), nil},
		{models.DataType(""), nil},
	}

	for _, tt := range tests {
		t.Run(string(tt.dt), func(t *testing.T) {
			got := ConditionsForType(tt.dt, nil)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, values(got))
		})
	}
}

func TestConditionsForTypeCustom(t *testing.T) {
	props := emailColumn.Props.(models.CustomProps)
	got := ConditionsForType(models.DataTypeCustom, props.Conditions)
	assert.Equal(t, []models.ConditionOption{
		{Label: "Contains", Value: "contains"},
		{Label: "Is Empty", Value: "is empty"},
	}, got)

	assert.Empty(t, ConditionsForType(models.DataTypeCustom, nil))
}

func TestConditionLabels(t *testing.T) {
	got := ConditionsForType(models.DataTypeNumber, nil)
	assert.Equal(t, []string{
		"Equals", "Not Equals", "Greater Than", "Greater Than Or Equal", "Less Than", "Less Than Or Equal",
	}, lo.Map(got, func(o models.ConditionOption, _ int) string { return o.Label }))

	assert.Equal(t, "Is Not Any Of", ConditionLabel(models.CondIsNotAnyOf))
	assert.Equal(t, "Is On Or Before", ConditionLabel(models.CondIsOnOrBefore))
	assert.Equal(t, "weird", ConditionLabel("weird"))
}

func TestStartCase(t *testing.T) {
	assert.Equal(t, "In Progress", StartCase("in_progress"))
	assert.Equal(t, "Is Any Of", StartCase("IS_ANY_OF"))
	assert.Equal(t, "Success", StartCase("success"))
	assert.Equal(t, "", StartCase(""))
}

func TestConditionsForColumn(t *testing.T) {
	t.Run("membership without negatives has no menu", func(t *testing.T) {
		assert.Empty(t, ConditionsForColumn(statusColumn, 0))
		assert.Empty(t, ConditionsForColumn(statusColumn, 3))
	})

	t.Run("membership with negatives follows selection count", func(t *testing.T) {
		for _, col := range []models.Column{priorityColumn, assigneeColumn} {
			assert.Equal(t, []string{"is", "is not"}, values(ConditionsForColumn(col, 0)))
			assert.Equal(t, []string{"is", "is not"}, values(ConditionsForColumn(col, 1)))
			assert.Equal(t, []string{"is any of", "is not any of"}, values(ConditionsForColumn(col, 2)))
			assert.Equal(t, []string{"is any of", "is not any of"}, values(ConditionsForColumn(col, 5)))
		}
	})

	t.Run("other types use the type menu", func(t *testing.T) {
		assert.Equal(t, []string{"contains"}, values(ConditionsForColumn(titleColumn, 0)))
		assert.Len(t, ConditionsForColumn(numberColumn, 0), 6)
		assert.Equal(t, []string{"contains", "is empty"}, values(ConditionsForColumn(emailColumn, 0)))
	})

	t.Run("missing props yields nothing", func(t *testing.T) {
		assert.Empty(t, ConditionsForColumn(bareColumn, 0))
	})
}

func TestConditionStep(t *testing.T) {
	tests := []struct {
		col      models.Column
		step     bool
		implicit models.Condition
	}{
		{titleColumn, false, models.CondContains},
		{doneColumn, false, models.CondIs},
		{statusColumn, false, models.CondIs},
		{teamColumn, false, models.CondIs},
		{priorityColumn, true, models.CondIs},
		{numberColumn, true, ""},
		{createdColumn, true, ""},
		{emailColumn, true, ""},
		{bareColumn, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.col.Key, func(t *testing.T) {
			assert.Equal(t, tt.step, ShowsConditionStep(tt.col))
			assert.Equal(t, tt.implicit, ImplicitCondition(tt.col))
		})
	}
}

func TestResolveCardinality(t *testing.T) {
	tests := []struct {
		cond  models.Condition
		count int
		want  models.Condition
	}{
		{models.CondIs, 1, models.CondIs},
		{models.CondIs, 2, models.CondIsAnyOf},
		{models.CondIsAnyOf, 1, models.CondIs},
		{models.CondIsAnyOf, 4, models.CondIsAnyOf},
		{models.CondIsNot, 1, models.CondIsNot},
		{models.CondIsNot, 3, models.CondIsNotAnyOf},
		{models.CondIsNotAnyOf, 1, models.CondIsNot},
		{models.CondIsNotAnyOf, 0, models.CondIsNotAnyOf},
		{"", 2, models.CondIsAnyOf},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolveCardinality(tt.cond, tt.count), "%q with %d values", tt.cond, tt.count)
	}
}

func TestIsUnique(t *testing.T) {
	assert.True(t, IsUnique(statusColumn))
	assert.True(t, IsUnique(doneColumn))
	assert.True(t, IsUnique(assigneeColumn))
	assert.True(t, IsUnique(teamColumn))
	assert.False(t, IsUnique(labelsColumn))
	assert.False(t, IsUnique(titleColumn))
	assert.False(t, IsUnique(numberColumn))

	explicit := titleColumn
	explicit.IsUnique = boolPtr(true)
	assert.True(t, IsUnique(explicit))
}

func TestAvailableColumns(t *testing.T) {
	committed := []models.ActiveFilter{
		active(statusColumn, models.CondIs, models.ListValue{"success"}),
		active(titleColumn, models.CondContains, models.TextValue("a")),
		active(labelsColumn, models.CondIs, models.ListValue{"bug"}),
	}

	got := AvailableColumns(allColumns, committed)
	keys := lo.Map(got, func(c models.Column, _ int) string { return c.Key })

	assert.NotContains(t, keys, "status")
	assert.Contains(t, keys, "title")
	assert.Contains(t, keys, "labels")
	require.Len(t, got, len(allColumns)-1)
	assert.Equal(t, "title", keys[0], "order is preserved")
}

func TestAvailableColumnsReadmitsAfterRemoval(t *testing.T) {
	keys := func(cols []models.Column) []string {
		return lo.Map(cols, func(c models.Column, _ int) string { return c.Key })
	}

	committed := []models.ActiveFilter{active(doneColumn, models.CondIs, models.BoolValue(true))}
	assert.NotContains(t, keys(AvailableColumns(allColumns, committed)), "done")
	assert.Contains(t, keys(AvailableColumns(allColumns, nil)), "done")
}

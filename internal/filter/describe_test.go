package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rebeliceyang/lazyfilter/internal/models"
)

func TestDescribe(t *testing.T) {
	withMeta := active(assigneeColumn, models.CondIsAnyOf, models.ListValue{"u1", "u9"})
	withMeta.SelectedValue.MetaData = []models.Option{{"id": "u1", "name": "Ada Lovelace"}}

	props := emailColumn.Props.(models.CustomProps)
	custom := models.ActiveFilter{
		Column:            emailColumn,
		DataType:          models.DataTypeCustom,
		SubDataType:       models.DataTypeBoolean,
		SubCondition:      &props.Conditions[1],
		SelectedCondition: "is empty",
		SelectedValue:     &models.FilterValue{Value: models.BoolValue(true)},
	}

	tests := []struct {
		name   string
		filter models.ActiveFilter
		want   string
	}{
		{"text", active(titleColumn, models.CondContains, models.TextValue("acme")), "Title | contains | acme"},
		{"number display", active(percentColumn, models.CondGreaterThan, models.NumberValue(0.5)), "Rate | > | 50"},
		{"boolean labels", active(doneColumn, models.CondIs, models.BoolValue(true)), "Done | is | Closed"},
		{"date", active(createdColumn, models.CondIsBefore, day("2024-03-15T00:00:00")), "Created | is before | Mar 15, 2024"},
		{"timestamp", active(updatedColumn, models.CondIs, day("2024-03-15T10:30:00")), "Updated | is | Mar 15, 2024 10:30:00"},
		{"enum", active(statusColumn, models.CondIsAnyOf, models.ListValue{"in_progress", "success"}), "Status | is any of | In Progress, Success"},
		{"object labels", withMeta, "Assignee | is any of | Ada Lovelace, u9"},
		{"custom", custom, "Email | Is Empty | True"},
		{"draft", models.ActiveFilter{Column: numberColumn}, "Number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Describe(tt.filter).String())
		})
	}
}

func TestSummary(t *testing.T) {
	filters := []models.ActiveFilter{
		active(titleColumn, models.CondContains, models.TextValue("acme")),
		{Column: numberColumn},
		active(numberColumn, models.CondLessOrEqual, models.NumberValue(3)),
	}
	assert.Equal(t, "Title | contains | acme and Number | <= | 3", Summary(filters))
	assert.Equal(t, "", Summary(nil))
}

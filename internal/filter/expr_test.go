package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rebeliceyang/lazyfilter/internal/models"
)

func TestParseExpr(t *testing.T) {
	tests := []struct {
		input string
		want  Clause
	}{
		{"n > 4", Clause{"n", models.CondGreaterThan, []string{"4"}}},
		{"n>=4", Clause{"n", models.CondGreaterOrEqual, []string{"4"}}},
		{"n != -2.5", Clause{"n", models.CondNotEqual, []string{"-2.5"}}},
		{`title contains "acme corp"`, Clause{"title", models.CondContains, []string{"acme corp"}}},
		{"title contains acme corp", Clause{"title", models.CondContains, []string{"acme corp"}}},
		{"priority is any of high, urgent", Clause{"priority", models.CondIsAnyOf, []string{"high", "urgent"}}},
		{"priority IS  NOT  ANY OF low", Clause{"priority", models.CondIsNotAnyOf, []string{"low"}}},
		{"status is in_progress", Clause{"status", models.CondIs, []string{"in_progress"}}},
		{"createdAt is on or before 2024-03-15", Clause{"createdAt", models.CondIsOnOrBefore, []string{"2024-03-15"}}},
		{"issue is done", Clause{"issue", models.CondIs, []string{"done"}}},
		{"assignee.id is u1", Clause{"assignee.id", models.CondIs, []string{"u1"}}},
		{`email "is empty" true`, Clause{"email", models.Condition("is empty"), []string{"true"}}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseExpr(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseExprErrors(t *testing.T) {
	for _, input := range []string{"", "   ", "title", "title contains", "> 4", "n >> 4"} {
		_, err := ParseExpr(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestParseExprOperatorWordInValue(t *testing.T) {
	_, err := ParseExpr("title contains this is it")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `quote values`)
	assert.Contains(t, err.Error(), `title contains "this is it"`)

	got, err := ParseExpr(`title contains "this is it"`)
	require.NoError(t, err)
	assert.Equal(t, Clause{"title", models.CondContains, []string{"this is it"}}, got)
}

func TestFormatExprRoundTrip(t *testing.T) {
	custom := active(emailColumn, "is empty", models.BoolValue(true))
	custom.SubCondition = &emailColumn.Props.(models.CustomProps).Conditions[1]
	custom.SubDataType = models.DataTypeBoolean

	filters := []models.ActiveFilter{
		active(titleColumn, models.CondContains, models.TextValue(`say "hi", then go`)),
		active(percentColumn, models.CondGreaterOrEqual, models.NumberValue(0.25)),
		active(doneColumn, models.CondIs, models.BoolValue(false)),
		active(createdColumn, models.CondIsAfter, day("2024-03-15T23:59:59")),
		active(updatedColumn, models.CondIsBefore, day("2024-03-15T10:30:00")),
		active(priorityColumn, models.CondIsNotAnyOf, models.ListValue{"low", "high"}),
		active(assigneeColumn, models.CondIs, models.ListValue{"u1"}),
		custom,
	}

	for _, want := range filters {
		expr := FormatExpr(want)
		t.Run(expr, func(t *testing.T) {
			cl, err := ParseExpr(expr)
			require.NoError(t, err)

			c := NewController(allColumns)
			require.NoError(t, c.ApplyClause(cl))

			got := c.Filters()[0]
			assert.Equal(t, want.SelectedCondition, got.SelectedCondition)
			assert.Equal(t, want.SelectedValue.Value, got.SelectedValue.Value)
		})
	}
}

func TestFormatExprs(t *testing.T) {
	filters := []models.ActiveFilter{
		active(statusColumn, models.CondIs, models.ListValue{"in_progress"}),
		{ID: "draft", Column: titleColumn, DataType: models.DataTypeString},
		active(numberColumn, models.CondLessThan, models.NumberValue(4)),
	}

	assert.Equal(t, []string{"status is in_progress", "n < 4"}, FormatExprs(filters))
}

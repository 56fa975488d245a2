package filter

import (
	"strconv"
	"time"

	"github.com/rebeliceyang/lazyfilter/internal/models"
)

func boolPtr(b bool) *bool { return &b }

var (
	titleColumn = models.Column{Key: "title", Label: "Title", Props: models.StringProps{}}

	numberColumn = models.Column{Key: "n", Label: "Number", Props: models.NumberProps{}}

	percentColumn = models.Column{
		Key:   "rate",
		Label: "Rate",
		Props: models.NumberProps{
			Transform:        func(v float64) float64 { return v / 100 },
			ReverseTransform: func(v float64) float64 { return v * 100 },
		},
	}

	doneColumn = models.Column{
		Key:   "done",
		Label: "Done",
		Props: models.BooleanProps{DisplayLabels: models.BooleanLabels{True: "Closed", False: "Open"}},
	}

	createdColumn = models.Column{Key: "createdAt", Label: "Created", Props: models.DateProps{}}

	updatedColumn = models.Column{Key: "updatedAt", Label: "Updated", Props: models.DateProps{IsTimestamp: true}}

	statusColumn = models.Column{
		Key:   "status",
		Label: "Status",
		Props: models.EnumProps{Options: []string{"in_progress", "success"}},
	}

	priorityColumn = models.Column{
		Key:   "priority",
		Label: "Priority",
		Props: models.EnumProps{Options: []string{"low", "high", "urgent"}, EnableNegativeConditions: true},
	}

	labelsColumn = models.Column{
		Key:      "labels",
		Label:    "Labels",
		IsUnique: boolPtr(false),
		Props:    models.EnumProps{Options: []string{"bug", "feature", "docs"}},
	}

	assigneeColumn = models.Column{
		Key:   "assignee",
		Label: "Assignee",
		Props: models.ObjectProps{
			Options: []models.Option{
				{"name": "Ada Lovelace", "id": "u1"},
				{"name": "Alan Turing", "id": "u2"},
			},
			LabelKey:                 "name",
			ValueKey:                 "id",
			EnableNegativeConditions: true,
		},
	}

	teamColumn = models.Column{
		Key:   "team",
		Label: "Team",
		Props: models.AsyncListProps{LoadOptionsOf: "teams"},
	}

	emailColumn = models.Column{
		Key:   "email",
		Label: "Email",
		Props: models.CustomProps{Conditions: []models.CustomCondition{
			{Label: "Contains", Value: "contains", Props: models.StringProps{}},
			{Label: "Is Empty", Value: "is empty", Condition: models.CondIs, Props: models.BooleanProps{}},
		}},
	}

	bareColumn = models.Column{Key: "bare", Label: "Bare"}

	allColumns = []models.Column{
		titleColumn, numberColumn, percentColumn, doneColumn, createdColumn, updatedColumn,
		statusColumn, priorityColumn, labelsColumn, assigneeColumn, teamColumn, emailColumn,
	}
)

func active(col models.Column, cond models.Condition, v models.Value) models.ActiveFilter {
	return models.ActiveFilter{
		ID:                col.Key + "-" + string(cond),
		Column:            col,
		DataType:          col.DataType(),
		SelectedCondition: cond,
		SelectedValue:     &models.FilterValue{Value: v},
	}
}

func day(s string) models.DateValue {
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return models.DateValue(t)
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return "f" + strconv.Itoa(n)
	}
}

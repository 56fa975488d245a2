package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/rebeliceyang/lazyfilter/internal/filter"
	"github.com/rebeliceyang/lazyfilter/internal/models"
)

var columnsCmd = &cobra.Command{
	Use:   "columns",
	Short: "List the filterable columns and their conditions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := loadDataset(loadConfig())
		if err != nil {
			return err
		}
		return writeColumns(cmd.OutOrStdout(), data.Columns)
	},
}

func writeColumns(w io.Writer, columns []models.Column) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "KEY\tLABEL\tTYPE\tUNIQUE\tCONDITIONS")
	for _, c := range columns {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%s\n",
			c.Key, c.Label, c.DataType(), filter.IsUnique(c), strings.Join(conditionNames(c), ", "))
	}
	return tw.Flush()
}

// conditionNames lists what can be written after the column in an expression
func conditionNames(c models.Column) []string {
	if !filter.ShowsConditionStep(c) {
		implicit := filter.ImplicitCondition(c)
		if c.DataType().IsMembership() {
			return []string{string(implicit), string(models.CondIsAnyOf)}
		}
		return []string{string(implicit)}
	}
	if c.DataType().IsMembership() {
		return lo.Map(filter.ConditionsForType(c.DataType(), nil), func(o models.ConditionOption, _ int) string {
			return o.Value
		})
	}

	var custom []models.CustomCondition
	if p, ok := c.Props.(models.CustomProps); ok {
		custom = p.Conditions
	}
	return lo.Map(filter.ConditionsForType(c.DataType(), custom), func(o models.ConditionOption, _ int) string {
		return o.Value
	})
}

package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/rebeliceyang/lazyfilter/internal/dataset"
	"github.com/rebeliceyang/lazyfilter/internal/export"
	"github.com/rebeliceyang/lazyfilter/internal/filter"
	"github.com/rebeliceyang/lazyfilter/internal/models"
)

var (
	listWhere   []string
	listOutput  string
	listOutFile string
	listStrict  bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the records matching filter expressions",
	Long: `Apply one or more filter expressions to the dataset and print the matching
records. Every --where expression must match (filters are joined with AND).

Values that contain operator words or symbols ("is", "contains", "<", ...) must be
double-quoted:

  lazyfilter list -w 'title contains "this is it"'`,
	Args: cobra.NoArgs,
	Example: `  lazyfilter list -w 'status is any of todo, in_progress'
  lazyfilter list -w 'priority is not low' -w 'createdAt is on or after 2024-03-01' -o json
  lazyfilter list -d issues.yaml -w 'title contains login' -o csv --out-file login.csv`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringArrayVarP(&listWhere, "where", "w", nil, "Filter expression: column condition value[, value...]; quote values containing operators (repeatable)")
	listCmd.Flags().StringVarP(&listOutput, "output", "o", "text", "Output format: text, json or csv")
	listCmd.Flags().StringVar(&listOutFile, "out-file", "", "Write json or csv output to a file instead of stdout")
	listCmd.Flags().BoolVar(&listStrict, "strict", false, "Conditions a column type does not define match nothing")
}

func runList(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	data, err := loadDataset(cfg)
	if err != nil {
		return err
	}

	filters, err := buildFilters(data.Columns, listWhere)
	if err != nil {
		return err
	}
	ev := filter.Evaluator{Strict: listStrict || cfg.Filter.StrictConditions}
	matched := ev.Apply(data.Records, filters)

	if summary := filter.Summary(filters); summary != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d records match %s\n", len(matched), len(data.Records), summary)
	}

	if listOutFile != "" {
		if listOutput == "text" {
			return fmt.Errorf("--out-file needs --output json or csv")
		}
		return export.ToFile(listOutFile, export.Format(listOutput), data.Columns, matched)
	}
	return writeList(cmd.OutOrStdout(), listOutput, data.Columns, matched)
}

// buildFilters commits one filter per expression through a controller, so
// expressions get the same checks as filters built interactively
func buildFilters(columns []models.Column, exprs []string) ([]models.ActiveFilter, error) {
	ctrl := filter.NewController(columns)
	for _, expr := range exprs {
		cl, err := filter.ParseExpr(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid filter %q: %w", expr, err)
		}
		if err := ctrl.ApplyClause(cl); err != nil {
			return nil, fmt.Errorf("invalid filter %q: %w", expr, err)
		}
	}
	return ctrl.Filters(), nil
}

func writeList(w io.Writer, format string, columns []models.Column, records []models.Record) error {
	switch format {
	case "text":
		tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
		headers := lo.Map(columns, func(c models.Column, _ int) string {
			return strings.ToUpper(c.Key)
		})
		fmt.Fprintln(tw, strings.Join(headers, "\t"))
		for _, r := range records {
			cells := lo.Map(columns, func(c models.Column, _ int) string {
				return dataset.Cell(r, c)
			})
			fmt.Fprintln(tw, strings.Join(cells, "\t"))
		}
		return tw.Flush()
	case string(export.FormatJSON), string(export.FormatCSV):
		return export.Write(w, export.Format(format), columns, records)
	default:
		return fmt.Errorf("unknown output format %q (want text, json or csv)", format)
	}
}


package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/rebeliceyang/lazyfilter/internal/models"
)

// clauseExpr is the root of the grammar: column operator value[, value...]
type clauseExpr struct {
	Column   string       `parser:"@(Word | String)"`
	Operator string       `parser:"@(Operator | String)"`
	Values   []*valueExpr `parser:"@@ ( ',' @@ )*"`
}

// valueExpr is one value; unquoted words are joined with single spaces
type valueExpr struct {
	Parts []string `parser:"( @String | @Word )+"`
}

// Operator must come before Word so "is" is not read as a value.
// Word boundaries keep columns like "issue" whole.
var exprLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Comma", Pattern: `,`},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "Operator", Pattern: `(?i)\b(?:is\s+not\s+any\s+of|is\s+any\s+of|is\s+on\s+or\s+after|is\s+on\s+or\s+before|is\s+after|is\s+before|is\s+not|is|contains)\b|>=|<=|!=|=|>|<`},
	{Name: "Word", Pattern: `[^\s,"=<>!]+`},
})

var exprParser = participle.MustBuild[clauseExpr](
	participle.Lexer(exprLexer),
	participle.Unquote("String"),
	participle.Elide("Whitespace"),
)

// Clause is a parsed textual filter such as `priority is any of high, urgent`.
// Condition holds the operator as written, lower-cased; for custom columns it
// may also name a custom condition.
type Clause struct {
	Column    string
	Condition models.Condition
	Values    []string
}

// ParseExpr parses a textual filter expression
func ParseExpr(expr string) (Clause, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Clause{}, fmt.Errorf("empty filter expression")
	}

	ast, err := exprParser.ParseString("", expr)
	if err != nil {
		return Clause{}, fmt.Errorf("invalid filter %q: %w (quote values that contain operator words or symbols, e.g. title contains \"this is it\")", expr, err)
	}

	values := make([]string, 0, len(ast.Values))
	for _, v := range ast.Values {
		values = append(values, strings.Join(v.Parts, " "))
	}

	return Clause{
		Column:    ast.Column,
		Condition: models.Condition(strings.Join(strings.Fields(strings.ToLower(ast.Operator)), " ")),
		Values:    values,
	}, nil
}

// bareWord matches text the lexer reads back as a single Word
var bareWord = regexp.MustCompile(`^[^\s,"=<>!]+$`)

// quoteIfNeeded leaves plain words alone and quotes anything else
func quoteIfNeeded(s string) string {
	if bareWord.MatchString(s) && !isOperator(s) {
		return s
	}
	return strconv.Quote(s)
}

func isOperator(s string) bool {
	for _, tok := range lexOperators {
		if strings.EqualFold(s, tok) {
			return true
		}
	}
	return false
}

var lexOperators = []string{"is", "contains"}

// FormatExpr renders an active filter as an expression ParseExpr reads back
// into the same filter. Inactive filters render as the empty string.
func FormatExpr(f models.ActiveFilter) string {
	if !f.IsActive() {
		return ""
	}

	cond := string(f.SelectedCondition)
	if f.DataType == models.DataTypeCustom && f.SubCondition != nil {
		cond = strconv.Quote(f.SubCondition.Value)
	}

	parts := []string{quoteIfNeeded(f.Column.Key), cond, formatValue(f.EffectiveProps(), f.SelectedValue.Value)}
	return strings.Join(parts, " ")
}

// FormatExprs renders every active filter
func FormatExprs(filters []models.ActiveFilter) []string {
	out := make([]string, 0, len(filters))
	for _, f := range filters {
		if expr := FormatExpr(f); expr != "" {
			out = append(out, expr)
		}
	}
	return out
}

func formatValue(props models.ColumnProps, v models.Value) string {
	switch v := v.(type) {
	case models.TextValue:
		return strconv.Quote(string(v))
	case models.NumberValue:
		n := float64(v)
		if p, ok := props.(models.NumberProps); ok {
			n = p.Display(n)
		}
		return strconv.FormatFloat(n, 'f', -1, 64)
	case models.DateValue:
		if p, ok := props.(models.DateProps); ok && p.IsTimestamp {
			return time.Time(v).Format(models.DateLayout)
		}
		return time.Time(v).Format("2006-01-02")
	case models.ListValue:
		keys := make([]string, len(v))
		for i, k := range v {
			keys[i] = quoteIfNeeded(k)
		}
		return strings.Join(keys, ", ")
	default:
		return v.String()
	}
}

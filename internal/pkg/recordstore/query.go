package recordstore

import (
	"encoding/json"
	"fmt"
	"strings"
)

// dialect renders filter conditions for one SQL backend. Field names are
// validated against fieldNameRegex before they are inlined.
type dialect interface {
	// column selects the stored document as text.
	column() string
	placeholder(n int) string
	// eq compares the JSON value of field with a JSON-encoded parameter.
	eq(field string, param string) string
	isNull(field string) string
	text(field string) string
	number(field string) string
	orderExpr(field string, desc bool) string
}

type postgresDialect struct{}

func (postgresDialect) column() string { return "data::text" }

func (postgresDialect) placeholder(n int) string { return fmt.Sprintf("$%d", n) }

func (postgresDialect) eq(field, param string) string {
	return fmt.Sprintf("data->'%s' = (%s::text)::jsonb", field, param)
}

func (postgresDialect) isNull(field string) string {
	return fmt.Sprintf("(data->'%s' IS NULL OR data->'%s' = 'null'::jsonb)", field, field)
}

func (postgresDialect) text(field string) string { return fmt.Sprintf("data->>'%s'", field) }

func (postgresDialect) number(field string) string {
	return fmt.Sprintf("(data->>'%s')::numeric", field)
}

// orderExpr sorts JSON numbers by value and everything else as text. Missing
// values come first ascending and last descending, like the memory store.
func (postgresDialect) orderExpr(field string, desc bool) string {
	dir := "ASC NULLS FIRST"
	if desc {
		dir = "DESC NULLS LAST"
	}
	return fmt.Sprintf("CASE WHEN jsonb_typeof(data->'%s') = 'number' THEN (data->>'%s')::numeric END %s, data->>'%s' %s",
		field, field, dir, field, dir)
}

type sqliteDialect struct{}

func (sqliteDialect) column() string { return "data" }

func (sqliteDialect) placeholder(int) string { return "?" }

func (sqliteDialect) eq(field, param string) string {
	return fmt.Sprintf("json_extract(data, '$.%s') = json_extract(%s, '$')", field, param)
}

func (sqliteDialect) isNull(field string) string {
	return fmt.Sprintf("json_extract(data, '$.%s') IS NULL", field)
}

func (sqliteDialect) text(field string) string {
	return fmt.Sprintf("json_extract(data, '$.%s')", field)
}

func (sqliteDialect) number(field string) string {
	return fmt.Sprintf("json_extract(data, '$.%s')", field)
}

func (sqliteDialect) orderExpr(field string, desc bool) string {
	if desc {
		return fmt.Sprintf("json_extract(data, '$.%s') DESC", field)
	}
	return fmt.Sprintf("json_extract(data, '$.%s') ASC", field)
}

// buildSelect renders a query returning the data column of every matching
// record in collection c.
func buildSelect(d dialect, c Collection, f *Filter) (string, []any, error) {
	if err := f.validate(); err != nil {
		return "", nil, err
	}

	var sb strings.Builder
	args := []any{string(c)}
	sb.WriteString("SELECT ")
	sb.WriteString(d.column())
	sb.WriteString(" FROM records WHERE collection = ")
	sb.WriteString(d.placeholder(1))

	if f != nil {
		for _, cond := range f.Conditions {
			value := normalize(cond.Value)
			sb.WriteString(" AND ")

			if cond.Op == OpEq {
				if value == nil {
					sb.WriteString(d.isNull(cond.Field))
					continue
				}
				encoded, err := json.Marshal(value)
				if err != nil {
					return "", nil, fmt.Errorf("failed to encode filter value: %w", err)
				}
				args = append(args, string(encoded))
				sb.WriteString(d.eq(cond.Field, d.placeholder(len(args))))
				continue
			}

			operator := ">="
			if cond.Op == OpLte {
				operator = "<="
			}
			switch v := value.(type) {
			case float64:
				args = append(args, v)
				sb.WriteString(fmt.Sprintf("%s %s %s", d.number(cond.Field), operator, d.placeholder(len(args))))
			case string:
				args = append(args, v)
				sb.WriteString(fmt.Sprintf("%s %s %s", d.text(cond.Field), operator, d.placeholder(len(args))))
			default:
				return "", nil, fmt.Errorf("range filter on %q needs a string or number, got %T", cond.Field, cond.Value)
			}
		}
	}

	sb.WriteString(" ORDER BY ")
	if f != nil {
		for _, s := range f.Sorts {
			sb.WriteString(d.orderExpr(s.Field, s.Desc))
			sb.WriteString(", ")
		}
	}
	sb.WriteString("id ASC")

	if f != nil && f.Limit > 0 {
		sb.WriteString(fmt.Sprintf(" LIMIT %d", f.Limit))
	}
	return sb.String(), args, nil
}

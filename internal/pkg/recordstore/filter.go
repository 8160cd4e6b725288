package recordstore

import (
	"encoding/json"
	"reflect"
	"sort"
	"strings"
)

// Op is a comparison operator of a Condition.
type Op string

const (
	OpEq  Op = "eq"
	OpGte Op = "gte"
	OpLte Op = "lte"
)

// Condition compares one field of a record with a value. Range operators
// compare strings lexicographically (ISO dates and periods) and numbers
// numerically.
type Condition struct {
	Field string
	Op    Op
	Value any
}

// Sort orders results by one field.
type Sort struct {
	Field string
	Desc  bool
}

// Filter selects and orders records. Build one with Query.
type Filter struct {
	Conditions []Condition
	Sorts      []Sort
	Limit      int
}

// Query starts an empty filter.
func Query() *Filter {
	return &Filter{}
}

func (f *Filter) Eq(field string, value any) *Filter {
	f.Conditions = append(f.Conditions, Condition{Field: field, Op: OpEq, Value: value})
	return f
}

func (f *Filter) Gte(field string, value any) *Filter {
	f.Conditions = append(f.Conditions, Condition{Field: field, Op: OpGte, Value: value})
	return f
}

func (f *Filter) Lte(field string, value any) *Filter {
	f.Conditions = append(f.Conditions, Condition{Field: field, Op: OpLte, Value: value})
	return f
}

// Between adds an inclusive range; an empty bound is left open.
func (f *Filter) Between(field, from, to string) *Filter {
	if from != "" {
		f.Gte(field, from)
	}
	if to != "" {
		f.Lte(field, to)
	}
	return f
}

func (f *Filter) OrderBy(field string, desc bool) *Filter {
	f.Sorts = append(f.Sorts, Sort{Field: field, Desc: desc})
	return f
}

func (f *Filter) Take(n int) *Filter {
	f.Limit = n
	return f
}

func (f *Filter) validate() error {
	if f == nil {
		return nil
	}
	for _, c := range f.Conditions {
		if err := checkField(c.Field); err != nil {
			return err
		}
	}
	for _, s := range f.Sorts {
		if err := checkField(s.Field); err != nil {
			return err
		}
	}
	return nil
}

// Match reports whether rec satisfies every condition of f.
func (f *Filter) Match(rec Record) bool {
	if f == nil {
		return true
	}
	for _, c := range f.Conditions {
		got := rec[c.Field]
		want := normalize(c.Value)
		switch c.Op {
		case OpEq:
			if !reflect.DeepEqual(normalize(got), want) {
				return false
			}
		case OpGte:
			if got == nil {
				return false
			}
			cmp, ok := compareValues(got, want)
			if !ok || cmp < 0 {
				return false
			}
		case OpLte:
			if got == nil {
				return false
			}
			cmp, ok := compareValues(got, want)
			if !ok || cmp > 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// Apply filters, orders and limits records in memory.
func (f *Filter) Apply(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if f.Match(rec) {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ID() < out[j].ID()
	})
	if f != nil && len(f.Sorts) > 0 {
		sort.SliceStable(out, func(i, j int) bool {
			for _, s := range f.Sorts {
				cmp, _ := compareValues(normalize(out[i][s.Field]), normalize(out[j][s.Field]))
				if cmp == 0 {
					continue
				}
				if s.Desc {
					return cmp > 0
				}
				return cmp < 0
			}
			return false
		})
	}
	if f != nil && f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out
}

// normalize converts v into the shape it has after a JSON round trip, so
// filter values compare equal to stored values regardless of their Go type.
func normalize(v any) any {
	switch v.(type) {
	case nil, string, bool, float64:
		return v
	}
	b, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return v
	}
	return out
}

// compareValues orders nil before everything else. ok is false when the two
// values are of different kinds.
func compareValues(a, b any) (int, bool) {
	a, b = normalize(a), normalize(b)
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0, true
		case a == nil:
			return -1, true
		default:
			return 1, true
		}
	}
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(av, bv), true
	case float64:
		bv, ok := b.(float64)
		if !ok {
			return 0, false
		}
		switch {
		case av < bv:
			return -1, true
		case av > bv:
			return 1, true
		}
		return 0, true
	case bool:
		bv, ok := b.(bool)
		if !ok {
			return 0, false
		}
		switch {
		case av == bv:
			return 0, true
		case !av:
			return -1, true
		}
		return 1, true
	}
	return 0, false
}

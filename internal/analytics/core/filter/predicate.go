package filter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"blog-analytics-service/internal/analytics/core/domain"
)

// Predicate decides whether a view record passes a filter.
type Predicate interface {
	Match(r domain.ViewRecord) bool
}

type PredicateFunc func(r domain.ViewRecord) bool

func (f PredicateFunc) Match(r domain.ViewRecord) bool { return f(r) }

// MatchAll lets every record through.
var MatchAll Predicate = PredicateFunc(func(domain.ViewRecord) bool { return true })

func And(a, b Predicate) Predicate {
	return PredicateFunc(func(r domain.ViewRecord) bool { return a.Match(r) && b.Match(r) })
}

func Or(a, b Predicate) Predicate {
	return PredicateFunc(func(r domain.ViewRecord) bool { return a.Match(r) || b.Match(r) })
}

func Not(p Predicate) Predicate {
	return PredicateFunc(func(r domain.ViewRecord) bool { return !p.Match(r) })
}

// Compile parses raw and builds its predicate. An empty raw string matches
// everything. Malformed JSON, unknown fields and values that do not fit the
// field type fail with domain.ErrInvalidFilter.
func Compile(raw string) (Predicate, error) {
	if strings.TrimSpace(raw) == "" {
		return MatchAll, nil
	}
	expr, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	return CompileExpression(expr)
}

// CompileLenient is Compile for the filtering backend of the raw listing:
// an invalid filter is ignored instead of failing the request.
func CompileLenient(raw string) Predicate {
	p, err := Compile(raw)
	if err != nil {
		return MatchAll
	}
	return p
}

// CompileExpression folds the conditions left to right. "and" ANDs each
// condition in, "or" seeds with the first and ORs the rest, "not" ANDs the
// negation of each condition. Any other operator keeps no condition.
func CompileExpression(expr Expression) (Predicate, error) {
	var acc Predicate

	for _, c := range expr.Conditions {
		p, err := compileCondition(c)
		if err != nil {
			return nil, err
		}

		switch expr.Operator {
		case OpAnd:
			acc = join(acc, p, And)
		case OpOr:
			acc = join(acc, p, Or)
		case OpNot:
			acc = join(acc, Not(p), And)
		}
	}

	if acc == nil {
		return MatchAll, nil
	}
	return acc, nil
}

func join(acc, p Predicate, combine func(a, b Predicate) Predicate) Predicate {
	if acc == nil {
		return p
	}
	return combine(acc, p)
}

func compileCondition(c Condition) (Predicate, error) {
	field, ok := lookupField(c.Field)
	if !ok {
		return nil, domain.InvalidFilter("Error applying filters: unknown field %q", c.Field)
	}

	switch c.Operator {
	case "contains":
		needle := strings.ToLower(fmt.Sprint(c.Value))
		return PredicateFunc(func(r domain.ViewRecord) bool {
			v, ok := field.get(r)
			if !ok {
				return false
			}
			return strings.Contains(strings.ToLower(formatValue(v)), needle)
		}), nil

	case "in":
		items, isList := c.Value.([]any)
		if !isList {
			items = []any{c.Value}
		}
		set := make([]any, 0, len(items))
		for _, item := range items {
			v, err := coerce(field.kind, item)
			if err != nil {
				return nil, domain.InvalidFilter("Error applying filters: field %q: %v", c.Field, err)
			}
			set = append(set, v)
		}
		return PredicateFunc(func(r domain.ViewRecord) bool {
			v, ok := field.get(r)
			if !ok {
				return false
			}
			for _, want := range set {
				if compare(v, want) == 0 {
					return true
				}
			}
			return false
		}), nil
	}

	want, err := coerce(field.kind, c.Value)
	if err != nil {
		return nil, domain.InvalidFilter("Error applying filters: field %q: %v", c.Field, err)
	}
	test := comparison(c.Operator)

	return PredicateFunc(func(r domain.ViewRecord) bool {
		v, ok := field.get(r)
		if !ok {
			return false
		}
		return test(compare(v, want))
	}), nil
}

// comparison maps an operator token onto a test of compare's result.
// Unknown tokens mean equality.
func comparison(op string) func(int) bool {
	switch op {
	case "gt":
		return func(c int) bool { return c > 0 }
	case "gte":
		return func(c int) bool { return c >= 0 }
	case "lt":
		return func(c int) bool { return c < 0 }
	case "lte":
		return func(c int) bool { return c <= 0 }
	default:
		return func(c int) bool { return c == 0 }
	}
}

// compare orders two values of the same kind, as produced by the field
// accessors and coerce.
func compare(a, b any) int {
	switch x := a.(type) {
	case int64:
		y := b.(int64)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	case string:
		return strings.Compare(x, b.(string))
	case time.Time:
		return x.Compare(b.(time.Time))
	}
	return -1
}

func coerce(kind valueKind, v any) (any, error) {
	switch kind {
	case kindInt:
		switch x := v.(type) {
		case float64:
			if x != math.Trunc(x) {
				return nil, fmt.Errorf("%v is not an integer", x)
			}
			return int64(x), nil
		case string:
			n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%q is not an integer", x)
			}
			return n, nil
		}
		return nil, fmt.Errorf("%v is not an integer", v)

	case kindString:
		switch x := v.(type) {
		case string:
			return x, nil
		case float64:
			return strconv.FormatFloat(x, 'f', -1, 64), nil
		case bool:
			return strconv.FormatBool(x), nil
		}
		return nil, fmt.Errorf("%v is not a string", v)

	case kindTime:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%v is not a timestamp", v)
		}
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
		return nil, fmt.Errorf("%q is not a timestamp", s)
	}
	return nil, fmt.Errorf("unsupported field kind")
}

func formatValue(v any) string {
	switch x := v.(type) {
	case int64:
		return strconv.FormatInt(x, 10)
	case string:
		return x
	case time.Time:
		return x.UTC().Format(time.RFC3339)
	}
	return fmt.Sprint(v)
}

// Apply keeps the records matching p.
func Apply(views []domain.ViewRecord, p Predicate) []domain.ViewRecord {
	if p == nil {
		return views
	}
	out := make([]domain.ViewRecord, 0, len(views))
	for _, v := range views {
		if p.Match(v) {
			out = append(out, v)
		}
	}
	return out
}

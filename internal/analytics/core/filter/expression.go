// Package filter compiles the JSON boolean filter DSL into predicates over
// view records.
//
// A filter looks like
//
//	{"operator": "and", "conditions": [
//	    {"field": "country.name", "operator": "eq", "value": "Germany"},
//	    {"field": "blog__title", "operator": "contains", "value": "go"}
//	]}
//
// All conditions of one filter object share the top-level operator, so
// expressions such as "a AND NOT b" cannot be written.
package filter

import (
	"blog-analytics-service/internal/analytics/core/domain"

	"github.com/goccy/go-json"
)

const (
	OpAnd = "and"
	OpOr  = "or"
	OpNot = "not"
)

type Condition struct {
	Field    string
	Operator string
	Value    any
}

type Expression struct {
	Operator   string
	Conditions []Condition
}

// Parse decodes raw into an Expression. Conditions missing a field, operator
// or value are dropped here.
func Parse(raw string) (Expression, error) {
	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return Expression{}, domain.InvalidFilter("Invalid JSON format in filters: %v", err)
	}

	obj, ok := doc.(map[string]any)
	if !ok {
		return Expression{}, domain.InvalidFilter("Error applying filters: filter must be a JSON object")
	}

	expr := Expression{Operator: OpAnd}
	if op, present := obj["operator"]; present {
		// a non-string operator matches no combinator, same as an unknown one
		s, _ := op.(string)
		expr.Operator = s
	}

	rawConds, present := obj["conditions"]
	if !present || rawConds == nil {
		return expr, nil
	}
	list, ok := rawConds.([]any)
	if !ok {
		return Expression{}, domain.InvalidFilter("Error applying filters: conditions must be a list")
	}

	for i, item := range list {
		c, ok := item.(map[string]any)
		if !ok {
			return Expression{}, domain.InvalidFilter("Error applying filters: condition %d must be an object", i)
		}
		field, _ := c["field"].(string)
		op, _ := c["operator"].(string)
		value := c["value"]
		if field == "" || op == "" || isEmpty(value) {
			continue
		}
		expr.Conditions = append(expr.Conditions, Condition{Field: field, Operator: op, Value: value})
	}

	return expr, nil
}

// isEmpty reports the values a condition treats as "not given".
func isEmpty(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case bool:
		return !x
	case float64:
		return x == 0
	case []any:
		return len(x) == 0
	case map[string]any:
		return len(x) == 0
	}
	return false
}

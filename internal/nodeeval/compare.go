package nodeeval

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cogform/cogform/internal/expr"
	"github.com/cogform/cogform/internal/schema"
)

// evalCondition reports whether an activation-condition triple holds
// against actual (spec §3 "Activation condition", §4.5 Condition).
func evalCondition(actual any, cond schema.ActivationCondition) (bool, error) {
	var want any
	if len(cond.Value) > 0 {
		if err := json.Unmarshal(cond.Value, &want); err != nil {
			return false, fmt.Errorf("activation condition value is not valid JSON: %w", err)
		}
	}

	switch cond.Operator {
	case schema.OpEq:
		return looseEqual(actual, want), nil
	case schema.OpNeq:
		return !looseEqual(actual, want), nil
	case schema.OpGt, schema.OpLt, schema.OpGte, schema.OpLte:
		a, ok1 := expr.CoerceNumeric(actual)
		b, ok2 := expr.CoerceNumeric(want)
		if !ok1 || !ok2 {
			return false, nil
		}
		switch cond.Operator {
		case schema.OpGt:
			return a > b, nil
		case schema.OpLt:
			return a < b, nil
		case schema.OpGte:
			return a >= b, nil
		case schema.OpLte:
			return a <= b, nil
		}
	case schema.OpContains:
		switch av := actual.(type) {
		case string:
			ws, _ := want.(string)
			return strings.Contains(av, ws), nil
		case []any:
			for _, e := range av {
				if looseEqual(e, want) {
					return true, nil
				}
			}
			return false, nil
		}
		return false, nil
	}
	return false, fmt.Errorf("unsupported activation operator %q", cond.Operator)
}

// looseEqual compares two decoded-JSON values, treating numerically equal
// float64/bool/string/nil as equal and recursing into composites via
// canonical encoding.
func looseEqual(a, b any) bool {
	switch av := a.(type) {
	case float64, bool, string, nil:
		return av == b
	}
	ab, errA := json.Marshal(a)
	bb, errB := json.Marshal(b)
	return errA == nil && errB == nil && string(ab) == string(bb)
}

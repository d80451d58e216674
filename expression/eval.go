package expression

import (
	"github.com/cockroachdb/errors"
)

// Eval evaluates a WHERE expression against one row. lookup resolves a
// column name to the row's value for it.
func Eval(expr Expression, lookup func(column string) (string, bool)) (bool, error) {
	switch e := expr.(type) {
	case *AndExpression:
		left, err := Eval(e.Left, lookup)
		if err != nil {
			return false, err
		}
		if !left {
			return false, nil
		}
		return Eval(e.Right, lookup)
	case *ComparisonExpression:
		value, found := lookup(e.Column)
		if !found {
			return false, errors.Errorf("column not found: %s", e.Column)
		}
		switch e.Operator {
		case OperatorEqual:
			return value == e.Value, nil
		case OperatorNotEqual:
			return value != e.Value, nil
		default:
			return false, errors.Errorf("not supported operator: %s", e.Operator)
		}
	default:
		return false, errors.Errorf("not supported expression type: %T", e)
	}
}

package expression

import (
	"github.com/cockroachdb/errors"
	"github.com/xwb1989/sqlparser"
)

type Expression interface {
	implementExpr()
}

type AndExpression struct {
	Left  Expression
	Right Expression
}

// ComparisonExpression compares one column against one string literal.
// All values are strings here, so the comparison is byte-wise.
type ComparisonExpression struct {
	Operator string
	Column   string
	Value    string
}

const (
	OperatorEqual    = "="
	OperatorNotEqual = "!="
)

func (e *AndExpression) implementExpr()        {}
func (e *ComparisonExpression) implementExpr() {}

// BuildFromWhere converts a parsed WHERE clause into an Expression tree.
func BuildFromWhere(whereExpr *sqlparser.Where) (Expression, error) {
	if whereExpr.Type != sqlparser.WhereStr {
		return nil, errors.Errorf("not supported where type: %s", whereExpr.Type)
	}
	return buildFromExpr(whereExpr.Expr)
}

func buildFromExpr(expr sqlparser.Expr) (Expression, error) {
	switch e := expr.(type) {
	case *sqlparser.ComparisonExpr:
		if e.Operator != OperatorEqual && e.Operator != OperatorNotEqual {
			return nil, errors.Errorf("not supported operator: %s", e.Operator)
		}
		column, ok := e.Left.(*sqlparser.ColName)
		if !ok {
			return nil, errors.Errorf("not supported comparison operand: %T", e.Left)
		}
		literal, ok := e.Right.(*sqlparser.SQLVal)
		if !ok {
			return nil, errors.Errorf("not supported comparison operand: %T", e.Right)
		}
		return &ComparisonExpression{
			Operator: e.Operator,
			Column:   column.Name.String(),
			Value:    string(literal.Val),
		}, nil

	case *sqlparser.AndExpr:
		left, err := buildFromExpr(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := buildFromExpr(e.Right)
		if err != nil {
			return nil, err
		}
		return &AndExpression{Left: left, Right: right}, nil

	default:
		return nil, errors.Errorf("not supported expression type: %T", expr)
	}
}

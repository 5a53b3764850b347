package main

import (
	"fmt"

	unnest "github.com/src-d/go-unnest"
	"github.com/src-d/go-unnest/sql"
	"github.com/src-d/go-unnest/sql/expression"
	"github.com/src-d/go-unnest/sql/plan"
)

// Example of how to decorrelate the lowered plan of a correlated subquery:
//
//	SELECT * FROM orders o
//	WHERE o.total > (
//	    SELECT SUM(i.amount) FROM items i WHERE i.order_id = o.id
//	)
//
// The subquery is lowered by the plan builder into a dependent join whose
// right side aggregates items filtered by the outer column o.id. Running
// the engine folds the correlated filter into the join condition, leaving
// a plan with only independent joins.
func main() {
	orders := plan.NewTable(0, "o", "id", "total")
	items := plan.NewTable(1, "i", "order_id", "amount")

	input := plan.NewDependentJoin(2, orders,
		plan.NewGroupBy(4,
			nil,
			[]plan.ProjectedColumn{{
				Column: sql.NewColumn("q", "total"),
				Expr:   expression.NewSum(expression.NewColumnRef(sql.NewColumn("i", "amount"))),
			}},
			plan.NewFilter(3, expression.NewEquals(
				expression.NewColumnRef(sql.NewColumn("i", "order_id")),
				expression.NewColumnRef(sql.NewColumn("o", "id")),
			), items),
		),
		expression.NewGreaterThan(
			expression.NewColumnRef(sql.NewColumn("o", "total")),
			expression.NewColumnRef(sql.NewColumn("q", "total")),
		),
	)

	fmt.Println("input plan:")
	fmt.Println(input.String())

	result, err := unnest.Decorrelate(sql.NewEmptyContext(), input)
	if err != nil {
		panic(err)
	}

	fmt.Println("decorrelated plan:")
	fmt.Println(result.String())
}

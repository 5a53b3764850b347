package plan

import (
	"fmt"

	"github.com/src-d/go-unnest/sql"
)

// Table is a leaf node producing the columns of a base relation, qualified
// by the relation name.
type Table struct {
	id      sql.NodeID
	name    string
	columns []string
}

// NewTable creates a new Table node.
func NewTable(id sql.NodeID, name string, columns ...string) *Table {
	return &Table{
		id:      id,
		name:    name,
		columns: columns,
	}
}

// ID implements the Node interface.
func (t *Table) ID() sql.NodeID {
	return t.id
}

// Name implements the Nameable interface.
func (t *Table) Name() string {
	return t.name
}

// Schema implements the Node interface.
func (t *Table) Schema() sql.Schema {
	schema := make(sql.Schema, len(t.columns))
	for i, col := range t.columns {
		schema[i] = sql.NewColumn(t.name, col)
	}
	return schema
}

// Children implements the Node interface.
func (*Table) Children() []sql.Node {
	return nil
}

// WithChildren implements the Node interface.
func (t *Table) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 0 {
		return nil, sql.ErrInvalidChildrenNumber.New(t, 0, len(children))
	}
	return t, nil
}

func (t *Table) String() string {
	return fmt.Sprintf("Table(%s)", t.name)
}

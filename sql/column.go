package sql

import (
	"sort"
	"strings"
)

// Column identifies a column produced somewhere in a plan tree by the pair
// (table, name). It is a value type, comparable and usable as a map key.
type Column struct {
	// Table is the name of the relation that qualifies the column.
	Table string
	// Name is the name of the column within its relation.
	Name string
}

// NewColumn creates a column qualified by the given table.
func NewColumn(table, name string) Column {
	return Column{Table: table, Name: name}
}

func (c Column) String() string {
	return c.Table + "." + c.Name
}

// Schema is the ordered list of columns produced by a node.
type Schema []Column

// Contains reports whether the schema contains the given column.
func (s Schema) Contains(col Column) bool {
	for _, c := range s {
		if c == col {
			return true
		}
	}
	return false
}

// ColumnSet is an unordered set of columns.
type ColumnSet map[Column]struct{}

// NewColumnSet creates a column set with the given columns.
func NewColumnSet(cols ...Column) ColumnSet {
	s := make(ColumnSet)
	for _, c := range cols {
		s.Add(c)
	}
	return s
}

// Add inserts the column into the set.
func (s ColumnSet) Add(col Column) {
	s[col] = struct{}{}
}

// Contains reports whether the column is in the set.
func (s ColumnSet) Contains(col Column) bool {
	_, ok := s[col]
	return ok
}

// Union adds all the columns of other to the set.
func (s ColumnSet) Union(other ColumnSet) {
	for c := range other {
		s[c] = struct{}{}
	}
}

// Intersect returns a new set with the columns present in both sets.
func (s ColumnSet) Intersect(other ColumnSet) ColumnSet {
	result := make(ColumnSet)
	for c := range s {
		if other.Contains(c) {
			result.Add(c)
		}
	}
	return result
}

// Copy returns a new set with the same columns.
func (s ColumnSet) Copy() ColumnSet {
	result := make(ColumnSet, len(s))
	for c := range s {
		result[c] = struct{}{}
	}
	return result
}

// Clear removes all columns from the set.
func (s ColumnSet) Clear() {
	for c := range s {
		delete(s, c)
	}
}

// Sorted returns the columns of the set ordered by table and name, so that
// iteration over a set is deterministic.
func (s ColumnSet) Sorted() []Column {
	cols := make([]Column, 0, len(s))
	for c := range s {
		cols = append(cols, c)
	}
	sort.Slice(cols, func(i, j int) bool {
		if cols[i].Table != cols[j].Table {
			return cols[i].Table < cols[j].Table
		}
		return cols[i].Name < cols[j].Name
	})
	return cols
}

func (s ColumnSet) String() string {
	var parts []string
	for _, c := range s.Sorted() {
		parts = append(parts, c.String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

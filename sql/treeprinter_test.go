package sql

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const expectedTree = `Join(r.y = s.y)
 ├─ Join(r.x = t.x)
 │   ├─ TableR
 │   └─ TableT
 └─ Filter(s.z > 1)
     └─ TableS
`

func TestTreePrinter(t *testing.T) {
	p := NewTreePrinter()
	p.WriteNode("Join(%s)", "r.y = s.y")

	p2 := NewTreePrinter()
	p2.WriteNode("Join(%s)", "r.x = t.x")
	p2.WriteChildren(
		"TableR",
		"TableT",
	)

	p3 := NewTreePrinter()
	p3.WriteNode("Filter(%s)", "s.z > 1")
	p3.WriteChildren("TableS")

	p.WriteChildren(
		p2.String(),
		p3.String(),
	)

	require.Equal(t, expectedTree, p.String())
}

func TestTreePrinterErrors(t *testing.T) {
	require := require.New(t)

	p := NewTreePrinter()
	require.Equal(ErrNodeNotWritten, p.WriteChildren("child"))

	require.NoError(p.WriteNode("node"))
	require.Equal(ErrNodeAlreadyWritten, p.WriteNode("node"))

	require.NoError(p.WriteChildren("child"))
	require.Equal(ErrChildrenAlreadyWritten, p.WriteChildren("child"))
}

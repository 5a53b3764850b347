package similartext

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFind(t *testing.T) {
	require := require.New(t)

	var names []string
	require.Empty(Find(names, "r.y"))

	names = []string{"foo", "bar", "aka", "ake"}
	require.Equal(", maybe you mean bar?", Find(names, "baz"))
	require.Empty(Find(names, ""))
	require.Equal(", maybe you mean foo?", Find(names, "foo"))
	require.Empty(Find(names, "willBeTooDifferent"))
	require.Equal(", maybe you mean aka or ake?", Find(names, "aki"))
}

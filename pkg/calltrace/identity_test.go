package calltrace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRootIdentity(t *testing.T) {
	a := NewRootIdentity()
	b := NewRootIdentity()

	assert.Len(t, a.ID(), idLength)
	assert.Equal(t, 0, a.Level())
	assert.True(t, a.IsRoot())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestIdentityDerivation(t *testing.T) {
	root := newRootIdentity(func() string { return "abcd1234" })

	next := root.Next()
	assert.Equal(t, "abcd1234", next.ID())
	assert.Equal(t, 1, next.Level())
	assert.False(t, next.IsRoot())

	deeper := next.Next()
	assert.Equal(t, 2, deeper.Level())
	assert.Equal(t, next, deeper.Previous())
	assert.Equal(t, root, deeper.Previous().Previous())

	// root stays untouched by derivations
	assert.Equal(t, 0, root.Level())
}

func TestPreviousNeverNegative(t *testing.T) {
	root := newRootIdentity(func() string { return "abcd1234" })
	assert.Equal(t, 0, root.Previous().Level())
}

func TestIdentityContext(t *testing.T) {
	_, ok := IdentityFromContext(context.Background())
	assert.False(t, ok)

	//nolint:staticcheck // nil context is tolerated on purpose
	_, ok = IdentityFromContext(nil)
	assert.False(t, ok)

	id := newRootIdentity(func() string { return "ffff0000" }).Next()
	got, ok := IdentityFromContext(ContextWithIdentity(context.Background(), id))
	assert.True(t, ok)
	assert.Equal(t, id, got)
}

func TestAddSpace(t *testing.T) {
	tests := []struct {
		prefix string
		level  int
		want   string
	}{
		{startPrefix, 0, ""},
		{startPrefix, 1, "|-->"},
		{completePrefix, 2, "| |<--"},
		{exPrefix, 3, "| | |<X-"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, addSpace(tt.prefix, tt.level))
	}
}

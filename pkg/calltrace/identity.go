package calltrace

import (
	"context"

	"github.com/google/uuid"
)

// idLength is the number of characters kept from a generated UUID.
const idLength = 8

// TraceIdentity is the correlation id and nesting level of one traced call.
// Values are immutable; Next and Previous derive new identities.
type TraceIdentity struct {
	id    string
	level int
}

// NewRootIdentity creates the level 0 identity of a new logical execution.
func NewRootIdentity() TraceIdentity {
	return newRootIdentity(newCorrelationID)
}

func newRootIdentity(gen func() string) TraceIdentity {
	return TraceIdentity{id: gen(), level: 0}
}

// newCorrelationID returns a short random token. Collisions are tolerable,
// it only needs to tell concurrent executions apart in a log stream.
func newCorrelationID() string {
	return uuid.NewString()[:idLength]
}

// ID returns the correlation id.
func (t TraceIdentity) ID() string { return t.id }

// Level returns the nesting depth, starting at 0.
func (t TraceIdentity) Level() int { return t.level }

// Next returns the identity of a call nested one level deeper.
func (t TraceIdentity) Next() TraceIdentity {
	return TraceIdentity{id: t.id, level: t.level + 1}
}

// Previous returns the identity of the enclosing call. The level never drops below 0.
func (t TraceIdentity) Previous() TraceIdentity {
	if t.level == 0 {
		return t
	}
	return TraceIdentity{id: t.id, level: t.level - 1}
}

// IsRoot reports whether the identity belongs to the outermost call.
func (t TraceIdentity) IsRoot() bool { return t.level == 0 }

type identityKey struct{}

// IdentityFromContext returns the identity of the innermost traced call carried by ctx.
func IdentityFromContext(ctx context.Context) (TraceIdentity, bool) {
	if ctx == nil {
		return TraceIdentity{}, false
	}
	id, ok := ctx.Value(identityKey{}).(TraceIdentity)
	return id, ok
}

// ContextWithIdentity stores id in ctx. Calls traced with the returned context
// continue the execution id identifies.
func ContextWithIdentity(ctx context.Context, id TraceIdentity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

package limits

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// CounterFunc reports how many instances of a resource a tenant currently
// holds. Implementations should answer from an index or aggregate; the
// service calls them on every quota check.
type CounterFunc func(ctx context.Context, tenantID uuid.UUID) (int64, error)

// CounterRegistry maps resources to their usage counters. Populate it at
// startup and treat it as read-only afterwards; the map itself is not
// synchronized.
type CounterRegistry map[Resource]CounterFunc

// NewRegistry returns an empty CounterRegistry.
func NewRegistry() CounterRegistry {
	return make(CounterRegistry)
}

// Register wires fn as the counter for res, replacing any previous one.
// A nil fn is a wiring bug and panics immediately.
func (r CounterRegistry) Register(res Resource, fn CounterFunc) {
	if fn == nil {
		panic(fmt.Sprintf("limits: nil counter registered for resource %q", res))
	}
	r[res] = fn
}

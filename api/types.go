package api

import (
	"context"

	"github.com/Juniordecoy/xpa3-dd-dashboard/domain"
)

// Persistence abstracts the storage adapter for handlers. Persist returns
// nothing: durable-write failures degrade that one mutation and are logged
// by the adapter, never surfaced to the operator.
type Persistence interface {
	Persist(ctx context.Context, st domain.DoorState)
	Export(ctx context.Context) (domain.Snapshot, error)
}

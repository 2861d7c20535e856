package storage

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/Juniordecoy/xpa3-dd-dashboard/domain"
)

// Strategy is one persistence backend for door state. Row stores (Azure
// Tables, SQLite) implement Load as ensure-schema + seed-if-empty + select
// all, Upsert as a keyed last-write-wins write, and Record as a no-op; the
// append log implements Record as an append, Load as a full replay, and
// Upsert as a no-op. Export produces the backend's downloadable artifact.
type Strategy interface {
	Load(ctx context.Context) ([]domain.DoorState, error)
	Record(ctx context.Context, st domain.DoorState) error
	Upsert(ctx context.Context, st domain.DoorState) error
	Export(ctx context.Context) (domain.Snapshot, error)
}

// Adapter reconciles the in-memory board with the configured backends. The
// durable store is optional and resolved once at construction; the append
// log is always present. Persistence failures degrade to logged no-ops so a
// backend outage never surfaces to the operator, and the board always
// reflects in-memory state.
type Adapter struct {
	store  Strategy // nil when no durable store is configured
	log    Strategy
	clock  domain.Clock
	logger *log.Logger
}

// NewAdapter builds an Adapter. store may be nil; auditLog and logger must
// not be.
func NewAdapter(store, auditLog Strategy, clock domain.Clock, logger *log.Logger) *Adapter {
	if auditLog == nil {
		panic("storage.NewAdapter: audit log is required")
	}
	if logger == nil {
		panic("storage.NewAdapter: logger is required")
	}
	return &Adapter{store: store, log: auditLog, clock: clock, logger: logger}
}

// StoreConfigured reports whether a durable row store is in use.
func (a *Adapter) StoreConfigured() bool {
	return a.store != nil
}

// Bootstrap loads persisted state over the board's compiled-in defaults.
// With a durable store configured its rows are authoritative and the append
// log is never read back; otherwise the log is replayed, last record per
// door winning. A load failure leaves the board on seed data and the process
// running.
func (a *Adapter) Bootstrap(ctx context.Context, board *domain.Board) {
	if a.store != nil {
		rows, err := a.store.Load(ctx)
		if err != nil {
			a.logger.WithError(err).Warn("durable store unavailable, board running from seed data")
			return
		}
		for _, st := range rows {
			board.Apply(st)
		}
		a.logger.WithField("rows", len(rows)).Info("door state loaded from durable store")
		return
	}

	rows, err := a.log.Load(ctx)
	if err != nil {
		a.logger.WithError(err).Warn("audit log replay failed, board running from seed data")
		return
	}
	for _, st := range rows {
		board.Apply(st)
	}
	if len(rows) > 0 {
		a.logger.WithField("doors", len(rows)).Info("door state replayed from audit log")
	}
}

// Persist durably records one mutation: an upsert into the durable store
// when configured, and always one append-log record. It is best-effort by
// contract; failures are logged with door context and never returned.
func (a *Adapter) Persist(ctx context.Context, st domain.DoorState) {
	st.UpdatedAt = a.clock.Stamp()

	if a.store != nil {
		if err := a.store.Upsert(ctx, st); err != nil {
			a.logger.WithError(err).WithField("door", st.Door).Error("durable store upsert failed")
		}
	}
	if err := a.log.Record(ctx, st); err != nil {
		a.logger.WithError(err).WithField("door", st.Door).Error("audit log append failed")
	}
}

// Export returns the downloadable snapshot: latest rows from the durable
// store when configured, the raw append log otherwise.
func (a *Adapter) Export(ctx context.Context) (domain.Snapshot, error) {
	if a.store != nil {
		return a.store.Export(ctx)
	}
	return a.log.Export(ctx)
}

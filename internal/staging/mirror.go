package staging

import (
	"context"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/prefmirror/internal/core/domain"
	"github.com/yndnr/prefmirror/internal/runstate"
	"github.com/yndnr/prefmirror/internal/setting"
	"github.com/yndnr/prefmirror/internal/storage"
	"github.com/yndnr/prefmirror/internal/telemetry/logger"
	"github.com/yndnr/prefmirror/internal/telemetry/metric"
)

// lastCommitKey holds the ULID of the last committed save. It sits outside
// setting.KeyPrefix.
var lastCommitKey = []byte("meta/last_commit")

// Store is the persistence a Mirror needs. storage.Engine satisfies it.
type Store interface {
	setting.Reader
	BeginWrite() (storage.Txn, error)
}

// Commit describes a committed save.
type Commit struct {
	ID   ulid.ULID
	Time time.Time
}

// Mirror loads snapshots from a store and commits them back atomically.
type Mirror struct {
	store   Store
	signal  runstate.Signal
	metrics *metric.Registry
	log     logger.Logger
}

// Option configures a Mirror.
type Option func(*Mirror)

// WithMetrics records save and reconciliation metrics into r.
func WithMetrics(r *metric.Registry) Option {
	return func(m *Mirror) { m.metrics = r }
}

// WithLogger sets the logger. The default is logger.Default().
func WithLogger(l logger.Logger) Option {
	return func(m *Mirror) { m.log = l }
}

// NewMirror creates a Mirror over store. A successful Save reconciles
// signal with the saved offline flag.
func NewMirror(store Store, signal runstate.Signal, opts ...Option) *Mirror {
	m := &Mirror{
		store:  store,
		signal: signal,
		log:    logger.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Defaults returns a snapshot of key defaults. It does not touch the store.
func (m *Mirror) Defaults() *Snapshot {
	return WithDefaults()
}

// Load reads a snapshot from the store. It never fails; unreadable values
// fall back to their defaults and are logged.
func (m *Mirror) Load(ctx context.Context) *Snapshot {
	return Load(logger.WithLogger(ctx, m.log), m.store)
}

// Save writes every field of s in one write transaction.
//
// The first failing write aborts the save: the transaction is discarded,
// later fields are not attempted and nothing is committed. All failures
// are domain.ErrStore with the underlying cause attached. After a commit
// the run state is reconciled with s.Offline. s is never modified.
//
// ctx carries logging values only; a started save is not cancelled.
func (m *Mirror) Save(ctx context.Context, s *Snapshot) (err error) {
	id := ulid.Make()
	ctx = logger.WithCommitID(logger.WithLogger(ctx, m.log), id.String())
	log := logger.L(ctx)

	start := time.Now()
	written := 0
	defer func() {
		m.metrics.ObserveSave(time.Since(start), written, err)
		if err != nil {
			log.Error("settings save aborted", "fields_written", written, "error", err)
		}
	}()

	txn, err := m.store.BeginWrite()
	if err != nil {
		return domain.ErrStore.WithDetails("begin write").WithCause(err)
	}
	defer txn.Discard()

	for _, b := range table {
		if err := b.save(s, txn); err != nil {
			return domain.ErrStore.WithDetails(b.key.Name()).WithCause(err)
		}
		written++
	}

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return domain.ErrStore.WithDetails("encode commit id").WithCause(err)
	}
	if err := txn.Set(lastCommitKey, idBytes); err != nil {
		return domain.ErrStore.WithDetails("commit metadata").WithCause(err)
	}

	if err := txn.Commit(); err != nil {
		return domain.ErrStore.WithDetails("commit").WithCause(err)
	}

	log.Debug("settings saved", "fields_written", written)

	if m.signal != nil {
		if state, sent := runstate.Reconcile(s.Offline, m.signal); sent {
			m.metrics.ObserveTransition(state.String())
			log.Info("run state reconciled", "state", state.String())
		}
	}
	return nil
}

// LastCommit returns the most recent committed save. ok is false when
// nothing has been saved yet.
func (m *Mirror) LastCommit(ctx context.Context) (c Commit, ok bool, err error) {
	raw, err := m.store.Get(ctx, lastCommitKey)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return Commit{}, false, nil
	}
	if err != nil {
		return Commit{}, false, domain.ErrStore.WithDetails("read commit metadata").WithCause(err)
	}

	var id ulid.ULID
	if err := id.UnmarshalBinary(raw); err != nil {
		return Commit{}, false, domain.ErrStore.WithDetails("decode commit id").Wrap(err)
	}
	return Commit{ID: id, Time: ulid.Time(id.Time())}, true, nil
}

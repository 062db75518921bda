package kvstore

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/vastrakart/assistant/internal/core/port"
)

var _ port.KeyValueStorage = (*Fallback)(nil)

// Fallback serves the primary storage until its first failure, then
// switches to the in-memory store for the remainder of the process
// lifetime. The transition is one-way: no reconnection or promotion
// back to the primary is ever attempted.
type Fallback struct {
	primary  port.KeyValueStorage
	memory   *Memory
	degraded atomic.Bool
}

// NewFallback wraps primary. A nil primary starts degraded, covering
// the case where the durable storage was already unreachable at
// startup.
func NewFallback(primary port.KeyValueStorage) *Fallback {
	const op = "kvstore.NewFallback"

	f := &Fallback{primary: primary, memory: NewMemory()}
	if primary == nil {
		f.degraded.Store(true)
		slog.With("op", op).Warn(
			"durable storage unavailable, starting on in-memory fallback",
		)
	}
	return f
}

func (f *Fallback) Set(ctx context.Context, key string, value []byte) error {
	if !f.degraded.Load() {
		err := f.primary.Set(ctx, key, value)
		if err == nil {
			return nil
		}
		f.degrade(err)
	}
	return f.memory.Set(ctx, key, value)
}

func (f *Fallback) Get(ctx context.Context, key string) ([]byte, error) {
	if !f.degraded.Load() {
		b, err := f.primary.Get(ctx, key)
		if err == nil {
			return b, nil
		}
		f.degrade(err)
	}
	return f.memory.Get(ctx, key)
}

// Degraded reports whether the store has switched to the in-memory
// fallback.
func (f *Fallback) Degraded() bool {
	return f.degraded.Load()
}

func (f *Fallback) degrade(err error) {
	const op = "Fallback.degrade"

	if f.degraded.CompareAndSwap(false, true) {
		slog.With("op", op).Warn(
			"durable storage failed, degrading to in-memory fallback",
			"err", err,
		)
	}
}

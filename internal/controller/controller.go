package controller

import (
	"RestoPos/internal/domain"
	"RestoPos/internal/posapi"
	"RestoPos/internal/session"
	"RestoPos/pkg/logging"
	"context"
	"sync"

	"github.com/pkg/errors"
)

// ErrStale is returned by a load whose answer arrived after a newer load
// started or after the controller was detached. Its result is dropped.
var ErrStale = errors.New("stale response discarded")

// base carries the state every screen controller shares: the injected API
// and session, the three observable channels and the request generation.
type base[T any] struct {
	api     posapi.POSAPI
	session *session.Store
	name    string

	Data    *Observable[T]
	Err     *Observable[string]
	Loading *Observable[bool]

	mu       sync.Mutex
	gen      uint64
	cancel   context.CancelFunc
	inflight int
	detached bool
}

func newBase[T any](name string, api posapi.POSAPI, s *session.Store, initial T) *base[T] {
	return &base[T]{
		api:     api,
		session: s,
		name:    name,
		Data:    newObservable(initial),
		Err:     newObservable(""),
		Loading: newObservable(false),
	}
}

// Detach tears the controller down: the in-flight load is cancelled and
// nothing is published afterwards.
func (b *base[T]) Detach() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.detached = true
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
}

func (b *base[T]) Detached() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.detached
}

func (b *base[T]) token() string {
	token, _ := b.session.Token()
	return token
}

func (b *base[T]) role() domain.Role {
	return domain.ParseRole(b.session.Role())
}

// begin opens a new load generation and cancels the previous one.
func (b *base[T]) begin(ctx context.Context) (context.Context, uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cancel != nil {
		b.cancel()
	}
	b.gen++
	ctx, cancel := context.WithCancel(ctx)
	b.cancel = cancel
	return ctx, b.gen
}

func (b *base[T]) finish(gen uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if gen == b.gen && b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
}

func (b *base[T]) current(gen uint64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return gen == b.gen && !b.detached
}

func (b *base[T]) setLoading(delta int) {
	b.mu.Lock()
	b.inflight += delta
	loading := b.inflight > 0
	detached := b.detached
	b.mu.Unlock()
	if !detached {
		b.Loading.set(loading)
	}
}

// run wraps one operation: Loading goes true before fn and back exactly once
// afterwards, panics become errors and every error but ErrStale reaches Err.
func (b *base[T]) run(op string, fn func() error) (err error) {
	logger := logging.GetLogger()
	logger.Debugf("%s.%s:>Start", b.name, op)

	if !b.Detached() {
		b.Err.set("")
	}
	b.setLoading(1)
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("%s.%s: panic: %v", b.name, op, r)
		}
		b.setLoading(-1)
		switch {
		case err == nil:
		case errors.Is(err, ErrStale):
			logger.Debugf("%s.%s:> %v", b.name, op, err)
		default:
			logger.Errorf("%s.%s:> %v", b.name, op, err)
			if !b.Detached() {
				b.Err.set(Message(err))
			}
		}
		logger.Debugf("%s.%s:>End", b.name, op)
	}()

	return fn()
}

// load fetches and publishes Data unless a newer load superseded this one.
func (b *base[T]) load(ctx context.Context, fetch func(ctx context.Context, token string) (T, error)) error {
	ctx, gen := b.begin(ctx)
	defer b.finish(gen)

	return b.run("Load", func() error {
		v, err := fetch(ctx, b.token())
		if !b.current(gen) {
			return ErrStale
		}
		if err != nil {
			return err
		}
		b.Data.set(v)
		return nil
	})
}

// mutate runs a write. Its result is dropped once the controller is detached.
func (b *base[T]) mutate(ctx context.Context, op string, fn func(ctx context.Context, token string) error) error {
	return b.run(op, func() error {
		err := fn(ctx, b.token())
		if b.Detached() {
			return ErrStale
		}
		return err
	})
}

// reload refreshes Data after a successful write and keeps err otherwise.
func reload(ctx context.Context, err error, load func(context.Context) error) error {
	if err != nil {
		return err
	}
	if err := load(ctx); err != nil && !errors.Is(err, ErrStale) {
		return err
	}
	return nil
}

// Package locks serializes the check-then-write critical sections the
// booking core depends on: seat allocation per route and withdrawal
// requests per company.
package locks

import (
	"context"
	"sync"
)

// Locker serializes a critical section per resource key.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// KeyedMutex is an in-process Locker. One mutex per key, created on
// first use and kept for the process lifetime; the key space (routes,
// companies) is small enough that cleanup is not worth the bookkeeping.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: map[string]*sync.Mutex{}}
}

func (k *KeyedMutex) Lock(ctx context.Context, key string) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock, nil
}

package redis

import (
	"context"
	"errors"
	"time"

	"github.com/bsm/redislock"
	goredis "github.com/redis/go-redis/v9"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/application/usecase"
)

var _ usecase.RefreshLocker = (*Locker)(nil)

// Locker short-lived distributed locks on top of redislock.
type Locker struct {
	client *redislock.Client
}

// NewLocker wraps a connected client.
func NewLocker(rdb *goredis.Client) *Locker {
	return &Locker{client: redislock.New(rdb)}
}

// Obtain takes key for ttl without retrying. A held lock yields usecase.ErrLockHeld.
func (l *Locker) Obtain(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	lock, err := l.client.Obtain(ctx, key, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, usecase.ErrLockHeld
	}
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context) error {
		err := lock.Release(ctx)
		if errors.Is(err, redislock.ErrLockNotHeld) {
			return nil
		}
		return err
	}, nil
}

package redis_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/application/alerting"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/application/usecase"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/entity"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/metric"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/repository"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/infrastructure/redis"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/testutil/memstore"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/pkg/config"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/pkg/logger"
)

func ref(s string) *string { return &s }

func TestDedupKey(t *testing.T) {
	base := repository.AlertFingerprint{
		Type:  entity.AlertLowStock,
		Title: "Low Stock Alert",
		Refs:  entity.AlertRefs{InventoryItemID: ref("item-1"), SupplierID: ref("sup-1")},
	}
	same := base
	same.Refs = entity.AlertRefs{InventoryItemID: ref("item-1"), SupplierID: ref("sup-1")}

	otherTitle := base
	otherTitle.Title = "Out of Stock"

	movedRef := base
	movedRef.Refs = entity.AlertRefs{ShipmentID: ref("item-1"), SupplierID: ref("sup-1")}

	assert.Equal(t, redis.DedupKey(base), redis.DedupKey(same))
	assert.NotEqual(t, redis.DedupKey(base), redis.DedupKey(otherTitle))
	assert.NotEqual(t, redis.DedupKey(base), redis.DedupKey(movedRef), "ref position is part of the key")
	assert.Contains(t, redis.DedupKey(base), "alert-dedup:")
}

// ─── Deduper ───

// keyStore keeps keys in memory; expiry is not modelled.
type keyStore struct {
	held map[string]bool
	sets int
}

func newKeyStore() *keyStore { return &keyStore{held: map[string]bool{}} }

func (k *keyStore) SetNX(_ context.Context, key string, _ interface{}, _ time.Duration) *goredis.BoolCmd {
	if k.held[key] {
		return goredis.NewBoolResult(false, nil)
	}
	k.held[key] = true
	return goredis.NewBoolResult(true, nil)
}

func (k *keyStore) Set(_ context.Context, key string, _ interface{}, _ time.Duration) *goredis.StatusCmd {
	k.held[key] = true
	k.sets++
	return goredis.NewStatusResult("OK", nil)
}

func TestDeduper_ResolvedAlertFreesFingerprint(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	keys := newKeyStore()
	d := redis.NewDeduper(keys, alerting.NewStoreDeduper(st.Alerts()))
	e := alerting.NewEmitter(st.Alerts(), logger.Nop(), nil, alerting.WithDedup(d, 10*time.Minute))

	refs := entity.AlertRefs{}
	draft := metric.EvaluateStockLevel("Steel Sheets", "STL-001", 0, 50)

	first := e.Emit(ctx, draft, refs)
	require.NotNil(t, first)
	assert.Nil(t, e.Emit(ctx, draft, refs), "open alert inside the window")
	assert.Equal(t, 0, keys.sets)

	resolved := true
	require.NoError(t, st.Alerts().UpdateFlags(ctx, first.ID, repository.AlertFlags{IsResolved: &resolved}))

	again := e.Emit(ctx, draft, refs)
	require.NotNil(t, again, "resolved alert no longer suppresses")
	assert.Equal(t, 1, keys.sets, "key taken over for a new window")
	assert.Nil(t, e.Emit(ctx, draft, refs), "the new alert is open again")
	assert.Len(t, st.AllAlerts(), 2)
}

func TestDeduper_WithoutConfirmHoldsWholeWindow(t *testing.T) {
	ctx := context.Background()
	d := redis.NewDeduper(newKeyStore(), nil)
	fp := repository.AlertFingerprint{Type: entity.AlertShipmentDelay, Title: "Late Delivery"}

	first, err := d.Claim(ctx, fp, time.Minute)
	require.NoError(t, err)
	second, err := d.Claim(ctx, fp, time.Minute)
	require.NoError(t, err)
	assert.True(t, first)
	assert.False(t, second)
}

func TestDeduper_ConfirmFailureIsReturned(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	keys := newKeyStore()
	d := redis.NewDeduper(keys, alerting.NewStoreDeduper(st.Alerts()))
	fp := repository.AlertFingerprint{Type: entity.AlertShipmentDelay, Title: "Late Delivery"}

	_, err := d.Claim(ctx, fp, time.Minute)
	require.NoError(t, err)

	st.Err = errors.New("store down")
	ok, err := d.Claim(ctx, fp, time.Minute)
	assert.Error(t, err)
	assert.False(t, ok)
}

// Integration tests run only against a live Redis (REDIS_ADDR).
func liveConfig(t *testing.T) config.RedisConfig {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	return config.RedisConfig{Addr: addr}
}

func TestDeduper_Live(t *testing.T) {
	cfg := liveConfig(t)
	ctx := context.Background()
	rdb, err := redis.NewClient(ctx, cfg)
	require.NoError(t, err)
	defer rdb.Close()

	d := redis.NewDeduper(rdb, nil)
	fp := repository.AlertFingerprint{Type: entity.AlertShipmentDelay, Title: uuid.NewString()}

	first, err := d.Claim(ctx, fp, time.Minute)
	require.NoError(t, err)
	second, err := d.Claim(ctx, fp, time.Minute)
	require.NoError(t, err)

	assert.True(t, first)
	assert.False(t, second)
	require.NoError(t, rdb.Del(ctx, redis.DedupKey(fp)).Err())
}

func TestLocker_Live(t *testing.T) {
	cfg := liveConfig(t)
	ctx := context.Background()
	rdb, err := redis.NewClient(ctx, cfg)
	require.NoError(t, err)
	defer rdb.Close()

	l := redis.NewLocker(rdb)
	key := "test-lock:" + uuid.NewString()

	release, err := l.Obtain(ctx, key, 5*time.Second)
	require.NoError(t, err)

	_, err = l.Obtain(ctx, key, 5*time.Second)
	assert.ErrorIs(t, err, usecase.ErrLockHeld)

	require.NoError(t, release(ctx))
	release2, err := l.Obtain(ctx, key, 5*time.Second)
	require.NoError(t, err)
	require.NoError(t, release2(ctx))
}

package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/application/alerting"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain/repository"
)

const dedupKeyPrefix = "mfg-dashboard:alert-dedup:"

var _ alerting.Deduper = (*Deduper)(nil)

// KeyStore is the part of the Redis client the deduper uses.
type KeyStore interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.BoolCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd
}

// Deduper claims alert fingerprints with SET NX EX: the first claim inside the window wins.
// A held key is re-checked against confirm, so an alert resolved inside the window
// frees its fingerprint the same way it does for the store backend.
type Deduper struct {
	rdb     KeyStore
	confirm alerting.Deduper
}

// NewDeduper wraps a connected client. confirm may be nil, in which case a key
// suppresses repeats for the whole window.
func NewDeduper(rdb KeyStore, confirm alerting.Deduper) *Deduper {
	return &Deduper{rdb: rdb, confirm: confirm}
}

// Claim reports whether the fingerprint was free and is now held for window.
func (d *Deduper) Claim(ctx context.Context, fp repository.AlertFingerprint, window time.Duration) (bool, error) {
	key := DedupKey(fp)
	claimed, err := d.rdb.SetNX(ctx, key, 1, window).Result()
	if err != nil || claimed || d.confirm == nil {
		return claimed, err
	}
	open, err := d.confirm.Claim(ctx, fp, window)
	if err != nil || !open {
		return false, err
	}
	// the earlier alert was resolved: take the key over for a fresh window
	if err := d.rdb.Set(ctx, key, 1, window).Err(); err != nil {
		return false, err
	}
	return true, nil
}

// DedupKey stable Redis key of a fingerprint.
func DedupKey(fp repository.AlertFingerprint) string {
	var b strings.Builder
	b.WriteString(string(fp.Type))
	for _, part := range []*string{fp.Refs.SupplierID, fp.Refs.ShipmentID, fp.Refs.InventoryItemID} {
		b.WriteByte('|')
		if part != nil {
			b.WriteString(*part)
		}
	}
	b.WriteByte('|')
	b.WriteString(fp.Title)
	sum := sha256.Sum256([]byte(b.String()))
	return dedupKeyPrefix + hex.EncodeToString(sum[:])
}

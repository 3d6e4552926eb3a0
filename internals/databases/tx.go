// file: internals/databases/tx.go
package database

import (
	"context"
	"sort"

	"gorm.io/gorm"
)

// LockKey names the slot universe a booking write competes for:
// one weekday for schedules, one calendar date for sessions.
func LockKey(scope, day string) string { return scope + ":" + day }

// WithDayLock runs fn in a single transaction that first takes a
// transaction-scoped advisory lock per key. Keys are sorted and de-duplicated
// so two writers touching the same pair of days never deadlock.
func WithDayLock(ctx context.Context, db *gorm.DB, keys []string, fn func(tx *gorm.DB) error) error {
	ordered := lockOrder(keys)
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := LockDays(tx, ordered...); err != nil {
			return err
		}
		return fn(tx)
	})
}

// LockDays takes additional day locks inside a running transaction, for
// writes that only learn their target day after reading the row.
func LockDays(tx *gorm.DB, keys ...string) error {
	for _, k := range keys {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", k).Error; err != nil {
			return err
		}
	}
	return nil
}

// DayLocker is what write services hold instead of a raw *gorm.DB, so the
// check-then-write flows can run against an in-memory store.
type DayLocker interface {
	WithDayLock(ctx context.Context, keys []string, fn func(tx *gorm.DB) error) error
	LockDays(tx *gorm.DB, keys ...string) error
}

// PGDayLocker takes postgres advisory locks on DB.
type PGDayLocker struct{ DB *gorm.DB }

var _ DayLocker = PGDayLocker{}

func NewDayLocker(db *gorm.DB) PGDayLocker { return PGDayLocker{DB: db} }

// WithDayLock with no keys is a plain transaction.
func (l PGDayLocker) WithDayLock(ctx context.Context, keys []string, fn func(tx *gorm.DB) error) error {
	return WithDayLock(ctx, l.DB, keys, fn)
}

func (l PGDayLocker) LockDays(tx *gorm.DB, keys ...string) error { return LockDays(tx, keys...) }

func lockOrder(keys []string) []string {
	uniq := make([]string, 0, len(keys))
	seen := map[string]bool{}
	for _, k := range keys {
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		uniq = append(uniq, k)
	}
	sort.Strings(uniq)
	return uniq
}

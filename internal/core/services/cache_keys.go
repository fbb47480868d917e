package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/famledger/family_finance_app/internal/core/domain"
	portsrepo "github.com/famledger/family_finance_app/internal/core/ports/repositories"
	"github.com/famledger/family_finance_app/internal/middleware"
	"github.com/famledger/family_finance_app/internal/repositories/cache"
)

// cacheGet loads a JSON-encoded value from the cache into dest. Cache
// failures are logged and treated as misses so reads always fall through to
// the database.
func cacheGet[T any](ctx context.Context, store portsrepo.CacheStore, key string, dest *T) bool {
	if store == nil {
		return false
	}
	raw, found, err := store.Get(ctx, key)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("cache get failed", slog.String("key", key), slog.String("error", err.Error()))
		return false
	}
	if !found {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("cache entry corrupt, dropping", slog.String("key", key), slog.String("error", err.Error()))
		_ = store.Del(ctx, key)
		return false
	}
	return true
}

// cacheSet stores value under key as JSON. Failures are logged and swallowed.
func cacheSet(ctx context.Context, store portsrepo.CacheStore, key string, value any, ttl time.Duration) {
	if store == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("cache marshal failed", slog.String("key", key), slog.String("error", err.Error()))
		return
	}
	if err := store.Set(ctx, key, string(raw), ttl); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("cache set failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}

// invalidateLedgerCaches drops every cached read path belonging to userID
// that a ledger write could have staled. The per-category and per-month keys
// are derived from the touched transactions; list-shaped keys are always
// dropped. Invalidation runs only after the database commit.
func invalidateLedgerCaches(ctx context.Context, store portsrepo.CacheStore, userID string, txns ...domain.Transaction) {
	if store == nil {
		return
	}
	keys := []string{
		cache.ListKey(userID),
		cache.IncomeKey(userID),
		cache.ExpenseKey(userID),
		cache.SummaryKey(userID),
	}
	for _, txn := range txns {
		keys = append(keys,
			cache.ItemKey(userID, txn.TransactionID),
			cache.CategoryKey(userID, txn.CategoryID),
			cache.MonthKey(userID, txn.CreatedAt.Format("2006-01")),
		)
	}
	if err := store.Del(ctx, keys...); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("cache invalidation failed", slog.String("user_id", userID), slog.String("error", err.Error()))
	}
}

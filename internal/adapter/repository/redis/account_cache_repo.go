package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/dealerledger/internal/domain"
	"github.com/iho/dealerledger/internal/usecase"
)

// DefaultAccountCacheTTL bounds how stale a cached account snapshot can get.
const DefaultAccountCacheTTL = 30 * time.Second

// CachedAccountRepository fronts an AccountRepository with a Redis cache for
// plain reads. Locked reads and everything inside a transaction always go to
// the store; every write invalidates the snapshot.
type CachedAccountRepository struct {
	inner usecase.AccountRepository
	cache *Cache
	ttl   time.Duration
}

// NewCachedAccountRepository creates a new CachedAccountRepository.
func NewCachedAccountRepository(inner usecase.AccountRepository, cache *Cache) *CachedAccountRepository {
	return &CachedAccountRepository{
		inner: inner,
		cache: cache,
		ttl:   DefaultAccountCacheTTL,
	}
}

func accountCacheKey(id string) string {
	return "account:" + id
}

// Create stores the account and invalidates any stale snapshot.
func (r *CachedAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if err := r.inner.Create(ctx, account); err != nil {
		return err
	}

	_ = r.cache.Delete(ctx, accountCacheKey(account.ID))

	return nil
}

// CreateTx stores the account inside a transaction.
func (r *CachedAccountRepository) CreateTx(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	if err := r.inner.CreateTx(ctx, tx, account); err != nil {
		return err
	}

	_ = r.cache.Delete(ctx, accountCacheKey(account.ID))

	return nil
}

// GetByID reads through the cache. Cache failures fall back to the store.
func (r *CachedAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if cached, err := r.cache.Get(ctx, accountCacheKey(id)); err == nil {
		var account domain.Account
		if err := json.Unmarshal([]byte(cached), &account); err == nil {
			return &account, nil
		}
	}

	account, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(account); err == nil {
		_ = r.cache.Set(ctx, accountCacheKey(id), string(data), r.ttl)
	}

	return account, nil
}

// GetByIDForUpdate bypasses the cache: locked reads must see current state.
func (r *CachedAccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	return r.inner.GetByIDForUpdate(ctx, tx, id)
}

// GetByIDsForUpdate bypasses the cache.
func (r *CachedAccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	return r.inner.GetByIDsForUpdate(ctx, tx, ids)
}

// UpdateBalance writes through and drops the snapshot.
func (r *CachedAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	if err := r.inner.UpdateBalance(ctx, tx, id, balance, updatedAt); err != nil {
		return err
	}

	_ = r.cache.Delete(ctx, accountCacheKey(id))

	return nil
}

// List always goes to the store.
func (r *CachedAccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	return r.inner.List(ctx, limit, offset)
}

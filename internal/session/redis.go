package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rumibeauty/storefront/internal/domain"
)

// Redis key prefixes for per-session state.
const (
	cartKeyPrefix      = "cart:"
	purchasesKeyPrefix = "purchases:"
	viewKeyPrefix      = "view:"
)

// RedisStore implements Store using Redis. Every key carries the session TTL,
// so abandoned sessions expire together.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a new Redis-backed session store.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

// Cart retrieves the session's cart, or an empty cart if none exists.
func (s *RedisStore) Cart(ctx context.Context, sessionID string) (domain.Cart, error) {
	data, err := s.client.Get(ctx, cartKeyPrefix+sessionID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return domain.Cart{SessionID: sessionID, Lines: []domain.CartLine{}}, nil
		}
		return domain.Cart{}, fmt.Errorf("redis get cart: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return domain.Cart{}, fmt.Errorf("unmarshal cart: %w", err)
	}
	if cart.Lines == nil {
		cart.Lines = []domain.CartLine{}
	}

	return cart, nil
}

// SaveCart persists the session's cart with the session TTL.
func (s *RedisStore) SaveCart(ctx context.Context, cart domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}

	if err := s.client.Set(ctx, cartKeyPrefix+cart.SessionID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set cart: %w", err)
	}

	return nil
}

// ClearCart removes the session's cart.
func (s *RedisStore) ClearCart(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, cartKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("redis del cart: %w", err)
	}
	return nil
}

// MarkPurchased adds product IDs to the session's purchase ledger.
func (s *RedisStore) MarkPurchased(ctx context.Context, sessionID string, productIDs ...string) error {
	if len(productIDs) == 0 {
		return nil
	}

	key := purchasesKeyPrefix + sessionID
	members := make([]any, len(productIDs))
	for i, id := range productIDs {
		members[i] = id
	}

	if err := s.client.SAdd(ctx, key, members...).Err(); err != nil {
		return fmt.Errorf("redis sadd purchases: %w", err)
	}
	if err := s.client.Expire(ctx, key, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis expire purchases: %w", err)
	}

	return nil
}

// IsPurchased reports whether the session has purchased the product.
func (s *RedisStore) IsPurchased(ctx context.Context, sessionID, productID string) (bool, error) {
	ok, err := s.client.SIsMember(ctx, purchasesKeyPrefix+sessionID, productID).Result()
	if err != nil {
		return false, fmt.Errorf("redis sismember purchases: %w", err)
	}
	return ok, nil
}

// PurchasedIDs returns every product ID in the session's purchase ledger.
func (s *RedisStore) PurchasedIDs(ctx context.Context, sessionID string) ([]string, error) {
	ids, err := s.client.SMembers(ctx, purchasesKeyPrefix+sessionID).Result()
	if err != nil {
		return nil, fmt.Errorf("redis smembers purchases: %w", err)
	}
	return ids, nil
}

// ViewState retrieves the session's navigation state, or the initial state if
// none exists.
func (s *RedisStore) ViewState(ctx context.Context, sessionID string) (domain.ViewState, error) {
	data, err := s.client.Get(ctx, viewKeyPrefix+sessionID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return domain.NewViewState(), nil
		}
		return domain.ViewState{}, fmt.Errorf("redis get view state: %w", err)
	}

	var state domain.ViewState
	if err := json.Unmarshal(data, &state); err != nil {
		return domain.ViewState{}, fmt.Errorf("unmarshal view state: %w", err)
	}

	return state, nil
}

// SaveViewState persists the session's navigation state with the session TTL.
func (s *RedisStore) SaveViewState(ctx context.Context, sessionID string, state domain.ViewState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal view state: %w", err)
	}

	if err := s.client.Set(ctx, viewKeyPrefix+sessionID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set view state: %w", err)
	}

	return nil
}

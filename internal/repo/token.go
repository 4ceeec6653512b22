package repo

import (
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/net/context"
)

// consumeScript atomically reads and deletes a key so that two
// concurrent redemptions cannot both observe the value.
var consumeScript = redis.NewScript(`
local v = redis.call("GET", KEYS[1])
if v then
	redis.call("DEL", KEYS[1])
end
return v
`)

// TokenStore keeps single-use tokens in Redis with a TTL.
type TokenStore struct {
	rdb *redis.Client
}

// NewTokenStore creates a token store.
func NewTokenStore(rdb *redis.Client) *TokenStore {
	return &TokenStore{rdb: rdb}
}

// Put stores a token payload with the given TTL.
func (s *TokenStore) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.rdb.Set(ctx, key, value, ttl).Err()
}

// Consume atomically fetches and deletes a token payload.
// Returns ok=false when the token is unknown or already consumed;
// Redis TTL removal makes an expired token indistinguishable from
// an unknown one, which is intended.
func (s *TokenStore) Consume(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := consumeScript.Run(ctx, s.rdb, []string{key}).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	str, ok := val.(string)
	if !ok {
		return nil, false, nil
	}
	return []byte(str), true, nil
}

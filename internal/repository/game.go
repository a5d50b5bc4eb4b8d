package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/chrislara01/tic-tac-toe-fullstack/internal/apperror"
	"github.com/chrislara01/tic-tac-toe-fullstack/internal/entity"
)

const (
	gameKeyPrefix = "game:"
	lockKeyPrefix = "lock:game:"

	DefaultLockTTL = 30 * time.Second
)

var (
	ErrLockNotAcquired = errors.New("game lock not acquired")

	// ErrCorruptedGame - a stored game could not be decoded. Decode errors are
	// flattened so they never read as client input errors.
	ErrCorruptedGame = errors.New("stored game is corrupted")
)

// GameRepository - storage of games plus per-game mutual exclusion.
type GameRepository interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	Lock(ctx context.Context, id string) (func(), error)
}

// releaseScript deletes the lock only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisGameRepository struct {
	client  *redis.Client
	ttl     time.Duration
	lockTTL time.Duration
}

type RedisOption func(*RedisGameRepository)

// WithGameTTL - expire stored games after ttl of inactivity. Zero keeps them forever.
func WithGameTTL(ttl time.Duration) RedisOption {
	return func(that *RedisGameRepository) {
		that.ttl = ttl
	}
}

func WithLockTTL(ttl time.Duration) RedisOption {
	return func(that *RedisGameRepository) {
		if ttl > 0 {
			that.lockTTL = ttl
		}
	}
}

func NewRedisGameRepository(client *redis.Client, opts ...RedisOption) *RedisGameRepository {
	repo := &RedisGameRepository{
		client:  client,
		lockTTL: DefaultLockTTL,
	}
	for _, opt := range opts {
		opt(repo)
	}

	return repo
}

func (that *RedisGameRepository) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	err = that.client.Set(ctx, gameKeyPrefix+game.ID, gameJSON, that.ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	return nil
}

func (that *RedisGameRepository) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	response, err := that.client.Get(ctx, gameKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	var game entity.Game
	if err = json.Unmarshal(response, &game); err != nil {
		return nil, fmt.Errorf("%w: game %s: %v", ErrCorruptedGame, id, err) //nolint: errorlint // see ErrCorruptedGame
	}

	return &game, nil
}

// Lock - takes `lock:game:<id>` with SET NX PX, retrying with exponential
// backoff until ctx is done or the lock TTL has passed.
func (that *RedisGameRepository) Lock(ctx context.Context, id string) (func(), error) {
	key := lockKeyPrefix + id
	token := uuid.NewString()

	_, err := backoff.Retry(ctx, func() (bool, error) {
		ok, err := that.client.SetNX(ctx, key, token, that.lockTTL).Result()
		if err != nil {
			return false, backoff.Permanent(fmt.Errorf("failed to set lock: %w", err))
		}
		if !ok {
			return false, ErrLockNotAcquired
		}
		return true, nil
	},
		backoff.WithBackOff(newLockBackOff()),
		backoff.WithMaxElapsedTime(that.lockTTL),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to lock game %s: %w", id, err)
	}

	return func() {
		// the caller's ctx may already be canceled
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		defer cancel()

		_ = releaseScript.Run(releaseCtx, that.client, []string{key}, token).Err()
	}, nil
}

func newLockBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 10 * time.Millisecond
	b.MaxInterval = 250 * time.Millisecond

	return b
}

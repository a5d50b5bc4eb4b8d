package repository

import (
	"context"
	"sync"

	"github.com/chrislara01/tic-tac-toe-fullstack/internal/apperror"
	"github.com/chrislara01/tic-tac-toe-fullstack/internal/entity"
	"github.com/chrislara01/tic-tac-toe-fullstack/internal/pkg"
)

// MemoryGameRepository keeps deep copies of games in a map. Callers never
// share a *entity.Game with the store.
type MemoryGameRepository struct {
	mu    sync.RWMutex
	games map[string]*entity.Game
	locks *pkg.KeyedMutex
}

func NewMemoryGameRepository() *MemoryGameRepository {
	return &MemoryGameRepository{
		games: make(map[string]*entity.Game),
		locks: pkg.NewKeyedMutex(),
	}
}

func (that *MemoryGameRepository) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.games[game.ID] = game.Clone()

	return nil
}

func (that *MemoryGameRepository) GetByID(_ context.Context, id string) (*entity.Game, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	game, ok := that.games[id]
	if !ok {
		return nil, apperror.ErrNotFound
	}

	return game.Clone(), nil
}

func (that *MemoryGameRepository) Lock(ctx context.Context, id string) (func(), error) {
	return that.locks.Lock(ctx, id)
}

package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrislara01/tic-tac-toe-fullstack/internal/apperror"
	"github.com/chrislara01/tic-tac-toe-fullstack/internal/entity"
	"github.com/chrislara01/tic-tac-toe-fullstack/internal/repository/storage"
	"github.com/chrislara01/tic-tac-toe-fullstack/testing/suite"
)

func TestMemoryGameRepository(t *testing.T) {
	testGameRepository(t, context.Background(), NewMemoryGameRepository())

	t.Run("Stored games are copies", func(t *testing.T) {
		ctx := context.Background()
		repo := NewMemoryGameRepository()

		// Given: a saved game
		game := entity.NewGame("copy", entity.EasyDifficulty, true, entity.MarkX)
		require.NoError(t, repo.CreateOrUpdate(ctx, game))

		// When: the caller mutates its own pointer and a loaded copy
		require.NoError(t, game.ApplyMove(5, entity.MarkX))
		loaded, err := repo.GetByID(ctx, "copy")
		require.NoError(t, err)
		loaded.Moves = append(loaded.Moves, 1)

		// Then: the stored game is untouched
		again, err := repo.GetByID(ctx, "copy")
		require.NoError(t, err)
		assert.Empty(t, again.Moves)
		assert.Equal(t, entity.EmptyBoard(), again.Board)
	})
}

func TestSQLGameRepository_SQLite(t *testing.T) {
	ctx, st := suite.NewSQLite(t)
	repo := NewSQLGameRepository(st.SQL.Connection, st.SQL.Dialect)

	testGameRepository(t, ctx, repo)

	t.Run("Corrupted rows are storage errors", func(t *testing.T) {
		// Given: a row whose symbols cannot be decoded
		_, err := st.SQL.Connection.ExecContext(ctx, repo.rebind(upsertGameQuery),
			"broken", "         ", "z", "easy", "in_progress", "x", "o", "[]", 0, 0)
		require.NoError(t, err)

		// When: loading it
		_, err = repo.GetByID(ctx, "broken")

		// Then: it is reported as corruption, never as a bad move
		require.ErrorIs(t, err, ErrCorruptedGame)
		assert.NotErrorIs(t, err, apperror.ErrInvalidMove)
		assert.NotErrorIs(t, err, entity.ErrUnknownMark)
	})
}

func TestSQLGameRepository_Postgres(t *testing.T) {
	ctx, st := suite.NewPostgres(t)

	testGameRepository(t, ctx, NewSQLGameRepository(st.SQL.Connection, st.SQL.Dialect))

	t.Run("Lock is shared between instances", func(t *testing.T) {
		// Given: two repositories over the same database, the first holding the lock
		first := NewSQLGameRepository(st.SQL.Connection, st.SQL.Dialect)
		second := NewSQLGameRepository(st.SQL.Connection, st.SQL.Dialect)

		unlock, err := first.Lock(ctx, "shared")
		require.NoError(t, err)

		// When: the second instance tries to take it
		waitCtx, cancel := context.WithTimeout(ctx, 200*time.Millisecond)
		defer cancel()
		_, err = second.Lock(waitCtx, "shared")

		// Then: it waits until its context gives up
		require.Error(t, err)

		// and succeeds once the first instance releases
		unlock()
		unlockSecond, err := second.Lock(ctx, "shared")
		require.NoError(t, err)
		unlockSecond()
	})
}

func TestRedisGameRepository(t *testing.T) {
	ctx, st := suite.NewRedis(t)

	testGameRepository(t, ctx, NewRedisGameRepository(st.Redis, WithLockTTL(2*time.Second)))

	t.Run("Games expire after the TTL", func(t *testing.T) {
		repo := NewRedisGameRepository(st.Redis, WithGameTTL(time.Minute))
		game := entity.NewGame("ttl", entity.EasyDifficulty, true, entity.MarkX)

		require.NoError(t, repo.CreateOrUpdate(ctx, game))

		ttl, err := st.Redis.TTL(ctx, gameKeyPrefix+"ttl").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
		assert.LessOrEqual(t, ttl, time.Minute)
	})

	t.Run("Corrupted games are storage errors", func(t *testing.T) {
		repo := NewRedisGameRepository(st.Redis)
		require.NoError(t, st.Redis.Set(ctx, gameKeyPrefix+"broken", `{"id":"broken","board":"???"}`, 0).Err())

		_, err := repo.GetByID(ctx, "broken")

		require.ErrorIs(t, err, ErrCorruptedGame)
		assert.NotErrorIs(t, err, apperror.ErrInvalidBoard)
	})

	t.Run("Lock gives up after the lock TTL", func(t *testing.T) {
		repo := NewRedisGameRepository(st.Redis, WithLockTTL(200*time.Millisecond))

		// Given: a lock held by someone else
		require.NoError(t, st.Redis.Set(ctx, lockKeyPrefix+"busy", "other", time.Minute).Err())

		// When: trying to take it
		_, err := repo.Lock(ctx, "busy")

		// Then: acquisition fails
		require.ErrorIs(t, err, ErrLockNotAcquired)

		// and the foreign lock is still there
		owner, err := st.Redis.Get(ctx, lockKeyPrefix+"busy").Result()
		require.NoError(t, err)
		assert.Equal(t, "other", owner)
	})
}

func testGameRepository(t *testing.T, ctx context.Context, repo GameRepository) {
	t.Helper()

	t.Run("GetByID_NotFound", func(t *testing.T) {
		// When: GetByID is called with a non-existent ID
		game, err := repo.GetByID(ctx, "9999999")

		// Then: ErrNotFound is returned
		require.ErrorIs(t, err, apperror.ErrNotFound)
		assert.Nil(t, game)
	})

	t.Run("CreateOrUpdate_RoundTrip", func(t *testing.T) {
		// Given: a game with a few moves
		game := entity.NewGame("round-trip", entity.HardDifficulty, false, entity.MarkO)
		require.NoError(t, game.ApplyMove(5, entity.MarkX))
		require.NoError(t, game.ApplyMove(7, entity.MarkO))

		// When: it is saved and loaded
		require.NoError(t, repo.CreateOrUpdate(ctx, game))
		loaded, err := repo.GetByID(ctx, game.ID)

		// Then: every field survives
		require.NoError(t, err)
		assert.Equal(t, game, loaded)
	})

	t.Run("CreateOrUpdate_Overwrites", func(t *testing.T) {
		// Given: a saved game
		game := entity.NewGame("overwrite", entity.MediumDifficulty, true, entity.MarkX)
		require.NoError(t, repo.CreateOrUpdate(ctx, game))

		// When: it changes and is saved again
		require.NoError(t, game.ApplyMove(1, entity.MarkX))
		require.NoError(t, repo.CreateOrUpdate(ctx, game))

		// Then: the latest state is returned
		loaded, err := repo.GetByID(ctx, game.ID)
		require.NoError(t, err)
		assert.Equal(t, []int{1}, loaded.Moves)
		assert.Equal(t, "      x  ", loaded.Board.String())
		assert.Equal(t, entity.MarkO, loaded.NextPlayer)
	})

	t.Run("Lock_SerializesSameID", func(t *testing.T) {
		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			holders int
			overlap bool
		)

		for range 5 {
			wg.Add(1)
			go func() {
				defer wg.Done()

				unlock, err := repo.Lock(ctx, "locked")
				if !assert.NoError(t, err) {
					return
				}
				defer unlock()

				mu.Lock()
				holders++
				if holders > 1 {
					overlap = true
				}
				mu.Unlock()

				time.Sleep(5 * time.Millisecond)

				mu.Lock()
				holders--
				mu.Unlock()
			}()
		}
		wg.Wait()

		assert.False(t, overlap)
	})

	t.Run("Lock_DifferentIDsAreIndependent", func(t *testing.T) {
		unlockA, err := repo.Lock(ctx, "a")
		require.NoError(t, err)
		defer unlockA()

		lockCtx, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()

		unlockB, err := repo.Lock(lockCtx, "b")
		require.NoError(t, err)
		unlockB()
	})
}

func TestSQLGameRepository_Rebind(t *testing.T) {
	postgres := NewSQLGameRepository(nil, storage.DialectPostgres)
	sqlite := NewSQLGameRepository(nil, storage.DialectSQLite)

	assert.Equal(t, "SELECT a FROM t WHERE x = $1 AND y = $2", postgres.rebind("SELECT a FROM t WHERE x = ? AND y = ?"))
	assert.Equal(t, "SELECT a FROM t WHERE x = ?", sqlite.rebind("SELECT a FROM t WHERE x = ?"))
}

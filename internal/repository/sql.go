package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/chrislara01/tic-tac-toe-fullstack/internal/apperror"
	"github.com/chrislara01/tic-tac-toe-fullstack/internal/entity"
	"github.com/chrislara01/tic-tac-toe-fullstack/internal/pkg"
	"github.com/chrislara01/tic-tac-toe-fullstack/internal/repository/storage"
)

const upsertGameQuery = `INSERT INTO games
	(id, board, next_player, difficulty, status, human_symbol, computer_symbol, moves, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
	board = excluded.board,
	next_player = excluded.next_player,
	difficulty = excluded.difficulty,
	status = excluded.status,
	human_symbol = excluded.human_symbol,
	computer_symbol = excluded.computer_symbol,
	moves = excluded.moves,
	updated_at = excluded.updated_at`

const selectGameQuery = `SELECT
	id, board, next_player, difficulty, status, human_symbol, computer_symbol, moves, created_at, updated_at
FROM games WHERE id = ?`

const (
	advisoryLockQuery   = `SELECT pg_advisory_lock(hashtext($1))`
	advisoryUnlockQuery = `SELECT pg_advisory_unlock(hashtext($1))`
)

// SQLGameRepository stores games in a relational table. Locks are taken
// in-process first; on postgres a session advisory lock then serializes
// instances that share the database.
type SQLGameRepository struct {
	conn    *sql.DB
	dialect storage.Dialect
	locks   *pkg.KeyedMutex
}

func NewSQLGameRepository(conn *sql.DB, dialect storage.Dialect) *SQLGameRepository {
	return &SQLGameRepository{
		conn:    conn,
		dialect: dialect,
		locks:   pkg.NewKeyedMutex(),
	}
}

func (that *SQLGameRepository) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	moves, err := json.Marshal(game.Moves)
	if err != nil {
		return fmt.Errorf("could not marshal moves: %w", err)
	}

	_, err = that.conn.ExecContext(ctx, that.rebind(upsertGameQuery),
		game.ID,
		game.Board.String(),
		game.NextPlayer.String(),
		string(game.Difficulty),
		string(game.Status),
		game.HumanMark.String(),
		game.ComputerMark.String(),
		string(moves),
		game.CreatedAt.UnixNano(),
		game.UpdatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("can't save game: %w", err)
	}

	return nil
}

func (that *SQLGameRepository) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	var (
		game                               entity.Game
		board, next, difficulty, status    string
		humanSymbol, computerSymbol, moves string
		createdAt, updatedAt               int64
	)

	err := that.conn.QueryRowContext(ctx, that.rebind(selectGameQuery), id).Scan(
		&game.ID, &board, &next, &difficulty, &status, &humanSymbol, &computerSymbol, &moves, &createdAt, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't find game: %w", err)
	}

	if game.Board, err = entity.ParseBoard(board); err != nil {
		return nil, corrupted(id, err)
	}
	if game.NextPlayer, err = entity.ParseMark(next); err != nil {
		return nil, corrupted(id, err)
	}
	if game.HumanMark, err = entity.ParseMark(humanSymbol); err != nil {
		return nil, corrupted(id, err)
	}
	if game.ComputerMark, err = entity.ParseMark(computerSymbol); err != nil {
		return nil, corrupted(id, err)
	}
	if err = json.Unmarshal([]byte(moves), &game.Moves); err != nil {
		return nil, corrupted(id, err)
	}

	game.Difficulty = entity.Difficulty(difficulty)
	game.Status = entity.Status(status)
	game.CreatedAt = time.Unix(0, createdAt).UTC()
	game.UpdatedAt = time.Unix(0, updatedAt).UTC()

	return &game, nil
}

func (that *SQLGameRepository) Lock(ctx context.Context, id string) (func(), error) {
	unlock, err := that.locks.Lock(ctx, id)
	if err != nil {
		return nil, err
	}

	if that.dialect != storage.DialectPostgres {
		return unlock, nil
	}

	conn, err := that.conn.Conn(ctx)
	if err != nil {
		unlock()
		return nil, fmt.Errorf("can't get connection for lock: %w", err)
	}

	if _, err = conn.ExecContext(ctx, advisoryLockQuery, id); err != nil {
		discard(conn)
		unlock()
		return nil, fmt.Errorf("can't take advisory lock on game %s: %w", id, err)
	}

	return func() {
		defer unlock()

		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		defer cancel()

		if _, err := conn.ExecContext(releaseCtx, advisoryUnlockQuery, id); err != nil {
			discard(conn)
			return
		}
		_ = conn.Close()
	}, nil
}

// discard - closes conn without returning it to the pool, since its session
// may still hold an advisory lock.
func discard(conn *sql.Conn) {
	_ = conn.Raw(func(any) error { return driver.ErrBadConn })
	_ = conn.Close()
}

func corrupted(id string, err error) error {
	return fmt.Errorf("%w: game %s: %v", ErrCorruptedGame, id, err) //nolint: errorlint // see ErrCorruptedGame
}

// rebind - rewrites `?` placeholders as `$n` for postgres.
func (that *SQLGameRepository) rebind(query string) string {
	if that.dialect != storage.DialectPostgres {
		return query
	}

	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteString("$" + strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}

	return sb.String()
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/chrislara01/tic-tac-toe-fullstack/internal/apperror"
	"github.com/chrislara01/tic-tac-toe-fullstack/internal/entity"
	"github.com/chrislara01/tic-tac-toe-fullstack/internal/pkg"
	"github.com/chrislara01/tic-tac-toe-fullstack/internal/strategy"
)

const tracerName = "github.com/chrislara01/tic-tac-toe-fullstack/internal/usecase"

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	Lock(ctx context.Context, id string) (func(), error)
}

// GameManager creates games and plays human moves with the computer's reply.
// Each call saves the game exactly once.
type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo

	strategyOpts strategy.Options
	tracer       trace.Tracer
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, strategyOpts strategy.Options) *GameManager {
	if strategyOpts.Logger == nil {
		strategyOpts.Logger = logger
	}

	return &GameManager{
		logger:   logger.With("component", "GameManager"),
		gameRepo: gameRepo,

		strategyOpts: strategyOpts,
		tracer:       otel.Tracer(tracerName),
	}
}

// CreateGame - starts a game; when the computer opens, its first move is already on the board.
func (that *GameManager) CreateGame(
	ctx context.Context,
	difficulty entity.Difficulty,
	firstPlayerIsHuman bool,
	humanMark entity.Mark,
) (*entity.Game, error) {
	ctx, span := that.tracer.Start(ctx, "GameManager.CreateGame")
	defer span.End()

	log := that.logger.With("method", "CreateGame")

	if _, err := entity.ParseDifficulty(string(difficulty)); err != nil {
		return nil, err
	}
	if !humanMark.IsPlayer() {
		return nil, fmt.Errorf("%w: human mark must be x or o", apperror.ErrInvalidMove)
	}

	game := entity.NewGame(pkg.GenerateGameID(), difficulty, firstPlayerIsHuman, humanMark)
	span.SetAttributes(attribute.String("game.id", game.ID), attribute.String("game.difficulty", string(difficulty)))

	if !firstPlayerIsHuman {
		position, err := that.computerMove(ctx, game)
		if err != nil {
			return nil, fmt.Errorf("failed to make opening move: %w", err)
		}

		log.InfoContext(ctx, "ai_opening_move", "game_id", game.ID, "pos", position, "difficulty", game.Difficulty)
	}

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to save game: %w", err)
	}

	return game, nil
}

// GetGame - returns (nil, nil) when the game does not exist.
func (that *GameManager) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, nil //nolint: nilnil // absent game is not an error here
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// PlayHumanMove - applies the human move and, if the game goes on, the
// computer's answer. The returned position is nil when the computer did not move.
func (that *GameManager) PlayHumanMove(ctx context.Context, id string, position int) (*entity.Game, *int, error) {
	ctx, span := that.tracer.Start(ctx, "GameManager.PlayHumanMove",
		trace.WithAttributes(attribute.String("game.id", id), attribute.Int("game.position", position)))
	defer span.End()

	log := that.logger.With("method", "PlayHumanMove")

	unlock, err := that.gameRepo.Lock(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to lock game: %w", err)
	}
	defer unlock()

	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get game: %w", err)
	}

	if game.IsOver() {
		return nil, nil, apperror.ErrGameOver
	}

	if !game.IsHumanTurn() {
		return nil, nil, apperror.ErrNotHumanTurn
	}

	if err = game.ApplyMove(position, game.HumanMark); err != nil {
		return nil, nil, fmt.Errorf("failed to apply human move: %w", err)
	}

	var aiMove *int
	if !game.IsOver() {
		computerPosition, err := that.computerMove(ctx, game)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to make computer move: %w", err)
		}
		aiMove = &computerPosition

		log.InfoContext(ctx, "ai_move", "game_id", game.ID, "pos", computerPosition, "difficulty", game.Difficulty)
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, nil, fmt.Errorf("failed to save game: %w", err)
	}

	span.SetAttributes(attribute.String("game.status", string(game.Status)))

	return game, aiMove, nil
}

func (that *GameManager) computerMove(ctx context.Context, game *entity.Game) (int, error) {
	position, err := strategy.For(game.Difficulty, that.strategyOpts).SelectMove(ctx, game.Board, game.ComputerMark)
	if err != nil {
		return 0, err
	}

	if err = game.ApplyMove(position, game.ComputerMark); err != nil {
		return 0, err
	}

	return position, nil
}

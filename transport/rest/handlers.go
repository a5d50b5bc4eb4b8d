package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/chrislara01/tic-tac-toe-fullstack/internal/apperror"
	"github.com/chrislara01/tic-tac-toe-fullstack/internal/entity"
)

const maxBodyBytes = 1 << 16

type gameUseCase interface {
	CreateGame(ctx context.Context, difficulty entity.Difficulty, firstPlayerIsHuman bool, humanMark entity.Mark) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	PlayHumanMove(ctx context.Context, id string, position int) (*entity.Game, *int, error)
}

type createGameRequest struct {
	Difficulty  *string `json:"difficulty"`
	FirstPlayer *string `json:"first_player"`
	HumanSymbol *string `json:"human_symbol"`
}

type moveRequest struct {
	Position *int `json:"position"`
}

type gameResponse struct {
	ID             string    `json:"id"`
	Board          string    `json:"board"`
	NextPlayer     string    `json:"next_player"`
	Difficulty     string    `json:"difficulty"`
	Status         string    `json:"status"`
	HumanSymbol    string    `json:"human_symbol"`
	ComputerSymbol string    `json:"computer_symbol"`
	Moves          []int     `json:"moves"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type moveResponse struct {
	gameResponse
	AIMove *int `json:"ai_move"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type errorResponse struct {
	Detail string       `json:"detail"`
	Errors []fieldError `json:"errors,omitempty"`
}

type gameHandlers struct {
	logger *slog.Logger
	games  gameUseCase
}

func newGameHandlers(logger *slog.Logger, games gameUseCase) *gameHandlers {
	return &gameHandlers{
		logger: logger.With("component", "rest.games"),
		games:  games,
	}
}

func (that *gameHandlers) createGame(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "createGame")

	var req createGameRequest
	if err := decodeBody(r, &req, true); err != nil {
		writeValidation(w, fieldError{Field: "body", Message: err.Error()})
		return
	}

	difficulty, firstIsHuman, humanMark, problems := req.validate()
	if len(problems) > 0 {
		writeValidation(w, problems...)
		return
	}

	game, err := that.games.CreateGame(r.Context(), difficulty, firstIsHuman, humanMark)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	log.InfoContext(r.Context(), "create_game_ok",
		"game_id", game.ID, "difficulty", game.Difficulty, "first_player_is_human", firstIsHuman, "human_symbol", humanMark)

	writeJSON(w, http.StatusOK, toGameResponse(game))
}

func (that *gameHandlers) getGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, r, err)
		return
	}
	if game == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Detail: "game_not_found"})
		return
	}

	writeJSON(w, http.StatusOK, toGameResponse(game))
}

func (that *gameHandlers) postMove(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "postMove")
	id := chi.URLParam(r, "id")

	var req moveRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeValidation(w, fieldError{Field: "body", Message: err.Error()})
		return
	}

	switch {
	case req.Position == nil:
		writeValidation(w, fieldError{Field: "position", Message: "field required"})
		return
	case *req.Position < 1 || *req.Position > 9:
		writeValidation(w, fieldError{Field: "position", Message: "must be between 1 and 9"})
		return
	}

	game, aiMove, err := that.games.PlayHumanMove(r.Context(), id, *req.Position)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	log.InfoContext(r.Context(), "human_move_ok", "game_id", id, "human_pos", *req.Position, "ai_pos", aiMove)

	writeJSON(w, http.StatusOK, moveResponse{gameResponse: toGameResponse(game), AIMove: aiMove})
}

// writeError - maps core errors onto status codes.
func (that *gameHandlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Detail: "game_not_found"})
	case errors.Is(err, apperror.ErrGameOver):
		writeJSON(w, http.StatusConflict, errorResponse{Detail: "game_is_over"})
	case errors.Is(err, apperror.ErrNotHumanTurn):
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "not_human_turn"})
	case errors.Is(err, apperror.ErrInvalidMove), errors.Is(err, apperror.ErrInvalidBoard):
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: err.Error()})
	case errors.Is(err, entity.ErrUnknownDifficulty):
		writeValidation(w, fieldError{Field: "difficulty", Message: err.Error()})
	default:
		that.logger.ErrorContext(r.Context(), "request_failed", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: "internal_error"})
	}
}

func (that *createGameRequest) validate() (entity.Difficulty, bool, entity.Mark, []fieldError) {
	var problems []fieldError

	difficulty := entity.EasyDifficulty
	if that.Difficulty != nil {
		parsed, err := entity.ParseDifficulty(*that.Difficulty)
		if err != nil {
			problems = append(problems, fieldError{Field: "difficulty", Message: "must be one of easy, medium, hard"})
		}
		difficulty = parsed
	}

	firstIsHuman := true
	if that.FirstPlayer != nil {
		switch *that.FirstPlayer {
		case "human":
		case "computer":
			firstIsHuman = false
		default:
			problems = append(problems, fieldError{Field: "first_player", Message: "must be one of human, computer"})
		}
	}

	humanMark := entity.MarkX
	if that.HumanSymbol != nil {
		parsed, err := entity.ParseMark(*that.HumanSymbol)
		if err != nil {
			problems = append(problems, fieldError{Field: "human_symbol", Message: "must be one of x, o"})
		}
		humanMark = parsed
	}

	return difficulty, firstIsHuman, humanMark, problems
}

func toGameResponse(game *entity.Game) gameResponse {
	moves := game.Moves
	if moves == nil {
		moves = []int{}
	}

	return gameResponse{
		ID:             game.ID,
		Board:          game.Board.String(),
		NextPlayer:     game.NextPlayer.String(),
		Difficulty:     string(game.Difficulty),
		Status:         string(game.Status),
		HumanSymbol:    game.HumanMark.String(),
		ComputerSymbol: game.ComputerMark.String(),
		Moves:          moves,
		CreatedAt:      game.CreatedAt,
		UpdatedAt:      game.UpdatedAt,
	}
}

// decodeBody - reads a JSON body. An empty body is allowed only when allowEmpty is set.
func decodeBody(r *http.Request, dst any, allowEmpty bool) error {
	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))

	err := decoder.Decode(dst)
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) && allowEmpty {
		return nil
	}
	if errors.Is(err, io.EOF) {
		return errors.New("request body is empty")
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Errorf("%s must be %s", typeErr.Field, typeErr.Type.String())
	}

	return fmt.Errorf("malformed JSON: %w", err)
}

func writeValidation(w http.ResponseWriter, problems ...fieldError) {
	writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Detail: "Validation error", Errors: problems})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

package strategy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/chrislara01/tic-tac-toe-fullstack/internal/entity"
)

const DefaultRemoteTimeout = 10 * time.Second

const tracerName = "github.com/chrislara01/tic-tac-toe-fullstack/internal/strategy"

var errUnusableAnswer = errors.New("unusable model answer")

// Remote asks a text-generation model for a move and wraps the answer in
// deterministic guardrails. It never returns a remote failure to the caller:
// any problem degrades to the Heuristic move.
type Remote struct {
	logger   *slog.Logger
	client   ModelClient
	timeout  time.Duration
	fallback *Heuristic
	tracer   trace.Tracer
}

func NewRemote(logger *slog.Logger, client ModelClient, timeout time.Duration) *Remote {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = DefaultRemoteTimeout
	}

	return &Remote{
		logger:   logger.With("component", "strategy.Remote"),
		client:   client,
		timeout:  timeout,
		fallback: NewHeuristic(),
		tracer:   otel.Tracer(tracerName),
	}
}

func (that *Remote) SelectMove(ctx context.Context, board entity.Board, me entity.Mark) (int, error) {
	ctx, span := that.tracer.Start(ctx, "strategy.Remote.SelectMove")
	defer span.End()

	log := that.logger.With("method", "SelectMove")

	if len(board.AvailablePositions()) == 0 {
		return 0, ErrNoAvailableMoves
	}

	candidate, err := that.ask(ctx, board, me)
	if err != nil {
		log.WarnContext(ctx, "remote_strategy_fallback", "reason", err.Error(), "board", board.String())
		span.SetAttributes(attribute.Bool("strategy.fallback", true))
		return that.fallback.SelectMove(ctx, board, me)
	}

	position := guard(board, me, candidate)
	span.SetAttributes(
		attribute.Int("strategy.candidate", candidate),
		attribute.Int("strategy.position", position),
	)

	return position, nil
}

func (that *Remote) ask(ctx context.Context, board entity.Board, me entity.Mark) (int, error) {
	if that.client == nil {
		return 0, fmt.Errorf("%w: no model client configured", errUnusableAnswer)
	}

	ctx, cancel := context.WithTimeout(ctx, that.timeout)
	defer cancel()

	text, err := that.client.Generate(ctx, buildPrompt(board, me))
	if err != nil {
		return 0, fmt.Errorf("failed to generate move: %w", err)
	}

	position, err := parsePosition(text)
	if err != nil {
		return 0, err
	}

	if !slices.Contains(board.AvailablePositions(), position) {
		return 0, fmt.Errorf("%w: position %d is not available", errUnusableAnswer, position)
	}

	return position, nil
}

// guard - overrides a valid candidate with a forced win, a forced block, or
// the center on the first two plies. A candidate that already wins or blocks is kept.
func guard(board entity.Board, me entity.Mark, candidate int) int {
	if win, ok := winningMove(board, me); ok {
		if completesLine(board, candidate, me) {
			return candidate
		}
		return win
	}

	if block, ok := winningMove(board, me.Other()); ok {
		if completesLine(board, candidate, me.Other()) {
			return candidate
		}
		return block
	}

	xs, os := board.Counts()
	if xs+os <= 1 && board.IsEmptyAt(entity.CenterPosition) && candidate != entity.CenterPosition {
		return entity.CenterPosition
	}

	return candidate
}

func buildPrompt(board entity.Board, me entity.Mark) string {
	available := board.AvailablePositions()
	list := make([]string, 0, len(available))
	for _, position := range available {
		list = append(list, fmt.Sprint(position))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a Tic-Tac-Toe grandmaster playing as '%s'.\n", me)
	sb.WriteString("The board is a 9-character string in numpad order: top row 7 8 9, middle 4 5 6, bottom 1 2 3.\n")
	sb.WriteString("Each character is 'x', 'o', or a single space for an empty cell.\n\n")
	fmt.Fprintf(&sb, "Board string: %q\n", board.String())
	fmt.Fprintf(&sb, "Available positions (numpad): [%s]\n\n", strings.Join(list, ", "))
	fmt.Fprintf(&sb, "Choose the best move for '%s'.\n", me)
	sb.WriteString(`Answer with a JSON object {"position": <int>} where position is one of the available positions. No other text.`)

	return sb.String()
}

// parsePosition - reads {"position": n} from the model text. Code fences are
// tolerated and a bare integer is accepted.
func parsePosition(text string) (int, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	if text == "" || !gjson.Valid(text) {
		return 0, fmt.Errorf("%w: %q", errUnusableAnswer, truncate(text, 64))
	}

	value := gjson.Parse(text)
	if value.IsObject() {
		value = value.Get("position")
	}

	if value.Type != gjson.Number {
		return 0, fmt.Errorf("%w: no numeric position in %q", errUnusableAnswer, truncate(text, 64))
	}

	f := value.Float()
	position := int(f)
	if float64(position) != f || position < 1 || position > 9 {
		return 0, fmt.Errorf("%w: position %v out of range", errUnusableAnswer, f)
	}

	return position, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

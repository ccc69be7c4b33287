package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-bot/internal/codec"
	"github.com/rocketscienceinc/tictactoe-bot/internal/telemetry"
	"github.com/rocketscienceinc/tictactoe-bot/internal/tictactoe"
)

type chatLocker interface {
	Lock(ctx context.Context, chatID int64) (func() error, error)
}

type autoPlayer interface {
	Move(session *tictactoe.Session) (*tictactoe.Win, error)
}

type gameMetrics interface {
	GameStarted(ctx context.Context)
	MoveRejected(ctx context.Context)
	GameFinished(ctx context.Context, outcome string)
}

// GameManager runs one update cycle per chat event. It keeps no game state:
// every move rebuilds the session from the keyboard it was tapped on.
type GameManager struct {
	logger *slog.Logger

	locker  chatLocker
	player  autoPlayer
	metrics gameMetrics

	thinkMin time.Duration
	thinkMax time.Duration
}

type Option func(*GameManager)

// WithThinkTime bounds the random pause before the bot answers.
func WithThinkTime(minDelay, maxDelay time.Duration) Option {
	return func(that *GameManager) {
		that.thinkMin = max(minDelay, 0)
		that.thinkMax = max(maxDelay, that.thinkMin)
	}
}

func NewGameManager(logger *slog.Logger, locker chatLocker, player autoPlayer, metrics gameMetrics, opts ...Option) *GameManager {
	manager := &GameManager{
		logger:  logger.With("component", "game_manager"),
		locker:  locker,
		player:  player,
		metrics: metrics,
	}

	for _, opt := range opts {
		opt(manager)
	}

	return manager
}

// HandleUpdate returns the reply for one update. Rejected moves produce a reply;
// only broken input or internal contract violations produce an error.
func (that *GameManager) HandleUpdate(ctx context.Context, update Update) (*Reply, error) {
	switch update.Kind {
	case UpdateStart:
		return &Reply{Text: startMessage(update.UserName)}, nil
	case UpdateHelp:
		return &Reply{Text: MsgHelp}, nil
	case UpdateNewGame:
		that.metrics.GameStarted(ctx)
		return &Reply{Text: MsgNewGame, Keyboard: codec.Encode(tictactoe.NewSession())}, nil
	case UpdateMove:
		return that.handleMove(ctx, update)
	default:
		return &Reply{Text: unknownMessage(update.Text)}, nil
	}
}

func (that *GameManager) handleMove(ctx context.Context, update Update) (*Reply, error) {
	log := that.logger.With("method", "handleMove", "chatID", update.ChatID, "updateID", update.ID)

	unlock, err := that.locker.Lock(ctx, update.ChatID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock chat: %w", err)
	}

	defer func() {
		if err := unlock(); err != nil {
			log.Error("failed to unlock chat", "error", err)
		}
	}()

	session, err := codec.Decode(update.Keyboard)
	if err != nil {
		return nil, fmt.Errorf("failed to decode board: %w", err)
	}

	human := session.First()

	win, err := session.ApplyIndex(human, update.Cell)
	if apperror.IsMoveRejected(err) {
		log.Debug("move rejected", "cell", update.Cell, "reason", err)
		that.metrics.MoveRejected(ctx)

		return &Reply{Text: MsgWrongTurn, Keyboard: codec.Encode(session)}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	if reply, done, err := that.finish(ctx, session, win, telemetry.OutcomeHumanWon, MsgYouWon); done || err != nil {
		return reply, err
	}

	if err = that.think(ctx); err != nil {
		return nil, err
	}

	win, err = that.player.Move(session)
	if err != nil {
		return nil, fmt.Errorf("bot failed to make turn: %w", err)
	}

	if reply, done, err := that.finish(ctx, session, win, telemetry.OutcomeBotWon, MsgIWon); done || err != nil {
		return reply, err
	}

	log.Debug("board after turn", "board", session.Board().String())

	return &Reply{Text: MsgYourTurn, Keyboard: codec.Encode(session)}, nil
}

// finish builds the final reply when the last move ended the game.
func (that *GameManager) finish(ctx context.Context, session *tictactoe.Session, win *tictactoe.Win, outcome, text string) (*Reply, bool, error) {
	if win == nil {
		draw, err := session.IsDraw()
		if err != nil {
			return nil, false, fmt.Errorf("failed to check draw: %w", err)
		}

		if !draw {
			return nil, false, nil
		}

		outcome, text = telemetry.OutcomeDraw, MsgDraw
	}

	that.metrics.GameFinished(ctx, outcome)

	return &Reply{Text: text, Keyboard: codec.Encode(session)}, true, nil
}

// think pauses for a random time between the configured bounds.
func (that *GameManager) think(ctx context.Context) error {
	delay := that.thinkMin
	if span := that.thinkMax - that.thinkMin; span > 0 {
		delay += rand.N(span)
	}

	if delay <= 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("bot stopped thinking: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}

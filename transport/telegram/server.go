package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rocketscienceinc/tictactoe-bot/internal/usecase"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const msgInternalError = "something went wrong, type /new for new game"

type uGame interface {
	HandleUpdate(ctx context.Context, update usecase.Update) (*usecase.Reply, error)
}

// botAPI is the part of *tgbotapi.BotAPI the server uses.
type botAPI interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type queuedUpdate struct {
	update     usecase.Update
	callbackID string
}

type Server struct {
	logger *slog.Logger
	bot    botAPI
	uGame  uGame
	tracer trace.Tracer

	chatQueue   int
	pollTimeout int

	mu sync.Mutex
	// pending holds a key for every chat with a handler running and the
	// updates waiting behind it.
	pending map[int64][]queuedUpdate
}

func New(logger *slog.Logger, bot botAPI, uGame uGame, tracer trace.Tracer, chatQueue, pollTimeout int) *Server {
	if chatQueue <= 0 {
		chatQueue = 1
	}

	return &Server{
		logger:      logger.With("component", "telegram"),
		bot:         bot,
		uGame:       uGame,
		tracer:      tracer,
		chatQueue:   chatQueue,
		pollTimeout: pollTimeout,
		pending:     make(map[int64][]queuedUpdate),
	}
}

// Start - polls updates until ctx is done. Each chat is handled on its own
// goroutine, one update at a time, so a slow chat never holds up the others.
func (that *Server) Start(ctx context.Context) error {
	log := that.logger.With("method", "Start")

	config := tgbotapi.NewUpdate(0)
	config.Timeout = that.pollTimeout

	updates := that.bot.GetUpdatesChan(config)
	defer that.bot.StopReceivingUpdates()

	var group errgroup.Group

	log.Info("polling updates", "chatQueue", that.chatQueue)

	for {
		select {
		case <-ctx.Done():
			return that.wait(&group)
		case raw, ok := <-updates:
			if !ok {
				return that.wait(&group)
			}

			update, ok := toUpdate(raw)
			if !ok {
				continue
			}

			next := queuedUpdate{update: update}
			if raw.CallbackQuery != nil {
				next.callbackID = raw.CallbackQuery.ID
			}

			that.dispatch(ctx, &group, next)
		}
	}
}

// dispatch queues the update behind the chat's running handler, or starts one.
// Updates beyond chatQueue waiting for one chat are dropped.
func (that *Server) dispatch(ctx context.Context, group *errgroup.Group, next queuedUpdate) {
	chatID := next.update.ChatID

	that.mu.Lock()
	queue, busy := that.pending[chatID]
	if busy {
		if len(queue) >= that.chatQueue {
			that.mu.Unlock()
			that.logger.Warn("chat queue is full, update dropped", "chatID", chatID, "updateID", next.update.ID)

			return
		}

		that.pending[chatID] = append(queue, next)
		that.mu.Unlock()

		return
	}

	that.pending[chatID] = nil
	that.mu.Unlock()

	group.Go(func() error {
		that.drain(ctx, chatID, next)
		return nil
	})
}

// drain handles the chat's updates in arrival order until its queue is empty.
func (that *Server) drain(ctx context.Context, chatID int64, next queuedUpdate) {
	for {
		that.handleUpdate(ctx, next)

		that.mu.Lock()
		queue := that.pending[chatID]
		if len(queue) == 0 || ctx.Err() != nil {
			delete(that.pending, chatID)
			that.mu.Unlock()

			return
		}

		next, that.pending[chatID] = queue[0], queue[1:]
		that.mu.Unlock()
	}
}

func (that *Server) wait(group *errgroup.Group) error {
	if err := group.Wait(); err != nil {
		return fmt.Errorf("update handler failed: %w", err)
	}

	return nil
}

func (that *Server) handleUpdate(ctx context.Context, next queuedUpdate) {
	update := next.update
	log := that.logger.With("method", "handleUpdate", "updateID", update.ID, "chatID", update.ChatID, "kind", update.Kind.String())

	ctx, span := that.tracer.Start(ctx, "telegram.update", trace.WithAttributes(
		attribute.Int("update.id", update.ID),
		attribute.Int64("chat.id", update.ChatID),
		attribute.String("update.kind", update.Kind.String()),
	))
	defer span.End()

	if next.callbackID != "" {
		if _, err := that.bot.Request(tgbotapi.NewCallback(next.callbackID, "")); err != nil {
			log.Error("failed to answer callback query", "error", err)
		}
	}

	reply, err := that.uGame.HandleUpdate(ctx, update)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Error("failed to handle update", "error", err)

		if ctx.Err() != nil {
			return
		}

		reply = &usecase.Reply{Text: msgInternalError}
	}

	if err = that.send(update.ChatID, reply); err != nil {
		log.Error("failed to send reply", "error", err)
	}
}

func (that *Server) send(chatID int64, reply *usecase.Reply) error {
	msg := tgbotapi.NewMessage(chatID, reply.Text)
	if reply.Keyboard != nil {
		msg.ReplyMarkup = toMarkup(reply.Keyboard)
	}

	if _, err := that.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

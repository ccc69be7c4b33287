package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rocketscienceinc/tictactoe-bot/internal/config"
	"github.com/rocketscienceinc/tictactoe-bot/internal/repository"
	"github.com/rocketscienceinc/tictactoe-bot/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-bot/internal/telemetry"
	"github.com/rocketscienceinc/tictactoe-bot/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-bot/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-bot/transport/rest"
	"github.com/rocketscienceinc/tictactoe-bot/transport/telegram"
)

var ErrTokenNotFound = errors.New("telegram bot token is empty")

type chatLocker interface {
	Lock(ctx context.Context, chatID int64) (func() error, error)
}

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	if conf.Telegram.Token == "" {
		return ErrTokenNotFound
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	tel, err := telemetry.New(ctx, conf.Telemetry)
	if err != nil {
		return fmt.Errorf("could not init telemetry: %w", err)
	}

	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err = tel.Shutdown(shutdownCtx); err != nil {
			log.Error("could not shutdown telemetry", "error", err)
		}
	}()

	gameMetrics, err := telemetry.NewGameMetrics(tel.Meter)
	if err != nil {
		return fmt.Errorf("could not create game metrics: %w", err)
	}

	var locker chatLocker = repository.NewMemoryChatLock()
	if conf.Redis.Enabled {
		redisStorage, err := storage.New(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		locker = repository.NewChatLockRepository(redisStorage, conf.Redis.LockTTL)
		log.Info("Using redis chat locks", "addr", conf.Redis.GetRedisAddr())
	}

	bot, err := tgbotapi.NewBotAPI(conf.Telegram.Token)
	if err != nil {
		return fmt.Errorf("could not connect to telegram: %w", err)
	}

	log.Info("Authorized on telegram", "account", bot.Self.UserName)

	gameManager := usecase.NewGameManager(logger, locker, tictactoe.NewAutoPlayer(nil), gameMetrics,
		usecase.WithThinkTime(conf.Bot.ThinkMin, conf.Bot.ThinkMax))

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(ctx, logger, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Telegram polling
	botErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting Telegram polling", "chatQueue", conf.Telegram.ChatQueue)
		server := telegram.New(logger, bot, gameManager, tel.Tracer, conf.Telegram.ChatQueue, conf.Telegram.PollTimeout)
		botErrCh <- server.Start(ctx)
	}()

	return waitServers(ctx, log, cancel, httpErrCh, botErrCh)
}

// waitServers returns only after the Telegram server has stopped, so deferred
// cleanup never runs under handlers that still release chat locks.
func waitServers(ctx context.Context, log *slog.Logger, cancel context.CancelFunc, httpErrCh, botErrCh <-chan error) error {
	select {
	case err := <-httpErrCh:
		cancel()
		if botErr := <-botErrCh; botErr != nil {
			log.Error("telegram server error", "error", botErr)
		}

		return fmt.Errorf("HTTP server error: %w", err)
	case err := <-botErrCh:
		if err != nil {
			return fmt.Errorf("telegram server error: %w", err)
		}

		return nil
	case <-ctx.Done():
		log.Info("Application context canceled, waiting for telegram server")

		if err := <-botErrCh; err != nil {
			return fmt.Errorf("telegram server error: %w", err)
		}

		return nil
	}
}

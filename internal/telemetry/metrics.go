package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Outcomes reported with finished games.
const (
	OutcomeHumanWon = "human_won"
	OutcomeBotWon   = "bot_won"
	OutcomeDraw     = "draw"
)

// GameMetrics counts game lifecycle events.
type GameMetrics struct {
	started  metric.Int64Counter
	rejected metric.Int64Counter
	finished metric.Int64Counter
}

func NewGameMetrics(meter metric.Meter) (*GameMetrics, error) {
	started, err := meter.Int64Counter("tictactoe.games.started",
		metric.WithDescription("Games started with /new or the control button"))
	if err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}

	rejected, err := meter.Int64Counter("tictactoe.moves.rejected",
		metric.WithDescription("Player moves rejected by the rules"))
	if err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}

	finished, err := meter.Int64Counter("tictactoe.games.finished",
		metric.WithDescription("Finished games by outcome"))
	if err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}

	return &GameMetrics{
		started:  started,
		rejected: rejected,
		finished: finished,
	}, nil
}

func (that *GameMetrics) GameStarted(ctx context.Context) {
	that.started.Add(ctx, 1)
}

func (that *GameMetrics) MoveRejected(ctx context.Context) {
	that.rejected.Add(ctx, 1)
}

func (that *GameMetrics) GameFinished(ctx context.Context, outcome string) {
	that.finished.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

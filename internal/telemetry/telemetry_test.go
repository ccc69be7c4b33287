package telemetry

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rocketscienceinc/tictactoe-bot/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestNew(t *testing.T) {
	t.Run("Noop providers without files", func(t *testing.T) {
		tel, err := New(context.Background(), config.Telemetry{})

		require.NoError(t, err)
		assert.NotNil(t, tel.Tracer)
		assert.NotNil(t, tel.Meter)
		assert.NoError(t, tel.Shutdown(context.Background()))
	})

	t.Run("File exporters", func(t *testing.T) {
		dir := t.TempDir()

		tel, err := New(context.Background(), config.Telemetry{
			MetricsFile: filepath.Join(dir, "metrics.log"),
			TracesFile:  filepath.Join(dir, "traces.log"),
		})
		require.NoError(t, err)

		_, span := tel.Tracer.Start(context.Background(), "test")
		span.End()

		assert.NoError(t, tel.Shutdown(context.Background()))
		assert.FileExists(t, filepath.Join(dir, "traces.log"))
	})
}

func TestGameMetrics(t *testing.T) {
	// Given: metrics backed by a manual reader
	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")

	gameMetrics, err := NewGameMetrics(meter)
	require.NoError(t, err)

	// When: a couple of games are played
	gameMetrics.GameStarted(ctx)
	gameMetrics.GameStarted(ctx)
	gameMetrics.MoveRejected(ctx)
	gameMetrics.GameFinished(ctx, OutcomeDraw)

	// Then: every counter is collected
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	totals := map[string]int64{}
	for _, m := range rm.ScopeMetrics[0].Metrics {
		sum, ok := m.Data.(metricdata.Sum[int64])
		require.True(t, ok, m.Name)
		for _, point := range sum.DataPoints {
			totals[m.Name] += point.Value
		}
	}

	assert.Equal(t, map[string]int64{
		"tictactoe.games.started":  2,
		"tictactoe.moves.rejected": 1,
		"tictactoe.games.finished": 1,
	}, totals)
}

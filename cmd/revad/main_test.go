package main

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/revad/autodiff"
)

func TestNewLogger_Level(t *testing.T) {
	ctx := context.Background()

	assert.True(t, newLogger("debug").Enabled(ctx, slog.LevelDebug))
	assert.False(t, newLogger("warn").Enabled(ctx, slog.LevelInfo))
	assert.False(t, newLogger("").Enabled(ctx, slog.LevelDebug), "defaults to info")
	assert.True(t, newLogger("bogus").Enabled(ctx, slog.LevelInfo))
}

func TestDemoGradient(t *testing.T) {
	value, grad, err := autodiff.Gradient(demo, []float64{1, 2, 3})
	require.NoError(t, err)

	assert.Equal(t, 2.0+6+12, value)
	assert.Equal(t, []float64{3, 5, 7}, grad)
}

package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveHorizonMapping(t *testing.T) {
	want := map[string]int{"3m": 3, "6m": 6, "1y": 12, "2y": 24, "5y": 60}
	for token, months := range want {
		got, err := ResolveHorizon(token)
		require.NoError(t, err, token)
		assert.Equal(t, months, got, token)
	}
	assert.Len(t, Horizons(), len(want))
}

func TestResolveHorizonRejectsUnknown(t *testing.T) {
	for _, token := range []string{"10x", "", "1Y", " 1y", "12m", "1y "} {
		_, err := ResolveHorizon(token)
		require.Error(t, err, token)
		assert.True(t, errors.Is(err, ErrInvalidHorizon), token)
	}
	_, err := ResolveHorizon("10x")
	assert.EqualError(t, err, "invalid horizon: 10x")
}

func TestPipelineErrorMatching(t *testing.T) {
	cause := errors.New("connection refused")
	err := ForecasterError("prediction generation failed", cause)

	assert.True(t, errors.Is(err, ErrForecaster))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, ErrClientInput))
	assert.Equal(t, "prediction generation failed", ReasonOf(err))
	assert.Equal(t, "", ReasonOf(cause))

	inv := InvariantError("got %d predictions, want %d", 2, 3)
	assert.True(t, errors.Is(inv, ErrInvariant))
	assert.Contains(t, inv.Error(), "got 2 predictions, want 3")
}

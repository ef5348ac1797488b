package shared

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTraceIDRoundtrip(t *testing.T) {
	ctx := SetTraceID(context.Background())

	traceID := GetTraceID(ctx)
	assert.Len(t, traceID, 32, "trace IDs are 16 random bytes hex encoded")

	// Each context gets its own trace ID.
	other := GetTraceID(SetTraceID(context.Background()))
	assert.NotEqual(t, traceID, other)
}

func TestGetTraceIDMissing(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))
}

func TestGetUserID(t *testing.T) {
	ctx := context.WithValue(context.Background(), UserIDContextKey, int64(42))

	userID, ok := GetUserID(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(42), userID)

	_, ok = GetUserID(context.Background())
	assert.False(t, ok)
}

package addrquota

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuota_Blocked(t *testing.T) {
	q := NewQuota(time.Hour, 2, 10)
	assert.False(t, q.Blocked("example.com:25565"))
	assert.False(t, q.Blocked("EXAMPLE.com"))
	assert.True(t, q.Blocked("example.com:25566"))
	assert.False(t, q.Blocked("other.example.com"))
}

func TestQuota_Wait(t *testing.T) {
	q := NewQuota(time.Hour, 1, 10)
	require.NoError(t, q.Wait(context.Background(), "localhost"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.Error(t, q.Wait(ctx, "localhost"))
}

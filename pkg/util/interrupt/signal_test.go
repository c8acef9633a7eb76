package interrupt

import (
	"context"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminationContextSignal(t *testing.T) {
	ctx, stop := TerminationContext(context.Background())
	defer stop()

	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGHUP))
	select {
	case <-ctx.Done():
		assert.EqualError(t, context.Cause(ctx), "received hangup signal")
	case <-time.After(5 * time.Second):
		t.Fatal("context not canceled")
	}
}

func TestTerminationContextStop(t *testing.T) {
	ctx, stop := TerminationContext(context.Background())
	stop()
	<-ctx.Done()
	assert.ErrorIs(t, context.Cause(ctx), context.Canceled)
}

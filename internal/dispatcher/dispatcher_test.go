// Package dispatcher contains tests for parallel digest fan-out.
package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/JakeFAU/sha256digest/internal/digest"
	"github.com/JakeFAU/sha256digest/internal/hash/sha256"
)

// TestDispatcherRunPreservesOrder ensures results line up with inputs under concurrency.
func TestDispatcherRunPreservesOrder(t *testing.T) {
	t.Parallel()

	hasher := sha256.New()
	inputs := make([]digest.Input, 50)
	for i := range inputs {
		msg := fmt.Sprintf("message-%d", i)
		inputs[i] = digest.Input{Label: msg, Message: []byte(msg)}
	}

	dispatch := New(hasher, 8, digest.SourceCLI, zap.NewNop())
	results, err := dispatch.Run(context.Background(), inputs)
	require.NoError(t, err)
	require.Len(t, results, len(inputs))

	for i, res := range results {
		want, err := hasher.Hash(inputs[i].Message)
		require.NoError(t, err)
		require.Equal(t, inputs[i].Label, res.Label)
		require.Equal(t, want, res.Digest)
		require.Equal(t, len(inputs[i].Message), res.Size)
	}
}

func TestDispatcherRunEmpty(t *testing.T) {
	t.Parallel()

	results, err := New(sha256.New(), 2, digest.SourceCLI, nil).Run(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, results)
}

// TestDispatcherRunCanceled ensures no work starts once the context is done.
func TestDispatcherRunCanceled(t *testing.T) {
	t.Parallel()

	hasher := &countingHasher{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(hasher, 1, digest.SourceAPI, nil).Run(ctx, []digest.Input{
		{Label: "a", Message: []byte("a")},
		{Label: "b", Message: []byte("b")},
	})
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, hasher.calls.Load())
}

func TestDispatcherRunPropagatesHashError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	hasher := &countingHasher{err: boom}

	_, err := New(hasher, 4, digest.SourceAPI, zap.NewNop()).Run(context.Background(), []digest.Input{
		{Label: "a", Message: []byte("a")},
	})
	require.ErrorIs(t, err, boom)
}

func TestNewClampsConcurrency(t *testing.T) {
	t.Parallel()

	require.Equal(t, 1, New(sha256.New(), 0, digest.SourceCLI, nil).concurrency)
}

type countingHasher struct {
	calls atomic.Int64
	err   error
}

func (h *countingHasher) Hash(data []byte) (string, error) {
	h.calls.Add(1)
	if h.err != nil {
		return "", h.err
	}
	return string(data), nil
}

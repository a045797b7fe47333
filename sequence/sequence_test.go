package sequence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_NewerRequestWins(t *testing.T) {
	tr, err := New(16)
	require.NoError(t, err)

	ctx1, first := tr.Begin(context.Background(), "sid:products")
	ctx2, second := tr.Begin(context.Background(), "sid:products")

	assert.Greater(t, second.Seq(), first.Seq())
	assert.ErrorIs(t, ctx1.Err(), context.Canceled)
	assert.NoError(t, ctx2.Err())
	assert.False(t, first.Latest())
	assert.True(t, second.Latest())

	// 旧请求结束不影响新请求
	first.Done()
	assert.True(t, second.Latest())
	assert.NoError(t, ctx2.Err())

	second.Done()
	assert.ErrorIs(t, ctx2.Err(), context.Canceled)
	assert.Equal(t, 0, tr.Len())
}

func TestTracker_KeysAreIndependent(t *testing.T) {
	tr, err := New(16)
	require.NoError(t, err)

	ctxA, a := tr.Begin(context.Background(), "sid:products")
	_, b := tr.Begin(context.Background(), "sid:vendors")

	assert.True(t, a.Latest())
	assert.True(t, b.Latest())
	assert.NoError(t, ctxA.Err())
}

func TestTracker_EvictionCancels(t *testing.T) {
	tr, err := New(2)
	require.NoError(t, err)

	ctx1, first := tr.Begin(context.Background(), "a")
	tr.Begin(context.Background(), "b")
	tr.Begin(context.Background(), "c")

	assert.ErrorIs(t, ctx1.Err(), context.Canceled)
	assert.False(t, first.Latest())
	assert.Equal(t, 2, tr.Len())
}

func TestTracker_ParentCancellationPropagates(t *testing.T) {
	tr, err := New(0)
	require.NoError(t, err)

	parent, cancel := context.WithCancel(context.Background())
	ctx, ticket := tr.Begin(parent, "k")
	cancel()

	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.True(t, ticket.Latest())
	ticket.Done()
}

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func TestMemoryRoundTripAndDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	var got []entry
	hit, err := c.Get(ctx, ProvidersKey, &got)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Set(ctx, ProvidersKey, []entry{{ID: 1, Name: "Bob"}}, time.Minute))
	hit, err = c.Get(ctx, ProvidersKey, &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []entry{{ID: 1, Name: "Bob"}}, got)

	require.NoError(t, c.Delete(ctx, ProvidersKey))
	hit, err = c.Get(ctx, ProvidersKey, &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestMemoryExpires(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemory()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	now = now.Add(2 * time.Minute)

	var got string
	hit, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

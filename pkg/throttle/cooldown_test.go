package throttle

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCooldown(t *testing.T, window time.Duration) (Cooldown, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisCooldown(client, window), mr
}

func TestRedisCooldown_Acquire(t *testing.T) {
	ctx := context.Background()
	cooldown, mr := newTestCooldown(t, time.Minute)

	ok, err := cooldown.Acquire(ctx, KindResendOTP, "user-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = cooldown.Acquire(ctx, KindResendOTP, "user-1")
	require.NoError(t, err)
	assert.False(t, ok, "second acquire inside the window must be refused")

	assert.True(t, mr.Exists("cooldown:resend-otp:user-1"))
	assert.Equal(t, time.Minute, mr.TTL("cooldown:resend-otp:user-1"))
}

func TestRedisCooldown_KeysAreScoped(t *testing.T) {
	ctx := context.Background()
	cooldown, _ := newTestCooldown(t, time.Minute)

	ok, err := cooldown.Acquire(ctx, KindResendOTP, "user-1")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = cooldown.Acquire(ctx, KindForgotPassword, "user-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = cooldown.Acquire(ctx, KindResendOTP, "user-2")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisCooldown_WindowExpires(t *testing.T) {
	ctx := context.Background()
	cooldown, mr := newTestCooldown(t, 30*time.Second)

	ok, err := cooldown.Acquire(ctx, KindForgotPassword, "user-1")
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(31 * time.Second)

	ok, err = cooldown.Acquire(ctx, KindForgotPassword, "user-1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisCooldown_Release(t *testing.T) {
	ctx := context.Background()
	cooldown, mr := newTestCooldown(t, time.Minute)

	ok, err := cooldown.Acquire(ctx, KindResendOTP, "user-1")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, cooldown.Release(ctx, KindResendOTP, "user-1"))
	assert.False(t, mr.Exists("cooldown:resend-otp:user-1"))

	ok, err = cooldown.Acquire(ctx, KindResendOTP, "user-1")
	require.NoError(t, err)
	assert.True(t, ok)

	// releasing a key that is not held is fine
	assert.NoError(t, cooldown.Release(ctx, KindForgotPassword, "user-9"))
}

func TestRedisCooldown_RedisDown(t *testing.T) {
	cooldown, mr := newTestCooldown(t, time.Minute)
	mr.Close()

	ok, err := cooldown.Acquire(context.Background(), KindResendOTP, "user-1")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestNoopCooldown(t *testing.T) {
	cooldown := NewNoopCooldown()
	for i := 0; i < 3; i++ {
		ok, err := cooldown.Acquire(context.Background(), KindResendOTP, "user-1")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	assert.NoError(t, cooldown.Release(context.Background(), KindResendOTP, "user-1"))
}

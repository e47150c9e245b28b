package throttle

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Kind string

const (
	KindResendOTP      Kind = "resend-otp"
	KindForgotPassword Kind = "forgot-password"
)

// Cooldown limits how often a code can be re-sent for one subject.
type Cooldown interface {
	// Acquire reports false while a previous acquisition is still cooling down.
	Acquire(ctx context.Context, kind Kind, subject string) (bool, error)
	// Release ends the window early, after the guarded send failed.
	Release(ctx context.Context, kind Kind, subject string) error
}

type redisCooldown struct {
	client *redis.Client
	window time.Duration
}

func NewRedisCooldown(client *redis.Client, window time.Duration) Cooldown {
	return &redisCooldown{client: client, window: window}
}

func Key(kind Kind, subject string) string {
	return fmt.Sprintf("cooldown:%s:%s", kind, subject)
}

func (c *redisCooldown) Acquire(ctx context.Context, kind Kind, subject string) (bool, error) {
	ok, err := c.client.SetNX(ctx, Key(kind, subject), time.Now().Unix(), c.window).Result()
	if err != nil {
		return false, fmt.Errorf("acquire %s cooldown: %w", kind, err)
	}
	return ok, nil
}

func (c *redisCooldown) Release(ctx context.Context, kind Kind, subject string) error {
	if err := c.client.Del(ctx, Key(kind, subject)).Err(); err != nil {
		return fmt.Errorf("release %s cooldown: %w", kind, err)
	}
	return nil
}

type noopCooldown struct{}

// NewNoopCooldown never throttles. Used when Redis is not configured.
func NewNoopCooldown() Cooldown {
	return noopCooldown{}
}

func (noopCooldown) Acquire(context.Context, Kind, string) (bool, error) {
	return true, nil
}

func (noopCooldown) Release(context.Context, Kind, string) error {
	return nil
}

package mocks

import (
	"context"
	"sync"

	"ecommerce-rbac/pkg/mailer"
	"ecommerce-rbac/pkg/throttle"
)

// SentMail is one message captured by Mailer.
type SentMail struct {
	To   string
	Name string
	// Code for OTP mails, Link for reset mails
	Code string
	Link string
}

// Mailer records outgoing mail instead of sending it.
type Mailer struct {
	mu     sync.Mutex
	OTPs   []SentMail
	Resets []SentMail
	Err    error
}

func NewMailer() *Mailer {
	return &Mailer{}
}

func (m *Mailer) SendOTP(ctx context.Context, to, name, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.OTPs = append(m.OTPs, SentMail{To: to, Name: name, Code: code})
	return nil
}

func (m *Mailer) SendPasswordReset(ctx context.Context, to, name, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Resets = append(m.Resets, SentMail{To: to, Name: name, Link: link})
	return nil
}

// LastOTP returns the newest code sent, empty when none.
func (m *Mailer) LastOTP() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.OTPs) == 0 {
		return ""
	}
	return m.OTPs[len(m.OTPs)-1].Code
}

// LastResetLink returns the newest reset link sent, empty when none.
func (m *Mailer) LastResetLink() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Resets) == 0 {
		return ""
	}
	return m.Resets[len(m.Resets)-1].Link
}

// Cooldown allows the first Acquire per key and denies the rest, like the
// Redis cooldown inside one window.
type Cooldown struct {
	mu    sync.Mutex
	taken map[string]bool
	Err   error
}

func NewCooldown() *Cooldown {
	return &Cooldown{taken: make(map[string]bool)}
}

func (c *Cooldown) Acquire(ctx context.Context, kind throttle.Kind, subject string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return false, c.Err
	}
	key := throttle.Key(kind, subject)
	if c.taken[key] {
		return false, nil
	}
	c.taken[key] = true
	return true, nil
}

func (c *Cooldown) Release(ctx context.Context, kind throttle.Kind, subject string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	delete(c.taken, throttle.Key(kind, subject))
	return nil
}

// Reset ends every window.
func (c *Cooldown) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.taken = make(map[string]bool)
}

var (
	_ mailer.Sender     = (*Mailer)(nil)
	_ throttle.Cooldown = (*Cooldown)(nil)
)

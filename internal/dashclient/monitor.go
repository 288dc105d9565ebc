package dashclient

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// DefaultMonitorInterval is how often the stored credential is re-checked.
const DefaultMonitorInterval = 30 * time.Second

// SessionMonitor periodically inspects the stored token and ends the session
// the moment it expires, instead of waiting for the next API call to 401.
type SessionMonitor struct {
	Store TokenStore
	// OnExpired runs after the token has been cleared. The dashboard uses it
	// to bounce the user to the login screen.
	OnExpired func()
	// Interval defaults to DefaultMonitorInterval when zero.
	Interval time.Duration
	// Now defaults to time.Now when nil. Tests pin it.
	Now func() time.Time
	Log zerolog.Logger
}

// Run blocks until ctx is cancelled, checking once per interval. An expired
// session stops the loop; there is nothing left to watch.
func (m *SessionMonitor) Run(ctx context.Context) {
	interval := m.Interval
	if interval <= 0 {
		interval = DefaultMonitorInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if m.Check() {
				return
			}
		}
	}
}

// Check inspects the stored token once and reports whether the session was
// ended. A missing credential ends it too: an authenticated view with no
// token belongs back on the login screen.
func (m *SessionMonitor) Check() bool {
	token, err := m.Store.Load()
	if err != nil || token == "" {
		m.Log.Info().Msg("no stored token, ending session")
		m.expire()
		return true
	}

	claims := DecodeClaims(token)
	if claims == nil {
		// Whatever is stored is not a usable credential.
		m.Log.Warn().Msg("stored token is not decodable, ending session")
		m.expire()
		return true
	}

	exp, ok := ExpiresAt(claims)
	if !ok {
		// No expiry claim, nothing to go stale. The server still rejects the
		// token if it is bad.
		return false
	}

	now := time.Now
	if m.Now != nil {
		now = m.Now
	}
	if now().Before(exp) {
		return false
	}

	m.Log.Info().Time("expired_at", exp).Msg("session expired")
	m.expire()
	return true
}

func (m *SessionMonitor) expire() {
	if err := m.Store.Clear(); err != nil {
		m.Log.Error().Err(err).Msg("clear expired token")
	}
	if m.OnExpired != nil {
		m.OnExpired()
	}
}

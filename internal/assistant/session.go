package assistant

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// SessionStrategy selects which session a request is sent through.
type SessionStrategy int

const (
	// StrategyShared reuses the process-wide session so the model keeps the
	// conversation context between requests.
	StrategyShared SessionStrategy = iota
	// StrategyFresh opens an isolated session for a single request.
	StrategyFresh
)

var ErrManagerClosed = errors.New("session manager is closed")

func (s SessionStrategy) String() string {
	switch s {
	case StrategyShared:
		return "shared"
	case StrategyFresh:
		return "fresh"
	}
	return fmt.Sprintf("SessionStrategy(%d)", int(s))
}

func ParseSessionStrategy(value string) (SessionStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "shared":
		return StrategyShared, nil
	case "fresh":
		return StrategyFresh, nil
	}
	return 0, fmt.Errorf("invalid session strategy %q: must be one of shared, fresh", value)
}

// SessionManager owns the shared session. It is created on first use and
// released by Close, which the application calls on shutdown.
type SessionManager struct {
	starter Starter

	mu     sync.Mutex
	shared Session
	closed bool
}

func NewSessionManager(starter Starter) *SessionManager {
	return &SessionManager{
		starter: starter,
	}
}

// GetOrCreateSession returns the shared session, starting it on the first call.
// A failed start is not remembered, so the next call tries again.
func (m *SessionManager) GetOrCreateSession(ctx context.Context) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrManagerClosed
	}
	if m.shared != nil {
		return m.shared, nil
	}

	session, err := m.starter.StartSession(ctx)
	if err != nil {
		slog.Default().Error("Failed to start the shared session", "error", err)
		return nil, fmt.Errorf("starter.StartSession > %w", err)
	}
	slog.Default().Debug("Started the shared session", "session_id", session.ID())
	m.shared = session
	return session, nil
}

// StartFreshSession opens a session that is never remembered.
func (m *SessionManager) StartFreshSession(ctx context.Context) (Session, error) {
	m.mu.Lock()
	closed := m.closed
	m.mu.Unlock()
	if closed {
		return nil, ErrManagerClosed
	}

	session, err := m.starter.StartSession(ctx)
	if err != nil {
		slog.Default().Error("Failed to start a fresh session", "error", err)
		return nil, fmt.Errorf("starter.StartSession > %w", err)
	}
	slog.Default().Debug("Started a fresh session", "session_id", session.ID())
	return session, nil
}

func (m *SessionManager) Session(ctx context.Context, strategy SessionStrategy) (Session, error) {
	switch strategy {
	case StrategyShared:
		return m.GetOrCreateSession(ctx)
	case StrategyFresh:
		return m.StartFreshSession(ctx)
	}
	return nil, fmt.Errorf("unsupported session strategy: %s", strategy)
}

// Close drops the shared session and releases the provider.
// It is safe to call more than once.
func (m *SessionManager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true

	var errs []error
	if closer, ok := m.shared.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("shared session.Close > %w", err))
		}
	}
	m.shared = nil
	if closer, ok := m.starter.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("starter.Close > %w", err))
		}
	}
	return errors.Join(errs...)
}

// Package harness owns the browser session lifecycle of a scenario: start a
// fresh session, hand out pages bound to it, and release it afterwards.
package harness

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/zainbasra/orangehrm-automation-framework/application/pages"
	"github.com/zainbasra/orangehrm-automation-framework/domain/interfaces"
	"github.com/zainbasra/orangehrm-automation-framework/infrastructure/config"
)

// ErrSessionClosed is returned by every operation on a closed session
var ErrSessionClosed = errors.New("session closed")

// State of a session
type State int

const (
	StateUninitialized State = iota
	StateActive
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateActive:
		return "active"
	case StateClosed:
		return "closed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Harness starts sessions from an injected configuration
type Harness struct {
	cfg      *config.Config
	launcher interfaces.Launcher
	logger   logrus.FieldLogger
}

// New - creates a harness
func New(cfg *config.Config, launcher interfaces.Launcher, logger logrus.FieldLogger) *Harness {
	return &Harness{
		cfg:      cfg,
		launcher: launcher,
		logger:   logger,
	}
}

// Start - launches a browser, applies the wait bounds and opens the base URL.
// On failure the partly built session is closed before returning.
func (h *Harness) Start(ctx context.Context) (*Session, error) {
	s := &Session{
		cfg:    h.cfg,
		logger: h.logger,
	}

	browser, err := h.launcher.Launch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}
	s.browser = browser

	if err := browser.ConfigureTimeouts(h.cfg.ImplicitWait, h.cfg.PageLoadTimeout); err != nil {
		return nil, multierr.Append(fmt.Errorf("failed to configure timeouts: %w", err), s.Close())
	}
	s.gateway = browser.Gateway(h.cfg.WaitPolicy())
	s.state = StateActive

	if err := s.gateway.Navigate(ctx, h.cfg.BaseURL); err != nil {
		return nil, multierr.Append(fmt.Errorf("failed to open %s: %w", h.cfg.BaseURL, err), s.Close())
	}

	h.logger.WithField("url", h.cfg.BaseURL).Info("Browser session started")
	return s, nil
}

// Session is one live browser context. It is not safe for concurrent scenarios.
type Session struct {
	mu      sync.Mutex
	state   State
	browser interfaces.BrowserSession
	gateway interfaces.Gateway
	cfg     *config.Config
	logger  logrus.FieldLogger
}

// State - returns the lifecycle state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Config() *config.Config {
	return s.cfg
}

func (s *Session) Logger() logrus.FieldLogger {
	return s.logger
}

// Gateway - returns the session gateway; it refuses use once the session is closed
func (s *Session) Gateway() interfaces.Gateway {
	return guardedGateway{session: s}
}

// LoginPage - a login page bound to this session
func (s *Session) LoginPage() *pages.LoginPage {
	return pages.NewLoginPage(s.Gateway(), s.logger)
}

// Navigate - opens a path relative to the base URL
func (s *Session) Navigate(ctx context.Context, path string) error {
	return s.Gateway().Navigate(ctx, s.cfg.URL(path))
}

// active - returns the live gateway, or ErrSessionClosed
func (s *Session) active() (interfaces.Gateway, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateActive || s.gateway == nil {
		return nil, ErrSessionClosed
	}
	return s.gateway, nil
}

// Close - releases the browser. Safe to call more than once and on a
// partly started session.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateClosed {
		return nil
	}
	s.state = StateClosed
	s.gateway = nil

	if s.browser == nil {
		return nil
	}
	err := s.browser.Close()
	s.browser = nil

	if err != nil {
		s.logger.WithError(err).Warn("Browser session closed with errors")
		return fmt.Errorf("failed to close browser: %w", err)
	}
	s.logger.Info("Browser session closed")
	return nil
}

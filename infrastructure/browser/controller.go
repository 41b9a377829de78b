package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/zainbasra/orangehrm-automation-framework/domain/entities"
	"github.com/zainbasra/orangehrm-automation-framework/domain/interfaces"
	"github.com/zainbasra/orangehrm-automation-framework/infrastructure/config"
)

// PlaywrightLauncher starts Chromium sessions through Playwright
type PlaywrightLauncher struct {
	cfg    *config.Config
	logger logrus.FieldLogger
}

// NewPlaywrightLauncher - creates a launcher driving Playwright's Chromium
func NewPlaywrightLauncher(cfg *config.Config, logger logrus.FieldLogger) *PlaywrightLauncher {
	return &PlaywrightLauncher{
		cfg:    cfg,
		logger: logger,
	}
}

// Launch - starts playwright, a browser, a fresh context and one page
func (l *PlaywrightLauncher) Launch(ctx context.Context) (interfaces.BrowserSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}
	session := &playwrightSession{pw: pw, logger: l.logger}

	launchOptions := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(l.cfg.Headless),
		Args:     l.cfg.BrowserArgs,
	}
	if binary := findChromeBinary(l.cfg.ChromeBinaryPath); l.cfg.ChromeBinaryPath != "" && binary != "" {
		launchOptions.ExecutablePath = playwright.String(binary)
	}

	session.browser, err = pw.Chromium.Launch(launchOptions)
	if err != nil {
		return nil, multierr.Append(fmt.Errorf("failed to launch browser: %w", err), session.Close())
	}

	// A new context per session: no cookies or storage carried between scenarios.
	session.context, err = session.browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  1280,
			Height: 720,
		},
		IgnoreHttpsErrors: playwright.Bool(true),
	})
	if err != nil {
		return nil, multierr.Append(fmt.Errorf("failed to create context: %w", err), session.Close())
	}

	session.page, err = session.context.NewPage()
	if err != nil {
		return nil, multierr.Append(fmt.Errorf("failed to create page: %w", err), session.Close())
	}

	session.page.OnDialog(acceptDialog(l.logger))

	return session, nil
}

// acceptDialog - accepts every alert, confirm and prompt the page opens
func acceptDialog(logger logrus.FieldLogger) func(playwright.Dialog) {
	return func(dialog playwright.Dialog) {
		if err := dialog.Accept(); err != nil {
			logger.WithError(err).WithField("dialog", dialog.Type()).Debug("Failed to accept dialog")
		}
	}
}

type playwrightSession struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
	logger  logrus.FieldLogger
}

// ConfigureTimeouts - the implicit wait becomes the default action timeout
func (s *playwrightSession) ConfigureTimeouts(implicit, pageLoad time.Duration) error {
	if s.page == nil {
		return errors.New("session has no page")
	}
	// zero means "no timeout" to Playwright
	if implicit > 0 {
		s.page.SetDefaultTimeout(float64(implicit.Milliseconds()))
	}
	s.page.SetDefaultNavigationTimeout(float64(pageLoad.Milliseconds()))
	return nil
}

// Gateway - returns a wait gateway over the session page
func (s *playwrightSession) Gateway(policy entities.WaitPolicy) interfaces.Gateway {
	return NewPlaywrightGateway(s.page, policy, s.logger)
}

// Close - closes context, browser and the playwright driver
func (s *playwrightSession) Close() error {
	var closeErr error

	if s.context != nil {
		if err := s.context.Close(); err != nil && !errors.Is(err, playwright.ErrTargetClosed) {
			closeErr = multierr.Append(closeErr, fmt.Errorf("failed to close context: %w", err))
		}
		s.context = nil
		s.page = nil
	}

	if s.browser != nil {
		if err := s.browser.Close(); err != nil && !errors.Is(err, playwright.ErrTargetClosed) {
			closeErr = multierr.Append(closeErr, fmt.Errorf("failed to close browser: %w", err))
		}
		s.browser = nil
	}

	if s.pw != nil {
		if err := s.pw.Stop(); err != nil {
			closeErr = multierr.Append(closeErr, fmt.Errorf("failed to stop playwright: %w", err))
		}
		s.pw = nil
	}

	return closeErr
}

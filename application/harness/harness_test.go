package harness

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zainbasra/orangehrm-automation-framework/domain/errs"
	"github.com/zainbasra/orangehrm-automation-framework/domain/interfaces"
	"github.com/zainbasra/orangehrm-automation-framework/infrastructure/browser/fakeapp"
	"github.com/zainbasra/orangehrm-automation-framework/infrastructure/config"
	"github.com/zainbasra/orangehrm-automation-framework/infrastructure/logging"
)

// brokenTimeouts is an app whose driver rejects the timeout settings
type brokenTimeouts struct {
	*fakeapp.App
}

func (b brokenTimeouts) ConfigureTimeouts(implicit, pageLoad time.Duration) error {
	return errors.New("unknown command: timeouts")
}

type stubLauncher struct {
	session interfaces.BrowserSession
}

func (l stubLauncher) Launch(ctx context.Context) (interfaces.BrowserSession, error) {
	return l.session, nil
}

func TestHarness_StartOpensBaseURL(t *testing.T) {
	cfg := config.Default()
	launcher := fakeapp.NewLauncher(fakeapp.DefaultOptions())

	s, err := New(cfg, launcher, logging.Discard()).Start(context.Background())
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, StateActive, s.State())
	require.Len(t, launcher.Sessions(), 1)
	app := launcher.Sessions()[0]

	implicit, pageLoad := app.Timeouts()
	assert.Equal(t, cfg.ImplicitWait, implicit)
	assert.Equal(t, cfg.PageLoadTimeout, pageLoad)
	assert.Equal(t, cfg.WaitPolicy(), app.Policy())
	assert.Equal(t, []string{cfg.BaseURL}, app.Navigations())

	displayed, err := s.LoginPage().IsLoginPageDisplayed(context.Background())
	require.NoError(t, err)
	assert.True(t, displayed)
}

func TestHarness_LaunchFailure(t *testing.T) {
	launcher := fakeapp.NewLauncher(fakeapp.DefaultOptions())
	launcher.LaunchErr = errors.New("chromedriver not found")

	s, err := New(config.Default(), launcher, logging.Discard()).Start(context.Background())
	assert.Nil(t, s)
	assert.ErrorContains(t, err, "chromedriver not found")
}

func TestHarness_PartialStartIsClosed(t *testing.T) {
	t.Run("timeouts rejected", func(t *testing.T) {
		app := fakeapp.New(fakeapp.DefaultOptions())

		s, err := New(config.Default(), stubLauncher{brokenTimeouts{app}}, logging.Discard()).Start(context.Background())
		assert.Nil(t, s)
		assert.ErrorContains(t, err, "failed to configure timeouts")
		assert.True(t, app.Closed())
	})

	t.Run("base url unreachable", func(t *testing.T) {
		cfg := config.Default()
		cfg.BaseURL = "https://hr.example.invalid/"
		launcher := fakeapp.NewLauncher(fakeapp.DefaultOptions())

		s, err := New(cfg, launcher, logging.Discard()).Start(context.Background())
		assert.Nil(t, s)
		require.Error(t, err)
		assert.Equal(t, errs.Driver, errs.CodeOf(err))
		require.Len(t, launcher.Sessions(), 1)
		assert.True(t, launcher.Sessions()[0].Closed())
	})
}

func TestSession_CloseIsIdempotent(t *testing.T) {
	launcher := fakeapp.NewLauncher(fakeapp.DefaultOptions())
	s, err := New(config.Default(), launcher, logging.Discard()).Start(context.Background())
	require.NoError(t, err)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.Equal(t, StateClosed, s.State())
	assert.Equal(t, 1, launcher.Sessions()[0].CloseCalls())
}

func TestSession_ClosedSessionRefusesUse(t *testing.T) {
	launcher := fakeapp.NewLauncher(fakeapp.DefaultOptions())
	s, err := New(config.Default(), launcher, logging.Discard()).Start(context.Background())
	require.NoError(t, err)

	login := s.LoginPage()
	require.NoError(t, s.Close())

	err = s.Navigate(context.Background(), "web/index.php/auth/login")
	assert.ErrorIs(t, err, ErrSessionClosed)

	_, err = login.IsLoginPageDisplayed(context.Background())
	assert.ErrorIs(t, err, ErrSessionClosed)
	assert.Equal(t, errs.Driver, errs.CodeOf(err))
}

func TestSession_NavigateResolvesAgainstBaseURL(t *testing.T) {
	launcher := fakeapp.NewLauncher(fakeapp.DefaultOptions())
	cfg := config.Default()
	s, err := New(cfg, launcher, logging.Discard()).Start(context.Background())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Navigate(context.Background(), "/web/index.php/dashboard/index"))
	assert.Equal(t, cfg.BaseURL+"web/index.php/dashboard/index", launcher.Sessions()[0].Navigations()[1])
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "uninitialized", StateUninitialized.String())
	assert.Equal(t, "active", StateActive.String())
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "state(7)", State(7).String())
}

package runner

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zainbasra/orangehrm-automation-framework/application/harness"
	"github.com/zainbasra/orangehrm-automation-framework/application/scenarios"
	"github.com/zainbasra/orangehrm-automation-framework/domain/entities"
	"github.com/zainbasra/orangehrm-automation-framework/infrastructure/browser/fakeapp"
	"github.com/zainbasra/orangehrm-automation-framework/infrastructure/config"
	"github.com/zainbasra/orangehrm-automation-framework/infrastructure/logging"
)

func newTestRunner(launcher *fakeapp.Launcher) *Runner {
	h := harness.New(config.Default(), launcher, logging.Discard())
	return New(h, logging.Discard())
}

func TestRunner_FreshSessionPerScenario(t *testing.T) {
	launcher := fakeapp.NewLauncher(fakeapp.DefaultOptions())
	all := scenarios.All()

	results := newTestRunner(launcher).Run(context.Background(), all)
	require.Len(t, results, len(all))

	ids := make(map[string]bool)
	for i, res := range results {
		assert.Equal(t, all[i].Name, res.Name)
		assert.True(t, res.Passed(), "%s: %s %v", res.Name, res.Error, res.Failures)
		_, err := uuid.Parse(res.ID)
		assert.NoError(t, err)
		ids[res.ID] = true
	}
	assert.Len(t, ids, len(all))

	sessions := launcher.Sessions()
	require.Len(t, sessions, len(all))
	for _, app := range sessions {
		assert.True(t, app.Closed())
		assert.Equal(t, 1, app.CloseCalls())
	}
	assert.True(t, Summarize(results).OK())
}

func TestRunner_AssertionFailuresAreRecorded(t *testing.T) {
	opts := fakeapp.DefaultOptions()
	opts.SessionSurvivesLogout = true
	launcher := fakeapp.NewLauncher(opts)
	sc, ok := scenarios.Lookup("AccessDashboardAfterLogout")
	require.True(t, ok)

	res := newTestRunner(launcher).RunScenario(context.Background(), sc)
	assert.Equal(t, entities.ScenarioFailed, res.Status)
	assert.Empty(t, res.Error)
	assert.NotEmpty(t, res.Failures)
	assert.True(t, launcher.Sessions()[0].Closed())
}

func TestRunner_ErrorsFailAndReleaseSession(t *testing.T) {
	opts := fakeapp.DefaultOptions()
	opts.Password = "rotated"
	launcher := fakeapp.NewLauncher(opts)
	sc, ok := scenarios.Lookup("DashboardHeader")
	require.True(t, ok)

	res := newTestRunner(launcher).RunScenario(context.Background(), sc)
	assert.Equal(t, entities.ScenarioFailed, res.Status)
	assert.Contains(t, res.Error, "timeout")
	assert.True(t, launcher.Sessions()[0].Closed())
}

func TestRunner_StartFailure(t *testing.T) {
	launcher := fakeapp.NewLauncher(fakeapp.DefaultOptions())
	launcher.LaunchErr = errors.New("session not created: Chrome failed to start")
	sc, _ := scenarios.Lookup("ValidLogin")

	res := newTestRunner(launcher).RunScenario(context.Background(), sc)
	assert.Equal(t, entities.ScenarioFailed, res.Status)
	assert.Contains(t, res.Error, "Chrome failed to start")
}

func TestRunner_CanceledRunSkipsRest(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	launcher := fakeapp.NewLauncher(fakeapp.DefaultOptions())

	results := newTestRunner(launcher).Run(ctx, scenarios.All()[:3])
	require.Len(t, results, 3)
	for _, res := range results {
		assert.Equal(t, entities.ScenarioSkipped, res.Status)
	}
	assert.Empty(t, launcher.Sessions())

	summary := Summarize(results)
	assert.Equal(t, Summary{Skipped: 3}, summary)
	assert.True(t, summary.OK())
}

func TestFilter(t *testing.T) {
	all := scenarios.All()

	kept, err := Filter(all, "")
	require.NoError(t, err)
	assert.Len(t, kept, len(all))

	kept, err = Filter(all, "^dashboard$")
	require.NoError(t, err)
	assert.Len(t, kept, 6)

	kept, err = Filter(all, "Logout")
	require.NoError(t, err)
	require.Len(t, kept, 2)
	assert.Equal(t, "Logout", kept[0].Name)
	assert.Equal(t, "AccessDashboardAfterLogout", kept[1].Name)

	_, err = Filter(all, "(")
	assert.Error(t, err)
}

func TestRunner_PanickingScenarioReleasesSession(t *testing.T) {
	launcher := fakeapp.NewLauncher(fakeapp.DefaultOptions())
	sc := scenarios.Scenario{
		Name:  "Crashes",
		Suite: scenarios.SuiteLogin,
		Run: func(ctx context.Context, t assert.TestingT, s *harness.Session) error {
			var dashboard *struct{ header string }
			_ = dashboard.header
			return nil
		},
	}

	assert.Panics(t, func() {
		newTestRunner(launcher).RunScenario(context.Background(), sc)
	})
	require.Len(t, launcher.Sessions(), 1)
	app := launcher.Sessions()[0]
	assert.True(t, app.Closed())
	assert.Equal(t, 1, app.CloseCalls())
}

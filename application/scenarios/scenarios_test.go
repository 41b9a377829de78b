package scenarios

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zainbasra/orangehrm-automation-framework/application/harness"
	"github.com/zainbasra/orangehrm-automation-framework/infrastructure/browser/fakeapp"
	"github.com/zainbasra/orangehrm-automation-framework/infrastructure/config"
	"github.com/zainbasra/orangehrm-automation-framework/infrastructure/logging"
)

func startSession(t *testing.T, opts fakeapp.Options) *harness.Session {
	t.Helper()
	h := harness.New(config.Default(), fakeapp.NewLauncher(opts), logging.Discard())
	s, err := h.Start(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAll_Catalogue(t *testing.T) {
	all := All()
	names := make([]string, 0, len(all))
	for _, sc := range all {
		names = append(names, sc.Name)
		assert.NotEmpty(t, sc.Description, sc.Name)
		assert.NotNil(t, sc.Run, sc.Name)
	}

	assert.Equal(t, []string{
		"ValidLogin", "InvalidPassword", "EmptyCredentials", "InvalidUsername",
		"Logout", "AccessDashboardAfterLogout", "PasswordCaseSensitive",
		"DashboardHeader", "AdminMenuNavigation", "PIMMenuNavigation",
		"LeaveMenuNavigation", "TimeMenuNavigation", "RecruitmentMenuNavigation",
	}, names)

	sc, ok := Lookup("Logout")
	require.True(t, ok)
	assert.Equal(t, SuiteLogin, sc.Suite)
	_, ok = Lookup("Nope")
	assert.False(t, ok)
}

func TestScenarios_PassAgainstHealthyApp(t *testing.T) {
	for _, sc := range All() {
		t.Run(sc.Name, func(t *testing.T) {
			s := startSession(t, fakeapp.DefaultOptions())
			require.NoError(t, sc.Run(context.Background(), t, s))
		})
	}
}

func TestScenarios_DetectBrokenApp(t *testing.T) {
	cases := []struct {
		scenario string
		opts     func(*fakeapp.Options)
	}{
		{"AccessDashboardAfterLogout", func(o *fakeapp.Options) { o.SessionSurvivesLogout = true }},
		{"PasswordCaseSensitive", func(o *fakeapp.Options) { o.CaseInsensitivePasswords = true }},
		{"EmptyCredentials", func(o *fakeapp.Options) { o.SubmitLeavesLoginPage = true }},
		{"ValidLogin", func(o *fakeapp.Options) { o.Password = "changed" }},
		{"AdminMenuNavigation", func(o *fakeapp.Options) { o.Username = "someone-else" }},
	}
	for _, tc := range cases {
		t.Run(tc.scenario, func(t *testing.T) {
			opts := fakeapp.DefaultOptions()
			tc.opts(&opts)
			sc, ok := Lookup(tc.scenario)
			require.True(t, ok)

			rec := &Recorder{}
			err := sc.Run(context.Background(), rec, startSession(t, opts))
			assert.True(t, err != nil || rec.Failed(), "scenario passed against a broken app")
		})
	}
}

func TestScenarios_ClosedSessionFails(t *testing.T) {
	s := startSession(t, fakeapp.DefaultOptions())
	require.NoError(t, s.Close())

	sc, ok := Lookup("ValidLogin")
	require.True(t, ok)
	err := sc.Run(context.Background(), &Recorder{}, s)
	assert.ErrorIs(t, err, harness.ErrSessionClosed)
}

func TestFlipCase(t *testing.T) {
	assert.Equal(t, "ADMIN123", flipCase("admin123"))
	assert.Equal(t, "aDMIN", flipCase("Admin"))

	rapid.Check(t, func(rt *rapid.T) {
		s := rapid.StringMatching(`[a-zA-Z0-9]{0,20}`).Draw(rt, "s")
		if flipCase(flipCase(s)) != s {
			rt.Fatalf("flipCase is not an involution for %q", s)
		}
	})
}

func TestRecorder(t *testing.T) {
	rec := &Recorder{}
	assert.False(t, rec.Failed())

	assert.Contains(rec, "Dashboard", "Admin")
	assert.True(t, rec.Failed())
	require.Len(t, rec.Failures(), 1)
}

package scenarios

import (
	"context"
	"strings"
	"unicode"

	"github.com/stretchr/testify/assert"

	"github.com/zainbasra/orangehrm-automation-framework/application/harness"
	"github.com/zainbasra/orangehrm-automation-framework/domain/errs"
)

const (
	wrongPassword   = "Wrongpassword1234"
	unknownUsername = "Adim123"
)

func loginScenarios() []Scenario {
	return []Scenario{
		{Name: "ValidLogin", Suite: SuiteLogin, Priority: 1, Description: "Valid Login - Happy Flow", Run: validLogin},
		{Name: "InvalidPassword", Suite: SuiteLogin, Priority: 2, Description: "Invalid Password", Run: invalidPassword},
		{Name: "EmptyCredentials", Suite: SuiteLogin, Priority: 3, Description: "Empty Credentials Test", Run: emptyCredentials},
		{Name: "InvalidUsername", Suite: SuiteLogin, Priority: 4, Description: "Invalid Username Test", Run: invalidUsername},
		{Name: "Logout", Suite: SuiteLogin, Priority: 5, Description: "Logout Functionality Test", Run: logout},
		{Name: "AccessDashboardAfterLogout", Suite: SuiteLogin, Priority: 6, Description: "Session Security: Access After Logout", Run: accessDashboardAfterLogout},
		{Name: "PasswordCaseSensitive", Suite: SuiteLogin, Priority: 7, Description: "Password case sensitivity", Run: passwordCaseSensitive},
	}
}

func validLogin(ctx context.Context, t assert.TestingT, s *harness.Session) error {
	cfg := s.Config()
	dashboard, err := s.LoginPage().Login(ctx, cfg.Username, cfg.Password)
	if err != nil {
		return err
	}

	displayed, err := dashboard.IsDashboardDisplayed(ctx)
	if err != nil {
		return err
	}
	assert.True(t, displayed, "dashboard not displayed after login")

	url, err := dashboard.PageURL(ctx)
	if err != nil {
		return err
	}
	assert.Contains(t, url, "dashboard", "URL should contain 'dashboard'")

	header, err := dashboard.Header(ctx)
	if err != nil {
		return err
	}
	assert.Contains(t, header, "Dashboard", "unexpected dashboard header")
	return nil
}

// rejectedLogin - submits credentials and expects the invalid credentials banner
func rejectedLogin(ctx context.Context, t assert.TestingT, s *harness.Session, username, password string) error {
	login := s.LoginPage()
	if err := login.EnterUsername(ctx, username); err != nil {
		return err
	}
	if err := login.EnterPassword(ctx, password); err != nil {
		return err
	}
	if err := login.ClickLoginButton(ctx); err != nil {
		return err
	}

	displayed, err := login.IsErrorMessageDisplayed(ctx)
	if err != nil {
		return err
	}
	if !assert.True(t, displayed, "error message not displayed") {
		return nil
	}

	text, err := login.ErrorMessage(ctx)
	if err != nil {
		return err
	}
	assert.Contains(t, text, "Invalid credentials", "unexpected error message")
	return nil
}

func invalidPassword(ctx context.Context, t assert.TestingT, s *harness.Session) error {
	return rejectedLogin(ctx, t, s, s.Config().Username, wrongPassword)
}

func invalidUsername(ctx context.Context, t assert.TestingT, s *harness.Session) error {
	return rejectedLogin(ctx, t, s, unknownUsername, s.Config().Password)
}

func passwordCaseSensitive(ctx context.Context, t assert.TestingT, s *harness.Session) error {
	password := flipCase(s.Config().Password)
	if password == s.Config().Password {
		return errs.Assertf("configured password has no cased letters")
	}
	return rejectedLogin(ctx, t, s, s.Config().Username, password)
}

func emptyCredentials(ctx context.Context, t assert.TestingT, s *harness.Session) error {
	login := s.LoginPage()
	if err := login.ClickLoginButton(ctx); err != nil {
		return err
	}

	message, err := login.RequiredFieldError(ctx)
	if err != nil {
		return err
	}
	assert.Contains(t, message, "Required", "required validation not displayed")

	url, err := login.PageURL(ctx)
	if err != nil {
		return err
	}
	assert.Contains(t, url, "auth/login", "empty submit left the login page")
	return nil
}

func logout(ctx context.Context, t assert.TestingT, s *harness.Session) error {
	cfg := s.Config()
	dashboard, err := s.LoginPage().Login(ctx, cfg.Username, cfg.Password)
	if err != nil {
		return err
	}
	displayed, err := dashboard.IsDashboardDisplayed(ctx)
	if err != nil {
		return err
	}
	if !assert.True(t, displayed, "dashboard not loaded") {
		return nil
	}

	login, err := dashboard.Logout(ctx)
	if err != nil {
		return err
	}

	displayed, err = login.IsLoginPageDisplayed(ctx)
	if err != nil {
		return err
	}
	assert.True(t, displayed, "not redirected to login page after logout")

	url, err := login.PageURL(ctx)
	if err != nil {
		return err
	}
	assert.Contains(t, url, "auth/login", "URL should contain 'auth/login' after logout")
	return nil
}

func accessDashboardAfterLogout(ctx context.Context, t assert.TestingT, s *harness.Session) error {
	cfg := s.Config()
	dashboard, err := s.LoginPage().Login(ctx, cfg.Username, cfg.Password)
	if err != nil {
		return err
	}
	if _, err := dashboard.IsDashboardDisplayed(ctx); err != nil {
		return err
	}
	dashboardURL, err := dashboard.PageURL(ctx)
	if err != nil {
		return err
	}
	s.Logger().WithField("url", dashboardURL).Info("Captured dashboard URL")

	login, err := dashboard.Logout(ctx)
	if err != nil {
		return err
	}
	if err := s.Gateway().Navigate(ctx, dashboardURL); err != nil {
		return err
	}

	url, err := login.PageURL(ctx)
	if err != nil {
		return err
	}
	assert.Contains(t, url, "auth/login", "dashboard accessible after logout")

	displayed, err := login.IsLoginPageDisplayed(ctx)
	if err != nil {
		return err
	}
	assert.True(t, displayed, "login page not shown for dashboard after logout")
	return nil
}

// flipCase - swaps the case of every letter
func flipCase(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsUpper(r):
			return unicode.ToLower(r)
		case unicode.IsLower(r):
			return unicode.ToUpper(r)
		}
		return r
	}, s)
}

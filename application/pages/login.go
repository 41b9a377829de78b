package pages

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/zainbasra/orangehrm-automation-framework/domain/entities"
	"github.com/zainbasra/orangehrm-automation-framework/domain/interfaces"
)

var (
	usernameField        = entities.Name("username")
	passwordField        = entities.Name("password")
	loginButton          = entities.CSS("button[type='submit']")
	errorMessage         = entities.CSS("p.oxd-alert-content-text")
	requiredFieldMessage = entities.CSS("span.oxd-input-field-error-message")
)

// LoginPage is the OrangeHRM sign-in screen
type LoginPage struct {
	BasePage
}

// NewLoginPage - creates the login page over a session gateway
func NewLoginPage(gateway interfaces.Gateway, logger logrus.FieldLogger) *LoginPage {
	return &LoginPage{BasePage: newBasePage(gateway, logger, "login")}
}

// EnterUsername - replaces the username field contents
func (p *LoginPage) EnterUsername(ctx context.Context, username string) error {
	if err := p.gateway.Type(ctx, usernameField, username); err != nil {
		return err
	}
	p.logger.WithField("username", username).Info("Entered username")
	return nil
}

// EnterPassword - replaces the password field contents. The value is never logged.
func (p *LoginPage) EnterPassword(ctx context.Context, password string) error {
	if err := p.gateway.Type(ctx, passwordField, password); err != nil {
		return err
	}
	p.logger.Info("Entered password")
	return nil
}

// ClickLoginButton - submits the form
func (p *LoginPage) ClickLoginButton(ctx context.Context) error {
	return p.gateway.Click(ctx, loginButton)
}

// Login - enters both credentials and submits. The returned dashboard is not
// verified; callers assert on it.
func (p *LoginPage) Login(ctx context.Context, username, password string) (*DashboardPage, error) {
	p.logger.Info("Performing login")

	if err := p.EnterUsername(ctx, username); err != nil {
		return nil, err
	}
	if err := p.EnterPassword(ctx, password); err != nil {
		return nil, err
	}
	if err := p.ClickLoginButton(ctx); err != nil {
		return nil, err
	}
	return NewDashboardPage(p.gateway, p.logger), nil
}

// ErrorMessage - text of the alert banner shown after a rejected login
func (p *LoginPage) ErrorMessage(ctx context.Context) (string, error) {
	text, err := p.gateway.GetText(ctx, errorMessage)
	if err != nil {
		return "", err
	}
	p.logger.WithField("message", text).Info("Error message")
	return text, nil
}

func (p *LoginPage) IsErrorMessageDisplayed(ctx context.Context) (bool, error) {
	return p.gateway.IsDisplayed(ctx, errorMessage)
}

// RequiredFieldError - text of the first field validation message
func (p *LoginPage) RequiredFieldError(ctx context.Context) (string, error) {
	return p.gateway.GetText(ctx, requiredFieldMessage)
}

// IsLoginPageDisplayed - the page counts as displayed when the username field is visible
func (p *LoginPage) IsLoginPageDisplayed(ctx context.Context) (bool, error) {
	return p.gateway.IsDisplayed(ctx, usernameField)
}

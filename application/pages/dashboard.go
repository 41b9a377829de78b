package pages

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/zainbasra/orangehrm-automation-framework/domain/entities"
	"github.com/zainbasra/orangehrm-automation-framework/domain/interfaces"
)

var (
	dashboardHeader = entities.CSS("h6.oxd-text--h6")
	userDropdown    = entities.CSS("span.oxd-userdropdown-tab")
	logoutLink      = entities.LinkText("Logout")

	adminMenu       = menuItem("Admin")
	pimMenu         = menuItem("PIM")
	leaveMenu       = menuItem("Leave")
	timeMenu        = menuItem("Time")
	recruitmentMenu = menuItem("Recruitment")
)

func menuItem(label string) entities.Locator {
	return entities.XPath("//span[text()='" + label + "']")
}

// DashboardPage is the landing screen after sign-in, with the main menu
type DashboardPage struct {
	BasePage
}

// NewDashboardPage - creates the dashboard page over a session gateway
func NewDashboardPage(gateway interfaces.Gateway, logger logrus.FieldLogger) *DashboardPage {
	return &DashboardPage{BasePage: newBasePage(gateway, logger, "dashboard")}
}

// IsDashboardDisplayed - waits for the dashboard URL, then checks the header.
// A URL that never matches is returned as an error.
func (p *DashboardPage) IsDashboardDisplayed(ctx context.Context) (bool, error) {
	if err := p.gateway.WaitForURL(ctx, "dashboard"); err != nil {
		return false, err
	}
	return p.gateway.IsDisplayed(ctx, dashboardHeader)
}

// Header - text of the page header
func (p *DashboardPage) Header(ctx context.Context) (string, error) {
	return p.gateway.GetText(ctx, dashboardHeader)
}

func (p *DashboardPage) ClickAdminMenu(ctx context.Context) error {
	return p.clickMenu(ctx, adminMenu, "Admin")
}

func (p *DashboardPage) ClickPIMMenu(ctx context.Context) error {
	return p.clickMenu(ctx, pimMenu, "PIM")
}

func (p *DashboardPage) ClickLeaveMenu(ctx context.Context) error {
	return p.clickMenu(ctx, leaveMenu, "Leave")
}

func (p *DashboardPage) ClickTimeMenu(ctx context.Context) error {
	return p.clickMenu(ctx, timeMenu, "Time")
}

func (p *DashboardPage) ClickRecruitmentMenu(ctx context.Context) error {
	return p.clickMenu(ctx, recruitmentMenu, "Recruitment")
}

func (p *DashboardPage) clickMenu(ctx context.Context, loc entities.Locator, label string) error {
	if err := p.gateway.Click(ctx, loc); err != nil {
		return err
	}
	p.logger.WithField("menu", label).Info("Clicked menu")
	return nil
}

// Logout - opens the user dropdown, clicks logout and waits for the login URL
func (p *DashboardPage) Logout(ctx context.Context) (*LoginPage, error) {
	p.logger.Info("Performing logout")

	if err := p.gateway.Click(ctx, userDropdown); err != nil {
		return nil, err
	}
	if err := p.gateway.Click(ctx, logoutLink); err != nil {
		return nil, err
	}
	p.logger.Info("Clicked logout link")

	if err := p.gateway.WaitForURL(ctx, "auth/login"); err != nil {
		return nil, err
	}
	return NewLoginPage(p.gateway, p.logger), nil
}

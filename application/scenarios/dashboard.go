package scenarios

import (
	"context"

	"github.com/stretchr/testify/assert"

	"github.com/zainbasra/orangehrm-automation-framework/application/harness"
	"github.com/zainbasra/orangehrm-automation-framework/application/pages"
	"github.com/zainbasra/orangehrm-automation-framework/domain/errs"
)

type dashboardRunFunc func(ctx context.Context, t assert.TestingT, s *harness.Session, dashboard *pages.DashboardPage) error

// loggedIn - signs in with the configured credentials before running fn
func loggedIn(fn dashboardRunFunc) RunFunc {
	return func(ctx context.Context, t assert.TestingT, s *harness.Session) error {
		cfg := s.Config()
		dashboard, err := s.LoginPage().Login(ctx, cfg.Username, cfg.Password)
		if err != nil {
			return err
		}
		displayed, err := dashboard.IsDashboardDisplayed(ctx)
		if err != nil {
			return err
		}
		if !displayed {
			return errs.Assertf("dashboard not displayed after login")
		}
		return fn(ctx, t, s, dashboard)
	}
}

func dashboardScenarios() []Scenario {
	return []Scenario{
		{Name: "DashboardHeader", Suite: SuiteDashboard, Priority: 1, Description: "Verify DashBoard Header", Run: loggedIn(dashboardHeader)},
		{Name: "AdminMenuNavigation", Suite: SuiteDashboard, Priority: 2, Description: "Verify Admin Menu Navigation",
			Run: loggedIn(menuNavigation((*pages.DashboardPage).ClickAdminMenu, "viewSystemUsers"))},
		{Name: "PIMMenuNavigation", Suite: SuiteDashboard, Priority: 3, Description: "Verify PIM Menu Navigation",
			Run: loggedIn(menuNavigation((*pages.DashboardPage).ClickPIMMenu, "viewEmployeeList"))},
		{Name: "LeaveMenuNavigation", Suite: SuiteDashboard, Priority: 4, Description: "Verify Leave Menu Navigation",
			Run: loggedIn(menuNavigation((*pages.DashboardPage).ClickLeaveMenu, "viewLeaveList"))},
		{Name: "TimeMenuNavigation", Suite: SuiteDashboard, Priority: 5, Description: "Verify Time Menu Navigation",
			Run: loggedIn(menuNavigation((*pages.DashboardPage).ClickTimeMenu, "viewEmployeeTimesheet"))},
		{Name: "RecruitmentMenuNavigation", Suite: SuiteDashboard, Priority: 6, Description: "Verify Recruitment Menu Navigation",
			Run: loggedIn(menuNavigation((*pages.DashboardPage).ClickRecruitmentMenu, "viewCandidates"))},
	}
}

func dashboardHeader(ctx context.Context, t assert.TestingT, s *harness.Session, dashboard *pages.DashboardPage) error {
	header, err := dashboard.Header(ctx)
	if err != nil {
		return err
	}
	assert.Contains(t, header, "Dashboard", "header should contain 'Dashboard'")
	return nil
}

// menuNavigation - clicks a menu entry and expects its page URL
func menuNavigation(click func(*pages.DashboardPage, context.Context) error, fragment string) dashboardRunFunc {
	return func(ctx context.Context, t assert.TestingT, s *harness.Session, dashboard *pages.DashboardPage) error {
		if err := click(dashboard, ctx); err != nil {
			return err
		}
		// the menu click returns before the route changes; a timeout is left to the assertion
		if err := s.Gateway().WaitForURL(ctx, fragment); err != nil && !errs.IsTimeout(err) {
			return err
		}
		url, err := dashboard.PageURL(ctx)
		if err != nil {
			return err
		}
		assert.Contains(t, url, fragment, "URL should contain '%s'", fragment)
		return nil
	}
}

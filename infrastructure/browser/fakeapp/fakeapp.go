// Package fakeapp is an in-memory stand-in for the OrangeHRM web UI. It
// implements the browser session and gateway contracts so page objects,
// the session harness and scenarios can be exercised without a browser.
//
// Absent elements fail immediately with a timeout error instead of waiting
// out the policy bound.
package fakeapp

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/zainbasra/orangehrm-automation-framework/domain/entities"
	"github.com/zainbasra/orangehrm-automation-framework/domain/errs"
	"github.com/zainbasra/orangehrm-automation-framework/domain/interfaces"
)

const (
	BaseURL         = "https://opensource-demo.orangehrmlive.com/"
	LoginPath       = "web/index.php/auth/login"
	DashboardPath   = "web/index.php/dashboard/index"
	AdminPath       = "web/index.php/admin/viewSystemUsers"
	PIMPath         = "web/index.php/pim/viewEmployeeList"
	LeavePath       = "web/index.php/leave/viewLeaveList"
	TimePath        = "web/index.php/time/viewEmployeeTimesheet"
	RecruitmentPath = "web/index.php/recruitment/viewCandidates"

	InvalidCredentials = "Invalid credentials"
	Required           = "Required"
)

// DOM of the screens, as the real application renders it
var (
	usernameField = entities.Name("username")
	passwordField = entities.Name("password")
	submitButton  = entities.CSS("button[type='submit']")
	alertText     = entities.CSS("p.oxd-alert-content-text")
	requiredText  = entities.CSS("span.oxd-input-field-error-message")
	headerText    = entities.CSS("h6.oxd-text--h6")
	userDropdown  = entities.CSS("span.oxd-userdropdown-tab")
	logoutLink    = entities.LinkText("Logout")
)

type menuItem struct {
	locator entities.Locator
	path    string
	header  string
}

var menu = []menuItem{
	{entities.XPath("//span[text()='Admin']"), AdminPath, "Admin"},
	{entities.XPath("//span[text()='PIM']"), PIMPath, "PIM"},
	{entities.XPath("//span[text()='Leave']"), LeavePath, "Leave"},
	{entities.XPath("//span[text()='Time']"), TimePath, "Time"},
	{entities.XPath("//span[text()='Recruitment']"), RecruitmentPath, "Recruitment"},
}

// Options configures the simulated application. The defect switches let
// tests prove that scenarios notice a broken application.
type Options struct {
	Username string
	Password string

	SessionSurvivesLogout    bool
	CaseInsensitivePasswords bool
	SubmitLeavesLoginPage    bool
	LogoutIgnored            bool
}

// DefaultOptions - the demo credentials
func DefaultOptions() Options {
	return Options{Username: "Admin", Password: "admin123"}
}

// App is one simulated browser session on the application
type App struct {
	mu   sync.Mutex
	opts Options

	path          string
	authenticated bool
	fields        map[string]string
	alert         string
	required      bool
	menuOpen      bool

	closed      bool
	closeCalls  int
	implicit    time.Duration
	pageLoad    time.Duration
	policy      entities.WaitPolicy
	navigations []string
}

var (
	_ interfaces.BrowserSession = (*App)(nil)
	_ interfaces.Gateway        = (*App)(nil)
)

// New - creates a session sitting on a blank page
func New(opts Options) *App {
	return &App{
		opts:   opts,
		fields: make(map[string]string),
	}
}

// ConfigureTimeouts - records the bounds; the simulation never waits
func (a *App) ConfigureTimeouts(implicit, pageLoad time.Duration) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return errs.New(errs.Driver, "configure timeouts", "session closed")
	}
	a.implicit = implicit
	a.pageLoad = pageLoad
	return nil
}

// Gateway - the app serves as its own gateway
func (a *App) Gateway(policy entities.WaitPolicy) interfaces.Gateway {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.policy = policy
	return a
}

// Close - ends the session; later calls report a driver error
func (a *App) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closeCalls++
	a.closed = true
	return nil
}

func (a *App) Closed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.closed
}

func (a *App) CloseCalls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.closeCalls
}

// Timeouts - the implicit and page load bounds applied to this session
func (a *App) Timeouts() (time.Duration, time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.implicit, a.pageLoad
}

func (a *App) Policy() entities.WaitPolicy {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.policy
}

func (a *App) Navigations() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.navigations...)
}

// FieldValue - the current value of a login form input
func (a *App) FieldValue(name string) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.fields[name]
}

func (a *App) Authenticated() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.authenticated
}

type element struct {
	text    string
	visible bool
}

func (e element) Text() (string, error)      { return e.text, nil }
func (e element) IsDisplayed() (bool, error) { return e.visible, nil }

func (a *App) onLoginScreen() bool {
	return a.path == LoginPath
}

// lookup - resolves a locator against the current screen. Caller holds mu.
func (a *App) lookup(op string, loc entities.Locator) (element, error) {
	if a.closed {
		return element{}, errs.New(errs.Driver, op, "session closed")
	}
	if !loc.Valid() {
		return element{}, errs.New(errs.Driver, op, loc.String())
	}

	if a.onLoginScreen() {
		switch loc {
		case usernameField, passwordField, submitButton:
			return element{visible: true}, nil
		case alertText:
			if a.alert != "" {
				return element{text: a.alert, visible: true}, nil
			}
		case requiredText:
			if a.required {
				return element{text: Required, visible: true}, nil
			}
		}
		return element{}, errs.New(errs.Timeout, op, loc.String())
	}

	if !a.authenticated || a.path == "" {
		return element{}, errs.New(errs.Timeout, op, loc.String())
	}

	switch loc {
	case headerText:
		return element{text: a.header(), visible: true}, nil
	case userDropdown:
		return element{visible: true}, nil
	case logoutLink:
		if a.menuOpen {
			return element{text: "Logout", visible: true}, nil
		}
		return element{}, errs.New(errs.Timeout, op, loc.String())
	}
	for _, item := range menu {
		if item.locator == loc {
			return element{text: item.header, visible: true}, nil
		}
	}
	return element{}, errs.New(errs.Timeout, op, loc.String())
}

func (a *App) header() string {
	for _, item := range menu {
		if item.path == a.path {
			return item.header
		}
	}
	return "Dashboard"
}

// route - the path a request for path lands on. Caller holds mu.
func (a *App) route(path string) string {
	path = strings.Trim(path, "/")
	switch {
	case path == "" || path == "web/index.php":
		if a.authenticated {
			return DashboardPath
		}
		return LoginPath
	case path == LoginPath:
		return LoginPath
	case !a.authenticated:
		return LoginPath
	}
	return path
}

// goTo - loads a screen with fresh form state. Caller holds mu.
func (a *App) goTo(path string) {
	a.path = a.route(path)
	a.fields = make(map[string]string)
	a.alert = ""
	a.required = false
	a.menuOpen = false
}

func (a *App) FindElement(ctx context.Context, loc entities.Locator) (interfaces.ElementHandle, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	el, err := a.lookup("find", loc)
	if err != nil {
		return nil, err
	}
	return el, nil
}

func (a *App) Click(ctx context.Context, loc entities.Locator) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, err := a.lookup("click", loc); err != nil {
		return err
	}

	switch loc {
	case submitButton:
		a.submit()
		return nil
	case userDropdown:
		a.menuOpen = !a.menuOpen
		return nil
	case logoutLink:
		if a.opts.LogoutIgnored {
			a.menuOpen = false
			return nil
		}
		if !a.opts.SessionSurvivesLogout {
			a.authenticated = false
		}
		a.goTo(LoginPath)
		return nil
	}
	for _, item := range menu {
		if item.locator == loc {
			a.goTo(item.path)
			return nil
		}
	}
	return nil
}

// submit - validates the login form. Caller holds mu.
func (a *App) submit() {
	username, password := a.fields["username"], a.fields["password"]
	a.alert = ""
	a.required = false

	if username == "" || password == "" {
		a.required = true
		if a.opts.SubmitLeavesLoginPage {
			a.path = DashboardPath
			a.authenticated = true
		}
		return
	}

	passwordOK := password == a.opts.Password
	if a.opts.CaseInsensitivePasswords {
		passwordOK = strings.EqualFold(password, a.opts.Password)
	}
	if username != a.opts.Username || !passwordOK {
		a.alert = InvalidCredentials
		return
	}

	a.authenticated = true
	a.goTo(DashboardPath)
}

func (a *App) Type(ctx context.Context, loc entities.Locator, text string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, err := a.lookup("type", loc); err != nil {
		return err
	}

	switch loc {
	case usernameField, passwordField:
		a.fields[loc.Selector] = text
		return nil
	}
	return errs.New(errs.Interaction, "type", loc.String())
}

func (a *App) GetText(ctx context.Context, loc entities.Locator) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	el, err := a.lookup("get text", loc)
	if err != nil {
		return "", err
	}
	return el.text, nil
}

func (a *App) IsDisplayed(ctx context.Context, loc entities.Locator) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	el, err := a.lookup("is displayed", loc)
	if err != nil {
		if errs.IsAbsent(err) {
			return false, nil
		}
		return false, err
	}
	return el.visible, nil
}

func (a *App) WaitForURL(ctx context.Context, fragment string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return errs.New(errs.Driver, "wait for url", "session closed")
	}
	if !strings.Contains(BaseURL+a.path, fragment) {
		return errs.New(errs.Timeout, "wait for url", fragment)
	}
	return nil
}

func (a *App) Navigate(ctx context.Context, url string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return errs.New(errs.Driver, "navigate", "session closed")
	}
	if !strings.HasPrefix(url, strings.TrimSuffix(BaseURL, "/")) {
		return errs.New(errs.Driver, "navigate", url)
	}
	a.navigations = append(a.navigations, url)
	a.goTo(strings.TrimPrefix(url, strings.TrimSuffix(BaseURL, "/")))
	return nil
}

func (a *App) CurrentURL(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return "", errs.New(errs.Driver, "current url", "session closed")
	}
	return BaseURL + a.path, nil
}

func (a *App) Title(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return "", errs.New(errs.Driver, "title", "session closed")
	}
	return "OrangeHRM", nil
}

// Launcher hands out a fresh App per launch
type Launcher struct {
	Options   Options
	LaunchErr error

	mu       sync.Mutex
	sessions []*App
}

var _ interfaces.Launcher = (*Launcher)(nil)

// NewLauncher - creates a launcher for apps with the given options
func NewLauncher(opts Options) *Launcher {
	return &Launcher{Options: opts}
}

func (l *Launcher) Launch(ctx context.Context) (interfaces.BrowserSession, error) {
	if l.LaunchErr != nil {
		return nil, l.LaunchErr
	}
	app := New(l.Options)

	l.mu.Lock()
	l.sessions = append(l.sessions, app)
	l.mu.Unlock()
	return app, nil
}

// Sessions - every app launched so far
func (l *Launcher) Sessions() []*App {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*App(nil), l.sessions...)
}

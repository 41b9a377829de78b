package browser

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
	"go.uber.org/multierr"

	"github.com/zainbasra/orangehrm-automation-framework/domain/entities"
	"github.com/zainbasra/orangehrm-automation-framework/domain/interfaces"
	"github.com/zainbasra/orangehrm-automation-framework/infrastructure/config"
)

// SeleniumLauncher starts Chrome sessions through chromedriver, or through an
// existing WebDriver endpoint when one is configured
type SeleniumLauncher struct {
	cfg    *config.Config
	logger logrus.FieldLogger
}

// NewSeleniumLauncher - creates a launcher for the configured Chrome setup
func NewSeleniumLauncher(cfg *config.Config, logger logrus.FieldLogger) *SeleniumLauncher {
	return &SeleniumLauncher{
		cfg:    cfg,
		logger: logger,
	}
}

// findChromeDriver - finds ChromeDriver executable path
func findChromeDriver(configured string) (string, error) {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured, nil
		}
		return "", fmt.Errorf("chromedriver not found at %s", configured)
	}

	commonPaths := []string{
		"/usr/local/bin/chromedriver",
		"/usr/bin/chromedriver",
		"/opt/homebrew/bin/chromedriver",
		filepath.Join(os.Getenv("HOME"), "bin", "chromedriver"),
	}

	for _, path := range commonPaths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	if path, err := exec.LookPath("chromedriver"); err == nil {
		return path, nil
	}

	return "", fmt.Errorf("chromedriver not found. Please install it or set BROWSER_DRIVER_PATH environment variable")
}

// findChromeBinary - finds Chrome/Chromium browser executable path
func findChromeBinary(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
	}

	chromePaths := []string{
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
		"/Applications/Chromium.app/Contents/MacOS/Chromium",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		`C:\Program Files\Google\Chrome\Application\chrome.exe`,
		`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
	}

	for _, path := range chromePaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	for _, name := range []string{"google-chrome", "chromium", "chromium-browser"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	return ""
}

// chromeArgs - returns the browser startup arguments for the configuration
func chromeArgs(cfg *config.Config) []string {
	args := append([]string{}, cfg.BrowserArgs...)
	if cfg.Headless {
		args = append(args, "--headless=new", "--no-sandbox", "--disable-dev-shm-usage")
	}
	return args
}

// Launch - starts chromedriver (unless a remote endpoint is configured) and opens a session
func (l *SeleniumLauncher) Launch(ctx context.Context) (interfaces.BrowserSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var service *selenium.Service
	endpoint := l.cfg.RemoteURL

	if endpoint == "" {
		driverPath, err := findChromeDriver(l.cfg.ChromeDriverPath)
		if err != nil {
			return nil, fmt.Errorf("failed to find chromedriver: %w", err)
		}
		l.logger.Infof("Using ChromeDriver at: %s", driverPath)

		service, err = selenium.NewChromeDriverService(driverPath, l.cfg.DriverPort)
		if err != nil {
			return nil, fmt.Errorf("failed to start chromedriver: %w", err)
		}
		endpoint = fmt.Sprintf("http://localhost:%d", l.cfg.DriverPort)
	} else {
		l.logger.Infof("Using remote WebDriver at: %s", endpoint)
	}

	caps := selenium.Capabilities{
		"browserName": "chrome",
	}
	chromeCaps := chrome.Capabilities{
		Args: chromeArgs(l.cfg),
	}
	if binary := findChromeBinary(l.cfg.ChromeBinaryPath); binary != "" {
		l.logger.Infof("Using Chrome binary at: %s", binary)
		chromeCaps.Path = binary
	}
	caps.AddChrome(chromeCaps)

	wd, err := selenium.NewRemote(caps, endpoint)
	if err != nil {
		if service != nil {
			err = multierr.Append(err, service.Stop())
		}
		if strings.Contains(err.Error(), "cannot find Chrome binary") {
			return nil, fmt.Errorf("failed to create webdriver: Chrome browser not found. Please install Google Chrome or set CHROME_BINARY_PATH environment variable. Error: %w", err)
		}
		return nil, fmt.Errorf("failed to create webdriver: %w", err)
	}

	return &seleniumSession{
		wd:      wd,
		service: service,
		logger:  l.logger,
	}, nil
}

type seleniumSession struct {
	wd      selenium.WebDriver
	service *selenium.Service
	logger  logrus.FieldLogger
}

// ConfigureTimeouts - applies the implicit element wait and page load bounds
func (s *seleniumSession) ConfigureTimeouts(implicit, pageLoad time.Duration) error {
	if err := s.wd.SetImplicitWaitTimeout(implicit); err != nil {
		return fmt.Errorf("failed to set implicit wait: %w", err)
	}
	if err := s.wd.SetPageLoadTimeout(pageLoad); err != nil {
		return fmt.Errorf("failed to set page load timeout: %w", err)
	}
	return nil
}

// Gateway - returns a wait gateway over this session
func (s *seleniumSession) Gateway(policy entities.WaitPolicy) interfaces.Gateway {
	return NewSeleniumGateway(s.wd, policy, s.logger)
}

// Close - quits the browser and stops ChromeDriver service
func (s *seleniumSession) Close() error {
	var closeErr error
	if s.wd != nil {
		if err := s.wd.Quit(); err != nil {
			closeErr = multierr.Append(closeErr, fmt.Errorf("failed to quit browser: %w", err))
		}
		s.wd = nil
	}
	if s.service != nil {
		if err := s.service.Stop(); err != nil {
			closeErr = multierr.Append(closeErr, fmt.Errorf("failed to stop chromedriver: %w", err))
		}
		s.service = nil
	}
	return closeErr
}

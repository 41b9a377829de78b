package browser

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/zainbasra/orangehrm-automation-framework/domain/interfaces"
	"github.com/zainbasra/orangehrm-automation-framework/infrastructure/config"
)

// NewLauncher - returns the launcher for the configured driver backend
func NewLauncher(cfg *config.Config, logger logrus.FieldLogger) (interfaces.Launcher, error) {
	switch cfg.Driver {
	case config.DriverSelenium:
		return NewSeleniumLauncher(cfg, logger), nil
	case config.DriverPlaywright:
		return NewPlaywrightLauncher(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown driver %q", cfg.Driver)
	}
}

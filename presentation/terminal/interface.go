package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/zainbasra/orangehrm-automation-framework/application/harness"
	"github.com/zainbasra/orangehrm-automation-framework/application/runner"
	"github.com/zainbasra/orangehrm-automation-framework/application/scenarios"
	"github.com/zainbasra/orangehrm-automation-framework/domain/entities"
	"github.com/zainbasra/orangehrm-automation-framework/domain/interfaces"
	"github.com/zainbasra/orangehrm-automation-framework/infrastructure/browser"
	"github.com/zainbasra/orangehrm-automation-framework/infrastructure/config"
	"github.com/zainbasra/orangehrm-automation-framework/infrastructure/logging"
)

// ErrScenariosFailed is returned by Run when at least one scenario failed
var ErrScenariosFailed = errors.New("scenarios failed")

// Options are the command line settings
type Options struct {
	ConfigPath string
	Filter     string
	List       bool

	// Out receives the report; stdout when nil
	Out io.Writer
	// Launcher replaces the configured browser backend when set
	Launcher interfaces.Launcher
}

type TerminalInterface struct {
	opts     Options
	cfg      *config.Config
	logger   *logrus.Logger
	launcher interfaces.Launcher
	out      io.Writer
}

func NewTerminalInterface(opts Options) (*TerminalInterface, error) {
	// .env file is optional
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	launcher := opts.Launcher
	if launcher == nil {
		launcher, err = browser.NewLauncher(cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize browser: %w", err)
		}
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	return &TerminalInterface{
		opts:     opts,
		cfg:      cfg,
		logger:   logger,
		launcher: launcher,
		out:      out,
	}, nil
}

// Run - lists or runs the selected scenarios and prints one line per result
func (t *TerminalInterface) Run(ctx context.Context) error {
	selected, err := runner.Filter(scenarios.All(), t.opts.Filter)
	if err != nil {
		return err
	}
	if len(selected) == 0 {
		return fmt.Errorf("no scenario matches %q", t.opts.Filter)
	}

	if t.opts.List {
		for _, sc := range selected {
			fmt.Fprintf(t.out, "%-10s %-28s %s\n", sc.Suite, sc.Name, sc.Description)
		}
		return nil
	}

	fmt.Fprintf(t.out, "OrangeHRM UI scenarios against %s (%s)\n", t.cfg.BaseURL, t.cfg.Driver)
	fmt.Fprintln(t.out, strings.Repeat("=", 40))

	h := harness.New(t.cfg, t.launcher, t.logger)
	results := runner.New(h, t.logger).Run(ctx, selected)
	for _, res := range results {
		t.printResult(res)
	}

	summary := runner.Summarize(results)
	fmt.Fprintf(t.out, "\n%d passed, %d failed, %d skipped\n", summary.Passed, summary.Failed, summary.Skipped)
	if !summary.OK() {
		return ErrScenariosFailed
	}
	return nil
}

func (t *TerminalInterface) printResult(res entities.ScenarioResult) {
	mark := "PASS"
	switch res.Status {
	case entities.ScenarioFailed:
		mark = "FAIL"
	case entities.ScenarioSkipped:
		mark = "SKIP"
	}
	fmt.Fprintf(t.out, "%s  %-28s %s\n", mark, res.Name, res.Duration.Round(time.Millisecond))

	if res.Error != "" {
		fmt.Fprintf(t.out, "      error: %s\n", res.Error)
	}
	for _, failure := range res.Failures {
		fmt.Fprintf(t.out, "      %s\n", indent(failure))
	}
}

func indent(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "\n", "\n      ")
}

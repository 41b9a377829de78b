// Package runner executes scenarios one after another, each on its own
// browser session, and collects their results.
package runner

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/zainbasra/orangehrm-automation-framework/application/harness"
	"github.com/zainbasra/orangehrm-automation-framework/application/scenarios"
	"github.com/zainbasra/orangehrm-automation-framework/domain/entities"
)

// Runner drives a list of scenarios through the harness
type Runner struct {
	harness *harness.Harness
	logger  logrus.FieldLogger
}

// New - creates a runner
func New(h *harness.Harness, logger logrus.FieldLogger) *Runner {
	return &Runner{
		harness: h,
		logger:  logger,
	}
}

// Run - executes every scenario in order. Once ctx is done the remaining
// scenarios are reported as skipped.
func (r *Runner) Run(ctx context.Context, list []scenarios.Scenario) []entities.ScenarioResult {
	results := make([]entities.ScenarioResult, 0, len(list))

	for _, sc := range list {
		select {
		case <-ctx.Done():
			results = append(results, entities.ScenarioResult{
				ID:          uuid.NewString(),
				Name:        sc.Name,
				Description: sc.Description,
				Status:      entities.ScenarioSkipped,
				Error:       fmt.Sprintf("run canceled: %v", ctx.Err()),
			})
			continue
		default:
		}

		results = append(results, r.RunScenario(ctx, sc))
	}

	return results
}

// RunScenario - runs one scenario on a fresh session, released on every path
func (r *Runner) RunScenario(ctx context.Context, sc scenarios.Scenario) (result entities.ScenarioResult) {
	result = entities.ScenarioResult{
		ID:          uuid.NewString(),
		Name:        sc.Name,
		Description: sc.Description,
		Status:      entities.ScenarioRunning,
	}
	logger := r.logger.WithFields(logrus.Fields{
		"scenario": sc.Name,
		"run_id":   result.ID,
	})
	logger.WithField("description", sc.Description).Info("Scenario started")

	start := time.Now()
	defer func() {
		result.Duration = time.Since(start)
	}()

	session, err := r.harness.Start(ctx)
	if err != nil {
		result.Status = entities.ScenarioFailed
		result.Error = err.Error()
		logger.WithError(err).Error("Failed to start session")
		return result
	}

	var runErr error
	defer func() {
		closeErr := session.Close()
		if closeErr == nil {
			return
		}
		logger.WithError(closeErr).Warn("Failed to release session")
		runErr = multierr.Append(runErr, closeErr)
		result.Status = entities.ScenarioFailed
		result.Error = runErr.Error()
	}()

	rec := &scenarios.Recorder{}
	runErr = sc.Run(ctx, rec, session)

	result.Failures = rec.Failures()
	switch {
	case runErr != nil:
		result.Status = entities.ScenarioFailed
		result.Error = runErr.Error()
		logger.WithError(runErr).Error("Scenario failed")
	case rec.Failed():
		result.Status = entities.ScenarioFailed
		logger.WithField("failures", len(result.Failures)).Error("Scenario assertions failed")
	default:
		result.Status = entities.ScenarioPassed
		logger.Info("Scenario passed")
	}
	return result
}

// Filter - keeps scenarios whose name or suite matches pattern; empty keeps all
func Filter(list []scenarios.Scenario, pattern string) ([]scenarios.Scenario, error) {
	if pattern == "" {
		return list, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid scenario filter: %w", err)
	}

	var kept []scenarios.Scenario
	for _, sc := range list {
		if re.MatchString(sc.Name) || re.MatchString(string(sc.Suite)) {
			kept = append(kept, sc)
		}
	}
	return kept, nil
}

// Summary counts results by outcome
type Summary struct {
	Passed  int
	Failed  int
	Skipped int
}

// Summarize - tallies results
func Summarize(results []entities.ScenarioResult) Summary {
	var s Summary
	for _, res := range results {
		switch res.Status {
		case entities.ScenarioPassed:
			s.Passed++
		case entities.ScenarioSkipped:
			s.Skipped++
		default:
			s.Failed++
		}
	}
	return s
}

// OK - reports whether nothing failed
func (s Summary) OK() bool {
	return s.Failed == 0
}

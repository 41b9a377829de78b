package entities

import "time"

// ScenarioStatus represents the state of one scenario run
type ScenarioStatus string

const (
	ScenarioRunning ScenarioStatus = "running"
	ScenarioPassed  ScenarioStatus = "passed"
	ScenarioFailed  ScenarioStatus = "failed"
	ScenarioSkipped ScenarioStatus = "skipped"
)

// ScenarioResult is the outcome of running a scenario against a fresh session
type ScenarioResult struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Status      ScenarioStatus `json:"status"`
	Failures    []string       `json:"failures,omitempty"`
	Error       string         `json:"error,omitempty"`
	Duration    time.Duration  `json:"duration"`
}

// Passed - reports whether the scenario finished without errors or failed assertions
func (r ScenarioResult) Passed() bool {
	return r.Status == ScenarioPassed
}

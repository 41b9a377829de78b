// Package scenarios is the catalogue of end-to-end checks run against the
// application. A scenario drives page objects on a session started by the
// harness and reports expectation failures through an assert.TestingT, so the
// same catalogue runs under go test and under the terminal runner.
package scenarios

import (
	"cmp"
	"context"
	"slices"

	"github.com/stretchr/testify/assert"

	"github.com/zainbasra/orangehrm-automation-framework/application/harness"
)

// Suite groups scenarios that share a setup
type Suite string

const (
	SuiteLogin     Suite = "login"
	SuiteDashboard Suite = "dashboard"
)

var suiteOrder = map[Suite]int{
	SuiteLogin:     0,
	SuiteDashboard: 1,
}

// RunFunc drives one scenario. A returned error aborts the scenario; failed
// expectations are reported on t and the scenario continues.
type RunFunc func(ctx context.Context, t assert.TestingT, s *harness.Session) error

// Scenario is one catalogued check
type Scenario struct {
	Name        string
	Suite       Suite
	Priority    int
	Description string
	Run         RunFunc
}

// All - every scenario, by suite and then by priority
func All() []Scenario {
	all := append(loginScenarios(), dashboardScenarios()...)
	slices.SortStableFunc(all, func(a, b Scenario) int {
		if c := cmp.Compare(suiteOrder[a.Suite], suiteOrder[b.Suite]); c != 0 {
			return c
		}
		return cmp.Compare(a.Priority, b.Priority)
	})
	return all
}

// Lookup - finds a scenario by name
func Lookup(name string) (Scenario, bool) {
	for _, sc := range All() {
		if sc.Name == name {
			return sc, true
		}
	}
	return Scenario{}, false
}

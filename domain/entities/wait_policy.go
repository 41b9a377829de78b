package entities

import "time"

// DefaultPollInterval matches the polling period of a WebDriver explicit wait
const DefaultPollInterval = 500 * time.Millisecond

// WaitPolicy bounds every element wait performed by a gateway
type WaitPolicy struct {
	Timeout  time.Duration `json:"timeout"`
	Interval time.Duration `json:"interval"`
}

// NewWaitPolicy - creates a policy with the given bound and the default poll interval
func NewWaitPolicy(timeout time.Duration) WaitPolicy {
	return WaitPolicy{Timeout: timeout, Interval: DefaultPollInterval}
}

// PollInterval - returns the interval, never longer than the timeout itself
func (p WaitPolicy) PollInterval() time.Duration {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if p.Timeout > 0 && interval > p.Timeout {
		interval = p.Timeout
	}
	return interval
}

// Milliseconds - returns the timeout as the float millisecond value Playwright expects
func (p WaitPolicy) Milliseconds() float64 {
	return float64(p.Timeout) / float64(time.Millisecond)
}

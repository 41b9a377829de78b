package scenarios

import (
	"fmt"
	"sync"
)

// Recorder collects expectation failures outside of go test
type Recorder struct {
	mu       sync.Mutex
	failures []string
}

// Errorf - records a failure; satisfies assert.TestingT
func (r *Recorder) Errorf(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, fmt.Sprintf(format, args...))
}

func (r *Recorder) Failed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.failures) > 0
}

func (r *Recorder) Failures() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.failures...)
}

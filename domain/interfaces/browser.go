package interfaces

import (
	"context"
	"time"

	"github.com/zainbasra/orangehrm-automation-framework/domain/entities"
)

// ElementHandle is an element found on the current page
type ElementHandle interface {
	// Text returns the rendered text of the element
	Text() (string, error)

	// IsDisplayed reports whether the element is visible
	IsDisplayed() (bool, error)
}

// Gateway defines wait-qualified element operations. Every call waits for its
// precondition within the configured WaitPolicy before acting.
type Gateway interface {
	// FindElement waits until the element is present
	FindElement(ctx context.Context, loc entities.Locator) (ElementHandle, error)

	// Click waits for presence and clicks the element
	Click(ctx context.Context, loc entities.Locator) error

	// Type waits for presence, clears the field and enters text
	Type(ctx context.Context, loc entities.Locator, text string) error

	// GetText waits for presence and returns the rendered text
	GetText(ctx context.Context, loc entities.Locator) (string, error)

	// IsDisplayed waits for presence and reports visibility. Absence is
	// reported as false, other failures are returned.
	IsDisplayed(ctx context.Context, loc entities.Locator) (bool, error)

	// WaitForURL waits until the current URL contains fragment
	WaitForURL(ctx context.Context, fragment string) error

	// Navigate loads a URL in the current page
	Navigate(ctx context.Context, url string) error

	// CurrentURL returns the current page URL
	CurrentURL(ctx context.Context) (string, error)

	// Title returns the current page title
	Title(ctx context.Context) (string, error)
}

// BrowserSession is one live browser automation context
type BrowserSession interface {
	// ConfigureTimeouts applies the implicit element wait and page load bounds
	ConfigureTimeouts(implicit, pageLoad time.Duration) error

	// Gateway returns a gateway bound to the given wait policy
	Gateway(policy entities.WaitPolicy) Gateway

	// Close releases the browser and any driver process behind it
	Close() error
}

// Launcher starts browser sessions
type Launcher interface {
	Launch(ctx context.Context) (BrowserSession, error)
}

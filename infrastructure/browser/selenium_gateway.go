package browser

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tebeka/selenium"

	"github.com/zainbasra/orangehrm-automation-framework/domain/entities"
	"github.com/zainbasra/orangehrm-automation-framework/domain/errs"
	"github.com/zainbasra/orangehrm-automation-framework/domain/interfaces"
)

// WebDriver error names that mean the element is not (or no longer) on the page
const (
	errNoSuchElement  = "no such element"
	errStaleElement   = "stale element reference"
	errInvalidSession = "invalid session id"
	errNoSuchWindow   = "no such window"
	errPageTimeout    = "timeout"
)

// SeleniumGateway implements interfaces.Gateway on a WebDriver session
type SeleniumGateway struct {
	wd     selenium.WebDriver
	policy entities.WaitPolicy
	logger logrus.FieldLogger
}

var _ interfaces.Gateway = (*SeleniumGateway)(nil)

// NewSeleniumGateway - creates a gateway bound to the given wait policy
func NewSeleniumGateway(wd selenium.WebDriver, policy entities.WaitPolicy, logger logrus.FieldLogger) *SeleniumGateway {
	return &SeleniumGateway{
		wd:     wd,
		policy: policy,
		logger: logger,
	}
}

// present - polls until the element is in the document. Missing and stale
// lookups keep polling; any other driver error ends the wait immediately.
func (s *SeleniumGateway) present(ctx context.Context, op string, loc entities.Locator) (selenium.WebElement, error) {
	by, value, err := seleniumBy(loc)
	if err != nil {
		return nil, errs.Wrap(errs.Driver, op, loc.String(), err)
	}

	var (
		found     selenium.WebElement
		lookupErr error
	)
	err = s.wd.WaitWithTimeoutAndInterval(func(wd selenium.WebDriver) (bool, error) {
		if err := ctx.Err(); err != nil {
			lookupErr = err
			return false, err
		}
		element, err := wd.FindElement(by, value)
		if err != nil {
			if isMissing(err) {
				return false, nil
			}
			lookupErr = err
			return false, err
		}
		found = element
		return true, nil
	}, s.policy.Timeout, s.policy.PollInterval())

	if err != nil {
		if lookupErr != nil {
			return nil, errs.Wrap(errs.Driver, op, loc.String(), lookupErr)
		}
		return nil, errs.Wrap(errs.Timeout, op, loc.String(), err)
	}
	return found, nil
}

// FindElement - waits for the element to be present
func (s *SeleniumGateway) FindElement(ctx context.Context, loc entities.Locator) (interfaces.ElementHandle, error) {
	element, err := s.present(ctx, "find", loc)
	if err != nil {
		return nil, err
	}
	return element, nil
}

// Click - waits for presence only, then clicks
func (s *SeleniumGateway) Click(ctx context.Context, loc entities.Locator) error {
	s.logger.WithField("locator", loc.String()).Debug("Clicking")

	element, err := s.present(ctx, "click", loc)
	if err != nil {
		return err
	}
	if err := element.Click(); err != nil {
		return actionError("click", loc, err)
	}
	return nil
}

// Type - waits for presence, clears the field, then enters text
func (s *SeleniumGateway) Type(ctx context.Context, loc entities.Locator, text string) error {
	s.logger.WithField("locator", loc.String()).Debug("Typing text")

	element, err := s.present(ctx, "type", loc)
	if err != nil {
		return err
	}
	if err := element.Clear(); err != nil {
		return actionError("type", loc, err)
	}
	if text == "" {
		return nil
	}
	if err := element.SendKeys(text); err != nil {
		return actionError("type", loc, err)
	}
	return nil
}

// GetText - waits for presence and returns the rendered text
func (s *SeleniumGateway) GetText(ctx context.Context, loc entities.Locator) (string, error) {
	element, err := s.present(ctx, "get text", loc)
	if err != nil {
		return "", err
	}
	text, err := element.Text()
	if err != nil {
		return "", actionError("get text", loc, err)
	}
	return text, nil
}

// IsDisplayed - reports visibility; an element that never shows up is not displayed
func (s *SeleniumGateway) IsDisplayed(ctx context.Context, loc entities.Locator) (bool, error) {
	element, err := s.present(ctx, "is displayed", loc)
	if err != nil {
		if errs.IsAbsent(err) {
			s.logger.WithField("locator", loc.String()).Debug("Element not present")
			return false, nil
		}
		return false, err
	}

	visible, err := element.IsDisplayed()
	if err != nil {
		err = actionError("is displayed", loc, err)
		if errs.IsAbsent(err) {
			return false, nil
		}
		return false, err
	}
	return visible, nil
}

// WaitForURL - waits until the current URL contains fragment
func (s *SeleniumGateway) WaitForURL(ctx context.Context, fragment string) error {
	var urlErr error
	err := s.wd.WaitWithTimeoutAndInterval(func(wd selenium.WebDriver) (bool, error) {
		if err := ctx.Err(); err != nil {
			urlErr = err
			return false, err
		}
		current, err := wd.CurrentURL()
		if err != nil {
			urlErr = err
			return false, err
		}
		return strings.Contains(current, fragment), nil
	}, s.policy.Timeout, s.policy.PollInterval())

	if err != nil {
		if urlErr != nil {
			return errs.Wrap(errs.Driver, "wait for url", fragment, urlErr)
		}
		return errs.Wrap(errs.Timeout, "wait for url", fragment, err)
	}
	return nil
}

// Navigate - loads url, bounded by the session page load timeout
func (s *SeleniumGateway) Navigate(ctx context.Context, url string) error {
	s.logger.Infof("Navigating to: %s", url)

	if err := ctx.Err(); err != nil {
		return errs.Wrap(errs.Driver, "navigate", url, err)
	}
	if err := s.wd.Get(url); err != nil {
		if webDriverError(err) == errPageTimeout {
			return errs.Wrap(errs.Timeout, "navigate", url, err)
		}
		return errs.Wrap(errs.Driver, "navigate", url, err)
	}
	return nil
}

// CurrentURL - returns the current page URL
func (s *SeleniumGateway) CurrentURL(ctx context.Context) (string, error) {
	current, err := s.wd.CurrentURL()
	if err != nil {
		return "", errs.Wrap(errs.Driver, "current url", "", err)
	}
	return current, nil
}

// Title - returns the current page title
func (s *SeleniumGateway) Title(ctx context.Context) (string, error) {
	title, err := s.wd.Title()
	if err != nil {
		return "", errs.Wrap(errs.Driver, "title", "", err)
	}
	return title, nil
}

// actionError - classifies a failure of an action on a found element
func actionError(op string, loc entities.Locator, err error) error {
	switch webDriverError(err) {
	case errStaleElement, errNoSuchElement:
		return errs.Wrap(errs.NotFound, op, loc.String(), err)
	case errInvalidSession, errNoSuchWindow:
		return errs.Wrap(errs.Driver, op, loc.String(), err)
	default:
		return errs.Wrap(errs.Interaction, op, loc.String(), err)
	}
}

func isMissing(err error) bool {
	switch webDriverError(err) {
	case errNoSuchElement, errStaleElement:
		return true
	}
	return false
}

// webDriverError - returns the W3C error name, falling back to the message
// for drivers speaking the legacy protocol
func webDriverError(err error) string {
	var se *selenium.Error
	if errors.As(err, &se) && se.Err != "" {
		return se.Err
	}

	msg := strings.ToLower(err.Error())
	for _, name := range []string{errNoSuchElement, errStaleElement, errInvalidSession, errNoSuchWindow} {
		if strings.Contains(msg, name) {
			return name
		}
	}
	return ""
}

package browser

import (
	"context"
	"errors"
	"regexp"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"

	"github.com/zainbasra/orangehrm-automation-framework/domain/entities"
	"github.com/zainbasra/orangehrm-automation-framework/domain/errs"
	"github.com/zainbasra/orangehrm-automation-framework/domain/interfaces"
)

// PlaywrightGateway implements interfaces.Gateway on a Playwright page
type PlaywrightGateway struct {
	page   playwright.Page
	policy entities.WaitPolicy
	logger logrus.FieldLogger
}

var _ interfaces.Gateway = (*PlaywrightGateway)(nil)

// NewPlaywrightGateway - creates a gateway bound to the given wait policy
func NewPlaywrightGateway(page playwright.Page, policy entities.WaitPolicy, logger logrus.FieldLogger) *PlaywrightGateway {
	return &PlaywrightGateway{
		page:   page,
		policy: policy,
		logger: logger,
	}
}

type playwrightElement struct {
	locator playwright.Locator
}

func (e playwrightElement) Text() (string, error) {
	return e.locator.InnerText()
}

func (e playwrightElement) IsDisplayed() (bool, error) {
	return e.locator.IsVisible()
}

// present - waits until the first match is attached to the document
func (p *PlaywrightGateway) present(ctx context.Context, op string, loc entities.Locator) (playwright.Locator, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(errs.Driver, op, loc.String(), err)
	}

	selector, err := playwrightSelector(loc)
	if err != nil {
		return nil, errs.Wrap(errs.Driver, op, loc.String(), err)
	}

	locator := p.page.Locator(selector).First()
	err = locator.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: playwright.Float(p.policy.Milliseconds()),
	})
	if err != nil {
		if isPlaywrightTimeout(err) {
			return nil, errs.Wrap(errs.Timeout, op, loc.String(), err)
		}
		return nil, errs.Wrap(errs.Driver, op, loc.String(), err)
	}
	return locator, nil
}

// FindElement - waits for the element to be present
func (p *PlaywrightGateway) FindElement(ctx context.Context, loc entities.Locator) (interfaces.ElementHandle, error) {
	locator, err := p.present(ctx, "find", loc)
	if err != nil {
		return nil, err
	}
	return playwrightElement{locator: locator}, nil
}

// Click - waits for presence, then clicks. Playwright's own actionability
// checks run inside the click within the session default timeout.
func (p *PlaywrightGateway) Click(ctx context.Context, loc entities.Locator) error {
	p.logger.WithField("locator", loc.String()).Debug("Clicking")

	locator, err := p.present(ctx, "click", loc)
	if err != nil {
		return err
	}
	if err := locator.Click(); err != nil {
		return playwrightActionError("click", loc, err)
	}
	return nil
}

// Type - waits for presence, clears the field, then fills text
func (p *PlaywrightGateway) Type(ctx context.Context, loc entities.Locator, text string) error {
	p.logger.WithField("locator", loc.String()).Debug("Typing text")

	locator, err := p.present(ctx, "type", loc)
	if err != nil {
		return err
	}
	if err := locator.Clear(); err != nil {
		return playwrightActionError("type", loc, err)
	}
	if err := locator.Fill(text); err != nil {
		return playwrightActionError("type", loc, err)
	}
	return nil
}

// GetText - waits for presence and returns the rendered text
func (p *PlaywrightGateway) GetText(ctx context.Context, loc entities.Locator) (string, error) {
	locator, err := p.present(ctx, "get text", loc)
	if err != nil {
		return "", err
	}
	text, err := locator.InnerText()
	if err != nil {
		return "", playwrightActionError("get text", loc, err)
	}
	return text, nil
}

// IsDisplayed - reports visibility; an element that never shows up is not displayed
func (p *PlaywrightGateway) IsDisplayed(ctx context.Context, loc entities.Locator) (bool, error) {
	locator, err := p.present(ctx, "is displayed", loc)
	if err != nil {
		if errs.IsAbsent(err) {
			p.logger.WithField("locator", loc.String()).Debug("Element not present")
			return false, nil
		}
		return false, err
	}

	visible, err := locator.IsVisible()
	if err != nil {
		return false, playwrightActionError("is displayed", loc, err)
	}
	return visible, nil
}

// WaitForURL - waits until the current URL contains fragment
func (p *PlaywrightGateway) WaitForURL(ctx context.Context, fragment string) error {
	if err := ctx.Err(); err != nil {
		return errs.Wrap(errs.Driver, "wait for url", fragment, err)
	}

	err := p.page.WaitForURL(regexp.MustCompile(regexp.QuoteMeta(fragment)), playwright.PageWaitForURLOptions{
		Timeout:   playwright.Float(p.policy.Milliseconds()),
		WaitUntil: playwright.WaitUntilStateCommit,
	})
	if err != nil {
		if isPlaywrightTimeout(err) {
			return errs.Wrap(errs.Timeout, "wait for url", fragment, err)
		}
		return errs.Wrap(errs.Driver, "wait for url", fragment, err)
	}
	return nil
}

// Navigate - loads url, bounded by the session navigation timeout
func (p *PlaywrightGateway) Navigate(ctx context.Context, url string) error {
	p.logger.Infof("Navigating to: %s", url)

	if err := ctx.Err(); err != nil {
		return errs.Wrap(errs.Driver, "navigate", url, err)
	}
	if _, err := p.page.Goto(url); err != nil {
		if isPlaywrightTimeout(err) {
			return errs.Wrap(errs.Timeout, "navigate", url, err)
		}
		return errs.Wrap(errs.Driver, "navigate", url, err)
	}
	return nil
}

// CurrentURL - returns the current page URL
func (p *PlaywrightGateway) CurrentURL(ctx context.Context) (string, error) {
	return p.page.URL(), nil
}

// Title - returns the current page title
func (p *PlaywrightGateway) Title(ctx context.Context) (string, error) {
	title, err := p.page.Title()
	if err != nil {
		return "", errs.Wrap(errs.Driver, "title", "", err)
	}
	return title, nil
}

func isPlaywrightTimeout(err error) bool {
	if errors.Is(err, playwright.ErrTimeout) {
		return true
	}
	var pwErr *playwright.Error
	return errors.As(err, &pwErr) && pwErr.Name == "TimeoutError"
}

// playwrightActionError - classifies a failure of an action on an attached element
func playwrightActionError(op string, loc entities.Locator, err error) error {
	if errors.Is(err, playwright.ErrTargetClosed) {
		return errs.Wrap(errs.Driver, op, loc.String(), err)
	}
	return errs.Wrap(errs.Interaction, op, loc.String(), err)
}

package browser

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tebeka/selenium"
	"pgregory.net/rapid"

	"github.com/zainbasra/orangehrm-automation-framework/domain/entities"
	"github.com/zainbasra/orangehrm-automation-framework/domain/errs"
	"github.com/zainbasra/orangehrm-automation-framework/infrastructure/logging"
)

var testPolicy = entities.WaitPolicy{Timeout: 30 * time.Millisecond, Interval: 2 * time.Millisecond}

// fakeWebDriver implements the parts of selenium.WebDriver the gateway uses.
// Calling anything else panics on the nil embedded interface.
type fakeWebDriver struct {
	selenium.WebDriver

	mu          sync.Mutex
	elements    map[string]*fakeElement
	appearAfter map[string]int
	lookups     map[string]int
	lookupErr   error
	url         string
	getErr      error
	title       string
}

func newFakeWebDriver() *fakeWebDriver {
	return &fakeWebDriver{
		elements:    make(map[string]*fakeElement),
		appearAfter: make(map[string]int),
		lookups:     make(map[string]int),
	}
}

func elementKey(by, value string) string {
	return by + "=" + value
}

func (f *fakeWebDriver) add(loc entities.Locator, el *fakeElement) *fakeElement {
	by, value, err := seleniumBy(loc)
	if err != nil {
		panic(err)
	}
	f.elements[elementKey(by, value)] = el
	return el
}

func (f *fakeWebDriver) FindElement(by, value string) (selenium.WebElement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	key := elementKey(by, value)
	f.lookups[key]++
	el, ok := f.elements[key]
	if !ok || f.lookups[key] <= f.appearAfter[key] {
		return nil, &selenium.Error{Err: "no such element", Message: fmt.Sprintf("Unable to locate element: %s", key)}
	}
	return el, nil
}

func (f *fakeWebDriver) CurrentURL() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.url, nil
}

func (f *fakeWebDriver) Get(url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return f.getErr
	}
	f.url = url
	return nil
}

func (f *fakeWebDriver) Title() (string, error) {
	return f.title, nil
}

func (f *fakeWebDriver) WaitWithTimeoutAndInterval(condition selenium.Condition, timeout, interval time.Duration) error {
	start := time.Now()
	for {
		done, err := condition(f)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		if elapsed := time.Since(start); elapsed > timeout {
			return fmt.Errorf("timeout after %v", elapsed)
		}
		time.Sleep(interval)
	}
}

type fakeElement struct {
	selenium.WebElement

	value      string
	text       string
	displayed  bool
	clicks     int
	clickErr   error
	displayErr error
}

func (e *fakeElement) Click() error {
	if e.clickErr != nil {
		return e.clickErr
	}
	e.clicks++
	return nil
}

func (e *fakeElement) Clear() error {
	e.value = ""
	return nil
}

func (e *fakeElement) SendKeys(keys string) error {
	e.value += keys
	return nil
}

func (e *fakeElement) Text() (string, error) {
	return e.text, nil
}

func (e *fakeElement) IsDisplayed() (bool, error) {
	return e.displayed, e.displayErr
}

func newTestGateway(wd *fakeWebDriver) *SeleniumGateway {
	return NewSeleniumGateway(wd, testPolicy, logging.Discard())
}

func TestSeleniumGateway_AbsentElementTimesOut(t *testing.T) {
	ctx := context.Background()
	gw := newTestGateway(newFakeWebDriver())
	missing := entities.CSS("p.oxd-alert-content-text")

	_, err := gw.FindElement(ctx, missing)
	assert.True(t, errs.IsTimeout(err), "find: %v", err)

	err = gw.Click(ctx, missing)
	assert.True(t, errs.IsTimeout(err), "click: %v", err)

	_, err = gw.GetText(ctx, missing)
	assert.True(t, errs.IsTimeout(err), "get text: %v", err)

	err = gw.Type(ctx, missing, "Admin")
	assert.True(t, errs.IsTimeout(err), "type: %v", err)

	visible, err := gw.IsDisplayed(ctx, missing)
	assert.NoError(t, err)
	assert.False(t, visible)
}

func TestSeleniumGateway_WaitsForLateElement(t *testing.T) {
	wd := newFakeWebDriver()
	button := wd.add(entities.CSS("button[type='submit']"), &fakeElement{displayed: true})
	by, value, _ := seleniumBy(entities.CSS("button[type='submit']"))
	wd.appearAfter[elementKey(by, value)] = 3

	err := newTestGateway(wd).Click(context.Background(), entities.CSS("button[type='submit']"))
	require.NoError(t, err)
	assert.Equal(t, 1, button.clicks)
	assert.Equal(t, 4, wd.lookups[elementKey(by, value)])
}

func TestSeleniumGateway_TypeClearsBeforeWrite(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		prior := rapid.String().Draw(rt, "prior")
		text := rapid.String().Draw(rt, "text")

		wd := newFakeWebDriver()
		field := wd.add(entities.Name("username"), &fakeElement{value: prior})

		if err := newTestGateway(wd).Type(context.Background(), entities.Name("username"), text); err != nil {
			rt.Fatalf("type: %v", err)
		}
		if field.value != text {
			rt.Fatalf("field value = %q, want %q", field.value, text)
		}
	})
}

func TestSeleniumGateway_ClickRejected(t *testing.T) {
	wd := newFakeWebDriver()
	wd.add(entities.LinkText("Logout"), &fakeElement{
		clickErr: &selenium.Error{Err: "element click intercepted", Message: "Other element would receive the click"},
	})

	err := newTestGateway(wd).Click(context.Background(), entities.LinkText("Logout"))
	assert.True(t, errs.IsInteraction(err), "got %v", err)
}

func TestSeleniumGateway_StaleElementIsNotFound(t *testing.T) {
	wd := newFakeWebDriver()
	wd.add(entities.LinkText("Logout"), &fakeElement{
		clickErr: &selenium.Error{Err: "stale element reference", Message: "element is not attached to the page document"},
	})

	err := newTestGateway(wd).Click(context.Background(), entities.LinkText("Logout"))
	assert.True(t, errs.IsNotFound(err), "got %v", err)
}

func TestSeleniumGateway_IsDisplayed(t *testing.T) {
	wd := newFakeWebDriver()
	wd.add(entities.CSS("h6.oxd-text--h6"), &fakeElement{displayed: true, text: "Dashboard"})
	wd.add(entities.CSS("span.hidden"), &fakeElement{displayed: false})
	wd.add(entities.CSS("span.detached"), &fakeElement{
		displayErr: &selenium.Error{Err: "stale element reference"},
	})
	gw := newTestGateway(wd)
	ctx := context.Background()

	visible, err := gw.IsDisplayed(ctx, entities.CSS("h6.oxd-text--h6"))
	require.NoError(t, err)
	assert.True(t, visible)

	visible, err = gw.IsDisplayed(ctx, entities.CSS("span.hidden"))
	require.NoError(t, err)
	assert.False(t, visible)

	visible, err = gw.IsDisplayed(ctx, entities.CSS("span.detached"))
	require.NoError(t, err)
	assert.False(t, visible)

	text, err := gw.GetText(ctx, entities.CSS("h6.oxd-text--h6"))
	require.NoError(t, err)
	assert.Equal(t, "Dashboard", text)
}

func TestSeleniumGateway_IsDisplayedPropagatesBrokenSession(t *testing.T) {
	wd := newFakeWebDriver()
	wd.lookupErr = &selenium.Error{Err: "invalid session id", Message: "session deleted because of page crash"}

	visible, err := newTestGateway(wd).IsDisplayed(context.Background(), entities.CSS("p.oxd-alert-content-text"))
	require.Error(t, err)
	assert.False(t, visible)
	assert.Equal(t, errs.Driver, errs.CodeOf(err))
}

func TestSeleniumGateway_WaitForURL(t *testing.T) {
	wd := newFakeWebDriver()
	wd.url = "https://opensource-demo.orangehrmlive.com/web/index.php/dashboard/index"
	gw := newTestGateway(wd)

	assert.NoError(t, gw.WaitForURL(context.Background(), "dashboard"))

	err := gw.WaitForURL(context.Background(), "viewSystemUsers")
	assert.True(t, errs.IsTimeout(err), "got %v", err)
}

func TestSeleniumGateway_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	wd := newFakeWebDriver()
	wd.add(entities.Name("username"), &fakeElement{})

	err := newTestGateway(wd).Type(ctx, entities.Name("username"), "Admin")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestSeleniumGateway_Navigate(t *testing.T) {
	wd := newFakeWebDriver()
	gw := newTestGateway(wd)
	ctx := context.Background()

	require.NoError(t, gw.Navigate(ctx, "https://opensource-demo.orangehrmlive.com/"))
	current, err := gw.CurrentURL(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://opensource-demo.orangehrmlive.com/", current)

	wd.getErr = &selenium.Error{Err: "timeout", Message: "timeout: Timed out receiving message from renderer"}
	err = gw.Navigate(ctx, "https://opensource-demo.orangehrmlive.com/")
	assert.True(t, errs.IsTimeout(err), "got %v", err)
}

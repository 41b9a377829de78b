package harness

import (
	"context"

	"github.com/zainbasra/orangehrm-automation-framework/domain/entities"
	"github.com/zainbasra/orangehrm-automation-framework/domain/errs"
	"github.com/zainbasra/orangehrm-automation-framework/domain/interfaces"
)

// guardedGateway forwards to the session gateway while the session is active
type guardedGateway struct {
	session *Session
}

var _ interfaces.Gateway = guardedGateway{}

func (g guardedGateway) live(op string) (interfaces.Gateway, error) {
	gw, err := g.session.active()
	if err != nil {
		return nil, errs.Wrap(errs.Driver, op, "", err)
	}
	return gw, nil
}

func (g guardedGateway) FindElement(ctx context.Context, loc entities.Locator) (interfaces.ElementHandle, error) {
	gw, err := g.live("find")
	if err != nil {
		return nil, err
	}
	return gw.FindElement(ctx, loc)
}

func (g guardedGateway) Click(ctx context.Context, loc entities.Locator) error {
	gw, err := g.live("click")
	if err != nil {
		return err
	}
	return gw.Click(ctx, loc)
}

func (g guardedGateway) Type(ctx context.Context, loc entities.Locator, text string) error {
	gw, err := g.live("type")
	if err != nil {
		return err
	}
	return gw.Type(ctx, loc, text)
}

func (g guardedGateway) GetText(ctx context.Context, loc entities.Locator) (string, error) {
	gw, err := g.live("get text")
	if err != nil {
		return "", err
	}
	return gw.GetText(ctx, loc)
}

func (g guardedGateway) IsDisplayed(ctx context.Context, loc entities.Locator) (bool, error) {
	gw, err := g.live("is displayed")
	if err != nil {
		return false, err
	}
	return gw.IsDisplayed(ctx, loc)
}

func (g guardedGateway) WaitForURL(ctx context.Context, fragment string) error {
	gw, err := g.live("wait for url")
	if err != nil {
		return err
	}
	return gw.WaitForURL(ctx, fragment)
}

func (g guardedGateway) Navigate(ctx context.Context, url string) error {
	gw, err := g.live("navigate")
	if err != nil {
		return err
	}
	return gw.Navigate(ctx, url)
}

func (g guardedGateway) CurrentURL(ctx context.Context) (string, error) {
	gw, err := g.live("current url")
	if err != nil {
		return "", err
	}
	return gw.CurrentURL(ctx)
}

func (g guardedGateway) Title(ctx context.Context) (string, error) {
	gw, err := g.live("title")
	if err != nil {
		return "", err
	}
	return gw.Title(ctx)
}

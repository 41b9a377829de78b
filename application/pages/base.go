// Package pages holds the page objects of the application under test. A page
// object declares the locators of one screen and exposes its actions and
// queries. It holds nothing but a gateway and a logger.
package pages

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/zainbasra/orangehrm-automation-framework/domain/interfaces"
)

// BasePage carries what every page object shares
type BasePage struct {
	gateway interfaces.Gateway
	logger  logrus.FieldLogger
}

func newBasePage(gateway interfaces.Gateway, logger logrus.FieldLogger, page string) BasePage {
	return BasePage{
		gateway: gateway,
		logger:  logger.WithField("page", page),
	}
}

// PageURL - returns the URL of the current page
func (p BasePage) PageURL(ctx context.Context) (string, error) {
	return p.gateway.CurrentURL(ctx)
}

// PageTitle - returns the title of the current page
func (p BasePage) PageTitle(ctx context.Context) (string, error) {
	return p.gateway.Title(ctx)
}

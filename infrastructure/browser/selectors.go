package browser

import (
	"fmt"
	"strings"

	"github.com/tebeka/selenium"

	"github.com/zainbasra/orangehrm-automation-framework/domain/entities"
)

// seleniumBy - maps a locator to a WebDriver strategy and value
func seleniumBy(loc entities.Locator) (string, string, error) {
	if !loc.Valid() {
		return "", "", fmt.Errorf("invalid locator %q", loc.String())
	}

	switch loc.Strategy {
	case entities.ByID:
		return selenium.ByID, loc.Selector, nil
	case entities.ByName:
		return selenium.ByName, loc.Selector, nil
	case entities.ByCSS:
		return selenium.ByCSSSelector, loc.Selector, nil
	case entities.ByLinkText:
		return selenium.ByLinkText, loc.Selector, nil
	case entities.ByPartialLinkText:
		return selenium.ByPartialLinkText, loc.Selector, nil
	default:
		return selenium.ByXPATH, loc.Selector, nil
	}
}

// playwrightSelector - maps a locator to a Playwright selector string
func playwrightSelector(loc entities.Locator) (string, error) {
	if !loc.Valid() {
		return "", fmt.Errorf("invalid locator %q", loc.String())
	}

	switch loc.Strategy {
	case entities.ByID:
		return fmt.Sprintf("[id=%s]", cssString(loc.Selector)), nil
	case entities.ByName:
		return fmt.Sprintf("[name=%s]", cssString(loc.Selector)), nil
	case entities.ByCSS:
		return "css=" + loc.Selector, nil
	case entities.ByLinkText:
		return fmt.Sprintf("xpath=//a[normalize-space(.)=%s]", xpathLiteral(loc.Selector)), nil
	case entities.ByPartialLinkText:
		return fmt.Sprintf("xpath=//a[contains(normalize-space(.), %s)]", xpathLiteral(loc.Selector)), nil
	default:
		return "xpath=" + loc.Selector, nil
	}
}

// cssString - quotes s as a CSS string
func cssString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

// xpathLiteral - quotes s as an XPath 1.0 string literal. XPath has no escape
// sequences, so text holding both quote kinds is built with concat().
func xpathLiteral(s string) string {
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}

	parts := strings.Split(s, `"`)
	quoted := make([]string, 0, len(parts)*2)
	for i, part := range parts {
		if i > 0 {
			quoted = append(quoted, `'"'`)
		}
		if part != "" {
			quoted = append(quoted, `"`+part+`"`)
		}
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}

package entities

import "fmt"

// Strategy represents how a locator finds an element on the page
type Strategy string

const (
	ByID              Strategy = "id"
	ByName            Strategy = "name"
	ByCSS             Strategy = "css selector"
	ByLinkText        Strategy = "link text"
	ByPartialLinkText Strategy = "partial link text"
	ByXPath           Strategy = "xpath"
)

// Locator identifies one element on a rendered page. Two locators are the same
// element description when both strategy and selector are equal.
type Locator struct {
	Strategy Strategy `json:"strategy" yaml:"strategy"`
	Selector string   `json:"selector" yaml:"selector"`
}

func ID(id string) Locator         { return Locator{Strategy: ByID, Selector: id} }
func Name(name string) Locator     { return Locator{Strategy: ByName, Selector: name} }
func CSS(selector string) Locator  { return Locator{Strategy: ByCSS, Selector: selector} }
func LinkText(text string) Locator { return Locator{Strategy: ByLinkText, Selector: text} }
func PartialLinkText(text string) Locator {
	return Locator{Strategy: ByPartialLinkText, Selector: text}
}
func XPath(expr string) Locator { return Locator{Strategy: ByXPath, Selector: expr} }

// String - returns the locator in "strategy=selector" form for logs and errors
func (l Locator) String() string {
	return fmt.Sprintf("%s=%s", l.Strategy, l.Selector)
}

// Valid - reports whether the strategy is known and the selector is not empty
func (l Locator) Valid() bool {
	switch l.Strategy {
	case ByID, ByName, ByCSS, ByLinkText, ByPartialLinkText, ByXPath:
		return l.Selector != ""
	}
	return false
}

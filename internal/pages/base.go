// Package pages holds page objects for the demo site. Each page object
// wraps a playwright page and exposes page-specific actions and queries.
package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/internetqa/internetqa/internal/browser"
	"github.com/internetqa/internetqa/internal/config"
)

var expect = playwright.NewPlaywrightAssertions()

// BasePage carries the helpers shared by every page object
type BasePage struct {
	Page    *browser.Page
	Site    config.SiteConfig
	URLPath string
	logger  *zap.Logger
}

func newBasePage(page *browser.Page, site config.SiteConfig, path string, logger *zap.Logger) BasePage {
	if logger == nil {
		logger = zap.NewNop()
	}
	return BasePage{Page: page, Site: site, URLPath: path, logger: logger}
}

// NewBasePage creates a page object for path with only the shared helpers
func NewBasePage(page *browser.Page, site config.SiteConfig, path string, logger *zap.Logger) *BasePage {
	p := newBasePage(page, site, path, logger)
	return &p
}

// Navigate opens the page object's own path
func (p *BasePage) Navigate() error {
	return p.NavigateTo(p.URLPath)
}

// NavigateTo opens path relative to the site's base URL
func (p *BasePage) NavigateTo(path string) error {
	url := p.Site.URL(path)
	p.logger.Debug("Navigating.", zap.String("url", url))
	if _, err := p.Page.Goto(url); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

// Title returns the document title
func (p *BasePage) Title() (string, error) {
	return p.Page.Title()
}

// URL returns the current page URL
func (p *BasePage) URL() string {
	return p.Page.URL()
}

// WaitForElement waits until selector is attached and visible
func (p *BasePage) WaitForElement(selector string) (playwright.Locator, error) {
	locator := p.Page.Locator(selector).First()
	if err := locator.WaitFor(playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateVisible,
	}); err != nil {
		return nil, fmt.Errorf("element %s did not appear: %w", selector, err)
	}
	return locator, nil
}

// Click clicks the first element matching selector
func (p *BasePage) Click(selector string) error {
	if err := p.Page.Locator(selector).First().Click(); err != nil {
		return fmt.Errorf("failed to click %s: %w", selector, err)
	}
	return nil
}

// Fill replaces the value of an input
func (p *BasePage) Fill(selector, value string) error {
	if err := p.Page.Locator(selector).Fill(value); err != nil {
		return fmt.Errorf("failed to fill %s: %w", selector, err)
	}
	return nil
}

// Text waits for selector and returns its text content
func (p *BasePage) Text(selector string) (string, error) {
	locator, err := p.WaitForElement(selector)
	if err != nil {
		return "", err
	}
	text, err := locator.TextContent()
	if err != nil {
		return "", fmt.Errorf("failed to read text of %s: %w", selector, err)
	}
	return text, nil
}

// IsVisible reports whether selector is visible. Lookup errors count as
// not visible.
func (p *BasePage) IsVisible(selector string) bool {
	visible, err := p.Page.Locator(selector).First().IsVisible()
	if err != nil {
		p.logger.Debug("Visibility check failed.", zap.String("selector", selector), zap.Error(err))
		return false
	}
	return visible
}

// IsEnabled reports whether selector is enabled. Lookup errors count as
// disabled.
func (p *BasePage) IsEnabled(selector string) bool {
	enabled, err := p.Page.Locator(selector).First().IsEnabled()
	if err != nil {
		p.logger.Debug("Enabled check failed.", zap.String("selector", selector), zap.Error(err))
		return false
	}
	return enabled
}

// ExpectText waits until the first element matching selector has exactly
// want as its text
func (p *BasePage) ExpectText(selector, want string) error {
	if err := expect.Locator(p.Page.Locator(selector).First()).ToHaveText(want); err != nil {
		return fmt.Errorf("%s never showed %q: %w", selector, want, err)
	}
	return nil
}

// ExpectValue waits until the input or select matching selector has value want
func (p *BasePage) ExpectValue(selector, want string) error {
	if err := expect.Locator(p.Page.Locator(selector)).ToHaveValue(want); err != nil {
		return fmt.Errorf("%s never had value %q: %w", selector, want, err)
	}
	return nil
}

// WaitForURLChange waits until the URL contains part
func (p *BasePage) WaitForURLChange(part string) error {
	if err := p.Page.WaitForURL("**/*" + part + "*"); err != nil {
		return fmt.Errorf("url never contained %q: %w", part, err)
	}
	return nil
}

// Screenshot writes a screenshot of the viewport to path
func (p *BasePage) Screenshot(path string) error {
	if _, err := p.Page.Screenshot(playwright.PageScreenshotOptions{
		Path: playwright.String(path),
	}); err != nil {
		return fmt.Errorf("failed to take screenshot: %w", err)
	}
	return nil
}

// All returns a locator for every element matching selector
func (p *BasePage) All(selector string) ([]playwright.Locator, error) {
	locators, err := p.Page.Locator(selector).All()
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", selector, err)
	}
	return locators, nil
}

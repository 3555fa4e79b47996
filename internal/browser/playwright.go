// Package browser starts browsers and adapts their dialog events to
// dialog.Source.
package browser

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/internetqa/internetqa/internal/config"
	"github.com/internetqa/internetqa/internal/dialog"
)

// Session is a running playwright driver with one launched chromium
type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	cfg     config.BrowserConfig
	logger  *zap.Logger
}

// Launch starts playwright and a chromium instance configured by cfg.
// Browsers must already be installed (playwright install chromium).
func Launch(cfg config.BrowserConfig, logger *zap.Logger) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
		SlowMo:   playwright.Float(float64(cfg.SlowMo.Milliseconds())),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch chromium: %w", err)
	}

	logger.Debug("Browser launched.", zap.Bool("headless", cfg.Headless), zap.String("version", browser.Version()))
	return &Session{pw: pw, browser: browser, cfg: cfg, logger: logger}, nil
}

// Page is a playwright page living in its own browser context
type Page struct {
	playwright.Page
	Dialogs *PlaywrightSource

	context playwright.BrowserContext
}

// NewPage opens a page in a fresh, isolated browser context
func (s *Session) NewPage() (*Page, error) {
	bctx, err := s.browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  s.cfg.ViewportWidth,
			Height: s.cfg.ViewportHeight,
		},
		IgnoreHttpsErrors: playwright.Bool(s.cfg.IgnoreHTTPSErrors),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}

	page, err := bctx.NewPage()
	if err != nil {
		bctx.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	page.SetDefaultTimeout(s.cfg.TimeoutMillis())

	return &Page{
		Page:    page,
		Dialogs: NewPlaywrightSource(page, s.logger),
		context: bctx,
	}, nil
}

// ScreenshotDir is where failed scenarios leave a screenshot, empty when
// screenshots are off
func (s *Session) ScreenshotDir() string {
	return s.cfg.ScreenshotDir
}

// Close closes the page together with its browser context
func (p *Page) Close() error {
	if err := p.context.Close(); err != nil {
		return fmt.Errorf("failed to close browser context: %w", err)
	}
	return nil
}

// Close shuts down the browser and the playwright driver
func (s *Session) Close() error {
	var firstErr error
	if err := s.browser.Close(); err != nil {
		firstErr = fmt.Errorf("failed to close browser: %w", err)
	}
	if err := s.pw.Stop(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("failed to stop playwright: %w", err)
	}
	return firstErr
}

// PlaywrightSource feeds a page's dialog events into a dialog.Hub.
// It holds the page's only "dialog" listener; dialogs nobody subscribed
// to are dismissed, which is what playwright does for a page without
// listeners.
type PlaywrightSource struct {
	*dialog.Hub
	logger *zap.Logger
}

// NewPlaywrightSource attaches to page
func NewPlaywrightSource(page playwright.Page, logger *zap.Logger) *PlaywrightSource {
	s := newPlaywrightSource(logger)
	page.OnDialog(s.onDialog)
	return s
}

func newPlaywrightSource(logger *zap.Logger) *PlaywrightSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlaywrightSource{Hub: dialog.NewHub(), logger: logger}
}

func (s *PlaywrightSource) onDialog(d playwright.Dialog) {
	if s.Publish(d) {
		return
	}
	s.logger.Debug("Dismissing unobserved dialog.", zap.String("type", d.Type()), zap.String("message", d.Message()))
	go func() {
		if err := d.Dismiss(); err != nil {
			s.logger.Debug("Failed to dismiss unobserved dialog.", zap.Error(err))
		}
	}()
}

package scenario

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/internetqa/internetqa/internal/browser"
	"github.com/internetqa/internetqa/internal/config"
	"github.com/internetqa/internetqa/internal/dialog"
	"github.com/internetqa/internetqa/internal/handlers"
	"github.com/internetqa/internetqa/internal/pages"
)

// Playwright builds the full smoke list. Every scenario runs in its own
// browser context of session.
func Playwright(session *browser.Session, site config.SiteConfig, logger *zap.Logger) []Scenario {
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &playwrightBuilder{session: session, site: site, logger: logger}

	scenarios := []Scenario{
		b.scenario("login/valid", b.loginValid),
		b.scenario("login/invalid-username", b.loginRejected("invaliduser", site.Password, handlers.MsgInvalidUsername)),
		b.scenario("login/invalid-password", b.loginRejected(site.Username, "wrongpassword", handlers.MsgInvalidPassword)),
		b.scenario("alerts/buttons", b.withAlerts(alertsButtons)),
	}
	for _, dc := range dialogMatrix {
		dc := dc
		scenarios = append(scenarios, b.scenario(dc.name(), b.withAlerts(func(ctx context.Context, p *pages.AlertsPage) error {
			return resolveAndCheck(ctx, p.Dialogs, dc, p.WaitForResult)
		})))
	}
	scenarios = append(scenarios,
		b.scenario("alerts/prompt-unicode", b.withAlerts(func(ctx context.Context, p *pages.AlertsPage) error {
			return resolveAndCheck(ctx, p.Dialogs, dialogCase{kind: dialog.KindPrompt, action: dialog.ActionAccept, text: "héllo 🎉 ✓"}, p.WaitForResult)
		})),
		b.scenario("alerts/fallback", b.withAlerts(alertsFallback)),
		b.scenario("alerts/sequence", b.withAlerts(alertsSequence)),
		b.scenario("elements/add-remove", b.addRemove),
		b.scenario("elements/checkboxes", b.checkboxes),
		b.scenario("elements/dropdown", b.dropdown),
		b.scenario("upload", b.upload),
	)
	return scenarios
}

type playwrightBuilder struct {
	session *browser.Session
	site    config.SiteConfig
	logger  *zap.Logger
}

// scenario runs fn on a fresh page and screenshots the page when fn fails
func (b *playwrightBuilder) scenario(name string, fn func(ctx context.Context, page *browser.Page) error) Scenario {
	return Scenario{Name: name, Run: func(ctx context.Context) error {
		page, err := b.session.NewPage()
		if err != nil {
			return err
		}
		defer func() {
			if err := page.Close(); err != nil {
				b.logger.Warn("Failed to close page.", zap.Error(err))
			}
		}()

		err = fn(ctx, page)
		if err != nil {
			b.screenshot(name, page)
		}
		return err
	}}
}

func (b *playwrightBuilder) screenshot(name string, page *browser.Page) {
	dir := b.session.ScreenshotDir()
	if dir == "" {
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		b.logger.Warn("Failed to create screenshot dir.", zap.String("dir", dir), zap.Error(err))
		return
	}
	path := filepath.Join(dir, ScreenshotName(name))
	if err := pages.NewBasePage(page, b.site, "", b.logger).Screenshot(path); err != nil {
		b.logger.Warn("Failed to capture failure screenshot.", zap.String("scenario", name), zap.Error(err))
		return
	}
	b.logger.Info("Saved failure screenshot.", zap.String("scenario", name), zap.String("path", path))
}

func (b *playwrightBuilder) withAlerts(fn func(ctx context.Context, p *pages.AlertsPage) error) func(context.Context, *browser.Page) error {
	return func(ctx context.Context, page *browser.Page) error {
		alerts, err := pages.NewAlertsPage(page, b.site, b.logger)
		if err != nil {
			return err
		}
		if err := alerts.Navigate(); err != nil {
			return err
		}
		return fn(ctx, alerts)
	}
}

func (b *playwrightBuilder) loginValid(ctx context.Context, page *browser.Page) error {
	login := pages.NewLoginPage(page, b.site, b.logger)
	if err := login.Navigate(); err != nil {
		return err
	}
	if err := login.LoginWithValidCredentials(); err != nil {
		return err
	}
	if err := login.WaitForURLChange("secure"); err != nil {
		return err
	}
	if err := expectFlash(login, handlers.MsgLoggedIn); err != nil {
		return err
	}
	if !login.IsLogoutButtonDisplayed() {
		return fmt.Errorf("logout button not displayed")
	}
	if err := login.Logout(); err != nil {
		return err
	}
	if err := login.WaitForURLChange("login"); err != nil {
		return err
	}
	return expectFlash(login, handlers.MsgLoggedOut)
}

func (b *playwrightBuilder) loginRejected(username, password, message string) func(context.Context, *browser.Page) error {
	return func(ctx context.Context, page *browser.Page) error {
		login := pages.NewLoginPage(page, b.site, b.logger)
		if err := login.Navigate(); err != nil {
			return err
		}
		if err := login.Login(username, password); err != nil {
			return err
		}
		if err := expectFlash(login, message); err != nil {
			return err
		}
		if !login.IsErrorMessageDisplayed() {
			return fmt.Errorf("flash is not styled as an error")
		}
		return nil
	}
}

func expectFlash(login *pages.LoginPage, want string) error {
	got, err := login.FlashMessage()
	if err != nil {
		return err
	}
	if !strings.Contains(got, want) {
		return fmt.Errorf("expected flash %q, got %q", want, strings.TrimSpace(got))
	}
	return nil
}

func alertsButtons(ctx context.Context, p *pages.AlertsPage) error {
	if !p.ButtonsDisplayed() {
		return fmt.Errorf("dialog buttons not displayed")
	}
	if err := p.Dialogs.SetupHandler(dialog.ActionAccept, ""); err != nil {
		return err
	}
	defer p.Dialogs.RemoveHandlers()
	if err := p.Dialogs.Trigger(dialog.KindAlert); err != nil {
		return err
	}
	if _, err := p.Dialogs.AwaitResolution(ctx); err != nil {
		return err
	}
	if err := p.WaitForResult(ExpectedResult(dialog.KindAlert, dialog.ActionAccept, "")); err != nil {
		return err
	}
	if !p.IsResultDisplayed() {
		return fmt.Errorf("result not displayed")
	}
	return nil
}

// alertsFallback raises a confirm with nothing registered
func alertsFallback(ctx context.Context, p *pages.AlertsPage) error {
	if err := p.TriggerConfirm(); err != nil {
		return err
	}
	if _, err := p.Dialogs.AwaitResolution(ctx); err != nil {
		return err
	}
	return p.WaitForResult(ExpectedResult(dialog.KindConfirm, dialog.ActionAccept, ""))
}

func alertsSequence(ctx context.Context, p *pages.AlertsPage) error {
	steps := []dialogCase{
		{kind: dialog.KindAlert, action: dialog.ActionAccept},
		{kind: dialog.KindConfirm, action: dialog.ActionDismiss},
		{kind: dialog.KindPrompt, action: dialog.ActionAccept, text: "third"},
	}
	for _, step := range steps {
		if err := resolveAndCheck(ctx, p.Dialogs, step, p.WaitForResult); err != nil {
			return fmt.Errorf("%s: %w", step.name(), err)
		}
		if n := p.Dialogs.Registered(); n != 0 {
			return fmt.Errorf("%d handlers left after %s", n, step.name())
		}
	}
	return nil
}

func (b *playwrightBuilder) addRemove(ctx context.Context, page *browser.Page) error {
	p := pages.NewAddRemoveElementsPage(page, b.site, b.logger)
	if err := p.Navigate(); err != nil {
		return err
	}
	if err := p.AddElements(3); err != nil {
		return err
	}
	if err := expectCount(p.DeleteButtonCount, 3); err != nil {
		return err
	}
	if err := p.RemoveElement(0); err != nil {
		return err
	}
	if err := expectCount(p.DeleteButtonCount, 2); err != nil {
		return err
	}
	if err := p.RemoveAllElements(); err != nil {
		return err
	}
	return expectCount(p.DeleteButtonCount, 0)
}

func (b *playwrightBuilder) checkboxes(ctx context.Context, page *browser.Page) error {
	p := pages.NewCheckboxPage(page, b.site, b.logger)
	if err := p.Navigate(); err != nil {
		return err
	}
	if err := expectCount(p.CheckboxCount, 2); err != nil {
		return err
	}
	if err := expectChecked(p, 0, false); err != nil {
		return err
	}
	if err := expectChecked(p, 1, true); err != nil {
		return err
	}
	if err := p.Check(0); err != nil {
		return err
	}
	if err := p.Uncheck(1); err != nil {
		return err
	}
	if err := expectChecked(p, 0, true); err != nil {
		return err
	}
	return expectChecked(p, 1, false)
}

func expectChecked(p *pages.CheckboxPage, index int, want bool) error {
	got, err := p.IsChecked(index)
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("checkbox %d: expected checked=%v, got %v", index, want, got)
	}
	return nil
}

func (b *playwrightBuilder) dropdown(ctx context.Context, page *browser.Page) error {
	p := pages.NewDropdownPage(page, b.site, b.logger)
	if err := p.Navigate(); err != nil {
		return err
	}

	options, err := p.OptionTexts()
	if err != nil {
		return err
	}
	if len(options) != 3 {
		return fmt.Errorf("expected 3 options, got %d", len(options))
	}

	if err := p.SelectByValue("1"); err != nil {
		return err
	}
	if err := p.ExpectSelected("Option 1"); err != nil {
		return err
	}
	if err := p.SelectByText("Option 2"); err != nil {
		return err
	}
	if err := p.ExpectValue("2"); err != nil {
		return err
	}
	if err := p.SelectByIndex(1); err != nil {
		return err
	}
	return p.ExpectSelected("Option 1")
}

func (b *playwrightBuilder) upload(ctx context.Context, page *browser.Page) error {
	dir, err := os.MkdirTemp("", "internetqa-upload-")
	if err != nil {
		return fmt.Errorf("failed to create upload dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path, err := pages.CreateTestFile(dir, "", "Test file content for upload")
	if err != nil {
		return err
	}
	defer pages.CleanupTestFile(path)

	p := pages.NewFileUploadPage(page, b.site, b.logger)
	if err := p.Navigate(); err != nil {
		return err
	}
	if !p.IsFormDisplayed() {
		return fmt.Errorf("upload form not displayed")
	}
	if err := p.UploadFile(path); err != nil {
		return err
	}
	if err := p.ExpectUploaded(); err != nil {
		return err
	}

	uploaded, err := p.UploadedFilesText()
	if err != nil {
		return err
	}
	if !strings.Contains(uploaded, filepath.Base(path)) {
		return fmt.Errorf("expected %s in uploaded files, got %q", filepath.Base(path), strings.TrimSpace(uploaded))
	}
	return nil
}

func expectCount(count func() (int, error), want int) error {
	got, err := count()
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("expected %d, got %d", want, got)
	}
	return nil
}

package pages

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/internetqa/internetqa/internal/browser"
	"github.com/internetqa/internetqa/internal/config"
	"github.com/internetqa/internetqa/internal/dialog"
)

// JavaScript alerts page locators
const (
	AlertButton   = "button[onclick='jsAlert()']"
	ConfirmButton = "button[onclick='jsConfirm()']"
	PromptButton  = "button[onclick='jsPrompt()']"
	ResultText    = "#result"
)

// AlertsPage is the JavaScript alerts page. Dialog handling goes through
// its Coordinator, which only ever removes listeners it registered itself.
type AlertsPage struct {
	BasePage
	Dialogs *dialog.Coordinator
}

// NewAlertsPage creates an alerts page object bound to page's dialog feed
func NewAlertsPage(page *browser.Page, site config.SiteConfig, logger *zap.Logger) (*AlertsPage, error) {
	p := &AlertsPage{BasePage: newBasePage(page, site, "javascript_alerts", logger)}

	coordinator, err := dialog.NewCoordinator(dialog.Config{
		Source:  page.Dialogs,
		Trigger: p.clickTrigger,
		Result:  p.ResultText,
		Logger:  p.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create dialog coordinator: %w", err)
	}
	p.Dialogs = coordinator
	return p, nil
}

func (p *AlertsPage) clickTrigger(kind dialog.Kind) error {
	switch kind {
	case dialog.KindAlert:
		return p.Click(AlertButton)
	case dialog.KindConfirm:
		return p.Click(ConfirmButton)
	case dialog.KindPrompt:
		return p.Click(PromptButton)
	default:
		return fmt.Errorf("no button raises a %s dialog", kind)
	}
}

// SetupDialogHandler resolves every following dialog with action
func (p *AlertsPage) SetupDialogHandler(action dialog.Action, text string) error {
	return p.Dialogs.SetupHandler(action, text)
}

// RemoveDialogHandlers drops the handlers registered through this page
func (p *AlertsPage) RemoveDialogHandlers() {
	p.Dialogs.RemoveHandlers()
}

// TriggerAlert clicks the alert button with the fallback armed
func (p *AlertsPage) TriggerAlert() error {
	return p.Dialogs.Trigger(dialog.KindAlert)
}

// TriggerConfirm clicks the confirm button with the fallback armed
func (p *AlertsPage) TriggerConfirm() error {
	return p.Dialogs.Trigger(dialog.KindConfirm)
}

// TriggerPrompt clicks the prompt button with the fallback armed
func (p *AlertsPage) TriggerPrompt() error {
	return p.Dialogs.Trigger(dialog.KindPrompt)
}

// ResultText returns the text written by the last resolved dialog
func (p *AlertsPage) ResultText() (string, error) {
	return p.Text(ResultText)
}

// WaitForResult waits until the result paragraph reads want. The page
// writes it after the dialog closed, so a read right after resolution can
// still see the previous text.
func (p *AlertsPage) WaitForResult(want string) error {
	return p.ExpectText(ResultText, want)
}

// IsResultDisplayed reports whether the result paragraph is visible
func (p *AlertsPage) IsResultDisplayed() bool {
	return p.IsVisible(ResultText)
}

// ButtonsDisplayed reports whether every dialog trigger button is visible
func (p *AlertsPage) ButtonsDisplayed() bool {
	for _, button := range []string{AlertButton, ConfirmButton, PromptButton} {
		if !p.IsVisible(button) {
			return false
		}
	}
	return true
}

// AcceptAlert raises an alert, accepts it and returns the result text
func (p *AlertsPage) AcceptAlert(ctx context.Context) (string, error) {
	return p.handle(ctx, dialog.KindAlert, dialog.ActionAccept, "")
}

// AcceptConfirm raises a confirm, accepts it and returns the result text
func (p *AlertsPage) AcceptConfirm(ctx context.Context) (string, error) {
	return p.handle(ctx, dialog.KindConfirm, dialog.ActionAccept, "")
}

// DismissConfirm raises a confirm, dismisses it and returns the result text
func (p *AlertsPage) DismissConfirm(ctx context.Context) (string, error) {
	return p.handle(ctx, dialog.KindConfirm, dialog.ActionDismiss, "")
}

// AnswerPrompt raises a prompt, enters text and returns the result text
func (p *AlertsPage) AnswerPrompt(ctx context.Context, text string) (string, error) {
	return p.handle(ctx, dialog.KindPrompt, dialog.ActionAccept, text)
}

// DismissPrompt raises a prompt, dismisses it and returns the result text
func (p *AlertsPage) DismissPrompt(ctx context.Context) (string, error) {
	return p.handle(ctx, dialog.KindPrompt, dialog.ActionDismiss, "")
}

func (p *AlertsPage) handle(ctx context.Context, kind dialog.Kind, action dialog.Action, text string) (string, error) {
	if err := p.Dialogs.SetupHandler(action, text); err != nil {
		return "", err
	}
	defer p.Dialogs.RemoveHandlers()

	if err := p.Dialogs.Trigger(kind); err != nil {
		return "", err
	}
	if _, err := p.Dialogs.AwaitResolution(ctx); err != nil {
		return "", err
	}
	return p.Dialogs.ReadResult()
}

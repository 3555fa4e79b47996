package scenario

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/internetqa/internetqa/internal/browser"
	"github.com/internetqa/internetqa/internal/config"
	"github.com/internetqa/internetqa/internal/dialog"
	"github.com/internetqa/internetqa/internal/pages"
)

var dialogButtons = map[dialog.Kind]string{
	dialog.KindAlert:   pages.AlertButton,
	dialog.KindConfirm: pages.ConfirmButton,
	dialog.KindPrompt:  pages.PromptButton,
}

// resultTimeout bounds how long a chromedp scenario waits for the result
// paragraph after a dialog was resolved
const resultTimeout = 5 * time.Second

// textEquals is true once the first element matching sel has text want
const textEquals = `(sel, want) => {
	const el = document.querySelector(sel);
	return el !== null && el.textContent === want;
}`

// Chromedp builds the dialog matrix over the chrome instance behind
// browserCtx. Each scenario opens its own tab.
func Chromedp(browserCtx context.Context, site config.SiteConfig, logger *zap.Logger) []Scenario {
	if logger == nil {
		logger = zap.NewNop()
	}

	scenarios := make([]Scenario, 0, len(dialogMatrix)+1)
	for _, dc := range dialogMatrix {
		dc := dc
		scenarios = append(scenarios, Scenario{
			Name: "chromedp/" + dc.name(),
			Run: func(ctx context.Context) error {
				return withChromedpAlerts(browserCtx, site, logger, func(tab *chromedpAlerts) error {
					return resolveAndCheck(ctx, tab.dialogs, dc, tab.waitForResult)
				})
			},
		})
	}
	scenarios = append(scenarios, Scenario{
		Name: "chromedp/alerts/fallback",
		Run: func(ctx context.Context) error {
			return withChromedpAlerts(browserCtx, site, logger, func(tab *chromedpAlerts) error {
				if err := tab.dialogs.Trigger(dialog.KindAlert); err != nil {
					return err
				}
				if _, err := tab.dialogs.AwaitResolution(ctx); err != nil {
					return err
				}
				return tab.waitForResult(ExpectedResult(dialog.KindAlert, dialog.ActionAccept, ""))
			})
		},
	})
	return scenarios
}

// chromedpAlerts is the alerts page open in one chromedp tab
type chromedpAlerts struct {
	ctx     context.Context
	dialogs *dialog.Coordinator
}

// waitForText returns an action that waits until the first element
// matching selector has exactly want as its text content
func waitForText(selector, want string, timeout time.Duration) chromedp.Action {
	return chromedp.PollFunction(textEquals, nil,
		chromedp.WithPollingArgs(selector, want),
		chromedp.WithPollingInterval(100*time.Millisecond),
		chromedp.WithPollingTimeout(timeout))
}

func (a *chromedpAlerts) waitForResult(want string) error {
	if err := chromedp.Run(a.ctx, waitForText(pages.ResultText, want, resultTimeout)); err != nil {
		var got string
		if readErr := chromedp.Run(a.ctx, chromedp.Text(pages.ResultText, &got, chromedp.ByQuery)); readErr == nil {
			return fmt.Errorf("expected %q, got %q: %w", want, got, err)
		}
		return fmt.Errorf("expected %q: %w", want, err)
	}
	return nil
}

func withChromedpAlerts(browserCtx context.Context, site config.SiteConfig, logger *zap.Logger, fn func(tab *chromedpAlerts) error) error {
	tabCtx, cancel := chromedp.NewContext(browserCtx)
	defer cancel()

	source := browser.NewChromedpSource(tabCtx, logger)
	if err := chromedp.Run(tabCtx, chromedp.Navigate(site.URL("javascript_alerts"))); err != nil {
		return fmt.Errorf("failed to open alerts page: %w", err)
	}

	coordinator, err := dialog.NewCoordinator(dialog.Config{
		Source: source,
		Trigger: func(kind dialog.Kind) error {
			button, ok := dialogButtons[kind]
			if !ok {
				return fmt.Errorf("no button raises a %s dialog", kind)
			}
			return chromedp.Run(tabCtx, chromedp.Click(button, chromedp.ByQuery))
		},
		Result: func() (string, error) {
			var text string
			err := chromedp.Run(tabCtx, chromedp.Text(pages.ResultText, &text, chromedp.ByQuery))
			return text, err
		},
		Logger: logger,
	})
	if err != nil {
		return err
	}
	return fn(&chromedpAlerts{ctx: tabCtx, dialogs: coordinator})
}

package browser

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/internetqa/internetqa/internal/config"
	"github.com/internetqa/internetqa/internal/dialog"
)

// NewChromedpContext starts a chrome instance configured by cfg and
// returns a tab context. Cancelling it shuts the browser down.
func NewChromedpContext(parent context.Context, cfg config.BrowserConfig) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("ignore-certificate-errors", cfg.IgnoreHTTPSErrors),
		chromedp.WindowSize(cfg.ViewportWidth, cfg.ViewportHeight),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, opts...)
	ctx, cancelCtx := chromedp.NewContext(allocCtx)
	return ctx, func() {
		cancelCtx()
		cancelAlloc()
	}
}

// dialogAnswer is a Page.handleJavaScriptDialog call. Unlike
// page.HandleJavaScriptDialogParams it keeps an empty prompt text on the
// wire; chrome submits the prompt's default when the field is missing.
type dialogAnswer struct {
	Accept     bool    `json:"accept"`
	PromptText *string `json:"promptText,omitzero"`
}

func newDialogAnswer(accept bool, promptText ...string) *dialogAnswer {
	a := &dialogAnswer{Accept: accept}
	if accept && len(promptText) > 0 {
		text := promptText[0]
		a.PromptText = &text
	}
	return a
}

// Do sends the answer to the target behind ctx
func (a *dialogAnswer) Do(ctx context.Context) error {
	return cdp.Execute(ctx, page.CommandHandleJavaScriptDialog, a, nil)
}

// handleFunc answers the dialog currently open in the target
type handleFunc func(answer *dialogAnswer) error

// ChromedpSource feeds Page.javascriptDialogOpening events of a chromedp
// target into a dialog.Hub
type ChromedpSource struct {
	*dialog.Hub
	handle handleFunc
	logger *zap.Logger
}

// NewChromedpSource listens on the target behind ctx. The listener lives
// as long as ctx.
func NewChromedpSource(ctx context.Context, logger *zap.Logger) *ChromedpSource {
	s := newChromedpSource(func(answer *dialogAnswer) error {
		return chromedp.Run(ctx, answer)
	}, logger)
	chromedp.ListenTarget(ctx, s.onEvent)
	return s
}

func newChromedpSource(handle handleFunc, logger *zap.Logger) *ChromedpSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChromedpSource{Hub: dialog.NewHub(), handle: handle, logger: logger}
}

func (s *ChromedpSource) onEvent(ev interface{}) {
	opening, ok := ev.(*page.EventJavascriptDialogOpening)
	if !ok {
		return
	}

	d := &cdpDialog{event: opening, handle: s.handle}
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

// cdpDialog adapts a dialog-opening event to dialog.Dialog
type cdpDialog struct {
	event  *page.EventJavascriptDialogOpening
	handle handleFunc
}

func (d *cdpDialog) Type() string         { return string(d.event.Type) }
func (d *cdpDialog) Message() string      { return d.event.Message }
func (d *cdpDialog) DefaultValue() string { return d.event.DefaultPrompt }

func (d *cdpDialog) Accept(promptText ...string) error {
	if err := d.handle(newDialogAnswer(true, promptText...)); err != nil {
		return fmt.Errorf("failed to accept %s dialog: %w", d.Type(), err)
	}
	return nil
}

func (d *cdpDialog) Dismiss() error {
	if err := d.handle(newDialogAnswer(false)); err != nil {
		return fmt.Errorf("failed to dismiss %s dialog: %w", d.Type(), err)
	}
	return nil
}

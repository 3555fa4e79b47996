// Package scenario bundles named smoke checks over the page objects so
// they can run outside `go test`.
package scenario

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/internetqa/internetqa/internal/dialog"
)

// Scenario is one named check
type Scenario struct {
	Name string
	Run  func(ctx context.Context) error
}

// Result is the outcome of one scenario
type Result struct {
	Name     string
	Err      error
	Duration time.Duration
}

// Passed reports whether the scenario succeeded
func (r Result) Passed() bool {
	return r.Err == nil
}

// RunAll runs scenarios in order. A failing scenario does not stop the
// rest; a cancelled ctx marks every remaining scenario as failed.
func RunAll(ctx context.Context, logger *zap.Logger, scenarios []Scenario) []Result {
	if logger == nil {
		logger = zap.NewNop()
	}

	results := make([]Result, 0, len(scenarios))
	for _, s := range scenarios {
		if err := ctx.Err(); err != nil {
			results = append(results, Result{Name: s.Name, Err: fmt.Errorf("not run: %w", err)})
			continue
		}

		start := time.Now()
		err := run(ctx, s)
		result := Result{Name: s.Name, Err: err, Duration: time.Since(start)}
		results = append(results, result)

		if err != nil {
			logger.Error("Scenario failed.", zap.String("scenario", s.Name), zap.Duration("duration", result.Duration), zap.Error(err))
		} else {
			logger.Info("Scenario passed.", zap.String("scenario", s.Name), zap.Duration("duration", result.Duration))
		}
	}
	return results
}

func run(ctx context.Context, s Scenario) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return s.Run(ctx)
}

// ScreenshotName turns a scenario name into a png file name
func ScreenshotName(name string) string {
	return strings.NewReplacer("/", "_", " ", "_").Replace(name) + ".png"
}

// Failed counts failed results
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.Passed() {
			n++
		}
	}
	return n
}

// ExpectedResult is the text the alerts page shows after kind was
// resolved with action and, for prompts, text.
func ExpectedResult(kind dialog.Kind, action dialog.Action, text string) string {
	switch kind {
	case dialog.KindAlert:
		return "You successfully clicked an alert"
	case dialog.KindConfirm:
		if action == dialog.ActionAccept {
			return "You clicked: Ok"
		}
		return "You clicked: Cancel"
	case dialog.KindPrompt:
		if action == dialog.ActionAccept {
			return "You entered: " + text
		}
		return "You entered: null"
	default:
		return ""
	}
}

// dialogCase is one cell of the kind x action matrix
type dialogCase struct {
	kind   dialog.Kind
	action dialog.Action
	text   string
}

func (c dialogCase) name() string {
	return fmt.Sprintf("alerts/%s/%s", c.kind, c.action)
}

var dialogMatrix = []dialogCase{
	{kind: dialog.KindAlert, action: dialog.ActionAccept},
	{kind: dialog.KindConfirm, action: dialog.ActionAccept},
	{kind: dialog.KindConfirm, action: dialog.ActionDismiss},
	{kind: dialog.KindPrompt, action: dialog.ActionAccept, text: "Hello from Go"},
	{kind: dialog.KindPrompt, action: dialog.ActionDismiss},
}

// resolveAndCheck drives one dialog through c and waits for the page to
// show the matching result
func resolveAndCheck(ctx context.Context, c *dialog.Coordinator, dc dialogCase, waitForResult func(want string) error) error {
	if err := c.SetupHandler(dc.action, dc.text); err != nil {
		return err
	}
	defer c.RemoveHandlers()

	if err := c.Trigger(dc.kind); err != nil {
		return err
	}
	if _, err := c.AwaitResolution(ctx); err != nil {
		return err
	}
	return waitForResult(ExpectedResult(dc.kind, dc.action, dc.text))
}

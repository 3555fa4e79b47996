package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"

	"github.com/internetqa/internetqa/internal/browser"
	"github.com/internetqa/internetqa/internal/config"
	"github.com/internetqa/internetqa/internal/scenario"
)

// SmokeOptions configures one smoke run
type SmokeOptions struct {
	Site    config.SiteConfig
	Browser config.BrowserConfig
	Logger  *zap.Logger
	Out     io.Writer
}

// RunSmoke launches the configured driver, runs its scenarios against
// the site and prints a summary. It fails when any scenario failed.
func RunSmoke(ctx context.Context, opts SmokeOptions) error {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	var results []scenario.Result
	switch opts.Browser.Driver {
	case config.DriverPlaywright:
		session, err := browser.Launch(opts.Browser, opts.Logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := session.Close(); err != nil {
				opts.Logger.Warn("Failed to close browser.", zap.Error(err))
			}
		}()
		results = scenario.RunAll(ctx, opts.Logger, scenario.Playwright(session, opts.Site, opts.Logger))
	case config.DriverChromedp:
		browserCtx, cancel := browser.NewChromedpContext(ctx, opts.Browser)
		defer cancel()
		results = scenario.RunAll(ctx, opts.Logger, scenario.Chromedp(browserCtx, opts.Site, opts.Logger))
	default:
		return fmt.Errorf("unsupported browser driver %q", opts.Browser.Driver)
	}

	if err := PrintResults(opts.Out, results); err != nil {
		return err
	}
	if failed := scenario.Failed(results); failed > 0 {
		return fmt.Errorf("%d of %d scenarios failed", failed, len(results))
	}
	return nil
}

// PrintResults writes one line per result
func PrintResults(out io.Writer, results []scenario.Result) error {
	if out == nil {
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCENARIO\tSTATUS\tDURATION\tERROR")
	for _, r := range results {
		status, msg := "PASS", ""
		if !r.Passed() {
			status, msg = "FAIL", r.Err.Error()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Name, status, r.Duration.Round(time.Millisecond), msg)
	}
	return w.Flush()
}

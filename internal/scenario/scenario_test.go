package scenario

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/internetqa/internetqa/internal/dialog"
)

func TestRunAll(t *testing.T) {
	boom := errors.New("boom")
	var ran []string

	scenarios := []Scenario{
		{Name: "first", Run: func(context.Context) error { ran = append(ran, "first"); return nil }},
		{Name: "second", Run: func(context.Context) error { ran = append(ran, "second"); return boom }},
		{Name: "third", Run: func(context.Context) error { panic("kaboom") }},
		{Name: "fourth", Run: func(context.Context) error { ran = append(ran, "fourth"); return nil }},
	}

	results := RunAll(context.Background(), zaptest.NewLogger(t), scenarios)

	if len(results) != 4 {
		t.Fatalf("Expected 4 results, got %d", len(results))
	}
	if strings.Join(ran, ",") != "first,second,fourth" {
		t.Errorf("Unexpected run order %v", ran)
	}
	if !results[0].Passed() || !results[3].Passed() {
		t.Error("Expected first and fourth to pass")
	}
	if !errors.Is(results[1].Err, boom) {
		t.Errorf("Expected boom, got %v", results[1].Err)
	}
	if results[2].Err == nil || !strings.Contains(results[2].Err.Error(), "kaboom") {
		t.Errorf("Expected recovered panic, got %v", results[2].Err)
	}
	if Failed(results) != 2 {
		t.Errorf("Expected 2 failures, got %d", Failed(results))
	}
}

func TestRunAll_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	results := RunAll(ctx, nil, []Scenario{
		{Name: "cancels", Run: func(context.Context) error { cancel(); return nil }},
		{Name: "skipped", Run: func(context.Context) error {
			t.Error("Scenario after cancellation should not run")
			return nil
		}},
	})

	if !results[0].Passed() {
		t.Errorf("Expected first scenario to pass, got %v", results[0].Err)
	}
	if !errors.Is(results[1].Err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", results[1].Err)
	}
}

func TestExpectedResult(t *testing.T) {
	tests := []struct {
		kind   dialog.Kind
		action dialog.Action
		text   string
		want   string
	}{
		{dialog.KindAlert, dialog.ActionAccept, "", "You successfully clicked an alert"},
		{dialog.KindAlert, dialog.ActionDismiss, "", "You successfully clicked an alert"},
		{dialog.KindConfirm, dialog.ActionAccept, "", "You clicked: Ok"},
		{dialog.KindConfirm, dialog.ActionDismiss, "", "You clicked: Cancel"},
		{dialog.KindPrompt, dialog.ActionAccept, "Test input", "You entered: Test input"},
		{dialog.KindPrompt, dialog.ActionAccept, "", "You entered: "},
		{dialog.KindPrompt, dialog.ActionDismiss, "ignored", "You entered: null"},
	}

	for _, tt := range tests {
		if got := ExpectedResult(tt.kind, tt.action, tt.text); got != tt.want {
			t.Errorf("ExpectedResult(%s, %s, %q) = %q, want %q", tt.kind, tt.action, tt.text, got, tt.want)
		}
	}
}

func TestScreenshotName(t *testing.T) {
	tests := map[string]string{
		"upload":                 "upload.png",
		"alerts/prompt/accept":   "alerts_prompt_accept.png",
		"chromedp/alerts/a b":    "chromedp_alerts_a_b.png",
		"login/invalid-username": "login_invalid-username.png",
	}
	for name, want := range tests {
		if got := ScreenshotName(name); got != want {
			t.Errorf("ScreenshotName(%q) = %q, want %q", name, got, want)
		}
	}
}

// stubDialog records how it was settled and writes the result like the
// alerts page does
type stubDialog struct {
	kind   dialog.Kind
	result *string
}

func (d *stubDialog) Type() string         { return string(d.kind) }
func (d *stubDialog) Message() string      { return "stub" }
func (d *stubDialog) DefaultValue() string { return "" }

func (d *stubDialog) Accept(promptText ...string) error {
	text := ""
	if len(promptText) > 0 {
		text = promptText[0]
	}
	*d.result = ExpectedResult(d.kind, dialog.ActionAccept, text)
	return nil
}

func (d *stubDialog) Dismiss() error {
	*d.result = ExpectedResult(d.kind, dialog.ActionDismiss, "")
	return nil
}

func newStubCoordinator(t *testing.T, last *string) *dialog.Coordinator {
	t.Helper()
	hub := dialog.NewHub()
	coordinator, err := dialog.NewCoordinator(dialog.Config{
		Source: hub,
		Trigger: func(kind dialog.Kind) error {
			hub.Publish(&stubDialog{kind: kind, result: last})
			return nil
		},
		Result: func() (string, error) {
			return *last, nil
		},
		Logger: zaptest.NewLogger(t),
	})
	if err != nil {
		t.Fatalf("NewCoordinator() error = %v", err)
	}
	return coordinator
}

func TestResolveAndCheck_Matrix(t *testing.T) {
	var last string
	coordinator := newStubCoordinator(t, &last)

	for _, dc := range dialogMatrix {
		t.Run(dc.name(), func(t *testing.T) {
			var waited string
			waitForResult := func(want string) error {
				waited = want
				got, err := coordinator.ReadResult()
				if err != nil {
					return err
				}
				if got != want {
					return fmt.Errorf("expected %q, got %q", want, got)
				}
				return nil
			}

			if err := resolveAndCheck(context.Background(), coordinator, dc, waitForResult); err != nil {
				t.Errorf("resolveAndCheck() error = %v", err)
			}
			if waited != ExpectedResult(dc.kind, dc.action, dc.text) {
				t.Errorf("Waited for %q, want %q", waited, ExpectedResult(dc.kind, dc.action, dc.text))
			}
			if n := coordinator.Registered(); n != 0 {
				t.Errorf("Expected no handlers left, got %d", n)
			}
		})
	}
}

func TestResolveAndCheck_WaitFailure(t *testing.T) {
	var last string
	coordinator := newStubCoordinator(t, &last)
	stale := errors.New("result never updated")

	err := resolveAndCheck(context.Background(), coordinator, dialogMatrix[0], func(string) error { return stale })
	if !errors.Is(err, stale) {
		t.Errorf("Expected wait error, got %v", err)
	}
	if n := coordinator.Registered(); n != 0 {
		t.Errorf("Expected handlers removed after failure, got %d", n)
	}
}

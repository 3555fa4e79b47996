package dialog

import (
	"errors"
	"sync"
)

var errDialogClosed = errors.New("dialog already handled")

// fakeDialog settles once like a real browser dialog and rejects later calls
type fakeDialog struct {
	kind         string
	message      string
	defaultValue string
	onSettle     func(accepted bool, text string)

	mu       sync.Mutex
	settled  bool
	calls    int
	rejected int
}

func (d *fakeDialog) Type() string         { return d.kind }
func (d *fakeDialog) Message() string      { return d.message }
func (d *fakeDialog) DefaultValue() string { return d.defaultValue }

func (d *fakeDialog) Accept(promptText ...string) error {
	text := d.defaultValue
	if len(promptText) > 0 {
		text = promptText[0]
	}
	return d.settle(true, text)
}

func (d *fakeDialog) Dismiss() error {
	return d.settle(false, "")
}

func (d *fakeDialog) settle(accepted bool, text string) error {
	d.mu.Lock()
	d.calls++
	if d.settled {
		d.rejected++
		d.mu.Unlock()
		return errDialogClosed
	}
	d.settled = true
	d.mu.Unlock()

	if d.onSettle != nil {
		d.onSettle(accepted, text)
	}
	return nil
}

func (d *fakeDialog) isSettled() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.settled
}

// fakePage mimics the JavaScript alerts page: each button raises one
// dialog and writes its outcome into the result paragraph.
type fakePage struct {
	*Hub

	mu      sync.Mutex
	result  string
	dialogs []*fakeDialog
	// triggerErr makes the next click fail
	triggerErr error
}

func newFakePage() *fakePage {
	return &fakePage{Hub: NewHub()}
}

func (p *fakePage) click(kind Kind) error {
	if p.triggerErr != nil {
		return p.triggerErr
	}

	d := &fakeDialog{kind: string(kind)}
	switch kind {
	case KindAlert:
		d.message = "I am a JS Alert"
		d.onSettle = func(bool, string) { p.setResult("You successfully clicked an alert") }
	case KindConfirm:
		d.message = "I am a JS Confirm"
		d.onSettle = func(accepted bool, _ string) {
			if accepted {
				p.setResult("You clicked: Ok")
			} else {
				p.setResult("You clicked: Cancel")
			}
		}
	case KindPrompt:
		d.message = "I am a JS prompt"
		d.onSettle = func(accepted bool, text string) {
			if accepted {
				p.setResult("You entered: " + text)
			} else {
				p.setResult("You entered: null")
			}
		}
	}

	p.mu.Lock()
	p.dialogs = append(p.dialogs, d)
	p.mu.Unlock()

	// the browser raises the dialog inside the click
	p.Publish(d)
	return nil
}

func (p *fakePage) setResult(s string) {
	p.mu.Lock()
	p.result = s
	p.mu.Unlock()
}

func (p *fakePage) readResult() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.result, nil
}

func (p *fakePage) lastDialog() *fakeDialog {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.dialogs) == 0 {
		return nil
	}
	return p.dialogs[len(p.dialogs)-1]
}

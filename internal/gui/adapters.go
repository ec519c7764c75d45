package gui

import (
	"context"
	"fmt"
	"net/url"

	"screen-shooter/internal/gui/widgets"

	"fyne.io/fyne/v2"
)

// windowToggle lets the capture trigger hide and restore the main window.
// Show arrives from the timer goroutine, so it is marshalled onto the UI loop.
type windowToggle struct {
	window fyne.Window
}

func (w windowToggle) Hide() {
	w.window.Hide()
}

func (w windowToggle) Show() {
	fyne.Do(func() {
		w.window.Show()
		w.window.RequestFocus()
	})
}

type AppBrowser struct {
	app fyne.App
}

func NewBrowser(app fyne.App) *AppBrowser {
	return &AppBrowser{app: app}
}

func (b *AppBrowser) Open(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse url %q: %w", rawURL, err)
	}
	return b.app.OpenURL(u)
}

type promptResult struct {
	code     string
	accepted bool
}

// DialogPrompter shows the auth dialog on the UI loop and blocks the calling
// upload goroutine until the user answers.
type DialogPrompter struct {
	window fyne.Window
}

func NewPrompter(window fyne.Window) *DialogPrompter {
	return &DialogPrompter{window: window}
}

func (p *DialogPrompter) Prompt(ctx context.Context, authURL string) (string, bool) {
	if ctx.Err() != nil {
		return "", false
	}

	answer := make(chan promptResult, 1)

	fyne.Do(func() {
		widgets.NewAuthPrompt(p.window, authURL, func(accepted bool, code string) {
			answer <- promptResult{code: code, accepted: accepted}
		}).Show()
	})

	select {
	case r := <-answer:
		return r.code, r.accepted
	case <-ctx.Done():
		return "", false
	}
}

package widgets

import (
	"net/url"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// AuthPrompt is the modal that collects the one-time authorization code.
type AuthPrompt struct {
	dialog *dialog.FormDialog
	entry  *widget.Entry
	done   bool
}

// NewAuthPrompt builds the dialog. callback receives (accepted, code) exactly
// once, whether the user confirms, presses Enter in the field, or dismisses.
func NewAuthPrompt(parent fyne.Window, authURL string, callback func(bool, string)) *AuthPrompt {
	p := &AuthPrompt{entry: widget.NewEntry()}
	p.entry.SetPlaceHolder("PIN")

	intro := widget.NewLabel("Open the link below, allow access, then paste the PIN here.")
	intro.Wrapping = fyne.TextWrapWord

	var link fyne.CanvasObject = widget.NewLabel(authURL)
	if u, err := url.Parse(authURL); err == nil {
		link = widget.NewHyperlink(authURL, u)
	}

	items := []*widget.FormItem{
		widget.NewFormItem("", container.NewVBox(intro, link)),
		widget.NewFormItem("Code", p.entry),
	}

	p.dialog = dialog.NewForm("Authorize Imgur", "OK", "Cancel", items, func(accepted bool) {
		if p.done {
			return
		}
		p.done = true
		callback(accepted, p.entry.Text)
	}, parent)

	p.entry.OnSubmitted = func(string) {
		p.dialog.Submit()
	}

	p.dialog.Resize(fyne.NewSize(480, 220))
	return p
}

func (p *AuthPrompt) Show() {
	p.dialog.Show()
}

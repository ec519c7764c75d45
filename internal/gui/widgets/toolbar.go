package widgets

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

type Toolbar struct {
	container     *fyne.Container
	captureButton *widget.Button
	saveButton    *widget.Button
	uploadButton  *widget.Button
	delaySlider   *widget.Slider
	delayLabel    *widget.Label
	progress      *widget.ProgressBarInfinite
	statusLabel   *widget.Label

	captureHandler func()
	saveHandler    func()
	uploadHandler  func()
	delayHandler   func(int)
}

func NewToolbar(maxDelay int) *Toolbar {
	toolbar := &Toolbar{}
	toolbar.createComponents(maxDelay)
	toolbar.buildLayout()
	return toolbar
}

func (t *Toolbar) createComponents(maxDelay int) {
	t.captureButton = widget.NewButtonWithIcon("Take screenshot", theme.MediaPhotoIcon(), t.onCaptureClicked)
	t.captureButton.Importance = widget.HighImportance

	t.saveButton = widget.NewButtonWithIcon("Save", theme.DocumentSaveIcon(), t.onSaveClicked)
	t.saveButton.Disable()

	t.uploadButton = widget.NewButtonWithIcon("Upload", theme.UploadIcon(), t.onUploadClicked)
	t.uploadButton.Disable()

	t.delayLabel = widget.NewLabel(delayText(0))
	t.delaySlider = widget.NewSlider(0, float64(maxDelay))
	t.delaySlider.Step = 1
	t.delaySlider.OnChanged = t.onDelayChanged

	t.progress = widget.NewProgressBarInfinite()
	t.progress.Stop()
	t.progress.Hide()

	t.statusLabel = widget.NewLabel("Ready")
}

func (t *Toolbar) buildLayout() {
	background := canvas.NewRectangle(color.NRGBA{R: 232, G: 238, B: 241, A: 255})
	border := canvas.NewRectangle(color.Transparent)
	border.StrokeWidth = 1.0
	border.StrokeColor = color.NRGBA{R: 0, G: 137, B: 123, A: 96}

	actions := container.NewHBox(t.captureButton, t.saveButton, t.uploadButton)
	delay := container.NewBorder(nil, nil, t.delayLabel, nil, t.delaySlider)
	status := container.NewBorder(nil, nil, nil, t.progress, t.statusLabel)

	content := container.NewVBox(
		container.NewBorder(nil, nil, actions, nil, delay),
		widget.NewSeparator(),
		status,
	)

	t.container = container.NewStack(
		border,
		container.NewPadded(
			container.NewStack(background, container.NewPadded(content)),
		),
	)
}

func (t *Toolbar) onCaptureClicked() {
	if t.captureHandler != nil {
		t.captureHandler()
	}
}

func (t *Toolbar) onSaveClicked() {
	if t.saveHandler != nil {
		t.saveHandler()
	}
}

func (t *Toolbar) onUploadClicked() {
	if t.uploadHandler != nil {
		t.uploadHandler()
	}
}

func (t *Toolbar) onDelayChanged(value float64) {
	seconds := int(value)
	t.delayLabel.SetText(delayText(seconds))
	if t.delayHandler != nil {
		t.delayHandler(seconds)
	}
}

func (t *Toolbar) GetContainer() *fyne.Container {
	return t.container
}

func (t *Toolbar) SetCaptureHandler(handler func()) {
	t.captureHandler = handler
}

func (t *Toolbar) SetSaveHandler(handler func()) {
	t.saveHandler = handler
}

func (t *Toolbar) SetUploadHandler(handler func()) {
	t.uploadHandler = handler
}

func (t *Toolbar) SetDelayChangeHandler(handler func(int)) {
	t.delayHandler = handler
}

func (t *Toolbar) Delay() int {
	return int(t.delaySlider.Value)
}

func (t *Toolbar) SetDelay(seconds int) {
	t.delaySlider.SetValue(float64(seconds))
	t.delayLabel.SetText(delayText(seconds))
}

// SetHasImage enables the actions that need a capture.
func (t *Toolbar) SetHasImage(has bool) {
	if has {
		t.saveButton.Enable()
		t.uploadButton.Enable()
		return
	}
	t.saveButton.Disable()
	t.uploadButton.Disable()
}

// SetUploading shows the progress bar and locks the upload button.
func (t *Toolbar) SetUploading(active bool) {
	if active {
		t.uploadButton.Disable()
		t.progress.Show()
		t.progress.Start()
		return
	}
	t.progress.Stop()
	t.progress.Hide()
	t.uploadButton.Enable()
}

func (t *Toolbar) SetStatus(status string) {
	t.statusLabel.SetText(status)
}

func (t *Toolbar) Status() string {
	return t.statusLabel.Text
}

func delayText(seconds int) string {
	return fmt.Sprintf("Delay: %ds", seconds)
}

package gui

import (
	"fmt"
	"image"

	"screen-shooter/internal/config"
	"screen-shooter/internal/gui/widgets"
	"screen-shooter/internal/pipeline"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
)

type View struct {
	window     fyne.Window
	controller *Controller

	toolbar       *widgets.Toolbar
	imageDisplay  *widgets.ImageDisplay
	mainContainer *fyne.Container
}

func NewView(window fyne.Window) *View {
	view := &View{
		window: window,
	}

	view.setupComponents()
	view.setupLayout()

	return view
}

func (v *View) SetController(controller *Controller) {
	v.controller = controller
	v.setupEventHandlers()
}

func (v *View) setupComponents() {
	v.toolbar = widgets.NewToolbar(config.MaxDelaySeconds)
	v.imageDisplay = widgets.NewImageDisplay()
}

func (v *View) setupLayout() {
	v.mainContainer = container.NewBorder(
		nil,
		v.toolbar.GetContainer(),
		nil, nil,
		v.imageDisplay.GetContainer(),
	)
}

func (v *View) setupEventHandlers() {
	if v.controller == nil {
		return
	}

	v.toolbar.SetCaptureHandler(func() { v.controller.Dispatch(ActionCapture) })
	v.toolbar.SetSaveHandler(func() { v.controller.Dispatch(ActionSave) })
	v.toolbar.SetUploadHandler(func() { v.controller.Dispatch(ActionUpload) })
	v.toolbar.SetDelayChangeHandler(v.controller.RememberDelay)
}

func (v *View) SetPreviewImage(img image.Image) {
	v.imageDisplay.SetImage(img)
	v.toolbar.SetHasImage(img != nil)
}

func (v *View) Delay() int {
	return v.toolbar.Delay()
}

func (v *View) SetDelay(seconds int) {
	v.toolbar.SetDelay(seconds)
}

func (v *View) SetStatus(status string) {
	v.toolbar.SetStatus(status)
}

func (v *View) SetUploading(active bool) {
	v.toolbar.SetUploading(active)
}

func (v *View) ShowError(title string, err error) {
	dialog.ShowError(fmt.Errorf("%s: %w", title, err), v.window)
}

func (v *View) ShowInformation(title, message string) {
	dialog.ShowInformation(title, message, v.window)
}

func (v *View) ShowSaveDialog(callback func(fyne.URIWriteCloser, error)) {
	save := dialog.NewFileSave(callback, v.window)
	save.SetFilter(storage.NewExtensionFileFilter(pipeline.FilterExtensions()))
	save.SetFileName("screenshot.png")
	save.Show()
}

func (v *View) CopyToClipboard(text string) {
	v.window.Clipboard().SetContent(text)
}

func (v *View) Show() {
	v.window.SetContent(v.mainContainer)
	v.window.Show()
}

func (v *View) Shutdown() {
	fyne.Do(func() {
		v.imageDisplay.SetImage(nil)
	})
}

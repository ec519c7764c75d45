package gui

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"screen-shooter/internal/capture"
	"screen-shooter/internal/logger"
	"screen-shooter/internal/pipeline"
	"screen-shooter/internal/settings"
	"screen-shooter/internal/upload"

	"fyne.io/fyne/v2"
)

type Controller struct {
	view        *View
	coordinator *pipeline.Coordinator
	trigger     *capture.Trigger
	flow        *upload.Flow
	store       settings.Store
	logger      logger.Logger
	actions     map[Action]func()

	// defaultDelay seeds the delay slider until the user picks one.
	defaultDelay int

	mu      sync.RWMutex
	lastURL string
}

func NewController(coord *pipeline.Coordinator, store settings.Store, log logger.Logger) *Controller {
	c := &Controller{
		coordinator: coord,
		store:       store,
		logger:      log,
	}
	c.actions = c.buildActions()
	return c
}

func (c *Controller) SetDefaultDelay(seconds int) {
	c.defaultDelay = seconds
}

func (c *Controller) SetView(view *View) {
	c.view = view
	c.view.SetDelay(c.store.IntWithFallback(settings.KeyCaptureDelay, c.defaultDelay))
}

// SetTrigger connects the capture trigger. Its callbacks fire on the timer
// goroutine and are forwarded to the UI loop.
func (c *Controller) SetTrigger(trigger *capture.Trigger) {
	c.trigger = trigger
	trigger.OnCaptured = func(img image.Image) {
		fyne.Do(func() { c.showCapture(img) })
	}
	trigger.OnFailed = func(err error) {
		fyne.Do(func() { c.handleError("Capture error", err) })
	}
}

// SetFlow connects the upload flow's transitions to the status line.
func (c *Controller) SetFlow(flow *upload.Flow) {
	c.flow = flow
	flow.OnStateChange(func(s upload.State) {
		fyne.Do(func() { c.showUploadState(s) })
	})
}

func (c *Controller) RememberDelay(seconds int) {
	c.store.SetInt(settings.KeyCaptureDelay, seconds)
}

func (c *Controller) TakeScreenshot() {
	if c.trigger == nil {
		c.handleError("Capture error", capture.ErrNoDisplay)
		return
	}

	delay := c.view.Delay()
	c.RememberDelay(delay)
	wait := c.trigger.Fire(delay)

	c.updateStatus(fmt.Sprintf("Capturing in %ds...", delay))
	c.logger.Info("Controller", "capture requested", map[string]interface{}{
		"delay_seconds": delay,
		"wait":          wait,
	})
}

func (c *Controller) showCapture(img image.Image) {
	data := c.coordinator.SetCurrent(img)
	c.view.SetPreviewImage(data.Image)
	c.updateStatus(fmt.Sprintf("Captured %dx%d", data.Width, data.Height))
}

func (c *Controller) SaveImage() {
	data := c.coordinator.Current()
	if data == nil {
		c.handleError("Save error", pipeline.ErrNoImage)
		return
	}

	c.view.ShowSaveDialog(func(writer fyne.URIWriteCloser, err error) {
		c.saveChosen(writer, err, data)
	})
}

// saveChosen handles the save dialog's answer. The dialog's writer is only
// used to learn the path; the encoder reopens the file itself.
func (c *Controller) saveChosen(writer fyne.URIWriteCloser, err error, data *pipeline.ImageData) {
	if err != nil {
		c.handleError("File save error", err)
		return
	}
	if writer == nil {
		c.updateStatus("Save cancelled")
		return
	}

	path := writer.URI().Path()
	if err := writer.Close(); err != nil {
		c.handleError("File save error", err)
		return
	}
	c.saveImage(path, data)
}

func (c *Controller) saveImage(path string, data *pipeline.ImageData) {
	c.updateStatus("Saving image...")

	go func() {
		result, err := c.coordinator.Save(path, data)
		fyne.Do(func() { c.saveFinished(result, err) })
	}()
}

func (c *Controller) saveFinished(result pipeline.SaveResult, err error) {
	if err != nil {
		c.handleError("Image save error", err)
		c.updateStatus("Save failed")
		return
	}

	c.updateStatus(fmt.Sprintf("Saved %s (%s)", result.Path, result.Size()))
	if result.FellBack {
		c.view.ShowInformation("Saved as PNG",
			fmt.Sprintf("The extension of %s is not one of png, bmp, jpeg or jpg, so the file contains PNG data.", result.Path))
	}
}

func (c *Controller) UploadImage() {
	img := c.coordinator.CurrentImage()
	if err := c.flow.Start(img, c.uploadFinished); err != nil {
		c.handleError("Upload error", err)
		return
	}
	c.view.SetUploading(true)
	c.updateStatus("Uploading...")
}

// uploadFinished runs on the upload goroutine.
func (c *Controller) uploadFinished(outcome upload.Outcome) {
	fyne.Do(func() { c.showUploadOutcome(outcome) })
}

func (c *Controller) showUploadOutcome(outcome upload.Outcome) {
	c.view.SetUploading(false)

	if errors.Is(outcome.Err, upload.ErrAuthCancelled) {
		c.updateStatus("Upload cancelled: no authorization code entered")
		return
	}
	if outcome.Err != nil {
		c.handleError("Upload error", outcome.Err)
		c.updateStatus("Upload failed")
		return
	}

	c.mu.Lock()
	c.lastURL = outcome.URL
	c.mu.Unlock()
	c.updateStatus("Uploaded: " + outcome.URL)
}

func (c *Controller) showUploadState(s upload.State) {
	switch s {
	case upload.Authenticating:
		c.updateStatus("Waiting for authorization...")
	case upload.Uploading:
		c.updateStatus("Uploading...")
	}
}

func (c *Controller) CopyLink() {
	link := c.LastURL()
	if link == "" {
		c.handleError("Copy error", errors.New("nothing has been uploaded yet"))
		return
	}
	c.view.CopyToClipboard(link)
	c.updateStatus("Link copied")
}

func (c *Controller) LastURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastURL
}

func (c *Controller) SignOut() {
	if err := c.flow.SignOut(); err != nil {
		c.handleError("Sign out error", err)
		return
	}
	c.updateStatus("Signed out of Imgur")
}

func (c *Controller) updateStatus(status string) {
	c.view.SetStatus(status)
}

func (c *Controller) handleError(title string, err error) {
	c.logger.Error("Controller", err, map[string]interface{}{
		"title": title,
	})

	c.view.SetStatus(title)
	c.view.ShowError(title, err)
}

func (c *Controller) Shutdown() {
	if c.trigger != nil {
		c.trigger.Stop()
	}
	if c.flow != nil {
		c.flow.Cancel()
	}
	c.logger.Info("Controller", "shutdown completed", nil)
}

package gui

import (
	"context"
	"errors"
	"image"
	"testing"
	"time"

	"screen-shooter/internal/capture"
	"screen-shooter/internal/imgur"
	"screen-shooter/internal/logger"
	"screen-shooter/internal/pipeline"
	"screen-shooter/internal/settings"
	"screen-shooter/internal/upload"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type idleTimer struct{}

func (idleTimer) Stop() bool { return true }

type recordingScheduler struct {
	delays []time.Duration
}

func (s *recordingScheduler) AfterFunc(d time.Duration, f func()) capture.Timer {
	s.delays = append(s.delays, d)
	return idleTimer{}
}

type stubGrabber struct{}

func (stubGrabber) Grab() (image.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, 4, 3)), nil
}

type stubHost struct{}

func (stubHost) AuthURL() string { return "https://imgur.test/authorize" }

func (stubHost) Authorize(ctx context.Context, pin string) (*imgur.Tokens, error) {
	return &imgur.Tokens{AccessToken: "access", RefreshToken: "refresh"}, nil
}

func (stubHost) Refresh(ctx context.Context, refreshToken string) (*imgur.Tokens, error) {
	return &imgur.Tokens{AccessToken: "access", RefreshToken: refreshToken}, nil
}

func (stubHost) Upload(ctx context.Context, accessToken, path string, anon bool) (*imgur.Image, error) {
	return &imgur.Image{ID: "abc123"}, nil
}

type errorRecorder struct {
	logger.Nop
	errs []error
}

func (r *errorRecorder) Error(component string, err error, fields map[string]interface{}) {
	r.errs = append(r.errs, err)
}

type closeFailWriter struct {
	uri fyne.URI
}

func (w closeFailWriter) Write(p []byte) (int, error) { return len(p), nil }
func (w closeFailWriter) Close() error                { return errors.New("close: read-only file system") }
func (w closeFailWriter) URI() fyne.URI               { return w.uri }

func newTestController(t *testing.T) (*Controller, *View, *settings.MemoryStore, fyne.Window) {
	t.Helper()
	store := settings.NewMemoryStore()
	store.SetInt(settings.KeyCaptureDelay, 4)
	return newTestControllerWith(t, store, 0, logger.Nop{})
}

func newTestControllerWith(t *testing.T, store *settings.MemoryStore, defaultDelay int, log logger.Logger) (*Controller, *View, *settings.MemoryStore, fyne.Window) {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)
	w := test.NewWindow(nil)
	t.Cleanup(w.Close)

	coordinator := pipeline.NewCoordinator(log)
	view := NewView(w)
	c := NewController(coordinator, store, log)
	c.SetDefaultDelay(defaultDelay)
	view.SetController(c)
	c.SetView(view)
	c.SetFlow(upload.NewFlow(context.Background(), upload.Options{
		Host:    stubHost{},
		Store:   store,
		Encoder: coordinator,
		Logger:  log,
	}))
	return c, view, store, w
}

func findButton(t *testing.T, obj fyne.CanvasObject, label string) *widget.Button {
	t.Helper()
	var walk func(fyne.CanvasObject) *widget.Button
	walk = func(o fyne.CanvasObject) *widget.Button {
		switch v := o.(type) {
		case *widget.Button:
			if v.Text == label {
				return v
			}
		case *fyne.Container:
			for _, child := range v.Objects {
				if b := walk(child); b != nil {
					return b
				}
			}
		}
		return nil
	}
	b := walk(obj)
	require.NotNil(t, b, "no %q button", label)
	return b
}

func topOverlay(w fyne.Window) fyne.CanvasObject {
	return w.Canvas().Overlays().Top()
}

func TestController_RestoresDelay(t *testing.T) {
	_, view, _, _ := newTestController(t)

	assert.Equal(t, 4, view.Delay())
}

func TestController_DefaultDelayWhenNothingStored(t *testing.T) {
	_, view, _, _ := newTestControllerWith(t, settings.NewMemoryStore(), 5, logger.Nop{})

	assert.Equal(t, 5, view.Delay())
}

func TestController_UnknownActionLogsError(t *testing.T) {
	rec := &errorRecorder{}
	c, _, _, _ := newTestControllerWith(t, settings.NewMemoryStore(), 0, rec)

	assert.False(t, c.Dispatch(Action("print")))
	require.Len(t, rec.errs, 1)
	assert.Contains(t, rec.errs[0].Error(), `"print"`)
}

func TestController_DispatchTable(t *testing.T) {
	c, _, _, _ := newTestController(t)

	for _, action := range []Action{ActionCapture, ActionSave, ActionUpload, ActionCopyLink, ActionSignOut} {
		_, ok := c.actions[action]
		assert.True(t, ok, "missing handler for %s", action)
	}

	called := 0
	c.actions[ActionCapture] = func() { called++ }

	assert.True(t, c.Dispatch(ActionCapture))
	assert.False(t, c.Dispatch(Action("print")))
	assert.Equal(t, 1, called)
}

func TestController_ToolbarDispatches(t *testing.T) {
	c, view, _, _ := newTestController(t)

	var got []Action
	for _, action := range []Action{ActionCapture, ActionSave, ActionUpload} {
		action := action
		c.actions[action] = func() { got = append(got, action) }
	}

	view.toolbar.SetHasImage(true)
	bar := view.toolbar.GetContainer()
	test.Tap(findButton(t, bar, "Take screenshot"))
	test.Tap(findButton(t, bar, "Save"))
	test.Tap(findButton(t, bar, "Upload"))

	assert.Equal(t, []Action{ActionCapture, ActionSave, ActionUpload}, got)
}

func TestController_TakeScreenshotSchedulesCapture(t *testing.T) {
	c, view, store, w := newTestController(t)

	sched := &recordingScheduler{}
	trigger := capture.NewTrigger(stubGrabber{}, windowToggle{window: w}, 25*time.Millisecond, logger.Nop{})
	trigger.SetScheduler(sched)
	c.trigger = trigger

	view.SetDelay(2)
	c.Dispatch(ActionCapture)

	require.Len(t, sched.delays, 1)
	assert.Equal(t, 2*time.Second+25*time.Millisecond, sched.delays[0])
	assert.Equal(t, 2, store.IntWithFallback(settings.KeyCaptureDelay, 0))
	assert.Equal(t, "Capturing in 2s...", view.toolbar.Status())
}

func TestController_ShowCaptureUpdatesBufferAndPreview(t *testing.T) {
	c, view, _, _ := newTestController(t)
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))

	c.showCapture(img)

	assert.Same(t, img, c.coordinator.CurrentImage())
	assert.Same(t, img, view.imageDisplay.Image())
	assert.False(t, findButton(t, view.toolbar.GetContainer(), "Save").Disabled())
	assert.Equal(t, "Captured 4x3", view.toolbar.Status())
}

func TestController_UploadWithoutImageShowsError(t *testing.T) {
	c, view, _, w := newTestController(t)

	c.Dispatch(ActionUpload)

	assert.NotNil(t, topOverlay(w))
	assert.Equal(t, "Upload error", view.toolbar.Status())
	assert.False(t, c.flow.InFlight())
}

func TestController_UploadCancelledByUser(t *testing.T) {
	c, view, _, w := newTestController(t)
	view.toolbar.SetHasImage(true)
	view.SetUploading(true)

	c.showUploadOutcome(upload.Outcome{Err: upload.ErrAuthCancelled})

	assert.Equal(t, "Upload cancelled: no authorization code entered", view.toolbar.Status())
	assert.Nil(t, topOverlay(w))
	assert.False(t, findButton(t, view.toolbar.GetContainer(), "Upload").Disabled())
	assert.Empty(t, c.LastURL())
}

func TestController_UploadFailureShowsError(t *testing.T) {
	c, view, _, w := newTestController(t)
	view.toolbar.SetHasImage(true)
	view.SetUploading(true)

	c.showUploadOutcome(upload.Outcome{Err: errors.New("imgur: 500 over capacity")})

	assert.Equal(t, "Upload failed", view.toolbar.Status())
	assert.NotNil(t, topOverlay(w))
	assert.False(t, findButton(t, view.toolbar.GetContainer(), "Upload").Disabled())
	assert.Empty(t, c.LastURL())
}

func TestController_UploadSuccessRecordsLink(t *testing.T) {
	c, view, _, w := newTestController(t)
	view.toolbar.SetHasImage(true)
	view.SetUploading(true)

	c.showUploadOutcome(upload.Outcome{ID: "run-1", URL: "https://imgur.com/abc123"})

	assert.Equal(t, "https://imgur.com/abc123", c.LastURL())
	assert.Equal(t, "Uploaded: https://imgur.com/abc123", view.toolbar.Status())
	assert.Nil(t, topOverlay(w))

	c.Dispatch(ActionCopyLink)
	assert.Equal(t, "https://imgur.com/abc123", w.Clipboard().Content())
	assert.Equal(t, "Link copied", view.toolbar.Status())
}

func TestController_CopyLinkBeforeUpload(t *testing.T) {
	c, view, _, w := newTestController(t)

	c.Dispatch(ActionCopyLink)

	assert.NotNil(t, topOverlay(w))
	assert.Equal(t, "Copy error", view.toolbar.Status())
}

func TestController_SaveFallbackNotice(t *testing.T) {
	c, view, _, w := newTestController(t)

	c.saveFinished(pipeline.SaveResult{
		Path:     "/tmp/shot.gif",
		Format:   pipeline.FormatPNG,
		Bytes:    2048,
		FellBack: true,
	}, nil)

	assert.Contains(t, view.toolbar.Status(), "Saved /tmp/shot.gif")
	assert.NotNil(t, topOverlay(w))
}

func TestController_SaveWithKnownExtension(t *testing.T) {
	c, view, _, w := newTestController(t)

	c.saveFinished(pipeline.SaveResult{Path: "/tmp/shot.jpg", Format: pipeline.FormatJPEG, Bytes: 2048}, nil)

	assert.Contains(t, view.toolbar.Status(), "Saved /tmp/shot.jpg")
	assert.Nil(t, topOverlay(w))
}

func TestController_SaveFailure(t *testing.T) {
	c, view, _, w := newTestController(t)

	c.saveFinished(pipeline.SaveResult{}, errors.New("disk full"))

	assert.Equal(t, "Save failed", view.toolbar.Status())
	assert.NotNil(t, topOverlay(w))
}

func TestController_SaveCloseErrorReported(t *testing.T) {
	c, view, _, w := newTestController(t)
	data := c.coordinator.SetCurrent(image.NewRGBA(image.Rect(0, 0, 4, 3)))

	c.saveChosen(closeFailWriter{uri: storage.NewFileURI("/tmp/shot.png")}, nil, data)

	assert.Equal(t, "File save error", view.toolbar.Status())
	assert.NotNil(t, topOverlay(w))
}

func TestController_SaveDialogCancelled(t *testing.T) {
	c, view, _, w := newTestController(t)

	c.saveChosen(nil, nil, nil)

	assert.Equal(t, "Save cancelled", view.toolbar.Status())
	assert.Nil(t, topOverlay(w))
}

func TestController_SignOutClearsCredentials(t *testing.T) {
	store := settings.NewMemoryStore()
	settings.SaveCredentials(store, settings.Credentials{AccessToken: "access", RefreshToken: "refresh"})
	c, view, _, _ := newTestControllerWith(t, store, 0, logger.Nop{})
	require.Equal(t, upload.Authenticated, c.flow.State())

	c.Dispatch(ActionSignOut)

	_, ok := settings.LoadCredentials(store)
	assert.False(t, ok)
	assert.Equal(t, upload.Unauthenticated, c.flow.State())
	assert.Equal(t, "Signed out of Imgur", view.toolbar.Status())
}

func TestDialogPrompter_CancelledContext(t *testing.T) {
	a := test.NewApp()
	t.Cleanup(a.Quit)
	w := test.NewWindow(nil)
	t.Cleanup(w.Close)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	code, ok := NewPrompter(w).Prompt(ctx, "https://imgur.test/authorize")

	assert.Empty(t, code)
	assert.False(t, ok)
	assert.Nil(t, topOverlay(w))
}

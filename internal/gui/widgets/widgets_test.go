package widgets

import (
	"image"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolbar_Handlers(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	tb := NewToolbar(10)
	var captured, saved, uploaded int
	tb.SetCaptureHandler(func() { captured++ })
	tb.SetSaveHandler(func() { saved++ })
	tb.SetUploadHandler(func() { uploaded++ })

	test.Tap(tb.captureButton)
	test.Tap(tb.saveButton)
	test.Tap(tb.uploadButton)

	assert.Equal(t, 1, captured)
	assert.Zero(t, saved, "save disabled without an image")
	assert.Zero(t, uploaded, "upload disabled without an image")

	tb.SetHasImage(true)
	test.Tap(tb.saveButton)
	test.Tap(tb.uploadButton)

	assert.Equal(t, 1, saved)
	assert.Equal(t, 1, uploaded)
}

func TestToolbar_Uploading(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	tb := NewToolbar(10)
	tb.SetHasImage(true)

	tb.SetUploading(true)
	assert.True(t, tb.uploadButton.Disabled())
	assert.True(t, tb.progress.Visible())

	tb.SetUploading(false)
	assert.False(t, tb.uploadButton.Disabled())
	assert.False(t, tb.progress.Visible())
}

func TestToolbar_Delay(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	tb := NewToolbar(10)
	var reported []int
	tb.SetDelayChangeHandler(func(s int) { reported = append(reported, s) })

	tb.SetDelay(3)

	assert.Equal(t, 3, tb.Delay())
	assert.Equal(t, "Delay: 3s", tb.delayLabel.Text)
	assert.Contains(t, reported, 3)

	tb.SetStatus("Saved")
	assert.Equal(t, "Saved", tb.Status())
}

func TestImageDisplay_Render(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	display := NewImageDisplay()

	empty := display.render(50, 40)
	assert.Equal(t, image.Rect(0, 0, 1, 1), empty.Bounds())
	assert.True(t, display.placeholder.Visible())

	img := image.NewRGBA(image.Rect(0, 0, 200, 100))
	display.SetImage(img)

	out := display.render(100, 100)
	require.NotNil(t, out)
	assert.Equal(t, image.Rect(0, 0, 100, 100), out.Bounds())
	assert.Same(t, img, display.Image())
	assert.False(t, display.placeholder.Visible())
	assert.Same(t, out, display.render(100, 100))

	display.SetImage(image.NewRGBA(image.Rect(0, 0, 200, 100)))
	assert.NotSame(t, out, display.render(100, 100))
}

func TestAuthPrompt_SubmitOnEnter(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	w := test.NewWindow(nil)
	defer w.Close()

	var calls int
	var gotAccepted bool
	var gotCode string
	prompt := NewAuthPrompt(w, "https://api.imgur.com/oauth2/authorize?client_id=x&response_type=pin", func(accepted bool, code string) {
		calls++
		gotAccepted = accepted
		gotCode = code
	})
	prompt.Show()

	prompt.entry.SetText("1234")
	prompt.entry.OnSubmitted(prompt.entry.Text)

	assert.Equal(t, 1, calls)
	assert.True(t, gotAccepted)
	assert.Equal(t, "1234", gotCode)

	prompt.dialog.Submit()
	assert.Equal(t, 1, calls, "callback runs once")
}

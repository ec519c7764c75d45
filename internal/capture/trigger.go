package capture

import (
	"image"
	"sync"
	"time"

	"screen-shooter/internal/logger"
)

// Window is the part of the main window the trigger toggles around a grab.
type Window interface {
	Hide()
	Show()
}

type Timer interface {
	Stop() bool
}

type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type timeScheduler struct{}

func (timeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Delay converts the user's delay in seconds into the scheduled wait.
func Delay(offset time.Duration, seconds int) time.Duration {
	if seconds < 0 {
		seconds = 0
	}
	return offset + time.Duration(seconds)*time.Second
}

type Trigger struct {
	grabber   Grabber
	window    Window
	scheduler Scheduler
	offset    time.Duration
	logger    logger.Logger

	// OnCaptured and OnFailed run on the scheduler's goroutine.
	OnCaptured func(image.Image)
	OnFailed   func(error)

	mu      sync.Mutex
	pending Timer
	seq     uint64
	hidden  bool
}

func NewTrigger(grabber Grabber, window Window, offset time.Duration, log logger.Logger) *Trigger {
	return &Trigger{
		grabber:   grabber,
		window:    window,
		scheduler: timeScheduler{},
		offset:    offset,
		logger:    log,
	}
}

func (t *Trigger) SetScheduler(s Scheduler) {
	t.mu.Lock()
	t.scheduler = s
	t.mu.Unlock()
}

// Fire hides the window and schedules a single capture. A capture that is
// still pending is replaced, never duplicated.
func (t *Trigger) Fire(delaySeconds int) time.Duration {
	delay := Delay(t.offset, delaySeconds)

	t.mu.Lock()
	if t.pending != nil {
		t.pending.Stop()
	}
	t.seq++
	id := t.seq

	hide := !t.hidden
	t.hidden = true
	t.pending = t.scheduler.AfterFunc(delay, func() { t.capture(id) })
	t.mu.Unlock()

	if hide {
		t.window.Hide()
	}

	t.logger.Debug("CaptureTrigger", "capture scheduled", map[string]interface{}{
		"delay": delay,
		"seq":   id,
	})
	return delay
}

func (t *Trigger) hasPending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending != nil
}

// Stop drops a pending capture and brings the window back.
func (t *Trigger) Stop() {
	t.mu.Lock()
	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
	t.seq++
	show := t.hidden
	t.hidden = false
	t.mu.Unlock()

	if show {
		t.window.Show()
	}
}

func (t *Trigger) capture(id uint64) {
	t.mu.Lock()
	if id != t.seq {
		t.mu.Unlock()
		return
	}
	t.pending = nil
	t.mu.Unlock()

	start := time.Now()
	img, err := t.grabber.Grab()
	if err == nil && img == nil {
		err = ErrNoDisplay
	}

	if err != nil {
		t.logger.Error("CaptureTrigger", err, map[string]interface{}{"seq": id})
		if t.OnFailed != nil {
			t.OnFailed(err)
		}
	} else {
		bounds := img.Bounds()
		t.logger.Info("CaptureTrigger", "screen captured", map[string]interface{}{
			"width":     bounds.Dx(),
			"height":    bounds.Dy(),
			"grab_time": time.Since(start),
		})
		if t.OnCaptured != nil {
			t.OnCaptured(img)
		}
	}

	t.mu.Lock()
	show := t.hidden && id == t.seq
	if show {
		t.hidden = false
	}
	t.mu.Unlock()

	if show {
		t.window.Show()
	}
}

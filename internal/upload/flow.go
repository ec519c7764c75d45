// Package upload runs the authenticate-then-upload sequence against the image
// host on a single background goroutine.
package upload

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"screen-shooter/internal/imgur"
	"screen-shooter/internal/logger"
	"screen-shooter/internal/settings"

	"github.com/google/uuid"
)

var (
	ErrInProgress    = errors.New("an upload is already running")
	ErrNoImage       = errors.New("no screenshot to upload")
	ErrAuthCancelled = errors.New("authorization cancelled")
	ErrEmptyResponse = errors.New("image host returned no image id")
)

type Host interface {
	AuthURL() string
	Authorize(ctx context.Context, pin string) (*imgur.Tokens, error)
	Refresh(ctx context.Context, refreshToken string) (*imgur.Tokens, error)
	Upload(ctx context.Context, accessToken, path string, anon bool) (*imgur.Image, error)
}

// Prompter asks the user for the one-time code shown after visiting authURL.
// It blocks until the user answers or ctx ends.
type Prompter interface {
	Prompt(ctx context.Context, authURL string) (code string, accepted bool)
}

type Browser interface {
	Open(rawURL string) error
}

// Encoder serializes the buffer to a temporary PNG owned by the caller.
type Encoder interface {
	EncodeTemp(img image.Image) (string, error)
}

type Outcome struct {
	ID       string
	URL      string
	Image    *imgur.Image
	Err      error
	Duration time.Duration
}

type Options struct {
	Host     Host
	Store    settings.Store
	Prompter Prompter
	Browser  Browser
	Encoder  Encoder
	Logger   logger.Logger
	// Timeout bounds each network call. The prompt is not covered.
	Timeout time.Duration
}

type Flow struct {
	opts   Options
	parent context.Context
	busy   atomic.Bool

	mu            sync.Mutex
	state         State
	cancel        context.CancelFunc
	onStateChange func(State)
}

func NewFlow(ctx context.Context, opts Options) *Flow {
	if opts.Logger == nil {
		opts.Logger = logger.Nop{}
	}

	f := &Flow{opts: opts, parent: ctx, state: Unauthenticated}
	if _, ok := settings.LoadCredentials(opts.Store); ok {
		f.state = Authenticated
	}
	return f
}

// OnStateChange registers a callback run on the flow goroutine at every transition.
func (f *Flow) OnStateChange(fn func(State)) {
	f.mu.Lock()
	f.onStateChange = fn
	f.mu.Unlock()
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Flow) InFlight() bool {
	return f.busy.Load()
}

// Start uploads img in the background and reports through onDone. Only one
// upload runs at a time; a second call while busy gets ErrInProgress.
func (f *Flow) Start(img image.Image, onDone func(Outcome)) error {
	if img == nil {
		return ErrNoImage
	}
	if !f.busy.CompareAndSwap(false, true) {
		return ErrInProgress
	}

	ctx, cancel := context.WithCancel(f.parent)
	f.mu.Lock()
	f.cancel = cancel
	f.mu.Unlock()

	go func() {
		outcome := f.run(ctx, img)
		cancel()

		f.mu.Lock()
		f.cancel = nil
		f.mu.Unlock()
		f.busy.Store(false)

		if onDone != nil {
			onDone(outcome)
		}
	}()
	return nil
}

// Cancel aborts the in-flight upload, if any.
func (f *Flow) Cancel() {
	f.mu.Lock()
	cancel := f.cancel
	f.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// SignOut forgets the stored credentials.
func (f *Flow) SignOut() error {
	if f.busy.Load() {
		return ErrInProgress
	}
	settings.ClearCredentials(f.opts.Store)
	f.setState(Unauthenticated)
	f.opts.Logger.Info("UploadFlow", "credentials cleared", nil)
	return nil
}

func (f *Flow) run(ctx context.Context, img image.Image) Outcome {
	outcome := Outcome{ID: uuid.NewString()}
	start := time.Now()
	log := f.opts.Logger

	fail := func(err error) Outcome {
		outcome.Err = err
		outcome.Duration = time.Since(start)
		f.setState(Failed)
		log.Error("UploadFlow", err, map[string]interface{}{"upload_id": outcome.ID})
		return outcome
	}

	creds, ok := settings.LoadCredentials(f.opts.Store)
	if !ok {
		f.setState(Authenticating)
		var err error
		creds, err = f.authenticate(ctx)
		if err != nil {
			return fail(err)
		}
	}
	f.setState(Authenticated)

	f.setState(Uploading)
	path, err := f.opts.Encoder.EncodeTemp(img)
	if err != nil {
		return fail(fmt.Errorf("prepare upload: %w", err))
	}

	result, err := f.upload(ctx, creds, path)
	if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
		log.Warning("UploadFlow", "temp file not removed", map[string]interface{}{
			"path":  path,
			"error": rmErr.Error(),
		})
	}
	if err != nil {
		return fail(err)
	}
	if result == nil || result.ID == "" {
		return fail(ErrEmptyResponse)
	}

	outcome.Image = result
	outcome.URL = imgur.ViewURL(result.ID)
	outcome.Duration = time.Since(start)

	if err := f.opts.Browser.Open(outcome.URL); err != nil {
		log.Warning("UploadFlow", "could not open browser", map[string]interface{}{
			"url":   outcome.URL,
			"error": err.Error(),
		})
	}

	f.setState(Done)
	log.Info("UploadFlow", "upload completed", map[string]interface{}{
		"upload_id": outcome.ID,
		"url":       outcome.URL,
		"duration":  outcome.Duration,
	})
	return outcome
}

func (f *Flow) authenticate(ctx context.Context) (settings.Credentials, error) {
	authURL := f.opts.Host.AuthURL()
	f.opts.Logger.Info("UploadFlow", "authorization required", map[string]interface{}{
		"auth_url": authURL,
	})

	code, accepted := f.opts.Prompter.Prompt(ctx, authURL)
	code = strings.TrimSpace(code)
	if !accepted || code == "" {
		return settings.Credentials{}, ErrAuthCancelled
	}

	callCtx, cancel := f.callContext(ctx)
	defer cancel()

	tokens, err := f.opts.Host.Authorize(callCtx, code)
	if err != nil {
		return settings.Credentials{}, fmt.Errorf("authorize: %w", err)
	}
	return f.persist(tokens), nil
}

func (f *Flow) upload(ctx context.Context, creds settings.Credentials, path string) (*imgur.Image, error) {
	callCtx, cancel := f.callContext(ctx)
	result, err := f.opts.Host.Upload(callCtx, creds.AccessToken, path, false)
	cancel()

	if !errors.Is(err, imgur.ErrUnauthorized) || creds.RefreshToken == "" {
		return result, err
	}

	f.opts.Logger.Info("UploadFlow", "access token rejected, refreshing", nil)

	callCtx, cancel = f.callContext(ctx)
	tokens, refreshErr := f.opts.Host.Refresh(callCtx, creds.RefreshToken)
	cancel()
	if refreshErr != nil {
		return nil, fmt.Errorf("refresh credentials: %w", refreshErr)
	}
	creds = f.persist(tokens)

	callCtx, cancel = f.callContext(ctx)
	defer cancel()
	return f.opts.Host.Upload(callCtx, creds.AccessToken, path, false)
}

func (f *Flow) persist(tokens *imgur.Tokens) settings.Credentials {
	creds := settings.Credentials{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}
	settings.SaveCredentials(f.opts.Store, creds)
	return creds
}

func (f *Flow) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if f.opts.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, f.opts.Timeout)
}

func (f *Flow) setState(s State) {
	f.mu.Lock()
	f.state = s
	fn := f.onStateChange
	f.mu.Unlock()

	if fn != nil {
		fn(s)
	}
}

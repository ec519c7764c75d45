package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"screen-shooter/internal/capture"
	"screen-shooter/internal/config"
	"screen-shooter/internal/gui"
	"screen-shooter/internal/imgur"
	"screen-shooter/internal/logger"
	"screen-shooter/internal/pipeline"
	"screen-shooter/internal/upload"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

type shutdownHandler interface {
	Shutdown()
}

type Application struct {
	fyneApp       fyne.App
	window        fyne.Window
	config        *config.Config
	guiManager    *gui.Manager
	coordinator   *pipeline.Coordinator
	flow          *upload.Flow
	logger        logger.Logger
	shutdownables []shutdownHandler
	ctx           context.Context
	cancel        context.CancelFunc
	shutdown      chan struct{}
	menuSetup     bool
}

func NewApplication(cfg *config.Config) (*Application, error) {
	log := logger.NewConsoleLogger(logger.ParseLevel(cfg.LogLevel))

	app.SetMetadata(fyne.AppMetadata{
		ID:      config.AppID,
		Name:    config.AppName,
		Version: config.AppVersion,
		Build:   1,
	})

	fyneApp := app.NewWithID(config.AppID)
	fyneApp.Settings().SetTheme(gui.NewShooterTheme())

	window := fyneApp.NewWindow(config.AppName)
	window.Resize(calculateMinimumWindowSize())
	window.CenterOnScreen()
	window.SetMaster()

	ctx, cancel := context.WithCancel(context.Background())

	log.Info("Application", "starting application", map[string]interface{}{
		"version":     config.AppVersion,
		"secret_file": cfg.SecretFile,
		"log_level":   cfg.LogLevel,
	})

	store := fyneApp.Preferences()
	coordinator := pipeline.NewCoordinator(log)

	client := imgur.NewClient(cfg.ClientID, cfg.ClientSecret, imgur.WithLogger(log))
	flow := upload.NewFlow(ctx, upload.Options{
		Host:     client,
		Store:    store,
		Prompter: gui.NewPrompter(window),
		Browser:  gui.NewBrowser(fyneApp),
		Encoder:  coordinator,
		Logger:   log,
		Timeout:  cfg.UploadTimeout,
	})

	guiManager, err := gui.NewManager(window, gui.Dependencies{
		Coordinator:   coordinator,
		Grabber:       capture.NewScreenGrabber(),
		Flow:          flow,
		Store:         store,
		CaptureOffset: cfg.CaptureOffset,
		DefaultDelay:  cfg.DefaultDelay,
	}, log)
	if err != nil {
		cancel()
		return nil, err
	}

	application := &Application{
		fyneApp:     fyneApp,
		window:      window,
		config:      cfg,
		guiManager:  guiManager,
		coordinator: coordinator,
		flow:        flow,
		logger:      log,
		ctx:         ctx,
		cancel:      cancel,
		shutdown:    make(chan struct{}),
		shutdownables: []shutdownHandler{
			coordinator,
			guiManager,
		},
	}

	application.setupSignalHandling()
	log.Info("Application", "initialization complete", map[string]interface{}{
		"upload_state": flow.State().String(),
	})
	return application, nil
}

func (a *Application) setupMenu() {
	fileMenu := fyne.NewMenu("File",
		a.guiManager.MenuItem("Take Screenshot", gui.ActionCapture),
		a.guiManager.MenuItem("Save As...", gui.ActionSave),
	)
	imgurMenu := fyne.NewMenu("Imgur",
		a.guiManager.MenuItem("Upload", gui.ActionUpload),
		a.guiManager.MenuItem("Copy Link", gui.ActionCopyLink),
		fyne.NewMenuItemSeparator(),
		a.guiManager.MenuItem("Sign Out", gui.ActionSignOut),
	)
	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", a.showAbout),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, imgurMenu, helpMenu))
	a.menuSetup = true

	a.logger.Info("Application", "menu setup completed", map[string]interface{}{
		"menus": []string{"File", "Imgur", "Help"},
	})
}

func (a *Application) showAbout() {
	metadata := a.fyneApp.Metadata()

	name := metadata.Name
	if name == "" {
		name = config.AppName
	}
	version := metadata.Version
	if version == "" {
		version = config.AppVersion
	}

	aboutContent := container.NewVBox(
		widget.NewLabel(name),
		widget.NewLabel(fmt.Sprintf("Version: %s", version)),
		widget.NewLabel(""),
		widget.NewLabel("Capture, save and share screenshots."),
		widget.NewLabel(fmt.Sprintf("Go: %s", runtime.Version())),
		widget.NewLabel(fmt.Sprintf("Platform: %s/%s", runtime.GOOS, runtime.GOARCH)),
	)

	dialog.ShowCustom("About", "Close", aboutContent, a.window)
}

func calculateMinimumWindowSize() fyne.Size {
	return fyne.Size{Width: 720, Height: 560}
}

func (a *Application) setupSignalHandling() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		select {
		case sig := <-sigChan:
			a.logger.Info("Application", "shutdown signal received", map[string]interface{}{
				"signal": sig.String(),
			})
			a.initiateShutdown()
		case <-a.ctx.Done():
			return
		}
	}()
}

func (a *Application) Run() error {
	if !a.menuSetup {
		a.setupMenu()
	}

	a.window.SetCloseIntercept(func() {
		a.logger.Info("Application", "shutdown requested via window close", nil)
		a.initiateShutdown()
		a.window.Close()
	})

	a.guiManager.Show()

	go func() {
		<-a.shutdown
		fyne.Do(func() {
			a.fyneApp.Quit()
		})
	}()

	a.fyneApp.Run()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return a.Shutdown(ctx)
}

func (a *Application) initiateShutdown() {
	select {
	case <-a.shutdown:
		return
	default:
		close(a.shutdown)
	}

	a.logger.Info("Application", "shutdown sequence initiated", map[string]interface{}{
		"components": len(a.shutdownables),
	})

	a.cancel()

	for i := len(a.shutdownables) - 1; i >= 0; i-- {
		component := a.shutdownables[i]

		done := make(chan struct{})
		go func() {
			defer close(done)
			component.Shutdown()
		}()

		select {
		case <-done:
		case <-time.After(10 * time.Second):
			a.logger.Warning("Application", "component shutdown timeout", map[string]interface{}{
				"component_index": i,
			})
		}
	}

	a.logger.Info("Application", "shutdown sequence completed", nil)
}

// Shutdown runs the shutdown sequence and waits for an in-flight upload to
// wind down.
func (a *Application) Shutdown(ctx context.Context) error {
	a.initiateShutdown()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for a.flow.InFlight() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

package gui

import (
	"time"

	"screen-shooter/internal/capture"
	"screen-shooter/internal/logger"
	"screen-shooter/internal/pipeline"
	"screen-shooter/internal/settings"
	"screen-shooter/internal/upload"

	"fyne.io/fyne/v2"
)

type Manager struct {
	window     fyne.Window
	controller *Controller
	view       *View
	logger     logger.Logger
	isShutdown bool
}

type Dependencies struct {
	Coordinator   *pipeline.Coordinator
	Grabber       capture.Grabber
	Flow          *upload.Flow
	Store         settings.Store
	CaptureOffset time.Duration
	// DefaultDelay is the capture delay in seconds used before one is stored.
	DefaultDelay int
}

func NewManager(window fyne.Window, deps Dependencies, log logger.Logger) (*Manager, error) {
	manager := &Manager{
		window:     window,
		logger:     log,
		isShutdown: false,
	}

	manager.initializeComponents(deps)

	log.Info("GUIManager", "initialized", map[string]interface{}{
		"window_title": window.Title(),
	})

	return manager, nil
}

func (m *Manager) initializeComponents(deps Dependencies) {
	m.view = NewView(m.window)
	m.controller = NewController(deps.Coordinator, deps.Store, m.logger)
	m.controller.SetDefaultDelay(deps.DefaultDelay)

	m.view.SetController(m.controller)
	m.controller.SetView(m.view)

	trigger := capture.NewTrigger(deps.Grabber, windowToggle{window: m.window}, deps.CaptureOffset, m.logger)
	m.controller.SetTrigger(trigger)
	m.controller.SetFlow(deps.Flow)
}

// MenuItem returns a menu entry that dispatches action.
func (m *Manager) MenuItem(label string, action Action) *fyne.MenuItem {
	return fyne.NewMenuItem(label, func() {
		m.controller.Dispatch(action)
	})
}

func (m *Manager) Controller() *Controller {
	return m.controller
}

func (m *Manager) Show() {
	m.view.Show()
	m.logger.Info("GUIManager", "GUI displayed", nil)
}

func (m *Manager) Shutdown() {
	if m.isShutdown {
		return
	}

	m.isShutdown = true
	m.logger.Info("GUIManager", "shutdown initiated", nil)

	if m.controller != nil {
		m.controller.Shutdown()
	}

	if m.view != nil {
		m.view.Shutdown()
	}

	m.logger.Info("GUIManager", "shutdown completed", nil)
}

package app

import (
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"

	"github.com/warrenhq/warren/internal/api"
	"github.com/warrenhq/warren/internal/logging"
	"github.com/warrenhq/warren/internal/session"
)

// App is the client-side coordinator, responsible for wiring together the
// store client, the tab session, and the sync coordinator, and managing
// their lifecycle.
type App struct {
	fyneApp fyne.App
	window  fyne.Window
	config  *Config
	logger  *slog.Logger

	store       api.Store
	session     *session.Manager
	coordinator *Coordinator
}

// New creates an App instance with the given configuration. This performs
// all dependency injection and wiring.
func New(fyneApp fyne.App, cfg *Config) (*App, error) {
	logger, err := logging.InitLogger("warren", cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	logger.Info("initializing Warren client",
		slog.Bool("debug", cfg.Debug),
		slog.String("server_url", cfg.ServerURL),
	)

	store := api.NewClient(cfg.ServerURL, logger)
	sess := session.NewManager(store, logger)
	coordinator := NewCoordinator(store, sess, logger)

	return &App{
		fyneApp:     fyneApp,
		config:      cfg,
		logger:      logger,
		store:       store,
		session:     sess,
		coordinator: coordinator,
	}, nil
}

// Run starts the application and displays the main window. This is a
// blocking call that runs the Fyne event loop.
func (a *App) Run(window fyne.Window) {
	a.window = window
	a.logger.Info("starting application")
	a.window.ShowAndRun()
}

// Store returns the persistence collaborator.
func (a *App) Store() api.Store { return a.store }

// Session returns the tab session manager.
func (a *App) Session() *session.Manager { return a.session }

// Coordinator returns the sync coordinator.
func (a *App) Coordinator() *Coordinator { return a.coordinator }

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger { return a.logger }

// FyneApp returns the underlying Fyne application instance.
func (a *App) FyneApp() fyne.App { return a.fyneApp }

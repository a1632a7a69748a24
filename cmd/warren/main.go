// Command warren runs the desktop client.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"fyne.io/fyne/v2/app"

	warrenApp "github.com/warrenhq/warren/internal/app"
	"github.com/warrenhq/warren/internal/ui"
)

func main() {
	if err := runApp(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// runApp is the main application entry point with panic recovery.
func runApp() (err error) {
	// Temporary stdout logger for bootstrap errors, before the file logger
	// is up.
	tempLogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	defer func() {
		if r := recover(); r != nil {
			tempLogger.Error("panic recovered",
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
			)
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	tempLogger.Info("starting Warren client")

	cfg := warrenApp.ConfigFromEnv()

	fyneApp := app.NewWithID("com.warrenhq.warren")

	application, err := warrenApp.New(fyneApp, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	mainWindow := ui.NewMainWindow(application.FyneApp(), application)
	mainWindow.Start()

	// Blocking until the window closes.
	application.Run(mainWindow.Window())

	application.Logger().Info("application shutdown complete")
	return nil
}

// Package logging configures the client's structured logger.
package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
)

const (
	// maxLogSize is the maximum log file size before rotation (5 MB).
	maxLogSize = 5 * 1024 * 1024
	// maxLogBackups is the number of rotated log files to keep.
	maxLogBackups = 3
)

// InitLogger initializes a structured logger writing JSON logs to the
// platform's conventional location:
//   - macOS:   ~/Library/Logs/warren/warren.log
//   - Linux:   ~/.local/state/warren/warren.log
//   - Windows: %LOCALAPPDATA%\warren\Logs\warren.log
//
// When debug is true the logger uses DEBUG level and records source
// locations.
func InitLogger(appName string, debug bool) (*slog.Logger, error) {
	logPath, err := logFilePath(appName)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	if err := rotateIfNeeded(logPath); err != nil {
		return nil, fmt.Errorf("rotate log file: %w", err)
	}

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", logPath, err)
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	})), nil
}

// rotateIfNeeded shifts current.log → .1, .1 → .2, and so on, dropping the
// oldest backup, once the current file exceeds maxLogSize.
func rotateIfNeeded(logPath string) error {
	info, err := os.Stat(logPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if info.Size() < maxLogSize {
		return nil
	}

	for i := maxLogBackups; i >= 1; i-- {
		src := fmt.Sprintf("%s.%d", logPath, i)
		if i == maxLogBackups {
			os.Remove(src)
			continue
		}
		os.Rename(src, fmt.Sprintf("%s.%d", logPath, i+1))
	}
	return os.Rename(logPath, logPath+".1")
}

// logFilePath returns the platform-specific log file location.
func logFilePath(appName string) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, "Library", "Logs", appName, appName+".log"), nil
	case "linux":
		return filepath.Join(homeDir, ".local", "state", appName, appName+".log"), nil
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(homeDir, "AppData", "Local")
		}
		return filepath.Join(localAppData, appName, "Logs", appName+".log"), nil
	default:
		return "", fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

// NewNopLogger returns a logger that discards everything, for tests.
func NewNopLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

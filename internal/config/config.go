package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"

	"github.com/okravets/nagadai/internal/remote"
)

const appName = "nagadai"

type RuntimeConfig struct {
	DBPath               string
	LogPath              string
	SchedulerBuffer      int
	DesktopNotifications bool
	ConfirmDelay         time.Duration
	DemoAPIBaseURL       string
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DBPath:               filepath.Join(xdg.DataHome, appName, "todos.db"),
		LogPath:              filepath.Join(xdg.StateHome, appName, appName+".log"),
		SchedulerBuffer:      64,
		DesktopNotifications: true,
		ConfirmDelay:         500 * time.Millisecond,
		DemoAPIBaseURL:       remote.DefaultBaseURL,
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("NAGADAI_DB_PATH")); v != "" {
		cfg.DBPath = v
	}
	if v := strings.TrimSpace(os.Getenv("NAGADAI_LOG_PATH")); v != "" {
		cfg.LogPath = v
	}
	if v, ok := getEnvInt("NAGADAI_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	if v, ok := getEnvBool("NAGADAI_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvInt("NAGADAI_CONFIRM_DELAY_MS"); ok && v >= 0 {
		cfg.ConfirmDelay = time.Duration(v) * time.Millisecond
	}
	if v := strings.TrimSpace(os.Getenv("NAGADAI_DEMO_API_URL")); v != "" {
		cfg.DemoAPIBaseURL = v
	}
	return cfg
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}

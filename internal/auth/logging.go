package auth

import (
	"os"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
)

var (
	authLogger     *log.Logger
	authLoggerOnce sync.Once
	loggingEnabled = strings.EqualFold(os.Getenv("LOGGING"), "true")
)

// EnableAuthLogging switches auth attempt logging on or off
func EnableAuthLogging(enabled bool) {
	loggingEnabled = enabled
}

func getAuthLogger() *log.Logger {
	authLoggerOnce.Do(func() {
		authLogger = log.New()
		authLogger.SetFormatter(&log.JSONFormatter{})
		authLogger.SetLevel(log.DebugLevel)

		if err := os.MkdirAll("log", 0o750); err != nil {
			authLogger.SetOutput(os.Stderr)
			return
		}
		f, err := os.OpenFile("log/auth.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			authLogger.SetOutput(os.Stderr)
			return
		}
		authLogger.SetOutput(f)
	})
	return authLogger
}

// LogAuthAttempt records an authentication attempt as a JSON line in log/auth.log.
// level: debug|info|warning|error
// authType: Local|Google|Logout
// status: Success|Fail
// identifier and message are optional.
func LogAuthAttempt(level string, authType string, status string, identifier string, message string) {
	if !loggingEnabled {
		return
	}

	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}

	entry := getAuthLogger().WithFields(log.Fields{
		"auth_type": authType,
		"status":    status,
	})
	if identifier != "" {
		entry = entry.WithField("identifier", identifier)
	}
	if message == "" {
		message = "auth attempt"
	}
	entry.Log(lvl, message)
}

package logger

import (
	"strings"

	"github.com/fabricio-odn/portfolio/config"
	"github.com/sirupsen/logrus"
)

// Setup will configure logrus logger
func Setup(cfg config.Config) {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if cfg.Logs.OutputLogsAsJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	logrus.SetLevel(StringToLogrusLogType(cfg.Logs.Level))
}

// StringToLogrusLogType will convert string to the right logrus level
// "warning" is accepted next to "warn" because it is logrus' own name for the level (logrus.WarnLevel.String())
// unknown values fall back to error so a typo never makes the logs noisier
func StringToLogrusLogType(logLevel string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(logLevel)) {
	case "error":
		return logrus.ErrorLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "info":
		return logrus.InfoLevel
	case "debug":
		return logrus.DebugLevel
	default:
		return logrus.ErrorLevel
	}
}

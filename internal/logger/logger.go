package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. It is usable before Init with logrus
// defaults.
var Log = logrus.New()

type serviceNameHook struct {
	service string
}

func (h *serviceNameHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *serviceNameHook) Fire(entry *logrus.Entry) error {
	entry.Message = "[" + h.service + "] " + entry.Message
	return nil
}

// Init configures output, format and level. level is a logrus level name;
// an empty or unknown value falls back to info.
func Init(service, level string) {
	Log.SetOutput(os.Stdout)

	lvl := strings.ToLower(strings.TrimSpace(level))
	if lvl == "" {
		lvl = "info"
	}
	parsed, err := logrus.ParseLevel(lvl)
	if err != nil {
		Log.Warnf("Invalid LOG_LEVEL '%s', defaulting to INFO", level)
		parsed = logrus.InfoLevel
	}
	Log.SetLevel(parsed)

	Log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	hooks := make(logrus.LevelHooks)
	hooks.Add(&serviceNameHook{service: service})
	Log.ReplaceHooks(hooks)
}

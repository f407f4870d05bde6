package logging

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

const sentryFlushTimeout = 2 * time.Second

var sentryLevels = map[logrus.Level]sentry.Level{
	logrus.PanicLevel: sentry.LevelFatal,
	logrus.FatalLevel: sentry.LevelFatal,
	logrus.ErrorLevel: sentry.LevelError,
	logrus.WarnLevel:  sentry.LevelWarning,
	logrus.InfoLevel:  sentry.LevelInfo,
	logrus.DebugLevel: sentry.LevelDebug,
	logrus.TraceLevel: sentry.LevelDebug,
}

// SentryHook forwards log entries of the given levels to sentry.
type SentryHook struct {
	hub    *sentry.Hub
	levels []logrus.Level
}

func NewSentryHook(levels []logrus.Level) *SentryHook {
	return &SentryHook{
		hub:    sentry.CurrentHub(),
		levels: levels,
	}
}

func (h *SentryHook) Levels() []logrus.Level {
	return h.levels
}

func (h *SentryHook) Fire(entry *logrus.Entry) error {
	event := sentry.NewEvent()
	event.Level = sentryLevels[entry.Level]
	event.Message = entry.Message
	event.Timestamp = entry.Time
	event.Logger = "logrus"

	for k, v := range entry.Data {
		if k == logrus.ErrorKey {
			if err, ok := v.(error); ok {
				event.Exception = append(event.Exception, sentry.Exception{
					Type:  fmt.Sprintf("%T", err),
					Value: err.Error(),
				})
				continue
			}
		}
		event.Extra[k] = v
	}

	h.hub.CaptureEvent(event)
	if entry.Level <= logrus.FatalLevel {
		h.hub.Flush(sentryFlushTimeout)
	}
	return nil
}

package logging

import (
	"io"
	"os"
	"strings"

	"github.com/2beens/workoutcal/pkg"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const defaultMaxSizeMB = 50

type LoggerSetupParams struct {
	LogFileName      string
	LogToStdout      bool
	LogLevel         string
	LogFormatJSON    bool
	Environment      string
	Release          string
	SentryEnabled    bool
	SentryDSN        string
	SentryServerName string
	// size of one log file before it is rotated, defaults to 50MB
	MaxSizeMB int
	// rotated files to keep, 0 keeps all
	MaxBackups int
}

// Setup configures the global logrus logger: formatter, level, sentry hook
// and output (STDOUT, a rotating file, or both).
func Setup(params LoggerSetupParams) {
	if params.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	logrus.SetLevel(GetLevel(params.LogLevel))

	if params.SentryEnabled {
		setupSentry(params)
	}

	out, desc := output(params)
	logrus.SetOutput(out)
	logrus.Infof("writing logs to %s, level: %s", desc, logrus.GetLevel())
}

func setupSentry(params LoggerSetupParams) {
	err := sentry.Init(sentry.ClientOptions{
		Environment:      params.Environment,
		Release:          params.Release,
		Dsn:              params.SentryDSN,
		TracesSampleRate: 1.0,
		ServerName:       params.SentryServerName,
	})
	if err != nil {
		logrus.Errorf("sentry.Init: %s", err)
		return
	}

	logrus.AddHook(NewSentryHook([]logrus.Level{
		logrus.PanicLevel,
		logrus.FatalLevel,
		logrus.ErrorLevel,
	}))
	logrus.Infoln("Sentry set up successfully")
}

func output(params LoggerSetupParams) (io.Writer, string) {
	if params.LogFileName == "" {
		return os.Stdout, "STDOUT"
	}

	fileName := params.LogFileName
	if !strings.HasSuffix(fileName, ".log") {
		fileName += ".log"
	}
	maxSize := params.MaxSizeMB
	if maxSize <= 0 {
		maxSize = defaultMaxSizeMB
	}
	fileLogger := &lumberjack.Logger{
		Filename:   fileName,
		MaxSize:    maxSize,
		LocalTime:  false, // UTC file names
		Compress:   true,
		MaxBackups: params.MaxBackups,
	}

	if params.LogToStdout {
		return pkg.NewCombinedWriter(os.Stdout, fileLogger), fileName + " and STDOUT"
	}
	return fileLogger, fileName
}

// GetLevel maps a config level name to a logrus level. Unknown names
// give trace, so a typo never hides logs.
func GetLevel(level string) logrus.Level {
	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return logrus.TraceLevel
	}
	return parsed
}

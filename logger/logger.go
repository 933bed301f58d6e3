package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/wahid1099/generate-qa/config"
)

// New builds the process logger. Output always goes to stdout; when LogDir is
// set it is also written to a rotating app.log in that directory.
func New(cfg *config.Config) (*logrus.Logger, error) {
	log := logrus.New()

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", cfg.LogLevel)
	}
	log.SetLevel(level)

	if cfg.Debug {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	var out io.Writer = os.Stdout
	if cfg.LogDir != "" {
		if err := os.MkdirAll(cfg.LogDir, os.ModePerm); err != nil {
			return nil, errors.Wrap(err, "failed to create log directory")
		}

		logFile := &lumberjack.Logger{
			Filename:   filepath.Join(cfg.LogDir, "app.log"),
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
		}
		out = io.MultiWriter(os.Stdout, logFile)
	}
	log.SetOutput(out)

	return log, nil
}

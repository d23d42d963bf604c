// Package log writes diagnostics to a daily file under the logs directory.
// Nothing is written unless logs.write is set; the player owns the terminal.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/melodeck/melodeck/filesystem"
	"github.com/melodeck/melodeck/key"
	"github.com/melodeck/melodeck/where"
	logrus "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	fileLayout = "2006-01-02"
	fileExt    = ".log"
)

var logger = newLogger(io.Discard)

func newLogger(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	return l
}

// Setup opens today's log file and prunes files older than logs.keep_days.
func Setup() error {
	if !viper.GetBool(key.LogsWrite) {
		logger = newLogger(io.Discard)
		return nil
	}

	dir := where.Logs()
	now := time.Now()
	prune(dir, now, viper.GetInt(key.LogsKeepDays))

	path := filepath.Join(dir, now.Format(fileLayout)+fileExt)
	f, err := filesystem.API().OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	l := newLogger(f)
	if viper.GetBool(key.LogsJson) {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	logger = l
	return nil
}

// prune removes dated log files older than keep days. keep <= 0 keeps everything.
func prune(dir string, now time.Time, keep int) {
	if keep <= 0 {
		return
	}

	entries, err := filesystem.API().ReadDir(dir)
	if err != nil {
		return
	}

	cutoff := now.AddDate(0, 0, -keep)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, fileExt) {
			continue
		}

		day, err := time.ParseInLocation(fileLayout, strings.TrimSuffix(name, fileExt), now.Location())
		if err != nil || !day.Before(cutoff) {
			continue
		}
		_ = filesystem.API().Remove(filepath.Join(dir, name))
	}
}

func Error(args ...any) {
	logger.Error(args...)
}

func Errorf(format string, args ...any) {
	logger.Errorf(format, args...)
}

func Warn(args ...any) {
	logger.Warn(args...)
}

func Warnf(format string, args ...any) {
	logger.Warnf(format, args...)
}

func Info(args ...any) {
	logger.Info(args...)
}

func Infof(format string, args ...any) {
	logger.Infof(format, args...)
}

func Debug(args ...any) {
	logger.Debug(args...)
}

func Debugf(format string, args ...any) {
	logger.Debugf(format, args...)
}

func Tracef(format string, args ...any) {
	logger.Tracef(format, args...)
}

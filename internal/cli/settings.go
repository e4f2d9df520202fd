package cli

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	envPrefix = "SWITCHSCAN"

	configFlagName   = "config"
	logFileFlagName  = "log-file"
	logLevelFlagName = "log-level"

	configPathKey    = "config"
	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	// stderrLogFile sends colored logs to stderr instead of a file
	stderrLogFile = "-"

	defaultLogFilename   = "switchscan.log"
	defaultLogLevel      = "info"
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

func init() {
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configPathKey, "")
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// logFilename returns the configured log file, never empty
func logFilename() string {
	if name := strings.TrimSpace(viper.GetString(logFilenameKey)); name != "" {
		return name
	}
	return defaultLogFilename
}

// newLogHandler builds the handler for the configured destination. The TUI
// owns the terminal, so "-" is only useful with stderr redirected.
func newLogHandler(logPath string, level slog.Level) (slog.Handler, io.Closer) {
	if logPath == stderrLogFile {
		return tint.NewHandler(colorable.NewColorableStderr(), &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
		}), nopCloser{}
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}
	return slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     level,
	}), logWriter
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// configureLogger sets the default slog logger. The returned closer releases
// the log file.
func configureLogger() io.Closer {
	level := parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	handler, closer := newLogHandler(logFilename(), level)
	slog.SetDefault(slog.New(handler))
	return closer
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	promclient "github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/aescanero/bevforge/internal/config"
	"github.com/aescanero/bevforge/pkg/adapters/metrics/prometheus"
)

var (
	// Version is set by build flags
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr, os.Environ()); err != nil {
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer, environ []string) error {
	app := kingpin.New("bevforge-settings", "Resolve and print the shared BevForge settings")
	app.Version(Version)
	app.UsageWriter(stderr)
	app.ErrorWriter(stderr)

	envFile := app.Flag("env-file", "Path to the env file (empty to skip)").Default(config.DefaultEnvFile).String()
	requireEnvFile := app.Flag("require-env-file", "Fail when the env file is missing").Bool()
	format := app.Flag("format", "Output format").Default("text").Enum(formatText, formatJSON, formatYAML, formatEnv)
	showSecret := app.Flag("show-secret", "Print the secret key in clear").Bool()
	explain := app.Flag("explain", "Show which source supplied each key").Bool()
	logLevel := app.Flag("log-level", "Log level").Default("info").Enum("debug", "info", "warn", "error")
	textfile := app.Flag("textfile", "Write Prometheus textfile metrics to this path").String()

	if _, err := app.Parse(args); err != nil {
		fmt.Fprintf(stderr, "Failed to parse flags: %v\n", err)
		return err
	}

	logger := initLogger(*logLevel, stderr)
	defer logger.Sync()

	logger.Debug("starting bevforge-settings",
		zap.String("version", Version),
		zap.String("build_time", BuildTime))

	loader := config.NewLoader(
		config.WithEnvFile(*envFile),
		config.WithRequiredEnvFile(*requireEnvFile),
		config.WithEnviron(func() []string { return environ }),
	)

	res, err := loader.Resolve()
	if err != nil {
		logger.Error("failed to load settings", zap.Error(err), zap.String("env_file", *envFile))
		return err
	}

	cfg, err := config.Coerce(res)
	if err != nil {
		logger.Error("failed to load settings", zap.Error(err), zap.String("env_file", *envFile))
		return err
	}

	logger.Info("settings loaded", zap.Object("settings", cfg), zap.String("env_file", *envFile))

	if cfg.UsesPlaceholderSecret() && cfg.AppEnv != "dev" {
		logger.Warn("placeholder secret key in use outside dev", zap.String("app_env", cfg.AppEnv))
	}

	var origins map[string]config.Source
	if *explain {
		origins = res.Origins
	}

	if *textfile != "" {
		reg := promclient.NewRegistry()
		prometheus.NewCollector(reg).Observe(cfg)
		if err := prometheus.WriteTextfile(*textfile, reg); err != nil {
			logger.Error("failed to export metrics", zap.Error(err), zap.String("path", *textfile))
			return err
		}
		logger.Debug("metrics written", zap.String("path", *textfile))
	}

	display := cfg
	if !*showSecret {
		display = cfg.Redacted()
	}

	if err := render(stdout, *format, display, origins); err != nil {
		logger.Error("failed to render settings", zap.Error(err))
		return err
	}

	return nil
}

// initLogger initializes the logger based on log level
func initLogger(level string, w io.Writer) *zap.Logger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(w),
		zap.NewAtomicLevelAt(zapLevel),
	)

	return zap.New(core)
}

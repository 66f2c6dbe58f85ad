package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-formguard/pkg/config"
)

var (
	// Global flags
	verbose    bool
	logLevel   string
	logFile    string
	configPath string

	logger = zap.NewNop()
)

// errFormInvalid marks a run that found empty required fields. The notice has
// already been printed, so main only sets the exit code.
var errFormInvalid = errors.New("form has empty required fields")

var rootCmd = &cobra.Command{
	Use:   "formguard",
	Short: "Check that required form fields hold a value before submission",
	Long: `formguard blocks form submissions whose required fields are empty.

It can check a rendered HTML page, prompt for a form interactively, derive the
required fields of an OpenAPI operation, or guard submission endpoints over HTTP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		built, err := buildLogger(verbose, logLevel, logFile)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = built
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file instead of stderr")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Configuration file (or set "+config.EnvConfigPath+")")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fieldsCmd)
	rootCmd.AddCommand(fillCmd)
	rootCmd.AddCommand(serveCmd)
}

func buildLogger(verbose bool, level, file string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if strings.TrimSpace(level) != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, err
		}
		cfg.Level = zap.NewAtomicLevelAt(parsed)
	}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if strings.TrimSpace(file) != "" {
		cfg.OutputPaths = []string{file}
	}
	return cfg.Build()
}

// loadConfig reads --config, then FORMGUARD_CONFIG. Without either the
// defaults apply and no forms are configured.
func loadConfig() (*config.Config, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = strings.TrimSpace(os.Getenv(config.EnvConfigPath))
	}
	if path == "" {
		return config.Parse(nil)
	}
	return config.Load(path)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errFormInvalid) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/riskintel/dpd-analytics/internal/analysis"
	"github.com/riskintel/dpd-analytics/internal/config"
	"github.com/riskintel/dpd-analytics/internal/server"
	"github.com/riskintel/dpd-analytics/pkg/constants"
	"github.com/riskintel/dpd-analytics/pkg/ingest"
	"github.com/riskintel/dpd-analytics/pkg/output"
	"github.com/riskintel/dpd-analytics/pkg/validation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is set at build time via -ldflags.
var version = "dev"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info" // Default to info level
	}

	// Parse log level
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	// Determine output format
	format := loggingConfig.Format
	if format == "" {
		format = "json" // Default to JSON for production
	}

	// Configure encoder
	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	// Configure output file if specified
	if loggingConfig.OutputFile != "" {
		// Ensure the directory exists
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		// Test if we can create/write to the file
		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", "", "path to configuration file (optional)")
	inputFlag := flag.String("input", "", "path to delinquency CSV override")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	serveFlag := flag.Bool("serve", false, "run the HTTP analysis API instead of one-shot analysis")
	addressFlag := flag.String("address", "", "listen address override for serve mode")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	// Initialize logging based on config and CLI override
	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Display any configuration warnings
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	if *serveFlag {
		address := conf.ServerAddress()
		if *addressFlag != "" {
			address = *addressFlag
		}
		handler := server.NewHandler(logger, conf, version)
		logger.Info("starting analysis API",
			zap.String("op", "main"),
			zap.String("address", address),
		)
		if err := http.ListenAndServe(address, handler); err != nil {
			logger.Fatal("server stopped",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		return
	}

	// Determine input path (CLI override takes precedence over config)
	inputPath := conf.Input.Path
	if *inputFlag != "" {
		inputPath = *inputFlag
	}
	if inputPath == "" {
		logger.Fatal("no input file; provide -input or set input.path in the config",
			zap.String("op", "main"),
		)
	}

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty // Default to pretty format
	}

	err = validation.ValidateOutputFormat(outputFormat)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	// Read the delinquency file into typed account series.
	reader := ingest.NewReader(logger, conf.MissingMarkers())
	accounts, err := reader.ReadFile(inputPath)
	if err != nil {
		logger.Fatal("failed to read delinquency file",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// Surface soft data issues before analysis.
	for _, account := range accounts {
		for _, warning := range validation.ValidateSeries(account) {
			logger.Warn("Input warning: "+warning,
				zap.String("op", "main"),
			)
		}
	}

	// Run the analysis to get the risk profiles.
	engine := analysis.NewEngine(logger, analysis.Options{
		Lookahead: conf.Lookahead(),
		TierTable: conf.TierTable(),
	})
	profiles := engine.AnalyzeBatch(accounts)

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(os.Stdout, profiles)
	case constants.OutputFormatCSV:
		output.CsvFormat(os.Stdout, profiles)
	case constants.OutputFormatJSON:
		if err := output.JSONFormat(os.Stdout, profiles); err != nil {
			logger.Fatal("failed to write output",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}
}

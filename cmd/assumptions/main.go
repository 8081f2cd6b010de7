package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fincast/assumptions/internal/assemble"
	"github.com/fincast/assumptions/internal/config"
	"github.com/fincast/assumptions/internal/engine"
	"github.com/fincast/assumptions/internal/excel"
	"github.com/fincast/assumptions/internal/forms"
	"github.com/fincast/assumptions/internal/server"
	"github.com/fincast/assumptions/pkg/constants"
	"github.com/fincast/assumptions/pkg/document"
	"github.com/fincast/assumptions/pkg/output"
	"github.com/fincast/assumptions/pkg/validation"
)

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
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	importPath := flag.String("import", "", "path to a business-input workbook to import instead of the config prefill")
	outputFormatFlag := flag.String("output-format", "", "type of output override: json, yaml")
	outputFile := flag.String("output", "", "write the assembled document to a file instead of stdout")
	runForecast := flag.Bool("forecast", false, "submit the assembled document to the configured engine")
	exportPath := flag.String("export-xlsx", "", "export the engine statements to a workbook (implies -forecast)")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	serve := flag.Bool("serve", false, "run the HTTP server instead of a one-shot assembly")
	serverConfigPath := flag.String("server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	flag.Parse()

	if *serve {
		runServer(*serverConfigPath, *logLevel)
		return
	}

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

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatJSON
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	// Build form state from the imported workbook or the config prefill.
	var state *forms.State
	if *importPath != "" {
		state, err = excel.ImportBusinessInputFile(*importPath)
		if err != nil {
			logger.Fatal("failed to import workbook",
				zap.String("op", "main"),
				zap.String("path", *importPath),
				zap.Error(err),
			)
		}
	} else {
		state = forms.FromDocument(&conf.Prefill)
	}

	doc := assemble.New(logger).Assemble(state)

	// Display advisory warnings without blocking output.
	for _, warning := range validation.ValidateDocument(doc) {
		logger.Warn("Document warning: "+warning,
			zap.String("op", "main"),
		)
	}

	if err := writeDocument(doc, outputFormat, *outputFile); err != nil {
		logger.Fatal("failed to write document",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	if *runForecast || *exportPath != "" {
		if conf.Engine.URL == "" {
			logger.Fatal("no forecasting engine configured",
				zap.String("op", "main"),
			)
		}
		client := engine.NewClient(conf.Engine.URL, conf.Engine.TimeoutDuration(), logger)
		result, err := client.Calculate(context.Background(), doc)
		if err != nil {
			logger.Fatal("engine calculation failed",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}

		if *exportPath != "" {
			err = excel.SaveStatements(*exportPath, result, excel.ExportMeta{
				ModelName:  "Financial Model",
				ExportDate: doc.GeneratedAt,
			})
			if err != nil {
				logger.Fatal("failed to export statements",
					zap.String("op", "main"),
					zap.String("path", *exportPath),
					zap.Error(err),
				)
			}
			logger.Info("exported statements",
				zap.String("op", "main"),
				zap.String("path", *exportPath),
			)
		} else if err := output.Write(os.Stdout, outputFormat, result); err != nil {
			logger.Fatal("failed to write forecast result",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}
}

func writeDocument(doc *document.Document, format, path string) error {
	if path == "" {
		return output.Write(os.Stdout, format, doc)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file, %w", err)
	}
	defer f.Close()
	return output.Write(f, format, doc)
}

func runServer(configPath, logLevelOverride string) {
	cfg, err := server.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", configPath, err)
		os.Exit(1)
	}

	logger, err := initializeLogger(cfg.Logging, logLevelOverride)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	var client *engine.Client
	if cfg.Engine.URL != "" {
		client = engine.NewClient(cfg.Engine.URL, cfg.Engine.TimeoutDuration(), logger)
	}

	handler := server.NewHandler(logger, client, cfg.UploadSizeBytes(), version)
	logger.Info("starting server",
		zap.String("op", "main"),
		zap.String("address", cfg.Address),
	)
	if err := http.ListenAndServe(cfg.Address, handler); err != nil {
		logger.Fatal("server stopped",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}

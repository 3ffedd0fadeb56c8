package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/Aman-s12345/go-routescope/internal/analyzer"
	"github.com/Aman-s12345/go-routescope/internal/config"
	"github.com/Aman-s12345/go-routescope/internal/generator"
	"github.com/Aman-s12345/go-routescope/internal/observability"
	"github.com/Aman-s12345/go-routescope/internal/server"
	"github.com/Aman-s12345/go-routescope/internal/watcher"
)

func main() {
	defaults := config.Default()

	// cmd line flags
	var (
		configPath   = flag.String("config", "", "Path to configuration file (json or yaml)")
		projectPath  = flag.String("project", defaults.ProjectPath, "Path to the project root")
		outputPath   = flag.String("output", defaults.OutputPath, "Output file path")
		outputFormat = flag.String("format", defaults.OutputFormat, "Output format (json|yaml)")
		report       = flag.String("report", defaults.Report, "Report type (routes|openapi)")
		manifest     = flag.String("manifest", "", "Route manifest file; routes/ is scanned when empty")
		serverURL    = flag.String("server", defaults.ServerURL, "Server URL for the openapi report")
		title        = flag.String("title", defaults.Title, "API title")
		version      = flag.String("version", defaults.Version, "API version")
		description  = flag.String("description", defaults.Description, "API description")
		listenAddr   = flag.String("listen", defaults.ListenAddr, "Listen address in serve mode")
		logLevel     = flag.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
		logJSON      = flag.Bool("log-json", false, "Log in JSON format")
		serve        = flag.Bool("serve", false, "Serve route listings over HTTP")
		watch        = flag.Bool("watch", false, "Regenerate the report when sources change")
		help         = flag.Bool("h", false, "Show help")
	)
	flag.Parse()

	if *help {
		flag.PrintDefaults()
		return
	}

	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "WARNING: %v\n", err)
	}

	cfg := defaults
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	cfg.ApplyEnv()

	// explicitly set flags win over file and environment
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "project":
			cfg.ProjectPath = *projectPath
		case "output":
			cfg.OutputPath = *outputPath
		case "format":
			cfg.OutputFormat = *outputFormat
		case "report":
			cfg.Report = *report
		case "manifest":
			cfg.Manifest = *manifest
		case "server":
			cfg.ServerURL = *serverURL
		case "title":
			cfg.Title = *title
		case "version":
			cfg.Version = *version
		case "description":
			cfg.Description = *description
		case "listen":
			cfg.ListenAddr = *listenAddr
		case "log-level":
			cfg.LogLevel = *logLevel
		case "log-json":
			cfg.LogJSON = *logJSON
		case "serve":
			cfg.Serve = *serve
		case "watch":
			cfg.Watch = *watch
		}
	})

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogJSON, os.Stderr)

	if err := cfg.Validate(); err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}

	if _, err := os.Stat(cfg.ProjectPath); os.IsNotExist(err) {
		logger.Fatalf("Project path does not exist: %s", cfg.ProjectPath)
	}

	// Check for controllers directory
	controllersPath := filepath.Join(cfg.ProjectPath, analyzer.ControllersDir)
	if _, err := os.Stat(controllersPath); os.IsNotExist(err) {
		logger.Warnf("Controllers directory not found at: %s", controllersPath)
	} else {
		logger.Infof("Controllers directory found: %s", controllersPath)
	}

	registry, err := buildRegistry(cfg)
	if err != nil {
		logger.Fatalf("Failed to load route registry: %v", err)
	}

	metrics := observability.NewMetrics(prometheus.NewRegistry())
	routeAnalyzer := analyzer.New(analyzer.Options{
		Logger:   logger,
		Recorder: metrics,
	})
	specGenerator := generator.New(generator.Config{
		Title:       cfg.Title,
		Version:     cfg.Version,
		Description: cfg.Description,
		ServerURL:   cfg.ServerURL,
		Logger:      logger,
	})

	run := &runner{
		cfg:       cfg,
		registry:  registry,
		analyzer:  routeAnalyzer,
		generator: specGenerator,
		log:       logger,
	}

	if err := run.writeReport(); err != nil {
		logger.Fatalf("Failed to write output: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch {
	case cfg.Serve:
		if cfg.Watch {
			go run.watch(ctx)
		}
		srv := server.New(server.Options{
			Addr:        cfg.ListenAddr,
			ProjectPath: cfg.ProjectPath,
			Registry:    registry,
			Analyzer:    routeAnalyzer,
			Generator:   specGenerator,
			Metrics:     metrics,
			Logger:      logger,
		})
		if err := srv.Run(ctx); err != nil {
			logger.Fatalf("Server error: %v", err)
		}
	case cfg.Watch:
		run.watch(ctx)
	}
}

func buildRegistry(cfg config.Config) (analyzer.Registry, error) {
	if cfg.Manifest != "" {
		manifest, err := analyzer.LoadManifest(cfg.Manifest)
		if err != nil {
			return nil, err
		}
		return manifest, nil
	}
	return analyzer.NewScanRegistry(cfg.ProjectPath), nil
}

type runner struct {
	cfg       config.Config
	registry  analyzer.Registry
	analyzer  *analyzer.Analyzer
	generator *generator.Generator
	log       *logrus.Logger
}

func (r *runner) watch(ctx context.Context) {
	w := watcher.New(r.cfg.ProjectPath, watcher.DefaultDebounce, r.log)
	err := w.Run(ctx, func() {
		if err := r.writeReport(); err != nil {
			r.log.WithError(err).Error("failed to regenerate report")
		}
	})
	if err != nil {
		r.log.WithError(err).Error("watch mode stopped")
	}
}

func (r *runner) writeReport() error {
	routes := r.analyzer.List(r.registry, r.cfg.ProjectPath)

	var doc interface{} = routes
	if r.cfg.Report == "openapi" {
		doc = r.generator.Generate(routes)
	}

	if err := writeOutput(doc, r.cfg.OutputPath, r.cfg.OutputFormat); err != nil {
		return err
	}

	// Verify the file was created
	info, err := os.Stat(r.cfg.OutputPath)
	if err != nil {
		return fmt.Errorf("output file was not created: %w", err)
	}
	r.log.WithFields(logrus.Fields{
		"file":   r.cfg.OutputPath,
		"routes": len(routes),
		"bytes":  info.Size(),
	}).Info("report written")
	return nil
}

func writeOutput(doc interface{}, outputPath, format string) error {
	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	return generator.Encode(file, doc, format)
}

package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/license-counter/internal/application"
	"github.com/eugenenazirov/license-counter/internal/config"
	"github.com/eugenenazirov/license-counter/internal/logging"
)

const (
	exitOK      = 0
	exitFailure = 1
)

var signalNotify = signal.Notify

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	kingpinApp := kingpin.New("license-counter", "License Counter - determines the minimum number of licenses an application needs")
	kingpinApp.UsageWriter(stderr)
	kingpinApp.ErrorWriter(stderr)
	configFile := kingpinApp.Flag("config", "Path to YAML configuration file").String()
	logLevel := kingpinApp.Flag("log-level", "Log level (debug, info, warn, error)").String()

	countCmd := kingpinApp.Command("count", "Count the licenses required by an installation report")
	reportPath := countCmd.Arg("report", "Path to the CSV installation report").Required().String()
	applicationIDFlag := countCmd.Flag("application-id", "Application to count licenses for").Default("-1").Int()
	verbose := countCmd.Flag("verbose", "Print a summary of the analysed report").Short('v').Bool()

	serveCmd := kingpinApp.Command("serve", "Serve the license counting HTTP API")
	port := serveCmd.Flag("port", "HTTP port exposed by the service").String()
	rateLimitRPSFlag := serveCmd.Flag("rate-limit-rps", "Requests per second allowed (set 0 to disable)").Default("-1").Float64()
	rateLimitBurstFlag := serveCmd.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").Default("-1").Int()

	command, err := kingpinApp.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "license-counter: %v\n", err)
		return exitFailure
	}

	overrides := &config.CLIOverrides{
		ConfigFile: *configFile,
	}

	if *logLevel != "" {
		overrides.LogLevel = logLevel
	}

	if *applicationIDFlag >= 0 {
		overrides.ApplicationID = applicationIDFlag
	}

	if *port != "" {
		overrides.Port = port
	}

	if *rateLimitRPSFlag >= 0 {
		overrides.RateLimitRPS = rateLimitRPSFlag
	}

	if *rateLimitBurstFlag >= 0 {
		overrides.RateLimitBurst = rateLimitBurstFlag
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		fmt.Fprintf(stderr, "license-counter: failed to load configuration: %v\n", err)
		return exitFailure
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "license-counter: failed to initialize logger: %v\n", err)
		return exitFailure
	}
	defer func() {
		_ = logger.Sync()
	}()

	app, err := application.New(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize application", zap.Error(err))
		return exitFailure
	}

	switch command {
	case countCmd.FullCommand():
		return count(app, *reportPath, *verbose, stdout, stderr, logger)
	case serveCmd.FullCommand():
		if err := app.Start(); err != nil {
			logger.Error("failed to start server", zap.Error(err))
			return exitFailure
		}
		shutdown(app.Server(), cfg.ShutdownGracePeriod, logger)
		return exitOK
	}

	return exitFailure
}

func count(app *application.App, path string, verbose bool, stdout, stderr io.Writer, logger *zap.Logger) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := app.Count(ctx, path)
	if err != nil {
		logger.Error("license count failed", zap.Error(err))
		fmt.Fprintln(stderr, "license-counter: failed to count licenses")
		return exitFailure
	}

	if verbose {
		fmt.Fprintf(stdout, "records: %d\nskipped: %d\nusers: %d\nconflicts: %d\nlicenses: %d\n",
			result.Records, result.Skipped, result.Users, len(result.Conflicts), result.Licenses)
		return exitOK
	}

	fmt.Fprintln(stdout, result.Licenses)
	return exitOK
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}

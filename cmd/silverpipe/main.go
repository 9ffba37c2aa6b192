// Package main implements the silverpipe batch loader.
//
// One invocation runs one complete batch: read the six raw CRM/ERP tables
// from the source schema, cleanse them (normalize coded values, deduplicate,
// derive effective dates and category keys, repair dates and amounts), fully
// replace the six destination tables, and audit the result. The binary takes
// no flags; everything comes from the JSON config file and environment
// overrides (see internal/config).
//
// Exit codes: 0 on a complete run, 1 on configuration problems or a failed
// run.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"silverpipe/internal/config"
	"silverpipe/internal/loadrun"
	"silverpipe/internal/logging"
	"silverpipe/internal/storage"
	_ "silverpipe/internal/storage/all"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Optional; real deployments set the environment directly.
	_ = godotenv.Load()

	log, err := logging.New(os.Getenv("SILVERPIPE_LOG_LEVEL"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		return 1
	}
	defer log.Sync()

	pipe, err := config.Load(config.Path())
	if err != nil {
		log.Errorw("config load failed", "error", err)
		return 1
	}
	issues := config.Validate(pipe)
	for _, iss := range issues {
		if iss.Severity == config.SeverityError {
			log.Errorw("invalid config", "path", iss.Path, "message", iss.Message)
		} else {
			log.Warnw("config warning", "path", iss.Path, "message", iss.Message)
		}
	}
	if config.HasError(issues) {
		return 1
	}
	job := pipe.Job
	if job == "" {
		job = "silverpipe"
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	source, err := storage.New(ctx, storage.Config{
		Kind:      pipe.Source.Kind,
		DSN:       pipe.Source.DSN,
		BatchSize: pipe.Runtime.BatchSize,
		Options:   pipe.Source.Options,
	})
	if err != nil {
		log.Errorw("source connect failed", "kind", pipe.Source.Kind, "error", err)
		return 1
	}
	defer source.Close()

	target, err := storage.New(ctx, storage.Config{
		Kind:      pipe.Target.Kind,
		DSN:       pipe.Target.DSN,
		BatchSize: pipe.Runtime.BatchSize,
		Options:   pipe.Target.Options,
	})
	if err != nil {
		log.Errorw("target connect failed", "kind", pipe.Target.Kind, "error", err)
		return 1
	}
	defer target.Close()

	runner := &loadrun.Runner{
		Source:           source,
		Target:           target,
		SourceSchema:     pipe.Source.Schema,
		TargetSchema:     pipe.Target.Schema,
		AutoCreate:       pipe.Target.AutoCreateTable,
		BlockOnViolation: pipe.Audit.BlockOnViolation,
		Job:              job,
		Log:              log,
	}

	res, runErr := runner.Run(ctx)
	loadrun.RenderReport(os.Stdout, res)
	if runErr != nil {
		return 1
	}
	return 0
}

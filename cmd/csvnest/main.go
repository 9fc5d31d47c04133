package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"csvnest/internal/config"
	"csvnest/internal/datasource/file"
	"csvnest/internal/importer"
	"csvnest/internal/metrics"
	"csvnest/internal/metrics/prompush"
	"csvnest/internal/storage"

	// register all storage backends with the factory; the spec selects one.
	_ "csvnest/internal/storage/all"
)

// main is the entry point for the csvnest binary. It loads the import spec,
// optionally initializes a metrics backend, and executes the run.
func main() {
	var (
		cfgPath           string
		metricsBackendFlg string
		pushGatewayURLFlg string
		validate          bool
	)

	flag.StringVar(&cfgPath, "config", "configs/import.json", "import spec JSON path")
	flag.StringVar(&metricsBackendFlg, "metrics-backend", "", "metrics backend (pushgateway, none); env METRICS_BACKEND when empty")
	flag.StringVar(&pushGatewayURLFlg, "pushgateway-url", "", "Pushgateway base URL (overrides env PUSHGATEWAY_URL)")
	flag.BoolVar(&validate, "validate", false, "validate the spec and exit")
	verbose := flag.Bool("v", false, "enable verbose logs")
	flag.Parse()

	f, err := os.Open(cfgPath)
	if err != nil {
		fatalf("open config: %v", err)
	}
	var spec config.Import
	err = json.NewDecoder(f).Decode(&spec)
	f.Close()
	if err != nil {
		fatalf("decode config: %v", err)
	}

	issues := config.ValidateImport(spec)
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	if config.HasError(issues) {
		fatalf("spec is invalid: %s", cfgPath)
	}
	if validate {
		log.Printf("spec is valid: %s", cfgPath)
		return
	}
	if !file.Exists(spec.Source.File.Path) {
		fatalf("input file not found: %s", spec.Source.File.Path)
	}

	setupMetrics(spec, metricsBackendFlg, pushGatewayURLFlg, *verbose)
	defer func() {
		if err := metrics.Flush(); err != nil {
			log.Printf("metrics: flush error: %v", err)
		}
	}()

	ctx := context.Background()
	repo, err := storage.New(ctx, storage.Config{
		Kind:            spec.Storage.Kind,
		DSN:             spec.Storage.DB.DSN,
		Table:           spec.Storage.DB.Table,
		AutoCreateTable: spec.Storage.DB.AutoCreateTable,
	})
	if err != nil {
		fatalf("open storage: %v", err)
	}
	defer repo.Close()

	if spec.Storage.DB.AutoCreateTable {
		if err := repo.EnsureSchema(ctx); err != nil {
			fatalf("ensure schema: %v", err)
		}
	}

	if _, err := importer.Run(ctx, spec, repo); err != nil {
		fatalf("%v", err)
	}
}

// setupMetrics resolves the metrics backend from the flag, falling back to
// the METRICS_BACKEND env var, and installs it. Unknown backends disable
// metrics rather than failing the run.
func setupMetrics(spec config.Import, backendName, gwURL string, verbose bool) {
	if backendName == "" {
		backendName = os.Getenv("METRICS_BACKEND")
	}
	switch backendName {
	case "pushgateway":
		if gwURL == "" {
			gwURL = os.Getenv("PUSHGATEWAY_URL")
		}
		if gwURL == "" {
			gwURL = "http://localhost:9091"
		}
		job := spec.Job
		if job == "" {
			job = "csvnest"
		}
		b, err := prompush.NewBackend(job, gwURL)
		if err != nil {
			log.Printf("metrics: failed to init pushgateway backend: %v; using nop", err)
			return
		}
		log.Printf("metrics: backend=pushgateway url=%s job=%s", gwURL, job)
		metrics.SetBackend(b)

	case "", "none":
		if verbose {
			log.Printf("metrics: disabled")
		}

	default:
		log.Printf("metrics: unknown backend %q; metrics disabled", backendName)
	}
}

func fatalf(format string, args ...any) {
	log.Printf(format, args...)
	os.Exit(1)
}

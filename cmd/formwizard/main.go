package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/goliatone/go-formwizard/internal/config"
	"github.com/goliatone/go-formwizard/internal/logging"
	"github.com/goliatone/go-formwizard/pkg/definition"
	"github.com/goliatone/go-formwizard/pkg/openapi"
	"github.com/goliatone/go-formwizard/pkg/prompt"
	"github.com/goliatone/go-formwizard/pkg/step"
	"github.com/goliatone/go-formwizard/pkg/validation"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

func main() {
	configPath := flag.String("config", "", "config file (YAML)")
	wizardID := flag.String("wizard", "", "wizard to run (overrides config)")
	defsDir := flag.String("definitions", "", "directory with wizard definitions (bundled CRM catalogue if empty)")
	openapiPath := flag.String("openapi", "", "OpenAPI document providing schemaRef components")
	format := flag.String("format", "", "output format: json, form or pretty")
	output := flag.String("output", "", "output file (stdout if empty)")
	logLevel := flag.String("log-level", "", "log level (overrides config)")
	list := flag.Bool("list", false, "list available wizards and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "wizard":
			cfg.Wizard = *wizardID
		case "definitions":
			cfg.Definitions.Dir = *defsDir
		case "openapi":
			cfg.Definitions.OpenAPI = *openapiPath
		case "format":
			cfg.Output.Format = *format
		case "log-level":
			cfg.Log.Level = *logLevel
		}
	})

	logger, err := logging.New(logging.Options{Level: cfg.Log.Level, Out: os.Stderr, ErrOut: os.Stderr})
	if err != nil {
		log.Fatalf("Failed to configure logging: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	store, collaborators, err := loadDefinitions(ctx, cfg.Definitions)
	if err != nil {
		log.Fatalf("Failed to load definitions: %v", err)
	}

	if *list {
		for _, id := range store.IDs() {
			fmt.Println(id)
		}
		return
	}

	wiz, ok := store.Wizard(cfg.Wizard)
	if !ok {
		log.Fatalf("Unknown wizard %q (available: %s)", cfg.Wizard, strings.Join(store.IDs(), ", "))
	}

	catalog, err := validation.DefaultCatalog()
	if err != nil {
		log.Fatalf("Failed to load message catalog: %v", err)
	}
	messages := validation.Messages{
		Translator: catalog,
		Locale:     cfg.Locale,
		OnMissing: func(locale, key, fallback string, err error) string {
			logger.Debug().Err(err).Str("locale", locale).Str("key", key).Msg("missing translation")
			return fallback
		},
	}

	schemas, err := definition.Build(wiz, definition.BuildOptions{
		Collaborators: collaborators,
		Messages:      messages,
		Logger:        logger,
	})
	if err != nil {
		log.Fatalf("Failed to build wizard %q: %v", wiz.ID, err)
	}

	ctrl, err := wizard.New(schemas, wizard.WithLogger(logger))
	if err != nil {
		log.Fatalf("Failed to create wizard: %v", err)
	}
	unsubscribe := ctrl.Notifier().OnReadinessChange(func(ready bool) {
		logger.Debug().Bool("ready", ready).Str("wizard", wiz.ID).Msg("submit readiness changed")
	})
	defer unsubscribe()

	runner := prompt.New(
		prompt.WithOutputFormat(prompt.ParseOutputFormat(cfg.Output.Format)),
		prompt.WithLogger(logger),
	)
	payload, err := runner.Run(ctx, wiz, ctrl)
	if err != nil {
		if errors.Is(err, prompt.ErrAborted) || errors.Is(err, context.Canceled) {
			logger.Warn().Str("session", ctrl.SessionID()).Msg("wizard aborted")
			stop()
			os.Exit(130)
		}
		log.Fatalf("Failed to run wizard: %v", err)
	}

	logger.Debug().Str("session", ctrl.SessionID()).Str("content_type", runner.ContentType()).Int("bytes", len(payload)).Msg("record serialized")
	if *output != "" {
		if err := os.WriteFile(*output, payload, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Record written to %s\n", *output)
	} else {
		fmt.Println(string(payload))
	}
}

func loadDefinitions(ctx context.Context, cfg config.DefinitionsConfig) (*definition.Store, map[string]step.SchemaValidator, error) {
	fsys := definition.CatalogFS()
	if cfg.Dir != "" {
		fsys = os.DirFS(cfg.Dir)
	}

	store, err := definition.LoadFS(fsys)
	if err != nil {
		return nil, nil, err
	}

	var components *openapi.Components
	switch {
	case cfg.OpenAPI != "":
		components, err = openapi.LoadComponentsFile(ctx, cfg.OpenAPI)
	case cfg.Dir == "":
		components, err = openapi.LoadComponentsFS(ctx, fsys, definition.CatalogOpenAPI)
	default:
		return store, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("openapi components: %w", err)
	}
	return store, components.Validators(), nil
}

// Command instagen generates Instagram content packages for a topic and can
// serve the pipeline over HTTP.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/instagen/internal/api"
	"github.com/jonesrussell/instagen/internal/config"
	"github.com/jonesrussell/instagen/internal/domain"
	"github.com/jonesrussell/instagen/internal/imagegen"
	"github.com/jonesrussell/instagen/internal/llm"
	"github.com/jonesrussell/instagen/internal/logger"
	"github.com/jonesrussell/instagen/internal/pipeline"
	"github.com/jonesrussell/instagen/internal/storage"
)

var cfgFile string

func main() {
	rootCmd := &cobra.Command{
		Use:   "instagen",
		Short: "Instagram content generation pipeline",
		Long: `instagen chains a research, writing, review, and image prompt stage
through an LLM, generates images for the resulting prompts, and assembles
everything into a JSON content package.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./config.yml)")
	rootCmd.AddCommand(generateCommand())
	rootCmd.AddCommand(serveCommand())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app bundles everything a command needs after bootstrap.
type app struct {
	cfg          *config.Config
	log          logger.Logger
	orchestrator *pipeline.Orchestrator
	store        *storage.ResultStore
}

// bootstrap loads configuration and wires the pipeline.
func bootstrap() (*app, error) {
	path := config.Path(cfgFile)
	if path == "" {
		path = "config.yml"
	}
	if cfgFile == "" {
		// Without an explicit --config, a missing file means defaults + env.
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			path = ""
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	llmClient, err := llm.New(cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("create llm client: %w", err)
	}

	provider, err := imagegen.NewProvider(cfg.Images)
	if err != nil {
		return nil, fmt.Errorf("create image provider: %w", err)
	}
	imageClient := imagegen.NewClient(provider, cfg.Images, log)
	saver := imagegen.NewSaver(cfg.Images.OutputDir, &http.Client{Timeout: cfg.Images.Timeout}, log)

	return &app{
		cfg:          cfg,
		log:          log,
		orchestrator: pipeline.New(cfg, llmClient, imageClient, saver, log),
		store:        storage.NewResultStore(cfg.Output.ResultsDir),
	}, nil
}

func generateCommand() *cobra.Command {
	var topic string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a content package for a topic",
		RunE: func(cmd *cobra.Command, args []string) error {
			if topic == "" && len(args) > 0 {
				topic = args[0]
			}
			if topic == "" {
				return domain.ErrEmptyTopic
			}

			a, err := bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = a.log.Sync() }()

			pkg, err := a.orchestrator.Run(cmd.Context(), domain.Topic(topic))
			if err != nil {
				return err
			}

			path, err := a.store.Save(pkg)
			if err != nil {
				return err
			}

			fmt.Printf("Short caption:\n%s\n\n", pkg.ShortCaption)
			fmt.Printf("Long caption:\n%s\n\n", pkg.LongCaption)
			fmt.Printf("Hashtags: %d  Image prompts: %d  Saved images: %d\n",
				len(pkg.Hashtags), len(pkg.ImagePrompts), len(pkg.SavedImagePaths))
			fmt.Printf("Result saved to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&topic, "topic", "t", "", "topic to generate content for")
	return cmd
}

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(_ *cobra.Command, _ []string) error {
			a, err := bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = a.log.Sync() }()

			handler := api.NewHandler(a.orchestrator, a.store, a.cfg, a.log)
			server := api.NewServer(handler, a.cfg.Server, a.log)

			serverErrors := make(chan error, 1)
			go func() {
				serverErrors <- server.Start()
			}()

			shutdown := make(chan os.Signal, 1)
			signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

			select {
			case err := <-serverErrors:
				return err
			case sig := <-shutdown:
				a.log.Info("shutdown signal received", logger.String("signal", sig.String()))
				ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ReadTimeout)
				defer cancel()
				return server.Shutdown(ctx)
			}
		},
	}
}

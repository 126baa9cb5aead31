// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"repostats/internal/app/config"
	httpapi "repostats/internal/app/http"
	"repostats/internal/app/http/handler"
	"repostats/internal/gateway"
	"repostats/internal/metrics"
	"repostats/internal/usecase"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the analytics HTTP server",
	Long:  `Starts the HTTP server exposing the commit-activity, pull-request and code-frequency endpoints.`,
	Run: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.InheritedFlags().GetBool("verbose")

		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
			os.Exit(1)
		}

		logCfg := zap.NewProductionConfig()
		if verbose {
			logCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		}
		log, err := logCfg.Build()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
			os.Exit(1)
		}
		defer log.Sync()

		// Inject dependencies bottom-up: gateway, usecase, handlers, router.
		githubGateway, err := gateway.NewGitHubGateway(cfg.GitHubToken, cfg.GitHubAPIBase, cfg.UpstreamTimeout, log)
		if err != nil {
			log.Fatal("failed to create GitHub gateway", zap.Error(err))
		}
		statsSvc := usecase.NewService(githubGateway, log)
		m := metrics.New()

		h := handler.New(statsSvc, m, log)
		router := httpapi.NewRouter(h, m, log)

		srv := &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: cfg.UpstreamTimeout + 5*time.Second,
			IdleTimeout:  60 * time.Second,
		}

		go func() {
			log.Info("server starting", zap.String("addr", cfg.HTTPAddr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal("server error", zap.Error(err))
			}
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		log.Info("shutting down...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown error", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

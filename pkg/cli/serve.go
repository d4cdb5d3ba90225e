package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/chunpat/life-pulse-ai/pkg/cli/config"
	httpctrl "github.com/chunpat/life-pulse-ai/pkg/controller/http"
	"github.com/chunpat/life-pulse-ai/pkg/service/llm"
	"github.com/chunpat/life-pulse-ai/pkg/service/objectstore"
	"github.com/chunpat/life-pulse-ai/pkg/usecase"
	"github.com/chunpat/life-pulse-ai/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var jwtSecret string
	var uploadBucket string
	var appCfg config.AppConfig
	var repoCfg config.Repository
	var geminiCfg config.Gemini

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("LIFEPULSE_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "jwt-secret",
			Usage:       "Signing secret for auth tokens (required)",
			Required:    true,
			Sources:     cli.EnvVars("LIFEPULSE_JWT_SECRET"),
			Destination: &jwtSecret,
		},
		&cli.StringFlag{
			Name:        "upload-bucket",
			Usage:       "GCS bucket for log image uploads (upload endpoint disabled when empty)",
			Sources:     cli.EnvVars("LIFEPULSE_UPLOAD_BUCKET"),
			Destination: &uploadBucket,
		},
	}

	// Add shared config flags
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			settings, err := appCfg.Configure(c)
			if err != nil {
				return goerr.Wrap(err, "failed to load application configuration")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			ucOpts := []usecase.Option{
				usecase.WithJWTSecret([]byte(jwtSecret)),
				usecase.WithGuestMaxLogs(settings.GuestMaxLogs),
				usecase.WithLocation(settings.Location),
				usecase.WithLanguage(settings.Language),
				usecase.WithCategoryLabels(settings.Labels),
			}

			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize Gemini client")
			}
			if llmClient != nil {
				parseSvc, err := llm.NewParser(llmClient)
				if err != nil {
					return goerr.Wrap(err, "failed to initialize parse service")
				}
				insightSvc, err := llm.NewInsight(llmClient)
				if err != nil {
					return goerr.Wrap(err, "failed to initialize insight service")
				}
				ucOpts = append(ucOpts,
					usecase.WithParseService(parseSvc),
					usecase.WithInsightService(insightSvc),
				)
				logging.Default().Info("AI services enabled")
			} else {
				logging.Default().Warn("Gemini project not configured, AI parse and insight are disabled")
			}

			uc := usecase.New(repo, ucOpts...)

			var httpOpts []httpctrl.Options
			if uploadBucket != "" {
				store, err := objectstore.New(ctx, uploadBucket, objectstore.WithPrefix("uploads"))
				if err != nil {
					return goerr.Wrap(err, "failed to initialize object store")
				}
				defer func() {
					if err := store.Close(); err != nil {
						logging.Default().Error("failed to close object store", "error", err.Error())
					}
				}()
				httpOpts = append(httpOpts, httpctrl.WithObjectStore(store))
				logging.Default().Info("Image upload enabled", "bucket", uploadBucket)
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc, httpOpts...),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shut down server")
				}
			}

			return nil
		},
	}
}

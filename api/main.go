package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"argocd-status/api/config"
	"argocd-status/api/handler"
	"argocd-status/api/k8s"
	"argocd-status/api/logging"
	"argocd-status/api/metrics"
	"argocd-status/api/model"
)

var Version = "dev"

func main() {
	cmd := &cobra.Command{
		Use:           "argocd-status",
		Short:         "Serve a read-only summary of ArgoCD Applications",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			return serve(cfg)
		},
	}
	config.BindFlags(cmd.Flags())

	if err := cmd.Execute(); err != nil {
		logrus.Fatalf("argocd-status: %v", err)
	}
}

func serve(cfg *config.Config) error {
	log := logging.New(os.Stderr, cfg.LogLevel)

	if cfg.CaptainDomain == "" {
		log.Warn("CAPTAIN_DOMAIN is not set, application links will be incomplete")
	}

	dyn, err := k8s.NewClient(cfg.Kubeconfig, cfg.UpstreamTimeout, log)
	if err != nil {
		return err
	}

	m := metrics.New()
	h := handler.New(
		k8s.NewFetcher(dyn, cfg.PageSize),
		model.NewMapper(cfg.CaptainDomain, log),
		m,
		log,
		cfg.UpstreamTimeout,
	)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler.NewRouter(h, m.Handler(), cfg.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Infof("argocd-status %s listening", Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	log.Info("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

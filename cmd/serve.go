package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/abhisek/mathgen/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the generate endpoint over HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default from config, e.g. 0.0.0.0:8080)")
	serveCmd.Flags().String("output-dir", "", "Directory for generated PDFs when rendering is enabled")
}

func runServe(cmd *cobra.Command, _ []string) error {
	env, err := newEnv(cmd, true)
	if err != nil {
		return err
	}
	defer env.close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	outputDir, _ := cmd.Flags().GetString("output-dir")
	if outputDir == "" {
		outputDir = env.cfg.OutputDir
	}
	svc, err := env.service(ctx, outputDir)
	if err != nil {
		return err
	}

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = env.cfg.Addr()
	}

	gin.SetMode(gin.ReleaseMode)
	handler := api.NewHandler(svc, env.cfg.Server.Render, env.log)
	srv := &http.Server{
		Addr:              addr,
		Handler:           api.NewRouter(handler, env.log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		env.log.Info("server listening", "addr", addr, "render", env.cfg.Server.Render)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	env.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), env.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

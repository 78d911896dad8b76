package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"habittracker/internal/httpserver"
	"habittracker/internal/service"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the habit HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := openApp(ctx, opts)
			if err != nil {
				return err
			}
			defer a.close()
			if port != "" {
				a.cfg.Server.Port = port
			}
			return serve(ctx, a)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (default server.port)")
	return cmd
}

// serve 启动 HTTP 服务，加载数据后一直运行到 ctx 结束
func serve(ctx context.Context, a *app) error {
	log := a.logger
	if !a.cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	router := httpserver.NewRouter(httpserver.Deps{
		Store:      a.store,
		Backend:    a.backend,
		Auth:       service.NewAuthService(a.cfg.Auth),
		WindowDays: a.cfg.Stats.WindowDays,
		Logger:     log,
	})

	srv := &http.Server{
		Addr:              ":" + a.cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// 服务先起来，/readyz 在加载完成前返回 503
	a.store.Load(ctx)
	log.Info("habits server is fully initialized and running",
		zap.String("port", a.cfg.Server.Port),
		zap.String("storage_driver", a.cfg.Storage.Driver),
		zap.Bool("auth_enabled", a.cfg.Auth.Enabled()),
	)

	select {
	case err, ok := <-errCh:
		if ok {
			log.Error("HTTP server failed", zap.Error(err))
			return err
		}
	case <-ctx.Done():
	}

	// 优雅退出处理
	log.Info("Shutting down habits server gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	} else {
		log.Info("HTTP server stopped")
	}

	log.Info("habits server shutdown complete")
	return nil
}

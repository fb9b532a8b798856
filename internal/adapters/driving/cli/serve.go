package cli

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/scenechat/scenechat/internal/adapters/driving/httpapi"
	"github.com/scenechat/scenechat/internal/logger"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the chat API over HTTP",
	Long: `Starts the HTTP chat API. GET /new_session creates a session,
POST /chat runs one chat turn. Requires a built index when retrieval
is enabled; run "scenechat index" first.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	chat, cleanup, err := buildChatService(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	server := httpapi.NewServer(addr, chat)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

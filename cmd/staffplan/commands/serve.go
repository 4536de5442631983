package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"staffplan/internal/httpapi"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	servePort int
	serveOpen bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the REST API",
	RunE: func(cmd *cobra.Command, args []string) error {
		port := cfg.HTTPPort
		if cmd.Flags().Changed("port") {
			port = servePort
		}

		server := httpapi.New(httpapi.Config{
			Port:      port,
			Log:       log.Logger,
			Dashboard: dash,
			Charts:    cfg.EnableMermaidCharts,
		})

		errCh := make(chan error, 1)
		go func() {
			if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		if serveOpen || cfg.OpenBrowser {
			url := fmt.Sprintf("http://localhost:%d/api/session", port)
			browser.Stdout = os.Stderr
			if err := browser.OpenURL(url); err != nil {
				log.Warn().Err(err).Str("url", url).Msg("Failed to open browser")
			}
		}

		select {
		case err, ok := <-errCh:
			if ok {
				return err
			}
			return nil
		case <-cmd.Context().Done():
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(ctx)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "HTTP port (overrides HTTP_PORT)")
	serveCmd.Flags().BoolVar(&serveOpen, "open", false, "open the API in the default browser")
	rootCmd.AddCommand(serveCmd)
}

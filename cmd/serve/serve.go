package serve

import (
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/VolleyLord/pexels/internal/api"
	"github.com/VolleyLord/pexels/internal/app"
	"github.com/VolleyLord/pexels/internal/conf"
	"github.com/VolleyLord/pexels/internal/logging"
)

// Command creates the serve command for running the HTTP API server.
func Command(settings *conf.Settings) *cobra.Command {
	var accessLogPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := app.New(settings)
			if err != nil {
				return err
			}
			defer func() {
				_ = application.Close()
			}()

			var accessLog *slog.Logger
			if accessLogPath != "" {
				fileLog, closeLog, err := logging.NewFileLogger(accessLogPath, "api.access", slog.LevelInfo)
				if err != nil {
					return err
				}
				defer func() {
					_ = closeLog()
				}()
				accessLog = fileLog
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return api.NewServer(application, accessLog).Start(ctx)
		},
	}

	cmd.Flags().StringVar(&settings.Server.Host, "host", settings.Server.Host, "Address to listen on")
	cmd.Flags().IntVar(&settings.Server.Port, "port", settings.Server.Port, "Port to listen on")
	cmd.Flags().StringVar(&accessLogPath, "access-log", "", "Path to a rotating request log file")

	return cmd
}

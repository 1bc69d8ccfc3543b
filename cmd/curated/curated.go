package curated

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/VolleyLord/pexels/internal/app"
	"github.com/VolleyLord/pexels/internal/cli"
	"github.com/VolleyLord/pexels/internal/conf"
)

// Command creates the curated command for browsing the curated photo feed.
func Command(settings *conf.Settings) *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "curated",
		Short: "Browse the curated photo feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := app.New(settings)
			if err != nil {
				return err
			}
			defer func() {
				_ = application.Close()
			}()

			result, err := application.Loader.LoadPage(cmd.Context(), "", page, application.PageSize())
			if err != nil {
				return err
			}
			cli.PrintPage(os.Stdout, result)
			return nil
		},
	}

	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page number to load")

	return cmd
}

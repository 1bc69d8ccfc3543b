package search

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/VolleyLord/pexels/internal/app"
	"github.com/VolleyLord/pexels/internal/cli"
	"github.com/VolleyLord/pexels/internal/conf"
)

// Command creates the search command for querying photos by keyword.
func Command(settings *conf.Settings) *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search photos by keyword",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := app.New(settings)
			if err != nil {
				return err
			}
			defer func() {
				_ = application.Close()
			}()

			query := strings.Join(args, " ")
			result, err := application.Loader.LoadPage(cmd.Context(), query, page, application.PageSize())
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

package show

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/VolleyLord/pexels/internal/app"
	"github.com/VolleyLord/pexels/internal/cli"
	"github.com/VolleyLord/pexels/internal/conf"
	"github.com/VolleyLord/pexels/internal/errors"
)

// Command creates the show command for displaying a single photo.
func Command(settings *conf.Settings) *cobra.Command {
	var fromBookmarks bool

	cmd := &cobra.Command{
		Use:   "show [photo-id]",
		Short: "Show the details of a single photo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			photoID, err := strconv.Atoi(args[0])
			if err != nil {
				return errors.Newf("invalid photo id %q", args[0]).
					Category(errors.CategoryValidation).
					Component("cli").
					Build()
			}

			application, err := app.New(settings)
			if err != nil {
				return err
			}
			defer func() {
				_ = application.Close()
			}()

			photo, err := application.Details.Get(cmd.Context(), photoID, fromBookmarks)
			if err != nil {
				return err
			}
			cli.PrintPhoto(os.Stdout, photo)
			return nil
		},
	}

	cmd.Flags().BoolVar(&fromBookmarks, "bookmarks", false, "Resolve the photo from bookmarks only, without remote access")

	return cmd
}

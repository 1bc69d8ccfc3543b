package download

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/VolleyLord/pexels/internal/app"
	"github.com/VolleyLord/pexels/internal/conf"
	"github.com/VolleyLord/pexels/internal/errors"
)

// Command creates the download command for saving photos to disk.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download [photo-id]",
		Short: "Download a photo to the local filesystem",
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

			photo, err := application.Details.Get(cmd.Context(), photoID, false)
			if err != nil {
				return err
			}

			path, err := application.Downloader.Download(cmd.Context(), photo)
			if err != nil {
				return err
			}

			fmt.Printf("saved %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&settings.Download.Path, "output", "o", settings.Download.Path, "Directory to save the photo to")

	return cmd
}

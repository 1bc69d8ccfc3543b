package bookmarks

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/VolleyLord/pexels/internal/app"
	"github.com/VolleyLord/pexels/internal/cli"
	"github.com/VolleyLord/pexels/internal/conf"
	"github.com/VolleyLord/pexels/internal/errors"
)

// Command creates the bookmarks command group for listing and toggling
// bookmarked photos.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookmarks",
		Short: "Manage bookmarked photos",
	}

	cmd.AddCommand(listCommand(settings))
	cmd.AddCommand(toggleCommand(settings, "add", "Bookmark a photo", true))
	cmd.AddCommand(toggleCommand(settings, "remove", "Remove a photo bookmark", false))

	return cmd
}

func listCommand(settings *conf.Settings) *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List bookmarked photos",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := app.New(settings)
			if err != nil {
				return err
			}
			defer func() {
				_ = application.Close()
			}()

			result, err := application.Bookmarks.List(cmd.Context(), page, application.PageSize())
			if err != nil {
				return err
			}

			total, err := application.Bookmarks.Count(cmd.Context())
			if err != nil {
				return err
			}

			cli.PrintPage(os.Stdout, result)
			fmt.Printf("\n%d bookmarked photos\n", total)
			return nil
		},
	}

	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page number to load")

	return cmd
}

func toggleCommand(settings *conf.Settings, use, short string, bookmarked bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [photo-id]",
		Short: short,
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

			if err := application.Bookmarks.Toggle(cmd.Context(), photoID, bookmarked); err != nil {
				return err
			}

			if bookmarked {
				fmt.Printf("photo %d bookmarked\n", photoID)
			} else {
				fmt.Printf("photo %d bookmark removed\n", photoID)
			}
			return nil
		},
	}
}

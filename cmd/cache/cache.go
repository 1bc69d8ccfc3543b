package cache

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/VolleyLord/pexels/internal/app"
	"github.com/VolleyLord/pexels/internal/conf"
)

// Command creates the cache command group for inspecting and maintaining the
// local photo cache.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and maintain the local photo cache",
	}

	cmd.AddCommand(statsCommand(settings))
	cmd.AddCommand(sweepCommand(settings))
	cmd.AddCommand(clearCommand(settings))

	return cmd
}

func statsCommand(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := app.New(settings)
			if err != nil {
				return err
			}
			defer func() {
				_ = application.Close()
			}()

			total, err := application.Store.CountPhotos()
			if err != nil {
				return err
			}
			bookmarked, err := application.Store.CountBookmarked()
			if err != nil {
				return err
			}

			fmt.Printf("Database:   %s\n", settings.Cache.Path)
			fmt.Printf("Photos:     %d\n", total)
			fmt.Printf("Bookmarked: %d\n", bookmarked)
			fmt.Printf("Validity:   %s\n", settings.Cache.Validity)
			return nil
		},
	}
}

func sweepCommand(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Delete expired cache rows",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := app.New(settings)
			if err != nil {
				return err
			}
			defer func() {
				_ = application.Close()
			}()

			if err := application.Store.DeleteExpired(time.Now(), settings.Cache.Validity); err != nil {
				return err
			}
			fmt.Println("expired rows removed")
			return nil
		},
	}
}

func clearCommand(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all cache rows, bookmarks included",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := app.New(settings)
			if err != nil {
				return err
			}
			defer func() {
				_ = application.Close()
			}()

			if err := application.Store.DeleteAll(); err != nil {
				return err
			}
			fmt.Println("cache cleared")
			return nil
		},
	}
}

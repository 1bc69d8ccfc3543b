package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/VolleyLord/pexels/cmd/bookmarks"
	"github.com/VolleyLord/pexels/cmd/cache"
	"github.com/VolleyLord/pexels/cmd/curated"
	"github.com/VolleyLord/pexels/cmd/download"
	"github.com/VolleyLord/pexels/cmd/search"
	"github.com/VolleyLord/pexels/cmd/serve"
	"github.com/VolleyLord/pexels/cmd/show"
	"github.com/VolleyLord/pexels/internal/conf"
)

// RootCommand creates and returns the root command
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pexels",
		Short: "Pexels photo browser CLI",
	}

	// Set up the global flags for the root command.
	setupFlags(rootCmd, settings)

	subcommands := []*cobra.Command{
		curated.Command(settings),
		search.Command(settings),
		show.Command(settings),
		bookmarks.Command(settings),
		download.Command(settings),
		cache.Command(settings),
		serve.Command(settings),
	}

	rootCmd.AddCommand(subcommands...)

	return rootCmd
}

// setupFlags configures the global flags for the root command.
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) {
	rootCmd.PersistentFlags().BoolVarP(&settings.Debug, "debug", "d", settings.Debug, "Enable debug output")
	rootCmd.PersistentFlags().StringVar(&settings.Pexels.APIKey, "api-key", settings.Pexels.APIKey, "Pexels API key")
	rootCmd.PersistentFlags().StringVar(&settings.Cache.Path, "cache", settings.Cache.Path, "Path to the photo cache database")
	rootCmd.PersistentFlags().IntVar(&settings.Cache.PageSize, "page-size", settings.Cache.PageSize, "Photos per page")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("pexels.apikey", rootCmd.PersistentFlags().Lookup("api-key"))
	_ = viper.BindPFlag("cache.path", rootCmd.PersistentFlags().Lookup("cache"))
	_ = viper.BindPFlag("cache.pagesize", rootCmd.PersistentFlags().Lookup("page-size"))
}

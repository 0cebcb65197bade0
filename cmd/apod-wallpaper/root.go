package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/waeller/apod-wallpaper/internal/config"
)

// NewRootCmd creates the root command for apod-wallpaper.
func NewRootCmd() *cobra.Command {
	return newRootCmd(newApp())
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apod-wallpaper [today|random|yesterday|N]",
		Short: "Set the Astronomy Picture of the Day as wallpaper",
		Long: `apod-wallpaper fetches a page of the Astronomy Picture of the Day archive,
downloads the picture it shows and sets it as the desktop wallpaper.

The optional argument selects the page:
  (none)        today's picture
  random, r     a random day between 1995-06-16 and today
  yesterday, y  yesterday's picture
  N             the picture from N days ago

Days without a picture (videos, interactive pages) end the run without
changing the wallpaper.`,
		Args:          cobra.MaximumNArgs(1),
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRootCmd(cmd, args)
		},
	}

	cmd.Flags().StringP("dir", "d", config.NewConfig().DownloadDir,
		"Directory to store pictures in")
	cmd.Flags().Bool("pictures", false,
		"Store pictures in the user's Pictures directory ("+config.PicturesDir()+")")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each HTTP request")
	cmd.Flags().BoolP("progress", "p", false,
		"Show a download progress bar on stderr")
	cmd.Flags().BoolP("json", "j", false,
		"Print the run record as JSON instead of status lines")
	cmd.Flags().Uint64("seed", 0,
		"Seed for random mode (0 picks a random seed)")
	cmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

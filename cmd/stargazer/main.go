package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/stargazer/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cmd := newRootCmd(app.Run)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "stargazer: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd(runApp func(context.Context, app.Options) error) *cobra.Command {
	var opts app.Options

	cmd := &cobra.Command{
		Use:   "stargazer",
		Short: "Astronomy Picture of the Day screensaver",
		Long: `Stargazer shows a random Astronomy Picture of the Day in the terminal,
reads its explanation aloud, and moves on to the next one.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runApp(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "override config path (default ~/.config/stargazer/config.toml)")
	cmd.Flags().BoolVar(&opts.Headless, "headless", false, "run without the terminal UI, logging to stderr")
	cmd.Flags().BoolVar(&opts.Debug, "debug", false, "enable debug logging")
	cmd.Flags().BoolVar(&opts.Once, "once", false, "run a single cycle and exit (implies --headless)")
	cmd.Flags().StringVar(&opts.Date, "date", "", "show this YYYY-MM-DD date every cycle instead of a random one")
	return cmd
}

// marquee scrolls a line of text across the terminal while reading
// commands from stdin.
//
// Usage:
//
//	marquee
//	marquee --text "Now playing" --speed 80
//	marquee --config ./marquee.toml --log-file marquee.log --debug
//
// Commands are read one per line: help, start_marquee, stop_marquee,
// set_text, set_speed, status and exit.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/dkoosis/marquee/internal/config"
	"github.com/dkoosis/marquee/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := fang.Execute(ctx, root,
		fang.WithVersion(version.Version),
		fang.WithCommit(version.CommitHash),
		fang.WithErrorHandler(func(w io.Writer, _ fang.Styles, err error) {
			_, _ = fmt.Fprintf(w, "marquee: %v\n", err)
		}),
	); err != nil {
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var flags config.CliFlags

	cmd := &cobra.Command{
		Use:   "marquee",
		Short: "Scroll text across the terminal while accepting commands",
		Long: `marquee scrolls a line of text across the terminal. Commands typed
on stdin start, stop and retune the scroll while it runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fs := cmd.Flags()
			flags.TextSet = fs.Changed("text")
			flags.SpeedSet = fs.Changed("speed")
			flags.NoBannerSet = fs.Changed("no-banner")
			flags.DebugSet = fs.Changed("debug")
			flags.LogFileSet = fs.Changed("log-file")

			cfg, err := config.ResolveConfig(flags)
			if err != nil {
				return err
			}
			return runSession(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&flags.ConfigPath, "config", "", "Path to a YAML or TOML config file")
	fs.StringVar(&flags.Text, "text", config.DefaultText, "Initial marquee text")
	fs.IntVar(&flags.SpeedMS, "speed", config.DefaultSpeedMS, "Initial frame delay in milliseconds")
	fs.BoolVar(&flags.NoBanner, "no-banner", false, "Skip the welcome banner and help listing")
	fs.BoolVar(&flags.Debug, "debug", false, "Log at debug level (requires --log-file)")
	fs.StringVar(&flags.LogFile, "log-file", "", "Write diagnostic logs to this file")
	return cmd
}

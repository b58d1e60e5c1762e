package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rileyhilliard/cpuglow/internal/errors"
	"github.com/rileyhilliard/cpuglow/internal/monitor"
	"github.com/spf13/cobra"
)

// rootFlags holds the flags shared by the root command and its subcommands.
type rootFlags struct {
	Config   string
	Interval time.Duration
	Verbose  bool
	DryRun   bool
	Color    string
}

// NewRootCmd builds the cpuglow command tree.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "cpuglow <serial-device>",
		Short: "Show CPU load as a color on a serial LED",
		Long: `Sample CPU usage and stream it as a color to a display device on a
serial port. Low load shows green, half load yellow, full load red.

The link is reopened automatically if the device goes away. Press Ctrl-C
to stop.

Examples:
  cpuglow /dev/ttyUSB0
  cpuglow --interval 500ms /dev/ttyACM0
  cpuglow --dry-run --verbose /dev/null`,
		Args:          exactlyOneDevice,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand(cmd, args[0], flags)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.Config, "config", "", "config file (default ~/.config/cpuglow/config.yaml)")

	f := cmd.Flags()
	f.DurationVar(&flags.Interval, "interval", monitor.DefaultInterval, "CPU sampling interval (e.g., 1s, 500ms)")
	f.BoolVarP(&flags.Verbose, "verbose", "v", false, "print a status line for every color sent")
	f.BoolVar(&flags.DryRun, "dry-run", false, "log frames instead of opening the serial device")
	f.StringVar(&flags.Color, "color", "auto", "terminal color: auto, always, or never")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newInitCmd(flags))

	return cmd
}

// exactlyOneDevice rejects any argument count other than one.
func exactlyOneDevice(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New(errors.ErrArgs,
			fmt.Sprintf("Expected exactly one serial device, got %d arguments", len(args)),
			"Usage: cpuglow <serial-device>")
	}
	return nil
}

// shutdownGrace bounds how long a canceled run may take to unwind before
// the process exits anyway.
const shutdownGrace = 2 * time.Second

// Execute runs the CLI and exits the process. SIGINT and SIGTERM cancel the
// context, which ends the device loop cleanly with status 0.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})
	go watchInterrupt(ctx, stop, done, shutdownGrace, os.Exit)

	root := NewRootCmd()
	root.SetOut(os.Stdout)
	code := Run(ctx, root, os.Args[1:], os.Stderr)
	close(done)
	stop()
	os.Exit(code)
}

// watchInterrupt waits for ctx to be canceled by a signal, then restores
// default signal handling so a second Ctrl-C kills the process. If the run
// has not finished within grace, exit(0) is called.
func watchInterrupt(ctx context.Context, stop func(), done <-chan struct{}, grace time.Duration, exit func(int)) {
	select {
	case <-done:
		return
	case <-ctx.Done():
	}
	stop()

	t := time.NewTimer(grace)
	defer t.Stop()
	select {
	case <-done:
	case <-t.C:
		exit(0)
	}
}

// Run executes cmd with args and maps the result to a process exit code.
// Errors and usage go to stderr.
func Run(ctx context.Context, cmd *cobra.Command, args []string, stderr io.Writer) int {
	cmd.SetArgs(args)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	return exitCode(cmd, err, stderr)
}

func exitCode(cmd *cobra.Command, err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}

	msg := err.Error()
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	fmt.Fprint(stderr, msg)
	if errors.IsCode(err, errors.ErrArgs) {
		fmt.Fprintln(stderr)
		fmt.Fprint(stderr, cmd.UsageString())
	}
	return 1
}

package cli

import (
	"context"
	"os"

	"github.com/rileyhilliard/cpuglow/internal/config"
	"github.com/rileyhilliard/cpuglow/internal/errors"
	"github.com/rileyhilliard/cpuglow/internal/link"
	"github.com/rileyhilliard/cpuglow/internal/lock"
	"github.com/rileyhilliard/cpuglow/internal/logger"
	"github.com/rileyhilliard/cpuglow/internal/monitor"
	"github.com/rileyhilliard/cpuglow/internal/sampler"
	"github.com/rileyhilliard/cpuglow/internal/serial"
	"github.com/rileyhilliard/cpuglow/internal/ui"
	"github.com/spf13/cobra"
)

// runCommand loads config and supervises the device link until interrupted.
func runCommand(cmd *cobra.Command, device string, flags *rootFlags) error {
	cfg, err := config.Load(flags.Config, cmd.Flags())
	if err != nil {
		return err
	}

	ui.SetColorMode(cfg.Output.Color, os.Stdout)

	if !flags.DryRun {
		held, err := lock.Acquire(cfg.LockDir, device)
		if err != nil {
			return err
		}
		defer func() { _ = held.Release() }()
	}

	sup := newSupervisor(device, cfg, flags.DryRun, sampler.NewCPU(), cmd)
	cmd.Println("Press Ctrl-C to stop.")
	return sup.Run(cmd.Context())
}

// newSupervisor wires the sampler, loop, and link for device.
func newSupervisor(device string, cfg *config.Config, dryRun bool, s sampler.Sampler, cmd *cobra.Command) *link.Supervisor {
	var status *ui.StatusLine
	history := monitor.NewHistory(ui.DefaultSparklineWidth)
	if cfg.Output.Verbose {
		status = ui.NewStatusLine(cmd.OutOrStdout(), history)
	}

	open := func(ctx context.Context) (serial.Port, error) {
		if dryRun {
			return serial.NewLogSink(logger.NewEnvLogger("[dry-run]")), nil
		}
		portCfg := serial.DefaultConfig(device)
		portCfg.Baud = cfg.Baud
		portCfg.ReadTimeout = cfg.ReadTimeout
		return serial.Open(portCfg)
	}

	loopCfg := monitor.Config{
		Interval:      cfg.Interval,
		Warmup:        cfg.Warmup,
		AnnounceEvery: cfg.AnnounceEvery,
	}
	loopLog := logger.NewEnvLogger("[monitor]")

	newLoop := func(port serial.Port) link.Runner {
		opts := []monitor.Option{
			monitor.WithLogger(loopLog),
			monitor.WithHistory(history),
		}
		if status != nil {
			opts = append(opts, monitor.WithObserver(func(r monitor.Reading) {
				status.Print(r.Percent, r.Color)
			}))
		}
		return monitor.NewLoop(port, s, loopCfg, opts...)
	}

	display := ui.NewLinkDisplay(cmd.OutOrStdout(), device)
	notify := func(e link.Event) {
		switch e.Kind {
		case link.EventOpened:
			display.Connected(e.Attempt)
		case link.EventFailed:
			display.Lost(errors.Summarize(e.Err), e.Backoff)
		}
	}

	return link.New(open, newLoop,
		link.WithBackoff(cfg.Backoff),
		link.WithLogger(logger.NewEnvLogger("[link]")),
		link.WithNotify(notify),
	)
}

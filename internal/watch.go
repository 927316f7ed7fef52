package internal

import (
	"errors"

	"github.com/MrSnakeDoc/arbcheck/internal/logger"
	"github.com/MrSnakeDoc/arbcheck/internal/notifier"
	"github.com/MrSnakeDoc/arbcheck/internal/scheduler"

	"github.com/spf13/cobra"
)

var ErrRetryLater = errors.New("background check failed, retry later")

func NewWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the periodic background check",
		Long: `Check the device every configured interval and raise a notification when a
build with a higher ARB index than the installed one is known.

Nothing is fetched while notifications are disabled. Failed fetches are retried
with an exponential backoff.`,
		Example: "arbcheck watch\narbcheck watch --once --serial 8a3f2c1e",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			once, _ := cmd.Flags().GetBool("once")

			ctl, cfg, st, err := checkerFromContext(cmd)
			if err != nil {
				return err
			}

			job := &scheduler.Job{
				Checker:  ctl,
				Settings: st,
				Notifier: notifier.New(cfg.NotifyTerminal, cfg.NotifyCommand, commandRunner),
			}

			if once {
				outcome := job.RunOnce(cmd.Context())
				logger.Debug("background check: %s", outcome)
				if outcome == scheduler.Retry {
					return ErrRetryLater
				}
				return nil
			}

			logger.Info("Watching %s", cfg.BaseURL)
			return job.Run(cmd.Context())
		},
	}

	cmd.Flags().Bool("once", false, "Run a single background check and exit (for cron or systemd timers)")
	return cmd
}

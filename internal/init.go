package internal

import (
	"fmt"

	"github.com/MrSnakeDoc/arbcheck/internal/logger"
	"github.com/MrSnakeDoc/arbcheck/internal/middleware"
	"github.com/MrSnakeDoc/arbcheck/internal/printer"
	"github.com/MrSnakeDoc/arbcheck/internal/prompter"
	"github.com/MrSnakeDoc/arbcheck/internal/settings"
	"github.com/MrSnakeDoc/arbcheck/internal/utils"

	"github.com/spf13/cobra"
)

const welcome = `Welcome to arbcheck.

OnePlus builds can raise the anti-rollback index (ARB). Once a build with a
higher index is installed the fuse is burned, and flashing an older build can
hard-brick the device. arbcheck compares your build against the community
database and can warn you in the background when a higher index appears.
`

func NewInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Run the welcome step and choose background check settings",
		Long: `Run the welcome step.
This command will:
- Ask how often the background check runs
- Ask whether to notify when a build with a higher ARB index appears
- Mark the welcome step as done so that watch can start`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := middleware.Get[settings.Store](cmd, middleware.CtxKeySettings)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			cur, err := st.Load(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			p := printer.NewColorPrinter()
			_, _ = fmt.Fprintln(out, p.Title("%s", welcome))

			ask := prompter.New(cmd.InOrStdin(), out)

			options := utils.Map(settings.AllowedIntervals, func(h int) string {
				return fmt.Sprintf("every %dh", h)
			})
			def := 0
			for i, h := range settings.AllowedIntervals {
				if h == cur.CheckIntervalHours {
					def = i
				}
			}
			choice, err := ask.Choose("How often should the background check run?", options, def)
			if err != nil {
				return err
			}

			notify, err := ask.Confirm("Notify when a build with a higher ARB index appears?")
			if err != nil {
				return err
			}

			hours := settings.AllowedIntervals[choice]
			if err := st.SetCheckInterval(ctx, hours); err != nil {
				return err
			}
			if err := st.SetNotificationsEnabled(ctx, notify); err != nil {
				return err
			}
			if err := st.SetFirstRunCompleted(ctx); err != nil {
				return err
			}

			logger.Success("Initialized: checks every %dh, notifications %s", hours, onOff(notify))
			return nil
		},
	}
}

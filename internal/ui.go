package internal

import (
	"io"

	"github.com/MrSnakeDoc/arbcheck/internal/checker"
	"github.com/MrSnakeDoc/arbcheck/internal/logger"
	"github.com/MrSnakeDoc/arbcheck/internal/tui"

	"github.com/spf13/cobra"
)

func NewUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Interactive terminal interface",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctl, _, st, err := checkerFromContext(cmd)
			if err != nil {
				return err
			}

			stages := make(chan checker.Stage, 4)
			ctl.OnStage = func(s checker.Stage) {
				select {
				case stages <- s:
				default:
				}
			}

			// Log lines would tear the full-screen view.
			logger.SetOutput(io.Discard)
			defer logger.ConfigureLoggerFromFlags()

			return tui.Run(cmd.Context(), tui.Options{
				Checker:  ctl,
				Settings: st,
				Stages:   stages,
				Copy:     copyToClipboard,
			})
		},
	}
}

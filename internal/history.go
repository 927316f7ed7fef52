package internal

import (
	"github.com/MrSnakeDoc/arbcheck/internal/logger"
	"github.com/MrSnakeDoc/arbcheck/internal/middleware"
	"github.com/MrSnakeDoc/arbcheck/internal/report"

	"github.com/spf13/cobra"
)

func NewHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List every known build of the device with its ARB index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctl, _, _, err := checkerFromContext(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			rep, err := ctl.Execute(cmd.Context())
			if err != nil {
				report.RenderError(out, err)
				return middleware.ErrLogged
			}

			if rep.Result.Device == nil {
				logger.Warn("%s is not in the database yet", rep.Props.Model)
				return nil
			}
			return report.RenderHistory(out, *rep.Result.Device, rep.Result.MatchedKey)
		},
	}
}

package internal

import (
	"encoding/json"

	"github.com/MrSnakeDoc/arbcheck/internal/checker"
	"github.com/MrSnakeDoc/arbcheck/internal/errs"
	"github.com/MrSnakeDoc/arbcheck/internal/logger"
	"github.com/MrSnakeDoc/arbcheck/internal/middleware"
	"github.com/MrSnakeDoc/arbcheck/internal/report"

	"github.com/spf13/cobra"
)

func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check whether the installed build has fused the ARB index",
		Long: `Read the device model and build, fetch the database and print the verdict.
A failed check prints an error and exits non-zero; it is not retried.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			share, _ := cmd.Flags().GetBool("share")
			asJSON, _ := cmd.Flags().GetBool("json")
			if share && asJSON {
				return middleware.UsageError(errs.ShareWithJSON)
			}

			ctl, _, _, err := checkerFromContext(cmd)
			if err != nil {
				return err
			}
			ctl.OnStage = func(s checker.Stage) { logger.Debug("%s", s) }

			out := cmd.OutOrStdout()
			rep, err := ctl.Execute(cmd.Context())
			if err != nil {
				report.RenderError(out, err)
				return middleware.ErrLogged
			}

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rep)
			}

			report.RenderStatus(out, rep, rep.CheckedAt.UnixMilli())

			if share {
				msg := report.ShareMessage(rep)
				if err := copyToClipboard(msg); err != nil {
					logger.Warn("Clipboard unavailable (%v), share this instead:", err)
					_, _ = cmd.OutOrStdout().Write([]byte(msg + "\n"))
					return nil
				}
				logger.Success("Share message copied to clipboard")
			}
			return nil
		},
	}

	cmd.Flags().Bool("share", false, "Copy a shareable summary to the clipboard")
	cmd.Flags().Bool("json", false, "Print the report as JSON")
	return cmd
}

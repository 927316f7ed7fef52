package internal

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/MrSnakeDoc/arbcheck/internal/globalconfig"
	"github.com/MrSnakeDoc/arbcheck/internal/logger"
	"github.com/MrSnakeDoc/arbcheck/internal/middleware"

	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "arbcheck",
		Short: "Anti-rollback (ARB) index checker for OnePlus devices",
		Long: `arbcheck reads the model and build of a device and looks them up in the
community anti-rollback database to tell whether the installed build has fused
the anti-rollback index.

Device properties come from getprop, or from adb when --serial is given.`,
		Example: `arbcheck check
arbcheck check --serial 8a3f2c1e --share
arbcheck settings set notifications on`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logger.ConfigureLoggerFromFlags()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				globalconfig.PrintVersion(cmd.OutOrStdout())
				return nil
			}
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().Bool("version", false, "Print version information")

	pf := cmd.PersistentFlags()
	pf.CountVarP(&logger.FlagVerboseCount, "verbose", "V", "Increase verbosity (-V, -VV)")
	pf.BoolVarP(&logger.FlagQuiet, "quiet", "q", false, "Only print errors")
	pf.BoolVarP(&logger.FlagSilent, "silent", "s", false, "Print nothing but command output")
	pf.BoolVar(&logger.FlagJSON, "json-log", false, "Emit logs as JSON lines")
	pf.String(middleware.FlagConfig, "", "Config file (default ~/.config/arbcheck/config.yaml)")
	pf.String(middleware.FlagBaseURL, "", "Database base URL (https)")
	pf.String(middleware.FlagSerial, "", "Read properties over adb from this device serial")
	pf.String(middleware.FlagModel, "", "Use this model instead of reading ro.product.model")
	pf.String(middleware.FlagBuild, "", "Use this build instead of reading ro.build.display.id")

	RegisterSubCommands(cmd)

	return cmd
}

// Execute runs the CLI until completion or until SIGINT/SIGTERM.
func Execute() error {
	root := NewRootCmd()

	if os.Getenv("COMP_LINE") != "" ||
		(len(os.Args) > 1 && strings.HasPrefix(os.Args[1], "__complete")) {
		return root.Execute()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, middleware.ErrLogged) {
			logger.Debug("Failed to execute root command: %v", err)
		}
		return err
	}
	return nil
}

package middleware

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/arbcheck/internal/config"
	"github.com/MrSnakeDoc/arbcheck/internal/errs"
	"github.com/MrSnakeDoc/arbcheck/internal/settings"
	"github.com/spf13/cobra"
)

// OpenSettings puts the settings store named by the configuration in the
// command context. It must run after LoadConfig.
func OpenSettings(cmd *cobra.Command, args []string, next func(cmd *cobra.Command, args []string) error) error {
	cfg, err := Get[config.Config](cmd, CtxKeyConfig)
	if err != nil {
		return fmt.Errorf("settings: %w", err)
	}

	var st settings.Store = settings.NewFileStore(cfg.SettingsPath)
	Set(cmd, CtxKeySettings, st)
	return next(cmd, args)
}

// RequireInitialized refuses to run until the welcome step has been
// completed with `arbcheck init`.
func RequireInitialized(cmd *cobra.Command, args []string, next func(cmd *cobra.Command, args []string) error) error {
	st, err := Get[settings.Store](cmd, CtxKeySettings)
	if err != nil {
		return err
	}
	s, err := st.Load(commandContext(cmd))
	if err != nil {
		return err
	}
	if s.FirstRun {
		return UsageError(errs.NotInitialized, cmd.Name())
	}
	return next(cmd, args)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

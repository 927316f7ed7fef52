package internal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/MrSnakeDoc/arbcheck/internal/errs"
	"github.com/MrSnakeDoc/arbcheck/internal/logger"
	"github.com/MrSnakeDoc/arbcheck/internal/middleware"
	"github.com/MrSnakeDoc/arbcheck/internal/settings"
	"github.com/MrSnakeDoc/arbcheck/internal/utils"
	"github.com/MrSnakeDoc/arbcheck/internal/utils/pathutils"

	"github.com/spf13/cobra"
)

func NewSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show the background check settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := middleware.Get[settings.Store](cmd, middleware.CtxKeySettings)
			if err != nil {
				return err
			}
			s, err := st.Load(cmd.Context())
			if err != nil {
				return err
			}

			path := ""
			if fs, ok := st.(*settings.FileStore); ok {
				path = pathutils.Abbreviate(fs.Path())
			}

			table := logger.CreateTable(cmd.OutOrStdout(), []string{"Setting", "Value"})
			rows := [][]string{
				{"Check interval", fmt.Sprintf("%dh", s.CheckIntervalHours)},
				{"Notifications", onOff(s.NotificationsEnabled)},
				{"Initialized", onOff(!s.FirstRun)},
				{"Last check", utils.FormatLastCheck(s.LastCheckTimestamp)},
			}
			if path != "" {
				rows = append(rows, []string{"File", path})
			}
			for _, row := range rows {
				if err := table.Append(row); err != nil {
					return fmt.Errorf("an error occurred while appending to the table: %w", err)
				}
			}
			return table.Render()
		},
	}

	cmd.AddCommand(withConfig(newSettingsSetCmd)())
	return cmd
}

func newSettingsSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "set <interval|notifications> <value>",
		Short:     "Change a setting",
		Example:   "arbcheck settings set interval 6\narbcheck settings set notifications on",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"interval", "notifications"},
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := middleware.Get[settings.Store](cmd, middleware.CtxKeySettings)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			key, value := strings.ToLower(args[0]), strings.TrimSpace(args[1])

			switch key {
			case "interval":
				hours, convErr := strconv.Atoi(strings.TrimSuffix(value, "h"))
				if convErr != nil || settings.ValidateInterval(hours) != nil {
					return middleware.UsageError(errs.InvalidInterval, value)
				}
				if err := st.SetCheckInterval(ctx, hours); err != nil {
					return err
				}
				logger.Success("Background checks every %dh", hours)

			case "notifications":
				enabled, ok := parseToggle(value)
				if !ok {
					return middleware.UsageError(errs.InvalidToggle, value)
				}
				if err := st.SetNotificationsEnabled(ctx, enabled); err != nil {
					return err
				}
				logger.Success("Notifications %s", onOff(enabled))

			default:
				return middleware.UsageError(errs.UnknownSetting, args[0])
			}
			return nil
		},
	}
}

func parseToggle(v string) (bool, bool) {
	switch strings.ToLower(v) {
	case "on", "true", "yes", "1":
		return true, true
	case "off", "false", "no", "0":
		return false, true
	}
	return false, false
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

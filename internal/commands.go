package internal

import (
	"github.com/MrSnakeDoc/arbcheck/internal/checker"
	"github.com/MrSnakeDoc/arbcheck/internal/config"
	"github.com/MrSnakeDoc/arbcheck/internal/device"
	"github.com/MrSnakeDoc/arbcheck/internal/middleware"
	"github.com/MrSnakeDoc/arbcheck/internal/runner"
	"github.com/MrSnakeDoc/arbcheck/internal/service"
	"github.com/MrSnakeDoc/arbcheck/internal/settings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

var (
	withConfig      = middleware.UseMiddlewareChain(middleware.LoadConfig, middleware.OpenSettings)
	withInitialized = middleware.UseMiddlewareChain(middleware.LoadConfig, middleware.OpenSettings, middleware.RequireInitialized)
)

var defaultCommands = []middleware.CommandFactory{
	withConfig(NewCheckCmd),
	withConfig(NewHistoryCmd),
	withConfig(NewSettingsCmd),
	withConfig(NewInitCmd),
	withInitialized(NewWatchCmd),
	withConfig(NewUICmd),
}

// Replaced in tests.
var (
	commandRunner runner.CommandRunner = runner.ExecRunner{}
	httpClientFor                      = func(cfg config.Config) service.HTTPClient {
		return service.NewHTTPClient(cfg.HTTPTimeout)
	}
	copyToClipboard = clipboard.WriteAll
)

func RegisterSubCommands(cmd *cobra.Command) {
	for _, factory := range defaultCommands {
		cmd.AddCommand(factory())
	}
}

// checkerFromContext wires a checker from what the middlewares stored.
func checkerFromContext(cmd *cobra.Command) (*checker.CheckerController, config.Config, settings.Store, error) {
	cfg, err := middleware.Get[config.Config](cmd, middleware.CtxKeyConfig)
	if err != nil {
		return nil, config.Config{}, nil, err
	}
	st, err := middleware.Get[settings.Store](cmd, middleware.CtxKeySettings)
	if err != nil {
		return nil, config.Config{}, nil, err
	}

	reader := device.NewReader(commandRunner, cfg.Serial, cfg.DeviceTimeout)
	reader.Model, reader.Build = cfg.Model, cfg.Build

	return checker.New(cfg, reader, httpClientFor(cfg), st), cfg, st, nil
}

package middleware

import (
	"github.com/MrSnakeDoc/arbcheck/internal/config"
	"github.com/spf13/cobra"
)

// Persistent flag names shared by every command.
const (
	FlagConfig  = "config"
	FlagBaseURL = "base-url"
	FlagSerial  = "serial"
	FlagModel   = "model"
	FlagBuild   = "build"
)

var flagKeys = map[string]string{
	FlagBaseURL: config.KeyBaseURL,
	FlagSerial:  config.KeySerial,
	FlagModel:   config.KeyModel,
	FlagBuild:   config.KeyBuild,
}

// LoadConfig resolves the configuration and stores it in the command context.
// Only flags set on the command line override the file and environment.
func LoadConfig(cmd *cobra.Command, args []string, next func(cmd *cobra.Command, args []string) error) error {
	path := ""
	if f := cmd.Flag(FlagConfig); f != nil {
		path = f.Value.String()
	}

	overrides := map[string]any{}
	for name, key := range flagKeys {
		if f := cmd.Flag(name); f != nil && f.Changed {
			overrides[key] = f.Value.String()
		}
	}

	cfg, err := config.Load(path, overrides)
	if err != nil {
		return err
	}

	Set(cmd, CtxKeyConfig, cfg)
	return next(cmd, args)
}

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/MrSnakeDoc/arbcheck/internal/globalconfig"
	"github.com/MrSnakeDoc/arbcheck/internal/utils/pathutils"
	"github.com/spf13/viper"
)

const (
	KeyBaseURL        = "database.base_url"
	KeyHTTPTimeout    = "http.timeout"
	KeySerial         = "device.serial"
	KeyModel          = "device.model"
	KeyBuild          = "device.build"
	KeyDeviceTimeout  = "device.timeout"
	KeySettingsPath   = "settings.path"
	KeyNotifyCommand  = "notify.command"
	KeyNotifyTerminal = "notify.terminal"

	envPrefix = "ARBCHECK"
)

type Config struct {
	BaseURL     string
	HTTPTimeout time.Duration

	// Serial selects a device over adb; empty reads getprop locally.
	Serial        string
	Model         string
	Build         string
	DeviceTimeout time.Duration

	SettingsPath string

	// NotifyCommand is run with the title and body appended, e.g. notify-send.
	NotifyCommand  []string
	NotifyTerminal bool
}

func Default() Config {
	return Config{
		BaseURL:        globalconfig.DefaultBaseURL,
		HTTPTimeout:    globalconfig.HTTPTimeout,
		DeviceTimeout:  globalconfig.DeviceTimeout,
		NotifyTerminal: true,
	}
}

// Load resolves configuration with the precedence
// defaults < config file < ARBCHECK_* environment < overrides (flags).
// An explicit path must exist; the default one is optional.
func Load(path string, overrides map[string]any) (Config, error) {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		p, err := globalconfig.ConfigFilePath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}

	expanded, err := pathutils.Expand(path)
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := mergeConfigFile(v, expanded, explicit); err != nil {
		return Config{}, err
	}

	for k, val := range overrides {
		v.Set(k, val)
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(KeyBaseURL, d.BaseURL)
	v.SetDefault(KeyHTTPTimeout, d.HTTPTimeout)
	v.SetDefault(KeySerial, "")
	v.SetDefault(KeyModel, "")
	v.SetDefault(KeyBuild, "")
	v.SetDefault(KeyDeviceTimeout, d.DeviceTimeout)
	v.SetDefault(KeySettingsPath, "")
	v.SetDefault(KeyNotifyCommand, []string{})
	v.SetDefault(KeyNotifyTerminal, d.NotifyTerminal)
}

func mergeConfigFile(v *viper.Viper, path string, required bool) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		if required {
			return fmt.Errorf("config file %s not found", path)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("config path %s is a directory", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := v.MergeConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		BaseURL:        strings.TrimSpace(v.GetString(KeyBaseURL)),
		HTTPTimeout:    v.GetDuration(KeyHTTPTimeout),
		Serial:         strings.TrimSpace(v.GetString(KeySerial)),
		Model:          strings.TrimSpace(v.GetString(KeyModel)),
		Build:          strings.TrimSpace(v.GetString(KeyBuild)),
		DeviceTimeout:  v.GetDuration(KeyDeviceTimeout),
		SettingsPath:   strings.TrimSpace(v.GetString(KeySettingsPath)),
		NotifyCommand:  v.GetStringSlice(KeyNotifyCommand),
		NotifyTerminal: v.GetBool(KeyNotifyTerminal),
	}

	if cfg.BaseURL == "" {
		return Config{}, fmt.Errorf("%s must not be empty", KeyBaseURL)
	}
	if cfg.HTTPTimeout <= 0 {
		return Config{}, fmt.Errorf("invalid %s %s", KeyHTTPTimeout, cfg.HTTPTimeout)
	}
	if cfg.DeviceTimeout <= 0 {
		return Config{}, fmt.Errorf("invalid %s %s", KeyDeviceTimeout, cfg.DeviceTimeout)
	}

	if cfg.SettingsPath == "" {
		p, err := globalconfig.SettingsFilePath()
		if err != nil {
			return Config{}, err
		}
		cfg.SettingsPath = p
	}
	expanded, err := pathutils.Expand(cfg.SettingsPath)
	if err != nil {
		return Config{}, err
	}
	cfg.SettingsPath = expanded

	return cfg, nil
}

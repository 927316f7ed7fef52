package globalconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	AppName = "arbcheck"

	DefaultBaseURL   = "https://oneplusantiroll.netlify.app/"
	DatabaseFile     = "database.json"
	MaxDatabaseBytes = 8 << 20

	HTTPTimeout   = 30 * time.Second
	DeviceTimeout = 5 * time.Second

	PropModel = "ro.product.model"
	PropBuild = "ro.build.display.id"

	configDir    = ".config/arbcheck"
	configFile   = "config.yaml"
	settingsFile = "settings.yml"
)

// ConfigDirEnv overrides the directory holding config.yaml and settings.yml.
const ConfigDirEnv = "ARBCHECK_HOME"

func GetConfigDir() (string, error) {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, configDir), nil
}

func ConfigFilePath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

func SettingsFilePath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, settingsFile), nil
}
